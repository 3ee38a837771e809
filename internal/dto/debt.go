package dto

import (
	"time"

	"github.com/SscSPs/project_books/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateDebtRequest defines the data needed to record a debt.
type CreateDebtRequest struct {
	DebtType   domain.DebtType `json:"debtType" binding:"required,debt_type"`
	PersonName string          `json:"personName" binding:"required"`
	Amount     decimal.Decimal `json:"amount" binding:"decimal_gt0"`
	DueDate    *time.Time      `json:"dueDate"`
	AccountID  *string         `json:"accountID"`
	Notes      string          `json:"notes"`
}

// UpdateDebtRequest edits the descriptive fields of a debt. Amounts are fixed
// once recorded.
type UpdateDebtRequest struct {
	PersonName *string    `json:"personName"`
	DueDate    *time.Time `json:"dueDate"`
	Notes      *string    `json:"notes"`
}

// DebtPaymentRequest records a settlement. AccountID defaults to the debt's account.
type DebtPaymentRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"decimal_gt0"`
	PaymentDate *time.Time      `json:"paymentDate"`
	AccountID   *string         `json:"accountID"`
	Notes       string          `json:"notes"`
}

// ListDebtsParams defines query parameters for listing debts.
type ListDebtsParams struct {
	Type   string `form:"type"`   // owed_to_us, owed_by_us or empty for all
	Status string `form:"status"` // all, unpaid, partial, paid
}

// DebtListResponse lists debts with unpaid totals per side.
type DebtListResponse struct {
	Debts         []domain.Debt   `json:"debts"`
	TotalOwedToUs decimal.Decimal `json:"totalOwedToUs"`
	TotalOwedByUs decimal.Decimal `json:"totalOwedByUs"`
}

// DebtDetailResponse is a debt with its payment history.
type DebtDetailResponse struct {
	Debt     domain.Debt          `json:"debt"`
	Payments []domain.DebtPayment `json:"payments"`
}
