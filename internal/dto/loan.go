package dto

import (
	"time"

	"github.com/SscSPs/project_books/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateLoanRequest defines the data needed to record a loan.
type CreateLoanRequest struct {
	LenderName   string          `json:"lenderName" binding:"required"`
	Amount       decimal.Decimal `json:"amount" binding:"decimal_gt0"`
	ReceivedDate *time.Time      `json:"receivedDate"`
	DueDate      *time.Time      `json:"dueDate"`
	InterestRate decimal.Decimal `json:"interestRate" binding:"decimal_gte0"`
	AccountID    string          `json:"accountID" binding:"required"`
	Notes        string          `json:"notes"`
}

// LoanPaymentRequest records a repayment. AccountID defaults to the loan's account.
type LoanPaymentRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"decimal_gt0"`
	PaymentDate *time.Time      `json:"paymentDate"`
	AccountID   *string         `json:"accountID"`
	Notes       string          `json:"notes"`
}

// ListLoansParams defines query parameters for listing loans.
type ListLoansParams struct {
	Status string `form:"status"` // all, paid, unpaid
}

// LoanListResponse lists loans with totals over the listed rows.
type LoanListResponse struct {
	Loans          []domain.Loan   `json:"loans"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	TotalRemaining decimal.Decimal `json:"totalRemaining"`
	TotalPaid      decimal.Decimal `json:"totalPaid"`
}

// LoanDetailResponse is a loan with its repayment history.
type LoanDetailResponse struct {
	Loan     domain.Loan          `json:"loan"`
	Payments []domain.LoanPayment `json:"payments"`
}
