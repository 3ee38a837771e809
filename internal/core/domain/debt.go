package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/project_books/internal/apperrors"
	"github.com/shopspring/decimal"
)

// ErrInvalidAmount is returned when a payment is non-positive or exceeds what is still owed.
var ErrInvalidAmount = fmt.Errorf("%w: invalid amount", apperrors.ErrValidation)

// DebtType says which side of the obligation the project is on.
type DebtType string

const (
	DebtOwedToUs DebtType = "owed_to_us"
	DebtOwedByUs DebtType = "owed_by_us"
)

// Valid reports whether t is a known debt type.
func (t DebtType) Valid() bool {
	return t == DebtOwedToUs || t == DebtOwedByUs
}

// PaymentStatus is the settlement state of a debt.
type PaymentStatus string

const (
	StatusUnpaid  PaymentStatus = "unpaid"
	StatusPartial PaymentStatus = "partial"
	StatusPaid    PaymentStatus = "paid"
)

// Debt is money owed between the project and a third party outside of a loan.
type Debt struct {
	DebtID          string          `json:"debtID"`
	ProjectID       string          `json:"projectID"`
	DebtType        DebtType        `json:"debtType"`
	PersonName      string          `json:"personName"`
	OriginalAmount  decimal.Decimal `json:"originalAmount"`
	RemainingAmount decimal.Decimal `json:"remainingAmount"`
	DueDate         *time.Time      `json:"dueDate,omitempty"`
	PaymentStatus   PaymentStatus   `json:"paymentStatus"`
	IsPaid          bool            `json:"isPaid"`
	AccountID       *string         `json:"accountID,omitempty"`
	Notes           string          `json:"notes"`
	AuditFields
}

// RecordPayment applies a settlement of amount. The debt is left untouched on error.
func (d *Debt) RecordPayment(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: payment must be positive, got %s", ErrInvalidAmount, amount)
	}
	if amount.GreaterThan(d.RemainingAmount) {
		return fmt.Errorf("%w: payment %s exceeds remaining %s", ErrInvalidAmount, amount, d.RemainingAmount)
	}
	d.RemainingAmount = d.RemainingAmount.Sub(amount)
	d.UpdateStatus()
	return nil
}

// UpdateStatus derives PaymentStatus and IsPaid from the remaining amount.
func (d *Debt) UpdateStatus() {
	switch {
	case d.RemainingAmount.LessThanOrEqual(decimal.Zero):
		d.PaymentStatus = StatusPaid
		d.IsPaid = true
	case d.RemainingAmount.LessThan(d.OriginalAmount):
		d.PaymentStatus = StatusPartial
	default:
		d.PaymentStatus = StatusUnpaid
	}
}

// IsUpcoming reports whether an unpaid debt falls due within the next days days.
func (d Debt) IsUpcoming(today time.Time, days int) bool {
	return isUpcoming(d.IsPaid, d.DueDate, today, days)
}

// IsOverdue reports whether an unpaid debt is past its due date.
func (d Debt) IsOverdue(today time.Time) bool {
	return isOverdue(d.IsPaid, d.DueDate, today)
}

// Movement returns the cash effect of the debt's creation, or false when the
// debt is not linked to an account.
func (d Debt) Movement() (CashMovement, bool) {
	if d.AccountID == nil || *d.AccountID == "" {
		return CashMovement{}, false
	}
	kind := MovementDebtToUsGiven
	if d.DebtType == DebtOwedByUs {
		kind = MovementDebtByUsReceived
	}
	return CashMovement{Kind: kind, AccountID: *d.AccountID, SourceID: d.DebtID, Amount: d.OriginalAmount, Date: DateOnly(d.CreatedAt)}, true
}

// DebtPayment is a partial or full settlement of a debt.
type DebtPayment struct {
	PaymentID   string          `json:"paymentID"`
	DebtID      string          `json:"debtID"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate time.Time       `json:"paymentDate"`
	AccountID   *string         `json:"accountID,omitempty"`
	Notes       string          `json:"notes"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// Movement returns the cash effect of the payment given the parent debt's type,
// or false when the payment is not linked to an account.
func (p DebtPayment) Movement(debtType DebtType) (CashMovement, bool) {
	if p.AccountID == nil || *p.AccountID == "" {
		return CashMovement{}, false
	}
	kind := MovementDebtToUsRepaid
	if debtType == DebtOwedByUs {
		kind = MovementDebtByUsRepaid
	}
	return CashMovement{Kind: kind, AccountID: *p.AccountID, SourceID: p.PaymentID, Amount: p.Amount, Date: p.PaymentDate}, true
}

func isUpcoming(paid bool, due *time.Time, today time.Time, days int) bool {
	if paid || due == nil {
		return false
	}
	left := DaysBetween(today, *due)
	return left >= 0 && left <= days
}

func isOverdue(paid bool, due *time.Time, today time.Time) bool {
	if paid || due == nil {
		return false
	}
	return DateOnly(*due).Before(DateOnly(today))
}
