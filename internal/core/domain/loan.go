package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Loan is principal borrowed from a lender. It credits its account when received
// and is repaid through LoanPayments; neither side is income or expense.
//
// Unlike Debt, a loan has no partial state: it is either paid or not.
type Loan struct {
	LoanID          string          `json:"loanID"`
	ProjectID       string          `json:"projectID"`
	LenderName      string          `json:"lenderName"`
	Amount          decimal.Decimal `json:"amount"`
	RemainingAmount decimal.Decimal `json:"remainingAmount"`
	ReceivedDate    time.Time       `json:"receivedDate"`
	DueDate         *time.Time      `json:"dueDate,omitempty"`
	InterestRate    decimal.Decimal `json:"interestRate"`
	IsPaid          bool            `json:"isPaid"`
	AccountID       string          `json:"accountID"`
	Notes           string          `json:"notes"`
	AuditFields
}

// RecordPayment applies a repayment of amount. The loan is left untouched on error.
func (l *Loan) RecordPayment(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: payment must be positive, got %s", ErrInvalidAmount, amount)
	}
	if amount.GreaterThan(l.RemainingAmount) {
		return fmt.Errorf("%w: payment %s exceeds remaining %s", ErrInvalidAmount, amount, l.RemainingAmount)
	}
	l.RemainingAmount = l.RemainingAmount.Sub(amount)
	l.UpdateStatus()
	return nil
}

// UpdateStatus marks the loan paid and clamps the remainder at zero once nothing is owed.
func (l *Loan) UpdateStatus() {
	if l.RemainingAmount.LessThanOrEqual(decimal.Zero) {
		l.RemainingAmount = decimal.Zero
		l.IsPaid = true
	}
}

// IsUpcoming reports whether an unpaid loan falls due within the next days days.
func (l Loan) IsUpcoming(today time.Time, days int) bool {
	return isUpcoming(l.IsPaid, l.DueDate, today, days)
}

// IsOverdue reports whether an unpaid loan is past its due date.
func (l Loan) IsOverdue(today time.Time) bool {
	return isOverdue(l.IsPaid, l.DueDate, today)
}

// Movement returns the cash credit of the loan principal.
func (l Loan) Movement() CashMovement {
	return CashMovement{Kind: MovementLoanReceived, AccountID: l.AccountID, SourceID: l.LoanID, Amount: l.Amount, Date: l.ReceivedDate}
}

// LoanPayment is one repayment of a loan.
type LoanPayment struct {
	PaymentID   string          `json:"paymentID"`
	LoanID      string          `json:"loanID"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate time.Time       `json:"paymentDate"`
	AccountID   string          `json:"accountID"`
	Notes       string          `json:"notes"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// Movement returns the cash debit of the repayment.
func (p LoanPayment) Movement() CashMovement {
	return CashMovement{Kind: MovementLoanRepaid, AccountID: p.AccountID, SourceID: p.PaymentID, Amount: p.Amount, Date: p.PaymentDate}
}
