package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/project_books/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoan_RecordPayment(t *testing.T) {
	l := &domain.Loan{Amount: dec("500"), RemainingAmount: dec("500")}

	require.NoError(t, l.RecordPayment(dec("200")))
	assert.True(t, dec("300").Equal(l.RemainingAmount))
	assert.False(t, l.IsPaid)

	err := l.RecordPayment(dec("300.01"))
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	assert.True(t, dec("300").Equal(l.RemainingAmount))

	require.NoError(t, l.RecordPayment(dec("300")))
	assert.True(t, l.IsPaid)
	assert.True(t, l.RemainingAmount.IsZero())
}

func TestLoan_UpdateStatusClampsAndHasNoPartialState(t *testing.T) {
	l := &domain.Loan{Amount: dec("100"), RemainingAmount: dec("-3")}
	l.UpdateStatus()
	assert.True(t, l.IsPaid)
	assert.True(t, l.RemainingAmount.IsZero(), "remaining clamped to zero")

	// A partly repaid loan is simply unpaid, unlike a partly settled debt.
	l = &domain.Loan{Amount: dec("100"), RemainingAmount: dec("40")}
	l.UpdateStatus()
	assert.False(t, l.IsPaid)

	d := &domain.Debt{OriginalAmount: dec("100"), RemainingAmount: dec("40")}
	d.UpdateStatus()
	assert.Equal(t, domain.StatusPartial, d.PaymentStatus)
}

func TestLoan_MovementsNeverTouchProfitAndLoss(t *testing.T) {
	l := domain.Loan{LoanID: "l1", AccountID: "a1", Amount: dec("500"), ReceivedDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	m := l.Movement()
	assert.Equal(t, domain.MovementLoanReceived, m.Kind)
	assert.False(t, m.Kind.AffectsProfitAndLoss())
	assert.True(t, dec("500").Equal(m.Contribution()))

	p := domain.LoanPayment{PaymentID: "p1", LoanID: "l1", AccountID: "a1", Amount: dec("50")}
	pm := p.Movement()
	assert.False(t, pm.Kind.AffectsProfitAndLoss())
	assert.True(t, dec("-50").Equal(pm.Contribution()))
}

func TestLoan_Overdue(t *testing.T) {
	today := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)
	l := domain.Loan{RemainingAmount: dec("1"), DueDate: timePtr(today.AddDate(0, 0, -1))}
	assert.True(t, l.IsOverdue(today))
	assert.False(t, l.IsUpcoming(today, 7))
	l.IsPaid = true
	assert.False(t, l.IsOverdue(today))
}
