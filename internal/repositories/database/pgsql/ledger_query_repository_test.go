package pgsql

import (
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/project_books/internal/apperrors"
	"github.com/SscSPs/project_books/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConditions_NumbersPlaceholdersInOrder(t *testing.T) {
	var c conditions
	c.add("project_id = $%d", "p1")
	c.add("is_active")
	c.add("(transaction_date, transaction_id) < ($%d, $%d)", "2026-03-01", "t9")

	assert.Equal(t, " WHERE project_id = $1 AND is_active AND (transaction_date, transaction_id) < ($2, $3)", c.where())
	assert.Equal(t, []any{"p1", "2026-03-01", "t9"}, c.args)
	assert.Equal(t, 4, c.next())
}

func TestConditions_EmptyHasNoWhere(t *testing.T) {
	var c conditions
	assert.Empty(t, c.where())
	assert.Equal(t, 1, c.next())
}

func TestCompile_ExpenseFilter(t *testing.T) {
	phase := domain.PhaseOperating
	direct := true
	account := "acc-1"
	filter := domain.LedgerFilter{
		ProjectID:    "p1",
		AccountID:    &account,
		Range:        &domain.DateRange{Start: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), End: time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)},
		Phase:        &phase,
		IsDirectCost: &direct,
	}

	_, body, args, err := compile(domain.SetExpense, filter)
	require.NoError(t, err)
	assert.Contains(t, body, "FROM expense_transactions t JOIN expense_categories c")
	assert.Contains(t, body, "t.transaction_date BETWEEN $3 AND $4")
	assert.Contains(t, body, "t.phase = $5")
	assert.Contains(t, body, "t.is_direct_cost = $6")
	assert.Len(t, args, 6)
}

func TestCompile_PhaseOnNonExpenseMatchesNothing(t *testing.T) {
	phase := domain.PhaseBuilding
	_, body, args, err := compile(domain.SetIncome, domain.LedgerFilter{ProjectID: "p1", Phase: &phase})
	require.NoError(t, err)
	assert.Contains(t, body, "AND FALSE")
	assert.Len(t, args, 1)
}

func TestCompile_DebtFilters(t *testing.T) {
	debtType := domain.DebtOwedByUs
	paid := false
	_, body, _, err := compile(domain.SetDebtOutstanding, domain.LedgerFilter{ProjectID: "p1", DebtType: &debtType, Paid: &paid})
	require.NoError(t, err)
	assert.Contains(t, body, "d.debt_type = $2")
	assert.Contains(t, body, "d.is_paid = $3")
}

func TestCompile_Rejects(t *testing.T) {
	_, _, _, err := compile(domain.SetIncome, domain.LedgerFilter{})
	assert.True(t, errors.Is(err, apperrors.ErrValidation))

	_, _, _, err = compile(domain.EntitySet("bogus"), domain.LedgerFilter{ProjectID: "p1"})
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
}

func TestEverySetHasSource(t *testing.T) {
	for _, set := range []domain.EntitySet{
		domain.SetIncome, domain.SetExpense, domain.SetLoanReceived, domain.SetLoanRepaid,
		domain.SetLoanOutstanding, domain.SetDebtOriginal, domain.SetDebtOutstanding, domain.SetDebtRepaid,
	} {
		src, ok := setSources[set]
		require.True(t, ok, set)
		assert.NotEmpty(t, src.amount, set)
		assert.NotEmpty(t, src.date, set)
		assert.NotEmpty(t, src.paid, set)
	}
}
