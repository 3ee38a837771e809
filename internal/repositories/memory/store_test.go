package memory_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/SscSPs/project_books/internal/apperrors"
	"github.com/SscSPs/project_books/internal/core/domain"
	portsrepo "github.com/SscSPs/project_books/internal/core/ports/repositories"
	"github.com/SscSPs/project_books/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithinTx_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	require.NoError(t, s.SaveProject(ctx, domain.Project{ProjectID: "p1", Name: "Alpha", IsActive: true}))

	boom := fmt.Errorf("boom")
	err := s.WithinTx(ctx, func(ctx context.Context) error {
		require.NoError(t, s.SaveAccount(ctx, domain.Account{AccountID: "a1", ProjectID: "p1", IsActive: true}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = s.FindAccountByID(ctx, "a1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestWithinTx_CommitsAndNests(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()

	err := s.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.SaveProject(ctx, domain.Project{ProjectID: "p1", Name: "Alpha"}); err != nil {
			return err
		}
		return s.WithinTx(ctx, func(ctx context.Context) error {
			return s.SaveProject(ctx, domain.Project{ProjectID: "p2", Name: "Beta"})
		})
	})
	require.NoError(t, err)

	projects, err := s.ListProjects(ctx, false)
	require.NoError(t, err)
	assert.Len(t, projects, 2)
}

func TestListIncome_KeysetPages(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, s.SaveIncome(ctx, domain.IncomeTransaction{
			TransactionID:   fmt.Sprintf("t%d", i),
			ProjectID:       "p1",
			AccountID:       "a1",
			Amount:          decimal.NewFromInt(int64(i + 1)),
			TransactionDate: base.AddDate(0, 0, i/2),
		}))
	}

	filter := portsrepo.TransactionListFilter{ProjectID: "p1"}
	var seen []string
	var token *string
	for pageNo := 0; pageNo < 5; pageNo++ {
		rows, next, err := s.ListIncome(ctx, filter, 2, token)
		require.NoError(t, err)
		for _, r := range rows {
			seen = append(seen, r.TransactionID)
		}
		if next == nil {
			break
		}
		token = next
	}
	assert.Equal(t, []string{"t4", "t3", "t2", "t1", "t0"}, seen)

	bad := "%%%"
	_, _, err := s.ListIncome(ctx, filter, 2, &bad)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestLedgerQueries_RequireProject(t *testing.T) {
	s := memory.NewStore()
	_, err := s.SumAmount(context.Background(), domain.SetIncome, domain.LedgerFilter{})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestListMovements_CoversEveryKind(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	acc := "a1"
	day := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, s.SaveIncome(ctx, domain.IncomeTransaction{TransactionID: "i", ProjectID: "p", AccountID: acc, Amount: decimal.NewFromInt(200), TransactionDate: day}))
	require.NoError(t, s.SaveExpense(ctx, domain.ExpenseTransaction{TransactionID: "e", ProjectID: "p", AccountID: acc, Amount: decimal.NewFromInt(30), TransactionDate: day}))
	require.NoError(t, s.SaveLoan(ctx, domain.Loan{LoanID: "l", ProjectID: "p", AccountID: acc, Amount: decimal.NewFromInt(500), ReceivedDate: day}))
	require.NoError(t, s.SaveLoanPayment(ctx, domain.LoanPayment{PaymentID: "lp", LoanID: "l", AccountID: acc, Amount: decimal.NewFromInt(100), PaymentDate: day}))
	require.NoError(t, s.SaveDebt(ctx, domain.Debt{DebtID: "d", ProjectID: "p", DebtType: domain.DebtOwedToUs, AccountID: &acc, OriginalAmount: decimal.NewFromInt(50), AuditFields: domain.AuditFields{CreatedAt: day}}))
	require.NoError(t, s.SaveDebtPayment(ctx, domain.DebtPayment{PaymentID: "dp", DebtID: "d", AccountID: &acc, Amount: decimal.NewFromInt(20), PaymentDate: day}))

	movements, err := s.ListMovements(ctx, acc)
	require.NoError(t, err)
	assert.Len(t, movements, 6)

	total := decimal.Zero
	for _, m := range movements {
		total = total.Add(m.Contribution())
	}
	// 200 - 30 + 500 - 100 - 50 + 20
	assert.True(t, decimal.NewFromInt(540).Equal(total), "got %s", total)
}

func TestSumAccountBalances_InactiveAccountCountsOnlyWhenNamed(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	require.NoError(t, s.SaveAccount(ctx, domain.Account{AccountID: "open", ProjectID: "p", IsActive: true, CurrentBalance: decimal.NewFromInt(100)}))
	require.NoError(t, s.SaveAccount(ctx, domain.Account{AccountID: "closed", ProjectID: "p", IsActive: true, CurrentBalance: decimal.NewFromInt(40)}))
	require.NoError(t, s.SaveAccount(ctx, domain.Account{AccountID: "other", ProjectID: "q", IsActive: true, CurrentBalance: decimal.NewFromInt(7)}))
	require.NoError(t, s.DeactivateAccount(ctx, "closed", time.Now()))

	total, err := s.SumAccountBalances(ctx, "p", nil)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(100).Equal(total), "got %s", total)

	closed := "closed"
	one, err := s.SumAccountBalances(ctx, "p", &closed)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(40).Equal(one), "got %s", one)

	other := "other"
	none, err := s.SumAccountBalances(ctx, "p", &other)
	require.NoError(t, err)
	assert.True(t, none.IsZero(), "got %s", none)
}
