package repositories

import (
	"context"

	"github.com/SscSPs/project_books/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerQueryRepository aggregates ledger data for statements.
type LedgerQueryRepository interface {
	// SumAmount totals the set over the filter; zero when nothing matches.
	SumAmount(ctx context.Context, set domain.EntitySet, filter domain.LedgerFilter) (decimal.Decimal, error)

	// GroupByCategory totals income or expense per category. Only categories
	// with at least one matching row are returned.
	GroupByCategory(ctx context.Context, set domain.EntitySet, filter domain.LedgerFilter) ([]domain.CategoryAmount, error)

	// MonthlyTotals totals the set per calendar month, ascending.
	MonthlyTotals(ctx context.Context, set domain.EntitySet, filter domain.LedgerFilter) ([]domain.MonthAmount, error)

	// SumAccountBalances totals current_balance over the project's active
	// accounts, or over the single account when accountID is set.
	SumAccountBalances(ctx context.Context, projectID string, accountID *string) (decimal.Decimal, error)
}
