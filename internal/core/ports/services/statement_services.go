package services

import (
	"context"

	"github.com/SscSPs/project_books/internal/core/domain"
	"github.com/SscSPs/project_books/internal/dto"
)

// StatementSvc composes financial statements from ledger aggregates.
type StatementSvc interface {
	ProfitAndLoss(ctx context.Context, projectID string, q dto.PeriodQuery) (*domain.ProfitAndLoss, error)
	CashFlow(ctx context.Context, projectID string, q dto.PeriodQuery) (*domain.CashFlow, error)
	Equity(ctx context.Context, projectID string) (*domain.Equity, error)
	ROI(ctx context.Context, projectID string) (*domain.ROI, error)
	KPIs(ctx context.Context, projectID string) (*domain.KPIs, error)
	IncomeSummary(ctx context.Context, projectID string, q dto.PeriodQuery) (*domain.CategorySummary, error)
	ExpenseSummary(ctx context.Context, projectID string, q dto.PeriodQuery) (*domain.CategorySummary, error)
	MonthlyTrend(ctx context.Context, projectID string) (*domain.MonthlyTrend, error)

	// GetStatement dispatches by name; unknown names are validation errors.
	GetStatement(ctx context.Context, projectID string, name domain.StatementName, q dto.PeriodQuery) (domain.StatementResult, error)

	Dashboard(ctx context.Context, projectID string, q dto.PeriodQuery) (*domain.Dashboard, error)
}
