package services

import (
	"context"

	"github.com/SscSPs/project_books/internal/core/domain"
	"github.com/SscSPs/project_books/internal/dto"
)

// DebtSvcFacade manages debts and their settlements.
type DebtSvcFacade interface {
	CreateDebt(ctx context.Context, projectID string, req dto.CreateDebtRequest) (*domain.Debt, error)
	GetDebt(ctx context.Context, projectID string, debtID string) (*dto.DebtDetailResponse, error)
	UpdateDebt(ctx context.Context, projectID string, debtID string, req dto.UpdateDebtRequest) (*domain.Debt, error)
	RecordPayment(ctx context.Context, projectID string, debtID string, req dto.DebtPaymentRequest) (*domain.Debt, error)
	DeleteDebt(ctx context.Context, projectID string, debtID string) error
	ListDebts(ctx context.Context, projectID string, params dto.ListDebtsParams) (*dto.DebtListResponse, error)

	// ListUpcoming returns unpaid debts owed by the project falling due within
	// days days, soonest first. days <= 0 uses the configured warning window.
	ListUpcoming(ctx context.Context, projectID string, days int) ([]domain.Debt, error)
	// ListOverdue returns unpaid debts of either type past their due date.
	ListOverdue(ctx context.Context, projectID string) ([]domain.Debt, error)
}
