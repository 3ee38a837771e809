package repositories

import (
	"context"

	"github.com/SscSPs/project_books/internal/core/domain"
)

// DebtListFilter narrows debt listings. ProjectID is mandatory.
type DebtListFilter struct {
	ProjectID string
	DebtType  *domain.DebtType
	Status    *domain.PaymentStatus
}

// DebtRepositoryFacade stores debts and their payments.
type DebtRepositoryFacade interface {
	SaveDebt(ctx context.Context, debt domain.Debt) error
	FindDebtByID(ctx context.Context, debtID string) (*domain.Debt, error)
	UpdateDebt(ctx context.Context, debt domain.Debt) error
	// DeleteDebt removes the debt together with its payments.
	DeleteDebt(ctx context.Context, debtID string) error
	// ListDebts returns debts ordered by due date (undated last), then creation time.
	ListDebts(ctx context.Context, filter DebtListFilter) ([]domain.Debt, error)

	SaveDebtPayment(ctx context.Context, payment domain.DebtPayment) error
	ListDebtPayments(ctx context.Context, debtID string) ([]domain.DebtPayment, error)
}
