package repositories

import (
	"context"

	"github.com/SscSPs/project_books/internal/core/domain"
)

// LoanRepositoryFacade stores loans and their payments.
type LoanRepositoryFacade interface {
	SaveLoan(ctx context.Context, loan domain.Loan) error
	FindLoanByID(ctx context.Context, loanID string) (*domain.Loan, error)
	UpdateLoan(ctx context.Context, loan domain.Loan) error
	// DeleteLoan removes the loan together with its payments.
	DeleteLoan(ctx context.Context, loanID string) error
	// ListLoans returns loans newest first; paid filters on IsPaid when set.
	ListLoans(ctx context.Context, projectID string, paid *bool) ([]domain.Loan, error)

	SaveLoanPayment(ctx context.Context, payment domain.LoanPayment) error
	ListLoanPayments(ctx context.Context, loanID string) ([]domain.LoanPayment, error)
}
