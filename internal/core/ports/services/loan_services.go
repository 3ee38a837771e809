package services

import (
	"context"

	"github.com/SscSPs/project_books/internal/core/domain"
	"github.com/SscSPs/project_books/internal/dto"
)

// LoanSvcFacade manages loans and their repayments.
type LoanSvcFacade interface {
	CreateLoan(ctx context.Context, projectID string, req dto.CreateLoanRequest) (*domain.Loan, error)
	GetLoan(ctx context.Context, projectID string, loanID string) (*dto.LoanDetailResponse, error)
	RecordPayment(ctx context.Context, projectID string, loanID string, req dto.LoanPaymentRequest) (*domain.Loan, error)
	// DeleteLoan removes the loan and its payments and reverses their effect
	// on every account involved.
	DeleteLoan(ctx context.Context, projectID string, loanID string) error
	ListLoans(ctx context.Context, projectID string, params dto.ListLoansParams) (*dto.LoanListResponse, error)
}
