package services

import (
	"context"

	"github.com/SscSPs/project_books/internal/core/domain"
	"github.com/SscSPs/project_books/internal/dto"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccountByID retrieves an account that belongs to the project.
	GetAccountByID(ctx context.Context, projectID string, accountID string) (*domain.Account, error)

	// ListAccounts retrieves the active accounts of a project.
	ListAccounts(ctx context.Context, projectID string) ([]domain.Account, error)

	ListAccountTypes(ctx context.Context) ([]domain.AccountType, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	CreateAccount(ctx context.Context, projectID string, req dto.CreateAccountRequest) (*domain.Account, error)
	UpdateAccount(ctx context.Context, projectID string, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error)
	DeactivateAccount(ctx context.Context, projectID string, accountID string) error
}

// AccountCalculatorSvc defines calculation operations for account data
type AccountCalculatorSvc interface {
	// GetAccountBalance derives the balance from the account's full history.
	GetAccountBalance(ctx context.Context, projectID string, accountID string) (*dto.AccountBalanceResponse, error)

	// RebuildBalances recomputes the cached balance of every account in the project.
	RebuildBalances(ctx context.Context, projectID string) error
}

// AccountSvcFacade combines all account-related service interfaces
// This is a facade for clients that need access to all operations
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
	AccountCalculatorSvc
}
