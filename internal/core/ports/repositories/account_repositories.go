package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/project_books/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// ListAccounts retrieves the active accounts of a project ordered by name.
	ListAccounts(ctx context.Context, projectID string) ([]domain.Account, error)

	// ListAccountTypes retrieves the account type lookup table.
	ListAccountTypes(ctx context.Context) ([]domain.AccountType, error)

	// FindAccountTypeByID retrieves one account type.
	FindAccountTypeByID(ctx context.Context, accountTypeID string) (*domain.AccountType, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates an existing account's descriptive fields. Balances
	// are only written through UpdateAccountBalances.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeactivateAccount marks an account as inactive.
	DeactivateAccount(ctx context.Context, accountID string, now time.Time) error
}

// AccountBalanceSupport defines the operations used by balance reconciliation.
// Both must be called with a transactional context.
type AccountBalanceSupport interface {
	// FindAccountsByIDsForUpdate selects accounts and locks them until the
	// surrounding transaction ends.
	FindAccountsByIDsForUpdate(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// UpdateAccountBalances overwrites current_balance for each account.
	UpdateAccountBalances(ctx context.Context, balances map[string]decimal.Decimal, now time.Time) error
}

// CashMovementReader loads the full movement history of an account.
type CashMovementReader interface {
	// ListMovements returns every income, expense, loan, loan payment, debt and
	// debt payment that touches the account.
	ListMovements(ctx context.Context, accountID string) ([]domain.CashMovement, error)
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountBalanceSupport
	CashMovementReader
}
