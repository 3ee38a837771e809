package repositories

import (
	"context"

	"github.com/SscSPs/project_books/internal/core/domain"
)

// TransactionListFilter narrows income/expense listings. ProjectID is mandatory.
type TransactionListFilter struct {
	ProjectID  string
	AccountID  *string
	CategoryID *string
	Range      *domain.DateRange
}

// CategoryReader exposes the income and expense category lookup tables.
type CategoryReader interface {
	ListIncomeCategories(ctx context.Context) ([]domain.IncomeCategory, error)
	ListExpenseCategories(ctx context.Context) ([]domain.ExpenseCategory, error)
	FindIncomeCategoryByID(ctx context.Context, categoryID string) (*domain.IncomeCategory, error)
	FindExpenseCategoryByID(ctx context.Context, categoryID string) (*domain.ExpenseCategory, error)

	// FindExpenseCategoryByName looks up a category by its primary name.
	FindExpenseCategoryByName(ctx context.Context, name string) (*domain.ExpenseCategory, error)
}

// IncomeRepository stores income transactions.
type IncomeRepository interface {
	SaveIncome(ctx context.Context, txn domain.IncomeTransaction) error
	FindIncomeByID(ctx context.Context, transactionID string) (*domain.IncomeTransaction, error)
	UpdateIncome(ctx context.Context, txn domain.IncomeTransaction) error
	DeleteIncome(ctx context.Context, transactionID string) error

	// ListIncome returns up to limit rows newest first, continuing after
	// nextToken when given. The returned token is nil on the last page.
	ListIncome(ctx context.Context, filter TransactionListFilter, limit int, nextToken *string) ([]domain.IncomeTransaction, *string, error)
}

// ExpenseRepository stores expense transactions.
type ExpenseRepository interface {
	SaveExpense(ctx context.Context, txn domain.ExpenseTransaction) error
	FindExpenseByID(ctx context.Context, transactionID string) (*domain.ExpenseTransaction, error)
	UpdateExpense(ctx context.Context, txn domain.ExpenseTransaction) error
	DeleteExpense(ctx context.Context, transactionID string) error
	ListExpenses(ctx context.Context, filter TransactionListFilter, limit int, nextToken *string) ([]domain.ExpenseTransaction, *string, error)
}

// TransactionRepositoryFacade combines income, expense and category storage.
type TransactionRepositoryFacade interface {
	CategoryReader
	IncomeRepository
	ExpenseRepository
}
