package services

import (
	"context"

	"github.com/SscSPs/project_books/internal/core/domain"
	"github.com/SscSPs/project_books/internal/dto"
)

// IncomeSvc records and edits income.
type IncomeSvc interface {
	CreateIncome(ctx context.Context, projectID string, req dto.CreateIncomeRequest) (*domain.IncomeTransaction, error)
	GetIncome(ctx context.Context, projectID string, transactionID string) (*domain.IncomeTransaction, error)
	UpdateIncome(ctx context.Context, projectID string, transactionID string, req dto.UpdateIncomeRequest) (*domain.IncomeTransaction, error)
	DeleteIncome(ctx context.Context, projectID string, transactionID string) error
	ListIncome(ctx context.Context, projectID string, params dto.ListTransactionsParams) (*dto.ListIncomeResponse, error)
}

// ExpenseSvc records and edits expenses. Salary-generated expenses are
// read-only here; they change only through their salary payment.
type ExpenseSvc interface {
	CreateExpense(ctx context.Context, projectID string, req dto.CreateExpenseRequest) (*domain.ExpenseTransaction, error)
	GetExpense(ctx context.Context, projectID string, transactionID string) (*domain.ExpenseTransaction, error)
	UpdateExpense(ctx context.Context, projectID string, transactionID string, req dto.UpdateExpenseRequest) (*domain.ExpenseTransaction, error)
	DeleteExpense(ctx context.Context, projectID string, transactionID string) error
	ListExpenses(ctx context.Context, projectID string, params dto.ListTransactionsParams) (*dto.ListExpensesResponse, error)
}

// CategorySvc exposes the category lookup tables.
type CategorySvc interface {
	ListIncomeCategories(ctx context.Context) ([]domain.IncomeCategory, error)
	ListExpenseCategories(ctx context.Context) ([]domain.ExpenseCategory, error)
}
