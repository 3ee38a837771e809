package dto

import (
	"time"

	"github.com/SscSPs/project_books/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateIncomeRequest defines the data needed to record income.
type CreateIncomeRequest struct {
	AccountID       string          `json:"accountID" binding:"required"`
	CategoryID      string          `json:"categoryID" binding:"required"`
	Amount          decimal.Decimal `json:"amount" binding:"decimal_gt0"`
	TransactionDate *time.Time      `json:"transactionDate"` // defaults to today
	Notes           string          `json:"notes"`
}

// UpdateIncomeRequest defines the editable fields of an income transaction.
type UpdateIncomeRequest struct {
	AccountID       *string          `json:"accountID"`
	CategoryID      *string          `json:"categoryID"`
	Amount          *decimal.Decimal `json:"amount" binding:"omitempty,decimal_gt0"`
	TransactionDate *time.Time       `json:"transactionDate"`
	Notes           *string          `json:"notes"`
}

// CreateExpenseRequest defines the data needed to record an expense.
type CreateExpenseRequest struct {
	AccountID       string          `json:"accountID" binding:"required"`
	CategoryID      string          `json:"categoryID" binding:"required"`
	Amount          decimal.Decimal `json:"amount" binding:"decimal_gt0"`
	TransactionDate *time.Time      `json:"transactionDate"`
	Phase           *domain.Phase   `json:"phase" binding:"omitempty,phase"` // defaults to the project phase
	IsDirectCost    bool            `json:"isDirectCost"`
	EmployeeID      *string         `json:"employeeID"`
	Notes           string          `json:"notes"`
}

// UpdateExpenseRequest defines the editable fields of an expense transaction.
type UpdateExpenseRequest struct {
	AccountID       *string          `json:"accountID"`
	CategoryID      *string          `json:"categoryID"`
	Amount          *decimal.Decimal `json:"amount" binding:"omitempty,decimal_gt0"`
	TransactionDate *time.Time       `json:"transactionDate"`
	Phase           *domain.Phase    `json:"phase" binding:"omitempty,phase"`
	IsDirectCost    *bool            `json:"isDirectCost"`
	EmployeeID      *string          `json:"employeeID"`
	Notes           *string          `json:"notes"`
}

// ListTransactionsParams defines query parameters for listing income or expenses.
type ListTransactionsParams struct {
	PeriodQuery
	CategoryID *string `form:"category_id"`
	Limit      int     `form:"limit,default=50"`
	NextToken  *string `form:"next_token"`
}

// ListIncomeResponse is one page of income transactions.
type ListIncomeResponse struct {
	Transactions []domain.IncomeTransaction `json:"transactions"`
	NextToken    *string                    `json:"nextToken,omitempty"`
}

// ListExpensesResponse is one page of expense transactions.
type ListExpensesResponse struct {
	Transactions []domain.ExpenseTransaction `json:"transactions"`
	NextToken    *string                     `json:"nextToken,omitempty"`
}
