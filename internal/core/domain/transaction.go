package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// IncomeCategory is a project-agnostic lookup row for revenue.
type IncomeCategory struct {
	CategoryID  string `json:"categoryID"`
	Name        string `json:"name"`
	NameAlt     string `json:"nameAlt"`
	Description string `json:"description"`
	IsActive    bool   `json:"isActive"`
}

// ExpenseCategory is a project-agnostic lookup row for costs.
type ExpenseCategory struct {
	CategoryID  string `json:"categoryID"`
	Name        string `json:"name"`
	NameAlt     string `json:"nameAlt"`
	Description string `json:"description"`
	IsActive    bool   `json:"isActive"`
}

// SalaryCategoryName is the expense category salary payments are booked into when present.
const SalaryCategoryName = "salaries"

// IncomeTransaction is a revenue event credited to an account.
type IncomeTransaction struct {
	TransactionID   string          `json:"transactionID"`
	ProjectID       string          `json:"projectID"`
	AccountID       string          `json:"accountID"`
	CategoryID      string          `json:"categoryID"`
	Amount          decimal.Decimal `json:"amount"`
	TransactionDate time.Time       `json:"transactionDate"`
	Notes           string          `json:"notes"`
	AuditFields
}

// Movement returns the cash effect of the income on its account.
func (t IncomeTransaction) Movement() CashMovement {
	return CashMovement{Kind: MovementIncome, AccountID: t.AccountID, SourceID: t.TransactionID, Amount: t.Amount, Date: t.TransactionDate}
}

// ExpenseTransaction is a cost event debited from an account.
type ExpenseTransaction struct {
	TransactionID   string          `json:"transactionID"`
	ProjectID       string          `json:"projectID"`
	AccountID       string          `json:"accountID"`
	CategoryID      string          `json:"categoryID"`
	Amount          decimal.Decimal `json:"amount"`
	TransactionDate time.Time       `json:"transactionDate"`
	Phase           Phase           `json:"phase"`
	IsDirectCost    bool            `json:"isDirectCost"`
	IsSalary        bool            `json:"isSalary"`
	EmployeeID      *string         `json:"employeeID,omitempty"`
	Notes           string          `json:"notes"`
	AuditFields
}

// Movement returns the cash effect of the expense on its account.
func (t ExpenseTransaction) Movement() CashMovement {
	return CashMovement{Kind: MovementExpense, AccountID: t.AccountID, SourceID: t.TransactionID, Amount: t.Amount, Date: t.TransactionDate}
}
