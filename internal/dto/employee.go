package dto

import (
	"time"

	"github.com/SscSPs/project_books/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateEmployeeRequest defines the data needed to create an employee.
type CreateEmployeeRequest struct {
	Name         string              `json:"name" binding:"required"`
	BaseSalary   decimal.Decimal     `json:"baseSalary" binding:"decimal_gte0"`
	ContractType domain.ContractType `json:"contractType" binding:"omitempty,contract_type"`
	HireDate     *time.Time          `json:"hireDate"`
	Notes        string              `json:"notes"`
}

// UpdateEmployeeRequest defines the editable fields of an employee.
type UpdateEmployeeRequest struct {
	Name         *string              `json:"name"`
	BaseSalary   *decimal.Decimal     `json:"baseSalary" binding:"omitempty,decimal_gte0"`
	ContractType *domain.ContractType `json:"contractType" binding:"omitempty,contract_type"`
	HireDate     *time.Time           `json:"hireDate"`
	Notes        *string              `json:"notes"`
}

// PaySalaryRequest records one payroll run for an employee.
type PaySalaryRequest struct {
	AccountID   string           `json:"accountID" binding:"required"`
	PaymentDate *time.Time       `json:"paymentDate"`
	BaseSalary  *decimal.Decimal `json:"baseSalary" binding:"omitempty,decimal_gte0"` // defaults to the employee's base salary
	Deductions  decimal.Decimal  `json:"deductions" binding:"decimal_gte0"`
	Bonus       decimal.Decimal  `json:"bonus" binding:"decimal_gte0"`
	Commission  decimal.Decimal  `json:"commission" binding:"decimal_gte0"`
	// CategoryID is used only when no "salaries" expense category exists.
	CategoryID *string `json:"categoryID"`
	Notes      string  `json:"notes"`
}

// SalaryPaymentResponse pairs a salary payment with its generated expense.
type SalaryPaymentResponse struct {
	Payment domain.SalaryPayment      `json:"payment"`
	Expense domain.ExpenseTransaction `json:"expense"`
}
