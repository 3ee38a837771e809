package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ContractType classifies an employee's engagement.
type ContractType string

const (
	ContractFullTime ContractType = "full-time"
	ContractPartTime ContractType = "part-time"
	ContractContract ContractType = "contract"
)

// Employee is a payroll subject within a project.
type Employee struct {
	EmployeeID   string          `json:"employeeID"`
	ProjectID    string          `json:"projectID"`
	Name         string          `json:"name"`
	BaseSalary   decimal.Decimal `json:"baseSalary"`
	ContractType ContractType    `json:"contractType"`
	HireDate     *time.Time      `json:"hireDate,omitempty"`
	IsActive     bool            `json:"isActive"`
	Notes        string          `json:"notes"`
	AuditFields
}

// SalaryPayment is one payroll run for an employee. It owns exactly one
// generated ExpenseTransaction.
type SalaryPayment struct {
	PaymentID            string          `json:"paymentID"`
	EmployeeID           string          `json:"employeeID"`
	PaymentDate          time.Time       `json:"paymentDate"`
	BaseSalary           decimal.Decimal `json:"baseSalary"`
	Deductions           decimal.Decimal `json:"deductions"`
	Bonus                decimal.Decimal `json:"bonus"`
	Commission           decimal.Decimal `json:"commission"`
	NetSalary            decimal.Decimal `json:"netSalary"`
	ExpenseTransactionID string          `json:"expenseTransactionID"`
	Notes                string          `json:"notes"`
	CreatedAt            time.Time       `json:"createdAt"`
}

// CalculateNetSalary returns base - deductions + bonus + commission.
func (p SalaryPayment) CalculateNetSalary() decimal.Decimal {
	return RoundMoney(p.BaseSalary.Sub(p.Deductions).Add(p.Bonus).Add(p.Commission))
}
