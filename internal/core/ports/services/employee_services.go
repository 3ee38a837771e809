package services

import (
	"context"

	"github.com/SscSPs/project_books/internal/core/domain"
	"github.com/SscSPs/project_books/internal/dto"
)

// EmployeeSvcFacade manages employees and payroll.
type EmployeeSvcFacade interface {
	CreateEmployee(ctx context.Context, projectID string, req dto.CreateEmployeeRequest) (*domain.Employee, error)
	GetEmployee(ctx context.Context, projectID string, employeeID string) (*domain.Employee, error)
	UpdateEmployee(ctx context.Context, projectID string, employeeID string, req dto.UpdateEmployeeRequest) (*domain.Employee, error)
	DeactivateEmployee(ctx context.Context, projectID string, employeeID string) error
	ListEmployees(ctx context.Context, projectID string) ([]domain.Employee, error)

	// PaySalary records the payment, its expense and the balance change atomically.
	PaySalary(ctx context.Context, projectID string, employeeID string, req dto.PaySalaryRequest) (*dto.SalaryPaymentResponse, error)
	ListSalaryPayments(ctx context.Context, projectID string, employeeID string) ([]domain.SalaryPayment, error)
}
