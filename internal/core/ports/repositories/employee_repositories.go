package repositories

import (
	"context"

	"github.com/SscSPs/project_books/internal/core/domain"
)

// EmployeeRepositoryFacade stores employees and their salary payments.
type EmployeeRepositoryFacade interface {
	SaveEmployee(ctx context.Context, employee domain.Employee) error
	FindEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error)
	UpdateEmployee(ctx context.Context, employee domain.Employee) error
	ListEmployees(ctx context.Context, projectID string, activeOnly bool) ([]domain.Employee, error)

	SaveSalaryPayment(ctx context.Context, payment domain.SalaryPayment) error
	// ListSalaryPayments returns an employee's payments, newest first.
	ListSalaryPayments(ctx context.Context, employeeID string) ([]domain.SalaryPayment, error)
}
