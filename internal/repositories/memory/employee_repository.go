package memory

import (
	"context"
	"sort"

	"github.com/SscSPs/project_books/internal/apperrors"
	"github.com/SscSPs/project_books/internal/core/domain"
)

func (s *Store) SaveEmployee(ctx context.Context, employee domain.Employee) error {
	defer s.lock(ctx)()
	if _, ok := s.data.employees[employee.EmployeeID]; ok {
		return apperrors.ErrDuplicate
	}
	s.data.employees[employee.EmployeeID] = employee
	return nil
}

func (s *Store) FindEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	defer s.lock(ctx)()
	e, ok := s.data.employees[employeeID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &e, nil
}

func (s *Store) UpdateEmployee(ctx context.Context, employee domain.Employee) error {
	defer s.lock(ctx)()
	if _, ok := s.data.employees[employee.EmployeeID]; !ok {
		return apperrors.ErrNotFound
	}
	s.data.employees[employee.EmployeeID] = employee
	return nil
}

func (s *Store) ListEmployees(ctx context.Context, projectID string, activeOnly bool) ([]domain.Employee, error) {
	defer s.lock(ctx)()
	var out []domain.Employee
	for _, e := range s.data.employees {
		if e.ProjectID != projectID || (activeOnly && !e.IsActive) {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].EmployeeID < out[j].EmployeeID
	})
	return out, nil
}

func (s *Store) SaveSalaryPayment(ctx context.Context, payment domain.SalaryPayment) error {
	defer s.lock(ctx)()
	if _, ok := s.data.salaryPayments[payment.PaymentID]; ok {
		return apperrors.ErrDuplicate
	}
	if _, ok := s.data.expenses[payment.ExpenseTransactionID]; !ok {
		return apperrors.NotFoundf("expense transaction %s", payment.ExpenseTransactionID)
	}
	s.data.salaryPayments[payment.PaymentID] = payment
	return nil
}

func (s *Store) ListSalaryPayments(ctx context.Context, employeeID string) ([]domain.SalaryPayment, error) {
	defer s.lock(ctx)()
	var out []domain.SalaryPayment
	for _, p := range s.data.salaryPayments {
		if p.EmployeeID == employeeID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].PaymentDate.Equal(out[j].PaymentDate) {
			return out[i].PaymentDate.After(out[j].PaymentDate)
		}
		return out[i].PaymentID > out[j].PaymentID
	})
	return out, nil
}
