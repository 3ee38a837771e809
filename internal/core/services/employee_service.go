package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/project_books/internal/apperrors"
	"github.com/SscSPs/project_books/internal/core/domain"
	portsrepo "github.com/SscSPs/project_books/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/project_books/internal/core/ports/services"
	"github.com/SscSPs/project_books/internal/dto"
	"github.com/google/uuid"
)

type employeeService struct {
	BaseService
	txManager    portsrepo.TransactionManager
	projectRepo  portsrepo.ProjectReader
	accountRepo  portsrepo.AccountReader
	txnRepo      portsrepo.TransactionRepositoryFacade
	employeeRepo portsrepo.EmployeeRepositoryFacade
	reconciler   *BalanceReconciler
}

// NewEmployeeService creates the employee and payroll service.
func NewEmployeeService(repos portsrepo.RepositoryProvider, reconciler *BalanceReconciler, options ...Option) portssvc.EmployeeSvcFacade {
	return &employeeService{
		BaseService:  newBaseService(options...),
		txManager:    repos.TxManager,
		projectRepo:  repos.ProjectRepo,
		accountRepo:  repos.AccountRepo,
		txnRepo:      repos.TxnRepo,
		employeeRepo: repos.EmployeeRepo,
		reconciler:   reconciler,
	}
}

var _ portssvc.EmployeeSvcFacade = (*employeeService)(nil)

func (s *employeeService) CreateEmployee(ctx context.Context, projectID string, req dto.CreateEmployeeRequest) (*domain.Employee, error) {
	if _, err := loadActiveProject(ctx, s.projectRepo, projectID); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.Validationf("employee name is required")
	}
	if req.BaseSalary.IsNegative() {
		return nil, apperrors.Validationf("base salary cannot be negative")
	}
	contract := req.ContractType
	if contract == "" {
		contract = domain.ContractFullTime
	}

	now := s.now()
	employee := domain.Employee{
		EmployeeID:   uuid.NewString(),
		ProjectID:    projectID,
		Name:         name,
		BaseSalary:   domain.RoundMoney(req.BaseSalary),
		ContractType: contract,
		HireDate:     datePtr(req.HireDate),
		IsActive:     true,
		Notes:        req.Notes,
		AuditFields:  domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}
	if err := s.employeeRepo.SaveEmployee(ctx, employee); err != nil {
		s.LogError(ctx, err, "Failed to save employee", slog.String("project_id", projectID))
		return nil, fmt.Errorf("failed to save employee: %w", err)
	}
	s.LogInfo(ctx, "Employee created", slog.String("project_id", projectID), slog.String("employee_id", employee.EmployeeID))
	return &employee, nil
}

func (s *employeeService) GetEmployee(ctx context.Context, projectID string, employeeID string) (*domain.Employee, error) {
	return loadProjectEmployee(ctx, s.employeeRepo, projectID, employeeID)
}

func (s *employeeService) UpdateEmployee(ctx context.Context, projectID string, employeeID string, req dto.UpdateEmployeeRequest) (*domain.Employee, error) {
	var updated *domain.Employee
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		employee, err := loadProjectEmployee(ctx, s.employeeRepo, projectID, employeeID)
		if err != nil {
			return err
		}
		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				return apperrors.Validationf("employee name cannot be empty")
			}
			employee.Name = name
		}
		if req.BaseSalary != nil {
			if req.BaseSalary.IsNegative() {
				return apperrors.Validationf("base salary cannot be negative")
			}
			employee.BaseSalary = domain.RoundMoney(*req.BaseSalary)
		}
		if req.ContractType != nil {
			employee.ContractType = *req.ContractType
		}
		if req.HireDate != nil {
			employee.HireDate = datePtr(req.HireDate)
		}
		if req.Notes != nil {
			employee.Notes = *req.Notes
		}
		employee.LastUpdatedAt = s.now()
		if err := s.employeeRepo.UpdateEmployee(ctx, *employee); err != nil {
			return fmt.Errorf("failed to update employee: %w", err)
		}
		updated = employee
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to update employee", slog.String("employee_id", employeeID))
		return nil, err
	}
	return updated, nil
}

func (s *employeeService) DeactivateEmployee(ctx context.Context, projectID string, employeeID string) error {
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		employee, err := loadProjectEmployee(ctx, s.employeeRepo, projectID, employeeID)
		if err != nil {
			return err
		}
		employee.IsActive = false
		employee.LastUpdatedAt = s.now()
		return s.employeeRepo.UpdateEmployee(ctx, *employee)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to deactivate employee", slog.String("employee_id", employeeID))
		return err
	}
	s.LogInfo(ctx, "Employee deactivated", slog.String("project_id", projectID), slog.String("employee_id", employeeID))
	return nil
}

func (s *employeeService) ListEmployees(ctx context.Context, projectID string) ([]domain.Employee, error) {
	if _, err := loadActiveProject(ctx, s.projectRepo, projectID); err != nil {
		return nil, err
	}
	return s.employeeRepo.ListEmployees(ctx, projectID, true)
}

// PaySalary books a payroll run. The salary payment, its operating-phase
// expense and the account reconciliation commit together or not at all.
func (s *employeeService) PaySalary(ctx context.Context, projectID string, employeeID string, req dto.PaySalaryRequest) (*dto.SalaryPaymentResponse, error) {
	var resp dto.SalaryPaymentResponse
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := loadActiveProject(ctx, s.projectRepo, projectID); err != nil {
			return err
		}
		employee, err := loadProjectEmployee(ctx, s.employeeRepo, projectID, employeeID)
		if err != nil {
			return err
		}
		if !employee.IsActive {
			return apperrors.Validationf("employee %s is inactive", employeeID)
		}
		if _, err := loadProjectAccount(ctx, s.accountRepo, projectID, req.AccountID, true); err != nil {
			return err
		}

		categoryID, err := s.salaryCategory(ctx, req.CategoryID)
		if err != nil {
			return err
		}

		now := s.now()
		payment := domain.SalaryPayment{
			PaymentID:   uuid.NewString(),
			EmployeeID:  employeeID,
			PaymentDate: dateOr(req.PaymentDate, s.today()),
			BaseSalary:  employee.BaseSalary,
			Deductions:  domain.RoundMoney(req.Deductions),
			Bonus:       domain.RoundMoney(req.Bonus),
			Commission:  domain.RoundMoney(req.Commission),
			Notes:       req.Notes,
			CreatedAt:   now,
		}
		if req.BaseSalary != nil {
			payment.BaseSalary = domain.RoundMoney(*req.BaseSalary)
		}
		payment.NetSalary = payment.CalculateNetSalary()
		if err := requirePositive("net salary", payment.NetSalary); err != nil {
			return err
		}

		notes := "Salary " + employee.Name
		if req.Notes != "" {
			notes += " - " + req.Notes
		}
		expense := domain.ExpenseTransaction{
			TransactionID:   uuid.NewString(),
			ProjectID:       projectID,
			AccountID:       req.AccountID,
			CategoryID:      categoryID,
			Amount:          payment.NetSalary,
			TransactionDate: payment.PaymentDate,
			Phase:           domain.PhaseOperating,
			IsSalary:        true,
			EmployeeID:      &employee.EmployeeID,
			Notes:           notes,
			AuditFields:     domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
		}
		payment.ExpenseTransactionID = expense.TransactionID

		if err := s.txnRepo.SaveExpense(ctx, expense); err != nil {
			return fmt.Errorf("failed to save salary expense: %w", err)
		}
		if err := s.employeeRepo.SaveSalaryPayment(ctx, payment); err != nil {
			return fmt.Errorf("failed to save salary payment: %w", err)
		}
		if err := s.reconciler.Reconcile(ctx, expense.AccountID); err != nil {
			return err
		}
		resp = dto.SalaryPaymentResponse{Payment: payment, Expense: expense}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to pay salary", slog.String("project_id", projectID), slog.String("employee_id", employeeID))
		return nil, err
	}

	s.LogInfo(ctx, "Salary paid",
		slog.String("project_id", projectID),
		slog.String("employee_id", employeeID),
		slog.String("account_id", resp.Expense.AccountID),
		slog.String("net_salary", resp.Payment.NetSalary.String()))
	return &resp, nil
}

// salaryCategory prefers the "salaries" category and falls back to the
// caller's choice when the lookup table has none.
func (s *employeeService) salaryCategory(ctx context.Context, requested *string) (string, error) {
	category, err := s.txnRepo.FindExpenseCategoryByName(ctx, domain.SalaryCategoryName)
	if err == nil {
		return category.CategoryID, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return "", fmt.Errorf("failed to look up salary category: %w", err)
	}
	if requested == nil || *requested == "" {
		return "", apperrors.Validationf("no %q expense category exists; a category id is required", domain.SalaryCategoryName)
	}
	if _, err := s.txnRepo.FindExpenseCategoryByID(ctx, *requested); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", apperrors.Validationf("unknown expense category %s", *requested)
		}
		return "", fmt.Errorf("failed to load expense category: %w", err)
	}
	return *requested, nil
}

func (s *employeeService) ListSalaryPayments(ctx context.Context, projectID string, employeeID string) ([]domain.SalaryPayment, error) {
	if _, err := loadProjectEmployee(ctx, s.employeeRepo, projectID, employeeID); err != nil {
		return nil, err
	}
	return s.employeeRepo.ListSalaryPayments(ctx, employeeID)
}
