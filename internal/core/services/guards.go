package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/project_books/internal/apperrors"
	"github.com/SscSPs/project_books/internal/core/domain"
	portsrepo "github.com/SscSPs/project_books/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// ErrProjectIDRequired is returned when an operation is called without a project scope.
var ErrProjectIDRequired = fmt.Errorf("%w: project id is required", apperrors.ErrValidation)

// loadActiveProject fetches a project, treating a deactivated one as missing.
func loadActiveProject(ctx context.Context, repo portsrepo.ProjectReader, projectID string) (*domain.Project, error) {
	if projectID == "" {
		return nil, ErrProjectIDRequired
	}
	project, err := repo.FindProjectByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFoundf("project %s", projectID)
		}
		return nil, fmt.Errorf("failed to load project: %w", err)
	}
	if !project.IsActive {
		return nil, apperrors.NotFoundf("project %s", projectID)
	}
	return project, nil
}

// loadProjectAccount fetches an account and checks it belongs to the project.
// A cross-project account is reported as not found. With forWrite set, an
// inactive account is a validation error.
func loadProjectAccount(ctx context.Context, repo portsrepo.AccountReader, projectID, accountID string, forWrite bool) (*domain.Account, error) {
	if accountID == "" {
		return nil, apperrors.Validationf("account id is required")
	}
	account, err := repo.FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFoundf("account %s", accountID)
		}
		return nil, fmt.Errorf("failed to load account: %w", err)
	}
	if account.ProjectID != projectID {
		return nil, apperrors.NotFoundf("account %s", accountID)
	}
	if forWrite && !account.IsActive {
		return nil, apperrors.Validationf("account %s is inactive", accountID)
	}
	return account, nil
}

// loadProjectEmployee fetches an employee and checks it belongs to the project.
func loadProjectEmployee(ctx context.Context, repo portsrepo.EmployeeRepositoryFacade, projectID, employeeID string) (*domain.Employee, error) {
	employee, err := repo.FindEmployeeByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFoundf("employee %s", employeeID)
		}
		return nil, fmt.Errorf("failed to load employee: %w", err)
	}
	if employee.ProjectID != projectID {
		return nil, apperrors.NotFoundf("employee %s", employeeID)
	}
	return employee, nil
}

// requirePositive checks the stored (rounded) value, so sub-cent inputs are rejected.
func requirePositive(field string, amount decimal.Decimal) error {
	if !domain.RoundMoney(amount).IsPositive() {
		return apperrors.Validationf("%s must be greater than zero", field)
	}
	return nil
}
