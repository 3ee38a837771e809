package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/project_books/internal/apperrors"
	"github.com/SscSPs/project_books/internal/core/domain"
	portsrepo "github.com/SscSPs/project_books/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/project_books/internal/core/ports/services"
	"github.com/SscSPs/project_books/internal/dto"
	"github.com/SscSPs/project_books/internal/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrProjectHasDependents is returned when deactivating a project that still
// owns accounts or employees.
var ErrProjectHasDependents = fmt.Errorf("%w: project still has accounts or employees", apperrors.ErrValidation)

type projectService struct {
	BaseService
	txManager    portsrepo.TransactionManager
	projectRepo  portsrepo.ProjectRepositoryFacade
	ledgerRepo   portsrepo.LedgerQueryRepository
	employeeRepo portsrepo.EmployeeRepositoryFacade
	accountRepo  portsrepo.AccountReader
}

// NewProjectService creates the project service.
func NewProjectService(repos portsrepo.RepositoryProvider, options ...Option) portssvc.ProjectSvcFacade {
	return &projectService{
		BaseService:  newBaseService(options...),
		txManager:    repos.TxManager,
		projectRepo:  repos.ProjectRepo,
		ledgerRepo:   repos.LedgerRepo,
		employeeRepo: repos.EmployeeRepo,
		accountRepo:  repos.AccountRepo,
	}
}

var _ portssvc.ProjectSvcFacade = (*projectService)(nil)

func (s *projectService) CreateProject(ctx context.Context, req dto.CreateProjectRequest) (*domain.Project, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.Validationf("project name is required")
	}
	phase := req.Phase
	if phase == "" {
		phase = domain.PhaseBuilding
	}
	if !phase.Valid() {
		return nil, apperrors.Validationf("unknown phase %q", phase)
	}
	if req.OwnerCapital.IsNegative() {
		return nil, apperrors.Validationf("owner capital cannot be negative")
	}

	now := s.now()
	project := domain.Project{
		ProjectID:    uuid.NewString(),
		Name:         name,
		NameAlt:      strings.TrimSpace(req.NameAlt),
		Phase:        phase,
		OwnerCapital: domain.RoundMoney(req.OwnerCapital),
		IsActive:     true,
		AuditFields:  domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}
	if req.PIN != nil && *req.PIN != "" {
		hash, err := utils.HashPIN(*req.PIN)
		if err != nil {
			return nil, fmt.Errorf("failed to hash pin: %w", err)
		}
		project.PINHash = hash
	}

	if err := s.projectRepo.SaveProject(ctx, project); err != nil {
		s.LogError(ctx, err, "Failed to save project", slog.String("project_name", name))
		return nil, fmt.Errorf("failed to save project: %w", err)
	}

	s.LogInfo(ctx, "Project created", slog.String("project_id", project.ProjectID), slog.String("phase", string(phase)))
	return &project, nil
}

func (s *projectService) GetProject(ctx context.Context, projectID string) (*domain.Project, error) {
	return loadActiveProject(ctx, s.projectRepo, projectID)
}

func (s *projectService) ListProjects(ctx context.Context) ([]domain.Project, error) {
	projects, err := s.projectRepo.ListProjects(ctx, true)
	if err != nil {
		s.LogError(ctx, err, "Failed to list projects")
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

func (s *projectService) UpdateProject(ctx context.Context, projectID string, req dto.UpdateProjectRequest) (*domain.Project, error) {
	var updated *domain.Project
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		project, err := loadActiveProject(ctx, s.projectRepo, projectID)
		if err != nil {
			return err
		}
		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				return apperrors.Validationf("project name cannot be empty")
			}
			project.Name = name
		}
		if req.NameAlt != nil {
			project.NameAlt = strings.TrimSpace(*req.NameAlt)
		}
		if req.Phase != nil {
			if !req.Phase.Valid() {
				return apperrors.Validationf("unknown phase %q", *req.Phase)
			}
			project.Phase = *req.Phase
		}
		if req.OwnerCapital != nil {
			if req.OwnerCapital.IsNegative() {
				return apperrors.Validationf("owner capital cannot be negative")
			}
			project.OwnerCapital = domain.RoundMoney(*req.OwnerCapital)
		}
		project.LastUpdatedAt = s.now()
		if err := s.projectRepo.UpdateProject(ctx, *project); err != nil {
			return fmt.Errorf("failed to update project: %w", err)
		}
		updated = project
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to update project", slog.String("project_id", projectID))
		return nil, err
	}
	s.LogInfo(ctx, "Project updated", slog.String("project_id", projectID))
	return updated, nil
}

func (s *projectService) DeactivateProject(ctx context.Context, projectID string) error {
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		project, err := loadActiveProject(ctx, s.projectRepo, projectID)
		if err != nil {
			return err
		}
		accounts, employees, err := s.projectRepo.CountProjectDependents(ctx, projectID)
		if err != nil {
			return fmt.Errorf("failed to count project dependents: %w", err)
		}
		if accounts > 0 || employees > 0 {
			return fmt.Errorf("%w (accounts: %d, employees: %d)", ErrProjectHasDependents, accounts, employees)
		}
		project.IsActive = false
		project.LastUpdatedAt = s.now()
		return s.projectRepo.UpdateProject(ctx, *project)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to deactivate project", slog.String("project_id", projectID))
		return err
	}
	s.LogInfo(ctx, "Project deactivated", slog.String("project_id", projectID))
	return nil
}

func (s *projectService) SetPIN(ctx context.Context, projectID string, pin string) error {
	return s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		project, err := loadActiveProject(ctx, s.projectRepo, projectID)
		if err != nil {
			return err
		}
		project.PINHash = ""
		if pin != "" {
			hash, err := utils.HashPIN(pin)
			if err != nil {
				return fmt.Errorf("failed to hash pin: %w", err)
			}
			project.PINHash = hash
		}
		project.LastUpdatedAt = s.now()
		if err := s.projectRepo.UpdateProject(ctx, *project); err != nil {
			return fmt.Errorf("failed to store pin: %w", err)
		}
		s.LogInfo(ctx, "Project PIN changed", slog.String("project_id", projectID), slog.Bool("has_pin", project.HasPIN()))
		return nil
	})
}

func (s *projectService) VerifyPIN(ctx context.Context, projectID string, pin string) error {
	project, err := loadActiveProject(ctx, s.projectRepo, projectID)
	if err != nil {
		return err
	}
	if !project.HasPIN() {
		return nil
	}
	if !utils.CheckPINHash(pin, project.PINHash) {
		s.LogInfo(ctx, "PIN verification failed", slog.String("project_id", projectID))
		return fmt.Errorf("%w: wrong pin", apperrors.ErrUnauthorized)
	}
	return nil
}

func (s *projectService) GetProjectSummary(ctx context.Context, projectID string) (*domain.ProjectSummary, error) {
	if _, err := loadActiveProject(ctx, s.projectRepo, projectID); err != nil {
		return nil, err
	}

	total, err := s.ledgerRepo.SumAccountBalances(ctx, projectID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to sum balances: %w", err)
	}
	accounts, err := s.accountRepo.ListAccounts(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	employees, err := s.employeeRepo.ListEmployees(ctx, projectID, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	toUs, err := s.unpaidDebts(ctx, projectID, domain.DebtOwedToUs)
	if err != nil {
		return nil, err
	}
	byUs, err := s.unpaidDebts(ctx, projectID, domain.DebtOwedByUs)
	if err != nil {
		return nil, err
	}

	return &domain.ProjectSummary{
		ProjectID:     projectID,
		TotalBalance:  total,
		EmployeeCount: len(employees),
		DebtsToUs:     toUs,
		DebtsByUs:     byUs,
		AccountCount:  len(accounts),
	}, nil
}

func (s *projectService) unpaidDebts(ctx context.Context, projectID string, debtType domain.DebtType) (decimal.Decimal, error) {
	unpaid := false
	total, err := s.ledgerRepo.SumAmount(ctx, domain.SetDebtOutstanding, domain.LedgerFilter{ProjectID: projectID, DebtType: &debtType, Paid: &unpaid})
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum %s debts: %w", debtType, err)
	}
	return total, nil
}
