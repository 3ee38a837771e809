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
	"github.com/SscSPs/project_books/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type accountService struct {
	BaseService
	txManager   portsrepo.TransactionManager
	projectRepo portsrepo.ProjectReader
	accountRepo portsrepo.AccountRepositoryFacade
	reconciler  *BalanceReconciler
}

// NewAccountService creates the account service.
func NewAccountService(repos portsrepo.RepositoryProvider, reconciler *BalanceReconciler, options ...Option) portssvc.AccountSvcFacade {
	return &accountService{
		BaseService: newBaseService(options...),
		txManager:   repos.TxManager,
		projectRepo: repos.ProjectRepo,
		accountRepo: repos.AccountRepo,
		reconciler:  reconciler,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, projectID string, req dto.CreateAccountRequest) (*domain.Account, error) {
	if _, err := loadActiveProject(ctx, s.projectRepo, projectID); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.Validationf("account name is required")
	}
	if err := s.checkAccountType(ctx, req.AccountTypeID); err != nil {
		return nil, err
	}

	now := s.now()
	initial := domain.RoundMoney(req.InitialBalance)
	account := domain.Account{
		AccountID:      uuid.NewString(),
		ProjectID:      projectID,
		Name:           name,
		AccountTypeID:  req.AccountTypeID,
		InitialBalance: initial,
		CurrentBalance: initial,
		IsActive:       true,
		AuditFields:    domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}
	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account", slog.String("project_id", projectID))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	s.LogInfo(ctx, "Account created", slog.String("project_id", projectID), slog.String("account_id", account.AccountID))
	return &account, nil
}

func (s *accountService) checkAccountType(ctx context.Context, accountTypeID string) error {
	if accountTypeID == "" {
		return apperrors.Validationf("account type is required")
	}
	if _, err := s.accountRepo.FindAccountTypeByID(ctx, accountTypeID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.Validationf("unknown account type %s", accountTypeID)
		}
		return fmt.Errorf("failed to load account type: %w", err)
	}
	return nil
}

func (s *accountService) GetAccountByID(ctx context.Context, projectID string, accountID string) (*domain.Account, error) {
	return loadProjectAccount(ctx, s.accountRepo, projectID, accountID, false)
}

func (s *accountService) ListAccounts(ctx context.Context, projectID string) ([]domain.Account, error) {
	if _, err := loadActiveProject(ctx, s.projectRepo, projectID); err != nil {
		return nil, err
	}
	accounts, err := s.accountRepo.ListAccounts(ctx, projectID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", slog.String("project_id", projectID))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

func (s *accountService) ListAccountTypes(ctx context.Context) ([]domain.AccountType, error) {
	return s.accountRepo.ListAccountTypes(ctx)
}

func (s *accountService) UpdateAccount(ctx context.Context, projectID string, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error) {
	var updated *domain.Account
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		account, err := loadProjectAccount(ctx, s.accountRepo, projectID, accountID, true)
		if err != nil {
			return err
		}
		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				return apperrors.Validationf("account name cannot be empty")
			}
			account.Name = name
		}
		if req.AccountTypeID != nil {
			if err := s.checkAccountType(ctx, *req.AccountTypeID); err != nil {
				return err
			}
			account.AccountTypeID = *req.AccountTypeID
		}
		account.LastUpdatedAt = s.now()
		if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
			return fmt.Errorf("failed to update account: %w", err)
		}
		updated = account
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, err
	}
	return updated, nil
}

func (s *accountService) DeactivateAccount(ctx context.Context, projectID string, accountID string) error {
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := loadProjectAccount(ctx, s.accountRepo, projectID, accountID, true); err != nil {
			return err
		}
		return s.accountRepo.DeactivateAccount(ctx, accountID, s.now())
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to deactivate account", slog.String("account_id", accountID))
		return err
	}
	s.LogInfo(ctx, "Account deactivated", slog.String("project_id", projectID), slog.String("account_id", accountID))
	return nil
}

// GetAccountBalance derives the balance on read; the stored current balance is
// reported alongside for comparison.
func (s *accountService) GetAccountBalance(ctx context.Context, projectID string, accountID string) (*dto.AccountBalanceResponse, error) {
	account, err := loadProjectAccount(ctx, s.accountRepo, projectID, accountID, false)
	if err != nil {
		return nil, err
	}
	movements, err := s.accountRepo.ListMovements(ctx, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load account movements", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to load account movements: %w", err)
	}

	breakdown := accounting.Breakdown(account.InitialBalance, movements)
	resp := &dto.AccountBalanceResponse{
		AccountID:      accountID,
		InitialBalance: account.InitialBalance,
		Balance:        breakdown.Balance,
		CachedBalance:  account.CurrentBalance,
		ByKind:         make(map[string]decimal.Decimal, len(breakdown.ByKind)),
	}
	for kind, total := range breakdown.ByKind {
		resp.ByKind[kind.String()] = total
	}
	if !breakdown.Balance.Equal(account.CurrentBalance) {
		s.GetLogger(ctx).Warn("Cached balance differs from history",
			slog.String("account_id", accountID),
			slog.String("cached", account.CurrentBalance.String()),
			slog.String("derived", breakdown.Balance.String()))
	}
	return resp, nil
}

func (s *accountService) RebuildBalances(ctx context.Context, projectID string) error {
	if _, err := loadActiveProject(ctx, s.projectRepo, projectID); err != nil {
		return err
	}
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		accounts, err := s.accountRepo.ListAccounts(ctx, projectID)
		if err != nil {
			return fmt.Errorf("failed to list accounts: %w", err)
		}
		ids := make([]string, 0, len(accounts))
		for _, a := range accounts {
			ids = append(ids, a.AccountID)
		}
		return s.reconciler.Reconcile(ctx, ids...)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to rebuild balances", slog.String("project_id", projectID))
		return err
	}
	s.LogInfo(ctx, "Balances rebuilt", slog.String("project_id", projectID))
	return nil
}
