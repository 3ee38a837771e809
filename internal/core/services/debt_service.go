package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/SscSPs/project_books/internal/apperrors"
	"github.com/SscSPs/project_books/internal/core/domain"
	portsrepo "github.com/SscSPs/project_books/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/project_books/internal/core/ports/services"
	"github.com/SscSPs/project_books/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type debtService struct {
	BaseService
	txManager   portsrepo.TransactionManager
	projectRepo portsrepo.ProjectReader
	accountRepo portsrepo.AccountReader
	debtRepo    portsrepo.DebtRepositoryFacade
	reconciler  *BalanceReconciler
}

// NewDebtService creates the debt service.
func NewDebtService(repos portsrepo.RepositoryProvider, reconciler *BalanceReconciler, options ...Option) portssvc.DebtSvcFacade {
	return &debtService{
		BaseService: newBaseService(options...),
		txManager:   repos.TxManager,
		projectRepo: repos.ProjectRepo,
		accountRepo: repos.AccountRepo,
		debtRepo:    repos.DebtRepo,
		reconciler:  reconciler,
	}
}

var _ portssvc.DebtSvcFacade = (*debtService)(nil)

func (s *debtService) CreateDebt(ctx context.Context, projectID string, req dto.CreateDebtRequest) (*domain.Debt, error) {
	if !req.DebtType.Valid() {
		return nil, apperrors.Validationf("unknown debt type %q", req.DebtType)
	}
	person := strings.TrimSpace(req.PersonName)
	if person == "" {
		return nil, apperrors.Validationf("person name is required")
	}
	if err := requirePositive("amount", req.Amount); err != nil {
		return nil, err
	}

	var created domain.Debt
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := loadActiveProject(ctx, s.projectRepo, projectID); err != nil {
			return err
		}
		accountID := optionalID(req.AccountID)
		if accountID != nil {
			if _, err := loadProjectAccount(ctx, s.accountRepo, projectID, *accountID, true); err != nil {
				return err
			}
		}

		now := s.now()
		amount := domain.RoundMoney(req.Amount)
		created = domain.Debt{
			DebtID:          uuid.NewString(),
			ProjectID:       projectID,
			DebtType:        req.DebtType,
			PersonName:      person,
			OriginalAmount:  amount,
			RemainingAmount: amount,
			DueDate:         datePtr(req.DueDate),
			AccountID:       accountID,
			Notes:           req.Notes,
			AuditFields:     domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
		}
		created.UpdateStatus()
		if err := s.debtRepo.SaveDebt(ctx, created); err != nil {
			return fmt.Errorf("failed to save debt: %w", err)
		}
		if accountID == nil {
			return nil
		}
		return s.reconciler.Reconcile(ctx, *accountID)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create debt", slog.String("project_id", projectID))
		return nil, err
	}

	s.LogInfo(ctx, "Debt recorded",
		slog.String("project_id", projectID),
		slog.String("debt_id", created.DebtID),
		slog.String("debt_type", string(created.DebtType)),
		slog.String("amount", created.OriginalAmount.String()))
	return &created, nil
}

func (s *debtService) loadDebt(ctx context.Context, projectID, debtID string) (*domain.Debt, error) {
	debt, err := s.debtRepo.FindDebtByID(ctx, debtID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFoundf("debt %s", debtID)
		}
		return nil, fmt.Errorf("failed to load debt: %w", err)
	}
	if debt.ProjectID != projectID {
		return nil, apperrors.NotFoundf("debt %s", debtID)
	}
	return debt, nil
}

func (s *debtService) GetDebt(ctx context.Context, projectID string, debtID string) (*dto.DebtDetailResponse, error) {
	debt, err := s.loadDebt(ctx, projectID, debtID)
	if err != nil {
		return nil, err
	}
	payments, err := s.debtRepo.ListDebtPayments(ctx, debtID)
	if err != nil {
		return nil, fmt.Errorf("failed to list debt payments: %w", err)
	}
	if payments == nil {
		payments = []domain.DebtPayment{}
	}
	return &dto.DebtDetailResponse{Debt: *debt, Payments: payments}, nil
}

func (s *debtService) UpdateDebt(ctx context.Context, projectID string, debtID string, req dto.UpdateDebtRequest) (*domain.Debt, error) {
	var updated *domain.Debt
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		debt, err := s.loadDebt(ctx, projectID, debtID)
		if err != nil {
			return err
		}
		if req.PersonName != nil {
			person := strings.TrimSpace(*req.PersonName)
			if person == "" {
				return apperrors.Validationf("person name cannot be empty")
			}
			debt.PersonName = person
		}
		if req.DueDate != nil {
			debt.DueDate = datePtr(req.DueDate)
		}
		if req.Notes != nil {
			debt.Notes = *req.Notes
		}
		debt.LastUpdatedAt = s.now()
		if err := s.debtRepo.UpdateDebt(ctx, *debt); err != nil {
			return fmt.Errorf("failed to update debt: %w", err)
		}
		updated = debt
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to update debt", slog.String("debt_id", debtID))
		return nil, err
	}
	return updated, nil
}

// RecordPayment settles part or all of a debt. The payment account defaults
// to the debt's own account; a payment with no account moves no cash.
func (s *debtService) RecordPayment(ctx context.Context, projectID string, debtID string, req dto.DebtPaymentRequest) (*domain.Debt, error) {
	var updated *domain.Debt
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		debt, err := s.loadDebt(ctx, projectID, debtID)
		if err != nil {
			return err
		}

		accountID := optionalID(req.AccountID)
		if accountID == nil {
			accountID = optionalID(debt.AccountID)
		}
		if accountID != nil {
			if _, err := loadProjectAccount(ctx, s.accountRepo, projectID, *accountID, true); err != nil {
				return err
			}
		}

		amount := domain.RoundMoney(req.Amount)
		if err := debt.RecordPayment(amount); err != nil {
			return err
		}

		now := s.now()
		payment := domain.DebtPayment{
			PaymentID:   uuid.NewString(),
			DebtID:      debtID,
			Amount:      amount,
			PaymentDate: dateOr(req.PaymentDate, s.today()),
			AccountID:   accountID,
			Notes:       req.Notes,
			CreatedAt:   now,
		}
		if err := s.debtRepo.SaveDebtPayment(ctx, payment); err != nil {
			return fmt.Errorf("failed to save debt payment: %w", err)
		}
		debt.LastUpdatedAt = now
		if err := s.debtRepo.UpdateDebt(ctx, *debt); err != nil {
			return fmt.Errorf("failed to update debt: %w", err)
		}
		updated = debt
		if accountID == nil {
			return nil
		}
		return s.reconciler.Reconcile(ctx, *accountID)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to record debt payment", slog.String("debt_id", debtID))
		return nil, err
	}

	s.LogInfo(ctx, "Debt payment recorded",
		slog.String("project_id", projectID),
		slog.String("debt_id", debtID),
		slog.String("status", string(updated.PaymentStatus)),
		slog.String("remaining", updated.RemainingAmount.String()))
	return updated, nil
}

// DeleteDebt removes the debt and its payments, then reconciles the debt's
// account and every account a payment touched.
func (s *debtService) DeleteDebt(ctx context.Context, projectID string, debtID string) error {
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		debt, err := s.loadDebt(ctx, projectID, debtID)
		if err != nil {
			return err
		}
		payments, err := s.debtRepo.ListDebtPayments(ctx, debtID)
		if err != nil {
			return fmt.Errorf("failed to list debt payments: %w", err)
		}

		affected := make([]string, 0, len(payments)+1)
		if debt.AccountID != nil {
			affected = append(affected, *debt.AccountID)
		}
		for _, p := range payments {
			if p.AccountID != nil {
				affected = append(affected, *p.AccountID)
			}
		}

		if err := s.debtRepo.DeleteDebt(ctx, debtID); err != nil {
			return fmt.Errorf("failed to delete debt: %w", err)
		}
		return s.reconciler.Reconcile(ctx, affected...)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to delete debt", slog.String("debt_id", debtID))
		return err
	}
	s.LogInfo(ctx, "Debt deleted", slog.String("project_id", projectID), slog.String("debt_id", debtID))
	return nil
}

func (s *debtService) ListDebts(ctx context.Context, projectID string, params dto.ListDebtsParams) (*dto.DebtListResponse, error) {
	if _, err := loadActiveProject(ctx, s.projectRepo, projectID); err != nil {
		return nil, err
	}
	filter := portsrepo.DebtListFilter{ProjectID: projectID}
	if params.Type != "" {
		debtType := domain.DebtType(params.Type)
		if !debtType.Valid() {
			return nil, apperrors.Validationf("unknown debt type %q", params.Type)
		}
		filter.DebtType = &debtType
	}
	switch status := domain.PaymentStatus(params.Status); status {
	case "", "all":
	case domain.StatusUnpaid, domain.StatusPartial, domain.StatusPaid:
		filter.Status = &status
	default:
		return nil, apperrors.Validationf("unknown debt status %q", params.Status)
	}

	debts, err := s.debtRepo.ListDebts(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list debts", slog.String("project_id", projectID))
		return nil, fmt.Errorf("failed to list debts: %w", err)
	}

	resp := &dto.DebtListResponse{Debts: debts, TotalOwedToUs: decimal.Zero, TotalOwedByUs: decimal.Zero}
	if resp.Debts == nil {
		resp.Debts = []domain.Debt{}
	}
	for _, d := range debts {
		if d.IsPaid {
			continue
		}
		switch d.DebtType {
		case domain.DebtOwedToUs:
			resp.TotalOwedToUs = resp.TotalOwedToUs.Add(d.RemainingAmount)
		case domain.DebtOwedByUs:
			resp.TotalOwedByUs = resp.TotalOwedByUs.Add(d.RemainingAmount)
		}
	}
	return resp, nil
}

func (s *debtService) ListUpcoming(ctx context.Context, projectID string, days int) ([]domain.Debt, error) {
	if days <= 0 {
		days = s.DebtWarningDays
	}
	if _, err := loadActiveProject(ctx, s.projectRepo, projectID); err != nil {
		return nil, err
	}
	return upcomingDebts(ctx, s.debtRepo, projectID, s.today(), days)
}

func (s *debtService) ListOverdue(ctx context.Context, projectID string) ([]domain.Debt, error) {
	debts, err := s.unpaidDebts(ctx, projectID, nil)
	if err != nil {
		return nil, err
	}
	today := s.today()
	overdue := make([]domain.Debt, 0)
	for _, d := range debts {
		if d.IsOverdue(today) {
			overdue = append(overdue, d)
		}
	}
	sortByDueDate(overdue)
	return overdue, nil
}

func (s *debtService) unpaidDebts(ctx context.Context, projectID string, debtType *domain.DebtType) ([]domain.Debt, error) {
	if _, err := loadActiveProject(ctx, s.projectRepo, projectID); err != nil {
		return nil, err
	}
	return listUnpaidDebts(ctx, s.debtRepo, projectID, debtType)
}

func listUnpaidDebts(ctx context.Context, repo portsrepo.DebtRepositoryFacade, projectID string, debtType *domain.DebtType) ([]domain.Debt, error) {
	debts, err := repo.ListDebts(ctx, portsrepo.DebtListFilter{ProjectID: projectID, DebtType: debtType})
	if err != nil {
		return nil, fmt.Errorf("failed to list debts: %w", err)
	}
	unpaid := debts[:0]
	for _, d := range debts {
		if !d.IsPaid {
			unpaid = append(unpaid, d)
		}
	}
	return unpaid, nil
}

// upcomingDebts lists unpaid debts owed by the project due within days days,
// soonest first.
func upcomingDebts(ctx context.Context, repo portsrepo.DebtRepositoryFacade, projectID string, today time.Time, days int) ([]domain.Debt, error) {
	byUs := domain.DebtOwedByUs
	debts, err := listUnpaidDebts(ctx, repo, projectID, &byUs)
	if err != nil {
		return nil, err
	}
	upcoming := make([]domain.Debt, 0)
	for _, d := range debts {
		if d.IsUpcoming(today, days) {
			upcoming = append(upcoming, d)
		}
	}
	sortByDueDate(upcoming)
	return upcoming, nil
}

// sortByDueDate orders dated debts by due date; callers only pass dated debts.
func sortByDueDate(debts []domain.Debt) {
	sort.SliceStable(debts, func(i, j int) bool {
		return debts[i].DueDate.Before(*debts[j].DueDate)
	})
}
