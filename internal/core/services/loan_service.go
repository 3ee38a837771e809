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
	"github.com/shopspring/decimal"
)

type loanService struct {
	BaseService
	txManager   portsrepo.TransactionManager
	projectRepo portsrepo.ProjectReader
	accountRepo portsrepo.AccountReader
	loanRepo    portsrepo.LoanRepositoryFacade
	reconciler  *BalanceReconciler
}

// NewLoanService creates the loan service.
func NewLoanService(repos portsrepo.RepositoryProvider, reconciler *BalanceReconciler, options ...Option) portssvc.LoanSvcFacade {
	return &loanService{
		BaseService: newBaseService(options...),
		txManager:   repos.TxManager,
		projectRepo: repos.ProjectRepo,
		accountRepo: repos.AccountRepo,
		loanRepo:    repos.LoanRepo,
		reconciler:  reconciler,
	}
}

var _ portssvc.LoanSvcFacade = (*loanService)(nil)

// CreateLoan records borrowed principal and credits it to the receiving account.
func (s *loanService) CreateLoan(ctx context.Context, projectID string, req dto.CreateLoanRequest) (*domain.Loan, error) {
	lender := strings.TrimSpace(req.LenderName)
	if lender == "" {
		return nil, apperrors.Validationf("lender name is required")
	}
	if err := requirePositive("amount", req.Amount); err != nil {
		return nil, err
	}
	if req.InterestRate.IsNegative() {
		return nil, apperrors.Validationf("interest rate cannot be negative")
	}

	var created domain.Loan
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := loadActiveProject(ctx, s.projectRepo, projectID); err != nil {
			return err
		}
		if _, err := loadProjectAccount(ctx, s.accountRepo, projectID, req.AccountID, true); err != nil {
			return err
		}

		now := s.now()
		amount := domain.RoundMoney(req.Amount)
		created = domain.Loan{
			LoanID:          uuid.NewString(),
			ProjectID:       projectID,
			LenderName:      lender,
			Amount:          amount,
			RemainingAmount: amount,
			ReceivedDate:    dateOr(req.ReceivedDate, s.today()),
			DueDate:         datePtr(req.DueDate),
			InterestRate:    domain.RoundMoney(req.InterestRate),
			AccountID:       req.AccountID,
			Notes:           req.Notes,
			AuditFields:     domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
		}
		if err := s.loanRepo.SaveLoan(ctx, created); err != nil {
			return fmt.Errorf("failed to save loan: %w", err)
		}
		return s.reconciler.Reconcile(ctx, created.AccountID)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create loan", slog.String("project_id", projectID))
		return nil, err
	}

	s.LogInfo(ctx, "Loan recorded",
		slog.String("project_id", projectID),
		slog.String("loan_id", created.LoanID),
		slog.String("account_id", created.AccountID),
		slog.String("amount", created.Amount.String()))
	return &created, nil
}

func (s *loanService) loadLoan(ctx context.Context, projectID, loanID string) (*domain.Loan, error) {
	loan, err := s.loanRepo.FindLoanByID(ctx, loanID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFoundf("loan %s", loanID)
		}
		return nil, fmt.Errorf("failed to load loan: %w", err)
	}
	if loan.ProjectID != projectID {
		return nil, apperrors.NotFoundf("loan %s", loanID)
	}
	return loan, nil
}

func (s *loanService) GetLoan(ctx context.Context, projectID string, loanID string) (*dto.LoanDetailResponse, error) {
	loan, err := s.loadLoan(ctx, projectID, loanID)
	if err != nil {
		return nil, err
	}
	payments, err := s.loanRepo.ListLoanPayments(ctx, loanID)
	if err != nil {
		return nil, fmt.Errorf("failed to list loan payments: %w", err)
	}
	if payments == nil {
		payments = []domain.LoanPayment{}
	}
	return &dto.LoanDetailResponse{Loan: *loan, Payments: payments}, nil
}

func (s *loanService) RecordPayment(ctx context.Context, projectID string, loanID string, req dto.LoanPaymentRequest) (*domain.Loan, error) {
	var updated *domain.Loan
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		loan, err := s.loadLoan(ctx, projectID, loanID)
		if err != nil {
			return err
		}
		accountID := loan.AccountID
		if id := optionalID(req.AccountID); id != nil {
			accountID = *id
		}
		if _, err := loadProjectAccount(ctx, s.accountRepo, projectID, accountID, true); err != nil {
			return err
		}

		amount := domain.RoundMoney(req.Amount)
		if err := loan.RecordPayment(amount); err != nil {
			return err
		}

		now := s.now()
		payment := domain.LoanPayment{
			PaymentID:   uuid.NewString(),
			LoanID:      loanID,
			Amount:      amount,
			PaymentDate: dateOr(req.PaymentDate, s.today()),
			AccountID:   accountID,
			Notes:       req.Notes,
			CreatedAt:   now,
		}
		if err := s.loanRepo.SaveLoanPayment(ctx, payment); err != nil {
			return fmt.Errorf("failed to save loan payment: %w", err)
		}
		loan.LastUpdatedAt = now
		if err := s.loanRepo.UpdateLoan(ctx, *loan); err != nil {
			return fmt.Errorf("failed to update loan: %w", err)
		}
		updated = loan
		return s.reconciler.Reconcile(ctx, accountID)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to record loan payment", slog.String("loan_id", loanID))
		return nil, err
	}

	s.LogInfo(ctx, "Loan payment recorded",
		slog.String("project_id", projectID),
		slog.String("loan_id", loanID),
		slog.Bool("is_paid", updated.IsPaid),
		slog.String("remaining", updated.RemainingAmount.String()))
	return updated, nil
}

func (s *loanService) DeleteLoan(ctx context.Context, projectID string, loanID string) error {
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		loan, err := s.loadLoan(ctx, projectID, loanID)
		if err != nil {
			return err
		}
		payments, err := s.loanRepo.ListLoanPayments(ctx, loanID)
		if err != nil {
			return fmt.Errorf("failed to list loan payments: %w", err)
		}
		affected := []string{loan.AccountID}
		for _, p := range payments {
			affected = append(affected, p.AccountID)
		}
		if err := s.loanRepo.DeleteLoan(ctx, loanID); err != nil {
			return fmt.Errorf("failed to delete loan: %w", err)
		}
		return s.reconciler.Reconcile(ctx, affected...)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to delete loan", slog.String("loan_id", loanID))
		return err
	}
	s.LogInfo(ctx, "Loan deleted", slog.String("project_id", projectID), slog.String("loan_id", loanID))
	return nil
}

func (s *loanService) ListLoans(ctx context.Context, projectID string, params dto.ListLoansParams) (*dto.LoanListResponse, error) {
	if _, err := loadActiveProject(ctx, s.projectRepo, projectID); err != nil {
		return nil, err
	}
	var paid *bool
	switch params.Status {
	case "", "all":
	case "paid":
		v := true
		paid = &v
	case "unpaid":
		v := false
		paid = &v
	default:
		return nil, apperrors.Validationf("unknown loan status %q", params.Status)
	}

	loans, err := s.loanRepo.ListLoans(ctx, projectID, paid)
	if err != nil {
		s.LogError(ctx, err, "Failed to list loans", slog.String("project_id", projectID))
		return nil, fmt.Errorf("failed to list loans: %w", err)
	}
	resp := &dto.LoanListResponse{Loans: loans, TotalAmount: decimal.Zero, TotalRemaining: decimal.Zero}
	if resp.Loans == nil {
		resp.Loans = []domain.Loan{}
	}
	for _, l := range loans {
		resp.TotalAmount = resp.TotalAmount.Add(l.Amount)
		resp.TotalRemaining = resp.TotalRemaining.Add(l.RemainingAmount)
	}
	resp.TotalPaid = resp.TotalAmount.Sub(resp.TotalRemaining)
	return resp, nil
}
