package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/project_books/internal/apperrors"
	"github.com/SscSPs/project_books/internal/core/domain"
	portsrepo "github.com/SscSPs/project_books/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/project_books/internal/core/ports/services"
	"github.com/SscSPs/project_books/internal/dto"
	"github.com/SscSPs/project_books/internal/utils/period"
	"github.com/google/uuid"
)

// ErrSalaryExpenseReadOnly is returned when editing or deleting an expense
// generated by a salary payment.
var ErrSalaryExpenseReadOnly = fmt.Errorf("%w: salary expenses can only change through their salary payment", apperrors.ErrValidation)

const maxPageSize = 200

// TransactionService implements income, expense and category operations. Every
// write runs in one storage transaction together with the reconciliation of
// each account it touched.
type TransactionService struct {
	BaseService
	txManager    portsrepo.TransactionManager
	projectRepo  portsrepo.ProjectReader
	accountRepo  portsrepo.AccountReader
	txnRepo      portsrepo.TransactionRepositoryFacade
	employeeRepo portsrepo.EmployeeRepositoryFacade
	reconciler   *BalanceReconciler
}

// NewTransactionService creates the service behind the income, expense and
// category facades.
func NewTransactionService(repos portsrepo.RepositoryProvider, reconciler *BalanceReconciler, options ...Option) *TransactionService {
	return &TransactionService{
		BaseService:  newBaseService(options...),
		txManager:    repos.TxManager,
		projectRepo:  repos.ProjectRepo,
		accountRepo:  repos.AccountRepo,
		txnRepo:      repos.TxnRepo,
		employeeRepo: repos.EmployeeRepo,
		reconciler:   reconciler,
	}
}

var (
	_ portssvc.IncomeSvc   = (*TransactionService)(nil)
	_ portssvc.ExpenseSvc  = (*TransactionService)(nil)
	_ portssvc.CategorySvc = (*TransactionService)(nil)
)

func (s *TransactionService) ListIncomeCategories(ctx context.Context) ([]domain.IncomeCategory, error) {
	return s.txnRepo.ListIncomeCategories(ctx)
}

func (s *TransactionService) ListExpenseCategories(ctx context.Context) ([]domain.ExpenseCategory, error) {
	return s.txnRepo.ListExpenseCategories(ctx)
}

func (s *TransactionService) checkIncomeCategory(ctx context.Context, categoryID string) error {
	if _, err := s.txnRepo.FindIncomeCategoryByID(ctx, categoryID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.Validationf("unknown income category %s", categoryID)
		}
		return fmt.Errorf("failed to load income category: %w", err)
	}
	return nil
}

func (s *TransactionService) checkExpenseCategory(ctx context.Context, categoryID string) error {
	if _, err := s.txnRepo.FindExpenseCategoryByID(ctx, categoryID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.Validationf("unknown expense category %s", categoryID)
		}
		return fmt.Errorf("failed to load expense category: %w", err)
	}
	return nil
}

// --- Income ---

func (s *TransactionService) CreateIncome(ctx context.Context, projectID string, req dto.CreateIncomeRequest) (*domain.IncomeTransaction, error) {
	if err := requirePositive("amount", req.Amount); err != nil {
		return nil, err
	}

	var created domain.IncomeTransaction
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := loadActiveProject(ctx, s.projectRepo, projectID); err != nil {
			return err
		}
		if _, err := loadProjectAccount(ctx, s.accountRepo, projectID, req.AccountID, true); err != nil {
			return err
		}
		if err := s.checkIncomeCategory(ctx, req.CategoryID); err != nil {
			return err
		}

		now := s.now()
		created = domain.IncomeTransaction{
			TransactionID:   uuid.NewString(),
			ProjectID:       projectID,
			AccountID:       req.AccountID,
			CategoryID:      req.CategoryID,
			Amount:          domain.RoundMoney(req.Amount),
			TransactionDate: dateOr(req.TransactionDate, s.today()),
			Notes:           req.Notes,
			AuditFields:     domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
		}
		if err := s.txnRepo.SaveIncome(ctx, created); err != nil {
			return fmt.Errorf("failed to save income: %w", err)
		}
		return s.reconciler.Reconcile(ctx, created.AccountID)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create income", slog.String("project_id", projectID))
		return nil, err
	}

	s.LogInfo(ctx, "Income recorded",
		slog.String("project_id", projectID),
		slog.String("transaction_id", created.TransactionID),
		slog.String("amount", created.Amount.String()))
	return &created, nil
}

func (s *TransactionService) loadIncome(ctx context.Context, projectID, transactionID string) (*domain.IncomeTransaction, error) {
	txn, err := s.txnRepo.FindIncomeByID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFoundf("income %s", transactionID)
		}
		return nil, fmt.Errorf("failed to load income: %w", err)
	}
	if txn.ProjectID != projectID {
		return nil, apperrors.NotFoundf("income %s", transactionID)
	}
	return txn, nil
}

func (s *TransactionService) GetIncome(ctx context.Context, projectID string, transactionID string) (*domain.IncomeTransaction, error) {
	return s.loadIncome(ctx, projectID, transactionID)
}

func (s *TransactionService) UpdateIncome(ctx context.Context, projectID string, transactionID string, req dto.UpdateIncomeRequest) (*domain.IncomeTransaction, error) {
	var updated *domain.IncomeTransaction
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		txn, err := s.loadIncome(ctx, projectID, transactionID)
		if err != nil {
			return err
		}
		oldAccount := txn.AccountID

		if req.AccountID != nil && *req.AccountID != txn.AccountID {
			if _, err := loadProjectAccount(ctx, s.accountRepo, projectID, *req.AccountID, true); err != nil {
				return err
			}
			txn.AccountID = *req.AccountID
		}
		if req.CategoryID != nil {
			if err := s.checkIncomeCategory(ctx, *req.CategoryID); err != nil {
				return err
			}
			txn.CategoryID = *req.CategoryID
		}
		if req.Amount != nil {
			if err := requirePositive("amount", *req.Amount); err != nil {
				return err
			}
			txn.Amount = domain.RoundMoney(*req.Amount)
		}
		if req.TransactionDate != nil {
			txn.TransactionDate = dateOr(req.TransactionDate, txn.TransactionDate)
		}
		if req.Notes != nil {
			txn.Notes = *req.Notes
		}
		txn.LastUpdatedAt = s.now()

		if err := s.txnRepo.UpdateIncome(ctx, *txn); err != nil {
			return fmt.Errorf("failed to update income: %w", err)
		}
		updated = txn
		return s.reconciler.Reconcile(ctx, oldAccount, txn.AccountID)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to update income", slog.String("transaction_id", transactionID))
		return nil, err
	}
	return updated, nil
}

func (s *TransactionService) DeleteIncome(ctx context.Context, projectID string, transactionID string) error {
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		txn, err := s.loadIncome(ctx, projectID, transactionID)
		if err != nil {
			return err
		}
		if err := s.txnRepo.DeleteIncome(ctx, transactionID); err != nil {
			return fmt.Errorf("failed to delete income: %w", err)
		}
		return s.reconciler.Reconcile(ctx, txn.AccountID)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to delete income", slog.String("transaction_id", transactionID))
		return err
	}
	s.LogInfo(ctx, "Income deleted", slog.String("project_id", projectID), slog.String("transaction_id", transactionID))
	return nil
}

func (s *TransactionService) ListIncome(ctx context.Context, projectID string, params dto.ListTransactionsParams) (*dto.ListIncomeResponse, error) {
	filter, limit, err := s.listFilter(ctx, projectID, params)
	if err != nil {
		return nil, err
	}
	rows, next, err := s.txnRepo.ListIncome(ctx, filter, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list income", slog.String("project_id", projectID))
		return nil, err
	}
	if rows == nil {
		rows = []domain.IncomeTransaction{}
	}
	return &dto.ListIncomeResponse{Transactions: rows, NextToken: next}, nil
}

// --- Expenses ---

func (s *TransactionService) CreateExpense(ctx context.Context, projectID string, req dto.CreateExpenseRequest) (*domain.ExpenseTransaction, error) {
	if err := requirePositive("amount", req.Amount); err != nil {
		return nil, err
	}

	var created domain.ExpenseTransaction
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		project, err := loadActiveProject(ctx, s.projectRepo, projectID)
		if err != nil {
			return err
		}
		if _, err := loadProjectAccount(ctx, s.accountRepo, projectID, req.AccountID, true); err != nil {
			return err
		}
		if err := s.checkExpenseCategory(ctx, req.CategoryID); err != nil {
			return err
		}
		phase := project.Phase
		if req.Phase != nil {
			if !req.Phase.Valid() {
				return apperrors.Validationf("unknown phase %q", *req.Phase)
			}
			phase = *req.Phase
		}
		employeeID := optionalID(req.EmployeeID)
		if employeeID != nil {
			if _, err := loadProjectEmployee(ctx, s.employeeRepo, projectID, *employeeID); err != nil {
				return err
			}
		}

		now := s.now()
		created = domain.ExpenseTransaction{
			TransactionID:   uuid.NewString(),
			ProjectID:       projectID,
			AccountID:       req.AccountID,
			CategoryID:      req.CategoryID,
			Amount:          domain.RoundMoney(req.Amount),
			TransactionDate: dateOr(req.TransactionDate, s.today()),
			Phase:           phase,
			IsDirectCost:    req.IsDirectCost,
			EmployeeID:      employeeID,
			Notes:           req.Notes,
			AuditFields:     domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
		}
		if err := s.txnRepo.SaveExpense(ctx, created); err != nil {
			return fmt.Errorf("failed to save expense: %w", err)
		}
		return s.reconciler.Reconcile(ctx, created.AccountID)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create expense", slog.String("project_id", projectID))
		return nil, err
	}

	s.LogInfo(ctx, "Expense recorded",
		slog.String("project_id", projectID),
		slog.String("transaction_id", created.TransactionID),
		slog.String("phase", string(created.Phase)),
		slog.String("amount", created.Amount.String()))
	return &created, nil
}

func (s *TransactionService) loadExpense(ctx context.Context, projectID, transactionID string) (*domain.ExpenseTransaction, error) {
	txn, err := s.txnRepo.FindExpenseByID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFoundf("expense %s", transactionID)
		}
		return nil, fmt.Errorf("failed to load expense: %w", err)
	}
	if txn.ProjectID != projectID {
		return nil, apperrors.NotFoundf("expense %s", transactionID)
	}
	return txn, nil
}

func (s *TransactionService) GetExpense(ctx context.Context, projectID string, transactionID string) (*domain.ExpenseTransaction, error) {
	return s.loadExpense(ctx, projectID, transactionID)
}

func (s *TransactionService) UpdateExpense(ctx context.Context, projectID string, transactionID string, req dto.UpdateExpenseRequest) (*domain.ExpenseTransaction, error) {
	var updated *domain.ExpenseTransaction
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		txn, err := s.loadExpense(ctx, projectID, transactionID)
		if err != nil {
			return err
		}
		if txn.IsSalary {
			return ErrSalaryExpenseReadOnly
		}
		oldAccount := txn.AccountID

		if req.AccountID != nil && *req.AccountID != txn.AccountID {
			if _, err := loadProjectAccount(ctx, s.accountRepo, projectID, *req.AccountID, true); err != nil {
				return err
			}
			txn.AccountID = *req.AccountID
		}
		if req.CategoryID != nil {
			if err := s.checkExpenseCategory(ctx, *req.CategoryID); err != nil {
				return err
			}
			txn.CategoryID = *req.CategoryID
		}
		if req.Amount != nil {
			if err := requirePositive("amount", *req.Amount); err != nil {
				return err
			}
			txn.Amount = domain.RoundMoney(*req.Amount)
		}
		if req.TransactionDate != nil {
			txn.TransactionDate = dateOr(req.TransactionDate, txn.TransactionDate)
		}
		if req.Phase != nil {
			if !req.Phase.Valid() {
				return apperrors.Validationf("unknown phase %q", *req.Phase)
			}
			txn.Phase = *req.Phase
		}
		if req.IsDirectCost != nil {
			txn.IsDirectCost = *req.IsDirectCost
		}
		if req.EmployeeID != nil {
			employeeID := optionalID(req.EmployeeID)
			if employeeID != nil {
				if _, err := loadProjectEmployee(ctx, s.employeeRepo, projectID, *employeeID); err != nil {
					return err
				}
			}
			txn.EmployeeID = employeeID
		}
		if req.Notes != nil {
			txn.Notes = *req.Notes
		}
		txn.LastUpdatedAt = s.now()

		if err := s.txnRepo.UpdateExpense(ctx, *txn); err != nil {
			return fmt.Errorf("failed to update expense: %w", err)
		}
		updated = txn
		return s.reconciler.Reconcile(ctx, oldAccount, txn.AccountID)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to update expense", slog.String("transaction_id", transactionID))
		return nil, err
	}
	return updated, nil
}

func (s *TransactionService) DeleteExpense(ctx context.Context, projectID string, transactionID string) error {
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		txn, err := s.loadExpense(ctx, projectID, transactionID)
		if err != nil {
			return err
		}
		if txn.IsSalary {
			return ErrSalaryExpenseReadOnly
		}
		if err := s.txnRepo.DeleteExpense(ctx, transactionID); err != nil {
			return fmt.Errorf("failed to delete expense: %w", err)
		}
		return s.reconciler.Reconcile(ctx, txn.AccountID)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to delete expense", slog.String("transaction_id", transactionID))
		return err
	}
	s.LogInfo(ctx, "Expense deleted", slog.String("project_id", projectID), slog.String("transaction_id", transactionID))
	return nil
}

func (s *TransactionService) ListExpenses(ctx context.Context, projectID string, params dto.ListTransactionsParams) (*dto.ListExpensesResponse, error) {
	filter, limit, err := s.listFilter(ctx, projectID, params)
	if err != nil {
		return nil, err
	}
	rows, next, err := s.txnRepo.ListExpenses(ctx, filter, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list expenses", slog.String("project_id", projectID))
		return nil, err
	}
	if rows == nil {
		rows = []domain.ExpenseTransaction{}
	}
	return &dto.ListExpensesResponse{Transactions: rows, NextToken: next}, nil
}

// listFilter resolves the period of a listing request. A request without any
// period parameter lists the whole history.
func (s *TransactionService) listFilter(ctx context.Context, projectID string, params dto.ListTransactionsParams) (portsrepo.TransactionListFilter, int, error) {
	if _, err := loadActiveProject(ctx, s.projectRepo, projectID); err != nil {
		return portsrepo.TransactionListFilter{}, 0, err
	}
	filter := portsrepo.TransactionListFilter{
		ProjectID:  projectID,
		AccountID:  optionalID(params.AccountID),
		CategoryID: optionalID(params.CategoryID),
	}
	if params.Period != "" || params.StartDate != nil || params.EndDate != nil {
		r := period.Resolve(period.ParseToken(params.Period), params.StartDate, params.EndDate, s.today())
		filter.Range = &r
	}

	limit := params.Limit
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if limit < 0 {
		return filter, 0, apperrors.Validationf("limit cannot be negative")
	}
	return filter, limit, nil
}
