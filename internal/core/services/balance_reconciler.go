package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/project_books/internal/apperrors"
	portsrepo "github.com/SscSPs/project_books/internal/core/ports/repositories"
	"github.com/SscSPs/project_books/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

type reconcilerRepository interface {
	portsrepo.AccountBalanceSupport
	portsrepo.CashMovementReader
}

// BalanceReconciler rewrites cached account balances from full history.
type BalanceReconciler struct {
	BaseService
	repo reconcilerRepository
}

// NewBalanceReconciler creates a reconciler over the account repository.
func NewBalanceReconciler(repo portsrepo.AccountRepositoryFacade, options ...Option) *BalanceReconciler {
	return &BalanceReconciler{BaseService: newBaseService(options...), repo: repo}
}

// Reconcile recomputes and stores the balance of each account. It must run
// inside the transaction that wrote the movements: the accounts are locked in
// ID order, and empty IDs (debts without an account) are skipped.
func (r *BalanceReconciler) Reconcile(ctx context.Context, accountIDs ...string) error {
	ids := uniqueSortedIDs(accountIDs)
	if len(ids) == 0 {
		return nil
	}

	accounts, err := r.repo.FindAccountsByIDsForUpdate(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to lock accounts: %w", err)
	}

	balances := make(map[string]decimal.Decimal, len(ids))
	for _, id := range ids {
		account, ok := accounts[id]
		if !ok {
			return apperrors.NotFoundf("account %s", id)
		}
		movements, err := r.repo.ListMovements(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to load movements of account %s: %w", id, err)
		}
		balances[id] = accounting.RecomputeBalance(account.InitialBalance, movements)
		r.LogDebug(ctx, "Account balance recomputed",
			slog.String("account_id", id),
			slog.Int("movement_count", len(movements)),
			slog.String("balance", balances[id].String()))
	}

	if err := r.repo.UpdateAccountBalances(ctx, balances, r.now()); err != nil {
		return fmt.Errorf("failed to store account balances: %w", err)
	}
	return nil
}
