package memory

import (
	"context"
	"sort"
	"time"

	"github.com/SscSPs/project_books/internal/apperrors"
	"github.com/SscSPs/project_books/internal/core/domain"
	"github.com/shopspring/decimal"
)

func (s *Store) SaveAccount(ctx context.Context, account domain.Account) error {
	defer s.lock(ctx)()
	if _, ok := s.data.accounts[account.AccountID]; ok {
		return apperrors.ErrDuplicate
	}
	s.data.accounts[account.AccountID] = account
	return nil
}

func (s *Store) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	defer s.lock(ctx)()
	a, ok := s.data.accounts[accountID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &a, nil
}

func (s *Store) ListAccounts(ctx context.Context, projectID string) ([]domain.Account, error) {
	defer s.lock(ctx)()
	var out []domain.Account
	for _, a := range s.data.accounts {
		if a.ProjectID == projectID && a.IsActive {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].AccountID < out[j].AccountID
	})
	return out, nil
}

func (s *Store) UpdateAccount(ctx context.Context, account domain.Account) error {
	defer s.lock(ctx)()
	current, ok := s.data.accounts[account.AccountID]
	if !ok {
		return apperrors.ErrNotFound
	}
	current.Name = account.Name
	current.AccountTypeID = account.AccountTypeID
	current.LastUpdatedAt = account.LastUpdatedAt
	s.data.accounts[account.AccountID] = current
	return nil
}

func (s *Store) DeactivateAccount(ctx context.Context, accountID string, now time.Time) error {
	defer s.lock(ctx)()
	a, ok := s.data.accounts[accountID]
	if !ok || !a.IsActive {
		return apperrors.ErrNotFound
	}
	a.IsActive = false
	a.LastUpdatedAt = now
	s.data.accounts[accountID] = a
	return nil
}

func (s *Store) ListAccountTypes(ctx context.Context) ([]domain.AccountType, error) {
	defer s.lock(ctx)()
	out := make([]domain.AccountType, 0, len(s.data.accountTypes))
	for _, t := range s.data.accountTypes {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) FindAccountTypeByID(ctx context.Context, accountTypeID string) (*domain.AccountType, error) {
	defer s.lock(ctx)()
	t, ok := s.data.accountTypes[accountTypeID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &t, nil
}

// FindAccountsByIDsForUpdate needs no row locks here: a transactional context
// already holds the store mutex.
func (s *Store) FindAccountsByIDsForUpdate(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	defer s.lock(ctx)()
	out := make(map[string]domain.Account, len(accountIDs))
	for _, id := range accountIDs {
		if a, ok := s.data.accounts[id]; ok {
			out[id] = a
		}
	}
	return out, nil
}

func (s *Store) UpdateAccountBalances(ctx context.Context, balances map[string]decimal.Decimal, now time.Time) error {
	defer s.lock(ctx)()
	for id, balance := range balances {
		a, ok := s.data.accounts[id]
		if !ok {
			return apperrors.NotFoundf("account %s", id)
		}
		a.CurrentBalance = balance
		a.LastUpdatedAt = now
		s.data.accounts[id] = a
	}
	return nil
}

func (s *Store) ListMovements(ctx context.Context, accountID string) ([]domain.CashMovement, error) {
	defer s.lock(ctx)()
	var out []domain.CashMovement
	for _, t := range s.data.income {
		if t.AccountID == accountID {
			out = append(out, t.Movement())
		}
	}
	for _, t := range s.data.expenses {
		if t.AccountID == accountID {
			out = append(out, t.Movement())
		}
	}
	for _, l := range s.data.loans {
		if l.AccountID == accountID {
			out = append(out, l.Movement())
		}
	}
	for _, p := range s.data.loanPayments {
		if p.AccountID == accountID {
			out = append(out, p.Movement())
		}
	}
	for _, d := range s.data.debts {
		if m, ok := d.Movement(); ok && m.AccountID == accountID {
			out = append(out, m)
		}
	}
	for _, p := range s.data.debtPayments {
		debt, ok := s.data.debts[p.DebtID]
		if !ok {
			continue
		}
		if m, ok := p.Movement(debt.DebtType); ok && m.AccountID == accountID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].SourceID < out[j].SourceID
	})
	return out, nil
}
