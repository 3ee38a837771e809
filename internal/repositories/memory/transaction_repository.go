package memory

import (
	"context"
	"sort"
	"time"

	"github.com/SscSPs/project_books/internal/apperrors"
	"github.com/SscSPs/project_books/internal/core/domain"
	portsrepo "github.com/SscSPs/project_books/internal/core/ports/repositories"
	"github.com/SscSPs/project_books/internal/utils/pagination"
)

const defaultPageSize = 50

func (s *Store) ListIncomeCategories(ctx context.Context) ([]domain.IncomeCategory, error) {
	defer s.lock(ctx)()
	out := make([]domain.IncomeCategory, 0, len(s.data.incomeCategories))
	for _, c := range s.data.incomeCategories {
		if c.IsActive {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) ListExpenseCategories(ctx context.Context) ([]domain.ExpenseCategory, error) {
	defer s.lock(ctx)()
	out := make([]domain.ExpenseCategory, 0, len(s.data.expenseCategories))
	for _, c := range s.data.expenseCategories {
		if c.IsActive {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) FindIncomeCategoryByID(ctx context.Context, categoryID string) (*domain.IncomeCategory, error) {
	defer s.lock(ctx)()
	c, ok := s.data.incomeCategories[categoryID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &c, nil
}

func (s *Store) FindExpenseCategoryByID(ctx context.Context, categoryID string) (*domain.ExpenseCategory, error) {
	defer s.lock(ctx)()
	c, ok := s.data.expenseCategories[categoryID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &c, nil
}

func (s *Store) FindExpenseCategoryByName(ctx context.Context, name string) (*domain.ExpenseCategory, error) {
	defer s.lock(ctx)()
	for _, c := range s.data.expenseCategories {
		if c.Name == name {
			return &c, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (s *Store) SaveIncome(ctx context.Context, txn domain.IncomeTransaction) error {
	defer s.lock(ctx)()
	if _, ok := s.data.income[txn.TransactionID]; ok {
		return apperrors.ErrDuplicate
	}
	s.data.income[txn.TransactionID] = txn
	return nil
}

func (s *Store) FindIncomeByID(ctx context.Context, transactionID string) (*domain.IncomeTransaction, error) {
	defer s.lock(ctx)()
	t, ok := s.data.income[transactionID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &t, nil
}

func (s *Store) UpdateIncome(ctx context.Context, txn domain.IncomeTransaction) error {
	defer s.lock(ctx)()
	if _, ok := s.data.income[txn.TransactionID]; !ok {
		return apperrors.ErrNotFound
	}
	s.data.income[txn.TransactionID] = txn
	return nil
}

func (s *Store) DeleteIncome(ctx context.Context, transactionID string) error {
	defer s.lock(ctx)()
	if _, ok := s.data.income[transactionID]; !ok {
		return apperrors.ErrNotFound
	}
	delete(s.data.income, transactionID)
	return nil
}

func (s *Store) ListIncome(ctx context.Context, filter portsrepo.TransactionListFilter, limit int, nextToken *string) ([]domain.IncomeTransaction, *string, error) {
	defer s.lock(ctx)()
	var rows []domain.IncomeTransaction
	for _, t := range s.data.income {
		if matchesListFilter(filter, t.ProjectID, t.AccountID, t.CategoryID, t.TransactionDate) {
			rows = append(rows, t)
		}
	}
	return page(rows, limit, nextToken, func(t domain.IncomeTransaction) (time.Time, string) {
		return t.TransactionDate, t.TransactionID
	})
}

func (s *Store) SaveExpense(ctx context.Context, txn domain.ExpenseTransaction) error {
	defer s.lock(ctx)()
	if _, ok := s.data.expenses[txn.TransactionID]; ok {
		return apperrors.ErrDuplicate
	}
	s.data.expenses[txn.TransactionID] = txn
	return nil
}

func (s *Store) FindExpenseByID(ctx context.Context, transactionID string) (*domain.ExpenseTransaction, error) {
	defer s.lock(ctx)()
	t, ok := s.data.expenses[transactionID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &t, nil
}

func (s *Store) UpdateExpense(ctx context.Context, txn domain.ExpenseTransaction) error {
	defer s.lock(ctx)()
	if _, ok := s.data.expenses[txn.TransactionID]; !ok {
		return apperrors.ErrNotFound
	}
	s.data.expenses[txn.TransactionID] = txn
	return nil
}

func (s *Store) DeleteExpense(ctx context.Context, transactionID string) error {
	defer s.lock(ctx)()
	if _, ok := s.data.expenses[transactionID]; !ok {
		return apperrors.ErrNotFound
	}
	delete(s.data.expenses, transactionID)
	return nil
}

func (s *Store) ListExpenses(ctx context.Context, filter portsrepo.TransactionListFilter, limit int, nextToken *string) ([]domain.ExpenseTransaction, *string, error) {
	defer s.lock(ctx)()
	var rows []domain.ExpenseTransaction
	for _, t := range s.data.expenses {
		if matchesListFilter(filter, t.ProjectID, t.AccountID, t.CategoryID, t.TransactionDate) {
			rows = append(rows, t)
		}
	}
	return page(rows, limit, nextToken, func(t domain.ExpenseTransaction) (time.Time, string) {
		return t.TransactionDate, t.TransactionID
	})
}

func matchesListFilter(f portsrepo.TransactionListFilter, projectID, accountID, categoryID string, date time.Time) bool {
	if projectID != f.ProjectID {
		return false
	}
	if f.AccountID != nil && accountID != *f.AccountID {
		return false
	}
	if f.CategoryID != nil && categoryID != *f.CategoryID {
		return false
	}
	return f.Range == nil || f.Range.Contains(date)
}

// page orders rows newest first and cuts one keyset page after nextToken.
func page[T any](rows []T, limit int, nextToken *string, key func(T) (time.Time, string)) ([]T, *string, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	sort.Slice(rows, func(i, j int) bool {
		di, ii := key(rows[i])
		dj, ij := key(rows[j])
		if !di.Equal(dj) {
			return di.After(dj)
		}
		return ii > ij
	})

	if nextToken != nil && *nextToken != "" {
		cursor, err := pagination.DecodeCursor(*nextToken)
		if err != nil {
			return nil, nil, apperrors.Validationf("%v", err)
		}
		start := len(rows)
		for i, r := range rows {
			if cursor.After(key(r)) {
				start = i
				break
			}
		}
		rows = rows[start:]
	}

	if len(rows) <= limit {
		return rows, nil, nil
	}
	rows = rows[:limit]
	d, id := key(rows[limit-1])
	token := pagination.EncodeCursor(d, id)
	return rows, &token, nil
}
