package memory

import (
	"context"
	"sort"

	"github.com/SscSPs/project_books/internal/apperrors"
	"github.com/SscSPs/project_books/internal/core/domain"
	portsrepo "github.com/SscSPs/project_books/internal/core/ports/repositories"
)

func (s *Store) SaveDebt(ctx context.Context, debt domain.Debt) error {
	defer s.lock(ctx)()
	if _, ok := s.data.debts[debt.DebtID]; ok {
		return apperrors.ErrDuplicate
	}
	s.data.debts[debt.DebtID] = debt
	return nil
}

func (s *Store) FindDebtByID(ctx context.Context, debtID string) (*domain.Debt, error) {
	defer s.lock(ctx)()
	d, ok := s.data.debts[debtID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &d, nil
}

func (s *Store) UpdateDebt(ctx context.Context, debt domain.Debt) error {
	defer s.lock(ctx)()
	if _, ok := s.data.debts[debt.DebtID]; !ok {
		return apperrors.ErrNotFound
	}
	s.data.debts[debt.DebtID] = debt
	return nil
}

func (s *Store) DeleteDebt(ctx context.Context, debtID string) error {
	defer s.lock(ctx)()
	if _, ok := s.data.debts[debtID]; !ok {
		return apperrors.ErrNotFound
	}
	for id, p := range s.data.debtPayments {
		if p.DebtID == debtID {
			delete(s.data.debtPayments, id)
		}
	}
	delete(s.data.debts, debtID)
	return nil
}

func (s *Store) ListDebts(ctx context.Context, filter portsrepo.DebtListFilter) ([]domain.Debt, error) {
	defer s.lock(ctx)()
	var out []domain.Debt
	for _, d := range s.data.debts {
		if d.ProjectID != filter.ProjectID {
			continue
		}
		if filter.DebtType != nil && d.DebtType != *filter.DebtType {
			continue
		}
		if filter.Status != nil && d.PaymentStatus != *filter.Status {
			continue
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		di, dj := out[i].DueDate, out[j].DueDate
		switch {
		case di != nil && dj != nil && !di.Equal(*dj):
			return di.Before(*dj)
		case di != nil && dj == nil:
			return true
		case di == nil && dj != nil:
			return false
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].DebtID < out[j].DebtID
	})
	return out, nil
}

func (s *Store) SaveDebtPayment(ctx context.Context, payment domain.DebtPayment) error {
	defer s.lock(ctx)()
	if _, ok := s.data.debts[payment.DebtID]; !ok {
		return apperrors.NotFoundf("debt %s", payment.DebtID)
	}
	if _, ok := s.data.debtPayments[payment.PaymentID]; ok {
		return apperrors.ErrDuplicate
	}
	s.data.debtPayments[payment.PaymentID] = payment
	return nil
}

func (s *Store) ListDebtPayments(ctx context.Context, debtID string) ([]domain.DebtPayment, error) {
	defer s.lock(ctx)()
	var out []domain.DebtPayment
	for _, p := range s.data.debtPayments {
		if p.DebtID == debtID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].PaymentDate.Equal(out[j].PaymentDate) {
			return out[i].PaymentDate.Before(out[j].PaymentDate)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}
