package memory

import (
	"context"
	"sort"

	"github.com/SscSPs/project_books/internal/apperrors"
	"github.com/SscSPs/project_books/internal/core/domain"
)

func (s *Store) SaveLoan(ctx context.Context, loan domain.Loan) error {
	defer s.lock(ctx)()
	if _, ok := s.data.loans[loan.LoanID]; ok {
		return apperrors.ErrDuplicate
	}
	s.data.loans[loan.LoanID] = loan
	return nil
}

func (s *Store) FindLoanByID(ctx context.Context, loanID string) (*domain.Loan, error) {
	defer s.lock(ctx)()
	l, ok := s.data.loans[loanID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &l, nil
}

func (s *Store) UpdateLoan(ctx context.Context, loan domain.Loan) error {
	defer s.lock(ctx)()
	if _, ok := s.data.loans[loan.LoanID]; !ok {
		return apperrors.ErrNotFound
	}
	s.data.loans[loan.LoanID] = loan
	return nil
}

func (s *Store) DeleteLoan(ctx context.Context, loanID string) error {
	defer s.lock(ctx)()
	if _, ok := s.data.loans[loanID]; !ok {
		return apperrors.ErrNotFound
	}
	for id, p := range s.data.loanPayments {
		if p.LoanID == loanID {
			delete(s.data.loanPayments, id)
		}
	}
	delete(s.data.loans, loanID)
	return nil
}

func (s *Store) ListLoans(ctx context.Context, projectID string, paid *bool) ([]domain.Loan, error) {
	defer s.lock(ctx)()
	var out []domain.Loan
	for _, l := range s.data.loans {
		if l.ProjectID != projectID || (paid != nil && l.IsPaid != *paid) {
			continue
		}
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].ReceivedDate.Equal(out[j].ReceivedDate) {
			return out[i].ReceivedDate.After(out[j].ReceivedDate)
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].LoanID < out[j].LoanID
	})
	return out, nil
}

func (s *Store) SaveLoanPayment(ctx context.Context, payment domain.LoanPayment) error {
	defer s.lock(ctx)()
	if _, ok := s.data.loans[payment.LoanID]; !ok {
		return apperrors.NotFoundf("loan %s", payment.LoanID)
	}
	if _, ok := s.data.loanPayments[payment.PaymentID]; ok {
		return apperrors.ErrDuplicate
	}
	s.data.loanPayments[payment.PaymentID] = payment
	return nil
}

func (s *Store) ListLoanPayments(ctx context.Context, loanID string) ([]domain.LoanPayment, error) {
	defer s.lock(ctx)()
	var out []domain.LoanPayment
	for _, p := range s.data.loanPayments {
		if p.LoanID == loanID {
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
