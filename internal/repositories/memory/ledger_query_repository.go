package memory

import (
	"context"

	"github.com/SscSPs/project_books/internal/apperrors"
	"github.com/SscSPs/project_books/internal/core/domain"
	"github.com/SscSPs/project_books/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// ledgerRows flattens every summable record of the project.
func (d *dataset) ledgerRows(projectID string) []domain.LedgerRow {
	var rows []domain.LedgerRow
	for _, t := range d.income {
		if t.ProjectID != projectID {
			continue
		}
		rows = append(rows, domain.LedgerRow{
			Set: domain.SetIncome, ProjectID: t.ProjectID, AccountID: t.AccountID, Date: t.TransactionDate,
			CategoryID: t.CategoryID, CategoryName: d.incomeCategories[t.CategoryID].Name, Amount: t.Amount,
		})
	}
	for _, t := range d.expenses {
		if t.ProjectID != projectID {
			continue
		}
		rows = append(rows, domain.LedgerRow{
			Set: domain.SetExpense, ProjectID: t.ProjectID, AccountID: t.AccountID, Date: t.TransactionDate,
			CategoryID: t.CategoryID, CategoryName: d.expenseCategories[t.CategoryID].Name,
			Phase: t.Phase, IsDirectCost: t.IsDirectCost, Amount: t.Amount,
		})
	}
	for _, l := range d.loans {
		if l.ProjectID != projectID {
			continue
		}
		rows = append(rows,
			domain.LedgerRow{Set: domain.SetLoanReceived, ProjectID: l.ProjectID, AccountID: l.AccountID, Date: l.ReceivedDate, Paid: l.IsPaid, Amount: l.Amount},
			domain.LedgerRow{Set: domain.SetLoanOutstanding, ProjectID: l.ProjectID, AccountID: l.AccountID, Date: l.ReceivedDate, Paid: l.IsPaid, Amount: l.RemainingAmount},
		)
	}
	for _, p := range d.loanPayments {
		l, ok := d.loans[p.LoanID]
		if !ok || l.ProjectID != projectID {
			continue
		}
		rows = append(rows, domain.LedgerRow{Set: domain.SetLoanRepaid, ProjectID: l.ProjectID, AccountID: p.AccountID, Date: p.PaymentDate, Paid: l.IsPaid, Amount: p.Amount})
	}
	for _, debt := range d.debts {
		if debt.ProjectID != projectID {
			continue
		}
		account := ""
		if debt.AccountID != nil {
			account = *debt.AccountID
		}
		created := domain.DateOnly(debt.CreatedAt)
		rows = append(rows,
			domain.LedgerRow{Set: domain.SetDebtOriginal, ProjectID: debt.ProjectID, AccountID: account, Date: created, DebtType: debt.DebtType, Paid: debt.IsPaid, Amount: debt.OriginalAmount},
			domain.LedgerRow{Set: domain.SetDebtOutstanding, ProjectID: debt.ProjectID, AccountID: account, Date: created, DebtType: debt.DebtType, Paid: debt.IsPaid, Amount: debt.RemainingAmount},
		)
	}
	for _, p := range d.debtPayments {
		debt, ok := d.debts[p.DebtID]
		if !ok || debt.ProjectID != projectID {
			continue
		}
		account := ""
		if p.AccountID != nil {
			account = *p.AccountID
		}
		rows = append(rows, domain.LedgerRow{Set: domain.SetDebtRepaid, ProjectID: debt.ProjectID, AccountID: account, Date: p.PaymentDate, DebtType: debt.DebtType, Paid: debt.IsPaid, Amount: p.Amount})
	}
	return rows
}

func validateLedgerQuery(set domain.EntitySet, filter domain.LedgerFilter) error {
	if filter.ProjectID == "" {
		return apperrors.Validationf("project id is required")
	}
	if !set.Valid() {
		return apperrors.Validationf("unknown entity set %q", set)
	}
	return nil
}

func (s *Store) SumAmount(ctx context.Context, set domain.EntitySet, filter domain.LedgerFilter) (decimal.Decimal, error) {
	if err := validateLedgerQuery(set, filter); err != nil {
		return decimal.Zero, err
	}
	defer s.lock(ctx)()
	return accounting.SumAmount(s.data.ledgerRows(filter.ProjectID), set, filter), nil
}

func (s *Store) GroupByCategory(ctx context.Context, set domain.EntitySet, filter domain.LedgerFilter) ([]domain.CategoryAmount, error) {
	if err := validateLedgerQuery(set, filter); err != nil {
		return nil, err
	}
	if set != domain.SetIncome && set != domain.SetExpense {
		return nil, apperrors.Validationf("entity set %q has no categories", set)
	}
	defer s.lock(ctx)()
	return accounting.GroupByCategory(s.data.ledgerRows(filter.ProjectID), set, filter), nil
}

func (s *Store) MonthlyTotals(ctx context.Context, set domain.EntitySet, filter domain.LedgerFilter) ([]domain.MonthAmount, error) {
	if err := validateLedgerQuery(set, filter); err != nil {
		return nil, err
	}
	defer s.lock(ctx)()
	return accounting.MonthlyTotals(s.data.ledgerRows(filter.ProjectID), set, filter), nil
}

func (s *Store) SumAccountBalances(ctx context.Context, projectID string, accountID *string) (decimal.Decimal, error) {
	if projectID == "" {
		return decimal.Zero, apperrors.Validationf("project id is required")
	}
	defer s.lock(ctx)()
	total := decimal.Zero
	for _, a := range s.data.accounts {
		if a.ProjectID != projectID {
			continue
		}
		if accountID != nil {
			if a.AccountID != *accountID {
				continue
			}
		} else if !a.IsActive {
			continue
		}
		total = total.Add(a.CurrentBalance)
	}
	return total, nil
}
