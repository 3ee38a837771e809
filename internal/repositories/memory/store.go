// Package memory is an in-process implementation of every repository port.
// All state lives behind one mutex; WithinTx holds it for the whole unit of
// work and restores a snapshot when the unit fails.
package memory

import (
	"context"
	"sync"

	"github.com/SscSPs/project_books/internal/core/domain"
	portsrepo "github.com/SscSPs/project_books/internal/core/ports/repositories"
)

type dataset struct {
	projects          map[string]domain.Project
	accountTypes      map[string]domain.AccountType
	accounts          map[string]domain.Account
	incomeCategories  map[string]domain.IncomeCategory
	expenseCategories map[string]domain.ExpenseCategory
	income            map[string]domain.IncomeTransaction
	expenses          map[string]domain.ExpenseTransaction
	employees         map[string]domain.Employee
	salaryPayments    map[string]domain.SalaryPayment
	debts             map[string]domain.Debt
	debtPayments      map[string]domain.DebtPayment
	loans             map[string]domain.Loan
	loanPayments      map[string]domain.LoanPayment
}

func newDataset() *dataset {
	return &dataset{
		projects:          map[string]domain.Project{},
		accountTypes:      map[string]domain.AccountType{},
		accounts:          map[string]domain.Account{},
		incomeCategories:  map[string]domain.IncomeCategory{},
		expenseCategories: map[string]domain.ExpenseCategory{},
		income:            map[string]domain.IncomeTransaction{},
		expenses:          map[string]domain.ExpenseTransaction{},
		employees:         map[string]domain.Employee{},
		salaryPayments:    map[string]domain.SalaryPayment{},
		debts:             map[string]domain.Debt{},
		debtPayments:      map[string]domain.DebtPayment{},
		loans:             map[string]domain.Loan{},
		loanPayments:      map[string]domain.LoanPayment{},
	}
}

func cloneMap[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (d *dataset) clone() *dataset {
	return &dataset{
		projects:          cloneMap(d.projects),
		accountTypes:      cloneMap(d.accountTypes),
		accounts:          cloneMap(d.accounts),
		incomeCategories:  cloneMap(d.incomeCategories),
		expenseCategories: cloneMap(d.expenseCategories),
		income:            cloneMap(d.income),
		expenses:          cloneMap(d.expenses),
		employees:         cloneMap(d.employees),
		salaryPayments:    cloneMap(d.salaryPayments),
		debts:             cloneMap(d.debts),
		debtPayments:      cloneMap(d.debtPayments),
		loans:             cloneMap(d.loans),
		loanPayments:      cloneMap(d.loanPayments),
	}
}

type txKey struct{}

// Store holds the whole ledger in memory.
type Store struct {
	mu   sync.Mutex
	data *dataset
}

// NewStore creates a store seeded with the lookup tables.
func NewStore() *Store {
	s := &Store{data: newDataset()}
	seedLookups(s.data)
	return s
}

// NewRepositoryProvider exposes the store through every repository port.
func NewRepositoryProvider(s *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TxManager:    s,
		ProjectRepo:  s,
		AccountRepo:  s,
		TxnRepo:      s,
		EmployeeRepo: s,
		DebtRepo:     s,
		LoanRepo:     s,
		LedgerRepo:   s,
	}
}

var (
	_ portsrepo.TransactionManager          = (*Store)(nil)
	_ portsrepo.ProjectRepositoryFacade     = (*Store)(nil)
	_ portsrepo.AccountRepositoryFacade     = (*Store)(nil)
	_ portsrepo.TransactionRepositoryFacade = (*Store)(nil)
	_ portsrepo.EmployeeRepositoryFacade    = (*Store)(nil)
	_ portsrepo.DebtRepositoryFacade        = (*Store)(nil)
	_ portsrepo.LoanRepositoryFacade        = (*Store)(nil)
	_ portsrepo.LedgerQueryRepository       = (*Store)(nil)
)

func (s *Store) inTx(ctx context.Context) bool {
	owner, _ := ctx.Value(txKey{}).(*Store)
	return owner == s
}

// lock acquires the store mutex unless ctx already holds it through WithinTx.
func (s *Store) lock(ctx context.Context) func() {
	if s.inTx(ctx) {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

// WithinTx implements portsrepo.TransactionManager. Nested calls join the
// outer unit of work.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.inTx(ctx) {
		return fn(ctx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.data.clone()
	if err := fn(context.WithValue(ctx, txKey{}, s)); err != nil {
		s.data = snapshot
		return err
	}
	return nil
}
