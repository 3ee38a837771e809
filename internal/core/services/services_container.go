package services

import (
	portsrepo "github.com/SscSPs/project_books/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/project_books/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider, options ...Option) *portssvc.ServiceContainer {
	// The reconciler is shared so every writer recomputes balances the same way.
	reconciler := NewBalanceReconciler(repos.AccountRepo, options...)
	transactions := NewTransactionService(repos, reconciler, options...)

	return &portssvc.ServiceContainer{
		Project:    NewProjectService(repos, options...),
		Account:    NewAccountService(repos, reconciler, options...),
		Income:     transactions,
		Expense:    transactions,
		Category:   transactions,
		Employee:   NewEmployeeService(repos, reconciler, options...),
		Debt:       NewDebtService(repos, reconciler, options...),
		Loan:       NewLoanService(repos, reconciler, options...),
		Statements: NewStatementService(repos, options...),
	}
}
