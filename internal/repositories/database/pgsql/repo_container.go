package pgsql

import (
	portsrepo "github.com/SscSPs/project_books/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every repository port to one pool. Repositories
// join the transaction that TxManager binds to the context.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	base := BaseRepository{Pool: dbPool}

	return portsrepo.RepositoryProvider{
		TxManager:    &TxManager{BaseRepository: base},
		ProjectRepo:  &PgxProjectRepository{BaseRepository: base},
		AccountRepo:  &PgxAccountRepository{BaseRepository: base},
		TxnRepo:      &PgxTransactionRepository{BaseRepository: base},
		EmployeeRepo: &PgxEmployeeRepository{BaseRepository: base},
		DebtRepo:     &PgxDebtRepository{BaseRepository: base},
		LoanRepo:     &PgxLoanRepository{BaseRepository: base},
		LedgerRepo:   &PgxLedgerQueryRepository{BaseRepository: base},
	}
}
