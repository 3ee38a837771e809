package pgsql

import (
	"context"
	"time"

	"github.com/SscSPs/project_books/internal/core/domain"
	portsrepo "github.com/SscSPs/project_books/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type PgxAccountRepository struct {
	BaseRepository
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

const accountColumns = `account_id, project_id, name, account_type_id, initial_balance, current_balance, is_active, created_at, last_updated_at`

func scanAccount(row rowScanner) (domain.Account, error) {
	var a domain.Account
	err := row.Scan(&a.AccountID, &a.ProjectID, &a.Name, &a.AccountTypeID, &a.InitialBalance,
		&a.CurrentBalance, &a.IsActive, &a.CreatedAt, &a.LastUpdatedAt)
	return a, err
}

func (r *PgxAccountRepository) collectAccounts(ctx context.Context, op, query string, args ...any) ([]domain.Account, error) {
	rows, err := r.db(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, readError(op, err)
	}
	accounts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Account, error) {
		return scanAccount(row)
	})
	if err != nil {
		return nil, readError(op, err)
	}
	return accounts, nil
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	query := `INSERT INTO accounts (` + accountColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db(ctx).Exec(ctx, query,
		account.AccountID, account.ProjectID, account.Name, account.AccountTypeID, account.InitialBalance,
		account.CurrentBalance, account.IsActive, account.CreatedAt, account.LastUpdatedAt)
	if err != nil {
		return writeError("failed to save account "+account.AccountID, err)
	}
	return nil
}

// FindAccountByID retrieves an account by ID, active or not.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1`
	a, err := scanAccount(r.db(ctx).QueryRow(ctx, query, accountID))
	if err != nil {
		return nil, readError("account "+accountID, err)
	}
	return &a, nil
}

func (r *PgxAccountRepository) ListAccounts(ctx context.Context, projectID string) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE project_id = $1 AND is_active ORDER BY name, account_id`
	return r.collectAccounts(ctx, "failed to list accounts", query, projectID)
}

func (r *PgxAccountRepository) ListAccountTypes(ctx context.Context) ([]domain.AccountType, error) {
	rows, err := r.db(ctx).Query(ctx, `SELECT account_type_id, name, name_alt FROM account_types ORDER BY name`)
	if err != nil {
		return nil, readError("failed to list account types", err)
	}
	types, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.AccountType, error) {
		var t domain.AccountType
		err := row.Scan(&t.AccountTypeID, &t.Name, &t.NameAlt)
		return t, err
	})
	if err != nil {
		return nil, readError("failed to scan account types", err)
	}
	return types, nil
}

func (r *PgxAccountRepository) FindAccountTypeByID(ctx context.Context, accountTypeID string) (*domain.AccountType, error) {
	var t domain.AccountType
	err := r.db(ctx).QueryRow(ctx, `SELECT account_type_id, name, name_alt FROM account_types WHERE account_type_id = $1`, accountTypeID).
		Scan(&t.AccountTypeID, &t.Name, &t.NameAlt)
	if err != nil {
		return nil, readError("account type "+accountTypeID, err)
	}
	return &t, nil
}

// UpdateAccount leaves both balance columns untouched.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	query := `UPDATE accounts SET name = $2, account_type_id = $3, last_updated_at = $4 WHERE account_id = $1`
	tag, err := r.db(ctx).Exec(ctx, query, account.AccountID, account.Name, account.AccountTypeID, account.LastUpdatedAt)
	if err != nil {
		return writeError("failed to update account "+account.AccountID, err)
	}
	return requireRow(tag, "account", account.AccountID)
}

func (r *PgxAccountRepository) DeactivateAccount(ctx context.Context, accountID string, now time.Time) error {
	tag, err := r.db(ctx).Exec(ctx, `UPDATE accounts SET is_active = FALSE, last_updated_at = $2 WHERE account_id = $1`, accountID, now)
	if err != nil {
		return writeError("failed to deactivate account "+accountID, err)
	}
	return requireRow(tag, "account", accountID)
}

// FindAccountsByIDsForUpdate locks rows in account_id order so concurrent
// reconciliations over overlapping sets cannot deadlock.
func (r *PgxAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = ANY($1) ORDER BY account_id FOR UPDATE`
	accounts, err := r.collectAccounts(ctx, "failed to lock accounts", query, accountIDs)
	if err != nil {
		return nil, err
	}
	out := make(map[string]domain.Account, len(accounts))
	for _, a := range accounts {
		out[a.AccountID] = a
	}
	return out, nil
}

func (r *PgxAccountRepository) UpdateAccountBalances(ctx context.Context, balances map[string]decimal.Decimal, now time.Time) error {
	if len(balances) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	ids := make([]string, 0, len(balances))
	for id, balance := range balances {
		ids = append(ids, id)
		batch.Queue(`UPDATE accounts SET current_balance = $2, last_updated_at = $3 WHERE account_id = $1`, id, balance, now)
	}

	results := r.db(ctx).SendBatch(ctx, batch)
	defer results.Close()
	for _, id := range ids {
		tag, err := results.Exec()
		if err != nil {
			return writeError("failed to update balance of account "+id, err)
		}
		if err := requireRow(tag, "account", id); err != nil {
			return err
		}
	}
	return nil
}

// ListMovements unions every movement source touching the account.
func (r *PgxAccountRepository) ListMovements(ctx context.Context, accountID string) ([]domain.CashMovement, error) {
	query := `
		SELECT $2::int, account_id, transaction_id, amount, transaction_date
		FROM income_transactions WHERE account_id = $1
		UNION ALL
		SELECT $3::int, account_id, transaction_id, amount, transaction_date
		FROM expense_transactions WHERE account_id = $1
		UNION ALL
		SELECT $4::int, account_id, loan_id, amount, received_date
		FROM loans WHERE account_id = $1
		UNION ALL
		SELECT $5::int, account_id, payment_id, amount, payment_date
		FROM loan_payments WHERE account_id = $1
		UNION ALL
		SELECT CASE WHEN debt_type = 'owed_by_us' THEN $6::int ELSE $7::int END,
			account_id, debt_id, original_amount, (created_at AT TIME ZONE 'UTC')::date
		FROM debts WHERE account_id = $1
		UNION ALL
		SELECT CASE WHEN d.debt_type = 'owed_by_us' THEN $8::int ELSE $9::int END,
			p.account_id, p.payment_id, p.amount, p.payment_date
		FROM debt_payments p JOIN debts d ON d.debt_id = p.debt_id
		WHERE p.account_id = $1
		ORDER BY 5, 3`

	rows, err := r.db(ctx).Query(ctx, query, accountID,
		int(domain.MovementIncome), int(domain.MovementExpense),
		int(domain.MovementLoanReceived), int(domain.MovementLoanRepaid),
		int(domain.MovementDebtByUsReceived), int(domain.MovementDebtToUsGiven),
		int(domain.MovementDebtByUsRepaid), int(domain.MovementDebtToUsRepaid))
	if err != nil {
		return nil, readError("failed to list movements of account "+accountID, err)
	}
	movements, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.CashMovement, error) {
		var m domain.CashMovement
		var kind int
		err := row.Scan(&kind, &m.AccountID, &m.SourceID, &m.Amount, &m.Date)
		m.Kind = domain.MovementKind(kind)
		return m, err
	})
	if err != nil {
		return nil, readError("failed to scan movements of account "+accountID, err)
	}
	return movements, nil
}
