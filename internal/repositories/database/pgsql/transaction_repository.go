package pgsql

import (
	"context"
	"strconv"
	"time"

	"github.com/SscSPs/project_books/internal/apperrors"
	"github.com/SscSPs/project_books/internal/core/domain"
	portsrepo "github.com/SscSPs/project_books/internal/core/ports/repositories"
	"github.com/SscSPs/project_books/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
)

const defaultPageSize = 20

type PgxTransactionRepository struct {
	BaseRepository
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

const (
	categoryColumns = `category_id, name, name_alt, description, is_active`
	incomeColumns   = `transaction_id, project_id, account_id, category_id, amount, transaction_date, notes, created_at, last_updated_at`
	expenseColumns  = `transaction_id, project_id, account_id, category_id, amount, transaction_date, phase, is_direct_cost, is_salary, employee_id, notes, created_at, last_updated_at`
)

// categoryRow is the layout shared by both category lookup tables.
type categoryRow struct {
	ID, Name, NameAlt, Description string
	IsActive                       bool
}

func scanCategory(row rowScanner) (categoryRow, error) {
	var c categoryRow
	err := row.Scan(&c.ID, &c.Name, &c.NameAlt, &c.Description, &c.IsActive)
	return c, err
}

func (r *PgxTransactionRepository) listCategories(ctx context.Context, table string) ([]categoryRow, error) {
	rows, err := r.db(ctx).Query(ctx, `SELECT `+categoryColumns+` FROM `+table+` WHERE is_active ORDER BY name`)
	if err != nil {
		return nil, readError("failed to list "+table, err)
	}
	cats, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (categoryRow, error) {
		return scanCategory(row)
	})
	if err != nil {
		return nil, readError("failed to scan "+table, err)
	}
	return cats, nil
}

func (r *PgxTransactionRepository) findCategory(ctx context.Context, table, column, value string) (categoryRow, error) {
	c, err := scanCategory(r.db(ctx).QueryRow(ctx, `SELECT `+categoryColumns+` FROM `+table+` WHERE `+column+` = $1`, value))
	if err != nil {
		return categoryRow{}, readError("category "+value, err)
	}
	return c, nil
}

func (c categoryRow) income() domain.IncomeCategory {
	return domain.IncomeCategory{CategoryID: c.ID, Name: c.Name, NameAlt: c.NameAlt, Description: c.Description, IsActive: c.IsActive}
}

func (c categoryRow) expense() domain.ExpenseCategory {
	return domain.ExpenseCategory{CategoryID: c.ID, Name: c.Name, NameAlt: c.NameAlt, Description: c.Description, IsActive: c.IsActive}
}

func (r *PgxTransactionRepository) ListIncomeCategories(ctx context.Context) ([]domain.IncomeCategory, error) {
	rows, err := r.listCategories(ctx, "income_categories")
	if err != nil {
		return nil, err
	}
	out := make([]domain.IncomeCategory, len(rows))
	for i, c := range rows {
		out[i] = c.income()
	}
	return out, nil
}

func (r *PgxTransactionRepository) ListExpenseCategories(ctx context.Context) ([]domain.ExpenseCategory, error) {
	rows, err := r.listCategories(ctx, "expense_categories")
	if err != nil {
		return nil, err
	}
	out := make([]domain.ExpenseCategory, len(rows))
	for i, c := range rows {
		out[i] = c.expense()
	}
	return out, nil
}

func (r *PgxTransactionRepository) FindIncomeCategoryByID(ctx context.Context, categoryID string) (*domain.IncomeCategory, error) {
	c, err := r.findCategory(ctx, "income_categories", "category_id", categoryID)
	if err != nil {
		return nil, err
	}
	cat := c.income()
	return &cat, nil
}

func (r *PgxTransactionRepository) FindExpenseCategoryByID(ctx context.Context, categoryID string) (*domain.ExpenseCategory, error) {
	c, err := r.findCategory(ctx, "expense_categories", "category_id", categoryID)
	if err != nil {
		return nil, err
	}
	cat := c.expense()
	return &cat, nil
}

func (r *PgxTransactionRepository) FindExpenseCategoryByName(ctx context.Context, name string) (*domain.ExpenseCategory, error) {
	c, err := r.findCategory(ctx, "expense_categories", "name", name)
	if err != nil {
		return nil, err
	}
	cat := c.expense()
	return &cat, nil
}

func scanIncome(row rowScanner) (domain.IncomeTransaction, error) {
	var t domain.IncomeTransaction
	err := row.Scan(&t.TransactionID, &t.ProjectID, &t.AccountID, &t.CategoryID, &t.Amount,
		&t.TransactionDate, &t.Notes, &t.CreatedAt, &t.LastUpdatedAt)
	return t, err
}

func scanExpense(row rowScanner) (domain.ExpenseTransaction, error) {
	var t domain.ExpenseTransaction
	err := row.Scan(&t.TransactionID, &t.ProjectID, &t.AccountID, &t.CategoryID, &t.Amount,
		&t.TransactionDate, &t.Phase, &t.IsDirectCost, &t.IsSalary, &t.EmployeeID, &t.Notes,
		&t.CreatedAt, &t.LastUpdatedAt)
	return t, err
}

func (r *PgxTransactionRepository) SaveIncome(ctx context.Context, txn domain.IncomeTransaction) error {
	query := `INSERT INTO income_transactions (` + incomeColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db(ctx).Exec(ctx, query,
		txn.TransactionID, txn.ProjectID, txn.AccountID, txn.CategoryID, txn.Amount,
		txn.TransactionDate, txn.Notes, txn.CreatedAt, txn.LastUpdatedAt)
	if err != nil {
		return writeError("failed to save income "+txn.TransactionID, err)
	}
	return nil
}

func (r *PgxTransactionRepository) FindIncomeByID(ctx context.Context, transactionID string) (*domain.IncomeTransaction, error) {
	t, err := scanIncome(r.db(ctx).QueryRow(ctx, `SELECT `+incomeColumns+` FROM income_transactions WHERE transaction_id = $1`, transactionID))
	if err != nil {
		return nil, readError("income "+transactionID, err)
	}
	return &t, nil
}

func (r *PgxTransactionRepository) UpdateIncome(ctx context.Context, txn domain.IncomeTransaction) error {
	query := `
		UPDATE income_transactions
		SET account_id = $2, category_id = $3, amount = $4, transaction_date = $5, notes = $6, last_updated_at = $7
		WHERE transaction_id = $1`
	tag, err := r.db(ctx).Exec(ctx, query,
		txn.TransactionID, txn.AccountID, txn.CategoryID, txn.Amount, txn.TransactionDate, txn.Notes, txn.LastUpdatedAt)
	if err != nil {
		return writeError("failed to update income "+txn.TransactionID, err)
	}
	return requireRow(tag, "income", txn.TransactionID)
}

func (r *PgxTransactionRepository) DeleteIncome(ctx context.Context, transactionID string) error {
	tag, err := r.db(ctx).Exec(ctx, `DELETE FROM income_transactions WHERE transaction_id = $1`, transactionID)
	if err != nil {
		return writeError("failed to delete income "+transactionID, err)
	}
	return requireRow(tag, "income", transactionID)
}

func (r *PgxTransactionRepository) ListIncome(ctx context.Context, filter portsrepo.TransactionListFilter, limit int, nextToken *string) ([]domain.IncomeTransaction, *string, error) {
	return listPage(ctx, r.db(ctx), "income_transactions", incomeColumns, filter, limit, nextToken, scanIncome,
		func(t domain.IncomeTransaction) (time.Time, string) { return t.TransactionDate, t.TransactionID })
}

func (r *PgxTransactionRepository) SaveExpense(ctx context.Context, txn domain.ExpenseTransaction) error {
	query := `INSERT INTO expense_transactions (` + expenseColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.db(ctx).Exec(ctx, query,
		txn.TransactionID, txn.ProjectID, txn.AccountID, txn.CategoryID, txn.Amount, txn.TransactionDate,
		txn.Phase, txn.IsDirectCost, txn.IsSalary, txn.EmployeeID, txn.Notes, txn.CreatedAt, txn.LastUpdatedAt)
	if err != nil {
		return writeError("failed to save expense "+txn.TransactionID, err)
	}
	return nil
}

func (r *PgxTransactionRepository) FindExpenseByID(ctx context.Context, transactionID string) (*domain.ExpenseTransaction, error) {
	t, err := scanExpense(r.db(ctx).QueryRow(ctx, `SELECT `+expenseColumns+` FROM expense_transactions WHERE transaction_id = $1`, transactionID))
	if err != nil {
		return nil, readError("expense "+transactionID, err)
	}
	return &t, nil
}

func (r *PgxTransactionRepository) UpdateExpense(ctx context.Context, txn domain.ExpenseTransaction) error {
	query := `
		UPDATE expense_transactions
		SET account_id = $2, category_id = $3, amount = $4, transaction_date = $5, phase = $6,
			is_direct_cost = $7, notes = $8, last_updated_at = $9
		WHERE transaction_id = $1`
	tag, err := r.db(ctx).Exec(ctx, query,
		txn.TransactionID, txn.AccountID, txn.CategoryID, txn.Amount, txn.TransactionDate, txn.Phase,
		txn.IsDirectCost, txn.Notes, txn.LastUpdatedAt)
	if err != nil {
		return writeError("failed to update expense "+txn.TransactionID, err)
	}
	return requireRow(tag, "expense", txn.TransactionID)
}

func (r *PgxTransactionRepository) DeleteExpense(ctx context.Context, transactionID string) error {
	tag, err := r.db(ctx).Exec(ctx, `DELETE FROM expense_transactions WHERE transaction_id = $1`, transactionID)
	if err != nil {
		return writeError("failed to delete expense "+transactionID, err)
	}
	return requireRow(tag, "expense", transactionID)
}

func (r *PgxTransactionRepository) ListExpenses(ctx context.Context, filter portsrepo.TransactionListFilter, limit int, nextToken *string) ([]domain.ExpenseTransaction, *string, error) {
	return listPage(ctx, r.db(ctx), "expense_transactions", expenseColumns, filter, limit, nextToken, scanExpense,
		func(t domain.ExpenseTransaction) (time.Time, string) { return t.TransactionDate, t.TransactionID })
}

// listPage reads one keyset page ordered newest first. It fetches limit+1
// rows to learn whether another page exists.
func listPage[T any](
	ctx context.Context,
	db querier,
	table, columns string,
	filter portsrepo.TransactionListFilter,
	limit int,
	nextToken *string,
	scan func(rowScanner) (T, error),
	key func(T) (time.Time, string),
) ([]T, *string, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}

	var c conditions
	c.add("project_id = $%d", filter.ProjectID)
	if filter.AccountID != nil {
		c.add("account_id = $%d", *filter.AccountID)
	}
	if filter.CategoryID != nil {
		c.add("category_id = $%d", *filter.CategoryID)
	}
	if filter.Range != nil {
		c.add("transaction_date BETWEEN $%d AND $%d", domain.DateOnly(filter.Range.Start), domain.DateOnly(filter.Range.End))
	}
	if nextToken != nil && *nextToken != "" {
		cursor, err := pagination.DecodeCursor(*nextToken)
		if err != nil {
			return nil, nil, apperrors.Validationf("invalid nextToken: %v", err)
		}
		c.add("(transaction_date, transaction_id) < ($%d, $%d)", cursor.Date, cursor.ID)
	}

	query := `SELECT ` + columns + ` FROM ` + table + c.where() +
		` ORDER BY transaction_date DESC, transaction_id DESC LIMIT $` + strconv.Itoa(c.next())
	rows, err := db.Query(ctx, query, append(c.args, limit+1)...)
	if err != nil {
		return nil, nil, readError("failed to list "+table, err)
	}
	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (T, error) {
		return scan(row)
	})
	if err != nil {
		return nil, nil, readError("failed to scan "+table, err)
	}

	if len(items) <= limit {
		return items, nil, nil
	}
	items = items[:limit]
	date, id := key(items[limit-1])
	token := pagination.EncodeCursor(date, id)
	return items, &token, nil
}
