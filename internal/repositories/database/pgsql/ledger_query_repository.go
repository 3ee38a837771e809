package pgsql

import (
	"context"
	"time"

	"github.com/SscSPs/project_books/internal/apperrors"
	"github.com/SscSPs/project_books/internal/core/domain"
	portsrepo "github.com/SscSPs/project_books/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type PgxLedgerQueryRepository struct {
	BaseRepository
}

var _ portsrepo.LedgerQueryRepository = (*PgxLedgerQueryRepository)(nil)

// setSource maps an entity set onto SQL expressions. Empty phase or
// directCost means the set carries no such attribute.
type setSource struct {
	from         string
	project      string
	account      string
	date         string
	amount       string
	categoryID   string
	categoryName string
	phase        string
	directCost   string
	debtType     string
	paid         string
}

var setSources = map[domain.EntitySet]setSource{
	domain.SetIncome: {
		from:    "income_transactions t JOIN income_categories c ON c.category_id = t.category_id",
		project: "t.project_id", account: "t.account_id", date: "t.transaction_date", amount: "t.amount",
		categoryID: "t.category_id", categoryName: "c.name",
		debtType: "''", paid: "FALSE",
	},
	domain.SetExpense: {
		from:    "expense_transactions t JOIN expense_categories c ON c.category_id = t.category_id",
		project: "t.project_id", account: "t.account_id", date: "t.transaction_date", amount: "t.amount",
		categoryID: "t.category_id", categoryName: "c.name", phase: "t.phase", directCost: "t.is_direct_cost",
		debtType: "''", paid: "FALSE",
	},
	domain.SetLoanReceived: {
		from:    "loans l",
		project: "l.project_id", account: "l.account_id", date: "l.received_date", amount: "l.amount",
		debtType: "''", paid: "l.is_paid",
	},
	domain.SetLoanOutstanding: {
		from:    "loans l",
		project: "l.project_id", account: "l.account_id", date: "l.received_date", amount: "l.remaining_amount",
		debtType: "''", paid: "l.is_paid",
	},
	domain.SetLoanRepaid: {
		from:    "loan_payments p JOIN loans l ON l.loan_id = p.loan_id",
		project: "l.project_id", account: "p.account_id", date: "p.payment_date", amount: "p.amount",
		debtType: "''", paid: "l.is_paid",
	},
	domain.SetDebtOriginal: {
		from:    "debts d",
		project: "d.project_id", account: "COALESCE(d.account_id, '')", date: "(d.created_at AT TIME ZONE 'UTC')::date",
		amount: "d.original_amount", debtType: "d.debt_type", paid: "d.is_paid",
	},
	domain.SetDebtOutstanding: {
		from:    "debts d",
		project: "d.project_id", account: "COALESCE(d.account_id, '')", date: "(d.created_at AT TIME ZONE 'UTC')::date",
		amount: "d.remaining_amount", debtType: "d.debt_type", paid: "d.is_paid",
	},
	domain.SetDebtRepaid: {
		from:    "debt_payments p JOIN debts d ON d.debt_id = p.debt_id",
		project: "d.project_id", account: "COALESCE(p.account_id, '')", date: "p.payment_date", amount: "p.amount",
		debtType: "d.debt_type", paid: "d.is_paid",
	},
}

// compile validates the request and builds FROM + WHERE for it.
func compile(set domain.EntitySet, f domain.LedgerFilter) (setSource, string, []any, error) {
	if f.ProjectID == "" {
		return setSource{}, "", nil, apperrors.Validationf("project id is required")
	}
	src, ok := setSources[set]
	if !ok {
		return setSource{}, "", nil, apperrors.Validationf("unknown entity set %q", set)
	}

	var c conditions
	c.add(src.project+" = $%d", f.ProjectID)
	if f.AccountID != nil {
		c.add(src.account+" = $%d", *f.AccountID)
	}
	if f.Range != nil {
		c.add(src.date+" BETWEEN $%d AND $%d", domain.DateOnly(f.Range.Start), domain.DateOnly(f.Range.End))
	}
	if f.Phase != nil {
		if src.phase == "" {
			c.add("FALSE")
		} else {
			c.add(src.phase+" = $%d", *f.Phase)
		}
	}
	if f.IsDirectCost != nil {
		if src.directCost == "" {
			c.add("FALSE")
		} else {
			c.add(src.directCost+" = $%d", *f.IsDirectCost)
		}
	}
	if f.DebtType != nil {
		c.add(src.debtType+" = $%d", *f.DebtType)
	}
	if f.Paid != nil {
		c.add(src.paid+" = $%d", *f.Paid)
	}
	return src, " FROM " + src.from + c.where(), c.args, nil
}

func (r *PgxLedgerQueryRepository) SumAmount(ctx context.Context, set domain.EntitySet, filter domain.LedgerFilter) (decimal.Decimal, error) {
	src, body, args, err := compile(set, filter)
	if err != nil {
		return decimal.Zero, err
	}
	var total decimal.Decimal
	if err := r.db(ctx).QueryRow(ctx, `SELECT COALESCE(SUM(`+src.amount+`), 0)`+body, args...).Scan(&total); err != nil {
		return decimal.Zero, readError("failed to sum "+string(set), err)
	}
	return total, nil
}

// GroupByCategory orders by descending total, then category name.
func (r *PgxLedgerQueryRepository) GroupByCategory(ctx context.Context, set domain.EntitySet, filter domain.LedgerFilter) ([]domain.CategoryAmount, error) {
	src, body, args, err := compile(set, filter)
	if err != nil {
		return nil, err
	}
	if src.categoryID == "" {
		return nil, apperrors.Validationf("entity set %q has no categories", set)
	}

	query := `SELECT ` + src.categoryID + `, ` + src.categoryName + `, SUM(` + src.amount + `)` + body +
		` GROUP BY 1, 2 ORDER BY 3 DESC, 2, 1`
	rows, err := r.db(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, readError("failed to group "+string(set), err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.CategoryAmount, error) {
		var c domain.CategoryAmount
		err := row.Scan(&c.CategoryID, &c.CategoryName, &c.Total)
		return c, err
	})
	if err != nil {
		return nil, readError("failed to scan "+string(set)+" groups", err)
	}
	return out, nil
}

func (r *PgxLedgerQueryRepository) MonthlyTotals(ctx context.Context, set domain.EntitySet, filter domain.LedgerFilter) ([]domain.MonthAmount, error) {
	src, body, args, err := compile(set, filter)
	if err != nil {
		return nil, err
	}

	query := `SELECT EXTRACT(YEAR FROM ` + src.date + `)::int, EXTRACT(MONTH FROM ` + src.date + `)::int, SUM(` + src.amount + `)` +
		body + ` GROUP BY 1, 2 ORDER BY 1, 2`
	rows, err := r.db(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, readError("failed to total "+string(set)+" by month", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.MonthAmount, error) {
		var m domain.MonthAmount
		var month int
		err := row.Scan(&m.Year, &month, &m.Total)
		m.Month = time.Month(month)
		return m, err
	})
	if err != nil {
		return nil, readError("failed to scan monthly "+string(set), err)
	}
	return out, nil
}

func (r *PgxLedgerQueryRepository) SumAccountBalances(ctx context.Context, projectID string, accountID *string) (decimal.Decimal, error) {
	if projectID == "" {
		return decimal.Zero, apperrors.Validationf("project id is required")
	}
	var c conditions
	c.add("project_id = $%d", projectID)
	if accountID != nil {
		c.add("account_id = $%d", *accountID)
	} else {
		c.add("is_active")
	}
	var total decimal.Decimal
	if err := r.db(ctx).QueryRow(ctx, `SELECT COALESCE(SUM(current_balance), 0) FROM accounts`+c.where(), c.args...).Scan(&total); err != nil {
		return decimal.Zero, readError("failed to sum account balances", err)
	}
	return total, nil
}
