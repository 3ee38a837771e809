package pgsql

import (
	"context"

	"github.com/SscSPs/project_books/internal/core/domain"
	portsrepo "github.com/SscSPs/project_books/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
)

type PgxDebtRepository struct {
	BaseRepository
}

var _ portsrepo.DebtRepositoryFacade = (*PgxDebtRepository)(nil)

const (
	debtColumns = `debt_id, project_id, debt_type, person_name, original_amount, remaining_amount, due_date,
		payment_status, is_paid, account_id, notes, created_at, last_updated_at`
	debtPaymentColumns = `payment_id, debt_id, amount, payment_date, account_id, notes, created_at`
)

func scanDebt(row rowScanner) (domain.Debt, error) {
	var d domain.Debt
	err := row.Scan(&d.DebtID, &d.ProjectID, &d.DebtType, &d.PersonName, &d.OriginalAmount, &d.RemainingAmount,
		&d.DueDate, &d.PaymentStatus, &d.IsPaid, &d.AccountID, &d.Notes, &d.CreatedAt, &d.LastUpdatedAt)
	return d, err
}

func (r *PgxDebtRepository) SaveDebt(ctx context.Context, debt domain.Debt) error {
	query := `INSERT INTO debts (` + debtColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.db(ctx).Exec(ctx, query,
		debt.DebtID, debt.ProjectID, debt.DebtType, debt.PersonName, debt.OriginalAmount, debt.RemainingAmount,
		debt.DueDate, debt.PaymentStatus, debt.IsPaid, debt.AccountID, debt.Notes, debt.CreatedAt, debt.LastUpdatedAt)
	if err != nil {
		return writeError("failed to save debt "+debt.DebtID, err)
	}
	return nil
}

func (r *PgxDebtRepository) FindDebtByID(ctx context.Context, debtID string) (*domain.Debt, error) {
	d, err := scanDebt(r.db(ctx).QueryRow(ctx, `SELECT `+debtColumns+` FROM debts WHERE debt_id = $1`, debtID))
	if err != nil {
		return nil, readError("debt "+debtID, err)
	}
	return &d, nil
}

func (r *PgxDebtRepository) UpdateDebt(ctx context.Context, debt domain.Debt) error {
	query := `
		UPDATE debts
		SET person_name = $2, remaining_amount = $3, due_date = $4, payment_status = $5, is_paid = $6,
			notes = $7, last_updated_at = $8
		WHERE debt_id = $1`
	tag, err := r.db(ctx).Exec(ctx, query,
		debt.DebtID, debt.PersonName, debt.RemainingAmount, debt.DueDate, debt.PaymentStatus, debt.IsPaid,
		debt.Notes, debt.LastUpdatedAt)
	if err != nil {
		return writeError("failed to update debt "+debt.DebtID, err)
	}
	return requireRow(tag, "debt", debt.DebtID)
}

// DeleteDebt relies on ON DELETE CASCADE for the payments.
func (r *PgxDebtRepository) DeleteDebt(ctx context.Context, debtID string) error {
	tag, err := r.db(ctx).Exec(ctx, `DELETE FROM debts WHERE debt_id = $1`, debtID)
	if err != nil {
		return writeError("failed to delete debt "+debtID, err)
	}
	return requireRow(tag, "debt", debtID)
}

func (r *PgxDebtRepository) ListDebts(ctx context.Context, filter portsrepo.DebtListFilter) ([]domain.Debt, error) {
	var c conditions
	c.add("project_id = $%d", filter.ProjectID)
	if filter.DebtType != nil {
		c.add("debt_type = $%d", *filter.DebtType)
	}
	if filter.Status != nil {
		c.add("payment_status = $%d", *filter.Status)
	}
	query := `SELECT ` + debtColumns + ` FROM debts` + c.where() + ` ORDER BY due_date ASC NULLS LAST, created_at, debt_id`

	rows, err := r.db(ctx).Query(ctx, query, c.args...)
	if err != nil {
		return nil, readError("failed to list debts", err)
	}
	debts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Debt, error) {
		return scanDebt(row)
	})
	if err != nil {
		return nil, readError("failed to scan debts", err)
	}
	return debts, nil
}

func (r *PgxDebtRepository) SaveDebtPayment(ctx context.Context, payment domain.DebtPayment) error {
	query := `INSERT INTO debt_payments (` + debtPaymentColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db(ctx).Exec(ctx, query,
		payment.PaymentID, payment.DebtID, payment.Amount, payment.PaymentDate, payment.AccountID, payment.Notes, payment.CreatedAt)
	if err != nil {
		return writeError("failed to save debt payment "+payment.PaymentID, err)
	}
	return nil
}

func (r *PgxDebtRepository) ListDebtPayments(ctx context.Context, debtID string) ([]domain.DebtPayment, error) {
	query := `SELECT ` + debtPaymentColumns + ` FROM debt_payments WHERE debt_id = $1 ORDER BY payment_date, created_at`
	rows, err := r.db(ctx).Query(ctx, query, debtID)
	if err != nil {
		return nil, readError("failed to list debt payments", err)
	}
	payments, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.DebtPayment, error) {
		var p domain.DebtPayment
		err := row.Scan(&p.PaymentID, &p.DebtID, &p.Amount, &p.PaymentDate, &p.AccountID, &p.Notes, &p.CreatedAt)
		return p, err
	})
	if err != nil {
		return nil, readError("failed to scan debt payments", err)
	}
	return payments, nil
}
