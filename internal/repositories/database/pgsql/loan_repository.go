package pgsql

import (
	"context"

	"github.com/SscSPs/project_books/internal/core/domain"
	portsrepo "github.com/SscSPs/project_books/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
)

type PgxLoanRepository struct {
	BaseRepository
}

var _ portsrepo.LoanRepositoryFacade = (*PgxLoanRepository)(nil)

const (
	loanColumns = `loan_id, project_id, lender_name, amount, remaining_amount, received_date, due_date,
		interest_rate, is_paid, account_id, notes, created_at, last_updated_at`
	loanPaymentColumns = `payment_id, loan_id, amount, payment_date, account_id, notes, created_at`
)

func scanLoan(row rowScanner) (domain.Loan, error) {
	var l domain.Loan
	err := row.Scan(&l.LoanID, &l.ProjectID, &l.LenderName, &l.Amount, &l.RemainingAmount, &l.ReceivedDate,
		&l.DueDate, &l.InterestRate, &l.IsPaid, &l.AccountID, &l.Notes, &l.CreatedAt, &l.LastUpdatedAt)
	return l, err
}

func (r *PgxLoanRepository) SaveLoan(ctx context.Context, loan domain.Loan) error {
	query := `INSERT INTO loans (` + loanColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.db(ctx).Exec(ctx, query,
		loan.LoanID, loan.ProjectID, loan.LenderName, loan.Amount, loan.RemainingAmount, loan.ReceivedDate,
		loan.DueDate, loan.InterestRate, loan.IsPaid, loan.AccountID, loan.Notes, loan.CreatedAt, loan.LastUpdatedAt)
	if err != nil {
		return writeError("failed to save loan "+loan.LoanID, err)
	}
	return nil
}

func (r *PgxLoanRepository) FindLoanByID(ctx context.Context, loanID string) (*domain.Loan, error) {
	l, err := scanLoan(r.db(ctx).QueryRow(ctx, `SELECT `+loanColumns+` FROM loans WHERE loan_id = $1`, loanID))
	if err != nil {
		return nil, readError("loan "+loanID, err)
	}
	return &l, nil
}

func (r *PgxLoanRepository) UpdateLoan(ctx context.Context, loan domain.Loan) error {
	query := `
		UPDATE loans
		SET lender_name = $2, remaining_amount = $3, due_date = $4, interest_rate = $5, is_paid = $6,
			notes = $7, last_updated_at = $8
		WHERE loan_id = $1`
	tag, err := r.db(ctx).Exec(ctx, query,
		loan.LoanID, loan.LenderName, loan.RemainingAmount, loan.DueDate, loan.InterestRate, loan.IsPaid,
		loan.Notes, loan.LastUpdatedAt)
	if err != nil {
		return writeError("failed to update loan "+loan.LoanID, err)
	}
	return requireRow(tag, "loan", loan.LoanID)
}

func (r *PgxLoanRepository) DeleteLoan(ctx context.Context, loanID string) error {
	tag, err := r.db(ctx).Exec(ctx, `DELETE FROM loans WHERE loan_id = $1`, loanID)
	if err != nil {
		return writeError("failed to delete loan "+loanID, err)
	}
	return requireRow(tag, "loan", loanID)
}

func (r *PgxLoanRepository) ListLoans(ctx context.Context, projectID string, paid *bool) ([]domain.Loan, error) {
	var c conditions
	c.add("project_id = $%d", projectID)
	if paid != nil {
		c.add("is_paid = $%d", *paid)
	}
	query := `SELECT ` + loanColumns + ` FROM loans` + c.where() + ` ORDER BY received_date DESC, created_at DESC, loan_id`

	rows, err := r.db(ctx).Query(ctx, query, c.args...)
	if err != nil {
		return nil, readError("failed to list loans", err)
	}
	loans, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Loan, error) {
		return scanLoan(row)
	})
	if err != nil {
		return nil, readError("failed to scan loans", err)
	}
	return loans, nil
}

func (r *PgxLoanRepository) SaveLoanPayment(ctx context.Context, payment domain.LoanPayment) error {
	query := `INSERT INTO loan_payments (` + loanPaymentColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db(ctx).Exec(ctx, query,
		payment.PaymentID, payment.LoanID, payment.Amount, payment.PaymentDate, payment.AccountID, payment.Notes, payment.CreatedAt)
	if err != nil {
		return writeError("failed to save loan payment "+payment.PaymentID, err)
	}
	return nil
}

func (r *PgxLoanRepository) ListLoanPayments(ctx context.Context, loanID string) ([]domain.LoanPayment, error) {
	query := `SELECT ` + loanPaymentColumns + ` FROM loan_payments WHERE loan_id = $1 ORDER BY payment_date, created_at`
	rows, err := r.db(ctx).Query(ctx, query, loanID)
	if err != nil {
		return nil, readError("failed to list loan payments", err)
	}
	payments, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.LoanPayment, error) {
		var p domain.LoanPayment
		err := row.Scan(&p.PaymentID, &p.LoanID, &p.Amount, &p.PaymentDate, &p.AccountID, &p.Notes, &p.CreatedAt)
		return p, err
	})
	if err != nil {
		return nil, readError("failed to scan loan payments", err)
	}
	return payments, nil
}
