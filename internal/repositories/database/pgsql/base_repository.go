package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/project_books/internal/apperrors"
	portsrepo "github.com/SscSPs/project_books/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// querier is the subset of pgx shared by the pool and a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

type txKey struct{}

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// db returns the transaction bound to ctx by WithinTx, or the pool.
func (r *BaseRepository) db(ctx context.Context) querier {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx
	}
	return r.Pool
}

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.Storage("failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return apperrors.Storage("failed to commit transaction", err)
	}
	return nil
}

// Rollback rolls back a transaction
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) && !errors.Is(err, sql.ErrTxDone) {
		return apperrors.Storage("failed to rollback transaction", err)
	}
	return nil
}

// TxManager implements portsrepo.TransactionManager over a pgx pool.
type TxManager struct {
	BaseRepository
}

var _ portsrepo.TransactionManager = (*TxManager)(nil)

// WithinTx runs fn in one database transaction. A nested call joins the
// transaction already bound to ctx.
func (m *TxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return fn(ctx)
	}

	tx, err := m.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if p := recover(); p != nil {
			_ = m.Rollback(ctx, tx)
			panic(p)
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		if rbErr := m.Rollback(ctx, tx); rbErr != nil {
			slog.ErrorContext(ctx, "Rollback failed", slog.String("error", rbErr.Error()))
		}
		return err
	}
	return m.Commit(ctx, tx)
}

// rowScanner is satisfied by pgx.Row and pgx.CollectableRow.
type rowScanner interface {
	Scan(dest ...any) error
}

// readError maps pgx.ErrNoRows to apperrors.ErrNotFound.
func readError(op string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NotFoundf("%s", op)
	}
	return apperrors.Storage(op, err)
}

// writeError maps constraint violations to domain errors.
func writeError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%w: %s", apperrors.ErrDuplicate, op)
		case "23503": // foreign_key_violation
			return apperrors.Validationf("%s: referenced row does not exist (%s)", op, pgErr.ConstraintName)
		case "23514": // check_violation
			return apperrors.Validationf("%s: check %s failed", op, pgErr.ConstraintName)
		}
	}
	return apperrors.Storage(op, err)
}

// requireRow turns a zero-row UPDATE or DELETE into ErrNotFound.
func requireRow(tag pgconn.CommandTag, what, id string) error {
	if tag.RowsAffected() == 0 {
		return apperrors.NotFoundf("%s %s", what, id)
	}
	return nil
}

// conditions accumulates WHERE clauses with positional arguments.
type conditions struct {
	clauses []string
	args    []any
}

// add appends a clause whose %d verbs are replaced by the next placeholders.
func (c *conditions) add(format string, values ...any) {
	idx := make([]any, len(values))
	for i, v := range values {
		c.args = append(c.args, v)
		idx[i] = len(c.args)
	}
	c.clauses = append(c.clauses, fmt.Sprintf(format, idx...))
}

func (c *conditions) where() string {
	if len(c.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(c.clauses, " AND ")
}

func (c *conditions) next() int {
	return len(c.args) + 1
}
