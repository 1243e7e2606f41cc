package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// txKey is the context key under which an open pgx.Tx travels.
// Repos check for it before falling back to their pooled connection, so every
// query issued inside TxRunner.WithTx automatically joins the transaction.
type txKey struct{}

// beginner is the subset of *pgxpool.Pool needed to start a transaction.
// pgx.Tx also satisfies it (nested calls become savepoints), but WithTx
// short-circuits re-entrant use instead.
type beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// TxRunner runs a function inside a single database transaction.
// The booking service depends on this interface so unit tests can substitute
// a pass-through implementation with no database at all.
type TxRunner interface {
	// WithTx begins a transaction, runs fn with the transaction carried in the
	// context, and commits if fn returns nil. Any error from fn rolls the
	// whole transaction back — no partial write survives. If the context
	// already carries a transaction, fn joins it instead of nesting.
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type pgTxRunner struct {
	db beginner
}

// NewTxRunner constructs a TxRunner on top of a *pgxpool.Pool.
func NewTxRunner(db beginner) TxRunner {
	return &pgTxRunner{db: db}
}

func (r *pgTxRunner) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if txFromContext(ctx) != nil {
		return fn(ctx)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("repo.TxRunner.WithTx: begin: %w", err)
	}

	txCtx := context.WithValue(ctx, txKey{}, tx)
	if err := fn(txCtx); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("repo.TxRunner.WithTx: commit: %w", err)
	}
	return nil
}

// txFromContext returns the transaction carried in ctx, or nil.
func txFromContext(ctx context.Context) pgx.Tx {
	tx, _ := ctx.Value(txKey{}).(pgx.Tx)
	return tx
}

// isCheckViolation reports whether err is a Postgres CHECK constraint
// violation (SQLSTATE 23514). The slots_available >= 0 column constraint is
// the database-level backstop behind the capacity guard in DecrementSlots.
func isCheckViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23514"
}

// isUniqueViolation reports whether err is a Postgres unique constraint
// violation (SQLSTATE 23505), e.g. a duplicate trip name.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// isForeignKeyViolation reports whether err is a Postgres foreign key
// violation (SQLSTATE 23503), e.g. a reservation pointing at a missing trip.
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
