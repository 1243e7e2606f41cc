package repo_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mnapio/tripbook/backend/internal/domain"
	"github.com/mnapio/tripbook/backend/internal/repo"
	"github.com/mnapio/tripbook/backend/testutil"
)

// These tests exercise the real commit/rollback behavior, so they run against
// the pool directly instead of a rolled-back test transaction. Rows created by
// a committed transaction are removed in t.Cleanup.

func TestTxRunner_Commit(t *testing.T) {
	pool := testutil.NewPool(t)
	runner := repo.NewTxRunner(pool)
	trips := repo.NewTripRepo(pool)
	ctx := context.Background()

	var created domain.Trip
	err := runner.WithTx(ctx, func(txCtx context.Context) error {
		var err error
		created, err = trips.Create(txCtx, tripFixture())
		return err
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), "DELETE FROM trips WHERE id = $1", created.ID)
	})

	// Visible outside the transaction after commit.
	got, err := trips.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Name, got.Name)
}

func TestTxRunner_RollbackOnError(t *testing.T) {
	pool := testutil.NewPool(t)
	runner := repo.NewTxRunner(pool)
	trips := repo.NewTripRepo(pool)
	ctx := context.Background()

	boom := errors.New("boom")
	var created domain.Trip
	err := runner.WithTx(ctx, func(txCtx context.Context) error {
		var err error
		created, err = trips.Create(txCtx, tripFixture())
		require.NoError(t, err)
		return boom
	})

	assert.ErrorIs(t, err, boom)

	// The insert must have been rolled back with the transaction.
	_, err = trips.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTxRunner_NestedJoinsOuter(t *testing.T) {
	pool := testutil.NewPool(t)
	runner := repo.NewTxRunner(pool)
	trips := repo.NewTripRepo(pool)
	ctx := context.Background()

	boom := errors.New("boom")
	var created domain.Trip
	err := runner.WithTx(ctx, func(outerCtx context.Context) error {
		// The inner WithTx must join the outer transaction, not open its own.
		innerErr := runner.WithTx(outerCtx, func(innerCtx context.Context) error {
			var err error
			created, err = trips.Create(innerCtx, tripFixture())
			return err
		})
		require.NoError(t, innerErr)
		return boom
	})

	assert.ErrorIs(t, err, boom)

	// Had the inner call committed independently, the trip would survive the
	// outer rollback.
	_, err = trips.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
