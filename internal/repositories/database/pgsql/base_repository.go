package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zahidx/cashbook/internal/apperrors"
)

// maxCommitAttempts bounds the optimistic retry loop: pathological contention
// must fail loudly with ErrConflict instead of retrying forever.
const maxCommitAttempts = 5

// Postgres SQLSTATE codes signalling a commit collision between concurrent
// serializable transactions.
const (
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgUniqueViolation      = "23505"
)

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// CommitAtomic runs fn inside a SERIALIZABLE transaction and commits it.
// On a commit collision (another transaction superseded a value fn read) the
// whole unit is retried with fresh reads, up to maxCommitAttempts; exhaustion
// surfaces apperrors.ErrConflict. Any error leaves the store untouched.
func (r *BaseRepository) CommitAtomic(ctx context.Context, fn func(pgx.Tx) error) error {
	var err error
	for attempt := 1; attempt <= maxCommitAttempts; attempt++ {
		err = r.commitOnce(ctx, fn)
		if err == nil {
			return nil
		}
		if !isCommitCollision(err) {
			return err
		}
	}
	return fmt.Errorf("%w: gave up after %d attempts: %v", apperrors.ErrConflict, maxCommitAttempts, err)
}

func (r *BaseRepository) commitOnce(ctx context.Context, fn func(pgx.Tx) error) error {
	tx, err := r.Pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return fmt.Errorf("%w: failed to begin transaction: %v", apperrors.ErrStoreUnavailable, err)
	}
	defer func() {
		// No-op once the transaction is committed.
		_ = tx.Rollback(ctx)
	}()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func isCommitCollision(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgSerializationFailure || pgErr.Code == pgDeadlockDetected
	}
	return false
}
