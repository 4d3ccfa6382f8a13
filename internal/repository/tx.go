package repository

import (
	"context"
	"errors"
	"fmt"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/shop-pricing/internal/db"
	"github.com/nikolayk812/shop-pricing/internal/port"
)

// InTx runs fn with a cart repository and an event store that share one transaction,
// so a cart snapshot and its drained events are committed together.
func InTx(ctx context.Context, pool *pgxpool.Pool, fn func(carts port.CartRepository, events port.EventStore) error) error {
	if pool == nil {
		return fmt.Errorf("pool is nil")
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("pool.Begin: %w", err)
	}

	if err := fn(NewCartWithTx(tx), NewEventStoreWithTx(tx)); err != nil {
		return rollback(ctx, tx, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("tx.Commit: %w", err)
	}

	return nil
}

func withTx[T any](ctx context.Context, pool *pgxpool.Pool, q *db.Queries, fn func(q *db.Queries) (T, error)) (T, error) {
	var zero T

	if pool == nil {
		return fn(q)
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return zero, fmt.Errorf("pool.Begin: %w", err)
	}

	result, err := fn(q.WithTx(tx))
	if err != nil {
		return zero, rollback(ctx, tx, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return zero, fmt.Errorf("tx.Commit: %w", err)
	}

	return result, nil
}

func rollback(ctx context.Context, tx pgx.Tx, cause error) error {
	rollbackErr := tx.Rollback(ctx)
	if rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
		return errors.Join(cause, fmt.Errorf("tx.Rollback: %w", rollbackErr))
	}

	return cause
}
