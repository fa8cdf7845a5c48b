package postgresql

import (
	"context"
	"fmt"

	"github.com/staffcore/payroll-backend-go/internal/pkg/database"
)

type querierKey struct{}

// WithQuerier returns a context that routes repository statements through q
// instead of the pool. WithTransaction uses it to run a whole unit of work on
// one transaction; tests use it to substitute a mock.
func WithQuerier(ctx context.Context, q database.Querier) context.Context {
	return context.WithValue(ctx, querierKey{}, q)
}

// GetQuerier returns the querier bound to the context, or the pool.
func GetQuerier(ctx context.Context, db *database.DB) database.Querier {
	if q, ok := ctx.Value(querierKey{}).(database.Querier); ok {
		return q
	}
	return db.Pool
}

// WithTransaction executes fn inside a database transaction. The querier is
// threaded through the context so repository methods called from fn join the
// same transaction.
func WithTransaction(ctx context.Context, db *database.DB, fn func(ctx context.Context) error) error {
	tx, err := db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
	}()

	if err := fn(WithQuerier(ctx, tx)); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("rollback error: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}
