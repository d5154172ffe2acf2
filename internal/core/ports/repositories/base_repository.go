package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactionManager opens the read-committed transactions ledger mutations run in.
// Row locks taken with SELECT ... FOR UPDATE inside tx last until Commit or Rollback.
type TransactionManager interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Commit(ctx context.Context, tx pgx.Tx) error
	// Rollback is a no-op on a transaction that is already closed.
	Rollback(ctx context.Context, tx pgx.Tx) error
	// WithTx commits when fn returns nil and rolls back on error or panic.
	WithTx(ctx context.Context, fn func(tx pgx.Tx) error) error
}
