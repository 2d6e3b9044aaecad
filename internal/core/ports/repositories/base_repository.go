package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactionManager is implemented by repositories whose multi-statement
// operations must run atomically, such as a status change plus its review
// comment.
type TransactionManager interface {
	// Begin opens a database transaction.
	Begin(ctx context.Context) (pgx.Tx, error)

	// Commit finalizes the transaction.
	Commit(ctx context.Context, tx pgx.Tx) error

	// Rollback abandons the transaction. Rolling back an already finished
	// transaction is not an error.
	Rollback(ctx context.Context, tx pgx.Tx) error
}
