package database

import "context"

// Transactor runs fn inside a single database transaction. Repositories
// called with txCtx take part in that transaction.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(txCtx context.Context) error) error
}
