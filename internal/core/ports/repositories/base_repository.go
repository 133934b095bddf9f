package repositories

import (
	"context"
)

// TransactionManager runs a unit of work atomically.
// Repository calls made with the ctx passed to fn join the transaction;
// fn returning an error rolls everything back.
type TransactionManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
