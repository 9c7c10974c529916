// Package repokit binds domain repos to a pool or to an open transaction
package repokit

import (
	"context"

	"agenda/internal/platform/store"
)

type (
	// Queryer is what a bound repo runs statements on
	Queryer = store.RowQuerier

	// TxRunner opens transactions
	TxRunner = store.TxRunner
)

// Binder builds a repo on top of a Queryer
type Binder[T any] interface {
	Bind(Queryer) T
}

// BindFunc adapts a plain function to Binder
type BindFunc[T any] func(Queryer) T

// Bind calls f
func (f BindFunc[T]) Bind(q Queryer) T { return f(q) }

// MustBind binds q and panics when q is nil
func MustBind[T any](b Binder[T], q Queryer) T {
	if q == nil {
		panic("repokit: nil Queryer")
	}
	return b.Bind(q)
}

// InTx runs fn with a repo bound to a fresh transaction
func InTx[T any](ctx context.Context, db TxRunner, b Binder[T], fn func(r T) error) error {
	return db.Tx(ctx, func(q Queryer) error {
		return fn(MustBind(b, q))
	})
}
