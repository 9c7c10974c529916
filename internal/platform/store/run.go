package store

import "context"

// RunLocked calls fn inside a transaction that first takes a transaction scoped
// advisory lock on key; concurrent callers with the same key run one after another
// the lock is released on commit or rollback
func RunLocked(ctx context.Context, tx TxRunner, key string, fn func(q RowQuerier) error) error {
	return tx.Tx(ctx, func(q RowQuerier) error {
		if _, err := q.Exec(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", key); err != nil {
			return err
		}
		return fn(q)
	})
}
