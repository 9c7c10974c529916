// Package store opens the storage backends and exposes them behind small seams
package store

import (
	"context"
	"errors"
	"time"

	"agenda/internal/platform/logger"
	chx "agenda/internal/platform/store/ch"
	"agenda/internal/platform/store/pg"
)

// Store holds the opened backends; a disabled backend stays nil
type Store struct {
	Log logger.Logger

	PG TxRunner
	CH Clickhouse
}

// Row is a single row result
type Row interface {
	Scan(dest ...any) error
}

// Rows is an open result set; callers must Close it
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
}

// CommandTag reports what a statement did
type CommandTag interface {
	String() string
	RowsAffected() int64
}

// RowQuerier is the sql surface repos use
type RowQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// TxRunner runs fn inside a transaction; fn returning an error rolls back
type TxRunner interface {
	RowQuerier
	Tx(ctx context.Context, fn func(q RowQuerier) error) error
}

// Clickhouse is the columnar surface the activity ledger uses
type Clickhouse interface {
	Insert(ctx context.Context, table string, rows [][]any) error
	Exec(ctx context.Context, sql string, args ...any) error
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	Close() error
}

// Open connects every enabled backend
// on failure anything already opened is closed again
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{}
	for _, o := range opts {
		o(s)
	}

	if cfg.PG.Enabled {
		tr := &pg.Tracer{
			Log:  s.Log.With().Str("component", "pg").Logger(),
			Slow: time.Duration(cfg.PG.SlowQueryMs) * time.Millisecond,
			All:  cfg.PG.LogSQL,
		}
		pool, err := pg.Open(ctx, pg.Config{
			URL:      cfg.PG.URL,
			MaxConns: cfg.PG.MaxConns,
			AppName:  cfg.AppName,
			Tracer:   tr,
		})
		if err != nil {
			return nil, err
		}
		s.PG = newPostgres(pool)
		s.Log.Info().Int32("max_conns", pool.Config().MaxConns).Msg("postgres ready")
	}

	if cfg.CH.Enabled {
		c, err := chx.Open(ctx, chx.Config{
			URL:        cfg.CH.URL,
			ClientName: cfg.CH.ClientName,
			Role:       cfg.CH.ClientTag,
		})
		if err != nil {
			_ = s.Close(ctx)
			return nil, err
		}
		s.CH = clickhouse{c}
	}

	return s, nil
}

// Close releases every opened backend
func (s *Store) Close(context.Context) error {
	var errs []error
	if s.CH != nil {
		errs = append(errs, s.CH.Close())
	}
	if c, ok := s.PG.(interface{ Close() error }); ok {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
