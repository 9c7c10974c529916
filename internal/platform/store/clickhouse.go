package store

import (
	"context"

	chx "agenda/internal/platform/store/ch"
)

// clickhouse adapts *ch.CH to the Clickhouse seam
type clickhouse struct{ c *chx.CH }

func (a clickhouse) Insert(ctx context.Context, table string, rows [][]any) error {
	return a.c.Insert(ctx, table, rows)
}

func (a clickhouse) Exec(ctx context.Context, sql string, args ...any) error {
	return a.c.Exec(ctx, sql, args...)
}

func (a clickhouse) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	r, err := a.c.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return chRows{r}, nil
}

func (a clickhouse) Ping(ctx context.Context) error { return a.c.Ping(ctx) }

func (a clickhouse) Close() error { return a.c.Close() }

// chRows drops the error from Close so driver rows fit Rows
type chRows struct{ chx.Rows }

func (r chRows) Close() { _ = r.Rows.Close() }
