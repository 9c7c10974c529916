// Package migrate applies the embedded postgres schema
// files under sql/ are named NNNN_name.sql and run once each, in version order
package migrate

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"

	"agenda/internal/platform/logger"
	"agenda/internal/platform/store"
)

//go:embed sql/*.sql
var files embed.FS

// lockKey serialises concurrent boots of several api replicas
const lockKey = "agenda:schema_migrations"

const ddl = `CREATE TABLE IF NOT EXISTS schema_migrations (
    version    integer PRIMARY KEY,
    name       text NOT NULL,
    applied_at timestamp NOT NULL DEFAULT (now() AT TIME ZONE 'utc')
)`

// Migration is one embedded schema step
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// Load returns the embedded migrations sorted by version
func Load() ([]Migration, error) { return load(files) }

func load(fsys fs.FS) ([]Migration, error) {
	names, err := fs.Glob(fsys, "sql/*.sql")
	if err != nil {
		return nil, err
	}
	out := make([]Migration, 0, len(names))
	seen := map[int]string{}
	for _, n := range names {
		base := strings.TrimSuffix(path.Base(n), ".sql")
		num, label, ok := strings.Cut(base, "_")
		if !ok {
			return nil, fmt.Errorf("migrate: %s: want NNNN_name.sql", n)
		}
		v, err := strconv.Atoi(num)
		if err != nil || v <= 0 {
			return nil, fmt.Errorf("migrate: %s: bad version %q", n, num)
		}
		if prev, dup := seen[v]; dup {
			return nil, fmt.Errorf("migrate: version %d used by %s and %s", v, prev, n)
		}
		seen[v] = n
		body, err := fs.ReadFile(fsys, n)
		if err != nil {
			return nil, err
		}
		out = append(out, Migration{Version: v, Name: label, SQL: string(body)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	return out, nil
}

// Apply runs every pending migration in one transaction under an advisory lock
// it returns the versions applied by this call
func Apply(ctx context.Context, db store.TxRunner) ([]int, error) {
	ms, err := Load()
	if err != nil {
		return nil, err
	}
	return apply(ctx, db, ms)
}

func apply(ctx context.Context, db store.TxRunner, ms []Migration) ([]int, error) {
	log := logger.Named("migrate")
	var applied []int
	err := store.RunLocked(ctx, db, lockKey, func(q store.RowQuerier) error {
		if _, err := q.Exec(ctx, ddl); err != nil {
			return fmt.Errorf("migrate: bootstrap: %w", err)
		}
		done, err := versions(ctx, q)
		if err != nil {
			return err
		}
		for _, m := range ms {
			if done[m.Version] {
				continue
			}
			if _, err := q.Exec(ctx, m.SQL); err != nil {
				return fmt.Errorf("migrate: %04d_%s: %w", m.Version, m.Name, err)
			}
			if _, err := q.Exec(ctx, "INSERT INTO schema_migrations (version, name) VALUES ($1, $2)", m.Version, m.Name); err != nil {
				return fmt.Errorf("migrate: record %d: %w", m.Version, err)
			}
			log.Info().Int("version", m.Version).Str("name", m.Name).Msg("migration applied")
			applied = append(applied, m.Version)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return applied, nil
}

func versions(ctx context.Context, q store.RowQuerier) (map[int]bool, error) {
	rows, err := q.Query(ctx, "SELECT version FROM schema_migrations")
	if err != nil {
		return nil, fmt.Errorf("migrate: read versions: %w", err)
	}
	defer rows.Close()
	done := map[int]bool{}
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		done[v] = true
	}
	return done, rows.Err()
}
