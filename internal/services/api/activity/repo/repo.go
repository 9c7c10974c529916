// Package repo provides clickhouse access for the activity ledger
package repo

import (
	"context"
	"time"

	"agenda/internal/platform/store"

	"github.com/google/uuid"
)

// Table is the clickhouse table backing the ledger
const Table = "appointment_activity"

// Repo defines the repository contract for activity
type Repo interface {
	Ensure(ctx context.Context) error
	Insert(ctx context.Context, rows []Row) error
	Recent(ctx context.Context, ownerID string, limit int) ([]Row, error)
}

// Row is one ledger row
type Row struct {
	ID            uuid.UUID
	OwnerID       string
	AppointmentID string
	Kind          string
	Occurrences   uint32
	Detail        string
	At            time.Time
}

const ddl = `
CREATE TABLE IF NOT EXISTS appointment_activity (
    event_id       UUID,
    owner_id       String,
    appointment_id String,
    kind           LowCardinality(String),
    occurrences    UInt32,
    detail         String,
    at             DateTime64(3, 'UTC')
) ENGINE = MergeTree
ORDER BY (owner_id, at)
TTL toDateTime(at) + INTERVAL 400 DAY
`

type (
	// CH implements Repo on clickhouse
	CH struct{ db store.Clickhouse }

	// Noop drops writes and reads nothing, used when clickhouse is disabled
	Noop struct{}
)

// NewCH returns a clickhouse backed repo, or Noop when db is nil
func NewCH(db store.Clickhouse) Repo {
	if db == nil {
		return Noop{}
	}
	return &CH{db: db}
}

// Ensure creates the ledger table when missing
func (r *CH) Ensure(ctx context.Context) error { return r.db.Exec(ctx, ddl) }

// Insert writes rows as one batch
func (r *CH) Insert(ctx context.Context, rows []Row) error {
	if len(rows) == 0 {
		return nil
	}
	data := make([][]any, 0, len(rows))
	for _, x := range rows {
		data = append(data, []any{x.ID, x.OwnerID, x.AppointmentID, x.Kind, x.Occurrences, x.Detail, x.At})
	}
	return r.db.Insert(ctx, Table, data)
}

// Recent returns the newest rows for one owner
func (r *CH) Recent(ctx context.Context, ownerID string, limit int) ([]Row, error) {
	const sql = `
SELECT event_id, owner_id, appointment_id, kind, occurrences, detail, at
FROM appointment_activity
WHERE owner_id = ?
ORDER BY at DESC
LIMIT ?
`
	rows, err := r.db.Query(ctx, sql, ownerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Row
	for rows.Next() {
		var x Row
		if err := rows.Scan(&x.ID, &x.OwnerID, &x.AppointmentID, &x.Kind, &x.Occurrences, &x.Detail, &x.At); err != nil {
			return nil, err
		}
		out = append(out, x)
	}
	return out, rows.Err()
}

// Ensure is a no-op
func (Noop) Ensure(context.Context) error { return nil }

// Insert is a no-op
func (Noop) Insert(context.Context, []Row) error { return nil }

// Recent always returns an empty list
func (Noop) Recent(context.Context, string, int) ([]Row, error) { return nil, nil }
