// Package repo provides postgres access for appointments
package repo

import (
	"context"
	"errors"
	"time"

	"agenda/internal/modkit/repokit"
	perr "agenda/internal/platform/errors"

	"github.com/jackc/pgx/v5"
)

// Repo defines the repository contract for appointments
// every method is scoped to one owner
type Repo interface {
	// LockOwner serialises writers of one owner until the surrounding transaction ends
	LockOwner(ctx context.Context, ownerID string) error

	ListByOwner(ctx context.Context, ownerID string) ([]Row, error)
	// ListWindow returns the definitions that can have an occurrence starting in [from, to]
	ListWindow(ctx context.Context, ownerID string, from, to time.Time) ([]Row, error)
	Get(ctx context.Context, ownerID, id string) (Row, error)

	Insert(ctx context.Context, r Row) error
	Update(ctx context.Context, r Row) (bool, error)
	Delete(ctx context.Context, ownerID, id string) (bool, error)
}

// Row is an appointments table row
type Row struct {
	ID                  string
	OwnerID             string
	Title               string
	Description         string
	Location            string
	Attendees           string
	Type                string
	StartTime           time.Time
	EndTime             time.Time
	IsRecurring         bool
	RecurrenceInterval  int16
	RecurrenceEndDate   *time.Time
	ParentAppointmentID *string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

type (
	// PG implements the Repo interface using Postgres
	PG struct{}

	queries struct{ q repokit.Queryer }
)

// NewPG creates a new Postgres repository binder
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind binds a Postgres queryer to the Repo implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

const cols = `id::text, owner_id::text, title, description, location, attendees, appointment_type,
start_time, end_time, is_recurring, recurrence_interval, recurrence_end_date,
parent_appointment_id::text, created_at, updated_at`

func scan(s interface{ Scan(...any) error }) (Row, error) {
	var r Row
	err := s.Scan(
		&r.ID,
		&r.OwnerID,
		&r.Title,
		&r.Description,
		&r.Location,
		&r.Attendees,
		&r.Type,
		&r.StartTime,
		&r.EndTime,
		&r.IsRecurring,
		&r.RecurrenceInterval,
		&r.RecurrenceEndDate,
		&r.ParentAppointmentID,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	return r, err
}

func (r *queries) many(ctx context.Context, sql string, args ...any) ([]Row, error) {
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, perr.FromPostgres(err, "list appointments")
	}
	defer rows.Close()
	var out []Row
	for rows.Next() {
		row, err := scan(rows)
		if err != nil {
			return nil, perr.FromPostgres(err, "scan appointment")
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, perr.FromPostgres(err, "list appointments")
	}
	return out, nil
}

func (r *queries) LockOwner(ctx context.Context, ownerID string) error {
	_, err := r.q.Exec(ctx, "SELECT pg_advisory_xact_lock(hashtext('appointments:' || $1))", ownerID)
	return perr.FromPostgres(err, "lock owner")
}

func (r *queries) ListByOwner(ctx context.Context, ownerID string) ([]Row, error) {
	return r.many(ctx, `SELECT `+cols+` FROM appointments WHERE owner_id = $1 ORDER BY start_time, id`, ownerID)
}

func (r *queries) ListWindow(ctx context.Context, ownerID string, from, to time.Time) ([]Row, error) {
	const where = `
WHERE owner_id = $1
AND start_time <= $3
AND (
	(NOT is_recurring AND start_time >= $2)
	OR (is_recurring AND (recurrence_end_date IS NULL OR recurrence_end_date >= $2::date))
)
ORDER BY start_time, id`
	return r.many(ctx, `SELECT `+cols+` FROM appointments`+where, ownerID, from, to)
}

func (r *queries) Get(ctx context.Context, ownerID, id string) (Row, error) {
	row, err := scan(r.q.QueryRow(ctx, `SELECT `+cols+` FROM appointments WHERE owner_id = $1 AND id = $2`, ownerID, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Row{}, perr.ErrNotFound
	}
	if err != nil {
		return Row{}, perr.FromPostgres(err, "get appointment")
	}
	return row, nil
}

func (r *queries) Insert(ctx context.Context, a Row) error {
	const sql = `
INSERT INTO appointments (
	id, owner_id, title, description, location, attendees, appointment_type,
	start_time, end_time, is_recurring, recurrence_interval, recurrence_end_date,
	parent_appointment_id, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, sql,
		a.ID, a.OwnerID, a.Title, a.Description, a.Location, a.Attendees, a.Type,
		a.StartTime, a.EndTime, a.IsRecurring, a.RecurrenceInterval, a.RecurrenceEndDate,
		a.ParentAppointmentID, a.CreatedAt, a.UpdatedAt,
	)
	return perr.FromPostgres(err, "insert appointment")
}

func (r *queries) Update(ctx context.Context, a Row) (bool, error) {
	const sql = `
UPDATE appointments SET
	title = $3, description = $4, location = $5, attendees = $6, appointment_type = $7,
	start_time = $8, end_time = $9, is_recurring = $10, recurrence_interval = $11,
	recurrence_end_date = $12, parent_appointment_id = $13, updated_at = $14
WHERE owner_id = $1 AND id = $2`
	tag, err := r.q.Exec(ctx, sql,
		a.OwnerID, a.ID, a.Title, a.Description, a.Location, a.Attendees, a.Type,
		a.StartTime, a.EndTime, a.IsRecurring, a.RecurrenceInterval, a.RecurrenceEndDate,
		a.ParentAppointmentID, a.UpdatedAt,
	)
	if err != nil {
		return false, perr.FromPostgres(err, "update appointment")
	}
	return tag.RowsAffected() == 1, nil
}

func (r *queries) Delete(ctx context.Context, ownerID, id string) (bool, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM appointments WHERE owner_id = $1 AND id = $2`, ownerID, id)
	if err != nil {
		return false, perr.FromPostgres(err, "delete appointment")
	}
	return tag.RowsAffected() == 1, nil
}
