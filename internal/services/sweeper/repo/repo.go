// Package repo provides postgres access for the sweeper
package repo

import (
	"context"
	"time"

	"agenda/internal/modkit/repokit"
	perr "agenda/internal/platform/errors"
	"agenda/internal/services/sweeper/domain"
)

type (
	// PG implements domain.StorageRepo using Postgres
	PG struct{}

	queries struct{ q repokit.Queryer }
)

// NewPG creates a new Postgres repository binder
func NewPG() repokit.Binder[domain.StorageRepo] { return PG{} }

// Bind binds a Postgres queryer to the StorageRepo implementation
func (PG) Bind(q repokit.Queryer) domain.StorageRepo { return &queries{q: q} }

func (r *queries) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM sessions WHERE expires_at <= $1`, now)
	if err != nil {
		return 0, perr.FromPostgres(err, "purge expired sessions")
	}
	return tag.RowsAffected(), nil
}

func (r *queries) PurgeInactive(ctx context.Context) (int64, error) {
	const sql = `
DELETE FROM sessions s
USING users u
WHERE u.id = s.user_id AND NOT u.is_active`
	tag, err := r.q.Exec(ctx, sql)
	if err != nil {
		return 0, perr.FromPostgres(err, "purge inactive sessions")
	}
	return tag.RowsAffected(), nil
}
