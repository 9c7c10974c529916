// Package repo provides postgres access for users and sessions
package repo

import (
	"context"
	"errors"
	"time"

	"agenda/internal/modkit/repokit"
	perr "agenda/internal/platform/errors"

	"github.com/jackc/pgx/v5"
)

// Repo defines the repository contract for auth
type Repo interface {
	InsertUser(ctx context.Context, u UserRow) error
	// UserByLogin matches username or email case insensitively
	UserByLogin(ctx context.Context, login string) (UserRow, error)
	UserByID(ctx context.Context, id string) (UserRow, error)

	InsertSession(ctx context.Context, s SessionRow) error
	// SessionUser returns the owner of a live session of an active user
	SessionUser(ctx context.Context, tokenHash []byte, now time.Time) (string, error)
	DeleteSession(ctx context.Context, tokenHash []byte) (bool, error)
}

// UserRow is a users table row
type UserRow struct {
	ID           string
	Email        string
	Username     string
	PasswordHash string
	FirstName    string
	LastName     string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SessionRow is a sessions table row
type SessionRow struct {
	TokenHash []byte
	UserID    string
	CreatedAt time.Time
	ExpiresAt time.Time
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

const userCols = `id::text, email, username, password_hash, first_name, last_name, is_active, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (UserRow, error) {
	var u UserRow
	err := row.Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.FirstName, &u.LastName, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return UserRow{}, perr.ErrNotFound
	}
	if err != nil {
		return UserRow{}, perr.FromPostgres(err, "get user")
	}
	return u, nil
}

func (r *queries) InsertUser(ctx context.Context, u UserRow) error {
	const sql = `
INSERT INTO users (id, email, username, password_hash, first_name, last_name, is_active, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, sql, u.ID, u.Email, u.Username, u.PasswordHash, u.FirstName, u.LastName, u.IsActive, u.CreatedAt, u.UpdatedAt)
	return perr.FromPostgres(err, "insert user")
}

func (r *queries) UserByLogin(ctx context.Context, login string) (UserRow, error) {
	return scanUser(r.q.QueryRow(ctx,
		`SELECT `+userCols+` FROM users WHERE lower(username) = lower($1) OR lower(email) = lower($1) LIMIT 1`, login))
}

func (r *queries) UserByID(ctx context.Context, id string) (UserRow, error) {
	return scanUser(r.q.QueryRow(ctx, `SELECT `+userCols+` FROM users WHERE id = $1`, id))
}

func (r *queries) InsertSession(ctx context.Context, s SessionRow) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO sessions (token_hash, user_id, created_at, expires_at) VALUES ($1, $2, $3, $4)`,
		s.TokenHash, s.UserID, s.CreatedAt, s.ExpiresAt)
	return perr.FromPostgres(err, "insert session")
}

func (r *queries) SessionUser(ctx context.Context, tokenHash []byte, now time.Time) (string, error) {
	const sql = `
SELECT s.user_id::text
FROM sessions s
JOIN users u ON u.id = s.user_id
WHERE s.token_hash = $1 AND s.expires_at > $2 AND u.is_active`
	var id string
	err := r.q.QueryRow(ctx, sql, tokenHash, now).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", perr.ErrNotFound
	}
	if err != nil {
		return "", perr.FromPostgres(err, "resolve session")
	}
	return id, nil
}

func (r *queries) DeleteSession(ctx context.Context, tokenHash []byte) (bool, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM sessions WHERE token_hash = $1`, tokenHash)
	if err != nil {
		return false, perr.FromPostgres(err, "delete session")
	}
	return tag.RowsAffected() == 1, nil
}
