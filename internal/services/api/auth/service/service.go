// Package service contains the account and session workflows
package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"strings"
	"sync"
	"time"

	"agenda/internal/modkit/repokit"
	perr "agenda/internal/platform/errors"
	"agenda/internal/platform/logger"
	"agenda/internal/services/api/auth/domain"
	"agenda/internal/services/api/auth/repo"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Service defines the service contract for auth
type Service interface{ domain.ServicePort }

// Options tune sessions and hashing
type Options struct {
	SessionTTL time.Duration
	BcryptCost int
	Now        func() time.Time
}

// DefaultSessionTTL is one week
const DefaultSessionTTL = 7 * 24 * time.Hour

const tokenBytes = 32

// Svc implements the Service interface
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
	opts   Options
}

// New creates a new auth service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], opts Options) *Svc {
	if db == nil {
		panic("auth.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("auth.Service requires a non nil Repo binder")
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = DefaultSessionTTL
	}
	if opts.BcryptCost < bcrypt.MinCost || opts.BcryptCost > bcrypt.MaxCost {
		opts.BcryptCost = bcrypt.DefaultCost
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Svc{Repo: binder.Bind(db), binder: binder, db: db, opts: opts}
}

// Register creates an account and opens its first session
func (s *Svc) Register(ctx context.Context, in domain.RegisterInput) (domain.Session, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.opts.BcryptCost)
	if err != nil {
		return domain.Session{}, perr.Wrap(err, perr.ErrorCodeUnknown, "hash password")
	}
	now := s.opts.Now().UTC()
	u := repo.UserRow{
		ID:           uuid.NewString(),
		Email:        strings.TrimSpace(in.Email),
		Username:     strings.TrimSpace(in.Username),
		PasswordHash: string(hash),
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	var sess domain.Session
	err = repokit.InTx(ctx, s.db, s.binder, func(r repo.Repo) error {
		if err := r.InsertUser(ctx, u); err != nil {
			if perr.IsCode(err, perr.ErrorCodeDuplicateKey) {
				return perr.Conflictf("email or username already registered")
			}
			return err
		}
		var err error
		sess, err = s.open(ctx, r, u)
		return err
	})
	if err != nil {
		return domain.Session{}, err
	}
	logger.C(ctx).Info().Str("user_id", u.ID).Msg("user registered")
	return sess, nil
}

// Login checks the credentials and opens a session
// unknown users and wrong passwords are indistinguishable to the caller
func (s *Svc) Login(ctx context.Context, in domain.LoginInput) (domain.Session, error) {
	u, err := s.Repo.UserByLogin(ctx, strings.TrimSpace(in.UsernameOrEmail))
	if err != nil && !perr.IsCode(err, perr.ErrorCodeNotFound) {
		return domain.Session{}, err
	}
	hash := []byte(u.PasswordHash)
	if err != nil {
		hash = dummyHash()
	}
	if bcrypt.CompareHashAndPassword(hash, []byte(in.Password)) != nil || err != nil {
		logger.C(ctx).Warn().Str("login", in.UsernameOrEmail).Msg("login failed")
		return domain.Session{}, perr.Unauthorizedf("invalid credentials")
	}
	if !u.IsActive {
		return domain.Session{}, perr.Forbiddenf("account is disabled")
	}
	return s.open(ctx, s.Repo, u)
}

// Current returns the account behind userID
func (s *Svc) Current(ctx context.Context, userID string) (domain.User, error) {
	u, err := s.Repo.UserByID(ctx, userID)
	if err != nil {
		if perr.IsCode(err, perr.ErrorCodeNotFound) {
			return domain.User{}, perr.Unauthorizedf("unknown user")
		}
		return domain.User{}, err
	}
	return toUser(u), nil
}

// Logout revokes the session of token
func (s *Svc) Logout(ctx context.Context, token string) error {
	if _, err := s.Repo.DeleteSession(ctx, Digest(token)); err != nil {
		return err
	}
	logger.C(ctx).Debug().Msg("session revoked")
	return nil
}

// Resolve maps a live token to its user id
func (s *Svc) Resolve(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", perr.Unauthorizedf("missing bearer token")
	}
	id, err := s.Repo.SessionUser(ctx, Digest(token), s.opts.Now().UTC())
	if err != nil {
		if perr.IsCode(err, perr.ErrorCodeNotFound) {
			return "", perr.Unauthorizedf("invalid or expired session")
		}
		return "", err
	}
	return id, nil
}

func (s *Svc) open(ctx context.Context, r repo.Repo, u repo.UserRow) (domain.Session, error) {
	tok, err := NewToken()
	if err != nil {
		return domain.Session{}, err
	}
	now := s.opts.Now().UTC()
	row := repo.SessionRow{
		TokenHash: Digest(tok),
		UserID:    u.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.opts.SessionTTL),
	}
	if err := r.InsertSession(ctx, row); err != nil {
		return domain.Session{}, err
	}
	return domain.Session{Token: tok, ExpiresAt: row.ExpiresAt, User: toUser(u)}, nil
}

// NewToken returns a random url safe bearer token
func NewToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", perr.Wrap(err, perr.ErrorCodeUnknown, "generate token")
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// Digest is the stored form of a token
func Digest(token string) []byte {
	sum := sha256.Sum256([]byte(token))
	return sum[:]
}

var (
	dummyOnce sync.Once
	dummy     []byte
)

// dummyHash keeps unknown-user logins as slow as wrong passwords
func dummyHash() []byte {
	dummyOnce.Do(func() {
		dummy, _ = bcrypt.GenerateFromPassword([]byte("agenda-dummy-password"), bcrypt.DefaultCost)
	})
	return dummy
}

func toUser(u repo.UserRow) domain.User {
	return domain.User{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}
