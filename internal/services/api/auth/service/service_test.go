package service

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"agenda/internal/modkit/repokit"
	perr "agenda/internal/platform/errors"
	"agenda/internal/platform/store"
	"agenda/internal/services/api/auth/domain"
	"agenda/internal/services/api/auth/repo"

	"golang.org/x/crypto/bcrypt"
)

type memRepo struct {
	users    map[string]repo.UserRow
	sessions map[string]repo.SessionRow
}

func newMem() *memRepo {
	return &memRepo{users: map[string]repo.UserRow{}, sessions: map[string]repo.SessionRow{}}
}

func (m *memRepo) InsertUser(ctx context.Context, u repo.UserRow) error {
	for _, x := range m.users {
		if strings.EqualFold(x.Email, u.Email) || strings.EqualFold(x.Username, u.Username) {
			return perr.New(perr.ErrorCodeDuplicateKey, "duplicate")
		}
	}
	m.users[u.ID] = u
	return nil
}

func (m *memRepo) UserByLogin(ctx context.Context, login string) (repo.UserRow, error) {
	for _, u := range m.users {
		if strings.EqualFold(u.Email, login) || strings.EqualFold(u.Username, login) {
			return u, nil
		}
	}
	return repo.UserRow{}, perr.ErrNotFound
}

func (m *memRepo) UserByID(ctx context.Context, id string) (repo.UserRow, error) {
	u, ok := m.users[id]
	if !ok {
		return repo.UserRow{}, perr.ErrNotFound
	}
	return u, nil
}

func (m *memRepo) InsertSession(ctx context.Context, s repo.SessionRow) error {
	m.sessions[string(s.TokenHash)] = s
	return nil
}

func (m *memRepo) SessionUser(ctx context.Context, h []byte, now time.Time) (string, error) {
	s, ok := m.sessions[string(h)]
	if !ok || !s.ExpiresAt.After(now) || !m.users[s.UserID].IsActive {
		return "", perr.ErrNotFound
	}
	return s.UserID, nil
}

func (m *memRepo) DeleteSession(ctx context.Context, h []byte) (bool, error) {
	_, ok := m.sessions[string(h)]
	delete(m.sessions, string(h))
	return ok, nil
}

type fakeDB struct{}

func (fakeDB) Exec(ctx context.Context, sql string, args ...any) (store.CommandTag, error) {
	var z store.CommandTag
	return z, nil
}

func (fakeDB) Query(ctx context.Context, sql string, args ...any) (store.Rows, error) {
	var z store.Rows
	return z, nil
}

func (fakeDB) QueryRow(ctx context.Context, sql string, args ...any) store.Row {
	var z store.Row
	return z
}

func (d fakeDB) Tx(ctx context.Context, fn func(q store.RowQuerier) error) error { return fn(d) }

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newSvc(t *testing.T) (*Svc, *memRepo, *clock) {
	t.Helper()
	mem := newMem()
	c := &clock{t: time.Date(2023, 10, 1, 12, 0, 0, 0, time.UTC)}
	binder := repokit.BindFunc[repo.Repo](func(repokit.Queryer) repo.Repo { return mem })
	svc := New(fakeDB{}, binder, Options{SessionTTL: time.Hour, BcryptCost: bcrypt.MinCost, Now: c.now})
	return svc, mem, c
}

func register(t *testing.T, s *Svc, email, username string) domain.Session {
	t.Helper()
	sess, err := s.Register(context.Background(), domain.RegisterInput{
		Email: email, Username: username, Password: "secret1", FirstName: " Ana ",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	return sess
}

func TestRegister_OpensSession(t *testing.T) {
	s, mem, c := newSvc(t)
	sess := register(t, s, "ana@example.com", "ana")

	if sess.Token == "" || sess.User.FirstName != "Ana" || !sess.User.IsActive {
		t.Fatalf("session = %+v", sess)
	}
	if !sess.ExpiresAt.Equal(c.t.Add(time.Hour)) {
		t.Fatalf("expires = %v", sess.ExpiresAt)
	}
	stored := mem.users[sess.User.ID]
	if stored.PasswordHash == "secret1" || bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret1")) != nil {
		t.Fatalf("password must be stored as bcrypt hash")
	}
	for h := range mem.sessions {
		if h == sess.Token {
			t.Fatalf("raw token must not be stored")
		}
	}

	uid, err := s.Resolve(context.Background(), sess.Token)
	if err != nil || uid != sess.User.ID {
		t.Fatalf("Resolve = %q, %v", uid, err)
	}
}

func TestRegister_Duplicate(t *testing.T) {
	s, _, _ := newSvc(t)
	register(t, s, "ana@example.com", "ana")

	_, err := s.Register(context.Background(), domain.RegisterInput{Email: "ANA@example.com", Username: "other", Password: "secret1"})
	if !perr.IsCode(err, perr.ErrorCodeConflict) || perr.HTTPStatus(err) != 409 {
		t.Fatalf("duplicate email = %v", err)
	}
}

func TestLogin(t *testing.T) {
	s, mem, _ := newSvc(t)
	reg := register(t, s, "ana@example.com", "ana")

	cases := []struct {
		name  string
		login string
		pass  string
		ok    bool
	}{
		{"by username", "ana", "secret1", true},
		{"by email any case", "Ana@Example.com", "secret1", true},
		{"wrong password", "ana", "nope", false},
		{"unknown user", "bo", "secret1", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sess, err := s.Login(context.Background(), domain.LoginInput{UsernameOrEmail: tc.login, Password: tc.pass})
			if tc.ok {
				if err != nil || sess.User.ID != reg.User.ID || sess.Token == reg.Token {
					t.Fatalf("Login = %+v, %v", sess, err)
				}
				return
			}
			if !perr.IsCode(err, perr.ErrorCodeUnauthorized) {
				t.Fatalf("error = %v, want unauthorized", err)
			}
		})
	}

	u := mem.users[reg.User.ID]
	u.IsActive = false
	mem.users[u.ID] = u
	_, err := s.Login(context.Background(), domain.LoginInput{UsernameOrEmail: "ana", Password: "secret1"})
	if !perr.IsCode(err, perr.ErrorCodeForbidden) {
		t.Fatalf("inactive login = %v", err)
	}
	if _, err := s.Resolve(context.Background(), reg.Token); !perr.IsCode(err, perr.ErrorCodeUnauthorized) {
		t.Fatalf("inactive user sessions must not resolve, got %v", err)
	}
}

func TestResolve_ExpiryAndLogout(t *testing.T) {
	s, _, c := newSvc(t)
	sess := register(t, s, "ana@example.com", "ana")

	c.t = c.t.Add(59 * time.Minute)
	if _, err := s.Resolve(context.Background(), sess.Token); err != nil {
		t.Fatalf("session still live: %v", err)
	}
	c.t = c.t.Add(time.Minute)
	if _, err := s.Resolve(context.Background(), sess.Token); !perr.IsCode(err, perr.ErrorCodeUnauthorized) {
		t.Fatalf("expired session = %v", err)
	}

	c.t = c.t.Add(-time.Hour)
	if err := s.Logout(context.Background(), sess.Token); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, err := s.Resolve(context.Background(), sess.Token); !perr.IsCode(err, perr.ErrorCodeUnauthorized) {
		t.Fatalf("revoked session = %v", err)
	}
	if _, err := s.Resolve(context.Background(), ""); !perr.IsCode(err, perr.ErrorCodeUnauthorized) {
		t.Fatalf("empty token = %v", err)
	}
}

func TestCurrent(t *testing.T) {
	s, _, _ := newSvc(t)
	sess := register(t, s, "ana@example.com", "ana")
	u, err := s.Current(context.Background(), sess.User.ID)
	if err != nil || u.Username != "ana" {
		t.Fatalf("Current = %+v, %v", u, err)
	}
	if _, err := s.Current(context.Background(), "gone"); !perr.IsCode(err, perr.ErrorCodeUnauthorized) {
		t.Fatalf("unknown user = %v", err)
	}
}

func TestTokenAndDigest(t *testing.T) {
	a, err := NewToken()
	if err != nil {
		t.Fatalf("NewToken: %v", err)
	}
	b, _ := NewToken()
	if a == b || len(a) != 43 {
		t.Fatalf("tokens %q %q", a, b)
	}
	if !bytes.Equal(Digest(a), Digest(a)) || bytes.Equal(Digest(a), Digest(b)) || len(Digest(a)) != 32 {
		t.Fatalf("digest must be a stable sha256")
	}
}

func TestNew_Defaults(t *testing.T) {
	binder := repokit.BindFunc[repo.Repo](func(repokit.Queryer) repo.Repo { return newMem() })
	s := New(fakeDB{}, binder, Options{BcryptCost: 99})
	if s.opts.SessionTTL != DefaultSessionTTL || s.opts.BcryptCost != bcrypt.DefaultCost || s.opts.Now == nil {
		t.Fatalf("defaults = %+v", s.opts)
	}
}
