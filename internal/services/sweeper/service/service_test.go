package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"agenda/internal/modkit/repokit"
	perr "agenda/internal/platform/errors"
	"agenda/internal/platform/store"
	swdom "agenda/internal/services/sweeper/domain"
)

type fakeRepo struct {
	mu       sync.Mutex
	calls    int
	lastNow  time.Time
	expired  int64
	inactive int64
	err      error
}

func (f *fakeRepo) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.lastNow = now
	if f.err != nil {
		return 0, f.err
	}
	return f.expired, nil
}

func (f *fakeRepo) PurgeInactive(ctx context.Context) (int64, error) {
	return f.inactive, nil
}

func (f *fakeRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeDB struct {
	mu    sync.Mutex
	execs []string
	txs   int
}

func (d *fakeDB) Exec(ctx context.Context, sql string, args ...any) (store.CommandTag, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.execs = append(d.execs, sql)
	return nil, nil
}

func (d *fakeDB) Query(ctx context.Context, sql string, args ...any) (store.Rows, error) {
	return nil, nil
}

func (d *fakeDB) QueryRow(ctx context.Context, sql string, args ...any) store.Row { return nil }

func (d *fakeDB) Tx(ctx context.Context, fn func(q store.RowQuerier) error) error {
	d.mu.Lock()
	d.txs++
	d.mu.Unlock()
	return fn(d)
}

func newSvc(lock bool) (*Service, *fakeRepo, *fakeDB) {
	r := &fakeRepo{expired: 3, inactive: 2}
	db := &fakeDB{}
	now := func() time.Time { return time.Date(2023, 10, 10, 12, 0, 0, 0, time.UTC) }
	binder := repokit.BindFunc[swdom.StorageRepo](func(repokit.Queryer) swdom.StorageRepo { return r })
	return New(db, binder, Config{EnableLock: lock, Now: now}), r, db
}

func TestSweep_CountsAndLock(t *testing.T) {
	s, r, db := newSvc(true)
	res, err := s.Sweep(context.Background())
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if res.Expired != 3 || res.Inactive != 2 || res.Total() != 5 {
		t.Fatalf("result = %+v", res)
	}
	if !r.lastNow.Equal(time.Date(2023, 10, 10, 12, 0, 0, 0, time.UTC)) {
		t.Fatalf("now = %v", r.lastNow)
	}
	if db.txs != 1 || len(db.execs) != 1 || !strings.Contains(db.execs[0], "pg_advisory_xact_lock") {
		t.Fatalf("txs=%d execs=%v", db.txs, db.execs)
	}
}

func TestSweep_WithoutLock(t *testing.T) {
	s, _, db := newSvc(false)
	if _, err := s.Sweep(context.Background()); err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if db.txs != 1 || len(db.execs) != 0 {
		t.Fatalf("txs=%d execs=%v", db.txs, db.execs)
	}
}

func TestSweep_Errors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code perr.ErrorCode
	}{
		{"raw error maps to db", errors.New("boom"), perr.ErrorCodeDB},
		{"typed error kept", perr.Newf(perr.ErrorCodeUnavailable, "down"), perr.ErrorCodeUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, r, _ := newSvc(true)
			r.err = tc.err
			res, err := s.Sweep(context.Background())
			if err == nil {
				t.Fatalf("expected error")
			}
			if !perr.IsCode(err, tc.code) {
				t.Fatalf("code = %v, want %v", perr.CodeOf(err), tc.code)
			}
			if res.Total() != 0 {
				t.Fatalf("partial result leaked: %+v", res)
			}
		})
	}
}

func TestValidSchedule(t *testing.T) {
	cases := []struct {
		spec string
		ok   bool
	}{
		{"@every 1h", true},
		{"@daily", true},
		{"*/15 * * * *", true},
		{"0 3 * * 1-5", true},
		{"", false},
		{"every hour", false},
		{"61 * * * *", false},
	}
	for _, tc := range cases {
		err := ValidSchedule(tc.spec)
		if (err == nil) != tc.ok {
			t.Fatalf("ValidSchedule(%q) err = %v", tc.spec, err)
		}
		if err != nil && !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
			t.Fatalf("ValidSchedule(%q) code = %v", tc.spec, perr.CodeOf(err))
		}
	}
}

func TestSchedule_BadSpec(t *testing.T) {
	s, r, _ := newSvc(true)
	err := s.Schedule(context.Background(), "not a schedule")
	if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("err = %v", err)
	}
	if r.count() != 0 {
		t.Fatalf("no pass expected")
	}
}

func TestSchedule_RunsUntilCancelled(t *testing.T) {
	if testing.Short() {
		t.Skip("waits for a cron tick")
	}
	s, r, _ := newSvc(true)
	ctx, cancel := context.WithTimeout(context.Background(), 2500*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- s.Schedule(ctx, "@every 1s") }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Schedule: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("Schedule did not stop after cancel")
	}
	if r.count() < 1 {
		t.Fatalf("expected at least one pass, got %d", r.count())
	}
}
