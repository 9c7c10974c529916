// Package service provides the sweeper implementation
package service

import (
	"context"
	"time"

	"agenda/internal/modkit/repokit"
	perr "agenda/internal/platform/errors"
	"agenda/internal/platform/logger"
	"agenda/internal/platform/store"
	swdom "agenda/internal/services/sweeper/domain"

	"github.com/robfig/cron/v3"
)

// LockKey serializes sweeps across processes
const LockKey = "agenda:sweeper"

// Config controls a sweeper instance
type Config struct {
	// EnableLock takes the advisory lock around each pass
	EnableLock bool

	// Now overrides the clock, tests only
	Now func() time.Time
}

// Service wires TxRunner + Binder into the maintenance pass
type Service struct {
	DB     repokit.TxRunner
	Binder repokit.Binder[swdom.StorageRepo]
	Cfg    Config
}

// New constructs the sweeper service
func New(db repokit.TxRunner, binder repokit.Binder[swdom.StorageRepo], cfg Config) *Service {
	if db == nil {
		panic("sweeper.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("sweeper.Service requires a non nil Repo binder")
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Service{DB: db, Binder: binder, Cfg: cfg}
}

// Sweep removes expired sessions and sessions of deactivated users in one transaction
func (s *Service) Sweep(ctx context.Context) (swdom.Result, error) {
	l := logger.C(ctx).With().Str("mod", "sweeper").Logger()
	start := time.Now()

	var res swdom.Result
	pass := func(q store.RowQuerier) error {
		r := repokit.MustBind(s.Binder, q)
		var err error
		if res.Expired, err = r.PurgeExpired(ctx, s.Cfg.Now().UTC()); err != nil {
			return err
		}
		res.Inactive, err = r.PurgeInactive(ctx)
		return err
	}

	var err error
	if s.Cfg.EnableLock {
		err = store.RunLocked(ctx, s.DB, LockKey, pass)
	} else {
		err = s.DB.Tx(ctx, pass)
	}
	if err != nil {
		err = perr.FromPostgres(err, "sweep sessions")
		l.Error().Err(err).Msg("sweeper: pass failed")
		return swdom.Result{}, err
	}

	l.Info().
		Int64("expired", res.Expired).
		Int64("inactive", res.Inactive).
		Dur("took", time.Since(start)).
		Msg("sweeper: pass done")
	return res, nil
}

// Schedule runs Sweep on spec until ctx is cancelled; overlapping runs are skipped
func (s *Service) Schedule(ctx context.Context, spec string) error {
	l := logger.C(ctx).With().Str("mod", "sweeper").Logger()
	cl := cron.PrintfLogger(&l)

	c := cron.New(cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)))
	if _, err := c.AddFunc(spec, func() {
		// errors are logged by Sweep, the next tick retries
		_, _ = s.Sweep(ctx)
	}); err != nil {
		return perr.Wrap(err, perr.ErrorCodeInvalidArgument, "bad sweeper schedule")
	}

	l.Info().Str("schedule", spec).Msg("sweeper: scheduled")
	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()
	l.Info().Msg("sweeper: stopped")
	return nil
}

// ValidSchedule reports whether spec parses as a cron spec or descriptor
func ValidSchedule(spec string) error {
	if _, err := cron.ParseStandard(spec); err != nil {
		return perr.Wrap(err, perr.ErrorCodeInvalidArgument, "bad sweeper schedule")
	}
	return nil
}
