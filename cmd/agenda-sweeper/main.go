package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"agenda/internal/modkit"
	"agenda/internal/modkit/module"
	"agenda/internal/platform/config"
	"agenda/internal/platform/logger"
	"agenda/internal/platform/store"

	swmod "agenda/internal/services/sweeper/module"
	swservice "agenda/internal/services/sweeper/service"
)

func main() {
	root := config.New()
	dbCfg := root.Prefix("SERVICE_PGSQL_")

	logger.Init(logger.FromEnv())
	l := logger.Get()

	var (
		fOnce     = flag.Bool("once", false, "run a single pass and exit (overrides SWEEPER_RUN_ONCE)")
		fSchedule = flag.String("schedule", "", "cron spec or descriptor (overrides SWEEPER_SCHEDULE)")
	)
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, store.Config{
		AppName: "agenda-sweeper",
		PG: store.PGConfig{
			Enabled:     true,
			URL:         dbCfg.MustString("DBURL"),
			MaxConns:    int32(dbCfg.MayInt("MAX_CONNS", 2)),
			SlowQueryMs: dbCfg.MayInt("SLOW_MS", 500),
			LogSQL:      dbCfg.MayBool("LOG_SQL", false),
		},
	}, store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	opts := swmod.FromConfig(root)
	if *fOnce {
		opts.RunOnce = true
	}
	if *fSchedule != "" {
		opts.Schedule = *fSchedule
	}
	if err := swservice.ValidSchedule(opts.Schedule); err != nil {
		l.Fatal().Err(err).Str("schedule", opts.Schedule).Msg("sweeper: invalid schedule")
	}

	sw := swmod.New(modkit.Deps{Cfg: root, PG: st.PG, Log: *l}, opts)
	ports := module.MustPortsOf[swmod.Ports](sw)

	if opts.RunOnce {
		res, err := ports.Sweeper.Sweep(ctx)
		if err != nil {
			l.Fatal().Err(err).Msg("sweeper: pass failed")
		}
		l.Info().Int64("removed", res.Total()).Msg("sweeper: single pass complete")
		return
	}

	if err := ports.Sweeper.Schedule(ctx, opts.Schedule); err != nil {
		l.Fatal().Err(err).Msg("sweeper: scheduler failed")
	}
}
