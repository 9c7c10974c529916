package module

import (
	"agenda/internal/platform/config"
)

// Options for the sweeper module
type Options struct {
	Schedule   string
	RunOnce    bool
	EnableLock bool
}

// FromConfig fills options from environment
// SWEEPER_SCHEDULE (default "@every 1h") is a cron spec or descriptor
// SWEEPER_RUN_ONCE (default false) runs a single pass and exits
// SWEEPER_LOCK (default true) takes the advisory lock around each pass
func FromConfig(cfg config.Conf) Options {
	s := cfg.Prefix("SWEEPER_")
	return Options{
		Schedule:   s.MayString("SCHEDULE", "@every 1h"),
		RunOnce:    s.MayBool("RUN_ONCE", false),
		EnableLock: s.MayBool("LOCK", true),
	}
}
