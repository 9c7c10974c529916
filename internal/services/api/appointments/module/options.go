package module

import (
	"time"

	"agenda/internal/platform/config"
	appsvc "agenda/internal/services/api/appointments/service"
)

// Options controls the appointments service
type Options struct {
	// LockWrites takes a per owner advisory lock around check and write
	LockWrites bool
	// MaxWindow caps the span of listing, search and export windows
	MaxWindow time.Duration
}

// FromConfig reads CORE_API_LOCK_WRITES (default on) and CORE_API_MAX_WINDOW
// (default one year) from the api scoped config
func FromConfig(cfg config.Conf) Options {
	return Options{
		LockWrites: cfg.MayBool("LOCK_WRITES", true),
		MaxWindow:  cfg.MayDuration("MAX_WINDOW", appsvc.DefaultMaxWindow),
	}
}
