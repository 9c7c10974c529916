package store

import "agenda/internal/platform/logger"

// Config selects and configures the backends
type Config struct {
	// AppName is reported to postgres as application_name
	AppName string

	PG PGConfig
	CH CHConfig
}

// PGConfig configures postgres
type PGConfig struct {
	Enabled  bool
	URL      string
	MaxConns int32

	// LogSQL logs every statement at debug
	LogSQL bool
	// SlowQueryMs logs statements at or above this duration at warn, zero disables
	SlowQueryMs int
}

// CHConfig configures clickhouse
type CHConfig struct {
	Enabled bool
	URL     string

	// ClientName and ClientTag show up in system.query_log
	ClientName string
	ClientTag  string
}

// Option adjusts a Store before backends open
type Option func(*Store)

// WithLogger sets the logger backends log through
func WithLogger(l logger.Logger) Option {
	return func(s *Store) { s.Log = l }
}
