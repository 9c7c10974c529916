// Package domain defines the sweeper ports and types
package domain

import (
	"context"
	"time"
)

// SweeperPort is the entrypoint exposed by the sweeper module
type SweeperPort interface {
	// Sweep runs one maintenance pass and reports what it removed
	Sweep(ctx context.Context) (Result, error)

	// Schedule runs Sweep on a cron spec until ctx is done
	Schedule(ctx context.Context, spec string) error
}

// StorageRepo holds the maintenance queries
type StorageRepo interface {
	// PurgeExpired removes sessions whose expiry is at or before now
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)

	// PurgeInactive removes every session that belongs to a deactivated user
	PurgeInactive(ctx context.Context) (int64, error)
}

// Result counts rows removed by one pass
type Result struct {
	Expired  int64 `json:"expired"`
	Inactive int64 `json:"inactive"`
}

// Total is the number of sessions removed
func (r Result) Total() int64 { return r.Expired + r.Inactive }
