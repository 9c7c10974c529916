package domain

import "context"

// RecorderPort appends events to the ledger
type RecorderPort interface {
	Record(ctx context.Context, ev Event) error
}

// ServicePort defines the service contract for activity
type ServicePort interface {
	RecorderPort
	Recent(ctx context.Context, ownerID string, limit int) ([]Event, error)
}
