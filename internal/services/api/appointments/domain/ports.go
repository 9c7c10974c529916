package domain

import (
	"context"
	"time"
)

// ServicePort defines the service contract for appointments
type ServicePort interface {
	ListOccurrences(ctx context.Context, ownerID string, w Window) ([]Occurrence, error)
	Search(ctx context.Context, ownerID, q string, w Window) ([]Occurrence, error)
	Day(ctx context.Context, ownerID string, date time.Time) ([]Occurrence, error)
	Upcoming(ctx context.Context, ownerID string, limit int) ([]Occurrence, error)
	ListAll(ctx context.Context, ownerID string) ([]Appointment, error)
	Get(ctx context.Context, ownerID, id string) (Appointment, error)
	Export(ctx context.Context, ownerID string, w Window) ([]byte, error)

	CreateDefinition(ctx context.Context, ownerID string, in AppointmentInput) (Appointment, error)
	UpdateDefinition(ctx context.Context, ownerID, id string, in AppointmentInput, updateAllFutureEvents bool) (Appointment, error)
	DeleteDefinition(ctx context.Context, ownerID, id string, deleteAllFuture bool) error
}
