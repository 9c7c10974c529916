// Package service contains the activity ledger workflows
package service

import (
	"context"
	"time"

	"agenda/internal/services/api/activity/domain"
	"agenda/internal/services/api/activity/repo"

	"github.com/google/uuid"
)

// Service defines the service contract for activity
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	Repo repo.Repo
	now  func() time.Time
}

// New creates a new activity service
func New(r repo.Repo) *Svc {
	if r == nil {
		panic("activity.Service requires a non nil Repo")
	}
	return &Svc{Repo: r, now: time.Now}
}

// Record stamps ev with an id and time when missing and appends it
func (s *Svc) Record(ctx context.Context, ev domain.Event) error {
	id, err := uuid.Parse(ev.ID)
	if err != nil {
		id = uuid.New()
	}
	at := ev.At
	if at.IsZero() {
		at = s.now()
	}
	n := ev.Occurrences
	if n < 0 {
		n = 0
	}
	return s.Repo.Insert(ctx, []repo.Row{{
		ID:            id,
		OwnerID:       ev.OwnerID,
		AppointmentID: ev.AppointmentID,
		Kind:          string(ev.Kind),
		Occurrences:   uint32(n),
		Detail:        ev.Detail,
		At:            at.UTC(),
	}})
}

// Recent lists the caller's newest events, limit defaults to 50 and caps at 200
func (s *Svc) Recent(ctx context.Context, ownerID string, limit int) ([]domain.Event, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	rows, err := s.Repo.Recent(ctx, ownerID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Event, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.Event{
			ID:            r.ID.String(),
			OwnerID:       r.OwnerID,
			AppointmentID: r.AppointmentID,
			Kind:          domain.Kind(r.Kind),
			Occurrences:   int(r.Occurrences),
			Detail:        r.Detail,
			At:            r.At,
		})
	}
	return out, nil
}
