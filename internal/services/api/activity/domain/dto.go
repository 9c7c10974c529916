// Package domain holds DTOs for the appointment activity ledger
package domain

import "time"

// Kind names what happened to an appointment
type Kind string

// Ledger event kinds
const (
	KindCreated  Kind = "created"
	KindUpdated  Kind = "updated"
	KindDeleted  Kind = "deleted"
	KindConflict Kind = "conflict"
)

// Event is one ledger entry
type Event struct {
	ID            string    `json:"id"`
	OwnerID       string    `json:"owner_id"`
	AppointmentID string    `json:"appointment_id,omitempty"`
	Kind          Kind      `json:"kind" example:"created"`
	Occurrences   int       `json:"occurrences" example:"5"`
	Detail        string    `json:"detail,omitempty" example:"weekly until 2023-10-31"`
	At            time.Time `json:"at"`
}

// RecentQuery selects the caller's latest events
type RecentQuery struct {
	Limit int `json:"limit,omitempty" validate:"omitempty,min=1,max=200" example:"50"`
}
