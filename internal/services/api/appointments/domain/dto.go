// Package domain holds DTOs for appointments http and service contracts
package domain

import (
	"time"

	"agenda/internal/core/recurrence"
	ptime "agenda/internal/platform/time"
)

// Appointment types
const (
	TypeMeeting  = "meeting"
	TypePersonal = "personal"
	TypeReminder = "reminder"
	TypeDeadline = "deadline"
	TypeTravel   = "travel"
	TypeHealth   = "health"
	TypeSocial   = "social"
	TypeOther    = "other"
)

// AppointmentInput is the create and update payload
// start_time and end_time are naive wall-clock date-times
type AppointmentInput struct {
	Title               string              `json:"title" validate:"required,nonblank,max=200" example:"Team sync"`
	Description         string              `json:"description,omitempty" validate:"omitempty,max=4000"`
	Location            string              `json:"location,omitempty" validate:"omitempty,max=200" example:"Room 4"`
	Attendees           string              `json:"attendees,omitempty" validate:"omitempty,max=500" example:"ana, bo"`
	Type                string              `json:"appointment_type,omitempty" validate:"omitempty,oneof=meeting personal reminder deadline travel health social other" example:"meeting"`
	StartTime           ptime.Naive         `json:"start_time" validate:"required" swaggertype:"string" example:"2023-10-01T09:00:00"`
	EndTime             ptime.Naive         `json:"end_time" validate:"required" swaggertype:"string" example:"2023-10-01T10:00:00"`
	IsRecurring         bool                `json:"is_recurring"`
	RecurrenceInterval  recurrence.Interval `json:"recurrence_interval" swaggertype:"string" enums:"daily,weekly,monthly" example:"weekly"`
	RecurrenceEndDate   *ptime.Date         `json:"recurrence_end_date,omitempty" swaggertype:"string" example:"2023-10-31"`
	ParentAppointmentID string              `json:"parent_appointment_id,omitempty" validate:"omitempty,uuid"`
}

// Appointment is a stored definition
type Appointment struct {
	ID                  string              `json:"id"`
	OwnerID             string              `json:"owner_id"`
	Title               string              `json:"title"`
	Description         string              `json:"description,omitempty"`
	Location            string              `json:"location,omitempty"`
	Attendees           string              `json:"attendees,omitempty"`
	Type                string              `json:"appointment_type"`
	StartTime           ptime.Naive         `json:"start_time" swaggertype:"string"`
	EndTime             ptime.Naive         `json:"end_time" swaggertype:"string"`
	IsRecurring         bool                `json:"is_recurring"`
	RecurrenceInterval  recurrence.Interval `json:"recurrence_interval" swaggertype:"string"`
	RecurrenceEndDate   *ptime.Date         `json:"recurrence_end_date,omitempty" swaggertype:"string"`
	ParentAppointmentID string              `json:"parent_appointment_id,omitempty"`
	CreatedAt           time.Time           `json:"created_at"`
	UpdatedAt           time.Time           `json:"updated_at"`
}

// Occurrence is one concrete instance of a definition
// it carries the definition id, so all occurrences of a series share it
type Occurrence struct {
	ID                 string              `json:"id"`
	Title              string              `json:"title"`
	Description        string              `json:"description,omitempty"`
	Location           string              `json:"location,omitempty"`
	Attendees          string              `json:"attendees,omitempty"`
	Type               string              `json:"appointment_type"`
	StartTime          ptime.Naive         `json:"start_time" swaggertype:"string"`
	EndTime            ptime.Naive         `json:"end_time" swaggertype:"string"`
	IsRecurring        bool                `json:"is_recurring"`
	RecurrenceInterval recurrence.Interval `json:"recurrence_interval" swaggertype:"string"`
	RecurrenceEndDate  *ptime.Date         `json:"recurrence_end_date,omitempty" swaggertype:"string"`
}

// Window bounds a read; zero values fall back to the default window
type Window struct {
	From time.Time
	To   time.Time
}

// Definition converts the appointment to its recurrence form
func (a Appointment) Definition() recurrence.Definition {
	return recurrence.Definition{
		ID:        a.ID,
		OwnerID:   a.OwnerID,
		Start:     a.StartTime.Time,
		End:       a.EndTime.Time,
		Recurring: a.IsRecurring,
		Interval:  a.RecurrenceInterval,
		Until:     a.RecurrenceEndDate.Ptr(),
	}
}

// At copies the descriptive fields of a onto an occurrence interval
func (a Appointment) At(o recurrence.Occurrence) Occurrence {
	return Occurrence{
		ID:                 a.ID,
		Title:              a.Title,
		Description:        a.Description,
		Location:           a.Location,
		Attendees:          a.Attendees,
		Type:               a.Type,
		StartTime:          ptime.Naive{Time: o.Start},
		EndTime:            ptime.Naive{Time: o.End},
		IsRecurring:        a.IsRecurring,
		RecurrenceInterval: a.RecurrenceInterval,
		RecurrenceEndDate:  a.RecurrenceEndDate,
	}
}
