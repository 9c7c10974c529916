// Package service contains the appointment workflows: the conflict checked write path
// and the occurrence expanding read path
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"agenda/internal/adapters/export/ics"
	"agenda/internal/core/conflict"
	"agenda/internal/core/recurrence"
	"agenda/internal/core/textfold"
	"agenda/internal/modkit/repokit"
	perr "agenda/internal/platform/errors"
	"agenda/internal/platform/logger"
	ptime "agenda/internal/platform/time"
	actdom "agenda/internal/services/api/activity/domain"
	"agenda/internal/services/api/appointments/domain"
	"agenda/internal/services/api/appointments/repo"

	"github.com/google/uuid"
)

// Service defines the service contract for appointments
type Service interface{ domain.ServicePort }

// Options tune the service
type Options struct {
	// LockWrites serialises writers of one owner with an advisory lock
	LockWrites bool
	// Activity receives mutation events; nil disables recording
	Activity actdom.RecorderPort
	// Now is the clock, defaults to time.Now
	Now func() time.Time
	// MaxWindow caps the span of a listing, search or export window, defaults to DefaultMaxWindow
	MaxWindow time.Duration
}

// DefaultMaxWindow is the widest window served when Options.MaxWindow is unset
const DefaultMaxWindow = 366 * 24 * time.Hour

// Svc implements the Service interface
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
	opts   Options
}

const (
	defaultUpcoming = 10
	maxUpcoming     = 100
)

// New creates a new appointments service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], opts Options) *Svc {
	if db == nil {
		panic("appointments.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("appointments.Service requires a non nil Repo binder")
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.MaxWindow <= 0 {
		opts.MaxWindow = DefaultMaxWindow
	}
	return &Svc{Repo: binder.Bind(db), binder: binder, db: db, opts: opts}
}

// ListOccurrences returns every occurrence starting within the window, sorted by start
func (s *Svc) ListOccurrences(ctx context.Context, ownerID string, w domain.Window) ([]domain.Occurrence, error) {
	from, to, err := s.window(w)
	if err != nil {
		return nil, err
	}
	return s.occurrences(ctx, ownerID, from, to, nil)
}

// Search is ListOccurrences restricted to appointments whose text fields contain q
func (s *Svc) Search(ctx context.Context, ownerID, q string, w domain.Window) ([]domain.Occurrence, error) {
	from, to, err := s.window(w)
	if err != nil {
		return nil, err
	}
	m := textfold.NewMatcher(q)
	if m.Empty() {
		return s.occurrences(ctx, ownerID, from, to, nil)
	}
	return s.occurrences(ctx, ownerID, from, to, func(a domain.Appointment) bool {
		return m.Match(a.Title, a.Description, a.Location, a.Attendees)
	})
}

// Day returns the occurrences starting on the calendar date of date
func (s *Svc) Day(ctx context.Context, ownerID string, date time.Time) ([]domain.Occurrence, error) {
	from := recurrence.DateOf(ptime.Wall(date))
	to := from.AddDate(0, 0, 1).Add(-time.Nanosecond)
	return s.occurrences(ctx, ownerID, from, to, nil)
}

// Upcoming returns the next occurrences from now within the default horizon
func (s *Svc) Upcoming(ctx context.Context, ownerID string, limit int) ([]domain.Occurrence, error) {
	switch {
	case limit <= 0:
		limit = defaultUpcoming
	case limit > maxUpcoming:
		limit = maxUpcoming
	}
	now := ptime.Wall(s.opts.Now())
	out, err := s.occurrences(ctx, ownerID, now, recurrence.DefaultHorizon(now), nil)
	if err != nil {
		return nil, err
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ListAll returns the stored definitions of the owner ordered by start
func (s *Svc) ListAll(ctx context.Context, ownerID string) ([]domain.Appointment, error) {
	rows, err := s.Repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Appointment, 0, len(rows))
	for _, r := range rows {
		out = append(out, fromRow(r))
	}
	return out, nil
}

// Get returns one definition; another owner's id is reported as not found
func (s *Svc) Get(ctx context.Context, ownerID, id string) (domain.Appointment, error) {
	if !validID(id) {
		return domain.Appointment{}, perr.NotFoundf("appointment %s not found", id)
	}
	r, err := s.Repo.Get(ctx, ownerID, id)
	if err != nil {
		return domain.Appointment{}, notFound(err, id)
	}
	return fromRow(r), nil
}

// Export renders the definitions intersecting the window as an iCalendar document
func (s *Svc) Export(ctx context.Context, ownerID string, w domain.Window) ([]byte, error) {
	from, to, err := s.window(w)
	if err != nil {
		return nil, err
	}
	rows, err := s.Repo.ListWindow(ctx, ownerID, from, to)
	if err != nil {
		return nil, err
	}
	items := make([]ics.Series, 0, len(rows))
	for _, r := range rows {
		a := fromRow(r)
		items = append(items, ics.Series{
			Def:         a.Definition(),
			Title:       a.Title,
			Description: a.Description,
			Location:    a.Location,
			Category:    a.Type,
		})
	}
	return ics.Build(ics.Calendar{Name: "agenda", Horizon: to, Stamp: s.opts.Now().UTC()}, items)
}

// CreateDefinition validates the input, checks the whole series for conflicts and stores it
func (s *Svc) CreateDefinition(ctx context.Context, ownerID string, in domain.AppointmentInput) (domain.Appointment, error) {
	now := s.opts.Now().UTC()
	a, err := build(ownerID, uuid.NewString(), in)
	if err != nil {
		return domain.Appointment{}, err
	}
	a.CreatedAt, a.UpdatedAt = now, now

	var hit *conflict.Hit
	err = s.write(ctx, ownerID, func(r repo.Repo) error {
		var err error
		if hit, err = s.check(ctx, r, a, "", true); err != nil {
			return err
		}
		return r.Insert(ctx, toRow(a))
	})
	if err != nil {
		s.conflicted(ctx, a, hit)
		return domain.Appointment{}, err
	}

	logger.C(ctx).Info().
		Str("owner_id", ownerID).
		Str("appointment_id", a.ID).
		Bool("recurring", a.IsRecurring).
		Msg("appointment created")
	s.record(ctx, a, actdom.KindCreated, "")
	return a, nil
}

// UpdateDefinition replaces a stored definition
// with updateAllFutureEvents the whole new series is conflict checked, otherwise only its base interval
func (s *Svc) UpdateDefinition(ctx context.Context, ownerID, id string, in domain.AppointmentInput, updateAllFutureEvents bool) (domain.Appointment, error) {
	if !validID(id) {
		return domain.Appointment{}, perr.NotFoundf("appointment %s not found", id)
	}
	var (
		a   domain.Appointment
		hit *conflict.Hit
	)
	err := s.write(ctx, ownerID, func(r repo.Repo) error {
		// an unknown id is a 404 even when the body would not validate
		cur, err := r.Get(ctx, ownerID, id)
		if err != nil {
			return notFound(err, id)
		}
		a, err = build(ownerID, id, in)
		if err != nil {
			return err
		}
		a.CreatedAt = cur.CreatedAt
		a.UpdatedAt = s.opts.Now().UTC()

		if hit, err = s.check(ctx, r, a, id, updateAllFutureEvents); err != nil {
			return err
		}
		ok, err := r.Update(ctx, toRow(a))
		if err != nil {
			return err
		}
		if !ok {
			return perr.NotFoundf("appointment %s not found", id)
		}
		return nil
	})
	if err != nil {
		s.conflicted(ctx, a, hit)
		return domain.Appointment{}, err
	}

	logger.C(ctx).Info().
		Str("owner_id", ownerID).
		Str("appointment_id", id).
		Bool("all_future", updateAllFutureEvents).
		Msg("appointment updated")
	s.record(ctx, a, actdom.KindUpdated, "")
	return a, nil
}

// DeleteDefinition removes the definition and with it every occurrence of the series
// deleteAllFuture is accepted for compatibility and only logged
func (s *Svc) DeleteDefinition(ctx context.Context, ownerID, id string, deleteAllFuture bool) error {
	if !validID(id) {
		return perr.NotFoundf("appointment %s not found", id)
	}
	var gone domain.Appointment
	err := s.write(ctx, ownerID, func(r repo.Repo) error {
		cur, err := r.Get(ctx, ownerID, id)
		if err != nil {
			return notFound(err, id)
		}
		gone = fromRow(cur)
		ok, err := r.Delete(ctx, ownerID, id)
		if err != nil {
			return err
		}
		if !ok {
			return perr.NotFoundf("appointment %s not found", id)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.C(ctx).Info().
		Str("owner_id", ownerID).
		Str("appointment_id", id).
		Bool("recurring", gone.IsRecurring).
		Bool("delete_all_future", deleteAllFuture).
		Msg("appointment deleted")
	s.record(ctx, gone, actdom.KindDeleted, "")
	return nil
}

// write runs fn in one transaction, holding the owner lock when enabled
func (s *Svc) write(ctx context.Context, ownerID string, fn func(r repo.Repo) error) error {
	err := repokit.InTx(ctx, s.db, s.binder, func(r repo.Repo) error {
		if s.opts.LockWrites {
			if err := r.LockOwner(ctx, ownerID); err != nil {
				return err
			}
		}
		return fn(r)
	})
	return perr.FromPostgres(err, "appointments transaction")
}

// check loads the owner's definitions and reports the first collision as a conflict
// the hit comes back with the error; callers record it after the transaction
func (s *Svc) check(ctx context.Context, r repo.Repo, a domain.Appointment, excludeID string, expandSeries bool) (*conflict.Hit, error) {
	rows, err := r.ListByOwner(ctx, a.OwnerID)
	if err != nil {
		return nil, err
	}
	existing := make([]recurrence.Definition, 0, len(rows))
	for _, row := range rows {
		existing = append(existing, fromRow(row).Definition())
	}

	hit, ok := conflict.Check(a.Definition(), existing, excludeID, expandSeries)
	if !ok {
		return nil, nil
	}
	return &hit, perr.Conflictf("appointment conflicts with an existing appointment on %s", hit.Date().Format(ptime.DateLayout))
}

// conflicted logs and records a rejected write; nil hit is a no-op
func (s *Svc) conflicted(ctx context.Context, a domain.Appointment, hit *conflict.Hit) {
	if hit == nil {
		return
	}
	date := hit.Date().Format(ptime.DateLayout)
	logger.C(ctx).Warn().
		Str("owner_id", a.OwnerID).
		Str("appointment_id", a.ID).
		Str("existing_id", hit.Existing.ID).
		Str("date", date).
		Msg("appointment conflict")
	s.record(ctx, a, actdom.KindConflict, "collides with "+hit.Existing.ID+" on "+date)
}

// record publishes a mutation event; failures are logged only
func (s *Svc) record(ctx context.Context, a domain.Appointment, kind actdom.Kind, detail string) {
	if s.opts.Activity == nil {
		return
	}
	n := 1
	if a.IsRecurring {
		def := a.Definition()
		n = len(recurrence.Occurrences(def, recurrence.DefaultHorizon(def.Start)))
	}
	ev := actdom.Event{
		OwnerID:       a.OwnerID,
		AppointmentID: a.ID,
		Kind:          kind,
		Occurrences:   n,
		Detail:        detail,
		At:            s.opts.Now().UTC(),
	}
	if err := s.opts.Activity.Record(ctx, ev); err != nil {
		logger.C(ctx).Warn().Err(err).Str("kind", string(kind)).Msg("activity record failed")
	}
}

// occurrences expands the definitions intersecting [from, to], keeping those keep accepts
func (s *Svc) occurrences(ctx context.Context, ownerID string, from, to time.Time, keep func(domain.Appointment) bool) ([]domain.Occurrence, error) {
	rows, err := s.Repo.ListWindow(ctx, ownerID, from, to)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]domain.Appointment, len(rows))
	defs := make([]recurrence.Definition, 0, len(rows))
	for _, r := range rows {
		a := fromRow(r)
		if keep != nil && !keep(a) {
			continue
		}
		byID[a.ID] = a
		defs = append(defs, a.Definition())
	}

	occ := recurrence.Window(defs, from, to)
	out := make([]domain.Occurrence, 0, len(occ))
	for _, o := range occ {
		out = append(out, byID[o.ID].At(o))
	}
	return out, nil
}

// window resolves w against the default window and rejects spans wider than MaxWindow
func (s *Svc) window(w domain.Window) (time.Time, time.Time, error) {
	from, to := recurrence.DefaultWindow(ptime.Wall(s.opts.Now()))
	if !w.From.IsZero() {
		from = ptime.Wall(w.From)
	}
	if !w.To.IsZero() {
		to = ptime.Wall(w.To)
	}
	if from.After(to) {
		return time.Time{}, time.Time{}, perr.Validationf("start", "start must not be after end")
	}
	if to.Sub(from) > s.opts.MaxWindow {
		return time.Time{}, time.Time{}, perr.Validationf("end", "window may span at most %d days", int(s.opts.MaxWindow.Hours()/24))
	}
	return from, to, nil
}

// build validates the input and assembles the definition it describes
// interval ordering is checked before the recurrence interval
func build(ownerID, id string, in domain.AppointmentInput) (domain.Appointment, error) {
	a := domain.Appointment{
		ID:                  id,
		OwnerID:             ownerID,
		Title:               strings.TrimSpace(in.Title),
		Description:         in.Description,
		Location:            in.Location,
		Attendees:           in.Attendees,
		Type:                in.Type,
		StartTime:           in.StartTime,
		EndTime:             in.EndTime,
		IsRecurring:         in.IsRecurring,
		RecurrenceInterval:  in.RecurrenceInterval,
		RecurrenceEndDate:   in.RecurrenceEndDate,
		ParentAppointmentID: in.ParentAppointmentID,
	}
	if a.Type == "" {
		a.Type = domain.TypeMeeting
	}
	if !a.IsRecurring {
		a.RecurrenceInterval = recurrence.Daily
		a.RecurrenceEndDate = nil
	}
	if a.RecurrenceEndDate != nil && a.RecurrenceEndDate.IsZero() {
		a.RecurrenceEndDate = nil
	}

	switch err := a.Definition().Validate(); {
	case err == nil:
		return a, nil
	case errors.Is(err, recurrence.ErrInvalidInterval):
		return domain.Appointment{}, perr.Validationf("end_time", "end time must be after start time")
	case errors.Is(err, recurrence.ErrUnknownInterval):
		return domain.Appointment{}, perr.Validationf("recurrence_interval", "recurrence interval must be daily, weekly or monthly")
	default:
		return domain.Appointment{}, perr.Validationf("", "%s", err.Error())
	}
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func notFound(err error, id string) error {
	if perr.IsCode(err, perr.ErrorCodeNotFound) {
		return perr.NotFoundf("appointment %s not found", id)
	}
	return err
}

func fromRow(r repo.Row) domain.Appointment {
	a := domain.Appointment{
		ID:                 r.ID,
		OwnerID:            r.OwnerID,
		Title:              r.Title,
		Description:        r.Description,
		Location:           r.Location,
		Attendees:          r.Attendees,
		Type:               r.Type,
		StartTime:          ptime.Naive{Time: r.StartTime},
		EndTime:            ptime.Naive{Time: r.EndTime},
		IsRecurring:        r.IsRecurring,
		RecurrenceInterval: recurrence.Interval(r.RecurrenceInterval),
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
	if r.RecurrenceEndDate != nil {
		a.RecurrenceEndDate = &ptime.Date{Time: *r.RecurrenceEndDate}
	}
	if r.ParentAppointmentID != nil {
		a.ParentAppointmentID = *r.ParentAppointmentID
	}
	return a
}

func toRow(a domain.Appointment) repo.Row {
	r := repo.Row{
		ID:                 a.ID,
		OwnerID:            a.OwnerID,
		Title:              a.Title,
		Description:        a.Description,
		Location:           a.Location,
		Attendees:          a.Attendees,
		Type:               a.Type,
		StartTime:          a.StartTime.Time,
		EndTime:            a.EndTime.Time,
		IsRecurring:        a.IsRecurring,
		RecurrenceInterval: int16(a.RecurrenceInterval),
		RecurrenceEndDate:  a.RecurrenceEndDate.Ptr(),
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}
	if a.ParentAppointmentID != "" {
		p := a.ParentAppointmentID
		r.ParentAppointmentID = &p
	}
	return r
}
