// Package http provides http transport for appointments
package http

import (
	stdhttp "net/http"
	"time"

	"agenda/internal/modkit/httpkit"
	perr "agenda/internal/platform/errors"
	ptime "agenda/internal/platform/time"
	"agenda/internal/services/api/appointments/domain"
	svc "agenda/internal/services/api/appointments/service"
)

// Register mounts appointment endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.Get(r, "/", h.list)
	httpkit.Get(r, "/all", h.all)
	httpkit.Get(r, "/day", h.day)
	httpkit.Get(r, "/upcoming", h.upcoming)
	r.Get("/export.ics", h.export)
	httpkit.Get(r, "/{id}", h.get)

	httpkit.PostJSON[domain.AppointmentInput](r, "/", h.create)
	httpkit.PutJSON[domain.AppointmentInput](r, "/{id}", h.update)
	httpkit.Delete(r, "/{id}", h.delete)
}

type handlers struct{ svc svc.Service }

// @Summary List occurrences in a window
// @Description Expands recurring series; start and end default to one month back and three months ahead
// @Tags Appointments
// @Produce json
// @Security BearerAuth
// @Param start query string false "Window start (YYYY-MM-DD or naive date-time)"
// @Param end query string false "Window end, a bare date covers the whole day"
// @Param q query string false "Case and accent insensitive text filter"
// @Success 200 {array} domain.Occurrence "ok"
// @Failure 400 {object} httpkit.Envelope
// @Failure 401 {object} httpkit.Envelope
// @Router /appointments [get]
func (h *handlers) list(r *stdhttp.Request) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	w, err := window(r)
	if err != nil {
		return nil, err
	}
	if q := httpkit.Query(r, "q"); q != "" {
		return h.svc.Search(r.Context(), uid, q, w)
	}
	return h.svc.ListOccurrences(r.Context(), uid, w)
}

// @Summary List stored definitions
// @Tags Appointments
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Appointment "ok"
// @Failure 401 {object} httpkit.Envelope
// @Router /appointments/all [get]
func (h *handlers) all(r *stdhttp.Request) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	return h.svc.ListAll(r.Context(), uid)
}

// @Summary Occurrences starting on one day
// @Tags Appointments
// @Produce json
// @Security BearerAuth
// @Param date query string true "Day (YYYY-MM-DD)"
// @Success 200 {array} domain.Occurrence "ok"
// @Failure 400 {object} httpkit.Envelope
// @Router /appointments/day [get]
func (h *handlers) day(r *stdhttp.Request) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	raw := httpkit.Query(r, "date")
	if raw == "" {
		return nil, perr.Validationf("date", "date is required")
	}
	d, err := ptime.ParseDate(raw)
	if err != nil {
		return nil, perr.Validationf("date", "%s", err.Error())
	}
	return h.svc.Day(r.Context(), uid, d)
}

// @Summary Next occurrences from now
// @Tags Appointments
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max occurrences (1-100)" default(10)
// @Success 200 {array} domain.Occurrence "ok"
// @Router /appointments/upcoming [get]
func (h *handlers) upcoming(r *stdhttp.Request) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	limit, err := httpkit.QueryInt(r, "limit", 10)
	if err != nil {
		return nil, err
	}
	return h.svc.Upcoming(r.Context(), uid, limit)
}

// @Summary Export the window as iCalendar
// @Tags Appointments
// @Produce text/calendar
// @Security BearerAuth
// @Param start query string false "Window start"
// @Param end query string false "Window end"
// @Success 200 {string} string "VCALENDAR document"
// @Router /appointments/export.ics [get]
func (h *handlers) export(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	out, err := h.exportBytes(r)
	if err != nil {
		httpkit.WriteError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="agenda.ics"`)
	w.WriteHeader(stdhttp.StatusOK)
	_, _ = w.Write(out)
}

func (h *handlers) exportBytes(r *stdhttp.Request) ([]byte, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	win, err := window(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Export(r.Context(), uid, win)
}

// @Summary Get one definition
// @Tags Appointments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Appointment id"
// @Success 200 {object} domain.Appointment "ok"
// @Failure 404 {object} httpkit.Envelope
// @Router /appointments/{id} [get]
func (h *handlers) get(r *stdhttp.Request) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Get(r.Context(), uid, httpkit.Param(r, "id"))
}

// @Summary Create an appointment
// @Tags Appointments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body domain.AppointmentInput true "Appointment"
// @Success 201 {object} domain.Appointment "created"
// @Failure 400 {object} httpkit.Envelope
// @Failure 409 {object} httpkit.Envelope
// @Router /appointments [post]
func (h *handlers) create(r *stdhttp.Request, in domain.AppointmentInput) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	a, err := h.svc.CreateDefinition(r.Context(), uid, in)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(a), nil
}

// @Summary Replace an appointment
// @Tags Appointments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Appointment id"
// @Param updateAllFutureEvents query bool false "Check the whole series for conflicts"
// @Param body body domain.AppointmentInput true "Appointment"
// @Success 200 {object} domain.Appointment "ok"
// @Failure 400 {object} httpkit.Envelope
// @Failure 404 {object} httpkit.Envelope
// @Failure 409 {object} httpkit.Envelope
// @Router /appointments/{id} [put]
func (h *handlers) update(r *stdhttp.Request, in domain.AppointmentInput) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	all, err := httpkit.QueryBool(r, "updateAllFutureEvents", false)
	if err != nil {
		return nil, err
	}
	return h.svc.UpdateDefinition(r.Context(), uid, httpkit.Param(r, "id"), in, all)
}

// @Summary Delete an appointment and its whole series
// @Tags Appointments
// @Security BearerAuth
// @Param id path string true "Appointment id"
// @Param deleteAllFuture query bool false "Accepted, the whole series is always removed"
// @Success 204 "deleted"
// @Failure 404 {object} httpkit.Envelope
// @Router /appointments/{id} [delete]
func (h *handlers) delete(r *stdhttp.Request) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	all, err := httpkit.QueryBool(r, "deleteAllFuture", false)
	if err != nil {
		return nil, err
	}
	if err := h.svc.DeleteDefinition(r.Context(), uid, httpkit.Param(r, "id"), all); err != nil {
		return nil, err
	}
	return httpkit.NoContent(), nil
}

// window reads start and end; a bare end date is widened to the end of that day
func window(r *stdhttp.Request) (domain.Window, error) {
	var w domain.Window
	if raw := httpkit.Query(r, "start"); raw != "" {
		t, err := ptime.ParseNaive(raw)
		if err != nil {
			return w, perr.Validationf("start", "%s", err.Error())
		}
		w.From = t
	}
	if raw := httpkit.Query(r, "end"); raw != "" {
		t, err := ptime.ParseNaive(raw)
		if err != nil {
			return w, perr.Validationf("end", "%s", err.Error())
		}
		if len(raw) == len(ptime.DateLayout) {
			t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
		}
		w.To = t
	}
	return w, nil
}
