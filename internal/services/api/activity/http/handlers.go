// Package http provides http transport for the activity ledger
package http

import (
	stdhttp "net/http"

	"agenda/internal/modkit/httpkit"
	svc "agenda/internal/services/api/activity/service"
)

// Register mounts activity endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.Get(r, "/", h.recent)
}

type handlers struct{ svc svc.Service }

// @Summary Recent appointment activity of the caller
// @Tags Activity
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max events (1-200)" default(50)
// @Success 200 {array} domain.Event "ok"
// @Failure 401 {object} httpkit.Envelope
// @Router /activity [get]
func (h *handlers) recent(r *stdhttp.Request) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	limit, err := httpkit.QueryInt(r, "limit", 50)
	if err != nil {
		return nil, err
	}
	return h.svc.Recent(r.Context(), uid, limit)
}
