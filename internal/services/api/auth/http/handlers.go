// Package http provides http transport for accounts and sessions
package http

import (
	stdhttp "net/http"

	"agenda/internal/modkit/httpkit"
	"agenda/internal/platform/net/middleware"
	"agenda/internal/services/api/auth/domain"
	svc "agenda/internal/services/api/auth/service"
)

// Register mounts the public and the protected auth endpoints
func Register(r httpkit.Router, s svc.Service, port middleware.AuthPort) {
	h := &handlers{svc: s}

	httpkit.PostJSON[domain.RegisterInput](r, "/register", h.register)
	httpkit.PostJSON[domain.LoginInput](r, "/login", h.login)

	httpkit.Protected(r, port, func(pr httpkit.Router) {
		httpkit.Get(pr, "/current", h.current)
		httpkit.Post(pr, "/logout", h.logout)
	})
}

type handlers struct{ svc svc.Service }

// @Summary Create an account
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body domain.RegisterInput true "Account"
// @Success 201 {object} domain.Session "created"
// @Failure 400 {object} httpkit.Envelope
// @Failure 409 {object} httpkit.Envelope
// @Router /auth/register [post]
func (h *handlers) register(r *stdhttp.Request, in domain.RegisterInput) (any, error) {
	sess, err := h.svc.Register(r.Context(), in)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(sess), nil
}

// @Summary Log in with username or email
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body domain.LoginInput true "Credentials"
// @Success 200 {object} domain.Session "ok"
// @Failure 401 {object} httpkit.Envelope
// @Failure 403 {object} httpkit.Envelope
// @Router /auth/login [post]
func (h *handlers) login(r *stdhttp.Request, in domain.LoginInput) (any, error) {
	return h.svc.Login(r.Context(), in)
}

// @Summary The authenticated account
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.User "ok"
// @Failure 401 {object} httpkit.Envelope
// @Router /auth/current [get]
func (h *handlers) current(r *stdhttp.Request) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Current(r.Context(), uid)
}

// @Summary Revoke the session of the bearer token
// @Tags Auth
// @Security BearerAuth
// @Success 204 "revoked"
// @Router /auth/logout [post]
func (h *handlers) logout(r *stdhttp.Request) (any, error) {
	tok, err := httpkit.Bearer(r)
	if err != nil {
		return nil, err
	}
	if err := h.svc.Logout(r.Context(), tok); err != nil {
		return nil, err
	}
	return httpkit.NoContent(), nil
}
