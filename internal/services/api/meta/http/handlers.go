// Package http serves liveness, readiness and build info
package http

import (
	"context"
	"net/http"
	"time"

	"agenda/internal/core/version"
	"agenda/internal/modkit/httpkit"

	"golang.org/x/sync/errgroup"
)

// Pinger is a dependency readiness can probe
type Pinger interface {
	Ping(context.Context) error
}

// Deps are the handler dependencies; PG and CH are probed when they implement Pinger
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	PG          any
	CH          any
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	h := handlers{d}
	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
}

type handlers struct{ d Deps }

// HealthResponse is the liveness payload
type HealthResponse struct {
	OK      bool   `json:"ok" example:"true"`
	Service string `json:"service" example:"agenda-api"`
	Started string `json:"started" example:"2026-10-01T08:00:00Z"`
	Now     string `json:"now" example:"2026-10-01T08:05:00Z"`
}

// ReadyCheck is the outcome of one dependency probe: ok, fail, skipped or unknown
type ReadyCheck struct {
	Name   string `json:"name" example:"pg"`
	Status string `json:"status" example:"ok"`
	Error  string `json:"error,omitempty"`
}

// ReadyResponse is ok, degraded when a dependency cannot be probed, or fail
type ReadyResponse struct {
	Status string       `json:"status" example:"ok"`
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now" example:"2026-10-01T08:05:00Z"`
}

// ServiceResponse carries the uptime in seconds
type ServiceResponse struct {
	Name    string `json:"name" example:"agenda-api"`
	Started string `json:"started" example:"2026-10-01T08:00:00Z"`
	Uptime  int64  `json:"uptime" example:"300"`
}

func stamp(t time.Time) string { return t.UTC().Format(time.RFC3339) }

// @Summary Liveness
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /meta/health [get]
func (h handlers) health(*http.Request) (any, error) {
	return HealthResponse{OK: true, Service: h.d.ServiceName, Started: stamp(h.d.StartedAt), Now: stamp(time.Now())}, nil
}

// @Summary Readiness, pings postgres and clickhouse
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse
// @Failure 503 {object} ReadyResponse
// @Router /meta/ready [get]
func (h handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	checks := []ReadyCheck{{Name: "pg"}, {Name: "ch"}}
	deps := []any{h.d.PG, h.d.CH}

	var g errgroup.Group
	for i := range checks {
		g.Go(func() error {
			checks[i].Status, checks[i].Error = probe(ctx, deps[i])
			return nil
		})
	}
	_ = g.Wait()

	res := ReadyResponse{Status: "ok", Checks: checks, Now: stamp(time.Now())}
	for _, c := range checks {
		switch c.Status {
		case "fail":
			res.Status = "fail"
		case "unknown":
			if res.Status == "ok" {
				res.Status = "degraded"
			}
		}
	}
	if res.Status == "fail" {
		return httpkit.Response{Status: http.StatusServiceUnavailable, Body: res}, nil
	}
	return res, nil
}

func probe(ctx context.Context, dep any) (status, msg string) {
	if dep == nil {
		return "skipped", ""
	}
	p, ok := dep.(Pinger)
	if !ok {
		return "unknown", ""
	}
	if err := p.Ping(ctx); err != nil {
		return "fail", err.Error()
	}
	return "ok", ""
}

// @Summary Build info
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo
// @Router /meta/version [get]
func (h handlers) version(*http.Request) (any, error) { return version.Info(), nil }

// @Summary Service name and uptime
// @Tags Meta
// @Produce json
// @Success 200 {object} ServiceResponse
// @Router /meta/service [get]
func (h handlers) service(*http.Request) (any, error) {
	return ServiceResponse{
		Name:    h.d.ServiceName,
		Started: stamp(h.d.StartedAt),
		Uptime:  int64(time.Since(h.d.StartedAt) / time.Second),
	}, nil
}
