// Package module wires appointments into the api
package module

import (
	modkit "agenda/internal/modkit"
	"agenda/internal/modkit/httpkit"
	"agenda/internal/platform/net/middleware"
	actdom "agenda/internal/services/api/activity/domain"
	apphttp "agenda/internal/services/api/appointments/http"
	apprepo "agenda/internal/services/api/appointments/repo"
	appsvc "agenda/internal/services/api/appointments/service"
)

// Module is the appointments module; it exports no ports
type Module struct{ modkit.Base }

// Ports is what appointments consumes; a nil Activity leaves mutations unrecorded
type Ports struct {
	Auth     middleware.AuthPort
	Activity actdom.RecorderPort
}

// New builds the appointments module; write options come from deps.Cfg
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("appointments"), modkit.WithPrefix("/appointments")}, opts...)...)
	in, _ := b.Ports.(Ports)

	cfg := FromConfig(deps.Cfg)
	svc := appsvc.New(deps.PG, apprepo.NewPG(), appsvc.Options{
		LockWrites: cfg.LockWrites,
		MaxWindow:  cfg.MaxWindow,
		Activity:   in.Activity,
	})

	return &Module{Base: b.Base(func(r httpkit.Router) {
		httpkit.Protected(r, in.Auth, func(pr httpkit.Router) { apphttp.Register(pr, svc) })
	})}
}

// Ports implements modkit.Module
func (m *Module) Ports() any { return nil }
