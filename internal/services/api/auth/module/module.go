// Package module wires accounts and sessions into the api and exports the bearer auth port
package module

import (
	modkit "agenda/internal/modkit"
	"agenda/internal/modkit/httpkit"
	"agenda/internal/platform/net/middleware"
	authhttp "agenda/internal/services/api/auth/http"
	authrepo "agenda/internal/services/api/auth/repo"
	authsvc "agenda/internal/services/api/auth/service"
)

// Module is the auth module
type Module struct {
	modkit.Base
	ports Ports
}

// Ports is what auth exports
type Ports struct {
	// Auth resolves bearer tokens to user ids for protected routes
	Auth middleware.AuthPort
}

// New builds the auth module; session options come from deps.Cfg
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("auth"), modkit.WithPrefix("/auth")}, opts...)...)
	o := FromConfig(deps.Cfg)

	svc := authsvc.New(deps.PG, authrepo.NewPG(), authsvc.Options{
		SessionTTL: o.SessionTTL,
		BcryptCost: o.BcryptCost,
	})
	port := httpkit.NewPortCtx(svc.Resolve)

	return &Module{
		Base:  b.Base(func(r httpkit.Router) { authhttp.Register(r, svc, port) }),
		ports: Ports{Auth: port},
	}
}

// Ports returns the exported auth port
func (m *Module) Ports() any { return m.ports }
