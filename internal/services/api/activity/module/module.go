// Package module wires the activity ledger into the api and exports its recorder
package module

import (
	"context"
	"time"

	modkit "agenda/internal/modkit"
	"agenda/internal/modkit/httpkit"
	"agenda/internal/platform/logger"
	"agenda/internal/platform/net/middleware"
	actdom "agenda/internal/services/api/activity/domain"
	acthttp "agenda/internal/services/api/activity/http"
	actrepo "agenda/internal/services/api/activity/repo"
	actsvc "agenda/internal/services/api/activity/service"
)

// Module is the activity module
type Module struct {
	modkit.Base
	recorder actdom.RecorderPort
}

// Ports is what activity consumes
type Ports struct {
	Auth middleware.AuthPort
}

// New builds the activity module; without clickhouse the ledger is a no-op
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("activity"), modkit.WithPrefix("/activity")}, opts...)...)
	in, _ := b.Ports.(Ports)

	repo := actrepo.NewCH(deps.CH)
	if deps.CH != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := repo.Ensure(ctx); err != nil {
			logger.Named("activity").Error().Err(err).Msg("ensure ledger table failed")
		}
		cancel()
	}
	svc := actsvc.New(repo)

	return &Module{
		Base: b.Base(func(r httpkit.Router) {
			httpkit.Protected(r, in.Auth, func(pr httpkit.Router) { acthttp.Register(pr, svc) })
		}),
		recorder: svc,
	}
}

// Ports exports the recorder other modules report mutations to
func (m *Module) Ports() any { return m.recorder }
