// Package module mounts the meta endpoints: health, readiness and build info
package module

import (
	"time"

	modkit "agenda/internal/modkit"
	"agenda/internal/modkit/httpkit"
	metahttp "agenda/internal/services/api/meta/http"
)

// Module is the meta module
type Module struct{ modkit.Base }

// New builds the meta module; uptime counts from this call
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("meta"), modkit.WithPrefix("/meta")}, opts...)...)
	d := metahttp.Deps{
		ServiceName: "agenda-api",
		StartedAt:   time.Now(),
		PG:          deps.PG,
		CH:          deps.CH,
	}
	return &Module{Base: b.Base(func(r httpkit.Router) { metahttp.Register(r, d) })}
}

// Ports implements modkit.Module
func (m *Module) Ports() any { return nil }
