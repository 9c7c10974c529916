package modkit

import (
	"net/http"

	"agenda/internal/modkit/httpkit"
	str "agenda/internal/platform/strings"
)

// Built is the result of applying options
type Built struct {
	Name     string
	Prefix   string
	Mw       []func(http.Handler) http.Handler
	Ports    any
	Register func(httpkit.Router)
}

// Build applies opts in order, later options win
func Build(opts ...Option) Built {
	var b Built
	for _, o := range opts {
		o(&b)
	}
	return b
}

// Base returns the embeddable part of a module that mounts routes under the prefix
func (b Built) Base(routes func(httpkit.Router)) Base { return Base{built: b, routes: routes} }

// Base implements Name and MountRoutes for modules that embed it
type Base struct {
	built  Built
	routes func(httpkit.Router)
}

// Name is the module name; an unnamed module panics
func (b Base) Name() string { return str.MustString(b.built.Name, "module name") }

// Prefix is the normalized mount path
func (b Base) Prefix() string { return str.MustPrefix(b.built.Prefix) }

// MountRoutes mounts the module routes, then any WithRegister routes, under Prefix
func (b Base) MountRoutes(r httpkit.Router) {
	r.Route(b.Prefix(), func(rr httpkit.Router) {
		rr.Use(b.built.Mw...)
		if b.routes != nil {
			b.routes(rr)
		}
		if b.built.Register != nil {
			b.built.Register(rr)
		}
	})
}
