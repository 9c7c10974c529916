// Package module wires up the sweeper service as a modkit.Module
package module

import (
	"agenda/internal/modkit"
	"agenda/internal/modkit/httpkit"
	modreg "agenda/internal/modkit/module"

	swdom "agenda/internal/services/sweeper/domain"
	swrepo "agenda/internal/services/sweeper/repo"
	swservice "agenda/internal/services/sweeper/service"
)

// Ports exported by the sweeper module
type Ports struct {
	Sweeper swdom.SweeperPort
}

// Module implements modkit.Module for the sweeper
type Module struct {
	deps  modkit.Deps
	opts  Options
	ports Ports
}

// New constructs and wires the sweeper module; options default to FromConfig(deps.Cfg)
func New(deps modkit.Deps, opts ...Options) *Module {
	o := FromConfig(deps.Cfg)
	if len(opts) > 0 {
		o = opts[0]
	}

	svc := swservice.New(deps.PG, swrepo.NewPG(), swservice.Config{EnableLock: o.EnableLock})

	return &Module{deps: deps, opts: o, ports: Ports{Sweeper: svc}}
}

// Name returns the module name
func (m *Module) Name() string { return "sweeper" }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// Options returns the resolved options
func (m *Module) Options() Options { return m.opts }

// MountRoutes is a no-op: the sweeper has no HTTP routes
func (m *Module) MountRoutes(_ httpkit.Router) {}

// Register builds the module and publishes its ports in the registry
func Register(deps modkit.Deps) *Module {
	m := New(deps)
	modreg.Register(m.Name(), m.Ports())
	return m
}
