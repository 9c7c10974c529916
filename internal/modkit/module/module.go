// Package module is the contract between the api and its modules, plus the
// helpers that pass ports between them
package module

import phttp "agenda/internal/platform/net/http"

// Module mounts routes and exposes the ports other modules may consume
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}
