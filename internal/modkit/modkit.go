// Package modkit builds api modules: shared deps, build options and the Base
// that mounts a module under its prefix
package modkit

import "agenda/internal/modkit/module"

// Module is what the api mounts
type Module = module.Module
