// Package api provides the HTTP API for the application
package api

import (
	"agenda/internal/platform/config"
	"agenda/internal/platform/logger"
	phttp "agenda/internal/platform/net/http"
	"agenda/internal/platform/net/middleware"
	"agenda/internal/platform/store"

	"agenda/internal/modkit"
	"agenda/internal/modkit/httpkit"
	"agenda/internal/modkit/module"
	"agenda/internal/modkit/swaggerkit"

	actdom "agenda/internal/services/api/activity/domain"
	actmod "agenda/internal/services/api/activity/module"
	appmod "agenda/internal/services/api/appointments/module"
	authmod "agenda/internal/services/api/auth/module"
	"agenda/internal/services/api/docs"
	metamod "agenda/internal/services/api/meta/module"
)

// Options are what Mount needs from main
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount builds every module and mounts them under /api/v1; Config is the
// CORE_API_ view and also feeds CORS_ORIGINS
func Mount(r phttp.Router, opt Options) {
	r.Use(middleware.Heartbeat("/ping"))

	deps := modkit.Deps{
		Cfg: opt.Config,
		PG:  opt.Store.PG,
		CH:  opt.Store.CH,
	}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}

	// auth exports the bearer port every protected module needs
	authMod := authmod.New(deps)
	authPort := module.MustPortsOf[authmod.Ports](authMod).Auth

	activityMod := actmod.New(deps, modkit.WithPorts(actmod.Ports{Auth: authPort}))
	recorder := module.MustPortsOf[actdom.RecorderPort](activityMod)

	appointmentsMod := appmod.New(deps, modkit.WithPorts(appmod.Ports{
		Auth:     authPort,
		Activity: recorder,
	}))

	mods := []module.Module{
		metamod.New(deps),
		authMod,
		appointmentsMod,
		activityMod,
	}

	swaggerkit.Mount(r, opt.EnableSwagger, docs.SwaggerInfo.ReadDoc)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	stack := httpkit.CommonStack(opt.Config.MayList("CORS_ORIGINS", nil)...)
	httpkit.MountAPIV1(r, stack, func(api httpkit.Router) {
		for _, m := range mods {
			module.Register(m.Name(), m.Ports())
			m.MountRoutes(api)
		}
	})
}
