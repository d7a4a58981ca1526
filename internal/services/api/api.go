// Package api provides the HTTP API for the application
package api

import (
	"herdbook/internal/platform/config"
	"herdbook/internal/platform/logger"
	phttp "herdbook/internal/platform/net/http"
	"herdbook/internal/platform/net/middleware"
	"herdbook/internal/platform/store"

	"herdbook/internal/modkit"
	"herdbook/internal/modkit/httpkit"
	"herdbook/internal/modkit/module"
	"herdbook/internal/modkit/swaggerkit"

	activitymod "herdbook/internal/services/api/activity/module"
	animalsmod "herdbook/internal/services/api/animals/module"
	herdsmod "herdbook/internal/services/api/herds/module"
	metamod "herdbook/internal/services/api/meta/module"
	weightsdom "herdbook/internal/services/api/weights/domain"
	weightsmod "herdbook/internal/services/api/weights/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	Auth           middleware.AuthPort
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg: opt.Config,
		PG:  opt.Store.PG,
		CH:  opt.Store.CH,
	}

	// Construct activity first and extract its recorder port so herd
	// mutations land in the feed
	activity := activitymod.New(deps)
	sink := module.MustPortsOf[activitymod.Ports](activity).Events

	herds := herdsmod.New(deps, modkit.WithPorts(herdsmod.Ports{Events: sink}))

	// Animals exposes ownership checks; weights depends on them
	animals := animalsmod.New(deps)
	resolver := module.MustPortsOf[weightsdom.AnimalResolver](animals)
	weights := weightsmod.New(deps, modkit.WithPorts(weightsmod.Ports{Animals: resolver}))

	public := []module.Module{
		metamod.New(deps),
	}
	protected := []module.Module{
		herds,
		animals,
		weights,
		activity,
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		// Swagger + profiler
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range public {
			module.Register(m.Name(), m.Ports())
			m.MountRoutes(api)
		}

		// everything herd-shaped requires a verified owner
		httpkit.Protected(api, opt.Auth, func(pr httpkit.Router) {
			for _, m := range protected {
				module.Register(m.Name(), m.Ports())
				m.MountRoutes(pr)
			}
		})
	})
}
