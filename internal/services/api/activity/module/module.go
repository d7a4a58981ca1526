// Package module wires the activity feed into the API using modkit
package module

import (
	"net/http"

	modkit "herdbook/internal/modkit"
	"herdbook/internal/modkit/httpkit"
	str "herdbook/internal/platform/strings"
	activityhttp "herdbook/internal/services/api/activity/http"
	activityrepo "herdbook/internal/services/api/activity/repo"
	activitysvc "herdbook/internal/services/api/activity/service"
)

// Module implements the modkit.Module interface
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     any
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc activitysvc.Service
}

// New constructs an activity module; without ClickHouse the feed is
// disabled but the module still mounts
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("activity"), modkit.WithPrefix("/activity")}, opts...)...)

	var r activityrepo.Repo
	if deps.CH != nil {
		r = activityrepo.NewCH(deps.CH)
	}
	svc := activitysvc.New(r)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = Ports{Events: activitysvc.NewRecorder(r)}

	external := b.Register
	m.register = func(rt httpkit.Router) {
		activityhttp.Register(rt, m.svc)
		if external != nil {
			external(rt)
		}
	}
	return m
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }
