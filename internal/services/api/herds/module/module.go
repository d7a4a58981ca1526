// Package module wires herds into the API using modkit
package module

import (
	"net/http"

	modkit "herdbook/internal/modkit"
	"herdbook/internal/modkit/httpkit"
	str "herdbook/internal/platform/strings"
	herdshttp "herdbook/internal/services/api/herds/http"
	herdsrepo "herdbook/internal/services/api/herds/repo"
	herdssvc "herdbook/internal/services/api/herds/service"
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

	svc herdssvc.Service
}

// New constructs a herds module with the provided dependencies and options
// pass modkit.WithPorts(herds.Ports{Events: sink}) to wire the activity feed
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("herds"), modkit.WithPrefix("/herds")}, opts...)...)

	in, _ := b.Ports.(Ports)
	repo := herdsrepo.NewPG()
	svc := herdssvc.New(deps.PG, repo, in.Events)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = adaptHerdsPort{svc: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		herdshttp.Register(r, m.svc)
		if external != nil {
			external(r)
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
