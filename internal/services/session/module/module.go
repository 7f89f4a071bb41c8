// Package module wires the session keeper into the API
package module

import (
	stdhttp "net/http"

	"cardsmith/internal/modkit"
	"cardsmith/internal/modkit/httpkit"
	str "cardsmith/internal/platform/strings"
	"cardsmith/internal/services/session/domain"
	sesshttp "cardsmith/internal/services/session/http"
	"cardsmith/internal/services/session/repo"
	"cardsmith/internal/services/session/service"
)

// Ports exposed by the session module
type Ports struct {
	Keeper domain.KeeperPort
}

// Module implements the session service module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string
	mws    []func(stdhttp.Handler) stdhttp.Handler

	ports    Ports
	register func(httpkit.Router)
}

// New constructs the session module
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("session"),
		modkit.WithPrefix("/session"),
	}, opts...)...)

	o := FromConfig(deps.Cfg)

	// durable state when postgres is wired, in-process otherwise
	var st domain.StatePort
	if deps.PG != nil {
		st = repo.NewPG().Bind(deps.PG)
	} else {
		st = repo.NewMemory()
	}

	keeper := service.NewKeeper(st, service.Config{
		Quota:     o.Quota,
		Window:    o.Window,
		Supersede: o.Supersede,
	})

	m := &Module{
		deps:   deps,
		name:   b.Name,
		prefix: b.Prefix,
		mws:    b.Mw,
		ports:  Ports{Keeper: keeper},
	}

	external := b.Register
	m.register = func(r httpkit.Router) {
		sesshttp.Register(r, m.ports.Keeper)
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
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.MustString(m.name, "session") }

// Prefix implements the modkit.Module interface
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return m.ports }
