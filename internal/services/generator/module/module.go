// Package module wires the generator service into the API
package module

import (
	stdhttp "net/http"

	"cardsmith/internal/adapters/binlookup"
	"cardsmith/internal/modkit"
	"cardsmith/internal/modkit/httpkit"
	str "cardsmith/internal/platform/strings"
	"cardsmith/internal/services/generator/domain"
	genhttp "cardsmith/internal/services/generator/http"
	"cardsmith/internal/services/generator/repo"
	"cardsmith/internal/services/generator/service"
)

// Ports exposed by the generator module
type Ports struct {
	Producer domain.ProducerPort
}

// Module implements the generator service module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string
	mws    []func(stdhttp.Handler) stdhttp.Handler

	ports    Ports
	register func(httpkit.Router)
}

// New constructs the generator module
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("generator"),
		modkit.WithPrefix("/gen"),
	}, opts...)...)

	o := FromConfig(deps.Cfg)

	var lookup domain.LookupPort
	if o.LookupURL != "" {
		lookup = binlookup.NewClient(binlookup.Options{
			BaseURL: o.LookupURL,
			Timeout: o.LookupTimeout,
		})
	}

	svc := service.New(
		repo.NewBlobs(deps.RDS),
		repo.NewAudit(deps.CH),
		lookup,
		service.Config{
			MaxCount:      o.MaxCount,
			ChunkSize:     o.ChunkSize,
			LookupTimeout: o.LookupTimeout,
		},
	)

	m := &Module{
		deps:   deps,
		name:   b.Name,
		prefix: b.Prefix,
		mws:    b.Mw,
		ports:  Ports{Producer: svc},
	}

	external := b.Register
	m.register = func(r httpkit.Router) {
		genhttp.Register(r, m.ports.Producer)
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
func (m *Module) Name() string { return str.MustString(m.name, "generator") }

// Prefix implements the modkit.Module interface
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return m.ports }
