// Package module wires the verification orchestrator into the API
package module

import (
	stdhttp "net/http"

	"cardsmith/internal/adapters/checker"
	"cardsmith/internal/modkit"
	"cardsmith/internal/modkit/httpkit"
	str "cardsmith/internal/platform/strings"
	sess "cardsmith/internal/services/session/domain"
	"cardsmith/internal/services/verify/domain"
	vhttp "cardsmith/internal/services/verify/http"
	"cardsmith/internal/services/verify/repo"
	"cardsmith/internal/services/verify/service"
)

// Ports exposed by the verify module
type Ports struct {
	Runner domain.RunnerPort
}

// Injected declares the required session port for this module
type Injected struct {
	Keeper sess.KeeperPort
}

// Module implements the verify service module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string
	mws    []func(stdhttp.Handler) stdhttp.Handler

	ports    Ports
	register func(httpkit.Router)
}

// New constructs the verify module; the session keeper port must be injected
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("verify"),
		modkit.WithPrefix("/verify"),
	}, opts...)...)

	o := FromConfig(deps.Cfg)

	var injected Injected
	if p, ok := b.Ports.(Injected); ok {
		injected = p
	}
	if injected.Keeper == nil {
		panic("verify module requires the session Keeper port")
	}

	var chk domain.CheckerPort
	if o.CheckerURL != "" {
		chk = checker.NewClient(checker.Options{
			BaseURL: o.CheckerURL,
			Timeout: o.CheckerTimeout,
		})
	}

	svc := service.New(injected.Keeper, chk, repo.NewAudit(deps.CH), service.Config{
		MaxItems:        o.MaxItems,
		CheckpointEvery: o.CheckpointEvery,
		CheckTimeout:    o.CheckerTimeout,
	})

	m := &Module{
		deps:   deps,
		name:   b.Name,
		prefix: b.Prefix,
		mws:    b.Mw,
		ports:  Ports{Runner: svc},
	}

	external := b.Register
	m.register = func(r httpkit.Router) {
		vhttp.Register(r, m.ports.Runner)
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
func (m *Module) Name() string { return str.MustString(m.name, "verify") }

// Prefix implements the modkit.Module interface
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return m.ports }
