// Package api provides the HTTP API for the application
package api

import (
	"fmt"

	"cardsmith/internal/platform/config"
	perr "cardsmith/internal/platform/errors"
	"cardsmith/internal/platform/logger"
	phttp "cardsmith/internal/platform/net/http"
	"cardsmith/internal/platform/store"

	"cardsmith/internal/modkit"
	"cardsmith/internal/modkit/httpkit"
	"cardsmith/internal/modkit/module"
	"cardsmith/internal/modkit/swaggerkit"

	metamod "cardsmith/internal/services/api/meta/module"
	genmod "cardsmith/internal/services/generator/module"
	sessmod "cardsmith/internal/services/session/module"
	verifymod "cardsmith/internal/services/verify/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
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
		RDS: opt.Store.RDS,
	}

	// Construct the session module first and extract its Keeper port
	session := sessmod.New(deps)
	keeper := module.MustPortsOf[sessmod.Ports](session).Keeper

	// The orchestrator gates every run through the session keeper
	verify := verifymod.New(
		deps,
		modkit.WithPorts(verifymod.Injected{Keeper: keeper}),
	)

	// meta stays open for probes; the working modules can sit behind
	// bearer auth (CORE_API_TOKENS, comma separated)
	meta := metamod.New(deps)
	working := []module.Module{
		genmod.New(deps),
		session,
		verify,
	}

	mount := func(rr httpkit.Router, ms []module.Module) {
		for _, m := range ms {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(rr)
		}
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		// Swagger + profiler
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		mount(api, []module.Module{meta})

		if port := guardPort(opt.Config); port != nil {
			httpkit.Protected(api, port, func(g httpkit.Router) {
				mount(g, working)
			})
		} else {
			mount(api, working)
		}
	})
}

// guardPort builds the bearer auth port from CORE_API_TOKENS.
// Empty config means no auth; anything else is a fixed allow list.
func guardPort(cfg config.Conf) *httpkit.Port {
	toks := cfg.MayCSV("TOKENS", nil)
	if len(toks) == 0 {
		return nil
	}
	allowed := make(map[string]string, len(toks))
	for i, t := range toks {
		allowed[t] = fmt.Sprintf("key-%d", i)
	}
	return httpkit.NewPortFunc(func(token string) (string, string, error) {
		uid, ok := allowed[token]
		if !ok {
			return "", "", perr.Unauthorizedf("unknown token")
		}
		return uid, "", nil
	})
}
