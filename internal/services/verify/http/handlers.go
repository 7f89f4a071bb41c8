// Package http provides http transport for the verification orchestrator
package http

import (
	stdhttp "net/http"

	"cardsmith/internal/modkit/httpkit"
	perr "cardsmith/internal/platform/errors"
	"cardsmith/internal/services/verify/domain"
)

// Register mounts verify endpoints on the given router
func Register(r httpkit.Router, runner domain.RunnerPort) {
	h := &handlers{runner: runner}

	httpkit.PostJSON[RunInput](r, "/run", h.run)
}

type handlers struct{ runner domain.RunnerPort }

// RunInput carries one verification batch. Principal may be omitted when the
// request carries a bearer identity; the authenticated user becomes the
// principal.
// swagger:model
type RunInput struct {
	Principal string   `json:"principal,omitempty" validate:"omitempty,min=1,max=128"`
	Items     []string `json:"items" validate:"required,min=1,dive,required"`
}

// swagger:route POST /verify/run Verify run
// @Summary Check a batch of items and return the outcome report
// @Tags Verify
// @Accept json
// @Produce json
// @Param payload body RunInput true "Request"
// @Success 200 {object} domain.Report "ok"
// @Router /verify/run [post]
func (h *handlers) run(r *stdhttp.Request, in RunInput) (any, error) {
	principal := in.Principal
	if principal == "" {
		if uid, err := httpkit.User(r); err == nil {
			principal = uid
		}
	}
	if principal == "" {
		return nil, perr.InvalidArgf("principal required when the request is unauthenticated")
	}
	return h.runner.Run(r.Context(), principal, in.Items)
}
