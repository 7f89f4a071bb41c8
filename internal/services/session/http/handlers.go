// Package http provides http transport for the session keeper
package http

import (
	stdhttp "net/http"

	"cardsmith/internal/modkit/httpkit"
	perr "cardsmith/internal/platform/errors"
	"cardsmith/internal/services/session/domain"
)

// Register mounts session endpoints on the given router
func Register(r httpkit.Router, k domain.KeeperPort) {
	h := &handlers{keeper: k}

	httpkit.PostJSON[PrincipalInput](r, "/rate_check", h.rateCheck)
	httpkit.PostJSON[StartInput](r, "/start_check", h.start)
	httpkit.PostJSON[ProgressInput](r, "/update_progress", h.update)
	httpkit.PostJSON[PrincipalInput](r, "/progress", h.progress)
}

type handlers struct{ keeper domain.KeeperPort }

// PrincipalInput addresses one principal's actor
// swagger:model
type PrincipalInput struct {
	Principal string `json:"principal" validate:"required,min=1,max=128"`
}

// StartInput begins a verification run
// swagger:model
type StartInput struct {
	Principal  string   `json:"principal" validate:"required,min=1,max=128"`
	Items      []string `json:"items" validate:"required,min=1,dive,required"`
	MessageRef string   `json:"message_ref,omitempty"`
}

// ProgressInput tallies one processed item
// swagger:model
type ProgressInput struct {
	Principal string `json:"principal" validate:"required,min=1,max=128"`
	Index     *int   `json:"index" validate:"required"`
	Outcome   string `json:"outcome" validate:"required,oneof=live die unknown error"`
	Result    string `json:"result,omitempty"`
}

// rateDecision is the wire form of a rate check verdict
type rateDecision struct {
	Allowed      bool  `json:"allowed"`
	Remaining    int   `json:"remaining"`
	RetryAfterMS int64 `json:"retry_after_ms,omitempty"`
}

// swagger:route POST /session/rate_check Session rateCheck
// @Summary Consume or deny one rate window slot
// @Tags Session
// @Accept json
// @Produce json
// @Param payload body PrincipalInput true "Request"
// @Success 200 {object} rateDecision "ok"
// @Router /session/rate_check [post]
func (h *handlers) rateCheck(r *stdhttp.Request, in PrincipalInput) (any, error) {
	d, err := h.keeper.RateCheck(r.Context(), in.Principal)
	if err != nil {
		return nil, err
	}
	return rateDecision{
		Allowed:      d.Allowed,
		Remaining:    d.Remaining,
		RetryAfterMS: d.RetryAfter.Milliseconds(),
	}, nil
}

// swagger:route POST /session/start_check Session startCheck
// @Summary Begin a verification run for a principal
// @Tags Session
// @Accept json
// @Produce json
// @Param payload body StartInput true "Request"
// @Success 200 {object} map[string]int "ok"
// @Router /session/start_check [post]
func (h *handlers) start(r *stdhttp.Request, in StartInput) (any, error) {
	if err := h.keeper.StartSession(r.Context(), in.Principal, in.Items, in.MessageRef); err != nil {
		return nil, err
	}
	return map[string]int{"total": len(in.Items)}, nil
}

// swagger:route POST /session/update_progress Session updateProgress
// @Summary Tally one item and return the aggregate snapshot
// @Tags Session
// @Accept json
// @Produce json
// @Param payload body ProgressInput true "Request"
// @Success 200 {object} domain.Snapshot "ok"
// @Router /session/update_progress [post]
func (h *handlers) update(r *stdhttp.Request, in ProgressInput) (any, error) {
	out, ok := domain.ParseOutcome(in.Outcome)
	if !ok {
		return nil, perr.InvalidArgf("unknown outcome %q", in.Outcome)
	}
	return h.keeper.UpdateProgress(r.Context(), in.Principal, *in.Index, out, in.Result)
}

// swagger:route POST /session/progress Session progress
// @Summary Read the aggregate snapshot without mutating state
// @Tags Session
// @Accept json
// @Produce json
// @Param payload body PrincipalInput true "Request"
// @Success 200 {object} domain.Snapshot "ok"
// @Router /session/progress [post]
func (h *handlers) progress(r *stdhttp.Request, in PrincipalInput) (any, error) {
	return h.keeper.Progress(r.Context(), in.Principal)
}
