// Package service implements the verification batch orchestrator
package service

import (
	"context"
	"fmt"
	"time"

	perr "cardsmith/internal/platform/errors"
	"cardsmith/internal/platform/logger"
	sess "cardsmith/internal/services/session/domain"
	dom "cardsmith/internal/services/verify/domain"
)

// Config for the verification orchestrator
type Config struct {
	// MaxItems caps how many items one run may carry
	MaxItems int

	// CheckpointEvery emits a progress snapshot every Nth item; the last
	// item always checkpoints
	CheckpointEvery int

	// CheckTimeout bounds each collaborator call
	CheckTimeout time.Duration
}

// Service implements domain.RunnerPort
type Service struct {
	keeper  sess.KeeperPort
	checker dom.CheckerPort
	audit   dom.AuditPort
	cfg     Config
	log     logger.Logger
}

// New constructs the orchestrator; keeper is required, checker may be nil
// when no collaborator is configured
func New(keeper sess.KeeperPort, checker dom.CheckerPort, audit dom.AuditPort, cfg Config) *Service {
	if keeper == nil {
		panic("verify service: nil keeper")
	}
	if cfg.MaxItems <= 0 {
		cfg.MaxItems = 30
	}
	if cfg.CheckpointEvery <= 0 {
		cfg.CheckpointEvery = 3
	}
	if cfg.CheckTimeout <= 0 {
		cfg.CheckTimeout = 15 * time.Second
	}
	return &Service{
		keeper:  keeper,
		checker: checker,
		audit:   audit,
		cfg:     cfg,
		log:     *logger.Named("verify"),
	}
}

// Run implements domain.RunnerPort. A single item failing to check never
// aborts the batch; it lands in the error bucket and the loop continues.
// Only keeper persistence failures and context cancellation are terminal.
func (s *Service) Run(ctx context.Context, principal string, items []string) (dom.Report, error) {
	if len(items) == 0 {
		return dom.Report{}, perr.InvalidArgf("no items to verify")
	}
	if len(items) > s.cfg.MaxItems {
		return dom.Report{}, perr.InvalidArgf("at most %d items per run, got %d", s.cfg.MaxItems, len(items))
	}
	if s.checker == nil {
		return dom.Report{}, perr.Unavailablef("no checker collaborator configured")
	}

	d, err := s.keeper.RateCheck(ctx, principal)
	if err != nil {
		return dom.Report{}, err
	}
	if !d.Allowed {
		return dom.Report{}, perr.TooManyRequestsf(
			"rate limited, retry in %s", d.RetryAfter.Round(time.Second))
	}

	if err := s.keeper.StartSession(ctx, principal, items, ""); err != nil {
		return dom.Report{}, err
	}

	report := dom.Report{
		Principal: principal,
		Total:     len(items),
		Results:   make([]string, 0, len(items)),
	}

	var last sess.Snapshot
	for i, item := range items {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		outcome, status := s.checkOne(ctx, item)
		result := fmt.Sprintf("%s | %s", item, outcome)

		snap, err := s.keeper.UpdateProgress(ctx, principal, i, outcome, result)
		if err != nil {
			return report, err
		}
		last = snap
		report.Results = append(report.Results, result)

		if s.audit != nil {
			s.audit.ItemChecked(ctx, principal, item, outcome, status)
		}

		if (i+1)%s.cfg.CheckpointEvery == 0 || i == len(items)-1 {
			report.Checkpoints = append(report.Checkpoints, snap)
			s.log.Info().
				Str("principal", principal).
				Str("ratio", snap.Ratio).
				Int("live", snap.Counts.Live).
				Int("die", snap.Counts.Die).
				Msg("verification checkpoint")
		}
	}

	report.Counts = last.Counts
	report.Elapsed = last.Elapsed
	report.Ratio = last.Ratio
	return report, nil
}

// checkOne calls the collaborator under its own timeout and classifies
// whatever came back
func (s *Service) checkOne(ctx context.Context, item string) (sess.Outcome, int) {
	cctx, cancel := context.WithTimeout(ctx, s.cfg.CheckTimeout)
	defer cancel()

	chk, err := s.checker.Check(cctx, item)
	if err != nil {
		s.log.Warn().Err(err).Msg("checker call failed")
		return classify("", 0, err), 0
	}
	return classify(chk.Body, chk.Status, nil), chk.Status
}
