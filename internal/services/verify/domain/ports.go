package domain

import (
	"context"

	sess "cardsmith/internal/services/session/domain"
)

// RunnerPort drives a full verification batch for one principal
type RunnerPort interface {
	Run(ctx context.Context, principal string, items []string) (Report, error)
}

// CheckerPort asks the external collaborator about a single item.
// A transport failure returns err; a non-2xx response returns the status
// with whatever body came back.
type CheckerPort interface {
	Check(ctx context.Context, item string) (Check, error)
}

// AuditPort records per-item outcomes for analytics.
// Implementations must never fail the batch; errors are logged and dropped.
type AuditPort interface {
	ItemChecked(ctx context.Context, principal, item string, outcome sess.Outcome, status int)
}
