package domain

import "context"

// KeeperPort is the single-writer-per-key actor surface.
// Operations addressed to the same principal are serialized; operations
// addressed to different principals run fully concurrently.
type KeeperPort interface {
	// RateCheck prunes the principal's window and either records the call
	// (allowed) or leaves state untouched beyond the pruning (limited)
	RateCheck(ctx context.Context, principal string) (Decision, error)

	// StartSession begins a verification run. An active session causes a
	// conflict unless the keeper is configured to supersede.
	StartSession(ctx context.Context, principal string, items []string, messageRef string) error

	// UpdateProgress tallies exactly one item. Callers must call it once per
	// item in increasing index order; this is a precondition, not enforced.
	UpdateProgress(ctx context.Context, principal string, index int, outcome Outcome, result string) (Snapshot, error)

	// Progress returns the aggregate snapshot without mutating state
	Progress(ctx context.Context, principal string) (Snapshot, error)
}

// StatePort persists actor state so a restart can resume mid-session
type StatePort interface {
	Load(ctx context.Context, principal string) (State, bool, error)
	Save(ctx context.Context, principal string, st State) error
}
