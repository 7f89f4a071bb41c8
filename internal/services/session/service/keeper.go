// Package service implements the per-principal session actor
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	perr "cardsmith/internal/platform/errors"
	"cardsmith/internal/platform/logger"
	dom "cardsmith/internal/services/session/domain"
)

// Config for the session keeper
type Config struct {
	// Quota is the number of allowed calls per trailing window
	Quota int

	// Window is the trailing rate window duration
	Window time.Duration

	// Supersede lets StartSession replace an in-flight session instead of
	// rejecting with a conflict
	Supersede bool
}

// Keeper implements domain.KeeperPort with one lazily created actor per
// principal. The actor's mutex is the single-writer guarantee: two operations
// for the same principal are serialized, different principals never contend.
type Keeper struct {
	mu     sync.Mutex
	actors map[string]*actor

	repo dom.StatePort
	cfg  Config
	log  logger.Logger
	now  func() time.Time
}

// actor owns one principal's state. State is hydrated from the repo on first
// touch so a restarted process resumes mid-session.
type actor struct {
	mu       sync.Mutex
	st       dom.State
	hydrated bool
}

// NewKeeper constructs the keeper with a required state repo
func NewKeeper(repo dom.StatePort, cfg Config) *Keeper {
	if repo == nil {
		panic("session keeper: nil state repo")
	}
	if cfg.Quota <= 0 {
		cfg.Quota = 3
	}
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}
	return &Keeper{
		actors: make(map[string]*actor),
		repo:   repo,
		cfg:    cfg,
		log:    *logger.Named("session"),
		now:    time.Now,
	}
}

// actor returns the actor for principal, creating it on first touch
func (k *Keeper) actor(principal string) *actor {
	k.mu.Lock()
	defer k.mu.Unlock()
	a, ok := k.actors[principal]
	if !ok {
		a = &actor{}
		k.actors[principal] = a
	}
	return a
}

// hydrate loads persisted state once per actor lifetime; the caller holds
// the actor lock
func (k *Keeper) hydrate(ctx context.Context, principal string, a *actor) error {
	if a.hydrated {
		return nil
	}
	st, found, err := k.repo.Load(ctx, principal)
	if err != nil {
		return err
	}
	if found {
		a.st = st
	}
	a.hydrated = true
	return nil
}

// RateCheck implements domain.KeeperPort
func (k *Keeper) RateCheck(ctx context.Context, principal string) (dom.Decision, error) {
	a := k.actor(principal)
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := k.hydrate(ctx, principal, a); err != nil {
		return dom.Decision{}, err
	}

	now := k.now()
	w := prune(a.st.Window, now.Add(-k.cfg.Window))

	if len(w) >= k.cfg.Quota {
		// limited: the call itself is not recorded
		a.st.Window = w
		retry := w[0].Add(k.cfg.Window).Sub(now)
		if err := k.repo.Save(ctx, principal, a.st); err != nil {
			return dom.Decision{}, err
		}
		return dom.Decision{Allowed: false, Remaining: 0, RetryAfter: retry}, nil
	}

	a.st.Window = append(w, now)
	if err := k.repo.Save(ctx, principal, a.st); err != nil {
		return dom.Decision{}, err
	}
	return dom.Decision{Allowed: true, Remaining: k.cfg.Quota - len(a.st.Window)}, nil
}

// StartSession implements domain.KeeperPort
func (k *Keeper) StartSession(ctx context.Context, principal string, items []string, messageRef string) error {
	if len(items) == 0 {
		return perr.InvalidArgf("no items to check")
	}
	a := k.actor(principal)
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := k.hydrate(ctx, principal, a); err != nil {
		return err
	}

	if a.st.Session.Active() && !k.cfg.Supersede {
		return perr.Conflictf("a verification run is already active for this principal")
	}

	superseded := a.st.Session.Active()

	its := make([]string, len(items))
	copy(its, items)
	a.st.Session = &dom.CheckSession{
		Items:      its,
		StartedAt:  k.now(),
		Results:    make([]string, 0, len(its)),
		MessageRef: messageRef,
	}
	if err := k.repo.Save(ctx, principal, a.st); err != nil {
		return err
	}
	k.log.Info().
		Str("principal", principal).
		Int("items", len(its)).
		Bool("superseded", superseded).
		Msg("verification session started")
	return nil
}

// UpdateProgress implements domain.KeeperPort
func (k *Keeper) UpdateProgress(
	ctx context.Context,
	principal string,
	index int,
	outcome dom.Outcome,
	result string,
) (dom.Snapshot, error) {
	a := k.actor(principal)
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := k.hydrate(ctx, principal, a); err != nil {
		return dom.Snapshot{}, err
	}

	s := a.st.Session
	if s == nil {
		return dom.Snapshot{}, perr.NotFoundf("no active session for this principal")
	}
	if index < 0 || index >= len(s.Items) {
		return dom.Snapshot{}, perr.InvalidArgf("index %d out of range for %d items", index, len(s.Items))
	}

	s.Counts.Add(outcome)
	s.Results = append(s.Results, result)
	if err := k.repo.Save(ctx, principal, a.st); err != nil {
		return dom.Snapshot{}, err
	}
	return k.snapshot(s, index+1), nil
}

// Progress implements domain.KeeperPort; never mutates state
func (k *Keeper) Progress(ctx context.Context, principal string) (dom.Snapshot, error) {
	a := k.actor(principal)
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := k.hydrate(ctx, principal, a); err != nil {
		return dom.Snapshot{}, err
	}

	s := a.st.Session
	if s == nil {
		return dom.Snapshot{Ratio: "0/0"}, nil
	}
	snap := k.snapshot(s, s.Counts.Checked())
	snap.Results = append([]string(nil), s.Results...)
	return snap, nil
}

func (k *Keeper) snapshot(s *dom.CheckSession, done int) dom.Snapshot {
	return dom.Snapshot{
		Counts:  s.Counts,
		Checked: s.Counts.Checked(),
		Total:   len(s.Items),
		Elapsed: k.now().Sub(s.StartedAt),
		Ratio:   fmt.Sprintf("%d/%d", done, len(s.Items)),
	}
}

// prune keeps timestamps strictly after the cutoff, preserving order
func prune(w []time.Time, cutoff time.Time) []time.Time {
	out := w[:0]
	for _, t := range w {
		if t.After(cutoff) {
			out = append(out, t)
		}
	}
	return out
}
