package repo

import (
	"context"
	"encoding/json"
	"sync"

	dom "cardsmith/internal/services/session/domain"
)

// Memory is an in-process StatePort used by tests and by deployments that
// run without Postgres. State round-trips through JSON so behavior matches
// the durable implementation.
type Memory struct {
	mu sync.RWMutex
	m  map[string][]byte
}

// NewMemory returns an empty in-memory state repo
func NewMemory() *Memory {
	return &Memory{m: make(map[string][]byte)}
}

// Load implements domain.StatePort
func (r *Memory) Load(_ context.Context, principal string) (dom.State, bool, error) {
	r.mu.RLock()
	raw, ok := r.m[principal]
	r.mu.RUnlock()
	if !ok {
		return dom.State{}, false, nil
	}
	var st dom.State
	if err := json.Unmarshal(raw, &st); err != nil {
		return dom.State{}, false, err
	}
	return st, true, nil
}

// Save implements domain.StatePort
func (r *Memory) Save(_ context.Context, principal string, st dom.State) error {
	raw, err := json.Marshal(st)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.m[principal] = raw
	r.mu.Unlock()
	return nil
}
