// Package repo provides the session state persistence implementations
package repo

import (
	"context"
	stdsql "database/sql"
	"encoding/json"
	"errors"

	"cardsmith/internal/modkit/repokit"
	perr "cardsmith/internal/platform/errors"
	dom "cardsmith/internal/services/session/domain"
)

type (
	// PG is a Postgres implementation of the session state repo
	PG      struct{}
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder for the Postgres implementation
func NewPG() repokit.Binder[dom.StatePort] { return PG{} }

// Bind attaches a Queryer to the Postgres implementation
func (PG) Bind(q repokit.Queryer) dom.StatePort { return &queries{q: q} }

// Load reads the persisted actor state for a principal.
// Expected table:
//
//	CREATE TABLE session_state (
//	    principal   TEXT PRIMARY KEY,
//	    state       JSONB NOT NULL,
//	    updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
//	)
func (r *queries) Load(ctx context.Context, principal string) (dom.State, bool, error) {
	const sqlq = `SELECT state FROM session_state WHERE principal = $1`

	var raw []byte
	if err := r.q.QueryRow(ctx, sqlq, principal).Scan(&raw); err != nil {
		if errors.Is(err, stdsql.ErrNoRows) {
			return dom.State{}, false, nil
		}
		return dom.State{}, false, perr.FromPostgres(err, "load session state")
	}

	var st dom.State
	if err := json.Unmarshal(raw, &st); err != nil {
		return dom.State{}, false, perr.Wrapf(err, perr.ErrorCodeUnknown, "decode session state for %q", principal)
	}
	return st, true, nil
}

// Save upserts the full actor state for a principal
func (r *queries) Save(ctx context.Context, principal string, st dom.State) error {
	raw, err := json.Marshal(st)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "encode session state for %q", principal)
	}

	const sqlq = `
        INSERT INTO session_state (principal, state, updated_at)
        VALUES ($1, $2::jsonb, now())
        ON CONFLICT (principal) DO UPDATE
        SET state = EXCLUDED.state, updated_at = now()
    `
	if _, err := r.q.Exec(ctx, sqlq, principal, raw); err != nil {
		return perr.FromPostgres(err, "save session state")
	}
	return nil
}
