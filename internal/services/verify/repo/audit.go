// Package repo provides the verify audit sink
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"

	"cardsmith/internal/platform/logger"
	"cardsmith/internal/platform/store"
	sess "cardsmith/internal/services/session/domain"
)

// auditTable holds one row per checked item
//
//	CREATE TABLE verify_outcomes (
//	    event_id   UUID,
//	    checked_at DateTime64(3),
//	    principal  String,
//	    item       String,
//	    outcome    LowCardinality(String),
//	    status     UInt16
//	) ENGINE = MergeTree ORDER BY (checked_at)
const auditTable = "verify_outcomes"

// Audit implements domain.AuditPort on the clickhouse seam.
// Failures are logged and swallowed; the audit stream never fails a run.
type Audit struct {
	ch  store.Clickhouse
	log logger.Logger
}

// NewAudit binds the clickhouse seam; a nil seam disables auditing
func NewAudit(ch store.Clickhouse) *Audit {
	return &Audit{ch: ch, log: *logger.Named("verify-audit")}
}

// ItemChecked appends one outcome row
func (a *Audit) ItemChecked(ctx context.Context, principal, item string, outcome sess.Outcome, status int) {
	if a == nil || a.ch == nil {
		return
	}
	rows := [][]any{{
		uuid.New().String(),
		time.Now().UTC(),
		principal,
		item,
		string(outcome),
		uint16(status),
	}}
	if err := a.ch.Insert(ctx, auditTable, rows); err != nil {
		a.log.Warn().Err(err).Str("principal", principal).Msg("outcome audit insert failed")
	}
}
