package repo

import (
	"context"

	"github.com/google/uuid"

	"cardsmith/internal/platform/logger"
	"cardsmith/internal/platform/store"
	dom "cardsmith/internal/services/generator/domain"
)

// auditTable holds one row per produced batch
//
//	CREATE TABLE gen_batches (
//	    event_id    UUID,
//	    produced_at DateTime64(3),
//	    key         String,
//	    scheme      LowCardinality(String),
//	    prefix      FixedString(6),
//	    substituted UInt8,
//	    count       UInt32,
//	    bytes       UInt64,
//	    elapsed_ms  UInt32
//	) ENGINE = MergeTree ORDER BY (produced_at)
const auditTable = "gen_batches"

// Audit implements domain.AuditPort on the clickhouse seam.
// Failures are logged and swallowed; the audit stream never fails a batch.
type Audit struct {
	ch  store.Clickhouse
	log logger.Logger
}

// NewAudit binds the clickhouse seam; a nil seam disables auditing
func NewAudit(ch store.Clickhouse) *Audit {
	return &Audit{ch: ch, log: *logger.Named("gen-audit")}
}

// BatchProduced appends one audit row
func (a *Audit) BatchProduced(ctx context.Context, ev dom.BatchEvent) {
	if a == nil || a.ch == nil {
		return
	}
	sub := uint8(0)
	if ev.Substituted {
		sub = 1
	}
	rows := [][]any{{
		uuid.New().String(),
		ev.ProducedAt,
		ev.Key,
		ev.Scheme,
		ev.Prefix,
		sub,
		uint32(ev.Count),
		uint64(ev.Bytes),
		uint32(ev.Elapsed.Milliseconds()),
	}}
	if err := a.ch.Insert(ctx, auditTable, rows); err != nil {
		a.log.Warn().Err(err).Str("key", ev.Key).Msg("batch audit insert failed")
	}
}
