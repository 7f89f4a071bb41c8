package domain

import "context"

// ProducerPort produces record batches and serves them back
type ProducerPort interface {
	Produce(ctx context.Context, req Request) (Receipt, error)
	Fetch(ctx context.Context, key string, start, end int64) (Blob, error)
	Describe(ctx context.Context, prefix string) (Meta, error)
}

// BlobPort is the append-only chunk sink for formatted batches.
// Append returns the total size after the write; ReadRange end is inclusive
// with -1 meaning through the final byte.
type BlobPort interface {
	Append(ctx context.Context, key string, chunk []byte) (int64, error)
	ReadRange(ctx context.Context, key string, start, end int64) ([]byte, error)
	Size(ctx context.Context, key string) (int64, error)
}

// AuditPort records batch events for analytics.
// Implementations must never fail the batch; errors are logged and dropped.
type AuditPort interface {
	BatchProduced(ctx context.Context, ev BatchEvent)
}

// LookupPort asks the external collaborator about a prefix
type LookupPort interface {
	Lookup(ctx context.Context, prefix6 string) (Meta, error)
}
