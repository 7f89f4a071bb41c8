// Package service implements the batch producer
package service

import (
	"bytes"
	"context"
	"fmt"
	"runtime"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"cardsmith/internal/core/luhn"
	"cardsmith/internal/core/scheme"
	perr "cardsmith/internal/platform/errors"
	"cardsmith/internal/platform/logger"
	dom "cardsmith/internal/services/generator/domain"
)

// Config for the generator service
type Config struct {
	// MaxCount is the hard cap on records per request; requests above it are
	// rejected before any generation begins
	MaxCount int

	// ChunkSize is how many records are materialized and flushed per sink write
	ChunkSize int

	// LookupTimeout bounds the advisory prefix metadata call
	LookupTimeout time.Duration
}

// Service implements domain.ProducerPort
type Service struct {
	blobs  dom.BlobPort
	audit  dom.AuditPort
	lookup dom.LookupPort

	cfg Config
	log logger.Logger
	now func() time.Time

	counts *message.Printer
}

// New constructs the generator service.
// audit and lookup may be nil; both degrade gracefully.
func New(blobs dom.BlobPort, audit dom.AuditPort, lookup dom.LookupPort, cfg Config) *Service {
	if cfg.MaxCount <= 0 {
		cfg.MaxCount = 50_000
	}
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = 5_000
	}
	if cfg.LookupTimeout <= 0 {
		cfg.LookupTimeout = 5 * time.Second
	}
	return &Service{
		blobs:  blobs,
		audit:  audit,
		lookup: lookup,
		cfg:    cfg,
		log:    *logger.Named("generator"),
		now:    time.Now,
		counts: message.NewPrinter(language.English),
	}
}

// Produce validates the request, resolves the prefix, and streams formatted
// records to the blob sink in fixed-size chunks. Chunks are written in strict
// order; the scheduler gets an explicit yield between chunks so a large batch
// never monopolizes the runtime.
func (s *Service) Produce(ctx context.Context, req dom.Request) (dom.Receipt, error) {
	if req.Count <= 0 {
		return dom.Receipt{}, perr.InvalidArgf("count must be positive")
	}
	if req.Count > s.cfg.MaxCount {
		return dom.Receipt{}, perr.InvalidArgf("count %d exceeds cap %d", req.Count, s.cfg.MaxCount)
	}
	raw := strings.TrimSpace(req.Prefix)
	if raw == "" || !allDigits(raw) {
		return dom.Receipt{}, perr.InvalidArgf("prefix must be numeric")
	}

	prefix6, class, substituted, err := s.resolve(ctx, scheme.Normalize(raw))
	if err != nil {
		return dom.Receipt{}, err
	}

	prefixDigits, err := luhn.Digits(prefix6)
	if err != nil {
		return dom.Receipt{}, err
	}

	key := fmt.Sprintf("gen/%d_%s_%d.txt", s.now().UnixMilli(), prefix6, req.Count)
	started := s.now()

	var written int64
	remaining := req.Count
	var buf bytes.Buffer
	for remaining > 0 {
		n := s.cfg.ChunkSize
		if remaining < n {
			n = remaining
		}
		buf.Reset()
		for i := 0; i < n; i++ {
			digits, err := luhn.Complete(prefixDigits, class.PANLength)
			if err != nil {
				return dom.Receipt{}, err
			}
			formatLine(&buf, digits, class.CVVLength)
		}
		if _, err := s.blobs.Append(ctx, key, buf.Bytes()); err != nil {
			// terminal: partial output stays, remaining chunks are abandoned
			return dom.Receipt{}, perr.Wrapf(err, perr.ErrorCodeUnavailable, "blob append failed for %s", key)
		}
		written += int64(buf.Len())
		remaining -= n

		if remaining > 0 {
			select {
			case <-ctx.Done():
				return dom.Receipt{}, perr.Wrap(ctx.Err(), perr.ErrorCodeUnavailable, "generation aborted")
			default:
			}
			runtime.Gosched()
		}
	}

	elapsed := s.now().Sub(started)
	rec := dom.Receipt{
		Key:         key,
		Scheme:      class.Scheme,
		Prefix:      prefix6,
		Substituted: substituted,
		Count:       req.Count,
		Bytes:       written,
		Summary:     s.counts.Sprintf("%d %s records for %s", req.Count, class.Scheme, prefix6),
	}
	s.log.Info().
		Str("key", key).
		Str("scheme", class.Scheme).
		Int("count", req.Count).
		Int64("bytes", written).
		Dur("elapsed", elapsed).
		Msg("batch produced")

	if s.audit != nil {
		s.audit.BatchProduced(ctx, dom.BatchEvent{
			Key:         key,
			Scheme:      class.Scheme,
			Prefix:      prefix6,
			Substituted: substituted,
			Count:       req.Count,
			Bytes:       written,
			Elapsed:     elapsed,
			ProducedAt:  started,
		})
	}
	return rec, nil
}

// resolve classifies the prefix, rescuing an out-of-range prefix through the
// advisory lookup when that names a scheme the registry knows. It never
// invents a scheme the caller did not imply.
func (s *Service) resolve(ctx context.Context, prefix6 string) (string, scheme.Class, bool, error) {
	class, err := scheme.Classify(prefix6)
	if err != nil {
		return "", scheme.Class{}, false, err
	}
	if class.InRange {
		return prefix6, class, false, nil
	}

	if s.lookup != nil {
		lctx, cancel := context.WithTimeout(ctx, s.cfg.LookupTimeout)
		meta, lerr := s.lookup.Lookup(lctx, prefix6)
		cancel()
		if lerr == nil && scheme.Known(meta.Scheme) {
			sub, serr := scheme.Suggest(meta.Scheme)
			if serr != nil {
				return "", scheme.Class{}, false, serr
			}
			subClass, cerr := scheme.Classify(sub)
			if cerr != nil {
				return "", scheme.Class{}, false, cerr
			}
			s.log.Debug().Str("prefix", prefix6).Str("substitute", sub).Msg("prefix substituted")
			return sub, subClass, true, nil
		}
	}
	return "", scheme.Class{}, false, perr.SchemeUnknownf("prefix %s matches no known scheme", prefix6)
}

// Fetch reads a byte range out of a stored batch. end == -1 reads through the
// final byte. Batches are immutable once written so responses are cacheable.
func (s *Service) Fetch(ctx context.Context, key string, start, end int64) (dom.Blob, error) {
	if !strings.HasPrefix(key, "gen/") {
		return dom.Blob{}, perr.NotFoundf("no batch at %s", key)
	}
	size, err := s.blobs.Size(ctx, key)
	if err != nil {
		return dom.Blob{}, err
	}
	if start < 0 {
		start = 0
	}
	if start >= size {
		return dom.Blob{}, perr.InvalidArgf("range start %d beyond size %d", start, size)
	}
	data, err := s.blobs.ReadRange(ctx, key, start, end)
	if err != nil {
		return dom.Blob{}, err
	}
	return dom.Blob{Data: data, Start: start, Size: size}, nil
}

// Describe answers prefix metadata, preferring the external lookup and
// falling back to the static registry when the collaborator is unreachable
func (s *Service) Describe(ctx context.Context, prefix string) (dom.Meta, error) {
	raw := strings.TrimSpace(prefix)
	if raw == "" || !allDigits(raw) {
		return dom.Meta{}, perr.InvalidArgf("prefix must be numeric")
	}
	prefix6 := scheme.Normalize(raw)

	if s.lookup != nil {
		lctx, cancel := context.WithTimeout(ctx, s.cfg.LookupTimeout)
		meta, err := s.lookup.Lookup(lctx, prefix6)
		cancel()
		if err == nil {
			meta.Prefix = prefix6
			meta.Source = "lookup"
			return meta, nil
		}
		s.log.Debug().Err(err).Str("prefix", prefix6).Msg("lookup unavailable, using registry")
	}

	class, err := scheme.Classify(prefix6)
	if err != nil {
		return dom.Meta{}, err
	}
	if !class.InRange {
		return dom.Meta{}, perr.SchemeUnknownf("prefix %s matches no known scheme", prefix6)
	}
	return dom.Meta{
		Prefix: prefix6,
		Scheme: class.Scheme,
		Length: class.PANLength,
		Source: "registry",
	}, nil
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
