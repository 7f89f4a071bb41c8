// Package http provides http transport for the generator
package http

import (
	"fmt"
	stdhttp "net/http"
	"strconv"
	"strings"

	"cardsmith/internal/modkit/httpkit"
	perr "cardsmith/internal/platform/errors"
	phttp "cardsmith/internal/platform/net/http"
	"cardsmith/internal/services/generator/domain"
)

// Register mounts generator endpoints on the given router
func Register(r httpkit.Router, p domain.ProducerPort) {
	h := &handlers{producer: p}

	// produce a batch and get back a retrieval key
	httpkit.PostJSON[GenerateInput](r, "/generate", h.generate)

	// advisory prefix metadata
	httpkit.PostJSON[LookupInput](r, "/lookup", h.lookup)

	// raw batch bytes, range capable
	r.Get("/batches/*", h.batch)
}

type handlers struct{ producer domain.ProducerPort }

// GenerateInput is the generation trigger payload
// swagger:model
type GenerateInput struct {
	Prefix string `json:"prefix" validate:"required,numeric,min=6,max=19"`
	Count  int    `json:"count"  validate:"required,gt=0"`
}

// LookupInput asks for metadata about a prefix
// swagger:model
type LookupInput struct {
	Prefix string `json:"prefix" validate:"required,numeric,min=1,max=19"`
}

// swagger:route POST /gen/generate Generator generate
// @Summary Produce a batch of records for a prefix
// @Tags Generator
// @Accept json
// @Produce json
// @Param payload body GenerateInput true "Request"
// @Success 200 {object} domain.Receipt "ok"
// @Router /gen/generate [post]
func (h *handlers) generate(r *stdhttp.Request, in GenerateInput) (any, error) {
	return h.producer.Produce(r.Context(), domain.Request{Prefix: in.Prefix, Count: in.Count})
}

// swagger:route POST /gen/lookup Generator lookup
// @Summary Prefix metadata with registry fallback
// @Tags Generator
// @Accept json
// @Produce json
// @Param payload body LookupInput true "Request"
// @Success 200 {object} domain.Meta "ok"
// @Router /gen/lookup [post]
func (h *handlers) lookup(r *stdhttp.Request, in LookupInput) (any, error) {
	return h.producer.Describe(r.Context(), in.Prefix)
}

// batch streams stored batch bytes. Batches are write-once so the response is
// marked publicly cacheable and immutable. A single bytes=a-b range is honored.
func (h *handlers) batch(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	_, name, found := strings.Cut(r.URL.Path, "/batches/")
	if !found || name == "" {
		phttp.RespondError(w, r, perr.NotFoundf("no batch at %s", r.URL.Path))
		return
	}
	key := "gen/" + name

	start, end, partial := parseRange(r.Header.Get("Range"))
	blob, err := h.producer.Fetch(r.Context(), key, start, end)
	if err != nil {
		phttp.RespondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	w.Header().Set("Accept-Ranges", "bytes")
	w.Header().Set("Content-Length", strconv.Itoa(len(blob.Data)))
	if partial {
		last := blob.Start + int64(len(blob.Data)) - 1
		w.Header().Set("Content-Range", fmt.Sprintf("bytes %d-%d/%d", blob.Start, last, blob.Size))
		w.WriteHeader(stdhttp.StatusPartialContent)
	}
	_, _ = w.Write(blob.Data)
}

// parseRange handles the single-range bytes=a-b form; anything else serves
// the whole blob
func parseRange(h string) (start, end int64, partial bool) {
	end = -1
	spec, ok := strings.CutPrefix(h, "bytes=")
	if !ok || strings.Contains(spec, ",") {
		return 0, -1, false
	}
	lo, hi, found := strings.Cut(spec, "-")
	if !found || lo == "" {
		return 0, -1, false
	}
	s, err := strconv.ParseInt(lo, 10, 64)
	if err != nil || s < 0 {
		return 0, -1, false
	}
	if hi == "" {
		return s, -1, true
	}
	e, err := strconv.ParseInt(hi, 10, 64)
	if err != nil || e < s {
		return 0, -1, false
	}
	return s, e, true
}
