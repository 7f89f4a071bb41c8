// Package binlookup provides the HTTP client for the external prefix
// metadata collaborator
package binlookup

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	perr "cardsmith/internal/platform/errors"
	"cardsmith/internal/platform/logger"
	gendom "cardsmith/internal/services/generator/domain"
)

const (
	defaultTimeout = 5 * time.Second
	defaultUA      = "cardsmith-binlookup"

	// responses larger than this are not metadata
	maxBodyBytes = 64 << 10
)

// Options configures the Client
type Options struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
}

// Client asks the collaborator for prefix metadata with a bounded timeout.
// Every failure maps to unavailable so callers can fall back to the
// static registry.
type Client struct {
	http *http.Client
	opts Options
	log  logger.Logger
	now  func() time.Time
}

// NewClient creates a new Client with sane defaults
func NewClient(o Options) *Client {
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	return &Client{
		http: &http.Client{Timeout: o.Timeout},
		opts: o,
		log:  *logger.Named("binlookup"),
		now:  time.Now,
	}
}

// wire is the collaborator's response shape
type wire struct {
	Scheme  string `json:"scheme"`
	Length  int    `json:"length"`
	Issuer  string `json:"issuer"`
	Country string `json:"country"`
}

// Lookup implements the generator's LookupPort
func (c *Client) Lookup(ctx context.Context, prefix6 string) (gendom.Meta, error) {
	url := c.opts.BaseURL + "/" + prefix6

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return gendom.Meta{}, perr.Wrapf(err, perr.ErrorCodeUnknown, "binlookup new request failed")
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Accept", "application/json")

	start := c.now()
	resp, err := c.http.Do(req)
	if err != nil {
		return gendom.Meta{}, perr.Wrapf(err, perr.ErrorCodeUnavailable, "binlookup do failed")
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	c.log.Debug().
		Str("prefix", prefix6).
		Int("status", resp.StatusCode).
		Dur("latency", c.now().Sub(start)).
		Msg("binlookup http response")

	if resp.StatusCode != http.StatusOK {
		return gendom.Meta{}, perr.Unavailablef("binlookup returned %d for %s", resp.StatusCode, prefix6)
	}

	var w wire
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&w); err != nil {
		return gendom.Meta{}, perr.Wrapf(err, perr.ErrorCodeUnavailable, "binlookup bad payload")
	}
	if w.Scheme == "" {
		return gendom.Meta{}, perr.Unavailablef("binlookup empty scheme for %s", prefix6)
	}

	return gendom.Meta{
		Prefix:  prefix6,
		Scheme:  w.Scheme,
		Length:  w.Length,
		Issuer:  w.Issuer,
		Country: w.Country,
	}, nil
}
