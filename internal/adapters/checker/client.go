// Package checker provides the HTTP client for the external item
// verification collaborator
package checker

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	perr "cardsmith/internal/platform/errors"
	"cardsmith/internal/platform/logger"
	vdom "cardsmith/internal/services/verify/domain"
)

const (
	defaultTimeout = 15 * time.Second
	defaultUA      = "cardsmith-checker"

	// free-text verdicts are short; anything bigger gets truncated
	maxBodyBytes = 64 << 10
)

// Options configures the Client
type Options struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
}

// Client posts one item per call and hands back the raw free-text verdict.
// Transport failures are errors; non-2xx responses are returned with their
// status so the caller can classify them.
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
		log:  *logger.Named("checker"),
		now:  time.Now,
	}
}

// Check implements the verify CheckerPort. The item travels as a single
// pipe-delimited form field.
func (c *Client) Check(ctx context.Context, item string) (vdom.Check, error) {
	form := url.Values{"data": {item}}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.opts.BaseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return vdom.Check{}, perr.Wrapf(err, perr.ErrorCodeUnknown, "checker new request failed")
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	start := c.now()
	resp, err := c.http.Do(req)
	if err != nil {
		return vdom.Check{}, perr.Wrapf(err, perr.ErrorCodeUnavailable, "checker do failed")
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return vdom.Check{}, perr.Wrapf(err, perr.ErrorCodeUnavailable, "checker read failed")
	}

	c.log.Debug().
		Int("status", resp.StatusCode).
		Int("bytes", len(body)).
		Dur("latency", c.now().Sub(start)).
		Msg("checker http response")

	return vdom.Check{Body: string(body), Status: resp.StatusCode}, nil
}
