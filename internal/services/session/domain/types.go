// Package domain defines the types and interfaces for the session actor
package domain

import "time"

// Outcome is one of the four fixed verification outcomes
type Outcome string

// The four outcome categories; every processed item lands in exactly one
const (
	OutcomeLive    Outcome = "live"
	OutcomeDie     Outcome = "die"
	OutcomeUnknown Outcome = "unknown"
	OutcomeError   Outcome = "error"
)

// ParseOutcome validates a wire outcome value
func ParseOutcome(s string) (Outcome, bool) {
	switch Outcome(s) {
	case OutcomeLive, OutcomeDie, OutcomeUnknown, OutcomeError:
		return Outcome(s), true
	}
	return "", false
}

// Counts tallies items per outcome
type Counts struct {
	Live    int `json:"live"`
	Die     int `json:"die"`
	Unknown int `json:"unknown"`
	Error   int `json:"error"`
}

// Checked is the number of items tallied so far
func (c Counts) Checked() int { return c.Live + c.Die + c.Unknown + c.Error }

// Add increments the counter for an outcome
func (c *Counts) Add(o Outcome) {
	switch o {
	case OutcomeLive:
		c.Live++
	case OutcomeDie:
		c.Die++
	case OutcomeUnknown:
		c.Unknown++
	default:
		c.Error++
	}
}

// CheckSession is one user's in-progress verification run
type CheckSession struct {
	Items      []string  `json:"items"`
	Counts     Counts    `json:"counts"`
	StartedAt  time.Time `json:"started_at"`
	Results    []string  `json:"results"`
	MessageRef string    `json:"message_ref,omitempty"`
}

// Active reports whether the session still has unprocessed items
func (s *CheckSession) Active() bool {
	return s != nil && s.Counts.Checked() < len(s.Items)
}

// State is everything the actor owns for one principal
type State struct {
	Window  []time.Time   `json:"window"`
	Session *CheckSession `json:"session,omitempty"`
}

// Decision is the rate check verdict
type Decision struct {
	Allowed    bool          `json:"allowed"`
	Remaining  int           `json:"remaining"`
	RetryAfter time.Duration `json:"-"`
}

// Snapshot is the aggregate progress view returned by mutations and reads
type Snapshot struct {
	Counts  Counts        `json:"counts"`
	Checked int           `json:"checked"`
	Total   int           `json:"total"`
	Elapsed time.Duration `json:"elapsed"`
	Ratio   string        `json:"ratio"`
	Results []string      `json:"results,omitempty"`
}
