package service

import (
	"strings"

	sess "cardsmith/internal/services/session/domain"
)

// Marker sets for free-text classification, matched case-insensitively.
// Precedence is live, then die, then unknown; anything else is an error.
var (
	liveMarkers    = []string{"live", "approved", "charged", "success"}
	dieMarkers     = []string{"die", "dead", "declined"}
	unknownMarkers = []string{"unknown", "pending", "try again", "timeout"}
)

// classify maps a raw collaborator response to one of the four outcomes.
// Transport failures and non-2xx statuses are errors regardless of body.
func classify(body string, status int, err error) sess.Outcome {
	if err != nil {
		return sess.OutcomeError
	}
	if status < 200 || status > 299 {
		return sess.OutcomeError
	}
	b := strings.ToLower(body)
	if containsAny(b, liveMarkers) {
		return sess.OutcomeLive
	}
	if containsAny(b, dieMarkers) {
		return sess.OutcomeDie
	}
	if containsAny(b, unknownMarkers) {
		return sess.OutcomeUnknown
	}
	return sess.OutcomeError
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
