// Package domain defines the types and interfaces for the verification orchestrator
package domain

import (
	"time"

	sess "cardsmith/internal/services/session/domain"
)

// Report is the final batch summary returned to the caller
type Report struct {
	Principal   string          `json:"principal"`
	Total       int             `json:"total"`
	Counts      sess.Counts     `json:"counts"`
	Elapsed     time.Duration   `json:"elapsed"`
	Ratio       string          `json:"ratio"`
	Results     []string        `json:"results"`
	Checkpoints []sess.Snapshot `json:"checkpoints"`
}

// Check is the raw collaborator response for one item
type Check struct {
	Body   string
	Status int
}
