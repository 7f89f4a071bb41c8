// Package domain defines the types and interfaces for the generator service
package domain

import "time"

// Request asks for a batch of records for a prefix
type Request struct {
	Prefix string
	Count  int
}

// Receipt describes a completed batch and where it landed
type Receipt struct {
	Key         string `json:"key"`
	Scheme      string `json:"scheme"`
	Prefix      string `json:"prefix"`
	Substituted bool   `json:"substituted"`
	Count       int    `json:"count"`
	Bytes       int64  `json:"bytes"`
	Summary     string `json:"summary"`
}

// Blob is a byte range read out of a stored batch
type Blob struct {
	Data  []byte
	Start int64
	Size  int64
}

// BatchEvent is the audit record for one produced batch
type BatchEvent struct {
	Key         string
	Scheme      string
	Prefix      string
	Substituted bool
	Count       int
	Bytes       int64
	Elapsed     time.Duration
	ProducedAt  time.Time
}

// Meta is the advisory answer about a prefix, from the external lookup
// when reachable or from the static registry otherwise
type Meta struct {
	Prefix  string `json:"prefix"`
	Scheme  string `json:"scheme"`
	Length  int    `json:"length"`
	Issuer  string `json:"issuer,omitempty"`
	Country string `json:"country,omitempty"`
	Source  string `json:"source"` // "lookup" or "registry"
}
