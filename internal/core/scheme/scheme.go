// Package scheme holds the static issuer range tables and classifies
// six digit prefixes against them
package scheme

import (
	"math/rand/v2"
	"strings"

	perr "cardsmith/internal/platform/errors"
)

// PrefixLen is the canonical prefix width used everywhere
const PrefixLen = 6

// Range maps an inclusive numeric prefix interval to a scheme
type Range struct {
	Scheme    string
	Start     int
	End       int
	PANLength int
	CVVLength int
}

// Class is the verdict for a classified prefix.
// A zero Scheme means the prefix matched no known range.
type Class struct {
	Scheme    string
	InRange   bool
	PANLength int
	CVVLength int
}

// Classify resolves a six digit prefix against the range tables.
// It is total and deterministic: the same prefix always yields the same verdict.
func Classify(prefix6 string) (Class, error) {
	n, err := parse6(prefix6)
	if err != nil {
		return Class{}, err
	}
	for _, r := range ranges {
		if n >= r.Start && n <= r.End {
			return Class{Scheme: r.Scheme, InRange: true, PANLength: r.PANLength, CVVLength: r.CVVLength}, nil
		}
	}
	return Class{}, nil
}

// Suggest returns a random in-range prefix for the named scheme.
// It picks one of the scheme's range pairs uniformly, then a uniform integer
// within that pair, zero padded to six digits.
func Suggest(scheme string) (string, error) {
	var pairs []Range
	for _, r := range ranges {
		if r.Scheme == scheme {
			pairs = append(pairs, r)
		}
	}
	if len(pairs) == 0 {
		return "", perr.NotFoundf("unknown scheme %q", scheme)
	}
	p := pairs[rand.IntN(len(pairs))]
	n := p.Start + rand.IntN(p.End-p.Start+1)
	return pad6(n), nil
}

// Known reports whether the named scheme has any range pairs
func Known(scheme string) bool {
	for _, r := range ranges {
		if r.Scheme == scheme {
			return true
		}
	}
	return false
}

// Normalize lowercases and pads a raw prefix for classification.
// Shorter numeric input is left padded with zeros; longer input keeps its
// leading six digits.
func Normalize(raw string) string {
	s := strings.TrimSpace(raw)
	if len(s) > PrefixLen {
		s = s[:PrefixLen]
	}
	for len(s) < PrefixLen {
		s = "0" + s
	}
	return s
}

func parse6(s string) (int, error) {
	if len(s) != PrefixLen {
		return 0, perr.InvalidArgf("prefix must be exactly %d digits, got %d", PrefixLen, len(s))
	}
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, perr.InvalidArgf("prefix contains non-digit %q", c)
		}
		n = n*10 + int(c-'0')
	}
	return n, nil
}

func pad6(n int) string {
	b := [PrefixLen]byte{'0', '0', '0', '0', '0', '0'}
	for i := PrefixLen - 1; i >= 0 && n > 0; i-- {
		b[i] = byte('0' + n%10)
		n /= 10
	}
	return string(b[:])
}
