// Package luhn completes digit sequences with a mod-10 check digit and
// validates full sequences independently
package luhn

import (
	"crypto/rand"

	perr "cardsmith/internal/platform/errors"
)

// MaxLength bounds completed sequences; nothing downstream renders longer ones
const MaxLength = 19

// Complete returns a sequence of totalLength digits that starts with prefix,
// continues with uniformly random digits, and ends with the Luhn check digit.
// Randomness comes from crypto/rand so the digit distribution is uniform.
func Complete(prefix []int, totalLength int) ([]int, error) {
	if totalLength <= len(prefix) {
		return nil, perr.InvalidArgf("total length %d must exceed prefix length %d", totalLength, len(prefix))
	}
	if totalLength > MaxLength {
		return nil, perr.InvalidArgf("total length %d exceeds max %d", totalLength, MaxLength)
	}
	for _, d := range prefix {
		if d < 0 || d > 9 {
			return nil, perr.InvalidArgf("prefix digit %d out of range", d)
		}
	}

	out := make([]int, totalLength)
	copy(out, prefix)
	if err := fill(out[len(prefix) : totalLength-1]); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnknown, "random digit fill failed")
	}
	out[totalLength-1] = CheckDigit(out[:totalLength-1])
	return out, nil
}

// CheckDigit computes the mod-10 check digit for the given data digits.
// The alternate flag starts on for the rightmost data digit, i.e. the digit
// immediately preceding the check digit position.
func CheckDigit(data []int) int {
	sum := 0
	double := true
	for i := len(data) - 1; i >= 0; i-- {
		d := data[i]
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return (10 - sum%10) % 10
}

// Valid reports whether the full digit sequence, check digit included,
// passes the mod-10 checksum. Alternation starts from the rightmost digit.
func Valid(digits []int) bool {
	if len(digits) < 2 {
		return false
	}
	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		d := digits[i]
		if d < 0 || d > 9 {
			return false
		}
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

// fill writes uniform random digits into dst.
// Rejection sampling over bytes keeps the distribution unbiased.
func fill(dst []int) error {
	if len(dst) == 0 {
		return nil
	}
	buf := make([]byte, len(dst)+8)
	i := 0
	for i < len(dst) {
		if _, err := rand.Read(buf); err != nil {
			return err
		}
		for _, b := range buf {
			if b >= 250 {
				continue
			}
			dst[i] = int(b % 10)
			i++
			if i == len(dst) {
				break
			}
		}
	}
	return nil
}

// Digits parses a numeric string into its digit values
func Digits(s string) ([]int, error) {
	out := make([]int, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return nil, perr.InvalidArgf("non-digit character %q at position %d", c, i)
		}
		out[i] = int(c - '0')
	}
	return out, nil
}

// String renders digit values back into their numeric string form
func String(digits []int) string {
	b := make([]byte, len(digits))
	for i, d := range digits {
		b[i] = byte('0' + d)
	}
	return string(b)
}
