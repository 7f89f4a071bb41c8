package service

import (
	"bytes"
	"math/rand/v2"
)

// placeholderExpiry is presentational only and never validated
const placeholderExpiry = "12/29"

// formatLine renders one record as grouped digit blocks, the placeholder
// expiry, and a random verification code. Groups are 4 digits wide; the last
// group carries the remainder for 15-digit schemes.
func formatLine(buf *bytes.Buffer, digits []int, cvvLen int) {
	for i, d := range digits {
		if i > 0 && i%4 == 0 {
			buf.WriteByte(' ')
		}
		buf.WriteByte(byte('0' + d))
	}
	buf.WriteString(" | ")
	buf.WriteString(placeholderExpiry)
	buf.WriteString(" | ")
	if cvvLen != 4 {
		cvvLen = 3
	}
	for i := 0; i < cvvLen; i++ {
		buf.WriteByte(byte('0' + rand.IntN(10)))
	}
	buf.WriteByte('\n')
}
