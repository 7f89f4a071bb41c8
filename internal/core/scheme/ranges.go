package scheme

// Scheme names used across the service
const (
	Visa       = "visa"
	Mastercard = "mastercard"
	Amex       = "amex"
	Discover   = "discover"
	Diners     = "diners"
	JCB        = "jcb"
	Maestro    = "maestro"
	UnionPay   = "unionpay"
)

// ranges is the process-wide table, loaded once and never mutated.
// Intervals are inclusive on both ends and compared as integers.
var ranges = []Range{
	{Scheme: Visa, Start: 400000, End: 499999, PANLength: 16, CVVLength: 3},

	{Scheme: Mastercard, Start: 510000, End: 559999, PANLength: 16, CVVLength: 3},
	{Scheme: Mastercard, Start: 222100, End: 272099, PANLength: 16, CVVLength: 3},

	{Scheme: Amex, Start: 340000, End: 349999, PANLength: 15, CVVLength: 4},
	{Scheme: Amex, Start: 370000, End: 379999, PANLength: 15, CVVLength: 4},

	{Scheme: Discover, Start: 601100, End: 601199, PANLength: 16, CVVLength: 3},
	{Scheme: Discover, Start: 622126, End: 622925, PANLength: 16, CVVLength: 3},
	{Scheme: Discover, Start: 644000, End: 659999, PANLength: 16, CVVLength: 3},

	{Scheme: Diners, Start: 300000, End: 305999, PANLength: 14, CVVLength: 3},
	{Scheme: Diners, Start: 360000, End: 369999, PANLength: 14, CVVLength: 3},

	{Scheme: JCB, Start: 352800, End: 358999, PANLength: 16, CVVLength: 3},

	{Scheme: Maestro, Start: 500000, End: 509999, PANLength: 16, CVVLength: 3},
	{Scheme: Maestro, Start: 560000, End: 589999, PANLength: 16, CVVLength: 3},

	{Scheme: UnionPay, Start: 620000, End: 621999, PANLength: 16, CVVLength: 3},
	{Scheme: UnionPay, Start: 622926, End: 626999, PANLength: 16, CVVLength: 3},
	{Scheme: UnionPay, Start: 628200, End: 628899, PANLength: 16, CVVLength: 3},
}

// Ranges returns a copy of the table for callers that need to enumerate it
func Ranges() []Range {
	out := make([]Range, len(ranges))
	copy(out, ranges)
	return out
}
