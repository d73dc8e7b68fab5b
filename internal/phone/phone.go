package phone

import "strings"

const (
	// CountryCode is rendered in place of the trunk digit.
	CountryCode = "7"
	// Length is the number of digits in a complete number, trunk digit included.
	Length = 11
)

// Digits strips every non-digit character from s.
func Digits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Valid reports whether s carries exactly Length digits.
func Valid(s string) bool {
	return len(Digits(s)) == Length
}

// Format renders s into the +7 (DDD) DDD-DD-DD mask. The first digit is the
// trunk digit and is always shown as CountryCode; input past Length digits is
// dropped. Partial input yields a partial mask, and Format(Format(s)) ==
// Format(s).
//
// A lone trunk digit renders as "+7 (" rather than "+7 (8": the digit is
// replaced, never echoed, so the digit count and idempotence hold for every
// prefix.
func Format(s string) string {
	digits := Digits(s)
	if len(digits) == 0 {
		return ""
	}
	if len(digits) > Length {
		digits = digits[:Length]
	}
	rest := digits[1:]

	var b strings.Builder
	b.WriteString("+" + CountryCode + " (")
	switch {
	case len(rest) <= 3:
		b.WriteString(rest)
	case len(rest) <= 6:
		b.WriteString(rest[:3] + ") " + rest[3:])
	case len(rest) <= 8:
		b.WriteString(rest[:3] + ") " + rest[3:6] + "-" + rest[6:])
	default:
		b.WriteString(rest[:3] + ") " + rest[3:6] + "-" + rest[6:8] + "-" + rest[8:])
	}
	return b.String()
}
