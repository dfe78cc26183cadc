// Package money normalizes monetary text tokens from bank exports into
// signed decimal values.
package money

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// Convention describes how a source format encodes transaction direction
type Convention string

const (
	// Signed means a single amount column whose sign encodes direction
	Signed Convention = "signed"
	// Split means separate debit and credit columns; debit implies negative
	Split Convention = "split"
)

// Suffix tokens some banks append to amounts instead of a sign
var (
	debitSuffixes  = []string{"DR", "DB"}
	creditSuffixes = []string{"CR"}
)

// Parse converts a monetary text token into a signed decimal. It strips
// currency symbols, thousands separators and whitespace, and recognizes
// three negation signals: parentheses wrapping, a trailing debit suffix,
// and (for callers using ParseSplit) a nonzero debit slot. A trailing
// credit suffix forces the result non-negative regardless of other
// signals.
//
// The second return is false when the token does not parse as a number
// after cleanup. Callers must treat that as a hard failure, never as zero.
func Parse(text string) (decimal.Decimal, bool) {
	s := strings.TrimSpace(text)
	if s == "" {
		return decimal.Zero, false
	}

	negative := false
	forcePositive := false

	upper := strings.ToUpper(s)
	for _, suf := range creditSuffixes {
		if strings.HasSuffix(upper, suf) {
			forcePositive = true
			s = strings.TrimSpace(s[:len(s)-len(suf)])
		}
	}
	if !forcePositive {
		for _, suf := range debitSuffixes {
			if strings.HasSuffix(upper, suf) {
				negative = true
				s = strings.TrimSpace(s[:len(s)-len(suf)])
			}
		}
	}

	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}

	s = clean(s)
	if s == "" || s == "-" || s == "+" {
		return decimal.Zero, false
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}

	if forcePositive {
		return d.Abs(), true
	}
	if negative {
		return d.Abs().Neg(), true
	}
	return d, true
}

// ParseSplit resolves the split debit/credit convention into one signed
// value. An empty slot counts as zero. When both slots are nonzero the
// row is malformed; debit takes precedence, matching upstream behavior.
func ParseSplit(debitText, creditText string) (decimal.Decimal, bool) {
	debit, debitOK := parseOptional(debitText)
	credit, creditOK := parseOptional(creditText)
	if !debitOK || !creditOK {
		return decimal.Zero, false
	}

	if !debit.IsZero() {
		return debit.Abs().Neg(), true
	}
	if !credit.IsZero() {
		return credit.Abs(), true
	}
	return decimal.Zero, true
}

// parseOptional treats a blank slot as zero, but still fails on tokens
// that are present and unparseable.
func parseOptional(text string) (decimal.Decimal, bool) {
	if strings.TrimSpace(text) == "" {
		return decimal.Zero, true
	}
	return Parse(text)
}

// clean strips currency symbols, thousands separators and embedded
// whitespace (including non-breaking spaces), leaving only what should
// be a plain decimal number.
func clean(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r == '$' || r == '\u00a3' || r == '\u20ac' || r == ',' || unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
