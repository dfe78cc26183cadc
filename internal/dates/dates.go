// Package dates normalizes date text tokens from bank exports into
// canonical ISO calendar dates.
package dates

import (
	"strings"
	"time"
)

// ISO is the canonical output layout: a calendar date, no time component
const ISO = "2006-01-02"

// defaultLayouts are attempted after the caller's candidate layouts
var defaultLayouts = []string{
	"01/02/2006",
	"1/2/2006",
	"2006-01-02",
	"01-02-2006",
}

// genericLayouts are the last-resort pass, covering month-name forms,
// two-digit years and timestamp prefixes seen across bank exports
var genericLayouts = []string{
	"01/02/06",
	"1/2/06",
	"2006/01/02",
	"02 Jan 2006",
	"2 Jan 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"02-Jan-2006",
	"2-Jan-06",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// Parse attempts each candidate layout in order, then the default
// fallback layouts, then a generic last-resort set. Strict first-match:
// no layout is scored, so callers must order candidates
// most-specific-first to avoid day/month swaps. Returns ("", false) on
// total failure; never panics.
func Parse(text string, candidateLayouts []string) (string, bool) {
	s := strings.TrimSpace(text)
	if s == "" {
		return "", false
	}

	for _, layout := range candidateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(ISO), true
		}
	}
	for _, layout := range defaultLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(ISO), true
		}
	}
	for _, layout := range genericLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(ISO), true
		}
	}
	return "", false
}

// ParseMonthDay resolves a month/day token with no year component
// (common in statement text) against an explicit year.
func ParseMonthDay(text string, year int) (string, bool) {
	s := strings.TrimSpace(text)
	t, err := time.Parse("01/02", s)
	if err != nil {
		t, err = time.Parse("1/2", s)
		if err != nil {
			return "", false
		}
	}
	return time.Date(year, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC).Format(ISO), true
}
