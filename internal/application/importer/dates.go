package importer

import (
	"regexp"
	"strings"
	"time"
)

// Layouts tried in order by ParseDate. ISO first, then day-first slash dates,
// then month-first, then free-form word dates. For an ambiguous slash date
// like 03/04/2025 the day-first reading wins silently; this mirrors the input
// convention of the zone's calendars and is an accepted ambiguity.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05Z07:00",
	"02/01/2006",
	"2/1/2006",
	"01/02/2006",
	"1/2/2006",
	"2 Jan 2006",
	"2 January 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2006/01/02",
	"02-01-2006",
	"2-1-2006",
}

var ordinalSuffixRe = regexp.MustCompile(`\b(\d{1,2})(st|nd|rd|th)\b`)

// ParseDate parses a free-text calendar date, trying each known layout in
// order and returning the first that yields a valid date. The result is
// truncated to midnight UTC; time-of-day in the input is discarded.
// PRE: none
// POST: ok is false and the time is zero when nothing parses
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	s = ordinalSuffixRe.ReplaceAllString(s, "$1")
	s = strings.Join(strings.Fields(s), " ")

	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		return DateOnly(t), true
	}
	return time.Time{}, false
}

// DateOnly truncates a time to midnight UTC on its calendar day.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of calendar days from a to b inclusive.
// PRE: b is not before a
// POST: result >= 1
func DaysBetween(a, b time.Time) int {
	return int(DateOnly(b).Sub(DateOnly(a)).Hours()/24) + 1
}
