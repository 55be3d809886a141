package importer

import (
	"testing"
	"time"
)

// TestParseDate covers the layout priority order, including the documented
// day-first preference for ambiguous slash dates.
func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"2026-09-15", "2026-09-15", true},
		{"15/09/2026", "2026-09-15", true},
		// Ambiguous: day-first wins.
		{"03/04/2025", "2025-04-03", true},
		// Month-first only parses when day-first is impossible.
		{"09/15/2026", "2026-09-15", true},
		{"15 Sep 2026", "2026-09-15", true},
		{"15 September 2026", "2026-09-15", true},
		{"15th September 2026", "2026-09-15", true},
		{"September 15, 2026", "2026-09-15", true},
		{"  15/09/2026  ", "2026-09-15", true},
		{"", "", false},
		{"next Tuesday", "", false},
		{"32/13/2026", "", false},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, ok := ParseDate(tc.in)
			if ok != tc.ok {
				t.Fatalf("ParseDate(%q) ok = %v, want %v", tc.in, ok, tc.ok)
			}
			if !ok {
				return
			}
			if got.Format("2006-01-02") != tc.want {
				t.Fatalf("ParseDate(%q) = %s, want %s", tc.in, got.Format("2006-01-02"), tc.want)
			}
			if h, m, s := got.Clock(); h != 0 || m != 0 || s != 0 {
				t.Fatalf("ParseDate(%q) not truncated to midnight", tc.in)
			}
		})
	}
}

// TestDaysBetween checks inclusive day counting.
func TestDaysBetween(t *testing.T) {
	d1 := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2026, 9, 17, 0, 0, 0, 0, time.UTC)
	if got := DaysBetween(d1, d1); got != 1 {
		t.Fatalf("same day should count 1, got %d", got)
	}
	if got := DaysBetween(d1, d2); got != 3 {
		t.Fatalf("expected 3 days inclusive, got %d", got)
	}
}
