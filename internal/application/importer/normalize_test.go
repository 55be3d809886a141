package importer

import (
	"fmt"
	"testing"

	domain "zonehub/internal/domain/importbatch"
)

var normClubs = []ClubRef{
	{ID: "c1", Name: "Melbourne Pony Club"},
	{ID: "c2", Name: "Geelong Pony Club"},
}

var normHeader = []string{"Event Name", "Start Date", "End Date", "Club Name", "Location", "Event Type"}

func normCols() ColumnMap { return MapColumns(normHeader) }

// TestNormalizeRow_ExactMatch is the single-day exact-match scenario.
func TestNormalizeRow_ExactMatch(t *testing.T) {
	row := []string{"Spring Rally", "2025-09-15", "2025-09-15", "Melbourne Pony Club", "Melbourne", "Rally"}
	ev := NormalizeRow("e1", row, normCols(), normClubs)

	if ev.Status != domain.EventMatched {
		t.Fatalf("expected matched, got %s", ev.Status)
	}
	if ev.MatchConfidence != ConfidenceExact {
		t.Fatalf("expected confidence 100, got %d", ev.MatchConfidence)
	}
	if ev.ClubID != "c1" {
		t.Fatalf("expected clubId c1, got %q", ev.ClubID)
	}
	if ev.SplitEvents != nil {
		t.Fatal("single-day event must not be split")
	}
	if len(ev.ValidationErrors) != 0 {
		t.Fatalf("unexpected validation errors: %v", ev.ValidationErrors)
	}
	if ev.StartDate.Format("2006-01-02") != "2025-09-15" {
		t.Fatalf("unexpected start date: %v", ev.StartDate)
	}
}

// TestNormalizeRow_MultiDayUnmatched is the multi-day unmatched scenario:
// three split events, all unmatched, counted in the batch summary, and the
// batch-level execution gate closed.
func TestNormalizeRow_MultiDayUnmatched(t *testing.T) {
	row := []string{"Zone Camp", "2025-09-15", "2025-09-17", "Nonexistent Club XYZ", "", ""}
	ev := NormalizeRow("e1", row, normCols(), normClubs)

	if ev.Status != domain.EventUnmatched {
		t.Fatalf("expected unmatched, got %s", ev.Status)
	}
	if len(ev.SplitEvents) != 3 {
		t.Fatalf("expected 3 split events, got %d", len(ev.SplitEvents))
	}
	for _, s := range ev.SplitEvents {
		if s.Status != domain.EventUnmatched {
			t.Fatalf("split event should inherit unmatched status, got %s", s.Status)
		}
	}

	summary := domain.CalculateSummary([]domain.ImportedEvent{ev})
	if summary.MultiDayEvents < 1 {
		t.Fatalf("expected multiDayEvents >= 1, got %d", summary.MultiDayEvents)
	}

	batch := domain.Batch{Status: domain.StatusReviewing, Events: []domain.ImportedEvent{ev}}
	if err := batch.CanExecute(); err != domain.ErrUnmatchedEvents {
		t.Fatalf("expected execution blocked, got %v", err)
	}
}

// TestNormalizeRow_MissingName: validation errors accumulate while match
// status is still decided independently by the club outcome.
func TestNormalizeRow_MissingName(t *testing.T) {
	row := []string{"", "2025-09-15", "", "Melbourne Pony Club", "", ""}
	ev := NormalizeRow("e1", row, normCols(), normClubs)

	if !containsString(ev.ValidationErrors, MsgNameRequired) {
		t.Fatalf("expected %q, got %v", MsgNameRequired, ev.ValidationErrors)
	}
	if ev.Status != domain.EventMatched {
		t.Fatalf("club match must be independent of validation, got %s", ev.Status)
	}
}

// TestNormalizeRow_Validation covers the remaining validation rules.
func TestNormalizeRow_Validation(t *testing.T) {
	tests := []struct {
		name string
		row  []string
		want string
	}{
		{"bad start date", []string{"Rally", "someday", "", "Melbourne Pony Club", "", ""}, MsgStartUnparsed},
		{"empty club", []string{"Rally", "2025-09-15", "", "", "", ""}, MsgClubRequired},
		{"end before start", []string{"Rally", "2025-09-15", "2025-09-10", "Melbourne Pony Club", "", ""}, MsgEndBeforeStart},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ev := NormalizeRow("e1", tc.row, normCols(), normClubs)
			if !containsString(ev.ValidationErrors, tc.want) {
				t.Fatalf("expected %q, got %v", tc.want, ev.ValidationErrors)
			}
		})
	}
}

// TestNormalizeRow_MissingEndDateDefaultsToStart checks the sparse-column default.
func TestNormalizeRow_MissingEndDateDefaultsToStart(t *testing.T) {
	cols := MapColumns([]string{"Event Name", "Date", "Club"})
	ev := NormalizeRow("e1", []string{"Rally", "15/09/2025", "Geelong Pony Club"}, cols, normClubs)
	if !ev.EndDate.Equal(ev.StartDate) {
		t.Fatalf("end date should default to start, got %v / %v", ev.StartDate, ev.EndDate)
	}
	if ev.Status != domain.EventMatched || ev.ClubID != "c2" {
		t.Fatalf("expected exact match on c2, got %+v", ev)
	}
}

// TestBuildEvents runs the full grid pipeline and checks original data audit.
func TestBuildEvents(t *testing.T) {
	grid := Grid{
		normHeader,
		{"Spring Rally", "2025-09-15", "2025-09-15", "Melbourne Pony Club", "Melbourne", "Rally"},
		{"Zone Camp", "2025-09-15", "2025-09-17", "Nonexistent Club XYZ", "", "Camp"},
	}
	n := 0
	genID := func() string { n++; return fmt.Sprintf("ev-%d", n) }

	events := BuildEvents(grid, normClubs, genID)
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].ID != "ev-1" || events[1].ID != "ev-2" {
		t.Fatalf("unexpected IDs: %s %s", events[0].ID, events[1].ID)
	}
	if events[1].OriginalData[0] != "Zone Camp" {
		t.Fatalf("original row not preserved: %v", events[1].OriginalData)
	}

	s := domain.CalculateSummary(events)
	if s.TotalEvents != 2 || s.MatchedClubs != 1 || s.UnmatchedClubs != 1 || s.MultiDayEvents != 1 {
		t.Fatalf("unexpected summary: %+v", s)
	}
}

func containsString(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
