package importer

import (
	"fmt"
	"strings"
	"testing"
	"time"

	domain "zonehub/internal/domain/importbatch"
)

// TestCreateSplitEvents checks the multi-day split property: an N-day span
// yields exactly N single-day events forming a contiguous inclusive range,
// named "(Day N)".
func TestCreateSplitEvents(t *testing.T) {
	parent := domain.ImportedEvent{
		ID:        "e1",
		Name:      "Zone Camp",
		Notes:     "bring gear",
		StartDate: time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 9, 17, 0, 0, 0, 0, time.UTC),
	}

	splits := CreateSplitEvents(parent)
	if len(splits) != 3 {
		t.Fatalf("expected 3 splits, got %d", len(splits))
	}
	for i, s := range splits {
		n := i + 1
		wantDay := parent.StartDate.AddDate(0, 0, i)
		if !s.StartDate.Equal(wantDay) || !s.EndDate.Equal(wantDay) {
			t.Fatalf("split %d: expected single day %s, got %v-%v", n, wantDay.Format("2006-01-02"), s.StartDate, s.EndDate)
		}
		if want := fmt.Sprintf("Zone Camp (Day %d)", n); s.Name != want {
			t.Fatalf("split %d: expected name %q, got %q", n, want, s.Name)
		}
		if want := fmt.Sprintf("e1_day_%d", n); s.ID != want {
			t.Fatalf("split %d: expected ID %q, got %q", n, want, s.ID)
		}
		if !strings.Contains(s.Notes, "bring gear") || !strings.Contains(s.Notes, fmt.Sprintf("Day %d of 3", n)) {
			t.Fatalf("split %d: notes not annotated: %q", n, s.Notes)
		}
		if s.SplitEvents != nil {
			t.Fatalf("split %d: splits must not nest", n)
		}
	}
}

// TestCreateSplitEvents_SingleDay keeps the original name for a one-day span.
func TestCreateSplitEvents_SingleDay(t *testing.T) {
	day := time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC)
	parent := domain.ImportedEvent{ID: "e1", Name: "Rally", StartDate: day, EndDate: day}

	splits := CreateSplitEvents(parent)
	if len(splits) != 1 {
		t.Fatalf("expected 1 split, got %d", len(splits))
	}
	if splits[0].Name != "Rally" {
		t.Fatalf("single-day split must keep the original name, got %q", splits[0].Name)
	}
	if splits[0].ID != "e1_day_1" {
		t.Fatalf("unexpected ID %q", splits[0].ID)
	}
}
