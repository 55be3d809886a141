package importer

import "testing"

// TestMapColumns covers keyword mapping, overwrites and sparse output.
func TestMapColumns(t *testing.T) {
	header := []string{"Event Name", "Start Date", "End Date", "Club Name", "Venue", "Event Type", "Description", "Contact Person"}
	m := MapColumns(header)

	want := map[string]int{
		FieldName:        0,
		FieldStartDate:   1,
		FieldEndDate:     2,
		FieldClub:        3,
		FieldLocation:    4,
		FieldType:        5,
		FieldNotes:       6,
		FieldCoordinator: 7,
	}
	for field, idx := range want {
		got, ok := m[field]
		if !ok {
			t.Fatalf("field %s unmapped", field)
		}
		if got != idx {
			t.Fatalf("field %s mapped to %d, want %d", field, got, idx)
		}
	}
}

// TestMapColumns_SparseAndOverwrite verifies missing fields stay absent and a
// later matching header overwrites an earlier one.
func TestMapColumns_SparseAndOverwrite(t *testing.T) {
	m := MapColumns([]string{"Title", "Date"})
	if _, ok := m[FieldClub]; ok {
		t.Fatal("club should be unmapped")
	}
	if m[FieldName] != 0 || m[FieldStartDate] != 1 {
		t.Fatalf("unexpected mapping: %v", m)
	}

	// Two headers matching the same field: last one wins, no conflict error.
	m = MapColumns([]string{"Date", "Start"})
	if m[FieldStartDate] != 1 {
		t.Fatalf("expected overwrite to index 1, got %d", m[FieldStartDate])
	}
}

// TestColumnMap_Cell checks defaulting for unmapped fields and short rows.
func TestColumnMap_Cell(t *testing.T) {
	m := ColumnMap{FieldName: 0, FieldClub: 5}
	row := []string{"  Spring Rally  "}
	if got := m.Cell(row, FieldName); got != "Spring Rally" {
		t.Fatalf("expected trimmed cell, got %q", got)
	}
	if got := m.Cell(row, FieldClub); got != "" {
		t.Fatalf("short row should read empty, got %q", got)
	}
	if got := m.Cell(row, FieldNotes); got != "" {
		t.Fatalf("unmapped field should read empty, got %q", got)
	}
}
