package importer

import (
	domain "zonehub/internal/domain/importbatch"
)

// Validation messages surfaced on the review screen.
const (
	MsgNameRequired   = "Event name is required"
	MsgStartUnparsed  = "Start date could not be parsed"
	MsgClubRequired   = "Club name is required"
	MsgEndBeforeStart = "End date is before start date"
)

// NormalizeRow maps one raw row through the column mapping into a structured
// imported event: dates parsed, club fuzzy-matched, validation recorded and
// multi-day spans split into per-day records. Validation and match status are
// orthogonal: a row can be matched yet invalid, or unmatched yet otherwise
// complete.
// PRE: id is unique within the batch
// POST: Status is "matched" or "unmatched"; SplitEvents set only for spans > 1 day
func NormalizeRow(id string, row []string, cols ColumnMap, clubs []ClubRef) domain.ImportedEvent {
	ev := domain.ImportedEvent{
		ID:              id,
		OriginalData:    append([]string(nil), row...),
		Name:            cols.Cell(row, FieldName),
		ClubName:        cols.Cell(row, FieldClub),
		EventType:       cols.Cell(row, FieldType),
		Location:        cols.Cell(row, FieldLocation),
		Notes:           cols.Cell(row, FieldNotes),
		CoordinatorName: cols.Cell(row, FieldCoordinator),
	}

	start, okStart := ParseDate(cols.Cell(row, FieldStartDate))
	end, okEnd := ParseDate(cols.Cell(row, FieldEndDate))
	if okStart {
		ev.StartDate = start
		if !okEnd {
			end = start
		}
		ev.EndDate = end
	}

	if ev.Name == "" {
		ev.ValidationErrors = append(ev.ValidationErrors, MsgNameRequired)
	}
	if !okStart {
		ev.ValidationErrors = append(ev.ValidationErrors, MsgStartUnparsed)
	}
	if ev.ClubName == "" {
		ev.ValidationErrors = append(ev.ValidationErrors, MsgClubRequired)
	}
	if okStart && okEnd && end.Before(start) {
		ev.ValidationErrors = append(ev.ValidationErrors, MsgEndBeforeStart)
	}

	if match, ok := FindBestClubMatch(ev.ClubName, clubs); ok {
		ev.Status = domain.EventMatched
		ev.ClubID = match.ClubID
		ev.MatchConfidence = match.Confidence
	} else {
		ev.Status = domain.EventUnmatched
	}

	if okStart && ev.EndDate.After(ev.StartDate) {
		ev.SplitEvents = CreateSplitEvents(ev)
	}
	return ev
}

// BuildEvents runs the column mapper and normalizer over a parsed grid.
// PRE: grid has a header row (ParseFile guarantees this); generateID yields
// unique IDs
// POST: one event per data row, in file order
func BuildEvents(grid Grid, clubs []ClubRef, generateID func() string) []domain.ImportedEvent {
	if len(grid) == 0 {
		return nil
	}
	cols := MapColumns(grid[0])
	events := make([]domain.ImportedEvent, 0, len(grid)-1)
	for _, row := range grid[1:] {
		events = append(events, NormalizeRow(generateID(), row, cols, clubs))
	}
	return events
}
