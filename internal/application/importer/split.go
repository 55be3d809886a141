package importer

import (
	"fmt"

	domain "zonehub/internal/domain/importbatch"
)

// CreateSplitEvents expands a multi-day event into one record per calendar
// day over [StartDate, EndDate] inclusive. Each split is a shallow copy of
// the parent with its own single-day range, an ID suffixed "_day_N" and, when
// the span covers more than one day, a name suffixed " (Day N)".
// PRE: parent.StartDate and parent.EndDate are set, EndDate >= StartDate
// POST: returns exactly DaysBetween(start, end) events with contiguous dates
func CreateSplitEvents(parent domain.ImportedEvent) []domain.ImportedEvent {
	days := DaysBetween(parent.StartDate, parent.EndDate)
	if days < 1 {
		return nil
	}

	splits := make([]domain.ImportedEvent, 0, days)
	for n := 1; n <= days; n++ {
		day := parent.StartDate.AddDate(0, 0, n-1)
		split := parent
		split.ID = fmt.Sprintf("%s_day_%d", parent.ID, n)
		split.StartDate = day
		split.EndDate = day
		split.SplitEvents = nil
		if days > 1 {
			split.Name = fmt.Sprintf("%s (Day %d)", parent.Name, n)
			note := fmt.Sprintf("Day %d of %d (%s to %s)", n, days,
				parent.StartDate.Format("2006-01-02"), parent.EndDate.Format("2006-01-02"))
			if split.Notes != "" {
				split.Notes = split.Notes + "; " + note
			} else {
				split.Notes = note
			}
		}
		splits = append(splits, split)
	}
	return splits
}
