package importer

import "strings"

// Semantic fields a column can map to.
const (
	FieldName        = "name"
	FieldStartDate   = "startDate"
	FieldEndDate     = "endDate"
	FieldClub        = "club"
	FieldLocation    = "location"
	FieldType        = "type"
	FieldNotes       = "notes"
	FieldCoordinator = "coordinator"
)

// columnRule maps header keywords to a semantic field. Rules are checked in
// order and the first keyword hit wins for a given header cell, so more
// specific rules ("end") must precede generic ones ("date").
type columnRule struct {
	keywords []string
	field    string
}

// columnRules is the ordered mapping configuration. Explicit data rather than
// inline conditionals so the mapping can be tested and extended on its own.
var columnRules = []columnRule{
	{[]string{"end"}, FieldEndDate},
	{[]string{"start", "date"}, FieldStartDate},
	{[]string{"type", "category"}, FieldType},
	{[]string{"club"}, FieldClub},
	{[]string{"event", "name", "title"}, FieldName},
	{[]string{"location", "venue"}, FieldLocation},
	{[]string{"notes", "description"}, FieldNotes},
	{[]string{"coordinator", "contact"}, FieldCoordinator},
}

// ColumnMap is a sparse mapping from semantic field to column index. Absent
// fields mean "not present in this file"; readers must fall back to defaults.
type ColumnMap map[string]int

// MapColumns assigns semantic fields to column indices by case-insensitive
// substring matching against the header row. A later header that matches the
// same field overwrites the earlier assignment; there is no conflict
// detection.
// PRE: none
// POST: pure; returns a possibly-empty map
func MapColumns(header []string) ColumnMap {
	mapping := make(ColumnMap)
	for i, cell := range header {
		lower := strings.ToLower(strings.TrimSpace(cell))
		if lower == "" {
			continue
		}
		if field, ok := matchField(lower); ok {
			mapping[field] = i
		}
	}
	return mapping
}

// matchField returns the first rule whose keywords hit the header text.
func matchField(header string) (string, bool) {
	for _, rule := range columnRules {
		for _, kw := range rule.keywords {
			if strings.Contains(header, kw) {
				return rule.field, true
			}
		}
	}
	return "", false
}

// Cell returns the trimmed value of the mapped field in a row, or empty when
// the field is unmapped or the row is too short.
func (m ColumnMap) Cell(row []string, field string) string {
	i, ok := m[field]
	if !ok || i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
