package importer

import (
	"bytes"
	"encoding/csv"
	"log/slog"
	"path/filepath"
	"strings"
)

// Grid is the rectangular output of the file parser: a header row followed by
// data rows. Rows may be ragged; missing cells read as empty strings.
type Grid = [][]string

// StandardHeader is emitted when a parser has to synthesize rows (PDF, DOCX
// calendar text, placeholders) rather than read a tabular header from the file.
var StandardHeader = []string{
	"Event Name", "Start Date", "End Date", "Club Name",
	"Location", "Event Type", "Notes", "Coordinator",
}

// ManualReviewMarker is the first cell of a placeholder data row. Downstream
// review screens surface these rows for hand entry.
const ManualReviewMarker = "Manual Review Required"

// AcceptedExtensions lists the upload extensions the parser will attempt.
var AcceptedExtensions = []string{".csv", ".xlsx", ".xls", ".txt", ".doc", ".docx", ".pdf"}

// Accepted reports whether the file name carries a supported extension.
func Accepted(fileName string) bool {
	ext := strings.ToLower(filepath.Ext(fileName))
	for _, e := range AcceptedExtensions {
		if e == ext {
			return true
		}
	}
	return false
}

// ParseFile converts an uploaded file into a grid of string cells, selecting
// the parse strategy by file extension. It never returns an empty grid and
// never panics past this boundary: any failure degrades to a placeholder grid
// that flags the file for manual review.
// PRE: none (data may be empty or garbage)
// POST: result has at least a header row and one data row
func ParseFile(fileName string, data []byte) Grid {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("import_parse_panic", "file", fileName, "panic", r)
		}
	}()

	var grid Grid
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".csv":
		grid = parseCSV(data)
	case ".txt":
		grid = parseDelimitedText(data)
	case ".xlsx":
		grid = parseXLSX(data)
	case ".docx":
		grid = parseDOCX(data)
	case ".pdf":
		grid = parsePDF(data)
	case ".xls", ".doc":
		// Legacy binary Office formats have no parser in this stack; salvage
		// readable text runs if there are any.
		grid = parseTextRuns(data)
	default:
		grid = nil
	}

	if len(grid) < 2 {
		slog.Warn("import_parse_fallback", "file", fileName, "rows", len(grid))
		return PlaceholderGrid(fileName)
	}
	return grid
}

// PlaceholderGrid returns the degrade-contract grid: a standard header plus a
// single row telling the reviewer to enter the file's contents by hand.
func PlaceholderGrid(fileName string) Grid {
	row := make([]string, len(StandardHeader))
	row[0] = ManualReviewMarker
	row[6] = "Could not extract events from " + fileName + "; enter rows manually"
	return Grid{append([]string(nil), StandardHeader...), row}
}

// parseCSV reads comma-separated data with full quoting support.
func parseCSV(data []byte) Grid {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.LazyQuotes = true

	rows, err := r.ReadAll()
	if err != nil || len(rows) == 0 {
		return nil
	}
	return rows
}

// parseDelimitedText splits plain text into rows on newlines, then each line
// on the first delimiter found: tab, comma, or semicolon. The delimiter is
// chosen per line, not per cell.
func parseDelimitedText(data []byte) Grid {
	var grid Grid
	for _, line := range splitLines(string(data)) {
		if strings.TrimSpace(line) == "" {
			continue
		}
		var cells []string
		switch {
		case strings.Contains(line, "\t"):
			cells = strings.Split(line, "\t")
		case strings.Contains(line, ","):
			cells = strings.Split(line, ",")
		case strings.Contains(line, ";"):
			cells = strings.Split(line, ";")
		default:
			cells = []string{line}
		}
		for i := range cells {
			cells[i] = strings.Trim(strings.TrimSpace(cells[i]), `"`)
		}
		grid = append(grid, cells)
	}
	return grid
}

// parseTextRuns salvages printable ASCII runs from an opaque binary stream,
// one synthesized row per run that looks like it carries a date. Best effort
// only; returns nil when nothing usable is found.
func parseTextRuns(data []byte) Grid {
	runs := printableRuns(data, 8)
	if len(runs) == 0 {
		return nil
	}
	rows := synthesizeCalendarRows(runs)
	if len(rows) == 0 {
		return nil
	}
	return append(Grid{append([]string(nil), StandardHeader...)}, rows...)
}

// printableRuns extracts runs of printable ASCII at least minLen long.
func printableRuns(data []byte, minLen int) []string {
	var runs []string
	var cur []byte
	flush := func() {
		if len(cur) >= minLen {
			runs = append(runs, strings.TrimSpace(string(cur)))
		}
		cur = cur[:0]
	}
	for _, b := range data {
		if b >= 0x20 && b <= 0x7e {
			cur = append(cur, b)
		} else {
			flush()
		}
	}
	flush()
	return runs
}

func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.Split(s, "\n")
}
