package importer

import (
	"bytes"
	"log/slog"

	"github.com/xuri/excelize/v2"
)

// parseXLSX reads the first sheet of an Excel workbook into a grid.
// Returns nil on any open/read failure so the caller degrades to a placeholder.
func parseXLSX(data []byte) Grid {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		slog.Warn("import_xlsx_open_failed", "error", err.Error())
		return nil
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		slog.Warn("import_xlsx_read_failed", "sheet", sheets[0], "error", err.Error())
		return nil
	}

	var grid Grid
	for _, row := range rows {
		if rowIsEmpty(row) {
			continue
		}
		grid = append(grid, row)
	}
	return grid
}

func rowIsEmpty(row []string) bool {
	for _, c := range row {
		if c != "" {
			return false
		}
	}
	return true
}
