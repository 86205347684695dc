package extract

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"gradex/pkg/contracts/domain"
)

// Sheet is one worksheet loaded into cell form.
type Sheet struct {
	Name string
	Grid Grid
}

// ReadWorkbook loads every sheet of an xlsx workbook. Sheets that cannot
// be read are skipped with a warning; a workbook that cannot be opened
// at all is an error.
func ReadWorkbook(path string) ([]Sheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	var sheets []Sheet
	for _, name := range f.GetSheetList() {
		grid, err := readSheet(f, name)
		if err != nil {
			slog.Warn("Skipping unreadable sheet",
				slog.String("workbook", filepath.Base(path)),
				slog.String("sheet", name),
				slog.String("error", err.Error()))
			continue
		}
		sheets = append(sheets, Sheet{Name: name, Grid: grid})
	}
	return sheets, nil
}

func readSheet(f *excelize.File, name string) (Grid, error) {
	rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	grid := make(Grid, len(rows))
	for r, row := range rows {
		cells := make([]Cell, len(row))
		for c, raw := range row {
			cells[c] = cellFromRaw(f, name, r, c, raw)
		}
		grid[r] = cells
	}
	return grid, nil
}

// cellFromRaw converts one raw cell value into the tagged union form.
// In xlsx the absence of a type attribute means numeric, which excelize
// reports as CellTypeUnset, so both that and CellTypeNumber parse as
// numbers. Anything else, and numbers that fail to parse, stay text.
func cellFromRaw(f *excelize.File, sheet string, row, col int, raw string) Cell {
	if strings.TrimSpace(raw) == "" {
		return Cell{}
	}

	axis, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return TextCell(raw)
	}
	cellType, err := f.GetCellType(sheet, axis)
	if err != nil {
		return TextCell(raw)
	}

	switch cellType {
	case excelize.CellTypeNumber, excelize.CellTypeUnset:
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			return NumberCell(v)
		}
	}
	return TextCell(raw)
}

// FromWorkbook extracts the grade records of a workbook. Sheets are
// tried in workbook order and the first sheet yielding any records wins;
// grade workbooks carry one grades sheet, and later sheets hold
// summaries or duplicates that must not be merged in. The sourceName is
// stamped into every record, conventionally the file stem.
func FromWorkbook(path, sourceName string) ([]domain.GradeRecord, error) {
	sheets, err := ReadWorkbook(path)
	if err != nil {
		return nil, err
	}

	for _, sheet := range sheets {
		records := FromGrid(sheet.Grid, sourceName)
		if len(records) == 0 {
			continue
		}
		slog.Debug("Extracted grade records",
			slog.String("workbook", filepath.Base(path)),
			slog.String("sheet", sheet.Name),
			slog.Int("records", len(records)))
		return records, nil
	}
	return nil, nil
}
