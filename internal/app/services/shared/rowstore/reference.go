package rowstore

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// rangeRef is a parsed "Sheet!A:G" reference. Columns are 1-based and inclusive.
type rangeRef struct {
	Sheet    string
	FirstCol int
	LastCol  int
}

type cellRef struct {
	Sheet string
	Col   int
	Row   int
}

func splitSheet(reference string) (string, string, error) {
	sheet, cells, found := strings.Cut(reference, "!")
	sheet = strings.Trim(strings.TrimSpace(sheet), "'")
	if sheet == "" {
		return "", "", fmt.Errorf("reference %q has no sheet", reference)
	}
	if !found {
		return sheet, "", nil
	}
	return sheet, strings.ToUpper(strings.TrimSpace(cells)), nil
}

// parseRange accepts "Sheet", "Sheet!A:G" and "Sheet!A1:G100". Row bounds are ignored.
func parseRange(reference string) (*rangeRef, error) {
	sheet, cells, err := splitSheet(reference)
	if err != nil {
		return nil, err
	}
	if cells == "" {
		return &rangeRef{Sheet: sheet, FirstCol: 1, LastCol: excelize.MaxColumns}, nil
	}

	from, to, found := strings.Cut(cells, ":")
	if !found {
		to = from
	}
	first, err := columnOf(from)
	if err != nil {
		return nil, err
	}
	last, err := columnOf(to)
	if err != nil {
		return nil, err
	}
	if first > last {
		return nil, fmt.Errorf("reference %q has columns out of order", reference)
	}
	return &rangeRef{Sheet: sheet, FirstCol: first, LastCol: last}, nil
}

func parseCell(reference string) (*cellRef, error) {
	sheet, cells, err := splitSheet(reference)
	if err != nil {
		return nil, err
	}
	col, row, err := excelize.CellNameToCoordinates(cells)
	if err != nil {
		return nil, err
	}
	return &cellRef{Sheet: sheet, Col: col, Row: row}, nil
}

// columnOf reads the column of "B" or "B12".
func columnOf(part string) (int, error) {
	letters := strings.TrimRightFunc(part, func(r rune) bool { return r >= '0' && r <= '9' })
	return excelize.ColumnNameToNumber(letters)
}

// project trims every row to the referenced columns.
func (r *rangeRef) project(rows [][]string) [][]string {
	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		if r.FirstCol-1 >= len(row) {
			out = append(out, []string{})
			continue
		}
		end := r.LastCol
		if end > len(row) {
			end = len(row)
		}
		out = append(out, append([]string(nil), row[r.FirstCol-1:end]...))
	}
	return out
}

// trimTrailingEmpty drops empty rows after the last row that has content.
func trimTrailingEmpty(rows [][]string) [][]string {
	last := len(rows)
	for last > 0 && isEmptyRow(rows[last-1]) {
		last--
	}
	return rows[:last]
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}
	return true
}

func setCell(row []string, col int, value string) []string {
	for len(row) < col {
		row = append(row, "")
	}
	row[col-1] = value
	return row
}
