package xlsx

import (
	"errors"
)

// ErrInvalidRange indicates a malformed cell range reference.
var ErrInvalidRange = errors.New("invalid range")

// ErrEmptyArea indicates that there is no data to import.
var ErrEmptyArea = errors.New("no data in area")

// DataBounds returns the bounding area of the non-empty cells in rows, as
// returned by excelize's GetRows. It reports false when every cell is
// empty.
func DataBounds(rows [][]string) (Area, bool) {
	minRow, maxRow := -1, -1
	minCol, maxCol := -1, -1

	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			if cell == "" {
				continue
			}
			if minRow < 0 || rowIdx < minRow {
				minRow = rowIdx
			}
			if maxRow < 0 || rowIdx > maxRow {
				maxRow = rowIdx
			}
			if minCol < 0 || colIdx < minCol {
				minCol = colIdx
			}
			if maxCol < 0 || colIdx > maxCol {
				maxCol = colIdx
			}
		}
	}
	if minRow < 0 {
		return Area{}, false
	}
	return Area{R1: minRow + 1, C1: minCol + 1, R2: maxRow + 1, C2: maxCol + 1}, true
}

// cellText returns the value at the 1-based (col, row) of rows, or "".
func cellText(rows [][]string, col, row int) string {
	if row-1 >= len(rows) {
		return ""
	}
	r := rows[row-1]
	if col-1 >= len(r) {
		return ""
	}
	return r[col-1]
}
