// Package tablemap derives a flat grid from a table tree.
//
// A TableMap records, for every (row, column) slot, the offset of the cell
// covering it. Offsets are relative to the start of the table's content, so
// a map computed once stays valid wherever the same table node appears.
// Callers add the table start to convert them to document offsets.
package tablemap

import (
	"fmt"

	"github.com/ukaji3/tablegrid-go/pkg/tablegrid/model"
)

// Rect is a rectangle of grid slots. Right and Bottom are exclusive.
type Rect struct {
	Left   int `json:"left"`
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
}

// Width returns the number of columns in r.
func (r Rect) Width() int { return r.Right - r.Left }

// Height returns the number of rows in r.
func (r Rect) Height() int { return r.Bottom - r.Top }

// ProblemType names a structural anomaly found while computing a map.
type ProblemType string

const (
	// ProblemColwidthMismatch: a cell's column widths disagree with the
	// widths most rows agree on.
	ProblemColwidthMismatch ProblemType = "colwidth mismatch"
	// ProblemCollision: a cell claims slots already claimed by another cell.
	ProblemCollision ProblemType = "collision"
	// ProblemMissing: a row leaves slots unclaimed.
	ProblemMissing ProblemType = "missing"
	// ProblemOverlongRowspan: a cell's rowspan reaches past its section.
	ProblemOverlongRowspan ProblemType = "overlong_rowspan"
)

// Problem is one anomaly. Which fields are set depends on Type.
type Problem struct {
	Type ProblemType `json:"type"`
	// Pos is the offset of the offending cell (all types but missing).
	Pos int `json:"pos,omitempty"`
	// Row is the grid row (collision, missing).
	Row int `json:"row"`
	// N is the number of slots (collision, missing) or excess rows (overlong_rowspan).
	N int `json:"n,omitempty"`
	// Colwidth is the corrected width array (colwidth mismatch).
	Colwidth []int `json:"colwidth,omitempty"`
}

// Axis selects a direction of movement in the grid.
type Axis int

const (
	// Horiz moves along a row.
	Horiz Axis = iota
	// Vert moves along a column.
	Vert
)

// TableMap describes the grid of one table node. It is never modified after
// it has been computed.
type TableMap struct {
	// Width is the number of columns.
	Width int `json:"width"`
	// Height is the number of rows.
	Height int `json:"height"`
	// Map holds Width*Height cell offsets in row-major order. A spanning
	// cell repeats its offset in every slot it covers; 0 marks an
	// unclaimed slot.
	Map []int `json:"map"`
	// SectionRows holds the row count of each section, in order.
	SectionRows []int `json:"sectionRows"`
	// Problems lists the anomalies found, nil for a well-formed table.
	Problems []Problem `json:"problems,omitempty"`
}

func notFound(pos int) error {
	return fmt.Errorf("%w: no cell with offset %d", ErrNotFound, pos)
}

// FindCell returns the rectangle covered by the cell at pos.
func (m *TableMap) FindCell(pos int) (Rect, error) {
	for i, cur := range m.Map {
		if cur != pos {
			continue
		}
		left := i % m.Width
		top := i / m.Width
		right, bottom := left+1, top+1
		for j := 1; right < m.Width && m.Map[i+j] == cur; j++ {
			right++
		}
		for j := 1; bottom < m.Height && m.Map[i+m.Width*j] == cur; j++ {
			bottom++
		}
		return Rect{Left: left, Top: top, Right: right, Bottom: bottom}, nil
	}
	return Rect{}, notFound(pos)
}

// ColCount returns the left column of the cell at pos.
func (m *TableMap) ColCount(pos int) (int, error) {
	for i, cur := range m.Map {
		if cur == pos {
			return i % m.Width, nil
		}
	}
	return 0, notFound(pos)
}

// NextCell returns the cell adjacent to the cell at pos along axis, in the
// direction of dir's sign. ok is false at the edge of the grid.
func (m *TableMap) NextCell(pos int, axis Axis, dir int) (next int, ok bool, err error) {
	r, err := m.FindCell(pos)
	if err != nil {
		return 0, false, err
	}
	if axis == Horiz {
		if (dir < 0 && r.Left == 0) || (dir >= 0 && r.Right == m.Width) {
			return 0, false, nil
		}
		col := r.Right
		if dir < 0 {
			col = r.Left - 1
		}
		return m.Map[r.Top*m.Width+col], true, nil
	}
	if (dir < 0 && r.Top == 0) || (dir >= 0 && r.Bottom == m.Height) {
		return 0, false, nil
	}
	row := r.Bottom
	if dir < 0 {
		row = r.Top - 1
	}
	return m.Map[r.Left+m.Width*row], true, nil
}

// RectBetween returns the smallest rectangle covering the cells at a and b.
func (m *TableMap) RectBetween(a, b int) (Rect, error) {
	ra, err := m.FindCell(a)
	if err != nil {
		return Rect{}, err
	}
	rb, err := m.FindCell(b)
	if err != nil {
		return Rect{}, err
	}
	return Rect{
		Left:   min(ra.Left, rb.Left),
		Top:    min(ra.Top, rb.Top),
		Right:  max(ra.Right, rb.Right),
		Bottom: max(ra.Bottom, rb.Bottom),
	}, nil
}

// CellsInRect returns the offsets of the cells whose top-left corner lies
// in rect, in row-major order.
func (m *TableMap) CellsInRect(rect Rect) []int {
	var result []int
	seen := make(map[int]bool)
	for row := rect.Top; row < rect.Bottom; row++ {
		for col := rect.Left; col < rect.Right; col++ {
			index := row*m.Width + col
			pos := m.Map[index]
			if seen[pos] {
				continue
			}
			seen[pos] = true
			if (col == rect.Left && col > 0 && m.Map[index-1] == pos) ||
				(row == rect.Top && row > 0 && m.Map[index-m.Width] == pos) {
				continue
			}
			result = append(result, pos)
		}
	}
	return result
}

// SectionsInRect returns the indexes of the sections that rect overlaps.
// Indexes count sections only, ignoring a caption.
func (m *TableMap) SectionsInRect(rect Rect) []int {
	var result []int
	top, bottom := 0, 0
	for i, rows := range m.SectionRows {
		bottom += rows
		if rect.Top < bottom && rect.Bottom > top {
			result = append(result, i)
		}
		top = bottom
	}
	return result
}

// SectionBounds returns the first row and the row after the last row of
// section s.
func (m *TableMap) SectionBounds(s int) (top, bottom int) {
	for i := 0; i < s && i < len(m.SectionRows); i++ {
		top += m.SectionRows[i]
	}
	bottom = top
	if s >= 0 && s < len(m.SectionRows) {
		bottom += m.SectionRows[s]
	}
	return top, bottom
}

// SectionOfRow returns the index of the section holding row, or -1.
func (m *TableMap) SectionOfRow(row int) int {
	count := 0
	for i, rows := range m.SectionRows {
		count += rows
		if row < count {
			return i
		}
	}
	return -1
}

// IsLastRowInSection reports whether row is the last row of its section.
func (m *TableMap) IsLastRowInSection(row int) bool {
	if row < 0 || row >= m.Height {
		return false
	}
	last := -1
	for _, rows := range m.SectionRows {
		last += rows
		if row == last {
			return true
		}
		if row < last {
			return false
		}
	}
	return false
}

// RectOverOneSection reports whether every row of rect is in one section.
func (m *TableMap) RectOverOneSection(rect Rect) bool {
	top := m.SectionOfRow(rect.Top)
	return top >= 0 && top == m.SectionOfRow(rect.Bottom-1)
}

// FindSection returns the full-width rectangle of the section holding the
// cell at pos.
func (m *TableMap) FindSection(pos int) (Rect, error) {
	cell, err := m.FindCell(pos)
	if err != nil {
		return Rect{}, err
	}
	top, bottom := m.SectionBounds(m.SectionOfRow(cell.Top))
	return Rect{Left: 0, Top: top, Right: m.Width, Bottom: bottom}, nil
}

// PositionAt returns the offset at which a cell at (row, col) starts, or
// would start if one were inserted there. Slots covered by cells reaching
// down from earlier rows are skipped. table must be the node m describes.
func (m *TableMap) PositionAt(row, col int, table *model.Node) int {
	info := GetRow(table, row)
	if info.Node == nil {
		return info.Pos
	}
	rowStart := info.Pos
	rowEnd := rowStart + info.Node.NodeSize()
	index := col + row*m.Width
	rowEndIndex := (row + 1) * m.Width
	for index < rowEndIndex && m.Map[index] < rowStart {
		index++
	}
	if index == rowEndIndex {
		return rowEnd - 1
	}
	return m.Map[index]
}
