package tablemap

import (
	"fmt"

	"github.com/ukaji3/tablegrid-go/pkg/tablegrid/model"
)

// colWidth tracks the fixed width seen for one column and how many slots
// agreed on it.
type colWidth struct {
	width int
	count int
}

// Compute derives the map of table without consulting the cache.
func Compute(table *model.Node) (*TableMap, error) {
	if table == nil {
		return nil, fmt.Errorf("%w: nil", ErrNotTable)
	}
	if table.Role() != model.RoleTable {
		return nil, fmt.Errorf("%w: %s", ErrNotTable, table.Role())
	}
	width := findWidth(table)
	height := findHeight(table)
	m := &TableMap{
		Width:       width,
		Height:      height,
		Map:         make([]int, 0, width*height),
		SectionRows: []int{},
	}

	colWidths := make([]colWidth, width)
	offset, rowsOffset := 0, 0
	for i := 0; i < table.ChildCount(); i++ {
		section := table.Child(i)
		if section.Role().IsSection() {
			m.SectionRows = append(m.SectionRows, section.ChildCount())
			smap, problems := computeSectionMap(section, width, offset+1, colWidths)
			m.Map = append(m.Map, smap...)
			for _, p := range problems {
				if p.Type == ProblemMissing || p.Type == ProblemCollision {
					p.Row += rowsOffset
				}
				m.Problems = append(m.Problems, p)
			}
			rowsOffset += section.ChildCount()
		}
		offset += section.NodeSize()
	}

	// Columns with a fixed width that not every row agrees on need their
	// cells rewritten to the reconciled width.
	for _, cw := range colWidths {
		if cw.width != 0 && cw.count < height {
			findBadColWidths(m, colWidths, table)
			break
		}
	}
	return m, nil
}

// computeSectionMap claims slots for the cells of one section. offset is
// the position of the section's content relative to the table content.
func computeSectionMap(section *model.Node, width, offset int, colWidths []colWidth) ([]int, []Problem) {
	height := section.ChildCount()
	grid := make([]int, width*height)
	var problems []Problem
	mapPos := 0

	pos := offset
	for row := 0; row < height; row++ {
		rowNode := section.Child(row)
		pos++
		for i := 0; ; i++ {
			for mapPos < len(grid) && grid[mapPos] != 0 {
				mapPos++
			}
			if i == rowNode.ChildCount() {
				break
			}
			cell := rowNode.Child(i)
			colspan, rowspan := cell.Colspan(), cell.Rowspan()
			widths := cell.Attrs().Colwidth
			for h := 0; h < rowspan; h++ {
				if h+row >= height {
					problems = append(problems, Problem{Type: ProblemOverlongRowspan, Pos: pos, N: rowspan - h})
					break
				}
				start := mapPos + h*width
				for w := 0; w < colspan; w++ {
					slot := start + w
					if slot < len(grid) && grid[slot] == 0 {
						grid[slot] = pos
					} else {
						problems = append(problems, Problem{Type: ProblemCollision, Row: row, Pos: pos, N: colspan - w})
					}
					if w < len(widths) && widths[w] != 0 && width > 0 {
						trackColWidth(&colWidths[slot%width], widths[w])
					}
				}
			}
			mapPos += colspan
			pos += cell.NodeSize()
		}
		expected := (row + 1) * width
		missing := 0
		for ; mapPos < expected; mapPos++ {
			if grid[mapPos] == 0 {
				missing++
			}
		}
		if missing > 0 {
			problems = append(problems, Problem{Type: ProblemMissing, Row: row, N: missing})
		}
		pos++
	}
	return grid, problems
}

func trackColWidth(cw *colWidth, w int) {
	switch {
	case cw.width == 0 || (cw.width != w && cw.count == 1):
		cw.width = w
		cw.count = 1
	case cw.width == w:
		cw.count++
	}
}

// findWidth returns the widest row, counting slots taken by cells reaching
// down from earlier rows of the same section.
func findWidth(table *model.Node) int {
	width := -1
	hasRowSpan := false
	for c := 0; c < table.ChildCount(); c++ {
		section := table.Child(c)
		if !section.Role().IsSection() {
			continue
		}
		for row := 0; row < section.ChildCount(); row++ {
			rowNode := section.Child(row)
			rowWidth := 0
			if hasRowSpan {
				for j := 0; j < row; j++ {
					prev := section.Child(j)
					for i := 0; i < prev.ChildCount(); i++ {
						cell := prev.Child(i)
						if j+cell.Rowspan() > row {
							rowWidth += cell.Colspan()
						}
					}
				}
			}
			for i := 0; i < rowNode.ChildCount(); i++ {
				cell := rowNode.Child(i)
				rowWidth += cell.Colspan()
				if cell.Rowspan() > 1 {
					hasRowSpan = true
				}
			}
			width = max(width, rowWidth)
		}
	}
	return max(width, 0)
}

func findHeight(table *model.Node) int {
	height := 0
	for c := 0; c < table.ChildCount(); c++ {
		if section := table.Child(c); section.Role().IsSection() {
			height += section.ChildCount()
		}
	}
	return height
}

// findBadColWidths reports a colwidth mismatch for every cell whose widths
// differ from the reconciled column widths.
func findBadColWidths(m *TableMap, colWidths []colWidth, table *model.Node) {
	seen := make(map[int]bool)
	for i, pos := range m.Map {
		if seen[pos] {
			continue
		}
		seen[pos] = true
		node := table.NodeAt(pos)
		if node == nil || !node.Role().IsCell() {
			continue
		}
		attrs := node.Attrs()
		var updated []int
		for j := 0; j < attrs.Colspan; j++ {
			w := colWidths[(i+j)%m.Width].width
			if w == 0 {
				continue
			}
			if j >= len(attrs.Colwidth) || attrs.Colwidth[j] != w {
				if updated == nil {
					updated = freshColWidth(attrs)
				}
				updated[j] = w
			}
		}
		if updated != nil {
			m.Problems = append([]Problem{{Type: ProblemColwidthMismatch, Pos: pos, Colwidth: updated}}, m.Problems...)
		}
	}
}

func freshColWidth(attrs model.Attrs) []int {
	out := make([]int, max(attrs.Colspan, len(attrs.Colwidth)))
	copy(out, attrs.Colwidth)
	return out[:attrs.Colspan]
}
