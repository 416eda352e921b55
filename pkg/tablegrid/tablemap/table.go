package tablemap

import "github.com/ukaji3/tablegrid-go/pkg/tablegrid/model"

// The helpers below read the table tree directly. All offsets are relative
// to the table's content start.

// RowInfo locates a row in a table.
type RowInfo struct {
	// Node is the row, nil when the row index is past the last row.
	Node *model.Node
	// Pos is the offset of the row. Past the last row it is the end of the
	// last section's content, where a new row would go.
	Pos int
	// Section is the index of the section holding the row.
	Section int
}

// RowsCount returns the number of rows in all sections of table.
func RowsCount(table *model.Node) int {
	return findHeight(table)
}

// GetRow locates the row with the given grid index.
func GetRow(table *model.Node, row int) RowInfo {
	pos, prevRows, section := 0, 0, -1
	last := RowInfo{Pos: -1, Section: -1}
	for c := 0; c < table.ChildCount(); c++ {
		child := table.Child(c)
		if !child.Role().IsSection() {
			pos += child.NodeSize()
			continue
		}
		section++
		rows := child.ChildCount()
		if prevRows+rows <= row {
			last = RowInfo{Pos: pos + child.NodeSize() - 1, Section: section}
			pos += child.NodeSize()
			prevRows += rows
			continue
		}
		pos++
		for r := 0; r < row-prevRows; r++ {
			pos += child.Child(r).NodeSize()
		}
		return RowInfo{Node: child.Child(row - prevRows), Pos: pos, Section: section}
	}
	if last.Section >= 0 {
		return last
	}
	return RowInfo{Pos: pos, Section: section}
}

// RowPos returns the offset of the row with the given grid index.
func RowPos(table *model.Node, row int) int {
	return GetRow(table, row).Pos
}

// RowAtPos returns the grid index of the row containing pos.
func RowAtPos(table *model.Node, pos int) int {
	rpos, row := 0, 0
	for c := 0; c < table.ChildCount(); c++ {
		child := table.Child(c)
		if !child.Role().IsSection() {
			rpos += child.NodeSize()
			continue
		}
		rpos++
		for r := 0; r < child.ChildCount(); r++ {
			rpos += child.Child(r).NodeSize()
			if pos < rpos {
				return row
			}
			row++
		}
		rpos++
	}
	return row
}

// SectionInfo locates a section in a table.
type SectionInfo struct {
	Node *model.Node
	// Pos is the offset of the section.
	Pos int
	// Index is the child index of the section in the table.
	Index int
	// FirstRow is the grid index of the section's first row.
	FirstRow int
}

// SectionAt returns the section with the given index, counting sections
// only.
func SectionAt(table *model.Node, s int) (SectionInfo, bool) {
	pos, rows, section := 0, 0, -1
	for c := 0; c < table.ChildCount(); c++ {
		child := table.Child(c)
		if child.Role().IsSection() {
			section++
			if section == s {
				return SectionInfo{Node: child, Pos: pos, Index: c, FirstRow: rows}, true
			}
			rows += child.ChildCount()
		}
		pos += child.NodeSize()
	}
	return SectionInfo{}, false
}

// HasCaption reports whether table starts with a caption.
func HasCaption(table *model.Node) bool {
	return table.ChildCount() > 0 && table.Child(0).Role() == model.RoleCaption
}

// HasHead reports whether table has a head section.
func HasHead(table *model.Node) bool {
	return countRole(table, model.RoleHead) > 0
}

// HasFoot reports whether table has a foot section.
func HasFoot(table *model.Node) bool {
	return countRole(table, model.RoleFoot) > 0
}

// BodiesCount returns the number of body sections.
func BodiesCount(table *model.Node) int {
	return countRole(table, model.RoleBody)
}

// SectionsCount returns the number of head, body and foot sections.
func SectionsCount(table *model.Node) int {
	n := 0
	for c := 0; c < table.ChildCount(); c++ {
		if table.Child(c).Role().IsSection() {
			n++
		}
	}
	return n
}

func countRole(table *model.Node, role model.Role) int {
	n := 0
	for c := 0; c < table.ChildCount(); c++ {
		if table.Child(c).Role() == role {
			n++
		}
	}
	return n
}

// ColumnIsHeader reports whether every slot of column col holds a header cell.
func ColumnIsHeader(m *TableMap, table *model.Node, col int) bool {
	for row := 0; row < m.Height; row++ {
		if !isHeaderAt(table, m.Map[col+row*m.Width]) {
			return false
		}
	}
	return true
}

// RowIsHeader reports whether every slot of row row holds a header cell.
func RowIsHeader(m *TableMap, table *model.Node, row int) bool {
	for col := 0; col < m.Width; col++ {
		if !isHeaderAt(table, m.Map[col+row*m.Width]) {
			return false
		}
	}
	return true
}

func isHeaderAt(table *model.Node, pos int) bool {
	n := table.NodeAt(pos)
	return n != nil && n.Role() == model.RoleHeaderCell
}
