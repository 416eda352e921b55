package commands

import (
	"fmt"

	"github.com/ukaji3/tablegrid-go/pkg/tablegrid/model"
	"github.com/ukaji3/tablegrid-go/pkg/tablegrid/tablemap"
)

// AddRow adds a row at grid row row, in the section holding that row. At
// the end of the table the row joins the last section.
func AddRow(tx *Transaction, rect TableRect, row int) error {
	section := rect.Map.SectionOfRow(row)
	if section < 0 {
		section = len(rect.Map.SectionRows) - 1
	}
	return AddRowToSection(tx, rect, row, section)
}

// AddRowToSection adds a row at grid row row as part of section section.
// row must lie within the section's rows or directly after its last row.
// Cells spanning down across row grow instead of getting a new cell. New
// cells copy the role of the row before (or, at the top, the row at) row,
// except that a header row only serves as reference at an edge of the
// table.
func AddRowToSection(tx *Transaction, rect TableRect, row, section int) error {
	m, table, start := rect.Map, rect.Table, rect.TableStart
	top, bottom := m.SectionBounds(section)
	if section < 0 || section >= len(m.SectionRows) || row < top || row > bottom {
		return fmt.Errorf("%w: row %d is not in section %d", tablemap.ErrNotFound, row, section)
	}

	var rowPos int
	if row < bottom {
		rowPos = tablemap.RowPos(table, row)
	} else {
		info, _ := tablemap.SectionAt(table, section)
		rowPos = info.Pos + info.Node.NodeSize() - 1
	}

	refRow, hasRef := -1, true
	if row == 0 {
		refRow = 0
	}
	if tablemap.RowIsHeader(m, table, row+refRow) {
		if row == 0 || row == m.Height {
			hasRef = false
		} else {
			refRow = 0
		}
	}

	var cells []*model.Node
	for col, index := 0, m.Width*row; col < m.Width; col, index = col+1, index+1 {
		if row > 0 && row < m.Height && m.Map[index] == m.Map[index-m.Width] {
			pos := m.Map[index]
			cell := table.NodeAt(pos)
			attrs := cell.Attrs()
			attrs.Rowspan++
			if err := tx.SetNodeMarkup(start+pos, cell.Role(), attrs); err != nil {
				return err
			}
			col += attrs.Colspan - 1
			index += attrs.Colspan - 1
			continue
		}
		role := model.RoleCell
		if hasRef {
			role = table.NodeAt(m.Map[index+refRow*m.Width]).Role()
		}
		cells = append(cells, model.CreateAndFill(role, model.DefaultAttrs()))
	}
	return tx.Insert(start+rowPos, model.Row(cells...))
}

// AddRowBefore adds a row above the selection, in the section of the
// selection's top row.
func AddRowBefore(state State) (*Transaction, error) {
	rect, err := selectedRectInTable(state)
	if err != nil {
		return nil, err
	}
	tx := state.Tr()
	if err := AddRowToSection(tx, rect, rect.Top, rect.Map.SectionOfRow(rect.Top)); err != nil {
		return nil, err
	}
	return tx, nil
}

// AddRowAfter adds a row below the selection, in the section of the
// selection's bottom row.
func AddRowAfter(state State) (*Transaction, error) {
	rect, err := selectedRectInTable(state)
	if err != nil {
		return nil, err
	}
	tx := state.Tr()
	if err := AddRowToSection(tx, rect, rect.Bottom, rect.Map.SectionOfRow(rect.Bottom-1)); err != nil {
		return nil, err
	}
	return tx, nil
}

// RemoveRow removes grid row row. Cells reaching into the row from above
// shrink; cells starting in it and reaching below move down one row with a
// smaller rowspan.
func RemoveRow(tx *Transaction, rect TableRect, row int) error {
	m, table, start := rect.Map, rect.Table, rect.TableStart
	info := tablemap.GetRow(table, row)
	if info.Node == nil {
		return fmt.Errorf("%w: no row %d", tablemap.ErrNotFound, row)
	}

	mark := tx.StepCount()
	from := start + info.Pos
	if err := tx.Delete(from, from+info.Node.NodeSize()); err != nil {
		return err
	}

	for col, index := 0, row*m.Width; col < m.Width; col, index = col+1, index+1 {
		pos := m.Map[index]
		switch {
		case row > 0 && pos == m.Map[index-m.Width]:
			cell := table.NodeAt(pos)
			attrs := cell.Attrs()
			attrs.Rowspan--
			if err := tx.SetNodeMarkup(tx.Mapping().Slice(mark).Map(start+pos), cell.Role(), attrs); err != nil {
				return err
			}
			col += attrs.Colspan - 1
			index += attrs.Colspan - 1
		case row < m.Height-1 && pos == m.Map[index+m.Width]:
			cell := table.NodeAt(pos)
			attrs := cell.Attrs()
			attrs.Rowspan--
			moved := cell.WithMarkup(cell.Role(), attrs)
			newPos := m.PositionAt(row+1, col, table)
			if err := tx.Insert(tx.Mapping().Slice(mark).Map(start+newPos), moved); err != nil {
				return err
			}
			col += attrs.Colspan - 1
			index += attrs.Colspan - 1
		}
	}
	return nil
}

// DeleteRow removes the selected rows, bottom to top. A section whose rows
// are all selected is removed as a whole; an empty section goes only when
// selected rows lie on both sides of it. It refuses to remove every row of
// the table.
func DeleteRow(state State) (*Transaction, error) {
	rect, err := selectedRectInTable(state)
	if err != nil {
		return nil, err
	}
	if rect.Top == 0 && rect.Bottom == rect.Map.Height {
		return nil, notApplicable("cannot delete every row")
	}

	sectionRows := append([]int(nil), rect.Map.SectionRows...)
	sectionBottom := make([]int, len(sectionRows))
	for s, rows := range sectionRows {
		sectionBottom[s] = rows
		if s > 0 {
			sectionBottom[s] += sectionBottom[s-1]
		}
	}
	s := len(sectionRows) - 1
	for s > 0 && (sectionBottom[s] > rect.Bottom || sectionRows[s] == 0) {
		s--
	}

	tx := state.Tr()
	for i := rect.Bottom - 1; ; i-- {
		firstRow := sectionBottom[s] - sectionRows[s]
		if i+1 == sectionBottom[s] && rect.Top <= firstRow {
			if err := RemoveSection(tx, rect, s); err != nil {
				return nil, err
			}
			i = firstRow
			s--
		} else if err := RemoveRow(tx, rect, i); err != nil {
			return nil, err
		}
		if i <= rect.Top {
			break
		}
		if err := rect.refresh(tx.Doc()); err != nil {
			return nil, err
		}
	}
	return tx, nil
}
