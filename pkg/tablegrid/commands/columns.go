package commands

import (
	"github.com/ukaji3/tablegrid-go/pkg/tablegrid/model"
	"github.com/ukaji3/tablegrid-go/pkg/tablegrid/tablemap"
)

// AddColumn adds a column at grid column col. Cells spanning across col
// grow instead. New cells copy the role of the column before (or, at the
// left edge, the column at) col, except that a header column only serves
// as reference at an edge of the table.
func AddColumn(tx *Transaction, rect TableRect, col int) error {
	m, table, start := rect.Map, rect.Table, rect.TableStart

	refColumn, hasRef := -1, true
	if col == 0 {
		refColumn = 0
	}
	if tablemap.ColumnIsHeader(m, table, col+refColumn) {
		if col == 0 || col == m.Width {
			hasRef = false
		} else {
			refColumn = 0
		}
	}

	mark := tx.StepCount()
	for row := 0; row < m.Height; row++ {
		index := row*m.Width + col
		if col > 0 && col < m.Width && m.Map[index-1] == m.Map[index] {
			pos := m.Map[index]
			cell := table.NodeAt(pos)
			cc, err := m.ColCount(pos)
			if err != nil {
				return err
			}
			if err := tx.SetNodeMarkup(tx.Mapping().Slice(mark).Map(start+pos), cell.Role(), cell.Attrs().AddColSpan(col-cc, 1)); err != nil {
				return err
			}
			row += cell.Rowspan() - 1
			continue
		}
		role := model.RoleCell
		if hasRef {
			role = table.NodeAt(m.Map[index+refColumn]).Role()
		}
		pos := m.PositionAt(row, col, table)
		if err := tx.Insert(tx.Mapping().Slice(mark).Map(start+pos), model.CreateAndFill(role, model.DefaultAttrs())); err != nil {
			return err
		}
	}
	return nil
}

// AddColumnBefore adds a column before the selected columns.
func AddColumnBefore(state State) (*Transaction, error) {
	rect, err := selectedRectInTable(state)
	if err != nil {
		return nil, err
	}
	tx := state.Tr()
	if err := AddColumn(tx, rect, rect.Left); err != nil {
		return nil, err
	}
	return tx, nil
}

// AddColumnAfter adds a column after the selected columns.
func AddColumnAfter(state State) (*Transaction, error) {
	rect, err := selectedRectInTable(state)
	if err != nil {
		return nil, err
	}
	tx := state.Tr()
	if err := AddColumn(tx, rect, rect.Right); err != nil {
		return nil, err
	}
	return tx, nil
}

// RemoveColumn removes grid column col. Cells spanning across col shrink
// instead.
func RemoveColumn(tx *Transaction, rect TableRect, col int) error {
	m, table, start := rect.Map, rect.Table, rect.TableStart
	mark := tx.StepCount()
	for row := 0; row < m.Height; {
		index := row*m.Width + col
		pos := m.Map[index]
		cell := table.NodeAt(pos)
		attrs := cell.Attrs()
		mapped := tx.Mapping().Slice(mark).Map(start + pos)
		if (col > 0 && m.Map[index-1] == pos) || (col < m.Width-1 && m.Map[index+1] == pos) {
			cc, err := m.ColCount(pos)
			if err != nil {
				return err
			}
			if err := tx.SetNodeMarkup(mapped, cell.Role(), attrs.RemoveColSpan(col-cc, 1)); err != nil {
				return err
			}
		} else if err := tx.Delete(mapped, mapped+cell.NodeSize()); err != nil {
			return err
		}
		row += attrs.Rowspan
	}
	return nil
}

// DeleteColumn removes the selected columns. It refuses to remove every
// column of the table.
func DeleteColumn(state State) (*Transaction, error) {
	rect, err := selectedRectInTable(state)
	if err != nil {
		return nil, err
	}
	if rect.Left == 0 && rect.Right == rect.Map.Width {
		return nil, notApplicable("cannot delete every column")
	}
	tx := state.Tr()
	for i := rect.Right - 1; ; i-- {
		if err := RemoveColumn(tx, rect, i); err != nil {
			return nil, err
		}
		if i == rect.Left {
			break
		}
		if err := rect.refresh(tx.Doc()); err != nil {
			return nil, err
		}
	}
	return tx, nil
}
