package commands

import (
	"fmt"

	"github.com/ukaji3/tablegrid-go/pkg/tablegrid/model"
	"github.com/ukaji3/tablegrid-go/pkg/tablegrid/selection"
	"github.com/ukaji3/tablegrid-go/pkg/tablegrid/tablemap"
)

// TableRect is a selected rectangle together with the table it is in.
type TableRect struct {
	tablemap.Rect
	// TableStart is the absolute offset of the table's content.
	TableStart int
	Map        *tablemap.TableMap
	Table      *model.Node
}

// refresh points r at the current version of its table in doc.
func (r *TableRect) refresh(doc *model.Node) error {
	table := doc.NodeAt(r.TableStart - 1)
	if table == nil || table.Role() != model.RoleTable {
		return fmt.Errorf("%w: at %d", tablemap.ErrNotTable, r.TableStart-1)
	}
	m, err := tablemap.Get(table)
	if err != nil {
		return err
	}
	r.Table, r.Map = table, m
	return nil
}

// inTable reports whether the head of the selection is inside a row.
func inTable(state State) bool {
	if state.Selection == nil {
		return false
	}
	r, err := state.Doc.Resolve(state.Selection.Head())
	if err != nil {
		return false
	}
	for d := r.Depth(); d > 0; d-- {
		if r.Node(d).Role() == model.RoleRow {
			return true
		}
	}
	return false
}

// tableDepth returns the depth of the innermost table around r, or -1.
func tableDepth(r *model.ResolvedPos) int {
	for d := r.Depth(); d >= 0; d-- {
		if r.Node(d).Role() == model.RoleTable {
			return d
		}
	}
	return -1
}

// SelectionCell returns the cell the selection is in. For a cell selection
// it is whichever of the anchor and head cells comes last in the document.
func SelectionCell(state State) (*model.ResolvedPos, error) {
	if cs, ok := state.Selection.(*selection.CellSelection); ok {
		pos := max(cs.Anchor(), cs.Head())
		return state.Doc.Resolve(pos)
	}
	if state.Selection == nil {
		return nil, notApplicable("no selection")
	}
	head, err := state.Doc.Resolve(state.Selection.Head())
	if err != nil {
		return nil, err
	}
	if cell, ok := selection.CellAround(head); ok {
		return cell, nil
	}
	if cell, ok := selection.CellNear(head); ok {
		return cell, nil
	}
	return nil, fmt.Errorf("%w: %d", selection.ErrNotInCell, head.Pos())
}

// SelectedRect returns the rectangle of the selection: the selected cells
// for a cell selection, else the cell holding the cursor.
func SelectedRect(state State) (TableRect, error) {
	cell, err := SelectionCell(state)
	if err != nil {
		return TableRect{}, err
	}
	table := cell.Node(-2)
	start := cell.Start(-2)
	m, err := tablemap.Get(table)
	if err != nil {
		return TableRect{}, err
	}
	var rect tablemap.Rect
	if cs, ok := state.Selection.(*selection.CellSelection); ok {
		rect, err = m.RectBetween(cs.Anchor()-start, cs.Head()-start)
	} else {
		rect, err = m.FindCell(cell.Pos() - start)
	}
	if err != nil {
		return TableRect{}, err
	}
	return TableRect{Rect: rect, TableStart: start, Map: m, Table: table}, nil
}

// selectedRectInTable is SelectedRect behind the in-table check every
// rectangle command starts with.
func selectedRectInTable(state State) (TableRect, error) {
	if !inTable(state) {
		return TableRect{}, notApplicable("selection is not in a table")
	}
	return SelectedRect(state)
}
