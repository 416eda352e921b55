package commands

import (
	"fmt"
	"reflect"

	"github.com/ukaji3/tablegrid-go/pkg/tablegrid/model"
	"github.com/ukaji3/tablegrid-go/pkg/tablegrid/selection"
	"github.com/ukaji3/tablegrid-go/pkg/tablegrid/tablemap"
)

// SetCellAttr returns a command setting attribute name to value on the
// selected cells. It refuses when the cell at the selection already has
// that value.
func SetCellAttr(name string, value any) Command {
	return func(state State) (*Transaction, error) {
		if !inTable(state) {
			return nil, notApplicable("selection is not in a table")
		}
		cell, err := SelectionCell(state)
		if err != nil {
			return nil, err
		}
		node := cell.NodeAfter()
		if reflect.DeepEqual(node.Attrs().Get(name), value) {
			return nil, notApplicable(fmt.Sprintf("%s is already %v", name, value))
		}

		tx := state.Tr()
		set := func(n *model.Node, pos int) error {
			attrs, err := n.Attrs().With(name, value)
			if err != nil {
				return err
			}
			return tx.SetNodeMarkup(pos, n.Role(), attrs)
		}
		if cs, ok := state.Selection.(*selection.CellSelection); ok {
			for _, pos := range cs.Cells() {
				n := state.Doc.NodeAt(pos)
				if reflect.DeepEqual(n.Attrs().Get(name), value) {
					continue
				}
				if err := set(n, pos); err != nil {
					return nil, err
				}
			}
		} else if err := set(node, cell.Pos()); err != nil {
			return nil, err
		}
		return tx, nil
	}
}

// SetColumnWidth returns a command fixing the width of the grid column the
// cell at cellPos ends in. Every cell covering that column gets the width
// in its colwidth entry for it.
func SetColumnWidth(cellPos, width int) Command {
	return func(state State) (*Transaction, error) {
		r, err := state.Doc.Resolve(cellPos)
		if err != nil {
			return nil, err
		}
		if !selection.PointsAtCell(r) {
			return nil, fmt.Errorf("%w: %d", selection.ErrNotInCell, cellPos)
		}
		table, start := r.Node(-2), r.Start(-2)
		m, err := tablemap.Get(table)
		if err != nil {
			return nil, err
		}
		cc, err := m.ColCount(cellPos - start)
		if err != nil {
			return nil, err
		}
		col := cc + r.NodeAfter().Colspan() - 1

		tx := state.Tr()
		for row := 0; row < m.Height; row++ {
			index := row*m.Width + col
			if row > 0 && m.Map[index] == m.Map[index-m.Width] {
				continue
			}
			pos := m.Map[index]
			cell := table.NodeAt(pos)
			attrs := cell.Attrs()
			i := 0
			if attrs.Colspan > 1 {
				first, err := m.ColCount(pos)
				if err != nil {
					return nil, err
				}
				i = col - first
			}
			if i < len(attrs.Colwidth) && attrs.Colwidth[i] == width {
				continue
			}
			widths := make([]int, attrs.Colspan)
			copy(widths, attrs.Colwidth)
			widths[i] = width
			attrs.Colwidth = widths
			if err := tx.SetNodeMarkup(start+pos, cell.Role(), attrs); err != nil {
				return nil, err
			}
		}
		if !tx.DocChanged() {
			return nil, notApplicable("column already has that width")
		}
		return tx, nil
	}
}
