package commands

import (
	"github.com/ukaji3/tablegrid-go/pkg/tablegrid/model"
	"github.com/ukaji3/tablegrid-go/pkg/tablegrid/selection"
)

// rowSpan is a row with its absolute offset.
type rowSpan struct {
	node *model.Node
	pos  int
}

// tableRows lists the rows of the table around cell in document order,
// across all sections.
func tableRows(cell *model.ResolvedPos) []rowSpan {
	table := cell.Node(-2)
	pos := cell.Start(-2)
	var rows []rowSpan
	for c := 0; c < table.ChildCount(); c++ {
		child := table.Child(c)
		if child.Role().IsSection() {
			rpos := pos + 1
			for r := 0; r < child.ChildCount(); r++ {
				rows = append(rows, rowSpan{node: child.Child(r), pos: rpos})
				rpos += child.Child(r).NodeSize()
			}
		}
		pos += child.NodeSize()
	}
	return rows
}

// FindNextCell returns the offset of the cell after (dir > 0) or before
// (dir < 0) cell in document order. Rows without cells are skipped. It
// reports false at the last or first cell of the table.
func FindNextCell(cell *model.ResolvedPos, dir int) (int, bool) {
	if dir < 0 {
		if before := cell.NodeBefore(); before != nil {
			return cell.Pos() - before.NodeSize(), true
		}
	} else if after := cell.NodeAfter(); after != nil && cell.Index(cell.Depth()) < cell.Parent().ChildCount()-1 {
		return cell.Pos() + after.NodeSize(), true
	}

	rows := tableRows(cell)
	current := cell.Start(cell.Depth()) - 1
	at := -1
	for i, r := range rows {
		if r.pos == current {
			at = i
			break
		}
	}
	if at < 0 {
		return 0, false
	}
	if dir < 0 {
		for i := at - 1; i >= 0; i-- {
			if last := rows[i].node.LastChild(); last != nil {
				return rows[i].pos + rows[i].node.NodeSize() - 1 - last.NodeSize(), true
			}
		}
		return 0, false
	}
	for i := at + 1; i < len(rows); i++ {
		if rows[i].node.ChildCount() > 0 {
			return rows[i].pos + 1, true
		}
	}
	return 0, false
}

// GoToNextCell returns a command selecting the content of the next
// (dir > 0) or previous (dir < 0) cell.
func GoToNextCell(dir int) Command {
	return func(state State) (*Transaction, error) {
		if !inTable(state) {
			return nil, notApplicable("selection is not in a table")
		}
		cell, err := SelectionCell(state)
		if err != nil {
			return nil, err
		}
		next, ok := FindNextCell(cell, dir)
		if !ok {
			return nil, notApplicable("no cell in that direction")
		}
		node := state.Doc.NodeAt(next)
		from, to := next+1, next+node.NodeSize()-1
		if first := node.FirstChild(); first != nil && first.IsTextblock() {
			from++
		}
		if last := node.LastChild(); last != nil && last.IsTextblock() {
			to--
		}
		return state.Tr().SetSelection(selection.Text(from, to)), nil
	}
}

// DeleteTable removes the innermost table around the selection anchor.
func DeleteTable(state State) (*Transaction, error) {
	r, d, err := anchorTable(state)
	if err != nil {
		return nil, err
	}
	if d == 0 {
		return nil, notApplicable("selection is not in a table")
	}
	tx := state.Tr()
	if err := tx.Delete(r.Before(d), r.After(d)); err != nil {
		return nil, err
	}
	return tx, nil
}
