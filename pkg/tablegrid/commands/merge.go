package commands

import (
	"github.com/ukaji3/tablegrid-go/pkg/tablegrid/model"
	"github.com/ukaji3/tablegrid-go/pkg/tablegrid/selection"
	"github.com/ukaji3/tablegrid-go/pkg/tablegrid/tablemap"
)

// cellsOverlapRectangle reports whether a cell crosses the outline of rect.
func cellsOverlapRectangle(m *tablemap.TableMap, rect tablemap.Rect) bool {
	indexTop := rect.Top*m.Width + rect.Left
	indexLeft := indexTop
	indexBottom := (rect.Bottom-1)*m.Width + rect.Left
	indexRight := indexTop + rect.Width() - 1
	for i := rect.Top; i < rect.Bottom; i++ {
		if (rect.Left > 0 && m.Map[indexLeft] == m.Map[indexLeft-1]) ||
			(rect.Right < m.Width && m.Map[indexRight] == m.Map[indexRight+1]) {
			return true
		}
		indexLeft += m.Width
		indexRight += m.Width
	}
	for i := rect.Left; i < rect.Right; i++ {
		if (rect.Top > 0 && m.Map[indexTop] == m.Map[indexTop-m.Width]) ||
			(rect.Bottom < m.Height && m.Map[indexBottom] == m.Map[indexBottom+m.Width]) {
			return true
		}
		indexTop++
		indexBottom++
	}
	return false
}

// MergeCells merges the selected cells into the top-left one, appending the
// content of the others. It needs a cell selection of several cells within
// one section whose outline no cell crosses.
func MergeCells(state State) (*Transaction, error) {
	sel, ok := state.Selection.(*selection.CellSelection)
	if !ok || sel.Anchor() == sel.Head() {
		return nil, notApplicable("merging needs several selected cells")
	}
	rect, err := SelectedRect(state)
	if err != nil {
		return nil, err
	}
	m, table, start := rect.Map, rect.Table, rect.TableStart
	if !m.RectOverOneSection(rect.Rect) {
		return nil, notApplicable("selection spans several sections")
	}
	if cellsOverlapRectangle(m, rect.Rect) {
		return nil, notApplicable("selection cuts through a spanning cell")
	}

	tx := state.Tr()
	seen := make(map[int]bool)
	var content []*model.Node
	mergedPos := -1
	var merged *model.Node
	for row := rect.Top; row < rect.Bottom; row++ {
		for col := rect.Left; col < rect.Right; col++ {
			cellPos := m.Map[row*m.Width+col]
			cell := table.NodeAt(cellPos)
			if seen[cellPos] || cell == nil {
				continue
			}
			seen[cellPos] = true
			if mergedPos < 0 {
				mergedPos, merged = cellPos, cell
				continue
			}
			if !model.IsEmptyCell(cell) {
				content = append(content, cell.Content()...)
			}
			mapped := tx.Mapping().Map(start + cellPos)
			if err := tx.Delete(mapped, mapped+cell.NodeSize()); err != nil {
				return nil, err
			}
		}
	}
	if mergedPos < 0 {
		return nil, notApplicable("no cells selected")
	}

	attrs := merged.Attrs().AddColSpan(merged.Colspan(), rect.Width()-merged.Colspan())
	attrs.Rowspan = rect.Height()
	if err := tx.SetNodeMarkup(start+mergedPos, merged.Role(), attrs); err != nil {
		return nil, err
	}
	if len(content) > 0 {
		end := mergedPos + 1 + merged.ContentSize()
		from := end
		if model.IsEmptyCell(merged) {
			from = mergedPos + 1
		}
		if err := tx.ReplaceWith(start+from, start+end, content...); err != nil {
			return nil, err
		}
	}
	cs, err := selection.Single(tx.Doc(), start+mergedPos)
	if err != nil {
		return nil, err
	}
	return tx.SetSelection(cs), nil
}

// CellRoleFunc picks the role of the cell split off at (row, col) of the
// split cell node.
type CellRoleFunc func(node *model.Node, row, col int) model.Role

// SplitCell splits the selected spanning cell into 1x1 cells of its own
// role.
func SplitCell(state State) (*Transaction, error) {
	return SplitCellWithType(func(node *model.Node, _, _ int) model.Role {
		return node.Role()
	})(state)
}

// SplitCellWithType returns a command splitting the selected spanning cell
// into 1x1 cells whose roles roleOf picks. The first cell keeps the
// content; the others are empty. Column widths are distributed over the
// new cells.
func SplitCellWithType(roleOf CellRoleFunc) Command {
	return func(state State) (*Transaction, error) {
		var (
			cellNode *model.Node
			cellPos  int
		)
		cs, isCellSel := state.Selection.(*selection.CellSelection)
		switch {
		case isCellSel:
			if cs.Anchor() != cs.Head() {
				return nil, notApplicable("splitting needs a single cell")
			}
			cellNode, cellPos = cs.AnchorCell().NodeAfter(), cs.Anchor()
		case state.Selection != nil:
			from, err := state.Doc.Resolve(min(state.Selection.Anchor(), state.Selection.Head()))
			if err != nil {
				return nil, err
			}
			cellNode = selection.CellWrapping(from)
			around, ok := selection.CellAround(from)
			if cellNode == nil || !ok {
				return nil, notApplicable("selection is not in a cell")
			}
			cellPos = around.Pos()
		default:
			return nil, notApplicable("no selection")
		}
		if cellNode.Colspan() == 1 && cellNode.Rowspan() == 1 {
			return nil, notApplicable("cell does not span")
		}

		rect, err := SelectedRect(state)
		if err != nil {
			return nil, err
		}
		base := cellNode.Attrs()
		colwidth := base.Colwidth
		base.Colspan, base.Rowspan, base.Colwidth = 1, 1, nil
		attrs := make([]model.Attrs, rect.Width())
		for i := range attrs {
			attrs[i] = base.Clone()
			if i < len(colwidth) && colwidth[i] > 0 {
				attrs[i].Colwidth = []int{colwidth[i]}
			}
		}

		tx := state.Tr()
		m, table, start := rect.Map, rect.Table, rect.TableStart
		lastCell := -1
		for row := rect.Top; row < rect.Bottom; row++ {
			pos := m.PositionAt(row, rect.Left, table)
			if row == rect.Top {
				pos += cellNode.NodeSize()
			}
			for col, i := rect.Left, 0; col < rect.Right; col, i = col+1, i+1 {
				if col == rect.Left && row == rect.Top {
					continue
				}
				lastCell = tx.Mapping().Map(start + pos)
				if err := tx.Insert(lastCell, model.CreateAndFill(roleOf(cellNode, row, col), attrs[i])); err != nil {
					return nil, err
				}
			}
		}
		if err := tx.SetNodeMarkup(cellPos, roleOf(cellNode, rect.Top, rect.Left), attrs[0]); err != nil {
			return nil, err
		}
		if isCellSel && lastCell >= 0 {
			next, err := selection.New(tx.Doc(), cs.Anchor(), lastCell)
			if err != nil {
				return nil, err
			}
			tx.SetSelection(next)
		}
		return tx, nil
	}
}
