package selection

import (
	"fmt"

	"github.com/ukaji3/tablegrid-go/pkg/tablegrid/model"
	"github.com/ukaji3/tablegrid-go/pkg/tablegrid/tablemap"
	"github.com/ukaji3/tablegrid-go/pkg/tablegrid/transform"
)

// CellSelection selects the rectangle of cells spanned by an anchor cell
// and a head cell of one table. Both are absolute offsets pointing
// directly at cells.
type CellSelection struct {
	anchorCell *model.ResolvedPos
	headCell   *model.ResolvedPos
}

// New returns the selection from the cell at anchorCell to the cell at
// headCell, keeping their order.
func New(doc *model.Node, anchorCell, headCell int) (*CellSelection, error) {
	a, err := resolvePointing(doc, anchorCell)
	if err != nil {
		return nil, err
	}
	h, err := resolvePointing(doc, headCell)
	if err != nil {
		return nil, err
	}
	if !InSameTable(a, h) {
		return nil, fmt.Errorf("%w: %d and %d", ErrDifferentTables, anchorCell, headCell)
	}
	return &CellSelection{anchorCell: a, headCell: h}, nil
}

// Single returns the selection of the one cell at pos.
func Single(doc *model.Node, pos int) (*CellSelection, error) {
	return New(doc, pos, pos)
}

// Create resolves a and b to the nearest cells and returns the selection of
// the rectangle between them, anchored at its top-left cell with the head
// at its bottom-right cell.
func Create(doc *model.Node, a, b int) (*CellSelection, error) {
	ra, err := ResolveCell(doc, a)
	if err != nil {
		return nil, fmt.Errorf("%w: %d", err, a)
	}
	rb, err := ResolveCell(doc, b)
	if err != nil {
		return nil, fmt.Errorf("%w: %d", err, b)
	}
	if !InSameTable(ra, rb) {
		return nil, fmt.Errorf("%w: %d and %d", ErrDifferentTables, a, b)
	}
	m, err := tablemap.Get(ra.Node(-2))
	if err != nil {
		return nil, err
	}
	start := ra.Start(-2)
	rect, err := m.RectBetween(ra.Pos()-start, rb.Pos()-start)
	if err != nil {
		return nil, err
	}
	topLeft := start + m.Map[rect.Top*m.Width+rect.Left]
	bottomRight := start + m.Map[(rect.Bottom-1)*m.Width+rect.Right-1]
	return New(doc, topLeft, bottomRight)
}

func resolvePointing(doc *model.Node, pos int) (*model.ResolvedPos, error) {
	r, err := doc.Resolve(pos)
	if err != nil {
		return nil, err
	}
	if !PointsAtCell(r) || !r.NodeAfter().Role().IsCell() {
		return nil, fmt.Errorf("%w: %d", ErrNotInCell, pos)
	}
	return r, nil
}

// Anchor implements Selection; it is the anchor cell's offset.
func (s *CellSelection) Anchor() int { return s.anchorCell.Pos() }

// Head implements Selection; it is the head cell's offset.
func (s *CellSelection) Head() int { return s.headCell.Pos() }

// AnchorCell returns the resolved anchor cell position.
func (s *CellSelection) AnchorCell() *model.ResolvedPos { return s.anchorCell }

// HeadCell returns the resolved head cell position.
func (s *CellSelection) HeadCell() *model.ResolvedPos { return s.headCell }

// Table returns the table the selection is in.
func (s *CellSelection) Table() *model.Node { return s.anchorCell.Node(-2) }

// TableStart returns the offset of the table's content.
func (s *CellSelection) TableStart() int { return s.anchorCell.Start(-2) }

// TableMap returns the grid of the selection's table.
func (s *CellSelection) TableMap() (*tablemap.TableMap, error) {
	return tablemap.Get(s.Table())
}

// Rect returns the selected rectangle in grid coordinates.
func (s *CellSelection) Rect() (tablemap.Rect, error) {
	m, err := s.TableMap()
	if err != nil {
		return tablemap.Rect{}, err
	}
	start := s.TableStart()
	return m.RectBetween(s.anchorCell.Pos()-start, s.headCell.Pos()-start)
}

// OverOneSection reports whether every selected row is in one section.
func (s *CellSelection) OverOneSection() bool {
	m, err := s.TableMap()
	if err != nil {
		return false
	}
	rect, err := s.Rect()
	return err == nil && m.RectOverOneSection(rect)
}

// Cells returns the absolute offsets of the selected cells in row-major
// order.
func (s *CellSelection) Cells() []int {
	m, err := s.TableMap()
	if err != nil {
		return nil
	}
	rect, err := s.Rect()
	if err != nil {
		return nil
	}
	start := s.TableStart()
	cells := m.CellsInRect(rect)
	for i := range cells {
		cells[i] += start
	}
	return cells
}

// ForEachCell calls fn for every selected cell with its absolute offset.
func (s *CellSelection) ForEachCell(fn func(cell *model.Node, pos int)) {
	doc := s.anchorCell.Node(0)
	for _, pos := range s.Cells() {
		fn(doc.NodeAt(pos), pos)
	}
}

// IsColSelection reports whether the selection covers whole columns.
func (s *CellSelection) IsColSelection() bool {
	m, err := s.TableMap()
	if err != nil {
		return false
	}
	rect, err := s.Rect()
	return err == nil && rect.Top == 0 && rect.Bottom == m.Height
}

// IsRowSelection reports whether the selection covers whole rows.
func (s *CellSelection) IsRowSelection() bool {
	m, err := s.TableMap()
	if err != nil {
		return false
	}
	rect, err := s.Rect()
	return err == nil && rect.Left == 0 && rect.Right == m.Width
}

// Equal reports whether two selections have the same cells.
func (s *CellSelection) Equal(o *CellSelection) bool {
	return o != nil && s.Anchor() == o.Anchor() && s.Head() == o.Head()
}

// Content returns copies of the selected rows holding copies of the
// selected cells. Cells reaching outside the rectangle are cut to fit it;
// a cut cell that starts outside the rectangle is copied empty.
func (s *CellSelection) Content() ([]*model.Node, error) {
	table := s.Table()
	m, err := s.TableMap()
	if err != nil {
		return nil, err
	}
	rect, err := s.Rect()
	if err != nil {
		return nil, err
	}

	seen := make(map[int]bool)
	var rows []*model.Node
	for row := rect.Top; row < rect.Bottom; row++ {
		var content []*model.Node
		for col := rect.Left; col < rect.Right; col++ {
			pos := m.Map[row*m.Width+col]
			if seen[pos] {
				continue
			}
			seen[pos] = true
			cellRect, err := m.FindCell(pos)
			if err != nil {
				return nil, err
			}
			cell := table.NodeAt(pos)

			extraLeft := rect.Left - cellRect.Left
			extraRight := cellRect.Right - rect.Right
			if extraLeft > 0 || extraRight > 0 {
				attrs := cell.Attrs()
				if extraLeft > 0 {
					attrs = attrs.RemoveColSpan(0, extraLeft)
				}
				if extraRight > 0 {
					attrs = attrs.RemoveColSpan(attrs.Colspan-extraRight, extraRight)
				}
				if cellRect.Left < rect.Left {
					cell = model.CreateAndFill(cell.Role(), attrs)
				} else {
					cell = cell.WithMarkup(cell.Role(), attrs)
				}
			}
			if cellRect.Top < rect.Top || cellRect.Bottom > rect.Bottom {
				attrs := cell.Attrs()
				attrs.Rowspan = min(cellRect.Bottom, rect.Bottom) - max(cellRect.Top, rect.Top)
				if cellRect.Top < rect.Top {
					cell = model.CreateAndFill(cell.Role(), attrs)
				} else {
					cell = cell.WithMarkup(cell.Role(), attrs)
				}
			}
			content = append(content, cell)
		}
		rowNode := tablemap.GetRow(table, row).Node
		rows = append(rows, rowNode.Copy(content...))
	}
	return rows, nil
}

// Map implements Selection. When the table changed and the selection
// covered whole rows or columns, the mapped selection is widened to cover
// whole rows or columns again.
func (s *CellSelection) Map(doc *model.Node, mapping transform.Mapping) Selection {
	anchor := mapping.Map(s.anchorCell.Pos())
	head := mapping.Map(s.headCell.Pos())
	ra, errA := doc.Resolve(anchor)
	rh, errH := doc.Resolve(head)
	if errA == nil && errH == nil && PointsAtCell(ra) && PointsAtCell(rh) && InSameTable(ra, rh) {
		tableChanged := s.Table() != ra.Node(-2)
		var (
			sel *CellSelection
			err error
		)
		switch {
		case tableChanged && s.IsRowSelection():
			sel, err = RowSelection(doc, anchor, head)
		case tableChanged && s.IsColSelection():
			sel, err = ColSelection(doc, anchor, head)
		default:
			sel, err = New(doc, anchor, head)
		}
		if err == nil {
			return sel
		}
	}
	return clampedText(doc, anchor, head)
}

// ColSelection returns the selection of the full columns spanned by the
// cells at anchorCell and headCell.
func ColSelection(doc *model.Node, anchorCell, headCell int) (*CellSelection, error) {
	return lineSelection(doc, anchorCell, headCell, tablemap.Vert)
}

// RowSelection returns the selection of the full rows spanned by the cells
// at anchorCell and headCell.
func RowSelection(doc *model.Node, anchorCell, headCell int) (*CellSelection, error) {
	return lineSelection(doc, anchorCell, headCell, tablemap.Horiz)
}

func lineSelection(doc *model.Node, anchorCell, headCell int, axis tablemap.Axis) (*CellSelection, error) {
	sel, err := New(doc, anchorCell, headCell)
	if err != nil {
		return nil, err
	}
	m, err := sel.TableMap()
	if err != nil {
		return nil, err
	}
	start := sel.TableStart()
	anchorRect, err := m.FindCell(anchorCell - start)
	if err != nil {
		return nil, err
	}
	headRect, err := m.FindCell(headCell - start)
	if err != nil {
		return nil, err
	}

	// first returns the cell starting the line of r, last the cell ending it.
	first := func(r tablemap.Rect) int {
		if axis == tablemap.Vert {
			return start + m.Map[r.Left]
		}
		return start + m.Map[r.Top*m.Width]
	}
	last := func(r tablemap.Rect) int {
		if axis == tablemap.Vert {
			return start + m.Map[m.Width*(m.Height-1)+r.Right-1]
		}
		return start + m.Map[m.Width*(r.Top+1)-1]
	}
	atStart := func(r tablemap.Rect) bool {
		if axis == tablemap.Vert {
			return r.Top == 0
		}
		return r.Left == 0
	}
	atEnd := func(r tablemap.Rect) bool {
		if axis == tablemap.Vert {
			return r.Bottom == m.Height
		}
		return r.Right == m.Width
	}
	before := func(a, b tablemap.Rect) bool {
		if axis == tablemap.Vert {
			return a.Top <= b.Top
		}
		return a.Left <= b.Left
	}

	if before(anchorRect, headRect) {
		if !atStart(anchorRect) {
			anchorCell = first(anchorRect)
		}
		if !atEnd(headRect) {
			headCell = last(headRect)
		}
	} else {
		if !atStart(headRect) {
			headCell = first(headRect)
		}
		if !atEnd(anchorRect) {
			anchorCell = last(anchorRect)
		}
	}
	return New(doc, anchorCell, headCell)
}
