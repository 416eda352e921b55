package selection

import (
	"errors"

	"github.com/ukaji3/tablegrid-go/pkg/tablegrid/model"
)

var (
	// ErrNotInCell indicates a position that is not in or next to a cell.
	ErrNotInCell = errors.New("position is not in a table cell")

	// ErrDifferentTables indicates selection corners in different tables.
	ErrDifferentTables = errors.New("cells are not in the same table")
)

// A resolved cell position sits in its row, directly before the cell:
// Node(-1) is the section and Node(-2) the table, whose content starts at
// Start(-2).

// CellAround returns the position of the cell enclosing r.
func CellAround(r *model.ResolvedPos) (*model.ResolvedPos, bool) {
	for d := r.Depth() - 1; d > 0; d-- {
		if r.Node(d).Role() == model.RoleRow {
			cell, err := r.Node(0).Resolve(r.Before(d + 1))
			return cell, err == nil
		}
	}
	return nil, false
}

// CellWrapping returns the innermost cell containing r, or nil.
func CellWrapping(r *model.ResolvedPos) *model.Node {
	for d := r.Depth(); d > 0; d-- {
		if n := r.Node(d); n.Role().IsCell() {
			return n
		}
	}
	return nil
}

// CellNear returns the position of a cell directly after or before r,
// looking down through first and last children.
func CellNear(r *model.ResolvedPos) (*model.ResolvedPos, bool) {
	doc := r.Node(0)
	for after, pos := r.NodeAfter(), r.Pos(); after != nil; after, pos = after.FirstChild(), pos+1 {
		if after.Role().IsCell() {
			cell, err := doc.Resolve(pos)
			return cell, err == nil
		}
	}
	for before, pos := r.NodeBefore(), r.Pos(); before != nil; before, pos = before.LastChild(), pos-1 {
		if before.Role().IsCell() {
			cell, err := doc.Resolve(pos - before.NodeSize())
			return cell, err == nil
		}
	}
	return nil, false
}

// PointsAtCell reports whether r sits directly before a cell in a row.
func PointsAtCell(r *model.ResolvedPos) bool {
	return r.Parent().Role() == model.RoleRow && r.NodeAfter() != nil
}

// InSameTable reports whether two cell positions belong to one table.
func InSameTable(a, b *model.ResolvedPos) bool {
	return a.Depth() == b.Depth() && a.Pos() >= b.Start(-2) && a.Pos() <= b.End(-2)
}

// ResolveCell resolves pos to a cell: pos itself when it points at a cell,
// else the cell around it, else a cell next to it.
func ResolveCell(doc *model.Node, pos int) (*model.ResolvedPos, error) {
	r, err := doc.Resolve(pos)
	if err != nil {
		return nil, err
	}
	if PointsAtCell(r) {
		return r, nil
	}
	if cell, ok := CellAround(r); ok {
		return cell, nil
	}
	if cell, ok := CellNear(r); ok {
		return cell, nil
	}
	return nil, ErrNotInCell
}
