package commands

import (
	"fmt"

	"github.com/ukaji3/tablegrid-go/pkg/tablegrid/model"
	"github.com/ukaji3/tablegrid-go/pkg/tablegrid/tablemap"
)

// newSection builds a section holding one row of width empty cells.
func newSection(role, cellRole model.Role, width int) *model.Node {
	cells := make([]*model.Node, width)
	for i := range cells {
		cells[i] = model.CreateAndFill(cellRole, model.DefaultAttrs())
	}
	return model.New(role, model.Attrs{}, model.Row(cells...))
}

// anchorTable resolves the selection anchor and returns the table around
// it with the depth of the table.
func anchorTable(state State) (*model.ResolvedPos, int, error) {
	if state.Selection == nil {
		return nil, -1, notApplicable("no selection")
	}
	r, err := state.Doc.Resolve(state.Selection.Anchor())
	if err != nil {
		return nil, -1, err
	}
	d := tableDepth(r)
	if d < 0 {
		return nil, -1, notApplicable("selection is not in a table")
	}
	return r, d, nil
}

// AddTableHead adds a head section of header cells at the top of the table,
// after its caption. It refuses when the table has a head.
func AddTableHead(state State) (*Transaction, error) {
	r, d, err := anchorTable(state)
	if err != nil {
		return nil, err
	}
	table := r.Node(d)
	if tablemap.HasHead(table) {
		return nil, notApplicable("table already has a head")
	}
	m, err := tablemap.Get(table)
	if err != nil {
		return nil, err
	}
	pos := r.Start(d)
	if tablemap.HasCaption(table) {
		pos += table.Child(0).NodeSize()
	}
	tx := state.Tr()
	if err := tx.Insert(pos, newSection(model.RoleHead, model.RoleHeaderCell, m.Width)); err != nil {
		return nil, err
	}
	return tx, nil
}

// AddTableFoot adds a foot section of header cells at the bottom of the
// table. It refuses when the table has a foot.
func AddTableFoot(state State) (*Transaction, error) {
	r, d, err := anchorTable(state)
	if err != nil {
		return nil, err
	}
	table := r.Node(d)
	if tablemap.HasFoot(table) {
		return nil, notApplicable("table already has a foot")
	}
	m, err := tablemap.Get(table)
	if err != nil {
		return nil, err
	}
	tx := state.Tr()
	if err := tx.Insert(r.End(d), newSection(model.RoleFoot, model.RoleHeaderCell, m.Width)); err != nil {
		return nil, err
	}
	return tx, nil
}

// AddBodyBefore adds a body section before the first section the selection
// touches. It refuses when that section is the head.
func AddBodyBefore(state State) (*Transaction, error) {
	rect, err := selectedRectInTable(state)
	if err != nil {
		return nil, err
	}
	sections := rect.Map.SectionsInRect(rect.Rect)
	if len(sections) == 0 {
		return nil, notApplicable("selection touches no section")
	}
	info, ok := tablemap.SectionAt(rect.Table, sections[0])
	if !ok {
		return nil, fmt.Errorf("%w: section %d", tablemap.ErrNotFound, sections[0])
	}
	if info.Node.Role() == model.RoleHead {
		return nil, notApplicable("cannot add a body before the head")
	}
	tx := state.Tr()
	if err := tx.Insert(rect.TableStart+info.Pos, newSection(model.RoleBody, model.RoleCell, rect.Map.Width)); err != nil {
		return nil, err
	}
	return tx, nil
}

// AddBodyAfter adds a body section after the last section the selection
// touches. It refuses when that section is the foot.
func AddBodyAfter(state State) (*Transaction, error) {
	rect, err := selectedRectInTable(state)
	if err != nil {
		return nil, err
	}
	sections := rect.Map.SectionsInRect(rect.Rect)
	if len(sections) == 0 {
		return nil, notApplicable("selection touches no section")
	}
	last := sections[len(sections)-1]
	info, ok := tablemap.SectionAt(rect.Table, last)
	if !ok {
		return nil, fmt.Errorf("%w: section %d", tablemap.ErrNotFound, last)
	}
	if info.Node.Role() == model.RoleFoot {
		return nil, notApplicable("cannot add a body after the foot")
	}
	tx := state.Tr()
	pos := rect.TableStart + info.Pos + info.Node.NodeSize()
	if err := tx.Insert(pos, newSection(model.RoleBody, model.RoleCell, rect.Map.Width)); err != nil {
		return nil, err
	}
	return tx, nil
}

// RemoveSection removes section section, counting sections only, from the
// table of rect.
func RemoveSection(tx *Transaction, rect TableRect, section int) error {
	info, ok := tablemap.SectionAt(rect.Table, section)
	if !ok {
		return fmt.Errorf("%w: section %d", tablemap.ErrNotFound, section)
	}
	from := rect.TableStart + info.Pos
	return tx.Delete(from, from+info.Node.NodeSize())
}

// DeleteSection removes every section the selection touches, even
// partially. It refuses to remove every section of the table.
func DeleteSection(state State) (*Transaction, error) {
	rect, err := selectedRectInTable(state)
	if err != nil {
		return nil, err
	}
	if rect.Top == 0 && rect.Bottom == rect.Map.Height {
		return nil, notApplicable("cannot delete every section")
	}
	sections := rect.Map.SectionsInRect(rect.Rect)
	if len(sections) == 0 || len(sections) >= tablemap.SectionsCount(rect.Table) {
		return nil, notApplicable("cannot delete every section")
	}
	tx := state.Tr()
	for i := len(sections) - 1; i >= 0; i-- {
		if err := RemoveSection(tx, rect, sections[i]); err != nil {
			return nil, err
		}
	}
	return tx, nil
}
