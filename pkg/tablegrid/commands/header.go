package commands

import (
	"fmt"

	"github.com/ukaji3/tablegrid-go/pkg/tablegrid/model"
	"github.com/ukaji3/tablegrid-go/pkg/tablegrid/tablemap"
)

// HeaderKind selects what ToggleHeader toggles.
type HeaderKind string

const (
	HeaderRow    HeaderKind = "row"
	HeaderColumn HeaderKind = "column"
	HeaderCell   HeaderKind = "cell"
)

// ParseHeaderKind returns the kind named s.
func ParseHeaderKind(s string) (HeaderKind, error) {
	switch k := HeaderKind(s); k {
	case HeaderRow, HeaderColumn, HeaderCell:
		return k, nil
	}
	return "", fmt.Errorf("unknown header kind %q", s)
}

// ToggleHeaderRow toggles the header state of the first row.
func ToggleHeaderRow(opts Options) Command { return ToggleHeader(HeaderRow, opts) }

// ToggleHeaderColumn toggles the header state of the first column.
func ToggleHeaderColumn(opts Options) Command { return ToggleHeader(HeaderColumn, opts) }

// ToggleHeaderCell turns the selected cells into header cells, or into
// plain cells when they all are headers.
func ToggleHeaderCell(opts Options) Command { return ToggleHeader(HeaderCell, opts) }

// ToggleHeader returns a command switching cells between header and plain
// roles.
//
// By default a row toggle flips the first row of the table and a column
// toggle the first column, leaving the corner cell to the other header if
// that one is enabled. A cell toggle flips the selected cells. With
// opts.LegacyHeaderToggle every selected row or column is flipped: header
// cells become plain, or, when there were none, every cell becomes a
// header.
func ToggleHeader(kind HeaderKind, opts Options) Command {
	if opts.LegacyHeaderToggle {
		return legacyToggleHeader(kind)
	}
	return func(state State) (*Transaction, error) {
		rect, err := selectedRectInTable(state)
		if err != nil {
			return nil, err
		}
		m := rect.Map
		rowEnabled := headerEnabled(HeaderRow, rect)
		colEnabled := headerEnabled(HeaderColumn, rect)

		var cells tablemap.Rect
		newRole := model.RoleCell
		switch kind {
		case HeaderColumn:
			top := 0
			if rowEnabled {
				top = 1
			}
			cells = tablemap.Rect{Left: 0, Top: top, Right: 1, Bottom: m.Height}
			if !colEnabled {
				newRole = model.RoleHeaderCell
			}
		case HeaderRow:
			left := 0
			if colEnabled {
				left = 1
			}
			cells = tablemap.Rect{Left: left, Top: 0, Right: m.Width, Bottom: 1}
			if !rowEnabled {
				newRole = model.RoleHeaderCell
			}
		default:
			cells = rect.Rect
			for _, pos := range m.CellsInRect(cells) {
				if rect.Table.NodeAt(pos).Role() != model.RoleHeaderCell {
					newRole = model.RoleHeaderCell
					break
				}
			}
		}

		tx := state.Tr()
		for _, rel := range m.CellsInRect(cells) {
			pos := rect.TableStart + rel
			cell := tx.Doc().NodeAt(pos)
			if cell == nil {
				continue
			}
			if err := tx.SetNodeMarkup(pos, newRole, cell.Attrs()); err != nil {
				return nil, err
			}
		}
		return tx, nil
	}
}

// headerEnabled reports whether every cell of the first row or column is
// a header cell.
func headerEnabled(kind HeaderKind, rect TableRect) bool {
	m := rect.Map
	r := tablemap.Rect{Right: 1, Bottom: 1}
	if kind == HeaderRow {
		r.Right = m.Width
	} else {
		r.Bottom = m.Height
	}
	for _, pos := range m.CellsInRect(r) {
		if cell := rect.Table.NodeAt(pos); cell != nil && cell.Role() != model.RoleHeaderCell {
			return false
		}
	}
	return true
}

func legacyToggleHeader(kind HeaderKind) Command {
	return func(state State) (*Transaction, error) {
		rect, err := selectedRectInTable(state)
		if err != nil {
			return nil, err
		}
		m := rect.Map
		area := rect.Rect
		switch kind {
		case HeaderColumn:
			area = tablemap.Rect{Left: rect.Left, Top: 0, Right: rect.Right, Bottom: m.Height}
		case HeaderRow:
			area = tablemap.Rect{Left: 0, Top: rect.Top, Right: m.Width, Bottom: rect.Bottom}
		}
		cells := m.CellsInRect(area)

		tx := state.Tr()
		for _, rel := range cells {
			cell := rect.Table.NodeAt(rel)
			if cell.Role() != model.RoleHeaderCell {
				continue
			}
			if err := tx.SetNodeMarkup(rect.TableStart+rel, model.RoleCell, cell.Attrs()); err != nil {
				return nil, err
			}
		}
		if tx.DocChanged() {
			return tx, nil
		}
		for _, rel := range cells {
			cell := rect.Table.NodeAt(rel)
			if err := tx.SetNodeMarkup(rect.TableStart+rel, model.RoleHeaderCell, cell.Attrs()); err != nil {
				return nil, err
			}
		}
		return tx, nil
	}
}
