// Package model defines the immutable document tree that tables live in.
//
// Every node occupies a contiguous range of integer offsets. A text node is
// as large as its rune count; every other node is its content size plus two
// (one offset for the opening and one for the closing boundary). The content
// of a node starts at the node's start offset + 1, and the content of the
// root starts at offset 0.
package model

import "fmt"

// Role identifies what part of a document a node plays.
type Role int

const (
	// RoleDoc is the document root.
	RoleDoc Role = iota
	// RoleTable is a table; its children are an optional caption followed by sections.
	RoleTable
	// RoleCaption is the optional first child of a table.
	RoleCaption
	// RoleHead is the head section of a table.
	RoleHead
	// RoleBody is a body section of a table.
	RoleBody
	// RoleFoot is the foot section of a table.
	RoleFoot
	// RoleRow is a table row; its children are cells.
	RoleRow
	// RoleCell is a plain data cell.
	RoleCell
	// RoleHeaderCell is a header cell.
	RoleHeaderCell
	// RoleParagraph is a text block.
	RoleParagraph
	// RoleText is a leaf holding text.
	RoleText
)

var roleNames = [...]string{
	RoleDoc:        "doc",
	RoleTable:      "table",
	RoleCaption:    "caption",
	RoleHead:       "head",
	RoleBody:       "body",
	RoleFoot:       "foot",
	RoleRow:        "row",
	RoleCell:       "cell",
	RoleHeaderCell: "header_cell",
	RoleParagraph:  "paragraph",
	RoleText:       "text",
}

func (r Role) String() string {
	if r < 0 || int(r) >= len(roleNames) {
		return fmt.Sprintf("Role(%d)", int(r))
	}
	return roleNames[r]
}

// ParseRole returns the role with the given name.
func ParseRole(name string) (Role, error) {
	for i, n := range roleNames {
		if n == name {
			return Role(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown node type %q", ErrInvalidNode, name)
}

// IsSection reports whether r is a head, body or foot section.
func (r Role) IsSection() bool {
	return r == RoleHead || r == RoleBody || r == RoleFoot
}

// IsCell reports whether r is a cell or a header cell.
func (r Role) IsCell() bool {
	return r == RoleCell || r == RoleHeaderCell
}

// IsTextblock reports whether nodes of this role hold inline text.
func (r Role) IsTextblock() bool {
	return r == RoleParagraph
}
