package model

// Doc builds a document root.
func Doc(content ...*Node) *Node { return New(RoleDoc, Attrs{}, content...) }

// Table builds a table from an optional caption and sections.
func Table(content ...*Node) *Node { return New(RoleTable, Attrs{}, content...) }

// Caption builds a table caption.
func Caption(content ...*Node) *Node { return New(RoleCaption, Attrs{}, content...) }

// Head builds a head section.
func Head(rows ...*Node) *Node { return New(RoleHead, Attrs{}, rows...) }

// Body builds a body section.
func Body(rows ...*Node) *Node { return New(RoleBody, Attrs{}, rows...) }

// Foot builds a foot section.
func Foot(rows ...*Node) *Node { return New(RoleFoot, Attrs{}, rows...) }

// Row builds a table row.
func Row(cells ...*Node) *Node { return New(RoleRow, Attrs{}, cells...) }

// Cell builds a data cell.
func Cell(attrs Attrs, content ...*Node) *Node { return New(RoleCell, attrs, content...) }

// HeaderCell builds a header cell.
func HeaderCell(attrs Attrs, content ...*Node) *Node { return New(RoleHeaderCell, attrs, content...) }

// Paragraph builds a text block; an empty string yields an empty block.
func Paragraph(text string) *Node {
	if text == "" {
		return New(RoleParagraph, Attrs{})
	}
	return New(RoleParagraph, Attrs{}, NewText(text))
}

// Text builds a text leaf.
func Text(s string) *Node { return NewText(s) }

// CreateAndFill builds a node of the given role with the minimal content
// that makes it valid: a cell gets one empty paragraph, a row one empty
// cell, a section one such row and a table one such section.
func CreateAndFill(role Role, attrs Attrs) *Node {
	switch role {
	case RoleCell, RoleHeaderCell:
		return New(role, attrs, Paragraph(""))
	case RoleRow:
		return New(role, attrs, CreateAndFill(RoleCell, DefaultAttrs()))
	case RoleHead, RoleBody, RoleFoot:
		return New(role, attrs, CreateAndFill(RoleRow, Attrs{}))
	case RoleTable:
		return New(role, attrs, CreateAndFill(RoleBody, Attrs{}))
	case RoleText:
		return NewText("")
	}
	return New(role, attrs)
}

// IsEmptyCell reports whether a cell holds nothing but one empty block.
func IsEmptyCell(cell *Node) bool {
	return len(cell.content) == 1 && cell.content[0].IsTextblock() && cell.content[0].ContentSize() == 0
}
