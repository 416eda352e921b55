package model

import (
	"strings"
	"unicode/utf8"
)

// Node is an immutable document tree node. Nodes are shared freely between
// document versions; any change produces new nodes along the changed path
// and reuses the rest, so pointer identity marks an unchanged subtree.
type Node struct {
	role    Role
	attrs   Attrs
	content []*Node
	text    string
	size    int
}

// New creates a node with the given role, attributes and children.
func New(role Role, attrs Attrs, content ...*Node) *Node {
	n := &Node{role: role, attrs: attrs.Clone()}
	if role.IsCell() {
		n.attrs = n.attrs.normalized()
	}
	if len(content) > 0 {
		n.content = append([]*Node(nil), content...)
	}
	n.size = 2
	for _, c := range n.content {
		n.size += c.size
	}
	return n
}

// NewText creates a text leaf.
func NewText(s string) *Node {
	return &Node{role: RoleText, text: s, size: utf8.RuneCountInString(s)}
}

// Role returns the node's role.
func (n *Node) Role() Role { return n.role }

// Attrs returns a copy of the node's attributes.
func (n *Node) Attrs() Attrs { return n.attrs.Clone() }

// Colspan is a shortcut for Attrs().Colspan without copying.
func (n *Node) Colspan() int { return n.attrs.Colspan }

// Rowspan is a shortcut for Attrs().Rowspan without copying.
func (n *Node) Rowspan() int { return n.attrs.Rowspan }

// Text returns the text of a text node.
func (n *Node) Text() string { return n.text }

// IsText reports whether n is a text leaf.
func (n *Node) IsText() bool { return n.role == RoleText }

// IsTextblock reports whether n directly holds inline content.
func (n *Node) IsTextblock() bool { return n.role.IsTextblock() }

// NodeSize returns the number of offsets the node occupies.
func (n *Node) NodeSize() int { return n.size }

// ContentSize returns the size of the node's content.
func (n *Node) ContentSize() int {
	if n.role == RoleText {
		return n.size
	}
	return n.size - 2
}

// ChildCount returns the number of children.
func (n *Node) ChildCount() int { return len(n.content) }

// Child returns the i-th child.
func (n *Node) Child(i int) *Node { return n.content[i] }

// FirstChild returns the first child or nil.
func (n *Node) FirstChild() *Node {
	if len(n.content) == 0 {
		return nil
	}
	return n.content[0]
}

// LastChild returns the last child or nil.
func (n *Node) LastChild() *Node {
	if len(n.content) == 0 {
		return nil
	}
	return n.content[len(n.content)-1]
}

// Content returns a copy of the child list.
func (n *Node) Content() []*Node {
	return append([]*Node(nil), n.content...)
}

// Copy returns a node with the same role and attributes and new content.
func (n *Node) Copy(content ...*Node) *Node {
	return New(n.role, n.attrs, content...)
}

// WithMarkup returns a node with the same content and the given role and attributes.
func (n *Node) WithMarkup(role Role, attrs Attrs) *Node {
	c := New(role, attrs)
	c.content = n.content
	c.size = n.size
	c.text = n.text
	return c
}

// NodeAt returns the node starting at the given offset relative to the
// start of n's content, or nil if no node starts there.
func (n *Node) NodeAt(pos int) *Node {
	node := n
	for {
		if node.role == RoleText {
			return nil
		}
		offset := 0
		var next *Node
		for _, c := range node.content {
			if pos == offset {
				return c
			}
			end := offset + c.size
			if pos < end {
				next = c
				break
			}
			offset = end
		}
		if next == nil {
			return nil
		}
		pos -= offset + 1
		node = next
	}
}

// Descendants calls fn for every descendant of n with its offset relative
// to n's content start. Returning false skips the node's children.
func (n *Node) Descendants(fn func(node *Node, pos int) bool) {
	n.descendants(0, fn)
}

func (n *Node) descendants(start int, fn func(node *Node, pos int) bool) {
	pos := start
	for _, c := range n.content {
		if fn(c, pos) && c.role != RoleText {
			c.descendants(pos+1, fn)
		}
		pos += c.size
	}
}

// TextContent concatenates the text of all text descendants.
func (n *Node) TextContent() string {
	if n.role == RoleText {
		return n.text
	}
	var sb strings.Builder
	n.Descendants(func(d *Node, _ int) bool {
		if d.role == RoleText {
			sb.WriteString(d.text)
		}
		return true
	})
	return sb.String()
}

// Equal reports whether n and o describe the same tree.
func (n *Node) Equal(o *Node) bool {
	if n == o {
		return true
	}
	if n == nil || o == nil {
		return false
	}
	if n.role != o.role || n.text != o.text || len(n.content) != len(o.content) || n.size != o.size {
		return false
	}
	if !n.attrs.Equal(o.attrs) {
		return false
	}
	for i := range n.content {
		if !n.content[i].Equal(o.content[i]) {
			return false
		}
	}
	return true
}

// String renders the tree compactly, e.g. table(body(row(cell(paragraph("x"))))).
func (n *Node) String() string {
	var sb strings.Builder
	n.writeString(&sb)
	return sb.String()
}

func (n *Node) writeString(sb *strings.Builder) {
	if n.role == RoleText {
		sb.WriteString(`"` + n.text + `"`)
		return
	}
	sb.WriteString(n.role.String())
	if n.role.IsCell() && (n.attrs.Colspan != 1 || n.attrs.Rowspan != 1 || n.attrs.Colwidth != nil) {
		sb.WriteString(n.attrs.String())
	}
	sb.WriteByte('(')
	for i, c := range n.content {
		if i > 0 {
			sb.WriteString(", ")
		}
		c.writeString(sb)
	}
	sb.WriteByte(')')
}
