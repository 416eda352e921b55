package model

import "fmt"

type pathEntry struct {
	node  *Node
	index int
	// offset of the child at index, absolute.
	offset int
}

// ResolvedPos describes an offset in terms of the nodes that enclose it.
//
// Depth arguments follow one convention throughout: d >= 0 addresses an
// absolute depth (0 is the root), d < 0 counts up from the innermost
// enclosing node, so Node(-1) is the grandparent of the position.
type ResolvedPos struct {
	pos          int
	path         []pathEntry
	parentOffset int
}

// Resolve resolves pos, an offset relative to n's content start.
func (n *Node) Resolve(pos int) (*ResolvedPos, error) {
	if pos < 0 || pos > n.ContentSize() {
		return nil, fmt.Errorf("%w: %d outside 0..%d", ErrInvalidPosition, pos, n.ContentSize())
	}
	var path []pathEntry
	start, parentOffset := 0, pos
	for node := n; ; {
		index, offset := node.findIndex(parentOffset)
		rem := parentOffset - offset
		path = append(path, pathEntry{node: node, index: index, offset: start + offset})
		if rem == 0 {
			break
		}
		node = node.content[index]
		if node.role == RoleText {
			break
		}
		parentOffset = rem - 1
		start += offset + 1
	}
	return &ResolvedPos{pos: pos, path: path, parentOffset: parentOffset}, nil
}

// findIndex returns the index of the child containing pos and that child's
// offset. A pos on a child boundary resolves to the child after it.
func (n *Node) findIndex(pos int) (int, int) {
	if pos == 0 {
		return 0, 0
	}
	if pos == n.ContentSize() {
		return len(n.content), pos
	}
	cur := 0
	for i, c := range n.content {
		end := cur + c.size
		if end >= pos {
			if end == pos {
				return i + 1, end
			}
			return i, cur
		}
		cur = end
	}
	return len(n.content), cur
}

// Pos returns the resolved offset.
func (r *ResolvedPos) Pos() int { return r.pos }

// Depth returns the depth of the innermost node containing the position.
func (r *ResolvedPos) Depth() int { return len(r.path) - 1 }

func (r *ResolvedPos) depth(d int) int {
	if d < 0 {
		return r.Depth() + d
	}
	return d
}

// Node returns the ancestor at depth d.
func (r *ResolvedPos) Node(d int) *Node { return r.path[r.depth(d)].node }

// Parent returns the innermost node containing the position.
func (r *ResolvedPos) Parent() *Node { return r.Node(r.Depth()) }

// ParentOffset returns the offset of the position into its parent's content.
func (r *ResolvedPos) ParentOffset() int { return r.parentOffset }

// Index returns the child index in the ancestor at depth d.
func (r *ResolvedPos) Index(d int) int { return r.path[r.depth(d)].index }

// IndexAfter returns the index of the child after the position at depth d.
func (r *ResolvedPos) IndexAfter(d int) int {
	d = r.depth(d)
	if d == r.Depth() && r.TextOffset() == 0 {
		return r.path[d].index
	}
	return r.path[d].index + 1
}

// Start returns the offset at which the content of the ancestor at depth d starts.
func (r *ResolvedPos) Start(d int) int {
	d = r.depth(d)
	if d == 0 {
		return 0
	}
	return r.path[d-1].offset + 1
}

// End returns the offset at which the content of the ancestor at depth d ends.
func (r *ResolvedPos) End(d int) int {
	return r.Start(d) + r.Node(d).ContentSize()
}

// Before returns the offset directly before the ancestor at depth d (d >= 1).
func (r *ResolvedPos) Before(d int) int {
	d = r.depth(d)
	if d == 0 {
		return -1
	}
	if d == r.Depth()+1 {
		return r.pos
	}
	return r.path[d-1].offset
}

// After returns the offset directly after the ancestor at depth d (d >= 1).
func (r *ResolvedPos) After(d int) int {
	d = r.depth(d)
	if d == 0 {
		return -1
	}
	if d == r.Depth()+1 {
		return r.pos
	}
	return r.path[d-1].offset + r.path[d].node.size
}

// TextOffset returns how far into a text node the position lies, 0 on a boundary.
func (r *ResolvedPos) TextOffset() int {
	return r.pos - r.path[len(r.path)-1].offset
}

// NodeAfter returns the node directly after the position, or nil.
func (r *ResolvedPos) NodeAfter() *Node {
	parent := r.Parent()
	index := r.Index(r.Depth())
	if index == len(parent.content) {
		return nil
	}
	return parent.content[index]
}

// NodeBefore returns the node directly before the position, or nil.
func (r *ResolvedPos) NodeBefore() *Node {
	parent := r.Parent()
	index := r.Index(r.Depth())
	if r.TextOffset() > 0 {
		return parent.content[index]
	}
	if index == 0 {
		return nil
	}
	return parent.content[index-1]
}
