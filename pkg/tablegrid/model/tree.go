package model

import "fmt"

// Replace returns a copy of n in which the range from..to (offsets relative
// to n's content) is replaced by nodes. Both ends must sit on child
// boundaries of the same parent.
func (n *Node) Replace(from, to int, nodes []*Node) (*Node, error) {
	if from > to {
		return nil, fmt.Errorf("%w: %d > %d", ErrInvalidPosition, from, to)
	}
	rFrom, err := n.Resolve(from)
	if err != nil {
		return nil, err
	}
	rTo, err := n.Resolve(to)
	if err != nil {
		return nil, err
	}
	if rFrom.TextOffset() != 0 || rTo.TextOffset() != 0 {
		return nil, fmt.Errorf("%w: %d..%d splits a text node", ErrInvalidRange, from, to)
	}
	depth := rFrom.Depth()
	if rTo.Depth() != depth || rFrom.Start(depth) != rTo.Start(depth) {
		return nil, fmt.Errorf("%w: %d..%d", ErrInvalidRange, from, to)
	}
	for _, c := range nodes {
		if c == nil {
			return nil, fmt.Errorf("%w: nil node", ErrInvalidNode)
		}
		if c.role == RoleDoc {
			return nil, fmt.Errorf("%w: cannot insert a doc node", ErrInvalidNode)
		}
	}
	parent := rFrom.Parent()
	start, end := rFrom.Index(depth), rTo.Index(depth)
	children := make([]*Node, 0, len(parent.content)-(end-start)+len(nodes))
	children = append(children, parent.content[:start]...)
	children = append(children, nodes...)
	children = append(children, parent.content[end:]...)
	return rebuild(rFrom, depth, parent.Copy(children...)), nil
}

// SetMarkup returns a copy of n in which the node starting at pos has the
// given role and attributes. Its content is kept.
func (n *Node) SetMarkup(pos int, role Role, attrs Attrs) (*Node, error) {
	target := n.NodeAt(pos)
	if target == nil {
		return nil, fmt.Errorf("%w: no node at %d", ErrInvalidPosition, pos)
	}
	if target.role == RoleText || role == RoleText {
		return nil, fmt.Errorf("%w: cannot change markup of text", ErrInvalidNode)
	}
	r, err := n.Resolve(pos)
	if err != nil {
		return nil, err
	}
	depth := r.Depth()
	parent := r.Parent()
	children := parent.Content()
	children[r.Index(depth)] = target.WithMarkup(role, attrs)
	return rebuild(r, depth, parent.Copy(children...)), nil
}

// rebuild replaces the ancestor at depth with node and copies every
// ancestor above it.
func rebuild(r *ResolvedPos, depth int, node *Node) *Node {
	for d := depth - 1; d >= 0; d-- {
		parent := r.Node(d)
		children := parent.Content()
		children[r.Index(d)] = node
		node = parent.Copy(children...)
	}
	return node
}
