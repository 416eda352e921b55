// Package transform records ordered edits against an immutable document and
// tracks how each edit shifts the offsets that later edits refer to.
package transform

import (
	"fmt"

	"github.com/ukaji3/tablegrid-go/pkg/tablegrid/model"
)

// Step is a single document edit.
type Step interface {
	// Apply returns the document with the step applied.
	Apply(doc *model.Node) (*model.Node, error)
	// StepMap describes how the step moves offsets.
	StepMap() StepMap
	String() string
}

// ReplaceStep replaces the range From..To with Nodes.
type ReplaceStep struct {
	From  int
	To    int
	Nodes []*model.Node
}

// Apply implements Step.
func (s ReplaceStep) Apply(doc *model.Node) (*model.Node, error) {
	return doc.Replace(s.From, s.To, s.Nodes)
}

// StepMap implements Step.
func (s ReplaceStep) StepMap() StepMap {
	size := 0
	for _, n := range s.Nodes {
		size += n.NodeSize()
	}
	return StepMap{Start: s.From, OldSize: s.To - s.From, NewSize: size}
}

func (s ReplaceStep) String() string {
	return fmt.Sprintf("replace %d..%d with %d node(s)", s.From, s.To, len(s.Nodes))
}

// AttrStep changes the role and attributes of the node at Pos.
type AttrStep struct {
	Pos   int
	Role  model.Role
	Attrs model.Attrs
}

// Apply implements Step.
func (s AttrStep) Apply(doc *model.Node) (*model.Node, error) {
	return doc.SetMarkup(s.Pos, s.Role, s.Attrs)
}

// StepMap implements Step. Markup changes keep every offset.
func (s AttrStep) StepMap() StepMap { return StepMap{} }

func (s AttrStep) String() string {
	return fmt.Sprintf("set %s %s at %d", s.Role, s.Attrs, s.Pos)
}

// StepMap maps offsets across one replaced range.
type StepMap struct {
	Start   int
	OldSize int
	NewSize int
}

// Map maps pos through the step. assoc decides which side of an insertion
// or replaced range a position on its boundary sticks to.
func (m StepMap) Map(pos, assoc int) int {
	if m.OldSize == 0 && m.NewSize == 0 {
		return pos
	}
	end := m.Start + m.OldSize
	if pos < m.Start {
		return pos
	}
	if pos <= end {
		side := assoc
		if m.OldSize != 0 {
			switch pos {
			case m.Start:
				side = -1
			case end:
				side = 1
			}
		}
		if side < 0 {
			return m.Start
		}
		return m.Start + m.NewSize
	}
	return pos + m.NewSize - m.OldSize
}
