package transform

import (
	"github.com/ukaji3/tablegrid-go/pkg/tablegrid/model"
)

// Mapping is the composition of step maps, in application order.
type Mapping struct {
	maps []StepMap
}

// Map maps pos through every step, sticking to content inserted at pos.
func (m Mapping) Map(pos int) int { return m.MapAssoc(pos, 1) }

// MapAssoc maps pos through every step with the given association.
func (m Mapping) MapAssoc(pos, assoc int) int {
	for _, sm := range m.maps {
		pos = sm.Map(pos, assoc)
	}
	return pos
}

// Slice returns the mapping through the steps from index from onward.
func (m Mapping) Slice(from int) Mapping {
	if from >= len(m.maps) {
		return Mapping{}
	}
	return Mapping{maps: m.maps[from:len(m.maps):len(m.maps)]}
}

// Len returns the number of step maps.
func (m Mapping) Len() int { return len(m.maps) }

// Transform accumulates steps against a document.
type Transform struct {
	before *model.Node
	docs   []*model.Node
	steps  []Step
	doc    *model.Node
	maps   []StepMap
}

// New starts a transform at doc.
func New(doc *model.Node) *Transform {
	return &Transform{before: doc, doc: doc}
}

// Doc returns the current document.
func (tr *Transform) Doc() *model.Node { return tr.doc }

// Before returns the starting document.
func (tr *Transform) Before() *model.Node { return tr.before }

// Steps returns the applied steps.
func (tr *Transform) Steps() []Step { return append([]Step(nil), tr.steps...) }

// Docs returns the document before each step.
func (tr *Transform) Docs() []*model.Node { return append([]*model.Node(nil), tr.docs...) }

// StepCount returns the number of applied steps.
func (tr *Transform) StepCount() int { return len(tr.steps) }

// DocChanged reports whether any step was applied.
func (tr *Transform) DocChanged() bool { return len(tr.steps) > 0 }

// Mapping returns the mapping through every applied step.
func (tr *Transform) Mapping() Mapping {
	return Mapping{maps: tr.maps[:len(tr.maps):len(tr.maps)]}
}

// Step applies s. A failing step leaves the transform unchanged.
func (tr *Transform) Step(s Step) error {
	doc, err := s.Apply(tr.doc)
	if err != nil {
		return err
	}
	tr.docs = append(tr.docs, tr.doc)
	tr.steps = append(tr.steps, s)
	tr.maps = append(tr.maps, s.StepMap())
	tr.doc = doc
	return nil
}

// Insert inserts nodes at pos.
func (tr *Transform) Insert(pos int, nodes ...*model.Node) error {
	return tr.ReplaceWith(pos, pos, nodes...)
}

// Delete removes the range from..to.
func (tr *Transform) Delete(from, to int) error {
	return tr.ReplaceWith(from, to)
}

// ReplaceWith replaces the range from..to with nodes.
func (tr *Transform) ReplaceWith(from, to int, nodes ...*model.Node) error {
	if from == to && len(nodes) == 0 {
		return nil
	}
	return tr.Step(ReplaceStep{From: from, To: to, Nodes: nodes})
}

// SetNodeMarkup changes the role and attributes of the node at pos.
func (tr *Transform) SetNodeMarkup(pos int, role model.Role, attrs model.Attrs) error {
	return tr.Step(AttrStep{Pos: pos, Role: role, Attrs: attrs.Clone()})
}

// SetNodeAttrs changes the attributes of the node at pos, keeping its role.
func (tr *Transform) SetNodeAttrs(pos int, attrs model.Attrs) error {
	n := tr.doc.NodeAt(pos)
	if n == nil {
		return model.ErrInvalidPosition
	}
	return tr.SetNodeMarkup(pos, n.Role(), attrs)
}
