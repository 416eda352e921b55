// Package selection implements text cursors and rectangular cell
// selections over a document.
package selection

import (
	"github.com/ukaji3/tablegrid-go/pkg/tablegrid/model"
	"github.com/ukaji3/tablegrid-go/pkg/tablegrid/transform"
)

// Selection is a selected range of a document.
type Selection interface {
	// Anchor is the side that stays put when the selection is extended.
	Anchor() int
	// Head is the side that moves.
	Head() int
	// Map returns the selection moved through mapping into doc.
	Map(doc *model.Node, mapping transform.Mapping) Selection
}

// TextSelection selects the content between two offsets.
type TextSelection struct {
	anchor int
	head   int
}

// Text returns a text selection from anchor to head.
func Text(anchor, head int) TextSelection {
	return TextSelection{anchor: anchor, head: head}
}

// Cursor returns a collapsed text selection at pos.
func Cursor(pos int) TextSelection {
	return TextSelection{anchor: pos, head: pos}
}

// Anchor implements Selection.
func (s TextSelection) Anchor() int { return s.anchor }

// Head implements Selection.
func (s TextSelection) Head() int { return s.head }

// Empty reports whether the selection is collapsed.
func (s TextSelection) Empty() bool { return s.anchor == s.head }

// Map implements Selection.
func (s TextSelection) Map(doc *model.Node, mapping transform.Mapping) Selection {
	return clampedText(doc, mapping.Map(s.anchor), mapping.Map(s.head))
}

func clampedText(doc *model.Node, anchor, head int) TextSelection {
	clamp := func(pos int) int { return min(max(pos, 0), doc.ContentSize()) }
	return Text(clamp(anchor), clamp(head))
}
