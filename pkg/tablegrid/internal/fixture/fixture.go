// Package fixture builds small tables for tests.
//
// Cells built with the tagging helpers remember a named offset (anchor,
// head, cursor) at the end of their text; Tags recovers the absolute
// offsets once the cells are placed in a document.
package fixture

import (
	"sync"
	"unicode/utf8"

	"github.com/ukaji3/tablegrid-go/pkg/tablegrid/model"
)

// Tag names used by the helpers.
const (
	TagAnchor = "anchor"
	TagHead   = "head"
	TagCursor = "cursor"
)

// tagged maps a tagged paragraph node to its tag name.
var tagged sync.Map

// P builds a paragraph.
func P(text string) *model.Node { return model.Paragraph(text) }

// Tag builds a paragraph holding text whose end is tagged name.
func Tag(name, text string) *model.Node {
	p := model.Paragraph(text)
	tagged.Store(p, name)
	return p
}

// Td builds a data cell.
func Td(attrs model.Attrs, content ...*model.Node) *model.Node { return model.Cell(attrs, content...) }

// Th builds a header cell.
func Th(attrs model.Attrs, content ...*model.Node) *model.Node {
	return model.HeaderCell(attrs, content...)
}

// C11 is a 1x1 data cell holding "x".
func C11() *model.Node { return C(1, 1) }

// H11 is a 1x1 header cell holding "x".
func H11() *model.Node { return H(1, 1) }

// CEmpty is a 1x1 empty data cell.
func CEmpty() *model.Node { return Td(model.DefaultAttrs(), P("")) }

// HEmpty is a 1x1 empty header cell.
func HEmpty() *model.Node { return Th(model.DefaultAttrs(), P("")) }

// C builds a data cell holding "x" with the given spans.
func C(colspan, rowspan int) *model.Node { return Td(model.Span(colspan, rowspan), P("x")) }

// H builds a header cell holding "x" with the given spans.
func H(colspan, rowspan int) *model.Node { return Th(model.Span(colspan, rowspan), P("x")) }

// CW builds a data cell holding "x" with one column per width.
func CW(widths ...int) *model.Node {
	return Td(model.Span(len(widths), 1, widths...), P("x"))
}

// CAnchor, CHead and CCursor are 1x1 data cells holding "x" with the tag
// after the text.
func CAnchor() *model.Node { return Td(model.DefaultAttrs(), Tag(TagAnchor, "x")) }

// CHead is a tagged cell; see CAnchor.
func CHead() *model.Node { return Td(model.DefaultAttrs(), Tag(TagHead, "x")) }

// CCursor is a tagged cell; see CAnchor.
func CCursor() *model.Node { return Td(model.DefaultAttrs(), Tag(TagCursor, "x")) }

// HCursor is a tagged header cell.
func HCursor() *model.Node { return Th(model.DefaultAttrs(), Tag(TagCursor, "x")) }

// EAnchor, EHead and ECursor are empty 1x1 data cells with the tag inside.
func EAnchor() *model.Node { return Td(model.DefaultAttrs(), Tag(TagAnchor, "")) }

// EHead is a tagged empty cell; see EAnchor.
func EHead() *model.Node { return Td(model.DefaultAttrs(), Tag(TagHead, "")) }

// ECursor is a tagged empty cell; see EAnchor.
func ECursor() *model.Node { return Td(model.DefaultAttrs(), Tag(TagCursor, "")) }

// Tags returns the absolute offset of every tag found in doc.
func Tags(doc *model.Node) map[string]int {
	tags := make(map[string]int)
	doc.Descendants(func(n *model.Node, pos int) bool {
		if name, ok := tagged.Load(n); ok {
			tags[name.(string)] = pos + 1 + utf8.RuneCountInString(n.TextContent())
		}
		return true
	})
	return tags
}
