package commands

import (
	"testing"

	. "github.com/ukaji3/tablegrid-go/pkg/tablegrid/internal/fixture"
	"github.com/ukaji3/tablegrid-go/pkg/tablegrid/model"
	"github.com/ukaji3/tablegrid-go/pkg/tablegrid/selection"
)

func td(attrs model.Attrs, content ...*model.Node) *model.Node { return Td(attrs, content...) }

func TestMergeCells(t *testing.T) {
	runCommandTests(t, MergeCells, []commandTest{
		{
			name: "refuses a single selected cell",
			doc:  table(tbody(tr(CAnchor(), C11()))),
			want: nil,
		},
		{
			name: "refuses a selection cutting across spanning cells",
			doc:  table(tbody(tr(CAnchor(), C(2, 1)), tr(C11(), CHead(), C11()))),
			want: nil,
		},
		{
			name: "refuses a selection over two sections",
			doc:  table(thead(tr(CAnchor(), C11())), tbody(tr(CHead(), C11()))),
			want: nil,
		},
		{
			name: "refuses a text cursor",
			doc:  table(tbody(tr(CCursor(), C11()))),
			want: nil,
		},
		{
			name: "merges two cells in a row",
			doc:  table(tbody(tr(CAnchor(), CHead(), C11()))),
			want: table(tbody(tr(td(model.Span(2, 1), P("x"), P("x")), C11()))),
		},
		{
			name: "merges two cells in a column",
			doc:  table(tbody(tr(CAnchor(), C11()), tr(CHead(), C11()))),
			want: table(tbody(tr(td(model.Span(1, 2), P("x"), P("x")), C11()), tr(C11()))),
		},
		{
			name: "merges a rectangle of cells",
			doc: table(tbody(
				tr(C11(), CAnchor(), CEmpty(), CEmpty(), C11()),
				tr(C11(), CEmpty(), CEmpty(), CHead(), C11()),
			)),
			want: table(tbody(
				tr(C11(), td(model.Span(3, 2), P("x"), P("x")), C11()),
				tr(C11(), C11()),
			)),
		},
		{
			name: "merges already spanning cells",
			doc: table(tbody(
				tr(C11(), CAnchor(), C(1, 2), CEmpty(), C11()),
				tr(C11(), CEmpty(), CHead(), C11()),
			)),
			want: table(tbody(
				tr(C11(), td(model.Span(3, 2), P("x"), P("x"), P("x")), C11()),
				tr(C11(), C11()),
			)),
		},
		{
			name: "keeps the column width of the first column",
			doc:  table(tbody(tr(td(model.Span(1, 1, 100), Tag(TagAnchor, "x")), C11()), tr(C11(), CHead()))),
			want: table(tbody(
				tr(td(model.Span(2, 2, 100, 0), P("x"), P("x"), P("x"), P("x"))),
				tr(),
			)),
		},
		{
			name: "replaces an empty first cell with the merged content",
			doc:  table(tbody(tr(EAnchor(), CHead()))),
			want: table(tbody(tr(td(model.Span(2, 1), P("x"))))),
		},
	})
}

func TestMergeCellsSelectsMergedCell(t *testing.T) {
	state := stateFor(t, doc(table(tbody(tr(C11(), CAnchor(), CHead())))))
	next, err := Run(MergeCells, state)
	if err != nil {
		t.Fatalf("MergeCells failed: %v", err)
	}
	cs, ok := next.Selection.(*selection.CellSelection)
	if !ok {
		t.Fatalf("Expected a cell selection, got %T", next.Selection)
	}
	if cs.Anchor() != 8 || cs.Head() != 8 {
		t.Errorf("Expected the merged cell at 8, got %d-%d", cs.Anchor(), cs.Head())
	}
}

func TestSplitCell(t *testing.T) {
	runCommandTests(t, SplitCell, []commandTest{
		{
			name: "refuses a cursor in a 1x1 cell",
			doc:  table(tbody(tr(CCursor(), C11()))),
			want: nil,
		},
		{
			name: "splits a col-spanning cell with a cursor",
			doc:  table(tbody(tr(td(model.Span(2, 1), Tag(TagCursor, "foo")), C11()))),
			want: table(tbody(tr(td(model.DefaultAttrs(), P("foo")), CEmpty(), C11()))),
		},
		{
			name: "splits a col-spanning header cell with a cursor",
			doc:  table(tbody(tr(Th(model.Span(2, 1), Tag(TagCursor, "foo"))))),
			want: table(tbody(tr(Th(model.DefaultAttrs(), P("foo")), HEmpty()))),
		},
		{
			name: "refuses a multi-cell selection",
			doc:  table(tbody(tr(CAnchor(), CHead(), C11()))),
			want: nil,
		},
		{
			name: "refuses a selected cell that spans nothing",
			doc:  table(tbody(tr(CAnchor(), C11()))),
			want: nil,
		},
		{
			name: "splits a col-spanning cell",
			doc:  table(tbody(tr(td(model.Span(2, 1), Tag(TagAnchor, "foo")), C11()))),
			want: table(tbody(tr(td(model.DefaultAttrs(), P("foo")), CEmpty(), C11()))),
		},
		{
			name: "splits a row-spanning cell",
			doc:  table(tbody(tr(C11(), td(model.Span(1, 2), Tag(TagAnchor, "foo")), C11()), tr(C11(), C11()))),
			want: table(tbody(tr(C11(), td(model.DefaultAttrs(), P("foo")), C11()), tr(C11(), CEmpty(), C11()))),
		},
		{
			name: "splits a rectangular cell",
			doc: table(tbody(
				tr(C(4, 1)),
				tr(C11(), td(model.Span(2, 2), Tag(TagAnchor, "foo")), C11()),
				tr(C11(), C11()),
			)),
			want: table(tbody(
				tr(C(4, 1)),
				tr(C11(), td(model.DefaultAttrs(), P("foo")), CEmpty(), C11()),
				tr(C11(), CEmpty(), CEmpty(), C11()),
			)),
		},
		{
			name: "distributes column widths",
			doc:  table(tbody(tr(td(model.Span(3, 1, 100, 0, 200), Tag(TagAnchor, "a"))))),
			want: table(tbody(tr(
				td(model.Span(1, 1, 100), P("a")),
				CEmpty(),
				td(model.Span(1, 1, 200), P("")),
			))),
		},
	})
}

func TestSplitCellWithType(t *testing.T) {
	headerOnTop := func(_ *model.Node, row, _ int) model.Role {
		if row == 0 {
			return model.RoleHeaderCell
		}
		return model.RoleCell
	}
	runCommandTests(t, SplitCellWithType(headerOnTop), []commandTest{
		{
			name: "splits a row-spanning cell into a header and a plain cell",
			doc:  table(tbody(tr(C11(), td(model.Span(1, 2), Tag(TagAnchor, "foo")), C11()), tr(C11(), C11()))),
			want: table(tbody(tr(C11(), Th(model.DefaultAttrs(), P("foo")), C11()), tr(C11(), CEmpty(), C11()))),
		},
	})
}

func TestMergeThenSplit(t *testing.T) {
	build := func() *model.Node {
		return doc(table(tbody(tr(CAnchor(), CEmpty()), tr(CEmpty(), CHead()))))
	}
	state := stateFor(t, build())
	merged, err := Run(MergeCells, state)
	if err != nil {
		t.Fatalf("MergeCells failed: %v", err)
	}
	split, err := Run(SplitCell, merged)
	if err != nil {
		t.Fatalf("SplitCell failed: %v", err)
	}
	want := doc(table(tbody(
		tr(td(model.DefaultAttrs(), P("x"), P("x")), CEmpty()),
		tr(CEmpty(), CEmpty()),
	)))
	if !split.Doc.Equal(want) {
		t.Errorf("Expected %s, got %s", want, split.Doc)
	}
	cs, ok := split.Selection.(*selection.CellSelection)
	if !ok {
		t.Fatalf("Expected a cell selection, got %T", split.Selection)
	}
	if len(cs.Cells()) != 4 {
		t.Errorf("Expected the split cells to stay selected, got %d cells", len(cs.Cells()))
	}
}
