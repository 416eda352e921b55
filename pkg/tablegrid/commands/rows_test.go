package commands

import (
	"errors"
	"testing"

	. "github.com/ukaji3/tablegrid-go/pkg/tablegrid/internal/fixture"
	"github.com/ukaji3/tablegrid-go/pkg/tablegrid/model"
	"github.com/ukaji3/tablegrid-go/pkg/tablegrid/tablemap"
)

func TestAddRowAfter(t *testing.T) {
	runCommandTests(t, AddRowAfter, []commandTest{
		{
			name: "adds a simple row",
			doc:  table(tbody(tr(CCursor(), C11()), tr(C11(), C11()))),
			want: table(tbody(tr(C11(), C11()), tr(CEmpty(), CEmpty()), tr(C11(), C11()))),
		},
		{
			name: "adds a row at the end",
			doc:  table(tbody(tr(C11(), C11()), tr(C11(), CCursor()))),
			want: table(tbody(tr(C11(), C11()), tr(C11(), C11()), tr(CEmpty(), CEmpty()))),
		},
		{
			name: "adds a row at the end of a section in the same section",
			doc:  table(tbody(tr(C11(), C11()), tr(C11(), CCursor())), tbody(tr(C11(), C11()))),
			want: table(
				tbody(tr(C11(), C11()), tr(C11(), C11()), tr(CEmpty(), CEmpty())),
				tbody(tr(C11(), C11())),
			),
		},
		{
			name: "increases rowspan when needed",
			doc:  table(tbody(tr(CCursor(), C(1, 2)), tr(C11()))),
			want: table(tbody(tr(C11(), C(1, 3)), tr(CEmpty()), tr(C11()))),
		},
		{
			name: "skips columns for colspan cells",
			doc:  table(tbody(tr(CCursor(), C(2, 2)), tr(C11()))),
			want: table(tbody(tr(C11(), C(2, 3)), tr(CEmpty()), tr(C11()))),
		},
		{
			name: "picks the row after a cell selection",
			doc:  table(tbody(tr(CHead(), C11(), C11()), tr(C11(), CAnchor(), C11()), tr(C(3, 1)))),
			want: table(tbody(
				tr(C11(), C11(), C11()),
				tr(C11(), C11(), C11()),
				tr(CEmpty(), CEmpty(), CEmpty()),
				tr(C(3, 1)),
			)),
		},
		{
			name: "preserves header columns",
			doc:  table(tbody(tr(C11(), HCursor()), tr(C11(), H11()))),
			want: table(tbody(tr(C11(), H11()), tr(CEmpty(), HEmpty()), tr(C11(), H11()))),
		},
		{
			name: "uses the next row as reference after a header row",
			doc:  table(tbody(tr(H11(), HCursor()), tr(C11(), H11()))),
			want: table(tbody(tr(H11(), H11()), tr(CEmpty(), HEmpty()), tr(C11(), H11()))),
		},
		{
			name: "creates plain cells without a reference row",
			doc:  table(tbody(tr(H11(), HCursor()))),
			want: table(tbody(tr(H11(), H11()), tr(CEmpty(), CEmpty()))),
		},
		{
			name: "adds the row to the head when the selection ends there",
			doc:  table(thead(tr(H11(), HCursor())), tbody(tr(C11(), C11()))),
			want: table(thead(tr(H11(), H11()), tr(CEmpty(), CEmpty())), tbody(tr(C11(), C11()))),
		},
	})
}

func TestAddRowBefore(t *testing.T) {
	runCommandTests(t, AddRowBefore, []commandTest{
		{
			name: "adds a simple row",
			doc:  table(tbody(tr(C11(), C11()), tr(CCursor(), C11()))),
			want: table(tbody(tr(C11(), C11()), tr(CEmpty(), CEmpty()), tr(C11(), C11()))),
		},
		{
			name: "adds a row at the start",
			doc:  table(tbody(tr(CCursor(), C11()), tr(C11(), C11()))),
			want: table(tbody(tr(CEmpty(), CEmpty()), tr(C11(), C11()), tr(C11(), C11()))),
		},
		{
			name: "picks the row before a cell selection",
			doc:  table(tbody(tr(C11(), C(2, 1)), tr(CAnchor(), C11(), C11()), tr(C11(), CHead(), C11()))),
			want: table(tbody(
				tr(C11(), C(2, 1)),
				tr(CEmpty(), CEmpty(), CEmpty()),
				tr(C11(), C11(), C11()),
				tr(C11(), C11(), C11()),
			)),
		},
		{
			name: "preserves header columns",
			doc:  table(tbody(tr(HCursor(), C11()), tr(H11(), C11()))),
			want: table(tbody(tr(HEmpty(), CEmpty()), tr(H11(), C11()), tr(H11(), C11()))),
		},
		{
			name: "adds the row at the top of the second section",
			doc:  table(tbody(tr(C11(), C11())), tbody(tr(CCursor(), C11()))),
			want: table(tbody(tr(C11(), C11())), tbody(tr(CEmpty(), CEmpty()), tr(C11(), C11()))),
		},
	})
}

func TestDeleteRow(t *testing.T) {
	runCommandTests(t, DeleteRow, []commandTest{
		{
			name: "deletes a simple row",
			doc:  table(tbody(tr(C11(), CEmpty()), tr(CCursor(), C11()), tr(C11(), CEmpty()))),
			want: table(tbody(tr(C11(), CEmpty()), tr(C11(), CEmpty()))),
		},
		{
			name: "deletes the first row",
			doc:  table(tbody(tr(C11(), CCursor()), tr(CEmpty(), C11()), tr(C11(), CEmpty()))),
			want: table(tbody(tr(CEmpty(), C11()), tr(C11(), CEmpty()))),
		},
		{
			name: "deletes the last row",
			doc:  table(tbody(tr(CEmpty(), C11()), tr(C11(), CEmpty()), tr(C11(), CCursor()))),
			want: table(tbody(tr(CEmpty(), C11()), tr(C11(), CEmpty()))),
		},
		{
			name: "shrinks rowspan cells",
			doc:  table(tbody(tr(C(1, 2), C11(), C(1, 3)), tr(CCursor()), tr(C11(), C11()))),
			want: table(tbody(tr(C11(), C11(), C(1, 2)), tr(C11(), C11()))),
		},
		{
			name: "moves cells that start in the deleted row",
			doc:  table(tbody(tr(C(1, 2), CCursor()), tr(CEmpty()))),
			want: table(tbody(tr(C11(), CEmpty()))),
		},
		{
			name: "deletes every row under a rowspan cell",
			doc: table(tbody(
				tr(Td(model.Span(1, 3), Tag(TagCursor, "")), C11()),
				tr(C11()),
				tr(C11()),
				tr(C11(), C11()),
			)),
			want: table(tbody(tr(C11(), C11()))),
		},
		{
			name: "skips columns when adjusting rowspan",
			doc:  table(tbody(tr(CCursor(), C(2, 2)), tr(C11()))),
			want: table(tbody(tr(C11(), C(2, 1)))),
		},
		{
			name: "deletes a cell selection",
			doc:  table(tbody(tr(CAnchor(), C11()), tr(C11(), CEmpty()))),
			want: table(tbody(tr(C11(), CEmpty()))),
		},
		{
			name: "deletes all rows in the cell selection",
			doc:  table(tbody(tr(C11(), CEmpty()), tr(CAnchor(), C11()), tr(C11(), CHead()), tr(CEmpty(), C11()))),
			want: table(tbody(tr(C11(), CEmpty()), tr(CEmpty(), C11()))),
		},
		{
			name: "deletes rows across sections",
			doc: table(
				caption(P("caption")),
				thead(tr(C(3, 1))),
				tbody(tr(CEmpty(), C11(), C11()), tr(C11(), CAnchor(), C11())),
				tbody(tr(C11(), CHead(), Td(model.DefaultAttrs(), P("para1"))), tr(Td(model.DefaultAttrs(), P("para2")), C11(), CEmpty())),
				tfoot(tr(C11(), C11(), C11())),
			),
			want: table(
				caption(P("caption")),
				thead(tr(C(3, 1))),
				tbody(tr(CEmpty(), C11(), C11())),
				tbody(tr(Td(model.DefaultAttrs(), P("para2")), C11(), CEmpty())),
				tfoot(tr(C11(), C11(), C11())),
			),
		},
		{
			name: "deletes a section when all its rows are deleted",
			doc: table(
				caption(P("caption")),
				thead(tr(C(3, 1))),
				tbody(tr(CAnchor(), C11(), C11()), tr(C11(), CHead(), C11())),
				tbody(tr(C11(), CEmpty(), Td(model.DefaultAttrs(), P("para1"))), tr(Td(model.DefaultAttrs(), P("para2")), C11(), CEmpty())),
				tfoot(tr(C11(), C11(), C11())),
			),
			want: table(
				caption(P("caption")),
				thead(tr(C(3, 1))),
				tbody(tr(C11(), CEmpty(), Td(model.DefaultAttrs(), P("para1"))), tr(Td(model.DefaultAttrs(), P("para2")), C11(), CEmpty())),
				tfoot(tr(C11(), C11(), C11())),
			),
		},
		{
			name: "deletes a row, a whole section and a row of another section",
			doc: table(
				caption(P("caption")),
				thead(tr(C(3, 1))),
				tbody(tr(C11(), C11(), Td(model.DefaultAttrs(), P("para1"))), tr(C11(), CAnchor(), C11())),
				tbody(tr(C11(), CEmpty(), Td(model.DefaultAttrs(), P("para1"))), tr(Td(model.DefaultAttrs(), P("para2")), C11(), CEmpty())),
				tfoot(tr(C11(), CHead(), C11()), tr(C11(), C(2, 1))),
			),
			want: table(
				caption(P("caption")),
				thead(tr(C(3, 1))),
				tbody(tr(C11(), C11(), Td(model.DefaultAttrs(), P("para1")))),
				tfoot(tr(C11(), C(2, 1))),
			),
		},
		{
			name: "deletes a row and every section up to the end of the table",
			doc: table(
				caption(P("caption")),
				thead(tr(C(3, 1))),
				tbody(tr(C11(), C11(), Td(model.DefaultAttrs(), P("para1"))), tr(C11(), CAnchor(), C11())),
				tbody(tr(C11(), CEmpty(), Td(model.DefaultAttrs(), P("para1"))), tr(Td(model.DefaultAttrs(), P("para2")), C11(), CEmpty())),
				tfoot(tr(C11(), C11(), C11()), tr(CHead(), C(2, 1))),
			),
			want: table(
				caption(P("caption")),
				thead(tr(C(3, 1))),
				tbody(tr(C11(), C11(), Td(model.DefaultAttrs(), P("para1")))),
			),
		},
		{
			name: "keeps an empty section below the selection",
			doc: table(
				tbody(tr(CAnchor(), C11()), tr(C11(), CHead())),
				tbody(),
				tbody(tr(C11(), CEmpty()), tr(CEmpty(), C11())),
			),
			want: table(
				tbody(),
				tbody(tr(C11(), CEmpty()), tr(CEmpty(), C11())),
			),
		},
		{
			name: "removes an empty section between deleted rows",
			doc: table(
				tbody(tr(CAnchor(), C11())),
				tbody(),
				tbody(tr(C11(), CHead())),
				tbody(tr(C11(), CEmpty())),
			),
			want: table(tbody(tr(C11(), CEmpty()))),
		},
		{
			name: "refuses to delete every row",
			doc:  table(tbody(tr(CAnchor(), C11()), tr(C11(), CHead()))),
			want: nil,
		},
	})
}

func TestAddRowToSectionBounds(t *testing.T) {
	d := doc(table(tbody(tr(C11(), C11())), tbody(tr(CCursor(), C11()))))
	state := stateFor(t, d)
	rect, err := SelectedRect(state)
	if err != nil {
		t.Fatalf("SelectedRect failed: %v", err)
	}
	if err := AddRowToSection(state.Tr(), rect, 0, 1); !errors.Is(err, tablemap.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for a row outside the section, got %v", err)
	}
	if err := AddRowToSection(state.Tr(), rect, 1, 0); err != nil {
		t.Errorf("Expected a row after the last row of a section to be accepted, got %v", err)
	}
}
