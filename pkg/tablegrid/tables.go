package tablegrid

import (
	"github.com/ukaji3/tablegrid-go/pkg/tablegrid/commands"
	"github.com/ukaji3/tablegrid-go/pkg/tablegrid/model"
	"github.com/ukaji3/tablegrid-go/pkg/tablegrid/normalize"
	"github.com/ukaji3/tablegrid-go/pkg/tablegrid/output"
	"github.com/ukaji3/tablegrid-go/pkg/tablegrid/selection"
)

// TableRef is a table found in a document.
type TableRef struct {
	// Pos is the document offset of the table node.
	Pos  int
	Node *model.Node
}

// Tables returns the tables of doc in document order. Tables nested in
// cells are included after the table holding them.
func Tables(doc *model.Node) []TableRef {
	var tables []TableRef
	doc.Descendants(func(n *model.Node, pos int) bool {
		if n.Role() == model.RoleTable {
			tables = append(tables, TableRef{Pos: pos, Node: n})
		}
		return !n.IsTextblock()
	})
	return tables
}

// Report describes the grids of every table in a document.
type Report struct {
	Tables []output.TableView `json:"tables"`
}

// Inspect computes the grid of every table in doc.
func Inspect(doc *model.Node) (Report, error) {
	report := Report{Tables: []output.TableView{}}
	for _, t := range Tables(doc) {
		view, err := output.NewTableView(t.Pos+1, t.Node)
		if err != nil {
			return Report{}, err
		}
		report.Tables = append(report.Tables, view)
	}
	return report, nil
}

// Fix normalizes every table in doc and reports whether anything changed.
func Fix(doc *model.Node, opts Options) (*model.Node, bool, error) {
	tr, changed, err := normalize.FixTables(doc, opts.NormalizeOptions())
	if err != nil {
		return nil, false, err
	}
	return tr.Doc(), changed, nil
}

// Apply runs the structural command called name on doc. A negative head
// places a text cursor at anchor; otherwise the cells nearest to anchor
// and head span a cell selection.
func Apply(doc *model.Node, name string, anchor, head int, opts Options) (commands.State, error) {
	cmd, err := commands.Lookup(name, opts.CommandOptions())
	if err != nil {
		return commands.State{}, err
	}
	state := commands.State{Doc: doc}
	if head < 0 {
		state.Selection = selection.Cursor(anchor)
	} else {
		sel, err := selection.Create(doc, anchor, head)
		if err != nil {
			return commands.State{}, err
		}
		state.Selection = sel
	}
	return commands.Run(cmd, state)
}
