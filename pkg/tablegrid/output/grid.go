package output

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/ukaji3/tablegrid-go/pkg/tablegrid/model"
	"github.com/ukaji3/tablegrid-go/pkg/tablegrid/tablemap"
)

const maxLabelLen = 20

// Slot labels for grid slots that do not start a cell.
const (
	LabelLeft    = "<"
	LabelAbove   = "^"
	LabelMissing = "?"
	LabelEmpty   = "(empty)"
)

// TableView is the serializable picture of one table's grid.
type TableView struct {
	// Start is the document offset of the table's content.
	Start int `json:"start"`
	// Width is the number of columns.
	Width int `json:"width"`
	// Height is the number of rows.
	Height int `json:"height"`
	// Sections holds the role of each section, in order.
	Sections []string `json:"sections"`
	// SectionRows holds the row count of each section.
	SectionRows []int `json:"section_rows"`
	// Slots holds one label per grid slot, by row.
	Slots [][]string `json:"slots"`
	// Problems lists the structural anomalies of the table.
	Problems []tablemap.Problem `json:"problems,omitempty"`
}

// NewTableView describes table, whose content starts at document offset
// start.
//
// A slot where a cell starts holds the cell's text, prefixed with * for
// header cells and followed by its spans when larger than 1x1. Slots
// covered by a cell starting further left hold LabelLeft, slots covered
// from above hold LabelAbove and unclaimed slots hold LabelMissing.
func NewTableView(start int, table *model.Node) (TableView, error) {
	m, err := tablemap.Get(table)
	if err != nil {
		return TableView{}, err
	}
	view := TableView{
		Start:       start,
		Width:       m.Width,
		Height:      m.Height,
		SectionRows: m.SectionRows,
		Problems:    m.Problems,
		Slots:       make([][]string, m.Height),
	}
	for s := range len(m.SectionRows) {
		if info, ok := tablemap.SectionAt(table, s); ok {
			view.Sections = append(view.Sections, info.Node.Role().String())
		}
	}
	for row := range m.Height {
		labels := make([]string, m.Width)
		for col := range m.Width {
			pos := m.Map[row*m.Width+col]
			if pos == 0 {
				labels[col] = LabelMissing
				continue
			}
			rect, err := m.FindCell(pos)
			if err != nil {
				return TableView{}, err
			}
			switch {
			case rect.Top < row:
				labels[col] = LabelAbove
			case rect.Left < col:
				labels[col] = LabelLeft
			default:
				labels[col] = cellLabel(table.NodeAt(pos), rect)
			}
		}
		view.Slots[row] = labels
	}
	return view, nil
}

func cellLabel(cell *model.Node, rect tablemap.Rect) string {
	label := truncateStr(cell.TextContent())
	if label == "" {
		label = LabelEmpty
	}
	if cell.Role() == model.RoleHeaderCell {
		label = "*" + label
	}
	if rect.Width() > 1 || rect.Height() > 1 {
		label = fmt.Sprintf("%s (%dx%d)", label, rect.Width(), rect.Height())
	}
	return label
}

func truncateStr(s string) string {
	r := []rune(s)
	if len(r) <= maxLabelLen {
		return s
	}
	return string(r[:maxLabelLen]) + "..."
}

// RenderGrid writes view as a text table with one line per grid row,
// preceded by the section the row belongs to.
func RenderGrid(w io.Writer, view TableView) {
	headers := []string{"section", "row"}
	aligns := []int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT}
	for col := range view.Width {
		headers = append(headers, strconv.Itoa(col))
		aligns = append(aligns, tablewriter.ALIGN_LEFT)
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader(headers)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetColumnAlignment(aligns)

	row := 0
	for s, n := range view.SectionRows {
		section := ""
		if s < len(view.Sections) {
			section = view.Sections[s]
		}
		for i := range n {
			if row >= len(view.Slots) {
				break
			}
			line := []string{"", strconv.Itoa(row)}
			if i == 0 {
				line[0] = section
			}
			table.Append(append(line, view.Slots[row]...))
			row++
		}
	}
	table.Render()
}
