package xlsx

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/tablegrid-go/pkg/tablegrid/model"
)

// ErrSheetNotFound indicates the requested sheet does not exist.
var ErrSheetNotFound = errors.New("sheet not found")

// ImportOptions configures ImportTable.
type ImportOptions struct {
	// Sheet is the sheet to read. Empty means the first sheet.
	Sheet string
	// Range limits the import to a range like A1:D10. Empty means the
	// sheet's first print area, or else the bounds of its data.
	Range string
	// HeaderRows is the number of leading rows placed in a head section.
	HeaderRows int
	// HeaderCols is the number of leading columns made of header cells.
	HeaderCols int
	// Widths records column widths, in pixels, as colwidth attributes.
	Widths bool
}

// span is a merged range clipped to the imported area, with its value.
type span struct {
	Area
	text string
}

type coord struct{ col, row int }

// ImportTable reads a sheet region into a table node. Merged ranges become
// spanning cells; a merged range crossing the end of the head section is
// split there.
func ImportTable(f *excelize.File, opts ImportOptions) (*model.Node, error) {
	sheet := opts.Sheet
	if sheet == "" {
		list := f.GetSheetList()
		if len(list) == 0 {
			return nil, fmt.Errorf("%w: workbook has no sheets", ErrSheetNotFound)
		}
		sheet = list[0]
	}
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, sheet)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	area, err := importArea(f, sheet, opts.Range, rows)
	if err != nil {
		return nil, err
	}
	bodyStart := area.R1 + min(max(opts.HeaderRows, 0), area.Rows())

	covered, err := mergedSpans(f, sheet, area, bodyStart)
	if err != nil {
		return nil, err
	}

	var widths []int
	if opts.Widths {
		if widths, err = columnPixels(f, sheet, area); err != nil {
			return nil, err
		}
	}

	var head, body []*model.Node
	for row := area.R1; row <= area.R2; row++ {
		var cells []*model.Node
		for col := area.C1; col <= area.C2; col++ {
			s := span{Area: Area{R1: row, C1: col, R2: row, C2: col}, text: cellText(rows, col, row)}
			if merged, ok := covered[coord{col, row}]; ok {
				if merged.R1 != row || merged.C1 != col {
					continue
				}
				s = merged
			}
			attrs := model.Span(s.Cols(), s.Rows())
			if widths != nil {
				offset := col - area.C1
				attrs.Colwidth = append([]int(nil), widths[offset:offset+s.Cols()]...)
			}
			role := model.RoleCell
			if row < bodyStart || col < area.C1+opts.HeaderCols {
				role = model.RoleHeaderCell
			}
			cells = append(cells, model.New(role, attrs, paragraphs(s.text)...))
		}
		if row < bodyStart {
			head = append(head, model.Row(cells...))
		} else {
			body = append(body, model.Row(cells...))
		}
	}

	var sections []*model.Node
	if len(head) > 0 {
		sections = append(sections, model.Head(head...))
	}
	if len(body) > 0 {
		sections = append(sections, model.Body(body...))
	}
	return model.Table(sections...), nil
}

// ImportFile opens the workbook at path and imports one table from it.
func ImportFile(path string, opts ImportOptions) (*model.Node, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ImportTable(f, opts)
}

func importArea(f *excelize.File, sheet, ref string, rows [][]string) (Area, error) {
	if ref != "" {
		return ParseRange(ref)
	}
	if areas := PrintAreas(f)[sheet]; len(areas) > 0 {
		return areas[0], nil
	}
	area, ok := DataBounds(rows)
	if !ok {
		return Area{}, fmt.Errorf("%w: sheet %q", ErrEmptyArea, sheet)
	}
	return area, nil
}

// mergedSpans maps every slot of area covered by a merged range to that
// range, clipped to area and split at bodyStart.
func mergedSpans(f *excelize.File, sheet string, area Area, bodyStart int) (map[coord]span, error) {
	merges, err := f.GetMergeCells(sheet)
	if err != nil {
		return nil, err
	}
	covered := make(map[coord]span)
	add := func(s span) {
		for row := s.R1; row <= s.R2; row++ {
			for col := s.C1; col <= s.C2; col++ {
				covered[coord{col, row}] = s
			}
		}
	}
	for _, mc := range merges {
		full, err := ParseRange(mc.GetStartAxis() + ":" + mc.GetEndAxis())
		if err != nil {
			return nil, err
		}
		clipped := Area{
			R1: max(full.R1, area.R1),
			C1: max(full.C1, area.C1),
			R2: min(full.R2, area.R2),
			C2: min(full.C2, area.C2),
		}
		if clipped.R1 > clipped.R2 || clipped.C1 > clipped.C2 {
			continue
		}
		s := span{Area: clipped, text: mc.GetCellValue()}
		if s.R1 < bodyStart && s.R2 >= bodyStart {
			rest := span{Area: Area{R1: bodyStart, C1: s.C1, R2: s.R2, C2: s.C2}}
			s.R2 = bodyStart - 1
			add(rest)
		}
		add(s)
	}
	return covered, nil
}

// columnPixels returns the pixel width of every column of area.
func columnPixels(f *excelize.File, sheet string, area Area) ([]int, error) {
	widths := make([]int, 0, area.Cols())
	for col := area.C1; col <= area.C2; col++ {
		name, err := excelize.ColumnNumberToName(col)
		if err != nil {
			return nil, err
		}
		w, err := f.GetColWidth(sheet, name)
		if err != nil {
			return nil, err
		}
		widths = append(widths, ColWidthToPixels(w))
	}
	return widths, nil
}

// paragraphs turns cell text into one paragraph per line.
func paragraphs(text string) []*model.Node {
	lines := strings.Split(text, "\n")
	out := make([]*model.Node, len(lines))
	for i, line := range lines {
		out[i] = model.Paragraph(line)
	}
	return out
}
