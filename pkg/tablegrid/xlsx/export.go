package xlsx

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/tablegrid-go/pkg/tablegrid/model"
	"github.com/ukaji3/tablegrid-go/pkg/tablegrid/tablemap"
)

// DefaultSheet is the sheet a new workbook starts with.
const DefaultSheet = "Sheet1"

// ExportOptions configures ExportTable.
type ExportOptions struct {
	// Sheet is the target sheet, created when missing. Empty means DefaultSheet.
	Sheet string
	// Origin is the top-left cell of the written grid. Empty means A1.
	Origin string
}

// ExportTable writes table to a sheet. Spanning cells become merged ranges,
// header cells are set bold and fixed column widths become sheet column
// widths. A caption goes in a merged row above the grid. The written range
// is recorded as the sheet's print area unless one already exists.
func ExportTable(f *excelize.File, table *model.Node, opts ExportOptions) error {
	if table == nil || table.Role() != model.RoleTable {
		return fmt.Errorf("export: expected a table node")
	}
	m, err := tablemap.Get(table)
	if err != nil {
		return err
	}

	sheet := opts.Sheet
	if sheet == "" {
		sheet = DefaultSheet
	}
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		if _, err := f.NewSheet(sheet); err != nil {
			return err
		}
	}
	origin := opts.Origin
	if origin == "" {
		origin = "A1"
	}
	col0, row0, err := excelize.CellNameToCoordinates(origin)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidRange, origin, err)
	}
	written := Area{R1: row0, C1: col0, R2: row0 + m.Height - 1, C2: col0 + max(m.Width, 1) - 1}

	if first := table.FirstChild(); first != nil && first.Role() == model.RoleCaption {
		if err := writeSpan(f, sheet, Area{R1: row0, C1: col0, R2: row0, C2: written.C2}, nodeText(first)); err != nil {
			return err
		}
		row0++
		written.R2++
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	seen := make(map[int]bool)
	for _, pos := range m.Map {
		if pos == 0 || seen[pos] {
			continue
		}
		seen[pos] = true
		rect, err := m.FindCell(pos)
		if err != nil {
			return err
		}
		cell := table.NodeAt(pos)
		area := Area{
			R1: row0 + rect.Top,
			C1: col0 + rect.Left,
			R2: row0 + rect.Bottom - 1,
			C2: col0 + rect.Right - 1,
		}
		if err := writeSpan(f, sheet, area, nodeText(cell)); err != nil {
			return err
		}
		if cell.Role() == model.RoleHeaderCell {
			start, _ := excelize.CoordinatesToCellName(area.C1, area.R1)
			end, _ := excelize.CoordinatesToCellName(area.C2, area.R2)
			if err := f.SetCellStyle(sheet, start, end, bold); err != nil {
				return err
			}
		}
	}

	for col, px := range columnWidths(m, table) {
		if px <= 0 {
			continue
		}
		name, err := excelize.ColumnNumberToName(col0 + col)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, name, name, PixelsToColWidth(px)); err != nil {
			return err
		}
	}

	if len(PrintAreas(f)[sheet]) == 0 && m.Height > 0 {
		start, _ := excelize.CoordinatesToCellName(written.C1, written.R1, true)
		end, _ := excelize.CoordinatesToCellName(written.C2, written.R2, true)
		err := f.SetDefinedName(&excelize.DefinedName{
			Name:     "_xlnm.Print_Area",
			RefersTo: fmt.Sprintf("'%s'!%s:%s", sheet, start, end),
			Scope:    sheet,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// ExportFile writes table to a new workbook saved at path.
func ExportFile(path string, table *model.Node, opts ExportOptions) error {
	f := excelize.NewFile()
	defer f.Close()

	if opts.Sheet != "" && opts.Sheet != DefaultSheet {
		if err := f.SetSheetName(DefaultSheet, opts.Sheet); err != nil {
			return err
		}
	}
	if err := ExportTable(f, table, opts); err != nil {
		return err
	}
	return f.SaveAs(path)
}

// writeSpan sets the value of area's top-left cell and merges area when it
// covers more than one cell.
func writeSpan(f *excelize.File, sheet string, area Area, text string) error {
	start, err := excelize.CoordinatesToCellName(area.C1, area.R1)
	if err != nil {
		return err
	}
	if text != "" {
		if err := f.SetCellValue(sheet, start, parseValue(text)); err != nil {
			return err
		}
	}
	if area.Rows() == 1 && area.Cols() == 1 {
		return nil
	}
	end, err := excelize.CoordinatesToCellName(area.C2, area.R2)
	if err != nil {
		return err
	}
	return f.MergeCell(sheet, start, end)
}

// columnWidths returns the pixel width of each grid column, taken from the
// first cell with a fixed width there, 0 when none has one.
func columnWidths(m *tablemap.TableMap, table *model.Node) []int {
	widths := make([]int, m.Width)
	for col := range m.Width {
		for row := range m.Height {
			pos := m.Map[row*m.Width+col]
			if pos == 0 {
				continue
			}
			rect, err := m.FindCell(pos)
			if err != nil {
				continue
			}
			cw := table.NodeAt(pos).Attrs().Colwidth
			if idx := col - rect.Left; idx < len(cw) && cw[idx] > 0 {
				widths[col] = cw[idx]
				break
			}
		}
	}
	return widths
}

// nodeText joins the text of each child block with newlines.
func nodeText(n *model.Node) string {
	parts := make([]string, 0, n.ChildCount())
	for _, c := range n.Content() {
		parts = append(parts, c.TextContent())
	}
	return strings.Join(parts, "\n")
}

// parseValue converts a string to an appropriate cell value type.
func parseValue(s string) any {
	if s == "" {
		return s
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
