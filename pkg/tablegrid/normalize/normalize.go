// Package normalize repairs tables whose grid has problems.
//
// Repairs run in passes. Each pass recomputes the grid from the current
// document, rewrites the attributes of offending cells (overlong rowspans,
// colliding spans, disagreeing column widths) and, once no attribute needs
// changing, fills the slots rows leave empty. Passes repeat until the grid
// is clean, so normalizing a normalized table changes nothing.
package normalize

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/ukaji3/tablegrid-go/pkg/tablegrid/model"
	"github.com/ukaji3/tablegrid-go/pkg/tablegrid/tablemap"
	"github.com/ukaji3/tablegrid-go/pkg/tablegrid/transform"
)

// FixTables normalizes every table in doc. It returns the transform holding
// the repairs and whether anything was changed.
func FixTables(doc *model.Node, opts Options) (*transform.Transform, bool, error) {
	opts = opts.withDefaults()
	tr := transform.New(doc)

	var tables []int
	doc.Descendants(func(n *model.Node, pos int) bool {
		if n.Role() == model.RoleTable {
			tables = append(tables, pos)
		}
		return !n.IsTextblock()
	})

	for _, pos := range tables {
		if err := FixTable(tr, tr.Mapping().Map(pos), opts); err != nil {
			return nil, false, err
		}
	}
	return tr, tr.DocChanged(), nil
}

// FixTable appends to tr the repairs for the table at tablePos, an offset
// in tr's current document.
func FixTable(tr *transform.Transform, tablePos int, opts Options) error {
	opts = opts.withDefaults()
	log := opts.Logger.WithField("table", tablePos)

	for pass := 0; pass < opts.MaxPasses; pass++ {
		table := tr.Doc().NodeAt(tablePos)
		if table == nil || table.Role() != model.RoleTable {
			return fmt.Errorf("%w: at %d", tablemap.ErrNotTable, tablePos)
		}
		m, err := tablemap.Get(table)
		if err != nil {
			return err
		}
		if len(m.Problems) == 0 {
			return nil
		}
		for _, p := range m.Problems {
			log.WithFields(logrus.Fields{
				"pass":    pass,
				"problem": string(p.Type),
				"pos":     p.Pos,
				"row":     p.Row,
				"n":       p.N,
			}).Debug("Table problem found.")
		}

		changed, err := fixAttrs(tr, table, tablePos+1, m)
		if err != nil {
			return err
		}
		if changed {
			continue
		}
		before := tr.StepCount()
		if err := addMissing(tr, table, tablePos+1, m); err != nil {
			return err
		}
		if tr.StepCount() == before {
			break
		}
	}

	log.Warn("Table still has problems after normalization.")
	return nil
}

// fixAttrs rewrites the attributes of cells named by overlong rowspan,
// collision and colwidth mismatch problems.
func fixAttrs(tr *transform.Transform, table *model.Node, tableStart int, m *tablemap.TableMap) (bool, error) {
	updated := make(map[int]model.Attrs)
	var order []int
	attrsOf := func(pos int) (model.Attrs, bool) {
		if a, ok := updated[pos]; ok {
			return a, true
		}
		cell := table.NodeAt(pos)
		if cell == nil || !cell.Role().IsCell() {
			return model.Attrs{}, false
		}
		order = append(order, pos)
		return cell.Attrs(), true
	}

	// A cell can collide in several slots; the earliest column wins.
	collided := make(map[int]int)
	var collisions []int

	for _, p := range m.Problems {
		switch p.Type {
		case tablemap.ProblemOverlongRowspan:
			a, ok := attrsOf(p.Pos)
			if !ok {
				continue
			}
			a.Rowspan = max(a.Rowspan-p.N, 1)
			updated[p.Pos] = a
		case tablemap.ProblemColwidthMismatch:
			a, ok := attrsOf(p.Pos)
			if !ok {
				continue
			}
			a.Colwidth = append([]int(nil), p.Colwidth...)
			updated[p.Pos] = a
		case tablemap.ProblemCollision:
			if _, seen := collided[p.Pos]; !seen {
				collisions = append(collisions, p.Pos)
			}
			collided[p.Pos] = max(collided[p.Pos], p.N)
		}
	}

	for _, pos := range collisions {
		a, ok := attrsOf(pos)
		if !ok {
			continue
		}
		n := collided[pos]
		if n < a.Colspan {
			a = a.RemoveColSpan(a.Colspan-n, n)
		} else if rect, err := m.FindCell(pos); err == nil && rect.Height() < a.Rowspan {
			// Collided in its first column: keep only the rows it claimed.
			a.Rowspan = rect.Height()
		}
		updated[pos] = a
	}

	changed := false
	for _, pos := range order {
		cell := table.NodeAt(pos)
		if cell.Attrs().Equal(updated[pos]) {
			continue
		}
		if err := tr.SetNodeMarkup(tableStart+pos, cell.Role(), updated[pos]); err != nil {
			return false, err
		}
		changed = true
	}
	return changed, nil
}

// addMissing inserts empty cells into rows that leave slots unclaimed.
// When the rows needing cells look like a bite out of the top-left corner,
// cells go at the start of the row after the bite; otherwise at row ends.
func addMissing(tr *transform.Transform, table *model.Node, tableStart int, m *tablemap.TableMap) error {
	mustAdd := make([]int, m.Height)
	for _, p := range m.Problems {
		if p.Type == tablemap.ProblemMissing {
			mustAdd[p.Row] += p.N
		}
	}
	first, last := -1, -1
	for i, n := range mustAdd {
		if n > 0 {
			if first < 0 {
				first = i
			}
			last = i
		}
	}

	mark := tr.StepCount()
	for i, add := range mustAdd {
		if add == 0 {
			continue
		}
		row := tablemap.GetRow(table, i)
		if row.Node == nil {
			continue
		}
		role := model.RoleCell
		if fc := row.Node.FirstChild(); fc != nil && fc.Role() == model.RoleHeaderCell {
			role = model.RoleHeaderCell
		}
		nodes := make([]*model.Node, add)
		for j := range nodes {
			nodes[j] = model.CreateAndFill(role, model.DefaultAttrs())
		}
		side := row.Pos + row.Node.NodeSize() - 1
		if (i == 0 || first == i-1) && last == i {
			side = row.Pos + 1
		}
		if err := tr.Insert(tr.Mapping().Slice(mark).Map(tableStart+side), nodes...); err != nil {
			return err
		}
	}
	return nil
}
