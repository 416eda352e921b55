package model

import (
	"fmt"
	"maps"
	"reflect"
	"slices"

	"github.com/tiendc/go-deepcopy"
)

// Attribute names understood by Attrs.Get and Attrs.With.
const (
	AttrColspan  = "colspan"
	AttrRowspan  = "rowspan"
	AttrColwidth = "colwidth"
)

// Attrs is the attribute record of a node. Only cells use the span and
// width fields; Extra holds host-defined attributes for any node.
type Attrs struct {
	// Colspan is the number of grid columns the cell covers (>= 1).
	Colspan int
	// Rowspan is the number of grid rows the cell covers (>= 1).
	Rowspan int
	// Colwidth holds one pixel width per spanned column, 0 meaning not fixed.
	// It is nil when no column has a fixed width.
	Colwidth []int
	// Extra holds additional named attributes.
	Extra map[string]any
}

// DefaultAttrs returns the attributes of a fresh 1x1 cell.
func DefaultAttrs() Attrs {
	return Attrs{Colspan: 1, Rowspan: 1}
}

// Span returns cell attributes with the given spans and optional widths.
func Span(colspan, rowspan int, colwidth ...int) Attrs {
	a := Attrs{Colspan: colspan, Rowspan: rowspan}
	if len(colwidth) > 0 {
		a.Colwidth = append([]int(nil), colwidth...)
	}
	return a
}

func (a Attrs) normalized() Attrs {
	if a.Colspan < 1 {
		a.Colspan = 1
	}
	if a.Rowspan < 1 {
		a.Rowspan = 1
	}
	return a
}

// Clone returns a copy of a that shares no mutable state with it.
func (a Attrs) Clone() Attrs {
	out := Attrs{Colspan: a.Colspan, Rowspan: a.Rowspan}
	if a.Colwidth != nil {
		out.Colwidth = append([]int(nil), a.Colwidth...)
	}
	if a.Extra != nil {
		var extra map[string]any
		if err := deepcopy.Copy(&extra, a.Extra); err != nil {
			// Values deepcopy cannot handle are shared rather than dropped.
			extra = make(map[string]any, len(a.Extra))
			for k, v := range a.Extra {
				extra[k] = v
			}
		}
		out.Extra = extra
	}
	return out
}

// Get returns the value of the named attribute, or nil if it is unset.
func (a Attrs) Get(name string) any {
	switch name {
	case AttrColspan:
		return a.Colspan
	case AttrRowspan:
		return a.Rowspan
	case AttrColwidth:
		if a.Colwidth == nil {
			return nil
		}
		return append([]int(nil), a.Colwidth...)
	}
	if a.Extra == nil {
		return nil
	}
	return a.Extra[name]
}

// With returns a copy of a with the named attribute set to value.
// A nil value removes an extra attribute or clears colwidth. Setting
// colspan pads or truncates colwidth to the new span.
func (a Attrs) With(name string, value any) (Attrs, error) {
	out := a.Clone()
	switch name {
	case AttrColspan, AttrRowspan:
		n, ok := toInt(value)
		if !ok || n < 1 {
			return a, fmt.Errorf("%w: %s must be a positive integer, got %v", ErrInvalidAttr, name, value)
		}
		if name == AttrColspan {
			out.Colspan = n
			out.Colwidth = fitColwidth(out.Colwidth, n)
		} else {
			out.Rowspan = n
		}
	case AttrColwidth:
		if value == nil {
			out.Colwidth = nil
			break
		}
		widths, ok := toInts(value)
		if !ok {
			return a, fmt.Errorf("%w: colwidth must be a list of integers, got %v", ErrInvalidAttr, value)
		}
		out.Colwidth = widths
	default:
		if value == nil {
			delete(out.Extra, name)
			if len(out.Extra) == 0 {
				out.Extra = nil
			}
			break
		}
		if out.Extra == nil {
			out.Extra = make(map[string]any)
		}
		out.Extra[name] = value
	}
	return out, nil
}

// Equal reports whether a and b hold the same attributes.
func (a Attrs) Equal(b Attrs) bool {
	a, b = a.normalized(), b.normalized()
	if a.Colspan != b.Colspan || a.Rowspan != b.Rowspan {
		return false
	}
	if len(a.Colwidth) != len(b.Colwidth) || (a.Colwidth == nil) != (b.Colwidth == nil) {
		return false
	}
	for i := range a.Colwidth {
		if a.Colwidth[i] != b.Colwidth[i] {
			return false
		}
	}
	if len(a.Extra) != len(b.Extra) {
		return false
	}
	return len(a.Extra) == 0 || reflect.DeepEqual(a.Extra, b.Extra)
}

// AddColSpan returns a copy with n columns inserted at column index pos of
// the cell. Inserted columns get no fixed width.
func (a Attrs) AddColSpan(pos, n int) Attrs {
	out := a.Clone()
	out.Colspan += n
	if out.Colwidth != nil {
		if pos > len(out.Colwidth) {
			pos = len(out.Colwidth)
		}
		widths := make([]int, 0, len(out.Colwidth)+n)
		widths = append(widths, out.Colwidth[:pos]...)
		widths = append(widths, make([]int, n)...)
		out.Colwidth = append(widths, out.Colwidth[pos:]...)
	}
	return out
}

// RemoveColSpan returns a copy with n columns removed starting at column
// index pos of the cell. Colwidth is dropped once no fixed width remains.
func (a Attrs) RemoveColSpan(pos, n int) Attrs {
	out := a.Clone()
	out.Colspan -= n
	if out.Colwidth != nil {
		end := pos + n
		if end > len(out.Colwidth) {
			end = len(out.Colwidth)
		}
		if pos < end {
			out.Colwidth = append(out.Colwidth[:pos:pos], out.Colwidth[end:]...)
		}
		fixed := false
		for _, w := range out.Colwidth {
			if w > 0 {
				fixed = true
				break
			}
		}
		if !fixed {
			out.Colwidth = nil
		}
	}
	return out
}

// fitColwidth pads widths with unfixed columns or truncates it to n entries.
// It returns nil once no fixed width remains.
func fitColwidth(widths []int, n int) []int {
	if widths == nil {
		return nil
	}
	if len(widths) > n {
		widths = widths[:n:n]
	}
	out := make([]int, n)
	copy(out, widths)
	for _, w := range out {
		if w > 0 {
			return out
		}
	}
	return nil
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float64:
		if n != float64(int(n)) {
			return 0, false
		}
		return int(n), true
	}
	return 0, false
}

func toInts(v any) ([]int, bool) {
	switch list := v.(type) {
	case []int:
		return append([]int(nil), list...), true
	case []any:
		out := make([]int, len(list))
		for i, item := range list {
			if item == nil {
				continue
			}
			n, ok := toInt(item)
			if !ok {
				return nil, false
			}
			out[i] = n
		}
		return out, true
	}
	return nil, false
}

func (a Attrs) String() string {
	s := fmt.Sprintf("{colspan=%d rowspan=%d", a.Colspan, a.Rowspan)
	if a.Colwidth != nil {
		s += fmt.Sprintf(" colwidth=%v", a.Colwidth)
	}
	for _, k := range slices.Sorted(maps.Keys(a.Extra)) {
		s += fmt.Sprintf(" %s=%v", k, a.Extra[k])
	}
	return s + "}"
}
