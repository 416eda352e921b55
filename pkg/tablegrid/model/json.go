package model

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
)

// nodeJSON is the serialized form of a node.
type nodeJSON struct {
	Type    string         `json:"type"`
	Attrs   map[string]any `json:"attrs,omitempty"`
	Content []*Node        `json:"content,omitempty"`
	Text    string         `json:"text,omitempty"`
}

// MarshalJSON encodes the node as {"type", "attrs", "content", "text"}.
func (n *Node) MarshalJSON() ([]byte, error) {
	out := nodeJSON{Type: n.role.String(), Content: n.content, Text: n.text}
	if n.role.IsCell() {
		out.Attrs = map[string]any{
			AttrColspan: n.attrs.Colspan,
			AttrRowspan: n.attrs.Rowspan,
		}
		if n.attrs.Colwidth != nil {
			out.Attrs[AttrColwidth] = n.attrs.Colwidth
		}
	}
	for k, v := range n.attrs.Extra {
		if out.Attrs == nil {
			out.Attrs = make(map[string]any, len(n.attrs.Extra))
		}
		out.Attrs[k] = v
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes the form written by MarshalJSON.
func (n *Node) UnmarshalJSON(data []byte) error {
	var in nodeJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	role, err := ParseRole(in.Type)
	if err != nil {
		return err
	}
	if role == RoleText {
		if len(in.Content) > 0 {
			return fmt.Errorf("%w: text node with content", ErrInvalidNode)
		}
		*n = *NewText(in.Text)
		return nil
	}
	if in.Text != "" {
		return fmt.Errorf("%w: %s node with text", ErrInvalidNode, role)
	}
	attrs := Attrs{}
	if role.IsCell() {
		attrs = DefaultAttrs()
	}
	// Spans go first so that a stored colwidth is kept as written.
	names := slices.Sorted(maps.Keys(in.Attrs))
	if i := slices.Index(names, AttrColwidth); i >= 0 {
		names = append(slices.Delete(names, i, i+1), AttrColwidth)
	}
	for _, name := range names {
		if attrs, err = attrs.With(name, in.Attrs[name]); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidNode, err)
		}
	}
	for _, c := range in.Content {
		if c == nil {
			return fmt.Errorf("%w: null child in %s", ErrInvalidNode, role)
		}
	}
	*n = *New(role, attrs, in.Content...)
	return nil
}
