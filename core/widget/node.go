// Package widget models the Elementor widget tree: the recursive JSON
// structure stored as text inside one post-metadata field.
//
// The tree is parsed into tagged Node values instead of being walked as
// raw maps; unknown fields are retained verbatim so a parse/serialize
// round trip loses nothing.
package widget

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/gaurav-prasanna/themepipe/core"
)

// Node is one section or widget in the tree. ID is the node's durable
// identity; Settings holds arbitrary string-keyed values, some of which
// are text or color fields. Fields not modeled here survive in extra.
type Node struct {
	ID         string
	ElType     string
	WidgetType string
	Settings   map[string]any
	Children   []*Node

	// presence flags so empty-but-present fields ("elements":[],
	// "settings":{}) re-serialize exactly as they arrived.
	hasSettings bool
	hasChildren bool

	extra map[string]json.RawMessage
}

// NewSection builds a section node with the given label and children.
func NewSection(id, label string, children ...*Node) *Node {
	settings := map[string]any{}
	if label != "" {
		settings["section_label"] = label
	}
	return &Node{
		ID:          id,
		ElType:      "section",
		Settings:    settings,
		Children:    children,
		hasSettings: true,
		hasChildren: true,
	}
}

// NewWidget builds a widget node with the given settings.
func NewWidget(id, widgetType string, settings map[string]any) *Node {
	if settings == nil {
		settings = map[string]any{}
	}
	return &Node{
		ID:          id,
		ElType:      "widget",
		WidgetType:  widgetType,
		Settings:    settings,
		hasSettings: true,
	}
}

// Type returns the most specific type name for the node: the widget
// type when set, the element type otherwise.
func (n *Node) Type() string {
	if n.WidgetType != "" {
		return n.WidgetType
	}
	return n.ElType
}

// IsSection reports whether the node opens a new section context.
func (n *Node) IsSection() bool {
	return n.ElType == "section"
}

// SectionLabel derives the section's display name from its settings,
// falling back to a synthetic name keyed on the node id. The same
// derivation runs during extraction and replacement; matching depends
// on the two agreeing.
func (n *Node) SectionLabel() string {
	if label, ok := n.Settings["section_label"].(string); ok && label != "" {
		return label
	}
	return "section_" + n.ID
}

// StringSetting returns the string value for a settings key, if any.
func (n *Node) StringSetting(key string) (string, bool) {
	v, ok := n.Settings[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// UnmarshalJSON decodes a node, keeping unknown fields in extra.
func (n *Node) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	for key, val := range raw {
		switch key {
		case "id":
			if err := json.Unmarshal(val, &n.ID); err != nil {
				return fmt.Errorf("node id: %w", err)
			}
		case "elType":
			if err := json.Unmarshal(val, &n.ElType); err != nil {
				return fmt.Errorf("node elType: %w", err)
			}
		case "widgetType":
			if err := json.Unmarshal(val, &n.WidgetType); err != nil {
				return fmt.Errorf("node widgetType: %w", err)
			}
		case "settings":
			// Elementor occasionally emits "settings":[] for empty
			// settings; tolerate any shape that is not an object.
			// Numbers decode as json.Number: settings hold ids well
			// above 2^53, and float64 would corrupt those on re-encode.
			n.hasSettings = true
			dec := json.NewDecoder(bytes.NewReader(val))
			dec.UseNumber()
			var settings map[string]any
			if err := dec.Decode(&settings); err != nil {
				n.extra = setExtra(n.extra, key, val)
				n.hasSettings = false
				continue
			}
			n.Settings = settings
		case "elements":
			n.hasChildren = true
			if err := json.Unmarshal(val, &n.Children); err != nil {
				return fmt.Errorf("node elements: %w", err)
			}
		default:
			n.extra = setExtra(n.extra, key, val)
		}
	}
	if n.Settings == nil && n.hasSettings {
		n.Settings = map[string]any{}
	}
	return nil
}

// MarshalJSON encodes the node compactly with known fields first and
// unknown fields appended in sorted order, so repeated serialization
// is deterministic.
func (n *Node) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true

	writeField := func(key string, val any) error {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		k, err := json.Marshal(key)
		if err != nil {
			return err
		}
		v, err := json.Marshal(val)
		if err != nil {
			return fmt.Errorf("field %s: %w", key, err)
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
		return nil
	}

	if n.ID != "" {
		if err := writeField("id", n.ID); err != nil {
			return nil, err
		}
	}
	if n.ElType != "" {
		if err := writeField("elType", n.ElType); err != nil {
			return nil, err
		}
	}
	if n.WidgetType != "" {
		if err := writeField("widgetType", n.WidgetType); err != nil {
			return nil, err
		}
	}
	if n.hasSettings || len(n.Settings) > 0 {
		if err := writeField("settings", n.Settings); err != nil {
			return nil, err
		}
	}
	if n.hasChildren || len(n.Children) > 0 {
		children := n.Children
		if children == nil {
			children = []*Node{}
		}
		if err := writeField("elements", children); err != nil {
			return nil, err
		}
	}

	keys := make([]string, 0, len(n.extra))
	for k := range n.extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(n.extra[k])
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Clone returns a deep copy of the node and its descendants.
func (n *Node) Clone() *Node {
	cp := &Node{
		ID:          n.ID,
		ElType:      n.ElType,
		WidgetType:  n.WidgetType,
		hasSettings: n.hasSettings,
		hasChildren: n.hasChildren,
	}
	if n.Settings != nil {
		cp.Settings = cloneValue(n.Settings).(map[string]any)
	}
	if n.Children != nil {
		cp.Children = make([]*Node, len(n.Children))
		for i, c := range n.Children {
			cp.Children[i] = c.Clone()
		}
	}
	if n.extra != nil {
		cp.extra = make(map[string]json.RawMessage, len(n.extra))
		for k, v := range n.extra {
			raw := make(json.RawMessage, len(v))
			copy(raw, v)
			cp.extra[k] = raw
		}
	}
	return cp
}

// cloneValue deep-copies the JSON-shaped values found in settings.
func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		cp := make(map[string]any, len(val))
		for k, item := range val {
			cp[k] = cloneValue(item)
		}
		return cp
	case []any:
		cp := make([]any, len(val))
		for i, item := range val {
			cp[i] = cloneValue(item)
		}
		return cp
	default:
		return val
	}
}

func setExtra(extra map[string]json.RawMessage, key string, val json.RawMessage) map[string]json.RawMessage {
	if extra == nil {
		extra = make(map[string]json.RawMessage)
	}
	extra[key] = val
	return extra
}

// Tree is a parsed widget tree. Elementor stores the top level as an
// array of sections; a bare object is tolerated and remembered so it
// serializes back in the same shape.
type Tree struct {
	Roots []*Node

	single bool
}

// Parse decodes the raw JSON text of an Elementor metadata field.
func Parse(data []byte) (*Tree, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty payload", core.ErrMalformedWidgetJSON)
	}

	tree := &Tree{}
	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &tree.Roots); err != nil {
			return nil, fmt.Errorf("%w: %v", core.ErrMalformedWidgetJSON, err)
		}
		return tree, nil
	}

	var root Node
	if err := json.Unmarshal(trimmed, &root); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrMalformedWidgetJSON, err)
	}
	tree.Roots = []*Node{&root}
	tree.single = true
	return tree, nil
}

// Marshal encodes the tree as compact JSON, matching the encoding the
// metadata field expects (no pretty-printing).
func (t *Tree) Marshal() ([]byte, error) {
	if t.single {
		if len(t.Roots) != 1 {
			return nil, fmt.Errorf("single-object tree has %d roots", len(t.Roots))
		}
		return json.Marshal(t.Roots[0])
	}
	roots := t.Roots
	if roots == nil {
		roots = []*Node{}
	}
	return json.Marshal(roots)
}

// Clone returns a deep copy of the tree. The replacer mutates copies
// only, so the original stays intact until the copy is validated.
func (t *Tree) Clone() *Tree {
	cp := &Tree{single: t.single}
	cp.Roots = make([]*Node, len(t.Roots))
	for i, r := range t.Roots {
		cp.Roots[i] = r.Clone()
	}
	return cp
}

// Count returns the total number of nodes in the tree.
func (t *Tree) Count() int {
	n := 0
	t.Walk(func(*Node, string) { n++ })
	return n
}
