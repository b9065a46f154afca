package replace

import (
	"strings"

	"github.com/gaurav-prasanna/themepipe/core/widget"
)

// Pure white marks intentionally blank backgrounds; a blanket palette
// substitution must never repaint those. Before substitution the tree
// is scanned once and every white background-type setting is
// snapshotted with its exact spelling; after substitution the
// snapshots are written back.

// protectedValue is one snapshotted setting.
type protectedValue struct {
	widgetID string
	section  string
	key      string
	value    string
}

// isBackgroundKey reports whether a settings key is background-typed.
func isBackgroundKey(key string) bool {
	return strings.Contains(key, "background")
}

// isWhite accepts every spelling of pure white the export uses
// (#fff, #FFF, #ffffff, #FFFFFF, and mixed case).
func isWhite(value string) bool {
	lower := strings.ToLower(value)
	return lower == "#fff" || lower == "#ffffff"
}

func snapshotWhites(tree *widget.Tree) []protectedValue {
	var snapshot []protectedValue
	tree.Walk(func(n *widget.Node, sectionName string) {
		for key, v := range n.Settings {
			s, ok := v.(string)
			if !ok || !isBackgroundKey(key) || !isWhite(s) {
				continue
			}
			snapshot = append(snapshot, protectedValue{
				widgetID: n.ID,
				section:  sectionName,
				key:      key,
				value:    s,
			})
		}
	})
	return snapshot
}

func restoreProtected(tree *widget.Tree, snapshot []protectedValue) {
	if len(snapshot) == 0 {
		return
	}

	byNode := make(map[string][]protectedValue)
	for _, p := range snapshot {
		byNode[p.widgetID] = append(byNode[p.widgetID], p)
	}

	tree.Walk(func(n *widget.Node, sectionName string) {
		for _, p := range byNode[n.ID] {
			if p.section != sectionName {
				continue
			}
			if _, ok := n.Settings[p.key]; ok {
				n.Settings[p.key] = p.value
			}
		}
	})
}
