// Package replace writes transformed records back into a widget tree.
// A record applies to a node only when both the widget id and the
// derived section name match; widget ids alone are not guaranteed
// unique across a whole document. All mutation happens on a deep copy.
package replace

import (
	"log/slog"

	"github.com/gaurav-prasanna/themepipe/core"
	"github.com/gaurav-prasanna/themepipe/core/widget"
)

// Config configures the replacer.
type Config struct {
	// ProtectWhite restores pure-white background settings after
	// blanket color substitution.
	ProtectWhite bool `json:"protect_white" yaml:"protect_white"`
	// Logger for verification results.
	Logger *slog.Logger `json:"-" yaml:"-"`
}

func (c *Config) defaults() {
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Replacer applies a transformed catalogue to widget trees.
type Replacer struct {
	cfg Config
}

// New creates a Replacer.
func New(cfg Config) *Replacer {
	cfg.defaults()
	return &Replacer{cfg: cfg}
}

// Apply returns a deep copy of the tree with every matching record's
// settings key overwritten. The input tree is left untouched. Records
// whose settings key no longer exists on the node are skipped
// silently; schemas can drift between extraction and replacement.
func (r *Replacer) Apply(tree *widget.Tree, texts []core.TransformedText, colors []core.TransformedColor) *widget.Tree {
	out := tree.Clone()

	var protected []protectedValue
	if r.cfg.ProtectWhite {
		protected = snapshotWhites(out)
	}

	textIdx := make(map[string][]core.TransformedText)
	for _, rec := range texts {
		textIdx[rec.WidgetID] = append(textIdx[rec.WidgetID], rec)
	}
	colorIdx := make(map[string][]core.TransformedColor)
	for _, rec := range colors {
		colorIdx[rec.WidgetID] = append(colorIdx[rec.WidgetID], rec)
	}

	out.Walk(func(n *widget.Node, sectionName string) {
		if n.Settings == nil {
			return
		}
		for _, rec := range textIdx[n.ID] {
			if rec.SectionName != sectionName {
				continue
			}
			key := rec.Key()
			if _, ok := n.Settings[key]; ok {
				n.Settings[key] = rec.TransformedContent
			}
		}
		for _, rec := range colorIdx[n.ID] {
			if rec.SectionName != sectionName {
				continue
			}
			key := rec.Key()
			if _, ok := n.Settings[key]; ok {
				n.Settings[key] = rec.TransformedColor
			}
		}
	})

	if r.cfg.ProtectWhite {
		restoreProtected(out, protected)
	}

	return out
}
