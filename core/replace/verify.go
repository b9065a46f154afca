package replace

import (
	"fmt"

	"github.com/gaurav-prasanna/themepipe/core"
	"github.com/gaurav-prasanna/themepipe/core/widget"
)

// Report counts how many requested replacements were actually observed
// in a tree. It is diagnostic only: unmatched records are logged,
// never fatal.
type Report struct {
	TextsRequested  int
	TextsApplied    int
	ColorsRequested int
	ColorsApplied   int
	Unmatched       []string
}

// Verify re-walks the tree and checks each record's settings key
// against its transformed value, surfacing silent matching failures.
// White-protected colors legitimately show as unmatched when the
// transform tried to repaint them.
func (r *Replacer) Verify(tree *widget.Tree, texts []core.TransformedText, colors []core.TransformedColor) Report {
	report := Report{
		TextsRequested:  len(texts),
		ColorsRequested: len(colors),
	}

	appliedTexts := make([]bool, len(texts))
	appliedColors := make([]bool, len(colors))

	tree.Walk(func(n *widget.Node, sectionName string) {
		if n.Settings == nil {
			return
		}
		for i, rec := range texts {
			if appliedTexts[i] || rec.WidgetID != n.ID || rec.SectionName != sectionName {
				continue
			}
			if v, ok := n.Settings[rec.Key()].(string); ok && v == rec.TransformedContent {
				appliedTexts[i] = true
			}
		}
		for i, rec := range colors {
			if appliedColors[i] || rec.WidgetID != n.ID || rec.SectionName != sectionName {
				continue
			}
			if v, ok := n.Settings[rec.Key()].(string); ok && v == rec.TransformedColor {
				appliedColors[i] = true
			}
		}
	})

	for i, rec := range texts {
		if appliedTexts[i] {
			report.TextsApplied++
		} else {
			report.Unmatched = append(report.Unmatched, fmt.Sprintf("text %s/%s", rec.WidgetID, rec.Label))
		}
	}
	for i, rec := range colors {
		if appliedColors[i] {
			report.ColorsApplied++
		} else {
			report.Unmatched = append(report.Unmatched, fmt.Sprintf("color %s/%s", rec.WidgetID, rec.VariableName))
		}
	}

	return report
}

// Log writes the report through the replacer's logger.
func (r *Replacer) Log(page string, report Report) {
	r.cfg.Logger.Info("replacement verification",
		"page", page,
		"texts_applied", report.TextsApplied, "texts_requested", report.TextsRequested,
		"colors_applied", report.ColorsApplied, "colors_requested", report.ColorsRequested)
	for _, miss := range report.Unmatched {
		r.cfg.Logger.Warn("record not observed in output", "page", page, "record", miss)
	}
}
