// Package extract walks a widget tree and produces the flat catalogue
// of text and color records the transformer consumes. Extraction is
// read-only and record order equals traversal order.
package extract

import (
	"html"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/gaurav-prasanna/themepipe/core"
	"github.com/gaurav-prasanna/themepipe/core/widget"
)

// hexColorPattern matches "#" followed by 3 or 6 hex digits and
// nothing else.
var hexColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

var whitespaceRun = regexp.MustCompile(`\s+`)

const defaultMinTextLength = 4

// Extractor pulls text and color records out of widget trees.
type Extractor struct {
	minTextLength int
}

// New creates an Extractor. Texts shorter than minTextLength after
// cleaning are discarded; values <= 0 select the default of 4.
func New(minTextLength int) *Extractor {
	if minTextLength <= 0 {
		minTextLength = defaultMinTextLength
	}
	return &Extractor{minTextLength: minTextLength}
}

// Extract walks the tree and returns the text and color records found,
// tagged with the given page name. The input tree is never mutated.
func (e *Extractor) Extract(tree *widget.Tree, pageName string) ([]core.ExtractedText, []core.ExtractedColor) {
	var texts []core.ExtractedText
	var colors []core.ExtractedColor

	tree.Walk(func(n *widget.Node, sectionName string) {
		texts = append(texts, e.textsFromNode(n, pageName, sectionName)...)
		colors = append(colors, e.colorsFromNode(n, pageName, sectionName)...)
	})

	return texts, colors
}

func (e *Extractor) textsFromNode(n *widget.Node, pageName, sectionName string) []core.ExtractedText {
	var records []core.ExtractedText
	for _, ck := range textKeys {
		for _, key := range ck.Keys {
			value, ok := n.StringSetting(key)
			if !ok {
				continue
			}

			var cleaned string
			if richTextKeys[key] {
				cleaned = CleanRichText(value)
			} else {
				cleaned = collapseWhitespace(value)
			}
			if len(cleaned) < e.minTextLength {
				continue
			}

			records = append(records, core.ExtractedText{
				PageName:    pageName,
				SectionName: sectionName,
				ElementType: n.Type(),
				Label:       ck.Category + "_" + key,
				SettingsKey: key,
				Content:     cleaned,
				WidgetID:    n.ID,
			})
		}
	}
	return records
}

func (e *Extractor) colorsFromNode(n *widget.Node, pageName, sectionName string) []core.ExtractedColor {
	var records []core.ExtractedColor
	for _, ck := range colorKeys {
		for _, key := range ck.Keys {
			value, ok := n.StringSetting(key)
			if !ok || !hexColorPattern.MatchString(value) {
				continue
			}

			records = append(records, core.ExtractedColor{
				PageName:     pageName,
				SectionName:  sectionName,
				ElementType:  n.Type(),
				VariableName: ck.Category + "_" + key,
				SettingsKey:  key,
				ColorValue:   value,
				WidgetID:     n.ID,
			})
		}
	}
	return records
}

// CleanRichText strips HTML tags from a free-text editor field,
// unescapes entities, and collapses whitespace.
func CleanRichText(value string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(value))
	if err != nil {
		// Not parseable as HTML; treat as plain text.
		return collapseWhitespace(html.UnescapeString(value))
	}
	return collapseWhitespace(html.UnescapeString(doc.Text()))
}

func collapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}

// IsHexColor reports whether s is a 3- or 6-digit hex color literal.
func IsHexColor(s string) bool {
	return hexColorPattern.MatchString(s)
}
