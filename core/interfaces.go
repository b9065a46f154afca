// Package core defines the pipeline types and interfaces for ThemePipe.
// Each stage of the pipeline is a clean, testable interface.
package core

import (
	"context"
	"errors"
	"strings"
)

// Sentinel errors for the failure taxonomy. Fatal conditions abort the
// current job only; per-post and per-batch conditions degrade instead.
var (
	// ErrMalformedDocument means the export XML is not well-formed.
	ErrMalformedDocument = errors.New("malformed document")
	// ErrMissingWidgetData means a post carries no Elementor payload.
	ErrMissingWidgetData = errors.New("missing widget data")
	// ErrMalformedWidgetJSON means the embedded widget JSON fails to decode.
	ErrMalformedWidgetJSON = errors.New("malformed widget JSON")
)

// ExtractedText is one text value pulled out of a widget's settings.
// Label is "<category>_<settings key>"; SettingsKey carries the literal
// key explicitly so the replacer never has to re-derive it.
type ExtractedText struct {
	PageName    string `json:"page_name"`
	SectionName string `json:"section_name"`
	ElementType string `json:"element_type"`
	Label       string `json:"label"`
	SettingsKey string `json:"settings_key,omitempty"`
	Content     string `json:"content"`
	WidgetID    string `json:"widget_id"`
}

// ExtractedColor is one hex color value pulled out of a widget's settings.
type ExtractedColor struct {
	PageName     string `json:"page_name"`
	SectionName  string `json:"section_name"`
	ElementType  string `json:"element_type"`
	VariableName string `json:"variable_name"`
	SettingsKey  string `json:"settings_key,omitempty"`
	ColorValue   string `json:"color_value"`
	WidgetID     string `json:"widget_id"`
}

// TransformedText is an ExtractedText plus its restyled content.
// TransformedContent may equal Content (identity fallback).
type TransformedText struct {
	ExtractedText
	TransformedContent string `json:"transformed_content"`
}

// TransformedColor is an ExtractedColor plus its replacement color.
type TransformedColor struct {
	ExtractedColor
	TransformedColor string `json:"transformed_color"`
}

// Key returns the literal settings key a text record targets.
// Falls back to the label suffix for catalogues written before
// settings_key existed.
func (t ExtractedText) Key() string {
	if t.SettingsKey != "" {
		return t.SettingsKey
	}
	return keyFromLabel(t.Label)
}

// Key returns the literal settings key a color record targets.
func (c ExtractedColor) Key() string {
	if c.SettingsKey != "" {
		return c.SettingsKey
	}
	return keyFromLabel(c.VariableName)
}

// keyFromLabel recovers the settings key from a composite label by
// taking the text after the last underscore. Known to be lossy for
// keys that themselves contain underscores, which is why SettingsKey
// is the preferred source.
func keyFromLabel(label string) string {
	idx := strings.LastIndex(label, "_")
	if idx < 0 {
		return label
	}
	return label[idx+1:]
}

// Catalogue is the flat list of extracted records for one document.
type Catalogue struct {
	Texts  []ExtractedText  `json:"texts"`
	Colors []ExtractedColor `json:"colors"`
}

// TransformedCatalogue is the restyled counterpart of a Catalogue.
type TransformedCatalogue struct {
	Texts  []TransformedText  `json:"texts"`
	Colors []TransformedColor `json:"colors"`
	Notes  string             `json:"transformation_notes,omitempty"`
}

// Generator produces a completion for a system/user prompt pair.
// Implementations are fallible, non-deterministic, and rate-limited;
// callers own the fallback policy.
type Generator interface {
	Generate(ctx context.Context, system, user string) (string, error)
}

// Reporter renders a document digest into an output format.
type Reporter interface {
	Render(digest Digest) ([]byte, error)
	// Extension returns the file extension for this reporter (e.g. ".md", ".pdf").
	Extension() string
}

// DigestPost is one post entry in a report digest.
type DigestPost struct {
	Slug     string
	Title    string
	Markdown string // content:encoded converted to Markdown
	Widgets  bool   // post carries an Elementor widget tree
}

// Digest is the input to a Reporter: the document's posts plus
// catalogue statistics.
type Digest struct {
	Source     string
	Posts      []DigestPost
	TextCount  int
	ColorCount int
}
