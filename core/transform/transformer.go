// Package transform restyles an extraction catalogue through an LLM.
// Texts go out in fixed-size batches, colors in a single request; any
// call or parse failure degrades that batch to identity fallback, so a
// single bad batch never aborts the job.
package transform

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/gaurav-prasanna/themepipe/core"
)

const (
	defaultBatchSize   = 5
	defaultConcurrency = 1
)

// Config configures the transformer.
type Config struct {
	// BatchSize is the number of text records per LLM request (default 5).
	BatchSize int `json:"batch_size" yaml:"batch_size"`
	// Concurrency bounds in-flight batch requests (default 1).
	Concurrency int `json:"concurrency" yaml:"concurrency"`
	// Logger for fallback warnings and the transformation summary.
	Logger *slog.Logger `json:"-" yaml:"-"`
}

func (c *Config) defaults() {
	if c.BatchSize <= 0 {
		c.BatchSize = defaultBatchSize
	}
	if c.Concurrency <= 0 {
		c.Concurrency = defaultConcurrency
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Transformer rewrites catalogue records to match a style description.
type Transformer struct {
	gen core.Generator
	cfg Config
}

// New creates a Transformer on top of a Generator.
func New(gen core.Generator, cfg Config) *Transformer {
	cfg.defaults()
	return &Transformer{gen: gen, cfg: cfg}
}

// Transform rewrites every record in the catalogue. It always returns
// a complete catalogue: records whose batch failed carry their
// original value.
func (t *Transformer) Transform(ctx context.Context, cat core.Catalogue, style string) core.TransformedCatalogue {
	out := core.TransformedCatalogue{
		Texts: t.transformTexts(ctx, cat.Texts, style),
	}
	out.Colors, out.Notes = t.transformColors(ctx, cat.Colors, style)
	t.summarize(out)
	return out
}

// transformTexts processes texts in batches. Batches are independent
// and may run concurrently; results land in a slice indexed by batch
// number so output order always equals input order.
func (t *Transformer) transformTexts(ctx context.Context, texts []core.ExtractedText, style string) []core.TransformedText {
	if len(texts) == 0 {
		return nil
	}

	batches := batchRecords(texts, t.cfg.BatchSize)
	results := make([][]core.TransformedText, len(batches))

	sem := make(chan struct{}, t.cfg.Concurrency)
	var wg sync.WaitGroup
	for i, batch := range batches {
		wg.Add(1)
		go func(i int, batch []core.ExtractedText) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			results[i] = t.transformBatch(ctx, i, batch, style)
		}(i, batch)
	}
	wg.Wait()

	out := make([]core.TransformedText, 0, len(texts))
	for _, r := range results {
		out = append(out, r...)
	}
	return out
}

// transformBatch sends one batch and pairs response blocks with input
// records by position. A missing or empty block means identity for
// that record; a failed call or unparsable response means identity for
// the whole batch.
func (t *Transformer) transformBatch(ctx context.Context, batchNum int, batch []core.ExtractedText, style string) []core.TransformedText {
	contents := make([]string, len(batch))
	for i, rec := range batch {
		contents[i] = rec.Content
	}

	response, err := t.gen.Generate(ctx, textSystemPrompt, textUserPrompt(contents, style))
	if err != nil {
		t.cfg.Logger.Warn("text batch failed, falling back to original content",
			"batch", batchNum, "records", len(batch), "error", err)
		return identityTexts(batch)
	}

	pairs, err := parseTextBlocks(response)
	if err != nil {
		t.cfg.Logger.Warn("text batch response unparsable, falling back to original content",
			"batch", batchNum, "error", err)
		return identityTexts(batch)
	}
	if len(pairs) < len(batch) {
		t.cfg.Logger.Warn("text batch returned fewer blocks than requested",
			"batch", batchNum, "got", len(pairs), "want", len(batch))
	}

	out := make([]core.TransformedText, len(batch))
	for i, rec := range batch {
		transformed := rec.Content
		if i < len(pairs) && strings.TrimSpace(pairs[i].New) != "" {
			transformed = removeEscapes(pairs[i].New)
		}
		out[i] = core.TransformedText{
			ExtractedText:      rec,
			TransformedContent: transformed,
		}
	}
	return out
}

// transformColors asks for a same-length replacement palette in a
// single request. If the response yields fewer colors than requested,
// the returned colors are cycled to fill the gap; a response with no
// parseable color at all degrades to identity.
func (t *Transformer) transformColors(ctx context.Context, colors []core.ExtractedColor, style string) ([]core.TransformedColor, string) {
	if len(colors) == 0 {
		return nil, ""
	}

	values := make([]string, len(colors))
	for i, rec := range colors {
		values[i] = rec.ColorValue
	}

	response, err := t.gen.Generate(ctx, colorSystemPrompt, colorUserPrompt(values, style))
	if err != nil {
		t.cfg.Logger.Warn("color request failed, keeping original palette", "error", err)
		return identityColors(colors), ""
	}

	palette, notes, err := parseColorPalette(response)
	if err != nil {
		t.cfg.Logger.Warn("color response unparsable, keeping original palette", "error", err)
		return identityColors(colors), ""
	}

	out := make([]core.TransformedColor, len(colors))
	for i, rec := range colors {
		out[i] = core.TransformedColor{
			ExtractedColor:   rec,
			TransformedColor: palette[i%len(palette)],
		}
	}
	return out, removeEscapes(notes)
}

func identityTexts(batch []core.ExtractedText) []core.TransformedText {
	out := make([]core.TransformedText, len(batch))
	for i, rec := range batch {
		out[i] = core.TransformedText{ExtractedText: rec, TransformedContent: rec.Content}
	}
	return out
}

func identityColors(colors []core.ExtractedColor) []core.TransformedColor {
	out := make([]core.TransformedColor, len(colors))
	for i, rec := range colors {
		out[i] = core.TransformedColor{ExtractedColor: rec, TransformedColor: rec.ColorValue}
	}
	return out
}

// summarize logs how much of the catalogue actually changed, so silent
// no-op transformations are visible without failing the job.
func (t *Transformer) summarize(cat core.TransformedCatalogue) {
	changedTexts := 0
	for _, rec := range cat.Texts {
		if rec.TransformedContent != rec.Content {
			changedTexts++
		}
	}
	changedColors := 0
	for _, rec := range cat.Colors {
		if !strings.EqualFold(rec.TransformedColor, rec.ColorValue) {
			changedColors++
		}
	}

	t.cfg.Logger.Info("transformation summary",
		"texts", len(cat.Texts), "texts_changed", changedTexts,
		"colors", len(cat.Colors), "colors_changed", changedColors)

	if len(cat.Texts) > 0 && changedTexts == 0 {
		t.cfg.Logger.Warn("no texts were modified in transformation")
	}
	if len(cat.Colors) > 0 && changedColors == 0 {
		t.cfg.Logger.Warn("no colors were modified in transformation")
	}
}
