// Package pipeline wires the stages together: parse the export,
// extract the catalogue, restyle it through the LLM, splice the
// results back in, and publish the output atomically.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gaurav-prasanna/themepipe/core"
	"github.com/gaurav-prasanna/themepipe/core/extract"
	"github.com/gaurav-prasanna/themepipe/core/output"
	"github.com/gaurav-prasanna/themepipe/core/replace"
	"github.com/gaurav-prasanna/themepipe/core/transform"
	"github.com/gaurav-prasanna/themepipe/core/widget"
	"github.com/gaurav-prasanna/themepipe/core/wpxml"
)

// Config configures a Pipeline.
type Config struct {
	// MinTextLength is the extraction cutoff for cleaned texts.
	MinTextLength int `json:"min_text_length" yaml:"min_text_length"`
	// Transform configures the LLM batching stage.
	Transform transform.Config `json:"transform" yaml:"transform"`
	// Replace configures the write-back stage.
	Replace replace.Config `json:"replace" yaml:"replace"`
	// Logger for per-post warnings and stage progress.
	Logger *slog.Logger `json:"-" yaml:"-"`
}

func (c *Config) defaults() {
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.Transform.Logger == nil {
		c.Transform.Logger = c.Logger
	}
	if c.Replace.Logger == nil {
		c.Replace.Logger = c.Logger
	}
}

// Pipeline runs extract/transform/replace jobs. A Pipeline is
// stateless across jobs; each job operates on its own document copy
// and catalogues.
type Pipeline struct {
	extractor   *extract.Extractor
	transformer *transform.Transformer
	replacer    *replace.Replacer
	logger      *slog.Logger
}

// New creates a Pipeline on top of a Generator.
func New(gen core.Generator, cfg Config) *Pipeline {
	cfg.defaults()
	return &Pipeline{
		extractor:   extract.New(cfg.MinTextLength),
		transformer: transform.New(gen, cfg.Transform),
		replacer:    replace.New(cfg.Replace),
		logger:      cfg.Logger,
	}
}

// Extract parses the export at path and builds its catalogue.
func (p *Pipeline) Extract(path string) (core.Catalogue, error) {
	doc, err := wpxml.Parse(path)
	if err != nil {
		return core.Catalogue{}, err
	}
	return p.ExtractDocument(doc), nil
}

// ExtractDocument builds the catalogue for an already-parsed document.
// Posts without an Elementor payload or with undecodable widget JSON
// are skipped with a warning; neither is fatal.
func (p *Pipeline) ExtractDocument(doc *wpxml.Document) core.Catalogue {
	var cat core.Catalogue
	for _, post := range doc.Posts() {
		raw, ok := post.WidgetTreeRaw()
		if !ok {
			p.logger.Debug("post has no widget data", "slug", post.Slug())
			continue
		}

		tree, err := widget.Parse([]byte(raw))
		if err != nil {
			p.logger.Warn("skipping post with malformed widget JSON",
				"slug", post.Slug(), "error", err)
			continue
		}

		texts, colors := p.extractor.Extract(tree, post.Slug())
		cat.Texts = append(cat.Texts, texts...)
		cat.Colors = append(cat.Colors, colors...)
	}

	p.logger.Info("extraction complete",
		"texts", len(cat.Texts), "colors", len(cat.Colors))
	return cat
}

// Transform restyles a catalogue. Failures inside the transformer
// degrade to identity fallback per batch, so Transform itself cannot
// fail.
func (p *Pipeline) Transform(ctx context.Context, cat core.Catalogue, style string) core.TransformedCatalogue {
	return p.transformer.Transform(ctx, cat, style)
}

// Replace re-parses the original export at path, applies the
// transformed catalogue, and returns the serialized result.
func (p *Pipeline) Replace(path string, cat core.TransformedCatalogue) ([]byte, error) {
	doc, err := wpxml.Parse(path)
	if err != nil {
		return nil, err
	}
	if err := p.ReplaceDocument(doc, cat); err != nil {
		return nil, err
	}
	return doc.Bytes()
}

// ReplaceDocument applies the transformed catalogue to a parsed
// document in place.
func (p *Pipeline) ReplaceDocument(doc *wpxml.Document, cat core.TransformedCatalogue) error {
	texts := groupTexts(cat.Texts)
	colors := groupColors(cat.Colors)

	pages := make(map[string]bool)
	for page := range texts {
		pages[page] = true
	}
	for page := range colors {
		pages[page] = true
	}

	for page := range pages {
		post := doc.FindPost(page)
		if post == nil {
			p.logger.Warn("no post found for transformed records", "page", page)
			continue
		}

		raw, ok := post.WidgetTreeRaw()
		if !ok {
			p.logger.Warn("post lost its widget data since extraction", "page", page)
			continue
		}
		tree, err := widget.Parse([]byte(raw))
		if err != nil {
			p.logger.Warn("skipping post with malformed widget JSON",
				"page", page, "error", err)
			continue
		}

		applied := p.replacer.Apply(tree, texts[page], colors[page])
		report := p.replacer.Verify(applied, texts[page], colors[page])
		p.replacer.Log(page, report)

		encoded, err := applied.Marshal()
		if err != nil {
			return fmt.Errorf("encoding widget tree for %q: %w", page, err)
		}
		if err := post.SetWidgetTreeRaw(string(encoded)); err != nil {
			return err
		}
	}
	return nil
}

func groupTexts(records []core.TransformedText) map[string][]core.TransformedText {
	grouped := make(map[string][]core.TransformedText)
	for _, rec := range records {
		grouped[rec.PageName] = append(grouped[rec.PageName], rec)
	}
	return grouped
}

func groupColors(records []core.TransformedColor) map[string][]core.TransformedColor {
	grouped := make(map[string][]core.TransformedColor)
	for _, rec := range records {
		grouped[rec.PageName] = append(grouped[rec.PageName], rec)
	}
	return grouped
}

// Run executes a full job: extract, transform, replace, and publish
// the result atomically at outputPath.
func (p *Pipeline) Run(ctx context.Context, inputPath, style, outputPath string) *Job {
	job := newJob(inputPath)

	doc, err := wpxml.Parse(inputPath)
	if err != nil {
		return job.fail("load", err)
	}
	job.advance(StateLoaded)

	cat := p.ExtractDocument(doc)
	job.advance(StateExtracted)

	transformed := p.Transform(ctx, cat, style)
	job.advance(StateTransformed)

	if err := p.ReplaceDocument(doc, transformed); err != nil {
		return job.fail("replace", err)
	}
	job.advance(StateReplaced)

	data, err := doc.Bytes()
	if err != nil {
		return job.fail("serialize", err)
	}
	// Output must parse as a well-formed document before publishing.
	if _, err := wpxml.ParseBytes(data); err != nil {
		return job.fail("serialize", fmt.Errorf("output validation: %w", err))
	}
	if err := output.WriteAtomic(outputPath, data); err != nil {
		return job.fail("serialize", err)
	}
	job.advance(StateSerialized)

	p.logger.Info("job complete", "input", inputPath, "output", outputPath)
	return job
}
