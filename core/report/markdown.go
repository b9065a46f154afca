package report

import (
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/themepipe/core"
)

// MarkdownReporter renders a digest as a Markdown document.
type MarkdownReporter struct{}

// NewMarkdownReporter creates a MarkdownReporter.
func NewMarkdownReporter() *MarkdownReporter {
	return &MarkdownReporter{}
}

// Render writes the digest as Markdown.
func (r *MarkdownReporter) Render(digest core.Digest) ([]byte, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "# Theme digest: %s\n\n", digest.Source)
	fmt.Fprintf(&b, "- Posts: %d\n", len(digest.Posts))
	fmt.Fprintf(&b, "- Extracted texts: %d\n", digest.TextCount)
	fmt.Fprintf(&b, "- Extracted colors: %d\n\n", digest.ColorCount)

	for _, post := range digest.Posts {
		title := post.Title
		if title == "" {
			title = post.Slug
		}
		fmt.Fprintf(&b, "## %s\n\n", title)
		fmt.Fprintf(&b, "- Slug: `%s`\n", post.Slug)
		fmt.Fprintf(&b, "- Elementor data: %v\n\n", post.Widgets)
		if post.Markdown != "" {
			b.WriteString(strings.TrimSpace(post.Markdown))
			b.WriteString("\n\n")
		}
	}

	return []byte(b.String()), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownReporter) Extension() string {
	return ".md"
}
