package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/gaurav-prasanna/themepipe/core"
)

// PDFReporter renders a digest as a PDF document.
type PDFReporter struct{}

// NewPDFReporter creates a PDFReporter.
func NewPDFReporter() *PDFReporter {
	return &PDFReporter{}
}

// Render converts the digest into PDF bytes.
func (r *PDFReporter) Render(digest core.Digest) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.MultiCell(0, 8, "Theme digest: "+digest.Source, "", "L", false)
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(100, 100, 100)
	summary := fmt.Sprintf("%d posts, %d extracted texts, %d extracted colors",
		len(digest.Posts), digest.TextCount, digest.ColorCount)
	pdf.MultiCell(0, 5, summary, "", "L", false)
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(6)

	for _, post := range digest.Posts {
		title := post.Title
		if title == "" {
			title = post.Slug
		}
		pdf.SetFont("Helvetica", "B", 14)
		pdf.MultiCell(0, 7, title, "", "L", false)

		pdf.SetFont("Helvetica", "I", 9)
		pdf.SetTextColor(100, 100, 100)
		meta := "slug: " + post.Slug
		if post.Widgets {
			meta += " (Elementor)"
		}
		pdf.MultiCell(0, 5, meta, "", "L", false)
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(2)

		if post.Markdown != "" {
			pdf.SetFont("Helvetica", "", 10)
			for _, line := range strings.Split(post.Markdown, "\n") {
				if strings.TrimSpace(line) == "" {
					pdf.Ln(3)
					continue
				}
				pdf.MultiCell(0, 5, cleanInlineMarkdown(line), "", "L", false)
			}
		}
		pdf.Ln(5)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFReporter) Extension() string {
	return ".pdf"
}

// cleanInlineMarkdown strips inline Markdown formatting for PDF
// rendering.
func cleanInlineMarkdown(text string) string {
	text = strings.ReplaceAll(text, "**", "")
	text = strings.ReplaceAll(text, "__", "")
	text = strings.ReplaceAll(text, "`", "")
	text = strings.TrimLeft(text, "# ")
	return strings.TrimSpace(text)
}
