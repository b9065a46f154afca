// Package report renders a human-readable digest of an export
// document: every post's body converted to Markdown plus the
// extraction catalogue statistics. Useful for reviewing what a
// restyle run will touch, or what it produced.
package report

import (
	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"github.com/gaurav-prasanna/themepipe/core"
	"github.com/gaurav-prasanna/themepipe/core/wpxml"
)

// Build assembles a digest from a parsed document and its catalogue.
// Posts whose body HTML fails to convert keep an empty Markdown field
// rather than failing the digest.
func Build(doc *wpxml.Document, cat core.Catalogue, source string) core.Digest {
	digest := core.Digest{
		Source:     source,
		TextCount:  len(cat.Texts),
		ColorCount: len(cat.Colors),
	}

	for _, post := range doc.Posts() {
		entry := core.DigestPost{
			Slug:  post.Slug(),
			Title: post.Title(),
		}
		_, entry.Widgets = post.WidgetTreeRaw()

		if html := post.ContentHTML(); html != "" {
			if md, err := htmltomarkdown.ConvertString(html); err == nil {
				entry.Markdown = md
			}
		}

		digest.Posts = append(digest.Posts, entry)
	}
	return digest
}
