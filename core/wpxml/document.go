// Package wpxml adapts the WordPress export format (WXR). It locates
// posts and their embedded Elementor metadata, and re-serializes the
// document without disturbing anything it did not touch: etree keeps
// namespace prefixes, CDATA sections, and attribute order verbatim.
package wpxml

import (
	"fmt"

	"github.com/beevik/etree"

	"github.com/gaurav-prasanna/themepipe/core"
)

// elementorMetaKey is the postmeta key holding the widget tree JSON.
const elementorMetaKey = "_elementor_data"

// wpNamespaceAttr is the one namespace declaration the adapter insists
// on: the Elementor payload lives under wp:postmeta. The content and
// excerpt prefixes exports also declare are passed through untouched
// and their absence only empties optional fields.
const wpNamespaceAttr = "xmlns:wp"

// Document is a parsed WordPress export.
type Document struct {
	doc *etree.Document
}

// Parse reads a WordPress export file.
func Parse(path string) (*Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrMalformedDocument, err)
	}
	return wrap(doc)
}

// ParseBytes reads a WordPress export from memory.
func ParseBytes(data []byte) (*Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrMalformedDocument, err)
	}
	return wrap(doc)
}

func wrap(doc *etree.Document) (*Document, error) {
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("%w: no root element", core.ErrMalformedDocument)
	}
	if root.Tag != "rss" {
		return nil, fmt.Errorf("%w: root element is <%s>, want <rss>", core.ErrMalformedDocument, root.Tag)
	}
	if root.FindElement("channel") == nil {
		return nil, fmt.Errorf("%w: missing <channel>", core.ErrMalformedDocument)
	}
	if root.SelectAttr(wpNamespaceAttr) == nil {
		return nil, fmt.Errorf("%w: missing wp namespace declaration", core.ErrMalformedDocument)
	}
	return &Document{doc: doc}, nil
}

// Posts returns every <item> in the channel, in document order.
func (d *Document) Posts() []*Post {
	items := d.doc.FindElements("//channel/item")
	posts := make([]*Post, 0, len(items))
	for _, item := range items {
		posts = append(posts, &Post{item: item})
	}
	return posts
}

// FindPost looks a post up by slug. Returns nil when absent; the
// caller decides whether a missing post is fatal.
func (d *Document) FindPost(slug string) *Post {
	for _, p := range d.Posts() {
		if p.Slug() == slug {
			return p
		}
	}
	return nil
}

// Bytes serializes the document as UTF-8 XML with an XML declaration.
func (d *Document) Bytes() ([]byte, error) {
	d.ensureDeclaration()
	data, err := d.doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("serializing document: %w", err)
	}
	return data, nil
}

// ensureDeclaration prepends an XML declaration when the source file
// lacked one.
func (d *Document) ensureDeclaration() {
	for _, tok := range d.doc.Child {
		if _, ok := tok.(*etree.ProcInst); ok {
			return
		}
	}
	d.doc.InsertChildAt(0, &etree.ProcInst{
		Target: "xml",
		Inst:   `version="1.0" encoding="UTF-8"`,
	})
}

// Post is one <item> of the export: a page, post, or attachment.
type Post struct {
	item *etree.Element
}

// Slug returns the wp:post_name, the post's unique identifier within
// the document.
func (p *Post) Slug() string {
	if e := p.item.FindElement("wp:post_name"); e != nil {
		return e.Text()
	}
	return ""
}

// Title returns the post title.
func (p *Post) Title() string {
	if e := p.item.FindElement("title"); e != nil {
		return e.Text()
	}
	return ""
}

// PostType returns the wp:post_type (page, post, attachment, ...).
func (p *Post) PostType() string {
	if e := p.item.FindElement("wp:post_type"); e != nil {
		return e.Text()
	}
	return ""
}

// ContentHTML returns the content:encoded payload, the post body HTML.
func (p *Post) ContentHTML() string {
	if e := p.item.FindElement("content:encoded"); e != nil {
		return e.Text()
	}
	return ""
}

// WidgetTreeRaw returns the raw JSON text of the Elementor metadata
// field, or false if the post has none.
func (p *Post) WidgetTreeRaw() (string, bool) {
	meta := p.elementorMetaValue()
	if meta == nil {
		return "", false
	}
	text := meta.Text()
	if text == "" {
		return "", false
	}
	return text, true
}

// SetWidgetTreeRaw overwrites the Elementor metadata field in place.
// The value is written as CDATA, matching how WordPress exports it.
func (p *Post) SetWidgetTreeRaw(jsonText string) error {
	meta := p.elementorMetaValue()
	if meta == nil {
		return fmt.Errorf("%w: post %q", core.ErrMissingWidgetData, p.Slug())
	}
	meta.SetCData(jsonText)
	return nil
}

// elementorMetaValue finds the wp:meta_value element of the postmeta
// entry whose key is _elementor_data.
func (p *Post) elementorMetaValue() *etree.Element {
	for _, meta := range p.item.FindElements("wp:postmeta") {
		key := meta.FindElement("wp:meta_key")
		if key == nil || key.Text() != elementorMetaKey {
			continue
		}
		return meta.FindElement("wp:meta_value")
	}
	return nil
}
