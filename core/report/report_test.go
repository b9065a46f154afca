package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/themepipe/core"
	"github.com/gaurav-prasanna/themepipe/core/wpxml"
)

const sampleExport = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:content="http://purl.org/rss/1.0/modules/content/" xmlns:excerpt="http://wordpress.org/export/1.2/excerpt/" xmlns:wp="http://wordpress.org/export/1.2/">
	<channel>
		<title>Test Site</title>
		<item>
			<title>Home</title>
			<wp:post_name>home</wp:post_name>
			<wp:post_type>page</wp:post_type>
			<content:encoded><![CDATA[<h1>Welcome</h1><p>Our <strong>great</strong> site.</p>]]></content:encoded>
			<wp:postmeta>
				<wp:meta_key>_elementor_data</wp:meta_key>
				<wp:meta_value><![CDATA[[]]]></wp:meta_value>
			</wp:postmeta>
		</item>
		<item>
			<title>About</title>
			<wp:post_name>about</wp:post_name>
			<wp:post_type>page</wp:post_type>
		</item>
	</channel>
</rss>
`

func sampleDigest(t *testing.T) core.Digest {
	t.Helper()
	doc, err := wpxml.ParseBytes([]byte(sampleExport))
	require.NoError(t, err)

	cat := core.Catalogue{
		Texts:  make([]core.ExtractedText, 3),
		Colors: make([]core.ExtractedColor, 2),
	}
	return Build(doc, cat, "export.xml")
}

func TestBuild(t *testing.T) {
	digest := sampleDigest(t)

	require.Equal(t, "export.xml", digest.Source)
	require.Equal(t, 3, digest.TextCount)
	require.Equal(t, 2, digest.ColorCount)
	require.Len(t, digest.Posts, 2)

	home := digest.Posts[0]
	require.Equal(t, "home", home.Slug)
	require.Equal(t, "Home", home.Title)
	require.True(t, home.Widgets)
	require.Contains(t, home.Markdown, "# Welcome")
	require.Contains(t, home.Markdown, "**great**")

	about := digest.Posts[1]
	require.False(t, about.Widgets)
	require.Empty(t, about.Markdown)
}

func TestMarkdownReporter(t *testing.T) {
	r := NewMarkdownReporter()
	require.Equal(t, ".md", r.Extension())

	out, err := r.Render(sampleDigest(t))
	require.NoError(t, err)
	text := string(out)

	require.True(t, strings.HasPrefix(text, "# Theme digest: export.xml"))
	require.Contains(t, text, "- Extracted texts: 3")
	require.Contains(t, text, "- Extracted colors: 2")
	require.Contains(t, text, "## Home")
	require.Contains(t, text, "`home`")
	require.Contains(t, text, "## About")
}

func TestPDFReporter(t *testing.T) {
	r := NewPDFReporter()
	require.Equal(t, ".pdf", r.Extension())

	out, err := r.Render(sampleDigest(t))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(out), "%PDF"))
}
