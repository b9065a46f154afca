package transform

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/themepipe/core"
)

// fakeGenerator scripts responses per call and records prompts.
type fakeGenerator struct {
	mu      sync.Mutex
	fn      func(system, user string) (string, error)
	prompts []string
}

func (f *fakeGenerator) Generate(_ context.Context, system, user string) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, user)
	f.mu.Unlock()
	return f.fn(system, user)
}

func textRecords(contents ...string) []core.ExtractedText {
	records := make([]core.ExtractedText, len(contents))
	for i, c := range contents {
		records[i] = core.ExtractedText{
			PageName:    "home",
			SectionName: "Hero",
			Label:       "heading_title",
			SettingsKey: "title",
			Content:     c,
			WidgetID:    fmt.Sprintf("w%d", i),
		}
	}
	return records
}

func colorRecords(values ...string) []core.ExtractedColor {
	records := make([]core.ExtractedColor, len(values))
	for i, v := range values {
		records[i] = core.ExtractedColor{
			PageName:     "home",
			SectionName:  "Hero",
			VariableName: "background_background_color",
			SettingsKey:  "background_color",
			ColorValue:   v,
			WidgetID:     fmt.Sprintf("w%d", i),
		}
	}
	return records
}

func upperCaseResponder(system, user string) (string, error) {
	if strings.Contains(system, "color palette generator") {
		return "NEW COLORS: #111111 #222222 #333333", nil
	}
	// Echo every quoted input line as an upper-cased transformation.
	var b strings.Builder
	for _, line := range strings.Split(user, "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(line), ","))
		if strings.HasPrefix(line, `"`) && strings.HasSuffix(line, `"`) {
			text := line[1 : len(line)-1]
			fmt.Fprintf(&b, "ORIGINAL: %s\nNEW: %s\n", text, strings.ToUpper(text))
		}
	}
	return b.String(), nil
}

func TestTransformRewritesTexts(t *testing.T) {
	gen := &fakeGenerator{fn: upperCaseResponder}
	tr := New(gen, Config{BatchSize: 2})

	cat := core.Catalogue{Texts: textRecords("hello", "world", "again")}
	out := tr.Transform(context.Background(), cat, "loud")

	require.Len(t, out.Texts, 3)
	require.Equal(t, "HELLO", out.Texts[0].TransformedContent)
	require.Equal(t, "WORLD", out.Texts[1].TransformedContent)
	require.Equal(t, "AGAIN", out.Texts[2].TransformedContent)

	// Identity fields carry through untouched.
	require.Equal(t, "hello", out.Texts[0].Content)
	require.Equal(t, "w0", out.Texts[0].WidgetID)
	require.Equal(t, "Hero", out.Texts[0].SectionName)

	// 3 records at batch size 2 = 2 text requests, plus none for colors.
	require.Len(t, gen.prompts, 2)
}

func TestBatchFailureFallsBackToIdentity(t *testing.T) {
	calls := 0
	gen := &fakeGenerator{fn: func(system, user string) (string, error) {
		if strings.Contains(system, "color palette") {
			return "", fmt.Errorf("unreachable")
		}
		calls++
		if calls == 1 {
			return "", fmt.Errorf("rate limited")
		}
		return upperCaseResponder(system, user)
	}}
	tr := New(gen, Config{BatchSize: 2})

	cat := core.Catalogue{Texts: textRecords("one", "two", "three")}
	out := tr.Transform(context.Background(), cat, "style")

	require.Len(t, out.Texts, 3)
	// First batch degraded to identity; second batch transformed.
	require.Equal(t, "one", out.Texts[0].TransformedContent)
	require.Equal(t, "two", out.Texts[1].TransformedContent)
	require.Equal(t, "THREE", out.Texts[2].TransformedContent)
}

func TestUnparsableResponseFallsBackToIdentity(t *testing.T) {
	gen := &fakeGenerator{fn: func(string, string) (string, error) {
		return "I would love to help but cannot.", nil
	}}
	tr := New(gen, Config{})

	cat := core.Catalogue{Texts: textRecords("keep me")}
	out := tr.Transform(context.Background(), cat, "style")

	require.Len(t, out.Texts, 1)
	require.Equal(t, "keep me", out.Texts[0].TransformedContent)
}

func TestMissingBlocksKeepOriginal(t *testing.T) {
	gen := &fakeGenerator{fn: func(string, string) (string, error) {
		return "ORIGINAL: first\nNEW: FIRST", nil
	}}
	tr := New(gen, Config{BatchSize: 5})

	cat := core.Catalogue{Texts: textRecords("first", "second")}
	out := tr.Transform(context.Background(), cat, "style")

	require.Equal(t, "FIRST", out.Texts[0].TransformedContent)
	require.Equal(t, "second", out.Texts[1].TransformedContent)
}

func TestColorPaletteApplied(t *testing.T) {
	gen := &fakeGenerator{fn: func(system, user string) (string, error) {
		return `NEW COLORS: #111111 #222222
=== NOTES ===
Two tones.`, nil
	}}
	tr := New(gen, Config{})

	cat := core.Catalogue{Colors: colorRecords("#aaaaaa", "#bbbbbb")}
	out := tr.Transform(context.Background(), cat, "style")

	require.Len(t, out.Colors, 2)
	require.Equal(t, "#111111", out.Colors[0].TransformedColor)
	require.Equal(t, "#222222", out.Colors[1].TransformedColor)
	require.Equal(t, "Two tones.", out.Notes)
}

func TestShortPaletteCycles(t *testing.T) {
	gen := &fakeGenerator{fn: func(string, string) (string, error) {
		return "NEW COLORS: #111111 #222222", nil
	}}
	tr := New(gen, Config{})

	cat := core.Catalogue{Colors: colorRecords("#a1a1a1", "#b2b2b2", "#c3c3c3", "#d4d4d4")}
	out := tr.Transform(context.Background(), cat, "style")

	require.Equal(t, "#111111", out.Colors[0].TransformedColor)
	require.Equal(t, "#222222", out.Colors[1].TransformedColor)
	require.Equal(t, "#111111", out.Colors[2].TransformedColor)
	require.Equal(t, "#222222", out.Colors[3].TransformedColor)
}

func TestColorFailureKeepsOriginalPalette(t *testing.T) {
	gen := &fakeGenerator{fn: func(string, string) (string, error) {
		return "", fmt.Errorf("timeout")
	}}
	tr := New(gen, Config{})

	cat := core.Catalogue{Colors: colorRecords("#aaaaaa", "#bbbbbb")}
	out := tr.Transform(context.Background(), cat, "style")

	require.Equal(t, "#aaaaaa", out.Colors[0].TransformedColor)
	require.Equal(t, "#bbbbbb", out.Colors[1].TransformedColor)
}

func TestConcurrentBatchesPreserveOrder(t *testing.T) {
	gen := &fakeGenerator{fn: upperCaseResponder}
	tr := New(gen, Config{BatchSize: 1, Concurrency: 4})

	contents := []string{"a1", "b2", "c3", "d4", "e5", "f6", "g7", "h8"}
	cat := core.Catalogue{Texts: textRecords(contents...)}
	out := tr.Transform(context.Background(), cat, "style")

	require.Len(t, out.Texts, len(contents))
	for i, want := range contents {
		require.Equal(t, strings.ToUpper(want), out.Texts[i].TransformedContent)
		require.Equal(t, want, out.Texts[i].Content)
	}
}

func TestBatchRecords(t *testing.T) {
	records := textRecords("a", "b", "c", "d", "e")

	batches := batchRecords(records, 2)
	require.Len(t, batches, 3)
	require.Len(t, batches[0], 2)
	require.Len(t, batches[1], 2)
	require.Len(t, batches[2], 1)

	require.Nil(t, batchRecords(nil, 2))
}
