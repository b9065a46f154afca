package transform

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseTextBlocks(t *testing.T) {
	response := `ORIGINAL: Welcome to our site
NEW: Step into our world

ORIGINAL: Read more
NEW: Discover more`

	pairs, err := parseTextBlocks(response)
	require.NoError(t, err)
	require.Len(t, pairs, 2)
	require.Equal(t, "Welcome to our site", pairs[0].Original)
	require.Equal(t, "Step into our world", pairs[0].New)
	require.Equal(t, "Discover more", pairs[1].New)
}

func TestParseTextBlocksTrimsChatter(t *testing.T) {
	response := `Here are your transformations:
ORIGINAL: Hello
NEW: Greetings
=== END ===
`
	pairs, err := parseTextBlocks(response)
	require.NoError(t, err)
	require.Len(t, pairs, 1)
	require.Equal(t, "Greetings", pairs[0].New)
}

func TestParseTextBlocksErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"no markers", "I cannot help with that."},
		{"original without new", "ORIGINAL: hello there"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseTextBlocks(tt.input)
			require.Error(t, err)
		})
	}
}

func TestParseColorPalette(t *testing.T) {
	response := `=== COLOR PALETTE ===
NEW COLORS: #112233, #AABBCC, #fff
=== NOTES ===
Deep blues with a light accent.`

	colors, notes, err := parseColorPalette(response)
	require.NoError(t, err)
	require.Equal(t, []string{"#112233", "#AABBCC", "#fff"}, colors)
	require.Equal(t, "Deep blues with a light accent.", notes)
}

func TestParseColorPalettePreservesCase(t *testing.T) {
	colors, _, err := parseColorPalette("NEW COLORS: #AbCdEf #aabbcc")
	require.NoError(t, err)
	require.Equal(t, []string{"#AbCdEf", "#aabbcc"}, colors)
}

func TestParseColorPaletteErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"no section", "here are some colors: #112233"},
		{"section without colors", "NEW COLORS: none really"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := parseColorPalette(tt.input)
			require.Error(t, err)
		})
	}
}
