package transform

import (
	"encoding/json"
	"fmt"
	"strings"
)

// textSystemPrompt constrains the model to rewrite content in place:
// preserve meaning, keep comparable length, always change the text,
// and answer in the strict ORIGINAL/NEW block format the parser reads.
const textSystemPrompt = `You are a WordPress theme content transformer. Transform each text to match the requested style while:
1. Preserving the core meaning and key information
2. Keeping the length and structure comparable to the original
3. Ensuring professional and coherent output
4. Never returning text unchanged unless explicitly requested

Format each transformation exactly as:
ORIGINAL: [original text]
NEW: [transformed text]`

// textUserPrompt builds the user message for one batch of texts.
func textUserPrompt(texts []string, style string) string {
	encoded, err := json.MarshalIndent(texts, "", "  ")
	if err != nil {
		// Strings always marshal; keep the fallback anyway.
		encoded = []byte(strings.Join(texts, "\n"))
	}

	return fmt.Sprintf(`Transform these WordPress theme texts to match this style: %s

Original texts:
%s

Required format for each text:
ORIGINAL: [original text]
NEW: [transformed text]`, style, encoded)
}

// colorSystemPrompt asks for a full replacement palette, explicitly
// instructing the model to vary hue within the requested palette
// instead of collapsing every input to one color.
const colorSystemPrompt = `You are a color palette generator for WordPress themes.
Generate new hex colors that match the requested style.
Always provide colors different from the originals.
Vary the shades within the requested palette: if the style calls for red, return a range of distinct reds, not the same red for every slot.
Return exactly one new color per input color, preserving letter case conventions.`

// colorUserPrompt builds the single (non-batched) color request.
func colorUserPrompt(colors []string, style string) string {
	encoded, err := json.MarshalIndent(colors, "", "  ")
	if err != nil {
		encoded = []byte(strings.Join(colors, "\n"))
	}

	return fmt.Sprintf(`Generate a new color palette matching this style: %s
Replace these colors with new ones that match the style:
%s

Return the result exactly in this format:
=== COLOR PALETTE ===
NEW COLORS: [list of new hex codes]
=== NOTES ===
[Explain your color choices]`, style, encoded)
}
