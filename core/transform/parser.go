package transform

import (
	"fmt"
	"regexp"
	"strings"
)

// LLM responses are free-form text; parsing is best-effort and returns
// an error instead of guessing, so the caller can apply the identity
// fallback uniformly.

// textPair is one ORIGINAL/NEW block from a batch response.
type textPair struct {
	Original string
	New      string
}

var (
	trailingOriginal = regexp.MustCompile(`(?s)ORIGINAL:.*`)
	delimiterLine    = regexp.MustCompile(`===.*===`)
	hexToken         = regexp.MustCompile(`#(?:[0-9a-fA-F]{6}|[0-9a-fA-F]{3})`)
	newColorsSection = regexp.MustCompile(`(?s)NEW COLORS:(.+?)(?:===|$)`)
	notesSection     = regexp.MustCompile(`(?s)=== NOTES ===(.+?)(?:===|$)`)
)

// parseTextBlocks splits a batch response on the ORIGINAL: marker and
// pairs each block's ORIGINAL/NEW sections. Blocks without a NEW
// section are dropped; a response with no valid block at all is an
// error.
func parseTextBlocks(response string) ([]textPair, error) {
	blocks := strings.Split(response, "ORIGINAL:")
	if len(blocks) < 2 {
		return nil, fmt.Errorf("no ORIGINAL: blocks in response")
	}

	var pairs []textPair
	for _, block := range blocks[1:] {
		parts := strings.SplitN(block, "NEW:", 2)
		if len(parts) != 2 {
			continue
		}
		original := strings.TrimSpace(parts[0])
		transformed := strings.TrimSpace(parts[1])

		// Trim model chatter that bleeds past the block.
		transformed = strings.TrimSpace(trailingOriginal.ReplaceAllString(transformed, ""))
		transformed = strings.TrimSpace(delimiterLine.ReplaceAllString(transformed, ""))

		pairs = append(pairs, textPair{Original: original, New: transformed})
	}

	if len(pairs) == 0 {
		return nil, fmt.Errorf("no complete ORIGINAL/NEW pairs in response")
	}
	return pairs, nil
}

// parseColorPalette extracts hex tokens from the NEW COLORS: section
// and the free-text notes, preserving letter case. A response with no
// parseable color is an error.
func parseColorPalette(response string) (colors []string, notes string, err error) {
	section := newColorsSection.FindStringSubmatch(response)
	if section == nil {
		return nil, "", fmt.Errorf("no NEW COLORS: section in response")
	}

	colors = hexToken.FindAllString(section[1], -1)
	if len(colors) == 0 {
		return nil, "", fmt.Errorf("no hex colors in NEW COLORS: section")
	}

	if m := notesSection.FindStringSubmatch(response); m != nil {
		notes = strings.TrimSpace(m[1])
	}
	return colors, notes, nil
}
