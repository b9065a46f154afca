package transform

import (
	"regexp"
	"strings"
)

var (
	strayBackslash = regexp.MustCompile(`\\([^"\\/])`)
	doubledQuotes  = regexp.MustCompile(`"{2,}`)
)

// removeEscapes strips the spurious backslash-escaping and redundant
// wrapping quotes some models add when echoing JSON-looking input.
func removeEscapes(text string) string {
	if text == "" {
		return text
	}

	text = strings.TrimSpace(text)

	// Unwrap a fully-quoted string.
	if len(text) >= 2 && strings.HasPrefix(text, `"`) && strings.HasSuffix(text, `"`) {
		text = text[1 : len(text)-1]
	}

	text = strings.ReplaceAll(text, `\"`, `"`)
	text = strings.ReplaceAll(text, `\\`, `\`)
	text = strings.ReplaceAll(text, `\n`, "\n")

	// Backslashes not escaping a quote, slash, or backslash are noise.
	text = strayBackslash.ReplaceAllString(text, "$1")
	text = strings.TrimSuffix(text, `\`)

	text = doubledQuotes.ReplaceAllString(text, `"`)
	return text
}
