package transform

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRemoveEscapes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Hello world", "Hello world"},
		{"wrapped quotes", `"Hello world"`, "Hello world"},
		{"escaped quotes", `She said \"hi\"`, `She said "hi"`},
		{"literal newline", `line one\nline two`, "line one\nline two"},
		{"stray backslash", `odd \escape here`, "odd escape here"},
		{"trailing backslash", `dangling\`, "dangling"},
		{"doubled quotes", `a ""quoted"" word`, `a "quoted" word`},
		{"empty", "", ""},
		{"whitespace trimmed", "  padded  ", "padded"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, removeEscapes(tt.input))
		})
	}
}
