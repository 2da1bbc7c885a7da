package utils

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
)

// SplitLines breaks content into display lines. A trailing newline ends the last
// line rather than starting an empty one; interior empty lines are kept.
func SplitLines(content string) []string {
	if content == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(content, "\n"), "\n")
}

// RenderNumberedLines writes content with right-aligned 1-based line numbers.
// When highlight is set the whole content is passed through chroma with the given
// theme, so multi-line comments and strings keep their colouring.
func RenderNumberedLines(w io.Writer, content string, language string, theme string, highlight bool) error {
	lines := SplitLines(content)
	width := len(strconv.Itoa(len(lines)))

	rendered := lines
	if highlight && len(lines) > 0 {
		var err error
		if rendered, err = highlightLines(content, len(lines), language, theme); err != nil {
			return err
		}
	}

	for i, line := range rendered {
		if _, err := fmt.Fprintf(w, "%*d | %s\n", width, i+1, line); err != nil {
			return err
		}
	}
	return nil
}

// highlightLines highlights content in one pass and splits the result into count
// lines. Escape codes chroma emits after the final newline stay on the last line.
func highlightLines(content string, count int, language string, theme string) ([]string, error) {
	var buf bytes.Buffer
	if err := quick.Highlight(&buf, content, language, "terminal256", theme); err != nil {
		return nil, err
	}

	out := strings.Split(buf.String(), "\n")
	if len(out) < count {
		return SplitLines(content), nil
	}
	out[count-1] += strings.Join(out[count:], "")
	return out[:count], nil
}

// LanguageForSuffix maps a script suffix such as ".lua" to a chroma lexer name.
func LanguageForSuffix(suffix string) string {
	return strings.TrimPrefix(strings.ToLower(suffix), ".")
}
