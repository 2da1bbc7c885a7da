package utils

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReader(input string) (*LineReader, *bytes.Buffer) {
	var out bytes.Buffer
	return NewLineReader(strings.NewReader(input), &out), &out
}

func TestReadLine(t *testing.T) {
	reader, _ := newReader("first\r\nsecond\nlast")

	for _, want := range []string{"first", "second", "last"} {
		line, err := reader.ReadLine()
		require.NoError(t, err)
		assert.Equal(t, want, line)
	}

	_, err := reader.ReadLine()
	assert.ErrorIs(t, err, io.EOF)
}

func TestInputPrompt(t *testing.T) {
	reader, out := newReader("  42  \n")

	answer, err := reader.InputPrompt("Directory id:")

	require.NoError(t, err)
	assert.Equal(t, "42", answer)
	assert.Contains(t, out.String(), "Directory id:")
}

func TestConfirmPrompt(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"Y\n", true},
		{" y \n", true},
		{"yes\n", false},
		{"n\n", false},
		{"\n", false},
		{"", false},
		{"yy\n", false},
	}

	for _, tt := range tests {
		reader, _ := newReader(tt.input)
		got, err := reader.ConfirmPrompt("Delete?")
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
	}
}

func TestLines_StopsAtSentinel(t *testing.T) {
	reader, _ := newReader("print(1)\n\n  END\nprint(2)\nEND\nafter\n")

	var lines []string
	for line := range reader.Lines("END") {
		lines = append(lines, line)
	}
	assert.Equal(t, []string{"print(1)", "", "  END", "print(2)"}, lines)

	next, err := reader.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "after", next)
}

func TestLines_StopsAtEndOfInput(t *testing.T) {
	reader, _ := newReader("a\nb")

	assert.Equal(t, "a\nb", reader.ReadBlock("END"))
	assert.Equal(t, "", reader.ReadBlock("END"))
}

func TestLines_Restartable(t *testing.T) {
	reader, _ := newReader("one\nEND\ntwo\nthree\nEND\n")

	assert.Equal(t, "one", reader.ReadBlock("END"))
	assert.Equal(t, "two\nthree", reader.ReadBlock("END"))
}

func TestLines_EarlyBreakKeepsPosition(t *testing.T) {
	reader, _ := newReader("a\nb\nc\nEND\n")

	for line := range reader.Lines("END") {
		assert.Equal(t, "a", line)
		break
	}

	assert.Equal(t, "b\nc", reader.ReadBlock("END"))
}
