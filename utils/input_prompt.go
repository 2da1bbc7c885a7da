package utils

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/meysamhadeli/scriptbox/constants/lipgloss"
)

// LineReader reads whole lines from the console and writes prompts to out.
type LineReader struct {
	reader *bufio.Reader
	out    io.Writer
}

// NewLineReader wraps in for line-oriented reads.
func NewLineReader(in io.Reader, out io.Writer) *LineReader {
	return &LineReader{
		reader: bufio.NewReader(in),
		out:    out,
	}
}

// ReadLine returns the next line without its line terminator. A final line without a
// trailing newline is still returned; io.EOF is reported only once nothing is left.
func (r *LineReader) ReadLine() (string, error) {
	line, err := r.reader.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("error reading input: %w", err)
		}
		if line == "" {
			return "", io.EOF
		}
	}

	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line, nil
}

// InputPrompt prints label and returns the trimmed answer.
func (r *LineReader) InputPrompt(label string) (string, error) {
	fmt.Fprint(r.out, lipgloss.BlueSky.Render(label+" "))

	userInput, err := r.ReadLine()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(userInput), nil
}

// ConfirmPrompt asks a [y/N] question. Only a lone "y" or "Y" counts as yes;
// anything else, including end of input, is a no.
func (r *LineReader) ConfirmPrompt(question string) (bool, error) {
	answer, err := r.InputPrompt(question + " [y/N]:")
	if err != nil {
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		return false, err
	}
	return strings.EqualFold(answer, "y"), nil
}

// Lines yields input lines until the sentinel line or end of input, whichever comes first.
// The sentinel itself is consumed and not yielded. Each call continues from the
// current read position, so the sequence can be restarted for the next block of input.
func (r *LineReader) Lines(sentinel string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for {
			line, err := r.ReadLine()
			if err != nil || line == sentinel {
				return
			}
			if !yield(line) {
				return
			}
		}
	}
}

// ReadBlock collects the lines yielded by Lines joined with "\n".
func (r *LineReader) ReadBlock(sentinel string) string {
	var lines []string
	for line := range r.Lines(sentinel) {
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
