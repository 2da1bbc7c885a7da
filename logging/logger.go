package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger returns a logger entry tagged with component. Diagnostics go to out
// (stderr when nil) so they never interleave with the menu on stdout.
// An unknown level falls back to warn.
func NewLogger(component string, level string, out io.Writer) *logrus.Entry {
	logger := logrus.New()

	if out == nil {
		out = os.Stderr
	}
	logger.SetOutput(out)

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.WarnLevel
	}
	logger.SetLevel(parsed)

	logger.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		DisableColors:    true,
	})

	return logger.WithField("component", component)
}
