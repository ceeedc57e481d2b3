package actions

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/sethvargo/go-githubactions"
)

const outputEnv = "GITHUB_OUTPUT"

// Writer records named step outputs for a CI runner.
type Writer struct {
	path   string
	action *githubactions.Action
}

// NewWriter returns a Writer appending to the configured output file. Without
// one, outputs are printed to out as workflow commands.
func NewWriter(cfg Config, out io.Writer) *Writer {
	path := cfg.Output
	action := githubactions.New(
		githubactions.WithWriter(out),
		githubactions.WithGetenv(func(key string) string {
			if key == outputEnv {
				return path
			}
			return os.Getenv(key)
		}),
	)
	return &Writer{path: path, action: action}
}

// Set records one output. Multi-line values are written with a heredoc delimiter.
func (w *Writer) Set(name, value string) error {
	// SetOutput does not report file errors; open the file once to surface them.
	if w.path != "" {
		f, err := os.OpenFile(w.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open output file: %w", err)
		}
		_ = f.Close()
	}
	w.action.SetOutput(name, value)
	return nil
}

// SetBool records a boolean output.
func (w *Writer) SetBool(name string, value bool) error {
	return w.Set(name, strconv.FormatBool(value))
}
