// Package telemetry builds the program logger.
// The alternate screen owns the terminal, so logs go to a file or nowhere.
package telemetry

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// Prefix is prepended to every log line.
const Prefix = "buildtree"

// NewLogger returns a logger writing to path, or a discarding logger when
// path is empty. The returned closer must be called on shutdown.
func NewLogger(path string, debug bool) (*log.Logger, io.Closer, error) {
	var w io.Writer = io.Discard
	var closer io.Closer = nopCloser{}

	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("telemetry: cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("telemetry: cannot open log file: %w", err)
		}
		w, closer = f, f
	}

	return New(w, debug), closer, nil
}

// New returns a logger writing to w.
func New(w io.Writer, debug bool) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          Prefix,
	})
	if debug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return New(io.Discard, false)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
