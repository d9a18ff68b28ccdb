// Package logging builds the charmbracelet loggers shared by the scene packages.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// New creates a timestamped logger writing to w.
func New(w io.Writer, prefix string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

// OrDiscard returns l, or a discarding logger when l is nil.
func OrDiscard(l *log.Logger) *log.Logger {
	if l == nil {
		return Discard()
	}
	return l
}

// OpenFile creates a logger appending to the file at path.
// The terminal owns stdout while a game runs, so interactive sessions log here.
// A leading ~ is expanded to the user's home directory.
func OpenFile(path, prefix, level string) (*log.Logger, io.Closer, error) {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, nil, fmt.Errorf("logging: get home dir: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("logging: create directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("logging: open file: %w", err)
	}

	logger := New(f, prefix)
	if level != "" {
		lvl, err := log.ParseLevel(level)
		if err != nil {
			f.Close()
			return nil, nil, fmt.Errorf("logging: parse level %q: %w", level, err)
		}
		logger.SetLevel(lvl)
	}
	return logger, f, nil
}
