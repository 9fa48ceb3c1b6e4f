// Package logging owns the process-wide logrus logger. The TUI holds the
// terminal, so log output goes to a file as JSON lines.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	logger *logrus.Logger
	closer io.Closer
	mu     sync.Mutex
)

// Options configure Init.
type Options struct {
	// File is the log destination. Empty discards output.
	File string
	// Level is a logrus level name; empty means info.
	Level string
}

// Init (re)creates the shared logger. It returns an error when the level is
// unknown or the file cannot be opened; the logger stays usable either way.
func Init(opts Options) error {
	mu.Lock()
	defer mu.Unlock()

	if closer != nil {
		_ = closer.Close()
		closer = nil
	}

	l := logrus.New()
	l.SetFormatter(&logrus.JSONFormatter{})
	l.SetLevel(logrus.InfoLevel)
	l.SetOutput(io.Discard)
	logger = l

	if lvl := strings.TrimSpace(opts.Level); lvl != "" {
		parsed, err := logrus.ParseLevel(lvl)
		if err != nil {
			return fmt.Errorf("log level: %w", err)
		}
		l.SetLevel(parsed)
	}

	path := strings.TrimSpace(opts.File)
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	l.SetOutput(file)
	closer = file
	return nil
}

// Get returns the shared logger, creating a discarding one if Init was never
// called.
func Get() *logrus.Logger {
	mu.Lock()
	defer mu.Unlock()
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(io.Discard)
	}
	return logger
}

// Close releases the log file.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if closer == nil {
		return nil
	}
	err := closer.Close()
	closer = nil
	if logger != nil {
		logger.SetOutput(io.Discard)
	}
	return err
}
