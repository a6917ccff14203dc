// Package log sets up the application logger. Output goes to a file because
// bubbletea owns the terminal while the TUI runs.
package log

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// New creates a logger writing JSON lines to the given file, creating parent
// directories as needed. If the file cannot be opened the logger is returned
// with discarded output; logging is never a reason to refuse to start.
func New(path string) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(logrus.InfoLevel)

	if path == "" {
		logger.SetOutput(io.Discard)
		return logger
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		logger.SetOutput(io.Discard)
		return logger
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		logger.SetOutput(io.Discard)
		return logger
	}

	logger.SetOutput(file)
	return logger
}
