// Package logging configures the application logger. The terminal is owned
// by the UI, so logs go to a file.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// New opens (or creates) the log file at path and returns a logger writing
// to it at the given level name. An unknown level falls back to info.
func New(path, level string) (zerolog.Logger, func() error, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("creating log directory %s: %w", dir, err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("opening log file %s: %w", path, err)
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	log := zerolog.New(f).
		Level(lvl).
		With().
		Timestamp().
		Int("pid", os.Getpid()).
		Logger()

	return log, f.Close, nil
}
