// Package logging routes structured logs away from the terminal while the game owns it
package logging

import (
	"fmt"
	"io"
	stdlog "log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// MaxLogSize is the size above which an existing log file is rotated at startup
const MaxLogSize = 10 << 20

// Options controls where logs go
type Options struct {
	// Enabled writes logs to Path; otherwise everything is discarded
	Enabled bool
	Path    string
	Level   zerolog.Level
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Setup builds the root logger. The stdlib logger is redirected to the same sink so that
// nothing reaches stdout or stderr while the screen is in raw mode.
// The returned closer releases the log file.
func Setup(opts Options) (zerolog.Logger, io.Closer, error) {
	if !opts.Enabled {
		stdlog.SetOutput(io.Discard)
		return zerolog.Nop(), nopCloser{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("create log directory: %w", err)
	}
	if err := rotate(opts.Path, time.Now()); err != nil {
		return zerolog.Nop(), nil, err
	}

	f, err := os.OpenFile(opts.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("open log file: %w", err)
	}

	stdlog.SetOutput(f)
	logger := zerolog.New(f).Level(opts.Level).With().Timestamp().Logger()
	return logger, f, nil
}

// rotate renames an oversized log to a timestamped sibling with the same extension
func rotate(path string, now time.Time) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("stat log file: %w", err)
	}
	if info.Size() <= MaxLogSize {
		return nil
	}

	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	rotated := fmt.Sprintf("%s-%s%s", base, now.Format("20060102-150405"), ext)
	if err := os.Rename(path, rotated); err != nil {
		return fmt.Errorf("rotate log file: %w", err)
	}
	return nil
}

// Component derives a child logger tagged with the component name
func Component(logger zerolog.Logger, name string) zerolog.Logger {
	return logger.With().Str("component", name).Logger()
}
