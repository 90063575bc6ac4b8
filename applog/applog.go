// Package applog configures the process-wide structured logger.
package applog

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// FileName is the log file written under the log dir in debug mode.
const FileName = "orbfall.log"

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Setup installs the default slog logger. With debug set, records at Debug
// and above go to dir/orbfall.log. Otherwise only warnings and errors reach
// stderr. Close the returned closer on exit.
func Setup(debug bool, dir string) (*slog.Logger, io.Closer, error) {
	if !debug {
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		slog.SetDefault(logger)
		return logger, nopCloser{}, nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(dir, FileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	slog.SetDefault(logger)
	return logger, f, nil
}
