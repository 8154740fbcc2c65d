package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/lmittmann/tint"

	"github.com/sinterlabs/fornax/internal/config"
)

// loadConfig resolves the config file: the --config path when given, the
// default path otherwise (created with defaults on first run).
func loadConfig(globals *GlobalFlags) (*config.Config, error) {
	if globals != nil && globals.Config != "" {
		return config.LoadOrCreateAt(globals.Config)
	}
	return config.LoadOrCreate()
}

// newLogger builds the stderr logger used by console subcommands.
func newLogger(level string, verbose bool) *slog.Logger {
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      logLevel(level, verbose),
		TimeFormat: "15:04:05",
	}))
}

// newFileLogger builds the logger used while the TUI owns the terminal.
// The returned func closes the log file.
func newFileLogger(path, level string, verbose bool) (*slog.Logger, func(), error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	log := slog.New(tint.NewHandler(f, &tint.Options{
		Level:      logLevel(level, verbose),
		TimeFormat: "15:04:05",
		NoColor:    true,
	}))
	return log, func() { f.Close() }, nil
}

func logLevel(level string, verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
