package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"qbank/internal/config"
)

// Options describes logger construction parameters.
type Options struct {
	// Level applies to the log file, and to the console unless ConsoleLevel
	// is set.
	Level        string
	ConsoleLevel string
	// Format selects the console encoding: console or json. The log file is
	// always JSON.
	Format   string
	Console  io.Writer
	FilePath string
	// Development adds source locations regardless of level.
	Development bool
}

// New constructs a slog logger using the provided options.
func New(opts Options) (*slog.Logger, error) {
	fileLevel := parseLevel(opts.Level)
	consoleLevel := fileLevel
	if strings.TrimSpace(opts.ConsoleLevel) != "" {
		consoleLevel = parseLevel(opts.ConsoleLevel)
	}

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}
	consoleVar := new(slog.LevelVar)
	consoleVar.Set(consoleLevel)
	addSource := opts.Development || consoleLevel <= slog.LevelDebug

	format := strings.ToLower(strings.TrimSpace(opts.Format))
	if format == "" {
		format = "console"
	}

	var consoleHandler slog.Handler
	switch format {
	case "json":
		consoleHandler = newJSONHandler(console, consoleVar, addSource)
	case "console":
		consoleHandler = newPrettyHandler(console, consoleVar, addSource)
	default:
		return nil, fmt.Errorf("log format: unsupported value %q", opts.Format)
	}

	var fileHandler slog.Handler
	if path := strings.TrimSpace(opts.FilePath); path != "" {
		file, err := openLogFile(path)
		if err != nil {
			return nil, err
		}
		fileVar := new(slog.LevelVar)
		fileVar.Set(fileLevel)
		fileHandler = newJSONHandler(file, fileVar, opts.Development || fileLevel <= slog.LevelDebug)
	}

	return slog.New(newFanoutHandler(consoleHandler, fileHandler)), nil
}

// NewFromConfig creates a logger writing to stderr at consoleLevel and to
// the configured log file at the configured level.
func NewFromConfig(cfg *config.Config, consoleLevel string) (*slog.Logger, error) {
	if cfg == nil {
		return New(Options{Level: "info", ConsoleLevel: consoleLevel, Format: "console"})
	}
	return New(Options{
		Level:        cfg.Logging.Level,
		ConsoleLevel: consoleLevel,
		Format:       cfg.Logging.Format,
		FilePath:     cfg.LogPath(),
	})
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func openLogFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure log directory: %w", err)
		}
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o664)
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", path, err)
	}
	return file, nil
}
