// Package logger builds the slog logger used for the error channel.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Options selects level, destination and format of log output.
type Options struct {
	Level  string // debug, info, warn, error; empty means warn
	File   string // append to this file; empty means stderr, os.DevNull discards
	Format string // text or json; empty means text
}

// New returns a logger for options. Unusable options fall back to their
// defaults and the fallback is logged as a warning.
func New(options *Options) *slog.Logger {
	return newWithStderr(options, os.Stderr)
}

func newWithStderr(options *Options, stderr io.Writer) *slog.Logger {
	var opts slog.HandlerOptions
	switch strings.ToLower(options.Level) {
	case "", "warn", "warning":
		opts.Level = slog.LevelWarn
	case "debug":
		opts.Level = slog.LevelDebug
	case "info":
		opts.Level = slog.LevelInfo
	case "error":
		opts.Level = slog.LevelError
	default:
		bad := options.Level
		options.Level = ""
		logger := newWithStderr(options, stderr)
		logger.Warn("could not parse logger level", "level", bad)
		return logger
	}

	var output io.Writer
	switch options.File {
	case "":
		output = stderr
	case os.DevNull:
		return slog.New(slog.DiscardHandler)
	default:
		f, err := os.OpenFile(options.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			options.File = ""
			logger := newWithStderr(options, stderr)
			logger.Warn("could not open logger output", "err", err)
			return logger
		}
		output = f
	}

	var handler slog.Handler
	switch strings.ToLower(options.Format) {
	case "json":
		handler = slog.NewJSONHandler(output, &opts)
	case "", "text":
		handler = slog.NewTextHandler(output, &opts)
	default:
		bad := options.Format
		options.Format = "text"
		logger := newWithStderr(options, stderr)
		logger.Warn("could not parse logger format", "format", bad)
		return logger
	}

	return slog.New(handler)
}
