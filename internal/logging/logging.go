// Package logging configures the process-wide zerolog logger.
package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Output formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// SetupWithWriter configures zerolog to write to w. The console format is
// human-readable; json emits one object per line.
func SetupWithWriter(level, format string, w io.Writer) (zerolog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), err
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	var writer io.Writer
	switch strings.ToLower(format) {
	case "", FormatConsole:
		writer = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	case FormatJSON:
		writer = w
	default:
		return zerolog.Nop(), fmt.Errorf("unknown log format %q", format)
	}

	logger := zerolog.New(writer).With().Timestamp().Logger().Level(lvl)
	log.Logger = logger
	return logger, nil
}

// ParseLevel parses a zerolog level name; empty means info.
func ParseLevel(level string) (zerolog.Level, error) {
	if level == "" {
		return zerolog.InfoLevel, nil
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return lvl, nil
}
