package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const ServiceName = "vendor-gateway"

func New(level string) *zerolog.Logger {
	return NewWithOutput(level, os.Stdout)
}

func NewWithOutput(level string, output io.Writer) *zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	log := zerolog.
		New(output).
		With().
		Timestamp().
		Str("service", ServiceName).
		Logger().
		Level(ParseLevel(level))

	return &log
}

// ParseLevel falls back to info for empty or unknown levels.
func ParseLevel(value string) zerolog.Level {
	levelString := strings.ToLower(strings.TrimSpace(value))
	if levelString == "" {
		return zerolog.InfoLevel
	}
	if lvl, err := zerolog.ParseLevel(levelString); err == nil {
		return lvl
	}
	return zerolog.InfoLevel
}
