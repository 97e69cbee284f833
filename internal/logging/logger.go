package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/Chamas111/booking-airbnb/internal/config"
	"github.com/rs/zerolog"
)

// New builds the process logger. JSON to stdout at info level unless configured otherwise.
func New(cfg config.Logging) zerolog.Logger {
	return NewWithWriter(cfg, os.Stdout)
}

func NewWithWriter(cfg config.Logging, out io.Writer) zerolog.Logger {
	level := zerolog.InfoLevel
	if parsed, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.Level))); err == nil && parsed != zerolog.NoLevel {
		level = parsed
	}

	if strings.ToLower(strings.TrimSpace(cfg.Format)) == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano

	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("app", "booking-api").
		Logger()
}
