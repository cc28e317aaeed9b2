package shared

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

func parseLevel(level string) (zerolog.Level, error) {
	if level == "" {
		return zerolog.InfoLevel, nil
	}
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("log.level %q: %w", level, err)
	}
	return parsed, nil
}

// NewLogger builds the process logger. Console output is human readable;
// otherwise lines are JSON.
func NewLogger(cfg LogConfig, app string) (zerolog.Logger, error) {
	return newLogger(cfg, app, os.Stdout)
}

func newLogger(cfg LogConfig, app string, out io.Writer) (zerolog.Logger, error) {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), err
	}

	writer := out
	if cfg.Console {
		writer = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		}
	}
	return zerolog.New(writer).
		Level(level).
		With().
		Timestamp().
		Str("app", app).
		Logger(), nil
}
