package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Env   string // development gets a console writer, anything else JSON
	Level string
	Name  string
}

// New builds the process logger and installs it as the zerolog global.
func New(cfg Config) zerolog.Logger {
	return build(cfg, os.Stdout)
}

func build(cfg Config, out io.Writer) zerolog.Logger {
	w := out
	if cfg.Env == "development" {
		w = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
	}

	ctx := zerolog.New(w).Level(ParseLevel(cfg.Level)).With().Timestamp()
	if cfg.Name != "" {
		ctx = ctx.Str("app", cfg.Name)
	}
	zl := ctx.Logger()
	log.Logger = zl
	return zl
}

func ParseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
