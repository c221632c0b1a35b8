// Package logger configures the process-wide structured logger.
package logger

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger is the process-wide logger. Init replaces it.
var Logger = log.Logger

// Config controls log level, output format and caller reporting
type Config struct {
	Level        string `json:"level" yaml:"level"`   // debug, info, warn, error
	Format       string `json:"format" yaml:"format"` // json or pretty
	TimeFormat   string `json:"time_format" yaml:"time_format"`
	ReportCaller bool   `json:"report_caller" yaml:"report_caller"`
}

// Init configures Logger to write to stderr. Log output stays off stdout so
// CLI commands can pipe their JSON results.
func Init(cfg Config) {
	InitWithWriter(cfg, os.Stderr)
}

// InitWithWriter configures Logger to write to w.
func InitWithWriter(cfg Config, w io.Writer) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.TimeFormat == "" {
		zerolog.TimeFieldFormat = time.RFC3339
	} else {
		zerolog.TimeFieldFormat = cfg.TimeFormat
	}

	output := w
	if cfg.Format == "pretty" {
		output = zerolog.ConsoleWriter{Out: w, TimeFormat: cfg.TimeFormat}
	}

	lc := zerolog.New(output).Level(level).With().Timestamp()
	if cfg.ReportCaller {
		lc = lc.Caller()
	}

	Logger = lc.Logger()
	log.Logger = Logger
}

// Debug starts a debug level event
func Debug() *zerolog.Event {
	return Logger.Debug()
}

// Info starts an info level event
func Info() *zerolog.Event {
	return Logger.Info()
}

// Warn starts a warn level event
func Warn() *zerolog.Event {
	return Logger.Warn()
}

// Error starts an error level event
func Error() *zerolog.Event {
	return Logger.Error()
}

// Ctx returns the logger carried by ctx, or the process logger when ctx has none.
func Ctx(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l != nil && l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &Logger
}

// WithContext attaches the process logger to ctx.
func WithContext(ctx context.Context) context.Context {
	return Logger.WithContext(ctx)
}

// With attaches a child logger carrying key=value to ctx.
func With(ctx context.Context, key, value string) context.Context {
	l := Ctx(ctx).With().Str(key, value).Logger()
	return l.WithContext(ctx)
}
