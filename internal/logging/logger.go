// Package logging wraps charmbracelet/log behind the same small surface
// the rest of this codebase expects: a package-level default logger plus
// a constructable one for callers that want isolated output (tests, the
// CLI, whose --verbose flag picks the level).
package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	charmlog "github.com/charmbracelet/log"
)

// Level mirrors charmlog.Level so callers don't need to import that
// package directly just to set a verbosity.
type Level = charmlog.Level

const (
	DebugLevel = charmlog.DebugLevel
	InfoLevel  = charmlog.InfoLevel
	WarnLevel  = charmlog.WarnLevel
	ErrorLevel = charmlog.ErrorLevel
	FatalLevel = charmlog.FatalLevel
)

// Logger is the interface the rest of the module programs against, so a
// test double can stand in without pulling in charmbracelet/log.
type Logger interface {
	Debug(msg string, keyvals ...any)
	Info(msg string, keyvals ...any)
	Warn(msg string, keyvals ...any)
	Error(msg string, keyvals ...any)
	Fatal(msg string, keyvals ...any)
	With(keyvals ...any) Logger
}

type charmLogger struct {
	l *charmlog.Logger
}

func (c *charmLogger) Debug(msg string, keyvals ...any) { c.l.Debug(msg, keyvals...) }
func (c *charmLogger) Info(msg string, keyvals ...any)  { c.l.Info(msg, keyvals...) }
func (c *charmLogger) Warn(msg string, keyvals ...any)  { c.l.Warn(msg, keyvals...) }
func (c *charmLogger) Error(msg string, keyvals ...any) { c.l.Error(msg, keyvals...) }
func (c *charmLogger) Fatal(msg string, keyvals ...any) { c.l.Fatal(msg, keyvals...) }
func (c *charmLogger) With(keyvals ...any) Logger {
	return &charmLogger{l: c.l.With(keyvals...)}
}

// Config mirrors the knobs this project's logging has historically exposed
// — level, prefix, output destination, timestamp — just built on top of
// charmbracelet/log's styling instead of a hand-rolled ANSI formatter.
type Config struct {
	Level        Level
	Prefix       string
	Output       io.Writer
	ReportCaller bool
	ReportTime   bool
}

// DefaultConfig returns INFO level, stdout, timestamps on, caller off.
func DefaultConfig() Config {
	return Config{
		Level:      InfoLevel,
		Output:     os.Stdout,
		ReportTime: true,
	}
}

// New constructs a Logger from cfg.
func New(cfg Config) Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}
	l := charmlog.NewWithOptions(cfg.Output, charmlog.Options{
		Level:           cfg.Level,
		Prefix:          cfg.Prefix,
		ReportCaller:    cfg.ReportCaller,
		ReportTimestamp: cfg.ReportTime,
	})
	return &charmLogger{l: l}
}

var (
	defaultLogger Logger
	once          sync.Once
)

// Default returns the process-wide logger, honoring LOG_LEVEL on first use.
func Default() Logger {
	once.Do(func() {
		cfg := DefaultConfig()
		switch strings.ToUpper(os.Getenv("LOG_LEVEL")) {
		case "DEBUG":
			cfg.Level = DebugLevel
		case "WARN":
			cfg.Level = WarnLevel
		case "ERROR":
			cfg.Level = ErrorLevel
		}
		defaultLogger = New(cfg)
	})
	return defaultLogger
}
