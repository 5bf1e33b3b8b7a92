package soundtrace

import (
	"github.com/oakmoss/soundtrace/internal/config"
	"github.com/oakmoss/soundtrace/internal/logging"
	"github.com/oakmoss/soundtrace/internal/store"
)

// Config holds configuration for a Service.
type Config struct {
	// DBPath is the SQLite database file used when Store is nil.
	// Default: "soundtrace.sqlite3". Pass ":memory:" for a throwaway DB.
	DBPath string

	// TempDir holds intermediate files produced by audio conversion and
	// YouTube downloads. Default: os.TempDir().
	TempDir string

	// Constants are the DSP/matching tuning constants. Default:
	// config.Default().
	Constants config.Constants

	// Logger receives operational log lines. If nil, logging.Default() is
	// used.
	Logger logging.Logger

	// Store is the posting-store backend. If nil, a SQLite-backed store
	// is opened at DBPath.
	Store store.Store
}

// Option configures a Config.
type Option func(*Config)

// WithDBPath sets the SQLite database path used when no explicit Store is
// supplied.
func WithDBPath(path string) Option {
	return func(c *Config) { c.DBPath = path }
}

// WithTempDir sets the scratch directory for audio conversion.
func WithTempDir(dir string) Option {
	return func(c *Config) { c.TempDir = dir }
}

// WithConstants overrides the DSP/matching tuning constants. Changing these
// after songs have been ingested invalidates existing postings.
func WithConstants(cfg config.Constants) Option {
	return func(c *Config) { c.Constants = cfg }
}

// WithLogger sets a custom logger.
func WithLogger(l logging.Logger) Option {
	return func(c *Config) { c.Logger = l }
}

// WithStore sets a custom posting-store backend, bypassing DBPath entirely.
func WithStore(s store.Store) Option {
	return func(c *Config) { c.Store = s }
}

func defaultConfig() Config {
	return Config{
		DBPath:    store.DefaultDBFile,
		TempDir:   "",
		Constants: config.Default(),
	}
}
