// Package app provides the application context and dependency management
// for the recount CLI. It centralizes configuration, logging, and the
// engine instance so commands receive their dependencies instead of
// constructing them.
package app

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/recount"
	"github.com/agentstation/recount/internal/load"
	"github.com/agentstation/recount/pkg/errors"
)

// App represents the recount application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	// Configuration
	config *Config

	// Logger
	logger *zerolog.Logger

	// Engine instance (lazy-initialized, singleton)
	mu     sync.RWMutex
	engine recount.Recount
}

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// Workers returns the bounded fan-out width for multi-table runs.
func (a *App) Workers() int {
	return a.config.Workers
}

// Engine returns the reconciliation engine, creating it lazily from the
// configured engine config file. Thread-safe; only one instance is created.
func (a *App) Engine() (recount.Recount, error) {
	a.mu.RLock()
	if a.engine != nil {
		engine := a.engine
		a.mu.RUnlock()
		return engine, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.engine != nil {
		return a.engine, nil
	}

	opts, err := a.buildEngineOptions()
	if err != nil {
		return nil, err
	}

	engine, err := recount.New(opts...)
	if err != nil {
		return nil, errors.WrapResource("create", "engine", "", err)
	}

	a.engine = engine
	return engine, nil
}

// EngineWithOptions returns a new engine instance with custom options.
// Useful for commands that need a configuration different from the
// default app instance.
func (a *App) EngineWithOptions(opts ...recount.Option) (recount.Recount, error) {
	engine, err := recount.New(opts...)
	if err != nil {
		return nil, errors.WrapResource("create", "engine", "with custom options", err)
	}
	return engine, nil
}

// buildEngineOptions constructs engine options from the app configuration.
func (a *App) buildEngineOptions() ([]recount.Option, error) {
	if a.config.EngineConfigFile == "" {
		return nil, nil
	}

	cfg, err := load.Config(a.config.EngineConfigFile)
	if err != nil {
		return nil, err
	}
	return cfg.Options(), nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithEngine sets a custom engine instance (useful for testing).
func WithEngine(engine recount.Recount) Option {
	return func(a *App) error {
		a.engine = engine
		return nil
	}
}
