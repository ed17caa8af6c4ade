// Package app provides the application context and dependency management
// for the saveback CLI. It centralizes configuration, logging and the
// archive manager, and builds the cobra command tree.
package app

import (
	"context"
	"sync"

	"github.com/juju/clock"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/agentstation/saveback/internal/appcontext"
	"github.com/agentstation/saveback/internal/cmd/output"
	"github.com/agentstation/saveback/internal/savepath"
	"github.com/agentstation/saveback/pkg/archive"
	"github.com/agentstation/saveback/pkg/errors"
	"github.com/agentstation/saveback/pkg/logging"
)

// App represents the saveback application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	fs    afero.Fs
	clock clock.Clock

	// Archive manager (lazy-initialized, singleton)
	mu       sync.Mutex
	archives *archive.Manager
}

// Ensure App implements appcontext.Interface at compile time.
var _ appcontext.Interface = (*App)(nil)

// New creates a new App instance with the given version information.
// Configuration is loaded from the environment unless WithConfig is given.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
		fs:      afero.NewOsFs(),
		clock:   clock.WallClock,
	}

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	if app.config == nil {
		config, err := LoadConfig()
		if err != nil {
			return nil, errors.NewConfigError("app", "loading configuration", err)
		}
		app.config = config
	}

	if app.logger == nil {
		logger := NewLogger(app.config)
		app.logger = &logger
		logging.SetDefault(logger)
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

// OutputFormat returns the configured output format, falling back to
// table on a terminal and JSON otherwise.
func (a *App) OutputFormat() string {
	return string(output.DetectFormat(a.config.Output))
}

// NoColor reports whether colored output is disabled.
func (a *App) NoColor() bool {
	return a.config.NoColor
}

// Archives returns the archive manager, creating it on first use from the
// configured save location.
func (a *App) Archives() (*archive.Manager, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.archives != nil {
		return a.archives, nil
	}

	saveDir, err := savepath.Resolve(a.config.SaveSettings())
	if err != nil {
		return nil, err
	}

	m, err := archive.New(archive.Config{SaveDir: saveDir},
		archive.WithFs(a.fs),
		archive.WithClock(a.clock),
		archive.WithLogger(a.logger),
		archive.WithCompressionLevel(a.config.CompressionLevel),
	)
	if err != nil {
		return nil, err
	}

	a.logger.Debug().Str("save_dir", saveDir).Msg("Archive manager ready")
	a.archives = m
	return m, nil
}

// Shutdown releases application resources. Archive operations run to
// completion before commands return, so there is nothing to stop.
func (a *App) Shutdown(_ context.Context) error {
	a.logger.Debug().Msg("Shutdown")
	return nil
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

// WithFs sets the filesystem the archive manager works on.
func WithFs(fs afero.Fs) Option {
	return func(a *App) error {
		if fs == nil {
			return errors.NewValidationError("fs", nil, "filesystem cannot be nil")
		}
		a.fs = fs
		return nil
	}
}

// WithClock sets the clock used to timestamp backups.
func WithClock(clk clock.Clock) Option {
	return func(a *App) error {
		if clk == nil {
			return errors.NewValidationError("clock", nil, "clock cannot be nil")
		}
		a.clock = clk
		return nil
	}
}
