// Package appcontext provides the shared application context interface
// used by all commands. Command packages declare the subset they need and
// tests supply the Mock.
package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/saveback/pkg/archive"
)

// Interface defines the application context interface that commands need.
// The App struct from cmd/saveback/app implements this interface.
type Interface interface {
	// Archives returns the archive manager for the configured save
	// directory, creating it on first use. Fails when the save directory
	// cannot be resolved from configuration.
	Archives() (*archive.Manager, error)

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (table, json, yaml, wide).
	OutputFormat() string

	// NoColor reports whether colored output is disabled.
	NoColor() bool

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
