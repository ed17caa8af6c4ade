package archive

import (
	"github.com/juju/clock"
	"github.com/klauspost/compress/flate"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/agentstation/saveback/pkg/errors"
)

// Option is a function that configures a Manager
type Option func(*Manager) error

// WithFs configures the filesystem the manager reads and writes through.
// Defaults to the operating system filesystem.
func WithFs(fs afero.Fs) Option {
	return func(m *Manager) error {
		if fs == nil {
			return errors.NewValidationError("fs", nil, "filesystem cannot be nil")
		}
		m.fs = fs
		return nil
	}
}

// WithClock configures the clock used to timestamp new archives
func WithClock(clk clock.Clock) Option {
	return func(m *Manager) error {
		if clk == nil {
			return errors.NewValidationError("clock", nil, "clock cannot be nil")
		}
		m.clock = clk
		return nil
	}
}

// WithLogger configures the logger for archive operations
func WithLogger(logger *zerolog.Logger) Option {
	return func(m *Manager) error {
		if logger != nil {
			m.logger = logger
		}
		return nil
	}
}

// WithCompressionLevel configures the deflate level used for new archives
func WithCompressionLevel(level int) Option {
	return func(m *Manager) error {
		if level < flate.HuffmanOnly || level > flate.BestCompression {
			return errors.NewValidationError("compression_level", level, "must be between -2 and 9")
		}
		m.level = level
		return nil
	}
}
