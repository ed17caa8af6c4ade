// Package archive backs up a save directory into timestamped zip files and
// restores them.
//
// Archives live next to the save directory, in its parent, and are named
// remote_<YYYY-MM-DD-HH-mm>[_<comment>].zip. Two backups taken in the same
// minute with the same comment share a name; the later one replaces the
// earlier one.
//
// Restoring over an existing save directory is destructive and not atomic:
// the directory is emptied first and then the archive is extracted, so a
// failure part way through leaves it partially wiped or partially populated.
package archive

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/juju/clock"
	"github.com/klauspost/compress/flate"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/agentstation/saveback/pkg/constants"
	pkgerrors "github.com/agentstation/saveback/pkg/errors"
	"github.com/agentstation/saveback/pkg/logging"
)

// Config holds the resolved locations the manager works on.
type Config struct {
	// SaveDir is the absolute path of the live save directory.
	SaveDir string
}

// Manager creates, lists and restores archives of a single save directory.
// It is not safe for concurrent use.
type Manager struct {
	saveDir   string
	parentDir string

	fs     afero.Fs
	clock  clock.Clock
	logger *zerolog.Logger
	level  int
}

// New returns a Manager for cfg.SaveDir using the OS filesystem and wall
// clock unless overridden by options.
func New(cfg Config, opts ...Option) (*Manager, error) {
	if strings.TrimSpace(cfg.SaveDir) == "" {
		return nil, pkgerrors.NewConfigError("archive", "save directory is not set", nil)
	}

	saveDir := filepath.Clean(cfg.SaveDir)
	m := &Manager{
		saveDir:   saveDir,
		parentDir: filepath.Dir(saveDir),
		fs:        afero.NewOsFs(),
		clock:     clock.WallClock,
		logger:    logging.Default(),
		level:     flate.DefaultCompression,
	}

	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// SaveDir returns the save directory path.
func (m *Manager) SaveDir() string {
	return m.saveDir
}

// ParentDir returns the directory archives are written to.
func (m *Manager) ParentDir() string {
	return m.parentDir
}

// ArchivePath returns the full path of the named archive.
func (m *Manager) ArchivePath(name string) string {
	return filepath.Join(m.parentDir, name)
}

// Now returns the current time of the manager's clock.
func (m *Manager) Now() time.Time {
	return m.clock.Now()
}

// ListArchives returns the names of the archives currently in the parent
// directory, in listing order. An empty result is not an error.
// Directories whose names end in .zip are not archives and are left out.
func (m *Manager) ListArchives() ([]string, error) {
	entries, err := afero.ReadDir(m.fs, m.parentDir)
	if err != nil {
		return nil, pkgerrors.WrapFS("list", m.parentDir, err)
	}

	archives := []string{}
	for _, entry := range entries {
		if entry.IsDir() || !isArchiveName(entry.Name()) {
			continue
		}
		archives = append(archives, entry.Name())
	}

	m.logger.Debug().
		Str("dir", m.parentDir).
		Int("count", len(archives)).
		Msg("Listed archives")

	return archives, nil
}

// CreateBackup archives the whole save directory and returns the new
// archive's name. A non-empty comment is appended to the name verbatim.
func (m *Manager) CreateBackup(comment string) (string, error) {
	now := m.clock.Now()

	info, err := m.fs.Stat(m.saveDir)
	if err != nil {
		return "", pkgerrors.WrapFS("stat", m.saveDir, err)
	}
	if !info.IsDir() {
		return "", pkgerrors.NewFilesystemError("stat", m.saveDir, pkgerrors.New("not a directory"))
	}

	name := FormatName(now, comment)
	path := m.ArchivePath(name)

	out, err := m.fs.Create(path)
	if err != nil {
		return "", pkgerrors.WrapFS("create", path, err)
	}

	entries, err := writeTree(m.fs, m.saveDir, out, m.level, m.logger)
	if closeErr := out.Close(); err == nil && closeErr != nil {
		err = pkgerrors.WrapFS("create", path, closeErr)
	}
	if err != nil {
		if rmErr := m.fs.Remove(path); rmErr != nil && !os.IsNotExist(rmErr) {
			m.logger.Warn().Err(rmErr).Str("archive", name).Msg("Failed to remove incomplete archive")
		}
		return "", err
	}

	m.logger.Info().
		Str("archive", name).
		Str("save_dir", m.saveDir).
		Int("entries", entries).
		Msg("Backup created")

	return name, nil
}

// SaveDirExists reports whether the save directory is present.
func (m *Manager) SaveDirExists() (bool, error) {
	exists, err := afero.Exists(m.fs, m.saveDir)
	if err != nil {
		return false, pkgerrors.WrapFS("stat", m.saveDir, err)
	}
	return exists, nil
}

// Select resolves a 1-based catalog index, or an exact archive name, to an
// archive name. Anything else yields an InvalidSelectionError.
func (m *Manager) Select(input string) (string, error) {
	archives, err := m.ListArchives()
	if err != nil {
		return "", err
	}

	input = strings.TrimSpace(input)
	for _, name := range archives {
		if name == input {
			return name, nil
		}
	}

	n, err := strconv.Atoi(input)
	if err != nil || n < 1 || n > len(archives) {
		return "", pkgerrors.NewInvalidSelectionError(input, len(archives))
	}
	return archives[n-1], nil
}

// RestoreBackup replaces the save directory with the contents of the named
// archive. When the save directory exists and overwriteConfirmed is false
// nothing is touched and ErrCancelled is returned.
func (m *Manager) RestoreBackup(name string, overwriteConfirmed bool) error {
	if name == "" || filepath.Base(name) != name {
		return pkgerrors.NewValidationError("archive", name, "must be a file name in "+m.parentDir)
	}

	archivePath := m.ArchivePath(name)
	if _, err := m.fs.Stat(archivePath); err != nil {
		return pkgerrors.WrapFS("open", archivePath, err)
	}

	exists, err := m.SaveDirExists()
	if err != nil {
		return err
	}

	switch {
	case exists && !overwriteConfirmed:
		m.logger.Info().Str("save_dir", m.saveDir).Msg("Restore cancelled, save directory kept")
		return pkgerrors.ErrCancelled
	case exists:
		if err := m.ClearDirectory(m.saveDir); err != nil {
			return err
		}
	default:
		if err := m.fs.MkdirAll(m.saveDir, constants.DirPermissions); err != nil {
			return pkgerrors.WrapFS("create", m.saveDir, err)
		}
	}

	if err := m.ExtractArchive(name, m.saveDir); err != nil {
		return err
	}

	m.logger.Info().
		Str("archive", name).
		Str("save_dir", m.saveDir).
		Msg("Restore completed")
	return nil
}

// ClearDirectory removes everything below dir, deepest entries first, and
// leaves dir itself in place.
func (m *Manager) ClearDirectory(dir string) error {
	var paths []string
	err := afero.Walk(m.fs, dir, func(path string, _ os.FileInfo, err error) error {
		if err != nil {
			return pkgerrors.WrapFS("clear", path, err)
		}
		if path != dir {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return err
	}

	// Walk visits parents before children, so reverse order empties each
	// directory before it is removed.
	for i := len(paths) - 1; i >= 0; i-- {
		if err := m.fs.Remove(paths[i]); err != nil {
			return pkgerrors.WrapFS("clear", paths[i], err)
		}
	}

	m.logger.Debug().Str("dir", dir).Int("removed", len(paths)).Msg("Cleared directory")
	return nil
}

// ExtractArchive unpacks the named archive into dest.
func (m *Manager) ExtractArchive(name, dest string) error {
	entries, err := extractTree(m.fs, m.ArchivePath(name), dest)
	if err != nil {
		return err
	}
	m.logger.Debug().
		Str("archive", name).
		Str("dest", dest).
		Int("entries", entries).
		Msg("Extracted archive")
	return nil
}
