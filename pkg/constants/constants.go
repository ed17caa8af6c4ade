// Package constants provides shared constants used throughout the saveback codebase.
// This includes file permissions, archive naming conventions and default paths
// that should be consistent across the application.
package constants

import "time"

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Archive naming constants
const (
	// ArchiveExtension is the only extension recognized when listing archives
	ArchiveExtension = ".zip"

	// ArchivePrefix starts every archive name written by a backup
	ArchivePrefix = "remote"

	// ArchiveSeparator joins the prefix, timestamp and comment in archive names
	ArchiveSeparator = "_"

	// TimeFormatArchive is the minute-resolution timestamp embedded in archive names
	TimeFormatArchive = "2006-01-02-15-04"
)

// Format constants
const (
	// TimeFormatHuman is a human-readable time format
	TimeFormatHuman = "Jan 2, 2006 at 3:04pm"
)

// Timeout constants
const (
	// ShutdownTimeout bounds cleanup after a failed command
	ShutdownTimeout = 5 * time.Second
)

// Path constants
const (
	// DefaultSteamUserdataRoot is where Steam keeps per-account data on Windows
	DefaultSteamUserdataRoot = "C:/Program Files (x86)/Steam/userdata"

	// DefaultSaveSubdir is the leaf directory holding live save data
	DefaultSaveSubdir = "remote"

	// DefaultConfigName is the config file name searched in $HOME and the working directory
	DefaultConfigName = ".saveback"
)
