// Package emoji provides symbol constants for CLI output.
// These symbols create a consistent visual language across all commands.
package emoji

// Symbol constants for status indicators and user feedback in terminal output.
const (
	// Success represents successful completion of an operation.
	// Used for: completed backups and restores.
	Success = "✓"

	// Error represents failures.
	// Used for: filesystem errors, invalid selections.
	Error = "✗"

	// Warning represents non-critical issues.
	// Used for: cancelled restores, empty catalogs.
	Warning = "!"

	// Info represents informational messages.
	Info = "i"
)
