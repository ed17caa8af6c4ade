// Package errors provides custom error types for the saveback system.
// These errors enable programmatic error checking across the archive
// manager, the interactive shell and the CLI commands.
package errors

import (
	"errors"
	"fmt"
	"io/fs"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the saveback system
var (
	// ErrFilesystem indicates an I/O failure: missing directory, permission
	// denied, disk full or a corrupt archive
	ErrFilesystem = errors.New("filesystem error")

	// ErrInvalidSelection indicates an out-of-range or non-numeric archive choice
	ErrInvalidSelection = errors.New("invalid selection")

	// ErrCancelled indicates the user declined to overwrite existing save data
	ErrCancelled = errors.New("restoration canceled")

	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsafePath indicates an archive entry that would land outside the destination
	ErrUnsafePath = errors.New("unsafe archive path")
)

// FilesystemError represents an error during a filesystem or archive operation
type FilesystemError struct {
	Operation string // "list", "stat", "archive", "extract", "clear", "create", "open"
	Path      string
	Err       error
}

// Error implements the error interface
func (e *FilesystemError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("filesystem error during %s of %s: %v", e.Operation, e.Path, e.Err)
	}
	return fmt.Sprintf("filesystem error during %s: %v", e.Operation, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *FilesystemError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *FilesystemError) Is(target error) bool {
	return target == ErrFilesystem
}

// NewFilesystemError creates a new FilesystemError
func NewFilesystemError(operation, path string, err error) *FilesystemError {
	return &FilesystemError{Operation: operation, Path: path, Err: err}
}

// InvalidSelectionError represents a bad archive choice at the restore prompt
type InvalidSelectionError struct {
	Input string
	Count int
}

// Error implements the error interface
func (e *InvalidSelectionError) Error() string {
	if e.Count == 0 {
		return fmt.Sprintf("invalid selection %q: no archives available", e.Input)
	}
	return fmt.Sprintf("invalid selection %q: expected a number between 1 and %d", e.Input, e.Count)
}

// Is implements errors.Is support
func (e *InvalidSelectionError) Is(target error) bool {
	return target == ErrInvalidSelection
}

// NewInvalidSelectionError creates a new InvalidSelectionError
func NewInvalidSelectionError(input string, count int) *InvalidSelectionError {
	return &InvalidSelectionError{Input: input, Count: count}
}

// NotFoundError represents an error when a resource is not found
type NotFoundError struct {
	Resource string
	ID       string
	Err      error
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// Unwrap implements errors.Unwrap
func (e *NotFoundError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource, id string, err error) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id, Err: err}
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{
		Component: component,
		Message:   message,
		Err:       err,
	}
}

// Helper functions for error checking

// IsFilesystem checks if an error is a filesystem error
func IsFilesystem(err error) bool {
	return errors.Is(err, ErrFilesystem)
}

// IsInvalidSelection checks if an error is an invalid selection error
func IsInvalidSelection(err error) bool {
	return errors.Is(err, ErrInvalidSelection)
}

// IsCancelled checks if an error is a cancellation error
func IsCancelled(err error) bool {
	return errors.Is(err, ErrCancelled)
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// Helper wrapping functions for common patterns

// WrapFS wraps an error as a FilesystemError. A missing path is
// additionally marked as a NotFoundError.
func WrapFS(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		err = NewNotFoundError("path", path, err)
	}
	return NewFilesystemError(operation, path, err)
}
