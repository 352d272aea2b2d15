package errors

import (
	"errors"
	"fmt"
)

// Exit codes for scripting integration.
// These codes allow scripts to distinguish between different failure modes.
const (
	// ExitSuccess indicates all operations completed successfully.
	ExitSuccess = 0

	// ExitFailure indicates the operation failed or a critical error occurred.
	// This includes: unreadable documents, failed builds, failed publish steps.
	ExitFailure = 2

	// ExitConfigError indicates a configuration or validation error.
	// The command could not proceed due to invalid config or missing requirements.
	ExitConfigError = 3
)

// ExitError represents a command termination with a specific exit code.
//
// Use this error when a command needs to exit with a non-zero status
// while providing context about what went wrong.
//
// Fields:
//   - Code: Exit code (use constants ExitSuccess, ExitFailure, ExitConfigError)
//   - Message: Human-readable error message
//   - Err: Underlying error that caused this exit, may be nil
//
// Example:
//
//	return &ExitError{
//	    Code:    ExitFailure,
//	    Message: "failed to load document",
//	    Err:     err,
//	}
type ExitError struct {
	// Code is the exit code for the command.
	// Standard codes: 0=success, 2=failure, 3=config error.
	Code int

	// Message is a human-readable description of why the command failed.
	Message string

	// Err is the underlying error that caused this exit.
	// May be nil if no underlying error exists.
	Err error
}

// Error implements the error interface.
//
// Returns the Message field if set, otherwise returns the underlying error's
// message, or a default message with the exit code.
//
// Returns:
//   - string: The error message
func (e *ExitError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit code %d", e.Code)
}

// Unwrap returns the underlying error for errors.Is/As support.
//
// This enables using errors.Is() and errors.As() to check the wrapped error.
//
// Returns:
//   - error: The underlying error, or nil if none exists
func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates an ExitError with the given code and underlying error.
//
// Parameters:
//   - code: Exit code (use ExitSuccess, ExitFailure, ExitConfigError)
//   - err: Underlying error, may be nil
//
// Returns:
//   - *ExitError: New exit error
//
// Example:
//
//	err := errors.NewExitError(errors.ExitConfigError, configErr)
func NewExitError(code int, err error) *ExitError {
	return &ExitError{Code: code, Err: err}
}

// NewExitErrorf creates an ExitError with the given code and formatted message.
//
// Parameters:
//   - code: Exit code
//   - format: Printf-style format string
//   - args: Format arguments
//
// Returns:
//   - *ExitError: New exit error with formatted message
//
// Example:
//
//	err := errors.NewExitErrorf(errors.ExitFailure, "failed to process %s", filename)
func NewExitErrorf(code int, format string, args ...interface{}) *ExitError {
	return &ExitError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// GetExitCode extracts the exit code from an error.
//
// If err is nil, returns ExitSuccess.
// If err is an ExitError, returns its code.
// Otherwise returns ExitFailure.
//
// Parameters:
//   - err: The error to extract code from
//
// Returns:
//   - int: Exit code
//
// Example:
//
//	code := errors.GetExitCode(err)
//	os.Exit(code)
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	return ExitFailure
}

// IsExitError checks if err is an ExitError and returns it.
//
// Parameters:
//   - err: The error to check
//
// Returns:
//   - *ExitError: The ExitError if err is one, nil otherwise
//   - bool: true if err is an ExitError
//
// Example:
//
//	if exitErr, ok := errors.IsExitError(err); ok {
//	    os.Exit(exitErr.Code)
//	}
func IsExitError(err error) (*ExitError, bool) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr, true
	}
	return nil, false
}

// DocumentError indicates the weekly document could not be read or understood.
//
// Use this when a document cannot be processed due to its format or
// structure. The Section field narrows the failure to a page section
// when the problem is local to one.
//
// Fields:
//   - Path: The document file path
//   - Section: The section being parsed when the problem occurred, may be empty
//   - Reason: Why the document cannot be processed
//
// Example:
//
//	return &DocumentError{
//	    Path:    "Publix_Final.docx",
//	    Section: "BOGO DEALS",
//	    Reason:  "no categories found",
//	}
type DocumentError struct {
	// Path is the document file path.
	Path string

	// Section is the page section affected, if the problem is local to one.
	Section string

	// Reason explains why the document cannot be processed.
	Reason string
}

// Error implements the error interface.
//
// Formats the error message based on available fields. If Section is set,
// includes it in the format "path: section: reason". Otherwise formats
// as "path: reason" or just the reason.
//
// Returns:
//   - string: Formatted error message
func (e *DocumentError) Error() string {
	if e.Path != "" && e.Section != "" {
		return fmt.Sprintf("%s: %s: %s", e.Path, e.Section, e.Reason)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Reason)
	}
	return e.Reason
}

// IsDocumentError checks if err is a DocumentError and returns it.
//
// Parameters:
//   - err: The error to check
//
// Returns:
//   - *DocumentError: The DocumentError if err is one, nil otherwise
//   - bool: true if err is a DocumentError
//
// Example:
//
//	if de, ok := errors.IsDocumentError(err); ok {
//	    fmt.Printf("Cannot read %s: %s\n", de.Path, de.Reason)
//	}
func IsDocumentError(err error) (*DocumentError, bool) {
	var de *DocumentError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// NewDocumentError creates a DocumentError with the given details.
//
// Parameters:
//   - path: The document file path
//   - section: The affected page section (optional)
//   - reason: Why the document cannot be processed
//
// Returns:
//   - *DocumentError: New document error
//
// Example:
//
//	err := errors.NewDocumentError("deals.docx", "", "word/document.xml not found")
func NewDocumentError(path, section, reason string) *DocumentError {
	return &DocumentError{
		Path:    path,
		Section: section,
		Reason:  reason,
	}
}
