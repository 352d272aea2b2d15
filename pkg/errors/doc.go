// Package errors provides unified error types and display for stacksmith.
//
// This package consolidates all error handling into a single location:
//   - ExitError: Command exit with specific exit code
//   - ValidationError: Configuration or preflight validation failures
//   - DocumentError: Weekly document parsing and structure failures
//
// Error Display:
//
// The package provides consistent error formatting with actionable hints:
//
//	errors.PrintErrorWithHints(os.Stderr, errs, verbose)
//
// Error Checking:
//
// Use the Is* functions to check error types:
//
//	if exitErr, ok := errors.IsExitError(err); ok {
//	    os.Exit(exitErr.Code)
//	}
//
// Exit Codes:
//
// Standard exit codes are defined for scripting integration:
//   - ExitSuccess (0): All operations completed successfully
//   - ExitFailure (2): Operation failed or critical error
//   - ExitConfigError (3): Configuration or validation error
//
// Exit code 1 is left to the Go runtime (panics) and the shell.
package errors
