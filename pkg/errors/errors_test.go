package errors

import (
	"bytes"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestExitCodes tests the exit code constants.
//
// It verifies that:
//   - ExitSuccess equals 0
//   - ExitFailure equals 2
//   - ExitConfigError equals 3
func TestExitCodes(t *testing.T) {
	assert.Equal(t, 0, ExitSuccess)
	assert.Equal(t, 2, ExitFailure)
	assert.Equal(t, 3, ExitConfigError)
}

// TestExitError tests the ExitError struct and its methods.
//
// It verifies that:
//   - Error() returns the Message field when set
//   - Error() returns wrapped error message when Err is set
//   - Error() returns "exit code N" when neither is set
//   - Unwrap() returns the wrapped error
func TestExitError(t *testing.T) {
	t.Run("with message", func(t *testing.T) {
		err := &ExitError{Code: ExitFailure, Message: "test message"}
		assert.Equal(t, "test message", err.Error())
		assert.Equal(t, ExitFailure, err.Code)
	})

	t.Run("with wrapped error", func(t *testing.T) {
		innerErr := stderrors.New("inner error")
		err := &ExitError{Code: ExitConfigError, Err: innerErr}
		assert.Equal(t, "inner error", err.Error())
		assert.Equal(t, ExitConfigError, err.Code)
		assert.Equal(t, innerErr, err.Unwrap())
	})

	t.Run("with neither", func(t *testing.T) {
		err := &ExitError{Code: ExitFailure}
		assert.Contains(t, err.Error(), "exit code 2")
	})
}

// TestNewExitError tests the NewExitError constructor.
//
// It verifies that:
//   - Code and Err fields are set correctly
func TestNewExitError(t *testing.T) {
	innerErr := stderrors.New("test error")
	err := NewExitError(ExitConfigError, innerErr)

	assert.Equal(t, ExitConfigError, err.Code)
	assert.Equal(t, innerErr, err.Err)
}

// TestNewExitErrorf tests the NewExitErrorf constructor.
//
// It verifies that:
//   - Code is set correctly
//   - Message is formatted properly
func TestNewExitErrorf(t *testing.T) {
	err := NewExitErrorf(ExitFailure, "failed: %s", "reason")

	assert.Equal(t, ExitFailure, err.Code)
	assert.Equal(t, "failed: reason", err.Message)
}

// TestGetExitCode tests the GetExitCode function.
//
// It verifies that:
//   - Nil error returns ExitSuccess
//   - ExitError returns its Code
//   - Wrapped ExitError returns its Code
//   - Plain error returns ExitFailure
func TestGetExitCode(t *testing.T) {
	t.Run("nil error", func(t *testing.T) {
		assert.Equal(t, ExitSuccess, GetExitCode(nil))
	})

	t.Run("ExitError", func(t *testing.T) {
		err := NewExitError(ExitConfigError, stderrors.New("test"))
		assert.Equal(t, ExitConfigError, GetExitCode(err))
	})

	t.Run("wrapped ExitError", func(t *testing.T) {
		inner := NewExitError(ExitConfigError, stderrors.New("test"))
		wrapped := stderrors.Join(stderrors.New("wrapper"), inner)
		assert.Equal(t, ExitConfigError, GetExitCode(wrapped))
	})

	t.Run("plain error", func(t *testing.T) {
		err := stderrors.New("plain error")
		assert.Equal(t, ExitFailure, GetExitCode(err))
	})
}

// TestIsExitError tests the IsExitError function.
//
// It verifies that:
//   - ExitError is detected and returned
//   - Plain errors return nil and false
func TestIsExitError(t *testing.T) {
	exitErr := NewExitError(ExitFailure, stderrors.New("test"))

	found, ok := IsExitError(exitErr)
	assert.True(t, ok)
	assert.Equal(t, exitErr, found)

	found, ok = IsExitError(stderrors.New("plain"))
	assert.False(t, ok)
	assert.Nil(t, found)
}

// TestDocumentError tests the DocumentError struct and its methods.
//
// It verifies that:
//   - Error() includes path and section when both are set
//   - Error() includes only path when section is empty
//   - Error() returns just the reason when path is empty
func TestDocumentError(t *testing.T) {
	t.Run("with path and section", func(t *testing.T) {
		err := &DocumentError{Path: "deals.docx", Section: "BOGO DEALS", Reason: "no categories found"}
		assert.Equal(t, "deals.docx: BOGO DEALS: no categories found", err.Error())
	})

	t.Run("with path only", func(t *testing.T) {
		err := &DocumentError{Path: "deals.docx", Reason: "word/document.xml not found"}
		assert.Equal(t, "deals.docx: word/document.xml not found", err.Error())
	})

	t.Run("with reason only", func(t *testing.T) {
		err := &DocumentError{Reason: "empty document"}
		assert.Equal(t, "empty document", err.Error())
	})
}

// TestIsDocumentError tests the IsDocumentError function.
//
// It verifies that:
//   - DocumentError is detected through wrapping
//   - Plain errors return nil and false
func TestIsDocumentError(t *testing.T) {
	docErr := NewDocumentError("deals.docx", "", "not a valid zip archive")

	found, ok := IsDocumentError(docErr)
	assert.True(t, ok)
	assert.Equal(t, docErr, found)

	found, ok = IsDocumentError(stderrors.New("plain"))
	assert.False(t, ok)
	assert.Nil(t, found)
}

// TestValidationError tests the ValidationError formatting per category.
//
// It verifies that:
//   - Preflight errors include the missing command and resolution
//   - Config errors include field and message
//   - Document errors use the default field: message format
func TestValidationError(t *testing.T) {
	t.Run("preflight with hint", func(t *testing.T) {
		err := NewPreflightValidationError("git", "Install git: https://git-scm.com/downloads")
		msg := err.Error()
		assert.Contains(t, msg, "command not found: git")
		assert.Contains(t, msg, "Resolution: Install git")
	})

	t.Run("preflight without hint", func(t *testing.T) {
		err := NewPreflightValidationError("rsync", "")
		msg := err.Error()
		assert.Contains(t, msg, "command not found: rsync")
		assert.Contains(t, msg, "available in your PATH")
	})

	t.Run("config", func(t *testing.T) {
		err := NewConfigValidationError("publish.remote", "remote name is empty")
		assert.Equal(t, "publish.remote: remote name is empty", err.Error())
	})

	t.Run("document", func(t *testing.T) {
		err := NewDocumentValidationError("TRIPLE STACKS", "section is empty", "Check the heading spelling")
		assert.Equal(t, "TRIPLE STACKS: section is empty", err.Error())
	})
}

// TestVerboseError tests the detailed validation error output.
//
// It verifies that:
//   - Expected values are included
//   - Valid keys are listed
//   - Documentation links are appended
//   - Hints appear for non-preflight categories
func TestVerboseError(t *testing.T) {
	err := &ValidationError{
		Category:   ValidationCategoryConfig,
		Field:      "output.format",
		Message:    "invalid format type",
		Expected:   "one of: table, json, csv, xml",
		ValidKeys:  []string{"table", "json", "csv", "xml"},
		DocSection: "output",
		Hint:       "Use --output to override per command",
	}

	msg := err.VerboseError()
	assert.Contains(t, msg, "output.format: invalid format type")
	assert.Contains(t, msg, "Expected: one of: table, json, csv, xml")
	assert.Contains(t, msg, "Valid keys: table, json, csv, xml")
	assert.Contains(t, msg, "See: docs/configuration.md#output")
	assert.Contains(t, msg, "Hint: Use --output")
}

// TestGetHint tests hint lookup for known error patterns.
//
// It verifies that:
//   - Known patterns produce a hint with resolution
//   - Unknown errors produce an empty string
//   - Nil errors produce an empty string
func TestGetHint(t *testing.T) {
	t.Run("known pattern", func(t *testing.T) {
		err := stderrors.New("fatal: not a git repository (or any of the parent directories)")
		hint := GetHint(err)
		assert.Contains(t, hint, "git work tree")
	})

	t.Run("case insensitive", func(t *testing.T) {
		err := stderrors.New("FAILED TO PARSE config near line 3")
		hint := GetHint(err)
		assert.Contains(t, hint, "Check file syntax")
	})

	t.Run("unknown pattern", func(t *testing.T) {
		assert.Empty(t, GetHint(stderrors.New("some novel failure")))
	})

	t.Run("nil error", func(t *testing.T) {
		assert.Empty(t, GetHint(nil))
	})
}

// TestGetHintForCommand tests command installation hint lookup.
//
// It verifies that:
//   - Known commands return installation instructions
//   - Unknown commands return an empty string
func TestGetHintForCommand(t *testing.T) {
	assert.Contains(t, GetHintForCommand("git"), "git-scm.com")
	assert.Contains(t, GetHintForCommand("rsync"), "package manager")
	assert.Empty(t, GetHintForCommand("no-such-tool"))
}

// TestRegisterHint tests extending the hint registry.
//
// It verifies that:
//   - Registered patterns are matched by GetHint
//   - Registered command hints are returned by GetHintForCommand
func TestRegisterHint(t *testing.T) {
	RegisterHint("custom failure xyz", "Custom issue", "Do the custom thing")
	hint := GetHint(stderrors.New("got custom failure xyz here"))
	assert.Contains(t, hint, "Custom issue")
	assert.Contains(t, hint, "Do the custom thing")

	RegisterCommandHint("mytool", "Install mytool from example.com")
	assert.Equal(t, "Install mytool from example.com", GetHintForCommand("mytool"))
}

// TestEnhanceErrorWithHint tests hint-enhanced error formatting.
//
// It verifies that:
//   - Matching errors gain an appended hint line
//   - Non-matching errors are returned unchanged
//   - Nil errors produce an empty string
func TestEnhanceErrorWithHint(t *testing.T) {
	t.Run("with matching hint", func(t *testing.T) {
		err := stderrors.New("open deals.docx: no such file or directory")
		enhanced := EnhanceErrorWithHint(err)
		assert.Contains(t, enhanced, "no such file or directory")
		assert.Contains(t, enhanced, "Verify the path exists")
	})

	t.Run("without matching hint", func(t *testing.T) {
		err := stderrors.New("completely novel condition")
		assert.Equal(t, "completely novel condition", EnhanceErrorWithHint(err))
	})

	t.Run("nil error", func(t *testing.T) {
		assert.Empty(t, EnhanceErrorWithHint(nil))
	})
}

// TestPrintErrorWithHints tests the unified error display.
//
// It verifies that:
//   - Validation errors are prefixed with "Validation Error:"
//   - Document errors are prefixed with "Document Error:"
//   - Standard errors are prefixed with "Error:" and get hints
//   - Empty error slices produce no output
func TestPrintErrorWithHints(t *testing.T) {
	t.Run("empty slice", func(t *testing.T) {
		var buf bytes.Buffer
		PrintErrorWithHints(&buf, nil, false)
		assert.Empty(t, buf.String())
	})

	t.Run("validation error", func(t *testing.T) {
		var buf bytes.Buffer
		errs := []error{NewConfigValidationError("publish.branch", "branch name is empty")}
		PrintErrorWithHints(&buf, errs, false)
		assert.Contains(t, buf.String(), "Validation Error: publish.branch: branch name is empty")
	})

	t.Run("validation error verbose", func(t *testing.T) {
		var buf bytes.Buffer
		ve := &ValidationError{
			Category: ValidationCategoryConfig,
			Field:    "output.format",
			Message:  "invalid format",
			Expected: "one of: table, json, csv, xml",
		}
		PrintErrorWithHints(&buf, []error{ve}, true)
		assert.Contains(t, buf.String(), "Expected: one of")
	})

	t.Run("document error", func(t *testing.T) {
		var buf bytes.Buffer
		errs := []error{NewDocumentError("deals.docx", "", "word/document.xml not found")}
		PrintErrorWithHints(&buf, errs, false)
		assert.Contains(t, buf.String(), "Document Error: deals.docx: word/document.xml not found")
	})

	t.Run("document error verbose with section", func(t *testing.T) {
		var buf bytes.Buffer
		errs := []error{NewDocumentError("deals.docx", "BOGO DEALS", "no categories found")}
		PrintErrorWithHints(&buf, errs, true)
		assert.Contains(t, buf.String(), "Document Error: deals.docx - BOGO DEALS (no categories found)")
	})

	t.Run("standard error with hint", func(t *testing.T) {
		var buf bytes.Buffer
		errs := []error{stderrors.New("failed to load config: unexpected key")}
		PrintErrorWithHints(&buf, errs, false)
		assert.Contains(t, buf.String(), "Error: failed to load config")
		assert.Contains(t, buf.String(), "stacksmith config --check")
	})
}

// TestFormatDocumentError tests guidance-enhanced document error formatting.
//
// It verifies that:
//   - document.xml failures suggest re-exporting as .docx
//   - missing-section failures mention expected headings
//   - nil errors produce an empty string
func TestFormatDocumentError(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		assert.Empty(t, FormatDocumentError(nil))
	})

	t.Run("not a docx", func(t *testing.T) {
		err := NewDocumentError("deals.txt", "", "word/document.xml not found")
		msg := FormatDocumentError(err)
		assert.Contains(t, msg, "Guidance:")
		assert.Contains(t, msg, "Export it as .docx")
	})

	t.Run("no sections", func(t *testing.T) {
		err := NewDocumentError("deals.docx", "", "no sections found")
		msg := FormatDocumentError(err)
		assert.Contains(t, msg, "TRIPLE STACKS")
	})
}

// TestFormatErrorsWithHints tests the multi-error formatter.
//
// It verifies that:
//   - Each error is prefixed with an error indicator
//   - Empty slices produce an empty string
func TestFormatErrorsWithHints(t *testing.T) {
	assert.Empty(t, FormatErrorsWithHints(nil))

	out := FormatErrorsWithHints([]error{
		stderrors.New("first failure"),
		stderrors.New("second failure"),
	})
	assert.Contains(t, out, "first failure")
	assert.Contains(t, out, "second failure")
	assert.Contains(t, out, "❌")
}

// TestValidationResult tests the ValidationResult container.
//
// It verifies that:
//   - HasErrors and HasWarnings reflect contents
//   - AddError and AddWarning append entries
//   - ErrorMessage and VerboseErrorMessage format correctly
//   - PrintTo writes warnings then errors
func TestValidationResult(t *testing.T) {
	result := NewValidationResult()
	assert.False(t, result.HasErrors())
	assert.False(t, result.HasWarnings())
	assert.Empty(t, result.ErrorMessage())
	assert.Empty(t, result.VerboseErrorMessage())

	result.AddWarning("document is older than 7 days")
	assert.True(t, result.HasWarnings())

	result.AddError(NewConfigValidationError("site.title", "title is empty"))
	assert.True(t, result.HasErrors())

	msg := result.ErrorMessage()
	assert.Contains(t, msg, "Validation failed:")
	assert.Contains(t, msg, "site.title: title is empty")

	var buf bytes.Buffer
	result.PrintTo(&buf, false)
	assert.Contains(t, buf.String(), "Warning: document is older than 7 days")
	assert.Contains(t, buf.String(), "site.title: title is empty")

	var verboseBuf bytes.Buffer
	result.Errors[0].Expected = "a non-empty page title"
	result.PrintTo(&verboseBuf, true)
	assert.Contains(t, verboseBuf.String(), "Expected: a non-empty page title")
}

// TestFormatValidationErrors tests the multi-validation-error formatter.
//
// It verifies that:
//   - Standard mode lists each error
//   - Verbose mode includes expected values
//   - Empty slices produce an empty string
func TestFormatValidationErrors(t *testing.T) {
	assert.Empty(t, FormatValidationErrors(nil, false))

	errs := []*ValidationError{
		{Category: ValidationCategoryConfig, Field: "a", Message: "bad a", Expected: "good a"},
		{Category: ValidationCategoryConfig, Field: "b", Message: "bad b"},
	}

	out := FormatValidationErrors(errs, false)
	assert.Contains(t, out, "a: bad a")
	assert.Contains(t, out, "b: bad b")
	assert.NotContains(t, out, "Expected:")

	verboseOut := FormatValidationErrors(errs, true)
	assert.Contains(t, verboseOut, "Expected: good a")
}
