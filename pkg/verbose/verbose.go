// Package verbose provides debug logging with documentation references.
package verbose

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

var (
	mu      sync.RWMutex
	enabled bool
	writer  io.Writer = os.Stderr
)

// Enable turns on verbose logging and allows debug messages to be printed.
//
// It performs the following operations:
//   - Acquires a write lock to ensure thread-safe modification
//   - Sets the enabled flag to true
//   - Releases the write lock
//
// Returns:
//   - None
func Enable() {
	mu.Lock()
	defer mu.Unlock()
	enabled = true
}

// Disable turns off verbose logging and prevents debug messages from being printed.
//
// It performs the following operations:
//   - Acquires a write lock to ensure thread-safe modification
//   - Sets the enabled flag to false
//   - Releases the write lock
//
// Returns:
//   - None
func Disable() {
	mu.Lock()
	defer mu.Unlock()
	enabled = false
}

// IsEnabled returns whether verbose logging is currently enabled.
//
// It performs the following operations:
//   - Acquires a read lock to ensure thread-safe access
//   - Reads the enabled flag value
//   - Releases the read lock
//
// Returns:
//   - bool: true if verbose logging is enabled, false otherwise
func IsEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

// SetWriter sets the output writer for verbose messages.
//
// It performs the following operations:
//   - Acquires a write lock to ensure thread-safe modification
//   - Updates the writer if the provided writer is not nil
//   - Releases the write lock
//
// Parameters:
//   - w: The io.Writer to use for output; if nil, the writer remains unchanged
//
// Returns:
//   - None
func SetWriter(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w != nil {
		writer = w
	}
}

// getWriter returns the current writer with proper locking for internal use.
//
// It performs the following operations:
//   - Acquires a read lock to ensure thread-safe access
//   - Reads the writer value
//   - Releases the read lock
//
// Returns:
//   - io.Writer: The currently configured output writer
func getWriter() io.Writer {
	mu.RLock()
	defer mu.RUnlock()
	return writer
}

// isEnabled returns whether verbose is enabled with proper locking for internal use.
//
// It performs the following operations:
//   - Acquires a read lock to ensure thread-safe access
//   - Reads the enabled flag value
//   - Releases the read lock
//
// Returns:
//   - bool: true if verbose logging is enabled, false otherwise
func isEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

// Printf prints a formatted verbose message if enabled.
//
// It performs the following operations:
//   - Checks if verbose logging is enabled
//   - Formats and prints the message with [DEBUG] prefix to the configured writer
//   - Does nothing if verbose logging is disabled
//
// Parameters:
//   - format: Printf-style format string
//   - args: Variadic arguments to format into the string
//
// Returns:
//   - None
func Printf(format string, args ...any) {
	if isEnabled() {
		_, _ = fmt.Fprintf(getWriter(), "[DEBUG] "+format+"\n", args...)
	}
}

// Info prints an informational verbose message if enabled.
//
// It performs the following operations:
//   - Checks if verbose logging is enabled
//   - Prints the message with [DEBUG] prefix to the configured writer
//   - Does nothing if verbose logging is disabled
//
// Parameters:
//   - msg: The message string to print
//
// Returns:
//   - None
func Info(msg string) {
	if isEnabled() {
		_, _ = fmt.Fprintf(getWriter(), "[DEBUG] %s\n", msg)
	}
}

// Infof prints a formatted informational verbose message if enabled.
//
// It performs the following operations:
//   - Checks if verbose logging is enabled
//   - Formats and prints the message with [DEBUG] prefix to the configured writer
//   - Does nothing if verbose logging is disabled
//
// Parameters:
//   - format: Printf-style format string
//   - args: Variadic arguments to format into the string
//
// Returns:
//   - None
func Infof(format string, args ...any) {
	if isEnabled() {
		_, _ = fmt.Fprintf(getWriter(), "[DEBUG] "+format+"\n", args...)
	}
}

// DocRef represents a documentation reference for a specific topic.
//
// It contains information to help users find relevant documentation
// when troubleshooting issues or configuring the tool.
//
// Fields:
//   - Topic: A human-readable name for the documentation topic
//   - DocPath: The relative path to the documentation file or section
//   - Hint: A brief description of what the documentation covers
type DocRef struct {
	Topic   string
	DocPath string
	Hint    string
}

// Common documentation references.
var docRefs = map[string]DocRef{
	"config": {
		Topic:   "Configuration",
		DocPath: "docs/configuration.md",
		Hint:    "See configuration guide for YAML schema and options",
	},
	"document": {
		Topic:   "Document Format",
		DocPath: "docs/document.md",
		Hint:    "Section headings, deal fields and item formats for the weekly document",
	},
	"build": {
		Topic:   "Page Build",
		DocPath: "docs/cli.md#build",
		Hint:    "Generate the deals page from the weekly document",
	},
	"search": {
		Topic:   "Search and Filtering",
		DocPath: "docs/cli.md#search",
		Hint:    "Query and category filters mirror the page toolbar",
	},
	"publish": {
		Topic:   "Publishing",
		DocPath: "docs/configuration.md#publish",
		Hint:    "Configure remote, branch and commit message templates",
	},
	"checks": {
		Topic:   "Post-build Checks",
		DocPath: "docs/configuration.md#checks",
		Hint:    "Configure verification commands run after a build",
	},
	"cli": {
		Topic:   "CLI Reference",
		DocPath: "docs/cli.md",
		Hint:    "See all available commands and flags",
	},
}

// WithDocRef prints a verbose message with a documentation reference if enabled.
//
// It performs the following operations:
//   - Checks if verbose logging is enabled
//   - Prints the message with [DEBUG] prefix
//   - If the topic is found in docRefs, appends documentation reference and hint
//   - Does nothing if verbose logging is disabled
//
// Parameters:
//   - topic: The documentation topic key (e.g., "config", "document", "publish")
//   - message: The main message to print
//
// Returns:
//   - None
func WithDocRef(topic, message string) {
	if !isEnabled() {
		return
	}
	w := getWriter()
	ref, ok := docRefs[strings.ToLower(topic)]
	if ok {
		_, _ = fmt.Fprintf(w, "[DEBUG] %s\n", message)
		_, _ = fmt.Fprintf(w, "        📖 %s: %s\n", ref.Topic, ref.DocPath)
		_, _ = fmt.Fprintf(w, "        💡 %s\n", ref.Hint)
	} else {
		_, _ = fmt.Fprintf(w, "[DEBUG] %s\n", message)
	}
}

// ConfigHelp prints configuration help for a specific setting issue if enabled.
//
// It performs the following operations:
//   - Checks if verbose logging is enabled
//   - Prints the setting name and issue description
//   - Prints the suggested solution
//   - Appends a documentation reference link
//   - Does nothing if verbose logging is disabled
//
// Parameters:
//   - setting: The name of the configuration setting
//   - issue: A description of the problem or issue
//   - solution: A description of how to solve the issue
//
// Returns:
//   - None
func ConfigHelp(setting, issue, solution string) {
	if !isEnabled() {
		return
	}
	w := getWriter()
	_, _ = fmt.Fprintf(w, "[DEBUG] Setting '%s': %s\n", setting, issue)
	_, _ = fmt.Fprintf(w, "        Solution: %s\n", solution)
	_, _ = fmt.Fprintf(w, "        📖 See: docs/configuration.md\n")
}

// PublishHelp prints help for configuring a custom publish pipeline if enabled.
//
// It performs the following operations:
//   - Checks if verbose logging is enabled
//   - Prints a message indicating the default pipeline is in use
//   - Provides a YAML configuration example for overriding it
//   - Appends a documentation reference link
//   - Does nothing if verbose logging is disabled
//
// Parameters:
//   - reason: Why the default pipeline may not fit (e.g. "custom remote auth")
//
// Returns:
//   - None
func PublishHelp(reason string) {
	if !isEnabled() {
		return
	}
	w := getWriter()
	_, _ = fmt.Fprintf(w, "[DEBUG] Default git pipeline in use (%s)\n", reason)
	_, _ = fmt.Fprintf(w, "        To override, configure in .stacksmith.yml:\n")
	_, _ = fmt.Fprintf(w, "        \n")
	_, _ = fmt.Fprintf(w, "        publish:\n")
	_, _ = fmt.Fprintf(w, "          commands: |\n")
	_, _ = fmt.Fprintf(w, "            git add {{page}}\n")
	_, _ = fmt.Fprintf(w, "            git commit -m {{message}}\n")
	_, _ = fmt.Fprintf(w, "            git push {{remote}} {{branch}}\n")
	_, _ = fmt.Fprintf(w, "        \n")
	_, _ = fmt.Fprintf(w, "        📖 See: docs/configuration.md#publish\n")
}

// CommandExec logs command execution details if enabled.
//
// It performs the following operations:
//   - Checks if verbose logging is enabled
//   - Prints the command being executed
//   - Prints the working directory where the command will run
//   - Does nothing if verbose logging is disabled
//
// Parameters:
//   - cmd: The command string being executed
//   - workDir: The working directory path for command execution
//
// Returns:
//   - None
func CommandExec(cmd, workDir string) {
	if isEnabled() {
		w := getWriter()
		_, _ = fmt.Fprintf(w, "[DEBUG] Executing: %s\n", cmd)
		_, _ = fmt.Fprintf(w, "        Working dir: %s\n", workDir)
	}
}

// CommandResult logs command execution results if enabled.
//
// It performs the following operations:
//   - Checks if verbose logging is enabled
//   - Prints the command status (succeeded or failed) with exit code
//   - Truncates long command strings to 60 characters for readability
//   - If output is provided, prints up to 5 lines with truncation
//   - Does nothing if verbose logging is disabled
//
// Parameters:
//   - cmd: The command string that was executed
//   - exitCode: The exit code returned by the command (0 for success)
//   - output: The command output (stdout/stderr)
//
// Returns:
//   - None
func CommandResult(cmd string, exitCode int, output string) {
	if !isEnabled() {
		return
	}
	w := getWriter()
	if exitCode == 0 {
		_, _ = fmt.Fprintf(w, "[DEBUG] Command succeeded: %s\n", truncate(cmd, 60))
	} else {
		_, _ = fmt.Fprintf(w, "[DEBUG] Command failed (exit %d): %s\n", exitCode, truncate(cmd, 60))
	}
	if output != "" {
		lines := strings.Split(strings.TrimSpace(output), "\n")
		if len(lines) > 5 {
			for _, line := range lines[:3] {
				_, _ = fmt.Fprintf(w, "        | %s\n", truncate(line, 100))
			}
			_, _ = fmt.Fprintf(w, "        | ... (%d more lines)\n", len(lines)-3)
		} else {
			for _, line := range lines {
				_, _ = fmt.Fprintf(w, "        | %s\n", truncate(line, 100))
			}
		}
	}
}

// ConfigLoaded logs which config file was loaded if enabled.
//
// It performs the following operations:
//   - Checks if verbose logging is enabled
//   - Prints the path to the loaded configuration file
//   - If environment overrides were applied, prints the affected keys
//   - Does nothing if verbose logging is disabled
//
// Parameters:
//   - path: The file path to the configuration file that was loaded
//   - overrides: Names of settings overridden from the environment
//
// Returns:
//   - None
func ConfigLoaded(path string, overrides []string) {
	if !isEnabled() {
		return
	}
	w := getWriter()
	_, _ = fmt.Fprintf(w, "[DEBUG] Config loaded: %s\n", path)
	if len(overrides) > 0 {
		_, _ = fmt.Fprintf(w, "        Env overrides: %v\n", overrides)
	}
}

// DocumentLoaded logs document extraction details if enabled.
//
// It performs the following operations:
//   - Checks if verbose logging is enabled
//   - Prints the document path and the number of paragraphs extracted
//   - Does nothing if verbose logging is disabled
//
// Parameters:
//   - path: The document file path
//   - paragraphs: The number of paragraphs extracted from it
//
// Returns:
//   - None
func DocumentLoaded(path string, paragraphs int) {
	if isEnabled() {
		_, _ = fmt.Fprintf(getWriter(), "[DEBUG] Document loaded: %s (%d paragraphs)\n", path, paragraphs)
	}
}

// SectionDetected logs when the document parser enters a new section if enabled.
//
// It performs the following operations:
//   - Checks if verbose logging is enabled
//   - Prints the section name and the paragraph index where it begins
//   - Does nothing if verbose logging is disabled
//
// Parameters:
//   - name: The section heading that was recognized
//   - paragraph: The zero-based paragraph index of the heading
//
// Returns:
//   - None
func SectionDetected(name string, paragraph int) {
	if isEnabled() {
		_, _ = fmt.Fprintf(getWriter(), "[DEBUG] Section detected at paragraph %d: %s\n", paragraph, name)
	}
}

// RecordFiltered logs when a record is hidden by the active filter if enabled.
//
// It performs the following operations:
//   - Checks if verbose logging is enabled
//   - Prints a truncated form of the record text and the reason it was hidden
//   - Does nothing if verbose logging is disabled
//
// Parameters:
//   - text: The record text that was filtered out
//   - reason: The reason why the record is not visible
//
// Returns:
//   - None
func RecordFiltered(text, reason string) {
	if isEnabled() {
		_, _ = fmt.Fprintf(getWriter(), "[DEBUG] Record '%s' hidden: %s\n", truncate(text, 40), reason)
	}
}

// PageWritten logs page generation details if enabled.
//
// It performs the following operations:
//   - Checks if verbose logging is enabled
//   - Prints the output path and the number of bytes written
//   - Does nothing if verbose logging is disabled
//
// Parameters:
//   - path: The page file path that was written
//   - size: The number of bytes written
//
// Returns:
//   - None
func PageWritten(path string, size int) {
	if isEnabled() {
		_, _ = fmt.Fprintf(getWriter(), "[DEBUG] Page written: %s (%d bytes)\n", path, size)
	}
}

// truncate shortens a string to the specified maximum length.
//
// It performs the following operations:
//   - Returns the original string if it's within the maxLen limit
//   - Truncates the string to maxLen-3 and appends "..." if it exceeds maxLen
//
// Parameters:
//   - s: The string to truncate
//   - maxLen: The maximum length for the returned string (must be at least 3)
//
// Returns:
//   - string: The original or truncated string with "..." suffix if truncated
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
