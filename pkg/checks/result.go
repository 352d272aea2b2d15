// Package checks runs post-build verification against the generated page.
// Checks cover the page structure (the rendered sections must match the
// catalog they were built from) and any commands configured under the
// checks block.
package checks

import (
	"fmt"
	"strings"
	"time"
)

// maxOutputLines bounds how much command output a failed check shows.
const maxOutputLines = 10

// CheckResult represents the result of a single check.
type CheckResult struct {
	// Name identifies the check: the expanded command line for command
	// checks, a short description for structure checks.
	Name string

	// Passed indicates whether the check passed.
	Passed bool

	// Duration is how long the check took to execute.
	Duration time.Duration

	// Error contains the failure cause if the check failed.
	Error error

	// Output contains the command output (stdout/stderr), if any.
	Output string
}

// Result represents the aggregate result of running a group of checks.
type Result struct {
	// Checks contains results for each individual check.
	Checks []CheckResult

	// Phase indicates which group of checks was run (Structure, Commands).
	Phase string

	// TotalDuration is the total time for all checks.
	TotalDuration time.Duration
}

// Passed returns true if all checks passed and returns false otherwise.
//
// Returns:
//   - bool: true if every check passed or no checks ran; false otherwise
func (r *Result) Passed() bool {
	for _, c := range r.Checks {
		if !c.Passed {
			return false
		}
	}
	return true
}

// PassedCount returns the number of checks that passed.
//
// Returns:
//   - int: Count of checks with Passed=true
func (r *Result) PassedCount() int {
	count := 0
	for _, c := range r.Checks {
		if c.Passed {
			count++
		}
	}
	return count
}

// FailedCount returns the number of checks that failed.
//
// Returns:
//   - int: Count of checks with Passed=false
func (r *Result) FailedCount() int {
	count := 0
	for _, c := range r.Checks {
		if !c.Passed {
			count++
		}
	}
	return count
}

// FailedChecks returns all checks that failed.
//
// Returns:
//   - []CheckResult: Slice of failed checks; empty if everything passed
func (r *Result) FailedChecks() []CheckResult {
	var failures []CheckResult
	for _, c := range r.Checks {
		if !c.Passed {
			failures = append(failures, c)
		}
	}
	return failures
}

// Summary returns a brief summary string of the check results.
//
// Returns:
//   - string: One-line summary showing passed/failed counts (e.g., "All 5 checks passed" or "3/5 checks passed (2 failed)")
func (r *Result) Summary() string {
	total := len(r.Checks)
	passed := r.PassedCount()
	failed := r.FailedCount()

	if failed == 0 {
		return fmt.Sprintf("All %d checks passed", total)
	}
	return fmt.Sprintf("%d/%d checks passed (%d failed)", passed, total, failed)
}

// FormatResults returns a formatted string showing all check results
// including passing checks.
//
// Use FormatResultsQuiet for minimal output (only shows on failure).
//
// Returns:
//   - string: Multi-line formatted output with phase, per-check status, and durations
func (r *Result) FormatResults() string {
	return r.formatResults(true)
}

// FormatResultsQuiet returns formatted results only if there are failures.
//
// Returns:
//   - string: Formatted output showing only failed checks; empty string if all checks passed
func (r *Result) FormatResultsQuiet() string {
	if r.Passed() {
		return ""
	}
	return r.formatResults(false)
}

// formatResults is the internal implementation for formatting check results.
//
// It performs the following operations:
//   - Step 1: Build formatted header with the check phase
//   - Step 2: Iterate through checks and format each result with icon and duration
//   - Step 3: Show error details and trailing output for failed checks
//
// Parameters:
//   - showPassing: When true, all checks are shown; when false, only failures are shown
//
// Returns:
//   - string: Formatted multi-line output with check results
func (r *Result) formatResults(showPassing bool) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Page checks (%s)\n", r.Phase))
	sb.WriteString(strings.Repeat("─", 60) + "\n")

	for _, c := range r.Checks {
		// In quiet mode, skip passing checks
		if !showPassing && c.Passed {
			continue
		}

		icon := "✓"
		if !c.Passed {
			icon = "✗"
		}
		durationStr := formatDuration(c.Duration)
		sb.WriteString(fmt.Sprintf("  %s %-40s [%s]\n", icon, c.Name, durationStr))

		if !c.Passed && c.Error != nil {
			for i, line := range strings.Split(c.Error.Error(), "\n") {
				if i == 0 {
					sb.WriteString(fmt.Sprintf("    └─ %s\n", line))
				} else {
					sb.WriteString(fmt.Sprintf("       %s\n", line))
				}
			}
		}

		// Show trailing command output on failure, unless the error
		// message already carries it.
		if !c.Passed && strings.TrimSpace(c.Output) != "" {
			if c.Error == nil || !strings.Contains(c.Error.Error(), strings.TrimSpace(c.Output)) {
				writeOutputTail(&sb, c.Output)
			}
		}
	}

	sb.WriteString(strings.Repeat("─", 60) + "\n")
	return sb.String()
}

// writeOutputTail writes the last maxOutputLines lines of command output,
// noting how many lines were dropped.
func writeOutputTail(sb *strings.Builder, output string) {
	lines := strings.Split(strings.TrimRight(output, "\n"), "\n")
	if len(lines) > maxOutputLines {
		sb.WriteString(fmt.Sprintf("       ... (%d lines truncated)\n", len(lines)-maxOutputLines))
		lines = lines[len(lines)-maxOutputLines:]
	}
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("       %s\n", line))
	}
}

// formatDuration formats a duration for display in human-readable format.
//
// Parameters:
//   - d: Duration to format
//
// Returns:
//   - string: Duration formatted as milliseconds (e.g., "500ms") if less than 1 second, otherwise as seconds (e.g., "2.5s")
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.0fms", float64(d.Milliseconds()))
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}

// Phase constants for the two check groups.
const (
	PhaseStructure = "Structure"
	PhaseCommands  = "Commands"
)
