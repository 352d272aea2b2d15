package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/squatchystacks/stacksmith/pkg/constants"
)

// PrintWarnings prints warning messages to the writer.
//
// Formats each warning on its own line with a warning icon prefix.
// Does nothing if warnings slice is empty.
// Prints a blank line before the warnings for separation.
//
// Parameters:
//   - w: Writer to output to (typically os.Stderr)
//   - warnings: Slice of warning messages
//
// Example output:
//
//	<blank line>
//	Warning: TRIPLE STACKS deal without a Buy line
//	Warning: uncategorized BOGO deal skipped
func PrintWarnings(w io.Writer, warnings []string) {
	if len(warnings) == 0 {
		return
	}

	_, _ = fmt.Fprintln(w)
	for _, warning := range warnings {
		_, _ = fmt.Fprintf(w, "%s %s\n", constants.IconWarn, warning)
	}
}

// PrintWarningsInline prints warning messages without a leading blank line.
//
// Same as PrintWarnings but without the leading blank line.
//
// Parameters:
//   - w: Writer to output to
//   - warnings: Slice of warning messages
func PrintWarningsInline(w io.Writer, warnings []string) {
	if len(warnings) == 0 {
		return
	}

	for _, warning := range warnings {
		_, _ = fmt.Fprintf(w, "%s %s\n", constants.IconWarn, warning)
	}
}

// SectionCount describes how many deals a section contributed.
//
// Fields:
//   - Label: Human-readable section label (e.g., "triple stacks")
//   - Deals: Number of deals found in the section
//   - Categories: Number of categories the deals are grouped into
//     (0 for stack sections, which have no categories)
type SectionCount struct {
	// Label is the human-readable section label.
	Label string

	// Deals is the number of deals found.
	Deals int

	// Categories is the number of categories, 0 for stack sections.
	Categories int
}

// PrintFound prints a per-section "Found N ..." summary line.
//
// Stack sections print a plain count; categorized sections append the
// category count.
//
// Parameters:
//   - w: Writer to output to
//   - count: Section count to display
//
// Example output:
//
//	Found 5 triple stacks
//	Found 12 BOGO deals in 4 categories
func PrintFound(w io.Writer, count SectionCount) {
	if count.Categories > 0 {
		_, _ = fmt.Fprintf(w, "Found %d %s in %d categories\n", count.Deals, count.Label, count.Categories)
		return
	}
	_, _ = fmt.Fprintf(w, "Found %d %s\n", count.Deals, count.Label)
}

// PublishStep prints an [i/n] progress line for a publish step.
//
// Parameters:
//   - w: Writer to output to
//   - index: 1-based step number
//   - total: Total number of steps
//   - name: Short step label
//
// Example output:
//
//	[2/4] stage page
func PublishStep(w io.Writer, index, total int, name string) {
	_, _ = fmt.Fprintf(w, "[%d/%d] %s\n", index, total, name)
}

// PrintNoResults prints the no-results placeholder the generated page shows,
// optionally followed by a closest-match suggestion.
//
// Parameters:
//   - w: Writer to output to
//   - suggestion: Closest matching term, empty when none was found
//
// Example output:
//
//	No deals match your search.
//	Did you mean 'dawn'?
func PrintNoResults(w io.Writer, suggestion string) {
	_, _ = fmt.Fprintln(w, "No deals match your search.")
	if suggestion != "" {
		_, _ = fmt.Fprintf(w, "Did you mean '%s'?\n", suggestion)
	}
}

// Summary holds operation summary data.
//
// Fields:
//   - Total: Total items processed
//   - Succeeded: Items that succeeded
//   - Failed: Items that failed
//   - Skipped: Items that were skipped
type Summary struct {
	// Total is the total number of items processed.
	Total int

	// Succeeded is the number of successful operations.
	Succeeded int

	// Failed is the number of failed operations.
	Failed int

	// Skipped is the number of skipped operations.
	Skipped int
}

// PrintSummary prints an operation summary.
//
// Parameters:
//   - w: Writer to output to
//   - summary: Summary data to display
//
// Example output:
//
//	Summary: 4 total, 3 succeeded, 1 skipped
func PrintSummary(w io.Writer, summary Summary) {
	_, _ = fmt.Fprintf(w, "Summary: %d total", summary.Total)
	if summary.Succeeded > 0 {
		_, _ = fmt.Fprintf(w, ", %d succeeded", summary.Succeeded)
	}
	if summary.Failed > 0 {
		_, _ = fmt.Fprintf(w, ", %d failed", summary.Failed)
	}
	if summary.Skipped > 0 {
		_, _ = fmt.Fprintf(w, ", %d skipped", summary.Skipped)
	}
	_, _ = fmt.Fprintln(w)
}

// WarningCollector captures warnings for deferred output.
//
// Implements io.Writer so it can be used as a warning sink.
// Warnings are collected and can be printed later using Messages().
//
// Example:
//
//	collector := &WarningCollector{}
//	// ... operations that may produce warnings ...
//	display.PrintWarnings(os.Stderr, collector.Messages())
type WarningCollector struct {
	messages []string
}

// Write implements io.Writer for capturing warning messages.
//
// Splits input on newlines and stores non-empty trimmed lines.
//
// Parameters:
//   - p: Byte slice containing warning message data
//
// Returns:
//   - int: Number of bytes written (always len(p))
//   - error: Always nil, never returns an error
func (c *WarningCollector) Write(p []byte) (int, error) {
	lines := strings.Split(string(p), "\n")
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" {
			c.messages = append(c.messages, trimmed)
		}
	}
	return len(p), nil
}

// Messages returns a copy of all collected warning messages.
//
// Creates a defensive copy to prevent external modification of the internal slice.
//
// Returns:
//   - []string: Copy of all collected warning messages
func (c *WarningCollector) Messages() []string {
	copied := make([]string, len(c.messages))
	copy(copied, c.messages)
	return copied
}

// Reset clears all collected messages.
//
// Use this when you want to reuse the same collector for a new batch of warnings.
func (c *WarningCollector) Reset() {
	c.messages = nil
}

// NewWarningCollector creates a new WarningCollector.
//
// Returns:
//   - *WarningCollector: A new empty warning collector ready for use
//
// Example:
//
//	collector := display.NewWarningCollector()
//	restore := warnings.SetWarningWriter(collector)
//	// ... operations that may produce warnings ...
//	restore()
//	display.PrintWarnings(os.Stderr, collector.Messages())
func NewWarningCollector() *WarningCollector {
	return &WarningCollector{}
}
