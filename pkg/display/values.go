package display

import (
	"strings"

	"github.com/squatchystacks/stacksmith/pkg/constants"
)

// SafeCategoryValue returns a display-safe category name.
//
// Stack deals carry no category, so empty values render as "#N/A" for
// consistent table display. Otherwise returns the trimmed value.
//
// Parameters:
//   - val: The category name, may be empty
//
// Returns:
//   - string: The value or "#N/A" if empty
//
// Example:
//
//	display.SafeCategoryValue("")        // Returns "#N/A"
//	display.SafeCategoryValue("Dairy")   // Returns "Dairy"
func SafeCategoryValue(val string) string {
	val = strings.TrimSpace(val)
	if val == "" {
		return constants.PlaceholderNA
	}
	return val
}

// SafeCellValue returns a display-safe table cell value.
//
// If the value is empty or whitespace-only, returns the provided placeholder.
//
// Parameters:
//   - val: The cell value, may be empty
//   - placeholder: The placeholder to use if val is empty
//
// Returns:
//   - string: The trimmed value or placeholder if empty
//
// Example:
//
//	display.SafeCellValue("", "-")        // Returns "-"
//	display.SafeCellValue("3 notes", "-") // Returns "3 notes"
func SafeCellValue(val, placeholder string) string {
	val = strings.TrimSpace(val)
	if val == "" {
		return placeholder
	}
	return val
}

// TruncateWithEllipsis truncates a string and adds "..." if too long.
//
// If the string is shorter than or equal to maxLen, returns unchanged.
// Otherwise truncates and appends "..." (total length = maxLen).
//
// Parameters:
//   - s: The string to truncate
//   - maxLen: Maximum length including ellipsis (minimum 4)
//
// Returns:
//   - string: Original string if shorter than maxLen, or truncated with "..."
//
// Example:
//
//	display.TruncateWithEllipsis("Gain Flings 24ct BOGO at full retail", 20)
//	// Returns "Gain Flings 24ct ..."
func TruncateWithEllipsis(s string, maxLen int) string {
	if maxLen < 4 {
		maxLen = 4
	}
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
