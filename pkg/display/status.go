package display

import (
	"fmt"

	"github.com/squatchystacks/stacksmith/pkg/constants"
)

// Status constants re-exported for convenience.
const (
	// StatusPlanned indicates the step would run (dry-run mode).
	StatusPlanned = constants.StatusPlanned

	// StatusDone indicates the step completed successfully.
	StatusDone = constants.StatusDone

	// StatusSkipped indicates the step was not needed.
	StatusSkipped = constants.StatusSkipped

	// StatusFailed indicates the step failed.
	StatusFailed = constants.StatusFailed
)

// FormatStatus formats a publish step status with the appropriate icon.
//
// Parameters:
//   - status: The status string (e.g., "Done", "Failed", "Planned")
//
// Returns:
//   - string: Formatted status with icon prefix (e.g., "🟢 Done")
//
// Example:
//
//	display.FormatStatus("Done")    // Returns "🟢 Done"
//	display.FormatStatus("Failed")  // Returns "❌ Failed"
//	display.FormatStatus("Planned") // Returns "🟡 Planned"
func FormatStatus(status string) string {
	switch status {
	case constants.StatusDone:
		return fmt.Sprintf("%s %s", constants.IconSuccess, constants.StatusDone)
	case constants.StatusPlanned:
		return fmt.Sprintf("%s %s", constants.IconPending, constants.StatusPlanned)
	case constants.StatusSkipped:
		return fmt.Sprintf("%s %s", constants.IconInfo, constants.StatusSkipped)
	case constants.StatusFailed:
		return fmt.Sprintf("%s %s", constants.IconError, constants.StatusFailed)
	default:
		return status
	}
}

// StatusIcon returns the icon for a given status.
//
// Parameters:
//   - status: The status string
//
// Returns:
//   - string: The icon for this status, or empty string if unknown
//
// Example:
//
//	display.StatusIcon("Done")    // Returns "🟢"
//	display.StatusIcon("Failed")  // Returns "❌"
func StatusIcon(status string) string {
	switch status {
	case constants.StatusDone:
		return constants.IconSuccess
	case constants.StatusPlanned:
		return constants.IconPending
	case constants.StatusSkipped:
		return constants.IconInfo
	case constants.StatusFailed:
		return constants.IconError
	default:
		return ""
	}
}

// IsSuccessStatus returns true if the status indicates success.
//
// Parameters:
//   - status: The status string to check
//
// Returns:
//   - bool: true if status is Done or Skipped
func IsSuccessStatus(status string) bool {
	return status == constants.StatusDone || status == constants.StatusSkipped
}

// IsFailureStatus returns true if the status indicates failure.
//
// Parameters:
//   - status: The status string to check
//
// Returns:
//   - bool: true if status is Failed
func IsFailureStatus(status string) bool {
	return status == constants.StatusFailed
}
