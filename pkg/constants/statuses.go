// Package constants provides centralized string constants used throughout the application.
// This eliminates magic strings and provides a single source of truth for shared values.
package constants

// Section heading constants name the four deal sections of the weekly page.
// Document headings are matched against these case-insensitively.
const (
	// SectionTripleStacks holds deals that combine three discounts.
	SectionTripleStacks = "TRIPLE STACKS"

	// SectionDoubleStacks holds deals that combine two discounts.
	SectionDoubleStacks = "DOUBLE STACKS"

	// SectionBogoDeals holds buy-one-get-one offers grouped by category.
	SectionBogoDeals = "BOGO DEALS"

	// SectionDigitalCoupons holds digital coupon offers grouped by category.
	SectionDigitalCoupons = "DIGITAL COUPONS"
)

// Publish step status constants represent the state of a step during publication.
const (
	// StatusPlanned indicates the step would run (dry-run mode).
	StatusPlanned = "Planned"

	// StatusDone indicates the step completed successfully.
	StatusDone = "Done"

	// StatusSkipped indicates the step was not needed (e.g. nothing to commit).
	StatusSkipped = "Skipped"

	// StatusFailed indicates the step failed.
	StatusFailed = "Failed"
)

// Placeholder values for display when data is not available.
const (
	// PlaceholderNA is used when a value is not available.
	PlaceholderNA = "#N/A"
)

// Output format constants.
const (
	// FilterAll is the default filter value that matches all items.
	FilterAll = "all"
)

// Icon constants for status display.
// These provide visual indicators for states in CLI output.
const (
	// IconSuccess indicates a successful or positive state (green circle).
	IconSuccess = "🟢"

	// IconWarning indicates a warning or caution state (orange circle).
	IconWarning = "🟠"

	// IconError indicates an error or failed state (red X).
	IconError = "❌"

	// IconInfo indicates informational or neutral state (blue circle).
	IconInfo = "🔵"

	// IconPending indicates a pending or planned state (yellow circle).
	IconPending = "🟡"

	// IconIgnored indicates an item is excluded from processing (no entry).
	IconIgnored = "🚫"

	// IconCheckmark indicates a passed check (checkmark).
	IconCheckmark = "✓"

	// IconCross indicates a failed check (cross).
	IconCross = "✗"

	// IconWarn is the warning prefix for messages.
	IconWarn = "⚠️"

	// IconCheckmarkBox indicates successful validation (checkmark in box).
	IconCheckmarkBox = "✅"

	// IconLightbulb indicates a hint or suggestion.
	IconLightbulb = "💡"
)

// Validation status constants for document validation.
const (
	// ValidationValid indicates a valid document.
	ValidationValid = "🟢 valid"

	// ValidationInvalid indicates an invalid document.
	ValidationInvalid = "❌ invalid"
)
