// Package display provides unified display and formatting for stacksmith output.
//
// This package consolidates the CLI presentation layer: table schemas for
// the scan and search commands, summary and warning messages, publish step
// progress, and closest-match suggestions.
//
// Table Schemas:
//
// Use the predefined schemas for consistent column layout:
//
//	table := display.NewSearchTable()  // SECTION, CATEGORY, DEAL
//	table := display.NewScanTable()    // SECTION, DEALS, NOTES
//
// Status Formatting:
//
// Use status functions for consistent status display with icons:
//
//	status := display.FormatStatus("Done")  // Returns "🟢 Done"
//
// Messages:
//
// Use message functions for consistent user feedback:
//
//	display.PrintWarnings(os.Stderr, warnings)
//	display.PrintFound(os.Stdout, display.SectionCount{Label: "triple stacks", Deals: 5})
//	display.PublishStep(os.Stdout, 1, 4, "stage page")
//
// For table output, use the pkg/output package directly.
package display
