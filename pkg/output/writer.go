package output

import (
	"fmt"
	"io"

	"github.com/iancoleman/orderedmap"
)

// WriteSearchResult writes search results in the specified format.
//
// It performs the following operations:
//   - Step 1: Creates a formatter for the requested format
//   - Step 2: Writes the search result using format-specific logic
//
// Parameters:
//   - w: Destination writer for the output
//   - format: Output format (FormatJSON, FormatXML, or FormatCSV)
//   - result: Search result data to write
//
// Returns:
//   - error: When format is unsupported, returns an error; when write fails, returns the underlying error; otherwise returns nil
func WriteSearchResult(w io.Writer, format Format, result *SearchResult) error {
	formatter := NewFormatter(format, w)

	switch format {
	case FormatJSON:
		return formatter.WriteJSON(result)
	case FormatXML:
		return formatter.WriteXML(result)
	case FormatCSV:
		return writeSearchCSV(formatter, result)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// writeSearchCSV writes search results in CSV format using the formatter.
//
// The CSV projection is flat record rows; group-level counts are not
// representable and are dropped.
//
// Parameters:
//   - f: The formatter instance to use for CSV writing
//   - result: Search result data containing visible records
//
// Returns:
//   - error: When CSV write fails; returns nil on success
func writeSearchCSV(f *Formatter, result *SearchResult) error {
	headers := []string{"SECTION", "CATEGORY", "DEAL"}
	rows := make([][]string, 0, len(result.Records))
	for _, record := range result.Records {
		rows = append(rows, []string{record.Section, record.Category, record.Deal})
	}
	return f.WriteCSV(headers, rows)
}

// WriteScanResult writes scan results in the specified format.
//
// It performs the following operations:
//   - Step 1: Creates a formatter for the requested format
//   - Step 2: Writes the scan result using format-specific logic
//
// Parameters:
//   - w: Destination writer for the output
//   - format: Output format (FormatJSON, FormatXML, or FormatCSV)
//   - result: Scan result data to write
//
// Returns:
//   - error: When format is unsupported, returns an error; when write fails, returns the underlying error; otherwise returns nil
func WriteScanResult(w io.Writer, format Format, result *ScanResult) error {
	formatter := NewFormatter(format, w)

	switch format {
	case FormatJSON:
		return formatter.WriteJSON(result)
	case FormatXML:
		return formatter.WriteXML(result)
	case FormatCSV:
		return writeScanCSV(formatter, result)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// writeScanCSV writes scan results in CSV format using the formatter.
//
// The CSV projection is the section-count rows; anomaly details are not
// representable and only contribute to the NOTES count.
//
// Parameters:
//   - f: The formatter instance to use for CSV writing
//   - result: Scan result data containing section counts
//
// Returns:
//   - error: When CSV write fails; returns nil on success
func writeScanCSV(f *Formatter, result *ScanResult) error {
	headers := []string{"SECTION", "DEALS", "NOTES"}
	rows := make([][]string, 0, len(result.Sections))
	for _, section := range result.Sections {
		rows = append(rows, []string{
			section.Section,
			fmt.Sprintf("%d", section.Deals),
			fmt.Sprintf("%d", section.Notes),
		})
	}
	return f.WriteCSV(headers, rows)
}

// WriteCatalog writes a full parsed catalog as ordered JSON.
//
// The catalog projection is an ordered map so sections and categories keep
// their document order in the encoded output. Only JSON is supported: the
// key order that motivates the projection has no CSV or XML equivalent.
//
// Parameters:
//   - w: Destination writer for the output
//   - catalog: Ordered catalog projection to encode
//
// Returns:
//   - error: When encoding fails, returns the underlying error; otherwise returns nil
func WriteCatalog(w io.Writer, catalog *orderedmap.OrderedMap) error {
	return NewFormatter(FormatJSON, w).WriteJSON(catalog)
}
