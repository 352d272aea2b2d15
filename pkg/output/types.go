package output

import "encoding/xml"

// SearchResult represents the output data for the search command.
//
// Fields:
//   - XMLName: XML root element name (used only for XML marshaling)
//   - Summary: The filter inputs echoed back plus aggregate visibility
//   - Groups: Per-section visibility derived from the record mapping
//   - Records: The visible records in flattened section order
type SearchResult struct {
	XMLName xml.Name       `json:"-" xml:"searchResult"`
	Summary SearchSummary  `json:"summary" xml:"summary"`
	Groups  []SearchGroup  `json:"groups" xml:"groups>group"`
	Records []SearchRecord `json:"records" xml:"records>record"`
}

// SearchSummary holds the filter inputs and aggregate visibility counts.
//
// Fields:
//   - Query: The free-text query that was applied (may be empty)
//   - Category: The active category tag (omitted when none was active)
//   - Source: Where the records came from ("page" or "document")
//   - TotalRecords: Number of records evaluated
//   - VisibleRecords: Number of records visible under the filters
//   - AnyVisible: Whether at least one record is visible
type SearchSummary struct {
	Query          string `json:"query" xml:"query"`
	Category       string `json:"category,omitempty" xml:"category,omitempty"`
	Source         string `json:"source" xml:"source"`
	TotalRecords   int    `json:"total_records" xml:"totalRecords"`
	VisibleRecords int    `json:"visible_records" xml:"visibleRecords"`
	AnyVisible     bool   `json:"any_visible" xml:"anyVisible"`
}

// SearchGroup represents one page section's derived visibility.
//
// Fields:
//   - Label: The section heading
//   - Visible: Whether at least one member record is visible
//   - VisibleCount: Number of visible member records
//   - TotalCount: Number of member records evaluated
type SearchGroup struct {
	Label        string `json:"label" xml:"label"`
	Visible      bool   `json:"visible" xml:"visible"`
	VisibleCount int    `json:"visible_count" xml:"visibleCount"`
	TotalCount   int    `json:"total_count" xml:"totalCount"`
}

// SearchRecord represents a single visible deal record.
//
// Fields:
//   - Section: The section heading the record belongs to
//   - Category: The record's category tag (omitted for stack deals)
//   - Deal: The record's full visible text
type SearchRecord struct {
	Section  string `json:"section" xml:"section"`
	Category string `json:"category,omitempty" xml:"category,omitempty"`
	Deal     string `json:"deal" xml:"deal"`
}

// ScanResult represents the output data for the scan command.
//
// Fields:
//   - XMLName: XML root element name (used only for XML marshaling)
//   - Summary: Aggregate statistics about the parsed document
//   - Sections: Per-section deal and anomaly counts in page order
//   - Anomalies: Paragraphs the parser could not place (omitted when clean)
type ScanResult struct {
	XMLName   xml.Name      `json:"-" xml:"scanResult"`
	Summary   ScanSummary   `json:"summary" xml:"summary"`
	Sections  []ScanSection `json:"sections" xml:"sections>section"`
	Anomalies []ScanAnomaly `json:"anomalies,omitempty" xml:"anomalies>anomaly,omitempty"`
}

// ScanSummary holds summary statistics for scan results.
//
// Fields:
//   - Document: Path of the document that was parsed
//   - TotalDeals: Total number of deals across all sections
//   - Categories: Number of distinct card categories
//   - Anomalies: Number of paragraphs the parser flagged
type ScanSummary struct {
	Document   string `json:"document" xml:"document"`
	TotalDeals int    `json:"total_deals" xml:"totalDeals"`
	Categories int    `json:"categories" xml:"categories"`
	Anomalies  int    `json:"anomalies" xml:"anomalies"`
}

// ScanSection represents one document section in the scan output.
//
// Fields:
//   - Section: The section heading
//   - Deals: Number of deals parsed from the section
//   - Notes: Number of anomalies recorded for the section
type ScanSection struct {
	Section string `json:"section" xml:"section"`
	Deals   int    `json:"deals" xml:"deals"`
	Notes   int    `json:"notes" xml:"notes"`
}

// ScanAnomaly represents a paragraph the parser skipped or flagged.
//
// Fields:
//   - Section: Document section heading the anomaly belongs to
//   - Paragraph: Zero-based paragraph index, or -1 when not tied to one
//   - Reason: Why the parser skipped or flagged the paragraph
//   - Text: The offending text
type ScanAnomaly struct {
	Section   string `json:"section" xml:"section"`
	Paragraph int    `json:"paragraph" xml:"paragraph"`
	Reason    string `json:"reason" xml:"reason"`
	Text      string `json:"text" xml:"text"`
}
