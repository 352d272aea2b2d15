package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/iancoleman/orderedmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestWriteSearchResult_JSON tests the behavior of WriteSearchResult with JSON format.
//
// It verifies:
//   - Writes valid JSON that can be unmarshaled back
//   - Summary, groups, and records are correctly serialized
func TestWriteSearchResult_JSON(t *testing.T) {
	var buf bytes.Buffer
	result := &SearchResult{
		Summary: SearchSummary{
			Query:          "gain",
			Source:         "page",
			TotalRecords:   12,
			VisibleRecords: 2,
			AnyVisible:     true,
		},
		Groups: []SearchGroup{
			{Label: "Triple Stacks (Checkout-Safe)", Visible: true, VisibleCount: 1, TotalCount: 4},
			{Label: "BOGO Deals - Buy One Get One Free", Visible: true, VisibleCount: 1, TotalCount: 8},
		},
		Records: []SearchRecord{
			{Section: "Triple Stacks (Checkout-Safe)", Deal: "Gain Flings 24ct stack"},
			{Section: "BOGO Deals - Buy One Get One Free", Category: "household", Deal: "Gain Fireworks"},
		},
	}

	err := WriteSearchResult(&buf, FormatJSON, result)
	require.NoError(t, err)

	var parsed SearchResult
	err = json.Unmarshal(buf.Bytes(), &parsed)
	require.NoError(t, err)

	assert.Equal(t, "gain", parsed.Summary.Query)
	assert.Equal(t, 2, parsed.Summary.VisibleRecords)
	assert.True(t, parsed.Summary.AnyVisible)
	assert.Len(t, parsed.Groups, 2)
	assert.Len(t, parsed.Records, 2)
	assert.Equal(t, "household", parsed.Records[1].Category)
}

// TestWriteSearchResult_JSON_OmitsEmptyCategory tests JSON field omission.
//
// It verifies:
//   - An inactive category is omitted from the summary
//   - Uncategorized records carry no category key
func TestWriteSearchResult_JSON_OmitsEmptyCategory(t *testing.T) {
	var buf bytes.Buffer
	result := &SearchResult{
		Summary: SearchSummary{Query: "tide", Source: "document"},
		Records: []SearchRecord{
			{Section: "Double Stacks (Specific)", Deal: "Tide Simply stack"},
		},
	}

	err := WriteSearchResult(&buf, FormatJSON, result)
	require.NoError(t, err)

	output := buf.String()
	assert.NotContains(t, output, `"category"`)
}

// TestWriteSearchResult_XML tests the behavior of WriteSearchResult with XML format.
//
// It verifies:
//   - Writes XML with proper header
//   - Contains searchResult root element and summary data
func TestWriteSearchResult_XML(t *testing.T) {
	var buf bytes.Buffer
	result := &SearchResult{
		Summary: SearchSummary{
			Query:          "dawn",
			Category:       "household",
			Source:         "page",
			TotalRecords:   5,
			VisibleRecords: 1,
			AnyVisible:     true,
		},
		Records: []SearchRecord{
			{Section: "Digital Coupons", Category: "household", Deal: "Dawn dish soap $2 off"},
		},
	}

	err := WriteSearchResult(&buf, FormatXML, result)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "<?xml version=")
	assert.Contains(t, output, "<searchResult>")
	assert.Contains(t, output, "<query>dawn</query>")
	assert.Contains(t, output, "<record>")
}

// TestWriteSearchResult_CSV tests the behavior of WriteSearchResult with CSV format.
//
// It verifies:
//   - Writes CSV with the SECTION/CATEGORY/DEAL header and one row per record
//   - Deal text containing commas is quoted
func TestWriteSearchResult_CSV(t *testing.T) {
	var buf bytes.Buffer
	result := &SearchResult{
		Records: []SearchRecord{
			{Section: "Triple Stacks (Checkout-Safe)", Deal: "Gain Flings, 24ct, BOGO"},
			{Section: "Digital Coupons", Category: "personal-care", Deal: "Dove body wash"},
		},
	}

	err := WriteSearchResult(&buf, FormatCSV, result)
	require.NoError(t, err)

	output := buf.String()
	lines := strings.Split(strings.TrimSpace(output), "\n")
	require.Len(t, lines, 3) // header + 2 rows
	assert.Equal(t, "SECTION,CATEGORY,DEAL", lines[0])
	assert.Contains(t, lines[1], `"Gain Flings, 24ct, BOGO"`)
	assert.Contains(t, lines[2], "personal-care")
}

// TestWriteSearchResult_UnsupportedFormat tests format rejection.
//
// It verifies:
//   - The table format is rejected with an error
func TestWriteSearchResult_UnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	err := WriteSearchResult(&buf, FormatTable, &SearchResult{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

// TestWriteScanResult_JSON tests the behavior of WriteScanResult with JSON format.
//
// It verifies:
//   - Writes valid JSON that can be unmarshaled back
//   - Summary, sections, and anomalies are correctly serialized
func TestWriteScanResult_JSON(t *testing.T) {
	var buf bytes.Buffer
	result := &ScanResult{
		Summary: ScanSummary{
			Document:   "Publix_Final.docx",
			TotalDeals: 23,
			Categories: 5,
			Anomalies:  1,
		},
		Sections: []ScanSection{
			{Section: "TRIPLE STACKS", Deals: 4},
			{Section: "BOGO DEALS", Deals: 11, Notes: 1},
		},
		Anomalies: []ScanAnomaly{
			{Section: "BOGO DEALS", Paragraph: 17, Reason: "item outside any category", Text: "Orphan item"},
		},
	}

	err := WriteScanResult(&buf, FormatJSON, result)
	require.NoError(t, err)

	var parsed ScanResult
	err = json.Unmarshal(buf.Bytes(), &parsed)
	require.NoError(t, err)

	assert.Equal(t, "Publix_Final.docx", parsed.Summary.Document)
	assert.Equal(t, 23, parsed.Summary.TotalDeals)
	assert.Len(t, parsed.Sections, 2)
	require.Len(t, parsed.Anomalies, 1)
	assert.Equal(t, 17, parsed.Anomalies[0].Paragraph)
}

// TestWriteScanResult_JSON_OmitsEmptyAnomalies tests JSON field omission.
//
// It verifies:
//   - A clean scan carries no anomalies key
func TestWriteScanResult_JSON_OmitsEmptyAnomalies(t *testing.T) {
	var buf bytes.Buffer
	result := &ScanResult{
		Summary:  ScanSummary{Document: "deals.docx", TotalDeals: 3},
		Sections: []ScanSection{{Section: "TRIPLE STACKS", Deals: 3}},
	}

	err := WriteScanResult(&buf, FormatJSON, result)
	require.NoError(t, err)

	assert.NotContains(t, buf.String(), `"anomalies":[`)
}

// TestWriteScanResult_XML tests the behavior of WriteScanResult with XML format.
//
// It verifies:
//   - Writes XML with proper header
//   - Contains scanResult root element and summary data
func TestWriteScanResult_XML(t *testing.T) {
	var buf bytes.Buffer
	result := &ScanResult{
		Summary: ScanSummary{
			Document:   "Publix_Final.docx",
			TotalDeals: 7,
		},
		Sections: []ScanSection{
			{Section: "DIGITAL COUPONS", Deals: 7},
		},
	}

	err := WriteScanResult(&buf, FormatXML, result)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "<?xml version=")
	assert.Contains(t, output, "<scanResult>")
	assert.Contains(t, output, "<document>Publix_Final.docx</document>")
}

// TestWriteScanResult_CSV tests the behavior of WriteScanResult with CSV format.
//
// It verifies:
//   - Writes CSV with the SECTION/DEALS/NOTES header and one row per section
func TestWriteScanResult_CSV(t *testing.T) {
	var buf bytes.Buffer
	result := &ScanResult{
		Sections: []ScanSection{
			{Section: "TRIPLE STACKS", Deals: 4},
			{Section: "DOUBLE STACKS", Deals: 6, Notes: 2},
		},
	}

	err := WriteScanResult(&buf, FormatCSV, result)
	require.NoError(t, err)

	output := buf.String()
	lines := strings.Split(strings.TrimSpace(output), "\n")
	require.Len(t, lines, 3) // header + 2 rows
	assert.Equal(t, "SECTION,DEALS,NOTES", lines[0])
	assert.Equal(t, "TRIPLE STACKS,4,0", lines[1])
	assert.Equal(t, "DOUBLE STACKS,6,2", lines[2])
}

// TestWriteScanResult_UnsupportedFormat tests format rejection.
//
// It verifies:
//   - The table format is rejected with an error
func TestWriteScanResult_UnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	err := WriteScanResult(&buf, FormatTable, &ScanResult{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

// TestWriteCatalog tests the behavior of WriteCatalog.
//
// It verifies:
//   - Keys are encoded in insertion order, not alphabetical order
//   - Nested ordered maps keep their order too
func TestWriteCatalog(t *testing.T) {
	catalog := orderedmap.New()
	catalog.Set("triple_stacks", []string{})
	catalog.Set("double_stacks", []string{})

	bogo := orderedmap.New()
	bogo.Set("Household", []string{"Gain Fireworks"})
	bogo.Set("Breakfast", []string{"Eggo Waffles"})
	catalog.Set("bogo_deals", bogo)

	var buf bytes.Buffer
	err := WriteCatalog(&buf, catalog)
	require.NoError(t, err)

	output := buf.String()
	tripleIdx := strings.Index(output, "triple_stacks")
	doubleIdx := strings.Index(output, "double_stacks")
	bogoIdx := strings.Index(output, "bogo_deals")
	householdIdx := strings.Index(output, "Household")
	breakfastIdx := strings.Index(output, "Breakfast")

	assert.True(t, tripleIdx >= 0 && tripleIdx < doubleIdx, "triple_stacks should precede double_stacks")
	assert.True(t, doubleIdx < bogoIdx, "double_stacks should precede bogo_deals")
	assert.True(t, householdIdx >= 0 && householdIdx < breakfastIdx, "categories should keep document order")
}
