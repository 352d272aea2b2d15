package testutil

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// DocxBytes builds an in-memory .docx container from paragraph text.
//
// Each paragraph becomes one <w:p> element with a single text run; empty
// strings become empty paragraphs, matching how blank lines come out of
// a real document.
//
// Parameters:
//   - t: Testing instance for helper marking
//   - paragraphs: Paragraph text in document order
//
// Returns:
//   - []byte: The .docx container bytes
func DocxBytes(t *testing.T, paragraphs []string) []byte {
	t.Helper()

	var body bytes.Buffer
	for _, para := range paragraphs {
		if para == "" {
			body.WriteString("<w:p/>")
			continue
		}
		body.WriteString(`<w:p><w:r><w:t xml:space="preserve">`)
		require.NoError(t, xml.EscapeText(&body, []byte(para)))
		body.WriteString(`</w:t></w:r></w:p>`)
	}

	documentXML := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>` + body.String() + `<w:sectPr/></w:body>
</w:document>`

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	doc, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = doc.Write([]byte(documentXML))
	require.NoError(t, err)

	require.NoError(t, zw.Close())
	return buf.Bytes()
}

// WriteDocx writes a .docx file with the given paragraphs and returns
// its path. Parent directories are created as needed.
//
// Parameters:
//   - t: Testing instance for helper marking
//   - path: Destination file path
//   - paragraphs: Paragraph text in document order
//
// Returns:
//   - string: The path, for call-site chaining
func WriteDocx(t *testing.T, path string, paragraphs []string) string {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, DocxBytes(t, paragraphs), 0o644))
	return path
}

// SampleDocumentParagraphs returns the paragraphs of a small but complete
// weekly document: all four sections, stack fields, category headers, and
// cards. It parses without anomalies into five deals.
//
// Returns:
//   - []string: Paragraphs in document order
func SampleDocumentParagraphs() []string {
	return []string{
		"Publix Weekly Stacking Breakdown",
		"",
		"TRIPLE STACKS (Checkout-Safe)",
		"",
		"Gain Flings 24ct",
		"Sale:",
		"- BOGO at $12.99",
		"Digital Coupons:",
		"- $3 off Gain Flings",
		"Buy:",
		"- 2 Gain Flings 24ct",
		"Why this works:",
		"The BOGO price covers both units and the coupon stacks on top.",
		"",
		"DOUBLE STACKS (Specific Scenarios)",
		"",
		"Dawn Ultra 28oz",
		"Sale:",
		"- 2/$7",
		"Digital Coupon:",
		"- $1 off Dawn Ultra",
		"Buy:",
		"- 2 Dawn Ultra 28oz",
		"",
		"BOGO DEALS",
		"",
		"Household",
		"- Bounty Paper Towels — Buy 1 Get 1 Free — Save $10.49 — Valid 8/21-8/27",
		"- Charmin Ultra Soft — Buy 1 Get 1 Free — Save $11.99",
		"",
		"DIGITAL COUPONS",
		"",
		"Breakfast",
		"- Quaker Oats — $1.50 off — Any two boxes — Expires 8/30",
	}
}
