// Package docx extracts paragraph text from Word documents.
//
// A .docx file is a zip container; the text lives in the word/document.xml
// part as w:p paragraph elements. This package pulls the paragraphs out in
// document order, which is all the deals parser needs. Formatting, styles,
// tables, and everything else in the container are ignored.
package docx

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"

	apperrors "github.com/squatchystacks/stacksmith/pkg/errors"
	"github.com/squatchystacks/stacksmith/pkg/utils"
	"github.com/squatchystacks/stacksmith/pkg/verbose"
)

// documentPart is the zip entry holding the document body.
const documentPart = "word/document.xml"

// maxPartBytes caps the decompressed document part. Weekly deals documents
// are a few hundred kilobytes; anything past this is not one of ours and
// protects against zip bombs.
const maxPartBytes = 64 << 20

// ExtractParagraphs reads a .docx file and returns its paragraph texts.
//
// It performs the following operations:
//   - Step 1: Opens the file and reads it as a zip container
//   - Step 2: Locates and decompresses the word/document.xml part
//   - Step 3: Walks the XML body and joins the text runs of each paragraph
//
// Empty paragraphs are preserved as empty strings so paragraph indexes
// reported elsewhere line up with the document.
//
// Parameters:
//   - path: The .docx file path
//
// Returns:
//   - []string: Paragraph texts in document order
//   - error: File access errors, or a DocumentError when the container or
//     its document part cannot be understood
func ExtractParagraphs(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read document: %w", err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("cannot read document: %w", err)
	}

	paragraphs, err := extract(f, info.Size(), path)
	if err != nil {
		return nil, err
	}

	verbose.DocumentLoaded(path, len(paragraphs))
	return paragraphs, nil
}

// ExtractParagraphsFromReader extracts paragraphs from an in-memory or
// already-open .docx container.
//
// Parameters:
//   - r: The container bytes
//   - size: Total container size in bytes
//
// Returns:
//   - []string: Paragraph texts in document order
//   - error: A DocumentError when the container or its document part
//     cannot be understood
func ExtractParagraphsFromReader(r io.ReaderAt, size int64) ([]string, error) {
	return extract(r, size, "")
}

// extract does the container and XML work shared by both entry points.
func extract(r io.ReaderAt, size int64, path string) ([]string, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, apperrors.NewDocumentError(path, "", err.Error())
	}

	data, err := readDocumentPart(zr)
	if err != nil {
		return nil, apperrors.NewDocumentError(path, "", err.Error())
	}

	var root utils.XMLNode
	if err := xml.Unmarshal(data, &root); err != nil {
		return nil, apperrors.NewDocumentError(path, "", fmt.Sprintf("%s is not valid XML: %v", documentPart, err))
	}

	nodes := utils.FindXMLNodes(&root, "body/p")
	paragraphs := make([]string, 0, len(nodes))
	for _, node := range nodes {
		paragraphs = append(paragraphs, paragraphText(node))
	}

	return paragraphs, nil
}

// readDocumentPart decompresses word/document.xml, enforcing the size cap.
func readDocumentPart(zr *zip.Reader) ([]byte, error) {
	for _, file := range zr.File {
		if file.Name != documentPart {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("cannot open %s: %w", documentPart, err)
		}
		defer func() { _ = rc.Close() }()

		data, err := io.ReadAll(io.LimitReader(rc, maxPartBytes+1))
		if err != nil {
			return nil, fmt.Errorf("cannot read %s: %w", documentPart, err)
		}
		if len(data) > maxPartBytes {
			return nil, fmt.Errorf("%s exceeds %d bytes", documentPart, maxPartBytes)
		}
		return data, nil
	}

	return nil, fmt.Errorf("%s not found", documentPart)
}

// paragraphText joins the text runs of one paragraph node.
//
// Text lives in w:t elements, possibly nested inside hyperlinks or other
// wrappers, so the walk is recursive. Tabs and breaks become single spaces.
func paragraphText(node *utils.XMLNode) string {
	var b strings.Builder
	collectText(node, &b)
	return b.String()
}

// collectText appends the text content of a node's subtree to the builder.
func collectText(node *utils.XMLNode, b *strings.Builder) {
	for i := range node.Nodes {
		child := &node.Nodes[i]
		switch child.XMLName.Local {
		case "t":
			b.WriteString(child.Content)
		case "tab", "br", "cr":
			b.WriteByte(' ')
		default:
			collectText(child, b)
		}
	}
}
