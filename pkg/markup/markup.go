// Package markup reads deal groups back out of a generated page. The
// search command uses it to filter exactly what the published page shows,
// without reparsing the source document.
package markup

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/squatchystacks/stacksmith/pkg/filtering"
)

// ParseGroups extracts the four deal sections from a rendered page.
//
// It performs the following operations:
//   - Step 1: Parses the HTML document
//   - Step 2: Selects each section.deals element, labeling the group from
//     its .section-title heading
//   - Step 3: Collects each .deal-card and .stack-deal descendant as a
//     record: text is the node's normalized text content, category comes
//     from the data-category attribute
//
// Section and record order follow document order, so the groups line up
// with the catalog the page was rendered from.
//
// Parameters:
//   - r: the page HTML
//
// Returns:
//   - []filtering.Group: one group per section, in page order
//   - error: read errors, or an error when the page has no deal sections
func ParseGroups(r io.Reader) ([]filtering.Group, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}

	var groups []filtering.Group
	doc.Find("section.deals").Each(func(_ int, section *goquery.Selection) {
		group := filtering.Group{
			Label: strings.TrimSpace(section.Find(".section-title").First().Text()),
		}
		section.Find(".deal-card, .stack-deal").Each(func(_ int, node *goquery.Selection) {
			record := filtering.Record{
				Category: node.AttrOr("data-category", ""),
			}
			if len(node.Nodes) > 0 {
				record.Text = Text(node.Nodes[0])
			}
			group.Records = append(group.Records, record)
		})
		groups = append(groups, group)
	})

	if len(groups) == 0 {
		return nil, fmt.Errorf("no sections found in the page")
	}

	return groups, nil
}

// Text returns the visible text content of a node.
//
// Child text is concatenated in document order. Buttons, scripts, and
// styles do not contribute (their text is chrome, not content).
// Non-printable runes are dropped and whitespace runs collapse to single
// spaces, so the result matches how a browser displays the node.
//
// Parameters:
//   - node: the root node
//
// Returns:
//   - string: the normalized text
func Text(node *html.Node) string {
	var sb strings.Builder
	collectText(node, &sb)
	return normalizeText(sb.String())
}

func collectText(node *html.Node, sb *strings.Builder) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		sb.WriteString(node.Data)
		return
	}
	if node.Type == html.ElementNode {
		switch node.Data {
		case "button", "script", "style":
			return
		}
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		collectText(child, sb)
	}
}

// normalizeText drops non-printable runes and collapses whitespace runs.
func normalizeText(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		if unicode.IsPrint(r) || unicode.IsSpace(r) {
			sb.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(sb.String()), " ")
}
