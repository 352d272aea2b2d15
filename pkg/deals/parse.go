package deals

import (
	"strings"
	"unicode/utf8"

	"github.com/squatchystacks/stacksmith/pkg/constants"
	"github.com/squatchystacks/stacksmith/pkg/verbose"
)

// DefaultBogoOffer is assumed when a BOGO line omits its offer part.
const DefaultBogoOffer = "Buy 1 Get 1 Free"

// maxCategoryHeaderLen is the longest line still treated as a category
// header inside the card sections.
const maxCategoryHeaderLen = 50

// Field tracking values for stack deal parsing.
const (
	fieldNone    = ""
	fieldSale    = "sale"
	fieldCoupons = "coupons"
	fieldBuy     = "buy"
	fieldWhy     = "why"
)

// section identifies which document section the parser is currently inside.
type section int

const (
	sectionNone section = iota
	sectionTriple
	sectionDouble
	sectionBogo
	sectionCoupons
)

// heading returns the document heading keyword for a section.
func (s section) heading() string {
	switch s {
	case sectionTriple:
		return constants.SectionTripleStacks
	case sectionDouble:
		return constants.SectionDoubleStacks
	case sectionBogo:
		return constants.SectionBogoDeals
	case sectionCoupons:
		return constants.SectionDigitalCoupons
	default:
		return ""
	}
}

// isStacks reports whether the section holds stack deals.
func (s section) isStacks() bool {
	return s == sectionTriple || s == sectionDouble
}

// isCards reports whether the section holds categorized card lists.
func (s section) isCards() bool {
	return s == sectionBogo || s == sectionCoupons
}

// parser walks document paragraphs and accumulates the catalog.
type parser struct {
	catalog *Catalog
	plog    *ParseLog

	current      section
	field        string
	categoryName string
	deal         *StackDeal
}

// ParseParagraphs parses extracted document paragraphs into a catalog.
//
// It performs the following operations:
//   - Step 1: Detects the four section headings by keyword
//     (case-insensitive; a DIGITAL COUPONS heading must not end with ":"
//     so that a "Digital Coupons:" field label inside a stack deal is not
//     mistaken for the section)
//   - Step 2: Inside stack sections, tracks the current deal and the active
//     field (Sale:, Digital Coupon…, Buy:, Why this works:) and appends
//     dash/bullet list items to it
//   - Step 3: Inside card sections, tracks the current category header and
//     parses dash items into cards
//   - Step 4: Flushes the in-flight stack deal on every section switch and
//     at end of input
//
// Parsing is total: no input is an error. Paragraphs that fit nowhere are
// recorded on the returned ParseLog and skipped; text before the first
// section heading is ignored as document preamble.
//
// Parameters:
//   - paragraphs: The document paragraphs in order (empty strings allowed)
//
// Returns:
//   - *Catalog: The parsed catalog; never nil
//   - *ParseLog: Anomalies encountered while parsing; never nil
func ParseParagraphs(paragraphs []string) (*Catalog, *ParseLog) {
	p := &parser{
		catalog: &Catalog{},
		plog:    NewParseLog(),
	}

	for i, para := range paragraphs {
		p.line(i, strings.TrimSpace(para))
	}

	p.flushDeal()
	p.sweep()

	return p.catalog, p.plog
}

// line dispatches one trimmed paragraph.
func (p *parser) line(paragraph int, text string) {
	if text == "" {
		return
	}

	upper := strings.ToUpper(text)
	switch {
	case strings.Contains(upper, constants.SectionTripleStacks):
		p.enterSection(sectionTriple, paragraph)
		return
	case strings.Contains(upper, constants.SectionDoubleStacks):
		p.enterSection(sectionDouble, paragraph)
		return
	case strings.Contains(upper, constants.SectionBogoDeals):
		p.enterSection(sectionBogo, paragraph)
		return
	case strings.Contains(upper, constants.SectionDigitalCoupons) && !strings.HasSuffix(text, ":"):
		p.enterSection(sectionCoupons, paragraph)
		return
	}

	switch {
	case p.current.isStacks():
		p.stackLine(paragraph, text)
	case p.current.isCards():
		p.cardLine(paragraph, text)
	}
}

// enterSection flushes the in-flight deal and switches section state.
func (p *parser) enterSection(next section, paragraph int) {
	p.flushDeal()
	p.current = next
	p.field = fieldNone
	p.categoryName = ""
	verbose.SectionDetected(next.heading(), paragraph)
}

// flushDeal appends the in-flight stack deal to its section, if any.
func (p *parser) flushDeal() {
	if p.deal == nil {
		return
	}
	switch p.current {
	case sectionTriple:
		p.catalog.TripleStacks = append(p.catalog.TripleStacks, *p.deal)
	case sectionDouble:
		p.catalog.DoubleStacks = append(p.catalog.DoubleStacks, *p.deal)
	}
	p.deal = nil
}

// stackLine handles one paragraph inside a stacks section.
func (p *parser) stackLine(paragraph int, text string) {
	switch {
	case text == "Sale:":
		p.field = fieldSale
	case strings.HasPrefix(text, "Digital Coupon"):
		p.field = fieldCoupons
	case text == "Buy:":
		p.field = fieldBuy
	case text == "Why this works:":
		p.field = fieldWhy
	case isListItem(text):
		p.listItem(paragraph, text)
	case p.field == fieldWhy:
		if p.deal == nil {
			p.plog.Add(p.current.heading(), paragraph, text, "explanation without a deal")
			p.field = fieldNone
			return
		}
		// Explanation written as plain text under the header; the next
		// paragraph starts a new deal.
		p.deal.Why = text
		p.field = fieldNone
	default:
		p.flushDeal()
		p.deal = &StackDeal{Name: text}
		p.field = fieldNone
	}
}

// listItem appends a list item to the active field of the in-flight deal.
func (p *parser) listItem(paragraph int, text string) {
	if p.deal == nil || p.field == fieldNone {
		p.plog.Add(p.current.heading(), paragraph, text, "list item outside any deal field")
		return
	}
	item := trimListMarker(text)
	switch p.field {
	case fieldSale:
		p.deal.Sale = append(p.deal.Sale, item)
	case fieldCoupons:
		p.deal.Coupons = append(p.deal.Coupons, item)
	case fieldBuy:
		p.deal.Buy = append(p.deal.Buy, item)
	case fieldWhy:
		p.deal.Why = item
	}
}

// cardLine handles one paragraph inside a card section.
func (p *parser) cardLine(paragraph int, text string) {
	if isCategoryHeader(text) {
		ensureCategory(p.sectionCategories(), text)
		p.categoryName = text
		return
	}

	if isListItem(text) {
		if p.categoryName == "" {
			p.plog.Add(p.current.heading(), paragraph, text, "item before any category header")
			return
		}
		raw := trimListMarker(text)
		var card CardDeal
		if p.current == sectionBogo {
			card = ParseBogoItem(raw)
		} else {
			card = ParseCouponItem(raw)
		}
		appendItem(p.sectionCategories(), p.categoryName, card)
		return
	}

	p.plog.Add(p.current.heading(), paragraph, text, "unrecognized line")
}

// sectionCategories returns the catalog's category slice for the current
// card section.
func (p *parser) sectionCategories() *[]Category {
	if p.current == sectionBogo {
		return &p.catalog.BogoDeals
	}
	return &p.catalog.DigitalCoupons
}

// sweep records suspicious but non-fatal catalog shapes after parsing.
//
// It flags categories that collected no items and stack deals without a buy
// list. Both render fine; the notes help whoever edits the weekly document.
func (p *parser) sweep() {
	for _, cat := range p.catalog.BogoDeals {
		if len(cat.Items) == 0 {
			p.plog.Add(constants.SectionBogoDeals, -1, cat.Name, "category has no items")
		}
	}
	for _, cat := range p.catalog.DigitalCoupons {
		if len(cat.Items) == 0 {
			p.plog.Add(constants.SectionDigitalCoupons, -1, cat.Name, "category has no items")
		}
	}
	for _, deal := range p.catalog.TripleStacks {
		if len(deal.Buy) == 0 {
			p.plog.Add(constants.SectionTripleStacks, -1, deal.Name, "deal has no buy list")
		}
	}
	for _, deal := range p.catalog.DoubleStacks {
		if len(deal.Buy) == 0 {
			p.plog.Add(constants.SectionDoubleStacks, -1, deal.Name, "deal has no buy list")
		}
	}
}

// isCategoryHeader reports whether a card-section line is a category header.
//
// Headers are short lines without a leading list marker and without any
// price/offer markers ($, em dash, Save, Buy, Free).
func isCategoryHeader(text string) bool {
	if isListItem(text) {
		return false
	}
	if utf8.RuneCountInString(text) >= maxCategoryHeaderLen {
		return false
	}
	for _, marker := range []string{"$", "—", "Save", "Buy", "Free"} {
		if strings.Contains(text, marker) {
			return false
		}
	}
	return true
}

// isListItem reports whether a stacks-section line is a list item.
//
// Items start with "-", "–" (en dash), or "•" (bullet).
func isListItem(text string) bool {
	return strings.HasPrefix(text, "-") ||
		strings.HasPrefix(text, "–") ||
		strings.HasPrefix(text, "•")
}

// trimListMarker strips the leading list marker and surrounding whitespace.
func trimListMarker(text string) string {
	return strings.TrimSpace(strings.TrimLeft(text, "-–• "))
}

// ensureCategory appends a category if it is not present yet.
func ensureCategory(categories *[]Category, name string) {
	for i := range *categories {
		if (*categories)[i].Name == name {
			return
		}
	}
	*categories = append(*categories, Category{Name: name})
}

// appendItem adds a card to the named category, creating it if needed.
func appendItem(categories *[]Category, name string, card CardDeal) {
	for i := range *categories {
		if (*categories)[i].Name == name {
			(*categories)[i].Items = append((*categories)[i].Items, card)
			return
		}
	}
	*categories = append(*categories, Category{Name: name, Items: []CardDeal{card}})
}

// ParseBogoItem splits a BOGO line into its card fields.
//
// The expected shape is "Name — Offer — Savings — Valid window" with any
// trailing parts optional. A line without an offer part gets the default
// "Buy 1 Get 1 Free". Extra parts beyond the fourth are ignored.
//
// Parameters:
//   - item: The raw line with its list marker already removed
//
// Returns:
//   - CardDeal: The parsed card (Offer, Savings, Valid populated)
func ParseBogoItem(item string) CardDeal {
	parts := strings.Split(item, "—")
	card := CardDeal{
		Name:  strings.TrimSpace(parts[0]),
		Offer: DefaultBogoOffer,
	}
	if len(parts) > 1 {
		card.Offer = strings.TrimSpace(parts[1])
	}
	if len(parts) > 2 {
		card.Savings = strings.TrimSpace(parts[2])
	}
	if len(parts) > 3 {
		card.Valid = strings.TrimSpace(parts[3])
	}
	return card
}

// ParseCouponItem splits a digital coupon line into its card fields.
//
// The expected shape is "Brand — Savings — Description — Expires" with any
// trailing parts optional and no defaults.
//
// Parameters:
//   - item: The raw line with its list marker already removed
//
// Returns:
//   - CardDeal: The parsed card (Savings, Description, Expires populated)
func ParseCouponItem(item string) CardDeal {
	parts := strings.Split(item, "—")
	card := CardDeal{
		Name: strings.TrimSpace(parts[0]),
	}
	if len(parts) > 1 {
		card.Savings = strings.TrimSpace(parts[1])
	}
	if len(parts) > 2 {
		card.Description = strings.TrimSpace(parts[2])
	}
	if len(parts) > 3 {
		card.Expires = strings.TrimSpace(parts[3])
	}
	return card
}
