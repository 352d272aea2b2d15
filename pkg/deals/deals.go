// Package deals provides the deal catalog model and the weekly document parser.
//
// The weekly document is organized as four sections: TRIPLE STACKS and
// DOUBLE STACKS hold multi-field stack deals, BOGO DEALS and DIGITAL COUPONS
// hold categorized card lists. ParseParagraphs turns extracted paragraph text
// into a Catalog; FilterGroups projects the catalog into the records the
// filtering core and the generated page operate on.
package deals

import (
	"strings"

	"github.com/iancoleman/orderedmap"
)

// StackDeal is one multi-field deal from the stacks sections.
//
// Fields:
//   - Name: The deal heading line
//   - Sale: Sale line items
//   - Coupons: Digital coupon line items
//   - Buy: Shopping list line items
//   - Why: The "Why this works" explanation (triple stacks only in practice)
type StackDeal struct {
	Name    string
	Sale    []string
	Coupons []string
	Buy     []string
	Why     string
}

// CardDeal is one card entry from the BOGO or coupon sections.
//
// BOGO cards use Name/Offer/Savings/Valid; coupon cards use
// Name/Savings/Description/Expires. Unused fields stay empty.
type CardDeal struct {
	Name        string
	Offer       string
	Savings     string
	Valid       string
	Description string
	Expires     string
}

// Category is a named, insertion-ordered bucket of card deals.
type Category struct {
	// Name is the category header as written in the document.
	Name string

	// Items are the parsed cards in document order.
	Items []CardDeal
}

// Catalog holds everything parsed from one weekly document.
//
// Section and category order follow the document. The catalog is the single
// source for page generation, search projection, and structured export.
type Catalog struct {
	TripleStacks   []StackDeal
	DoubleStacks   []StackDeal
	BogoDeals      []Category
	DigitalCoupons []Category
}

// SectionCounts holds per-section deal totals.
//
// Card sections count items across all categories, matching the
// "Found N ..." summary lines.
type SectionCounts struct {
	TripleStacks   int
	DoubleStacks   int
	BogoDeals      int
	DigitalCoupons int
}

// Total returns the number of deals across all four sections.
//
// Returns:
//   - int: Sum of all section counts
func (c SectionCounts) Total() int {
	return c.TripleStacks + c.DoubleStacks + c.BogoDeals + c.DigitalCoupons
}

// Counts returns per-section deal totals for the catalog.
//
// Stack sections count deals; card sections count items summed over their
// categories.
//
// Returns:
//   - SectionCounts: The per-section totals
func (c *Catalog) Counts() SectionCounts {
	counts := SectionCounts{
		TripleStacks: len(c.TripleStacks),
		DoubleStacks: len(c.DoubleStacks),
	}
	for _, cat := range c.BogoDeals {
		counts.BogoDeals += len(cat.Items)
	}
	for _, cat := range c.DigitalCoupons {
		counts.DigitalCoupons += len(cat.Items)
	}
	return counts
}

// IsEmpty reports whether the catalog contains no deals at all.
//
// Returns:
//   - bool: true if every section is empty
func (c *Catalog) IsEmpty() bool {
	return c.Counts().Total() == 0
}

// Categories returns the distinct normalized category tags of the catalog.
//
// Tags are Slug-normalized card category names in first-appearance order
// (BOGO sections first, then coupons). Stack deals carry no category and
// contribute nothing.
//
// Returns:
//   - []string: Ordered distinct category tags; empty slice for an empty catalog
func (c *Catalog) Categories() []string {
	seen := make(map[string]struct{})
	var tags []string
	for _, section := range [][]Category{c.BogoDeals, c.DigitalCoupons} {
		for _, cat := range section {
			tag := Slug(cat.Name)
			if tag == "" {
				continue
			}
			if _, ok := seen[tag]; !ok {
				seen[tag] = struct{}{}
				tags = append(tags, tag)
			}
		}
	}
	return tags
}

// OrderedJSON projects the catalog into an ordered map for JSON export.
//
// It performs the following operations:
//   - Step 1: Emits both stack sections as arrays of deal objects
//   - Step 2: Emits both card sections as objects keyed by category name,
//     preserving document category order
//   - Step 3: Appends the per-section counts
//
// Parameters:
//   - None
//
// Returns:
//   - *orderedmap.OrderedMap: The catalog with stable key order for encoding
func (c *Catalog) OrderedJSON() *orderedmap.OrderedMap {
	root := orderedmap.New()

	root.Set("triple_stacks", stackDealsJSON(c.TripleStacks))
	root.Set("double_stacks", stackDealsJSON(c.DoubleStacks))
	root.Set("bogo_deals", cardSectionJSON(c.BogoDeals, bogoCardJSON))
	root.Set("digital_coupons", cardSectionJSON(c.DigitalCoupons, couponCardJSON))

	counts := orderedmap.New()
	totals := c.Counts()
	counts.Set("triple_stacks", totals.TripleStacks)
	counts.Set("double_stacks", totals.DoubleStacks)
	counts.Set("bogo_deals", totals.BogoDeals)
	counts.Set("digital_coupons", totals.DigitalCoupons)
	counts.Set("total", totals.Total())
	root.Set("counts", counts)

	return root
}

// stackDealsJSON converts stack deals to ordered JSON objects.
func stackDealsJSON(stackDeals []StackDeal) []*orderedmap.OrderedMap {
	result := make([]*orderedmap.OrderedMap, 0, len(stackDeals))
	for _, deal := range stackDeals {
		m := orderedmap.New()
		m.Set("name", deal.Name)
		m.Set("sale", stringList(deal.Sale))
		m.Set("coupons", stringList(deal.Coupons))
		m.Set("buy", stringList(deal.Buy))
		m.Set("why", deal.Why)
		result = append(result, m)
	}
	return result
}

// cardSectionJSON converts a card section to an ordered category map.
func cardSectionJSON(categories []Category, card func(CardDeal) *orderedmap.OrderedMap) *orderedmap.OrderedMap {
	section := orderedmap.New()
	for _, cat := range categories {
		items := make([]*orderedmap.OrderedMap, 0, len(cat.Items))
		for _, item := range cat.Items {
			items = append(items, card(item))
		}
		section.Set(cat.Name, items)
	}
	return section
}

// bogoCardJSON converts a BOGO card to an ordered JSON object.
func bogoCardJSON(card CardDeal) *orderedmap.OrderedMap {
	m := orderedmap.New()
	m.Set("name", card.Name)
	m.Set("offer", card.Offer)
	m.Set("savings", card.Savings)
	m.Set("valid", card.Valid)
	return m
}

// couponCardJSON converts a coupon card to an ordered JSON object.
func couponCardJSON(card CardDeal) *orderedmap.OrderedMap {
	m := orderedmap.New()
	m.Set("name", card.Name)
	m.Set("savings", card.Savings)
	m.Set("description", card.Description)
	m.Set("expires", card.Expires)
	return m
}

// stringList copies a string slice, normalizing nil to an empty slice.
func stringList(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}

// Slug normalizes a section or category label into a tag.
//
// It performs the following operations:
//   - Step 1: Lowercases and trims the label
//   - Step 2: Replaces '&' with "and"
//   - Step 3: Collapses any run of non-alphanumeric characters into one dash
//   - Step 4: Trims leading and trailing dashes
//
// The same normalization is used for page data-category attributes, section
// ids, and the search command's --category input, so the three always agree.
//
// Parameters:
//   - label: The human-readable label (e.g. "Household & Cleaning")
//
// Returns:
//   - string: The tag (e.g. "household-and-cleaning"); empty for empty labels
func Slug(label string) string {
	lower := strings.ToLower(strings.TrimSpace(label))
	lower = strings.ReplaceAll(lower, "&", " and ")

	var b strings.Builder
	lastDash := true
	for _, r := range lower {
		isAlnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if isAlnum {
			b.WriteRune(r)
			lastDash = false
			continue
		}
		if !lastDash {
			b.WriteByte('-')
			lastDash = true
		}
	}

	return strings.TrimRight(b.String(), "-")
}
