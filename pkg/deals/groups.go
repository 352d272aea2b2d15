package deals

import (
	"strings"

	"github.com/squatchystacks/stacksmith/pkg/filtering"
)

// Page section labels. These match the section headings on the published
// page byte for byte, so groups read back from the page line up with
// groups built from the catalog.
const (
	LabelTripleStacks   = "Triple Stacks (Checkout-Safe)"
	LabelDoubleStacks   = "Double Stacks (Specific)"
	LabelBogoDeals      = "BOGO Deals - Buy One Get One Free"
	LabelDigitalCoupons = "Digital Coupons"
)

// Page section anchors, used for section ids and nav links.
const (
	AnchorTripleStacks   = "triple-stacks"
	AnchorDoubleStacks   = "double-stacks"
	AnchorBogoDeals      = "bogo-deals"
	AnchorDigitalCoupons = "digital-coupons"
)

// Coupon field labels as rendered inside stack deals. Triple stacks pair
// multiple coupons, double stacks exactly one, and the page wording
// follows suit.
const (
	TripleCouponLabel = "Digital Coupons:"
	DoubleCouponLabel = "Digital Coupon:"
)

// FilterGroups converts the catalog into the flat groups the visibility
// core operates on.
//
// It performs the following operations:
//   - Step 1: Builds one group per page section, in page order, including
//     sections with no records
//   - Step 2: Flattens each stack deal into a single record whose text is
//     the deal's full visible content (name, field labels, items)
//   - Step 3: Flattens each card into a record tagged with its category
//     slug; categories that collected no items are skipped, matching the
//     page, which does not render them
//
// Record text is whitespace-normalized, so it equals the text content of
// the corresponding page node.
//
// Returns:
//   - []filtering.Group: The four page sections with their records
func (c *Catalog) FilterGroups() []filtering.Group {
	return []filtering.Group{
		{Label: LabelTripleStacks, Records: stackRecords(c.TripleStacks, TripleCouponLabel, true)},
		{Label: LabelDoubleStacks, Records: stackRecords(c.DoubleStacks, DoubleCouponLabel, false)},
		{Label: LabelBogoDeals, Records: cardRecords(c.BogoDeals, bogoCardText)},
		{Label: LabelDigitalCoupons, Records: cardRecords(c.DigitalCoupons, couponCardText)},
	}
}

// stackRecords flattens stack deals into uncategorized records.
func stackRecords(stackDeals []StackDeal, couponLabel string, withWhy bool) []filtering.Record {
	var records []filtering.Record
	for _, deal := range stackDeals {
		records = append(records, filtering.Record{
			Text: stackText(deal, couponLabel, withWhy),
		})
	}
	return records
}

// cardRecords flattens categorized cards into records tagged with their
// category slug.
func cardRecords(categories []Category, text func(CardDeal) string) []filtering.Record {
	var records []filtering.Record
	for _, cat := range categories {
		tag := Slug(cat.Name)
		for _, card := range cat.Items {
			records = append(records, filtering.Record{
				Text:     text(card),
				Category: tag,
			})
		}
	}
	return records
}

// stackText builds the visible text of one stack deal as rendered on the
// page: the name, then each field label followed by its items. Field
// labels appear even when their lists are empty, because the page renders
// them unconditionally.
func stackText(deal StackDeal, couponLabel string, withWhy bool) string {
	parts := []string{deal.Name, "Sale:"}
	parts = append(parts, deal.Sale...)
	parts = append(parts, couponLabel)
	parts = append(parts, deal.Coupons...)
	parts = append(parts, "Buy:")
	parts = append(parts, deal.Buy...)
	if withWhy {
		parts = append(parts, "Why this works:")
		if deal.Why != "" {
			parts = append(parts, deal.Why)
		}
	}
	return normalizeSpace(strings.Join(parts, " "))
}

// bogoCardText builds the visible text of one BOGO card.
func bogoCardText(card CardDeal) string {
	return joinVisible(card.Name, card.Offer, card.Savings, card.Valid)
}

// couponCardText builds the visible text of one coupon card.
func couponCardText(card CardDeal) string {
	return joinVisible(card.Name, card.Savings, card.Description, card.Expires)
}

// joinVisible joins the non-empty parts with single spaces.
func joinVisible(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) != "" {
			kept = append(kept, part)
		}
	}
	return normalizeSpace(strings.Join(kept, " "))
}

// normalizeSpace collapses all whitespace runs to single spaces.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
