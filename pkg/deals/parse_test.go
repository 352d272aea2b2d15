package deals

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/squatchystacks/stacksmith/pkg/constants"
	"github.com/squatchystacks/stacksmith/pkg/warnings"
)

// sampleParagraphs returns a document shaped like a real weekly deals file:
// a preamble line, the four sections, stack deals with all field labels,
// and categorized BOGO and coupon items.
func sampleParagraphs() []string {
	return []string{
		"Publix Weekly Deals - Week of August 25",
		"",
		"TRIPLE STACKS (Stack all three: sale + digital + coupon)",
		"Gain Laundry Detergent",
		"Sale:",
		"- Gain Flings 24-35 ct, BOGO $13.49",
		"Digital Coupons:",
		"- $3 off Gain Flings (Publix Digital)",
		"- $2 off any Gain (P&G Insider)",
		"Buy:",
		"- 2 Gain Flings 24 ct",
		"Why this works:",
		"- BOGO plus both coupons takes the pair under $6",
		"DOUBLE STACKS (sale + one digital coupon)",
		"Dawn Platinum",
		"Sale:",
		"- Dawn Platinum EZ-Squeeze, 2 for $9",
		"Digital Coupon:",
		"- $1.50 off Dawn Platinum",
		"Buy:",
		"- 2 Dawn Platinum 18 oz",
		"BOGO DEALS",
		"Beverages",
		"- Coke Zero 12-pack — Buy 1 Get 1 Free — Save $9.99 — Valid through 8/27",
		"- Celsius 4-pack",
		"Bakery",
		"- White Mountain Bread — Buy 1 Get 1 Free — Save $4.29",
		"DIGITAL COUPONS",
		"Household",
		"- Bounty — $2 off — Paper towels 4-pack or larger — Expires 8/31",
	}
}

// parseQuiet runs ParseParagraphs with document warnings silenced.
func parseQuiet(t *testing.T, paragraphs []string) (*Catalog, *ParseLog) {
	t.Helper()
	restore := warnings.SetWarningWriter(io.Discard)
	defer restore()
	return ParseParagraphs(paragraphs)
}

// TestParseParagraphs tests parsing a full document.
//
// It verifies that:
//   - All four sections are detected and populated
//   - Stack deals collect their sale, coupon, buy, and why fields
//   - Card items land under their category headers with parsed fields
//   - Preamble text before the first section is ignored without anomalies
func TestParseParagraphs(t *testing.T) {
	catalog, plog := parseQuiet(t, sampleParagraphs())
	require.NotNil(t, catalog)
	require.NotNil(t, plog)

	t.Run("triple stacks", func(t *testing.T) {
		require.Len(t, catalog.TripleStacks, 1)
		deal := catalog.TripleStacks[0]
		assert.Equal(t, "Gain Laundry Detergent", deal.Name)
		assert.Equal(t, []string{"Gain Flings 24-35 ct, BOGO $13.49"}, deal.Sale)
		require.Len(t, deal.Coupons, 2)
		assert.Equal(t, "$3 off Gain Flings (Publix Digital)", deal.Coupons[0])
		assert.Equal(t, []string{"2 Gain Flings 24 ct"}, deal.Buy)
		assert.Equal(t, "BOGO plus both coupons takes the pair under $6", deal.Why)
	})

	t.Run("double stacks", func(t *testing.T) {
		require.Len(t, catalog.DoubleStacks, 1)
		deal := catalog.DoubleStacks[0]
		assert.Equal(t, "Dawn Platinum", deal.Name)
		assert.Equal(t, []string{"$1.50 off Dawn Platinum"}, deal.Coupons)
		assert.Equal(t, []string{"2 Dawn Platinum 18 oz"}, deal.Buy)
	})

	t.Run("bogo categories", func(t *testing.T) {
		require.Len(t, catalog.BogoDeals, 2)
		assert.Equal(t, "Beverages", catalog.BogoDeals[0].Name)
		require.Len(t, catalog.BogoDeals[0].Items, 2)

		coke := catalog.BogoDeals[0].Items[0]
		assert.Equal(t, "Coke Zero 12-pack", coke.Name)
		assert.Equal(t, "Buy 1 Get 1 Free", coke.Offer)
		assert.Equal(t, "Save $9.99", coke.Savings)
		assert.Equal(t, "Valid through 8/27", coke.Valid)

		celsius := catalog.BogoDeals[0].Items[1]
		assert.Equal(t, "Celsius 4-pack", celsius.Name)
		assert.Equal(t, DefaultBogoOffer, celsius.Offer)
		assert.Empty(t, celsius.Savings)

		assert.Equal(t, "Bakery", catalog.BogoDeals[1].Name)
		require.Len(t, catalog.BogoDeals[1].Items, 1)
	})

	t.Run("digital coupons", func(t *testing.T) {
		require.Len(t, catalog.DigitalCoupons, 1)
		assert.Equal(t, "Household", catalog.DigitalCoupons[0].Name)
		require.Len(t, catalog.DigitalCoupons[0].Items, 1)

		bounty := catalog.DigitalCoupons[0].Items[0]
		assert.Equal(t, "Bounty", bounty.Name)
		assert.Equal(t, "$2 off", bounty.Savings)
		assert.Equal(t, "Paper towels 4-pack or larger", bounty.Description)
		assert.Equal(t, "Expires 8/31", bounty.Expires)
	})

	t.Run("no anomalies", func(t *testing.T) {
		assert.False(t, plog.HasAnomalies(), "messages: %v", plog.Messages())
	})

	t.Run("counts", func(t *testing.T) {
		counts := catalog.Counts()
		assert.Equal(t, 1, counts.TripleStacks)
		assert.Equal(t, 1, counts.DoubleStacks)
		assert.Equal(t, 3, counts.BogoDeals)
		assert.Equal(t, 1, counts.DigitalCoupons)
		assert.Equal(t, 6, counts.Total())
	})
}

// TestParseParagraphsSectionSwitch tests section boundary handling.
//
// It verifies that:
//   - An in-flight stack deal is flushed when the next section begins
//   - A "Digital Coupons:" field label does not start the coupon section
//   - The coupon section heading is matched case-insensitively
//   - The active category does not leak across sections
func TestParseParagraphsSectionSwitch(t *testing.T) {
	t.Run("flush on switch", func(t *testing.T) {
		catalog, _ := parseQuiet(t, []string{
			"TRIPLE STACKS",
			"Tide Pods",
			"Buy:",
			"- 2 Tide Pods 42 ct",
			"DOUBLE STACKS",
		})
		require.Len(t, catalog.TripleStacks, 1)
		assert.Equal(t, "Tide Pods", catalog.TripleStacks[0].Name)
		assert.Empty(t, catalog.DoubleStacks)
	})

	t.Run("field label is not a heading", func(t *testing.T) {
		catalog, _ := parseQuiet(t, []string{
			"TRIPLE STACKS",
			"Tide Pods",
			"Digital Coupons:",
			"- $2 off Tide Pods",
			"Buy:",
			"- 1 Tide Pods 42 ct",
		})
		require.Len(t, catalog.TripleStacks, 1)
		assert.Equal(t, []string{"$2 off Tide Pods"}, catalog.TripleStacks[0].Coupons)
		assert.Empty(t, catalog.DigitalCoupons)
	})

	t.Run("case insensitive headings", func(t *testing.T) {
		catalog, _ := parseQuiet(t, []string{
			"Digital Coupons",
			"Household",
			"- Bounty — $2 off",
		})
		require.Len(t, catalog.DigitalCoupons, 1)
		assert.Equal(t, "Household", catalog.DigitalCoupons[0].Name)
	})

	t.Run("category reset on switch", func(t *testing.T) {
		_, plog := parseQuiet(t, []string{
			"BOGO DEALS",
			"Beverages",
			"- Coke Zero 12-pack — Buy 1 Get 1 Free — Save $9.99",
			"DIGITAL COUPONS",
			"- Bounty — $2 off",
		})
		require.Equal(t, 1, plog.CountForSection(constants.SectionDigitalCoupons))
		assert.Equal(t, "item before any category header", plog.Anomalies()[0].Reason)
	})
}

// TestParseParagraphsStackFields tests stack deal field tracking.
//
// It verifies that:
//   - A plain paragraph after "Why this works:" is taken as the explanation
//   - The paragraph after a plain-text explanation starts a new deal
//   - En dash and bullet list markers are accepted
//   - List items without an active deal or field are logged and skipped
func TestParseParagraphsStackFields(t *testing.T) {
	t.Run("why as plain text", func(t *testing.T) {
		catalog, _ := parseQuiet(t, []string{
			"TRIPLE STACKS",
			"Gain Flings",
			"Buy:",
			"- 2 Gain Flings",
			"Why this works:",
			"Stacks to under a dollar per load",
			"Dawn Platinum",
			"Buy:",
			"- 1 Dawn Platinum",
		})
		require.Len(t, catalog.TripleStacks, 2)
		assert.Equal(t, "Stacks to under a dollar per load", catalog.TripleStacks[0].Why)
		assert.Equal(t, "Dawn Platinum", catalog.TripleStacks[1].Name)
	})

	t.Run("alternate list markers", func(t *testing.T) {
		catalog, _ := parseQuiet(t, []string{
			"TRIPLE STACKS",
			"Gain Flings",
			"Sale:",
			"– Gain Flings BOGO",
			"• Gain Fireworks $5.99",
			"Buy:",
			"- 2 Gain Flings",
		})
		require.Len(t, catalog.TripleStacks, 1)
		assert.Equal(t, []string{"Gain Flings BOGO", "Gain Fireworks $5.99"}, catalog.TripleStacks[0].Sale)
	})

	t.Run("item without deal", func(t *testing.T) {
		catalog, plog := parseQuiet(t, []string{
			"TRIPLE STACKS",
			"- orphaned item",
		})
		assert.Empty(t, catalog.TripleStacks)
		require.Equal(t, 1, plog.Len())
		assert.Equal(t, "list item outside any deal field", plog.Anomalies()[0].Reason)
		assert.Equal(t, 1, plog.Anomalies()[0].Paragraph)
	})

	t.Run("item without field", func(t *testing.T) {
		_, plog := parseQuiet(t, []string{
			"TRIPLE STACKS",
			"Gain Flings",
			"- no field label yet",
			"Buy:",
			"- 2 Gain Flings",
		})
		require.Equal(t, 1, plog.Len())
		assert.Equal(t, constants.SectionTripleStacks, plog.Anomalies()[0].Section)
	})
}

// TestParseParagraphsCardSections tests category and item handling in the
// card sections.
//
// It verifies that:
//   - Lines with price markers or 50+ characters are not category headers
//   - A repeated category header appends to the existing category
//   - Items before any header and unrecognized lines are logged
//   - Empty categories are flagged after parsing
func TestParseParagraphsCardSections(t *testing.T) {
	t.Run("marker lines are not headers", func(t *testing.T) {
		_, plog := parseQuiet(t, []string{
			"BOGO DEALS",
			"Save big this week",
			"Free samples at the deli counter",
		})
		require.Equal(t, 2, plog.Len())
		assert.Equal(t, "unrecognized line", plog.Anomalies()[0].Reason)
		assert.Equal(t, "unrecognized line", plog.Anomalies()[1].Reason)
	})

	t.Run("long lines are not headers", func(t *testing.T) {
		long := "This line keeps going well past the header cutoff and then some more"
		_, plog := parseQuiet(t, []string{
			"BOGO DEALS",
			long,
		})
		require.Equal(t, 1, plog.Len())
		assert.Equal(t, "unrecognized line", plog.Anomalies()[0].Reason)
	})

	t.Run("repeated header merges", func(t *testing.T) {
		catalog, _ := parseQuiet(t, []string{
			"BOGO DEALS",
			"Beverages",
			"- Coke Zero 12-pack — Buy 1 Get 1 Free — Save $9.99",
			"Bakery",
			"- White Mountain Bread — Buy 1 Get 1 Free — Save $4.29",
			"Beverages",
			"- Celsius 4-pack — Buy 1 Get 1 Free — Save $7.49",
		})
		require.Len(t, catalog.BogoDeals, 2)
		assert.Equal(t, "Beverages", catalog.BogoDeals[0].Name)
		assert.Len(t, catalog.BogoDeals[0].Items, 2)
		assert.Len(t, catalog.BogoDeals[1].Items, 1)
	})

	t.Run("empty category flagged", func(t *testing.T) {
		catalog, plog := parseQuiet(t, []string{
			"BOGO DEALS",
			"Beverages",
			"Bakery",
			"- White Mountain Bread — Buy 1 Get 1 Free — Save $4.29",
		})
		require.Len(t, catalog.BogoDeals, 2)
		assert.Empty(t, catalog.BogoDeals[0].Items)
		require.Equal(t, 1, plog.Len())
		anomaly := plog.Anomalies()[0]
		assert.Equal(t, "category has no items", anomaly.Reason)
		assert.Equal(t, "Beverages", anomaly.Text)
		assert.Equal(t, -1, anomaly.Paragraph)
	})
}

// TestParseParagraphsSweep tests the post-parse checks on stack deals.
//
// It verifies that:
//   - A stack deal without a buy list is flagged
//   - The flag carries the deal name and no paragraph index
func TestParseParagraphsSweep(t *testing.T) {
	_, plog := parseQuiet(t, []string{
		"DOUBLE STACKS",
		"Dawn Platinum",
		"Sale:",
		"- Dawn Platinum 2 for $9",
	})
	require.Equal(t, 1, plog.Len())
	anomaly := plog.Anomalies()[0]
	assert.Equal(t, constants.SectionDoubleStacks, anomaly.Section)
	assert.Equal(t, "deal has no buy list", anomaly.Reason)
	assert.Equal(t, "Dawn Platinum", anomaly.Text)
}

// TestParseParagraphsEmpty tests degenerate inputs.
//
// It verifies that:
//   - Nil and empty inputs produce an empty catalog without anomalies
//   - Documents with no recognized section ignore all content
func TestParseParagraphsEmpty(t *testing.T) {
	t.Run("nil input", func(t *testing.T) {
		catalog, plog := parseQuiet(t, nil)
		require.NotNil(t, catalog)
		assert.True(t, catalog.IsEmpty())
		assert.False(t, plog.HasAnomalies())
	})

	t.Run("no sections", func(t *testing.T) {
		catalog, plog := parseQuiet(t, []string{
			"Shopping list",
			"- milk",
			"- bread",
		})
		assert.True(t, catalog.IsEmpty())
		assert.False(t, plog.HasAnomalies())
	})
}

// TestParseBogoItem tests BOGO line splitting.
//
// It verifies that:
//   - All four em dash separated parts are assigned in order
//   - Missing trailing parts leave fields empty
//   - A missing offer part falls back to the default
func TestParseBogoItem(t *testing.T) {
	t.Run("full line", func(t *testing.T) {
		card := ParseBogoItem("Coke Zero 12-pack — Buy 1 Get 1 Free — Save $9.99 — Valid through 8/27")
		assert.Equal(t, "Coke Zero 12-pack", card.Name)
		assert.Equal(t, "Buy 1 Get 1 Free", card.Offer)
		assert.Equal(t, "Save $9.99", card.Savings)
		assert.Equal(t, "Valid through 8/27", card.Valid)
	})

	t.Run("name only", func(t *testing.T) {
		card := ParseBogoItem("Celsius 4-pack")
		assert.Equal(t, "Celsius 4-pack", card.Name)
		assert.Equal(t, DefaultBogoOffer, card.Offer)
		assert.Empty(t, card.Savings)
		assert.Empty(t, card.Valid)
	})

	t.Run("extra parts ignored", func(t *testing.T) {
		card := ParseBogoItem("A — B — C — D — E")
		assert.Equal(t, "D", card.Valid)
	})
}

// TestParseCouponItem tests coupon line splitting.
//
// It verifies that:
//   - All four em dash separated parts are assigned in order
//   - Missing trailing parts leave fields empty with no defaults
func TestParseCouponItem(t *testing.T) {
	t.Run("full line", func(t *testing.T) {
		card := ParseCouponItem("Bounty — $2 off — Paper towels 4-pack — Expires 8/31")
		assert.Equal(t, "Bounty", card.Name)
		assert.Equal(t, "$2 off", card.Savings)
		assert.Equal(t, "Paper towels 4-pack", card.Description)
		assert.Equal(t, "Expires 8/31", card.Expires)
	})

	t.Run("name only", func(t *testing.T) {
		card := ParseCouponItem("Bounty")
		assert.Equal(t, "Bounty", card.Name)
		assert.Empty(t, card.Savings)
		assert.Empty(t, card.Description)
		assert.Empty(t, card.Expires)
	})
}

// TestParseLogWarnings tests the immediate warning side channel.
//
// It verifies that:
//   - Each recorded anomaly is written through the warnings package
//   - The warning line carries the section and the reason
func TestParseLogWarnings(t *testing.T) {
	var buf bytes.Buffer
	restore := warnings.SetWarningWriter(&buf)
	defer restore()

	plog := NewParseLog()
	plog.Add(constants.SectionBogoDeals, 4, "Save big this week", "unrecognized line")

	assert.Contains(t, buf.String(), "warning: BOGO DEALS:")
	assert.Contains(t, buf.String(), "unrecognized line")
	assert.Contains(t, buf.String(), "paragraph 4")
}
