package deals

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/squatchystacks/stacksmith/pkg/filtering"
)

// sampleCatalog returns a small catalog with every section populated.
func sampleCatalog() *Catalog {
	return &Catalog{
		TripleStacks: []StackDeal{
			{
				Name:    "Gain Laundry Detergent",
				Sale:    []string{"Gain Flings BOGO $13.49"},
				Coupons: []string{"$3 off Gain Flings", "$2 off any Gain"},
				Buy:     []string{"2 Gain Flings 24 ct"},
				Why:     "Pair drops under $6",
			},
		},
		DoubleStacks: []StackDeal{
			{
				Name:    "Dawn Platinum",
				Sale:    []string{"Dawn Platinum 2 for $9"},
				Coupons: []string{"$1.50 off Dawn Platinum"},
				Buy:     []string{"2 Dawn Platinum 18 oz"},
			},
		},
		BogoDeals: []Category{
			{
				Name: "Beverages",
				Items: []CardDeal{
					{Name: "Coke Zero 12-pack", Offer: "Buy 1 Get 1 Free", Savings: "Save $9.99", Valid: "Through 8/27"},
				},
			},
			{
				Name: "Household & Cleaning",
				Items: []CardDeal{
					{Name: "Palmolive Ultra", Offer: "Buy 1 Get 1 Free", Savings: "Save $4.99"},
				},
			},
		},
		DigitalCoupons: []Category{
			{
				Name: "Household",
				Items: []CardDeal{
					{Name: "Bounty", Savings: "$2 off", Description: "Paper towels 4-pack", Expires: "8/31"},
				},
			},
		},
	}
}

// TestFilterGroups tests the catalog to filter-group conversion.
//
// It verifies that:
//   - The four page sections come back in page order with their labels
//   - Stack records carry the full visible deal text including field labels
//   - Card records carry their category slug
//   - An empty catalog still produces all four groups, each with no records
func TestFilterGroups(t *testing.T) {
	groups := sampleCatalog().FilterGroups()
	require.Len(t, groups, 4)

	t.Run("labels in page order", func(t *testing.T) {
		assert.Equal(t, LabelTripleStacks, groups[0].Label)
		assert.Equal(t, LabelDoubleStacks, groups[1].Label)
		assert.Equal(t, LabelBogoDeals, groups[2].Label)
		assert.Equal(t, LabelDigitalCoupons, groups[3].Label)
	})

	t.Run("triple stack text", func(t *testing.T) {
		require.Len(t, groups[0].Records, 1)
		record := groups[0].Records[0]
		assert.Equal(t,
			"Gain Laundry Detergent Sale: Gain Flings BOGO $13.49 "+
				"Digital Coupons: $3 off Gain Flings $2 off any Gain "+
				"Buy: 2 Gain Flings 24 ct Why this works: Pair drops under $6",
			record.Text)
		assert.Empty(t, record.Category)
	})

	t.Run("double stack text", func(t *testing.T) {
		require.Len(t, groups[1].Records, 1)
		record := groups[1].Records[0]
		assert.Equal(t,
			"Dawn Platinum Sale: Dawn Platinum 2 for $9 "+
				"Digital Coupon: $1.50 off Dawn Platinum "+
				"Buy: 2 Dawn Platinum 18 oz",
			record.Text)
	})

	t.Run("card categories", func(t *testing.T) {
		require.Len(t, groups[2].Records, 2)
		assert.Equal(t, "beverages", groups[2].Records[0].Category)
		assert.Equal(t, "household-and-cleaning", groups[2].Records[1].Category)
		assert.Equal(t, "Coke Zero 12-pack Buy 1 Get 1 Free Save $9.99 Through 8/27", groups[2].Records[0].Text)

		require.Len(t, groups[3].Records, 1)
		assert.Equal(t, "household", groups[3].Records[0].Category)
		assert.Equal(t, "Bounty $2 off Paper towels 4-pack 8/31", groups[3].Records[0].Text)
	})

	t.Run("empty catalog", func(t *testing.T) {
		empty := (&Catalog{}).FilterGroups()
		require.Len(t, empty, 4)
		for _, group := range empty {
			assert.Empty(t, group.Records)
		}
	})
}

// TestFilterGroupsEdgeShapes tests the less common catalog shapes.
//
// It verifies that:
//   - Field labels appear in stack text even when their lists are empty
//   - An empty why leaves a bare trailing label, matching the page
//   - Categories without items contribute no records
//   - Card text skips empty fields and collapses internal whitespace
func TestFilterGroupsEdgeShapes(t *testing.T) {
	t.Run("empty stack fields", func(t *testing.T) {
		catalog := &Catalog{
			TripleStacks: []StackDeal{{Name: "Tide Pods"}},
		}
		groups := catalog.FilterGroups()
		assert.Equal(t, "Tide Pods Sale: Digital Coupons: Buy: Why this works:", groups[0].Records[0].Text)
	})

	t.Run("empty category skipped", func(t *testing.T) {
		catalog := &Catalog{
			BogoDeals: []Category{
				{Name: "Beverages"},
				{Name: "Bakery", Items: []CardDeal{{Name: "White Mountain Bread", Offer: "Buy 1 Get 1 Free"}}},
			},
		}
		groups := catalog.FilterGroups()
		require.Len(t, groups[2].Records, 1)
		assert.Equal(t, "bakery", groups[2].Records[0].Category)
	})

	t.Run("whitespace collapsed", func(t *testing.T) {
		catalog := &Catalog{
			DigitalCoupons: []Category{
				{Name: "Household", Items: []CardDeal{{Name: "Bounty  Select-A-Size", Savings: " $2 off "}}},
			},
		}
		groups := catalog.FilterGroups()
		assert.Equal(t, "Bounty Select-A-Size $2 off", groups[3].Records[0].Text)
	})
}

// TestFilterGroupsCompute tests that catalog groups feed the visibility
// core directly.
//
// It verifies that:
//   - A query matches across sections through the flattened record text
//   - A category toggle keeps only that category's cards visible
//   - Section badge counts equal the number of visible records per group
func TestFilterGroupsCompute(t *testing.T) {
	groups := sampleCatalog().FilterGroups()

	t.Run("query across sections", func(t *testing.T) {
		result := filtering.Compute(groups, filtering.State{Query: "dawn"})
		assert.Equal(t, 1, result.TotalVisible())
		assert.False(t, result.Groups[0].Visible)
		assert.True(t, result.Groups[1].Visible)
		assert.Equal(t, 1, result.Groups[1].VisibleCount)
	})

	t.Run("category toggle", func(t *testing.T) {
		state := filtering.State{}.ToggleCategory("household")
		result := filtering.Compute(groups, state)
		assert.Equal(t, 1, result.TotalVisible())
		assert.True(t, result.Groups[3].Visible)
		assert.False(t, result.Groups[0].Visible, "stack records carry no category")
	})

	t.Run("default state counts", func(t *testing.T) {
		result := filtering.Compute(groups, filtering.State{})
		assert.Equal(t, 1, result.Groups[0].VisibleCount)
		assert.Equal(t, 1, result.Groups[1].VisibleCount)
		assert.Equal(t, 2, result.Groups[2].VisibleCount)
		assert.Equal(t, 1, result.Groups[3].VisibleCount)
	})
}
