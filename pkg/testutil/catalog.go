package testutil

import (
	"github.com/squatchystacks/stacksmith/pkg/deals"
)

// CatalogBuilder provides a fluent API for building test catalogs.
//
// Use this builder to construct Catalog objects for testing purposes
// without needing to assemble all sections manually.
type CatalogBuilder struct {
	catalog deals.Catalog
}

// NewCatalog creates a new CatalogBuilder with all sections empty.
//
// Returns:
//   - *CatalogBuilder: New builder instance ready for method chaining
func NewCatalog() *CatalogBuilder {
	return &CatalogBuilder{}
}

// WithTripleStack appends a deal to the triple stacks section.
//
// Parameters:
//   - deal: Stack deal to append
//
// Returns:
//   - *CatalogBuilder: Self for method chaining
func (b *CatalogBuilder) WithTripleStack(deal deals.StackDeal) *CatalogBuilder {
	b.catalog.TripleStacks = append(b.catalog.TripleStacks, deal)
	return b
}

// WithDoubleStack appends a deal to the double stacks section.
//
// Parameters:
//   - deal: Stack deal to append
//
// Returns:
//   - *CatalogBuilder: Self for method chaining
func (b *CatalogBuilder) WithDoubleStack(deal deals.StackDeal) *CatalogBuilder {
	b.catalog.DoubleStacks = append(b.catalog.DoubleStacks, deal)
	return b
}

// WithBogoCategory appends a category with its cards to the BOGO section.
//
// Parameters:
//   - name: Category header as written in the document
//   - cards: Cards in the category
//
// Returns:
//   - *CatalogBuilder: Self for method chaining
func (b *CatalogBuilder) WithBogoCategory(name string, cards ...deals.CardDeal) *CatalogBuilder {
	b.catalog.BogoDeals = append(b.catalog.BogoDeals, deals.Category{Name: name, Items: cards})
	return b
}

// WithCouponCategory appends a category with its cards to the digital
// coupons section.
//
// Parameters:
//   - name: Category header as written in the document
//   - cards: Cards in the category
//
// Returns:
//   - *CatalogBuilder: Self for method chaining
func (b *CatalogBuilder) WithCouponCategory(name string, cards ...deals.CardDeal) *CatalogBuilder {
	b.catalog.DigitalCoupons = append(b.catalog.DigitalCoupons, deals.Category{Name: name, Items: cards})
	return b
}

// Build returns the built catalog.
//
// Returns a pointer to the constructed Catalog. The builder can be
// reused after calling Build.
//
// Returns:
//   - *deals.Catalog: Pointer to the built catalog
func (b *CatalogBuilder) Build() *deals.Catalog {
	return &b.catalog
}

// TripleStack creates a typical triple stack deal for testing.
//
// The deal carries one sale line, one coupon, a buy list, and an
// explanation, named after the product.
//
// Parameters:
//   - name: Product name used as the deal heading
//
// Returns:
//   - deals.StackDeal: Configured triple stack deal
func TripleStack(name string) deals.StackDeal {
	return deals.StackDeal{
		Name:    name,
		Sale:    []string{"BOGO at $12.99"},
		Coupons: []string{"$3 off " + name},
		Buy:     []string{"2 " + name},
		Why:     "The sale price covers both units and the coupon stacks on top.",
	}
}

// DoubleStack creates a typical double stack deal for testing.
//
// The deal carries one sale line, one coupon, and a buy list. Double
// stacks carry no explanation.
//
// Parameters:
//   - name: Product name used as the deal heading
//
// Returns:
//   - deals.StackDeal: Configured double stack deal
func DoubleStack(name string) deals.StackDeal {
	return deals.StackDeal{
		Name:    name,
		Sale:    []string{"2/$7"},
		Coupons: []string{"$1 off " + name},
		Buy:     []string{"2 " + name},
	}
}

// BogoCard creates a typical BOGO card for testing.
//
// Parameters:
//   - name: Product name
//   - savings: Savings line (e.g., "Save $10.49")
//
// Returns:
//   - deals.CardDeal: Configured BOGO card
func BogoCard(name, savings string) deals.CardDeal {
	return deals.CardDeal{
		Name:    name,
		Offer:   "Buy 1 Get 1 Free",
		Savings: savings,
		Valid:   "Valid through 8/27",
	}
}

// CouponCard creates a typical digital coupon card for testing.
//
// Parameters:
//   - name: Product name
//   - savings: Coupon value (e.g., "$1.50 off")
//
// Returns:
//   - deals.CardDeal: Configured coupon card
func CouponCard(name, savings string) deals.CardDeal {
	return deals.CardDeal{
		Name:        name,
		Savings:     savings,
		Description: "Clip in the app before checkout",
		Expires:     "Expires 8/30",
	}
}

// SampleCatalog creates a small catalog with every section populated.
//
// Returns:
//   - *deals.Catalog: Catalog with one deal per stacks section and one
//     single-card category per card section
func SampleCatalog() *deals.Catalog {
	return NewCatalog().
		WithTripleStack(TripleStack("Gain Flings 24ct")).
		WithDoubleStack(DoubleStack("Dawn Ultra 28oz")).
		WithBogoCategory("Household", BogoCard("Bounty Paper Towels", "Save $10.49")).
		WithCouponCategory("Breakfast", CouponCard("Quaker Oats", "$1.50 off")).
		Build()
}
