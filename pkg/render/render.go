// Package render generates the static deals page from a parsed catalog.
// The page is a single self-contained HTML file: styles, markup, and the
// search/filter script are all baked in so it can be served from any
// static host.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"

	"github.com/squatchystacks/stacksmith/pkg/config"
	"github.com/squatchystacks/stacksmith/pkg/deals"
	"github.com/squatchystacks/stacksmith/pkg/filtering"
	"github.com/squatchystacks/stacksmith/pkg/verbose"
)

//go:embed templates/page.html.tmpl
var templatesFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templatesFS, "templates/page.html.tmpl"))

// Page holds everything the template needs to produce the site.
type Page struct {
	// Name is the brand name in the header logo and footer.
	Name string

	// Title is the HTML document title.
	Title string

	// Tagline is the header tagline.
	Tagline string

	// Domain is the site domain shown in the footer.
	Domain string

	// UpdatedLabel is the dates badge next to the tagline.
	UpdatedLabel string

	// Catalog is the parsed deals content.
	Catalog *deals.Catalog
}

// NewPage builds a Page from the site configuration and a catalog.
//
// Parameters:
//   - cfg: the loaded configuration (getters supply defaults)
//   - catalog: the parsed deals catalog
//
// Returns:
//   - Page: the page ready to render
func NewPage(cfg *config.Config, catalog *deals.Catalog) Page {
	return Page{
		Name:         cfg.GetSiteName(),
		Title:        cfg.GetSiteTitle(),
		Tagline:      cfg.GetTagline(),
		Domain:       cfg.GetDomain(),
		UpdatedLabel: cfg.GetUpdatedLabel(),
		Catalog:      catalog,
	}
}

// pageView is the template's root data.
type pageView struct {
	Name         string
	Title        string
	Tagline      string
	Domain       string
	UpdatedLabel string
	Chips        []chipView
	Sections     []sectionView
}

// chipView is one category filter chip in the toolbar.
type chipView struct {
	// Tag is the category slug used for matching.
	Tag string

	// Label is the display name, as written in the document.
	Label string
}

// sectionView is one of the four page sections.
type sectionView struct {
	ID         string
	Label      string
	NavLabel   string
	CountLabel string

	// IsStacks selects the stack-deal layout over the card layout.
	IsStacks bool

	// CouponLabel is the heading of the coupon field inside stack deals.
	CouponLabel string

	// WithWhy renders the "Why this works" block (triple stacks only).
	WithWhy bool

	Stacks     []deals.StackDeal
	Categories []categoryView
}

// categoryView is one category header with its card grid.
type categoryView struct {
	Name string
	Tag  string

	// Coupon selects the coupon-card layout over the BOGO layout.
	Coupon bool

	Cards []deals.CardDeal
}

// Render writes the complete HTML page to w.
//
// It performs the following operations:
//   - Step 1: Projects the catalog into section and card view models
//   - Step 2: Computes the initial per-section counts with the zero filter
//     state, so the baked-in badge numbers agree with the filter core
//   - Step 3: Executes the embedded page template
//
// Parameters:
//   - w: destination writer
//   - page: the page content
//
// Returns:
//   - error: template execution errors, or an error when the page has no
//     catalog
func Render(w io.Writer, page Page) error {
	if page.Catalog == nil {
		return fmt.Errorf("page has no catalog")
	}
	if err := pageTemplate.Execute(w, buildView(page)); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}
	return nil
}

// WritePage renders the page and writes it to path.
//
// The page is rendered to a buffer first, so a template failure never
// leaves a truncated file behind. Parent directories are created as
// needed.
//
// Parameters:
//   - path: destination file path
//   - page: the page content
//
// Returns:
//   - error: render or filesystem errors
func WritePage(path string, page Page) error {
	var buf bytes.Buffer
	if err := Render(&buf, page); err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write page: %w", err)
	}

	verbose.PageWritten(path, buf.Len())
	return nil
}

// buildView projects the page into template data.
func buildView(page Page) pageView {
	catalog := page.Catalog
	baseline := filtering.Compute(catalog.FilterGroups(), filtering.State{})

	sections := []sectionView{
		{
			ID:          deals.AnchorTripleStacks,
			Label:       deals.LabelTripleStacks,
			NavLabel:    "Triple Stacks",
			IsStacks:    true,
			CouponLabel: deals.TripleCouponLabel,
			WithWhy:     true,
			Stacks:      catalog.TripleStacks,
		},
		{
			ID:          deals.AnchorDoubleStacks,
			Label:       deals.LabelDoubleStacks,
			NavLabel:    "Double Stacks",
			IsStacks:    true,
			CouponLabel: deals.DoubleCouponLabel,
			Stacks:      catalog.DoubleStacks,
		},
		{
			ID:         deals.AnchorBogoDeals,
			Label:      deals.LabelBogoDeals,
			NavLabel:   "BOGO Deals",
			Categories: categoryViews(catalog.BogoDeals, false),
		},
		{
			ID:         deals.AnchorDigitalCoupons,
			Label:      deals.LabelDigitalCoupons,
			NavLabel:   "Digital Coupons",
			Categories: categoryViews(catalog.DigitalCoupons, true),
		},
	}

	for i := range sections {
		sections[i].CountLabel = fmt.Sprintf("%d deals", baseline.Groups[i].VisibleCount)
	}

	return pageView{
		Name:         page.Name,
		Title:        page.Title,
		Tagline:      page.Tagline,
		Domain:       page.Domain,
		UpdatedLabel: page.UpdatedLabel,
		Chips:        categoryChips(catalog),
		Sections:     sections,
	}
}

// categoryViews builds the card grids for one card section. Categories
// that collected no items are not rendered, matching the published page.
func categoryViews(categories []deals.Category, coupon bool) []categoryView {
	var views []categoryView
	for _, cat := range categories {
		if len(cat.Items) == 0 {
			continue
		}
		views = append(views, categoryView{
			Name:   cat.Name,
			Tag:    deals.Slug(cat.Name),
			Coupon: coupon,
			Cards:  cat.Items,
		})
	}
	return views
}

// categoryChips builds the toolbar filter chips: one per category, in
// first-appearance order across both card sections, deduplicated by slug.
func categoryChips(catalog *deals.Catalog) []chipView {
	seen := make(map[string]struct{})
	var chips []chipView
	for _, section := range [][]deals.Category{catalog.BogoDeals, catalog.DigitalCoupons} {
		for _, cat := range section {
			if len(cat.Items) == 0 {
				continue
			}
			tag := deals.Slug(cat.Name)
			if tag == "" {
				continue
			}
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			chips = append(chips, chipView{Tag: tag, Label: cat.Name})
		}
	}
	return chips
}
