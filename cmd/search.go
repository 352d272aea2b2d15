package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/squatchystacks/stacksmith/pkg/config"
	"github.com/squatchystacks/stacksmith/pkg/deals"
	"github.com/squatchystacks/stacksmith/pkg/display"
	"github.com/squatchystacks/stacksmith/pkg/errors"
	"github.com/squatchystacks/stacksmith/pkg/filtering"
	"github.com/squatchystacks/stacksmith/pkg/markup"
	"github.com/squatchystacks/stacksmith/pkg/output"
	"github.com/squatchystacks/stacksmith/pkg/verbose"
	"github.com/squatchystacks/stacksmith/pkg/warnings"
)

var (
	searchDirFlag      string
	searchConfigFlag   string
	searchDocumentFlag string
	searchQueryFlag    string
	searchCategoryFlag []string
	searchFromFlag     string
	searchOutputFlag   string
)

// Search sources. The page is preferred because it is what visitors see;
// the document is the fallback before the page has been built.
const (
	sourcePage     = "page"
	sourceDocument = "document"
)

// maxDealWidth caps the DEAL column so long card texts don't wrap.
const maxDealWidth = 60

var searchCmd = &cobra.Command{
	Use:   "search [query...]",
	Short: "Search the deals page the way its filter box does",
	Long: `Filter deals with the same rules the page's own search box applies:
case-insensitive substring match on the full card text, plus an optional
single category filter.`,
	Args: cobra.ArbitraryArgs,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchDirFlag, "directory", "d", ".", "Directory containing the page and document")
	searchCmd.Flags().StringVarP(&searchConfigFlag, "config", "c", "", "Config file path")
	searchCmd.Flags().StringVarP(&searchDocumentFlag, "document", "f", "", "Document path (overrides config and discovery)")
	searchCmd.Flags().StringVarP(&searchQueryFlag, "query", "q", "", "Search query (positional arguments are appended)")
	searchCmd.Flags().StringArrayVar(&searchCategoryFlag, "category", nil, "Toggle a category filter (repeatable; toggling the active category clears it)")
	searchCmd.Flags().StringVar(&searchFromFlag, "from", "", "Search source: page or document (default: page when built, document otherwise)")
	searchCmd.Flags().StringVarP(&searchOutputFlag, "output", "o", "", "Output format: json, csv, xml (default: table)")
}

// runSearch executes the search command against the page or the document.
//
// It performs the following operations:
//   - Step 1: Assembles the query from the --query flag and positional arguments
//   - Step 2: Loads the records from the built page or the weekly document
//   - Step 3: Computes visibility with the page's own filter semantics
//   - Step 4: Prints the matching deals as a table or structured output
//
// Parameters:
//   - cmd: Cobra command instance
//   - args: Positional query words
//
// Returns:
//   - error: Config errors exit with code 3; a missing source exits with
//     code 2. No matches is not an error.
func runSearch(cmd *cobra.Command, args []string) error {
	outputFormat := output.ParseFormat(searchOutputFlag)
	if err := output.ValidateStructuredOutputFlags(outputFormat, verboseFlag); err != nil {
		return errors.NewExitError(errors.ExitConfigError, err)
	}
	if searchFromFlag != "" && searchFromFlag != sourcePage && searchFromFlag != sourceDocument {
		return errors.NewExitErrorf(errors.ExitConfigError, "invalid --from value %q (expected page or document)", searchFromFlag)
	}

	query := assembleQuery(searchQueryFlag, args)

	cfg, err := loadAndValidateConfig(searchConfigFlag, searchDirFlag)
	if err != nil {
		return err
	}
	workDir := resolveWorkingDir(searchDirFlag, cfg)
	cfg.WorkingDir = workDir

	collector := display.NewWarningCollector()
	groups, source, err := loadSearchGroups(cfg, collector)
	if err != nil {
		return err
	}

	state := filtering.State{}.WithQuery(query)
	for _, category := range searchCategoryFlag {
		state = state.ToggleCategory(deals.Slug(category))
	}

	result := filtering.Compute(groups, state)
	verbose.Infof("Search over %d records from %s: %d visible", len(result.Visible), source, result.TotalVisible())

	if output.IsStructuredFormat(outputFormat) {
		return output.WriteSearchResult(os.Stdout, outputFormat, buildSearchResult(query, source, state, groups, result))
	}

	printSearchReport(query, groups, result)
	display.PrintWarnings(os.Stderr, collector.Messages())
	return nil
}

// assembleQuery joins the --query flag and positional words into one query.
func assembleQuery(flagValue string, args []string) string {
	parts := make([]string, 0, len(args)+1)
	if flagValue != "" {
		parts = append(parts, flagValue)
	}
	parts = append(parts, args...)
	return strings.TrimSpace(strings.Join(parts, " "))
}

// loadSearchGroups loads the filterable records from the chosen source.
//
// The page is preferred when it exists so results mirror what visitors see.
// Parsing the document streams its anomalies into the collector.
//
// Parameters:
//   - cfg: Loaded configuration with WorkingDir set
//   - collector: Sink for document parse warnings
//
// Returns:
//   - []filtering.Group: Records grouped in page section order
//   - string: The source used ("page" or "document")
//   - error: Exit code 2 when the chosen source is missing or unreadable
func loadSearchGroups(cfg *config.Config, collector *display.WarningCollector) ([]filtering.Group, string, error) {
	pagePath := cfg.GetPagePath()
	if !filepath.IsAbs(pagePath) {
		pagePath = filepath.Join(cfg.WorkingDir, pagePath)
	}

	source := searchFromFlag
	if source == "" {
		if _, err := os.Stat(pagePath); err == nil {
			source = sourcePage
		} else {
			source = sourceDocument
		}
	}

	if source == sourcePage {
		groups, err := parsePageGroups(pagePath)
		return groups, source, err
	}

	docPath, err := resolveDocument(cfg, searchDocumentFlag)
	if err != nil {
		return nil, source, err
	}

	restore := warnings.SetWarningWriter(collector)
	catalog, _, err := parseDocument(docPath)
	restore()
	if err != nil {
		return nil, source, err
	}
	return catalog.FilterGroups(), source, nil
}

// parsePageGroups reads the built page and extracts its deal records.
func parsePageGroups(pagePath string) ([]filtering.Group, error) {
	f, err := os.Open(pagePath)
	if err != nil {
		return nil, errors.NewExitErrorf(errors.ExitFailure, "page not found at %s, run 'stacksmith build' first", pagePath)
	}
	defer func() { _ = f.Close() }()

	groups, err := markup.ParseGroups(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read page %s: %w", pagePath, err)
	}
	return groups, nil
}

// searchRow is one visible deal prepared for table display.
type searchRow struct {
	section  string
	category string
	deal     string
}

// visibleRows collects the visible records in page order.
//
// Walks the flattened visibility slice alongside the groups, keeping the
// section label and category tag of each visible record.
func visibleRows(groups []filtering.Group, result filtering.Result) []searchRow {
	var rows []searchRow
	idx := 0
	for _, g := range groups {
		for _, rec := range g.Records {
			if idx < len(result.Visible) && result.Visible[idx] {
				rows = append(rows, searchRow{section: g.Label, category: rec.Category, deal: rec.Text})
			}
			idx++
		}
	}
	return rows
}

// allRecordTexts returns every record's text, used for typo suggestions.
func allRecordTexts(groups []filtering.Group) []string {
	var texts []string
	for _, g := range groups {
		for _, rec := range g.Records {
			texts = append(texts, rec.Text)
		}
	}
	return texts
}

// buildSearchResult assembles the structured search output.
//
// Parameters:
//   - query: The applied query text
//   - source: Where the records came from ("page" or "document")
//   - state: The filter state after category toggles
//   - groups: The records that were searched
//   - result: Computed visibility
//
// Returns:
//   - *output.SearchResult: Summary, per-group visibility, and visible records
func buildSearchResult(query, source string, state filtering.State, groups []filtering.Group, result filtering.Result) *output.SearchResult {
	searchGroups := make([]output.SearchGroup, 0, len(result.Groups))
	for i, g := range result.Groups {
		total := 0
		if i < len(groups) {
			total = len(groups[i].Records)
		}
		searchGroups = append(searchGroups, output.SearchGroup{
			Label:        g.Label,
			Visible:      g.Visible,
			VisibleCount: g.VisibleCount,
			TotalCount:   total,
		})
	}

	records := make([]output.SearchRecord, 0)
	for _, row := range visibleRows(groups, result) {
		records = append(records, output.SearchRecord{
			Section:  row.section,
			Category: row.category,
			Deal:     row.deal,
		})
	}

	return &output.SearchResult{
		Summary: output.SearchSummary{
			Query:          query,
			Category:       state.ActiveCategory,
			Source:         source,
			TotalRecords:   len(result.Visible),
			VisibleRecords: result.TotalVisible(),
			AnyVisible:     result.AnyVisible,
		},
		Groups:  searchGroups,
		Records: records,
	}
}

// printSearchReport outputs the search results in table format to stdout.
//
// Displays the visible deals with their section and category, per-section
// visible counts, and the overall visibility summary. When nothing matches,
// prints the no-results message with a typo suggestion when one is close.
//
// Parameters:
//   - query: The applied query text
//   - groups: The records that were searched
//   - result: Computed visibility
func printSearchReport(query string, groups []filtering.Group, result filtering.Result) {
	if !result.AnyVisible {
		suggestion := ""
		if strings.TrimSpace(query) != "" {
			suggestion = display.ClosestMatch(query, display.SuggestionCandidates(allRecordTexts(groups)))
		}
		display.PrintNoResults(os.Stdout, suggestion)
		return
	}

	rows := visibleRows(groups, result)
	categories := make([]string, 0, len(rows))
	for _, row := range rows {
		categories = append(categories, row.category)
	}
	showCategory := output.ShouldShowCategoryColumn(categories)

	table := display.NewSearchTable(showCategory)
	for _, row := range rows {
		table.UpdateWidths(row.section, display.SafeCategoryValue(row.category), display.TruncateWithEllipsis(row.deal, maxDealWidth))
	}

	fmt.Println(table.HeaderRow())
	fmt.Println(table.SeparatorRow())
	for _, row := range rows {
		fmt.Println(table.FormatRow(row.section, display.SafeCategoryValue(row.category), display.TruncateWithEllipsis(row.deal, maxDealWidth)))
	}

	fmt.Println()
	for _, g := range result.Groups {
		if g.Visible {
			fmt.Printf("%s: %d deals\n", g.Label, g.VisibleCount)
		}
	}
	fmt.Printf("\nVisible: %d of %d deals\n", result.TotalVisible(), len(result.Visible))
}
