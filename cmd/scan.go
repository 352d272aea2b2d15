package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/squatchystacks/stacksmith/pkg/config"
	"github.com/squatchystacks/stacksmith/pkg/constants"
	"github.com/squatchystacks/stacksmith/pkg/deals"
	"github.com/squatchystacks/stacksmith/pkg/display"
	"github.com/squatchystacks/stacksmith/pkg/docx"
	"github.com/squatchystacks/stacksmith/pkg/errors"
	"github.com/squatchystacks/stacksmith/pkg/output"
	"github.com/squatchystacks/stacksmith/pkg/utils"
	"github.com/squatchystacks/stacksmith/pkg/verbose"
	"github.com/squatchystacks/stacksmith/pkg/warnings"
)

var (
	scanDirFlag      string
	scanConfigFlag   string
	scanDocumentFlag string
	scanOutputFlag   string
	scanCatalogFlag  bool
)

var extractParagraphsFunc = docx.ExtractParagraphs

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Parse the weekly document and report section counts",
	Long:  `Locate and parse the weekly deals document, then report per-section deal counts and parse notes.`,
	RunE:  runScan,
}

func init() {
	scanCmd.Flags().StringVarP(&scanDirFlag, "directory", "d", ".", "Directory containing the document")
	scanCmd.Flags().StringVarP(&scanConfigFlag, "config", "c", "", "Config file path")
	scanCmd.Flags().StringVarP(&scanDocumentFlag, "document", "f", "", "Document path (overrides config and discovery)")
	scanCmd.Flags().StringVarP(&scanOutputFlag, "output", "o", "", "Output format: json, csv, xml (default: table)")
	scanCmd.Flags().BoolVar(&scanCatalogFlag, "catalog", false, "Dump the full parsed catalog as JSON")
}

// runScan executes the scan command to parse and report on the weekly document.
//
// It performs the following operations:
//   - Step 1: Loads and validates the configuration
//   - Step 2: Resolves the document path (flag, config path, or discovery)
//   - Step 3: Parses the document, collecting anomalies instead of streaming them
//   - Step 4: Prints the section-count table, structured output, or the catalog dump
//
// Parameters:
//   - cmd: Cobra command instance
//   - args: Command line arguments (unused)
//
// Returns:
//   - error: Config errors exit with code 3, a missing or unreadable
//     document exits with code 2
func runScan(cmd *cobra.Command, args []string) error {
	outputFormat := output.ParseFormat(scanOutputFlag)
	if err := output.ValidateStructuredOutputFlags(outputFormat, verboseFlag); err != nil {
		return errors.NewExitError(errors.ExitConfigError, err)
	}
	if scanCatalogFlag && output.IsStructuredFormat(outputFormat) {
		return errors.NewExitErrorf(errors.ExitConfigError, "--catalog already emits JSON and cannot be combined with --output")
	}

	cfg, err := loadAndValidateConfig(scanConfigFlag, scanDirFlag)
	if err != nil {
		return err
	}
	workDir := resolveWorkingDir(scanDirFlag, cfg)
	cfg.WorkingDir = workDir

	docPath, err := resolveDocument(cfg, scanDocumentFlag)
	if err != nil {
		return err
	}

	// Scan reports anomalies itself (NOTES column plus the notes list), so
	// they are collected here instead of streaming to stderr as they occur.
	collector := display.NewWarningCollector()
	restore := warnings.SetWarningWriter(collector)
	catalog, plog, err := parseDocument(docPath)
	restore()
	if err != nil {
		return err
	}

	if scanCatalogFlag {
		return output.WriteCatalog(os.Stdout, catalog.OrderedJSON())
	}

	if output.IsStructuredFormat(outputFormat) {
		return output.WriteScanResult(os.Stdout, outputFormat, buildScanResult(docPath, catalog, plog))
	}

	printScanReport(docPath, catalog, plog)
	return nil
}

// scanSections returns the per-section rows of the scan report, pairing each
// document section heading with its deal count and anomaly count.
func scanSections(catalog *deals.Catalog, plog *deals.ParseLog) []output.ScanSection {
	counts := catalog.Counts()
	return []output.ScanSection{
		{Section: constants.SectionTripleStacks, Deals: counts.TripleStacks, Notes: plog.CountForSection(constants.SectionTripleStacks)},
		{Section: constants.SectionDoubleStacks, Deals: counts.DoubleStacks, Notes: plog.CountForSection(constants.SectionDoubleStacks)},
		{Section: constants.SectionBogoDeals, Deals: counts.BogoDeals, Notes: plog.CountForSection(constants.SectionBogoDeals)},
		{Section: constants.SectionDigitalCoupons, Deals: counts.DigitalCoupons, Notes: plog.CountForSection(constants.SectionDigitalCoupons)},
	}
}

// buildScanResult assembles the structured scan output.
//
// Parameters:
//   - docPath: Path of the parsed document
//   - catalog: Parsed deal catalog
//   - plog: Parse log with recorded anomalies
//
// Returns:
//   - *output.ScanResult: Summary, per-section rows, and anomaly details
func buildScanResult(docPath string, catalog *deals.Catalog, plog *deals.ParseLog) *output.ScanResult {
	var anomalies []output.ScanAnomaly
	for _, a := range plog.Anomalies() {
		anomalies = append(anomalies, output.ScanAnomaly{
			Section:   a.Section,
			Paragraph: a.Paragraph,
			Reason:    a.Reason,
			Text:      a.Text,
		})
	}

	return &output.ScanResult{
		Summary: output.ScanSummary{
			Document:   docPath,
			TotalDeals: catalog.Counts().Total(),
			Categories: len(catalog.Categories()),
			Anomalies:  plog.Len(),
		},
		Sections:  scanSections(catalog, plog),
		Anomalies: anomalies,
	}
}

// printScanReport outputs the scan report in table format to stdout.
//
// Displays each document section with its deal and note counts, summary
// statistics, and the anomaly notes when any were recorded.
//
// Parameters:
//   - docPath: Path of the parsed document
//   - catalog: Parsed deal catalog
//   - plog: Parse log with recorded anomalies
func printScanReport(docPath string, catalog *deals.Catalog, plog *deals.ParseLog) {
	fmt.Printf("Scanned %s\n\n", docPath)

	sections := scanSections(catalog, plog)
	table := display.NewScanTable()
	for _, s := range sections {
		table.UpdateWidths(s.Section, strconv.Itoa(s.Deals), strconv.Itoa(s.Notes))
	}

	fmt.Println(table.HeaderRow())
	fmt.Println(table.SeparatorRow())
	for _, s := range sections {
		fmt.Println(table.FormatRow(s.Section, strconv.Itoa(s.Deals), strconv.Itoa(s.Notes)))
	}

	fmt.Printf("\nTotal deals: %d\n", catalog.Counts().Total())
	fmt.Printf("Categories: %d\n", len(catalog.Categories()))
	fmt.Printf("Anomalies: %d\n", plog.Len())

	if plog.HasAnomalies() {
		fmt.Println()
		for _, msg := range plog.Messages() {
			fmt.Printf("  %s %s\n", constants.IconWarn, msg)
		}
	}
}

// parseDocument extracts and parses the weekly document.
//
// It performs the following operations:
//   - Step 1: Extracts paragraph text from the .docx file
//   - Step 2: Parses the paragraphs into a deal catalog
//
// Parameters:
//   - path: The document file path
//
// Returns:
//   - *deals.Catalog: Parsed catalog, nil on extraction failure
//   - *deals.ParseLog: Anomalies recorded while parsing
//   - error: DocumentError when the file cannot be read or is not a usable document
func parseDocument(path string) (*deals.Catalog, *deals.ParseLog, error) {
	paragraphs, err := extractParagraphsFunc(path)
	if err != nil {
		return nil, nil, errors.NewDocumentError(path, "", err.Error())
	}
	verbose.DocumentLoaded(path, len(paragraphs))

	catalog, plog := deals.ParseParagraphs(paragraphs)
	return catalog, plog, nil
}

// resolveDocument determines the weekly document to parse.
//
// Priority order:
//  1. The --document flag value (must exist)
//  2. The configured document path, relative to the working directory
//  3. Pattern discovery in the working directory (only when the config
//     relies on the default path)
//
// A custom configured path that does not exist is an error rather than
// falling through to discovery.
//
// Parameters:
//   - cfg: Loaded configuration with WorkingDir set
//   - flagValue: Value of the --document flag, may be empty
//
// Returns:
//   - string: The resolved document path
//   - error: DocumentError when no document can be found
func resolveDocument(cfg *config.Config, flagValue string) (string, error) {
	if flagValue != "" {
		if _, err := os.Stat(flagValue); err != nil {
			return "", errors.NewDocumentError(flagValue, "", "document not found")
		}
		return flagValue, nil
	}

	path := cfg.GetDocumentPath()
	if !filepath.IsAbs(path) {
		path = filepath.Join(cfg.WorkingDir, path)
	}
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	// A custom configured path must exist; the default path falls through
	// to pattern discovery so dropping any .docx in the directory works.
	if cfg.Document.Path != "" && cfg.Document.Path != config.DefaultDocumentPath {
		return "", errors.NewDocumentError(cfg.Document.Path, "", "document not found")
	}

	return discoverDocument(cfg.WorkingDir, cfg.GetDocumentPatterns())
}

// discoverDocument finds the weekly document via glob patterns.
//
// Patterns starting with "!" exclude matches. When several documents match,
// the most recently modified one wins - the newest file is this week's
// document.
//
// Parameters:
//   - workDir: Directory to search
//   - patterns: Glob patterns, exclusions prefixed with "!"
//
// Returns:
//   - string: Path of the discovered document
//   - error: DocumentError when nothing matches
func discoverDocument(workDir string, patterns []string) (string, error) {
	includes, excludes := splitDocumentPatterns(patterns)

	matches, err := utils.FindFilesByPatterns(workDir, includes)
	if err != nil {
		return "", fmt.Errorf("document discovery failed: %w", err)
	}
	matches = dropExcludedDocuments(matches, workDir, excludes)

	if len(matches) == 0 {
		return "", errors.NewDocumentError(strings.Join(patterns, ", "), "", "no document matches the configured patterns")
	}

	sort.Slice(matches, func(i, j int) bool {
		return documentModTime(matches[i]).After(documentModTime(matches[j]))
	})
	if len(matches) > 1 {
		verbose.Infof("Found %d candidate documents, using newest: %s", len(matches), matches[0])
	}

	return matches[0], nil
}

// splitDocumentPatterns separates include patterns from "!"-prefixed
// exclude patterns, skipping blank entries.
func splitDocumentPatterns(patterns []string) (includes, excludes []string) {
	for _, pattern := range patterns {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		if rest, ok := strings.CutPrefix(pattern, "!"); ok {
			excludes = append(excludes, rest)
		} else {
			includes = append(includes, pattern)
		}
	}
	return includes, excludes
}

// dropExcludedDocuments filters out paths matching any exclude pattern.
// Patterns match against the path relative to the search directory and
// against the bare file name, mirroring the include matching.
func dropExcludedDocuments(paths []string, baseDir string, excludes []string) []string {
	if len(excludes) == 0 {
		return paths
	}

	var kept []string
	for _, path := range paths {
		rel := path
		if r, err := filepath.Rel(baseDir, path); err == nil {
			rel = r
		}
		rel = filepath.ToSlash(rel)

		excluded := false
		for _, pattern := range excludes {
			if utils.MatchGlob(rel, pattern) || utils.MatchGlob(filepath.Base(rel), pattern) {
				excluded = true
				break
			}
		}
		if excluded {
			verbose.RecordFiltered(path, "matches exclude pattern")
			continue
		}
		kept = append(kept, path)
	}
	return kept
}

// documentModTime returns a file's modification time, or the zero time when
// the file cannot be stat'ed.
func documentModTime(path string) time.Time {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}
