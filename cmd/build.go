package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/squatchystacks/stacksmith/pkg/checks"
	"github.com/squatchystacks/stacksmith/pkg/config"
	"github.com/squatchystacks/stacksmith/pkg/deals"
	"github.com/squatchystacks/stacksmith/pkg/display"
	"github.com/squatchystacks/stacksmith/pkg/errors"
	"github.com/squatchystacks/stacksmith/pkg/render"
	"github.com/squatchystacks/stacksmith/pkg/warnings"
)

var (
	buildDirFlag       string
	buildConfigFlag    string
	buildDocumentFlag  string
	buildStdoutFlag    bool
	buildVerifyFlag    bool
	buildNoTimeoutFlag bool
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Render the deals page from the weekly document",
	Long:  `Parse the weekly deals document and render the static deals page.`,
	RunE:  runBuild,
}

func init() {
	buildCmd.Flags().StringVarP(&buildDirFlag, "directory", "d", ".", "Directory containing the document")
	buildCmd.Flags().StringVarP(&buildConfigFlag, "config", "c", "", "Config file path")
	buildCmd.Flags().StringVarP(&buildDocumentFlag, "document", "f", "", "Document path (overrides config and discovery)")
	buildCmd.Flags().BoolVar(&buildStdoutFlag, "stdout", false, "Write the rendered page to stdout instead of the page file")
	buildCmd.Flags().BoolVar(&buildVerifyFlag, "verify", false, "Verify the written page and run configured checks")
	buildCmd.Flags().BoolVar(&buildNoTimeoutFlag, "no-timeout", false, "Disable check command timeouts")
}

// runBuild executes the build command to render the deals page.
//
// It performs the following operations:
//   - Step 1: Loads and validates the configuration
//   - Step 2: Resolves and parses the weekly document
//   - Step 3: Renders the page to stdout or the configured page file
//   - Step 4: Optionally verifies the written page and runs configured checks
//
// Parameters:
//   - cmd: Cobra command instance
//   - args: Command line arguments (unused)
//
// Returns:
//   - error: Config errors exit with code 3; a missing document, a render
//     failure, or a failed verification exits with code 2
func runBuild(cmd *cobra.Command, args []string) error {
	if buildStdoutFlag && buildVerifyFlag {
		return errors.NewExitErrorf(errors.ExitConfigError, "--verify requires a written page and cannot be combined with --stdout")
	}

	cfg, err := loadAndValidateConfig(buildConfigFlag, buildDirFlag)
	if err != nil {
		return err
	}
	workDir := resolveWorkingDir(buildDirFlag, cfg)
	cfg.WorkingDir = workDir
	cfg.NoTimeout = buildNoTimeoutFlag

	docPath, err := resolveDocument(cfg, buildDocumentFlag)
	if err != nil {
		return err
	}

	// Anomalies are collected during parsing and reported after the page
	// output so they never interleave with it.
	collector := display.NewWarningCollector()
	restore := warnings.SetWarningWriter(collector)
	catalog, _, err := parseDocument(docPath)
	if err == nil && catalog.IsEmpty() {
		warnings.Warnf("no deals parsed from %s\n", docPath)
	}
	restore()
	if err != nil {
		return err
	}

	page := render.NewPage(cfg, catalog)

	if buildStdoutFlag {
		if err := render.Render(os.Stdout, page); err != nil {
			return err
		}
		display.PrintWarnings(os.Stderr, collector.Messages())
		return nil
	}

	pagePath := cfg.GetPagePath()
	if !filepath.IsAbs(pagePath) {
		pagePath = filepath.Join(workDir, pagePath)
	}
	if err := render.WritePage(pagePath, page); err != nil {
		return err
	}

	printBuildReport(pagePath, catalog)
	display.PrintWarnings(os.Stderr, collector.Messages())

	if buildVerifyFlag {
		return verifyPage(cfg, workDir, pagePath, catalog)
	}
	return nil
}

// printBuildReport prints the per-section counts and the written page path.
//
// Parameters:
//   - pagePath: Path the page was written to
//   - catalog: Parsed deal catalog
func printBuildReport(pagePath string, catalog *deals.Catalog) {
	counts := catalog.Counts()
	display.PrintFound(os.Stdout, display.SectionCount{Label: "triple stacks", Deals: counts.TripleStacks})
	display.PrintFound(os.Stdout, display.SectionCount{Label: "double stacks", Deals: counts.DoubleStacks})
	display.PrintFound(os.Stdout, display.SectionCount{Label: "BOGO deals", Deals: counts.BogoDeals, Categories: len(catalog.BogoDeals)})
	display.PrintFound(os.Stdout, display.SectionCount{Label: "digital coupons", Deals: counts.DigitalCoupons, Categories: len(catalog.DigitalCoupons)})
	fmt.Printf("\nWrote %s (%d deals)\n", pagePath, counts.Total())
}

// verifyPage verifies the written page structure and runs configured checks.
//
// It performs the following operations:
//   - Step 1: Verifies the written page parses back to the catalog's counts
//   - Step 2: Runs the configured check commands, if any
//
// Structure failures always fail the build. Check command failures respect
// the continue_on_fail setting.
//
// Parameters:
//   - cfg: Loaded configuration
//   - workDir: Working directory for check commands
//   - pagePath: Path of the written page
//   - catalog: Catalog the page was rendered from
//
// Returns:
//   - error: ExitError with code 2 when verification or checks fail
func verifyPage(cfg *config.Config, workDir, pagePath string, catalog *deals.Catalog) error {
	structure := checks.VerifyStructure(pagePath, catalog)
	fmt.Print(structure.FormatResults())
	if !structure.Passed() {
		return errors.NewExitErrorf(errors.ExitFailure, "page structure verification failed")
	}

	runner := checks.NewRunner(cfg, workDir)
	if !runner.HasChecks() {
		return nil
	}

	progress := display.NewStderrProgress(runner.CommandCount(), "Running page checks")
	runner.SetProgress(progress)
	result := runner.Run()
	progress.Done()
	fmt.Print(result.FormatResults())
	if !result.Passed() {
		if runner.ContinueOnFail() {
			warnings.Warnf("%d of %d checks failed, continuing (continue_on_fail is set)\n", result.FailedCount(), len(result.Checks))
			return nil
		}
		return errors.NewExitErrorf(errors.ExitFailure, "page checks failed")
	}
	return nil
}
