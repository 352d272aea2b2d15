package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/squatchystacks/stacksmith/pkg/config"
	"github.com/squatchystacks/stacksmith/pkg/display"
	"github.com/squatchystacks/stacksmith/pkg/errors"
	"github.com/squatchystacks/stacksmith/pkg/markup"
	"github.com/squatchystacks/stacksmith/pkg/publish"
	"github.com/squatchystacks/stacksmith/pkg/verbose"
	"github.com/squatchystacks/stacksmith/pkg/warnings"
)

var (
	publishDirFlag       string
	publishConfigFlag    string
	publishDryRunFlag    bool
	publishCIFlag        bool
	publishMessageFlag   string
	publishNoTimeoutFlag bool
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Publish the deals page to the configured git remote",
	Long:  `Commit and push the built deals page, or run the configured custom publish pipeline.`,
	RunE:  runPublish,
}

func init() {
	publishCmd.Flags().StringVarP(&publishDirFlag, "directory", "d", ".", "Directory containing the page")
	publishCmd.Flags().StringVarP(&publishConfigFlag, "config", "c", "", "Config file path")
	publishCmd.Flags().BoolVar(&publishDryRunFlag, "dry-run", false, "Print the exact commands without executing them")
	publishCmd.Flags().BoolVar(&publishCIFlag, "ci", false, "Non-interactive mode (disables git credential prompts)")
	publishCmd.Flags().StringVarP(&publishMessageFlag, "message", "m", "", "Commit message (overrides config; {{date}} and {{total}} expand)")
	publishCmd.Flags().BoolVar(&publishNoTimeoutFlag, "no-timeout", false, "Disable publish command timeouts")
}

// runPublish executes the publish command.
//
// It performs the following operations:
//   - Step 1: Loads the configuration and validates the publish environment
//   - Step 2: Counts the page's deals for the {{total}} placeholder
//   - Step 3: Builds the publish plan and runs it with per-step progress
//   - Step 4: Prints the outcome summary
//
// Parameters:
//   - cmd: Cobra command instance (provides the cancellation context)
//   - args: Command line arguments (unused)
//
// Returns:
//   - error: Config errors exit with code 3; preflight or step failures
//     exit with code 2. An unchanged page is a successful no-op.
func runPublish(cmd *cobra.Command, args []string) error {
	cfg, err := loadAndValidateConfig(publishConfigFlag, publishDirFlag)
	if err != nil {
		return err
	}
	workDir := resolveWorkingDir(publishDirFlag, cfg)
	cfg.WorkingDir = workDir
	cfg.CI = cfg.CI || publishCIFlag
	cfg.NoTimeout = publishNoTimeoutFlag

	preflight := publish.Preflight(cfg, workDir)
	if preflight.HasErrors() {
		preflight.PrintTo(os.Stderr, verbose.IsEnabled())
		return errors.NewExitErrorf(errors.ExitFailure, "publish preflight failed")
	}
	if preflight.HasWarnings() {
		preflight.PrintTo(os.Stderr, verbose.IsEnabled())
	}

	opts := publish.Options{
		DryRun:  publishDryRunFlag,
		CI:      cfg.CI,
		Message: publishMessageFlag,
		Total:   pageDealTotal(cfg),
	}
	steps := publish.BuildPlan(cfg, opts)

	// Build context for cancellation support
	ctx := context.Background()
	if cmd != nil && cmd.Context() != nil {
		ctx = cmd.Context()
	}

	result, err := publish.Run(ctx, cfg, steps, opts)
	if err != nil {
		printFailedStepOutput(os.Stderr, result)
		return errors.NewExitError(errors.ExitFailure, err)
	}

	if result.DryRun || result.Unchanged {
		return nil
	}

	fmt.Printf("Published %s to %s/%s\n", cfg.GetPagePath(), cfg.GetRemote(), cfg.GetBranch())
	display.PrintSummary(os.Stdout, publishSummary(result))
	return nil
}

// pageDealTotal counts the deals on the built page for the {{total}}
// placeholder. A page that cannot be read yields zero with a warning;
// preflight has already failed the run when the page is required.
func pageDealTotal(cfg *config.Config) int {
	pagePath := cfg.GetPagePath()
	if !filepath.IsAbs(pagePath) {
		pagePath = filepath.Join(cfg.WorkingDir, pagePath)
	}

	f, err := os.Open(pagePath)
	if err != nil {
		warnings.Warnf("warning: cannot count page deals: %v\n", err)
		return 0
	}
	defer func() { _ = f.Close() }()

	groups, err := markup.ParseGroups(f)
	if err != nil {
		warnings.Warnf("warning: cannot count page deals: %v\n", err)
		return 0
	}

	total := 0
	for _, g := range groups {
		total += len(g.Records)
	}
	return total
}

// printFailedStepOutput writes the failed step's command output to w so the
// underlying git error is visible.
func printFailedStepOutput(w io.Writer, result *publish.Result) {
	if result == nil || len(result.Steps) == 0 {
		return
	}
	last := result.Steps[len(result.Steps)-1]
	if out := strings.TrimSpace(last.Output); out != "" {
		_, _ = fmt.Fprintln(w, out)
	}
}

// publishSummary tallies step outcomes for the summary line.
func publishSummary(result *publish.Result) display.Summary {
	summary := display.Summary{Total: len(result.Steps)}
	for _, step := range result.Steps {
		switch {
		case step.Skipped:
			summary.Skipped++
		case step.Err != nil:
			summary.Failed++
		default:
			summary.Succeeded++
		}
	}
	return summary
}
