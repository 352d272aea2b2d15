// Package publish pushes the generated deals page to a git remote.
//
// Publishing is a three-phase flow: Preflight validates the environment
// (git binary, work tree, remote, page file), BuildPlan expands the
// configured pipeline into named steps, and Run executes the steps
// sequentially with per-step progress. A custom multiline pipeline from
// publish.commands replaces the built-in git steps when configured.
package publish

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/squatchystacks/stacksmith/pkg/cmdexec"
	"github.com/squatchystacks/stacksmith/pkg/config"
	"github.com/squatchystacks/stacksmith/pkg/display"
	"github.com/squatchystacks/stacksmith/pkg/verbose"
)

// dateLayout is the format used for the {{date}} placeholder in commit
// messages and custom pipelines.
const dateLayout = "2006-01-02"

// timeNow returns the current time. Variable for testing.
var timeNow = time.Now

// Step is a single named command in a publish plan.
//
// Fields:
//   - Name: Short human-readable label shown in progress output
//   - Command: Exact shell command string, placeholders already expanded
//   - Probe: Marks a step whose output decides whether publishing continues
//     rather than contributing to the publish itself
type Step struct {
	// Name is the short label shown in [i/n] progress output.
	Name string

	// Command is the exact shell command to execute.
	Command string

	// Probe marks the step as a decision probe: empty output means the
	// page is unchanged and the remaining steps are skipped.
	Probe bool
}

// Options controls plan construction and execution.
//
// Fields:
//   - DryRun: Print the exact commands without executing them
//   - CI: Non-interactive mode; git credential prompts are disabled
//   - Message: Overrides the configured commit message template
//   - Total: Deal count for the {{total}} placeholder
//   - Writer: Progress output destination (defaults to os.Stdout)
type Options struct {
	// DryRun prints the exact commands without executing them.
	DryRun bool

	// CI disables interactive git prompts for unattended runs.
	CI bool

	// Message overrides the configured commit message template.
	Message string

	// Total is the deal count substituted for {{total}}.
	Total int

	// Writer receives progress output. Defaults to os.Stdout when nil.
	Writer io.Writer
}

// StepResult records the outcome of one executed step.
//
// Fields:
//   - Step: The step that was executed
//   - Output: Combined command output
//   - Err: Execution error, nil on success
//   - Duration: Wall-clock execution time
//   - Skipped: True when the step was not executed
type StepResult struct {
	Step     Step
	Output   string
	Err      error
	Duration time.Duration
	Skipped  bool
}

// Result aggregates the outcome of a publish run.
//
// Fields:
//   - Steps: Per-step results in execution order
//   - Published: True when every step completed successfully
//   - Unchanged: True when the page had no changes to publish
//   - DryRun: True when no commands were executed
type Result struct {
	Steps     []StepResult
	Published bool
	Unchanged bool
	DryRun    bool
}

// BuildPlan expands the configured publish pipeline into named steps.
//
// It performs the following operations:
//   - Resolves page, remote, branch, and commit message from the config
//   - Expands {{date}} and {{total}} inside the commit message template
//   - Builds the replacement map and expands every command, so each step
//     carries the exact shell command that will run
//   - Returns a single custom-pipeline step when publish.commands is set,
//     otherwise the built-in git sequence (status probe, add, commit, push)
//
// Parameters:
//   - cfg: Loaded configuration
//   - opts: Plan options (message override, deal count)
//
// Returns:
//   - []Step: Ordered steps ready for Run
func BuildPlan(cfg *config.Config, opts Options) []Step {
	page := cfg.GetPagePath()
	remote := cfg.GetRemote()
	branch := cfg.GetBranch()
	date := timeNow().Format(dateLayout)

	template := cfg.GetCommitMessage()
	if opts.Message != "" {
		template = opts.Message
	}
	message := expandMessage(template, date, opts.Total)

	replacements := cmdexec.BuildReplacements(page, remote, branch, message, date, opts.Total)

	if custom := cfg.GetPublishCommands(); custom != "" {
		return []Step{
			{Name: "custom pipeline", Command: cmdexec.Expand(custom, replacements)},
		}
	}

	return []Step{
		{Name: "check page status", Command: cmdexec.Expand("git status --porcelain -- {{page}}", replacements), Probe: true},
		{Name: "stage page", Command: cmdexec.Expand("git add {{page}}", replacements)},
		{Name: "commit", Command: cmdexec.Expand("git commit -m {{message}}", replacements)},
		{Name: "push", Command: cmdexec.Expand("git push {{remote}} {{branch}}", replacements)},
	}
}

// expandMessage substitutes {{date}} and {{total}} inside a commit message
// template. Values are substituted verbatim; shell escaping happens later
// when the message itself is placed into a command.
func expandMessage(template, date string, total int) string {
	message := strings.ReplaceAll(template, "{{date}}", date)
	return strings.ReplaceAll(message, "{{total}}", strconv.Itoa(total))
}

// Run executes a publish plan sequentially.
//
// It performs the following operations:
//   - In dry-run mode, prints every step's exact command and returns
//     without executing anything
//   - Executes each step through cmdexec with the configured environment
//     and timeout, printing [i/n] progress per step
//   - Stops successfully when the status probe reports no page changes or
//     when git answers "nothing to commit"; remaining steps are skipped
//   - Stops with an error on the first failed step
//   - In CI mode, disables interactive git credential prompts
//
// Parameters:
//   - ctx: Context for cancellation
//   - cfg: Loaded configuration (environment, working dir, timeout)
//   - steps: Plan produced by BuildPlan
//   - opts: Run options (dry-run, CI, writer)
//
// Returns:
//   - *Result: Per-step outcomes; never nil
//   - error: First step failure, nil when the run succeeded or was unchanged
func Run(ctx context.Context, cfg *config.Config, steps []Step, opts Options) (*Result, error) {
	w := opts.Writer
	if w == nil {
		w = os.Stdout
	}

	result := &Result{DryRun: opts.DryRun}
	if len(steps) == 0 {
		return result, fmt.Errorf("no publish steps to run")
	}

	if opts.DryRun {
		_, _ = fmt.Fprintln(w, "Dry run - commands that would execute:")
		for i, step := range steps {
			display.PublishStep(w, i+1, len(steps), step.Name)
			for _, line := range strings.Split(step.Command, "\n") {
				_, _ = fmt.Fprintf(w, "    %s\n", line)
			}
			result.Steps = append(result.Steps, StepResult{Step: step, Skipped: true})
		}
		return result, nil
	}

	env := cfg.GetPublishEnv()
	if opts.CI {
		merged := make(map[string]string, len(env)+1)
		for k, v := range env {
			merged[k] = v
		}
		merged["GIT_TERMINAL_PROMPT"] = "0"
		env = merged
	}

	timeout := cfg.GetPublishTimeoutSeconds()
	if cfg.NoTimeout {
		timeout = 0
	}

	for i, step := range steps {
		if result.Unchanged {
			result.Steps = append(result.Steps, StepResult{Step: step, Skipped: true})
			continue
		}

		display.PublishStep(w, i+1, len(steps), step.Name)
		verbose.CommandExec(step.Command, cfg.WorkingDir)

		start := timeNow()
		out, err := cmdexec.ExecuteWithContext(ctx, step.Command, env, cfg.WorkingDir, timeout, nil)
		stepResult := StepResult{
			Step:     step,
			Output:   string(out),
			Err:      err,
			Duration: timeNow().Sub(start),
		}

		if err != nil && isNothingToCommit(err, string(out)) {
			// The page is already committed; treat as a clean no-op.
			stepResult.Err = nil
			result.Steps = append(result.Steps, stepResult)
			result.Unchanged = true
			verbose.CommandResult(step.Command, 0, string(out))
			_, _ = fmt.Fprintln(w, "Nothing to publish - page unchanged")
			continue
		}

		if err != nil {
			verbose.CommandResult(step.Command, 1, string(out))
			result.Steps = append(result.Steps, stepResult)
			return result, fmt.Errorf("publish step %q failed: %w", step.Name, err)
		}

		verbose.CommandResult(step.Command, 0, string(out))
		result.Steps = append(result.Steps, stepResult)

		if step.Probe && strings.TrimSpace(string(out)) == "" {
			result.Unchanged = true
			_, _ = fmt.Fprintln(w, "Nothing to publish - page unchanged")
		}
	}

	result.Published = !result.Unchanged
	return result, nil
}

// isNothingToCommit reports whether a failed git commit actually means the
// work tree is clean. Git exits non-zero in that case, but an unchanged
// page is a successful publish outcome.
func isNothingToCommit(err error, output string) bool {
	if err == nil {
		return false
	}
	combined := strings.ToLower(err.Error() + "\n" + output)
	return strings.Contains(combined, "nothing to commit") ||
		strings.Contains(combined, "no changes added to commit")
}
