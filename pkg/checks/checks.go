package checks

import (
	"fmt"
	"strings"
	"time"

	"github.com/squatchystacks/stacksmith/pkg/cmdexec"
	"github.com/squatchystacks/stacksmith/pkg/config"
	"github.com/squatchystacks/stacksmith/pkg/verbose"
)

// Runner executes the check commands configured under the checks block.
//
// Each non-comment line of checks.commands is one check: it runs through
// the shell step runner with {{page}} expanded to the output page path,
// and is timed and reported individually so a failure points at the
// exact command.
//
// Fields:
//   - cfg: Loaded configuration carrying the checks block and page path
//   - workDir: Working directory where check commands will be executed
//   - progress: Optional reporter ticked after each completed check
type Runner struct {
	cfg      *config.Config
	workDir  string
	progress ProgressReporter
}

// ProgressReporter receives one tick per completed check.
type ProgressReporter interface {
	Increment()
}

// NewRunner creates a check runner for the given configuration.
//
// Parameters:
//   - cfg: Loaded configuration; the checks block may be absent
//   - workDir: Working directory where check commands will be executed
//
// Returns:
//   - *Runner: A new runner ready to execute checks
func NewRunner(cfg *config.Config, workDir string) *Runner {
	return &Runner{
		cfg:     cfg,
		workDir: workDir,
	}
}

// SetProgress attaches a reporter ticked after each completed check.
//
// Parameters:
//   - p: Progress reporter; nil disables reporting
func (r *Runner) SetProgress(p ProgressReporter) {
	r.progress = p
}

// HasChecks returns true if at least one check command is configured.
//
// Returns:
//   - bool: true if the checks block contains a runnable command; false otherwise
func (r *Runner) HasChecks() bool {
	return r.cfg != nil && r.cfg.HasChecks() && r.CommandCount() > 0
}

// CommandCount returns the number of configured check commands.
//
// Returns:
//   - int: Count of runnable commands in the checks block
func (r *Runner) CommandCount() int {
	if r.cfg == nil || r.cfg.Checks == nil {
		return 0
	}
	return len(SplitCommands(r.cfg.Checks.Commands))
}

// ContinueOnFail returns true if failing checks should be reported
// without failing the build.
//
// Returns:
//   - bool: true if continue_on_fail is set in the checks block; false otherwise
func (r *Runner) ContinueOnFail() bool {
	return r.cfg != nil && r.cfg.Checks != nil && r.cfg.Checks.ContinueOnFail
}

// Run executes all configured check commands and returns the aggregate result.
//
// It performs the following operations:
//   - Step 1: Split the checks block into individual commands
//   - Step 2: Execute each command sequentially with {{page}} expanded
//   - Step 3: Collect individual results and total duration
//
// Returns:
//   - *Result: Aggregate results with Phase set to PhaseCommands
func (r *Runner) Run() *Result {
	result := &Result{Phase: PhaseCommands}
	if !r.HasChecks() {
		return result
	}

	commands := SplitCommands(r.cfg.Checks.Commands)
	result.Checks = make([]CheckResult, 0, len(commands))

	replacements := map[string]string{"page": r.cfg.GetPagePath()}
	timeout := r.cfg.GetChecksTimeoutSeconds()
	if r.cfg.NoTimeout {
		timeout = 0
	}

	startTime := time.Now()

	for _, command := range commands {
		result.Checks = append(result.Checks, r.runSingleCheck(command, replacements, timeout))
		if r.progress != nil {
			r.progress.Increment()
		}
	}

	result.TotalDuration = time.Since(startTime)
	return result
}

// runSingleCheck executes a single check command and returns its result.
//
// Parameters:
//   - command: One command line from the checks block, placeholders intact
//   - replacements: Placeholder values ({{page}})
//   - timeout: Timeout in seconds, 0 for none
//
// Returns:
//   - CheckResult: Execution result with passed status, output, duration, and any error
func (r *Runner) runSingleCheck(command string, replacements map[string]string, timeout int) CheckResult {
	name := cmdexec.Expand(command, replacements)
	startTime := time.Now()

	verbose.CommandExec(name, r.workDir)
	output, err := cmdexec.Execute(command, r.cfg.Checks.Env, r.workDir, timeout, replacements)

	check := CheckResult{
		Name:     name,
		Duration: time.Since(startTime),
		Output:   string(output),
	}

	if err != nil {
		verbose.CommandResult(name, 1, string(output))
		check.Error = fmt.Errorf("%s: %w", name, err)
		return check
	}

	verbose.CommandResult(name, 0, string(output))
	check.Passed = true
	return check
}

// SplitCommands splits a multiline checks block into individual commands.
//
// It performs the following operations:
//   - Step 1: Normalize line endings
//   - Step 2: Skip blank lines and lines starting with #
//   - Step 3: Join lines ending with a backslash into one command
//
// Pipes stay inside their line; the shell step runner handles them at
// execution time.
//
// Parameters:
//   - commands: Multiline command string from the checks block
//
// Returns:
//   - []string: One entry per runnable command, in order; nil when empty
func SplitCommands(commands string) []string {
	normalized := strings.ReplaceAll(commands, "\r\n", "\n")

	var cmds []string
	var pending string
	for _, line := range strings.Split(normalized, "\n") {
		line = strings.TrimSpace(line)
		if pending == "" && (line == "" || strings.HasPrefix(line, "#")) {
			continue
		}
		if strings.HasSuffix(line, "\\") {
			pending += strings.TrimSpace(strings.TrimSuffix(line, "\\")) + " "
			continue
		}
		cmds = append(cmds, strings.TrimSpace(pending+line))
		pending = ""
	}
	if strings.TrimSpace(pending) != "" {
		cmds = append(cmds, strings.TrimSpace(pending))
	}
	return cmds
}
