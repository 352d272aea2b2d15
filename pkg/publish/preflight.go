package publish

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/squatchystacks/stacksmith/pkg/cmdexec"
	"github.com/squatchystacks/stacksmith/pkg/config"
	"github.com/squatchystacks/stacksmith/pkg/errors"
	"github.com/squatchystacks/stacksmith/pkg/verbose"
)

// preflightTimeoutSeconds bounds the git probes run during preflight.
const preflightTimeoutSeconds = 30

// Preflight validates the environment before a publish run.
//
// It performs the following operations:
//   - Verifies the generated page exists and is not empty
//   - For a custom pipeline, verifies every command in publish.commands is
//     available in PATH or as a shell alias
//   - For the built-in git pipeline, verifies the git binary is available,
//     the working directory is inside a git work tree, and the configured
//     remote exists
//   - Collects all failures with resolution hints
//
// Git-dependent probes are skipped once the git binary itself is missing,
// since they would only repeat the same root cause.
//
// Parameters:
//   - cfg: Loaded configuration
//   - workDir: Directory the publish commands run in; falls back to the
//     config working directory when empty
//
// Returns:
//   - *errors.ValidationResult: Collected failures; never nil
func Preflight(cfg *config.Config, workDir string) *errors.ValidationResult {
	if workDir == "" {
		workDir = cfg.WorkingDir
	}
	verbose.Printf("Preflight: validating publish environment in %s\n", workDir)

	result := errors.NewValidationResult()

	if err := checkPage(cfg.GetPagePath(), workDir); err != nil {
		result.AddError(err)
	}

	if custom := cfg.GetPublishCommands(); custom != "" {
		for _, cmd := range extractCommands(custom) {
			if err := validateCommand(cmd); err != nil {
				result.AddError(err)
			}
		}
		return result
	}

	if err := validateCommand("git"); err != nil {
		result.AddError(err)
		return result
	}

	if err := checkWorkTree(workDir); err != nil {
		result.AddError(err)
		return result
	}

	if err := checkRemote(cfg.GetRemote(), workDir); err != nil {
		result.AddError(err)
	}

	return result
}

// checkPage verifies the generated page exists and has content.
func checkPage(page, workDir string) *errors.ValidationError {
	path := page
	if !filepath.IsAbs(path) && workDir != "" {
		path = filepath.Join(workDir, page)
	}

	info, err := os.Stat(path)
	if err != nil {
		return &errors.ValidationError{
			Category: errors.ValidationCategoryPreflight,
			Field:    "output.page",
			Message:  fmt.Sprintf("page not found: %s", page),
			Hint:     "Run 'stacksmith build' to generate the page first",
		}
	}
	if info.IsDir() {
		return &errors.ValidationError{
			Category: errors.ValidationCategoryPreflight,
			Field:    "output.page",
			Message:  fmt.Sprintf("page path is a directory: %s", page),
			Hint:     "Point output.page at a file, e.g. index.html",
		}
	}
	if info.Size() == 0 {
		return &errors.ValidationError{
			Category: errors.ValidationCategoryPreflight,
			Field:    "output.page",
			Message:  fmt.Sprintf("page is empty: %s", page),
			Hint:     "Re-run 'stacksmith build' to regenerate the page",
		}
	}
	return nil
}

// checkWorkTree verifies the working directory is inside a git work tree.
func checkWorkTree(workDir string) *errors.ValidationError {
	out, err := cmdexec.Execute("git rev-parse --is-inside-work-tree", nil, workDir, preflightTimeoutSeconds, nil)
	if err != nil || strings.TrimSpace(string(out)) != "true" {
		return &errors.ValidationError{
			Category: errors.ValidationCategoryPreflight,
			Field:    "repository",
			Message:  "not inside a git work tree",
			Hint:     "Run 'git init' or publish from a checkout of the site repository",
		}
	}
	return nil
}

// checkRemote verifies the configured git remote exists.
func checkRemote(remote, workDir string) *errors.ValidationError {
	replacements := map[string]string{"remote": remote}
	_, err := cmdexec.Execute("git remote get-url {{remote}}", nil, workDir, preflightTimeoutSeconds, replacements)
	if err != nil {
		return &errors.ValidationError{
			Category: errors.ValidationCategoryPreflight,
			Field:    "publish.remote",
			Message:  fmt.Sprintf("git remote %q is not configured", remote),
			Hint:     fmt.Sprintf("Add it with 'git remote add %s <url>'", remote),
		}
	}
	return nil
}

// extractCommands extracts all command names from a multiline commands string.
//
// It performs the following operations:
//   - Normalizes line endings for cross-platform compatibility (CRLF to LF)
//   - Skips empty lines and comment lines (starting with #)
//   - Handles line continuation backslashes
//   - Parses piped commands (separated by |)
//   - Extracts the first word from each command segment as the command name
//   - Deduplicates command names
//
// Parameters:
//   - commands: Multi-line string containing shell commands, possibly with pipes and line continuations
//
// Returns:
//   - []string: Unique list of command names in order of first appearance; empty slice if no commands found
func extractCommands(commands string) []string {
	var result []string
	seen := make(map[string]bool)

	trimmed := strings.TrimSpace(commands)
	if trimmed == "" {
		return result
	}

	// Normalize line endings for cross-platform compatibility (CRLF -> LF)
	normalized := strings.ReplaceAll(trimmed, "\r\n", "\n")
	lines := strings.Split(normalized, "\n")
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Remove line continuation backslash
		line = strings.TrimSuffix(line, "\\")
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		// Handle piped commands on single line
		pipeParts := strings.Split(line, "|")
		for _, part := range pipeParts {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}

			// Extract first word as command
			fields := strings.Fields(part)
			if len(fields) > 0 {
				cmd := fields[0]
				if !seen[cmd] {
					seen[cmd] = true
					result = append(result, cmd)
				}
			}
		}
	}

	return result
}

// validateCommand checks if a command exists in PATH or as a shell alias.
//
// It performs the following operations:
//   - Returns nil for empty command names
//   - First attempts exec.LookPath for fast binary lookup in PATH
//   - Falls back to shell-based check to detect aliases and shell functions
//   - Returns a preflight ValidationError with a resolution hint if the
//     command is not found
//
// Parameters:
//   - cmd: The command name to validate (e.g., "git", "rsync")
//
// Returns:
//   - *errors.ValidationError: Error with resolution hint if command not found; nil if command exists or cmd is empty
func validateCommand(cmd string) *errors.ValidationError {
	if cmd == "" {
		return nil
	}

	// First try exec.LookPath (faster, finds binaries)
	if _, err := exec.LookPath(cmd); err == nil {
		return nil
	}

	// Fall back to shell-based check to support aliases
	if commandExistsInShell(cmd) {
		return nil
	}

	hint := errors.GetHintForCommand(cmd)
	if hint != "" {
		verbose.Printf("Preflight: command %q not found - hint: %s\n", cmd, hint)
	} else {
		verbose.Printf("Preflight: command %q not found (no resolution hint available)\n", cmd)
	}
	return errors.NewPreflightValidationError(cmd, hint)
}

// commandExistsInShell checks if a command exists through the user's shell.
//
// This function uses the shell's 'command -v' built-in to detect commands, aliases,
// and shell functions that exec.LookPath cannot find. It runs the check in a login
// shell to ensure proper initialization of aliases and functions.
//
// Parameters:
//   - cmd: The command name to check
//
// Returns:
//   - bool: true if the command exists in the shell environment, false otherwise
func commandExistsInShell(cmd string) bool {
	shell, args := getShellCommandCheck(cmd)
	checkCmd := exec.Command(shell, args...)
	return checkCmd.Run() == nil
}
