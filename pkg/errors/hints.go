package errors

import (
	"strings"
)

// ErrorHint provides actionable resolution hints for common errors.
//
// Fields:
//   - Pattern: Substring to match in error message (case-insensitive)
//   - Hint: Brief description of the issue
//   - Resolution: Command or action to resolve the issue
type ErrorHint struct {
	// Pattern is a substring to match in error messages (case-insensitive).
	Pattern string

	// Hint is a brief description of the problem.
	Hint string

	// Resolution is a command or action to fix the problem.
	Resolution string
}

// CommandResolutionHints maps command names to installation instructions.
// Used for preflight validation errors when a required command is not found.
var CommandResolutionHints = map[string]string{
	// Version control and hosting
	"git":   "Install git: https://git-scm.com/downloads",
	"gh":    "Install GitHub CLI: https://cli.github.com/",
	"rsync": "Install rsync via your package manager (apt install rsync, brew install rsync)",
	"scp":   "Part of OpenSSH - install openssh-client via your package manager",
	"ssh":   "Part of OpenSSH - install openssh-client via your package manager",

	// Hosting CLIs sometimes used in custom publish pipelines
	"netlify": "Install Netlify CLI: npm install -g netlify-cli",
	"aws":     "Install AWS CLI: https://aws.amazon.com/cli/",
	"wrangler": "Install Cloudflare Wrangler: npm install -g wrangler",

	// Common Unix tools
	"grep": "Unix tool - typically pre-installed on Linux/macOS",
	"awk":  "Unix tool - typically pre-installed on Linux/macOS",
	"sed":  "Unix tool - typically pre-installed on Linux/macOS",
	"sort": "Unix tool - typically pre-installed on Linux/macOS",
	"curl": "Install curl: https://curl.se/download.html (often pre-installed)",
	"wget": "Install wget: https://www.gnu.org/software/wget/ or use curl instead",

	// HTML processing tools sometimes wired into post-build checks
	"tidy": "Install HTML Tidy: https://www.html-tidy.org/ (apt install tidy, brew install tidy-html5)",
	"jq":   "Install jq: https://jqlang.github.io/jq/download/ (JSON processor)",
	"yq":   "Install yq: https://github.com/mikefarah/yq (YAML processor)",
}

// CommonErrorHints maps error patterns to actionable hints.
// These are used by EnhanceErrorWithHint to add context to errors.
var CommonErrorHints = []ErrorHint{
	{
		Pattern:    "failed to parse",
		Hint:       "Check file syntax",
		Resolution: "Validate YAML syntax using a linter or online validator",
	},
	{
		Pattern:    "failed to load config",
		Hint:       "Configuration file is invalid or not found",
		Resolution: "Run 'stacksmith config --check' to validate, or create .stacksmith.yml in the project root",
	},
	{
		Pattern:    "word/document.xml not found",
		Hint:       "File is not a Word document",
		Resolution: "Export the weekly deals document as .docx and point document.path at it",
	},
	{
		Pattern:    "not a valid zip",
		Hint:       "Document is corrupted or not a .docx file",
		Resolution: "Re-export the document from your editor as .docx",
	},
	{
		Pattern:    "no sections found",
		Hint:       "Document has none of the expected section headings",
		Resolution: "Add TRIPLE STACKS, DOUBLE STACKS, BOGO DEALS or DIGITAL COUPONS headings",
	},
	{
		Pattern:    "not a git repository",
		Hint:       "Publishing requires a git work tree",
		Resolution: "Run 'git init' and add a remote, or run publish from the site checkout",
	},
	{
		Pattern:    "no configured remote",
		Hint:       "Git remote is missing",
		Resolution: "Run 'git remote add origin <url>' or set publish.remote in .stacksmith.yml",
	},
	{
		Pattern:    "non-fast-forward",
		Hint:       "Remote has commits you do not have locally",
		Resolution: "Run 'git pull --rebase' and publish again",
	},
	{
		Pattern:    "authentication failed",
		Hint:       "Git credentials rejected",
		Resolution: "Check your credential helper or access token for the hosting remote",
	},
	{
		Pattern:    "command timed out",
		Hint:       "Publish step took too long",
		Resolution: "Increase publish.timeout_seconds in config or check network connectivity",
	},
	{
		Pattern:    "no such file or directory",
		Hint:       "File or directory not found",
		Resolution: "Verify the path exists and you have read permissions",
	},
	{
		Pattern:    "permission denied",
		Hint:       "Insufficient permissions",
		Resolution: "Check file permissions or run with appropriate privileges",
	},
	{
		Pattern:    "network",
		Hint:       "Network connectivity issue",
		Resolution: "Check internet connection and proxy settings",
	},
	{
		Pattern:    "401",
		Hint:       "Authentication required",
		Resolution: "Configure credentials for the hosting remote",
	},
	{
		Pattern:    "403",
		Hint:       "Access forbidden",
		Resolution: "Check that your account has push access to the repository",
	},
	{
		Pattern:    "404",
		Hint:       "Remote repository not found",
		Resolution: "Verify the remote URL points at an existing repository",
	},
}

// GetHint returns an actionable hint for the given error.
//
// It searches the error message for known patterns in CommonErrorHints
// and returns a formatted hint if one matches.
//
// Parameters:
//   - err: The error to get a hint for
//
// Returns:
//   - string: The hint with resolution, or empty string if no hint found
//
// Example:
//
//	hint := errors.GetHint(err)
//	if hint != "" {
//	    fmt.Fprintf(os.Stderr, "Hint: %s\n", hint)
//	}
func GetHint(err error) string {
	if err == nil {
		return ""
	}

	errStr := strings.ToLower(err.Error())
	for _, hint := range CommonErrorHints {
		if strings.Contains(errStr, strings.ToLower(hint.Pattern)) {
			return hint.Hint + ": " + hint.Resolution
		}
	}

	return ""
}

// GetHintForCommand returns the installation hint for a command.
//
// Parameters:
//   - cmd: The command name (e.g., "git", "rsync", "tidy")
//
// Returns:
//   - string: Installation hint, or empty string if unknown command
func GetHintForCommand(cmd string) string {
	return CommandResolutionHints[cmd]
}

// RegisterHint adds a custom hint to the registry.
//
// This allows extending the hint system with project-specific patterns.
//
// Parameters:
//   - pattern: Lowercase substring to match in error messages
//   - hint: Brief description of the issue
//   - resolution: Actionable suggestion for fixing the error
func RegisterHint(pattern, hint, resolution string) {
	CommonErrorHints = append(CommonErrorHints, ErrorHint{
		Pattern:    pattern,
		Hint:       hint,
		Resolution: resolution,
	})
}

// RegisterCommandHint adds a command installation hint.
//
// Parameters:
//   - command: Command name (e.g., "mycommand")
//   - hint: Installation instructions
func RegisterCommandHint(command, hint string) {
	CommandResolutionHints[command] = hint
}

// EnhanceErrorWithHint adds actionable hints to an error message if a matching pattern is found.
//
// Parameters:
//   - err: The error to enhance
//
// Returns:
//   - string: Error message with hint appended if found, otherwise just the error message
//
// Example:
//
//	enhanced := errors.EnhanceErrorWithHint(err)
//	fmt.Fprintf(os.Stderr, "Error: %s\n", enhanced)
func EnhanceErrorWithHint(err error) string {
	if err == nil {
		return ""
	}

	errStr := err.Error()
	for _, hint := range CommonErrorHints {
		if strings.Contains(strings.ToLower(errStr), strings.ToLower(hint.Pattern)) {
			return errStr + "\n  \U0001F4A1 " + hint.Hint + ": " + hint.Resolution
		}
	}

	return errStr
}
