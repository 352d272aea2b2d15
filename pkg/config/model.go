package config

// Default values applied when the config file omits a field.
const (
	// DefaultSiteName is the brand name shown in the page header.
	DefaultSiteName = "Squatchy Stacks"

	// DefaultSiteTitle is the page <title>.
	DefaultSiteTitle = "Squatchy Stacks - Publix Deals"

	// DefaultTagline is the header tagline.
	DefaultTagline = "Your Friendly Neighborhood Deal Hunter"

	// DefaultDomain is the site domain shown in the footer.
	DefaultDomain = "squatchystacks.com"

	// DefaultUpdatedLabel is the dates badge next to the tagline.
	DefaultUpdatedLabel = "Updated Weekly"

	// DefaultDocumentPath is the weekly document read when none is configured.
	DefaultDocumentPath = "Publix_Final.docx"

	// DefaultPagePath is the generated page path.
	DefaultPagePath = "index.html"

	// DefaultRemote is the git remote pushed to.
	DefaultRemote = "origin"

	// DefaultBranch is the git branch pushed to.
	DefaultBranch = "main"

	// DefaultCommitMessage is the commit message template. {{date}} and
	// {{total}} are replaced at publish time.
	DefaultCommitMessage = "Update deals {{date}}"

	// DefaultPublishTimeoutSeconds bounds each publish step.
	DefaultPublishTimeoutSeconds = 120

	// DefaultChecksTimeoutSeconds bounds the post-build check commands.
	DefaultChecksTimeoutSeconds = 300
)

// DefaultMaxConfigFileSize is the maximum config file size (10MB).
const DefaultMaxConfigFileSize = 10 * 1024 * 1024

// DefaultDocumentPatterns are the glob patterns scan uses to discover a
// weekly document when document.path does not exist.
var DefaultDocumentPatterns = []string{"*.docx"}

// Config is the root configuration structure.
type Config struct {
	Site     SiteCfg     `yaml:"site,omitempty"`
	Document DocumentCfg `yaml:"document,omitempty"`
	Output   OutputCfg   `yaml:"output,omitempty"`
	Publish  *PublishCfg `yaml:"publish,omitempty"`
	Checks   *ChecksCfg  `yaml:"checks,omitempty"`

	WorkingDir string `yaml:"working_dir,omitempty"`

	// CI is a runtime flag for non-interactive runs: no prompts, no
	// colors, stable output. Set by --ci or the STACKSMITH_CI / common
	// CI environment variables, never persisted to YAML.
	CI bool `yaml:"-"`

	// NoTimeout disables command timeouts when set to true.
	// It is not persisted to YAML and is set by CLI flags (--no-timeout).
	NoTimeout bool `yaml:"-"`
}

// SiteCfg holds the page identity rendered into the header and footer.
type SiteCfg struct {
	// Name is the brand name in the header logo.
	Name string `yaml:"name,omitempty"`

	// Title is the page <title>.
	Title string `yaml:"title,omitempty"`

	// Tagline is the header tagline.
	Tagline string `yaml:"tagline,omitempty"`

	// Domain is the site domain shown in the footer.
	Domain string `yaml:"domain,omitempty"`

	// UpdatedLabel is the dates badge text (e.g. "Week of Aug 25").
	UpdatedLabel string `yaml:"updated_label,omitempty"`
}

// DocumentCfg locates the weekly deals document.
type DocumentCfg struct {
	// Path is the .docx file to parse.
	Path string `yaml:"path,omitempty"`

	// Patterns are glob patterns scan uses to discover documents when
	// Path does not exist. Patterns starting with "!" exclude matches.
	Patterns []string `yaml:"patterns,omitempty"`
}

// OutputCfg locates the generated page.
type OutputCfg struct {
	// Page is the HTML file the build writes.
	Page string `yaml:"page,omitempty"`
}

// PublishCfg configures git publication of the generated page.
type PublishCfg struct {
	// Remote is the git remote to push to.
	Remote string `yaml:"remote,omitempty"`

	// Branch is the git branch to push to.
	Branch string `yaml:"branch,omitempty"`

	// CommitMessage is the commit message template. {{date}} expands to
	// the current date and {{total}} to the total deal count.
	CommitMessage string `yaml:"commit_message,omitempty"`

	// Commands optionally replaces the built-in git pipeline with a
	// multiline command string. Supports piped (|) and sequential
	// (newline) execution plus {{page}}, {{remote}}, {{branch}},
	// {{message}}, {{date}}, {{total}} placeholders.
	Commands string `yaml:"commands,omitempty"`

	// Env holds environment variables to set when executing commands.
	Env map[string]string `yaml:"env,omitempty"`

	// TimeoutSeconds bounds each publish step (default: 120).
	TimeoutSeconds int `yaml:"timeout_seconds,omitempty"`
}

// ChecksCfg configures post-build verification commands.
type ChecksCfg struct {
	// Commands is a multiline string of check commands to run against
	// the generated page. Supports piped (|) and sequential (newline)
	// execution plus the {{page}} placeholder.
	Commands string `yaml:"commands,omitempty"`

	// Env holds environment variables to set when executing commands.
	Env map[string]string `yaml:"env,omitempty"`

	// TimeoutSeconds bounds the check run (default: 300).
	TimeoutSeconds int `yaml:"timeout_seconds,omitempty"`

	// ContinueOnFail reports check failures without failing the build.
	ContinueOnFail bool `yaml:"continue_on_fail,omitempty"`
}

// GetSiteName returns the configured brand name or the default.
func (c *Config) GetSiteName() string {
	if c.Site.Name != "" {
		return c.Site.Name
	}
	return DefaultSiteName
}

// GetSiteTitle returns the configured page title or the default.
func (c *Config) GetSiteTitle() string {
	if c.Site.Title != "" {
		return c.Site.Title
	}
	return DefaultSiteTitle
}

// GetTagline returns the configured tagline or the default.
func (c *Config) GetTagline() string {
	if c.Site.Tagline != "" {
		return c.Site.Tagline
	}
	return DefaultTagline
}

// GetDomain returns the configured domain or the default.
func (c *Config) GetDomain() string {
	if c.Site.Domain != "" {
		return c.Site.Domain
	}
	return DefaultDomain
}

// GetUpdatedLabel returns the configured dates badge text or the default.
func (c *Config) GetUpdatedLabel() string {
	if c.Site.UpdatedLabel != "" {
		return c.Site.UpdatedLabel
	}
	return DefaultUpdatedLabel
}

// GetDocumentPath returns the configured document path or the default.
func (c *Config) GetDocumentPath() string {
	if c.Document.Path != "" {
		return c.Document.Path
	}
	return DefaultDocumentPath
}

// GetDocumentPatterns returns the discovery patterns or the default.
func (c *Config) GetDocumentPatterns() []string {
	if len(c.Document.Patterns) > 0 {
		return c.Document.Patterns
	}
	return DefaultDocumentPatterns
}

// GetPagePath returns the configured page path or the default.
func (c *Config) GetPagePath() string {
	if c.Output.Page != "" {
		return c.Output.Page
	}
	return DefaultPagePath
}

// GetRemote returns the configured git remote or the default.
//
// The getter tolerates a missing publish section so commands can rely on
// it without nil checks.
func (c *Config) GetRemote() string {
	if c.Publish != nil && c.Publish.Remote != "" {
		return c.Publish.Remote
	}
	return DefaultRemote
}

// GetBranch returns the configured git branch or the default.
func (c *Config) GetBranch() string {
	if c.Publish != nil && c.Publish.Branch != "" {
		return c.Publish.Branch
	}
	return DefaultBranch
}

// GetCommitMessage returns the commit message template or the default.
func (c *Config) GetCommitMessage() string {
	if c.Publish != nil && c.Publish.CommitMessage != "" {
		return c.Publish.CommitMessage
	}
	return DefaultCommitMessage
}

// GetPublishCommands returns the custom publish pipeline, if configured.
func (c *Config) GetPublishCommands() string {
	if c.Publish != nil {
		return c.Publish.Commands
	}
	return ""
}

// GetPublishEnv returns the publish command environment, if configured.
func (c *Config) GetPublishEnv() map[string]string {
	if c.Publish != nil {
		return c.Publish.Env
	}
	return nil
}

// GetPublishTimeoutSeconds returns the publish step timeout or the default.
func (c *Config) GetPublishTimeoutSeconds() int {
	if c.Publish != nil && c.Publish.TimeoutSeconds > 0 {
		return c.Publish.TimeoutSeconds
	}
	return DefaultPublishTimeoutSeconds
}

// HasChecks reports whether post-build checks are configured.
func (c *Config) HasChecks() bool {
	return c.Checks != nil && c.Checks.Commands != ""
}

// GetChecksTimeoutSeconds returns the checks timeout or the default.
func (c *Config) GetChecksTimeoutSeconds() int {
	if c.Checks != nil && c.Checks.TimeoutSeconds > 0 {
		return c.Checks.TimeoutSeconds
	}
	return DefaultChecksTimeoutSeconds
}
