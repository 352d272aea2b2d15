package testutil

import (
	"github.com/squatchystacks/stacksmith/pkg/config"
)

// ConfigBuilder provides a fluent API for building test configurations.
//
// Use this builder to construct Config objects for testing purposes
// without needing to set all fields manually.
type ConfigBuilder struct {
	cfg config.Config
}

// NewConfig creates a new ConfigBuilder with default values.
//
// Initializes a builder with working directory set to ".". Paths and
// publish settings fall back to the config defaults until overridden.
//
// Returns:
//   - *ConfigBuilder: New builder instance ready for method chaining
func NewConfig() *ConfigBuilder {
	return &ConfigBuilder{
		cfg: config.Config{
			WorkingDir: ".",
		},
	}
}

// WithWorkingDir sets the working directory for the configuration.
//
// Parameters:
//   - dir: Path to the working directory
//
// Returns:
//   - *ConfigBuilder: Self for method chaining
func (b *ConfigBuilder) WithWorkingDir(dir string) *ConfigBuilder {
	b.cfg.WorkingDir = dir
	return b
}

// WithDocument sets the weekly document path.
//
// Parameters:
//   - path: Path to the .docx file
//
// Returns:
//   - *ConfigBuilder: Self for method chaining
func (b *ConfigBuilder) WithDocument(path string) *ConfigBuilder {
	b.cfg.Document.Path = path
	return b
}

// WithPatterns sets the document discovery patterns.
//
// Parameters:
//   - patterns: Glob patterns; "!" prefixed patterns exclude matches
//
// Returns:
//   - *ConfigBuilder: Self for method chaining
func (b *ConfigBuilder) WithPatterns(patterns ...string) *ConfigBuilder {
	b.cfg.Document.Patterns = patterns
	return b
}

// WithPage sets the generated page path.
//
// Parameters:
//   - path: Path of the HTML file the build writes
//
// Returns:
//   - *ConfigBuilder: Self for method chaining
func (b *ConfigBuilder) WithPage(path string) *ConfigBuilder {
	b.cfg.Output.Page = path
	return b
}

// WithPublish sets the publish block.
//
// Parameters:
//   - publish: Publish configuration (see GitPublish, CustomPublish)
//
// Returns:
//   - *ConfigBuilder: Self for method chaining
func (b *ConfigBuilder) WithPublish(publish *config.PublishCfg) *ConfigBuilder {
	b.cfg.Publish = publish
	return b
}

// WithChecks sets the post-build check commands.
//
// Parameters:
//   - commands: Multiline command string, one check per line
//
// Returns:
//   - *ConfigBuilder: Self for method chaining
func (b *ConfigBuilder) WithChecks(commands string) *ConfigBuilder {
	b.cfg.Checks = &config.ChecksCfg{Commands: commands}
	return b
}

// WithCI marks the configuration as running non-interactively.
//
// Returns:
//   - *ConfigBuilder: Self for method chaining
func (b *ConfigBuilder) WithCI() *ConfigBuilder {
	b.cfg.CI = true
	return b
}

// WithNoTimeout disables command timeouts.
//
// Returns:
//   - *ConfigBuilder: Self for method chaining
func (b *ConfigBuilder) WithNoTimeout() *ConfigBuilder {
	b.cfg.NoTimeout = true
	return b
}

// Build returns the built configuration.
//
// Returns a pointer to the constructed Config. The builder can be
// reused after calling Build.
//
// Returns:
//   - *config.Config: Pointer to the built configuration
func (b *ConfigBuilder) Build() *config.Config {
	return &b.cfg
}

// GitPublish creates a publish block for the built-in git pipeline.
//
// Parameters:
//   - remote: Git remote to push to (e.g., "origin")
//   - branch: Git branch to push to (e.g., "main")
//
// Returns:
//   - *config.PublishCfg: Publish configuration using the git pipeline
func GitPublish(remote, branch string) *config.PublishCfg {
	return &config.PublishCfg{
		Remote: remote,
		Branch: branch,
	}
}

// CustomPublish creates a publish block that replaces the git pipeline
// with the given commands.
//
// Parameters:
//   - commands: Multiline command string run instead of git
//
// Returns:
//   - *config.PublishCfg: Publish configuration using a custom pipeline
func CustomPublish(commands string) *config.PublishCfg {
	return &config.PublishCfg{
		Commands: commands,
	}
}
