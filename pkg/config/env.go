package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
)

// envOverrides holds raw environment values applied over the file config.
type envOverrides struct {
	CI       bool   `env:"STACKSMITH_CI"`
	Remote   string `env:"STACKSMITH_REMOTE"`
	Branch   string `env:"STACKSMITH_BRANCH"`
	Document string `env:"STACKSMITH_DOCUMENT"`
	Output   string `env:"STACKSMITH_OUTPUT"`
}

// ciEnvVars are variables commonly set by CI platforms. Any of them being
// truthy implies CI mode unless STACKSMITH_CI says otherwise.
var ciEnvVars = []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "BUILDKITE", "CIRCLECI"}

// ApplyEnv applies STACKSMITH_* environment overrides to a loaded config.
//
// It performs the following operations:
//   - Step 1: Parses the STACKSMITH_* variables
//   - Step 2: Applies non-empty values over the corresponding fields,
//     creating the publish section when a publish override needs it
//   - Step 3: Resolves CI mode: an explicit STACKSMITH_CI wins, otherwise
//     common CI platform variables imply it
//
// Parameters:
//   - cfg: the loaded configuration to apply overrides to
//
// Returns:
//   - []string: names of the variables that were applied, for reporting
//   - error: environment parsing errors
func ApplyEnv(cfg *Config) ([]string, error) {
	var raw envOverrides
	if err := env.Parse(&raw); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	var applied []string

	if raw.Remote != "" {
		ensurePublish(cfg).Remote = raw.Remote
		applied = append(applied, "STACKSMITH_REMOTE")
	}
	if raw.Branch != "" {
		ensurePublish(cfg).Branch = raw.Branch
		applied = append(applied, "STACKSMITH_BRANCH")
	}
	if raw.Document != "" {
		cfg.Document.Path = raw.Document
		applied = append(applied, "STACKSMITH_DOCUMENT")
	}
	if raw.Output != "" {
		cfg.Output.Page = raw.Output
		applied = append(applied, "STACKSMITH_OUTPUT")
	}

	if _, explicit := os.LookupEnv("STACKSMITH_CI"); explicit {
		cfg.CI = raw.CI
		applied = append(applied, "STACKSMITH_CI")
	} else if name := detectCI(); name != "" {
		cfg.CI = true
		applied = append(applied, name)
	}

	return applied, nil
}

// ensurePublish returns the publish section, creating it if absent.
func ensurePublish(cfg *Config) *PublishCfg {
	if cfg.Publish == nil {
		cfg.Publish = &PublishCfg{}
	}
	return cfg.Publish
}

// detectCI returns the name of the first truthy CI platform variable.
func detectCI() string {
	for _, name := range ciEnvVars {
		value := os.Getenv(name)
		if value != "" && value != "false" && value != "0" {
			return name
		}
	}
	return ""
}
