package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/squatchystacks/stacksmith/pkg/config"
	"github.com/squatchystacks/stacksmith/pkg/constants"
	"github.com/squatchystacks/stacksmith/pkg/errors"
	"github.com/squatchystacks/stacksmith/pkg/verbose"
)

var (
	configShowDefaultsFlag bool
	configInitFlag         bool
	configCheckFlag        bool
	configPathFlag         string
)

var (
	loadConfigFunc = config.LoadConfig
	writeFileFunc  = os.WriteFile
	readFileFunc   = os.ReadFile
)

// loadAndValidateConfig loads the configuration and validates it for unknown fields.
//
// This provides preflight validation to catch configuration errors early,
// ensuring users are notified of typos or deprecated options before processing.
//
// Parameters:
//   - configPath: Path to custom config file, or empty for default location
//   - workDir: Working directory to search for default config
//
// Returns:
//   - *config.Config: Loaded and validated configuration
//   - error: Validation or load error with details
func loadAndValidateConfig(configPath, workDir string) (*config.Config, error) {
	// If a custom config path is specified, validate it first
	if configPath != "" {
		data, err := readFileFunc(configPath)
		if err != nil {
			return nil, errors.NewExitError(errors.ExitConfigError,
				fmt.Errorf("failed to read config file '%s': %w", configPath, err))
		}

		if err := rejectInvalidConfig(configPath, data); err != nil {
			return nil, err
		}
	} else {
		// Check for .stacksmith.yml in workDir and validate if it exists
		localConfig := workDir + "/.stacksmith.yml"
		if data, err := readFileFunc(localConfig); err == nil {
			if err := rejectInvalidConfig(localConfig, data); err != nil {
				return nil, err
			}
		}
	}

	// Load the config normally
	cfg, err := loadConfigFunc(configPath, workDir)
	if err != nil {
		return nil, errors.NewExitError(errors.ExitConfigError,
			fmt.Errorf("failed to load config: %w", err))
	}

	return cfg, nil
}

// rejectInvalidConfig validates raw config data and converts schema errors
// into an ExitError carrying the config-error exit code.
//
// Parameters:
//   - path: Config file path, used in the error message
//   - data: Raw YAML config data
//
// Returns:
//   - error: ExitError with ExitConfigError code when validation fails; nil otherwise
func rejectInvalidConfig(path string, data []byte) error {
	result := config.ValidateConfigFile(data)
	if !result.HasErrors() {
		return nil
	}

	var errBuilder strings.Builder
	errBuilder.WriteString(fmt.Sprintf("configuration validation failed for %s:\n", path))
	for _, e := range result.Errors {
		errBuilder.WriteString(fmt.Sprintf("  - %s\n", e.Error()))
	}
	errBuilder.WriteString("\n💡 Run 'stacksmith config --check' for details, or see docs/configuration.md")
	verbose.Infof("Exit code %d (config error): configuration validation failed for %s", errors.ExitConfigError, path)
	return errors.NewExitError(errors.ExitConfigError, fmt.Errorf("%s", errBuilder.String()))
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or create configuration",
	Long:  `Show the resolved configuration, validate it, or create a template.`,
	RunE:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&configShowDefaultsFlag, "show-defaults", false, "Show default configuration")
	configCmd.Flags().BoolVar(&configInitFlag, "init", false, "Create .stacksmith.yml template")
	configCmd.Flags().BoolVar(&configCheckFlag, "check", false, "Validate configuration file (rejects unknown fields)")
	configCmd.Flags().StringVarP(&configPathFlag, "config", "c", "", "Config file path")
}

// runConfig executes the config command with the specified flags.
//
// Behavior depends on flags:
//   - --init: Creates a .stacksmith.yml template file
//   - --check: Validates the configuration file for schema errors
//   - --show-defaults: Displays the default configuration
//   - default: Displays the resolved effective configuration
//
// Parameters:
//   - cmd: Cobra command instance
//   - args: Command line arguments
//
// Returns:
//   - error: Returns error on validation or file operation failure
func runConfig(cmd *cobra.Command, args []string) error {
	if configInitFlag {
		return createConfigTemplate()
	}

	if configCheckFlag {
		return checkConfigFile()
	}

	if configShowDefaultsFlag {
		defaults := config.GetDefaultConfig()
		fmt.Println("Default configuration:")
		fmt.Println()
		fmt.Println(defaults)
		return nil
	}

	return showResolvedConfig()
}

// showResolvedConfig prints the effective configuration after defaults and
// environment overrides are applied.
//
// The config file is validated first so typos surface in the default view
// rather than silently falling back to defaults.
//
// Returns:
//   - error: Returns ExitError with ExitConfigError code on load or validation failure
func showResolvedConfig() error {
	workDir, _ := os.Getwd()
	cfg, err := loadAndValidateConfig(configPathFlag, workDir)
	if err != nil {
		return err
	}

	fmt.Println("Resolved configuration:")
	fmt.Println()
	fmt.Printf("Working Directory: %s\n\n", cfg.WorkingDir)

	fmt.Println("Site:")
	fmt.Printf("  Name: %s\n", cfg.GetSiteName())
	fmt.Printf("  Title: %s\n", cfg.GetSiteTitle())
	fmt.Printf("  Tagline: %s\n", cfg.GetTagline())
	fmt.Printf("  Domain: %s\n", cfg.GetDomain())
	fmt.Printf("  Updated Label: %s\n\n", cfg.GetUpdatedLabel())

	fmt.Println("Document:")
	fmt.Printf("  Path: %s\n", cfg.GetDocumentPath())
	fmt.Printf("  Patterns: %s\n\n", strings.Join(cfg.GetDocumentPatterns(), ", "))

	fmt.Println("Output:")
	fmt.Printf("  Page: %s\n\n", cfg.GetPagePath())

	fmt.Println("Publish:")
	if custom := cfg.GetPublishCommands(); custom != "" {
		fmt.Printf("  Commands: custom pipeline (%d lines)\n", len(strings.Split(strings.TrimSpace(custom), "\n")))
	} else {
		fmt.Printf("  Remote: %s\n", cfg.GetRemote())
		fmt.Printf("  Branch: %s\n", cfg.GetBranch())
		fmt.Printf("  Commit Message: %s\n", cfg.GetCommitMessage())
	}
	fmt.Printf("  Timeout: %ds\n", cfg.GetPublishTimeoutSeconds())

	if cfg.HasChecks() {
		fmt.Println()
		fmt.Println("Checks:")
		fmt.Printf("  Commands: %d lines\n", len(strings.Split(strings.TrimSpace(cfg.Checks.Commands), "\n")))
		fmt.Printf("  Timeout: %ds\n", cfg.GetChecksTimeoutSeconds())
		fmt.Printf("  Continue on Fail: %v\n", cfg.Checks.ContinueOnFail)
	}

	return nil
}

// checkConfigFile validates the configuration file at the specified path.
//
// If no path is specified via --config flag, validates .stacksmith.yml in the
// current working directory. Reports validation errors and warnings.
//
// Returns:
//   - error: Returns ExitError with ExitConfigError code on validation failure
func checkConfigFile() error {
	configPath := configPathFlag
	if configPath == "" {
		// Try default location
		workDir, _ := os.Getwd()
		configPath = workDir + "/.stacksmith.yml"
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return errors.NewExitError(errors.ExitConfigError,
			fmt.Errorf("failed to read config file '%s': %w", configPath, err))
	}

	result := config.ValidateConfigFile(data)

	if result.HasErrors() {
		fmt.Printf("%s Configuration validation failed for: %s\n\n", constants.IconError, configPath)

		// Use verbose errors when --verbose flag is set
		if verbose.IsEnabled() {
			for _, e := range result.Errors {
				fmt.Printf("  ERROR: %s\n", e.VerboseError())
			}
		} else {
			for _, e := range result.Errors {
				fmt.Printf("  ERROR: %s\n", e.Error())
			}
		}

		if len(result.Warnings) > 0 {
			fmt.Println()
			for _, w := range result.Warnings {
				fmt.Printf("  WARNING: %s\n", w)
			}
		}
		fmt.Println()
		if !verbose.IsEnabled() {
			fmt.Printf("%s Run with --verbose for detailed schema information\n", constants.IconLightbulb)
		}
		fmt.Printf("%s See docs/configuration.md for valid configuration options\n", constants.IconLightbulb)
		verbose.Infof("Exit code %d (config error): configuration validation failed for %s", errors.ExitConfigError, configPath)
		return errors.NewExitError(errors.ExitConfigError, fmt.Errorf("configuration validation failed"))
	}

	if len(result.Warnings) > 0 {
		fmt.Printf("%s Configuration valid with warnings: %s\n\n", constants.IconWarn, configPath)
		for _, w := range result.Warnings {
			fmt.Printf("  WARNING: %s\n", w)
		}
		fmt.Println()
	} else {
		fmt.Printf("%s Configuration valid: %s\n", constants.IconCheckmarkBox, configPath)
	}

	return nil
}

// createConfigTemplate creates a new .stacksmith.yml template file.
//
// The template is created in the current directory. Fails if a config
// file already exists at that location.
//
// Returns:
//   - error: Returns error if file exists or cannot be created
func createConfigTemplate() error {
	configPath := ".stacksmith.yml"
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config file already exists: %s", configPath)
	}

	// Use embedded template from pkg/config/template.yml
	template := config.GetTemplateConfig()

	// Use 0600 permissions for config files (owner read/write only) for security
	if err := writeFileFunc(configPath, []byte(template), 0600); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	fmt.Printf("Created configuration template: %s\n", configPath)
	return nil
}

// resolveWorkingDir determines the working directory to use.
//
// Priority order:
//  1. Flag value (if specified and not ".")
//  2. Config WorkingDir (if specified)
//  3. Current directory (".")
//
// Parameters:
//   - flagValue: Value from --directory flag
//   - cfg: Loaded configuration (may be nil)
//
// Returns:
//   - string: Resolved working directory path
func resolveWorkingDir(flagValue string, cfg *config.Config) string {
	if flagValue != "" && flagValue != "." {
		return flagValue
	}

	if cfg != nil && cfg.WorkingDir != "" {
		return cfg.WorkingDir
	}

	return "."
}
