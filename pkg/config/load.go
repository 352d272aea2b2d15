// Package config handles configuration loading and validation for stacksmith.
// It supports YAML-based configuration files with sensible built-in defaults
// and a small set of environment overrides for CI pipelines.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/squatchystacks/stacksmith/pkg/verbose"
	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from the specified path or defaults.
//
// If configPath is provided, it loads that specific config file.
// Otherwise, it looks for .stacksmith.yml in the working directory.
// If no config is found, it returns the built-in default configuration.
// Environment overrides (STACKSMITH_*) are applied after the file loads.
//
// Parameters:
//   - configPath: path to the config file, or empty to use defaults
//   - workDir: working directory for the configuration
//
// Returns:
//   - *Config: the loaded configuration with env overrides applied
//   - error: any error encountered during loading
func LoadConfig(configPath, workDir string) (*Config, error) {
	var cfg *Config

	if configPath != "" {
		verbose.Infof("Loading config from: %s", configPath)
		loaded, err := loadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		cfg = loaded
	} else {
		// Try .stacksmith.yml in working directory
		localConfig := filepath.Join(workDir, ".stacksmith.yml")
		if _, err := os.Stat(localConfig); err == nil {
			verbose.Infof("Found local config: %s", localConfig)
			loaded, err := loadConfigFile(localConfig)
			if err != nil {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
			cfg = loaded
			configPath = localConfig
		}

		if cfg == nil {
			verbose.Info("Using built-in default configuration")
			cfg = loadDefaultConfig()
		}
	}

	overrides, err := ApplyEnv(cfg)
	if err != nil {
		return nil, err
	}
	verbose.ConfigLoaded(configPath, overrides)

	if workDir != "" {
		cfg.WorkingDir = workDir
	} else if cfg.WorkingDir == "" {
		cfg.WorkingDir = "."
	}

	return cfg, nil
}

// loadConfigFileWithLimit loads a config file with a configurable size limit.
//
// This enforces a maximum file size to prevent memory exhaustion from a
// runaway or hostile config file.
//
// Parameters:
//   - path: path to the config file
//   - maxSize: maximum allowed file size in bytes
//
// Returns:
//   - *Config: the loaded configuration
//   - error: error if file is too large, not found, or has invalid YAML
func loadConfigFileWithLimit(path string, maxSize int64) (*Config, error) {
	// Check file size before reading to prevent memory exhaustion
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.Size() > maxSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d bytes)",
			info.Size(), maxSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return loadConfigData(data)
}

// loadConfigFile loads a config file with the default size limit.
//
// This is a convenience wrapper around loadConfigFileWithLimit using the
// default maximum file size of 10MB.
//
// Parameters:
//   - path: path to the config file
//
// Returns:
//   - *Config: the loaded configuration
//   - error: error if file cannot be loaded or parsed
func loadConfigFile(path string) (*Config, error) {
	return loadConfigFileWithLimit(path, DefaultMaxConfigFileSize)
}

// loadConfigData parses YAML configuration data.
//
// Parameters:
//   - data: YAML configuration data as bytes
//
// Returns:
//   - *Config: the parsed configuration
//   - error: error if YAML is invalid or malformed
func loadConfigData(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}

	return &cfg, nil
}

// LoadConfigFileStrict loads a config file and validates for unknown fields.
//
// This is more strict than LoadConfig - it will return an error if the config
// contains any unknown fields or validation issues. Useful for catching typos
// and configuration errors early.
//
// Parameters:
//   - path: path to the config file
//
// Returns:
//   - *Config: the loaded configuration
//   - error: error if file has unknown fields, validation errors, or invalid YAML
func LoadConfigFileStrict(path string) (*Config, error) {
	// Check file size before reading to prevent memory exhaustion
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.Size() > DefaultMaxConfigFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d bytes)",
			info.Size(), DefaultMaxConfigFileSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Validate for unknown fields
	result := ValidateConfigFile(data)
	if result.HasErrors() {
		return nil, fmt.Errorf("%s", result.ErrorMessages())
	}

	return loadConfigData(data)
}
