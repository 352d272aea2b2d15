package config

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/antzucaro/matchr"
	"gopkg.in/yaml.v3"

	"github.com/squatchystacks/stacksmith/pkg/utils"
	"github.com/squatchystacks/stacksmith/pkg/verbose"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field      string
	Message    string
	Expected   string // Expected type or schema hint
	ValidKeys  string // Valid keys for this context
	DocSection string // Documentation section reference
}

// Error returns the error message string.
//
// This implements the error interface for ValidationError.
//
// Returns:
//   - string: formatted error message with field name if available
func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// VerboseError returns a detailed error message with schema hints.
//
// This provides additional context including expected types, valid keys,
// and documentation references to help users fix the error.
//
// Returns:
//   - string: detailed error message with schema information and documentation links
func (e ValidationError) VerboseError() string {
	var sb strings.Builder
	if e.Field != "" {
		sb.WriteString(fmt.Sprintf("%s: %s", e.Field, e.Message))
	} else {
		sb.WriteString(e.Message)
	}
	if e.Expected != "" {
		sb.WriteString(fmt.Sprintf("\n    Expected: %s", e.Expected))
	}
	if e.ValidKeys != "" {
		sb.WriteString(fmt.Sprintf("\n    Valid keys: %s", e.ValidKeys))
	}
	if e.DocSection != "" {
		sb.WriteString(fmt.Sprintf("\n    📖 See: docs/configuration.md#%s", e.DocSection))
	}
	return sb.String()
}

// ValidationResult holds the results of configuration validation.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []string
}

// HasErrors returns true if there are any validation errors.
//
// Returns:
//   - bool: true if validation found errors, false otherwise
func (r *ValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// ErrorMessages returns all error messages as a formatted string.
//
// This formats all validation errors into a single multi-line string
// suitable for displaying to users.
//
// Returns:
//   - string: formatted error messages, or empty string if no errors
func (r *ValidationResult) ErrorMessages() string {
	if len(r.Errors) == 0 {
		return ""
	}
	var msgs []string
	for _, e := range r.Errors {
		msgs = append(msgs, "  - "+e.Error())
	}
	return "Configuration validation failed:\n" + strings.Join(msgs, "\n")
}

// VerboseErrorMessages returns detailed error messages with schema hints.
//
// This is like ErrorMessages but includes additional context such as
// expected types, valid keys, and documentation references.
//
// Returns:
//   - string: detailed formatted error messages, or empty string if no errors
func (r *ValidationResult) VerboseErrorMessages() string {
	if len(r.Errors) == 0 {
		return ""
	}
	var msgs []string
	for _, e := range r.Errors {
		msgs = append(msgs, "  - "+e.VerboseError())
	}
	return "Configuration validation failed:\n" + strings.Join(msgs, "\n")
}

// Schema information for validation errors
var configSchema = map[string]schemaInfo{
	"Config": {
		fields: "site, document, output, publish, checks, working_dir",
		doc:    "configuration",
	},
	"SiteCfg": {
		fields: "name, title, tagline, domain, updated_label",
		doc:    "site",
	},
	"DocumentCfg": {
		fields: "path, patterns",
		doc:    "document",
	},
	"OutputCfg": {
		fields: "page",
		doc:    "output",
	},
	"PublishCfg": {
		fields: "remote, branch, commit_message, commands, env, timeout_seconds",
		doc:    "publish",
	},
	"ChecksCfg": {
		fields: "commands, env, timeout_seconds, continue_on_fail",
		doc:    "checks",
	},
}

type schemaInfo struct {
	fields string
	doc    string
}

// Placeholders allowed per template field.
var (
	commitMessagePlaceholders  = []string{"date", "total"}
	publishCommandPlaceholders = []string{"page", "remote", "branch", "message", "date", "total"}
	checksCommandPlaceholders  = []string{"page"}
	placeholderPattern         = regexp.MustCompile(`\{\{(\w+)\}\}`)
	minSuggestionSimilarity    = 0.80
)

// ValidateConfigFile validates a YAML configuration file for syntax errors and unknown fields.
//
// This performs strict validation using KnownFields(true) to detect typos and
// unknown configuration options. It also validates required fields and constraints.
//
// Parameters:
//   - data: YAML configuration data as bytes
//
// Returns:
//   - *ValidationResult: validation result with any errors and warnings found
func ValidateConfigFile(data []byte) *ValidationResult {
	result := &ValidationResult{}

	verbose.Printf("Config validation: starting YAML parsing with strict field checking\n")

	// First, check for unknown fields using strict YAML parsing
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	var cfg Config
	if err := decoder.Decode(&cfg); err != nil {
		verbose.Printf("Config validation FAILED: YAML decode error: %v\n", err)
		// Parse the error to provide better messages
		errMsg := err.Error()
		if strings.Contains(errMsg, "field") && strings.Contains(errMsg, "not found") {
			// Extract field name and type from error like "field foo not found in type config.Config"
			fieldName, typeName := extractFieldAndType(errMsg)
			lineNum := extractLineNumber(errMsg)

			verr := ValidationError{
				Message: fmt.Sprintf("unknown field '%s'", fieldName),
			}
			if lineNum > 0 {
				verr.Message = fmt.Sprintf("unknown field '%s' (line %d)", fieldName, lineNum)
			}

			// Add schema hints
			if schema, ok := configSchema[typeName]; ok {
				verr.ValidKeys = schema.fields
				verr.DocSection = schema.doc
			} else if typeName != "" {
				verr.Expected = fmt.Sprintf("valid field for %s", typeName)
			}

			// Suggest similar field if typo detected
			if suggestion := suggestSimilarField(fieldName, typeName); suggestion != "" {
				verr.Message += fmt.Sprintf(" (did you mean '%s'?)", suggestion)
			}

			result.Errors = append(result.Errors, verr)
		} else if strings.Contains(errMsg, "cannot unmarshal") {
			// Type mismatch errors - check before "yaml:" since these also contain "yaml:"
			result.Errors = append(result.Errors, ValidationError{
				Message:  errMsg,
				Expected: extractExpectedType(errMsg),
			})
		} else if strings.Contains(errMsg, "yaml:") {
			result.Errors = append(result.Errors, ValidationError{
				Message:    fmt.Sprintf("YAML syntax error: %s", errMsg),
				DocSection: "configuration",
			})
		} else {
			result.Errors = append(result.Errors, ValidationError{
				Message: errMsg,
			})
		}
		return result
	}

	// Validate required fields and constraints
	verbose.Printf("Config validation: YAML parsed successfully, validating structure\n")
	validateConfigStruct(&cfg, result)

	if len(result.Errors) == 0 {
		verbose.Printf("Config validation PASSED: no errors found\n")
	} else {
		verbose.Printf("Config validation FAILED: %d errors found\n", len(result.Errors))
	}
	if len(result.Warnings) > 0 {
		verbose.Printf("Config validation: %d warnings\n", len(result.Warnings))
	}

	return result
}

// Validate validates a loaded Config struct.
//
// This validates the configuration structure for required fields,
// valid values, and logical consistency.
//
// Returns:
//   - *ValidationResult: validation result with any errors and warnings found
func (c *Config) Validate() *ValidationResult {
	result := &ValidationResult{}
	validateConfigStruct(c, result)
	return result
}

// validateConfigStruct validates the Config structure.
//
// This checks the document, output, publish, and checks sections for
// validity and consistency.
//
// Parameters:
//   - cfg: the configuration to validate
//   - result: validation result to append errors and warnings to
func validateConfigStruct(cfg *Config, result *ValidationResult) {
	validateDocument(&cfg.Document, result)
	validateOutput(&cfg.Output, result)
	if cfg.Publish != nil {
		validatePublish(cfg.Publish, result)
	}
	if cfg.Checks != nil {
		validateChecks(cfg.Checks, result)
	}
}

// validateDocument validates the document section.
func validateDocument(doc *DocumentCfg, result *ValidationResult) {
	if doc.Path != "" && !strings.HasSuffix(strings.ToLower(doc.Path), ".docx") {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("document.path: '%s' does not end in .docx; only Word documents can be parsed", doc.Path))
	}
	for _, pattern := range doc.Patterns {
		if strings.TrimSpace(strings.TrimPrefix(pattern, "!")) == "" {
			result.Errors = append(result.Errors, ValidationError{
				Field:      "document.patterns",
				Message:    "empty pattern",
				Expected:   "glob pattern like '*.docx' or '!~$*.docx'",
				DocSection: "document",
			})
		}
	}
}

// validateOutput validates the output section.
func validateOutput(out *OutputCfg, result *ValidationResult) {
	if strings.HasSuffix(out.Page, "/") {
		result.Errors = append(result.Errors, ValidationError{
			Field:      "output.page",
			Message:    fmt.Sprintf("'%s' is a directory, expected a file path", out.Page),
			Expected:   "file path like 'index.html' or 'public/index.html'",
			DocSection: "output",
		})
	}
}

// validatePublish validates the publish section.
func validatePublish(pub *PublishCfg, result *ValidationResult) {
	if strings.ContainsAny(pub.Remote, " \t") {
		result.Errors = append(result.Errors, ValidationError{
			Field:      "publish.remote",
			Message:    fmt.Sprintf("'%s' contains whitespace", pub.Remote),
			Expected:   "a git remote name like 'origin'",
			DocSection: "publish",
		})
	}
	if strings.ContainsAny(pub.Branch, " \t") {
		result.Errors = append(result.Errors, ValidationError{
			Field:      "publish.branch",
			Message:    fmt.Sprintf("'%s' contains whitespace", pub.Branch),
			Expected:   "a git branch name like 'main'",
			DocSection: "publish",
		})
	}
	if pub.TimeoutSeconds < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:      "publish.timeout_seconds",
			Message:    fmt.Sprintf("%d is negative", pub.TimeoutSeconds),
			Expected:   "a positive number of seconds",
			DocSection: "publish",
		})
	}

	validatePlaceholders("publish.commit_message", pub.CommitMessage, commitMessagePlaceholders, result)
	validatePlaceholders("publish.commands", pub.Commands, publishCommandPlaceholders, result)
}

// validateChecks validates the checks section.
func validateChecks(checks *ChecksCfg, result *ValidationResult) {
	if strings.TrimSpace(checks.Commands) == "" {
		result.Warnings = append(result.Warnings,
			"checks: section present but commands is empty; build --verify will have nothing to run")
	}
	if checks.TimeoutSeconds < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:      "checks.timeout_seconds",
			Message:    fmt.Sprintf("%d is negative", checks.TimeoutSeconds),
			Expected:   "a positive number of seconds",
			DocSection: "checks",
		})
	}

	validatePlaceholders("checks.commands", checks.Commands, checksCommandPlaceholders, result)
}

// validatePlaceholders flags {{placeholder}} tokens outside the allowed set.
func validatePlaceholders(field, value string, allowed []string, result *ValidationResult) {
	for _, match := range placeholderPattern.FindAllStringSubmatch(value, -1) {
		name := match[1]
		if utils.Contains(allowed, name) {
			continue
		}
		verr := ValidationError{
			Field:      field,
			Message:    fmt.Sprintf("unknown placeholder '{{%s}}'", name),
			ValidKeys:  strings.Join(allowed, ", "),
			DocSection: "publish",
		}
		if suggestion := closestString(name, allowed); suggestion != "" {
			verr.Message += fmt.Sprintf(" (did you mean '{{%s}}'?)", suggestion)
		}
		result.Errors = append(result.Errors, verr)
	}
}

// extractFieldAndType parses the field and type names out of a strict
// decode error.
//
// Parameters:
//   - errMsg: YAML error message
//
// Returns:
//   - field: the unknown field name
//   - typeName: the config type the field was rejected from
func extractFieldAndType(errMsg string) (field, typeName string) {
	// Error format: "yaml: unmarshal errors:\n  line X: field foo not found in type config.Type"
	parts := strings.Split(errMsg, "field ")
	if len(parts) >= 2 {
		fieldPart := parts[1]
		spaceIdx := strings.Index(fieldPart, " ")
		if spaceIdx > 0 {
			field = fieldPart[:spaceIdx]
		} else {
			field = fieldPart
		}
	}

	// Extract type name
	if idx := strings.Index(errMsg, "in type config."); idx >= 0 {
		typePart := errMsg[idx+len("in type config."):]
		if endIdx := strings.IndexAny(typePart, " \n"); endIdx > 0 {
			typeName = typePart[:endIdx]
		} else {
			typeName = typePart
		}
	}

	return field, typeName
}

// extractLineNumber extracts the line number from a YAML error message.
//
// This uses regex to find "line X:" patterns in YAML error messages.
//
// Parameters:
//   - errMsg: YAML error message
//
// Returns:
//   - int: the line number, or 0 if not found
func extractLineNumber(errMsg string) int {
	// Pattern: "line X:" in the error message
	re := regexp.MustCompile(`line (\d+):`)
	matches := re.FindStringSubmatch(errMsg)
	if len(matches) >= 2 {
		var lineNum int
		_, _ = fmt.Sscanf(matches[1], "%d", &lineNum)
		return lineNum
	}
	return 0
}

// extractExpectedType extracts the expected type from unmarshal errors.
//
// This parses "cannot unmarshal X into Y" error messages to extract
// the expected type Y.
//
// Parameters:
//   - errMsg: YAML unmarshal error message
//
// Returns:
//   - string: the expected type name, or empty string if not found
func extractExpectedType(errMsg string) string {
	// Pattern: "cannot unmarshal !!X into Y"
	if idx := strings.Index(errMsg, "into "); idx >= 0 {
		typePart := errMsg[idx+5:]
		if endIdx := strings.IndexAny(typePart, " \n"); endIdx > 0 {
			return typePart[:endIdx]
		}
		return typePart
	}
	return ""
}

// commonTypos maps common typos to correct field names
var commonTypos = map[string]map[string]string{
	"Config": {
		"sites":       "site",
		"documents":   "document",
		"doc":         "document",
		"outputs":     "output",
		"publishing":  "publish",
		"check":       "checks",
		"working-dir": "working_dir",
		"workingDir":  "working_dir",
	},
	"SiteCfg": {
		"updated-label": "updated_label",
		"updatedLabel":  "updated_label",
		"tag_line":      "tagline",
	},
	"DocumentCfg": {
		"file":    "path",
		"pattern": "patterns",
	},
	"OutputCfg": {
		"file": "page",
		"html": "page",
	},
	"PublishCfg": {
		"command":        "commands",
		"message":        "commit_message",
		"commitMessage":  "commit_message",
		"commit-message": "commit_message",
		"timeout":        "timeout_seconds",
		"timeoutSeconds": "timeout_seconds",
	},
	"ChecksCfg": {
		"command":          "commands",
		"timeout":          "timeout_seconds",
		"timeoutSeconds":   "timeout_seconds",
		"continueOnFail":   "continue_on_fail",
		"continue-on-fail": "continue_on_fail",
	},
}

// suggestSimilarField returns a suggested field name if the input looks like a typo.
//
// It performs the following operations:
//   - Step 1: Checks the known-typo table for the type
//   - Step 2: Tries a kebab-case to snake_case conversion against the schema
//   - Step 3: Falls back to the closest schema field by Jaro-Winkler similarity
//
// Parameters:
//   - field: the unknown field name
//   - typeName: the type name where the field was found
//
// Returns:
//   - string: suggested correct field name, or empty string if no suggestion
func suggestSimilarField(field, typeName string) string {
	// Check common typos for this type
	if typos, ok := commonTypos[typeName]; ok {
		if suggestion, found := typos[field]; found {
			return suggestion
		}
	}

	schema, ok := configSchema[typeName]
	if !ok {
		return ""
	}
	fields := strings.Split(schema.fields, ", ")

	// Check if kebab-case vs snake_case
	if strings.Contains(field, "-") {
		snakeCase := strings.ReplaceAll(field, "-", "_")
		if utils.Contains(fields, snakeCase) {
			return snakeCase
		}
	}

	return closestString(field, fields)
}

// closestString returns the candidate most similar to the input, or empty
// when nothing clears the similarity threshold.
func closestString(input string, candidates []string) string {
	best := ""
	bestSimilarity := 0.0
	for _, candidate := range candidates {
		similarity := matchr.JaroWinkler(input, candidate, false)
		if similarity > bestSimilarity {
			bestSimilarity = similarity
			best = candidate
		}
	}
	if bestSimilarity >= minSuggestionSimilarity {
		return best
	}
	return ""
}

// ValidateConfigFileStrict is like ValidateConfigFile but treats warnings as errors.
//
// This provides the strictest validation mode where even warnings will cause
// validation to fail.
//
// Parameters:
//   - data: YAML configuration data as bytes
//
// Returns:
//   - *ValidationResult: validation result with warnings converted to errors
func ValidateConfigFileStrict(data []byte) *ValidationResult {
	result := ValidateConfigFile(data)
	// Convert warnings to errors
	for _, w := range result.Warnings {
		result.Errors = append(result.Errors, ValidationError{Message: w})
	}
	result.Warnings = nil
	return result
}
