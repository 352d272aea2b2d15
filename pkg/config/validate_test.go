package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestValidateConfigFile tests YAML-level validation of config files.
//
// It verifies:
//   - Valid configs pass
//   - Unknown fields are reported with suggestions and schema hints
//   - Type mismatches and syntax errors are classified
func TestValidateConfigFile(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		data := []byte(`site:
  name: Deal Den
document:
  path: weekly.docx
output:
  page: index.html
publish:
  remote: origin
  branch: main
  commit_message: "Update deals {{date}}"
`)
		result := ValidateConfigFile(data)
		assert.False(t, result.HasErrors(), result.ErrorMessages())
		assert.Empty(t, result.Warnings)
	})

	t.Run("unknown top-level field", func(t *testing.T) {
		result := ValidateConfigFile([]byte("sites:\n  name: Deal Den\n"))
		require.True(t, result.HasErrors())
		assert.Contains(t, result.Errors[0].Message, "unknown field 'sites'")
		assert.Contains(t, result.Errors[0].Message, "did you mean 'site'")
		assert.Contains(t, result.Errors[0].ValidKeys, "document")
		assert.Equal(t, "configuration", result.Errors[0].DocSection)
	})

	t.Run("unknown nested field with typo suggestion", func(t *testing.T) {
		result := ValidateConfigFile([]byte("publish:\n  message: hello\n"))
		require.True(t, result.HasErrors())
		assert.Contains(t, result.Errors[0].Message, "unknown field 'message'")
		assert.Contains(t, result.Errors[0].Message, "did you mean 'commit_message'")
		assert.Contains(t, result.Errors[0].ValidKeys, "remote")
	})

	t.Run("kebab-case field suggestion", func(t *testing.T) {
		result := ValidateConfigFile([]byte("publish:\n  timeout-seconds: 10\n"))
		require.True(t, result.HasErrors())
		assert.Contains(t, result.Errors[0].Message, "did you mean 'timeout_seconds'")
	})

	t.Run("type mismatch", func(t *testing.T) {
		result := ValidateConfigFile([]byte("site:\n  name:\n    - one\n    - two\n"))
		require.True(t, result.HasErrors())
		assert.Contains(t, result.Errors[0].Message, "cannot unmarshal")
	})

	t.Run("syntax error", func(t *testing.T) {
		result := ValidateConfigFile([]byte("site: ["))
		require.True(t, result.HasErrors())
		assert.Contains(t, result.Errors[0].Message, "YAML syntax error")
	})

	t.Run("line number in unknown field error", func(t *testing.T) {
		result := ValidateConfigFile([]byte("site:\n  name: Deal Den\nbogus: true\n"))
		require.True(t, result.HasErrors())
		assert.Contains(t, result.Errors[0].Message, "line 3")
	})
}

// TestValidateConfigStruct tests structural validation of loaded configs.
//
// It verifies:
//   - Non-docx document paths produce a warning
//   - Empty patterns, directory outputs, and whitespace in git names fail
//   - Negative timeouts fail
func TestValidateConfigStruct(t *testing.T) {
	t.Run("non-docx document path warns", func(t *testing.T) {
		cfg := &Config{Document: DocumentCfg{Path: "deals.pdf"}}
		result := cfg.Validate()
		assert.False(t, result.HasErrors())
		require.Len(t, result.Warnings, 1)
		assert.Contains(t, result.Warnings[0], "does not end in .docx")
	})

	t.Run("empty pattern fails", func(t *testing.T) {
		cfg := &Config{Document: DocumentCfg{Patterns: []string{"*.docx", "!"}}}
		result := cfg.Validate()
		require.True(t, result.HasErrors())
		assert.Equal(t, "document.patterns", result.Errors[0].Field)
	})

	t.Run("directory output fails", func(t *testing.T) {
		cfg := &Config{Output: OutputCfg{Page: "public/"}}
		result := cfg.Validate()
		require.True(t, result.HasErrors())
		assert.Equal(t, "output.page", result.Errors[0].Field)
		assert.Contains(t, result.Errors[0].Message, "is a directory")
	})

	t.Run("whitespace in remote fails", func(t *testing.T) {
		cfg := &Config{Publish: &PublishCfg{Remote: "ori gin"}}
		result := cfg.Validate()
		require.True(t, result.HasErrors())
		assert.Equal(t, "publish.remote", result.Errors[0].Field)
	})

	t.Run("negative timeouts fail", func(t *testing.T) {
		cfg := &Config{
			Publish: &PublishCfg{TimeoutSeconds: -1},
			Checks:  &ChecksCfg{Commands: "tidy {{page}}", TimeoutSeconds: -5},
		}
		result := cfg.Validate()
		require.Len(t, result.Errors, 2)
		assert.Equal(t, "publish.timeout_seconds", result.Errors[0].Field)
		assert.Equal(t, "checks.timeout_seconds", result.Errors[1].Field)
	})

	t.Run("empty checks commands warn", func(t *testing.T) {
		cfg := &Config{Checks: &ChecksCfg{}}
		result := cfg.Validate()
		assert.False(t, result.HasErrors())
		require.Len(t, result.Warnings, 1)
		assert.Contains(t, result.Warnings[0], "commands is empty")
	})

	t.Run("valid full config passes", func(t *testing.T) {
		cfg := &Config{
			Site:     SiteCfg{Name: "Deal Den"},
			Document: DocumentCfg{Path: "weekly.docx", Patterns: []string{"*.docx", "!~$*.docx"}},
			Output:   OutputCfg{Page: "index.html"},
			Publish: &PublishCfg{
				Remote:        "origin",
				Branch:        "main",
				CommitMessage: "Update deals {{date}} ({{total}} deals)",
			},
			Checks: &ChecksCfg{Commands: "grep -q deals {{page}}"},
		}
		result := cfg.Validate()
		assert.False(t, result.HasErrors(), result.ErrorMessages())
		assert.Empty(t, result.Warnings)
	})
}

// TestValidatePlaceholders tests template placeholder validation.
//
// It verifies:
//   - Allowed placeholders pass
//   - Unknown placeholders fail with the valid set and a suggestion
//   - Placeholders allowed in commands are rejected in commit messages
func TestValidatePlaceholders(t *testing.T) {
	t.Run("allowed placeholders pass", func(t *testing.T) {
		cfg := &Config{Publish: &PublishCfg{
			CommitMessage: "Deals {{date}}: {{total}} items",
			Commands:      "git push {{remote}} {{branch}}\nrsync {{page}} host:/www/",
		}}
		result := cfg.Validate()
		assert.False(t, result.HasErrors(), result.ErrorMessages())
	})

	t.Run("unknown placeholder with suggestion", func(t *testing.T) {
		cfg := &Config{Publish: &PublishCfg{CommitMessage: "Deals {{dat}}"}}
		result := cfg.Validate()
		require.True(t, result.HasErrors())
		assert.Contains(t, result.Errors[0].Message, "unknown placeholder '{{dat}}'")
		assert.Contains(t, result.Errors[0].Message, "did you mean '{{date}}'")
		assert.Equal(t, "date, total", result.Errors[0].ValidKeys)
	})

	t.Run("command placeholder rejected in commit message", func(t *testing.T) {
		cfg := &Config{Publish: &PublishCfg{CommitMessage: "Deals for {{branch}}"}}
		result := cfg.Validate()
		require.True(t, result.HasErrors())
		assert.Contains(t, result.Errors[0].Message, "unknown placeholder '{{branch}}'")
	})

	t.Run("checks allow only page", func(t *testing.T) {
		cfg := &Config{Checks: &ChecksCfg{Commands: "check {{page}} {{total}}"}}
		result := cfg.Validate()
		require.True(t, result.HasErrors())
		assert.Contains(t, result.Errors[0].Message, "unknown placeholder '{{total}}'")
		assert.Equal(t, "page", result.Errors[0].ValidKeys)
	})
}

// TestClosestString tests the similarity-based suggestion helper.
//
// It verifies:
//   - Near matches clear the threshold
//   - Distant strings return no suggestion
func TestClosestString(t *testing.T) {
	candidates := []string{"remote", "branch", "commit_message", "timeout_seconds"}

	assert.Equal(t, "remote", closestString("remot", candidates))
	assert.Equal(t, "branch", closestString("brnach", candidates))
	assert.Equal(t, "", closestString("zzz", candidates))
	assert.Equal(t, "", closestString("x", nil))
}

// TestValidationErrorFormatting tests error message formatting.
//
// It verifies:
//   - Field-prefixed and bare messages
//   - Verbose output includes schema hints and doc references
//   - Result aggregation formats a header plus bullet list
func TestValidationErrorFormatting(t *testing.T) {
	t.Run("error with field", func(t *testing.T) {
		e := ValidationError{Field: "output.page", Message: "bad value"}
		assert.Equal(t, "output.page: bad value", e.Error())
	})

	t.Run("error without field", func(t *testing.T) {
		e := ValidationError{Message: "bad value"}
		assert.Equal(t, "bad value", e.Error())
	})

	t.Run("verbose error", func(t *testing.T) {
		e := ValidationError{
			Field:      "output.page",
			Message:    "bad value",
			Expected:   "file path",
			ValidKeys:  "page",
			DocSection: "output",
		}
		verbose := e.VerboseError()
		assert.Contains(t, verbose, "output.page: bad value")
		assert.Contains(t, verbose, "Expected: file path")
		assert.Contains(t, verbose, "Valid keys: page")
		assert.Contains(t, verbose, "docs/configuration.md#output")
	})

	t.Run("aggregated messages", func(t *testing.T) {
		result := &ValidationResult{Errors: []ValidationError{
			{Message: "first"},
			{Field: "site.name", Message: "second"},
		}}
		msgs := result.ErrorMessages()
		assert.Contains(t, msgs, "Configuration validation failed:")
		assert.Contains(t, msgs, "  - first")
		assert.Contains(t, msgs, "  - site.name: second")
	})

	t.Run("no errors yields empty strings", func(t *testing.T) {
		result := &ValidationResult{}
		assert.Empty(t, result.ErrorMessages())
		assert.Empty(t, result.VerboseErrorMessages())
	})
}

// TestValidateConfigFileStrict tests strict mode where warnings fail.
//
// It verifies:
//   - Warnings are converted to errors
//   - The warning list is cleared
func TestValidateConfigFileStrict(t *testing.T) {
	data := []byte("document:\n  path: deals.pdf\n")

	normal := ValidateConfigFile(data)
	assert.False(t, normal.HasErrors())
	assert.Len(t, normal.Warnings, 1)

	strict := ValidateConfigFileStrict(data)
	assert.True(t, strict.HasErrors())
	assert.Empty(t, strict.Warnings)
	assert.Contains(t, strict.Errors[0].Message, "does not end in .docx")
}
