package cmd

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/squatchystacks/stacksmith/pkg/config"
	"github.com/squatchystacks/stacksmith/pkg/output"
	"github.com/squatchystacks/stacksmith/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// E2E tests simulating the weekly refresh workflow: a fresh document lands
// in the site directory, the page is rebuilt, spot-checked with search, and
// staged for publish. Commands run through the real cobra dispatch via
// rootCmd.SetArgs, the same way the shipped binary is driven.

// TestE2E_WeeklyRefresh tests the full scan -> build -> search -> publish
// chain in a single directory.
//
// It verifies:
//   - scan reports the parsed catalog before anything is written
//   - build writes the page next to the document
//   - search reads the built page and emits machine-readable JSON
//   - a replacement document flows through rebuild into search results
//   - publish --dry-run previews the git steps without executing them
func TestE2E_WeeklyRefresh(t *testing.T) {
	restoreScan := saveScanFlags()
	restoreBuild := saveBuildFlags()
	restoreSearch := saveSearchFlags()
	restorePublish := savePublishFlags()
	oldExit := exitFunc
	defer func() {
		restoreScan()
		restoreBuild()
		restoreSearch()
		restorePublish()
		exitFunc = oldExit
		rootCmd.SetArgs(nil)
	}()

	exitCode := -1
	exitFunc = func(code int) { exitCode = code }

	tmpDir := t.TempDir()
	docPath := filepath.Join(tmpDir, config.DefaultDocumentPath)
	pagePath := filepath.Join(tmpDir, config.DefaultPagePath)
	testutil.WriteDocx(t, docPath, testutil.SampleDocumentParagraphs())

	t.Run("scan reports the incoming document", func(t *testing.T) {
		exitCode = -1
		resetScanFlags(tmpDir)
		rootCmd.SetArgs([]string{"scan", "-d", tmpDir})

		stdout := testutil.CaptureStdout(t, func() { Execute() })

		require.Equal(t, -1, exitCode, "scan should succeed: %s", stdout)
		assert.Contains(t, stdout, "Total deals: 5")
		assert.Contains(t, stdout, "Anomalies: 0")
	})

	t.Run("build writes the page", func(t *testing.T) {
		exitCode = -1
		resetBuildFlags(tmpDir)
		rootCmd.SetArgs([]string{"build", "-d", tmpDir})

		stdout := testutil.CaptureStdout(t, func() { Execute() })

		require.Equal(t, -1, exitCode, "build should succeed: %s", stdout)
		assert.Contains(t, stdout, "Wrote "+pagePath)
		require.FileExists(t, pagePath)
	})

	t.Run("search reads the built page as json", func(t *testing.T) {
		exitCode = -1
		resetSearchFlags(tmpDir)
		rootCmd.SetArgs([]string{"search", "-d", tmpDir, "-q", "gain", "-o", "json"})

		stdout := testutil.CaptureStdout(t, func() { Execute() })

		require.Equal(t, -1, exitCode, "search should succeed: %s", stdout)

		var result output.SearchResult
		require.NoError(t, json.Unmarshal([]byte(stdout), &result))
		assert.Equal(t, "gain", result.Summary.Query)
		assert.Equal(t, "page", result.Summary.Source)
		assert.Equal(t, 5, result.Summary.TotalRecords)
		assert.Equal(t, 1, result.Summary.VisibleRecords)
		assert.True(t, result.Summary.AnyVisible)
		require.Len(t, result.Records, 1)
		assert.Contains(t, result.Records[0].Deal, "Gain Flings")
	})

	t.Run("rebuild picks up the replacement document", func(t *testing.T) {
		exitCode = -1
		paragraphs := append(testutil.SampleDocumentParagraphs(),
			"- Folgers Coffee — $2 off — Any bag — Expires 9/15")
		testutil.WriteDocx(t, docPath, paragraphs)

		resetBuildFlags(tmpDir)
		rootCmd.SetArgs([]string{"build", "-d", tmpDir})
		buildOut := testutil.CaptureStdout(t, func() { Execute() })
		require.Equal(t, -1, exitCode, "rebuild should succeed: %s", buildOut)
		assert.Contains(t, buildOut, "(6 deals)")

		resetSearchFlags(tmpDir)
		rootCmd.SetArgs([]string{"search", "-d", tmpDir, "-q", "folgers", "-o", "json"})
		stdout := testutil.CaptureStdout(t, func() { Execute() })
		require.Equal(t, -1, exitCode, "search should succeed: %s", stdout)

		var result output.SearchResult
		require.NoError(t, json.Unmarshal([]byte(stdout), &result))
		assert.Equal(t, 6, result.Summary.TotalRecords)
		assert.Equal(t, 1, result.Summary.VisibleRecords)
	})

	t.Run("publish dry run previews the git steps", func(t *testing.T) {
		requireGit(t)
		exitCode = -1
		mockPublishProbes(t, healthyRepoProbes)
		calls := mockPublishExecutor(t, func(string) ([]byte, error) {
			return nil, fmt.Errorf("dry run must not execute steps")
		})

		resetPublishFlags(tmpDir)
		rootCmd.SetArgs([]string{"publish", "-d", tmpDir, "--dry-run"})
		stdout := testutil.CaptureStdout(t, func() { Execute() })

		require.Equal(t, -1, exitCode, "dry run should succeed: %s", stdout)
		assert.Contains(t, stdout, "Dry run - commands that would execute:")
		assert.Contains(t, stdout, "[4/4] push")
		assert.Contains(t, stdout, "git push origin main")
		assert.Empty(t, *calls)
	})
}
