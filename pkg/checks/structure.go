package checks

import (
	"fmt"
	"os"
	"time"

	"github.com/squatchystacks/stacksmith/pkg/deals"
	"github.com/squatchystacks/stacksmith/pkg/filtering"
	"github.com/squatchystacks/stacksmith/pkg/markup"
)

// VerifyStructure reads a built page back and cross-checks it against
// the catalog it was rendered from.
//
// It performs the following operations:
//   - Step 1: Parse the page into deal groups
//   - Step 2: Check each catalog section against the page: same label,
//     same position, same deal count
//   - Step 3: Check the section and deal totals
//
// A page that fails to parse short-circuits: the section checks cannot
// run without groups, so the result carries the parse failure alone.
//
// Parameters:
//   - pagePath: Path of the generated page file
//   - catalog: The catalog the page was rendered from
//
// Returns:
//   - *Result: Aggregate results with Phase set to PhaseStructure
func VerifyStructure(pagePath string, catalog *deals.Catalog) *Result {
	result := &Result{Phase: PhaseStructure}
	startTime := time.Now()

	groups, parseCheck := parsePage(pagePath)
	result.Checks = append(result.Checks, parseCheck)
	if !parseCheck.Passed {
		result.TotalDuration = time.Since(startTime)
		return result
	}

	expected := catalog.FilterGroups()
	for i, want := range expected {
		result.Checks = append(result.Checks, sectionCheck(groups, i, want))
	}
	result.Checks = append(result.Checks, totalsCheck(groups, expected))

	result.TotalDuration = time.Since(startTime)
	return result
}

// parsePage opens the page and extracts its deal groups as one check.
func parsePage(pagePath string) ([]filtering.Group, CheckResult) {
	startTime := time.Now()
	check := CheckResult{Name: "page parses"}

	f, err := os.Open(pagePath)
	if err != nil {
		check.Duration = time.Since(startTime)
		check.Error = fmt.Errorf("page parses: %w", err)
		return nil, check
	}
	defer f.Close()

	groups, err := markup.ParseGroups(f)
	check.Duration = time.Since(startTime)
	if err != nil {
		check.Error = fmt.Errorf("page parses: %w", err)
		return nil, check
	}

	check.Passed = true
	return groups, check
}

// sectionCheck verifies one catalog section against the parsed page.
//
// The page must carry the section's label at the same position with the
// same number of deals.
func sectionCheck(groups []filtering.Group, i int, want filtering.Group) CheckResult {
	check := CheckResult{Name: fmt.Sprintf("section %q", want.Label)}

	if i >= len(groups) {
		check.Error = fmt.Errorf("section %q: missing from the page", want.Label)
		return check
	}

	got := groups[i]
	if got.Label != want.Label {
		check.Error = fmt.Errorf("section %q: page shows %q at this position", want.Label, got.Label)
		return check
	}
	if len(got.Records) != len(want.Records) {
		check.Error = fmt.Errorf("section %q: page shows %d deals, catalog has %d", want.Label, len(got.Records), len(want.Records))
		return check
	}

	check.Passed = true
	return check
}

// totalsCheck verifies the section count and the overall deal count.
func totalsCheck(groups, expected []filtering.Group) CheckResult {
	check := CheckResult{Name: "deal totals"}

	if len(groups) != len(expected) {
		check.Error = fmt.Errorf("deal totals: page has %d sections, catalog has %d", len(groups), len(expected))
		return check
	}

	got := recordCount(groups)
	want := recordCount(expected)
	if got != want {
		check.Error = fmt.Errorf("deal totals: page shows %d deals, catalog has %d", got, want)
		return check
	}

	check.Passed = true
	return check
}

// recordCount sums the records across groups.
func recordCount(groups []filtering.Group) int {
	total := 0
	for _, g := range groups {
		total += len(g.Records)
	}
	return total
}
