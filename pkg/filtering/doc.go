// Package filtering provides the visibility computation for the deals page.
//
// This package is the behavioral core shared by the generated page script and
// the search command: given the ordered deal records and the current filter
// state (free-text query plus at most one active category), it computes which
// records are visible, which section groups are visible, per-group visible
// counts, and whether anything is visible at all.
//
// Basic usage:
//
//	state := filtering.State{}.WithQuery("milk")
//	result := filtering.Compute(groups, state)
//	if !result.AnyVisible {
//	    // show the no-results placeholder
//	}
//
// Category toggling mirrors the page's chip buttons - selecting the active
// category a second time clears it:
//
//	state = state.ToggleCategory("dairy") // select
//	state = state.ToggleCategory("dairy") // back to no category
//
// All functions are pure: State is a value type, transitions return new
// values, and Compute has no side effects. Group and record visibility,
// counts, and the AnyVisible flag are all derived from the same boolean
// mapping, so they can never disagree with each other.
package filtering
