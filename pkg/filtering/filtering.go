package filtering

import "strings"

// Record is one deal entry as the page presents it.
//
// Fields:
//   - Text: The full visible content of the entry, used for query matching
//     (case-insensitive substring)
//   - Category: A single tag from a small fixed set, or empty when the entry
//     carries no category
//
// Records are immutable once built; this package only reads them.
type Record struct {
	// Text is the full visible content used for matching.
	Text string

	// Category is the record's tag, or empty for none.
	Category string
}

// Group is a labeled section of records rendered together.
//
// Group visibility is always derived from member visibility and is never
// stored independently.
type Group struct {
	// Label is the section heading.
	Label string

	// Records are the ordered member records.
	Records []Record
}

// State holds the two live filter inputs.
//
// The zero value is the default state: empty query, no active category.
// State is a value type - transitions return new values rather than
// mutating in place.
//
// Invariant: at most one category is active at a time.
type State struct {
	// Query is the free-text search input.
	Query string

	// ActiveCategory is the selected category tag, or empty for none.
	ActiveCategory string
}

// WithQuery returns a copy of the state with the query replaced.
//
// Parameters:
//   - query: The new free-text query (may be empty)
//
// Returns:
//   - State: New state with the query set and the category unchanged
func (s State) WithQuery(query string) State {
	s.Query = query
	return s
}

// ToggleCategory returns a copy of the state with the category toggled.
//
// Selecting the currently active category clears it; selecting any other
// category replaces the active one (only one can be active at a time).
// The query is never affected.
//
// Parameters:
//   - category: The category tag being toggled
//
// Returns:
//   - State: New state with the category cleared or replaced
func (s State) ToggleCategory(category string) State {
	if s.ActiveCategory == category {
		s.ActiveCategory = ""
	} else {
		s.ActiveCategory = category
	}
	return s
}

// Clear returns the default state: empty query, no active category.
//
// Returns:
//   - State: The zero state
func (s State) Clear() State {
	return State{}
}

// IsZero reports whether the state filters nothing.
//
// A whitespace-only query counts as empty because matching trims it.
//
// Returns:
//   - bool: true if the query is empty after trimming and no category is active
func (s State) IsZero() bool {
	return strings.TrimSpace(s.Query) == "" && s.ActiveCategory == ""
}

// GroupResult holds the derived visibility of one group.
//
// Fields:
//   - Label: The group's section heading, echoed for convenience
//   - Visible: true iff at least one member record is visible
//   - VisibleCount: The number of visible member records
type GroupResult struct {
	// Label is the group's heading.
	Label string

	// Visible is true when at least one member is visible.
	Visible bool

	// VisibleCount is the number of visible members.
	VisibleCount int
}

// Result is the complete visibility mapping for one (groups, state) pair.
//
// Record visibility is indexed positionally over the flattened record order:
// all records of the first group, then all records of the second, and so on.
// Group visibility, counts, and AnyVisible are derived strictly from that
// boolean mapping.
type Result struct {
	// Visible holds per-record visibility in flattened group order.
	Visible []bool

	// Groups holds per-group derived visibility and counts.
	Groups []GroupResult

	// AnyVisible is true when at least one record is visible.
	AnyVisible bool
}

// Matches reports whether a single record is visible under the given state.
//
// The matching rule:
//   - matchesQuery: the trimmed query is empty, or the lowercased record text
//     contains the lowercased trimmed query (substring, not tokenized -
//     partial-word and cross-word matches count)
//   - matchesCategory: no category is active, or the record's category equals
//     the active one (a record with no category only matches when no
//     category is active)
//
// The record is visible iff both hold.
//
// Parameters:
//   - record: The record to test
//   - state: The current filter state
//
// Returns:
//   - bool: true if the record is visible
func Matches(record Record, state State) bool {
	query := strings.ToLower(strings.TrimSpace(state.Query))
	if query != "" && !strings.Contains(strings.ToLower(record.Text), query) {
		return false
	}
	if state.ActiveCategory != "" && record.Category != state.ActiveCategory {
		return false
	}
	return true
}

// Compute derives the full visibility result for the given groups and state.
//
// It performs the following operations:
//   - Step 1: Normalizes the query once (trim + lowercase)
//   - Step 2: Evaluates every record against the matching rule in order
//   - Step 3: Derives group visibility and counts from the record booleans
//   - Step 4: Derives AnyVisible from the same booleans
//
// Compute is pure, deterministic, and total: any combination of groups and
// state is well-formed input, and calling it twice with the same arguments
// yields identical results.
//
// Parameters:
//   - groups: The ordered section groups with their member records
//   - state: The current filter state
//
// Returns:
//   - Result: Per-record visibility in flattened order, per-group visibility
//     and counts, and the global AnyVisible flag
func Compute(groups []Group, state State) Result {
	total := 0
	for _, g := range groups {
		total += len(g.Records)
	}

	result := Result{
		Visible: make([]bool, 0, total),
		Groups:  make([]GroupResult, 0, len(groups)),
	}

	for _, g := range groups {
		gr := GroupResult{Label: g.Label}
		for _, record := range g.Records {
			visible := Matches(record, state)
			result.Visible = append(result.Visible, visible)
			if visible {
				gr.VisibleCount++
			}
		}
		gr.Visible = gr.VisibleCount > 0
		if gr.Visible {
			result.AnyVisible = true
		}
		result.Groups = append(result.Groups, gr)
	}

	return result
}

// TotalVisible returns the number of visible records across all groups.
//
// Returns:
//   - int: Count of true entries in the record visibility mapping
func (r Result) TotalVisible() int {
	count := 0
	for _, v := range r.Visible {
		if v {
			count++
		}
	}
	return count
}
