package display

import (
	"strings"

	"github.com/antzucaro/matchr"
)

// minSuggestionSimilarity is the Jaro-Winkler score a candidate must reach
// before it is offered as a "did you mean" suggestion.
const minSuggestionSimilarity = 0.80

// ClosestMatch returns the candidate most similar to the input, or empty
// when nothing clears the similarity threshold.
//
// Matching is case-insensitive. Used to suggest a search term when a query
// matched no deals.
//
// Parameters:
//   - input: The term the user typed
//   - candidates: Known terms to compare against
//
// Returns:
//   - string: The closest candidate, or "" when none is similar enough
//
// Example:
//
//	display.ClosestMatch("dwan", []string{"dawn", "gain", "tide"}) // Returns "dawn"
func ClosestMatch(input string, candidates []string) string {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return ""
	}

	best := ""
	bestSimilarity := 0.0
	for _, candidate := range candidates {
		similarity := matchr.JaroWinkler(input, strings.ToLower(candidate), false)
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

// SuggestionCandidates extracts candidate terms from deal record texts.
//
// It performs the following operations:
//   - Splits each record text into words
//   - Lowercases and strips surrounding punctuation from each word
//   - Keeps words of three or more letters
//   - Deduplicates while preserving first-appearance order
//
// Parameters:
//   - texts: Record texts to mine for terms
//
// Returns:
//   - []string: Unique candidate terms
func SuggestionCandidates(texts []string) []string {
	var candidates []string
	seen := make(map[string]bool)

	for _, text := range texts {
		for _, word := range strings.Fields(text) {
			word = strings.ToLower(strings.Trim(word, ".,:;!?()'\""))
			if len(word) < 3 || !isAlphabetic(word) {
				continue
			}
			if !seen[word] {
				seen[word] = true
				candidates = append(candidates, word)
			}
		}
	}

	return candidates
}

// isAlphabetic reports whether a word consists only of letters.
func isAlphabetic(word string) bool {
	for _, r := range word {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return len(word) > 0
}
