package utils

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/mattn/go-runewidth"
)

// TrimAndSplit splits a string by separator and trims whitespace from each part.
//
// It performs the following operations:
//   - Step 1: Returns empty slice if input is "" or "all"
//   - Step 2: Splits string by separator
//   - Step 3: Trims whitespace from each part
//   - Step 4: Filters out empty strings after trimming
//
// Parameters:
//   - s: The string to split and trim
//   - sep: The separator to split on
//
// Returns:
//   - []string: Slice of trimmed non-empty strings; empty slice if input is "" or "all"
func TrimAndSplit(s string, sep string) []string {
	if s == "" || s == "all" {
		return []string{}
	}

	parts := strings.Split(s, sep)
	result := make([]string, 0, len(parts))

	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

// Contains checks if a string slice contains an item.
//
// Performs case-sensitive exact match comparison.
//
// Parameters:
//   - slice: The slice of strings to search
//   - item: The string to search for
//
// Returns:
//   - bool: true if item is found in slice, false otherwise
func Contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

// ContainsIgnoreCase checks if a string slice contains an item (case-insensitive).
//
// Performs case-insensitive comparison using strings.EqualFold.
//
// Parameters:
//   - slice: The slice of strings to search
//   - item: The string to search for (case-insensitive)
//
// Returns:
//   - bool: true if item is found in slice (case-insensitive), false otherwise
func ContainsIgnoreCase(slice []string, item string) bool {
	for _, s := range slice {
		if strings.EqualFold(s, item) {
			return true
		}
	}
	return false
}

// MatchGlob matches a path against a glob pattern.
//
// It performs the following operations:
//   - Step 1: Checks for ! prefix to determine negation
//   - Step 2: Normalizes path and pattern to use forward slashes
//   - Step 3: Uses regex matching for ** patterns, filepath.Match for simple patterns
//   - Step 4: Negates result if ! prefix was present
//
// Supported patterns:
//   - * matches any sequence of characters within a path segment
//   - ** matches zero or more path segments recursively
//   - ? matches a single character
//   - ! prefix negates the match
//
// Parameters:
//   - path: The file path to match against
//   - pattern: The glob pattern (supports **, *, ?, and ! prefix)
//
// Returns:
//   - bool: true if path matches pattern (or doesn't match if negated), false otherwise
func MatchGlob(path, pattern string) bool {
	negate := false
	if strings.HasPrefix(pattern, "!") {
		negate = true
		pattern = pattern[1:]
	}

	path = filepath.ToSlash(path)
	pattern = filepath.ToSlash(pattern)

	var matched bool

	if strings.Contains(pattern, "**") {
		regexPattern := globToRegex(pattern)
		matched, _ = regexp.MatchString(regexPattern, path)
	} else {
		var err error
		matched, err = filepath.Match(pattern, path)
		if err != nil {
			regexPattern := globToRegex(pattern)
			matched, _ = regexp.MatchString(regexPattern, path)
		}
	}

	if negate {
		return !matched
	}
	return matched
}

// globToRegex converts a glob pattern to a regular expression pattern.
//
// It performs the following conversions:
//   - **/ becomes (?:.*/)?  (optional path segments)
//   - ** becomes .*         (any characters including /)
//   - * becomes [^/]*       (any characters except /)
//   - ? becomes .           (single character)
//   - Other characters are escaped with regexp.QuoteMeta
//
// Parameters:
//   - pattern: The glob pattern to convert
//
// Returns:
//   - string: The equivalent regular expression pattern
func globToRegex(pattern string) string {
	pattern = filepath.ToSlash(pattern)
	var builder strings.Builder
	builder.WriteString("^")

	for i := 0; i < len(pattern); {
		if strings.HasPrefix(pattern[i:], "**/") {
			builder.WriteString("(?:.*/)?")
			i += 3
			continue
		}
		if strings.HasPrefix(pattern[i:], "**") {
			builder.WriteString(".*")
			i += 2
			continue
		}
		switch pattern[i] {
		case '*':
			builder.WriteString("[^/]*")
		case '?':
			builder.WriteString(".")
		default:
			builder.WriteString(regexp.QuoteMeta(string(pattern[i])))
		}
		i++
	}

	builder.WriteString("$")
	return builder.String()
}

// MatchPatterns checks if a path matches any include pattern and no exclude pattern.
//
// It performs the following operations:
//   - Step 1: Checks all exclude patterns first - returns false if any match
//   - Step 2: Checks include patterns - returns true if any match
//   - Step 3: Returns false if no include patterns matched
//
// Parameters:
//   - path: The file path to match against patterns
//   - includes: Glob patterns that should match (empty means no inclusions)
//   - excludes: Glob patterns that should not match (takes priority over includes)
//
// Returns:
//   - bool: true if path matches at least one include pattern and no exclude patterns, false otherwise
func MatchPatterns(path string, includes, excludes []string) bool {
	for _, pattern := range excludes {
		if MatchGlob(path, pattern) {
			return false
		}
	}

	for _, pattern := range includes {
		if MatchGlob(path, pattern) {
			return true
		}
	}

	return false
}

// XMLNode represents a generic XML node for parsing.
//
// This type provides a flexible structure for parsing and traversing arbitrary
// XML documents without requiring predefined schemas.
//
// Fields:
//   - XMLName: The XML element name and namespace
//   - Attrs: Slice of XML attributes on this node
//   - Content: The text content within this node (chardata)
//   - Nodes: Slice of child XML nodes
type XMLNode struct {
	XMLName xml.Name
	Attrs   []xml.Attr `xml:",any,attr"`
	Content string     `xml:",chardata"`
	Nodes   []XMLNode  `xml:",any"`
}

// FindXMLNodes finds nodes at the given path from the root.
//
// It traverses the XML tree following a slash-separated path of element names.
// For example, "body/p/r" would find all r elements nested under p elements
// under the root body element. Namespace prefixes are ignored; only local
// names are compared.
//
// Parameters:
//   - root: The root XMLNode to start searching from
//   - path: Slash-separated path of element names (e.g., "parent/child/grandchild")
//
// Returns:
//   - []*XMLNode: Slice of pointers to matching nodes; empty slice if no matches found
func FindXMLNodes(root *XMLNode, path string) []*XMLNode {
	parts := strings.Split(path, "/")
	return findNodesRecursive([]*XMLNode{root}, parts)
}

// findNodesRecursive recursively traverses XML nodes following a path.
//
// It matches nodes against the current path element, then recursively
// processes remaining path elements on matching nodes.
//
// Parameters:
//   - nodes: The current set of nodes to search within
//   - path: The remaining path elements to match
//
// Returns:
//   - []*XMLNode: Slice of nodes that match the complete path
func findNodesRecursive(nodes []*XMLNode, path []string) []*XMLNode {
	if len(path) == 0 || len(nodes) == 0 {
		return nodes
	}

	var result []*XMLNode
	currentPath := path[0]
	remainingPath := path[1:]

	for _, node := range nodes {
		for i := range node.Nodes {
			if node.Nodes[i].XMLName.Local == currentPath {
				result = append(result, &node.Nodes[i])
			}
		}
	}

	if len(remainingPath) > 0 {
		return findNodesRecursive(result, remainingPath)
	}

	return result
}

// GetXMLNodeText returns the trimmed text content of an XML node.
//
// Parameters:
//   - node: The XMLNode to extract text from (can be nil)
//
// Returns:
//   - string: The trimmed text content of the node; empty string if node is nil
func GetXMLNodeText(node *XMLNode) string {
	if node == nil {
		return ""
	}
	return strings.TrimSpace(node.Content)
}

// GetXMLAttr returns the value of a named attribute from an XML node.
//
// Parameters:
//   - node: The XMLNode to extract attribute from
//   - name: The local name of the attribute to retrieve
//
// Returns:
//   - string: The attribute value if found; empty string if attribute doesn't exist
func GetXMLAttr(node *XMLNode, name string) string {
	for _, attr := range node.Attrs {
		if attr.Name.Local == name {
			return attr.Value
		}
	}
	return ""
}

// FindFilesByPatterns finds files matching any of the given glob patterns.
//
// It performs the following operations:
//   - Step 1: Walks directory tree starting from baseDir
//   - Step 2: Skips common directories (node_modules, vendor, .git, venv, testdata)
//   - Step 3: Matches each file against provided glob patterns
//   - Step 4: Deduplicates matches and returns paths
//
// Parameters:
//   - baseDir: The base directory to search from; uses "." if empty
//   - patterns: Glob patterns to match files against (supports **, *, ?)
//
// Returns:
//   - []string: Slice of file paths matching any pattern; empty slice if none found
//   - error: Returns nil on success; returns error if directory walk fails
func FindFilesByPatterns(baseDir string, patterns []string) ([]string, error) {
	if baseDir == "" {
		baseDir = "."
	}

	seen := make(map[string]struct{})
	var matches []string
	skipDirs := map[string]struct{}{
		"node_modules": {},
		"vendor":       {},
		".git":         {},
		"venv":         {},
		"testdata":     {},
	}

	absBaseDir, _ := filepath.Abs(baseDir)
	err := filepath.Walk(baseDir, func(path string, info os.FileInfo, _ error) error {
		if info.IsDir() {
			// Don't skip the baseDir itself, only subdirectories
			absPath, _ := filepath.Abs(path)
			if absPath != absBaseDir {
				if _, skip := skipDirs[info.Name()]; skip {
					return filepath.SkipDir
				}
			}
			return nil
		}

		relPath := path
		if rel, relErr := filepath.Rel(baseDir, path); relErr == nil {
			relPath = rel
		}
		relPath = filepath.ToSlash(relPath)
		base := filepath.Base(relPath)

		for _, pattern := range patterns {
			if pattern == "" {
				continue
			}
			if MatchGlob(relPath, pattern) || MatchGlob(base, pattern) {
				if _, exists := seen[path]; !exists {
					seen[path] = struct{}{}
					matches = append(matches, path)
				}
				break
			}
		}

		return nil
	})

	return matches, err
}

// NormalizePath normalizes a file path.
//
// It cleans the path by removing redundant separators, resolving . and .. elements,
// and converting to the shortest equivalent path.
//
// Parameters:
//   - path: The file path to normalize
//
// Returns:
//   - string: The normalized file path
func NormalizePath(path string) string {
	return filepath.Clean(path)
}

// DisplayWidth returns the display width of a string, accounting for unicode characters.
//
// It calculates the visual width of a string as it would appear in a terminal,
// correctly handling wide characters (e.g., CJK characters, emojis) that occupy
// more than one character cell.
//
// Parameters:
//   - val: The string to measure
//
// Returns:
//   - int: The display width in character cells (wide characters count as 2)
func DisplayWidth(val string) int {
	return runewidth.StringWidth(val)
}

// ToWidth pads a string to a specific display width.
//
// It performs the following operations:
//   - Step 1: Returns original string if width is <= 0
//   - Step 2: Calculates current display width (accounting for unicode)
//   - Step 3: Returns original string if already at or exceeds target width
//   - Step 4: Pads with spaces to reach target width
//
// Parameters:
//   - val: The string to pad
//   - width: The target display width in character cells (must be > 0 to have effect)
//
// Returns:
//   - string: The padded string, or original if already wide enough or width <= 0
func ToWidth(val string, width int) string {
	if width <= 0 {
		return val
	}
	current := DisplayWidth(val)
	if current >= width {
		return val
	}
	return val + strings.Repeat(" ", width-current)
}

// Max returns the maximum value from a list of integers.
//
// If the slice is empty, returns 0. Otherwise returns the largest integer
// from the provided values.
//
// Parameters:
//   - values: Variable number of integers to compare
//
// Returns:
//   - int: The maximum value from the input, or 0 if no values provided
func Max(values ...int) int {
	m := 0
	for i, v := range values {
		if i == 0 || v > m {
			m = v
		}
	}
	return m
}
