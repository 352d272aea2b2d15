package deals

import (
	"fmt"

	"github.com/squatchystacks/stacksmith/pkg/warnings"
)

// Anomaly is one paragraph the parser could not place, or a suspicious
// catalog shape noticed after parsing.
type Anomaly struct {
	Section   string `json:"section" yaml:"section"`
	Paragraph int    `json:"paragraph" yaml:"paragraph"` // zero-based; -1 when not tied to one
	Text      string `json:"text" yaml:"text"`
	Reason    string `json:"reason" yaml:"reason"`
}

// String formats the anomaly without its section prefix.
func (a Anomaly) String() string {
	if a.Paragraph >= 0 {
		return fmt.Sprintf("paragraph %d: %s: %q", a.Paragraph, a.Reason, a.Text)
	}
	return fmt.Sprintf("%s: %q", a.Reason, a.Text)
}

// ParseLog collects anomalies encountered while parsing a document.
//
// Every Add also writes an immediate warning through the warnings package,
// so callers that only care about stderr output get it for free; callers
// that defer or structure the output read the collected anomalies instead.
type ParseLog struct {
	anomalies []Anomaly
}

// NewParseLog returns an empty parse log.
func NewParseLog() *ParseLog {
	return &ParseLog{}
}

// Add records an anomaly and emits it as a document warning.
//
// Parameters:
//   - section: Document section heading the anomaly belongs to
//   - paragraph: Zero-based paragraph index, or -1 when not tied to one
//   - text: The offending text
//   - reason: Why the parser skipped or flagged it
func (l *ParseLog) Add(section string, paragraph int, text, reason string) {
	a := Anomaly{
		Section:   section,
		Paragraph: paragraph,
		Text:      text,
		Reason:    reason,
	}
	l.anomalies = append(l.anomalies, a)
	warnings.Documentf(section, "%s", a.String())
}

// Anomalies returns the recorded anomalies in order.
func (l *ParseLog) Anomalies() []Anomaly {
	return l.anomalies
}

// Len returns the number of recorded anomalies.
func (l *ParseLog) Len() int {
	return len(l.anomalies)
}

// HasAnomalies reports whether anything was recorded.
func (l *ParseLog) HasAnomalies() bool {
	return len(l.anomalies) > 0
}

// CountForSection returns how many anomalies belong to a section heading.
func (l *ParseLog) CountForSection(section string) int {
	count := 0
	for _, a := range l.anomalies {
		if a.Section == section {
			count++
		}
	}
	return count
}

// Messages returns the anomalies formatted with their section prefix.
func (l *ParseLog) Messages() []string {
	messages := make([]string, 0, len(l.anomalies))
	for _, a := range l.anomalies {
		messages = append(messages, fmt.Sprintf("%s: %s", a.Section, a.String()))
	}
	return messages
}
