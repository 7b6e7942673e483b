// Package taxonomy defines the rule catalog, finding structures, and
// stable ID generation for assay results.
package taxonomy

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"
)

// Rule identifies the check that produced a finding.
type Rule string

// Paramtest binding rules.
const (
	CaseArgType     Rule = "case-arg-type"
	CaseArgCount    Rule = "case-arg-count"
	CaseReturnsType Rule = "case-returns-type"
	CaseReturnsVoid Rule = "case-returns-void"
	ValuesArgType   Rule = "values-arg-type"
	ValuesCount     Rule = "values-count"
)

// Testify assertion rules.
const (
	SameOnValue            Rule = "same-on-value"
	CollectionArg          Rule = "collection-arg"
	CollectionElemMismatch Rule = "collection-elem-mismatch"
	CollectionItemMismatch Rule = "collection-item-mismatch"
)

// Severity ranks how certainly a finding breaks the test.
type Severity string

// Severity constants.
const (
	// SeverityError findings fail the test every time it runs.
	SeverityError Severity = "error"

	// SeverityWarning findings make an assertion vacuous or always
	// failing for the values involved.
	SeverityWarning Severity = "warning"
)

// Location is a source position.
type Location struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

// String returns the position as file:line:col.
func (l Location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// Edit replaces the bytes [Offset, End) of File with NewText.
type Edit struct {
	File    string `json:"file"`
	Offset  int    `json:"offset"`
	End     int    `json:"end"`
	NewText string `json:"new_text"`
}

// Fix is an automatic rewrite offered for a finding.
type Fix struct {
	// Message describes the rewrite (e.g., "Replace Same with Equal").
	Message string `json:"message"`

	// Edits are the text replacements that make up the fix.
	Edits []Edit `json:"edits"`
}

// Finding is a single diagnostic reported by an analyzer.
type Finding struct {
	// ID is a stable identifier for diffing across runs.
	// Generated from sha256(rule+location+message).
	ID string `json:"id"`

	// Rule is the check that produced the finding.
	Rule Rule `json:"rule"`

	// Severity is the rule's severity.
	Severity Severity `json:"severity"`

	// Analyzer is the name of the reporting analyzer.
	Analyzer string `json:"analyzer"`

	// Package is the import path of the analyzed package.
	Package string `json:"package"`

	// Location is the start of the offending expression.
	Location Location `json:"location"`

	// Message is a human-readable explanation.
	Message string `json:"message"`

	// Fix is the suggested rewrite. Nil when none is offered.
	Fix *Fix `json:"fix,omitempty"`
}

// Metadata holds analysis run metadata.
type Metadata struct {
	AssayVersion string        `json:"assay_version"`
	GoVersion    string        `json:"go_version"`
	Packages     int           `json:"packages"`
	Timestamp    time.Time     `json:"-"`
	Duration     time.Duration `json:"-"`
	Warnings     []string      `json:"warnings"`
}

// MarshalJSON customizes JSON encoding to use duration_ms and
// ISO 8601 timestamp.
func (m Metadata) MarshalJSON() ([]byte, error) {
	type Alias Metadata
	ts := ""
	if !m.Timestamp.IsZero() {
		ts = m.Timestamp.UTC().Format(time.RFC3339)
	}
	if m.Warnings == nil {
		m.Warnings = []string{}
	}
	return json.Marshal(&struct {
		Alias
		DurationMS int64  `json:"duration_ms"`
		Timestamp  string `json:"timestamp,omitempty"`
	}{
		Alias:      Alias(m),
		DurationMS: m.Duration.Milliseconds(),
		Timestamp:  ts,
	})
}

// Summary aggregates the findings of a run.
type Summary struct {
	Total      int              `json:"total"`
	Fixable    int              `json:"fixable"`
	ByRule     map[Rule]int     `json:"by_rule"`
	BySeverity map[Severity]int `json:"by_severity"`
}

// Summarize counts findings by rule and severity.
func Summarize(findings []Finding) Summary {
	s := Summary{
		Total:      len(findings),
		ByRule:     make(map[Rule]int),
		BySeverity: make(map[Severity]int),
	}
	for _, f := range findings {
		s.ByRule[f.Rule]++
		s.BySeverity[f.Severity]++
		if f.Fix != nil {
			s.Fixable++
		}
	}
	return s
}

// Report is the complete output of one run.
type Report struct {
	Findings []Finding `json:"findings"`
	Summary  Summary   `json:"summary"`
	Metadata Metadata  `json:"metadata"`
}

// NewReport builds a report over findings.
func NewReport(findings []Finding, meta Metadata) Report {
	if findings == nil {
		findings = []Finding{}
	}
	return Report{
		Findings: findings,
		Summary:  Summarize(findings),
		Metadata: meta,
	}
}

// GenerateID produces a stable, deterministic ID for a finding based
// on its rule, position and message. The ID is a sha256 hash truncated
// to 8 hex characters, prefixed with "as-".
func GenerateID(rule Rule, loc Location, message string) string {
	input := fmt.Sprintf("%s:%s:%s", rule, loc, message)
	hash := sha256.Sum256([]byte(input))
	return fmt.Sprintf("as-%x", hash[:4])
}
