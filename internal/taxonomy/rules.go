package taxonomy

import (
	"cmp"
	"slices"
)

// RuleInfo describes a rule for `assay rules` and the report schema.
type RuleInfo struct {
	Rule     Rule     `json:"rule"`
	Analyzer string   `json:"analyzer"`
	Severity Severity `json:"severity"`
	Fixable  bool     `json:"fixable"`
	Summary  string   `json:"summary"`
}

var ruleInfo = map[Rule]RuleInfo{
	// casearg
	CaseArgType:     {Analyzer: "casearg", Severity: SeverityError, Summary: "Case argument cannot bind to the test parameter"},
	CaseArgCount:    {Analyzer: "casearg", Severity: SeverityError, Summary: "Case argument count does not match the test function"},
	CaseReturnsType: {Analyzer: "casearg", Severity: SeverityError, Summary: "Returns value cannot bind to the test result"},
	CaseReturnsVoid: {Analyzer: "casearg", Severity: SeverityError, Summary: "Returns used with a test function without one result"},
	ValuesArgType:   {Analyzer: "casearg", Severity: SeverityError, Summary: "Values entry cannot bind to the test parameter"},
	ValuesCount:     {Analyzer: "casearg", Severity: SeverityError, Summary: "RunValues source count does not match the test function"},

	// samefix
	SameOnValue: {Analyzer: "samefix", Severity: SeverityWarning, Fixable: true, Summary: "Same or NotSame applied to a non-pointer value"},

	// collarg
	CollectionArg:          {Analyzer: "collarg", Severity: SeverityError, Summary: "collection assertion given a non-collection"},
	CollectionElemMismatch: {Analyzer: "collarg", Severity: SeverityWarning, Summary: "compared collections have different element types"},
	CollectionItemMismatch: {Analyzer: "collarg", Severity: SeverityWarning, Summary: "item cannot be an element of the collection"},
}

// SeverityOf returns the severity of rule r.
func SeverityOf(r Rule) Severity {
	info, ok := ruleInfo[r]
	if !ok {
		return SeverityWarning // unknown rules default to the milder severity
	}
	return info.Severity
}

// Lookup returns the catalog entry for rule r.
func Lookup(r Rule) (RuleInfo, bool) {
	info, ok := ruleInfo[r]
	info.Rule = r
	return info, ok
}

// Rules returns every known rule, sorted by analyzer then rule.
func Rules() []RuleInfo {
	out := make([]RuleInfo, 0, len(ruleInfo))
	for r, info := range ruleInfo {
		info.Rule = r
		out = append(out, info)
	}
	slices.SortFunc(out, func(a, b RuleInfo) int {
		return cmp.Or(cmp.Compare(a.Analyzer, b.Analyzer), cmp.Compare(a.Rule, b.Rule))
	})
	return out
}
