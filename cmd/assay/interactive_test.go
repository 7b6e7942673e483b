package main

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/unbound-force/assay/internal/taxonomy"
)

func TestRenderCheckContent_Empty(t *testing.T) {
	output := renderCheckContent(taxonomy.NewReport(nil, taxonomy.Metadata{}))

	if !strings.Contains(output, "0 finding(s)") {
		t.Errorf("expected output to contain '0 finding(s)', got:\n%s", output)
	}
	if !strings.Contains(output, "No findings.") {
		t.Errorf("expected output to contain 'No findings.', got:\n%s", output)
	}
}

func TestRenderCheckContent_WithFindings(t *testing.T) {
	rpt := taxonomy.NewReport([]taxonomy.Finding{
		{
			Rule:     taxonomy.CaseArgType,
			Severity: taxonomy.SeverityError,
			Location: taxonomy.Location{File: "a_test.go", Line: 12, Column: 3},
			Message:  "100000 does not bind to n of type int16",
		},
		{
			Rule:     taxonomy.SameOnValue,
			Severity: taxonomy.SeverityWarning,
			Location: taxonomy.Location{File: "b_test.go", Line: 4, Column: 17},
			Message:  "Same compares pointers, but v has type point",
			Fix:      &taxonomy.Fix{Message: "Replace Same with Equal"},
		},
	}, taxonomy.Metadata{})

	output := renderCheckContent(rpt)
	for _, want := range []string{
		"2 finding(s), 1 fixable",
		"=== a_test.go ===",
		"=== b_test.go ===",
		"case-arg-type",
		"12:3",
		"fix: 4:17 Replace Same with Equal",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, output)
		}
	}
}

func TestCheckModel_Lifecycle(t *testing.T) {
	m := newCheckModel(taxonomy.NewReport(nil, taxonomy.Metadata{}))
	if m.View() != "Initializing..." {
		t.Errorf("View before sizing = %q", m.View())
	}

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = updated.(checkModel)
	if !m.ready {
		t.Fatal("model should be ready after WindowSizeMsg")
	}
	if !strings.Contains(m.View(), "No findings.") {
		t.Errorf("View should show content, got:\n%s", m.View())
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	m = updated.(checkModel)
	if !m.help.ShowAll {
		t.Error("'?' should toggle full help")
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("'q' should return a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("'q' should quit")
	}
}
