package report

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/unbound-force/assay/internal/taxonomy"
)

// TextOptions controls text rendering.
type TextOptions struct {
	// BaseDir, when set, shortens file names to paths relative to it.
	BaseDir string
}

// WriteText writes the report as human-readable styled text to the
// writer: one table per file, then a per-rule summary. Output uses
// lipgloss for color and formatting when the output is a TTY; degrades
// gracefully for pipes and CI.
func WriteText(w io.Writer, rpt taxonomy.Report, opts TextOptions) error {
	s := DefaultStyles()

	if len(rpt.Findings) == 0 {
		fmt.Fprintln(w, s.Muted.Render("No findings."))
		return nil
	}

	files := groupByFile(rpt.Findings)
	for i, g := range files {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, s.Header.Render(fmt.Sprintf("=== %s ===", displayName(g.file, opts.BaseDir))))
		fmt.Fprintln(w, findingsTable(g.findings, s))
	}

	sum := rpt.Summary
	fmt.Fprintf(w, "\n%s\n", s.Header.Render(fmt.Sprintf(
		"%d finding(s) in %d file(s), %d fixable", sum.Total, len(files), sum.Fixable)))

	var parts []string
	for _, info := range taxonomy.Rules() {
		if c, ok := sum.ByRule[info.Rule]; ok {
			parts = append(parts, s.SeverityStyle(info.Severity).Render(
				fmt.Sprintf("%s: %d", info.Rule, c)))
		}
	}
	if len(parts) > 0 {
		fmt.Fprintf(w, "    Rules: %s\n", strings.Join(parts, ", "))
	}
	return nil
}

type fileFindings struct {
	file     string
	findings []taxonomy.Finding
}

// groupByFile splits findings into runs sharing a file, in input order.
func groupByFile(findings []taxonomy.Finding) []fileFindings {
	var out []fileFindings
	for _, f := range findings {
		if n := len(out); n > 0 && out[n-1].file == f.Location.File {
			out[n-1].findings = append(out[n-1].findings, f)
			continue
		}
		out = append(out, fileFindings{file: f.Location.File, findings: []taxonomy.Finding{f}})
	}
	return out
}

func findingsTable(findings []taxonomy.Finding, s Styles) *table.Table {
	// Budget: 80 cols total. Borders take 4, padding 6 for 3 columns.
	// Available: 70. POS=7, RULE=24, MESSAGE=39.
	const maxMessage = 39
	rows := make([][]string, 0, len(findings))
	sevs := make([]taxonomy.Severity, 0, len(findings))
	for _, f := range findings {
		msg := f.Message
		if f.Fix != nil {
			msg = "* " + msg
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d:%d", f.Location.Line, f.Location.Column),
			string(f.Rule),
			truncate(msg, maxMessage),
		})
		sevs = append(sevs, f.Severity)
	}

	return table.New().
		Width(76). // Leave 4 chars for left indent.
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.Border).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.TableHeader
			}
			// Color the rule column by severity.
			if col == 1 && row >= 0 && row < len(sevs) {
				return s.SeverityStyle(sevs[row])
			}
			return s.TableCell
		}).
		Headers("POS", "RULE", "MESSAGE").
		Rows(rows...)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func displayName(file, base string) string {
	if base == "" {
		return file
	}
	if rel, err := filepath.Rel(base, file); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return file
}

// WriteRules writes the rule catalog as a table.
func WriteRules(w io.Writer, rules []taxonomy.RuleInfo) error {
	s := DefaultStyles()
	rows := make([][]string, 0, len(rules))
	for _, r := range rules {
		fixable := ""
		if r.Fixable {
			fixable = "yes"
		}
		rows = append(rows, []string{string(r.Rule), r.Analyzer, string(r.Severity), fixable, r.Summary})
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.Border).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.TableHeader
			}
			if col == 2 && row >= 0 && row < len(rules) {
				return s.SeverityStyle(rules[row].Severity)
			}
			return s.TableCell
		}).
		Headers("RULE", "ANALYZER", "SEVERITY", "FIX", "SUMMARY").
		Rows(rows...)
	_, err := fmt.Fprintln(w, t)
	return err
}
