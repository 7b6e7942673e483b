package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/unbound-force/assay/internal/taxonomy"
)

// keyMap defines keybindings for the interactive TUI.
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Quit     key.Binding
	Help     key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Quit, k.Help}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.Quit, k.Help},
	}
}

var defaultKeyMap = keyMap{
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("^/k", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("v/j", "down")),
	PageUp:   key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "page up")),
	PageDown: key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("pgdn", "page down")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
}

// Styles for the TUI.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")).
			MarginBottom(1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	tuiHeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63"))

	tuiBorderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("63"))

	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	fixStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("40"))
)

// checkModel is the Bubble Tea model for browsing findings.
type checkModel struct {
	report   taxonomy.Report
	viewport viewport.Model
	help     help.Model
	keys     keyMap
	ready    bool
	content  string
}

func newCheckModel(rpt taxonomy.Report) checkModel {
	return checkModel{
		report:  rpt,
		help:    help.New(),
		keys:    defaultKeyMap,
		content: renderCheckContent(rpt),
	}
}

// renderCheckContent renders every finding in full, one table per
// file with the fix description under the table.
func renderCheckContent(rpt taxonomy.Report) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render(
		fmt.Sprintf("assay: %d finding(s), %d fixable",
			len(rpt.Findings), rpt.Summary.Fixable)))
	sb.WriteString("\n\n")

	var file string
	var rows [][]string
	var fixes []string
	flush := func() {
		if len(rows) == 0 {
			return
		}
		sb.WriteString(tuiHeaderStyle.Render(fmt.Sprintf("=== %s ===", file)))
		sb.WriteString("\n")
		sevs := rows
		t := table.New().
			Border(lipgloss.RoundedBorder()).
			BorderStyle(tuiBorderStyle).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return tuiHeaderStyle
				}
				if col == 1 && row >= 0 && row < len(sevs) {
					switch taxonomy.Severity(sevs[row][1]) {
					case taxonomy.SeverityError:
						return errorStyle
					case taxonomy.SeverityWarning:
						return warningStyle
					}
				}
				return lipgloss.NewStyle()
			}).
			Headers("POS", "SEVERITY", "RULE", "MESSAGE").
			Rows(rows...)
		sb.WriteString(t.String())
		sb.WriteString("\n")
		for _, f := range fixes {
			sb.WriteString(fixStyle.Render("    fix: " + f))
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
		rows, fixes = nil, nil
	}

	for _, f := range rpt.Findings {
		if f.Location.File != file {
			flush()
			file = f.Location.File
		}
		pos := fmt.Sprintf("%d:%d", f.Location.Line, f.Location.Column)
		rows = append(rows, []string{pos, string(f.Severity), string(f.Rule), f.Message})
		if f.Fix != nil {
			fixes = append(fixes, fmt.Sprintf("%s %s", pos, f.Fix.Message))
		}
	}
	flush()

	if len(rpt.Findings) == 0 {
		sb.WriteString(statusStyle.Render("No findings."))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (m checkModel) Init() tea.Cmd {
	return nil
}

func (m checkModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		footerHeight := 2
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-footerHeight)
			m.viewport.SetContent(m.content)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - footerHeight
		}

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m checkModel) View() string {
	if !m.ready {
		return "Initializing..."
	}

	footer := statusStyle.Render(
		fmt.Sprintf(" %3.f%% ", m.viewport.ScrollPercent()*100)) +
		" " + m.help.View(m.keys)

	return m.viewport.View() + "\n" + footer
}

// runInteractiveCheck launches the Bubble Tea TUI for browsing
// findings.
func runInteractiveCheck(rpt taxonomy.Report) error {
	p := tea.NewProgram(newCheckModel(rpt), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
