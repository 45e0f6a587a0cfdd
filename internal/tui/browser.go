// Package tui provides an interactive browser over sweep outcomes: arrow
// keys move through the parameter points, the right pane shows the mode
// spectrum at the selected point.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/trapmodes/internal/sweep"
	"github.com/san-kum/trapmodes/internal/viz"
)

type browserModel struct {
	outcomes []sweep.Outcome
	cursor   int
}

// RunBrowser opens the sweep browser; it returns when the user quits.
func RunBrowser(outcomes []sweep.Outcome) error {
	if len(outcomes) == 0 {
		return fmt.Errorf("no outcomes to browse")
	}
	p := tea.NewProgram(browserModel{outcomes: outcomes})
	_, err := p.Run()
	return err
}

func (m browserModel) Init() tea.Cmd {
	return nil
}

func (m browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.outcomes)-1 {
				m.cursor++
			}
		case "home", "g":
			m.cursor = 0
		case "end", "G":
			m.cursor = len(m.outcomes) - 1
		}
	}
	return m, nil
}

func (m browserModel) View() string {
	var list strings.Builder
	list.WriteString(viz.Title.Render("sweep"))
	list.WriteString("\n\n")
	for i, out := range m.outcomes {
		line := out.Name
		if out.Err != nil {
			line += "  ✗"
		}
		if i == m.cursor {
			list.WriteString(viz.Selected.Render("> " + line))
		} else {
			list.WriteString(viz.Subtle.Render("  " + line))
		}
		list.WriteString("\n")
	}

	var detail string
	sel := m.outcomes[m.cursor]
	if sel.Err != nil {
		detail = viz.ErrStyle.Render("failed: ") + sel.Err.Error()
	} else {
		var b strings.Builder
		b.WriteString(viz.RenderSpectrum(sel.Result.Spectrum.Frequencies))
		b.WriteString("\n")
		b.WriteString(viz.Label.Render("positions: "))
		for _, p := range sel.Result.Positions {
			b.WriteString(viz.Value.Render(fmt.Sprintf("%.4g ", p)))
		}
		detail = b.String()
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		viz.Panel.Render(list.String()),
		viz.Panel.Render(detail),
	)
	help := viz.Subtle.Render("↑/↓ select · q quit")
	return body + "\n" + help + "\n"
}
