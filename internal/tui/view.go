package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/its-camilo/AgenticNodes/internal/tui/tuistyles"
)

// View renders the current scene with the title and status bars.
func (m Model) View() string {
	var content string
	switch m.scene {
	case SceneInput:
		content = m.renderInput()
	case SceneLoading:
		content = m.loading.View()
	case SceneResults:
		content = m.renderResults()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderTitleBar(),
		content,
		m.renderStatusBar(),
	)
}

func (m Model) renderInput() string {
	view := m.input.View()
	if m.toast != "" {
		view = lipgloss.JoinVertical(lipgloss.Left,
			tuistyles.ToastStyle.Render("Simulation error: "+m.toast),
			view,
		)
	}
	return view
}

func (m Model) renderResults() string {
	sections := []string{m.results.View()}

	if m.awaitingNegotiationDecision {
		banner := "The agents reached preliminary terms. Negotiate further?" +
			"\n" + tuistyles.HelpKeyStyle.Render("enter") + tuistyles.HelpDescStyle.Render(" negotiate  ") +
			tuistyles.HelpKeyStyle.Render("s") + tuistyles.HelpDescStyle.Render(" keep terms as-is")
		if p := m.readyPreview; p != nil && len(p.Suppliers) > 0 {
			names := make([]string, 0, len(p.Suppliers))
			for _, s := range p.Suppliers {
				names = append(names, s.Name)
			}
			banner += "\n" + tuistyles.SubtitleStyle.Render("counterparts: "+strings.Join(names, ", "))
		}
		sections = append(sections, lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(tuistyles.ColorAccent).
			Padding(0, 1).
			Render(banner))
	}

	if m.negotiation != nil {
		sections = append(sections, m.negotiation.View())
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderTitleBar() string {
	title := tuistyles.TitleStyle.Render("AgenticNodes — supply-chain simulation")
	crumb := tuistyles.SubtitleStyle.Render(" / " + m.scene.String())
	return lipgloss.NewStyle().Padding(0, 1).Render(title + crumb)
}

func (m Model) renderStatusBar() string {
	var help string
	switch m.scene {
	case SceneInput:
		help = "enter: start • ctrl+c: quit"
	case SceneLoading:
		help = "running… • ctrl+c: quit"
	case SceneResults:
		if m.negotiation != nil && m.negotiation.Focused() {
			help = "enter: send • ctrl+s/ctrl+p: filters • esc: leave chat"
		} else {
			help = "i: chat • n: new run • q: quit"
		}
	}
	return tuistyles.StatusBarStyle.Width(m.width).Render(help)
}
