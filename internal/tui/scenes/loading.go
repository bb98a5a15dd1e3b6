package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/its-camilo/AgenticNodes/internal/domain"
	"github.com/its-camilo/AgenticNodes/internal/tui/components"
	"github.com/its-camilo/AgenticNodes/internal/tui/tuistyles"
)

// How many of the most recent route evaluations stay on screen.
const routeFeedLines = 8

// LoadingModel renders run progress: the phase track, the live phase
// message, and the streamed route-evaluation feed.
type LoadingModel struct {
	spinner      spinner.Model
	currentPhase string
	phaseMessage string
	routes       []domain.RouteEvalNote
	width        int
	height       int
}

// NewLoadingModel creates the loading scene.
func NewLoadingModel() *LoadingModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(tuistyles.ColorPrimary)
	return &LoadingModel{
		spinner:      s,
		phaseMessage: "Connecting...",
	}
}

// Tick returns the spinner animation command.
func (m *LoadingModel) Tick() tea.Cmd {
	return m.spinner.Tick
}

// Reset clears all per-run progress state.
func (m *LoadingModel) Reset() {
	m.currentPhase = ""
	m.phaseMessage = "Connecting..."
	m.routes = nil
}

// SetPhase records the latest phase notification. Unknown phase names are
// kept and displayed verbatim.
func (m *LoadingModel) SetPhase(phase, message string) {
	m.currentPhase = phase
	m.phaseMessage = message
}

// AppendRoute appends one route-evaluation note to the feed.
func (m *LoadingModel) AppendRoute(note domain.RouteEvalNote) {
	m.routes = append(m.routes, note)
}

// CurrentPhase returns the most recently notified phase name.
func (m *LoadingModel) CurrentPhase() string { return m.currentPhase }

// Routes returns the append-only route-evaluation notes for this run.
func (m *LoadingModel) Routes() []domain.RouteEvalNote { return m.routes }

// SetSize updates the model dimensions.
func (m *LoadingModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update advances the spinner.
func (m *LoadingModel) Update(msg tea.Msg) (*LoadingModel, tea.Cmd) {
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

// View renders the loading scene.
func (m *LoadingModel) View() string {
	var b strings.Builder

	b.WriteString(tuistyles.TitleStyle.Render("Simulation in progress"))
	b.WriteString("\n")
	b.WriteString(tuistyles.SubtitleStyle.Render("This may take a few minutes..."))
	b.WriteString("\n\n")

	message := m.phaseMessage
	if message == "" {
		message = "Connecting..."
	}
	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(tuistyles.ValueStyle.Render(message))
	if _, known := domain.PhaseIndex(m.currentPhase); !known && m.currentPhase != "" {
		// Off-script phase from the server: show it rather than hide it.
		b.WriteString(tuistyles.SubtitleStyle.Render("  [" + m.currentPhase + "]"))
	}
	b.WriteString("\n\n")

	b.WriteString(components.NewPhaseTrack(m.currentPhase).Render())
	b.WriteString("\n\n")

	if len(m.routes) > 0 {
		b.WriteString(tuistyles.LabelStyle.Render("Routes under evaluation"))
		b.WriteString("\n")
		start := 0
		if len(m.routes) > routeFeedLines {
			start = len(m.routes) - routeFeedLines
		}
		for _, r := range m.routes[start:] {
			b.WriteString(formatRouteEval(r))
			b.WriteString("\n")
		}
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func formatRouteEval(r domain.RouteEvalNote) string {
	line := fmt.Sprintf("(%.1f, %.1f) → (%.1f, %.1f)",
		r.From.Lat, r.From.Lng, r.To.Lat, r.To.Lng)
	if r.Label != "" {
		line += "  " + r.Label
	}
	if r.Status != "" {
		line += tuistyles.SubtitleStyle.Render("  [" + r.Status + "]")
	}
	return tuistyles.TableCellStyle.Render(line)
}
