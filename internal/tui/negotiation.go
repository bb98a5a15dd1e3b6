package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/its-camilo/AgenticNodes/internal/domain"
	"github.com/its-camilo/AgenticNodes/internal/tui/tuistyles"
)

// How many chat turns stay on screen.
const chatWindowTurns = 10

// NegotiationModel is the in-results negotiation controller: message
// history, counterpart filters, and the at-most-one-outstanding-send
// policy. The server is authoritative for the transcript; local echo is
// provisional until the reply lands.
type NegotiationModel struct {
	traceID   string
	suppliers []domain.SupplierRef
	ports     []domain.Port

	// 0 means "any"; otherwise index+1 into the slice above.
	supplierIdx int
	portIdx     int

	history     []domain.ChatTurn
	pendingSend bool
	errText     string
	notice      string

	input textinput.Model
	width int
}

// NewNegotiationModel creates the negotiation controller for a completed
// run. Counterpart choices come from the final report, never from the
// mid-run preview.
func NewNegotiationModel(traceID string, report *domain.SimulationReport) *NegotiationModel {
	ti := textinput.New()
	ti.Placeholder = "Type your negotiation message..."
	ti.CharLimit = domain.MaxMessageLen
	ti.Width = 60

	m := &NegotiationModel{
		traceID: traceID,
		ports:   report.WorldContext.AllPorts(),
		input:   ti,
	}
	for _, p := range report.DiscoveryPaths {
		m.suppliers = append(m.suppliers, domain.SupplierRef{
			ID:       p.Identity,
			Name:     p.Identity,
			Material: p.Material,
		})
	}
	return m
}

// TraceID returns the run this negotiation belongs to.
func (m *NegotiationModel) TraceID() string { return m.traceID }

// History returns the current transcript.
func (m *NegotiationModel) History() []domain.ChatTurn { return m.history }

// Pending reports whether a send is outstanding.
func (m *NegotiationModel) Pending() bool { return m.pendingSend }

// Focus gives keyboard focus to the chat input.
func (m *NegotiationModel) Focus() tea.Cmd { return m.input.Focus() }

// Blur removes keyboard focus from the chat input.
func (m *NegotiationModel) Blur() { m.input.Blur() }

// Focused reports whether the chat input has keyboard focus.
func (m *NegotiationModel) Focused() bool { return m.input.Focused() }

// SetWidth updates the pane width.
func (m *NegotiationModel) SetWidth(width int) { m.width = width }

// NoteExternalUpdate records an informational terms-changed notice. It
// never mutates terms itself.
func (m *NegotiationModel) NoteExternalUpdate() {
	m.notice = "Terms were updated by a concurrent negotiation."
}

// SupplierFilter returns the active supplier id, empty for "any".
func (m *NegotiationModel) SupplierFilter() string {
	if m.supplierIdx == 0 || m.supplierIdx > len(m.suppliers) {
		return ""
	}
	return m.suppliers[m.supplierIdx-1].ID
}

// PortFilter returns the active port name, empty for "any".
func (m *NegotiationModel) PortFilter() string {
	if m.portIdx == 0 || m.portIdx > len(m.ports) {
		return ""
	}
	return m.ports[m.portIdx-1].Name
}

// CycleSupplier advances the supplier filter, wrapping through "any".
func (m *NegotiationModel) CycleSupplier() {
	m.supplierIdx = (m.supplierIdx + 1) % (len(m.suppliers) + 1)
}

// CyclePort advances the port filter, wrapping through "any".
func (m *NegotiationModel) CyclePort() {
	m.portIdx = (m.portIdx + 1) % (len(m.ports) + 1)
}

// UpdateInput forwards a message to the chat text input.
func (m *NegotiationModel) UpdateInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

// StartSend validates the drafted message and, if it passes, records the
// optimistic user turn and marks the send pending. ok is false when
// nothing should be sent: empty draft, over-long draft, or a send already
// in flight — in all three cases no network call happens and history is
// untouched.
func (m *NegotiationModel) StartSend() (req domain.NegotiateRequest, ok bool) {
	if m.pendingSend {
		return domain.NegotiateRequest{}, false
	}
	req, err := domain.NewNegotiateRequest(m.input.Value(), m.SupplierFilter(), m.PortFilter())
	if err != nil {
		// Silently ignore an empty draft; surface anything else inline.
		if !isEmptyDraft(m.input.Value()) {
			m.errText = err.Error()
		}
		return domain.NegotiateRequest{}, false
	}

	m.history = append(m.history, domain.ChatTurn{Role: domain.RoleUser, Content: req.Message})
	m.pendingSend = true
	m.errText = ""
	m.input.SetValue("")
	return req, true
}

// ApplyReply settles the outstanding send. On success the server's
// transcript replaces the local one wholesale; on failure the optimistic
// turn is rolled back and the error is scoped to this pane.
func (m *NegotiationModel) ApplyReply(msg NegotiationReplyMsg) {
	m.pendingSend = false
	if msg.Err != nil {
		if n := len(m.history); n > 0 && m.history[n-1].Role == domain.RoleUser {
			m.history = m.history[:n-1]
		}
		m.errText = msg.Err.Error()
		return
	}
	m.history = msg.Response.NegotiationHistory
	m.errText = ""
	m.notice = ""
}

// View renders the chat pane.
func (m *NegotiationModel) View() string {
	var b strings.Builder

	b.WriteString(tuistyles.TitleStyle.Render("Negotiate with AI agent"))
	b.WriteString("\n")

	if len(m.history) == 0 {
		b.WriteString(tuistyles.SubtitleStyle.Render("Start a negotiation to adjust terms, pricing, or lead times."))
		b.WriteString("\n")
	}
	start := 0
	if len(m.history) > chatWindowTurns {
		start = len(m.history) - chatWindowTurns
	}
	for _, turn := range m.history[start:] {
		if turn.Role == domain.RoleUser {
			b.WriteString(tuistyles.ChatUserStyle.Render("you: " + turn.Content))
		} else {
			b.WriteString(tuistyles.ChatAgentStyle.Render("agent: " + turn.Content))
		}
		b.WriteString("\n")
	}
	if m.pendingSend {
		b.WriteString(tuistyles.SubtitleStyle.Render("agent is thinking..."))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(tuistyles.LabelStyle.Render("supplier: "))
	b.WriteString(filterLabel(m.SupplierFilter()))
	b.WriteString(tuistyles.LabelStyle.Render("  port: "))
	b.WriteString(filterLabel(m.PortFilter()))
	b.WriteString("\n")

	b.WriteString(m.input.View())
	b.WriteString("\n")

	if m.errText != "" {
		b.WriteString(tuistyles.ErrorStyle.Render(m.errText))
		b.WriteString("\n")
	}
	if m.notice != "" {
		b.WriteString(tuistyles.SubtitleStyle.Render(m.notice))
		b.WriteString("\n")
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorBorder).
		Padding(0, 1).
		Render(b.String())
}

func filterLabel(value string) string {
	if value == "" {
		return tuistyles.SubtitleStyle.Render("any")
	}
	return tuistyles.ValueStyle.Render(value)
}

func isEmptyDraft(value string) bool {
	return strings.TrimSpace(value) == ""
}
