package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/its-camilo/AgenticNodes/internal/domain"
	"github.com/its-camilo/AgenticNodes/internal/tui/tuimsg"
	"github.com/its-camilo/AgenticNodes/internal/tui/tuistyles"
)

// Input form fields, in focus order.
const (
	fieldIntent = iota
	fieldLocation
	fieldDisruptions
	fieldCount
)

// InputModel is the procurement intent form.
type InputModel struct {
	intent      textinput.Model
	location    textinput.Model
	disruptions bool
	focus       int
	errText     string
	width       int
	height      int
}

// NewInputModel creates the intent form with the configured default buyer
// location pre-filled.
func NewInputModel(defaultLocation string, defaultDisruptions bool) *InputModel {
	intent := textinput.New()
	intent.Placeholder = "e.g., source 50,000 battery cells for EV production"
	intent.CharLimit = domain.MaxIntentLen
	intent.Width = 60
	intent.Focus()

	location := textinput.New()
	location.Placeholder = domain.DefaultBuyerLocation
	location.SetValue(defaultLocation)
	location.CharLimit = 120
	location.Width = 40

	return &InputModel{
		intent:      intent,
		location:    location,
		disruptions: defaultDisruptions,
	}
}

// SetSize updates the model dimensions.
func (m *InputModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetError shows a validation message under the form.
func (m *InputModel) SetError(text string) {
	m.errText = text
}

// Update handles messages for the input scene.
func (m *InputModel) Update(msg tea.Msg) (*InputModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.updateInputs(msg)
	}

	switch keyMsg.String() {
	case "tab", "down":
		m.setFocus((m.focus + 1) % fieldCount)
		return m, nil

	case "shift+tab", "up":
		m.setFocus((m.focus + fieldCount - 1) % fieldCount)
		return m, nil

	case "enter":
		m.errText = ""
		submit := tuimsg.SubmitIntentMsg{
			Intent:              m.intent.Value(),
			BuyerLocation:       m.location.Value(),
			SimulateDisruptions: m.disruptions,
		}
		return m, func() tea.Msg { return submit }

	case " ":
		if m.focus == fieldDisruptions {
			m.disruptions = !m.disruptions
			return m, nil
		}
	}

	return m.updateInputs(msg)
}

func (m *InputModel) updateInputs(msg tea.Msg) (*InputModel, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.intent, cmd = m.intent.Update(msg)
	cmds = append(cmds, cmd)
	m.location, cmd = m.location.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m *InputModel) setFocus(focus int) {
	m.focus = focus
	m.intent.Blur()
	m.location.Blur()
	switch focus {
	case fieldIntent:
		m.intent.Focus()
	case fieldLocation:
		m.location.Focus()
	}
}

// View renders the form.
func (m *InputModel) View() string {
	var b strings.Builder

	b.WriteString(tuistyles.TitleStyle.Render("New procurement intent"))
	b.WriteString("\n\n")

	b.WriteString(m.fieldLabel(fieldIntent, "What do you need to source?"))
	b.WriteString("\n")
	b.WriteString(m.intent.View())
	b.WriteString("\n")
	b.WriteString(tuistyles.SubtitleStyle.Render(
		fmt.Sprintf("%d/%d", len(strings.TrimSpace(m.intent.Value())), domain.MaxIntentLen)))
	b.WriteString("\n\n")

	b.WriteString(m.fieldLabel(fieldLocation, "Buyer location"))
	b.WriteString("\n")
	b.WriteString(m.location.View())
	b.WriteString("\n\n")

	checkbox := "[ ]"
	if m.disruptions {
		checkbox = "[x]"
	}
	b.WriteString(m.fieldLabel(fieldDisruptions, checkbox+" Simulate supply disruptions"))
	b.WriteString("\n\n")

	if m.errText != "" {
		b.WriteString(tuistyles.ErrorStyle.Render(m.errText))
		b.WriteString("\n\n")
	}

	b.WriteString(tuistyles.HelpDescStyle.Render("tab: next field • space: toggle • enter: start simulation"))

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func (m *InputModel) fieldLabel(field int, text string) string {
	if m.focus == field {
		return tuistyles.HelpKeyStyle.Render("▸ " + text)
	}
	return tuistyles.LabelStyle.Render("  " + text)
}
