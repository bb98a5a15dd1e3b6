package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/its-camilo/AgenticNodes/internal/tui/tuistyles"
)

// StatCard displays a single headline figure with label and optional
// subtitle, used for the plan summary row (total cost, timeline, risk).
type StatCard struct {
	Label       string
	Value       string
	Description string
	Width       int
}

// NewStatCard creates a new stat card.
func NewStatCard(label, value string) *StatCard {
	return &StatCard{
		Label: label,
		Value: value,
		Width: 26,
	}
}

// WithDescription adds a subtitle line.
func (s *StatCard) WithDescription(desc string) *StatCard {
	s.Description = desc
	return s
}

// WithWidth sets the card width.
func (s *StatCard) WithWidth(width int) *StatCard {
	s.Width = width
	return s
}

// Render returns the styled card.
func (s *StatCard) Render() string {
	label := tuistyles.LabelStyle.Render(s.Label)
	value := tuistyles.ValueStyle.Render(s.Value)

	content := label + "\n" + value
	if s.Description != "" {
		content += "\n" + tuistyles.SubtitleStyle.Render(s.Description)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorBorder).
		Padding(0, 1).
		Width(s.Width).
		Render(content)
}
