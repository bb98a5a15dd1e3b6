package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/its-camilo/AgenticNodes/internal/tui/tuistyles"
)

// SupplierCard displays one discovered supplier with its trust assessment.
type SupplierCard struct {
	Name       string
	Material   string
	TrustScore decimal.Decimal
	Rationale  string
	Width      int
}

// NewSupplierCard creates a card for a discovered supplier.
func NewSupplierCard(name, material string, trustScore decimal.Decimal) *SupplierCard {
	return &SupplierCard{
		Name:       name,
		Material:   material,
		TrustScore: trustScore,
		Width:      50,
	}
}

// WithRationale adds the server's trust rationale.
func (s *SupplierCard) WithRationale(rationale string) *SupplierCard {
	s.Rationale = rationale
	return s
}

// WithWidth sets the card width.
func (s *SupplierCard) WithWidth(width int) *SupplierCard {
	s.Width = width
	return s
}

// trustBar renders a ten-segment bar for a 0..1 trust score.
func (s *SupplierCard) trustBar() string {
	filled := int(s.TrustScore.Mul(decimal.NewFromInt(10)).Round(0).IntPart())
	if filled < 0 {
		filled = 0
	}
	if filled > 10 {
		filled = 10
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", 10-filled)
	style := tuistyles.StepCompletedStyle
	if filled < 5 {
		style = tuistyles.ErrorStyle
	}
	return style.Render(bar)
}

// Render returns the styled supplier card.
func (s *SupplierCard) Render() string {
	var content strings.Builder

	title := lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary)
	content.WriteString(title.Render(s.Name))
	content.WriteString(tuistyles.SubtitleStyle.Render("  (" + s.Material + ")"))
	content.WriteString("\n")

	content.WriteString(fmt.Sprintf("%s %s trust",
		s.trustBar(),
		s.TrustScore.StringFixed(2)))

	if s.Rationale != "" {
		content.WriteString("\n")
		content.WriteString(tuistyles.SubtitleStyle.Render(s.Rationale))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorBorder).
		Padding(0, 1).
		Width(s.Width).
		Render(content.String())
}
