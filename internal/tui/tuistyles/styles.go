// Package tuistyles holds the shared palette and lipgloss styles so that
// scenes and components can use them without importing the tui package.
package tuistyles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// Color palette
var (
	ColorPrimary    = lipgloss.Color("39")  // blue
	ColorSecondary  = lipgloss.Color("170") // purple
	ColorAccent     = lipgloss.Color("214") // amber
	ColorSuccess    = lipgloss.Color("42")  // green
	ColorDanger     = lipgloss.Color("196") // red
	ColorForeground = lipgloss.Color("252")
	ColorMuted      = lipgloss.Color("241")
	ColorBorder     = lipgloss.Color("238")
)

// Base styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorForeground).
			Background(lipgloss.Color("236")).
			Padding(0, 1)

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(ColorAccent)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorDanger)

	ToastStyle = lipgloss.NewStyle().
			Foreground(ColorDanger).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorDanger).
			Padding(0, 1)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	ValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorForeground)

	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorPrimary).
				BorderStyle(lipgloss.NormalBorder()).
				BorderBottom(true).
				BorderForeground(ColorBorder)

	TableCellStyle = lipgloss.NewStyle().
			Foreground(ColorForeground)
)

// Phase track chip styles
var (
	StepCompletedStyle = lipgloss.NewStyle().
				Foreground(ColorSuccess)

	StepActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("231")).
			Background(ColorPrimary).
			Padding(0, 1)

	StepPendingStyle = lipgloss.NewStyle().
				Foreground(ColorMuted)
)

// Chat bubble styles
var (
	ChatUserStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("231")).
			Background(ColorPrimary).
			Padding(0, 1)

	ChatAgentStyle = lipgloss.NewStyle().
			Foreground(ColorForeground).
			Background(lipgloss.Color("237")).
			Padding(0, 1)
)

// RiskStyle returns the style for a risk level string (low/medium/high).
func RiskStyle(level string) lipgloss.Style {
	switch level {
	case "high":
		return lipgloss.NewStyle().Foreground(ColorDanger)
	case "medium":
		return lipgloss.NewStyle().Foreground(ColorAccent)
	default:
		return lipgloss.NewStyle().Foreground(ColorSuccess)
	}
}

// FormatMoney renders a decimal amount with its currency code.
func FormatMoney(amount decimal.Decimal, currency string) string {
	if currency == "" {
		currency = "USD"
	}
	return amount.StringFixed(2) + " " + currency
}
