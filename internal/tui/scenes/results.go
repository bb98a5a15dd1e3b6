package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/its-camilo/AgenticNodes/internal/domain"
	"github.com/its-camilo/AgenticNodes/internal/tui/components"
	"github.com/its-camilo/AgenticNodes/internal/tui/tuistyles"
)

// ResultsModel renders the completed plan: summary, discovered suppliers,
// routes, negotiation terms, and the execution outline. It is a read-only
// view over the controller's report.
type ResultsModel struct {
	response *domain.SimulationResponse
	width    int
	height   int
}

// NewResultsModel creates the results scene.
func NewResultsModel() *ResultsModel {
	return &ResultsModel{}
}

// SetResponse installs the completed run's payload.
func (m *ResultsModel) SetResponse(resp *domain.SimulationResponse) {
	m.response = resp
}

// SetSize updates the model dimensions.
func (m *ResultsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// View renders the plan. The negotiation pane is composed in by the
// parent so its state stays with the negotiation controller.
func (m *ResultsModel) View() string {
	if m.response == nil {
		return ""
	}
	report := m.response.Report

	var b strings.Builder
	b.WriteString(tuistyles.TitleStyle.Render("Supply-chain plan"))
	b.WriteString(tuistyles.SubtitleStyle.Render("  trace " + m.response.TraceID))
	b.WriteString("\n\n")

	if m.response.Summary != "" {
		b.WriteString(tuistyles.TableCellStyle.Render(m.response.Summary))
		b.WriteString("\n\n")
	}

	b.WriteString(m.renderStats(report))
	b.WriteString("\n\n")

	if len(report.DiscoveryPaths) > 0 {
		b.WriteString(tuistyles.LabelStyle.Render("Suppliers"))
		b.WriteString("\n")
		b.WriteString(m.renderSuppliers(report.DiscoveryPaths))
		b.WriteString("\n")
	}

	if len(report.Routes) > 0 {
		b.WriteString(tuistyles.LabelStyle.Render("Routes"))
		b.WriteString("\n")
		b.WriteString(m.renderRoutes(report.Routes))
		b.WriteString("\n")
	}

	b.WriteString(tuistyles.LabelStyle.Render("Negotiated terms"))
	b.WriteString("\n")
	b.WriteString(RenderTerms(report.Negotiation))

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func (m *ResultsModel) renderStats(report domain.SimulationReport) string {
	total := components.NewStatCard("Total cost estimate",
		tuistyles.FormatMoney(report.Negotiation.TotalCostEstimate, termsCurrency(report.Negotiation.Terms)))
	timeline := components.NewStatCard("Timeline",
		fmt.Sprintf("%d days", report.ExecutionPlan.TimelineDays))

	risk := string(domain.ClassifyRisk(report.ExecutionPlan.RiskScore))
	riskCard := components.NewStatCard("Plan risk",
		tuistyles.RiskStyle(risk).Render(risk)).
		WithDescription("score " + report.ExecutionPlan.RiskScore.StringFixed(2))

	return lipgloss.JoinHorizontal(lipgloss.Top,
		total.Render(), " ", timeline.Render(), " ", riskCard.Render())
}

func (m *ResultsModel) renderSuppliers(paths []domain.DiscoveryPath) string {
	var cards []string
	for _, p := range paths {
		card := components.NewSupplierCard(p.Identity, p.Material, p.TrustScore).
			WithRationale(p.Rationale)
		cards = append(cards, card.Render())
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

func (m *ResultsModel) renderRoutes(routes []domain.Route) string {
	var b strings.Builder
	for _, r := range routes {
		level := string(domain.ClassifyRisk(r.RiskScore))
		b.WriteString(fmt.Sprintf("%s → %s  %d days  %s",
			r.From, r.To, r.TransitDays,
			tuistyles.RiskStyle(level).Render(level+" risk")))
		if len(r.Ports) > 0 {
			b.WriteString(tuistyles.SubtitleStyle.Render("  via " + strings.Join(r.Ports, ", ")))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// RenderTerms renders the negotiation terms table with its total.
func RenderTerms(negotiation domain.Negotiation) string {
	if len(negotiation.Terms) == 0 {
		return tuistyles.SubtitleStyle.Render("no terms negotiated") + "\n"
	}

	var b strings.Builder
	header := fmt.Sprintf("%-14s %-10s %8s %12s %14s %6s",
		"MATERIAL", "SUPPLIER", "QTY", "UNIT PRICE", "SUBTOTAL", "LEAD")
	b.WriteString(tuistyles.TableHeaderStyle.Render(header))
	b.WriteString("\n")

	for _, t := range negotiation.Terms {
		row := fmt.Sprintf("%-14s %-10s %8d %12s %14s %4dd",
			t.Material, t.SupplierID, t.Qty,
			t.UnitPriceEst.StringFixed(2),
			t.Subtotal.StringFixed(2),
			t.LeadTimeDays)
		b.WriteString(tuistyles.TableCellStyle.Render(row))
		b.WriteString("\n")
	}

	b.WriteString(tuistyles.ValueStyle.Render(
		"total " + tuistyles.FormatMoney(negotiation.TotalCostEstimate, termsCurrency(negotiation.Terms))))
	b.WriteString("\n")
	return b.String()
}

func termsCurrency(terms []domain.NegotiationTerm) string {
	for _, t := range terms {
		if t.Currency != "" {
			return t.Currency
		}
	}
	return "USD"
}
