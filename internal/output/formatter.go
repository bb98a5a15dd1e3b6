// Package output renders a completed simulation for the headless CLI.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/its-camilo/AgenticNodes/internal/domain"
)

// Formatter renders a simulation response in one output format.
type Formatter interface {
	Name() string
	Format(w io.Writer, resp *domain.SimulationResponse) error
}

// ForFormat returns the formatter for a --format value.
func ForFormat(format string) (Formatter, error) {
	switch format {
	case "console", "":
		return ConsoleFormatter{}, nil
	case "json":
		return JSONFormatter{}, nil
	case "csv":
		return CSVFormatter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// ConsoleFormatter writes a human-readable plan report.
type ConsoleFormatter struct{}

func (ConsoleFormatter) Name() string { return "console" }

func (ConsoleFormatter) Format(w io.Writer, resp *domain.SimulationResponse) error {
	report := resp.Report

	rule := strings.Repeat("=", 72)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "SUPPLY-CHAIN SIMULATION REPORT")
	fmt.Fprintf(w, "trace %s\n", resp.TraceID)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w)

	if resp.Summary != "" {
		fmt.Fprintln(w, resp.Summary)
		fmt.Fprintln(w)
	}

	if len(report.DiscoveryPaths) > 0 {
		fmt.Fprintln(w, "SUPPLIERS")
		fmt.Fprintln(w, strings.Repeat("-", 72))
		for _, p := range report.DiscoveryPaths {
			fmt.Fprintf(w, "%-24s %-14s trust %s\n", p.Identity, p.Material, p.TrustScore.StringFixed(2))
			if p.Rationale != "" {
				fmt.Fprintf(w, "  %s\n", p.Rationale)
			}
		}
		fmt.Fprintln(w)
	}

	if len(report.Routes) > 0 {
		fmt.Fprintln(w, "ROUTES")
		fmt.Fprintln(w, strings.Repeat("-", 72))
		for _, r := range report.Routes {
			fmt.Fprintf(w, "%s -> %s  %d days  %s risk (%s)\n",
				r.From, r.To, r.TransitDays,
				domain.ClassifyRisk(r.RiskScore), r.RiskScore.StringFixed(2))
			if len(r.Ports) > 0 {
				fmt.Fprintf(w, "  via %s\n", strings.Join(r.Ports, ", "))
			}
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "NEGOTIATED TERMS")
	fmt.Fprintln(w, strings.Repeat("-", 72))
	if len(report.Negotiation.Terms) == 0 {
		fmt.Fprintln(w, "(none)")
	} else {
		fmt.Fprintf(w, "%-14s %-12s %10s %12s %14s %6s\n",
			"MATERIAL", "SUPPLIER", "QTY", "UNIT PRICE", "SUBTOTAL", "LEAD")
		for _, t := range report.Negotiation.Terms {
			fmt.Fprintf(w, "%-14s %-12s %10d %12s %14s %5dd\n",
				t.Material, t.SupplierID, t.Qty,
				t.UnitPriceEst.StringFixed(2), t.Subtotal.StringFixed(2), t.LeadTimeDays)
		}
	}
	fmt.Fprintf(w, "TOTAL COST ESTIMATE: %s\n", report.Negotiation.TotalCostEstimate.StringFixed(2))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "EXECUTION PLAN")
	fmt.Fprintln(w, strings.Repeat("-", 72))
	fmt.Fprintf(w, "timeline %d days, %s risk (%s)\n",
		report.ExecutionPlan.TimelineDays,
		domain.ClassifyRisk(report.ExecutionPlan.RiskScore),
		report.ExecutionPlan.RiskScore.StringFixed(2))
	return nil
}

// JSONFormatter writes the response as indented JSON.
type JSONFormatter struct{}

func (JSONFormatter) Name() string { return "json" }

func (JSONFormatter) Format(w io.Writer, resp *domain.SimulationResponse) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}
