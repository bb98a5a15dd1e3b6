package domain

import (
	"github.com/shopspring/decimal"
)

// Coordinate is a geographic position as served by the simulation API.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Port is a named shipping port inside the generated world.
type Port struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

// Country groups the ports of one country in the world context.
type Country struct {
	Name  string `json:"name"`
	Ports []Port `json:"ports"`
}

// WorldContext describes the simulated world the run was planned in.
type WorldContext struct {
	BuyerCoordinates Coordinate `json:"buyer_coordinates"`
	Countries        []Country  `json:"countries"`
}

// DiscoveryPath is one discovered supplier with its trust assessment.
type DiscoveryPath struct {
	Identity   string          `json:"identity"`
	Material   string          `json:"material"`
	TrustScore decimal.Decimal `json:"trust_score"`
	Rationale  string          `json:"rationale"`
	Lat        *float64        `json:"lat,omitempty"`
	Lng        *float64        `json:"lng,omitempty"`
}

// Route is a planned shipping route between two parties.
type Route struct {
	From        string          `json:"from"`
	To          string          `json:"to"`
	Ports       []string        `json:"ports"`
	TransitDays int             `json:"transit_days"`
	RiskScore   decimal.Decimal `json:"risk_score"`
}

// RiskLevel buckets a route risk score for display.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

var (
	riskMediumFloor = decimal.NewFromFloat(0.3)
	riskHighFloor   = decimal.NewFromFloat(0.6)
)

// ClassifyRisk maps a 0..1 risk score onto the display buckets.
func ClassifyRisk(score decimal.Decimal) RiskLevel {
	switch {
	case score.GreaterThanOrEqual(riskHighFloor):
		return RiskHigh
	case score.GreaterThanOrEqual(riskMediumFloor):
		return RiskMedium
	default:
		return RiskLow
	}
}

// NegotiationTerm is one negotiated line item. Money fields are decimal;
// the server owns pricing, the client only re-sums subtotals.
type NegotiationTerm struct {
	Material     string          `json:"material"`
	SupplierID   string          `json:"supplier_id"`
	Qty          int64           `json:"qty"`
	UnitPriceEst decimal.Decimal `json:"unit_price_est"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	Currency     string          `json:"currency"`
	LeadTimeDays int             `json:"lead_time_days"`
}

// Negotiation holds the current terms and their total.
type Negotiation struct {
	Terms             []NegotiationTerm `json:"terms"`
	TotalCostEstimate decimal.Decimal   `json:"total_cost_estimate"`
}

// TotalCost sums the subtotals of a term set. The stored
// total_cost_estimate is always replaced with this sum whenever terms are
// replaced, so the two can never drift apart.
func TotalCost(terms []NegotiationTerm) decimal.Decimal {
	total := decimal.Zero
	for _, t := range terms {
		total = total.Add(t.Subtotal)
	}
	return total
}

// ExecutionPlan is the server's projected fulfilment outline.
type ExecutionPlan struct {
	TimelineDays int             `json:"timeline_days"`
	RiskScore    decimal.Decimal `json:"risk_score"`
}

// BuyerPin marks the buyer location on the map display data.
type BuyerPin struct {
	ID    string  `json:"id"`
	Type  string  `json:"type"`
	Label string  `json:"label"`
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
}

// PortAgent is an agent stationed at a port in the map display data.
type PortAgent struct {
	AgentID            string `json:"agent_id"`
	Role               string `json:"role"`
	SupplierID         string `json:"supplier_id"`
	Status             string `json:"status"`
	NegotiationSummary string `json:"negotiation_summary"`
	ETADays            int    `json:"eta_days"`
}

// PortConditions carries port-level advisories.
type PortConditions struct {
	Issues    []string `json:"issues"`
	RiskLevel string   `json:"risk_level"`
}

// PortPin marks a port on the map display data.
type PortPin struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	Name       string         `json:"name"`
	Country    string         `json:"country"`
	Lat        float64        `json:"lat"`
	Lng        float64        `json:"lng"`
	Agents     []PortAgent    `json:"agents"`
	Conditions PortConditions `json:"conditions"`
}

// SupplierPin marks a supplier on the map display data, with the
// negotiated commercial snapshot.
type SupplierPin struct {
	ID                 string          `json:"id"`
	Type               string          `json:"type"`
	Name               string          `json:"name"`
	Country            string          `json:"country"`
	Material           string          `json:"material"`
	Lat                float64         `json:"lat"`
	Lng                float64         `json:"lng"`
	TrustScore         decimal.Decimal `json:"trust_score"`
	TrustRationale     []string        `json:"trust_rationale"`
	ComplianceFlags    []string        `json:"compliance_flags"`
	BasePrice          decimal.Decimal `json:"base_price"`
	Currency           string          `json:"currency"`
	LeadTimeDays       int             `json:"lead_time_days"`
	Certifications     []string        `json:"certifications"`
	NegotiatedPrice    decimal.Decimal `json:"negotiated_price"`
	NegotiatedQty      int64           `json:"negotiated_qty"`
	NegotiatedSubtotal decimal.Decimal `json:"negotiated_subtotal"`
}

// Waypoint is an intermediate stop on a route line.
type Waypoint struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

// TravelAgent is the in-transit agent for a route line.
type TravelAgent struct {
	AgentID     string `json:"agent_id"`
	Status      string `json:"status"`
	ETADays     int    `json:"eta_days"`
	MeetingPort string `json:"meeting_port"`
}

// RoutePortAgent is a port-side agent attached to a route line.
type RoutePortAgent struct {
	AgentID            string `json:"agent_id"`
	Port               string `json:"port"`
	Status             string `json:"status"`
	NegotiationSummary string `json:"negotiation_summary"`
}

// RouteAgents groups the agents working one route line.
type RouteAgents struct {
	TravelAgent TravelAgent      `json:"travel_agent"`
	PortAgents  []RoutePortAgent `json:"port_agents"`
}

// RouteLine is a drawable route in the map display data.
type RouteLine struct {
	ID           string          `json:"id"`
	Material     string          `json:"material"`
	SupplierID   string          `json:"supplier_id"`
	SupplierName string          `json:"supplier_name"`
	FromCoords   Coordinate      `json:"from_coords"`
	ToCoords     Coordinate      `json:"to_coords"`
	Waypoints    []Waypoint      `json:"waypoints"`
	TransitDays  int             `json:"transit_days"`
	RiskScore    decimal.Decimal `json:"risk_score"`
	RiskLevel    RiskLevel       `json:"risk_level"`
	Status       string          `json:"status"`
	Agents       RouteAgents     `json:"agents"`
}

// MapData is the map-ready display data embedded in a report. The core
// treats it as the stable display surface; renderers consume it as-is.
type MapData struct {
	BuyerPin     BuyerPin      `json:"buyer_pin"`
	PortPins     []PortPin     `json:"port_pins"`
	SupplierPins []SupplierPin `json:"supplier_pins"`
	RouteLines   []RouteLine   `json:"route_lines"`
}

// SimulationReport is the full plan produced by one run. The core never
// mutates it except for Negotiation, which may be replaced wholesale after
// a successful negotiation exchange.
type SimulationReport struct {
	WorldContext   WorldContext    `json:"world_context"`
	DiscoveryPaths []DiscoveryPath `json:"discovery_paths"`
	Routes         []Route         `json:"routes"`
	Negotiation    Negotiation     `json:"negotiation"`
	ExecutionPlan  ExecutionPlan   `json:"execution_plan"`
	MapData        *MapData        `json:"map_data,omitempty"`
}

// SimulationResponse is the terminal payload of a run.
type SimulationResponse struct {
	TraceID string           `json:"trace_id"`
	Report  SimulationReport `json:"report"`
	Summary string           `json:"summary"`
}

// AllPorts flattens every port in the world context, for filter pickers.
func (w WorldContext) AllPorts() []Port {
	var ports []Port
	for _, c := range w.Countries {
		ports = append(ports, c.Ports...)
	}
	return ports
}
