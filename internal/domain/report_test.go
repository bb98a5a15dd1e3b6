package domain

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTotalCost(t *testing.T) {
	terms := []NegotiationTerm{
		{
			Material:     "cobalt",
			Qty:          1000,
			UnitPriceEst: decimal.NewFromFloat(42.5),
			Subtotal:     decimal.NewFromInt(42500),
			Currency:     "USD",
			LeadTimeDays: 30,
		},
	}
	assert.True(t, TotalCost(terms).Equal(decimal.NewFromInt(42500)))

	terms = append(terms, NegotiationTerm{
		Material: "lithium",
		Subtotal: decimal.NewFromFloat(1250.75),
	})
	assert.True(t, TotalCost(terms).Equal(decimal.NewFromFloat(43750.75)))

	assert.True(t, TotalCost(nil).IsZero())
}

func TestClassifyRisk(t *testing.T) {
	assert.Equal(t, RiskLow, ClassifyRisk(decimal.NewFromFloat(0.1)))
	assert.Equal(t, RiskLow, ClassifyRisk(decimal.NewFromFloat(0.29)))
	assert.Equal(t, RiskMedium, ClassifyRisk(decimal.NewFromFloat(0.3)))
	assert.Equal(t, RiskMedium, ClassifyRisk(decimal.NewFromFloat(0.59)))
	assert.Equal(t, RiskHigh, ClassifyRisk(decimal.NewFromFloat(0.6)))
	assert.Equal(t, RiskHigh, ClassifyRisk(decimal.NewFromInt(1)))
}

func TestSimulationResponseDecode(t *testing.T) {
	// Money arrives as bare JSON numbers; decimal must take them as-is.
	raw := `{
		"trace_id": "tr-123",
		"summary": "plan ready",
		"report": {
			"world_context": {
				"buyer_coordinates": {"lat": 42.33, "lng": -83.04},
				"countries": [
					{"name": "Chile", "ports": [{"name": "Valparaiso", "lat": -33.03, "lng": -71.62}]}
				]
			},
			"discovery_paths": [
				{"identity": "sup-1", "material": "cobalt", "trust_score": 0.82, "rationale": "audited"}
			],
			"routes": [
				{"from": "Valparaiso", "to": "Detroit", "ports": ["Valparaiso"], "transit_days": 21, "risk_score": 0.35}
			],
			"negotiation": {
				"terms": [
					{"material": "cobalt", "supplier_id": "sup-1", "qty": 1000,
					 "unit_price_est": 42.5, "subtotal": 42500, "currency": "USD", "lead_time_days": 30}
				],
				"total_cost_estimate": 42500
			},
			"execution_plan": {"timeline_days": 45, "risk_score": 0.35}
		}
	}`

	var resp SimulationResponse
	require.NoError(t, json.Unmarshal([]byte(raw), &resp))

	assert.Equal(t, "tr-123", resp.TraceID)
	require.Len(t, resp.Report.Negotiation.Terms, 1)
	term := resp.Report.Negotiation.Terms[0]
	assert.True(t, term.UnitPriceEst.Equal(decimal.NewFromFloat(42.5)))
	assert.True(t, resp.Report.Negotiation.TotalCostEstimate.Equal(TotalCost(resp.Report.Negotiation.Terms)))
	assert.Nil(t, resp.Report.MapData)

	ports := resp.Report.WorldContext.AllPorts()
	require.Len(t, ports, 1)
	assert.Equal(t, "Valparaiso", ports[0].Name)
}
