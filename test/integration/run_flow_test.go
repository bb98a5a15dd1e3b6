package integration

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/its-camilo/AgenticNodes/internal/api"
	"github.com/its-camilo/AgenticNodes/internal/config"
	"github.com/its-camilo/AgenticNodes/internal/domain"
	"github.com/its-camilo/AgenticNodes/internal/tui"
	"github.com/its-camilo/AgenticNodes/internal/tui/tuimsg"
)

const reportJSON = `{
	"trace_id": "tr-e2e-1",
	"summary": "Plan covers 50000 battery cells from 2 suppliers.",
	"report": {
		"world_context": {
			"buyer_coordinates": {"lat": 42.3, "lng": -83.0},
			"countries": [
				{"name": "Chile", "ports": [{"name": "Valparaiso", "lat": -33.0, "lng": -71.6}]},
				{"name": "Japan", "ports": [{"name": "Yokohama", "lat": 35.4, "lng": 139.6}]}
			]
		},
		"discovery_paths": [
			{"identity": "sup-andes", "material": "lithium", "trust_score": 0.82, "rationale": "long audit history"},
			{"identity": "sup-kanto", "material": "separator film", "trust_score": 0.64, "rationale": "newer relationship"}
		],
		"routes": [
			{"from": "sup-andes", "to": "buyer", "ports": ["Valparaiso"], "transit_days": 21, "risk_score": 0.35},
			{"from": "sup-kanto", "to": "buyer", "ports": ["Yokohama"], "transit_days": 14, "risk_score": 0.72}
		],
		"negotiation": {
			"terms": [
				{"material": "lithium", "supplier_id": "sup-andes", "qty": 40000, "unit_price_est": 1.25, "subtotal": 50000, "currency": "USD", "lead_time_days": 28},
				{"material": "separator film", "supplier_id": "sup-kanto", "qty": 10000, "unit_price_est": 0.8, "subtotal": 8000, "currency": "USD", "lead_time_days": 18}
			],
			"total_cost_estimate": 58000
		},
		"execution_plan": {"timeline_days": 35, "risk_score": 0.41}
	}
}`

const negotiateJSON = `{
	"trace_id": "tr-e2e-1",
	"agent_reply": "sup-andes agrees to 1.15 per unit for the committed volume.",
	"updated_terms": [
		{"material": "lithium", "supplier_id": "sup-andes", "qty": 40000, "unit_price_est": 1.15, "subtotal": 46000, "currency": "USD", "lead_time_days": 28},
		{"material": "separator film", "supplier_id": "sup-kanto", "qty": 10000, "unit_price_est": 0.8, "subtotal": 8000, "currency": "USD", "lead_time_days": 18}
	],
	"negotiation_history": [
		{"role": "user", "content": "Can we do better on lithium pricing?"},
		{"role": "agent", "content": "sup-andes agrees to 1.15 per unit for the committed volume."}
	]
}`

var progressFrames = []string{
	"event: phase\ndata: {\"trace_id\": \"tr-e2e-1\", \"phase\": \"generating_world\", \"message\": \"Analyzing demand...\"}\n\n",
	"event: phase\ndata: {\"trace_id\": \"tr-e2e-1\", \"phase\": \"discovering_suppliers\", \"message\": \"Scouting suppliers...\"}\n\n",
	"event: route_eval\ndata: {\"from\": {\"lat\": -33.0, \"lng\": -71.6}, \"to\": {\"lat\": 42.3, \"lng\": -83.0}, \"label\": \"Valparaiso leg\"}\n\n",
	"event: phase\ndata: {\"trace_id\": \"tr-e2e-1\", \"phase\": \"negotiating\", \"message\": \"Negotiating terms...\"}\n\n",
	"event: negotiation_ready\ndata: {}\n\n",
	"event: phase\ndata: {\"trace_id\": \"tr-e2e-1\", \"phase\": \"complete\", \"message\": \"Done\"}\n\n",
}

// newSimServer stands in for the simulation backend: a finite progress
// stream plus the job and negotiation endpoints.
func newSimServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/events", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "text/event-stream")
		flusher, ok := w.(http.Flusher)
		require.True(t, ok)
		for _, frame := range progressFrames {
			fmt.Fprint(w, frame)
			flusher.Flush()
		}
	})
	mux.HandleFunc("/process-intent", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "true", r.Header.Get("ngrok-skip-browser-warning"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, reportJSON)
	})
	mux.HandleFunc("/process-intent/tr-e2e-1/negotiate", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, negotiateJSON)
	})
	return httptest.NewServer(mux)
}

func TestClientRunFlow(t *testing.T) {
	server := newSimServer(t)
	defer server.Close()

	client := api.NewClient(server.URL, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Subscribe before starting the job so no notification can be missed.
	events, err := client.OpenEvents(ctx)
	require.NoError(t, err)
	defer events.Close()

	resp, err := client.StartRun(ctx, mustRunRequest(t), 5*time.Minute)
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, "tr-e2e-1", resp.TraceID)
	assert.Len(t, resp.Report.DiscoveryPaths, 2)
	assert.Len(t, resp.Report.Routes, 2)
	assert.Equal(t, "58000", domain.TotalCost(resp.Report.Negotiation.Terms).String())
	assert.Equal(t, domain.RiskHigh, domain.ClassifyRisk(resp.Report.Routes[1].RiskScore))

	var phases []string
	var sawRoute, sawReady bool
	timeout := time.After(5 * time.Second)
	for len(phases) < 4 || !sawRoute || !sawReady {
		select {
		case n, ok := <-events.Notifications():
			require.True(t, ok, "stream ended before all notifications arrived")
			switch n.Type {
			case api.NotificationPhase:
				phases = append(phases, n.Phase.Phase)
			case api.NotificationRouteEval:
				sawRoute = true
				assert.Equal(t, "Valparaiso leg", n.RouteEval.Label)
			case api.NotificationNegotiationReady:
				sawReady = true
			}
		case <-timeout:
			t.Fatal("timed out waiting for progress notifications")
		}
	}
	assert.Equal(t, []string{"generating_world", "discovering_suppliers", "negotiating", "complete"}, phases)
}

func TestClientNegotiateFlow(t *testing.T) {
	server := newSimServer(t)
	defer server.Close()

	client := api.NewClient(server.URL, zap.NewNop())
	req, err := domain.NewNegotiateRequest("Can we do better on lithium pricing?", "sup-andes", "")
	require.NoError(t, err)

	resp, err := client.Negotiate(context.Background(), "tr-e2e-1", req)
	require.NoError(t, err)
	assert.Equal(t, "46000", resp.UpdatedTerms[0].Subtotal.String())
	require.Len(t, resp.NegotiationHistory, 2)
	assert.Equal(t, domain.RoleAgent, resp.NegotiationHistory[1].Role)
	assert.Equal(t, "54000", domain.TotalCost(resp.UpdatedTerms).String())
}

func TestTUIRunFlow(t *testing.T) {
	server := newSimServer(t)
	defer server.Close()

	m := driveRun(t, newTUIModel(server.URL))

	require.Equal(t, tui.SceneResults, m.CurrentScene())
	require.NotNil(t, m.Report())
	assert.Equal(t, "tr-e2e-1", m.Report().TraceID)
	assert.True(t, m.AwaitingNegotiationDecision())
	assert.Contains(t, m.View(), "sup-andes")
}

func TestTUINegotiationReplyReplacesTerms(t *testing.T) {
	server := newSimServer(t)
	defer server.Close()

	m := driveRun(t, newTUIModel(server.URL))
	require.Equal(t, tui.SceneResults, m.CurrentScene())

	client := api.NewClient(server.URL, zap.NewNop())
	req, err := domain.NewNegotiateRequest("Can we do better on lithium pricing?", "", "")
	require.NoError(t, err)
	resp, err := client.Negotiate(context.Background(), "tr-e2e-1", req)
	require.NoError(t, err)

	m = applyMsg(t, m, tui.NegotiationReplyMsg{Response: resp})

	negotiation := m.Report().Report.Negotiation
	assert.Equal(t, "46000", negotiation.Terms[0].Subtotal.String())
	assert.Equal(t, "54000", negotiation.TotalCostEstimate.String())
}

func TestTUIRunFlowServerError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/events", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
	})
	mux.HandleFunc("/process-intent", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream capacity exhausted", http.StatusServiceUnavailable)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	m := driveRun(t, newTUIModel(server.URL))

	assert.Equal(t, tui.SceneInput, m.CurrentScene())
	assert.Nil(t, m.Report())
	assert.Contains(t, m.View(), "upstream capacity exhausted")
}

func mustRunRequest(t *testing.T) domain.RunRequest {
	t.Helper()
	req, err := domain.NewRunRequest("source 50000 battery cells", "Detroit", false, "United States")
	require.NoError(t, err)
	return req
}

func newTUIModel(serverURL string) tui.Model {
	cfg := config.Default()
	cfg.ServerURL = serverURL
	return tui.NewModel(cfg, api.NewClient(serverURL, zap.NewNop()), zap.NewNop())
}

func applyMsg(t *testing.T, m tui.Model, msg tea.Msg) tui.Model {
	t.Helper()
	updated, _ := m.Update(msg)
	next, ok := updated.(tui.Model)
	require.True(t, ok)
	return next
}

// driveRun submits an intent and pumps the resulting command tree through
// the model until the run resolves, the way the bubbletea runtime would.
// The terminal job outcome is applied last so every buffered progress
// notification lands while the run is still loading.
func driveRun(t *testing.T, m tui.Model) tui.Model {
	t.Helper()

	m = applyMsg(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	updated, cmd := m.Update(tuimsg.SubmitIntentMsg{Intent: "source 50000 battery cells", BuyerLocation: "Detroit"})
	m = updated.(tui.Model)
	require.NotNil(t, cmd)

	queue := []tea.Cmd{cmd}
	var resolved tea.Msg
	for steps := 0; len(queue) > 0; steps++ {
		require.Less(t, steps, 200, "run did not settle")

		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		msg := next()

		if batch, ok := msg.(tea.BatchMsg); ok {
			queue = append(queue, batch...)
			continue
		}
		switch msg.(type) {
		case tui.ChannelOpenedMsg, tui.NotificationMsg, tui.ChannelClosedMsg:
			var c tea.Cmd
			m, c = applyWithCmd(t, m, msg)
			if c != nil {
				queue = append(queue, c)
			}
		case tui.RunResolvedMsg:
			resolved = msg
		}
		// Spinner ticks and other UI chatter are dropped.
	}

	require.NotNil(t, resolved, "job request never resolved")
	return applyMsg(t, m, resolved)
}

func applyWithCmd(t *testing.T, m tui.Model, msg tea.Msg) (tui.Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	next, ok := updated.(tui.Model)
	require.True(t, ok)
	return next, cmd
}
