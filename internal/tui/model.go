package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/its-camilo/AgenticNodes/internal/api"
	"github.com/its-camilo/AgenticNodes/internal/config"
	"github.com/its-camilo/AgenticNodes/internal/domain"
	"github.com/its-camilo/AgenticNodes/internal/tui/scenes"
)

// Model is the run controller. It owns the Input → Loading → Results
// state machine, the per-run event channel and job request, and the
// negotiation sub-flow. All lifecycle state lives here, never in package
// globals, so multiple instances can coexist (tests rely on this).
type Model struct {
	cfg    *config.Config
	client *api.Client
	logger *zap.Logger

	scene  Scene
	width  int
	height int

	// Per-run state, reset on submit/teardown.
	runSeq     int
	runID      string
	pendingReq domain.RunRequest
	runCtx     context.Context
	channel    *api.EventChannel
	cancelRun  context.CancelFunc

	// Negotiation-ready bookkeeping: the mid-run preview raises the
	// banner; the final report stays authoritative for terms data.
	negotiationPending bool
	readyPreview       *domain.NegotiationReadyPayload

	response                    *domain.SimulationResponse
	awaitingNegotiationDecision bool

	toast string

	input       *scenes.InputModel
	loading     *scenes.LoadingModel
	results     *scenes.ResultsModel
	negotiation *NegotiationModel
}

// NewModel creates the application model.
func NewModel(cfg *config.Config, client *api.Client, logger *zap.Logger) Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	return Model{
		cfg:     cfg,
		client:  client,
		logger:  logger,
		scene:   SceneInput,
		width:   80,
		height:  24,
		input:   scenes.NewInputModel(cfg.DefaultBuyerLocation, cfg.SimulateDisruptions),
		loading: scenes.NewLoadingModel(),
		results: scenes.NewResultsModel(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.loading.Tick()
}

// Report returns the current simulation response, nil before Results.
func (m Model) Report() *domain.SimulationResponse {
	return m.response
}

// CurrentScene returns the current view state.
func (m Model) CurrentScene() Scene {
	return m.scene
}

// AwaitingNegotiationDecision reports whether the negotiation banner is up.
func (m Model) AwaitingNegotiationDecision() bool {
	return m.awaitingNegotiationDecision
}

// closeChannel tears down the event stream subscription. Safe on every
// exit path: Close is idempotent and nil-safe.
func (m *Model) closeChannel() {
	m.channel.Close()
	m.channel = nil
}
