package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/its-camilo/AgenticNodes/internal/api"
	"github.com/its-camilo/AgenticNodes/internal/domain"
	"github.com/its-camilo/AgenticNodes/internal/tui/tuimsg"
)

// Update handles all messages and drives the run state machine.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.SetSize(msg.Width, msg.Height)
		m.loading.SetSize(msg.Width, msg.Height)
		m.results.SetSize(msg.Width, msg.Height)
		if m.negotiation != nil {
			m.negotiation.SetWidth(msg.Width)
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.loading, cmd = m.loading.Update(msg)
		return m, cmd

	case tuimsg.SubmitIntentMsg:
		return m.handleSubmit(msg)

	case tuimsg.ResetMsg:
		return m.handleReset()

	case tuimsg.SkipNegotiationMsg:
		m.awaitingNegotiationDecision = false
		return m, nil

	case ChannelOpenedMsg:
		return m.handleChannelOpened(msg)

	case NotificationMsg:
		return m.handleNotification(msg)

	case ChannelClosedMsg:
		if msg.Seq == m.runSeq {
			// Stream ended mid-run; the job outcome still decides the run.
			m.channel = nil
		}
		return m, nil

	case RunResolvedMsg:
		return m.handleRunResolved(msg)

	case NegotiationReplyMsg:
		return m.handleNegotiationReply(msg)
	}

	return m, nil
}

// handleSubmit validates the form and, if it passes, starts a run:
// event channel first, then the bounded job request.
func (m Model) handleSubmit(msg tuimsg.SubmitIntentMsg) (tea.Model, tea.Cmd) {
	req, err := domain.NewRunRequest(msg.Intent, msg.BuyerLocation, msg.SimulateDisruptions, m.cfg.DefaultBuyerLocation)
	if err != nil {
		// No transition, no request sent.
		m.input.SetError(err.Error())
		return m, nil
	}

	// A previous run's resources must be fully released before opening a
	// new channel; teardown is idempotent so this is safe from Input too.
	m.teardownRun()

	m.runSeq++
	m.runID = uuid.NewString()
	m.pendingReq = req

	ctx, cancel := context.WithCancel(context.Background())
	m.runCtx = ctx
	m.cancelRun = cancel

	m.scene = SceneLoading
	m.loading.Reset()
	m.toast = ""
	m.response = nil
	m.results.SetResponse(nil)
	m.negotiation = nil
	m.negotiationPending = false
	m.readyPreview = nil
	m.awaitingNegotiationDecision = false

	m.logger.Info("starting run",
		zap.String("run_id", m.runID),
		zap.String("buyer_location", req.BuyerLocation),
		zap.Bool("simulate_disruptions", req.SimulateDisruptions))

	return m, tea.Batch(m.loading.Tick(), openChannelCmd(m.client, ctx, m.runSeq))
}

// handleChannelOpened wires the subscription and only then issues the job
// request, so no notification for this run can be missed.
func (m Model) handleChannelOpened(msg ChannelOpenedMsg) (tea.Model, tea.Cmd) {
	if msg.Seq != m.runSeq || m.scene != SceneLoading {
		// A stale open from a torn-down run; release it immediately.
		msg.Channel.Close()
		return m, nil
	}

	cmds := []tea.Cmd{startJobCmd(m.client, m.runCtx, m.pendingReq, m.cfg.JobTimeout.Std(), msg.Seq)}
	if msg.Err != nil {
		// The run proceeds without progress detail, as on the web client.
		m.logger.Warn("event stream unavailable", zap.String("run_id", m.runID), zap.Error(msg.Err))
	} else {
		m.channel = msg.Channel
		cmds = append([]tea.Cmd{listenChannelCmd(m.channel, msg.Seq)}, cmds...)
	}
	return m, tea.Batch(cmds...)
}

// handleNotification applies one progress notification in arrival order
// and re-arms the listener.
func (m Model) handleNotification(msg NotificationMsg) (tea.Model, tea.Cmd) {
	if msg.Seq != m.runSeq {
		return m, nil
	}

	n := msg.Notification
	switch n.Type {
	case api.NotificationPhase:
		// Once the run resolved, the outcome supersedes any straggler
		// still sitting in the listener.
		if m.scene == SceneLoading {
			m.loading.SetPhase(n.Phase.Phase, n.Phase.Message)
		}

	case api.NotificationRouteEval:
		if m.scene == SceneLoading {
			m.loading.AppendRoute(*n.RouteEval)
		}

	case api.NotificationNegotiationReady:
		if m.scene == SceneLoading {
			m.negotiationPending = true
			m.readyPreview = n.NegotiationReady
		}

	case api.NotificationNegotiationUpdate:
		if m.negotiation != nil {
			m.negotiation.NoteExternalUpdate()
		}
	}

	if m.channel != nil {
		return m, listenChannelCmd(m.channel, msg.Seq)
	}
	return m, nil
}

// handleRunResolved is the terminal outcome of the job request. It always
// wins over pending notifications: the channel is closed on every path and
// later messages for this run are discarded by the sequence check.
func (m Model) handleRunResolved(msg RunResolvedMsg) (tea.Model, tea.Cmd) {
	if msg.Seq != m.runSeq || m.scene != SceneLoading {
		return m, nil
	}

	m.teardownRun()

	if msg.Err != nil {
		m.logger.Warn("run failed", zap.String("run_id", m.runID), zap.Error(msg.Err))
		m.scene = SceneInput
		m.toast = runErrorToast(msg.Err)
		return m, nil
	}

	m.response = msg.Response
	m.scene = SceneResults
	m.results.SetResponse(msg.Response)
	m.negotiation = NewNegotiationModel(msg.Response.TraceID, &msg.Response.Report)
	m.negotiation.SetWidth(m.width)
	m.awaitingNegotiationDecision = m.negotiationPending

	m.logger.Info("run complete",
		zap.String("run_id", m.runID),
		zap.String("trace_id", msg.Response.TraceID),
		zap.Bool("negotiation_ready", m.negotiationPending))
	return m, nil
}

// handleReset returns to the input form, releasing any run resources.
// Calling it from Input is a no-op beyond clearing the toast.
func (m Model) handleReset() (tea.Model, tea.Cmd) {
	m.teardownRun()
	m.scene = SceneInput
	m.toast = ""
	m.response = nil
	m.results.SetResponse(nil)
	m.negotiation = nil
	m.negotiationPending = false
	m.readyPreview = nil
	m.awaitingNegotiationDecision = false
	m.loading.Reset()
	return m, nil
}

// handleNegotiationReply settles a negotiation exchange. A failure is
// scoped to the chat pane; the rest of the results view is untouched.
func (m Model) handleNegotiationReply(msg NegotiationReplyMsg) (tea.Model, tea.Cmd) {
	if m.negotiation == nil {
		return m, nil
	}
	m.negotiation.ApplyReply(msg)

	if msg.Err == nil && m.response != nil && len(msg.Response.UpdatedTerms) > 0 {
		// Whole-value replacement keeps terms and total consistent.
		terms := msg.Response.UpdatedTerms
		m.response.Report.Negotiation = domain.Negotiation{
			Terms:             terms,
			TotalCostEstimate: domain.TotalCost(terms),
		}
	}
	return m, nil
}

// handleKeyPress routes keys by scene.
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.teardownRun()
		return m, tea.Quit
	}

	switch m.scene {
	case SceneInput:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case SceneLoading:
		// The run is not cancellable from the keyboard; it resolves on
		// its own within the configured bound.
		return m, nil

	case SceneResults:
		return m.handleResultsKey(msg)
	}
	return m, nil
}

func (m Model) handleResultsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.negotiation != nil && m.negotiation.Focused() {
		switch msg.String() {
		case "esc":
			m.negotiation.Blur()
			return m, nil
		case "enter":
			req, ok := m.negotiation.StartSend()
			if !ok {
				return m, nil
			}
			return m, negotiateCmd(m.client, m.negotiation.TraceID(), req)
		case "ctrl+s":
			m.negotiation.CycleSupplier()
			return m, nil
		case "ctrl+p":
			m.negotiation.CyclePort()
			return m, nil
		default:
			return m, m.negotiation.UpdateInput(msg)
		}
	}

	switch msg.String() {
	case "q":
		m.teardownRun()
		return m, tea.Quit
	case "n":
		return m, func() tea.Msg { return tuimsg.ResetMsg{} }
	case "s":
		if m.awaitingNegotiationDecision {
			return m, func() tea.Msg { return tuimsg.SkipNegotiationMsg{} }
		}
	case "enter", "i":
		if m.negotiation != nil {
			m.awaitingNegotiationDecision = false
			return m, m.negotiation.Focus()
		}
	}
	return m, nil
}

// teardownRun releases the channel and cancels the run context. Idempotent
// on every exit path: success, timeout, error, reset, quit.
func (m *Model) teardownRun() {
	m.closeChannel()
	if m.cancelRun != nil {
		m.cancelRun()
		m.cancelRun = nil
	}
}

// runErrorToast maps a terminal run failure to its user-facing text. The
// timeout keeps its specific message; server bodies surface verbatim.
func runErrorToast(err error) string {
	var toErr *api.TimeoutError
	if errors.As(err, &toErr) {
		if mins := int(toErr.Bound.Minutes()); mins >= 1 {
			return fmt.Sprintf("Simulation timed out after %d minutes. Please try again.", mins)
		}
		return fmt.Sprintf("Simulation timed out after %s. Please try again.", toErr.Bound)
	}
	if text := err.Error(); text != "" {
		return text
	}
	return "An error occurred"
}
