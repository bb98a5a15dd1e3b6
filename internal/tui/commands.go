package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/its-camilo/AgenticNodes/internal/api"
	"github.com/its-camilo/AgenticNodes/internal/domain"
)

// Negotiation exchanges are quick compared to runs; bound them separately.
const negotiateTimeout = 90 * time.Second

// openChannelCmd subscribes to the progress stream. It runs before the
// job request is issued so no notification for this run can be missed.
func openChannelCmd(client *api.Client, ctx context.Context, seq int) tea.Cmd {
	return func() tea.Msg {
		ch, err := client.OpenEvents(ctx)
		return ChannelOpenedMsg{Seq: seq, Channel: ch, Err: err}
	}
}

// listenChannelCmd waits for the next notification. The handler re-issues
// it after every delivery to keep the subscription drained.
func listenChannelCmd(ch *api.EventChannel, seq int) tea.Cmd {
	return func() tea.Msg {
		n, ok := <-ch.Notifications()
		if !ok {
			return ChannelClosedMsg{Seq: seq}
		}
		return NotificationMsg{Seq: seq, Notification: n}
	}
}

// startJobCmd issues the bounded job request. ctx is the run's context;
// the timeout triggers cooperative cancellation of the in-flight call.
func startJobCmd(client *api.Client, ctx context.Context, req domain.RunRequest, bound time.Duration, seq int) tea.Cmd {
	return func() tea.Msg {
		jobCtx, cancel := context.WithTimeout(ctx, bound)
		defer cancel()
		resp, err := client.StartRun(jobCtx, req, bound)
		return RunResolvedMsg{Seq: seq, Response: resp, Err: err}
	}
}

// negotiateCmd sends one negotiation exchange for the completed run.
func negotiateCmd(client *api.Client, traceID string, req domain.NegotiateRequest) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), negotiateTimeout)
		defer cancel()
		resp, err := client.Negotiate(ctx, traceID, req)
		return NegotiationReplyMsg{Response: resp, Err: err}
	}
}
