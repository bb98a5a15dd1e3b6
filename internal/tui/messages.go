package tui

import (
	"github.com/its-camilo/AgenticNodes/internal/api"
	"github.com/its-camilo/AgenticNodes/internal/domain"
)

// Scene represents the three top-level views.
type Scene int

const (
	SceneInput Scene = iota
	SceneLoading
	SceneResults
)

// String returns a human-readable scene name.
func (s Scene) String() string {
	switch s {
	case SceneInput:
		return "Input"
	case SceneLoading:
		return "Loading"
	case SceneResults:
		return "Results"
	default:
		return "Unknown"
	}
}

// Run lifecycle messages. Every message carries the sequence number of the
// run that produced it; messages from a torn-down run are discarded, which
// is how the terminal job outcome always wins over stragglers.

// ChannelOpenedMsg reports the event stream subscription attempt made
// before the job request is issued.
type ChannelOpenedMsg struct {
	Seq     int
	Channel *api.EventChannel
	Err     error
}

// NotificationMsg delivers one progress-stream notification.
type NotificationMsg struct {
	Seq          int
	Notification api.Notification
}

// ChannelClosedMsg reports that the progress stream ended. The run keeps
// going; only the job outcome resolves it.
type ChannelClosedMsg struct {
	Seq int
}

// RunResolvedMsg is the terminal outcome of the job request, success or
// failure.
type RunResolvedMsg struct {
	Seq      int
	Response *domain.SimulationResponse
	Err      error
}

// NegotiationReplyMsg is the outcome of one negotiation exchange.
type NegotiationReplyMsg struct {
	Response *domain.NegotiateResponse
	Err      error
}
