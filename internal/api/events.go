package api

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/its-camilo/AgenticNodes/internal/domain"
)

// NotificationType names a server-push notification on the event stream.
type NotificationType string

const (
	NotificationPhase             NotificationType = "phase"
	NotificationRouteEval         NotificationType = "route_eval"
	NotificationNegotiationReady  NotificationType = "negotiation_ready"
	NotificationNegotiationUpdate NotificationType = "negotiation_update"
)

// PhasePayload is the body of a phase notification.
type PhasePayload struct {
	TraceID string `json:"trace_id"`
	Phase   string `json:"phase"`
	Message string `json:"message"`
}

// NegotiationUpdatePayload announces a concurrent terms change. It is
// informational only and never mutates client state by itself.
type NegotiationUpdatePayload struct {
	UpdatedTerms []domain.NegotiationTerm `json:"updated_terms"`
}

// Notification is one decoded event from the stream. Exactly one of the
// payload fields matching Type is set (NegotiationReady may be nil even
// when the type matches; the event alone carries meaning).
type Notification struct {
	Type              NotificationType
	Phase             *PhasePayload
	RouteEval         *domain.RouteEvalNote
	NegotiationReady  *domain.NegotiationReadyPayload
	NegotiationUpdate *NegotiationUpdatePayload
}

// EventChannel is one live subscription to the progress stream, scoped to
// a single run. Notifications are delivered in arrival order on
// Notifications(); the channel is closed when the stream ends or Close is
// called. Close is idempotent and safe on a nil handle.
type EventChannel struct {
	notifications chan Notification
	cancel        context.CancelFunc
	closeOnce     sync.Once
	logger        *zap.Logger
}

// OpenEvents subscribes to the server's progress stream. The caller must
// Close the returned channel on every run exit path; stream-level errors
// after a successful open only end the notification flow, never the run.
func (c *Client) OpenEvents(ctx context.Context) (*EventChannel, error) {
	ctx, cancel := context.WithCancel(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/events", nil)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set(skipWarningHeader, "true")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		cancel()
		return nil, &NetworkError{Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		cancel()
		return nil, &RequestError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	ec := &EventChannel{
		notifications: make(chan Notification, 64),
		cancel:        cancel,
		logger:        c.logger,
	}
	go ec.readLoop(ctx, resp.Body)
	return ec, nil
}

// Notifications returns the stream of decoded events, in arrival order.
func (ec *EventChannel) Notifications() <-chan Notification {
	return ec.notifications
}

// Close tears down the subscription. Safe to call any number of times and
// on a never-opened (nil) handle.
func (ec *EventChannel) Close() {
	if ec == nil {
		return
	}
	ec.closeOnce.Do(ec.cancel)
}

// readLoop parses event:/data: framed messages off the response body and
// delivers decoded notifications until the stream or ctx ends.
func (ec *EventChannel) readLoop(ctx context.Context, body io.ReadCloser) {
	defer close(ec.notifications)
	defer body.Close()

	var eventType, eventData string
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")

		if line == "" {
			// Blank line ends one event.
			if eventType != "" {
				ec.dispatch(ctx, eventType, eventData)
			}
			eventType, eventData = "", ""
			continue
		}

		switch {
		case strings.HasPrefix(line, "event:"):
			eventType = strings.TrimSpace(line[len("event:"):])
		case strings.HasPrefix(line, "data:"):
			eventData = strings.TrimSpace(line[len("data:"):])
		}
	}

	if err := scanner.Err(); err != nil && ctx.Err() == nil {
		// Stream hiccups are expected during reconnects; the job outcome
		// alone decides the run.
		ec.logger.Debug("event stream ended", zap.Error(err))
	}
}

// dispatch decodes one framed event. Undecodable payloads are dropped
// per-notification; the stream keeps going.
func (ec *EventChannel) dispatch(ctx context.Context, eventType, data string) {
	n := Notification{Type: NotificationType(eventType)}

	switch n.Type {
	case NotificationPhase:
		var p PhasePayload
		if err := json.Unmarshal([]byte(data), &p); err != nil {
			ec.logger.Debug("dropping malformed phase event", zap.Error(err))
			return
		}
		n.Phase = &p

	case NotificationRouteEval:
		var r domain.RouteEvalNote
		if err := json.Unmarshal([]byte(data), &r); err != nil {
			ec.logger.Debug("dropping malformed route_eval event", zap.Error(err))
			return
		}
		n.RouteEval = &r

	case NotificationNegotiationReady:
		// The payload is optional; the event itself signals readiness.
		var wrapper struct {
			Payload *domain.NegotiationReadyPayload `json:"payload"`
		}
		if data != "" {
			if err := json.Unmarshal([]byte(data), &wrapper); err != nil {
				ec.logger.Debug("dropping malformed negotiation_ready event", zap.Error(err))
				return
			}
		}
		n.NegotiationReady = wrapper.Payload

	case NotificationNegotiationUpdate:
		var u NegotiationUpdatePayload
		if data != "" {
			if err := json.Unmarshal([]byte(data), &u); err != nil {
				ec.logger.Debug("dropping malformed negotiation_update event", zap.Error(err))
				return
			}
		}
		n.NegotiationUpdate = &u

	default:
		ec.logger.Debug("ignoring unknown event type", zap.String("type", eventType))
		return
	}

	select {
	case ec.notifications <- n:
	case <-ctx.Done():
	}
}
