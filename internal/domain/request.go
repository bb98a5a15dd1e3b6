package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Input bounds enforced before any network call is made.
const (
	MaxIntentLen  = 2000
	MaxMessageLen = 1000
)

// DefaultBuyerLocation is used when the buyer location is left blank.
const DefaultBuyerLocation = "United States"

// ValidationError rejects bad user input at the form boundary. It never
// reaches the network layer.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// RunRequest is the immutable payload that starts a simulation run.
type RunRequest struct {
	Intent              string `json:"intent"`
	BuyerLocation       string `json:"buyer_location"`
	SimulateDisruptions bool   `json:"simulate_disruptions"`
}

// NewRunRequest builds a validated request from raw form input. The intent
// is trimmed and must be 1..2000 characters; a blank buyer location is
// coerced to fallback (or DefaultBuyerLocation when fallback is empty too).
func NewRunRequest(intent, buyerLocation string, simulateDisruptions bool, fallbackLocation string) (RunRequest, error) {
	intent = strings.TrimSpace(intent)
	if intent == "" {
		return RunRequest{}, &ValidationError{Field: "intent", Reason: "must not be empty"}
	}
	if utf8.RuneCountInString(intent) > MaxIntentLen {
		return RunRequest{}, &ValidationError{Field: "intent", Reason: fmt.Sprintf("must be at most %d characters", MaxIntentLen)}
	}

	location := strings.TrimSpace(buyerLocation)
	if location == "" {
		location = strings.TrimSpace(fallbackLocation)
	}
	if location == "" {
		location = DefaultBuyerLocation
	}

	return RunRequest{
		Intent:              intent,
		BuyerLocation:       location,
		SimulateDisruptions: simulateDisruptions,
	}, nil
}

// ChatTurn is one message of the negotiation transcript.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Chat roles as served by the negotiation endpoint.
const (
	RoleUser  = "user"
	RoleAgent = "agent"
)

// NegotiateRequest is one negotiation exchange, optionally scoped to a
// supplier and/or port.
type NegotiateRequest struct {
	Message    string  `json:"message"`
	SupplierID *string `json:"supplier_id"`
	Port       *string `json:"port"`
}

// NewNegotiateRequest validates and builds a negotiation message. Empty
// filter strings become JSON null, matching the wire contract.
func NewNegotiateRequest(message, supplierID, port string) (NegotiateRequest, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return NegotiateRequest{}, &ValidationError{Field: "message", Reason: "must not be empty"}
	}
	if utf8.RuneCountInString(message) > MaxMessageLen {
		return NegotiateRequest{}, &ValidationError{Field: "message", Reason: fmt.Sprintf("must be at most %d characters", MaxMessageLen)}
	}

	req := NegotiateRequest{Message: message}
	if supplierID != "" {
		req.SupplierID = &supplierID
	}
	if port != "" {
		req.Port = &port
	}
	return req, nil
}

// NegotiateResponse is the server's reply to one negotiation exchange.
// NegotiationHistory is the canonical transcript; the client replaces its
// local history with it rather than reconciling.
type NegotiateResponse struct {
	TraceID            string            `json:"trace_id"`
	AgentReply         string            `json:"agent_reply"`
	UpdatedTerms       []NegotiationTerm `json:"updated_terms"`
	NegotiationHistory []ChatTurn        `json:"negotiation_history"`
}

// SupplierRef is the lightweight supplier listing carried by the
// negotiation-ready notification.
type SupplierRef struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Material string `json:"material"`
}

// NegotiationReadyPayload is the provisional mid-run snapshot announcing
// that negotiation can begin. The final report stays authoritative; this
// only pre-populates the banner.
type NegotiationReadyPayload struct {
	Negotiation Negotiation   `json:"negotiation"`
	Suppliers   []SupplierRef `json:"suppliers"`
}

// RouteEvalNote is one route under evaluation, streamed mid-run. Notes are
// append-only for the life of a run.
type RouteEvalNote struct {
	From   Coordinate `json:"from"`
	To     Coordinate `json:"to"`
	Label  string     `json:"label,omitempty"`
	Status string     `json:"status,omitempty"`
}
