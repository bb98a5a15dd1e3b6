// Package tuimsg holds messages exchanged between scenes and the parent
// model, kept separate to avoid import cycles.
package tuimsg

// SubmitIntentMsg carries the input form contents up to the run
// controller when the user submits.
type SubmitIntentMsg struct {
	Intent              string
	BuyerLocation       string
	SimulateDisruptions bool
}

// ResetMsg discards the current run and returns to the input form.
type ResetMsg struct{}

// SkipNegotiationMsg dismisses the negotiation banner without entering
// the negotiation flow.
type SkipNegotiationMsg struct{}
