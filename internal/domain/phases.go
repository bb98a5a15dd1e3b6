package domain

// Phases is the canonical phase progression of a run, in order. It drives
// progress display only; notifications carrying unknown phase names are
// shown verbatim and simply don't advance the track.
var Phases = []string{
	"generating_world",
	"discovering_suppliers",
	"planning_routes",
	"negotiating",
	"awaiting_negotiation",
	"complete",
}

// PhaseComplete is the last canonical phase.
const PhaseComplete = "complete"

var phaseLabels = map[string]string{
	"generating_world":      "Analyzing demand...",
	"discovering_suppliers": "Validating suppliers...",
	"planning_routes":       "Agents traveling to ports...",
	"negotiating":           "Agents negotiating with suppliers...",
	"awaiting_negotiation":  "Awaiting negotiation...",
	"complete":              "Complete",
}

// PhaseLabel returns the display label for a canonical phase, or the raw
// name for an unknown one.
func PhaseLabel(phase string) string {
	if label, ok := phaseLabels[phase]; ok {
		return label
	}
	return phase
}

// PhaseIndex returns the ordinal of a phase in the canonical sequence.
// ok is false for unknown names, which count as "nothing reached yet".
func PhaseIndex(phase string) (int, bool) {
	for i, p := range Phases {
		if p == phase {
			return i, true
		}
	}
	return -1, false
}

// StepState is the display state of one step of the phase track.
type StepState int

const (
	StepPending StepState = iota
	StepActive
	StepCompleted
)

// PhaseStepState reports how step i of the track should render given the
// current phase. An unknown current phase leaves every step pending.
func PhaseStepState(i int, current string) StepState {
	idx, ok := PhaseIndex(current)
	if !ok {
		return StepPending
	}
	switch {
	case i < idx:
		return StepCompleted
	case i == idx:
		return StepActive
	default:
		return StepPending
	}
}
