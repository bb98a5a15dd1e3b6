package components

import (
	"strings"

	"github.com/its-camilo/AgenticNodes/internal/domain"
	"github.com/its-camilo/AgenticNodes/internal/tui/tuistyles"
)

// PhaseTrack renders the canonical run phases as a row of chips, marking
// each one completed, active, or pending relative to the current phase.
type PhaseTrack struct {
	Current string
}

// NewPhaseTrack creates a phase track for the given current phase.
func NewPhaseTrack(current string) *PhaseTrack {
	return &PhaseTrack{Current: current}
}

// Render returns the styled chip row.
func (p *PhaseTrack) Render() string {
	chips := make([]string, 0, len(domain.Phases))
	for i, phase := range domain.Phases {
		label := domain.PhaseLabel(phase)
		switch domain.PhaseStepState(i, p.Current) {
		case domain.StepCompleted:
			chips = append(chips, tuistyles.StepCompletedStyle.Render("✓ "+label))
		case domain.StepActive:
			chips = append(chips, tuistyles.StepActiveStyle.Render(label))
		default:
			chips = append(chips, tuistyles.StepPendingStyle.Render("· "+label))
		}
	}
	return strings.Join(chips, "  ")
}
