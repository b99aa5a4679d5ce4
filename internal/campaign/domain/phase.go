package domain

import "strings"

// Phase describes the campaign lifecycle stage.
type Phase string

const (
	PhaseUnspecified Phase = ""
	PhaseConcepting  Phase = "concepting"
	PhaseSelecting   Phase = "selecting"
	PhaseGenerating  Phase = "generating"
	PhaseReviewing   Phase = "reviewing"
	PhaseExecuting   Phase = "executing"
	PhaseSubmitted   Phase = "submitted"
	PhaseCompleted   Phase = "completed"
)

// NormalizePhaseLabel canonicalizes phase labels from external payloads.
func NormalizePhaseLabel(value string) (Phase, bool) {
	trimmed := strings.ToLower(strings.TrimSpace(value))
	switch Phase(trimmed) {
	case PhaseConcepting, PhaseSelecting, PhaseGenerating, PhaseReviewing,
		PhaseExecuting, PhaseSubmitted, PhaseCompleted:
		return Phase(trimmed), true
	default:
		return PhaseUnspecified, false
	}
}

// IsPhaseTransitionAllowed enforces valid campaign lifecycle transitions.
// The common path is monotonic; reviewing and generating form a legal cycle
// for revision rounds.
func IsPhaseTransitionAllowed(from, to Phase) bool {
	switch from {
	case PhaseConcepting:
		return to == PhaseSelecting
	case PhaseSelecting:
		return to == PhaseGenerating
	case PhaseGenerating:
		return to == PhaseReviewing
	case PhaseReviewing:
		return to == PhaseGenerating || to == PhaseExecuting
	case PhaseExecuting:
		return to == PhaseSubmitted
	case PhaseSubmitted:
		return to == PhaseCompleted
	default:
		return false
	}
}
