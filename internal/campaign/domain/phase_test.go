package domain

import "testing"

func TestNormalizePhaseLabel(t *testing.T) {
	tests := []struct {
		value string
		want  Phase
		ok    bool
	}{
		{"concepting", PhaseConcepting, true},
		{" Reviewing ", PhaseReviewing, true},
		{"SUBMITTED", PhaseSubmitted, true},
		{"", PhaseUnspecified, false},
		{"launched", PhaseUnspecified, false},
	}

	for _, tc := range tests {
		got, ok := NormalizePhaseLabel(tc.value)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("normalize %q: expected (%q, %v), got (%q, %v)", tc.value, tc.want, tc.ok, got, ok)
		}
	}
}

func TestIsPhaseTransitionAllowed(t *testing.T) {
	allowed := []struct{ from, to Phase }{
		{PhaseConcepting, PhaseSelecting},
		{PhaseSelecting, PhaseGenerating},
		{PhaseGenerating, PhaseReviewing},
		{PhaseReviewing, PhaseGenerating},
		{PhaseReviewing, PhaseExecuting},
		{PhaseExecuting, PhaseSubmitted},
		{PhaseSubmitted, PhaseCompleted},
	}
	for _, tc := range allowed {
		if !IsPhaseTransitionAllowed(tc.from, tc.to) {
			t.Fatalf("expected %s -> %s to be allowed", tc.from, tc.to)
		}
	}

	denied := []struct{ from, to Phase }{
		{PhaseConcepting, PhaseGenerating},
		{PhaseSelecting, PhaseReviewing},
		{PhaseGenerating, PhaseSelecting},
		{PhaseExecuting, PhaseReviewing},
		{PhaseSubmitted, PhaseExecuting},
		{PhaseCompleted, PhaseConcepting},
		{PhaseCompleted, PhaseSubmitted},
	}
	for _, tc := range denied {
		if IsPhaseTransitionAllowed(tc.from, tc.to) {
			t.Fatalf("expected %s -> %s to be denied", tc.from, tc.to)
		}
	}
}
