package domain

import (
	"errors"
	"testing"
)

func TestTeamFeeForHeadcount(t *testing.T) {
	tests := []struct {
		headcount int
		fee       int
	}{
		{0, 0},
		{2, 25_000},
		{3, 45_000},
		{4, 70_000},
	}
	for _, tc := range tests {
		fee, err := TeamFeeForHeadcount(tc.headcount)
		if err != nil {
			t.Fatalf("headcount %d: %v", tc.headcount, err)
		}
		if fee != tc.fee {
			t.Fatalf("headcount %d: expected fee %d, got %d", tc.headcount, tc.fee, fee)
		}
	}
}

func TestTeamFeeForHeadcountInvalid(t *testing.T) {
	for _, headcount := range []int{1, 5, -1, 10} {
		if _, err := TeamFeeForHeadcount(headcount); !errors.Is(err, ErrInvalidTeamSize) {
			t.Fatalf("headcount %d: expected ErrInvalidTeamSize, got %v", headcount, err)
		}
	}
}
