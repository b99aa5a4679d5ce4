package domain

import (
	"errors"
	"testing"
	"time"
)

func fixedNow() time.Time {
	return time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
}

func staticID(value string) func() (string, error) {
	return func() (string, error) { return value, nil }
}

func TestCreateCampaign(t *testing.T) {
	input := CreateCampaignInput{
		ClientName:   "Borealis Outfitters",
		Name:         "Winter Drop",
		Brief:        Brief{Challenge: "stale brand", Audience: "18-30", Industry: "apparel"},
		ClientBudget: 250_000,
		Deadline:     fixedNow().AddDate(0, 1, 0),
	}

	campaign, err := CreateCampaign(input, fixedNow, staticID("camp-1"))
	if err != nil {
		t.Fatalf("create campaign: %v", err)
	}
	if campaign.ID != "camp-1" {
		t.Fatalf("expected id camp-1, got %q", campaign.ID)
	}
	if campaign.Phase != PhaseConcepting {
		t.Fatalf("expected concepting phase, got %q", campaign.Phase)
	}
	if campaign.ProductionBudget != 250_000 {
		t.Fatalf("expected production budget to equal client budget before a team fee, got %d", campaign.ProductionBudget)
	}
	if !campaign.StartDate.Equal(fixedNow()) {
		t.Fatalf("expected start date %v, got %v", fixedNow(), campaign.StartDate)
	}
}

func TestCreateCampaignValidation(t *testing.T) {
	tests := []struct {
		name  string
		input CreateCampaignInput
		want  error
	}{
		{"empty client", CreateCampaignInput{Name: "X", ClientBudget: 1000}, ErrEmptyClientName},
		{"empty name", CreateCampaignInput{ClientName: "C", ClientBudget: 1000}, ErrEmptyCampaignName},
		{"zero budget", CreateCampaignInput{ClientName: "C", Name: "X"}, ErrInvalidBudget},
		{"negative budget", CreateCampaignInput{ClientName: "C", Name: "X", ClientBudget: -5}, ErrInvalidBudget},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := CreateCampaign(tc.input, fixedNow, staticID("camp-1")); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestRecomputeProductionSpent(t *testing.T) {
	campaign := Campaign{
		Deliverables: []Deliverable{
			{ID: "d1", ProductionCost: 50_000},
			{ID: "d2", ProductionCost: 8_000},
			{ID: "d3", ProductionCost: 12_000},
		},
	}
	campaign.RecomputeProductionSpent()
	if campaign.ProductionSpent != 70_000 {
		t.Fatalf("expected production spent 70000, got %d", campaign.ProductionSpent)
	}

	campaign.Deliverables = campaign.Deliverables[:1]
	campaign.RecomputeProductionSpent()
	if campaign.ProductionSpent != 50_000 {
		t.Fatalf("expected production spent 50000 after removal, got %d", campaign.ProductionSpent)
	}
}

func TestAllDeliverablesApproved(t *testing.T) {
	campaign := Campaign{}
	if campaign.AllDeliverablesApproved() {
		t.Fatal("campaign with no deliverables must not count as approved")
	}

	campaign.Deliverables = []Deliverable{
		{ID: "d1", Status: StatusApproved},
		{ID: "d2", Status: StatusReadyForReview},
	}
	if campaign.AllDeliverablesApproved() {
		t.Fatal("expected unapproved deliverable to block approval")
	}

	campaign.Deliverables[1].Status = StatusApproved
	if !campaign.AllDeliverablesApproved() {
		t.Fatal("expected all approved")
	}
}

func TestRecordToolUse(t *testing.T) {
	campaign := Campaign{}
	campaign.RecordToolUse("mood-board")
	campaign.RecordToolUse("mood-board")
	campaign.RecordToolUse(" ")
	campaign.RecordToolUse("copy-tester")

	if len(campaign.ToolsUsed) != 2 {
		t.Fatalf("expected 2 distinct tools, got %v", campaign.ToolsUsed)
	}
}
