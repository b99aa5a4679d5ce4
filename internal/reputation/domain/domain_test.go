package domain

import (
	"testing"
	"time"
)

func TestTierForReputation(t *testing.T) {
	tests := []struct {
		reputation int
		tier       Tier
	}{
		{0, TierBoutique},
		{9, TierBoutique},
		{10, TierRising},
		{24, TierRising},
		{25, TierRespected},
		{49, TierRespected},
		{50, TierRenowned},
		{99, TierRenowned},
		{100, TierLegendary},
		{500, TierLegendary},
	}
	for _, tc := range tests {
		if tier := TierForReputation(tc.reputation); tier != tc.tier {
			t.Fatalf("reputation %d: expected %q, got %q", tc.reputation, tc.tier, tier)
		}
	}
}

func TestCatalogMinScoreGates(t *testing.T) {
	byKind := make(map[EventKind]CatalogEntry)
	for _, entry := range Catalog {
		byKind[entry.Kind] = entry
	}

	cannes, ok := byKind[EventAwardCannes]
	if !ok {
		t.Fatal("expected award_cannes in catalog")
	}
	if cannes.MinScore != 95 {
		t.Fatalf("expected award_cannes min score 95, got %d", cannes.MinScore)
	}

	viral, ok := byKind[EventViralMoment]
	if !ok {
		t.Fatal("expected viral_moment in catalog")
	}
	if !viral.BoldnessWeighted {
		t.Fatal("expected viral_moment to be boldness weighted")
	}
}

func TestCatalogDelayRangesAreOrdered(t *testing.T) {
	for _, entry := range append(Catalog, BacklashEntry) {
		if entry.MinDelay <= 0 || entry.MaxDelay < entry.MinDelay {
			t.Fatalf("kind %s: bad delay range [%v, %v]", entry.Kind, entry.MinDelay, entry.MaxDelay)
		}
		if entry.Probability <= 0 || entry.Probability > 1 {
			t.Fatalf("kind %s: bad probability %v", entry.Kind, entry.Probability)
		}
	}
}

func TestMilestoneRules(t *testing.T) {
	history := make([]CompletedCampaign, 0, 10)
	for i := 0; i < 10; i++ {
		entry := CompletedCampaign{
			CampaignID:  "c",
			Score:       90,
			Industry:    "apparel",
			CompletedAt: time.Now(),
		}
		if i < 5 {
			entry.WasUnderBudget = true
		}
		switch i % 3 {
		case 0:
			entry.Industry = "apparel"
		case 1:
			entry.Industry = "fintech"
		case 2:
			entry.Industry = "beverage"
		}
		history = append(history, entry)
	}

	met := make(map[string]bool)
	for _, milestone := range Milestones {
		met[milestone.ID] = milestone.Met(history)
	}

	if !met["campaigns_10"] {
		t.Fatal("expected campaigns_10 met")
	}
	if met["campaigns_25"] {
		t.Fatal("expected campaigns_25 unmet")
	}
	if !met["quality_10"] {
		t.Fatal("expected quality_10 met with ten 90-scores")
	}
	if !met["industries_3"] {
		t.Fatal("expected industries_3 met")
	}
	if met["industries_5"] {
		t.Fatal("expected industries_5 unmet")
	}
	if !met["under_budget_5"] {
		t.Fatal("expected under_budget_5 met")
	}
}

func TestStateHasAchieved(t *testing.T) {
	state := State{AchievedMilestones: []string{"campaigns_10"}}
	if !state.HasAchieved("campaigns_10") {
		t.Fatal("expected achieved milestone")
	}
	if state.HasAchieved("quality_5") {
		t.Fatal("expected unachieved milestone")
	}
}
