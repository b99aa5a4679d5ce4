package bbolt

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	campaigndomain "adworks/internal/campaign/domain"
	reputationdomain "adworks/internal/reputation/domain"
	"adworks/internal/storage"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "agency.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestCampaignStateRoundTrip(t *testing.T) {
	store := openTestStore(t)

	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	state := storage.CampaignState{
		SelectedCampaignID: "camp-1",
		Campaigns: []campaigndomain.Campaign{
			{
				ID:           "camp-1",
				ClientName:   "Borealis Outfitters",
				Name:         "Winter Drop",
				Phase:        campaigndomain.PhaseGenerating,
				ClientBudget: 250_000,
				TeamFee:      45_000,
				StartDate:    now,
				Deliverables: []campaigndomain.Deliverable{
					{ID: "d1", Status: campaigndomain.StatusReadyForReview, ProductionCost: 50_000,
						Work: &campaigndomain.GeneratedWork{Content: "copy", GeneratedAt: now}},
					{ID: "d2", Status: campaigndomain.StatusGenerationFailed, GenerationError: "text request status 500: boom"},
					{ID: "d3", Status: campaigndomain.StatusNotStarted},
				},
			},
		},
	}

	if err := store.SaveCampaignState(context.Background(), state); err != nil {
		t.Fatalf("save campaign state: %v", err)
	}

	loaded, err := store.LoadCampaignState(context.Background())
	if err != nil {
		t.Fatalf("load campaign state: %v", err)
	}
	if loaded.SelectedCampaignID != "camp-1" {
		t.Fatalf("selected campaign = %q", loaded.SelectedCampaignID)
	}
	if len(loaded.Campaigns) != 1 {
		t.Fatalf("expected 1 campaign, got %d", len(loaded.Campaigns))
	}

	campaign := loaded.Campaigns[0]
	if campaign.Phase != campaigndomain.PhaseGenerating {
		t.Fatalf("expected mid-pipeline phase preserved, got %q", campaign.Phase)
	}
	statuses := []campaigndomain.DeliverableStatus{
		campaigndomain.StatusReadyForReview,
		campaigndomain.StatusGenerationFailed,
		campaigndomain.StatusNotStarted,
	}
	for i, want := range statuses {
		if campaign.Deliverables[i].Status != want {
			t.Fatalf("deliverable %d: expected status %q, got %q", i, want, campaign.Deliverables[i].Status)
		}
	}
	if campaign.Deliverables[1].GenerationError == "" {
		t.Fatal("expected generation error preserved")
	}
	if !campaign.StartDate.Equal(now) {
		t.Fatalf("expected start date %v, got %v", now, campaign.StartDate)
	}
	if !campaign.Deliverables[0].Work.GeneratedAt.Equal(now) {
		t.Fatal("expected generated_at revived as a date value")
	}
}

func TestReputationStateRoundTrip(t *testing.T) {
	store := openTestStore(t)

	scheduled := time.Date(2026, 3, 14, 9, 5, 0, 0, time.UTC)
	state := reputationdomain.State{
		CurrentReputation:  27,
		AchievedMilestones: []string{"campaigns_10"},
		CompletedCampaigns: []reputationdomain.CompletedCampaign{
			{CampaignID: "camp-1", Score: 92, WasUnderBudget: true, Industry: "apparel", CompletedAt: scheduled},
		},
		PendingEvents: []reputationdomain.BonusEvent{
			{ID: "ev-1", Kind: reputationdomain.EventViralMoment, ReputationDelta: 5, ScheduledFor: scheduled},
		},
		DeliveredEvents: []reputationdomain.BonusEvent{
			{ID: "ev-0", Kind: reputationdomain.EventClientReferral, ReputationDelta: 3, ScheduledFor: scheduled, Delivered: true},
		},
	}

	if err := store.SaveReputationState(context.Background(), state); err != nil {
		t.Fatalf("save reputation state: %v", err)
	}

	loaded, err := store.LoadReputationState(context.Background())
	if err != nil {
		t.Fatalf("load reputation state: %v", err)
	}
	if loaded.CurrentReputation != 27 {
		t.Fatalf("reputation = %d", loaded.CurrentReputation)
	}
	if len(loaded.PendingEvents) != 1 || loaded.PendingEvents[0].ID != "ev-1" {
		t.Fatalf("pending events = %+v", loaded.PendingEvents)
	}
	if !loaded.PendingEvents[0].ScheduledFor.Equal(scheduled) {
		t.Fatal("expected scheduled_for revived as a date value")
	}
	if len(loaded.DeliveredEvents) != 1 || !loaded.DeliveredEvents[0].Delivered {
		t.Fatalf("delivered events = %+v", loaded.DeliveredEvents)
	}
}

func TestLoadMissingStateReturnsNotFound(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.LoadCampaignState(context.Background()); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := store.LoadReputationState(context.Background()); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open("  "); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestSaveOverwritesPreviousSnapshot(t *testing.T) {
	store := openTestStore(t)

	first := storage.CampaignState{SelectedCampaignID: "a"}
	second := storage.CampaignState{SelectedCampaignID: "b"}

	if err := store.SaveCampaignState(context.Background(), first); err != nil {
		t.Fatalf("save first: %v", err)
	}
	if err := store.SaveCampaignState(context.Background(), second); err != nil {
		t.Fatalf("save second: %v", err)
	}

	loaded, err := store.LoadCampaignState(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.SelectedCampaignID != "b" {
		t.Fatalf("expected latest snapshot, got %q", loaded.SelectedCampaignID)
	}
}
