// Package storage defines the durable snapshot interfaces the campaign and
// reputation services persist through. Each service owns one snapshot record
// under a fixed key; every mutation saves the whole snapshot so a reload
// resumes mid-pipeline state faithfully.
package storage

import (
	"context"
	"errors"

	campaigndomain "adworks/internal/campaign/domain"
	reputationdomain "adworks/internal/reputation/domain"
)

// ErrNotFound indicates a requested record is missing.
var ErrNotFound = errors.New("record not found")

// CampaignState is the campaign service's persisted snapshot.
type CampaignState struct {
	Campaigns          []campaigndomain.Campaign
	SelectedCampaignID string
}

// CampaignStateStore persists the campaign service snapshot.
type CampaignStateStore interface {
	SaveCampaignState(ctx context.Context, state CampaignState) error
	LoadCampaignState(ctx context.Context) (CampaignState, error)
}

// ReputationStateStore persists the reputation service snapshot.
type ReputationStateStore interface {
	SaveReputationState(ctx context.Context, state reputationdomain.State) error
	LoadReputationState(ctx context.Context) (reputationdomain.State, error)
}
