package service

import (
	"context"
	"fmt"
	"log"

	"adworks/internal/reputation/domain"
	"adworks/internal/score"
)

// Submission carries everything the reputation engine needs to settle a
// submitted campaign.
type Submission struct {
	CampaignID string
	Industry   string
	Facts      score.Facts
}

// SubmitCampaign scores a submitted campaign and settles its reputation
// effects: the base gain from the score tier, any newly met milestones, and
// rolls against the bonus-event catalog. Catalog hits become pending events
// delivered after their scheduled delay, not immediately.
func (s *Service) SubmitCampaign(ctx context.Context, submission Submission) (score.Result, error) {
	if submission.CampaignID == "" {
		return score.Result{}, fmt.Errorf("submit campaign: campaign id is required")
	}

	result := score.Evaluate(submission.Facts)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.applyDeltaLocked(result.ReputationGain)
	s.state.CompletedCampaigns = append(s.state.CompletedCampaigns, domain.CompletedCampaign{
		CampaignID:     submission.CampaignID,
		Score:          result.Total,
		WasUnderBudget: submission.Facts.WasUnderBudget,
		Industry:       submission.Industry,
		CompletedAt:    s.clock().UTC(),
	})

	s.evaluateMilestonesLocked()
	s.rollBonusEventsLocked(submission.CampaignID, result.Total, submission.Facts.ConceptBoldness)

	s.persist(ctx)
	return result, nil
}

// evaluateMilestonesLocked fires every milestone newly met by the campaign
// history. The achieved set guarantees each fires at most once ever.
func (s *Service) evaluateMilestonesLocked() {
	for _, milestone := range domain.Milestones {
		if s.state.HasAchieved(milestone.ID) {
			continue
		}
		if !milestone.Met(s.state.CompletedCampaigns) {
			continue
		}
		s.state.AchievedMilestones = append(s.state.AchievedMilestones, milestone.ID)
		s.applyDeltaLocked(milestone.Bonus)
		log.Printf("milestone achieved: %s (+%d reputation)", milestone.ID, milestone.Bonus)
	}
}

// rollBonusEventsLocked draws against the catalog for one submission. Each
// entry is gated by minimum score, then rolled against its probability; bold
// concepts boost boldness-weighted kinds. A low score on a bold concept also
// risks a backlash roll.
func (s *Service) rollBonusEventsLocked(campaignID string, total int, boldness float64) {
	for _, entry := range domain.Catalog {
		if total < entry.MinScore {
			continue
		}
		probability := entry.Probability
		if entry.BoldnessWeighted {
			probability *= 0.5 + boldness
		}
		if s.rng.Float64() >= probability {
			continue
		}
		s.scheduleEventLocked(entry, campaignID)
	}

	if total < domain.BacklashMaxScore && boldness > domain.BacklashMinBoldness {
		if s.rng.Float64() < domain.BacklashEntry.Probability {
			s.scheduleEventLocked(domain.BacklashEntry, campaignID)
		}
	}
}
