package domain

import "time"

// CompletedCampaign is one history entry for a scored campaign.
type CompletedCampaign struct {
	CampaignID     string
	Score          int
	WasUnderBudget bool
	Industry       string
	CompletedAt    time.Time
}

// State is the aggregate reputation record. It is owned by the reputation
// service and persisted as one snapshot after every mutation.
type State struct {
	CurrentReputation  int
	CompletedCampaigns []CompletedCampaign
	AchievedMilestones []string
	PendingEvents      []BonusEvent
	DeliveredEvents    []BonusEvent
}

// Tier returns the standing bracket for the current reputation.
func (s *State) Tier() Tier {
	return TierForReputation(s.CurrentReputation)
}

// HasAchieved reports whether a milestone already fired.
func (s *State) HasAchieved(milestoneID string) bool {
	for _, achieved := range s.AchievedMilestones {
		if achieved == milestoneID {
			return true
		}
	}
	return false
}

// PendingEventByID returns the pending event with the given id.
func (s *State) PendingEventByID(eventID string) (*BonusEvent, bool) {
	for i := range s.PendingEvents {
		if s.PendingEvents[i].ID == eventID {
			return &s.PendingEvents[i], true
		}
	}
	return nil, false
}
