package service

import (
	"context"
	"fmt"

	"adworks/internal/campaign/domain"
)

// SetConceptingTeam assigns the concepting team and recomputes the team fee
// and production budget. Zero member ids clears the team. The team is locked
// once concepts have been generated.
func (s *Service) SetConceptingTeam(ctx context.Context, campaignID string, memberIDs []string) error {
	fee, err := domain.TeamFeeForHeadcount(len(memberIDs))
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	campaign, err := s.find(campaignID)
	if err != nil {
		return err
	}
	if campaign.Phase != domain.PhaseConcepting {
		return domain.ErrInvalidPhase
	}
	if len(campaign.Concepts) > 0 {
		return domain.ErrTeamLocked
	}

	campaign.TeamMemberIDs = append([]string(nil), memberIDs...)
	campaign.TeamFee = fee
	campaign.ProductionBudget = campaign.ClientBudget - fee
	s.persist(ctx)
	return nil
}

// SetDirection stores the free-text strategic direction for concepting.
func (s *Service) SetDirection(ctx context.Context, campaignID, direction string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	campaign, err := s.find(campaignID)
	if err != nil {
		return err
	}
	if campaign.Phase != domain.PhaseConcepting {
		return domain.ErrInvalidPhase
	}
	campaign.Direction = direction
	s.persist(ctx)
	return nil
}

// GenerateConcepts invokes the concept collaborator with the brief, team, and
// direction. On success the concepts are stored whole and the campaign
// advances to selecting. On failure or an empty result the campaign stays in
// concepting with the in-progress flag cleared, so the call is retryable.
// The concepts list is never partially populated.
func (s *Service) GenerateConcepts(ctx context.Context, campaignID string) error {
	s.mu.Lock()
	campaign, err := s.find(campaignID)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	if campaign.Phase != domain.PhaseConcepting {
		s.mu.Unlock()
		return domain.ErrInvalidPhase
	}
	if len(campaign.TeamMemberIDs) == 0 {
		s.mu.Unlock()
		return domain.ErrNoTeamAssigned
	}
	if campaign.GeneratingConcepts {
		s.mu.Unlock()
		return domain.ErrGenerationInProgress
	}

	campaign.GeneratingConcepts = true
	brief := campaign.Brief
	team := append([]string(nil), campaign.TeamMemberIDs...)
	direction := campaign.Direction
	s.persist(ctx)
	s.mu.Unlock()

	concepts, genErr := s.concepts.Generate(ctx, brief, team, direction)

	s.mu.Lock()
	defer s.mu.Unlock()
	campaign, err = s.find(campaignID)
	if err != nil {
		return err
	}
	campaign.GeneratingConcepts = false

	if genErr != nil {
		s.persist(ctx)
		return fmt.Errorf("generate concepts: %w", genErr)
	}
	if len(concepts) == 0 {
		s.persist(ctx)
		return fmt.Errorf("generate concepts: empty result")
	}

	campaign.Concepts = concepts
	if err := transitionPhase(campaign, domain.PhaseSelecting); err != nil {
		return err
	}
	s.persist(ctx)
	return nil
}

// SelectConcept records the chosen concept. The player may change the
// selection freely until deliverables have been generated.
func (s *Service) SelectConcept(ctx context.Context, campaignID, conceptID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	campaign, err := s.find(campaignID)
	if err != nil {
		return err
	}
	if len(campaign.Deliverables) > 0 {
		return domain.ErrConceptLocked
	}
	if _, ok := campaign.ConceptByID(conceptID); !ok {
		return domain.ErrUnknownConcept
	}
	campaign.SelectedConceptID = conceptID
	s.persist(ctx)
	return nil
}
