package service

import (
	"context"
	"strings"

	"adworks/internal/campaign/domain"
)

// ApproveDeliverable marks a reviewed deliverable as approved. Available only
// while the campaign is in review.
func (s *Service) ApproveDeliverable(ctx context.Context, campaignID, deliverableID string) error {
	return s.review(ctx, campaignID, deliverableID, domain.StatusApproved, "")
}

// FlagDeliverable sends a deliverable back for revision with reviewer
// feedback. Available only while the campaign is in review.
func (s *Service) FlagDeliverable(ctx context.Context, campaignID, deliverableID, feedback string) error {
	return s.review(ctx, campaignID, deliverableID, domain.StatusNeedsRevision, feedback)
}

func (s *Service) review(ctx context.Context, campaignID, deliverableID string, to domain.DeliverableStatus, feedback string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	campaign, err := s.find(campaignID)
	if err != nil {
		return err
	}
	if campaign.Phase != domain.PhaseReviewing {
		return domain.ErrInvalidPhase
	}
	deliverable, ok := campaign.DeliverableByID(deliverableID)
	if !ok {
		return domain.ErrUnknownDeliverable
	}
	if !domain.IsStatusTransitionAllowed(deliverable.Status, to) {
		return domain.ErrInvalidStatus
	}

	deliverable.Status = to
	if to == domain.StatusNeedsRevision && deliverable.Work != nil {
		deliverable.Work.Feedback = feedback
	}
	s.persist(ctx)
	return nil
}

// FinishReview advances the campaign to executing once every deliverable has
// been approved.
func (s *Service) FinishReview(ctx context.Context, campaignID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	campaign, err := s.find(campaignID)
	if err != nil {
		return err
	}
	if campaign.Phase != domain.PhaseReviewing {
		return domain.ErrInvalidPhase
	}
	if !campaign.AllDeliverablesApproved() {
		return domain.ErrUnapprovedDeliverables
	}
	if err := transitionPhase(campaign, domain.PhaseExecuting); err != nil {
		return err
	}
	s.persist(ctx)
	return nil
}

// AddDeliverable appends an approved extra deliverable during execution and
// charges its fixed production cost against the budget.
func (s *Service) AddDeliverable(ctx context.Context, campaignID string, deliverableType domain.DeliverableType, platform domain.Platform, description string) (domain.Deliverable, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	campaign, err := s.find(campaignID)
	if err != nil {
		return domain.Deliverable{}, err
	}
	if campaign.Phase != domain.PhaseExecuting {
		return domain.Deliverable{}, domain.ErrInvalidPhase
	}

	deliverableID, err := s.idGenerator()
	if err != nil {
		return domain.Deliverable{}, err
	}
	deliverable := domain.Deliverable{
		ID:             deliverableID,
		Type:           deliverableType,
		Platform:       platform,
		Description:    strings.TrimSpace(description),
		ProductionCost: domain.ProductionCostForType(deliverableType),
		Status:         domain.StatusApproved,
	}
	campaign.Deliverables = append(campaign.Deliverables, deliverable)
	campaign.RecomputeProductionSpent()
	s.persist(ctx)
	return deliverable, nil
}

// RemoveDeliverable drops a deliverable during execution and refunds its
// production cost.
func (s *Service) RemoveDeliverable(ctx context.Context, campaignID, deliverableID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	campaign, err := s.find(campaignID)
	if err != nil {
		return err
	}
	if campaign.Phase != domain.PhaseExecuting {
		return domain.ErrInvalidPhase
	}

	for i := range campaign.Deliverables {
		if campaign.Deliverables[i].ID == deliverableID {
			campaign.Deliverables = append(campaign.Deliverables[:i], campaign.Deliverables[i+1:]...)
			campaign.RecomputeProductionSpent()
			s.persist(ctx)
			return nil
		}
	}
	return domain.ErrUnknownDeliverable
}

// AssignDeliverableTeam assigns a sub-team to one deliverable during
// execution, costed with the same headcount function as concepting.
func (s *Service) AssignDeliverableTeam(ctx context.Context, campaignID, deliverableID string, memberIDs []string) error {
	cost, err := domain.TeamFeeForHeadcount(len(memberIDs))
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	campaign, err := s.find(campaignID)
	if err != nil {
		return err
	}
	if campaign.Phase != domain.PhaseExecuting {
		return domain.ErrInvalidPhase
	}
	deliverable, ok := campaign.DeliverableByID(deliverableID)
	if !ok {
		return domain.ErrUnknownDeliverable
	}

	deliverable.TeamMemberIDs = append([]string(nil), memberIDs...)
	deliverable.TeamCost = cost
	s.persist(ctx)
	return nil
}

// SubmitCampaign submits the finished campaign to the client. Scoring is the
// caller's responsibility, typically an immediate follow-up call into the
// reputation service.
func (s *Service) SubmitCampaign(ctx context.Context, campaignID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	campaign, err := s.find(campaignID)
	if err != nil {
		return err
	}
	if campaign.Phase != domain.PhaseExecuting {
		return domain.ErrInvalidPhase
	}
	if !campaign.AllDeliverablesApproved() {
		return domain.ErrUnapprovedDeliverables
	}
	if err := transitionPhase(campaign, domain.PhaseSubmitted); err != nil {
		return err
	}
	submittedAt := s.clock().UTC()
	campaign.SubmittedAt = &submittedAt
	s.persist(ctx)
	return nil
}

// CompleteCampaign records the client's final score and feedback. Terminal.
func (s *Service) CompleteCampaign(ctx context.Context, campaignID string, score int, feedback string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	campaign, err := s.find(campaignID)
	if err != nil {
		return err
	}
	if err := transitionPhase(campaign, domain.PhaseCompleted); err != nil {
		return err
	}
	campaign.ClientScore = &score
	campaign.ClientFeedback = feedback
	s.persist(ctx)
	return nil
}
