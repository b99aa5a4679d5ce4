package service

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"adworks/internal/campaign/domain"
)

// GenerateDeliverables expands the selected concept's deliverable templates
// into concrete records and runs the generation pipeline over them, one
// deliverable at a time. Each item independently succeeds or fails; a failed
// item is recorded and the pipeline continues. Once every item has been
// attempted the campaign advances to reviewing, with failed items left
// visible for manual retry.
func (s *Service) GenerateDeliverables(ctx context.Context, campaignID string) error {
	ctx, span := s.tracer.Start(ctx, "campaign.generate_deliverables")
	defer span.End()

	s.mu.Lock()
	campaign, err := s.find(campaignID)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	if campaign.Phase != domain.PhaseSelecting {
		s.mu.Unlock()
		return domain.ErrInvalidPhase
	}
	concept, ok := campaign.ConceptByID(campaign.SelectedConceptID)
	if !ok {
		s.mu.Unlock()
		return domain.ErrNoConceptSelected
	}

	// Expand templates into deliverable records with deterministic ids so a
	// reload mid-pipeline lines up with the persisted snapshot.
	sequence := 0
	deliverableIDs := make([]string, 0, len(concept.Deliverables))
	for _, template := range concept.Deliverables {
		for copyIndex := 0; copyIndex < template.Quantity; copyIndex++ {
			sequence++
			deliverableID := fmt.Sprintf("%s-d%03d", campaign.ID, sequence)
			campaign.Deliverables = append(campaign.Deliverables, domain.Deliverable{
				ID:             deliverableID,
				Type:           template.Type,
				Platform:       template.Platform,
				Description:    template.Description,
				ProductionCost: domain.ProductionCostForType(template.Type),
				Status:         domain.StatusNotStarted,
			})
			deliverableIDs = append(deliverableIDs, deliverableID)
		}
	}
	campaign.RecomputeProductionSpent()

	if err := transitionPhase(campaign, domain.PhaseGenerating); err != nil {
		s.mu.Unlock()
		return err
	}
	s.progress[campaignID] = Progress{Current: 0, Total: len(deliverableIDs)}
	s.persist(ctx)
	s.mu.Unlock()

	span.SetAttributes(
		attribute.String("campaign.id", campaignID),
		attribute.Int("deliverables.total", len(deliverableIDs)),
	)

	s.runBatch(ctx, campaignID, deliverableIDs)
	return nil
}

// RequestRevisions regenerates only the deliverables flagged during review,
// passing each one's stored feedback to the generator. The campaign cycles
// back to generating for the duration of the batch and returns to reviewing
// when every flagged item has been attempted.
func (s *Service) RequestRevisions(ctx context.Context, campaignID string) error {
	ctx, span := s.tracer.Start(ctx, "campaign.request_revisions")
	defer span.End()

	s.mu.Lock()
	campaign, err := s.find(campaignID)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	if campaign.Phase != domain.PhaseReviewing {
		s.mu.Unlock()
		return domain.ErrInvalidPhase
	}

	var flaggedIDs []string
	for i := range campaign.Deliverables {
		if campaign.Deliverables[i].Status == domain.StatusNeedsRevision {
			flaggedIDs = append(flaggedIDs, campaign.Deliverables[i].ID)
		}
	}
	if len(flaggedIDs) == 0 {
		s.mu.Unlock()
		return domain.ErrNoRevisionsRequested
	}

	if err := transitionPhase(campaign, domain.PhaseGenerating); err != nil {
		s.mu.Unlock()
		return err
	}
	s.progress[campaignID] = Progress{Current: 0, Total: len(flaggedIDs)}
	s.persist(ctx)
	s.mu.Unlock()

	span.SetAttributes(
		attribute.String("campaign.id", campaignID),
		attribute.Int("deliverables.total", len(flaggedIDs)),
	)

	s.runBatch(ctx, campaignID, flaggedIDs)
	return nil
}

// RetryDeliverableGeneration re-runs generation for exactly one failed
// deliverable. It does not change the campaign phase; retries are only
// initiated once the batch owning the deliverable has finished.
func (s *Service) RetryDeliverableGeneration(ctx context.Context, campaignID, deliverableID string) error {
	s.mu.Lock()
	campaign, err := s.find(campaignID)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	deliverable, ok := campaign.DeliverableByID(deliverableID)
	if !ok {
		s.mu.Unlock()
		return domain.ErrUnknownDeliverable
	}
	if deliverable.Status != domain.StatusGenerationFailed {
		s.mu.Unlock()
		return domain.ErrInvalidStatus
	}
	s.mu.Unlock()

	s.attemptDeliverable(ctx, campaignID, deliverableID)
	return nil
}

// runBatch attempts each deliverable in order. Status updates for item i are
// visible (and persisted) before item i+1 begins; the batch always runs to
// completion before the phase advances.
func (s *Service) runBatch(ctx context.Context, campaignID string, deliverableIDs []string) {
	for _, deliverableID := range deliverableIDs {
		s.attemptDeliverable(ctx, campaignID, deliverableID)

		s.mu.Lock()
		if progress, ok := s.progress[campaignID]; ok {
			progress.Current++
			s.progress[campaignID] = progress
		}
		s.mu.Unlock()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.progress, campaignID)
	campaign, err := s.find(campaignID)
	if err != nil {
		return
	}
	if campaign.Phase == domain.PhaseGenerating {
		campaign.Phase = domain.PhaseReviewing
	}
	s.persist(ctx)
}

// attemptDeliverable runs one generation call for one deliverable. The
// external call happens outside the state lock; success and failure are both
// recorded per-item and never disturb sibling deliverables.
func (s *Service) attemptDeliverable(ctx context.Context, campaignID, deliverableID string) {
	s.mu.Lock()
	campaign, err := s.find(campaignID)
	if err != nil {
		s.mu.Unlock()
		return
	}
	deliverable, ok := campaign.DeliverableByID(deliverableID)
	if !ok {
		s.mu.Unlock()
		return
	}
	if !domain.IsStatusTransitionAllowed(deliverable.Status, domain.StatusInProgress) {
		s.mu.Unlock()
		return
	}

	deliverable.Status = domain.StatusInProgress
	feedback := ""
	revisionBase := -1
	if deliverable.Work != nil {
		feedback = deliverable.Work.Feedback
		revisionBase = deliverable.Work.RevisionCount
	}
	deliverableCopy := *deliverable
	campaignCopy := *campaign
	var conceptCopy domain.Concept
	if concept, ok := campaign.ConceptByID(campaign.SelectedConceptID); ok {
		conceptCopy = *concept
	}
	s.persist(ctx)
	s.mu.Unlock()

	work, genErr := s.deliverables.Generate(ctx, deliverableCopy, campaignCopy, conceptCopy, feedback)

	s.mu.Lock()
	defer s.mu.Unlock()
	campaign, err = s.find(campaignID)
	if err != nil {
		return
	}
	deliverable, ok = campaign.DeliverableByID(deliverableID)
	if !ok {
		return
	}

	if genErr != nil {
		deliverable.Status = domain.StatusGenerationFailed
		deliverable.GenerationError = genErr.Error()
	} else {
		work.RevisionCount = revisionBase + 1
		work.Feedback = feedback
		deliverable.Work = &work
		deliverable.Status = domain.StatusReadyForReview
		deliverable.GenerationError = ""
	}
	s.persist(ctx)
}
