// Package service implements the campaign lifecycle engine. It owns the
// campaign collection, enforces the phase state machine, runs the deliverable
// generation pipeline, and persists a snapshot after every mutation.
package service

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"adworks/internal/campaign/domain"
	"adworks/internal/platform/id"
	"adworks/internal/storage"
)

// ErrCampaignNotFound indicates the campaign id does not exist.
var ErrCampaignNotFound = errors.New("campaign not found")

// ConceptGenerator produces structured concepts for a brief.
type ConceptGenerator interface {
	Generate(ctx context.Context, brief domain.Brief, teamMemberIDs []string, direction string) ([]domain.Concept, error)
}

// DeliverableGenerator produces the creative content for one deliverable.
type DeliverableGenerator interface {
	Generate(ctx context.Context, deliverable domain.Deliverable, campaign domain.Campaign, concept domain.Concept, feedback string) (domain.GeneratedWork, error)
}

// Progress reports how far a generation batch has advanced.
type Progress struct {
	Current int
	Total   int
}

// Service is the campaign lifecycle engine. All methods are safe for
// concurrent use; external generation calls run outside the state lock so a
// slow collaborator never blocks reads. At most one generation batch per
// campaign is in flight at a time, enforced by the phase preconditions.
type Service struct {
	store        storage.CampaignStateStore
	concepts     ConceptGenerator
	deliverables DeliverableGenerator
	clock        func() time.Time
	idGenerator  func() (string, error)
	tracer       trace.Tracer

	mu                 sync.Mutex
	campaigns          []domain.Campaign
	selectedCampaignID string
	progress           map[string]Progress
}

// Option configures a Service.
type Option func(*Service)

// WithClock injects the time source.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) { s.clock = clock }
}

// WithIDGenerator injects the identifier generator.
func WithIDGenerator(idGenerator func() (string, error)) Option {
	return func(s *Service) { s.idGenerator = idGenerator }
}

// New builds the campaign service and loads its snapshot from the store. A
// missing snapshot starts the service empty. Interrupted work is recovered
// on load: stale concept-generation flags are cleared, and a campaign caught
// mid-batch settles with its unattempted items marked failed and the phase
// moved to reviewing, so completed items keep their work and the rest stay
// individually retryable.
func New(ctx context.Context, store storage.CampaignStateStore, concepts ConceptGenerator, deliverables DeliverableGenerator, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("campaign state store is required")
	}

	s := &Service{
		store:        store,
		concepts:     concepts,
		deliverables: deliverables,
		clock:        time.Now,
		idGenerator:  id.NewID,
		tracer:       otel.Tracer("adworks/campaign"),
		progress:     make(map[string]Progress),
	}
	for _, opt := range opts {
		opt(s)
	}

	state, err := store.LoadCampaignState(ctx)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}
	s.campaigns = state.Campaigns
	s.selectedCampaignID = state.SelectedCampaignID

	s.mu.Lock()
	recovered := false
	for i := range s.campaigns {
		if s.campaigns[i].GeneratingConcepts {
			s.campaigns[i].GeneratingConcepts = false
			recovered = true
		}
		if recoverInterruptedBatch(&s.campaigns[i]) {
			recovered = true
		}
	}
	if recovered {
		s.persist(ctx)
	}
	s.mu.Unlock()

	return s, nil
}

// recoverInterruptedBatch settles a campaign whose generation batch did not
// finish before the last shutdown. Items the batch never completed are
// marked failed with a stored reason and the campaign moves to reviewing,
// where each failed item can be retried one at a time. Reports whether the
// campaign was touched.
func recoverInterruptedBatch(campaign *domain.Campaign) bool {
	if campaign.Phase != domain.PhaseGenerating {
		return false
	}
	for i := range campaign.Deliverables {
		deliverable := &campaign.Deliverables[i]
		switch deliverable.Status {
		case domain.StatusNotStarted, domain.StatusInProgress, domain.StatusNeedsRevision:
			deliverable.Status = domain.StatusGenerationFailed
			deliverable.GenerationError = "generation interrupted before completion"
		}
	}
	campaign.Phase = domain.PhaseReviewing
	return true
}

// Campaigns returns a copy of the campaign collection.
func (s *Service) Campaigns() []domain.Campaign {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Campaign, len(s.campaigns))
	copy(out, s.campaigns)
	return out
}

// CampaignByID returns a copy of one campaign.
func (s *Service) CampaignByID(campaignID string) (domain.Campaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	campaign, err := s.find(campaignID)
	if err != nil {
		return domain.Campaign{}, err
	}
	return *campaign, nil
}

// CreateCampaign creates a campaign from an accepted brief.
func (s *Service) CreateCampaign(ctx context.Context, input domain.CreateCampaignInput) (domain.Campaign, error) {
	campaign, err := domain.CreateCampaign(input, s.clock, s.idGenerator)
	if err != nil {
		return domain.Campaign{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.campaigns = append(s.campaigns, campaign)
	s.persist(ctx)
	return campaign, nil
}

// SelectCampaign marks which campaign the player is working.
func (s *Service) SelectCampaign(ctx context.Context, campaignID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.find(campaignID); err != nil {
		return err
	}
	s.selectedCampaignID = campaignID
	s.persist(ctx)
	return nil
}

// SelectedCampaignID returns the currently worked campaign id.
func (s *Service) SelectedCampaignID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedCampaignID
}

// RecordToolUse adds a tool id to a campaign's tool-usage set.
func (s *Service) RecordToolUse(ctx context.Context, campaignID, toolID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	campaign, err := s.find(campaignID)
	if err != nil {
		return err
	}
	campaign.RecordToolUse(toolID)
	s.persist(ctx)
	return nil
}

// BatchProgress reports the generation pipeline position for a campaign.
func (s *Service) BatchProgress(campaignID string) (Progress, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	progress, ok := s.progress[campaignID]
	return progress, ok
}

// find locates a campaign by id. Callers must hold the state lock.
func (s *Service) find(campaignID string) (*domain.Campaign, error) {
	for i := range s.campaigns {
		if s.campaigns[i].ID == campaignID {
			return &s.campaigns[i], nil
		}
	}
	return nil, ErrCampaignNotFound
}

// persist snapshots the full state to the durable store. Persistence
// failures are logged and swallowed: in-memory state stays authoritative for
// the session and no operation is blocked. Callers must hold the state lock.
func (s *Service) persist(ctx context.Context) {
	snapshot := storage.CampaignState{
		Campaigns:          make([]domain.Campaign, len(s.campaigns)),
		SelectedCampaignID: s.selectedCampaignID,
	}
	copy(snapshot.Campaigns, s.campaigns)
	if err := s.store.SaveCampaignState(ctx, snapshot); err != nil {
		log.Printf("persist campaign state: %v", err)
	}
}

// transitionPhase moves a campaign to the next phase, asserting the
// transition table. Callers must hold the state lock.
func transitionPhase(campaign *domain.Campaign, to domain.Phase) error {
	if !domain.IsPhaseTransitionAllowed(campaign.Phase, to) {
		return domain.ErrInvalidPhase
	}
	campaign.Phase = to
	return nil
}
