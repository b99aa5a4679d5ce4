// Package service implements the agency reputation engine: scoring applied
// on submission, one-time milestones, and delayed bonus events scheduled
// over real time.
//
// The persisted pending-events list is the source of truth for scheduling.
// Timers are an optimization for prompt delivery; a restart rebuilds them
// from the snapshot and a periodic sweep catches anything a timer missed.
package service

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"sync"
	"time"

	"adworks/internal/platform/id"
	"adworks/internal/random"
	"adworks/internal/reputation/domain"
	repstorage "adworks/internal/reputation/storage"
	"adworks/internal/storage"
)

// Service owns the reputation state and the bonus-event scheduler.
type Service struct {
	store       storage.ReputationStateStore
	ledger      repstorage.DeliveryStore
	clock       func() time.Time
	idGenerator func() (string, error)
	delayUnit   time.Duration

	// OnEvent, when set, is invoked for every delivered bonus event,
	// outside the state lock. Set it before events can fire.
	OnEvent func(domain.BonusEvent)

	mu      sync.Mutex
	rng     *rand.Rand
	state   domain.State
	levelUp bool
	timers  map[string]*time.Timer
}

// Option configures a Service.
type Option func(*Service)

// WithClock injects the time source.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) { s.clock = clock }
}

// WithIDGenerator injects the event id generator.
func WithIDGenerator(idGenerator func() (string, error)) Option {
	return func(s *Service) { s.idGenerator = idGenerator }
}

// WithSeed fixes the random source used for event rolls and delays.
func WithSeed(seed int64) Option {
	return func(s *Service) { s.rng = rand.New(rand.NewSource(seed)) }
}

// WithDelayUnit rescales catalog delays: one catalog minute becomes one
// unit. Tests use a millisecond unit so scheduled events fire immediately.
func WithDelayUnit(unit time.Duration) Option {
	return func(s *Service) { s.delayUnit = unit }
}

// WithDeliveryLedger attaches the append-only delivery ledger. Ledger
// failures are logged and never block delivery.
func WithDeliveryLedger(ledger repstorage.DeliveryStore) Option {
	return func(s *Service) { s.ledger = ledger }
}

// New loads the persisted reputation state and re-arms a timer for every
// pending event. Events already past due fire on the first sweep or on
// their immediately-expiring timer.
func New(ctx context.Context, store storage.ReputationStateStore, opts ...Option) (*Service, error) {
	s := &Service{
		store:       store,
		clock:       time.Now,
		idGenerator: id.NewID,
		delayUnit:   time.Minute,
		timers:      make(map[string]*time.Timer),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		seed, err := random.NewSeed()
		if err != nil {
			seed = time.Now().UnixNano()
		}
		s.rng = rand.New(rand.NewSource(seed))
	}

	state, err := store.LoadReputationState(ctx)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}
	s.state = state

	s.mu.Lock()
	now := s.clock()
	for i := range s.state.PendingEvents {
		event := s.state.PendingEvents[i]
		if event.Delivered {
			continue
		}
		delay := event.ScheduledFor.Sub(now)
		if delay < 0 {
			delay = 0
		}
		s.armTimerLocked(event.ID, delay)
	}
	s.mu.Unlock()

	return s, nil
}

// Close stops all armed timers. Pending events remain persisted and fire
// after the next construction.
func (s *Service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for eventID, timer := range s.timers {
		timer.Stop()
		delete(s.timers, eventID)
	}
}

// Reputation returns the current reputation value.
func (s *Service) Reputation() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.CurrentReputation
}

// Tier returns the current standing bracket.
func (s *Service) Tier() domain.Tier {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Tier()
}

// State returns a copy of the full reputation state.
func (s *Service) State() domain.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyStateLocked()
}

// PendingEvents returns the undelivered scheduled events.
func (s *Service) PendingEvents() []domain.BonusEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.BonusEvent(nil), s.state.PendingEvents...)
}

// AddReputation raises reputation by amount.
func (s *Service) AddReputation(ctx context.Context, amount int) {
	if amount <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applyDeltaLocked(amount)
	s.persist(ctx)
}

// SubtractReputation lowers reputation by amount, clamped at zero.
func (s *Service) SubtractReputation(ctx context.Context, amount int) {
	if amount <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applyDeltaLocked(-amount)
	s.persist(ctx)
}

// ConsumeLevelUp reports and clears the one-shot tier-crossing signal. The
// returned tier is the current standing.
func (s *Service) ConsumeLevelUp() (domain.Tier, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.levelUp {
		return "", false
	}
	s.levelUp = false
	return s.state.Tier(), true
}

// applyDeltaLocked mutates reputation, clamps at zero, and latches the
// level-up signal on an upward tier crossing.
func (s *Service) applyDeltaLocked(delta int) {
	before := s.state.CurrentReputation
	after := before + delta
	if after < 0 {
		after = 0
	}
	s.state.CurrentReputation = after
	if after > before && domain.TierForReputation(after) != domain.TierForReputation(before) {
		s.levelUp = true
	}
}

func (s *Service) copyStateLocked() domain.State {
	copied := s.state
	copied.CompletedCampaigns = append([]domain.CompletedCampaign(nil), s.state.CompletedCampaigns...)
	copied.AchievedMilestones = append([]string(nil), s.state.AchievedMilestones...)
	copied.PendingEvents = append([]domain.BonusEvent(nil), s.state.PendingEvents...)
	copied.DeliveredEvents = append([]domain.BonusEvent(nil), s.state.DeliveredEvents...)
	return copied
}

// persist writes the snapshot. Failures are logged; in-memory state stays
// authoritative for the rest of the process lifetime.
func (s *Service) persist(ctx context.Context) {
	if err := s.store.SaveReputationState(ctx, s.copyStateLocked()); err != nil {
		log.Printf("persist reputation state: %v", err)
	}
}
