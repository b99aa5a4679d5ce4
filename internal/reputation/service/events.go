package service

import (
	"context"
	"log"
	"time"

	"adworks/internal/reputation/domain"
	repstorage "adworks/internal/reputation/storage"
)

// scheduleEventLocked creates a pending event for one catalog hit with a
// delay drawn uniformly from the entry's range and arms its timer.
func (s *Service) scheduleEventLocked(entry domain.CatalogEntry, campaignID string) {
	eventID, err := s.idGenerator()
	if err != nil {
		log.Printf("generate event id: %v", err)
		return
	}

	span := entry.MaxDelay - entry.MinDelay
	delay := entry.MinDelay + time.Duration(s.rng.Float64()*float64(span))
	scaled := s.scaleDelay(delay)

	event := domain.BonusEvent{
		ID:              eventID,
		Kind:            entry.Kind,
		CampaignID:      campaignID,
		ReputationDelta: entry.Delta,
		Title:           entry.Title,
		Description:     entry.Description,
		ScheduledFor:    s.clock().UTC().Add(scaled),
	}
	s.state.PendingEvents = append(s.state.PendingEvents, event)
	s.armTimerLocked(eventID, scaled)
}

// scaleDelay converts a catalog delay, expressed in minutes, into the
// configured delay unit.
func (s *Service) scaleDelay(delay time.Duration) time.Duration {
	return time.Duration(delay.Minutes() * float64(s.delayUnit))
}

func (s *Service) armTimerLocked(eventID string, delay time.Duration) {
	s.timers[eventID] = time.AfterFunc(delay, func() {
		s.deliverEvent(context.Background(), eventID)
	})
}

// ProcessPendingEvents delivers every pending event whose scheduled time has
// passed and returns them for rendering. Events already claimed by their
// timer are skipped; the sweep and the timers share the same id-keyed
// delivery path, so each event's delta applies exactly once.
func (s *Service) ProcessPendingEvents(ctx context.Context) []domain.BonusEvent {
	s.mu.Lock()
	now := s.clock()
	var dueIDs []string
	for i := range s.state.PendingEvents {
		event := s.state.PendingEvents[i]
		if !event.Delivered && !event.ScheduledFor.After(now) {
			dueIDs = append(dueIDs, event.ID)
		}
	}
	s.mu.Unlock()

	var delivered []domain.BonusEvent
	for _, eventID := range dueIDs {
		if event, ok := s.deliverEvent(ctx, eventID); ok {
			delivered = append(delivered, event)
		}
	}
	return delivered
}

// deliverEvent marks one pending event delivered, applies its reputation
// delta, and notifies the renderer and the ledger. Delivery is keyed by
// event id: the second of two racing attempts finds the event gone from the
// pending list and does nothing.
func (s *Service) deliverEvent(ctx context.Context, eventID string) (domain.BonusEvent, bool) {
	s.mu.Lock()
	pending, ok := s.state.PendingEventByID(eventID)
	if !ok || pending.Delivered {
		s.mu.Unlock()
		return domain.BonusEvent{}, false
	}

	event := *pending
	event.Delivered = true
	s.removePendingLocked(eventID)
	s.state.DeliveredEvents = append(s.state.DeliveredEvents, event)
	s.applyDeltaLocked(event.ReputationDelta)

	if timer, ok := s.timers[eventID]; ok {
		timer.Stop()
		delete(s.timers, eventID)
	}

	deliveredAt := s.clock().UTC()
	callback := s.OnEvent
	ledger := s.ledger
	s.persist(ctx)
	s.mu.Unlock()

	log.Printf("bonus event delivered: %s %q (%+d reputation)", event.Kind, event.Title, event.ReputationDelta)
	if callback != nil {
		callback(event)
	}
	if ledger != nil {
		record := repstorage.DeliveryRecord{
			EventID:         event.ID,
			Kind:            string(event.Kind),
			CampaignID:      event.CampaignID,
			ReputationDelta: event.ReputationDelta,
			Title:           event.Title,
			DeliveredAt:     deliveredAt,
		}
		if err := ledger.RecordDelivery(ctx, record); err != nil {
			log.Printf("record event delivery %s: %v", event.ID, err)
		}
	}
	return event, true
}

func (s *Service) removePendingLocked(eventID string) {
	for i := range s.state.PendingEvents {
		if s.state.PendingEvents[i].ID == eventID {
			s.state.PendingEvents = append(s.state.PendingEvents[:i], s.state.PendingEvents[i+1:]...)
			return
		}
	}
}
