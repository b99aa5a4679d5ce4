// Package storage defines the delivery ledger contract for the reputation
// scheduler. The ledger is an append-only audit of delivered bonus events,
// supplemental to the snapshot store; losing it never loses reputation state.
package storage

import (
	"context"
	"time"
)

// DeliveryRecord is one ledger row for a delivered bonus event.
type DeliveryRecord struct {
	EventID         string
	Kind            string
	CampaignID      string
	ReputationDelta int
	Title           string
	DeliveredAt     time.Time
}

// DeliveryStore records delivered bonus events. RecordDelivery must be
// idempotent per event id so a timer and a sweep racing on the same event
// produce one row.
type DeliveryStore interface {
	RecordDelivery(ctx context.Context, record DeliveryRecord) error
	Deliveries(ctx context.Context) ([]DeliveryRecord, error)
	Close() error
}
