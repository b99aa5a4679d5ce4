// Package sqlite implements the bonus-event delivery ledger on SQLite. The
// table is append-only and keyed by event id, so replaying a delivery is a
// no-op instead of a duplicate row.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"adworks/internal/platform/storage/sqlitemigrate"
	"adworks/internal/reputation/storage"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// Store is a SQLite-backed delivery ledger.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the ledger database at path and applies
// migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("ledger path is required")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open ledger db: %w", err)
	}
	if err := sqlitemigrate.Apply(ctx, db, migrationFS, "migrations"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate ledger db: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// RecordDelivery appends one delivered event. Recording the same event id
// twice leaves a single row.
func (s *Store) RecordDelivery(ctx context.Context, record storage.DeliveryRecord) error {
	_, err := s.db.ExecContext(ctx, `
INSERT OR IGNORE INTO event_deliveries
    (event_id, kind, campaign_id, reputation_delta, title, delivered_at)
VALUES (?, ?, ?, ?, ?, ?)`,
		record.EventID,
		record.Kind,
		record.CampaignID,
		record.ReputationDelta,
		record.Title,
		record.DeliveredAt.UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("record delivery: %w", err)
	}
	return nil
}

// Deliveries returns every recorded delivery in delivery order.
func (s *Store) Deliveries(ctx context.Context) ([]storage.DeliveryRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT event_id, kind, campaign_id, reputation_delta, title, delivered_at
FROM event_deliveries
ORDER BY delivered_at, event_id`)
	if err != nil {
		return nil, fmt.Errorf("query deliveries: %w", err)
	}
	defer rows.Close()

	var records []storage.DeliveryRecord
	for rows.Next() {
		var record storage.DeliveryRecord
		var deliveredAt int64
		if err := rows.Scan(
			&record.EventID,
			&record.Kind,
			&record.CampaignID,
			&record.ReputationDelta,
			&record.Title,
			&deliveredAt,
		); err != nil {
			return nil, fmt.Errorf("scan delivery: %w", err)
		}
		record.DeliveredAt = time.UnixMilli(deliveredAt).UTC()
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate deliveries: %w", err)
	}
	return records, nil
}
