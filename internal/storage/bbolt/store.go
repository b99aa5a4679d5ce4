// Package bbolt provides a BoltDB-backed snapshot store for the campaign and
// reputation services.
package bbolt

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	reputationdomain "adworks/internal/reputation/domain"
	"adworks/internal/storage"
	"go.etcd.io/bbolt"
)

const (
	stateBucket   = "state"
	campaignKey   = "campaigns"
	reputationKey = "reputation"
)

// Store provides a BoltDB-backed snapshot store.
type Store struct {
	db *bbolt.DB
}

// Open opens a BoltDB-backed store at the provided path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	db, err := bbolt.Open(cleanPath, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open storage db: %w", err)
	}

	store := &Store{db: db}
	if err := store.ensureBuckets(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying BoltDB database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SaveCampaignState persists the campaign service snapshot.
func (s *Store) SaveCampaignState(ctx context.Context, state storage.CampaignState) error {
	return s.put(ctx, campaignKey, state)
}

// LoadCampaignState fetches the campaign service snapshot.
func (s *Store) LoadCampaignState(ctx context.Context) (storage.CampaignState, error) {
	var state storage.CampaignState
	if err := s.get(ctx, campaignKey, &state); err != nil {
		return storage.CampaignState{}, err
	}
	return state, nil
}

// SaveReputationState persists the reputation service snapshot.
func (s *Store) SaveReputationState(ctx context.Context, state reputationdomain.State) error {
	return s.put(ctx, reputationKey, state)
}

// LoadReputationState fetches the reputation service snapshot.
func (s *Store) LoadReputationState(ctx context.Context) (reputationdomain.State, error) {
	var state reputationdomain.State
	if err := s.get(ctx, reputationKey, &state); err != nil {
		return reputationdomain.State{}, err
	}
	return state, nil
}

func (s *Store) put(ctx context.Context, key string, value any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.db == nil {
		return fmt.Errorf("storage is not configured")
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %s snapshot: %w", key, err)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(stateBucket))
		if bucket == nil {
			return fmt.Errorf("state bucket is missing")
		}
		return bucket.Put([]byte(key), payload)
	})
}

func (s *Store) get(ctx context.Context, key string, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.db == nil {
		return fmt.Errorf("storage is not configured")
	}

	return s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(stateBucket))
		if bucket == nil {
			return fmt.Errorf("state bucket is missing")
		}
		payload := bucket.Get([]byte(key))
		if payload == nil {
			return storage.ErrNotFound
		}
		if err := json.Unmarshal(payload, out); err != nil {
			return fmt.Errorf("unmarshal %s snapshot: %w", key, err)
		}
		return nil
	})
}

func (s *Store) ensureBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(stateBucket)); err != nil {
			return fmt.Errorf("create state bucket: %w", err)
		}
		return nil
	})
}
