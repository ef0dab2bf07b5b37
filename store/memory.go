package store

import (
	"context"
	"sync"

	"github.com/stsysd/collisionviz/dataset"
	"github.com/stsysd/collisionviz/model"
)

// MemoryStore is a concurrency-safe in-memory RecordStore.
type MemoryStore struct {
	mu      sync.RWMutex
	records []model.Record
	keys    map[string]bool
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{keys: make(map[string]bool)}
}

// Insert appends records, skipping keys already present.
func (s *MemoryStore) Insert(_ context.Context, records []model.Record) error {
	for _, r := range records {
		if err := r.Validate(); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range records {
		if s.keys[r.Key()] {
			continue
		}
		s.keys[r.Key()] = true
		s.records = append(s.records, r)
	}
	return nil
}

// Select filters the stored records to r.
func (s *MemoryStore) Select(_ context.Context, r model.YearRange) ([]model.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return dataset.SelectRecords(s.records, r), nil
}

// Close is a no-op.
func (s *MemoryStore) Close() error {
	return nil
}
