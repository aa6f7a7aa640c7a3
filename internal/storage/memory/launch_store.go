package memory

import (
	"context"
	"sort"
	"sync"

	"solana-launch-backtest/internal/domain"
	"solana-launch-backtest/internal/storage"
)

// LaunchStore is an in-memory implementation of storage.LaunchStore.
type LaunchStore struct {
	mu   sync.RWMutex
	data map[string]*domain.LaunchRecord // keyed by asset
}

// NewLaunchStore creates a new in-memory launch store.
func NewLaunchStore() *LaunchStore {
	return &LaunchStore{
		data: make(map[string]*domain.LaunchRecord),
	}
}

// Insert adds a new launch. Returns ErrDuplicateKey if the asset exists.
func (s *LaunchStore) Insert(_ context.Context, l *domain.LaunchRecord) error {
	if l == nil || l.Asset == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[l.Asset]; exists {
		return storage.ErrDuplicateKey
	}

	copy := *l
	s.data[l.Asset] = &copy
	return nil
}

// InsertBulk adds multiple launches atomically. Fails entire batch on any duplicate.
func (s *LaunchStore) InsertBulk(_ context.Context, launches []*domain.LaunchRecord) error {
	if len(launches) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Track keys in this batch to detect intra-batch duplicates
	batchKeys := make(map[string]struct{}, len(launches))

	for _, l := range launches {
		if l == nil || l.Asset == "" {
			return storage.ErrInvalidInput
		}
		if _, exists := s.data[l.Asset]; exists {
			return storage.ErrDuplicateKey
		}
		if _, exists := batchKeys[l.Asset]; exists {
			return storage.ErrDuplicateKey
		}
		batchKeys[l.Asset] = struct{}{}
	}

	for _, l := range launches {
		copy := *l
		s.data[l.Asset] = &copy
	}

	return nil
}

// GetByAsset retrieves the launch for an asset. Returns ErrNotFound if not exists.
func (s *LaunchStore) GetByAsset(_ context.Context, asset string) (*domain.LaunchRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	l, exists := s.data[asset]
	if !exists {
		return nil, storage.ErrNotFound
	}

	copy := *l
	return &copy, nil
}

// LaunchesSince retrieves launches with LaunchTime >= cutoff, ordered by launch time ASC.
func (s *LaunchStore) LaunchesSince(_ context.Context, cutoff int64) ([]*domain.LaunchRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.LaunchRecord
	for _, l := range s.data {
		if l.LaunchTime >= cutoff {
			copy := *l
			result = append(result, &copy)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].LaunchTime != result[j].LaunchTime {
			return result[i].LaunchTime < result[j].LaunchTime
		}
		return result[i].Asset < result[j].Asset
	})

	return result, nil
}

var _ storage.LaunchStore = (*LaunchStore)(nil)
