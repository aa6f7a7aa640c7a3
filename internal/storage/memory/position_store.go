package memory

import (
	"context"
	"sort"
	"sync"

	"solana-launch-backtest/internal/domain"
	"solana-launch-backtest/internal/storage"
)

// PositionStore is an in-memory implementation of storage.PositionStore.
type PositionStore struct {
	mu   sync.RWMutex
	data map[string]*domain.SimulatedPosition // keyed by position_id
}

// NewPositionStore creates a new in-memory position store.
func NewPositionStore() *PositionStore {
	return &PositionStore{
		data: make(map[string]*domain.SimulatedPosition),
	}
}

// Insert adds a position. Returns ErrDuplicateKey if position_id exists.
func (s *PositionStore) Insert(_ context.Context, p *domain.SimulatedPosition) error {
	if p == nil || p.PositionID == "" || p.StrategyID == "" || p.Asset == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[p.PositionID]; exists {
		return storage.ErrDuplicateKey
	}

	copy := *p
	s.data[p.PositionID] = &copy
	return nil
}

// InsertBulk adds multiple positions atomically. Fails entire batch on any duplicate.
func (s *PositionStore) InsertBulk(_ context.Context, positions []*domain.SimulatedPosition) error {
	if len(positions) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Track keys in this batch to detect intra-batch duplicates
	batchKeys := make(map[string]struct{}, len(positions))

	for _, p := range positions {
		if p == nil || p.PositionID == "" || p.StrategyID == "" || p.Asset == "" {
			return storage.ErrInvalidInput
		}
		if _, exists := s.data[p.PositionID]; exists {
			return storage.ErrDuplicateKey
		}
		if _, exists := batchKeys[p.PositionID]; exists {
			return storage.ErrDuplicateKey
		}
		batchKeys[p.PositionID] = struct{}{}
	}

	for _, p := range positions {
		copy := *p
		s.data[p.PositionID] = &copy
	}

	return nil
}

// GetByStrategy retrieves all positions for a strategy, ordered by entry time ASC.
func (s *PositionStore) GetByStrategy(_ context.Context, strategyID string) ([]*domain.SimulatedPosition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.SimulatedPosition
	for _, p := range s.data {
		if p.StrategyID == strategyID {
			copy := *p
			result = append(result, &copy)
		}
	}

	sortPositions(result)
	return result, nil
}

// GetByAsset retrieves all positions for an asset, ordered by entry time ASC.
func (s *PositionStore) GetByAsset(_ context.Context, asset string) ([]*domain.SimulatedPosition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.SimulatedPosition
	for _, p := range s.data {
		if p.Asset == asset {
			copy := *p
			result = append(result, &copy)
		}
	}

	sortPositions(result)
	return result, nil
}

func sortPositions(positions []*domain.SimulatedPosition) {
	sort.Slice(positions, func(i, j int) bool {
		if positions[i].EntryTime != positions[j].EntryTime {
			return positions[i].EntryTime < positions[j].EntryTime
		}
		return positions[i].PositionID < positions[j].PositionID
	})
}

var _ storage.PositionStore = (*PositionStore)(nil)
