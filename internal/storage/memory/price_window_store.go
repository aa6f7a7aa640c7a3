package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"solana-launch-backtest/internal/domain"
	"solana-launch-backtest/internal/storage"
)

// PriceWindowStore is an in-memory implementation of storage.PriceWindowStore.
type PriceWindowStore struct {
	mu   sync.RWMutex
	data map[string]*domain.PriceWindow // keyed by (asset, window_sec, start_time)
}

// NewPriceWindowStore creates a new in-memory price window store.
func NewPriceWindowStore() *PriceWindowStore {
	return &PriceWindowStore{
		data: make(map[string]*domain.PriceWindow),
	}
}

// windowKey generates a unique key for a window.
func windowKey(asset string, windowSec int, startTime int64) string {
	return fmt.Sprintf("%s|%d|%d", asset, windowSec, startTime)
}

// InsertBulk adds multiple windows. Fails entire batch on duplicate
// (asset, window_sec, start_time).
func (s *PriceWindowStore) InsertBulk(_ context.Context, windows []*domain.PriceWindow) error {
	if len(windows) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Track keys in this batch to detect intra-batch duplicates
	batchKeys := make(map[string]struct{}, len(windows))

	for _, w := range windows {
		if w == nil || w.Asset == "" || w.WindowSec <= 0 {
			return storage.ErrInvalidInput
		}
		key := windowKey(w.Asset, w.WindowSec, w.StartTime)

		if _, exists := s.data[key]; exists {
			return storage.ErrDuplicateKey
		}
		if _, exists := batchKeys[key]; exists {
			return storage.ErrDuplicateKey
		}
		batchKeys[key] = struct{}{}
	}

	for _, w := range windows {
		key := windowKey(w.Asset, w.WindowSec, w.StartTime)
		copy := *w
		s.data[key] = &copy
	}

	return nil
}

// GetByTimeRange retrieves windows of one granularity for an asset with
// StartTime within [start, end] (inclusive), ordered by start time ASC.
func (s *PriceWindowStore) GetByTimeRange(_ context.Context, asset string, windowSec int, start, end int64) ([]*domain.PriceWindow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.PriceWindow
	for _, w := range s.data {
		if w.Asset == asset && w.WindowSec == windowSec && w.StartTime >= start && w.StartTime <= end {
			copy := *w
			result = append(result, &copy)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].StartTime < result[j].StartTime
	})

	return result, nil
}

var _ storage.PriceWindowStore = (*PriceWindowStore)(nil)
