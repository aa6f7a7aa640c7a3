package memory

import (
	"context"
	"sort"
	"sync"

	"solana-launch-backtest/internal/domain"
	"solana-launch-backtest/internal/storage"
)

// TradeEventStore is an in-memory implementation of storage.TradeEventStore.
// Trade ticks are append-only: the same trader may trade the same asset at
// the same second, so there is no uniqueness key.
type TradeEventStore struct {
	mu   sync.RWMutex
	data map[string][]*domain.TradeEvent // keyed by asset
}

// NewTradeEventStore creates a new in-memory trade event store.
func NewTradeEventStore() *TradeEventStore {
	return &TradeEventStore{
		data: make(map[string][]*domain.TradeEvent),
	}
}

// InsertBulk adds multiple events. Append-only.
func (s *TradeEventStore) InsertBulk(_ context.Context, events []*domain.TradeEvent) error {
	if len(events) == 0 {
		return nil
	}

	for _, e := range events {
		if e == nil || e.Asset == "" || e.Trader == "" {
			return storage.ErrInvalidInput
		}
		if e.Side != domain.SideBuy && e.Side != domain.SideSell {
			return storage.ErrInvalidInput
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range events {
		copy := *e
		s.data[e.Asset] = append(s.data[e.Asset], &copy)
	}

	return nil
}

// GetByTimeRange retrieves events for an asset within [start, end]
// (inclusive), ordered by block time ASC.
func (s *TradeEventStore) GetByTimeRange(_ context.Context, asset string, start, end int64) ([]*domain.TradeEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.TradeEvent
	for _, e := range s.data[asset] {
		if e.BlockTime >= start && e.BlockTime <= end {
			copy := *e
			result = append(result, &copy)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].BlockTime != result[j].BlockTime {
			return result[i].BlockTime < result[j].BlockTime
		}
		return result[i].Trader < result[j].Trader
	})

	return result, nil
}

var _ storage.TradeEventStore = (*TradeEventStore)(nil)
