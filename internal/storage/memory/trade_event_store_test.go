package memory

import (
	"context"
	"errors"
	"testing"

	"solana-launch-backtest/internal/domain"
	"solana-launch-backtest/internal/storage"
)

func TestTradeEventStore_InsertBulkAndGet(t *testing.T) {
	store := NewTradeEventStore()
	ctx := context.Background()

	events := []*domain.TradeEvent{
		{Asset: "mint1", Trader: "w1", Side: domain.SideBuy, AmountSOL: 1.0, BlockTime: 2000},
		{Asset: "mint1", Trader: "w2", Side: domain.SideSell, AmountSOL: 0.5, BlockTime: 1000},
		{Asset: "mint2", Trader: "w1", Side: domain.SideBuy, AmountSOL: 2.0, BlockTime: 1500},
	}
	if err := store.InsertBulk(ctx, events); err != nil {
		t.Fatalf("InsertBulk failed: %v", err)
	}

	result, err := store.GetByTimeRange(ctx, "mint1", 0, 3000)
	if err != nil {
		t.Fatalf("GetByTimeRange failed: %v", err)
	}
	if len(result) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(result))
	}
	if result[0].BlockTime != 1000 || result[1].BlockTime != 2000 {
		t.Errorf("Events not ordered by block time: %d, %d", result[0].BlockTime, result[1].BlockTime)
	}
}

func TestTradeEventStore_AppendOnlyAllowsRepeats(t *testing.T) {
	store := NewTradeEventStore()
	ctx := context.Background()

	// The same trader hitting the same asset at the same second is
	// legitimate data, not a duplicate.
	event := &domain.TradeEvent{Asset: "mint1", Trader: "w1", Side: domain.SideBuy, AmountSOL: 1.0, BlockTime: 1000}
	if err := store.InsertBulk(ctx, []*domain.TradeEvent{event, event}); err != nil {
		t.Fatalf("InsertBulk failed: %v", err)
	}

	result, _ := store.GetByTimeRange(ctx, "mint1", 0, 2000)
	if len(result) != 2 {
		t.Errorf("Expected 2 events, got %d", len(result))
	}
}

func TestTradeEventStore_TimeRangeInclusive(t *testing.T) {
	store := NewTradeEventStore()
	ctx := context.Background()

	events := []*domain.TradeEvent{
		{Asset: "mint1", Trader: "w1", Side: domain.SideBuy, AmountSOL: 1, BlockTime: 1000},
		{Asset: "mint1", Trader: "w1", Side: domain.SideBuy, AmountSOL: 1, BlockTime: 2000},
		{Asset: "mint1", Trader: "w1", Side: domain.SideBuy, AmountSOL: 1, BlockTime: 3000},
	}
	if err := store.InsertBulk(ctx, events); err != nil {
		t.Fatalf("InsertBulk failed: %v", err)
	}

	result, _ := store.GetByTimeRange(ctx, "mint1", 1000, 2000)
	if len(result) != 2 {
		t.Errorf("Expected both boundary events, got %d", len(result))
	}
}

func TestTradeEventStore_RejectsInvalidSide(t *testing.T) {
	store := NewTradeEventStore()
	events := []*domain.TradeEvent{
		{Asset: "mint1", Trader: "w1", Side: "hold", AmountSOL: 1, BlockTime: 1000},
	}
	err := store.InsertBulk(context.Background(), events)
	if !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput, got %v", err)
	}
}
