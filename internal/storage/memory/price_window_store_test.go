package memory

import (
	"context"
	"errors"
	"testing"

	"solana-launch-backtest/internal/domain"
	"solana-launch-backtest/internal/storage"
)

func TestPriceWindowStore_InsertBulkAndGet(t *testing.T) {
	store := NewPriceWindowStore()
	ctx := context.Background()

	windows := []*domain.PriceWindow{
		{Asset: "mint1", WindowSec: 60, StartTime: 1120, EndTime: 1180, Close: 1.1},
		{Asset: "mint1", WindowSec: 60, StartTime: 1000, EndTime: 1060, Close: 1.0},
		{Asset: "mint1", WindowSec: 300, StartTime: 1000, EndTime: 1300, Close: 1.0},
	}
	if err := store.InsertBulk(ctx, windows); err != nil {
		t.Fatalf("InsertBulk failed: %v", err)
	}

	result, err := store.GetByTimeRange(ctx, "mint1", 60, 0, 2000)
	if err != nil {
		t.Fatalf("GetByTimeRange failed: %v", err)
	}
	if len(result) != 2 {
		t.Fatalf("Expected 2 one-minute windows, got %d", len(result))
	}
	if result[0].StartTime != 1000 || result[1].StartTime != 1120 {
		t.Errorf("Windows not ordered by start time")
	}
}

func TestPriceWindowStore_DuplicateKey(t *testing.T) {
	store := NewPriceWindowStore()
	ctx := context.Background()

	w := &domain.PriceWindow{Asset: "mint1", WindowSec: 60, StartTime: 1000, Close: 1.0}
	if err := store.InsertBulk(ctx, []*domain.PriceWindow{w}); err != nil {
		t.Fatalf("First insert failed: %v", err)
	}
	err := store.InsertBulk(ctx, []*domain.PriceWindow{w})
	if !errors.Is(err, storage.ErrDuplicateKey) {
		t.Errorf("Expected ErrDuplicateKey, got %v", err)
	}
}

func TestPriceWindowStore_GranularityIsolated(t *testing.T) {
	store := NewPriceWindowStore()
	ctx := context.Background()

	windows := []*domain.PriceWindow{
		{Asset: "mint1", WindowSec: 60, StartTime: 1000, Close: 1.0},
		{Asset: "mint1", WindowSec: 300, StartTime: 1000, Close: 1.0},
	}
	if err := store.InsertBulk(ctx, windows); err != nil {
		t.Fatalf("InsertBulk failed: %v", err)
	}

	result, _ := store.GetByTimeRange(ctx, "mint1", 300, 0, 2000)
	if len(result) != 1 || result[0].WindowSec != 300 {
		t.Errorf("Expected only the 300s window, got %+v", result)
	}
}
