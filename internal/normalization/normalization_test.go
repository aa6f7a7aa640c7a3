package normalization

import (
	"errors"
	"math"
	"testing"

	"solana-launch-backtest/internal/domain"
)

func normWindow(asset string, start int64) *domain.PriceWindow {
	return &domain.PriceWindow{
		Asset:     asset,
		WindowSec: domain.WindowSec1Min,
		StartTime: start,
		Open:      1.0,
		High:      1.2,
		Low:       0.9,
		Close:     1.1,
	}
}

func TestSortTrades_Deterministic(t *testing.T) {
	trades := []*domain.TradeEvent{
		{Asset: "b", BlockTime: 10, Trader: "w1"},
		{Asset: "a", BlockTime: 20, Trader: "w2"},
		{Asset: "a", BlockTime: 10, Trader: "w3"},
		{Asset: "a", BlockTime: 10, Trader: "w1"},
	}

	SortTrades(trades)

	want := []string{"w1", "w3", "w2", "w1"}
	for i, trader := range want {
		if trades[i].Trader != trader {
			t.Errorf("position %d: got %s, want %s", i, trades[i].Trader, trader)
		}
	}
	if trades[3].Asset != "b" {
		t.Errorf("asset b should sort last, got %s", trades[3].Asset)
	}
}

func TestNormalizeWindows_FillsDerivedFields(t *testing.T) {
	w := normWindow("mint", 100)
	w.EndTime = 0
	w.Volatility = 0

	if err := NormalizeWindows([]*domain.PriceWindow{w}); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if w.EndTime != 160 {
		t.Errorf("EndTime = %d, want 160", w.EndTime)
	}
	if math.Abs(w.Volatility-0.3) > 1e-9 {
		t.Errorf("Volatility = %v, want 0.3", w.Volatility)
	}
}

func TestNormalizeWindows_SortsBeforeChecking(t *testing.T) {
	windows := []*domain.PriceWindow{
		normWindow("mint", 220),
		normWindow("mint", 100),
		normWindow("mint", 160),
	}

	if err := NormalizeWindows(windows); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	for i := 1; i < len(windows); i++ {
		if windows[i].StartTime <= windows[i-1].StartTime {
			t.Fatalf("windows not sorted at %d", i)
		}
	}
}

func TestNormalizeWindows_RejectsDuplicates(t *testing.T) {
	windows := []*domain.PriceWindow{normWindow("mint", 100), normWindow("mint", 100)}
	if err := NormalizeWindows(windows); !errors.Is(err, ErrDuplicateWindow) {
		t.Errorf("got %v, want ErrDuplicateWindow", err)
	}
}

func TestNormalizeWindows_RejectsOverlap(t *testing.T) {
	a := normWindow("mint", 100)
	a.EndTime = 200
	b := normWindow("mint", 150)

	if err := NormalizeWindows([]*domain.PriceWindow{a, b}); !errors.Is(err, ErrOverlappingWindows) {
		t.Errorf("got %v, want ErrOverlappingWindows", err)
	}
}

func TestNormalizeWindows_SeparateSeriesDoNotCollide(t *testing.T) {
	a := normWindow("mint", 100)
	b := normWindow("other", 100)
	c := normWindow("mint", 100)
	c.WindowSec = 300

	if err := NormalizeWindows([]*domain.PriceWindow{a, b, c}); err != nil {
		t.Errorf("distinct series must not collide: %v", err)
	}
}

func TestNormalizeWindows_RejectsInvertedBounds(t *testing.T) {
	w := normWindow("mint", 100)
	w.High = 0.5

	if err := NormalizeWindows([]*domain.PriceWindow{w}); !errors.Is(err, ErrInvertedBounds) {
		t.Errorf("got %v, want ErrInvertedBounds", err)
	}
}
