// Package normalization prepares raw historical records for replay:
// deterministic ordering, derivable-field fill-in, and series integrity
// checks. Fixture and ingest paths run through here before any store insert.
package normalization

import (
	"errors"
	"fmt"
	"sort"

	"solana-launch-backtest/internal/domain"
)

// Series integrity errors.
var (
	ErrOverlappingWindows = errors.New("price windows overlap")
	ErrDuplicateWindow    = errors.New("duplicate price window")
	ErrInvertedBounds     = errors.New("window high is below low")
)

// SortTrades orders trade events by (asset, block_time, trader). Ties on
// block time are broken by trader so repeated normalization of the same
// input yields the same order.
func SortTrades(trades []*domain.TradeEvent) {
	sort.Slice(trades, func(i, j int) bool {
		return compareTrades(trades[i], trades[j]) < 0
	})
}

// SortWindows orders windows by (asset, window_sec, start_time).
func SortWindows(windows []*domain.PriceWindow) {
	sort.Slice(windows, func(i, j int) bool {
		return compareWindows(windows[i], windows[j]) < 0
	})
}

// NormalizeWindows sorts the slice, fills derivable fields, and checks
// series integrity. EndTime defaults to StartTime + WindowSec; Volatility
// is recomputed as (high-low)/open when the open is positive. Windows of
// one (asset, granularity) series must not duplicate or overlap.
func NormalizeWindows(windows []*domain.PriceWindow) error {
	SortWindows(windows)

	for i, w := range windows {
		if w.High < w.Low {
			return fmt.Errorf("%w: %s at %d", ErrInvertedBounds, w.Asset, w.StartTime)
		}
		if w.EndTime == 0 {
			w.EndTime = w.StartTime + int64(w.WindowSec)
		}
		if w.Open > 0 {
			w.Volatility = (w.High - w.Low) / w.Open
		}

		if i == 0 {
			continue
		}
		prev := windows[i-1]
		if !sameSeries(prev, w) {
			continue
		}
		if prev.StartTime == w.StartTime {
			return fmt.Errorf("%w: %s at %d", ErrDuplicateWindow, w.Asset, w.StartTime)
		}
		if prev.EndTime > w.StartTime {
			return fmt.Errorf("%w: %s at %d", ErrOverlappingWindows, w.Asset, w.StartTime)
		}
	}
	return nil
}

func sameSeries(a, b *domain.PriceWindow) bool {
	return a.Asset == b.Asset && a.WindowSec == b.WindowSec
}

func compareTrades(a, b *domain.TradeEvent) int {
	if a.Asset != b.Asset {
		if a.Asset < b.Asset {
			return -1
		}
		return 1
	}
	if a.BlockTime != b.BlockTime {
		if a.BlockTime < b.BlockTime {
			return -1
		}
		return 1
	}
	if a.Trader != b.Trader {
		if a.Trader < b.Trader {
			return -1
		}
		return 1
	}
	return 0
}

func compareWindows(a, b *domain.PriceWindow) int {
	if a.Asset != b.Asset {
		if a.Asset < b.Asset {
			return -1
		}
		return 1
	}
	if a.WindowSec != b.WindowSec {
		if a.WindowSec < b.WindowSec {
			return -1
		}
		return 1
	}
	if a.StartTime != b.StartTime {
		if a.StartTime < b.StartTime {
			return -1
		}
		return 1
	}
	return 0
}
