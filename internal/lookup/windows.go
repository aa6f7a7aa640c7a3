// Package lookup provides temporal windowing primitives over time-ordered
// historical records. All functions assume input slices sorted ascending,
// which every store guarantees.
package lookup

import (
	"errors"

	"solana-launch-backtest/internal/domain"
)

// ErrNoPriceData is returned when a price is requested and no windows exist.
var ErrNoPriceData = errors.New("no price data available")

// FirstWindowInOffsetRange returns the first window whose start offset from
// launch falls inside [lo, hi] (inclusive). Returns nil when no window
// qualifies; gaps in window coverage are expected.
func FirstWindowInOffsetRange(windows []*domain.PriceWindow, launchTime, lo, hi int64) *domain.PriceWindow {
	for _, w := range windows {
		off := w.Offset(launchTime)
		if off >= lo && off <= hi {
			return w
		}
		if off > hi {
			break
		}
	}
	return nil
}

// WindowAtOrBefore returns the latest window whose start is at or before
// target, or nil when every window starts later.
func WindowAtOrBefore(windows []*domain.PriceWindow, target int64) *domain.PriceWindow {
	for i := len(windows) - 1; i >= 0; i-- {
		if windows[i].StartTime <= target {
			return windows[i]
		}
	}
	return nil
}

// PriceAt returns the close of the window at or before target. When every
// window starts after target, the first available close is used, matching
// replay semantics for assets whose first trade lags the query instant.
// Returns ErrNoPriceData when the slice is empty.
func PriceAt(windows []*domain.PriceWindow, target int64) (float64, error) {
	if len(windows) == 0 {
		return 0, ErrNoPriceData
	}
	if w := WindowAtOrBefore(windows, target); w != nil {
		return w.Close, nil
	}
	return windows[0].Close, nil
}

// WindowsAfterOffset returns the suffix of windows whose start offset from
// launch is strictly greater than off.
func WindowsAfterOffset(windows []*domain.PriceWindow, launchTime, off int64) []*domain.PriceWindow {
	for i, w := range windows {
		if w.Offset(launchTime) > off {
			return windows[i:]
		}
	}
	return nil
}
