package strategy

import "solana-launch-backtest/internal/domain"

// entryPoint pins the instant and price a strategy entered at.
type entryPoint struct {
	Time   int64
	Offset int64
	Price  float64
}

// exitRule checks one exit condition against a single window and, when it
// fires, names the exit price. Rules are evaluated in declaration order
// inside each window, so earlier rules win ties deterministically.
type exitRule struct {
	reason string
	eval   func(w *domain.PriceWindow) (price float64, ok bool)
}

// targetRule fires when the window high reaches entry*mult; the fill is
// pinned to the target level, not the high.
func targetRule(entryPrice, mult float64) exitRule {
	level := entryPrice * mult
	return exitRule{
		reason: domain.ExitReasonTarget,
		eval: func(w *domain.PriceWindow) (float64, bool) {
			if w.High >= level {
				return level, true
			}
			return 0, false
		},
	}
}

// stopRule fires when the window low breaks below entry*mult; the fill is
// pinned to the stop level.
func stopRule(entryPrice, mult float64) exitRule {
	level := entryPrice * mult
	return exitRule{
		reason: domain.ExitReasonStop,
		eval: func(w *domain.PriceWindow) (float64, bool) {
			if w.Low < level {
				return level, true
			}
			return 0, false
		},
	}
}

// marketCapRule fires when the implied market cap at the window high
// reaches thresholdSOL; the fill is the window close.
func marketCapRule(tokenSupply, thresholdSOL float64) exitRule {
	return exitRule{
		reason: domain.ExitReasonThreshold,
		eval: func(w *domain.PriceWindow) (float64, bool) {
			if w.High*tokenSupply >= thresholdSOL {
				return w.Close, true
			}
			return 0, false
		},
	}
}

// exitOutcome is the resolved end of a position.
type exitOutcome struct {
	Time   int64
	Price  float64
	Reason string

	// PeakHigh is the highest window high observed between entry and
	// exit, entry window excluded. Zero when no window was scanned.
	PeakHigh float64
}

// resolveExit walks the windows strictly after the entry offset in time
// order and closes the position on the first rule that fires. Within a
// window, rules apply in order and the hold timeout comes last: a window
// whose offset reaches entry+maxHoldSec exits at its close. When the
// window series ends before any rule fires, the position closes at the
// last observed close (the entry price if nothing followed) with the hold
// deadline as the exit instant.
func resolveExit(windows []*domain.PriceWindow, launchTime int64, entry entryPoint, rules []exitRule, maxHoldSec int64) exitOutcome {
	deadline := entry.Offset + maxHoldSec
	lastClose := entry.Price
	peakHigh := 0.0

	for _, w := range windows {
		off := w.Offset(launchTime)
		if off <= entry.Offset {
			continue
		}
		if w.High > peakHigh {
			peakHigh = w.High
		}
		for _, r := range rules {
			if price, ok := r.eval(w); ok {
				return exitOutcome{Time: w.StartTime, Price: price, Reason: r.reason, PeakHigh: peakHigh}
			}
		}
		if off >= deadline {
			return exitOutcome{Time: w.StartTime, Price: w.Close, Reason: domain.ExitReasonTime, PeakHigh: peakHigh}
		}
		lastClose = w.Close
	}

	return exitOutcome{
		Time:     entry.Time + maxHoldSec,
		Price:    lastClose,
		Reason:   domain.ExitReasonTime,
		PeakHigh: peakHigh,
	}
}
