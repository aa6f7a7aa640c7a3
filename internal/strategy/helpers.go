package strategy

import (
	"solana-launch-backtest/internal/domain"
	"solana-launch-backtest/internal/idhash"
	"solana-launch-backtest/internal/lookup"
)

// enterAt finds the entry window inside [lo, hi] offsets and pins the
// entry to its close. Degenerate windows with a non-positive close yield
// no entry.
func enterAt(in *Input, lo, hi int64) (entryPoint, bool) {
	w := lookup.FirstWindowInOffsetRange(in.Windows, in.Launch.LaunchTime, lo, hi)
	if w == nil || w.Close <= 0 {
		return entryPoint{}, false
	}
	return entryPoint{
		Time:   w.StartTime,
		Offset: w.Offset(in.Launch.LaunchTime),
		Price:  w.Close,
	}, true
}

// volumeInOffsetRange sums window volume over [lo, hi] offsets.
func volumeInOffsetRange(windows []*domain.PriceWindow, launchTime, lo, hi int64) float64 {
	var total float64
	for _, w := range windows {
		off := w.Offset(launchTime)
		if off < lo || off > hi {
			continue
		}
		total += w.VolumeSOL
	}
	return total
}

// settle builds the immutable position record from an entry, a resolved
// exit, and the size in SOL. P&L is computed in SOL and converted at the
// fixed spot rate.
func settle(strategyID, asset string, entry entryPoint, out exitOutcome, sizeSOL, spotRateUSD float64) *domain.SimulatedPosition {
	pnlSOL := sizeSOL * (out.Price - entry.Price) / entry.Price
	return &domain.SimulatedPosition{
		PositionID: idhash.ComputePositionID(strategyID, asset, entry.Time),
		StrategyID: strategyID,
		Asset:      asset,
		EntryTime:  entry.Time,
		EntryPrice: entry.Price,
		ExitTime:   out.Time,
		ExitPrice:  out.Price,
		ExitReason: out.Reason,
		SizeSOL:    sizeSOL,
		PnLSOL:     pnlSOL,
		PnLUSD:     pnlSOL * spotRateUSD,
	}
}
