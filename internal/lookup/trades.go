package lookup

import "solana-launch-backtest/internal/domain"

// TradesInOffsetRange returns the events whose block-time offset from launch
// falls inside [lo, hi] (inclusive). Input must be ordered by block time.
func TradesInOffsetRange(trades []*domain.TradeEvent, launchTime, lo, hi int64) []*domain.TradeEvent {
	var out []*domain.TradeEvent
	for _, t := range trades {
		off := t.BlockTime - launchTime
		if off < lo {
			continue
		}
		if off > hi {
			break
		}
		out = append(out, t)
	}
	return out
}

// BuyStats summarizes buy-side activity in a trade slice: the number of
// distinct buying wallets and the total buy volume in SOL.
func BuyStats(trades []*domain.TradeEvent) (buyers int, volumeSOL float64) {
	seen := make(map[string]struct{})
	for _, t := range trades {
		if !t.IsBuy() {
			continue
		}
		volumeSOL += t.AmountSOL
		if _, ok := seen[t.Trader]; !ok {
			seen[t.Trader] = struct{}{}
			buyers++
		}
	}
	return buyers, volumeSOL
}

// BuyVolumeByTrader accumulates buy volume per wallet.
func BuyVolumeByTrader(trades []*domain.TradeEvent) map[string]float64 {
	volumes := make(map[string]float64)
	for _, t := range trades {
		if t.IsBuy() {
			volumes[t.Trader] += t.AmountSOL
		}
	}
	return volumes
}
