package scoring

import (
	"fmt"
	"sort"

	"solana-launch-backtest/internal/domain"
	"solana-launch-backtest/internal/lookup"
)

// Each signal is a pure function over already-loaded records. Absence of
// supporting data yields contribution 0 with a diagnostic label, never an
// error; none of the signals depends on another having run.

// signalCreatorReputation grades the launch creator's track record.
// Bound: [0, 2.0].
func signalCreatorReputation(rep *domain.WalletReputation) domain.SignalResult {
	if rep == nil {
		return domain.SignalResult{Label: "no_creator_data"}
	}

	pnl := rep.NetPnLSOL
	count := rep.CreateCount
	switch {
	case pnl >= 500 && count >= 5:
		return domain.SignalResult{Contribution: 2.0, Label: fmt.Sprintf("proven_%.0fSOL_%dtokens", pnl, count)}
	case pnl >= 200 && count >= 3:
		return domain.SignalResult{Contribution: 1.5, Label: fmt.Sprintf("good_%.0fSOL_%dtokens", pnl, count)}
	case pnl >= 50:
		return domain.SignalResult{Contribution: 1.0, Label: fmt.Sprintf("profitable_%.0fSOL", pnl)}
	default:
		return domain.SignalResult{Label: fmt.Sprintf("unprofitable_%.0fSOL", pnl)}
	}
}

// signalEarlyBuyerSpeed counts distinct buyers in the early window.
// Bound: [0, 2.0].
func signalEarlyBuyerSpeed(earlyTrades []*domain.TradeEvent) domain.SignalResult {
	buyers, _ := lookup.BuyStats(earlyTrades)
	switch {
	case buyers == 0:
		return domain.SignalResult{Label: "no_buyers"}
	case buyers >= 10:
		return domain.SignalResult{Contribution: 2.0, Label: fmt.Sprintf("%dbuyers", buyers)}
	case buyers >= 7:
		return domain.SignalResult{Contribution: 1.5, Label: fmt.Sprintf("%dbuyers", buyers)}
	case buyers >= 5:
		return domain.SignalResult{Contribution: 1.0, Label: fmt.Sprintf("%dbuyers", buyers)}
	default:
		return domain.SignalResult{Label: fmt.Sprintf("%dbuyers", buyers)}
	}
}

// signalLiquidityRatio relates seeded liquidity to the market cap implied by
// the evaluation-instant price. A thin ratio means the pool can be moved
// cheaply. Bound: [0, 1.5]. Undefined without price data.
func signalLiquidityRatio(initialLiquiditySOL, price, supply float64) domain.SignalResult {
	if price <= 0 {
		return domain.SignalResult{Label: "no_price_data"}
	}
	marketCap := price * supply
	if marketCap <= 0 {
		return domain.SignalResult{Label: "zero_mc"}
	}

	ratio := initialLiquiditySOL / marketCap
	switch {
	case ratio < 0.03:
		return domain.SignalResult{Contribution: 1.5, Label: fmt.Sprintf("ratio_%.1f%%", ratio*100)}
	case ratio < 0.05:
		return domain.SignalResult{Contribution: 1.0, Label: fmt.Sprintf("ratio_%.1f%%", ratio*100)}
	default:
		return domain.SignalResult{Label: fmt.Sprintf("ratio_%.1f%%_thin", ratio*100)}
	}
}

// signalReputableOverlap counts distinct buyers up to the evaluation
// instant graded tier B or better (top 3 of 5). Bound: [0, 2.0].
func signalReputableOverlap(evalTrades []*domain.TradeEvent, tierOf func(wallet string) domain.WalletTier) domain.SignalResult {
	seen := make(map[string]struct{})
	winners := 0
	for _, t := range evalTrades {
		if !t.IsBuy() {
			continue
		}
		if _, ok := seen[t.Trader]; ok {
			continue
		}
		seen[t.Trader] = struct{}{}
		if tierOf(t.Trader).AtLeast(domain.TierB) {
			winners++
		}
	}

	switch {
	case winners >= 3:
		return domain.SignalResult{Contribution: 2.0, Label: fmt.Sprintf("%d_winners", winners)}
	case winners == 2:
		return domain.SignalResult{Contribution: 1.5, Label: "2_winners"}
	case winners == 1:
		return domain.SignalResult{Contribution: 1.0, Label: "1_winner"}
	default:
		return domain.SignalResult{Label: "no_overlap"}
	}
}

// signalBuyConcentration measures what share of buy volume the top-3 buyers
// hold. Concentration is undefined below 3 distinct buyers. Bound: [0, 1.0].
func signalBuyConcentration(evalTrades []*domain.TradeEvent) domain.SignalResult {
	volumes := lookup.BuyVolumeByTrader(evalTrades)
	if len(volumes) < 3 {
		return domain.SignalResult{Label: fmt.Sprintf("%dbuyers_flagged", len(volumes))}
	}

	total := 0.0
	sorted := make([]float64, 0, len(volumes))
	for _, v := range volumes {
		total += v
		sorted = append(sorted, v)
	}
	if total <= 0 {
		return domain.SignalResult{Label: "no_volume"}
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))

	top3 := sorted[0] + sorted[1] + sorted[2]
	share := top3 / total * 100
	switch {
	case share < 70:
		return domain.SignalResult{Contribution: 1.0, Label: fmt.Sprintf("%.1f%%_healthy", share)}
	case share < 80:
		return domain.SignalResult{Contribution: 0.5, Label: fmt.Sprintf("%.1f%%_moderate", share)}
	default:
		return domain.SignalResult{Label: fmt.Sprintf("%.1f%%_high_risk", share)}
	}
}

// signalVolumeAcceleration compares buy volume in the last half of the
// acceleration window against the preceding half. Both sides must clear the
// minimum floor or the ratio is undefined. Bound: [0, 1.5].
func signalVolumeAcceleration(recentVolSOL, baselineVolSOL, floorSOL float64) domain.SignalResult {
	if baselineVolSOL <= floorSOL || recentVolSOL <= floorSOL {
		return domain.SignalResult{Label: "no_baseline"}
	}

	accel := recentVolSOL / baselineVolSOL
	switch {
	case accel >= 2.0:
		return domain.SignalResult{Contribution: 1.5, Label: fmt.Sprintf("%.2fX_explosive", accel)}
	case accel >= 1.5:
		return domain.SignalResult{Contribution: 1.0, Label: fmt.Sprintf("%.2fX_strong", accel)}
	default:
		return domain.SignalResult{Label: fmt.Sprintf("%.2fX_low", accel)}
	}
}

// signalMarketCapVelocity measures price-implied market-cap growth,
// normalized to SOL per minute. Bound: [0, 3.0].
func signalMarketCapVelocity(mcNow, mcPrev float64, lookbackSec int64) domain.SignalResult {
	if mcNow <= 0 {
		return domain.SignalResult{Label: "no_current_price"}
	}
	if mcPrev <= 0 {
		return domain.SignalResult{Label: "no_baseline_price"}
	}

	velocity := (mcNow - mcPrev) * 60 / float64(lookbackSec)
	switch {
	case velocity >= 1000:
		return domain.SignalResult{Contribution: 3.0, Label: fmt.Sprintf("%.0fSOL/min_explosive", velocity)}
	case velocity >= 500:
		return domain.SignalResult{Contribution: 2.0, Label: fmt.Sprintf("%.0fSOL/min_strong", velocity)}
	case velocity >= 200:
		return domain.SignalResult{Contribution: 1.0, Label: fmt.Sprintf("%.0fSOL/min_moderate", velocity)}
	default:
		return domain.SignalResult{Label: fmt.Sprintf("%.0fSOL/min_low", velocity)}
	}
}
