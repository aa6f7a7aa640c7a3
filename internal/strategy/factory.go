package strategy

import (
	"fmt"

	"solana-launch-backtest/internal/config"
	"solana-launch-backtest/internal/domain"
)

var validTiers = map[string]struct{}{
	string(domain.TierS): {},
	string(domain.TierA): {},
	string(domain.TierB): {},
	string(domain.TierC): {},
	string(domain.TierD): {},
}

// FromConfig builds the fixed variant set in a deterministic order, so a
// batch's strategy statistics always land in the same report positions.
func FromConfig(cfg *config.Config) ([]Strategy, error) {
	if _, ok := validTiers[cfg.Strategies.CopyTrade.MinTier]; !ok {
		return nil, fmt.Errorf("copy_trade: unknown wallet tier %q", cfg.Strategies.CopyTrade.MinTier)
	}

	return []Strategy{
		NewQuickScalp(cfg.Strategies.QuickScalp, cfg.SpotRateUSD),
		NewRankBased(cfg.Strategies.RankBased, cfg.SpotRateUSD),
		NewMomentum(cfg.Strategies.Momentum, cfg.SpotRateUSD),
		NewCopyTrade(cfg.Strategies.CopyTrade, cfg.SpotRateUSD),
		NewLateOpportunity(cfg.Strategies.LateOpportunity, cfg.SpotRateUSD),
		NewScoreGated(cfg.Strategies.ScoreGated, cfg.TokenSupply, cfg.SpotRateUSD),
	}, nil
}
