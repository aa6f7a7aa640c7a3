package strategy

import (
	"context"

	"solana-launch-backtest/internal/config"
	"solana-launch-backtest/internal/domain"
)

// RankBased only trades assets whose first five minutes move enough
// aggregate volume to rank among the active launches.
type RankBased struct {
	cfg         config.RankBased
	spotRateUSD float64
}

var _ Strategy = (*RankBased)(nil)

func NewRankBased(cfg config.RankBased, spotRateUSD float64) *RankBased {
	return &RankBased{cfg: cfg, spotRateUSD: spotRateUSD}
}

func (s *RankBased) ID() string { return domain.StrategyRankBased }

func (s *RankBased) Simulate(_ context.Context, in *Input) (*domain.SimulatedPosition, error) {
	vol := volumeInOffsetRange(in.Windows, in.Launch.LaunchTime, 0, 300)
	if vol < s.cfg.MinVolume5MinSOL {
		return nil, nil
	}

	entry, ok := enterAt(in, s.cfg.EntryStartSec, s.cfg.EntryEndSec)
	if !ok {
		return nil, nil
	}

	rules := []exitRule{
		targetRule(entry.Price, s.cfg.TargetMult),
		stopRule(entry.Price, s.cfg.StopMult),
	}
	out := resolveExit(in.Windows, in.Launch.LaunchTime, entry, rules, s.cfg.MaxHoldSec)

	size := s.cfg.PositionUSD / s.spotRateUSD
	return settle(s.ID(), in.Launch.Asset, entry, out, size, s.spotRateUSD), nil
}
