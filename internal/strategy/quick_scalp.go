package strategy

import (
	"context"

	"solana-launch-backtest/internal/config"
	"solana-launch-backtest/internal/domain"
)

// QuickScalp enters every asset early and takes small symmetric exits.
// It has no qualification gate, so it doubles as the baseline strategy.
type QuickScalp struct {
	cfg         config.QuickScalp
	spotRateUSD float64
}

var _ Strategy = (*QuickScalp)(nil)

func NewQuickScalp(cfg config.QuickScalp, spotRateUSD float64) *QuickScalp {
	return &QuickScalp{cfg: cfg, spotRateUSD: spotRateUSD}
}

func (s *QuickScalp) ID() string { return domain.StrategyQuickScalp }

func (s *QuickScalp) Simulate(_ context.Context, in *Input) (*domain.SimulatedPosition, error) {
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
