package strategy

import (
	"context"

	"solana-launch-backtest/internal/config"
	"solana-launch-backtest/internal/domain"
	"solana-launch-backtest/internal/lookup"
)

// LateOpportunity waits twenty minutes and only trades assets still
// attracting fresh buyers, betting on survivors rather than launches.
type LateOpportunity struct {
	cfg         config.LateOpportunity
	spotRateUSD float64
}

var _ Strategy = (*LateOpportunity)(nil)

func NewLateOpportunity(cfg config.LateOpportunity, spotRateUSD float64) *LateOpportunity {
	return &LateOpportunity{cfg: cfg, spotRateUSD: spotRateUSD}
}

func (s *LateOpportunity) ID() string { return domain.StrategyLateOpportunity }

func (s *LateOpportunity) Simulate(_ context.Context, in *Input) (*domain.SimulatedPosition, error) {
	window := lookup.TradesInOffsetRange(in.Trades, in.Launch.LaunchTime, s.cfg.EntryStartSec, s.cfg.EntryEndSec)
	buyers, buyVol := lookup.BuyStats(window)
	if buyers < s.cfg.MinBuyers || buyVol < s.cfg.MinBuyVolumeSOL {
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
