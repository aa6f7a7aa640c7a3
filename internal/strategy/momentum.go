package strategy

import (
	"context"

	"solana-launch-backtest/internal/config"
	"solana-launch-backtest/internal/domain"
	"solana-launch-backtest/internal/lookup"
)

// Momentum qualifies on trade count, distinct buyers, and buy volume
// inside the second minute, then enters right after the lookback closes.
type Momentum struct {
	cfg         config.Momentum
	spotRateUSD float64
}

var _ Strategy = (*Momentum)(nil)

func NewMomentum(cfg config.Momentum, spotRateUSD float64) *Momentum {
	return &Momentum{cfg: cfg, spotRateUSD: spotRateUSD}
}

func (s *Momentum) ID() string { return domain.StrategyMomentum }

func (s *Momentum) Simulate(_ context.Context, in *Input) (*domain.SimulatedPosition, error) {
	lookback := lookup.TradesInOffsetRange(in.Trades, in.Launch.LaunchTime, s.cfg.QualifyStartSec, s.cfg.QualifyEndSec)
	if len(lookback) < s.cfg.MinTrades {
		return nil, nil
	}
	buyers, buyVol := lookup.BuyStats(lookback)
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
