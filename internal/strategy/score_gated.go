package strategy

import (
	"context"

	"solana-launch-backtest/internal/config"
	"solana-launch-backtest/internal/domain"
)

// ScoreGated is the only strategy driven by the composite score: entry
// requires a qualifying score, size and exit multipliers come from the
// score bracket, and an absolute market-cap exit outranks target and stop.
type ScoreGated struct {
	cfg         config.ScoreGated
	tokenSupply float64
	spotRateUSD float64
}

var _ Strategy = (*ScoreGated)(nil)

func NewScoreGated(cfg config.ScoreGated, tokenSupply, spotRateUSD float64) *ScoreGated {
	return &ScoreGated{cfg: cfg, tokenSupply: tokenSupply, spotRateUSD: spotRateUSD}
}

func (s *ScoreGated) ID() string { return domain.StrategyScoreGated }

func (s *ScoreGated) Simulate(_ context.Context, in *Input) (*domain.SimulatedPosition, error) {
	if in.Score == nil {
		return nil, nil
	}
	sizing, ok := s.cfg.BracketFor(in.Score.Total)
	if !ok {
		return nil, nil
	}

	entry, entered := enterAt(in, s.cfg.EntryStartSec, s.cfg.EntryEndSec)
	if !entered {
		return nil, nil
	}

	rules := []exitRule{
		marketCapRule(s.tokenSupply, s.cfg.ThresholdMarketCapSOL),
		targetRule(entry.Price, sizing.TargetMult),
		stopRule(entry.Price, sizing.StopMult),
	}
	out := resolveExit(in.Windows, in.Launch.LaunchTime, entry, rules, s.cfg.MaxHoldSec)

	pos := settle(s.ID(), in.Launch.Asset, entry, out, sizing.SizeSOL, s.spotRateUSD)
	pos.Score = in.Score.Total
	pos.Bracket = domain.BracketFor(in.Score.Total)
	pos.PeakMarketCapSOL = out.PeakHigh * s.tokenSupply
	return pos, nil
}
