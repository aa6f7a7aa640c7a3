package strategy

import (
	"context"

	"solana-launch-backtest/internal/config"
	"solana-launch-backtest/internal/domain"
	"solana-launch-backtest/internal/lookup"
)

// CopyTrade mirrors the first sufficiently large buy from a graded wallet
// inside the copy window. Entry is taken at the window aligned with that
// buy, so the fill lags the copied trade by at most the alignment
// tolerance.
type CopyTrade struct {
	cfg         config.CopyTrade
	minTier     domain.WalletTier
	spotRateUSD float64
}

var _ Strategy = (*CopyTrade)(nil)

func NewCopyTrade(cfg config.CopyTrade, spotRateUSD float64) *CopyTrade {
	return &CopyTrade{
		cfg:         cfg,
		minTier:     domain.WalletTier(cfg.MinTier),
		spotRateUSD: spotRateUSD,
	}
}

func (s *CopyTrade) ID() string { return domain.StrategyCopyTrade }

func (s *CopyTrade) Simulate(_ context.Context, in *Input) (*domain.SimulatedPosition, error) {
	copied := s.firstReputableBuy(in)
	if copied == nil {
		return nil, nil
	}

	tradeOff := copied.BlockTime - in.Launch.LaunchTime
	entry, ok := s.alignedEntry(in, tradeOff)
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

// firstReputableBuy scans the copy window in time order and returns the
// first buy meeting the size and tier floors.
func (s *CopyTrade) firstReputableBuy(in *Input) *domain.TradeEvent {
	window := lookup.TradesInOffsetRange(in.Trades, in.Launch.LaunchTime, 0, s.cfg.CopyWindowSec)
	for _, t := range window {
		if !t.IsBuy() || t.AmountSOL < s.cfg.MinCopySOL {
			continue
		}
		if in.TierOf(t.Trader).AtLeast(s.minTier) {
			return t
		}
	}
	return nil
}

// alignedEntry picks the first window whose offset is within the alignment
// tolerance of the copied trade's offset.
func (s *CopyTrade) alignedEntry(in *Input, tradeOff int64) (entryPoint, bool) {
	for _, w := range in.Windows {
		off := w.Offset(in.Launch.LaunchTime)
		d := off - tradeOff
		if d < 0 {
			d = -d
		}
		if d > s.cfg.AlignToleranceSec || w.Close <= 0 {
			continue
		}
		return entryPoint{Time: w.StartTime, Offset: off, Price: w.Close}, true
	}
	return entryPoint{}, false
}
