// Package scoring computes the bounded seven-signal composite score used to
// grade an asset at an instant after its launch.
package scoring

import (
	"context"
	"errors"
	"fmt"

	"solana-launch-backtest/internal/config"
	"solana-launch-backtest/internal/domain"
	"solana-launch-backtest/internal/lookup"
	"solana-launch-backtest/internal/storage"
)

// Engine scores one asset at one evaluation instant. Every signal degrades
// to a zero contribution when its supporting records are missing; only
// infrastructure failures (a store error other than not-found) surface as
// errors.
type Engine struct {
	trades     storage.TradeEventStore
	windows    storage.PriceWindowStore
	reputation storage.ReputationStore
	cfg        *config.Config
}

// NewEngine creates a scoring engine over the market data repository.
func NewEngine(trades storage.TradeEventStore, windows storage.PriceWindowStore, reputation storage.ReputationStore, cfg *config.Config) *Engine {
	return &Engine{
		trades:     trades,
		windows:    windows,
		reputation: reputation,
		cfg:        cfg,
	}
}

// Score evaluates all seven signals for the launched asset at
// launch + evalOffsetSec.
func (e *Engine) Score(ctx context.Context, launch *domain.LaunchRecord, evalOffsetSec int64) (*domain.SignalScore, error) {
	evalTime := launch.LaunchTime + evalOffsetSec

	evalTrades, err := e.trades.GetByTimeRange(ctx, launch.Asset, launch.LaunchTime, evalTime)
	if err != nil {
		return nil, fmt.Errorf("load trades: %w", err)
	}

	windows, err := e.windows.GetByTimeRange(ctx, launch.Asset, domain.WindowSec1Min, launch.LaunchTime, evalTime)
	if err != nil {
		return nil, fmt.Errorf("load windows: %w", err)
	}

	creatorRep, err := e.lookupReputation(ctx, launch.Creator)
	if err != nil {
		return nil, err
	}

	score := e.scoreFromRecords(ctx, launch, evalTime, evalTrades, windows, creatorRep)
	return score, nil
}

// scoreFromRecords runs the seven signal functions over pre-loaded records.
func (e *Engine) scoreFromRecords(
	ctx context.Context,
	launch *domain.LaunchRecord,
	evalTime int64,
	evalTrades []*domain.TradeEvent,
	windows []*domain.PriceWindow,
	creatorRep *domain.WalletReputation,
) *domain.SignalScore {
	earlyTrades := lookup.TradesInOffsetRange(evalTrades, launch.LaunchTime, 0, e.cfg.Scoring.EarlyWindowSec)

	evalOffset := evalTime - launch.LaunchTime
	lookback := e.cfg.Scoring.VelocityLookbackSec
	_, recentVol := lookup.BuyStats(lookup.TradesInOffsetRange(evalTrades, launch.LaunchTime, evalOffset-lookback, evalOffset))
	_, baselineVol := lookup.BuyStats(lookup.TradesInOffsetRange(evalTrades, launch.LaunchTime, evalOffset-2*lookback, evalOffset-lookback-1))

	evalPrice := closeAtOrZero(windows, evalTime)
	prevPrice := closeAtOrZero(windows, evalTime-lookback)

	score := &domain.SignalScore{
		Asset:    launch.Asset,
		EvalTime: evalTime,

		CreatorReputation:  signalCreatorReputation(creatorRep),
		EarlyBuyerSpeed:    signalEarlyBuyerSpeed(earlyTrades),
		LiquidityRatio:     signalLiquidityRatio(launch.InitialLiquiditySOL, evalPrice, e.cfg.TokenSupply),
		ReputableOverlap:   signalReputableOverlap(evalTrades, e.tierLookup(ctx)),
		BuyConcentration:   signalBuyConcentration(evalTrades),
		VolumeAcceleration: signalVolumeAcceleration(recentVol, baselineVol, e.cfg.Scoring.MinVolumeFloorSOL),
		MarketCapVelocity:  signalMarketCapVelocity(evalPrice*e.cfg.TokenSupply, prevPrice*e.cfg.TokenSupply, lookback),
	}
	score.Total = score.Sum()
	return score
}

// lookupReputation maps the store's not-found to a nil record.
func (e *Engine) lookupReputation(ctx context.Context, wallet string) (*domain.WalletReputation, error) {
	if wallet == "" {
		return nil, nil
	}
	rep, err := e.reputation.GetByWallet(ctx, wallet)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load reputation %s: %w", wallet, err)
	}
	return rep, nil
}

// tierLookup returns a wallet grading function backed by the reputation
// store. Unknown wallets grade as TierUnknown, which never passes an
// AtLeast check.
func (e *Engine) tierLookup(ctx context.Context) func(wallet string) domain.WalletTier {
	return func(wallet string) domain.WalletTier {
		rep, err := e.lookupReputation(ctx, wallet)
		if err != nil || rep == nil {
			return domain.TierUnknown
		}
		return rep.Tier()
	}
}

// closeAtOrZero is PriceAt with missing data collapsed to zero, which each
// signal treats as "undefined".
func closeAtOrZero(windows []*domain.PriceWindow, target int64) float64 {
	price, err := lookup.PriceAt(windows, target)
	if err != nil {
		return 0
	}
	return price
}
