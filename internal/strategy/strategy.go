// Package strategy implements the competing entry/exit policies simulated
// against an asset's historical windows and trades.
package strategy

import (
	"context"

	"solana-launch-backtest/internal/domain"
)

// Strategy turns one asset's history into at most one simulated position.
// A (nil, nil) return means the asset did not qualify or no entry price
// existed; the asset contributes no trade to that strategy's statistics.
type Strategy interface {
	// ID returns the strategy identifier.
	ID() string

	// Simulate applies qualify → enter → size → exit → settle over the
	// input. The result is fully deterministic in the input.
	Simulate(ctx context.Context, in *Input) (*domain.SimulatedPosition, error)
}

// Input holds everything a strategy may consult: the launch record, the
// asset's windows and trades over the replay horizon (both ordered
// ascending), the composite score when one was computed, and a wallet
// grading function for copy qualification.
type Input struct {
	Launch  *domain.LaunchRecord
	Windows []*domain.PriceWindow
	Trades  []*domain.TradeEvent

	// Score is the composite score at the configured evaluation offset;
	// nil when scoring was skipped or failed for this asset.
	Score *domain.SignalScore

	// TierOf grades a wallet; must return TierUnknown for wallets without
	// a reputation record. Never nil when CopyTrade runs.
	TierOf func(wallet string) domain.WalletTier
}
