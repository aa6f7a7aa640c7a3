package storage

import (
	"context"

	"solana-launch-backtest/internal/domain"
)

// LaunchStore provides access to launch records.
type LaunchStore interface {
	// Insert adds a new launch. Returns ErrDuplicateKey if the asset exists.
	Insert(ctx context.Context, l *domain.LaunchRecord) error

	// InsertBulk adds multiple launches atomically. Fails entire batch on any duplicate.
	InsertBulk(ctx context.Context, launches []*domain.LaunchRecord) error

	// GetByAsset retrieves the launch for an asset. Returns ErrNotFound if not exists.
	GetByAsset(ctx context.Context, asset string) (*domain.LaunchRecord, error)

	// LaunchesSince retrieves launches with LaunchTime >= cutoff, ordered by launch time ASC.
	LaunchesSince(ctx context.Context, cutoff int64) ([]*domain.LaunchRecord, error)
}

// TradeEventStore provides access to historical trade ticks.
type TradeEventStore interface {
	// InsertBulk adds multiple events. Append-only.
	InsertBulk(ctx context.Context, events []*domain.TradeEvent) error

	// GetByTimeRange retrieves events for an asset within [start, end]
	// (inclusive), ordered by block time ASC.
	GetByTimeRange(ctx context.Context, asset string, start, end int64) ([]*domain.TradeEvent, error)
}

// PriceWindowStore provides access to OHLCV windows.
type PriceWindowStore interface {
	// InsertBulk adds multiple windows. Fails entire batch on duplicate
	// (asset, window_sec, start_time).
	InsertBulk(ctx context.Context, windows []*domain.PriceWindow) error

	// GetByTimeRange retrieves windows of one granularity for an asset with
	// StartTime within [start, end] (inclusive), ordered by start time ASC.
	GetByTimeRange(ctx context.Context, asset string, windowSec int, start, end int64) ([]*domain.PriceWindow, error)
}

// ReputationStore provides read access to wallet reputation records.
// Records are maintained by an external miner; the engine never writes them
// outside of fixture loading.
type ReputationStore interface {
	// Insert adds a reputation record. Returns ErrDuplicateKey if the wallet exists.
	Insert(ctx context.Context, r *domain.WalletReputation) error

	// GetByWallet retrieves the reputation for a wallet.
	// Returns ErrNotFound when the wallet has no record.
	GetByWallet(ctx context.Context, wallet string) (*domain.WalletReputation, error)
}

// PositionStore persists simulated positions produced by a backtest run.
type PositionStore interface {
	// Insert adds a position. Returns ErrDuplicateKey if position_id exists.
	Insert(ctx context.Context, p *domain.SimulatedPosition) error

	// InsertBulk adds multiple positions atomically. Fails entire batch on any duplicate.
	InsertBulk(ctx context.Context, positions []*domain.SimulatedPosition) error

	// GetByStrategy retrieves all positions for a strategy, ordered by entry time ASC.
	GetByStrategy(ctx context.Context, strategyID string) ([]*domain.SimulatedPosition, error)

	// GetByAsset retrieves all positions for an asset, ordered by entry time ASC.
	GetByAsset(ctx context.Context, asset string) ([]*domain.SimulatedPosition, error)
}
