package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"solana-launch-backtest/internal/domain"
	"solana-launch-backtest/internal/storage"
)

// PositionStore implements storage.PositionStore using PostgreSQL.
type PositionStore struct {
	pool *Pool
}

// NewPositionStore creates a new PositionStore.
func NewPositionStore(pool *Pool) *PositionStore {
	return &PositionStore{pool: pool}
}

// Compile-time interface check.
var _ storage.PositionStore = (*PositionStore)(nil)

const insertPositionQuery = `
	INSERT INTO simulated_positions (
		position_id, strategy_id, asset,
		entry_time, entry_price, exit_time, exit_price, exit_reason,
		size_sol, pnl_sol, pnl_usd,
		score, bracket, peak_market_cap_sol
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
`

const selectPositionColumns = `
	SELECT position_id, strategy_id, asset,
		entry_time, entry_price, exit_time, exit_price, exit_reason,
		size_sol, pnl_sol, pnl_usd,
		score, bracket, peak_market_cap_sol
	FROM simulated_positions
`

// Insert adds a position. Returns ErrDuplicateKey if position_id exists.
func (s *PositionStore) Insert(ctx context.Context, p *domain.SimulatedPosition) error {
	if p == nil || p.PositionID == "" || p.StrategyID == "" || p.Asset == "" {
		return storage.ErrInvalidInput
	}

	_, err := s.pool.Exec(ctx, insertPositionQuery, positionArgs(p)...)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert position: %w", err)
	}
	return nil
}

// InsertBulk adds multiple positions atomically. Fails entire batch on any duplicate.
func (s *PositionStore) InsertBulk(ctx context.Context, positions []*domain.SimulatedPosition) error {
	if len(positions) == 0 {
		return nil
	}

	return s.pool.inTx(ctx, func(tx pgx.Tx) error {
		for _, p := range positions {
			if p == nil || p.PositionID == "" || p.StrategyID == "" || p.Asset == "" {
				return storage.ErrInvalidInput
			}
			if _, err := tx.Exec(ctx, insertPositionQuery, positionArgs(p)...); err != nil {
				if isDuplicateKeyError(err) {
					return storage.ErrDuplicateKey
				}
				return fmt.Errorf("insert position %s: %w", p.PositionID, err)
			}
		}
		return nil
	})
}

// GetByStrategy retrieves all positions for a strategy, ordered by entry time ASC.
func (s *PositionStore) GetByStrategy(ctx context.Context, strategyID string) ([]*domain.SimulatedPosition, error) {
	query := selectPositionColumns + `
		WHERE strategy_id = $1
		ORDER BY entry_time ASC, position_id ASC
	`

	rows, err := s.pool.Query(ctx, query, strategyID)
	if err != nil {
		return nil, fmt.Errorf("get positions by strategy: %w", err)
	}
	defer rows.Close()

	return scanPositions(rows)
}

// GetByAsset retrieves all positions for an asset, ordered by entry time ASC.
func (s *PositionStore) GetByAsset(ctx context.Context, asset string) ([]*domain.SimulatedPosition, error) {
	query := selectPositionColumns + `
		WHERE asset = $1
		ORDER BY entry_time ASC, position_id ASC
	`

	rows, err := s.pool.Query(ctx, query, asset)
	if err != nil {
		return nil, fmt.Errorf("get positions by asset: %w", err)
	}
	defer rows.Close()

	return scanPositions(rows)
}

func positionArgs(p *domain.SimulatedPosition) []any {
	return []any{
		p.PositionID, p.StrategyID, p.Asset,
		p.EntryTime, p.EntryPrice, p.ExitTime, p.ExitPrice, p.ExitReason,
		p.SizeSOL, p.PnLSOL, p.PnLUSD,
		p.Score, string(p.Bracket), p.PeakMarketCapSOL,
	}
}

// scanPositions scans multiple rows into a slice of SimulatedPosition.
func scanPositions(rows pgx.Rows) ([]*domain.SimulatedPosition, error) {
	var positions []*domain.SimulatedPosition
	for rows.Next() {
		var p domain.SimulatedPosition
		var bracket string

		err := rows.Scan(
			&p.PositionID, &p.StrategyID, &p.Asset,
			&p.EntryTime, &p.EntryPrice, &p.ExitTime, &p.ExitPrice, &p.ExitReason,
			&p.SizeSOL, &p.PnLSOL, &p.PnLUSD,
			&p.Score, &bracket, &p.PeakMarketCapSOL,
		)
		if err != nil {
			return nil, fmt.Errorf("scan position: %w", err)
		}
		p.Bracket = domain.ScoreBracket(bracket)
		positions = append(positions, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate positions: %w", err)
	}
	return positions, nil
}
