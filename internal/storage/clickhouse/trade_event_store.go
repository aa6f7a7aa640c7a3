package clickhouse

import (
	"context"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"solana-launch-backtest/internal/domain"
	"solana-launch-backtest/internal/storage"
)

// TradeEventStore implements storage.TradeEventStore using ClickHouse.
type TradeEventStore struct {
	conn *Conn
}

// NewTradeEventStore creates a new TradeEventStore.
func NewTradeEventStore(conn *Conn) *TradeEventStore {
	return &TradeEventStore{conn: conn}
}

// Compile-time interface check.
var _ storage.TradeEventStore = (*TradeEventStore)(nil)

// InsertBulk adds multiple events. Append-only: the same trader hitting the
// same asset at the same second is legitimate data, so there is no
// duplicate check.
func (s *TradeEventStore) InsertBulk(ctx context.Context, events []*domain.TradeEvent) error {
	if len(events) == 0 {
		return nil
	}

	for _, e := range events {
		if e == nil || e.Asset == "" || e.Trader == "" {
			return storage.ErrInvalidInput
		}
		if e.Side != domain.SideBuy && e.Side != domain.SideSell {
			return storage.ErrInvalidInput
		}
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO trade_events (
			asset, trader, side, amount_sol, block_time
		)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, e := range events {
		if err := batch.Append(e.Asset, e.Trader, string(e.Side), e.AmountSOL, e.BlockTime); err != nil {
			return fmt.Errorf("append to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}

	return nil
}

// GetByTimeRange retrieves events for an asset within [start, end]
// (inclusive), ordered by block time ASC.
func (s *TradeEventStore) GetByTimeRange(ctx context.Context, asset string, start, end int64) ([]*domain.TradeEvent, error) {
	query := `
		SELECT asset, trader, side, amount_sol, block_time
		FROM trade_events
		WHERE asset = ? AND block_time >= ? AND block_time <= ?
		ORDER BY block_time ASC, trader ASC
	`

	rows, err := s.conn.Query(ctx, query, asset, start, end)
	if err != nil {
		return nil, fmt.Errorf("query trade events: %w", err)
	}
	defer rows.Close()

	return scanTradeEvents(rows)
}

// scanTradeEvents scans rows into a slice of TradeEvent.
func scanTradeEvents(rows driver.Rows) ([]*domain.TradeEvent, error) {
	var events []*domain.TradeEvent
	for rows.Next() {
		var e domain.TradeEvent
		var side string

		if err := rows.Scan(&e.Asset, &e.Trader, &side, &e.AmountSOL, &e.BlockTime); err != nil {
			return nil, fmt.Errorf("scan trade event: %w", err)
		}
		e.Side = domain.Side(side)
		events = append(events, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate trade events: %w", err)
	}
	return events, nil
}
