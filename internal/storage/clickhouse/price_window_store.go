package clickhouse

import (
	"context"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"solana-launch-backtest/internal/domain"
	"solana-launch-backtest/internal/storage"
)

// PriceWindowStore implements storage.PriceWindowStore using ClickHouse.
type PriceWindowStore struct {
	conn *Conn
}

// NewPriceWindowStore creates a new PriceWindowStore.
func NewPriceWindowStore(conn *Conn) *PriceWindowStore {
	return &PriceWindowStore{conn: conn}
}

// Compile-time interface check.
var _ storage.PriceWindowStore = (*PriceWindowStore)(nil)

// InsertBulk adds multiple windows. Fails entire batch on duplicate
// (asset, window_sec, start_time). MergeTree does not enforce uniqueness,
// so duplicates are checked explicitly before the batch is sent.
func (s *PriceWindowStore) InsertBulk(ctx context.Context, windows []*domain.PriceWindow) error {
	if len(windows) == 0 {
		return nil
	}

	type key struct {
		asset     string
		windowSec int
		startTime int64
	}
	seen := make(map[key]struct{}, len(windows))
	for _, w := range windows {
		if w == nil || w.Asset == "" || w.WindowSec <= 0 {
			return storage.ErrInvalidInput
		}
		k := key{w.Asset, w.WindowSec, w.StartTime}
		if _, exists := seen[k]; exists {
			return storage.ErrDuplicateKey
		}
		seen[k] = struct{}{}
	}

	for _, w := range windows {
		exists, err := s.exists(ctx, w.Asset, w.WindowSec, w.StartTime)
		if err != nil {
			return fmt.Errorf("check exists: %w", err)
		}
		if exists {
			return storage.ErrDuplicateKey
		}
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO price_windows (
			asset, window_sec, start_time, end_time,
			open, high, low, close,
			volume_sol, buy_volume_sol, trade_count, vwap, volatility
		)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, w := range windows {
		err = batch.Append(
			w.Asset, uint32(w.WindowSec), w.StartTime, w.EndTime,
			w.Open, w.High, w.Low, w.Close,
			w.VolumeSOL, w.BuyVolumeSOL, uint32(w.TradeCount), w.VWAP, w.Volatility,
		)
		if err != nil {
			return fmt.Errorf("append to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}

	return nil
}

// GetByTimeRange retrieves windows of one granularity for an asset with
// StartTime within [start, end] (inclusive), ordered by start time ASC.
func (s *PriceWindowStore) GetByTimeRange(ctx context.Context, asset string, windowSec int, start, end int64) ([]*domain.PriceWindow, error) {
	query := `
		SELECT asset, window_sec, start_time, end_time,
			open, high, low, close,
			volume_sol, buy_volume_sol, trade_count, vwap, volatility
		FROM price_windows
		WHERE asset = ? AND window_sec = ? AND start_time >= ? AND start_time <= ?
		ORDER BY start_time ASC
	`

	rows, err := s.conn.Query(ctx, query, asset, uint32(windowSec), start, end)
	if err != nil {
		return nil, fmt.Errorf("query price windows: %w", err)
	}
	defer rows.Close()

	return scanPriceWindows(rows)
}

// exists checks if a window with the given key exists.
func (s *PriceWindowStore) exists(ctx context.Context, asset string, windowSec int, startTime int64) (bool, error) {
	query := `
		SELECT count(*) FROM price_windows
		WHERE asset = ? AND window_sec = ? AND start_time = ?
	`

	var count uint64
	if err := s.conn.QueryRow(ctx, query, asset, uint32(windowSec), startTime).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

// scanPriceWindows scans rows into a slice of PriceWindow.
func scanPriceWindows(rows driver.Rows) ([]*domain.PriceWindow, error) {
	var windows []*domain.PriceWindow
	for rows.Next() {
		var w domain.PriceWindow
		var windowSec, tradeCount uint32

		err := rows.Scan(
			&w.Asset, &windowSec, &w.StartTime, &w.EndTime,
			&w.Open, &w.High, &w.Low, &w.Close,
			&w.VolumeSOL, &w.BuyVolumeSOL, &tradeCount, &w.VWAP, &w.Volatility,
		)
		if err != nil {
			return nil, fmt.Errorf("scan price window: %w", err)
		}
		w.WindowSec = int(windowSec)
		w.TradeCount = int(tradeCount)
		windows = append(windows, &w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate price windows: %w", err)
	}
	return windows, nil
}
