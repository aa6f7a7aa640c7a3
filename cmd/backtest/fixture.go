package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"solana-launch-backtest/internal/domain"
	"solana-launch-backtest/internal/normalization"
	"solana-launch-backtest/internal/storage"
)

// fixture is the JSON shape accepted by --fixture for in-memory runs.
type fixture struct {
	Launches    []*domain.LaunchRecord     `json:"launches"`
	Trades      []*domain.TradeEvent       `json:"trades"`
	Windows     []*domain.PriceWindow      `json:"windows"`
	Reputations []*domain.WalletReputation `json:"reputations"`
}

// loadFixture reads a JSON fixture and loads it into the in-memory stores.
func loadFixture(
	ctx context.Context,
	path string,
	launches storage.LaunchStore,
	trades storage.TradeEventStore,
	windows storage.PriceWindowStore,
	reputation storage.ReputationStore,
) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read fixture: %w", err)
	}

	var f fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parse fixture: %w", err)
	}

	for _, l := range f.Launches {
		if err := l.Validate(); err != nil {
			return fmt.Errorf("fixture launch %s: %w", l.Asset, err)
		}
	}

	normalization.SortTrades(f.Trades)
	if err := normalization.NormalizeWindows(f.Windows); err != nil {
		return fmt.Errorf("fixture windows: %w", err)
	}

	if err := launches.InsertBulk(ctx, f.Launches); err != nil {
		return fmt.Errorf("load launches: %w", err)
	}
	if err := trades.InsertBulk(ctx, f.Trades); err != nil {
		return fmt.Errorf("load trades: %w", err)
	}
	if err := windows.InsertBulk(ctx, f.Windows); err != nil {
		return fmt.Errorf("load windows: %w", err)
	}
	for _, r := range f.Reputations {
		if err := reputation.Insert(ctx, r); err != nil {
			return fmt.Errorf("load reputation %s: %w", r.Wallet, err)
		}
	}

	return nil
}

// writeCSV renders one CSV table to a file.
func writeCSV(path string, report *domain.BacktestReport, render func(io.Writer, *domain.BacktestReport) error) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()

	if err := render(file, report); err != nil {
		return err
	}
	return file.Sync()
}
