package reporting

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"solana-launch-backtest/internal/domain"
)

// WriteStrategyCSV writes the per-strategy statistics table.
func WriteStrategyCSV(w io.Writer, r *domain.BacktestReport) error {
	cw := csv.NewWriter(w)

	header := []string{"strategy_id", "trades", "wins", "losses", "win_rate",
		"total_pnl_sol", "total_pnl_usd", "avg_pnl_usd", "avg_size_sol", "mc_threshold_exits"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, s := range r.Strategies {
		row := []string{
			s.StrategyID,
			strconv.Itoa(s.Trades),
			strconv.Itoa(s.Wins),
			strconv.Itoa(s.Losses),
			strconv.FormatFloat(s.WinRate(), 'f', 4, 64),
			strconv.FormatFloat(s.TotalPnLSOL, 'f', 6, 64),
			strconv.FormatFloat(s.TotalPnLUSD, 'f', 2, 64),
			strconv.FormatFloat(s.AvgPnLUSD(), 'f', 4, 64),
			strconv.FormatFloat(s.AvgSizeSOL(), 'f', 4, 64),
			strconv.Itoa(s.ThresholdHits),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %s: %w", s.StrategyID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteBracketCSV writes the per-bracket statistics table.
func WriteBracketCSV(w io.Writer, r *domain.BacktestReport) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"bracket", "qualified", "trades", "wins", "pnl_usd"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, b := range r.Brackets {
		row := []string{
			string(b.Bracket),
			strconv.Itoa(b.Qualified),
			strconv.Itoa(b.Trades),
			strconv.Itoa(b.Wins),
			strconv.FormatFloat(b.PnLUSD, 'f', 2, 64),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %s: %w", b.Bracket, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
