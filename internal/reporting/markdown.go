// Package reporting renders a finished backtest report for humans and for
// downstream tooling. Rendering never mutates the report.
package reporting

import (
	"fmt"
	"strings"
	"time"

	"solana-launch-backtest/internal/domain"
)

// RenderMarkdown renders the report as a Markdown string.
func RenderMarkdown(r *domain.BacktestReport, generatedAt time.Time) string {
	var sb strings.Builder

	// Header
	sb.WriteString("# Backtest Report\n\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", generatedAt.Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("Assets: %d | Trades: %d | Faults: %d\n\n",
		r.AssetsProcessed, r.TotalTrades(), r.FaultCount))

	// Strategy statistics
	sb.WriteString("## Strategy Performance\n\n")
	if len(r.Strategies) > 0 {
		sb.WriteString("| Strategy | Trades | Wins | Losses | WinRate | Total P&L (SOL) | Total P&L (USD) | Avg P&L (USD) | Avg Size (SOL) | MC Exits |\n")
		sb.WriteString("|----------|--------|------|--------|---------|-----------------|-----------------|---------------|----------------|----------|\n")
		for _, s := range r.Strategies {
			sb.WriteString(fmt.Sprintf("| %s | %d | %d | %d | %.4f | %.6f | %.2f | %.4f | %.4f | %d |\n",
				s.StrategyID, s.Trades, s.Wins, s.Losses, s.WinRate(),
				s.TotalPnLSOL, s.TotalPnLUSD, s.AvgPnLUSD(), s.AvgSizeSOL(), s.ThresholdHits))
		}
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("**Combined P&L: $%.2f across %d trades.**\n\n", r.TotalPnLUSD(), r.TotalTrades()))
	} else {
		sb.WriteString("No positions were taken.\n\n")
	}

	// Bracket statistics
	sb.WriteString("## Score Brackets\n\n")
	if len(r.Brackets) > 0 {
		sb.WriteString("| Bracket | Qualified | Trades | Wins | P&L (USD) |\n")
		sb.WriteString("|---------|-----------|--------|------|----------|\n")
		for _, b := range r.Brackets {
			sb.WriteString(fmt.Sprintf("| %s | %d | %d | %d | %.2f |\n",
				b.Bracket, b.Qualified, b.Trades, b.Wins, b.PnLUSD))
		}
		sb.WriteString("\n")
	} else {
		sb.WriteString("No asset reached a qualifying score.\n\n")
	}

	// Faults
	if len(r.Faults) > 0 {
		sb.WriteString("## Faulted Assets\n\n")
		for _, f := range r.Faults {
			sb.WriteString(fmt.Sprintf("- %s: %s\n", f.Asset, f.Message))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
