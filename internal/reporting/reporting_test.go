package reporting

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"solana-launch-backtest/internal/domain"
)

func sampleReport() *domain.BacktestReport {
	return &domain.BacktestReport{
		AssetsProcessed: 3,
		Strategies: []*domain.StrategyStatistics{
			{StrategyID: domain.StrategyQuickScalp, Trades: 3, Wins: 2, Losses: 1,
				TotalPnLSOL: 0.01, TotalPnLUSD: 1.86, TotalSizeSOL: 0.016},
			{StrategyID: domain.StrategyScoreGated, Trades: 1, Wins: 1,
				TotalPnLSOL: 0.375, TotalPnLUSD: 69.75, TotalSizeSOL: 0.75, ThresholdHits: 1},
		},
		Brackets: []*domain.BracketStatistics{
			{Bracket: domain.Bracket8To9, Qualified: 1, Trades: 1, Wins: 1, PnLUSD: 69.75},
		},
		Faults:     []domain.AssetFault{{Asset: "mintBad", Message: "panic: corrupt window data"}},
		FaultCount: 1,
	}
}

func TestRenderMarkdownSections(t *testing.T) {
	md := RenderMarkdown(sampleReport(), time.Unix(1_700_000_000, 0).UTC())

	for _, want := range []string{
		"# Backtest Report",
		"## Strategy Performance",
		"| QUICK_SCALP | 3 | 2 | 1 | 0.6667 |",
		"## Score Brackets",
		"| 8.0-8.9 | 1 | 1 | 1 | 69.75 |",
		"## Faulted Assets",
		"- mintBad: panic: corrupt window data",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
}

func TestRenderMarkdownEmptyReport(t *testing.T) {
	md := RenderMarkdown(&domain.BacktestReport{}, time.Unix(0, 0).UTC())
	if !strings.Contains(md, "No positions were taken.") {
		t.Error("expected the empty-report placeholder")
	}
	if strings.Contains(md, "## Faulted Assets") {
		t.Error("fault section must be omitted when there are no faults")
	}
}

func TestWriteStrategyCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteStrategyCSV(&buf, sampleReport()); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header plus 2 rows", len(lines))
	}
	if !strings.HasPrefix(lines[0], "strategy_id,") {
		t.Errorf("unexpected header: %s", lines[0])
	}
	if !strings.HasPrefix(lines[2], "SCORE_GATED,1,1,0,") {
		t.Errorf("unexpected score-gated row: %s", lines[2])
	}
}

func TestWriteBracketCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteBracketCSV(&buf, sampleReport()); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	if !strings.Contains(buf.String(), "8.0-8.9,1,1,1,69.75") {
		t.Errorf("missing bracket row in:\n%s", buf.String())
	}
}
