package strategy

import (
	"testing"

	"solana-launch-backtest/internal/domain"
)

const exitTestLaunch = int64(1_700_000_000)

func testWindow(off int64, high, low, close float64) *domain.PriceWindow {
	return &domain.PriceWindow{
		Asset:     "MintExit11111111111111111111111111111111111",
		WindowSec: domain.WindowSec1Min,
		StartTime: exitTestLaunch + off,
		EndTime:   exitTestLaunch + off + int64(domain.WindowSec1Min),
		Open:      close, High: high, Low: low, Close: close,
		VolumeSOL: 1,
	}
}

func TestResolveExitTargetBeatsStopInSameWindow(t *testing.T) {
	entry := entryPoint{Time: exitTestLaunch + 60, Offset: 60, Price: 1.0}
	windows := []*domain.PriceWindow{
		testWindow(60, 1.0, 1.0, 1.0),
		testWindow(120, 1.10, 0.90, 0.95), // hits both target and stop
	}
	rules := []exitRule{targetRule(entry.Price, 1.03), stopRule(entry.Price, 0.98)}

	out := resolveExit(windows, exitTestLaunch, entry, rules, 600)
	if out.Reason != domain.ExitReasonTarget {
		t.Fatalf("reason = %s, want %s", out.Reason, domain.ExitReasonTarget)
	}
	if out.Price != 1.03 {
		t.Errorf("price = %v, want fill pinned to target 1.03", out.Price)
	}
	if out.Time != exitTestLaunch+120 {
		t.Errorf("time = %d, want window start %d", out.Time, exitTestLaunch+120)
	}
}

func TestResolveExitStopPinnedToLevel(t *testing.T) {
	entry := entryPoint{Time: exitTestLaunch + 60, Offset: 60, Price: 1.0}
	windows := []*domain.PriceWindow{
		testWindow(120, 1.01, 0.70, 0.75),
	}
	rules := []exitRule{targetRule(entry.Price, 1.30), stopRule(entry.Price, 0.80)}

	out := resolveExit(windows, exitTestLaunch, entry, rules, 600)
	if out.Reason != domain.ExitReasonStop {
		t.Fatalf("reason = %s, want %s", out.Reason, domain.ExitReasonStop)
	}
	if out.Price != 0.80 {
		t.Errorf("price = %v, want fill pinned to stop 0.80", out.Price)
	}
}

func TestResolveExitTimeoutUsesWindowClose(t *testing.T) {
	entry := entryPoint{Time: exitTestLaunch + 60, Offset: 60, Price: 1.0}
	windows := []*domain.PriceWindow{
		testWindow(120, 1.01, 0.99, 1.005), // inside both bands, past deadline
	}
	rules := []exitRule{targetRule(entry.Price, 1.30), stopRule(entry.Price, 0.80)}

	out := resolveExit(windows, exitTestLaunch, entry, rules, 30)
	if out.Reason != domain.ExitReasonTime {
		t.Fatalf("reason = %s, want %s", out.Reason, domain.ExitReasonTime)
	}
	if out.Price != 1.005 {
		t.Errorf("price = %v, want window close", out.Price)
	}
}

func TestResolveExitExhaustedSeriesFallsBackToLastClose(t *testing.T) {
	entry := entryPoint{Time: exitTestLaunch + 60, Offset: 60, Price: 1.0}
	windows := []*domain.PriceWindow{
		testWindow(60, 1.0, 1.0, 1.0),
		testWindow(70, 1.01, 0.99, 0.97), // before deadline, no rule fires
	}
	rules := []exitRule{targetRule(entry.Price, 1.30), stopRule(entry.Price, 0.80)}

	out := resolveExit(windows, exitTestLaunch, entry, rules, 300)
	if out.Reason != domain.ExitReasonTime {
		t.Fatalf("reason = %s, want %s", out.Reason, domain.ExitReasonTime)
	}
	if out.Price != 0.97 {
		t.Errorf("price = %v, want last observed close", out.Price)
	}
	if out.Time != entry.Time+300 {
		t.Errorf("time = %d, want hold deadline %d", out.Time, entry.Time+300)
	}
	if out.Time <= entry.Time {
		t.Errorf("exit time must be after entry time")
	}
}

func TestResolveExitSkipsEntryWindow(t *testing.T) {
	// The entry window itself spikes through the target but must not
	// close the position it opened.
	entry := entryPoint{Time: exitTestLaunch + 60, Offset: 60, Price: 1.0}
	windows := []*domain.PriceWindow{
		testWindow(60, 2.0, 0.5, 1.0),
		testWindow(120, 1.0, 0.99, 1.0),
	}
	rules := []exitRule{targetRule(entry.Price, 1.30), stopRule(entry.Price, 0.80)}

	out := resolveExit(windows, exitTestLaunch, entry, rules, 30)
	if out.Reason != domain.ExitReasonTime {
		t.Fatalf("reason = %s, want %s (entry window must be ignored)", out.Reason, domain.ExitReasonTime)
	}
}

func TestResolveExitTracksPeakHigh(t *testing.T) {
	entry := entryPoint{Time: exitTestLaunch + 60, Offset: 60, Price: 1.0}
	windows := []*domain.PriceWindow{
		testWindow(120, 1.20, 1.0, 1.1),
		testWindow(180, 1.25, 1.1, 1.2),
		testWindow(240, 1.35, 1.2, 1.31),
	}
	rules := []exitRule{targetRule(entry.Price, 1.30)}

	out := resolveExit(windows, exitTestLaunch, entry, rules, 600)
	if out.Reason != domain.ExitReasonTarget {
		t.Fatalf("reason = %s, want %s", out.Reason, domain.ExitReasonTarget)
	}
	if out.PeakHigh != 1.35 {
		t.Errorf("peak high = %v, want 1.35", out.PeakHigh)
	}
}
