package domain

import "testing"

func TestSignalScore_SumMatchesSignalsOrder(t *testing.T) {
	s := &SignalScore{
		CreatorReputation:  SignalResult{Contribution: 2.0},
		EarlyBuyerSpeed:    SignalResult{Contribution: 1.5},
		LiquidityRatio:     SignalResult{Contribution: 1.0},
		ReputableOverlap:   SignalResult{Contribution: 1.0},
		BuyConcentration:   SignalResult{Contribution: 0.5},
		VolumeAcceleration: SignalResult{Contribution: 1.0},
		MarketCapVelocity:  SignalResult{Contribution: 2.0},
	}

	if got := s.Sum(); got != 9.0 {
		t.Errorf("Sum() = %v, want 9.0", got)
	}
	if n := len(s.Signals()); n != 7 {
		t.Errorf("Signals() has %d entries, want 7", n)
	}
}

func TestMaxTotal(t *testing.T) {
	if got := MaxTotal(); got != 13.0 {
		t.Errorf("MaxTotal() = %v, want 13.0", got)
	}
}

func TestPriceWindow_Offset(t *testing.T) {
	w := &PriceWindow{StartTime: 1_700_000_060}
	if off := w.Offset(1_700_000_000); off != 60 {
		t.Errorf("Offset = %d, want 60", off)
	}
}
