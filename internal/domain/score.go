package domain

// Declared maximum contribution per signal. The composite total can never
// exceed the sum of these.
const (
	MaxCreatorReputation  = 2.0
	MaxEarlyBuyerSpeed    = 2.0
	MaxLiquidityRatio     = 1.5
	MaxReputableOverlap   = 2.0
	MaxBuyConcentration   = 1.0
	MaxVolumeAcceleration = 1.5
	MaxMarketCapVelocity  = 3.0
)

// SignalResult is one signal's bounded contribution plus a short diagnostic
// label explaining how the contribution was derived (or why it is zero).
type SignalResult struct {
	Contribution float64
	Label        string
}

// SignalScore is the fixed-shape composite score for one asset at one
// evaluation instant. Derived, not persisted by the core.
type SignalScore struct {
	Asset    string
	EvalTime int64 // Unix seconds of the evaluation instant

	CreatorReputation  SignalResult
	EarlyBuyerSpeed    SignalResult
	LiquidityRatio     SignalResult
	ReputableOverlap   SignalResult
	BuyConcentration   SignalResult
	VolumeAcceleration SignalResult
	MarketCapVelocity  SignalResult

	Total float64 // sum of the seven contributions
}

// Signals returns the contributions in declared order.
func (s *SignalScore) Signals() []SignalResult {
	return []SignalResult{
		s.CreatorReputation,
		s.EarlyBuyerSpeed,
		s.LiquidityRatio,
		s.ReputableOverlap,
		s.BuyConcentration,
		s.VolumeAcceleration,
		s.MarketCapVelocity,
	}
}

// Sum recomputes the total from the individual contributions.
func (s *SignalScore) Sum() float64 {
	total := 0.0
	for _, r := range s.Signals() {
		total += r.Contribution
	}
	return total
}

// MaxTotal returns the sum of all declared signal maxima.
func MaxTotal() float64 {
	return MaxCreatorReputation +
		MaxEarlyBuyerSpeed +
		MaxLiquidityRatio +
		MaxReputableOverlap +
		MaxBuyConcentration +
		MaxVolumeAcceleration +
		MaxMarketCapVelocity
}
