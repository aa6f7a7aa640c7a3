package domain

// Strategy identifiers, fixed variant set.
const (
	StrategyQuickScalp      = "QUICK_SCALP"
	StrategyRankBased       = "RANK_BASED"
	StrategyMomentum        = "MOMENTUM"
	StrategyCopyTrade       = "COPY_TRADE"
	StrategyLateOpportunity = "LATE_OPPORTUNITY"
	StrategyScoreGated      = "SCORE_GATED"
)

// Exit reason codes. Exactly one is recorded per position.
const (
	ExitReasonTarget    = "PROFIT_TARGET"
	ExitReasonStop      = "STOP_LOSS"
	ExitReasonThreshold = "MC_THRESHOLD"
	ExitReasonTime      = "TIME_EXIT"
)

// SimulatedPosition is the deterministic outcome of one strategy on one
// asset. Created at most once per (strategy, asset); immutable afterwards.
// Invariant: ExitTime > EntryTime.
type SimulatedPosition struct {
	PositionID string // deterministic hash of (strategy, asset, entry time)
	StrategyID string
	Asset      string

	EntryTime  int64 // Unix seconds
	EntryPrice float64
	ExitTime   int64 // Unix seconds, strictly after EntryTime
	ExitPrice  float64
	ExitReason string

	SizeSOL float64 // position size in SOL
	PnLSOL  float64 // SizeSOL * (exit-entry)/entry
	PnLUSD  float64 // PnLSOL * configured spot rate

	// Score-gated extras; zero values for other strategies.
	Score            float64
	Bracket          ScoreBracket
	PeakMarketCapSOL float64
}

// ScoreBracket is a half-open score range used for sizing and reporting.
type ScoreBracket string

// Score brackets for qualifying composite scores (>= 6.0).
const (
	BracketNone  ScoreBracket = ""
	Bracket6To7  ScoreBracket = "6.0-6.9"
	Bracket7To8  ScoreBracket = "7.0-7.9"
	Bracket8To9  ScoreBracket = "8.0-8.9"
	Bracket9Plus ScoreBracket = "9.0+"
)

// BracketFor maps a composite score to its reporting bracket.
// Scores below 6.0 map to BracketNone.
func BracketFor(score float64) ScoreBracket {
	switch {
	case score >= 9.0:
		return Bracket9Plus
	case score >= 8.0:
		return Bracket8To9
	case score >= 7.0:
		return Bracket7To8
	case score >= 6.0:
		return Bracket6To7
	default:
		return BracketNone
	}
}

// Brackets lists the qualifying brackets in ascending order.
func Brackets() []ScoreBracket {
	return []ScoreBracket{Bracket6To7, Bracket7To8, Bracket8To9, Bracket9Plus}
}
