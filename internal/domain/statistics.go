package domain

// StrategyStatistics aggregates simulated positions for one strategy.
// All fields are plain sums or counts so that statistics from disjoint
// sub-batches can be added together in any order.
type StrategyStatistics struct {
	StrategyID string

	Trades int
	Wins   int // positions with PnL > 0
	Losses int // everything else, flat exits included; Wins+Losses == Trades

	TotalPnLSOL  float64
	TotalPnLUSD  float64
	TotalSizeSOL float64

	// ThresholdHits counts positions closed by the absolute market-cap
	// threshold rule (score-gated strategy only).
	ThresholdHits int
}

// WinRate returns wins / trades, or 0 when no trades were recorded.
func (s *StrategyStatistics) WinRate() float64 {
	if s.Trades == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Trades)
}

// AvgPnLUSD returns mean per-trade P&L in USD.
func (s *StrategyStatistics) AvgPnLUSD() float64 {
	if s.Trades == 0 {
		return 0
	}
	return s.TotalPnLUSD / float64(s.Trades)
}

// AvgSizeSOL returns mean position size.
func (s *StrategyStatistics) AvgSizeSOL() float64 {
	if s.Trades == 0 {
		return 0
	}
	return s.TotalSizeSOL / float64(s.Trades)
}

// Add folds another statistics block into this one. Addition is
// commutative and associative.
func (s *StrategyStatistics) Add(other *StrategyStatistics) {
	s.Trades += other.Trades
	s.Wins += other.Wins
	s.Losses += other.Losses
	s.TotalPnLSOL += other.TotalPnLSOL
	s.TotalPnLUSD += other.TotalPnLUSD
	s.TotalSizeSOL += other.TotalSizeSOL
	s.ThresholdHits += other.ThresholdHits
}

// BracketStatistics aggregates qualifying assets and trades in one
// score bracket.
type BracketStatistics struct {
	Bracket ScoreBracket

	Qualified int // assets whose composite score fell in this bracket
	Trades    int
	Wins      int
	PnLUSD    float64
}

// Add folds another bracket block into this one.
func (b *BracketStatistics) Add(other *BracketStatistics) {
	b.Qualified += other.Qualified
	b.Trades += other.Trades
	b.Wins += other.Wins
	b.PnLUSD += other.PnLUSD
}

// AssetFault records one asset that failed to process. Faults never abort
// the batch; they are counted and surfaced in the final report.
type AssetFault struct {
	Asset   string
	Message string
}

// BacktestReport is the combined output of one backtest run: per-strategy
// statistics, per-bracket statistics, and data-quality faults. Plain
// structured data; rendering lives elsewhere.
type BacktestReport struct {
	AssetsProcessed int
	Strategies      []*StrategyStatistics // sorted by StrategyID
	Brackets        []*BracketStatistics  // ascending bracket order
	Faults          []AssetFault          // sorted by asset
	FaultCount      int
}

// TotalTrades sums trade counts across strategies.
func (r *BacktestReport) TotalTrades() int {
	n := 0
	for _, s := range r.Strategies {
		n += s.Trades
	}
	return n
}

// TotalPnLUSD sums realized P&L across strategies.
func (r *BacktestReport) TotalPnLUSD() float64 {
	total := 0.0
	for _, s := range r.Strategies {
		total += s.TotalPnLUSD
	}
	return total
}
