// Package metrics folds simulated positions into per-strategy and
// per-bracket statistics. Everything here is plain addition, so results
// are independent of processing order and sub-batch boundaries.
package metrics

import (
	"sort"

	"solana-launch-backtest/internal/domain"
)

// Aggregator accumulates one backtest run. Not safe for concurrent use;
// shard per worker and Merge the shards instead.
type Aggregator struct {
	assets     int
	strategies map[string]*domain.StrategyStatistics
	brackets   map[domain.ScoreBracket]*domain.BracketStatistics
	faults     []domain.AssetFault
}

func NewAggregator() *Aggregator {
	return &Aggregator{
		strategies: make(map[string]*domain.StrategyStatistics),
		brackets:   make(map[domain.ScoreBracket]*domain.BracketStatistics),
	}
}

// RecordAsset counts one asset that entered the batch, whether or not any
// strategy traded it.
func (a *Aggregator) RecordAsset() {
	a.assets++
}

// RecordPosition folds one settled position into its strategy's block and,
// when the position carries a bracket, into that bracket's block.
func (a *Aggregator) RecordPosition(pos *domain.SimulatedPosition) {
	s := a.strategyBlock(pos.StrategyID)
	s.Trades++
	// A trade is either a win or a loss; flat time exits land on the loss
	// side so Trades always equals Wins + Losses.
	if pos.PnLSOL > 0 {
		s.Wins++
	} else {
		s.Losses++
	}
	s.TotalPnLSOL += pos.PnLSOL
	s.TotalPnLUSD += pos.PnLUSD
	s.TotalSizeSOL += pos.SizeSOL
	if pos.ExitReason == domain.ExitReasonThreshold {
		s.ThresholdHits++
	}

	if pos.Bracket == domain.BracketNone {
		return
	}
	b := a.bracketBlock(pos.Bracket)
	b.Trades++
	if pos.PnLSOL > 0 {
		b.Wins++
	}
	b.PnLUSD += pos.PnLUSD
}

// RecordQualified counts one asset whose composite score fell into a
// qualifying bracket, independent of whether an entry followed.
func (a *Aggregator) RecordQualified(bracket domain.ScoreBracket) {
	if bracket == domain.BracketNone {
		return
	}
	a.bracketBlock(bracket).Qualified++
}

// RecordFault registers one failed asset. The batch keeps going.
func (a *Aggregator) RecordFault(asset, message string) {
	a.faults = append(a.faults, domain.AssetFault{Asset: asset, Message: message})
}

// Merge folds another aggregator into this one. Merging shards in any
// order yields the same report.
func (a *Aggregator) Merge(other *Aggregator) {
	a.assets += other.assets
	for id, s := range other.strategies {
		a.strategyBlock(id).Add(s)
	}
	for bracket, b := range other.brackets {
		a.bracketBlock(bracket).Add(b)
	}
	a.faults = append(a.faults, other.faults...)
}

// Report freezes the accumulated state into the canonical ordering:
// strategies by ID, brackets ascending, faults by asset.
func (a *Aggregator) Report() *domain.BacktestReport {
	strategies := make([]*domain.StrategyStatistics, 0, len(a.strategies))
	for _, s := range a.strategies {
		strategies = append(strategies, s)
	}
	sort.Slice(strategies, func(i, j int) bool {
		return strategies[i].StrategyID < strategies[j].StrategyID
	})

	brackets := make([]*domain.BracketStatistics, 0, len(a.brackets))
	for _, bracket := range domain.Brackets() {
		if b, ok := a.brackets[bracket]; ok {
			brackets = append(brackets, b)
		}
	}

	faults := make([]domain.AssetFault, len(a.faults))
	copy(faults, a.faults)
	sort.Slice(faults, func(i, j int) bool { return faults[i].Asset < faults[j].Asset })

	return &domain.BacktestReport{
		AssetsProcessed: a.assets,
		Strategies:      strategies,
		Brackets:        brackets,
		Faults:          faults,
		FaultCount:      len(faults),
	}
}

func (a *Aggregator) strategyBlock(id string) *domain.StrategyStatistics {
	s, ok := a.strategies[id]
	if !ok {
		s = &domain.StrategyStatistics{StrategyID: id}
		a.strategies[id] = s
	}
	return s
}

func (a *Aggregator) bracketBlock(bracket domain.ScoreBracket) *domain.BracketStatistics {
	b, ok := a.brackets[bracket]
	if !ok {
		b = &domain.BracketStatistics{Bracket: bracket}
		a.brackets[bracket] = b
	}
	return b
}
