// Package backtest drives a batch replay: it walks every launch since a
// cutoff, scores each asset once, simulates every strategy against it, and
// folds the outcomes into a single deterministic report.
package backtest

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"solana-launch-backtest/internal/config"
	"solana-launch-backtest/internal/domain"
	"solana-launch-backtest/internal/metrics"
	"solana-launch-backtest/internal/observability"
	"solana-launch-backtest/internal/scoring"
	"solana-launch-backtest/internal/storage"
	"solana-launch-backtest/internal/strategy"
)

// Options wires the runner's collaborators. Positions may be nil to skip
// persistence; everything else is required.
type Options struct {
	Launches   storage.LaunchStore
	Trades     storage.TradeEventStore
	Windows    storage.PriceWindowStore
	Reputation storage.ReputationStore
	Positions  storage.PositionStore

	Scorer     *scoring.Engine
	Strategies []strategy.Strategy
	Config     *config.Config
	Logger     *zap.Logger

	// Metrics is optional; a private instance is created when nil.
	Metrics *observability.Metrics

	// Workers bounds the number of assets processed concurrently.
	// Values below 1 run single-threaded.
	Workers int
}

// Runner executes one backtest batch. A faulted asset is recorded and
// skipped; it never aborts the batch.
type Runner struct {
	launches   storage.LaunchStore
	trades     storage.TradeEventStore
	windows    storage.PriceWindowStore
	reputation storage.ReputationStore
	positions  storage.PositionStore

	scorer     *scoring.Engine
	strategies []strategy.Strategy
	cfg        *config.Config
	log        *zap.Logger
	obs        *observability.Metrics
	workers    int
}

// NewRunner validates the options and builds a runner.
func NewRunner(opts Options) (*Runner, error) {
	if opts.Launches == nil || opts.Trades == nil || opts.Windows == nil || opts.Reputation == nil {
		return nil, errors.New("backtest: all market data stores are required")
	}
	if opts.Scorer == nil {
		return nil, errors.New("backtest: scorer is required")
	}
	if len(opts.Strategies) == 0 {
		return nil, errors.New("backtest: at least one strategy is required")
	}
	if opts.Config == nil {
		return nil, errors.New("backtest: config is required")
	}

	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	obs := opts.Metrics
	if obs == nil {
		obs = observability.NewMetrics("")
	}
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	return &Runner{
		launches:   opts.Launches,
		trades:     opts.Trades,
		windows:    opts.Windows,
		reputation: opts.Reputation,
		positions:  opts.Positions,
		scorer:     opts.Scorer,
		strategies: opts.Strategies,
		cfg:        opts.Config,
		log:        log,
		obs:        obs,
		workers:    workers,
	}, nil
}

// Run replays every launch with LaunchTime >= cutoff. The report is
// identical for identical inputs regardless of worker count, because the
// per-worker aggregates are plain sums merged at the end.
func (r *Runner) Run(ctx context.Context, cutoff int64) (*domain.BacktestReport, error) {
	batchStart := time.Now()
	launches, err := r.launches.LaunchesSince(ctx, cutoff)
	if err != nil {
		return nil, fmt.Errorf("load launches: %w", err)
	}
	r.log.Info("starting backtest batch",
		zap.Int("assets", len(launches)),
		zap.Int("strategies", len(r.strategies)),
		zap.Int("workers", r.workers),
	)

	jobs := make(chan *domain.LaunchRecord)
	aggs := make([]*metrics.Aggregator, r.workers)
	collected := make([][]*domain.SimulatedPosition, r.workers)

	var wg sync.WaitGroup
	for i := 0; i < r.workers; i++ {
		agg := metrics.NewAggregator()
		aggs[i] = agg
		slot := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			for launch := range jobs {
				assetStart := time.Now()
				positions, err := r.processAsset(ctx, launch, agg)
				r.obs.AssetDuration.Observe(time.Since(assetStart).Seconds())
				if err != nil {
					agg.RecordFault(launch.Asset, err.Error())
					r.obs.AssetsFaulted.Inc()
					r.log.Warn("asset faulted",
						zap.String("asset", launch.Asset),
						zap.Error(err),
					)
					continue
				}
				r.obs.AssetsProcessed.Inc()
				collected[slot] = append(collected[slot], positions...)
			}
		}()
	}

feed:
	for _, launch := range launches {
		select {
		case jobs <- launch:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	total := metrics.NewAggregator()
	var positions []*domain.SimulatedPosition
	for i, agg := range aggs {
		total.Merge(agg)
		positions = append(positions, collected[i]...)
	}

	if err := r.persist(ctx, positions); err != nil {
		return nil, err
	}

	report := total.Report()
	r.obs.BatchDuration.Observe(time.Since(batchStart).Seconds())
	r.log.Info("backtest batch complete",
		zap.Int("assets", report.AssetsProcessed),
		zap.Int("trades", report.TotalTrades()),
		zap.Int("faults", report.FaultCount),
		zap.Float64("pnl_usd", report.TotalPnLUSD()),
	)
	return report, nil
}

// processAsset scores one launch and runs every strategy over it. A panic
// inside a simulator is converted to an asset fault.
func (r *Runner) processAsset(ctx context.Context, launch *domain.LaunchRecord, agg *metrics.Aggregator) (positions []*domain.SimulatedPosition, err error) {
	defer func() {
		if p := recover(); p != nil {
			positions = nil
			err = fmt.Errorf("panic: %v", p)
		}
	}()

	horizonEnd := launch.LaunchTime + r.cfg.HorizonSec
	windows, err := r.windows.GetByTimeRange(ctx, launch.Asset, domain.WindowSec1Min, launch.LaunchTime, horizonEnd)
	if err != nil {
		return nil, fmt.Errorf("load windows: %w", err)
	}
	trades, err := r.trades.GetByTimeRange(ctx, launch.Asset, launch.LaunchTime, horizonEnd)
	if err != nil {
		return nil, fmt.Errorf("load trades: %w", err)
	}

	score, err := r.scorer.Score(ctx, launch, r.cfg.EvalOffsetSec)
	if err != nil {
		return nil, fmt.Errorf("score: %w", err)
	}
	bracket := domain.BracketFor(score.Total)
	agg.RecordQualified(bracket)
	if bracket != domain.BracketNone {
		r.obs.AssetsQualified.WithLabelValues(string(bracket)).Inc()
	}

	in := &strategy.Input{
		Launch:  launch,
		Windows: windows,
		Trades:  trades,
		Score:   score,
		TierOf:  r.tierLookup(ctx),
	}
	for _, s := range r.strategies {
		pos, err := s.Simulate(ctx, in)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", s.ID(), err)
		}
		if pos == nil {
			continue
		}
		agg.RecordPosition(pos)
		r.obs.PositionsSimulated.WithLabelValues(pos.StrategyID).Inc()
		positions = append(positions, pos)
	}

	agg.RecordAsset()
	return positions, nil
}

// persist stores the batch's positions in a canonical order. Duplicate
// position IDs mean the same batch ran before; that is logged, not fatal.
func (r *Runner) persist(ctx context.Context, positions []*domain.SimulatedPosition) error {
	if r.positions == nil || len(positions) == 0 {
		return nil
	}
	sort.Slice(positions, func(i, j int) bool {
		if positions[i].StrategyID != positions[j].StrategyID {
			return positions[i].StrategyID < positions[j].StrategyID
		}
		if positions[i].EntryTime != positions[j].EntryTime {
			return positions[i].EntryTime < positions[j].EntryTime
		}
		return positions[i].Asset < positions[j].Asset
	})

	if err := r.positions.InsertBulk(ctx, positions); err != nil {
		if errors.Is(err, storage.ErrDuplicateKey) {
			r.log.Warn("positions already persisted for this batch", zap.Error(err))
			return nil
		}
		return fmt.Errorf("persist positions: %w", err)
	}
	r.obs.PositionsPersisted.Add(float64(len(positions)))
	return nil
}

// tierLookup grades wallets through the reputation store with a per-asset
// memo, since copy qualification may probe the same trader many times.
func (r *Runner) tierLookup(ctx context.Context) func(wallet string) domain.WalletTier {
	memo := make(map[string]domain.WalletTier)
	return func(wallet string) domain.WalletTier {
		if tier, ok := memo[wallet]; ok {
			return tier
		}
		tier := domain.TierUnknown
		rep, err := r.reputation.GetByWallet(ctx, wallet)
		if err == nil && rep != nil {
			tier = rep.Tier()
		}
		memo[wallet] = tier
		return tier
	}
}
