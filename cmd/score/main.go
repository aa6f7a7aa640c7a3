package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"solana-launch-backtest/internal/config"
	"solana-launch-backtest/internal/domain"
	"solana-launch-backtest/internal/scoring"
	"solana-launch-backtest/internal/storage"
	chstore "solana-launch-backtest/internal/storage/clickhouse"
	pgstore "solana-launch-backtest/internal/storage/postgres"
	"solana-launch-backtest/pkg/logger"
)

// Diagnostic tool: scores one asset and prints the per-signal breakdown
// with the same labels the engine records.
func main() {
	asset := flag.String("asset", "", "Asset mint to score (required)")
	evalOffset := flag.Int64("eval-offset-sec", 0, "Override the evaluation offset (seconds after launch)")

	postgresDSN := flag.String("postgres-dsn", "", "PostgreSQL connection string")
	clickhouseDSN := flag.String("clickhouse-dsn", "", "ClickHouse connection string")

	outputJSON := flag.Bool("json", false, "Output as JSON")

	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.File); err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Log

	if *asset == "" {
		log.Fatal("--asset is required")
	}
	if *postgresDSN == "" || *clickhouseDSN == "" {
		log.Fatal("--postgres-dsn and --clickhouse-dsn are required")
	}
	if *evalOffset <= 0 {
		*evalOffset = cfg.EvalOffsetSec
	}

	ctx := context.Background()

	pool, err := pgstore.NewPool(ctx, *postgresDSN)
	if err != nil {
		log.Fatal("connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	conn, err := chstore.NewConn(ctx, *clickhouseDSN)
	if err != nil {
		log.Fatal("connect to clickhouse", zap.Error(err))
	}
	defer conn.Close()

	launchStore := pgstore.NewLaunchStore(pool)
	reputationStore := pgstore.NewReputationStore(pool)
	tradeStore := chstore.NewTradeEventStore(conn)
	windowStore := chstore.NewPriceWindowStore(conn)

	launch, err := launchStore.GetByAsset(ctx, *asset)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Fatal("asset has no launch record", zap.String("asset", *asset))
		}
		log.Fatal("load launch", zap.Error(err))
	}

	engine := scoring.NewEngine(tradeStore, windowStore, reputationStore, cfg)
	score, err := engine.Score(ctx, launch, *evalOffset)
	if err != nil {
		log.Fatal("score asset", zap.Error(err))
	}

	if *outputJSON {
		output, err := json.MarshalIndent(score, "", "  ")
		if err != nil {
			log.Fatal("marshal score", zap.Error(err))
		}
		fmt.Println(string(output))
		return
	}

	printScore(launch, score, *evalOffset)
}

func printScore(launch *domain.LaunchRecord, score *domain.SignalScore, evalOffset int64) {
	fmt.Printf("Asset:    %s\n", launch.Asset)
	fmt.Printf("Creator:  %s\n", launch.Creator)
	fmt.Printf("Launched: %d (scored at +%ds)\n\n", launch.LaunchTime, evalOffset)

	names := []string{
		"creator_reputation",
		"early_buyer_speed",
		"liquidity_ratio",
		"reputable_overlap",
		"buy_concentration",
		"volume_acceleration",
		"market_cap_velocity",
	}

	fmt.Printf("%-22s %8s  %s\n", "SIGNAL", "SCORE", "DETAIL")
	for i, s := range score.Signals() {
		fmt.Printf("%-22s %8.2f  %s\n", names[i], s.Contribution, s.Label)
	}
	fmt.Printf("\nTotal: %.2f / %.2f (bracket %s)\n",
		score.Total, domain.MaxTotal(), bracketLabel(score.Total))
}

func bracketLabel(total float64) string {
	bracket := domain.BracketFor(total)
	if bracket == domain.BracketNone {
		return "below gate"
	}
	return string(bracket)
}
