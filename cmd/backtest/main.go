package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"solana-launch-backtest/internal/backtest"
	"solana-launch-backtest/internal/config"
	"solana-launch-backtest/internal/observability"
	"solana-launch-backtest/internal/reporting"
	"solana-launch-backtest/internal/scoring"
	"solana-launch-backtest/internal/storage"
	chstore "solana-launch-backtest/internal/storage/clickhouse"
	"solana-launch-backtest/internal/storage/memory"
	"solana-launch-backtest/internal/storage/migrations"
	pgstore "solana-launch-backtest/internal/storage/postgres"
	"solana-launch-backtest/internal/strategy"
	"solana-launch-backtest/pkg/logger"
)

func main() {
	// Batch selection
	cutoff := flag.Int64("cutoff", 0, "Replay launches with launch_time >= cutoff (unix seconds)")
	workers := flag.Int("workers", 4, "Number of assets processed concurrently")

	// Storage
	postgresDSN := flag.String("postgres-dsn", "", "PostgreSQL connection string")
	clickhouseDSN := flag.String("clickhouse-dsn", "", "ClickHouse connection string")
	useMemory := flag.Bool("use-memory", false, "Use in-memory storage")
	fixturePath := flag.String("fixture", "", "JSON fixture to load into in-memory storage")
	migrate := flag.Bool("migrate", false, "Apply database migrations before running")

	// Output
	outputJSON := flag.Bool("json", false, "Output the report as JSON")
	markdownOut := flag.String("out", "", "Write the Markdown report to this file (default stdout)")
	strategyCSV := flag.String("strategy-csv", "", "Write per-strategy statistics CSV to this file")
	bracketCSV := flag.String("bracket-csv", "", "Write per-bracket statistics CSV to this file")
	persist := flag.Bool("persist", false, "Persist simulated positions to storage")

	// Observability
	metricsAddr := flag.String("metrics-addr", "", "Expose Prometheus /metrics on this address while the batch runs")

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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.Info("received signal, shutting down", zap.String("signal", sig.String()))
		cancel()
	}()

	// Create stores
	launchStore := storage.LaunchStore(memory.NewLaunchStore())
	tradeStore := storage.TradeEventStore(memory.NewTradeEventStore())
	windowStore := storage.PriceWindowStore(memory.NewPriceWindowStore())
	reputationStore := storage.ReputationStore(memory.NewReputationStore())
	positionStore := storage.PositionStore(memory.NewPositionStore())

	if *useMemory {
		if *fixturePath != "" {
			if err := loadFixture(ctx, *fixturePath, launchStore, tradeStore, windowStore, reputationStore); err != nil {
				log.Fatal("load fixture", zap.String("path", *fixturePath), zap.Error(err))
			}
		}
	} else {
		if *postgresDSN == "" {
			log.Fatal("--postgres-dsn is required when not using --use-memory (launches, reputation, positions)")
		}
		if *clickhouseDSN == "" {
			log.Fatal("--clickhouse-dsn is required when not using --use-memory (trades, windows)")
		}

		pool, err := pgstore.NewPool(ctx, *postgresDSN)
		if err != nil {
			log.Fatal("connect to postgres", zap.Error(err))
		}
		defer pool.Close()

		if *migrate {
			if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
				log.Fatal("apply postgres migrations", zap.Error(err))
			}
		}

		var conn *chstore.Conn
		if *migrate {
			conn, err = migrations.RunClickhouseMigrations(ctx, *clickhouseDSN)
		} else {
			conn, err = chstore.NewConn(ctx, *clickhouseDSN)
		}
		if err != nil {
			log.Fatal("connect to clickhouse", zap.Error(err))
		}
		defer conn.Close()

		launchStore = pgstore.NewLaunchStore(pool)
		reputationStore = pgstore.NewReputationStore(pool)
		positionStore = pgstore.NewPositionStore(pool)
		tradeStore = chstore.NewTradeEventStore(conn)
		windowStore = chstore.NewPriceWindowStore(conn)
	}

	strategies, err := strategy.FromConfig(cfg)
	if err != nil {
		log.Fatal("build strategies", zap.Error(err))
	}

	obs := observability.NewMetrics("")
	if *metricsAddr != "" {
		go func() {
			if err := obs.Serve(*metricsAddr); err != nil {
				log.Warn("metrics listener stopped", zap.Error(err))
			}
		}()
	}

	var sink storage.PositionStore
	if *persist {
		sink = positionStore
	}

	runner, err := backtest.NewRunner(backtest.Options{
		Launches:   launchStore,
		Trades:     tradeStore,
		Windows:    windowStore,
		Reputation: reputationStore,
		Positions:  sink,
		Scorer:     scoring.NewEngine(tradeStore, windowStore, reputationStore, cfg),
		Strategies: strategies,
		Config:     cfg,
		Logger:     log,
		Metrics:    obs,
		Workers:    *workers,
	})
	if err != nil {
		log.Fatal("build runner", zap.Error(err))
	}

	report, err := runner.Run(ctx, *cutoff)
	if err != nil {
		log.Fatal("backtest failed", zap.Error(err))
	}

	if *outputJSON {
		output, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			log.Fatal("marshal report", zap.Error(err))
		}
		fmt.Println(string(output))
	} else {
		md := reporting.RenderMarkdown(report, time.Now().UTC())
		if *markdownOut != "" {
			if err := os.WriteFile(*markdownOut, []byte(md), 0644); err != nil {
				log.Fatal("write markdown report", zap.Error(err))
			}
		} else {
			fmt.Print(md)
		}
	}

	if *strategyCSV != "" {
		if err := writeCSV(*strategyCSV, report, reporting.WriteStrategyCSV); err != nil {
			log.Fatal("write strategy csv", zap.Error(err))
		}
	}
	if *bracketCSV != "" {
		if err := writeCSV(*bracketCSV, report, reporting.WriteBracketCSV); err != nil {
			log.Fatal("write bracket csv", zap.Error(err))
		}
	}
}
