package main

import (
	"context"
	stderrors "errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	app "github.com/muhammadchandra19/exchange-matching/internal/app/engine"
	orderbookv1 "github.com/muhammadchandra19/exchange-matching/internal/domain/orderbook/v1"
	snapshotv1 "github.com/muhammadchandra19/exchange-matching/internal/domain/snapshot/v1"
	matchlog "github.com/muhammadchandra19/exchange-matching/internal/usecase/match-log"
	orderreader "github.com/muhammadchandra19/exchange-matching/internal/usecase/order-reader"
	"github.com/muhammadchandra19/exchange-matching/internal/usecase/orderbook"
	"github.com/muhammadchandra19/exchange-matching/internal/usecase/snapshot"
	"github.com/muhammadchandra19/exchange-matching/pkg/config"
	"github.com/muhammadchandra19/exchange-matching/pkg/httplib/healthcheck"
	"github.com/muhammadchandra19/exchange-matching/pkg/logger"
	"github.com/muhammadchandra19/exchange-matching/pkg/redis"
	"github.com/muhammadchandra19/exchange-matching/pkg/util"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 30 * time.Second

func main() {
	os.Exit(run())
}

func run() int {
	cfg := &config.Config{}
	config.MustLoad(cfg)

	level, err := logger.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		panic(err)
	}
	log, err := logger.NewLogger(logger.WithLoggingLevel(level))
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	if err := cfg.Validate(); err != nil {
		log.Error(err, logger.Field{Key: "action", Value: "validate_config"})
		return 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ctx = util.WithRequestID(ctx, util.NewRequestID())
	ctx = util.WithProductID(ctx, cfg.Product.ID)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	snapshotStore, err := newSnapshotStore(ctx, cfg, log)
	if err != nil {
		log.ErrorContext(ctx, err, logger.Field{Key: "action", Value: "open_snapshot_store"})
		return 1
	}
	defer closeWithLog(log, "close_snapshot_store", snapshotStore.Close)

	oReader := orderreader.NewReader(orderreader.Config{
		Brokers:   cfg.Kafka.Brokers,
		Topic:     cfg.OrderTopic(),
		Partition: cfg.Kafka.Partition,
	}, log)
	defer closeWithLog(log, "close_order_reader", oReader.Close)

	logPublisher := matchlog.NewPublisher(matchlog.Config{
		Brokers:   cfg.Kafka.Brokers,
		Topic:     cfg.LogTopic(),
		ProductID: cfg.Product.ID,
		BatchSize: cfg.Engine.CommitBatchSize,
	}, log)
	defer closeWithLog(log, "close_log_publisher", logPublisher.Close)

	product := &orderbookv1.Product{
		ID:            cfg.Product.ID,
		BaseCurrency:  cfg.Product.BaseCurrency,
		QuoteCurrency: cfg.Product.QuoteCurrency,
		BaseScale:     cfg.Product.BaseScale,
		QuoteScale:    cfg.Product.QuoteScale,
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	engine := app.NewEngine(
		orderbook.NewOrderBook(product, cfg.Engine.WindowCap, log),
		oReader,
		logPublisher,
		snapshotStore,
		app.NewMetrics(registry, cfg.Product.ID),
		log,
		app.OptionsFromConfig(cfg),
	)

	if err := engine.Start(ctx); err != nil {
		log.ErrorContext(ctx, err, logger.Field{Key: "action", Value: "start_engine"})
		return 1
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	server := &http.Server{
		Addr:              cfg.App.HTTPAddr,
		Handler:           healthcheck.HealthCheck{Check: engine.Health}.Handler(mux),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := server.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			log.ErrorContext(ctx, err, logger.Field{Key: "action", Value: "serve_http"})
		}
	}()

	log.InfoContext(ctx, "matching engine started",
		logger.Field{Key: "product_id", Value: cfg.Product.ID},
		logger.Field{Key: "http_addr", Value: cfg.App.HTTPAddr},
	)

	exitCode := 0
	select {
	case sig := <-sigChan:
		log.InfoContext(ctx, "received shutdown signal", logger.Field{Key: "signal", Value: sig.String()})
	case <-engine.Dead():
		exitCode = 1
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := engine.Stop(shutdownCtx); err != nil {
		log.ErrorContext(ctx, err, logger.Field{Key: "action", Value: "stop_engine"})
		exitCode = 1
	}
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.ErrorContext(ctx, err, logger.Field{Key: "action", Value: "stop_http"})
	}

	log.InfoContext(ctx, "matching engine shutdown complete")
	return exitCode
}

func newSnapshotStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (snapshotv1.Store, error) {
	switch cfg.Snapshot.Backend {
	case config.SnapshotBackendPebble:
		return snapshot.NewPebbleStore(cfg.Snapshot.PebbleDir, cfg.SnapshotKey(), log)
	default:
		redisConfig := cfg.Redis
		rclient := redis.NewClient(log, &redisConfig)
		if err := rclient.Connect(ctx); err != nil {
			return nil, err
		}
		return snapshot.NewSnapshotStore(rclient, cfg.SnapshotKey(), log), nil
	}
}

func closeWithLog(log *logger.Logger, action string, closeFn func() error) {
	if err := closeFn(); err != nil {
		log.Error(err, logger.Field{Key: "action", Value: action})
	}
}
