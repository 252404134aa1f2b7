package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	app "github.com/muhammadchandra19/matchbook/internal/app/engine"
	matchpublisherv1 "github.com/muhammadchandra19/matchbook/internal/domain/match-publisher/v1"
	orderreaderv1 "github.com/muhammadchandra19/matchbook/internal/domain/order-reader/v1"
	"github.com/muhammadchandra19/matchbook/internal/handler"
	"github.com/muhammadchandra19/matchbook/internal/metrics"
	matchpublisher "github.com/muhammadchandra19/matchbook/internal/usecase/match-publisher"
	orderreader "github.com/muhammadchandra19/matchbook/internal/usecase/order-reader"
	"github.com/muhammadchandra19/matchbook/internal/usecase/orderbook"
	"github.com/muhammadchandra19/matchbook/pkg/config"
	"github.com/muhammadchandra19/matchbook/pkg/httplib/healthcheck"
	"github.com/muhammadchandra19/matchbook/pkg/logger"
	"github.com/muhammadchandra19/matchbook/pkg/redis"
	"github.com/muhammadchandra19/matchbook/pkg/util"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var cfg *config.Config
var log *logger.Logger

func init() {
	cfg = &config.Config{}
	if err := config.Load(cfg); err != nil {
		panic(err)
	}
	if err := cfg.Validate(); err != nil {
		panic(err)
	}

	l, err := logger.NewLogger(logger.WithLoggingLevel(logger.ParseLevel(cfg.App.LogLevel)))
	if err != nil {
		panic(err)
	}

	log = l.WithFields(
		logger.Field{Key: "service", Value: cfg.App.Name},
		logger.Field{Key: "environment", Value: cfg.App.Environment},
	)
}

func main() {
	defer func() { _ = log.Sync() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	health := healthcheck.HealthCheck{Probes: map[string]healthcheck.Probe{}}

	publisher, err := newMatchPublisher(ctx, health)
	if err != nil {
		log.Error(err, logger.Field{Key: "action", Value: "create_match_publisher"})
		return
	}

	dispatcher := matchpublisher.NewDispatcher(
		publisher,
		cfg.App.Pair,
		matchpublisher.Options{
			Buffer:  cfg.Engine.PublishBuffer,
			Timeout: cfg.Engine.PublishTimeout,
		},
		log,
		m,
	)
	dispatcher.Start()

	// Initialize components
	clock := util.RealClock{}
	ob := orderbook.NewOrderbook(
		orderbook.WithClock(clock),
		orderbook.WithTradeSink(dispatcher),
	)

	var oReader orderreaderv1.OrderReader
	if cfg.OrderKafka.Enabled {
		oReader = orderreader.NewReader(cfg.OrderKafka, log)
	}

	engine := app.NewEngineWithOptions(
		ob,
		oReader,
		dispatcher,
		log,
		cfg,
		m,
		app.OptionsFromConfig(cfg.Engine, clock),
	)

	// Start the engine
	if err := engine.Start(ctx); err != nil {
		log.Error(err, logger.Field{
			Key:   "action",
			Value: "start_engine",
		})
		return
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.HTTPPort),
		Handler:           handler.NewRouter(engine, cfg.App.Pair, registry, health, log),
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	log.Info("Matching service started successfully",
		logger.Field{Key: "pair", Value: cfg.App.Pair},
		logger.Field{Key: "sink", Value: cfg.Engine.Sink},
		logger.Field{Key: "httpPort", Value: cfg.App.HTTPPort},
	)

	// Wait for shutdown signal
	select {
	case sig := <-sigChan:
		log.Info("Received shutdown signal", logger.Field{
			Key:   "signal",
			Value: sig.String(),
		})
	case err := <-serverErr:
		log.Error(err, logger.Field{Key: "action", Value: "serve_http"})
	}

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Engine.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error(err, logger.Field{Key: "action", Value: "stop_http_server"})
	}

	// Stop the engine gracefully
	if err := engine.Stop(shutdownCtx); err != nil {
		log.Error(err, logger.Field{
			Key:   "action",
			Value: "stop_engine",
		})
	}

	// Drain pending trade events, then close the transport
	if err := dispatcher.Stop(shutdownCtx); err != nil {
		log.Error(err, logger.Field{Key: "action", Value: "stop_dispatcher"})
	}

	log.Info("Matching service shutdown complete")
}

// newMatchPublisher builds the transport selected by ENGINE_SINK and
// registers its health probe.
func newMatchPublisher(ctx context.Context, health healthcheck.HealthCheck) (matchpublisherv1.MatchPublisher, error) {
	switch cfg.Engine.Sink {
	case config.SinkRedis:
		rclient := redis.NewClient(log, &cfg.Redis.Config)
		if err := rclient.Connect(ctx); err != nil {
			return nil, err
		}
		health.Probes["redis"] = rclient.Ping
		return matchpublisher.NewRedisPublisher(rclient, cfg.Redis, log), nil
	case config.SinkLog:
		return matchpublisher.NewLogPublisher(log), nil
	default:
		return matchpublisher.NewPublisher(cfg.MatchKafka, log), nil
	}
}
