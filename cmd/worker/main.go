// Command worker consumes extracted deal events and writes deal_outcomes rows.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/turtacn/DealLens/internal/application/ingest"
	"github.com/turtacn/DealLens/internal/config"
	"github.com/turtacn/DealLens/internal/infrastructure/database/postgres"
	"github.com/turtacn/DealLens/internal/infrastructure/database/postgres/repositories"
	"github.com/turtacn/DealLens/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/DealLens/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/DealLens/internal/infrastructure/monitoring/prometheus"
	httpserver "github.com/turtacn/DealLens/internal/interfaces/http"
	"github.com/turtacn/DealLens/internal/interfaces/http/handlers"
)

var version = "dev"

func main() {
	configPath := flag.String("config", "", "path to configuration file (default: environment only)")
	healthPort := flag.Int("health-port", 8081, "port for /healthz, /readyz and /metrics")
	createTopics := flag.Bool("create-topics", false, "create the deals and dead letter topics before consuming")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.NewLogger(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if !cfg.Kafka.Enabled || !cfg.Database.Enabled {
		logger.Fatal("The worker needs kafka.enabled and database.enabled")
	}

	logger.Info("Starting deal outcome worker",
		logging.String("version", version),
		logging.String("topic", cfg.Kafka.DealsTopic),
		logging.String("group", cfg.Kafka.ConsumerGroup))

	var (
		metrics   *prometheus.AppMetrics
		collector prometheus.MetricsCollector
	)
	if cfg.Metrics.Enabled {
		collector, err = prometheus.NewMetricsCollector(prometheus.CollectorConfig{
			Namespace:       cfg.Metrics.Namespace,
			EnableGoMetrics: true,
		}, logger)
		if err != nil {
			logger.Fatal("Failed to create metrics collector", logging.Err(err))
		}
		metrics = prometheus.NewAppMetrics(collector)
	}

	conn, err := postgres.NewConnection(postgres.FromConfig(cfg.Database), logger)
	if err != nil {
		logger.Fatal("Failed to connect to Postgres", logging.Err(err))
	}
	defer conn.Close()
	if cfg.Database.AutoMigrate {
		if err := conn.RunMigrations(); err != nil {
			logger.Fatal("Failed to run migrations", logging.Err(err))
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if *createTopics {
		if err := ensureTopics(ctx, cfg.Kafka, logger); err != nil {
			logger.Fatal("Failed to create topics", logging.Err(err))
		}
	}

	handler := ingest.NewDealEventHandler(
		repositories.NewOutcomeRepository(conn, logger),
		cfg.Extract.OrganizationID,
		metrics,
		logger.Named("ingest"),
	)

	consumer, err := kafka.NewConsumer(kafka.ConsumerConfigFrom(cfg.Kafka), logger.Named("kafka"))
	if err != nil {
		logger.Fatal("Failed to create Kafka consumer", logging.Err(err))
	}
	defer consumer.Close()
	if err := consumer.Subscribe(cfg.Kafka.DealsTopic, handler.Handle); err != nil {
		logger.Fatal("Failed to subscribe", logging.Err(err))
	}

	healthCfg := cfg.Server
	healthCfg.Port = *healthPort
	healthSrv := httpserver.NewServer(healthCfg, httpserver.NewRouter(httpserver.RouterConfig{
		HealthHandler:    handlers.NewHealthHandler(version, conn),
		Metrics:          metrics,
		MetricsCollector: collector,
		MetricsPath:      cfg.Metrics.Path,
	}), logger)
	go func() {
		if err := healthSrv.Start(); err != nil {
			logger.Error("Health server failed", logging.Err(err))
		}
	}()

	if err := consumer.Start(ctx); err != nil {
		logger.Fatal("Failed to start consumer", logging.Err(err))
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	logger.Info("Received shutdown signal", logging.String("signal", sig.String()))

	cancel()
	done := make(chan struct{})
	go func() {
		consumer.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(30 * time.Second):
		logger.Warn("Consumer did not stop in time")
	}

	if err := healthSrv.Stop(context.Background()); err != nil {
		logger.Error("Health server shutdown error", logging.Err(err))
	}

	stats := consumer.Stats()
	logger.Info("Worker stopped",
		logging.Int64("processed", stats.MessagesProcessed),
		logging.Int64("failed", stats.MessagesFailed),
		logging.Int64("dead_lettered", stats.MessagesDeadLettered))
}

func ensureTopics(ctx context.Context, cfg config.KafkaConfig, logger logging.Logger) error {
	tm, err := kafka.NewTopicManager(cfg.Brokers, logger)
	if err != nil {
		return err
	}
	defer tm.Close()
	return tm.EnsureTopics(ctx, kafka.DealTopics(cfg.DealsTopic, cfg.DeadLetter))
}

//Personal.AI order the ending
