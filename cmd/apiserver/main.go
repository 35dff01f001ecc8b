// Command apiserver serves the valuation API.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	valuationapp "github.com/turtacn/DealLens/internal/application/valuation"
	"github.com/turtacn/DealLens/internal/config"
	"github.com/turtacn/DealLens/internal/domain/valuation"
	"github.com/turtacn/DealLens/internal/infrastructure/database/memory"
	"github.com/turtacn/DealLens/internal/infrastructure/database/postgres"
	"github.com/turtacn/DealLens/internal/infrastructure/database/redis"
	"github.com/turtacn/DealLens/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/DealLens/internal/infrastructure/monitoring/prometheus"
	httpserver "github.com/turtacn/DealLens/internal/interfaces/http"
	"github.com/turtacn/DealLens/internal/interfaces/http/handlers"
	"github.com/turtacn/DealLens/internal/interfaces/http/middleware"
)

var version = "dev"

func main() {
	configPath := flag.String("config", "", "path to configuration file (default: environment only)")
	port := flag.Int("port", 0, "HTTP port (overrides config and PORT)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *port > 0 {
		cfg.Server.Port = *port
	}

	logger, err := logging.NewLogger(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	logging.SetDefault(logger)

	logger.Info("Starting valuation API",
		logging.String("version", version),
		logging.String("environment", cfg.Environment),
		logging.String("addr", cfg.Server.Addr()))

	var (
		metrics   *prometheus.AppMetrics
		collector prometheus.MetricsCollector
	)
	if cfg.Metrics.Enabled {
		collector, err = prometheus.NewMetricsCollector(prometheus.CollectorConfig{
			Namespace:            cfg.Metrics.Namespace,
			EnableProcessMetrics: true,
			EnableGoMetrics:      true,
		}, logger)
		if err != nil {
			logger.Fatal("Failed to create metrics collector", logging.Err(err))
		}
		metrics = prometheus.NewAppMetrics(collector)
	}

	var checkers []handlers.HealthChecker
	cache := newScoreCache(cfg, logger, &checkers)

	if cfg.Database.Enabled {
		conn, err := postgres.NewConnection(postgres.FromConfig(cfg.Database), logger)
		if err != nil {
			logger.Warn("Postgres unavailable, readiness will not report it", logging.Err(err))
		} else {
			defer conn.Close()
			checkers = append(checkers, conn)
		}
	}

	svcOpts := []valuationapp.Option{valuationapp.WithCache(cache, cfg.Redis.ScoreTTL)}
	if metrics != nil {
		svcOpts = append(svcOpts, valuationapp.WithMetrics(metrics))
	}
	svc := valuationapp.NewService(valuation.Default(), logger, svcOpts...)

	corsCfg := middleware.DefaultCORSConfig()
	if len(cfg.Server.CORSOrigins) > 0 {
		corsCfg.AllowedOrigins = cfg.Server.CORSOrigins
	}
	logCfg := middleware.DefaultLoggingConfig()

	router := httpserver.NewRouter(httpserver.RouterConfig{
		ValuationHandler: handlers.NewValuationHandler(svc, cfg.Server.MaxBodySize, logger.Named("http")),
		HealthHandler:    handlers.NewHealthHandler(version, checkers...),
		CORS:             &corsCfg,
		Logging:          &logCfg,
		Logger:           logger.Named("http"),
		Metrics:          metrics,
		MetricsCollector: collector,
		MetricsPath:      cfg.Metrics.Path,
	})
	server := httpserver.NewServer(cfg.Server, router, logger)

	errCh := make(chan error, 1)
	go func() { errCh <- server.Start() }()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info("Received shutdown signal", logging.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			logger.Error("HTTP server failed", logging.Err(err))
			os.Exit(1)
		}
		return
	}

	if err := server.Stop(context.Background()); err != nil {
		logger.Error("HTTP server shutdown error", logging.Err(err))
	}
}

// newScoreCache connects Redis when enabled and falls back to the in-process
// cache otherwise or when Redis is unreachable.
func newScoreCache(cfg *config.Config, logger logging.Logger, checkers *[]handlers.HealthChecker) redis.Cache {
	if cfg.Redis.Enabled {
		client, err := redis.NewClient(redis.FromConfig(cfg.Redis), logger)
		if err == nil {
			*checkers = append(*checkers, client)
			return redis.NewRedisCache(client, logger,
				redis.WithPrefix(cfg.Redis.KeyPrefix),
				redis.WithDefaultTTL(cfg.Redis.ScoreTTL))
		}
		logger.Warn("Redis unavailable, using in-process score cache", logging.Err(err))
	}
	return memory.NewCache(cfg.Redis.KeyPrefix, cfg.Redis.ScoreTTL, logger)
}

//Personal.AI order the ending
