package config

import (
	"time"

	"github.com/spf13/viper"

	"github.com/turtacn/DealLens/internal/infrastructure/monitoring/logging"
)

// ─────────────────────────────────────────────────────────────────────────────
// Default value constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	DefaultServerHost      = "0.0.0.0"
	DefaultServerPort      = 5000
	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
	DefaultMaxBodySize     = 1 << 20

	DefaultOutputFile      = "extracted_deals.json"
	DefaultPreviewLimit    = 10
	DefaultReportRevenueM  = 50.0

	DefaultDBHost     = "localhost"
	DefaultDBPort     = 5432
	DefaultDBName     = "deallens"
	DefaultDBSSLMode  = "disable"
	DefaultDBMaxConns = 10

	DefaultRedisAddr      = "localhost:6379"
	DefaultRedisKeyPrefix = "deallens:"
	DefaultScoreTTL       = 10 * time.Minute

	DefaultKafkaBroker   = "localhost:9092"
	DefaultDealsTopic    = "deallens.deals.extracted"
	DefaultConsumerGroup = "deallens-outcome-writer"

	DefaultMinIOEndpoint = "localhost:9000"
	DefaultMinIOBucket   = "deallens-extractions"
	DefaultMinIOPrefix   = "extractions"

	DefaultMetricsNamespace = "deallens"
	DefaultMetricsPath      = "/metrics"
)

// setViperDefaults registers every key with viper so that DEALLENS_* variables
// resolve even when no config file mentions the key.
func setViperDefaults(v *viper.Viper) {
	v.SetDefault("environment", EnvDevelopment)

	v.SetDefault("server.host", DefaultServerHost)
	v.SetDefault("server.port", DefaultServerPort)
	v.SetDefault("server.read_timeout", DefaultReadTimeout)
	v.SetDefault("server.write_timeout", DefaultWriteTimeout)
	v.SetDefault("server.idle_timeout", DefaultIdleTimeout)
	v.SetDefault("server.shutdown_timeout", DefaultShutdownTimeout)
	v.SetDefault("server.max_body_size", DefaultMaxBodySize)
	v.SetDefault("server.cors_origins", []string{"*"})

	v.SetDefault("log.level", "")
	v.SetDefault("log.format", "")
	v.SetDefault("log.output_paths", []string{"stdout"})
	v.SetDefault("log.error_output_paths", []string{"stderr"})

	v.SetDefault("extract.output_file", DefaultOutputFile)
	v.SetDefault("extract.organization_id", "")
	v.SetDefault("extract.preview_limit", DefaultPreviewLimit)
	v.SetDefault("extract.default_revenue_m", DefaultReportRevenueM)

	v.SetDefault("database.enabled", false)
	v.SetDefault("database.host", DefaultDBHost)
	v.SetDefault("database.port", DefaultDBPort)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.db_name", DefaultDBName)
	v.SetDefault("database.ssl_mode", DefaultDBSSLMode)
	v.SetDefault("database.max_open_conns", DefaultDBMaxConns)
	v.SetDefault("database.max_idle_conns", DefaultDBMaxConns/2)
	v.SetDefault("database.conn_max_lifetime", 30*time.Minute)
	v.SetDefault("database.conn_max_idle_time", 5*time.Minute)
	v.SetDefault("database.auto_migrate", true)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", DefaultRedisAddr)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.dial_timeout", 5*time.Second)
	v.SetDefault("redis.read_timeout", 3*time.Second)
	v.SetDefault("redis.write_timeout", 3*time.Second)
	v.SetDefault("redis.key_prefix", DefaultRedisKeyPrefix)
	v.SetDefault("redis.score_ttl", DefaultScoreTTL)

	v.SetDefault("kafka.enabled", false)
	v.SetDefault("kafka.brokers", []string{DefaultKafkaBroker})
	v.SetDefault("kafka.deals_topic", DefaultDealsTopic)
	v.SetDefault("kafka.consumer_group", DefaultConsumerGroup)
	v.SetDefault("kafka.dead_letter_topic", "")
	v.SetDefault("kafka.max_retries", 3)
	v.SetDefault("kafka.retry_backoff", time.Second)
	v.SetDefault("kafka.write_timeout", 10*time.Second)

	v.SetDefault("minio.enabled", false)
	v.SetDefault("minio.endpoint", DefaultMinIOEndpoint)
	v.SetDefault("minio.access_key_id", "")
	v.SetDefault("minio.secret_access_key", "")
	v.SetDefault("minio.use_ssl", false)
	v.SetDefault("minio.region", "")
	v.SetDefault("minio.bucket", DefaultMinIOBucket)
	v.SetDefault("minio.prefix", DefaultMinIOPrefix)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.namespace", DefaultMetricsNamespace)
	v.SetDefault("metrics.path", DefaultMetricsPath)
}

// ApplyDefaults fills the fields whose default depends on other settings. It
// runs after unmarshalling and before Validate.
//
// Log level and format follow the environment unless set explicitly:
// production logs JSON at info, development logs console output at debug.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}
	if cfg.Environment == "" {
		cfg.Environment = EnvDevelopment
	}
	if cfg.Log.Level == "" {
		if cfg.IsProduction() {
			cfg.Log.Level = logging.LevelInfo
		} else {
			cfg.Log.Level = logging.LevelDebug
		}
	}
	if cfg.Log.Format == "" {
		if cfg.IsProduction() {
			cfg.Log.Format = "json"
		} else {
			cfg.Log.Format = "console"
		}
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultServerPort
	}
	if cfg.Extract.OutputFile == "" {
		cfg.Extract.OutputFile = DefaultOutputFile
	}
	if cfg.Extract.DefaultRevenueM <= 0 {
		cfg.Extract.DefaultRevenueM = DefaultReportRevenueM
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = DefaultMetricsPath
	}
}

//Personal.AI order the ending
