// Package config defines the configuration structures for DealLens. No I/O
// happens here, only plain data types and validation.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/turtacn/DealLens/internal/infrastructure/monitoring/logging"
)

// ─────────────────────────────────────────────────────────────────────────────
// Sub-configuration structs
// ─────────────────────────────────────────────────────────────────────────────

// ServerConfig holds HTTP server tunables.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxBodySize     int64         `mapstructure:"max_body_size"`
	CORSOrigins     []string      `mapstructure:"cors_origins"`
}

// Addr returns host:port.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// ExtractConfig controls the deal extraction run.
type ExtractConfig struct {
	OutputFile     string `mapstructure:"output_file"`
	OrganizationID string `mapstructure:"organization_id"`
	PreviewLimit   int    `mapstructure:"preview_limit"`
	// DefaultRevenueM is the revenue assumed by the sector report when a record
	// has none.
	DefaultRevenueM float64 `mapstructure:"default_revenue_m"`
}

// DatabaseConfig holds PostgreSQL connection parameters for the deal_outcomes
// store.
type DatabaseConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"db_name"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
}

// RedisConfig holds the score cache connection.
type RedisConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Addr         string        `mapstructure:"addr"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	KeyPrefix    string        `mapstructure:"key_prefix"`
	ScoreTTL     time.Duration `mapstructure:"score_ttl"`
}

// KafkaConfig holds deal event messaging settings.
type KafkaConfig struct {
	Enabled       bool          `mapstructure:"enabled"`
	Brokers       []string      `mapstructure:"brokers"`
	DealsTopic    string        `mapstructure:"deals_topic"`
	ConsumerGroup string        `mapstructure:"consumer_group"`
	DeadLetter    string        `mapstructure:"dead_letter_topic"`
	MaxRetries    int           `mapstructure:"max_retries"`
	RetryBackoff  time.Duration `mapstructure:"retry_backoff"`
	WriteTimeout  time.Duration `mapstructure:"write_timeout"`
}

// MinIOConfig holds the extraction archive bucket.
type MinIOConfig struct {
	Enabled         bool   `mapstructure:"enabled"`
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	UseSSL          bool   `mapstructure:"use_ssl"`
	Region          string `mapstructure:"region"`
	Bucket          string `mapstructure:"bucket"`
	Prefix          string `mapstructure:"prefix"`
}

// MetricsConfig toggles the Prometheus registry.
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Namespace string `mapstructure:"namespace"`
	Path      string `mapstructure:"path"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Root
// ─────────────────────────────────────────────────────────────────────────────

// Environment names.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config is the root configuration object.
type Config struct {
	Environment string            `mapstructure:"environment"`
	Server      ServerConfig      `mapstructure:"server"`
	Log         logging.LogConfig `mapstructure:"log"`
	Extract     ExtractConfig     `mapstructure:"extract"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Redis       RedisConfig       `mapstructure:"redis"`
	Kafka       KafkaConfig       `mapstructure:"kafka"`
	MinIO       MinIOConfig       `mapstructure:"minio"`
	Metrics     MetricsConfig     `mapstructure:"metrics"`
}

// IsProduction reports whether the process runs in the production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// Validate checks cross-field constraints. Optional integrations are only
// checked when enabled.
func (c *Config) Validate() error {
	var problems []string

	if c.Environment != EnvDevelopment && c.Environment != EnvProduction {
		problems = append(problems, fmt.Sprintf("environment must be %q or %q", EnvDevelopment, EnvProduction))
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		problems = append(problems, "server.port must be in 1..65535")
	}
	if _, err := logging.ParseLevel(string(c.Log.Level)); err != nil {
		problems = append(problems, err.Error())
	}
	if c.Log.Format != "json" && c.Log.Format != "console" {
		problems = append(problems, "log.format must be json or console")
	}
	if strings.TrimSpace(c.Extract.OutputFile) == "" {
		problems = append(problems, "extract.output_file is required")
	}
	if c.Extract.PreviewLimit < 0 {
		problems = append(problems, "extract.preview_limit must be >= 0")
	}

	if c.Database.Enabled {
		if c.Database.Host == "" || c.Database.DBName == "" {
			problems = append(problems, "database.host and database.db_name are required when database is enabled")
		}
		if c.Extract.OrganizationID == "" {
			problems = append(problems, "extract.organization_id is required when database is enabled")
		}
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		problems = append(problems, "redis.addr is required when redis is enabled")
	}
	if c.Kafka.Enabled {
		if len(c.Kafka.Brokers) == 0 {
			problems = append(problems, "kafka.brokers is required when kafka is enabled")
		}
		if c.Kafka.DealsTopic == "" {
			problems = append(problems, "kafka.deals_topic is required when kafka is enabled")
		}
	}
	if c.MinIO.Enabled && (c.MinIO.Endpoint == "" || c.MinIO.Bucket == "") {
		problems = append(problems, "minio.endpoint and minio.bucket are required when minio is enabled")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

//Personal.AI order the ending
