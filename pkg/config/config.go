package config

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/muhammadchandra19/exchange-matching/pkg/errors"
	"github.com/muhammadchandra19/exchange-matching/pkg/redis"
)

// MustLoad loads the configuration from environment variables and .env file.
func MustLoad[T any](cfg T) {
	_ = godotenv.Load() // Load environment variables from .env file

	env.Must(cfg, env.Parse(cfg))
}

// Load loads the configuration from environment variables and an optional .env file.
func Load[T any](cfg T, filenames ...string) error {
	if err := godotenv.Load(filenames...); err != nil && !stderrors.Is(err, fs.ErrNotExist) {
		return err
	}

	return env.Parse(cfg)
}

// SnapshotBackend selects where snapshots are persisted.
type SnapshotBackend string

const (
	// SnapshotBackendRedis keeps the latest snapshot under one Redis key.
	SnapshotBackendRedis SnapshotBackend = "redis"
	// SnapshotBackendPebble keeps the latest snapshot in a local Pebble database.
	SnapshotBackendPebble SnapshotBackend = "pebble"
)

// Config holds the configuration for the matching engine.
type Config struct {
	App      AppConfig      `envPrefix:"APP_"`
	Product  ProductConfig  `envPrefix:"PRODUCT_"`
	Kafka    KafkaConfig    `envPrefix:"KAFKA_"`
	Redis    redis.Config   `envPrefix:"REDIS_"`
	Snapshot SnapshotConfig `envPrefix:"SNAPSHOT_"`
	Engine   EngineConfig   `envPrefix:"ENGINE_"`
}

// AppConfig holds process level settings.
type AppConfig struct {
	Name        string `env:"NAME" envDefault:"matching-engine"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	HTTPAddr    string `env:"HTTP_ADDR" envDefault:":8080"`
}

// ProductConfig identifies the single product this engine matches.
type ProductConfig struct {
	ID            string `env:"ID,required"` // e.g. BTC-USD
	BaseCurrency  string `env:"BASE_CURRENCY"`
	QuoteCurrency string `env:"QUOTE_CURRENCY"`
	BaseScale     int32  `env:"BASE_SCALE" envDefault:"6"`
	QuoteScale    int32  `env:"QUOTE_SCALE" envDefault:"2"`
}

// KafkaConfig holds the configuration for the order reader and the log publisher.
type KafkaConfig struct {
	Brokers          []string `env:"BROKERS" envDefault:"localhost:9092"`
	OrderTopicPrefix string   `env:"ORDER_TOPIC_PREFIX" envDefault:"matching_order_"`
	LogTopicPrefix   string   `env:"LOG_TOPIC_PREFIX" envDefault:"matching_message_"`
	Partition        int      `env:"PARTITION" envDefault:"0"`
}

// SnapshotConfig holds the snapshot store and checkpoint cadence settings.
type SnapshotConfig struct {
	Backend     SnapshotBackend `env:"BACKEND" envDefault:"redis"`
	KeyPrefix   string          `env:"KEY_PREFIX" envDefault:"matching_snapshot_"`
	PebbleDir   string          `env:"PEBBLE_DIR" envDefault:"./data/snapshot"`
	Interval    time.Duration   `env:"INTERVAL" envDefault:"30s"`
	OffsetDelta int64           `env:"OFFSET_DELTA" envDefault:"1000"`
}

// EngineConfig holds the pipeline queue and retry settings.
type EngineConfig struct {
	OrderQueueSize    int           `env:"ORDER_QUEUE_SIZE" envDefault:"10000"`
	LogQueueSize      int           `env:"LOG_QUEUE_SIZE" envDefault:"10000"`
	ControlQueueSize  int           `env:"CONTROL_QUEUE_SIZE" envDefault:"32"`
	CommitBatchSize   int           `env:"COMMIT_BATCH_SIZE" envDefault:"100"`
	StoreMaxRetries   int           `env:"STORE_MAX_RETRIES" envDefault:"3"`
	StoreRetryBackoff time.Duration `env:"STORE_RETRY_BACKOFF" envDefault:"200ms"`
	WindowCap         int64         `env:"WINDOW_CAP" envDefault:"10000"`
}

// OrderTopic returns the topic orders for the configured product are read from.
func (c *Config) OrderTopic() string {
	return c.Kafka.OrderTopicPrefix + c.Product.ID
}

// LogTopic returns the topic logs for the configured product are appended to.
func (c *Config) LogTopic() string {
	return c.Kafka.LogTopicPrefix + c.Product.ID
}

// SnapshotKey returns the Redis key holding the latest snapshot.
func (c *Config) SnapshotKey() string {
	return c.Snapshot.KeyPrefix + c.Product.ID
}

// Validate rejects configurations the engine cannot run with.
func (c *Config) Validate() error {
	invalid := func(message, field string) error {
		return errors.NewErrorDetails(message, errors.ConfigError.String(), field)
	}

	if c.Product.ID == "" {
		return invalid("product id is required", "PRODUCT_ID")
	}
	if c.Product.BaseScale < 0 || c.Product.QuoteScale < 0 {
		return invalid("product scales must not be negative", "PRODUCT_BASE_SCALE")
	}
	if len(c.Kafka.Brokers) == 0 {
		return invalid("at least one kafka broker is required", "KAFKA_BROKERS")
	}
	switch c.Snapshot.Backend {
	case SnapshotBackendRedis:
		if err := c.Redis.Validate(); err != nil {
			return err
		}
	case SnapshotBackendPebble:
		if c.Snapshot.PebbleDir == "" {
			return invalid("pebble directory is required", "SNAPSHOT_PEBBLE_DIR")
		}
	default:
		return invalid(fmt.Sprintf("unknown snapshot backend %q", c.Snapshot.Backend), "SNAPSHOT_BACKEND")
	}
	if c.Snapshot.Interval <= 0 {
		return invalid("snapshot interval must be positive", "SNAPSHOT_INTERVAL")
	}
	if c.Engine.OrderQueueSize <= 0 || c.Engine.LogQueueSize <= 0 || c.Engine.ControlQueueSize <= 0 {
		return invalid("queue sizes must be positive", "ENGINE_QUEUE_SIZE")
	}
	if c.Engine.CommitBatchSize <= 0 {
		return invalid("commit batch size must be positive", "ENGINE_COMMIT_BATCH_SIZE")
	}
	if c.Engine.StoreMaxRetries < 0 {
		return invalid("store retries must not be negative", "ENGINE_STORE_MAX_RETRIES")
	}
	if c.Engine.WindowCap <= 0 {
		return invalid("window cap must be positive", "ENGINE_WINDOW_CAP")
	}
	return nil
}
