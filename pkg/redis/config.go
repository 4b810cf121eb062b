package redis

import (
	"time"

	"github.com/muhammadchandra19/exchange-matching/pkg/errors"
)

// Mode represents the mode of the Redis client.
type Mode string

const (
	// Standalone Mode is for a single Redis instance.
	Standalone Mode = "standalone"
	// Cluster Mode is for a Redis cluster setup.
	Cluster Mode = "cluster"
)

// Config holds the configuration for the Redis client.
type Config struct {
	Mode     Mode   `env:"MODE" envDefault:"standalone"`
	Username string `env:"USERNAME"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" envDefault:"0"`

	Addrs []string `env:"ADDRS" envDefault:"localhost:6379"`

	ConnectTimeout      time.Duration `env:"CONNECT_TIMEOUT" envDefault:"5s"`
	MaxRetries          int           `env:"MAX_RETRIES" envDefault:"3"`
	MinRetryBackoff     time.Duration `env:"MIN_RETRY_BACKOFF" envDefault:"100ms"`
	MaxRetryBackoff     time.Duration `env:"MAX_RETRY_BACKOFF" envDefault:"2s"`
	PoolSize            int           `env:"POOL_SIZE" envDefault:"10"`
	MinIdleConns        int           `env:"MIN_IDLE_CONNS" envDefault:"2"`
	MaxIdleConns        int           `env:"MAX_IDLE_CONNS" envDefault:"10"`
	ConnMaxLifetime     time.Duration `env:"CONN_MAX_LIFETIME" envDefault:"30m"`
	ConnMaxIdleTime     time.Duration `env:"CONN_MAX_IDLE_TIME" envDefault:"10m"`
	PoolTimeout         time.Duration `env:"POOL_TIMEOUT" envDefault:"4s"`
	ReconnectMaxRetries int           `env:"RECONNECT_MAX_RETRIES" envDefault:"3"`
}

// DefaultConfig returns a default configuration for the Redis client.
func DefaultConfig() *Config {
	return &Config{
		Mode:                Standalone,
		Addrs:               []string{"localhost:6379"},
		ConnectTimeout:      5 * time.Second,
		MaxRetries:          3,
		MinRetryBackoff:     100 * time.Millisecond,
		MaxRetryBackoff:     2 * time.Second,
		PoolSize:            10,
		MinIdleConns:        2,
		MaxIdleConns:        10,
		ConnMaxLifetime:     30 * time.Minute,
		ConnMaxIdleTime:     10 * time.Minute,
		PoolTimeout:         4 * time.Second,
		ReconnectMaxRetries: 3,
	}
}

// Validate checks the configuration before a connection is attempted.
func (c *Config) Validate() error {
	if c == nil {
		return errors.NewErrorDetails("Redis config is nil", errors.RedisConfigError.String(), "config")
	}
	if len(c.Addrs) == 0 {
		return errors.NewErrorDetails("Redis addresses are empty", errors.RedisConfigError.String(), "addrs")
	}
	if c.Mode != Standalone && c.Mode != Cluster {
		return errors.NewErrorDetails("Invalid Redis mode", errors.RedisConfigError.String(), "mode")
	}
	if c.ConnectTimeout <= 0 {
		return errors.NewErrorDetails("Invalid Redis connect timeout", errors.RedisConfigError.String(), "connect_timeout")
	}
	if c.PoolSize <= 0 {
		return errors.NewErrorDetails("Invalid Redis pool size", errors.RedisConfigError.String(), "pool_size")
	}
	if c.MinIdleConns < 0 || c.MaxIdleConns < 0 {
		return errors.NewErrorDetails("Invalid Redis idle connections", errors.RedisConfigError.String(), "idle_conns")
	}
	if c.ConnMaxLifetime <= 0 {
		return errors.NewErrorDetails("Invalid Redis connection max lifetime", errors.RedisConfigError.String(), "conn_max_lifetime")
	}
	if c.ConnMaxIdleTime <= 0 {
		return errors.NewErrorDetails("Invalid Redis connection max idle time", errors.RedisConfigError.String(), "conn_max_idle_time")
	}
	if c.PoolTimeout <= 0 {
		return errors.NewErrorDetails("Invalid Redis pool timeout", errors.RedisConfigError.String(), "pool_timeout")
	}
	if c.MaxRetries < 0 || c.ReconnectMaxRetries < 0 {
		return errors.NewErrorDetails("Invalid Redis max retries", errors.RedisConfigError.String(), "max_retries")
	}
	if c.MinRetryBackoff < 0 || c.MaxRetryBackoff < 0 {
		return errors.NewErrorDetails("Invalid Redis retry backoff", errors.RedisConfigError.String(), "retry_backoff")
	}
	return nil
}
