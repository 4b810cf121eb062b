package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/muhammadchandra19/exchange-matching/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PRODUCT_ID", "BTC-USD")

	var cfg Config
	require.NoError(t, Load(&cfg, filepath.Join(t.TempDir(), "missing.env")))

	assert.Equal(t, "matching-engine", cfg.App.Name)
	assert.Equal(t, int32(6), cfg.Product.BaseScale)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "matching_order_BTC-USD", cfg.OrderTopic())
	assert.Equal(t, "matching_message_BTC-USD", cfg.LogTopic())
	assert.Equal(t, "matching_snapshot_BTC-USD", cfg.SnapshotKey())
	assert.Equal(t, SnapshotBackendRedis, cfg.Snapshot.Backend)
	assert.Equal(t, 30*time.Second, cfg.Snapshot.Interval)
	assert.Equal(t, int64(1000), cfg.Snapshot.OffsetDelta)
	assert.Equal(t, 10000, cfg.Engine.OrderQueueSize)
	assert.Equal(t, 32, cfg.Engine.ControlQueueSize)
	assert.Equal(t, 100, cfg.Engine.CommitBatchSize)
	assert.Equal(t, int64(10000), cfg.Engine.WindowCap)
	assert.Equal(t, []string{"localhost:6379"}, cfg.Redis.Addrs)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_DotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("PRODUCT_ID=ETH-USD\nKAFKA_BROKERS=k1:9092,k2:9092\nSNAPSHOT_BACKEND=pebble\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("PRODUCT_ID")
		os.Unsetenv("KAFKA_BROKERS")
		os.Unsetenv("SNAPSHOT_BACKEND")
	})

	var cfg Config
	require.NoError(t, Load(&cfg, path))

	assert.Equal(t, "ETH-USD", cfg.Product.ID)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, SnapshotBackendPebble, cfg.Snapshot.Backend)
}

func TestLoad_MissingProduct(t *testing.T) {
	var cfg Config
	assert.Error(t, Load(&cfg, filepath.Join(t.TempDir(), "missing.env")))
}

func TestConfig_Validate(t *testing.T) {
	testCases := []struct {
		name      string
		modify    func(c *Config)
		expectErr bool
	}{
		{
			name:   "valid",
			modify: func(c *Config) {},
		},
		{
			name:      "empty product",
			modify:    func(c *Config) { c.Product.ID = "" },
			expectErr: true,
		},
		{
			name:      "negative scale",
			modify:    func(c *Config) { c.Product.BaseScale = -1 },
			expectErr: true,
		},
		{
			name:      "unknown backend",
			modify:    func(c *Config) { c.Snapshot.Backend = "s3" },
			expectErr: true,
		},
		{
			name:      "zero queue",
			modify:    func(c *Config) { c.Engine.LogQueueSize = 0 },
			expectErr: true,
		},
		{
			name:      "zero window",
			modify:    func(c *Config) { c.Engine.WindowCap = 0 },
			expectErr: true,
		},
		{
			name: "pebble does not need redis",
			modify: func(c *Config) {
				c.Snapshot.Backend = SnapshotBackendPebble
				c.Redis.Addrs = nil
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("PRODUCT_ID", "BTC-USD")
			var cfg Config
			require.NoError(t, Load(&cfg, filepath.Join(t.TempDir(), "missing.env")))
			tc.modify(&cfg)

			err := cfg.Validate()
			if !tc.expectErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.ErrorCodeEquals(err, errors.ConfigError.String()))
		})
	}
}
