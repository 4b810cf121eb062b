package redis

import (
	"context"
	"testing"

	"github.com/muhammadchandra19/exchange-matching/pkg/errors"
	"github.com/muhammadchandra19/exchange-matching/pkg/logger"
	"github.com/stretchr/testify/assert"
)

func TestConfig_Validate(t *testing.T) {
	testCases := []struct {
		name      string
		modify    func(c *Config)
		expectErr bool
	}{
		{
			name:   "default",
			modify: func(c *Config) {},
		},
		{
			name:      "no addrs",
			modify:    func(c *Config) { c.Addrs = nil },
			expectErr: true,
		},
		{
			name:      "unknown mode",
			modify:    func(c *Config) { c.Mode = "sentinel" },
			expectErr: true,
		},
		{
			name:      "zero pool",
			modify:    func(c *Config) { c.PoolSize = 0 },
			expectErr: true,
		},
		{
			name:      "negative retries",
			modify:    func(c *Config) { c.MaxRetries = -1 },
			expectErr: true,
		},
		{
			name:      "zero connect timeout",
			modify:    func(c *Config) { c.ConnectTimeout = 0 },
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.modify(cfg)

			err := cfg.Validate()
			if !tc.expectErr {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.ErrorCodeEquals(err, errors.RedisConfigError.String()))
		})
	}
}

func TestClient_ConnectRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Addrs = nil

	err := NewClient(logger.NewNop(), cfg).Connect(context.Background())

	assert.True(t, errors.ErrorCodeEquals(err, errors.RedisConfigError.String()))
}

func TestClient_DisconnectWithoutConnect(t *testing.T) {
	assert.NoError(t, NewClient(logger.NewNop(), DefaultConfig()).Disconnect(context.Background()))
}
