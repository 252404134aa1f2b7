package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirTemp runs the test from an empty directory so no stray .env is picked up.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	chdirTemp(t)

	cfg := &Config{}
	require.NoError(t, Load(cfg))
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "matching-service", cfg.App.Name)
	assert.Equal(t, "BTC-USD", cfg.App.Pair)
	assert.Equal(t, 8080, cfg.App.HTTPPort)
	assert.Equal(t, []string{"localhost:9092"}, cfg.OrderKafka.Brokers)
	assert.Equal(t, "order-requests", cfg.OrderKafka.Topic)
	assert.Equal(t, "order-updates", cfg.MatchKafka.TradesTopic)
	assert.Equal(t, "best-bid-updates", cfg.MatchKafka.BestBidTopic)
	assert.Equal(t, "best-ask-updates", cfg.MatchKafka.BestAskTopic)
	assert.Equal(t, SinkKafka, cfg.Engine.Sink)
	assert.Equal(t, 1024, cfg.Engine.PublishBuffer)
	assert.Equal(t, 5*time.Second, cfg.Engine.PublishTimeout)
	assert.True(t, cfg.Engine.PublishBestPrice)
	assert.Equal(t, 5*time.Second, cfg.Engine.StatsInterval)
}

func TestLoad_FromEnvironment(t *testing.T) {
	chdirTemp(t)
	t.Setenv("APP_PAIR", "ETH-USD")
	t.Setenv("ORDER_KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("ENGINE_SINK", "redis")
	t.Setenv("ENGINE_PUBLISH_TIMEOUT", "250ms")
	t.Setenv("REDIS_DB", "3")

	cfg := &Config{}
	require.NoError(t, Load(cfg))

	assert.Equal(t, "ETH-USD", cfg.App.Pair)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.OrderKafka.Brokers)
	assert.Equal(t, SinkRedis, cfg.Engine.Sink)
	assert.Equal(t, 250*time.Millisecond, cfg.Engine.PublishTimeout)
	assert.Equal(t, 3, cfg.Redis.DB)
}

func TestLoad_DotEnvFile(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("APP_PAIR=SOL-USD\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("APP_PAIR") })

	cfg := &Config{}
	require.NoError(t, Load(cfg))
	assert.Equal(t, "SOL-USD", cfg.App.Pair)
}

func TestLoad_InvalidValue(t *testing.T) {
	chdirTemp(t)
	t.Setenv("APP_HTTP_PORT", "not-a-number")

	cfg := &Config{}
	assert.Error(t, Load(cfg))
}

func TestConfig_Validate(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "unknown sink", mutate: func(c *Config) { c.Engine.Sink = "nats" }, wantErr: true},
		{name: "zero buffer", mutate: func(c *Config) { c.Engine.PublishBuffer = 0 }, wantErr: true},
		{name: "bad port", mutate: func(c *Config) { c.App.HTTPPort = 70000 }, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &Config{
				App:    AppConfig{HTTPPort: 8080},
				Engine: EngineConfig{Sink: SinkLog, PublishBuffer: 8},
			}
			tc.mutate(cfg)

			err := cfg.Validate()
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
