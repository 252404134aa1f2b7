package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/muhammadchandra19/matchbook/pkg/redis"
)

// MustLoad loads the configuration from environment variables and .env file.
func MustLoad[T any](cfg T) {
	_ = godotenv.Load() // a missing .env file is fine

	env.Must(cfg, env.Parse(cfg))
}

// Load loads the configuration from environment variables and an optional .env file.
func Load[T any](cfg T) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env file: %w", err)
	}

	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	return nil
}

// Sink kinds accepted by EngineConfig.Sink.
const (
	SinkKafka = "kafka"
	SinkRedis = "redis"
	SinkLog   = "log"
)

// Config holds the configuration for the matching service.
type Config struct {
	App        AppConfig        `envPrefix:"APP_"`
	OrderKafka OrderKafkaConfig `envPrefix:"ORDER_KAFKA_"`
	MatchKafka MatchKafkaConfig `envPrefix:"MATCH_KAFKA_"`
	Redis      RedisConfig      `envPrefix:"REDIS_"`
	Engine     EngineConfig     `envPrefix:"ENGINE_"`
}

// AppConfig represents the process-level configuration.
type AppConfig struct {
	Name        string `env:"NAME" envDefault:"matching-service"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Pair        string `env:"PAIR" envDefault:"BTC-USD"` // label only, one book per process
	HTTPPort    int    `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
}

// OrderKafkaConfig holds the configuration for the order-intake consumer.
type OrderKafkaConfig struct {
	Enabled  bool     `env:"ENABLED" envDefault:"true"`
	Brokers  []string `env:"BROKERS" envSeparator:"," envDefault:"localhost:9092"`
	Topic    string   `env:"TOPIC" envDefault:"order-requests"`
	GroupID  string   `env:"GROUP_ID" envDefault:"orderbook-engine"`
	MaxBytes int      `env:"MAX_BYTES" envDefault:"10000000"`
}

// MatchKafkaConfig holds the configuration for the trade and best-price producer.
type MatchKafkaConfig struct {
	Brokers      []string      `env:"BROKERS" envSeparator:"," envDefault:"localhost:9092"`
	TradesTopic  string        `env:"TRADES_TOPIC" envDefault:"order-updates"`
	BestBidTopic string        `env:"BEST_BID_TOPIC" envDefault:"best-bid-updates"`
	BestAskTopic string        `env:"BEST_ASK_TOPIC" envDefault:"best-ask-updates"`
	BatchTimeout time.Duration `env:"BATCH_TIMEOUT" envDefault:"10ms"`
}

// RedisConfig holds the connection settings and keys of the Redis trade sink.
type RedisConfig struct {
	redis.Config
	TradeStream    string `env:"TRADE_STREAM" envDefault:"trades"`
	StreamMaxLen   int64  `env:"STREAM_MAX_LEN" envDefault:"100000"`
	Channel        string `env:"CHANNEL" envDefault:"order-updates"`
	BestBidChannel string `env:"BEST_BID_CHANNEL" envDefault:"best-bid-updates"`
	BestAskChannel string `env:"BEST_ASK_CHANNEL" envDefault:"best-ask-updates"`
}

// EngineConfig holds tuning for the dispatch loop and the trade hand-off.
type EngineConfig struct {
	Sink             string        `env:"SINK" envDefault:"kafka"`
	PublishBuffer    int           `env:"PUBLISH_BUFFER" envDefault:"1024"`
	PublishTimeout   time.Duration `env:"PUBLISH_TIMEOUT" envDefault:"5s"`
	PublishBestPrice bool          `env:"PUBLISH_BEST_PRICE" envDefault:"true"`
	ReadBackoff      time.Duration `env:"READ_BACKOFF" envDefault:"100ms"`
	StatsInterval    time.Duration `env:"STATS_INTERVAL" envDefault:"5s"`
	ShutdownTimeout  time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
}

// Validate checks values env tags cannot express.
func (c *Config) Validate() error {
	switch c.Engine.Sink {
	case SinkKafka, SinkRedis, SinkLog:
	default:
		return fmt.Errorf("invalid ENGINE_SINK %q, must be one of: kafka, redis, log", c.Engine.Sink)
	}
	if c.Engine.PublishBuffer <= 0 {
		return fmt.Errorf("invalid ENGINE_PUBLISH_BUFFER %d, must be positive", c.Engine.PublishBuffer)
	}
	if c.App.HTTPPort <= 0 || c.App.HTTPPort > 65535 {
		return fmt.Errorf("invalid APP_HTTP_PORT %d", c.App.HTTPPort)
	}
	return nil
}
