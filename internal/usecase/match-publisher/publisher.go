package matchpublisher

import (
	"context"
	"strconv"

	matchpublisherv1 "github.com/muhammadchandra19/matchbook/internal/domain/match-publisher/v1"
	orderbookv1 "github.com/muhammadchandra19/matchbook/internal/domain/orderbook/v1"
	"github.com/muhammadchandra19/matchbook/pkg/config"
	"github.com/muhammadchandra19/matchbook/pkg/errors"
	"github.com/muhammadchandra19/matchbook/pkg/logger"
	"github.com/segmentio/kafka-go"
)

// messageWriter is the part of *kafka.Writer the publisher uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher represents a Kafka Publisher for publishing match events.
type Publisher struct {
	kafkaWriter messageWriter
	config      config.MatchKafkaConfig
	logger      *logger.Logger
}

var _ matchpublisherv1.MatchPublisher = (*Publisher)(nil)

// NewPublisher creates a new Kafka publisher for match and best price events.
// Topics are set per message.
func NewPublisher(cfg config.MatchKafkaConfig, log *logger.Logger) *Publisher {
	kafkaWriter := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		BatchTimeout:           cfg.BatchTimeout,
		AllowAutoTopicCreation: true,
	}

	return newPublisher(kafkaWriter, cfg, log)
}

func newPublisher(w messageWriter, cfg config.MatchKafkaConfig, log *logger.Logger) *Publisher {
	return &Publisher{
		kafkaWriter: w,
		config:      cfg,
		logger:      log,
	}
}

// PublishMatchEvent publishes a match event to the trades topic, keyed by buy order id.
func (p *Publisher) PublishMatchEvent(ctx context.Context, matchEvent *matchpublisherv1.MatchEvent) error {
	value, err := matchpublisherv1.ToBytes(matchEvent)
	if err != nil {
		return errors.NewTracer("failed to encode match event").Wrap(
			errors.NewErrorDetails(err.Error(), string(errors.PublishEncodeError), "matchEvent"))
	}

	msg := kafka.Message{
		Topic: p.config.TradesTopic,
		Key:   []byte(strconv.FormatInt(matchEvent.BuyOrderID, 10)),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event-id", Value: []byte(matchEvent.EventID)},
		},
	}

	if err := p.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		p.logger.Error(err,
			logger.Field{Key: "topic", Value: msg.Topic},
			logger.Field{Key: "matchEvent", Value: matchEvent},
		)
		return errors.NewTracer("failed to publish match event").Wrap(err)
	}
	return nil
}

// PublishBestPrice publishes to the best bid or best ask topic, keyed by pair.
func (p *Publisher) PublishBestPrice(ctx context.Context, bestPrice *matchpublisherv1.BestPriceEvent) error {
	value, err := matchpublisherv1.BestPriceToBytes(bestPrice)
	if err != nil {
		return errors.NewTracer("failed to encode best price event").Wrap(
			errors.NewErrorDetails(err.Error(), string(errors.PublishEncodeError), "bestPrice"))
	}

	topic := p.config.BestAskTopic
	if bestPrice.Side == orderbookv1.SideBuy {
		topic = p.config.BestBidTopic
	}

	msg := kafka.Message{
		Topic: topic,
		Key:   []byte(bestPrice.Pair),
		Value: value,
	}

	if err := p.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		p.logger.Error(err,
			logger.Field{Key: "topic", Value: topic},
			logger.Field{Key: "bestPrice", Value: bestPrice},
		)
		return errors.NewTracer("failed to publish best price event").Wrap(err)
	}
	return nil
}

// Close flushes pending messages and closes the writer.
func (p *Publisher) Close() error {
	if err := p.kafkaWriter.Close(); err != nil {
		return errors.NewTracer("failed to close kafka writer").Wrap(err)
	}
	return nil
}
