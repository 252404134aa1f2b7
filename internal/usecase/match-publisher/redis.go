package matchpublisher

import (
	"context"

	matchpublisherv1 "github.com/muhammadchandra19/matchbook/internal/domain/match-publisher/v1"
	orderbookv1 "github.com/muhammadchandra19/matchbook/internal/domain/orderbook/v1"
	"github.com/muhammadchandra19/matchbook/pkg/config"
	"github.com/muhammadchandra19/matchbook/pkg/errors"
	"github.com/muhammadchandra19/matchbook/pkg/logger"
	"github.com/muhammadchandra19/matchbook/pkg/redis"
	v9 "github.com/redis/go-redis/v9"
)

// RedisPublisher appends match events to a stream and fans them out on a channel.
type RedisPublisher struct {
	client redis.Client
	config config.RedisConfig
	logger *logger.Logger
}

var _ matchpublisherv1.MatchPublisher = (*RedisPublisher)(nil)

// NewRedisPublisher creates a publisher on an already connected client.
func NewRedisPublisher(client redis.Client, cfg config.RedisConfig, log *logger.Logger) *RedisPublisher {
	return &RedisPublisher{
		client: client,
		config: cfg,
		logger: log,
	}
}

// PublishMatchEvent adds the event to the trade stream, then publishes it on the channel.
func (p *RedisPublisher) PublishMatchEvent(ctx context.Context, matchEvent *matchpublisherv1.MatchEvent) error {
	value, err := matchpublisherv1.ToBytes(matchEvent)
	if err != nil {
		return errors.NewTracer("failed to encode match event").Wrap(
			errors.NewErrorDetails(err.Error(), string(errors.PublishEncodeError), "matchEvent"))
	}

	streamID, err := p.client.XAdd(ctx, &v9.XAddArgs{
		Stream: p.config.TradeStream,
		MaxLen: p.config.StreamMaxLen,
		Approx: true,
		Values: map[string]any{
			"eventID": matchEvent.EventID,
			"payload": string(value),
		},
	})
	if err != nil {
		return errors.NewTracer("failed to append match event to stream").Wrap(err)
	}

	if _, err := p.client.Publish(ctx, p.config.Channel, value); err != nil {
		return errors.NewTracer("failed to publish match event").Wrap(err)
	}

	p.logger.Debug("Match event published to redis",
		logger.Field{Key: "streamID", Value: streamID},
		logger.Field{Key: "eventID", Value: matchEvent.EventID},
	)
	return nil
}

// PublishBestPrice publishes on the best bid or best ask channel.
func (p *RedisPublisher) PublishBestPrice(ctx context.Context, bestPrice *matchpublisherv1.BestPriceEvent) error {
	value, err := matchpublisherv1.BestPriceToBytes(bestPrice)
	if err != nil {
		return errors.NewTracer("failed to encode best price event").Wrap(
			errors.NewErrorDetails(err.Error(), string(errors.PublishEncodeError), "bestPrice"))
	}

	channel := p.config.BestAskChannel
	if bestPrice.Side == orderbookv1.SideBuy {
		channel = p.config.BestBidChannel
	}

	if _, err := p.client.Publish(ctx, channel, value); err != nil {
		return errors.NewTracer("failed to publish best price event").Wrap(err)
	}
	return nil
}

// Close disconnects the client.
func (p *RedisPublisher) Close() error {
	return p.client.Disconnect(context.Background())
}
