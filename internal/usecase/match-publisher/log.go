package matchpublisher

import (
	"context"

	matchpublisherv1 "github.com/muhammadchandra19/matchbook/internal/domain/match-publisher/v1"
	"github.com/muhammadchandra19/matchbook/pkg/logger"
)

// LogPublisher writes events to the log instead of a broker.
type LogPublisher struct {
	logger *logger.Logger
}

var _ matchpublisherv1.MatchPublisher = (*LogPublisher)(nil)

// NewLogPublisher creates a LogPublisher.
func NewLogPublisher(log *logger.Logger) *LogPublisher {
	return &LogPublisher{logger: log}
}

func (p *LogPublisher) PublishMatchEvent(ctx context.Context, matchEvent *matchpublisherv1.MatchEvent) error {
	p.logger.InfoContext(ctx, "Trade executed",
		logger.Field{Key: "eventID", Value: matchEvent.EventID},
		logger.Field{Key: "pair", Value: matchEvent.Pair},
		logger.Field{Key: "buyOrderID", Value: matchEvent.BuyOrderID},
		logger.Field{Key: "sellOrderID", Value: matchEvent.SellOrderID},
		logger.Field{Key: "price", Value: matchEvent.Price.String()},
		logger.Field{Key: "quantity", Value: matchEvent.Quantity},
	)
	return nil
}

func (p *LogPublisher) PublishBestPrice(ctx context.Context, bestPrice *matchpublisherv1.BestPriceEvent) error {
	p.logger.InfoContext(ctx, "Best price updated",
		logger.Field{Key: "pair", Value: bestPrice.Pair},
		logger.Field{Key: "side", Value: bestPrice.Side},
		logger.Field{Key: "orderID", Value: bestPrice.OrderID},
		logger.Field{Key: "price", Value: bestPrice.Price.String()},
		logger.Field{Key: "quantity", Value: bestPrice.Quantity},
	)
	return nil
}

func (p *LogPublisher) Close() error {
	return nil
}
