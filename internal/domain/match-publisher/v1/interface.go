package matchpublisherv1

import (
	"context"
)

// MatchPublisher defines the interface for publishing match and best price events.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=matchpublisherv1_mock
type MatchPublisher interface {
	// PublishMatchEvent publishes a match event to the trades destination.
	PublishMatchEvent(ctx context.Context, matchEvent *MatchEvent) error
	// PublishBestPrice publishes a best bid or ask update.
	PublishBestPrice(ctx context.Context, bestPrice *BestPriceEvent) error
	// Close flushes and releases the transport.
	Close() error
}
