package matchpublisher

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	matchpublisherv1 "github.com/muhammadchandra19/matchbook/internal/domain/match-publisher/v1"
	orderbookv1 "github.com/muhammadchandra19/matchbook/internal/domain/orderbook/v1"
	"github.com/muhammadchandra19/matchbook/pkg/config"
	"github.com/muhammadchandra19/matchbook/pkg/logger"
	redis_mock "github.com/muhammadchandra19/matchbook/pkg/redis/mock"
	v9 "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRedisConfig() config.RedisConfig {
	return config.RedisConfig{
		TradeStream:    "trades",
		StreamMaxLen:   1000,
		Channel:        "order-updates",
		BestBidChannel: "best-bid-updates",
		BestAskChannel: "best-ask-updates",
	}
}

func TestRedisPublisher_PublishMatchEvent(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := redis_mock.NewMockClient(ctrl)
	p := NewRedisPublisher(client, testRedisConfig(), logger.NewNopLogger())
	event := testMatchEvent()

	gomock.InOrder(
		client.EXPECT().
			XAdd(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, args *v9.XAddArgs) (string, error) {
				assert.Equal(t, "trades", args.Stream)
				assert.Equal(t, int64(1000), args.MaxLen)
				assert.True(t, args.Approx)
				values, ok := args.Values.(map[string]any)
				require.True(t, ok)
				assert.Equal(t, event.EventID, values["eventID"])
				return "1-0", nil
			}).
			Times(1),
		client.EXPECT().
			Publish(gomock.Any(), "order-updates", gomock.Any()).
			Return(int64(1), nil).
			Times(1),
	)

	require.NoError(t, p.PublishMatchEvent(context.Background(), event))
}

func TestRedisPublisher_StreamFailureSkipsPublish(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := redis_mock.NewMockClient(ctrl)
	p := NewRedisPublisher(client, testRedisConfig(), logger.NewNopLogger())

	xaddErr := stderrors.New("xadd failed")
	client.EXPECT().XAdd(gomock.Any(), gomock.Any()).Return("", xaddErr).Times(1)
	client.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	err := p.PublishMatchEvent(context.Background(), testMatchEvent())
	assert.ErrorIs(t, err, xaddErr)
}

func TestRedisPublisher_PublishBestPrice(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := redis_mock.NewMockClient(ctrl)
	p := NewRedisPublisher(client, testRedisConfig(), logger.NewNopLogger())

	client.EXPECT().Publish(gomock.Any(), "best-bid-updates", gomock.Any()).Return(int64(0), nil).Times(1)
	client.EXPECT().Publish(gomock.Any(), "best-ask-updates", gomock.Any()).Return(int64(2), nil).Times(1)

	bid := orderbookv1.NewOrder(1, decimal.NewFromInt(100), 5, orderbookv1.SideBuy, 0)
	ask := orderbookv1.NewOrder(2, decimal.NewFromInt(101), 5, orderbookv1.SideSell, 0)

	require.NoError(t, p.PublishBestPrice(context.Background(), matchpublisherv1.CreateBestPrice("BTC-USD", bid, time.Now())))
	require.NoError(t, p.PublishBestPrice(context.Background(), matchpublisherv1.CreateBestPrice("BTC-USD", ask, time.Now())))
}

func TestRedisPublisher_Close(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := redis_mock.NewMockClient(ctrl)
	p := NewRedisPublisher(client, testRedisConfig(), logger.NewNopLogger())

	client.EXPECT().Disconnect(gomock.Any()).Return(nil).Times(1)
	assert.NoError(t, p.Close())
}
