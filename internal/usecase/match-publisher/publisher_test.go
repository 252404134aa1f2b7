package matchpublisher

import (
	"context"
	stderrors "errors"
	"sync"
	"testing"
	"time"

	matchpublisherv1 "github.com/muhammadchandra19/matchbook/internal/domain/match-publisher/v1"
	orderbookv1 "github.com/muhammadchandra19/matchbook/internal/domain/orderbook/v1"
	"github.com/muhammadchandra19/matchbook/pkg/config"
	"github.com/muhammadchandra19/matchbook/pkg/logger"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	mu       sync.Mutex
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func testKafkaConfig() config.MatchKafkaConfig {
	return config.MatchKafkaConfig{
		Brokers:      []string{"localhost:9092"},
		TradesTopic:  "order-updates",
		BestBidTopic: "best-bid-updates",
		BestAskTopic: "best-ask-updates",
		BatchTimeout: 10 * time.Millisecond,
	}
}

func testMatchEvent() *matchpublisherv1.MatchEvent {
	return matchpublisherv1.CreateFromTrade("BTC-USD", orderbookv1.Trade{
		BuyOrderID:  11,
		SellOrderID: 12,
		Price:       decimal.NewFromInt(100),
		Quantity:    3,
		Timestamp:   time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	})
}

func TestPublisher_PublishMatchEvent(t *testing.T) {
	w := &fakeWriter{}
	p := newPublisher(w, testKafkaConfig(), logger.NewNopLogger())
	event := testMatchEvent()

	require.NoError(t, p.PublishMatchEvent(context.Background(), event))

	require.Len(t, w.messages, 1)
	msg := w.messages[0]
	assert.Equal(t, "order-updates", msg.Topic)
	assert.Equal(t, "11", string(msg.Key))
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, event.EventID, string(msg.Headers[0].Value))

	decoded, err := matchpublisherv1.FromBytes(msg.Value)
	require.NoError(t, err)
	assert.Equal(t, event.EventID, decoded.EventID)
	assert.Equal(t, int64(12), decoded.SellOrderID)
}

func TestPublisher_PublishBestPrice(t *testing.T) {
	testCases := []struct {
		name      string
		side      orderbookv1.Side
		wantTopic string
	}{
		{name: "bid", side: orderbookv1.SideBuy, wantTopic: "best-bid-updates"},
		{name: "ask", side: orderbookv1.SideSell, wantTopic: "best-ask-updates"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := &fakeWriter{}
			p := newPublisher(w, testKafkaConfig(), logger.NewNopLogger())

			order := orderbookv1.NewOrder(1, decimal.NewFromInt(100), 5, tc.side, 0)
			require.NoError(t, p.PublishBestPrice(context.Background(), matchpublisherv1.CreateBestPrice("BTC-USD", order, time.Now())))

			require.Len(t, w.messages, 1)
			assert.Equal(t, tc.wantTopic, w.messages[0].Topic)
			assert.Equal(t, "BTC-USD", string(w.messages[0].Key))
		})
	}
}

func TestPublisher_WriteFailure(t *testing.T) {
	brokerErr := stderrors.New("broker unreachable")
	w := &fakeWriter{err: brokerErr}
	p := newPublisher(w, testKafkaConfig(), logger.NewNopLogger())

	err := p.PublishMatchEvent(context.Background(), testMatchEvent())
	require.Error(t, err)
	assert.ErrorIs(t, err, brokerErr)
	assert.Contains(t, err.Error(), "failed to publish match event")

	order := orderbookv1.NewOrder(1, decimal.NewFromInt(100), 5, orderbookv1.SideBuy, 0)
	err = p.PublishBestPrice(context.Background(), matchpublisherv1.CreateBestPrice("BTC-USD", order, time.Now()))
	assert.ErrorIs(t, err, brokerErr)
}

func TestPublisher_Close(t *testing.T) {
	w := &fakeWriter{}
	p := newPublisher(w, testKafkaConfig(), logger.NewNopLogger())

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestNewPublisher_ConfiguresWriter(t *testing.T) {
	p := NewPublisher(testKafkaConfig(), logger.NewNopLogger())

	w, ok := p.kafkaWriter.(*kafka.Writer)
	require.True(t, ok)
	assert.Equal(t, "", w.Topic)
	assert.Equal(t, kafka.RequireAll, w.RequiredAcks)
	assert.Equal(t, 10*time.Millisecond, w.BatchTimeout)
}

func TestLogPublisher(t *testing.T) {
	p := NewLogPublisher(logger.NewNopLogger())
	order := orderbookv1.NewOrder(1, decimal.NewFromInt(100), 5, orderbookv1.SideBuy, 0)

	assert.NoError(t, p.PublishMatchEvent(context.Background(), testMatchEvent()))
	assert.NoError(t, p.PublishBestPrice(context.Background(), matchpublisherv1.CreateBestPrice("BTC-USD", order, time.Now())))
	assert.NoError(t, p.Close())
}
