package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/muhammadchandra19/matchbook/internal/app/engine"
	orderbookv1 "github.com/muhammadchandra19/matchbook/internal/domain/orderbook/v1"
	"github.com/muhammadchandra19/matchbook/pkg/httplib/healthcheck"
	"github.com/muhammadchandra19/matchbook/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

type fakeBook struct {
	bid, ask   *orderbookv1.Order
	bids, asks []orderbookv1.PriceLevel
	trades     []orderbookv1.Trade
	depthAsked int
	limitAsked int
	stats      engine.Stats
}

func (f *fakeBook) BestBid() (orderbookv1.Order, error) {
	if f.bid == nil {
		return orderbookv1.Order{}, orderbookv1.ErrOrderNotFound
	}
	return *f.bid, nil
}

func (f *fakeBook) BestAsk() (orderbookv1.Order, error) {
	if f.ask == nil {
		return orderbookv1.Order{}, orderbookv1.ErrOrderNotFound
	}
	return *f.ask, nil
}

func (f *fakeBook) Levels(depth int) (bids, asks []orderbookv1.PriceLevel) {
	f.depthAsked = depth
	return f.bids, f.asks
}

func (f *fakeBook) RecentTrades(n int) []orderbookv1.Trade {
	f.limitAsked = n
	return f.trades
}

func (f *fakeBook) Stats() engine.Stats {
	return f.stats
}

type testEnv struct {
	router   http.Handler
	book     *fakeBook
	registry *prometheus.Registry
}

func newTestEnv() *testEnv {
	book := &fakeBook{}
	reg := prometheus.NewRegistry()
	router := NewRouter(book, "BTC-USD", reg, healthcheck.HealthCheck{}, logger.NewNopLogger())
	return &testEnv{router: router, book: book, registry: reg}
}

func (env *testEnv) get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	env.router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	return rr
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&v))
	return v
}

func TestGetBestBidAndAsk(t *testing.T) {
	env := newTestEnv()

	rr := env.get(t, "/v1/book/best-bid")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	errResp := decodeBody[errorResponse](t, rr)
	assert.Equal(t, "order_not_found", errResp.Error)

	bid := orderbookv1.NewOrder(7, decimal.RequireFromString("100.25"), 3, orderbookv1.SideBuy, t0.Unix(),
		orderbookv1.WithCreationTime(t0), orderbookv1.WithTTL(time.Minute))
	env.book.bid = &bid

	rr = env.get(t, "/v1/book/best-bid")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	resp := decodeBody[orderResponse](t, rr)
	assert.Equal(t, "BTC-USD", resp.Pair)
	assert.Equal(t, int64(7), resp.OrderID)
	assert.Equal(t, "buy", resp.Side)
	assert.Equal(t, "limit", resp.Type)
	assert.True(t, decimal.RequireFromString("100.25").Equal(resp.Price))
	require.NotNil(t, resp.ExpiresAt)
	assert.True(t, t0.Add(time.Minute).Equal(*resp.ExpiresAt))

	ask := orderbookv1.NewOrder(8, decimal.NewFromInt(101), 1, orderbookv1.SideSell, t0.Unix(), orderbookv1.WithCreationTime(t0))
	env.book.ask = &ask

	rr = env.get(t, "/v1/book/best-ask")
	require.Equal(t, http.StatusOK, rr.Code)
	resp = decodeBody[orderResponse](t, rr)
	assert.Equal(t, int64(8), resp.OrderID)
	assert.Nil(t, resp.ExpiresAt)
}

func TestGetBook(t *testing.T) {
	env := newTestEnv()
	env.book.bids = []orderbookv1.PriceLevel{{Price: decimal.NewFromInt(100), Quantity: 5, Orders: 2}}
	env.book.asks = []orderbookv1.PriceLevel{{Price: decimal.NewFromInt(102), Quantity: 1, Orders: 1}}

	rr := env.get(t, "/v1/book")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, defaultDepth, env.book.depthAsked)

	resp := decodeBody[bookResponse](t, rr)
	require.Len(t, resp.Bids, 1)
	assert.Equal(t, int64(5), resp.Bids[0].Quantity)
	assert.Equal(t, 2, resp.Bids[0].Orders)
	require.Len(t, resp.Asks, 1)
	require.NotNil(t, resp.Spread)
	assert.True(t, decimal.NewFromInt(2).Equal(*resp.Spread))

	rr = env.get(t, "/v1/book?depth=5000")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, maxDepth, env.book.depthAsked)
}

func TestGetBook_EmptySides(t *testing.T) {
	env := newTestEnv()

	rr := env.get(t, "/v1/book?depth=3")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 3, env.book.depthAsked)

	resp := decodeBody[bookResponse](t, rr)
	assert.NotNil(t, resp.Bids)
	assert.Empty(t, resp.Bids)
	assert.Nil(t, resp.Spread)
}

func TestQueryValidation(t *testing.T) {
	env := newTestEnv()

	for _, path := range []string{"/v1/book?depth=0", "/v1/book?depth=abc", "/v1/trades?limit=-1"} {
		rr := env.get(t, path)
		assert.Equal(t, http.StatusBadRequest, rr.Code, path)
		assert.Equal(t, "general_bad_request_error", decodeBody[errorResponse](t, rr).Error, path)
	}
}

func TestGetTrades(t *testing.T) {
	env := newTestEnv()
	env.book.trades = []orderbookv1.Trade{
		{BuyOrderID: 1, SellOrderID: 2, Price: decimal.NewFromInt(100), Quantity: 3, Timestamp: t0},
	}

	rr := env.get(t, "/v1/trades?limit=20")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 20, env.book.limitAsked)

	resp := decodeBody[tradesResponse](t, rr)
	assert.Equal(t, "BTC-USD", resp.Pair)
	require.Len(t, resp.Trades, 1)
	assert.Equal(t, int64(1), resp.Trades[0].BuyOrderID)
	assert.Equal(t, int64(2), resp.Trades[0].SellOrderID)
	assert.True(t, t0.Equal(resp.Trades[0].Timestamp))
}

func TestGetStats(t *testing.T) {
	env := newTestEnv()
	env.book.stats = engine.Stats{Pair: "BTC-USD", Processed: 4, Trades: 2, Bids: 1}

	rr := env.get(t, "/v1/stats")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, env.book.stats, decodeBody[engine.Stats](t, rr))
}

func TestHealthzAndMetrics(t *testing.T) {
	env := newTestEnv()
	promauto.With(env.registry).NewCounter(prometheus.CounterOpts{Name: "matchbook_test_total", Help: "test"}).Inc()

	rr := env.get(t, "/healthz")
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = env.get(t, "/metrics")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "matchbook_test_total 1")
}

func TestRequestID(t *testing.T) {
	env := newTestEnv()

	req := httptest.NewRequest(http.MethodGet, "/v1/stats", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	rr := httptest.NewRecorder()
	env.router.ServeHTTP(rr, req)
	assert.Equal(t, "abc-123", rr.Header().Get(requestIDHeader))

	rr = env.get(t, "/v1/stats")
	assert.NotEmpty(t, rr.Header().Get(requestIDHeader))
}
