package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	orderreaderv1 "github.com/muhammadchandra19/matchbook/internal/domain/order-reader/v1"
	orderbookv1 "github.com/muhammadchandra19/matchbook/internal/domain/orderbook/v1"
	"github.com/muhammadchandra19/matchbook/internal/metrics"
	"github.com/muhammadchandra19/matchbook/pkg/config"
	"github.com/muhammadchandra19/matchbook/pkg/errors"
	"github.com/muhammadchandra19/matchbook/pkg/logger"
	"github.com/muhammadchandra19/matchbook/pkg/util"
	"github.com/segmentio/kafka-go"
)

// Stats is a point-in-time summary of the engine.
type Stats struct {
	Pair        string `json:"pair"`
	OrderOffset int64  `json:"orderOffset"`
	Processed   int64  `json:"processed"`
	Rejected    int64  `json:"rejected"`
	Trades      int64  `json:"trades"`
	Bids        int    `json:"bids"`
	Asks        int    `json:"asks"`
}

// topOfBook is the last best order published for one side.
type topOfBook struct {
	order orderbookv1.Order
	found bool
}

func (t topOfBook) differs(order orderbookv1.Order, found bool) bool {
	if t.found != found {
		return true
	}
	if !found {
		return false
	}
	return t.order.ID != order.ID ||
		!t.order.Price.Equal(order.Price) ||
		t.order.Quantity != order.Quantity
}

// Engine owns the order book and applies feed commands to it from a single goroutine.
// Every book access, including queries, goes through mu.
type Engine struct {
	// Core components
	orderbook   orderbookv1.Orderbook
	orderReader orderreaderv1.OrderReader
	bestPrice   orderbookv1.BestPriceSink
	logger      *logger.Logger
	config      *config.Config
	metrics     *metrics.Metrics
	clock       util.Clock

	mu          sync.RWMutex
	orderOffset int64
	processed   int64
	rejected    int64
	totalTrades int64
	lastBid     topOfBook
	lastAsk     topOfBook

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	// Configuration
	readBackoff      time.Duration
	statsInterval    time.Duration
	publishBestPrice bool
}

// NewEngine creates a new instance of Engine with the provided dependencies.
// orderReader may be nil, in which case Start only runs the stats reporter.
func NewEngine(
	orderbook orderbookv1.Orderbook,
	orderReader orderreaderv1.OrderReader,
	bestPrice orderbookv1.BestPriceSink,
	logger *logger.Logger,
	config *config.Config,
	m *metrics.Metrics,
) *Engine {
	return NewEngineWithOptions(orderbook, orderReader, bestPrice, logger, config, m, DefaultEngineOptions())
}

// NewEngineWithOptions creates a new engine with custom options
func NewEngineWithOptions(
	orderbook orderbookv1.Orderbook,
	orderReader orderreaderv1.OrderReader,
	bestPrice orderbookv1.BestPriceSink,
	logger *logger.Logger,
	config *config.Config,
	m *metrics.Metrics,
	options *Options,
) *Engine {
	if options == nil {
		options = DefaultEngineOptions()
	}
	clock := options.Clock
	if clock == nil {
		clock = util.RealClock{}
	}
	if m == nil {
		m = metrics.NewNop()
	}

	return &Engine{
		orderbook:   orderbook,
		orderReader: orderReader,
		bestPrice:   bestPrice,
		logger:      logger,
		config:      config,
		metrics:     m,
		clock:       clock,

		orderOffset:      -1,
		readBackoff:      options.ReadBackoff,
		statsInterval:    options.StatsInterval,
		publishBestPrice: options.PublishBestPrice && bestPrice != nil,
	}
}

// Start initializes the engine and starts processing routines.
func (e *Engine) Start(ctx context.Context) error {
	e.ctx, e.cancel = context.WithCancel(ctx)

	if e.orderReader != nil {
		e.wg.Add(1)
		go e.runOrderProcessor()
	} else {
		e.logger.Warn("No order reader configured, the book only serves queries")
	}

	if e.statsInterval > 0 {
		e.wg.Add(1)
		go e.runStatsReporter()
	}

	e.logger.Info("Engine started", logger.Field{
		Key:   "pair",
		Value: e.config.App.Pair,
	})

	return nil
}

// Stop gracefully shuts down the engine
func (e *Engine) Stop(ctx context.Context) error {
	if e.cancel != nil {
		e.cancel()
	}

	done := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		e.logger.Info("Engine stopped gracefully")
		return nil
	case <-ctx.Done():
		e.logger.Warn("Engine stop timeout exceeded")
		return ctx.Err()
	}
}

// runOrderProcessor combines order reading and processing in a single goroutine
func (e *Engine) runOrderProcessor() {
	defer e.wg.Done()

	e.logger.Info("Starting order processor", logger.Field{
		Key:   "pair",
		Value: e.config.App.Pair,
	})

	if err := e.orderReader.SetOffset(e.getOrderOffset()); err != nil {
		e.logger.Error(err, logger.Field{Key: "action", Value: "set_order_offset"})
	}

	for {
		select {
		case <-e.ctx.Done():
			e.logger.Info("Order processor shutting down")
			if err := e.orderReader.Close(); err != nil {
				e.logger.Error(err, logger.Field{Key: "action", Value: "close_order_reader"})
			}
			return
		default:
		}

		msg, orderRequest, err := e.orderReader.ReadMessage(e.ctx)
		if err != nil {
			if e.ctx.Err() != nil {
				continue
			}
			if errors.ErrorCodeEquals(err, string(errors.FeedDecodeError)) {
				// Skip the poison message so it is not read again.
				e.metrics.FeedErrors.WithLabelValues("decode").Inc()
				e.logger.ErrorContext(e.ctx, err, logger.Field{Key: "action", Value: "decode_order_message"})
				e.commit(msg)
				e.setOrderOffset(msg.Offset)
				continue
			}

			e.metrics.FeedErrors.WithLabelValues("read").Inc()
			e.logger.ErrorContext(e.ctx, err, logger.Field{Key: "action", Value: "read_order_message"})
			e.backoff()
			continue
		}

		e.commit(msg)

		ctx := util.WithFeedOffset(util.WithPair(util.WithRequestID(e.ctx, ""), e.config.App.Pair), msg.Offset)
		if err := e.processOrder(ctx, orderRequest); err != nil {
			e.logger.WarnContext(ctx, "Order request rejected",
				logger.Field{Key: "action", Value: orderRequest.Action},
				logger.Field{Key: "orderID", Value: orderRequest.OrderID},
				logger.Field{Key: "error", Value: err.Error()},
			)
		}

		e.setOrderOffset(msg.Offset)
	}
}

func (e *Engine) commit(msg kafka.Message) {
	if err := e.orderReader.CommitMessages(e.ctx, msg); err != nil {
		e.metrics.FeedErrors.WithLabelValues("commit").Inc()
		e.logger.ErrorContext(e.ctx, err, logger.Field{Key: "action", Value: "commit_order_message"})
	}
}

func (e *Engine) backoff() {
	if e.readBackoff <= 0 {
		return
	}
	timer := time.NewTimer(e.readBackoff)
	defer timer.Stop()

	select {
	case <-e.ctx.Done():
	case <-timer.C:
	}
}

// runStatsReporter refreshes the book gauges periodically.
func (e *Engine) runStatsReporter() {
	defer e.wg.Done()

	ticker := time.NewTicker(e.statsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-e.ctx.Done():
			e.logger.Info("Stats reporter shutting down")
			return
		case <-ticker.C:
			stats := e.Stats()
			e.logger.Debug("Engine stats",
				logger.Field{Key: "orderOffset", Value: stats.OrderOffset},
				logger.Field{Key: "processed", Value: stats.Processed},
				logger.Field{Key: "trades", Value: stats.Trades},
				logger.Field{Key: "bids", Value: stats.Bids},
				logger.Field{Key: "asks", Value: stats.Asks},
			)
		}
	}
}

// processOrder applies a single order request to the book.
func (e *Engine) processOrder(ctx context.Context, orderRequest orderreaderv1.OrderRequest) error {
	e.logger.DebugContext(ctx, "Processing order",
		logger.Field{Key: "action", Value: orderRequest.Action},
		logger.Field{Key: "orderID", Value: orderRequest.OrderID},
	)

	e.mu.Lock()
	defer e.mu.Unlock()

	var (
		trades []orderbookv1.Trade
		err    error
	)

	switch orderRequest.Action {
	case orderreaderv1.ActionAdd:
		var order orderbookv1.Order
		order, err = orderRequest.ToOrder()
		if err == nil {
			trades, err = e.orderbook.AddOrder(order)
		}
	case orderreaderv1.ActionCancel:
		if !e.orderbook.RemoveOrder(orderRequest.OrderID) {
			err = fmt.Errorf("%w: %d", orderbookv1.ErrOrderNotFound, orderRequest.OrderID)
		}
	case orderreaderv1.ActionUpdate:
		trades, err = e.orderbook.UpdateOrder(orderRequest.OrderID, orderRequest.ToUpdate())
	default:
		err = errors.NewTracer("unsupported order action").Wrap(
			errors.NewErrorDetails(string(orderRequest.Action), string(errors.UnknownActionError), "action"))
	}

	e.processed++
	outcome := outcomeOf(err)
	if outcome != metrics.OutcomeOK {
		e.rejected++
	}
	e.metrics.OrdersProcessed.WithLabelValues(string(orderRequest.Action), outcome).Inc()

	if len(trades) > 0 {
		e.logMatches(ctx, trades)
	}
	e.publishTopOfBook()

	return err
}

// logMatches logs the trades and updates statistics
func (e *Engine) logMatches(ctx context.Context, trades []orderbookv1.Trade) {
	e.totalTrades += int64(len(trades))
	e.metrics.Trades.Add(float64(len(trades)))

	for i, trade := range trades {
		e.metrics.TradedQuantity.Add(float64(trade.Quantity))
		e.logger.InfoContext(ctx, "Trade executed",
			logger.Field{Key: "tradeIndex", Value: i + 1},
			logger.Field{Key: "price", Value: trade.Price.String()},
			logger.Field{Key: "quantity", Value: trade.Quantity},
			logger.Field{Key: "buyOrderID", Value: trade.BuyOrderID},
			logger.Field{Key: "sellOrderID", Value: trade.SellOrderID},
		)
	}
}

// publishTopOfBook hands off the best bid and ask when they changed since the
// last command. An emptied side is remembered but not published. Callers hold mu.
func (e *Engine) publishTopOfBook() {
	if !e.publishBestPrice {
		return
	}
	now := e.clock.Now()

	bid, err := e.orderbook.BestBid()
	if e.lastBid.differs(bid, err == nil) {
		e.lastBid = topOfBook{order: bid, found: err == nil}
		if err == nil {
			e.bestPrice.HandOffBestPrice(bid, now)
		}
	}

	ask, err := e.orderbook.BestAsk()
	if e.lastAsk.differs(ask, err == nil) {
		e.lastAsk = topOfBook{order: ask, found: err == nil}
		if err == nil {
			e.bestPrice.HandOffBestPrice(ask, now)
		}
	}
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, orderbookv1.ErrOrderNotFound):
		return metrics.OutcomeNotFound
	case errors.Is(err, orderbookv1.ErrOrderExpired):
		return metrics.OutcomeExpired
	case errors.Is(err, orderbookv1.ErrInvalidOrder):
		return metrics.OutcomeInvalid
	case errors.ErrorCodeEquals(err, string(errors.UnknownActionError)):
		return metrics.OutcomeRejected
	default:
		return metrics.OutcomeError
	}
}

// BestBid returns the highest-priority live bid.
func (e *Engine) BestBid() (orderbookv1.Order, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.orderbook.BestBid()
}

// BestAsk returns the highest-priority live ask.
func (e *Engine) BestAsk() (orderbookv1.Order, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.orderbook.BestAsk()
}

// Levels returns up to depth aggregated price levels of each side.
func (e *Engine) Levels(depth int) (bids, asks []orderbookv1.PriceLevel) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.orderbook.Levels(orderbookv1.SideBuy, depth), e.orderbook.Levels(orderbookv1.SideSell, depth)
}

// RecentTrades returns up to n of the latest trades, oldest first.
func (e *Engine) RecentTrades(n int) []orderbookv1.Trade {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.orderbook.RecentTrades(n)
}

// Stats returns the current counters and refreshes the book gauges.
func (e *Engine) Stats() Stats {
	e.mu.RLock()
	bids, asks := e.orderbook.Len()
	stats := Stats{
		Pair:        e.config.App.Pair,
		OrderOffset: e.orderOffset,
		Processed:   e.processed,
		Rejected:    e.rejected,
		Trades:      e.totalTrades,
		Bids:        bids,
		Asks:        asks,
	}
	e.mu.RUnlock()

	e.metrics.BookOrders.WithLabelValues(string(orderbookv1.SideBuy)).Set(float64(bids))
	e.metrics.BookOrders.WithLabelValues(string(orderbookv1.SideSell)).Set(float64(asks))
	return stats
}

// GetOrderOffset returns the offset of the last processed feed message.
func (e *Engine) GetOrderOffset() int64 {
	return e.getOrderOffset()
}

func (e *Engine) getOrderOffset() int64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.orderOffset
}

func (e *Engine) setOrderOffset(offset int64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.orderOffset = offset
}
