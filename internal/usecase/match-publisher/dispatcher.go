package matchpublisher

import (
	"context"
	"fmt"
	"sync"
	"time"

	matchpublisherv1 "github.com/muhammadchandra19/matchbook/internal/domain/match-publisher/v1"
	orderbookv1 "github.com/muhammadchandra19/matchbook/internal/domain/orderbook/v1"
	"github.com/muhammadchandra19/matchbook/internal/metrics"
	"github.com/muhammadchandra19/matchbook/pkg/errors"
	"github.com/muhammadchandra19/matchbook/pkg/logger"
)

const (
	kindTrade     = "trade"
	kindBestPrice = "best_price"
)

// Options represents configuration options for the Dispatcher.
type Options struct {
	// Buffer is the capacity of the hand-off queue.
	Buffer int
	// Timeout bounds a single transport write.
	Timeout time.Duration
}

// DefaultOptions returns the default dispatcher options.
func DefaultOptions() Options {
	return Options{
		Buffer:  1024,
		Timeout: 5 * time.Second,
	}
}

type envelope struct {
	matchEvent *matchpublisherv1.MatchEvent
	bestPrice  *matchpublisherv1.BestPriceEvent
}

func (e envelope) kind() string {
	if e.matchEvent != nil {
		return kindTrade
	}
	return kindBestPrice
}

// Dispatcher hands events to a MatchPublisher from a background goroutine.
// Enqueueing never blocks; when the queue is full the event is dropped.
type Dispatcher struct {
	publisher matchpublisherv1.MatchPublisher
	pair      string
	timeout   time.Duration
	logger    *logger.Logger
	metrics   *metrics.Metrics

	mu     sync.RWMutex
	closed bool
	queue  chan envelope
	wg     sync.WaitGroup
	start  sync.Once
}

var (
	_ orderbookv1.TradeSink     = (*Dispatcher)(nil)
	_ orderbookv1.BestPriceSink = (*Dispatcher)(nil)
)

// NewDispatcher creates a dispatcher for one trading pair. Call Start before use.
func NewDispatcher(
	publisher matchpublisherv1.MatchPublisher,
	pair string,
	options Options,
	log *logger.Logger,
	m *metrics.Metrics,
) *Dispatcher {
	if options.Buffer <= 0 {
		options.Buffer = DefaultOptions().Buffer
	}
	if options.Timeout <= 0 {
		options.Timeout = DefaultOptions().Timeout
	}
	if m == nil {
		m = metrics.NewNop()
	}

	return &Dispatcher{
		publisher: publisher,
		pair:      pair,
		timeout:   options.Timeout,
		logger:    log,
		metrics:   m,
		queue:     make(chan envelope, options.Buffer),
	}
}

// Start launches the publishing goroutine.
func (d *Dispatcher) Start() {
	d.start.Do(func() {
		d.wg.Add(1)
		go d.run()
	})
}

// HandOff queues a match event for the trade.
func (d *Dispatcher) HandOff(trade orderbookv1.Trade) {
	d.enqueue(envelope{matchEvent: matchpublisherv1.CreateFromTrade(d.pair, trade)})
}

// HandOffBestPrice queues a best price update for the order at the top of its side.
func (d *Dispatcher) HandOffBestPrice(order orderbookv1.Order, at time.Time) {
	d.enqueue(envelope{bestPrice: matchpublisherv1.CreateBestPrice(d.pair, order, at)})
}

func (d *Dispatcher) enqueue(env envelope) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.drop(env, "dispatcher stopped")
		return
	}

	select {
	case d.queue <- env:
		d.metrics.QueueDepth.Inc()
	default:
		d.drop(env, "queue full")
	}
}

func (d *Dispatcher) drop(env envelope, reason string) {
	d.metrics.EventsDropped.WithLabelValues(env.kind()).Inc()

	err := errors.NewTracer(reason).Wrap(
		errors.NewErrorDetails(orderbookv1.ErrPublishFailure.Error(), string(errors.PublishQueueFullError), env.kind()))
	d.logger.Error(err,
		logger.Field{Key: "kind", Value: env.kind()},
		logger.Field{Key: "pair", Value: d.pair},
	)
}

func (d *Dispatcher) run() {
	defer d.wg.Done()

	for env := range d.queue {
		d.metrics.QueueDepth.Dec()
		d.publish(env)
	}
}

func (d *Dispatcher) publish(env envelope) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	var err error
	if env.matchEvent != nil {
		err = d.publisher.PublishMatchEvent(ctx, env.matchEvent)
	} else {
		err = d.publisher.PublishBestPrice(ctx, env.bestPrice)
	}

	if err != nil {
		d.metrics.PublishFailures.WithLabelValues(env.kind()).Inc()
		d.logger.Error(errors.TracerFromError(fmt.Errorf("%w: %w", orderbookv1.ErrPublishFailure, err)),
			logger.Field{Key: "kind", Value: env.kind()},
			logger.Field{Key: "pair", Value: d.pair},
		)
		return
	}
	d.metrics.EventsPublished.WithLabelValues(env.kind()).Inc()
}

// Stop rejects new events, drains the queue and closes the publisher.
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	// Queued events are still drained when Start was never called.
	d.start.Do(func() {
		d.wg.Add(1)
		go d.run()
	})

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		d.logger.Warn("Dispatcher stop timeout exceeded, pending events abandoned",
			logger.Field{Key: "pending", Value: len(d.queue)},
		)
		return ctx.Err()
	}

	if err := d.publisher.Close(); err != nil {
		return errors.NewTracer("failed to close publisher").Wrap(err)
	}
	return nil
}
