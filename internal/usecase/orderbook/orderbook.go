package orderbook

import (
	"fmt"
	"time"

	orderbookv1 "github.com/muhammadchandra19/matchbook/internal/domain/orderbook/v1"
	"github.com/muhammadchandra19/matchbook/pkg/util"
)

// Orderbook is a single-instrument book matching by type, price and time
// priority. It is not safe for concurrent use; callers serialize access.
type Orderbook struct {
	bids   *priorityIndex
	asks   *priorityIndex
	lookup *lookup
	trades *tradeLog

	clock util.Clock
	sink  orderbookv1.TradeSink
	seq   uint64
}

var _ orderbookv1.Orderbook = (*Orderbook)(nil)

// Option configures an Orderbook.
type Option func(*Orderbook)

// WithClock sets the clock used for enqueue times, expiry checks and trade timestamps.
func WithClock(clock util.Clock) Option {
	return func(ob *Orderbook) {
		if clock != nil {
			ob.clock = clock
		}
	}
}

// WithTradeSink sets the collaborator every committed trade is handed to.
func WithTradeSink(sink orderbookv1.TradeSink) Option {
	return func(ob *Orderbook) {
		ob.sink = sink
	}
}

// NewOrderbook creates an empty order book.
func NewOrderbook(opts ...Option) *Orderbook {
	ob := &Orderbook{
		bids:   newPriorityIndex(orderbookv1.SideBuy),
		asks:   newPriorityIndex(orderbookv1.SideSell),
		lookup: newLookup(),
		trades: &tradeLog{},
		clock:  util.RealClock{},
	}
	for _, opt := range opts {
		opt(ob)
	}
	return ob
}

// AddOrderWithoutMatching rests the order directly without matching it.
// Market orders may be seeded this way and then outrank limit orders.
func (ob *Orderbook) AddOrderWithoutMatching(order orderbookv1.Order) error {
	now := ob.clock.Now()
	if err := ob.admit(&order, now); err != nil {
		return err
	}
	ob.place(order, now)
	return nil
}

// RemoveOrder cancels a resting order. It returns false when the id is not live.
func (ob *Orderbook) RemoveOrder(orderID int64) bool {
	rec, ok := ob.lookup.get(orderID)
	if !ok {
		return false
	}
	ob.lookup.erase(orderID)
	return !rec.order.IsExpired(ob.clock.Now())
}

// UpdateOrder cancels the order and resubmits it with the update applied.
// The resubmission goes through matching and may trade. The creation time,
// and with it the expiry, is kept.
func (ob *Orderbook) UpdateOrder(orderID int64, update orderbookv1.OrderUpdate) ([]orderbookv1.Trade, error) {
	rec, ok := ob.lookup.get(orderID)
	if !ok {
		return nil, fmt.Errorf("%w: %d", orderbookv1.ErrOrderNotFound, orderID)
	}
	if rec.order.IsExpired(ob.clock.Now()) {
		ob.lookup.erase(orderID)
		return nil, fmt.Errorf("%w: %d", orderbookv1.ErrOrderNotFound, orderID)
	}

	updated := update.Apply(rec.order)
	if err := updated.Validate(); err != nil {
		return nil, err
	}

	ob.lookup.erase(orderID)
	return ob.AddOrder(updated)
}

// BestBid returns the highest-priority live bid.
func (ob *Orderbook) BestBid() (orderbookv1.Order, error) {
	return ob.best(ob.bids)
}

// BestAsk returns the highest-priority live ask.
func (ob *Orderbook) BestAsk() (orderbookv1.Order, error) {
	return ob.best(ob.asks)
}

func (ob *Orderbook) best(idx *priorityIndex) (orderbookv1.Order, error) {
	var (
		best  orderbookv1.Order
		found bool
	)
	ob.walk(idx, func(o orderbookv1.Order) bool {
		best, found = o, true
		return false
	})
	if !found {
		return orderbookv1.Order{}, orderbookv1.ErrOrderNotFound
	}
	return best, nil
}

// Order returns the live order with the given id.
func (ob *Orderbook) Order(orderID int64) (orderbookv1.Order, error) {
	rec, ok := ob.lookup.get(orderID)
	if !ok || rec.order.IsExpired(ob.clock.Now()) {
		return orderbookv1.Order{}, fmt.Errorf("%w: %d", orderbookv1.ErrOrderNotFound, orderID)
	}
	return rec.order, nil
}

// Depth returns the live orders of one side in priority order.
func (ob *Orderbook) Depth(side orderbookv1.Side) []orderbookv1.Order {
	orders := []orderbookv1.Order{}
	ob.walk(ob.index(side), func(o orderbookv1.Order) bool {
		orders = append(orders, o)
		return true
	})
	return orders
}

// Levels aggregates up to n price levels of one side, best first.
func (ob *Orderbook) Levels(side orderbookv1.Side, n int) []orderbookv1.PriceLevel {
	levels := []orderbookv1.PriceLevel{}
	if n <= 0 {
		return levels
	}
	ob.walk(ob.index(side), func(o orderbookv1.Order) bool {
		if last := len(levels) - 1; last >= 0 && levels[last].Price.Equal(o.Price) {
			levels[last].Quantity += o.Quantity
			levels[last].Orders++
			return true
		}
		if len(levels) == n {
			return false
		}
		levels = append(levels, orderbookv1.PriceLevel{Price: o.Price, Quantity: o.Quantity, Orders: 1})
		return true
	})
	return levels
}

// TradeLog returns every trade produced so far.
func (ob *Orderbook) TradeLog() []orderbookv1.Trade {
	return ob.trades.all()
}

// RecentTrades returns up to n of the latest trades, oldest first.
func (ob *Orderbook) RecentTrades(n int) []orderbookv1.Trade {
	return ob.trades.last(n)
}

// Len returns the number of live orders on each side.
func (ob *Orderbook) Len() (bids, asks int) {
	now := ob.clock.Now()
	ob.lookup.each(func(rec record) {
		if rec.order.IsExpired(now) {
			return
		}
		if rec.order.IsBid() {
			bids++
		} else {
			asks++
		}
	})
	return bids, asks
}

// CleanExpiredOrders is a no-op. Expired orders are dropped when matching
// or a read reaches them.
func (ob *Orderbook) CleanExpiredOrders() {}

func (ob *Orderbook) index(side orderbookv1.Side) *priorityIndex {
	if side == orderbookv1.SideBuy {
		return ob.bids
	}
	return ob.asks
}

// walk visits live, unexpired orders of idx in priority order. It never
// mutates the index or the lookup.
func (ob *Orderbook) walk(idx *priorityIndex, fn func(o orderbookv1.Order) bool) {
	now := ob.clock.Now()
	idx.ascend(func(e entry) bool {
		rec, ok := ob.lookup.resolve(e)
		if !ok || rec.order.IsExpired(now) {
			return true
		}
		return fn(rec.order)
	})
}

// admit validates an incoming order and stamps a missing creation time.
func (ob *Orderbook) admit(order *orderbookv1.Order, now time.Time) error {
	if order.CreationTime.IsZero() {
		order.CreationTime = now
	}
	if err := order.Validate(); err != nil {
		return err
	}
	if rec, ok := ob.lookup.get(order.ID); ok {
		if !rec.order.IsExpired(now) {
			return fmt.Errorf("%w: order %d is already live", orderbookv1.ErrInvalidOrder, order.ID)
		}
		ob.lookup.erase(order.ID)
	}
	if order.IsExpired(now) {
		return fmt.Errorf("%w: %d", orderbookv1.ErrOrderExpired, order.ID)
	}
	return nil
}

// place rests the order with a fresh enqueue time and placement sequence.
func (ob *Orderbook) place(order orderbookv1.Order, now time.Time) {
	ob.seq++
	ob.lookup.put(record{order: order, seq: ob.seq})
	ob.index(order.Side).push(newEntry(order, now, ob.seq))
}
