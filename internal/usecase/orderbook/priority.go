package orderbook

import (
	"time"

	"github.com/google/btree"
	orderbookv1 "github.com/muhammadchandra19/matchbook/internal/domain/orderbook/v1"
	"github.com/shopspring/decimal"
)

const btreeDegree = 32

// entry is the immutable priority key of a resting order. Quantity and
// liveness always come from the lookup.
type entry struct {
	id         int64
	price      decimal.Decimal
	orderType  orderbookv1.OrderType
	enqueuedAt time.Time
	seq        uint64
}

func newEntry(order orderbookv1.Order, enqueuedAt time.Time, seq uint64) entry {
	return entry{
		id:         order.ID,
		price:      order.Price,
		orderType:  order.Type,
		enqueuedAt: enqueuedAt,
		seq:        seq,
	}
}

// bidLess orders the bid side: market before limit, then price descending,
// then enqueue time ascending, then placement sequence. Min() is the best bid.
func bidLess(a, b entry) bool {
	if a.orderType != b.orderType {
		return a.orderType == orderbookv1.OrderTypeMarket
	}
	if c := a.price.Cmp(b.price); c != 0 {
		return c > 0
	}
	return earlier(a, b)
}

// askLess orders the ask side: market before limit, then price ascending,
// then enqueue time ascending, then placement sequence. Min() is the best ask.
func askLess(a, b entry) bool {
	if a.orderType != b.orderType {
		return a.orderType == orderbookv1.OrderTypeMarket
	}
	if c := a.price.Cmp(b.price); c != 0 {
		return c < 0
	}
	return earlier(a, b)
}

func earlier(a, b entry) bool {
	if !a.enqueuedAt.Equal(b.enqueuedAt) {
		return a.enqueuedAt.Before(b.enqueuedAt)
	}
	return a.seq < b.seq
}

// priorityIndex is a priority queue over one side of the book. Entries are
// never removed out of order; stale ones are dropped when they reach the top.
type priorityIndex struct {
	tree *btree.BTreeG[entry]
}

func newPriorityIndex(side orderbookv1.Side) *priorityIndex {
	less := askLess
	if side == orderbookv1.SideBuy {
		less = bidLess
	}
	return &priorityIndex{tree: btree.NewG[entry](btreeDegree, less)}
}

func (p *priorityIndex) push(e entry) {
	p.tree.ReplaceOrInsert(e)
}

func (p *priorityIndex) peek() (entry, bool) {
	return p.tree.Min()
}

func (p *priorityIndex) pop() (entry, bool) {
	return p.tree.DeleteMin()
}

// ascend walks entries in priority order without modifying the index.
func (p *priorityIndex) ascend(fn func(e entry) bool) {
	p.tree.Ascend(btree.ItemIteratorG[entry](fn))
}

// len counts entries, ghosts included.
func (p *priorityIndex) len() int {
	return p.tree.Len()
}
