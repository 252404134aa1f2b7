package orderbook

import (
	orderbookv1 "github.com/muhammadchandra19/matchbook/internal/domain/orderbook/v1"
)

// record is the live state of a resting order and the sequence of the
// index entry that represents it.
type record struct {
	order orderbookv1.Order
	seq   uint64
}

// lookup maps order id to live state. It alone decides whether an index
// entry is live.
type lookup struct {
	orders map[int64]record
}

func newLookup() *lookup {
	return &lookup{orders: make(map[int64]record)}
}

func (l *lookup) get(id int64) (record, bool) {
	rec, ok := l.orders[id]
	return rec, ok
}

func (l *lookup) put(rec record) {
	l.orders[rec.order.ID] = rec
}

func (l *lookup) erase(id int64) {
	delete(l.orders, id)
}

func (l *lookup) setQuantity(id, quantity int64) {
	rec, ok := l.orders[id]
	if !ok {
		return
	}
	rec.order.Quantity = quantity
	l.orders[id] = rec
}

// resolve returns the record backing e. An entry whose id was cancelled,
// or reused by a later placement, is a ghost.
func (l *lookup) resolve(e entry) (record, bool) {
	rec, ok := l.orders[e.id]
	if !ok || rec.seq != e.seq {
		return record{}, false
	}
	return rec, true
}

func (l *lookup) each(fn func(rec record)) {
	for _, rec := range l.orders {
		fn(rec)
	}
}
