package orderbook

import (
	"time"

	orderbookv1 "github.com/muhammadchandra19/matchbook/internal/domain/orderbook/v1"
)

// AddOrder matches the order against the opposing side and rests any limit
// residual. A market residual is discarded. Zero trades is not an error.
func (ob *Orderbook) AddOrder(order orderbookv1.Order) ([]orderbookv1.Trade, error) {
	now := ob.clock.Now()
	if err := ob.admit(&order, now); err != nil {
		return nil, err
	}

	trades := ob.match(order, now)

	ob.trades.append(trades...)
	if ob.sink != nil {
		for _, trade := range trades {
			ob.sink.HandOff(trade)
		}
	}
	return trades, nil
}

func (ob *Orderbook) match(working orderbookv1.Order, now time.Time) []orderbookv1.Trade {
	opposing := ob.index(working.Side.Opposite())
	trades := []orderbookv1.Trade{}

	for working.Quantity > 0 {
		top, ok := opposing.peek()
		if !ok {
			break
		}

		rec, live := ob.lookup.resolve(top)
		if !live {
			opposing.pop()
			continue
		}

		resting := rec.order
		if resting.IsExpired(now) {
			opposing.pop()
			ob.lookup.erase(resting.ID)
			continue
		}

		if !working.Crosses(resting.Price) {
			break
		}

		fill := min(working.Quantity, resting.Quantity)
		trades = append(trades, orderbookv1.NewTrade(working, resting, resting.Price, fill, now))
		working.Quantity -= fill
		opposing.pop()

		if remaining := resting.Quantity - fill; remaining > 0 {
			// Same key, so the order keeps its place in the queue.
			ob.lookup.setQuantity(resting.ID, remaining)
			opposing.push(top)
		} else {
			ob.lookup.erase(resting.ID)
		}
	}

	if working.Quantity > 0 && !working.IsMarket() {
		ob.place(working, now)
	}
	return trades
}
