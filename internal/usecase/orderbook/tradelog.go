package orderbook

import (
	orderbookv1 "github.com/muhammadchandra19/matchbook/internal/domain/orderbook/v1"
)

// tradeLog is the append-only history of every trade, in generation order.
type tradeLog struct {
	trades []orderbookv1.Trade
}

func (l *tradeLog) append(trades ...orderbookv1.Trade) {
	l.trades = append(l.trades, trades...)
}

func (l *tradeLog) all() []orderbookv1.Trade {
	return append([]orderbookv1.Trade{}, l.trades...)
}

// last returns up to n of the most recent trades, oldest first.
func (l *tradeLog) last(n int) []orderbookv1.Trade {
	if n <= 0 {
		return []orderbookv1.Trade{}
	}
	start := max(len(l.trades)-n, 0)
	return append([]orderbookv1.Trade{}, l.trades[start:]...)
}
