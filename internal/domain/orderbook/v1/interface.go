package orderbookv1

import "time"

// Orderbook defines a single-instrument limit order book.
// Implementations are not safe for concurrent use.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=orderbookv1_mock
type Orderbook interface {
	AddOrder(order Order) ([]Trade, error)
	AddOrderWithoutMatching(order Order) error
	RemoveOrder(orderID int64) bool
	UpdateOrder(orderID int64, update OrderUpdate) ([]Trade, error)
	BestBid() (Order, error)
	BestAsk() (Order, error)
	Order(orderID int64) (Order, error)
	Depth(side Side) []Order
	Levels(side Side, n int) []PriceLevel
	TradeLog() []Trade
	RecentTrades(n int) []Trade
	Len() (bids, asks int)
	CleanExpiredOrders()
}

// TradeSink receives every trade once the match producing it is committed.
// HandOff must not block.
type TradeSink interface {
	HandOff(trade Trade)
}

// BestPriceSink receives the new top of a side after it changed.
// HandOffBestPrice must not block.
type BestPriceSink interface {
	HandOffBestPrice(order Order, at time.Time)
}
