package orderbookv1

import (
	"time"

	"github.com/shopspring/decimal"
)

// Trade is one fill between a buy and a sell order.
type Trade struct {
	BuyOrderID  int64           `json:"buyOrderID"`
	SellOrderID int64           `json:"sellOrderID"`
	Price       decimal.Decimal `json:"price"` // resting order's quote
	Quantity    int64           `json:"quantity"`
	Timestamp   time.Time       `json:"timestamp"`
}

// NewTrade assigns buy and sell ids by the incoming order's side.
func NewTrade(incoming, resting Order, price decimal.Decimal, quantity int64, at time.Time) Trade {
	t := Trade{
		Price:     price,
		Quantity:  quantity,
		Timestamp: at,
	}
	if incoming.IsBid() {
		t.BuyOrderID, t.SellOrderID = incoming.ID, resting.ID
	} else {
		t.BuyOrderID, t.SellOrderID = resting.ID, incoming.ID
	}
	return t
}

// PriceLevel aggregates the live orders resting at one price.
type PriceLevel struct {
	Price    decimal.Decimal `json:"price"`
	Quantity int64           `json:"quantity"`
	Orders   int             `json:"orders"`
}
