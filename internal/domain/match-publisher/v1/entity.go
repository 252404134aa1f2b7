package matchpublisherv1

import (
	"encoding/json"
	"time"

	orderbookv1 "github.com/muhammadchandra19/matchbook/internal/domain/orderbook/v1"
	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

// MatchEvent is the published record of one trade.
type MatchEvent struct {
	EventID     string          `json:"eventID"`
	Pair        string          `json:"pair"`
	BuyOrderID  int64           `json:"buyOrderID"`
	SellOrderID int64           `json:"sellOrderID"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int64           `json:"quantity"`
	Timestamp   time.Time       `json:"timestamp"`
}

// BestPriceEvent is the published top of one side of the book.
type BestPriceEvent struct {
	Pair      string           `json:"pair"`
	Side      orderbookv1.Side `json:"side"`
	OrderID   int64            `json:"orderID"`
	Price     decimal.Decimal  `json:"price"`
	Quantity  int64            `json:"quantity"`
	Timestamp time.Time        `json:"timestamp"`
}

// CreateFromTrade creates a match event from a trade.
func CreateFromTrade(pair string, trade orderbookv1.Trade) *MatchEvent {
	return &MatchEvent{
		EventID:     ulid.Make().String(),
		Pair:        pair,
		BuyOrderID:  trade.BuyOrderID,
		SellOrderID: trade.SellOrderID,
		Price:       trade.Price,
		Quantity:    trade.Quantity,
		Timestamp:   trade.Timestamp,
	}
}

// CreateBestPrice creates a best price event from the order at the top of a side.
func CreateBestPrice(pair string, order orderbookv1.Order, at time.Time) *BestPriceEvent {
	return &BestPriceEvent{
		Pair:      pair,
		Side:      order.Side,
		OrderID:   order.ID,
		Price:     order.Price,
		Quantity:  order.Quantity,
		Timestamp: at,
	}
}

// ToBytes converts the match event to a byte array.
func ToBytes(matchEvent *MatchEvent) ([]byte, error) {
	return json.Marshal(matchEvent)
}

// FromBytes converts a byte array to a match event.
func FromBytes(data []byte) (*MatchEvent, error) {
	var matchEvent MatchEvent
	if err := json.Unmarshal(data, &matchEvent); err != nil {
		return nil, err
	}
	return &matchEvent, nil
}

// BestPriceToBytes converts the best price event to a byte array.
func BestPriceToBytes(bestPrice *BestPriceEvent) ([]byte, error) {
	return json.Marshal(bestPrice)
}

// BestPriceFromBytes converts a byte array to a best price event.
func BestPriceFromBytes(data []byte) (*BestPriceEvent, error) {
	var bestPrice BestPriceEvent
	if err := json.Unmarshal(data, &bestPrice); err != nil {
		return nil, err
	}
	return &bestPrice, nil
}
