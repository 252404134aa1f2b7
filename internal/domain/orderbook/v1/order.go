package orderbookv1

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Side represents the side of the book an order belongs to.
type Side string

const (
	// SideBuy represents a bid.
	SideBuy Side = "buy"
	// SideSell represents an ask.
	SideSell Side = "sell"
)

// ParseSide parses "buy"/"sell" (also "bid"/"ask"), case-insensitive.
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "buy", "bid":
		return SideBuy, nil
	case "sell", "ask":
		return SideSell, nil
	}
	return "", fmt.Errorf("%w: unknown side %q", ErrInvalidOrder, s)
}

// SideFromBool maps the boolean wire form, true meaning buy.
func SideFromBool(buy bool) Side {
	if buy {
		return SideBuy
	}
	return SideSell
}

// IsValid reports whether s is a known side.
func (s Side) IsValid() bool {
	return s == SideBuy || s == SideSell
}

// Opposite returns the other side of the book.
func (s Side) Opposite() Side {
	if s == SideBuy {
		return SideSell
	}
	return SideBuy
}

// OrderType represents the type of order.
type OrderType string

const (
	// OrderTypeLimit represents a limit order.
	OrderTypeLimit OrderType = "limit"
	// OrderTypeMarket represents a market order.
	OrderTypeMarket OrderType = "market"
)

// ParseOrderType parses "limit"/"market", case-insensitive. An empty string is a limit order.
func ParseOrderType(s string) (OrderType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "limit":
		return OrderTypeLimit, nil
	case "market":
		return OrderTypeMarket, nil
	}
	return "", fmt.Errorf("%w: unknown order type %q", ErrInvalidOrder, s)
}

// IsValid reports whether t is a known order type.
func (t OrderType) IsValid() bool {
	return t == OrderTypeLimit || t == OrderTypeMarket
}

// Order represents a single order in the order book.
type Order struct {
	ID           int64           `json:"id"`
	Price        decimal.Decimal `json:"price"`
	Quantity     int64           `json:"quantity"` // remaining
	Side         Side            `json:"side"`
	Type         OrderType       `json:"type"`
	CreationTime time.Time       `json:"creationTime"`
	TTL          *time.Duration  `json:"ttl,omitempty"`
	Timestamp    int64           `json:"timestamp"` // caller wall clock, unix seconds
}

// OrderOption configures an Order built by NewOrder.
type OrderOption func(*Order)

// WithOrderType sets the order type. Orders are limit orders by default.
func WithOrderType(t OrderType) OrderOption {
	return func(o *Order) {
		o.Type = t
	}
}

// WithTTL makes the order expire ttl after its creation time.
func WithTTL(ttl time.Duration) OrderOption {
	return func(o *Order) {
		o.TTL = &ttl
	}
}

// WithCreationTime overrides the creation time, which is otherwise time.Now().
func WithCreationTime(t time.Time) OrderOption {
	return func(o *Order) {
		o.CreationTime = t
	}
}

// NewOrder creates a new order with the given parameters.
func NewOrder(id int64, price decimal.Decimal, quantity int64, side Side, timestamp int64, opts ...OrderOption) Order {
	o := Order{
		ID:           id,
		Price:        price,
		Quantity:     quantity,
		Side:         side,
		Type:         OrderTypeLimit,
		CreationTime: time.Now(),
		Timestamp:    timestamp,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// IsBid checks if the order is a bid (buy) order.
func (o Order) IsBid() bool {
	return o.Side == SideBuy
}

// IsAsk checks if the order is an ask (sell) order.
func (o Order) IsAsk() bool {
	return o.Side == SideSell
}

// IsMarket checks if the order is a market order.
func (o Order) IsMarket() bool {
	return o.Type == OrderTypeMarket
}

// IsFilled checks if the order has no remaining quantity.
func (o Order) IsFilled() bool {
	return o.Quantity <= 0
}

// ExpiryTime returns CreationTime+TTL, and false when the order never expires.
func (o Order) ExpiryTime() (time.Time, bool) {
	if o.TTL == nil {
		return time.Time{}, false
	}
	return o.CreationTime.Add(*o.TTL), true
}

// IsExpired reports whether now is strictly after the expiry time.
// An order with a zero TTL is live at its creation instant only.
func (o Order) IsExpired(now time.Time) bool {
	expiry, ok := o.ExpiryTime()
	return ok && now.After(expiry)
}

// Crosses reports whether the order is willing to trade against a resting
// order quoted at price. Market orders cross any price.
func (o Order) Crosses(price decimal.Decimal) bool {
	if o.IsMarket() {
		return true
	}
	if o.IsBid() {
		return o.Price.GreaterThanOrEqual(price)
	}
	return o.Price.LessThanOrEqual(price)
}

// Validate checks the fields every submitted order must satisfy.
func (o Order) Validate() error {
	if !o.Side.IsValid() {
		return fmt.Errorf("%w: order %d has unknown side %q", ErrInvalidOrder, o.ID, o.Side)
	}
	if !o.Type.IsValid() {
		return fmt.Errorf("%w: order %d has unknown type %q", ErrInvalidOrder, o.ID, o.Type)
	}
	if o.Quantity <= 0 {
		return fmt.Errorf("%w: order %d quantity must be positive, got %d", ErrInvalidOrder, o.ID, o.Quantity)
	}
	if o.Type == OrderTypeLimit && !o.Price.IsPositive() {
		return fmt.Errorf("%w: order %d limit price must be positive, got %s", ErrInvalidOrder, o.ID, o.Price)
	}
	if o.TTL != nil && *o.TTL < 0 {
		return fmt.Errorf("%w: order %d ttl must not be negative", ErrInvalidOrder, o.ID)
	}
	return nil
}

// OrderUpdate holds the fields UpdateOrder may change. Nil fields are kept.
type OrderUpdate struct {
	Price    *decimal.Decimal
	Quantity *int64
	Side     *Side
}

// Apply returns a copy of o with the update's non-nil fields applied.
func (u OrderUpdate) Apply(o Order) Order {
	if u.Price != nil {
		o.Price = *u.Price
	}
	if u.Quantity != nil {
		o.Quantity = *u.Quantity
	}
	if u.Side != nil {
		o.Side = *u.Side
	}
	return o
}
