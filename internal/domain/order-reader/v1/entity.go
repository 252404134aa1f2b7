package orderreaderv1

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	orderbookv1 "github.com/muhammadchandra19/matchbook/internal/domain/orderbook/v1"
	"github.com/shopspring/decimal"
)

// Action is the command carried by an order request.
type Action string

const (
	// ActionAdd submits a new order for matching.
	ActionAdd Action = "add"
	// ActionCancel removes a resting order.
	ActionCancel Action = "cancel"
	// ActionUpdate replaces price, quantity or side of a resting order.
	ActionUpdate Action = "update"
)

// ParseAction parses an action, case-insensitive. An empty string is an add.
func ParseAction(s string) (Action, error) {
	switch Action(strings.ToLower(strings.TrimSpace(s))) {
	case "", ActionAdd:
		return ActionAdd, nil
	case ActionCancel:
		return ActionCancel, nil
	case ActionUpdate:
		return ActionUpdate, nil
	}
	return "", fmt.Errorf("unknown action %q", s)
}

// RequestSide is the side of an order request. On the wire it is either
// "buy"/"sell" or a boolean where true means buy.
type RequestSide string

// UnmarshalJSON accepts the string and the boolean form.
func (s *RequestSide) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}

	var buy bool
	if err := json.Unmarshal(data, &buy); err == nil {
		*s = RequestSide(orderbookv1.SideFromBool(buy))
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("side must be a string or a boolean: %w", err)
	}
	if raw == "" {
		*s = ""
		return nil
	}
	side, err := orderbookv1.ParseSide(raw)
	if err != nil {
		return err
	}
	*s = RequestSide(side)
	return nil
}

// OrderRequest is one message of the order intake feed.
type OrderRequest struct {
	Action     Action           `json:"action"`
	OrderID    int64            `json:"order_id"`
	Price      *decimal.Decimal `json:"price,omitempty"`
	Quantity   *int64           `json:"quantity,omitempty"`
	Side       RequestSide      `json:"side,omitempty"`
	Timestamp  int64            `json:"timestamp"`
	OrderType  string           `json:"order_type,omitempty"`
	TTLSeconds *int64           `json:"ttl_seconds,omitempty"`

	// Offset is the feed offset the request was read at.
	Offset int64 `json:"-"`
}

// Decode parses a feed message and normalizes its action.
func Decode(data []byte) (OrderRequest, error) {
	var req OrderRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return OrderRequest{}, err
	}

	action, err := ParseAction(string(req.Action))
	if err != nil {
		return OrderRequest{}, err
	}
	req.Action = action
	return req, nil
}

// ToOrder builds the order an add request submits. The creation time is left
// unset so the book stamps it with its own clock.
func (r OrderRequest) ToOrder() (orderbookv1.Order, error) {
	if r.Side == "" {
		return orderbookv1.Order{}, fmt.Errorf("%w: side is required", orderbookv1.ErrInvalidOrder)
	}
	if r.Quantity == nil {
		return orderbookv1.Order{}, fmt.Errorf("%w: quantity is required", orderbookv1.ErrInvalidOrder)
	}

	orderType, err := orderbookv1.ParseOrderType(r.OrderType)
	if err != nil {
		return orderbookv1.Order{}, err
	}

	price := decimal.Zero
	if r.Price != nil {
		price = *r.Price
	}

	opts := []orderbookv1.OrderOption{orderbookv1.WithOrderType(orderType)}
	if r.TTLSeconds != nil {
		opts = append(opts, orderbookv1.WithTTL(time.Duration(*r.TTLSeconds)*time.Second))
	}

	order := orderbookv1.NewOrder(r.OrderID, price, *r.Quantity, orderbookv1.Side(r.Side), r.Timestamp, opts...)
	order.CreationTime = time.Time{}
	return order, nil
}

// ToUpdate builds the update of an update request. Absent fields are left unchanged.
func (r OrderRequest) ToUpdate() orderbookv1.OrderUpdate {
	update := orderbookv1.OrderUpdate{
		Price:    r.Price,
		Quantity: r.Quantity,
	}
	if r.Side != "" {
		side := orderbookv1.Side(r.Side)
		update.Side = &side
	}
	return update
}
