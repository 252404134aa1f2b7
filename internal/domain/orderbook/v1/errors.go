package orderbookv1

import "errors"

var (
	// ErrOrderNotFound is returned when an id is not live, or a side has no live order.
	ErrOrderNotFound = errors.New("order not found")
	// ErrOrderExpired is returned when an order is already expired on submission.
	ErrOrderExpired = errors.New("order expired")
	// ErrInvalidOrder is returned for malformed orders and duplicate live ids.
	ErrInvalidOrder = errors.New("invalid order")
	// ErrPublishFailure is reported when a trade could not be handed to its sink.
	ErrPublishFailure = errors.New("publish failure")
)
