package util

import (
	"context"
)

type key string

const (
	pairKey   = key("pair")
	offsetKey = key("feed-offset")
)

// WithRequestID returns a context with request id.
// A new id is generated when the given one is empty.
func WithRequestID(ctx context.Context, id string) context.Context {
	return ContextWithRequestID(ctx, id)
}

// GetRequestID returns request id from context.
// Returns an empty string if not present.
func GetRequestID(ctx context.Context) string {
	return FromContext(ctx)
}

// WithPair returns a context carrying the trading pair label.
func WithPair(ctx context.Context, pair string) context.Context {
	return context.WithValue(ctx, pairKey, pair)
}

// GetPair returns the trading pair label from context.
func GetPair(ctx context.Context) string {
	pair, _ := ctx.Value(pairKey).(string)
	return pair
}

// WithFeedOffset returns a context carrying the offset of the feed message being processed.
func WithFeedOffset(ctx context.Context, offset int64) context.Context {
	return context.WithValue(ctx, offsetKey, offset)
}

// GetFeedOffset returns the feed offset from context, or -1 if none was set.
func GetFeedOffset(ctx context.Context) int64 {
	offset, ok := ctx.Value(offsetKey).(int64)
	if !ok {
		return -1
	}
	return offset
}
