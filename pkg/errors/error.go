package errors

// ErrorCode represents a specific error code in the system.
type ErrorCode string

const (
	// GeneralInternalServerError represents a generic internal server error.
	GeneralInternalServerError ErrorCode = "general_internal_server_error"
	// GeneralBadRequestError represents a generic bad request error.
	GeneralBadRequestError ErrorCode = "general_bad_request_error"
	// GeneralNotFoundError represents a generic not found error.
	GeneralNotFoundError ErrorCode = "general_not_found_error"

	// OrderNotFoundError is returned when a book query or update targets no live order.
	OrderNotFoundError ErrorCode = "order_not_found"
	// OrderExpiredError is returned when an order is already past its TTL on submission.
	OrderExpiredError ErrorCode = "order_expired"
	// InvalidOrderError is returned for malformed or duplicate orders.
	InvalidOrderError ErrorCode = "invalid_order"

	// FeedDecodeError represents an order-intake message that could not be decoded.
	FeedDecodeError ErrorCode = "feed_decode_error"
	// FeedReadError represents a failure reading from the order-intake feed.
	FeedReadError ErrorCode = "feed_read_error"
	// UnknownActionError represents an order-intake message with an unsupported action.
	UnknownActionError ErrorCode = "unknown_action_error"

	// PublishError represents a failure handing an event to the sink transport.
	PublishError ErrorCode = "publish_error"
	// PublishQueueFullError represents an event dropped because the hand-off queue was full.
	PublishQueueFullError ErrorCode = "publish_queue_full"
	// PublishEncodeError represents an event that could not be encoded.
	PublishEncodeError ErrorCode = "publish_encode_error"

	// RedisConfigError represents an error when the Redis configuration is invalid or nil.
	RedisConfigError ErrorCode = "redis_config_error"
	// RedisConnectionError represents an error when connecting to Redis.
	RedisConnectionError ErrorCode = "redis_connection_error"
	// RedisPingError represents an error when pinging Redis.
	RedisPingError ErrorCode = "redis_pinging_error"
	// RedisPublishError represents an error when publishing messages to channels in Redis.
	RedisPublishError ErrorCode = "redis_publish_error"
	// RedisXAddError represents an error when adding entries to a stream in Redis.
	RedisXAddError ErrorCode = "redis_xadd_error"
)
