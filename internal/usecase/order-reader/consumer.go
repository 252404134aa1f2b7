package orderreader

import (
	"context"

	orderreaderv1 "github.com/muhammadchandra19/matchbook/internal/domain/order-reader/v1"
	"github.com/muhammadchandra19/matchbook/pkg/config"
	"github.com/muhammadchandra19/matchbook/pkg/errors"
	"github.com/muhammadchandra19/matchbook/pkg/logger"
	"github.com/segmentio/kafka-go"
)

// messageReader is the part of *kafka.Reader the consumer uses.
type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	SetOffset(offset int64) error
	Close() error
}

// Reader represents a Kafka Reader for consuming messages from the order topic.
type Reader struct {
	kafkaReader messageReader
	grouped     bool
	logger      *logger.Logger
}

var _ orderreaderv1.OrderReader = (*Reader)(nil)

// NewReader creates a new Kafka reader for consuming messages from the order topic.
// With a GroupID the consumer group owns offsets; without one the reader
// consumes partition 0 from the offset given to SetOffset.
func NewReader(cfg config.OrderKafkaConfig, log *logger.Logger) *Reader {
	readerConfig := kafka.ReaderConfig{
		Brokers:     cfg.Brokers,
		Topic:       cfg.Topic,
		GroupID:     cfg.GroupID,
		MinBytes:    1,
		MaxBytes:    cfg.MaxBytes,
		StartOffset: kafka.LastOffset,
	}
	if cfg.GroupID == "" {
		readerConfig.Partition = 0
	}

	return newReader(kafka.NewReader(readerConfig), cfg.GroupID != "", log)
}

func newReader(r messageReader, grouped bool, log *logger.Logger) *Reader {
	return &Reader{
		kafkaReader: r,
		grouped:     grouped,
		logger:      log,
	}
}

// logError is a helper method to log errors consistently
func (r *Reader) logError(err error, operation string) {
	r.logger.Error(err,
		logger.Field{Key: "operation", Value: operation},
	)
}

// SetOffset sets the offset for the Kafka reader. It is a no-op for group readers.
func (r *Reader) SetOffset(offset int64) error {
	if r.grouped {
		return nil
	}
	if err := r.kafkaReader.SetOffset(offset); err != nil {
		r.logError(err, "SetOffset")
		return errors.NewTracer("failed to set reader offset").Wrap(err)
	}
	return nil
}

// ReadMessage reads a message from the Kafka topic and decodes it as an OrderRequest.
// A decode failure returns the message together with a FeedDecodeError.
func (r *Reader) ReadMessage(ctx context.Context) (kafka.Message, orderreaderv1.OrderRequest, error) {
	msg, err := r.kafkaReader.FetchMessage(ctx)
	if err != nil {
		return kafka.Message{}, orderreaderv1.OrderRequest{}, errors.NewTracer("failed to read order message").Wrap(
			errors.NewErrorDetails(err.Error(), string(errors.FeedReadError), "message"))
	}

	req, err := orderreaderv1.Decode(msg.Value)
	if err != nil {
		r.logger.Warn("Undecodable order message",
			logger.Field{Key: "offset", Value: msg.Offset},
			logger.Field{Key: "partition", Value: msg.Partition},
			logger.Field{Key: "error", Value: err.Error()},
		)
		return msg, orderreaderv1.OrderRequest{Offset: msg.Offset}, errors.NewTracer("failed to decode order message").Wrap(
			errors.NewErrorDetails(err.Error(), string(errors.FeedDecodeError), "value"))
	}

	r.logger.Debug("ReadMessage",
		logger.Field{Key: "action", Value: req.Action},
		logger.Field{Key: "orderID", Value: req.OrderID},
		logger.Field{Key: "side", Value: req.Side},
		logger.Field{Key: "offset", Value: msg.Offset},
	)

	req.Offset = msg.Offset

	return msg, req, nil
}

// Close properly closes the Kafka reader.
func (r *Reader) Close() error {
	if err := r.kafkaReader.Close(); err != nil {
		r.logError(err, "Close")
		return err
	}
	return nil
}

// CommitMessages commits the messages to Kafka after processing.
// Readers without a group have nothing to commit.
func (r *Reader) CommitMessages(ctx context.Context, msgs ...kafka.Message) error {
	if !r.grouped || len(msgs) == 0 {
		return nil
	}
	if err := r.kafkaReader.CommitMessages(ctx, msgs...); err != nil {
		r.logError(err, "CommitMessages")
		return errors.NewTracer("failed to commit order messages").Wrap(err)
	}
	return nil
}
