package orderreader

import (
	"context"
	"fmt"

	orderreaderv1 "github.com/muhammadchandra19/exchange-matching/internal/domain/order-reader/v1"
	orderbookv1 "github.com/muhammadchandra19/exchange-matching/internal/domain/orderbook/v1"
	"github.com/muhammadchandra19/exchange-matching/pkg/errors"
	"github.com/muhammadchandra19/exchange-matching/pkg/logger"
	"github.com/segmentio/kafka-go"
)

type messageReader interface {
	SetOffset(offset int64) error
	FetchMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

// Config holds the settings of the order reader.
type Config struct {
	Brokers   []string
	Topic     string
	Partition int
}

// Reader represents a Kafka Reader for consuming orders from one partition of
// the order topic. It never joins a consumer group; the position is owned by
// the engine through SetOffset.
type Reader struct {
	kafkaReader messageReader
	logger      *logger.Logger
}

// NewReader creates a new Kafka reader for consuming messages from the order topic.
func NewReader(config Config, log *logger.Logger) *Reader {
	kafkaReader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:   config.Brokers,
		Topic:     config.Topic,
		Partition: config.Partition,
		MinBytes:  1,
		MaxBytes:  10e6,
	})

	return newReader(kafkaReader, log.WithFields(logger.Field{Key: "topic", Value: config.Topic}))
}

func newReader(kafkaReader messageReader, log *logger.Logger) *Reader {
	return &Reader{
		kafkaReader: kafkaReader,
		logger:      log,
	}
}

// logError is a helper method to log errors consistently
func (r *Reader) logError(err error, operation string, fields ...logger.Field) {
	r.logger.Error(err, append(fields,
		logger.Field{Key: "operation", Value: operation},
	)...)
}

// SetOffset sets the offset of the next record to read.
func (r *Reader) SetOffset(offset int64) error {
	if err := r.kafkaReader.SetOffset(offset); err != nil {
		r.logError(err, "SetOffset", logger.Field{Key: "offset", Value: offset})
		return errors.NewTracer(errors.KafkaSeekError.String()).Wrap(err)
	}
	return nil
}

// FetchOrder reads the next record and decodes it. A record that cannot be
// decoded returns its offset and an error wrapping orderreaderv1.ErrDecode.
func (r *Reader) FetchOrder(ctx context.Context) (int64, *orderbookv1.Order, error) {
	msg, err := r.kafkaReader.FetchMessage(ctx)
	if err != nil {
		return 0, nil, errors.NewTracer(errors.KafkaReadError.String()).Wrap(err)
	}

	order, err := orderbookv1.DecodeOrder(msg.Value)
	if err != nil {
		return msg.Offset, nil, fmt.Errorf("%w at offset %d: %w", orderreaderv1.ErrDecode, msg.Offset, err)
	}

	r.logger.Debug("FetchOrder",
		logger.Field{Key: "offset", Value: msg.Offset},
		logger.Field{Key: "order_id", Value: order.ID},
		logger.Field{Key: "side", Value: order.Side},
		logger.Field{Key: "type", Value: order.Type},
		logger.Field{Key: "price", Value: order.Price},
		logger.Field{Key: "size", Value: order.Size},
	)

	return msg.Offset, order, nil
}

// Close properly closes the Kafka reader.
func (r *Reader) Close() error {
	if err := r.kafkaReader.Close(); err != nil {
		r.logError(err, "Close")
		return err
	}
	return nil
}
