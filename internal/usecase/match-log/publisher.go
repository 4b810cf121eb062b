package matchlog

import (
	"context"
	"encoding/json"

	matchlogv1 "github.com/muhammadchandra19/exchange-matching/internal/domain/matchlog/v1"
	"github.com/muhammadchandra19/exchange-matching/pkg/errors"
	"github.com/muhammadchandra19/exchange-matching/pkg/logger"
	"github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Config holds the settings of the log publisher.
type Config struct {
	Brokers   []string
	Topic     string
	ProductID string
	BatchSize int
}

// Publisher appends order book logs to the product's log topic. Every message
// is keyed by product id so one product's logs stay on one partition in order.
type Publisher struct {
	kafkaWriter messageWriter
	key         []byte
	logger      *logger.Logger
}

// NewPublisher creates a new Kafka publisher for order book logs.
func NewPublisher(config Config, log *logger.Logger) *Publisher {
	batchSize := config.BatchSize
	if batchSize <= 0 {
		batchSize = 100
	}

	kafkaWriter := &kafka.Writer{
		Addr:         kafka.TCP(config.Brokers...),
		Topic:        config.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		BatchSize:    batchSize,
		MaxAttempts:  1,
	}

	return newPublisher(kafkaWriter, config.ProductID, log.WithFields(logger.Field{Key: "topic", Value: config.Topic}))
}

func newPublisher(kafkaWriter messageWriter, productID string, log *logger.Logger) *Publisher {
	return &Publisher{
		kafkaWriter: kafkaWriter,
		key:         []byte(productID),
		logger:      log,
	}
}

// Store appends logs as one synchronous batch.
func (p *Publisher) Store(ctx context.Context, logs []matchlogv1.Log) error {
	if len(logs) == 0 {
		return nil
	}

	msgs := make([]kafka.Message, 0, len(logs))
	for _, log := range logs {
		value, err := json.Marshal(log)
		if err != nil {
			return errors.NewTracer("log_marshal_error").Wrap(err)
		}
		msgs = append(msgs, kafka.Message{Key: p.key, Value: value})
	}

	if err := p.kafkaWriter.WriteMessages(ctx, msgs...); err != nil {
		p.logger.ErrorContext(ctx, err,
			logger.Field{Key: "first_sequence", Value: logs[0].GetSeq()},
			logger.Field{Key: "last_sequence", Value: logs[len(logs)-1].GetSeq()},
		)
		return errors.NewTracer(errors.KafkaWriteError.String()).Wrap(err)
	}

	p.logger.DebugContext(ctx, "logs published",
		logger.Field{Key: "count", Value: len(logs)},
		logger.Field{Key: "last_sequence", Value: logs[len(logs)-1].GetSeq()},
	)
	return nil
}

// Close flushes and closes the writer.
func (p *Publisher) Close() error {
	return p.kafkaWriter.Close()
}
