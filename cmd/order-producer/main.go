package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	orderbookv1 "github.com/muhammadchandra19/exchange-matching/internal/domain/orderbook/v1"
	"github.com/muhammadchandra19/exchange-matching/pkg/logger"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
)

func main() {
	var (
		brokers     = flag.String("brokers", "localhost:9092", "Kafka broker addresses (comma-separated)")
		product     = flag.String("product", "BTC-USD", "Product id")
		topicPrefix = flag.String("topic-prefix", "matching_order_", "Order topic prefix, the product id is appended")
		count       = flag.Int("count", 1000, "Number of orders to generate")
		startID     = flag.Int64("start-id", 1, "Id of the first generated order")
		basePrice   = flag.String("base-price", "3945.5", "Base price for orders")
		spread      = flag.String("spread", "200", "Price spread range")
		baseScale   = flag.Int("base-scale", 6, "Fractional digits of generated sizes")
		delay       = flag.Duration("delay", 0, "Delay between sending orders")
		seed        = flag.Int64("seed", time.Now().UnixNano(), "Random seed")
	)
	flag.Parse()

	log, err := logger.NewLogger()
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	price, err := decimal.NewFromString(*basePrice)
	if err != nil {
		log.Error(err, logger.Field{Key: "flag", Value: "base-price"})
		os.Exit(1)
	}
	priceSpread, err := decimal.NewFromString(*spread)
	if err != nil {
		log.Error(err, logger.Field{Key: "flag", Value: "spread"})
		os.Exit(1)
	}

	topic := *topicPrefix + *product
	writer := &kafka.Writer{
		Addr:         kafka.TCP(strings.Split(*brokers, ",")...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
	}
	defer writer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gen := newGenerator(generatorConfig{
		ProductID: *product,
		StartID:   *startID,
		BasePrice: price,
		Spread:    priceSpread,
		BaseScale: int32(*baseScale),
	}, *seed)

	log.Info("sending orders",
		logger.Field{Key: "brokers", Value: *brokers},
		logger.Field{Key: "topic", Value: topic},
		logger.Field{Key: "count", Value: *count},
	)

	stats := map[string]int{}
	for i := 0; i < *count; i++ {
		order := gen.Next()
		if err := send(ctx, writer, order); err != nil {
			log.Error(err, logger.Field{Key: "order_id", Value: order.ID})
			os.Exit(1)
		}
		stats[statKey(order)]++

		if (i+1)%100 == 0 || i == *count-1 {
			log.Info("progress",
				logger.Field{Key: "sent", Value: i + 1},
				logger.Field{Key: "order_id", Value: order.ID},
			)
		}

		if *delay > 0 && i < *count-1 {
			select {
			case <-time.After(*delay):
			case <-ctx.Done():
				log.Info("interrupted", logger.Field{Key: "sent", Value: i + 1})
				return
			}
		}
	}

	log.Info("all orders sent", logger.Field{Key: "stats", Value: stats})
}

func send(ctx context.Context, writer *kafka.Writer, order *orderbookv1.Order) error {
	value, err := json.Marshal(order)
	if err != nil {
		return err
	}

	return writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(order.ProductID),
		Value: value,
		Time:  time.Now(),
	})
}

func statKey(order *orderbookv1.Order) string {
	if order.Status == orderbookv1.OrderStatusCancelling {
		return "cancel"
	}
	return string(order.Type) + "_" + string(order.Side)
}
