package main

import (
	"context"
	"encoding/json"
	"flag"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"
	"time"

	orderreaderv1 "github.com/muhammadchandra19/matchbook/internal/domain/order-reader/v1"
	"github.com/muhammadchandra19/matchbook/pkg/logger"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
)

func main() {
	var (
		brokers     = flag.String("brokers", "localhost:9092", "Kafka broker addresses (comma-separated)")
		topic       = flag.String("topic", "order-requests", "Kafka topic name")
		file        = flag.String("file", "", "JSON file with order requests (optional, generates requests if not provided)")
		delay       = flag.Duration("delay", 100*time.Millisecond, "Delay between sending requests")
		count       = flag.Int("count", 1000, "Number of requests to generate")
		basePrice   = flag.String("base-price", "3945.5", "Base price for limit orders")
		priceSpread = flag.String("price-spread", "200", "Price spread range")
		marketRatio = flag.Float64("market-ratio", 0.2, "Share of adds that are market orders")
		cancelRatio = flag.Float64("cancel-ratio", 0.1, "Share of requests that cancel a resting order")
		updateRatio = flag.Float64("update-ratio", 0.05, "Share of requests that update a resting order")
		ttl         = flag.Int64("ttl", 0, "TTL in seconds for generated orders, 0 for none")
		seed        = flag.Uint64("seed", uint64(time.Now().UnixNano()), "Random seed")
	)
	flag.Parse()

	log, err := logger.NewLogger()
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	// Create Kafka writer
	writer := &kafka.Writer{
		Addr:         kafka.TCP(strings.Split(*brokers, ",")...),
		Topic:        *topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
	}
	defer writer.Close()

	ctx := context.Background()

	var requests []orderreaderv1.OrderRequest
	if *file != "" {
		data, err := os.ReadFile(*file)
		if err != nil {
			log.Error(err, logger.Field{Key: "file", Value: *file})
			return
		}
		if err := json.Unmarshal(data, &requests); err != nil {
			log.Error(err, logger.Field{Key: "file", Value: *file})
			return
		}
		log.Info("Loaded order requests from file",
			logger.Field{Key: "count", Value: len(requests)},
			logger.Field{Key: "file", Value: *file},
		)
	} else {
		requests = generateRequests(rand.New(rand.NewPCG(*seed, *seed)), generatorConfig{
			Count:       *count,
			BasePrice:   decimal.RequireFromString(*basePrice),
			PriceSpread: decimal.RequireFromString(*priceSpread),
			MarketRatio: *marketRatio,
			CancelRatio: *cancelRatio,
			UpdateRatio: *updateRatio,
			TTLSeconds:  *ttl,
			StartID:     time.Now().Unix() * 1000,
			Timestamp:   time.Now().Unix(),
		})
		log.Info("Generated order requests",
			logger.Field{Key: "count", Value: len(requests)},
			logger.Field{Key: "seed", Value: *seed},
		)
	}

	log.Info("Sending order requests",
		logger.Field{Key: "brokers", Value: *brokers},
		logger.Field{Key: "topic", Value: *topic},
		logger.Field{Key: "delay", Value: delay.String()},
	)

	counts := map[orderreaderv1.Action]int{}
	for i, req := range requests {
		value, err := json.Marshal(req)
		if err != nil {
			log.Error(err, logger.Field{Key: "index", Value: i})
			continue
		}

		msg := kafka.Message{
			Key:   []byte(strconv.FormatInt(req.OrderID, 10)),
			Value: value,
			Time:  time.Now(),
		}
		if err := writer.WriteMessages(ctx, msg); err != nil {
			log.Error(err,
				logger.Field{Key: "index", Value: i},
				logger.Field{Key: "orderID", Value: req.OrderID},
			)
			continue
		}
		counts[req.Action]++

		// Log progress every 100 requests or for the last one
		if (i+1)%100 == 0 || i == len(requests)-1 {
			log.Info("Progress",
				logger.Field{Key: "sent", Value: i + 1},
				logger.Field{Key: "total", Value: len(requests)},
			)
		}

		if i < len(requests)-1 {
			time.Sleep(*delay)
		}
	}

	log.Info("Summary",
		logger.Field{Key: "total", Value: len(requests)},
		logger.Field{Key: "adds", Value: counts[orderreaderv1.ActionAdd]},
		logger.Field{Key: "cancels", Value: counts[orderreaderv1.ActionCancel]},
		logger.Field{Key: "updates", Value: counts[orderreaderv1.ActionUpdate]},
	)
}
