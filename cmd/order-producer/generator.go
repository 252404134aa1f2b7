package main

import (
	"math/rand/v2"

	orderreaderv1 "github.com/muhammadchandra19/matchbook/internal/domain/order-reader/v1"
	orderbookv1 "github.com/muhammadchandra19/matchbook/internal/domain/orderbook/v1"
	"github.com/shopspring/decimal"
)

// generatorConfig shapes the generated order flow.
type generatorConfig struct {
	Count       int
	BasePrice   decimal.Decimal
	PriceSpread decimal.Decimal
	MarketRatio float64
	CancelRatio float64
	UpdateRatio float64
	TTLSeconds  int64
	StartID     int64
	Timestamp   int64
}

// generateRequests creates count requests. Cancels and updates only target
// ids added earlier in the same run.
func generateRequests(rng *rand.Rand, cfg generatorConfig) []orderreaderv1.OrderRequest {
	requests := make([]orderreaderv1.OrderRequest, 0, max(cfg.Count, 0))
	nextID := cfg.StartID
	var resting []int64

	for len(requests) < cfg.Count {
		roll := rng.Float64()

		if len(resting) > 0 && roll < cfg.CancelRatio {
			idx := rng.IntN(len(resting))
			requests = append(requests, orderreaderv1.OrderRequest{
				Action:    orderreaderv1.ActionCancel,
				OrderID:   resting[idx],
				Timestamp: cfg.Timestamp,
			})
			resting = append(resting[:idx], resting[idx+1:]...)
			continue
		}

		if len(resting) > 0 && roll < cfg.CancelRatio+cfg.UpdateRatio {
			qty := 1 + rng.Int64N(10)
			requests = append(requests, orderreaderv1.OrderRequest{
				Action:    orderreaderv1.ActionUpdate,
				OrderID:   resting[rng.IntN(len(resting))],
				Quantity:  &qty,
				Timestamp: cfg.Timestamp,
			})
			continue
		}

		side := orderbookv1.SideFromBool(rng.Float64() < 0.5)
		qty := 1 + rng.Int64N(100)
		req := orderreaderv1.OrderRequest{
			Action:    orderreaderv1.ActionAdd,
			OrderID:   nextID,
			Quantity:  &qty,
			Side:      orderreaderv1.RequestSide(side),
			Timestamp: cfg.Timestamp,
		}
		nextID++

		if rng.Float64() < cfg.MarketRatio {
			req.OrderType = string(orderbookv1.OrderTypeMarket)
		} else {
			price := limitPrice(rng, cfg, side)
			req.Price = &price
			req.OrderType = string(orderbookv1.OrderTypeLimit)
			resting = append(resting, req.OrderID)
		}
		if cfg.TTLSeconds > 0 {
			ttl := cfg.TTLSeconds
			req.TTLSeconds = &ttl
		}

		requests = append(requests, req)
	}

	return requests
}

// limitPrice places bids below and asks above the base price, so only the
// wings of the spread cross.
func limitPrice(rng *rand.Rand, cfg generatorConfig, side orderbookv1.Side) decimal.Decimal {
	offset := cfg.PriceSpread.Mul(decimal.NewFromFloat(rng.Float64() - 0.1)).Round(1)
	price := cfg.BasePrice.Add(offset)
	if side == orderbookv1.SideBuy {
		price = cfg.BasePrice.Sub(offset)
	}
	if !price.IsPositive() {
		return cfg.BasePrice
	}
	return price
}
