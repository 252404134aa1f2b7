package orderbook

import (
	"testing"
	"time"

	orderbookv1 "github.com/muhammadchandra19/matchbook/internal/domain/orderbook/v1"
	"github.com/muhammadchandra19/matchbook/pkg/util"
	"github.com/shopspring/decimal"
	"pgregory.net/rapid"
)

type opKind int

const (
	opLimit opKind = iota
	opMarket
	opCancel
)

type bookOp struct {
	kind  opKind
	side  orderbookv1.Side
	price int64
	qty   int64
	// index into previously submitted ids, for cancels
	target int
}

func genBookOp() *rapid.Generator[bookOp] {
	return rapid.Custom(func(t *rapid.T) bookOp {
		return bookOp{
			kind:   rapid.SampledFrom([]opKind{opLimit, opLimit, opLimit, opMarket, opCancel}).Draw(t, "kind"),
			side:   rapid.SampledFrom([]orderbookv1.Side{orderbookv1.SideBuy, orderbookv1.SideSell}).Draw(t, "side"),
			price:  rapid.Int64Range(95, 105).Draw(t, "price"),
			qty:    rapid.Int64Range(1, 20).Draw(t, "qty"),
			target: rapid.IntRange(0, 1000).Draw(t, "target"),
		}
	})
}

// sideQuantity sums the live resting quantity of one side.
func sideQuantity(ob *Orderbook, side orderbookv1.Side) int64 {
	var total int64
	for _, o := range ob.Depth(side) {
		total += o.Quantity
	}
	return total
}

// runOps replays ops against a fresh book, calling check after every AddOrder.
func runOps(t *rapid.T, ops []bookOp, check func(in orderbookv1.Order, trades []orderbookv1.Trade, before, after int64, ob *Orderbook)) {
	clock := util.NewManualClock(time.Unix(1_700_000_000, 0))
	ob := NewOrderbook(WithClock(clock))

	var ids []int64
	for i, op := range ops {
		clock.Advance(time.Millisecond)
		id := int64(i + 1)

		switch op.kind {
		case opCancel:
			if len(ids) > 0 {
				ob.RemoveOrder(ids[op.target%len(ids)])
			}
			continue
		case opLimit:
			ids = append(ids, id)
		}

		opts := []orderbookv1.OrderOption{orderbookv1.WithCreationTime(clock.Now())}
		price := decimal.NewFromInt(op.price)
		if op.kind == opMarket {
			opts = append(opts, orderbookv1.WithOrderType(orderbookv1.OrderTypeMarket))
			price = decimal.Zero
		}
		in := orderbookv1.NewOrder(id, price, op.qty, op.side, 0, opts...)

		before := sideQuantity(ob, op.side.Opposite())
		trades, err := ob.AddOrder(in)
		if err != nil {
			t.Fatalf("AddOrder(%d) returned error: %v", id, err)
		}
		after := sideQuantity(ob, op.side.Opposite())

		check(in, trades, before, after, ob)
	}
}

func TestProperty_QuantityConservation(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ops := rapid.SliceOfN(genBookOp(), 1, 80).Draw(t, "ops")

		runOps(t, ops, func(in orderbookv1.Order, trades []orderbookv1.Trade, before, after int64, ob *Orderbook) {
			var filled int64
			for _, tr := range trades {
				if tr.Quantity <= 0 {
					t.Fatalf("trade with non-positive quantity %d", tr.Quantity)
				}
				filled += tr.Quantity
			}

			if consumed := before - after; consumed != filled {
				t.Fatalf("resting side lost %d, trades sum to %d", consumed, filled)
			}
			if filled > in.Quantity {
				t.Fatalf("filled %d exceeds submitted %d", filled, in.Quantity)
			}

			resting, err := ob.Order(in.ID)
			switch {
			case in.IsMarket() || filled == in.Quantity:
				if err == nil {
					t.Fatalf("order %d should not rest", in.ID)
				}
			default:
				if err != nil {
					t.Fatalf("residual of order %d not resting: %v", in.ID, err)
				}
				if filled+resting.Quantity != in.Quantity {
					t.Fatalf("filled %d + resting %d != submitted %d", filled, resting.Quantity, in.Quantity)
				}
			}
		})
	})
}

func TestProperty_LimitPriceBound(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ops := rapid.SliceOfN(genBookOp(), 1, 80).Draw(t, "ops")

		runOps(t, ops, func(in orderbookv1.Order, trades []orderbookv1.Trade, _, _ int64, _ *Orderbook) {
			if in.IsMarket() {
				return
			}
			for _, tr := range trades {
				if in.IsBid() && tr.Price.GreaterThan(in.Price) {
					t.Fatalf("buy limit %s traded at %s", in.Price, tr.Price)
				}
				if in.IsAsk() && tr.Price.LessThan(in.Price) {
					t.Fatalf("sell limit %s traded at %s", in.Price, tr.Price)
				}
			}
		})
	})
}

func TestProperty_BestPricesAndFIFO(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ops := rapid.SliceOfN(genBookOp(), 1, 80).Draw(t, "ops")

		runOps(t, ops, func(_ orderbookv1.Order, _ []orderbookv1.Trade, _, _ int64, ob *Orderbook) {
			for _, side := range []orderbookv1.Side{orderbookv1.SideBuy, orderbookv1.SideSell} {
				depth := ob.Depth(side)

				var best orderbookv1.Order
				var err error
				if side == orderbookv1.SideBuy {
					best, err = ob.BestBid()
				} else {
					best, err = ob.BestAsk()
				}

				if len(depth) == 0 {
					if err == nil {
						t.Fatalf("%s side empty but best returned order %d", side, best.ID)
					}
					continue
				}
				if err != nil {
					t.Fatalf("%s side has %d orders but best failed: %v", side, len(depth), err)
				}

				// Ids grow with arrival, so the best order is the oldest at the best price.
				want := depth[0]
				for _, o := range depth {
					better := o.Price.GreaterThan(want.Price)
					if side == orderbookv1.SideSell {
						better = o.Price.LessThan(want.Price)
					}
					if better || (o.Price.Equal(want.Price) && o.ID < want.ID) {
						want = o
					}
				}
				if best.ID != want.ID {
					t.Fatalf("best %s is %d@%s, want %d@%s", side, best.ID, best.Price, want.ID, want.Price)
				}
			}

			bid, bidErr := ob.BestBid()
			ask, askErr := ob.BestAsk()
			if bidErr == nil && askErr == nil && !bid.Price.LessThan(ask.Price) {
				t.Fatalf("book left crossed: bid %s ask %s", bid.Price, ask.Price)
			}
		})
	})
}

func TestProperty_CancelIsIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ops := rapid.SliceOfN(genBookOp(), 1, 60).Draw(t, "ops")

		var ob *Orderbook
		runOps(t, ops, func(_ orderbookv1.Order, _ []orderbookv1.Trade, _, _ int64, book *Orderbook) {
			ob = book
		})
		if ob == nil {
			return
		}

		live := append(ob.Depth(orderbookv1.SideBuy), ob.Depth(orderbookv1.SideSell)...)
		if len(live) == 0 {
			return
		}
		target := live[rapid.IntRange(0, len(live)-1).Draw(t, "victim")]

		if !ob.RemoveOrder(target.ID) {
			t.Fatalf("first cancel of live order %d reported not found", target.ID)
		}
		bids, asks := ob.Len()
		if ob.RemoveOrder(target.ID) {
			t.Fatalf("second cancel of order %d reported success", target.ID)
		}
		if b, a := ob.Len(); b != bids || a != asks {
			t.Fatalf("second cancel changed the book: %d/%d -> %d/%d", bids, asks, b, a)
		}
		if _, err := ob.Order(target.ID); err == nil {
			t.Fatalf("cancelled order %d still readable", target.ID)
		}
	})
}

func TestProperty_ExpiryIsMonotonic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		clock := util.NewManualClock(time.Unix(1_700_000_000, 0))
		ob := NewOrderbook(WithClock(clock))

		n := rapid.IntRange(1, 30).Draw(t, "orders")
		for i := 0; i < n; i++ {
			ttl := time.Duration(rapid.Int64Range(0, 50).Draw(t, "ttl")) * time.Millisecond
			o := orderbookv1.NewOrder(int64(i+1), decimal.NewFromInt(int64(100+i)), 1, orderbookv1.SideSell, 0,
				orderbookv1.WithCreationTime(clock.Now()),
				orderbookv1.WithTTL(ttl),
			)
			if err := ob.AddOrderWithoutMatching(o); err != nil {
				t.Fatalf("seed order %d: %v", o.ID, err)
			}
		}

		prev := make(map[int64]bool)
		for _, o := range ob.Depth(orderbookv1.SideSell) {
			prev[o.ID] = true
		}

		steps := rapid.SliceOfN(rapid.Int64Range(0, 20), 1, 10).Draw(t, "steps")
		for _, step := range steps {
			clock.Advance(time.Duration(step) * time.Millisecond)

			cur := make(map[int64]bool)
			for _, o := range ob.Depth(orderbookv1.SideSell) {
				if !prev[o.ID] {
					t.Fatalf("order %d came back to life", o.ID)
				}
				if o.IsExpired(clock.Now()) {
					t.Fatalf("expired order %d still visible", o.ID)
				}
				cur[o.ID] = true
			}
			prev = cur
		}
	})
}
