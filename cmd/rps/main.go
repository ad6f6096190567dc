package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"math/rand/v2"
	"os"
	"time"

	"github.com/cryptonstudio/crypton-tick-engine/matching"
)

// nolint
func main() {
	var eventsCount, maxOrderID int
	var norm, heavy, tree bool
	var cancelRatio float64
	flag.IntVar(&eventsCount, "i", 5_000_000, "Input events count")
	flag.IntVar(&maxOrderID, "o", 1<<16, "Largest order id, ids are reused in a cycle")
	flag.BoolVar(&norm, "n", false, "Use normal distribution for price and quantity")
	flag.BoolVar(&heavy, "heavy", false, "Generate heavy sides for orderbook")
	flag.BoolVar(&tree, "tree", false, "Use tree based price levels instead of bitmap")
	flag.Float64Var(&cancelRatio, "c", 0.3, "Ratio of cancel and modify events")
	flag.Parse()
	if eventsCount <= 0 {
		fmt.Fprintln(os.Stderr, "events count must be positive")
		os.Exit(1)
	}

	config := matching.DefaultConfig()
	config.MaxOrderID = uint32(maxOrderID)

	books := matching.NewBooks(config)
	if tree {
		books = matching.NewTreeBooks(config)
	}
	handler := NewMatcher(uint64(eventsCount))
	engine, err := matching.NewEngineWithBooks(config, books, handler)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Println("prepare input")

	inp := generateInput(eventsCount, norm, heavy, cancelRatio, config)

	fmt.Println("start execution")
	ctx, cancel := context.WithCancel(context.Background())
	go func() { _ = engine.Run(ctx) }()
	go drainTrades(ctx, engine)

	s := time.Now()
	for _, event := range inp {
		if err := engine.Inbound().Push(ctx, event); err != nil {
			break
		}
	}
	<-handler.Done()
	e := time.Now()
	cancel()

	handler.PrintStatistics()

	rps := float64(eventsCount) * float64(time.Second) / float64(e.Sub(s))

	fmt.Printf("RPS: %.5f\n", rps)
}

func drainTrades(ctx context.Context, engine *matching.Engine) {
	for {
		if _, err := engine.Outbound().Pop(ctx); err != nil {
			return
		}
	}
}

func randomFloat(down, up float64, norm bool) float64 {
	var raw float64
	switch norm {
	case false:
		raw = rand.Float64()*(up-down) + down
	case true:
		std := (up - down) / (2.0 * 5) // range = [-5*std; +5*std]
		mean := (up + down) / 2.0
		raw = rand.NormFloat64()*std + mean
		// cut edges
		if raw < down {
			raw = down
		}
		if raw > up {
			raw = up
		}
	}
	return math.Round(raw)
}

func randomTicks(down, up uint32, norm bool) uint32 {
	return uint32(randomFloat(float64(down), float64(up), norm))
}

func randomChoice[T any](list []T) T {
	var empty T
	if len(list) == 0 {
		return empty
	}

	return list[rand.IntN(len(list))]
}

func generateInput(eventsCount int, norm, heavy bool, cancelRatio float64, config matching.Config) []matching.Event {
	inp := make([]matching.Event, 0, eventsCount)
	sides := make([]matching.OrderSide, config.MaxOrderID+1)
	mid := config.MinPrice + (config.MaxPrice-config.MinPrice)/2
	var nextID uint32

	for i := range eventsCount {
		seq := uint32(i + 1)

		// Cancel or modify one of the previously placed orders
		if nextID > 0 && rand.Float64() < cancelRatio {
			id := uint32(rand.IntN(int(nextID))) + 1
			if rand.IntN(2) == 0 {
				inp = append(inp, matching.NewCancelEvent(seq, sides[id], id))
			} else {
				price := randomTicks(config.MinPrice, config.MaxPrice, norm)
				inp = append(inp, matching.NewModifyEvent(seq, sides[id], id, price, randomTicks(1, 100, norm)))
			}
			continue
		}

		side := randomChoice([]matching.OrderSide{matching.OrderSideBuy, matching.OrderSideSell})
		var price uint32
		switch {
		case heavy && i < eventsCount/2 && side == matching.OrderSideBuy:
			price = randomTicks(config.MinPrice, mid-1, norm)
		case heavy && i < eventsCount/2 && side == matching.OrderSideSell:
			price = randomTicks(mid+1, config.MaxPrice, norm)
		default:
			price = randomTicks(config.MinPrice, config.MaxPrice, norm)
		}

		// Ids are recycled once the range is exhausted, stale ones are ignored by the books
		nextID = nextID%config.MaxOrderID + 1
		sides[nextID] = side
		inp = append(inp, matching.NewLimitEvent(seq, side, nextID, price, randomTicks(1, 100, norm)))
	}

	return inp
}
