package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/cryptonstudio/crypton-tick-engine/matching"
	"github.com/cryptonstudio/crypton-tick-engine/providers/nasdaq/itch"
)

const defaultFilePath = "./.stash/itch/01302019.NASDAQ_ITCH50"

func main() {
	var filePath, stock string
	var priceScale, minPrice, maxPrice, maxOrderID uint
	var tree bool
	config := matching.DefaultConfig()
	flag.StringVar(&filePath, "f", defaultFilePath, "ITCH 5.0 file to replay")
	flag.StringVar(&stock, "stock", "AAPL", "Stock symbol to replay")
	flag.UintVar(&priceScale, "scale", 100, "Divisor converting ITCH prices to price ticks")
	flag.UintVar(&minPrice, "min-price", uint(config.MinPrice), "Lowest accepted price tick")
	flag.UintVar(&maxPrice, "max-price", uint(config.MaxPrice), "Highest accepted price tick")
	flag.UintVar(&maxOrderID, "max-order-id", uint(config.MaxOrderID), "Largest engine order id")
	flag.BoolVar(&tree, "tree", false, "Use tree based price levels instead of bitmap")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	config.MinPrice = uint32(minPrice)
	config.MaxPrice = uint32(maxPrice)
	config.MaxOrderID = uint32(maxOrderID)
	if err := config.Validate(); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Create matching engine
	books := matching.NewBooks(config)
	if tree {
		books = matching.NewTreeBooks(config)
	}
	stats := matching.NewStatistics()
	engine, err := matching.NewEngineWithBooks(config, books, stats)
	if err != nil {
		logger.Fatal("failed to create engine", zap.Error(err))
	}

	// Trades are consumed by a separate goroutine, the bridge produces from the calling one
	drainCtx, drainCancel := context.WithCancel(ctx)
	drained := make(chan struct{})
	go func() {
		defer close(drained)
		for {
			if _, err := engine.Outbound().Pop(drainCtx); err != nil {
				return
			}
		}
	}()

	// Create ITCH data processor
	bridge := NewBridge(ctx, engine, stock, uint32(priceScale))
	processor := itch.NewProcessor(bridge)

	// Run reading ITCH data from file
	timeStart := time.Now()
	file, err := os.Open(filePath)
	if err != nil {
		logger.Fatal("failed to open file", zap.String("path", filePath), zap.Error(err))
	}
	defer file.Close()
	if err := processor.Process(ctx, file); err != nil {
		logger.Error("failed to process file", zap.String("path", filePath), zap.Error(err))
	}
	timeElapsed := time.Since(timeStart)
	drainCancel()
	<-drained

	messages := bridge.Messages()
	var msgCountTotal uint64
	for i := 0; i < 256; i++ {
		msgCount := messages[i]
		msgCountTotal += msgCount
		if msgCount > 0 {
			fmt.Printf("Message %c: %d\n", byte(i), msgCount)
		}
	}
	ps, bs, es := processor.Stats(), bridge.Stats(), stats.Snapshot()
	fmt.Printf("Total message count: %d\n", msgCountTotal)
	fmt.Printf("Skipped message count: %d\n", ps.Skipped)
	fmt.Printf("Engine events: %d (other stocks %d, out of range %d, unknown %d, exhausted %d)\n",
		bs.Events, bs.Ignored, bs.OutOfRange, bs.Unknown, bs.Exhausted)
	fmt.Printf("Trades: %d, volume %d, notional %s\n", es.Trades, es.Volume, es.Notional)
	fmt.Printf("Resting orders: %d bids, %d asks, tracked %d\n", books.Bids().Len(), books.Asks().Len(), bridge.Orders())
	if bid, hasBid, ask, hasAsk := books.Spread(); hasBid || hasAsk {
		fmt.Printf("Best bid %d, best ask %d\n", bid, ask)
	}
	fmt.Printf("Processed file. Time elapsed: %f s.\n", timeElapsed.Seconds())
}
