package matching_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"lukechampine.com/uint128"

	matching "github.com/cryptonstudio/crypton-tick-engine/matching"
)

func TestStatisticsNotionalCarry(t *testing.T) {
	stats := matching.NewStatistics()
	trade := matching.Trade{BidOrderID: 1, AskOrderID: 2, Price: ^uint32(0), Quantity: ^uint32(0)}
	for i := 0; i < 3; i++ {
		stats.OnTrade(trade)
	}

	notional := uint128.From64(uint64(trade.Price)).Mul64(uint64(trade.Quantity)).Mul64(3)
	require.NotZero(t, notional.Hi)
	snapshot := stats.Snapshot()
	require.Equal(t, notional, snapshot.Notional)
	require.Equal(t, uint64(3), snapshot.Trades)
	require.Equal(t, 3*uint64(trade.Quantity), snapshot.Volume)
}

func TestStatisticsConcurrentSnapshot(t *testing.T) {
	const count = 50_000

	stats := matching.NewStatistics()
	trade := matching.Trade{BidOrderID: 1, AskOrderID: 2, Price: ^uint32(0), Quantity: ^uint32(0)}
	step := uint64(trade.Price) * uint64(trade.Quantity)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < count; i++ {
			stats.OnTrade(trade)
		}
	}()

	// Both words always come from the same trade
	prev := uint128.Zero
	for i := 0; i < count; i++ {
		notional := stats.Snapshot().Notional
		require.Zero(t, notional.Mod64(step))
		require.True(t, notional.Cmp(prev) >= 0)
		prev = notional
	}
	wg.Wait()

	require.Equal(t, uint128.From64(step).Mul64(count), stats.Snapshot().Notional)
}
