package main

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/cryptonstudio/crypton-tick-engine/matching"
	"github.com/cryptonstudio/crypton-tick-engine/providers/udp"
)

// logStatistics periodically logs engine and transport counters until the context is done.
func logStatistics(ctx context.Context, interval time.Duration, stats *matching.Statistics, receiver *udp.Receiver, sender *udp.Sender, logger *zap.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	prev := stats.Snapshot()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		curr := stats.Snapshot()
		rs, ss := receiver.Stats(), sender.Stats()
		eventsRate := float64(curr.Events()-prev.Events()) / interval.Seconds()
		tradesRate := float64(curr.Trades-prev.Trades) / interval.Seconds()
		prev = curr

		logger.Info("statistics",
			zap.Uint64("new_limits", curr.NewLimits),
			zap.Uint64("cancels", curr.Cancels),
			zap.Uint64("modifies", curr.Modifies),
			zap.Uint64("ignored", curr.Ignored),
			zap.Uint64("trades", curr.Trades),
			zap.Uint64("volume", curr.Volume),
			zap.Stringer("notional", curr.Notional),
			zap.Float64("events_per_second", eventsRate),
			zap.Float64("trades_per_second", tradesRate),
			zap.Uint64("packets_received", rs.Received),
			zap.Uint64("packets_malformed", rs.Malformed),
			zap.Uint64("packets_duplicate", rs.Duplicates),
			zap.Uint64("trades_sent", ss.Sent),
			zap.Uint64("trades_failed", ss.Failed),
		)
	}
}
