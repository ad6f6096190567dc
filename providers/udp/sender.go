package udp

import (
	"context"
	"net"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/cryptonstudio/crypton-tick-engine/matching"
	"github.com/cryptonstudio/crypton-tick-engine/types/spsc"
)

// SenderStats contains sender counters.
type SenderStats struct {
	Sent   uint64
	Failed uint64
}

// Sender drains the engine outbound queue writing every trade as a datagram to the destination.
// Failed writes are logged and the trade is dropped.
// Sender must be the only consumer of the queue.
type Sender struct {
	conn   net.PacketConn
	dst    net.Addr
	queue  *spsc.Queue[matching.Trade]
	logger *zap.Logger

	sent   atomic.Uint64
	failed atomic.Uint64
}

// NewSender creates and returns new Sender instance.
func NewSender(conn net.PacketConn, dst net.Addr, queue *spsc.Queue[matching.Trade], logger *zap.Logger) *Sender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sender{
		conn:   conn,
		dst:    dst,
		queue:  queue,
		logger: logger,
	}
}

// Stats returns current sender counters.
func (s *Sender) Stats() SenderStats {
	return SenderStats{
		Sent:   s.sent.Load(),
		Failed: s.failed.Load(),
	}
}

// Run sends trades until the context is done and returns the context error.
func (s *Sender) Run(ctx context.Context) error {
	s.logger.Info("sender started", zap.Stringer("dst", s.dst))
	defer s.logger.Info("sender stopped", zap.Any("stats", s.Stats()))

	var buf [TradeSize]byte
	for {
		trade, err := s.queue.AcquireConsumerSlot(ctx)
		if err != nil {
			return err
		}
		PutTrade(buf[:], *trade)
		s.queue.ReleaseConsumerSlot()

		if _, err := s.conn.WriteTo(buf[:], s.dst); err != nil {
			s.failed.Add(1)
			s.logger.Warn("failed to send trade", zap.Error(err))
			continue
		}
		s.sent.Add(1)
	}
}
