package udp

import (
	"context"
	"errors"
	"net"
	"os"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/cryptonstudio/crypton-tick-engine/matching"
	"github.com/cryptonstudio/crypton-tick-engine/types/spsc"
)

// defaultPollInterval bounds how long a read may block before the context is checked again.
const defaultPollInterval = 100 * time.Millisecond

// ReceiverStats contains receiver counters.
type ReceiverStats struct {
	Received   uint64
	Malformed  uint64
	Duplicates uint64
	Published  uint64
}

// Receiver reads order packets from a packet connection and publishes
// decoded events into the engine inbound queue. Repeated sequence numbers are dropped.
// Receiver must be the only producer of the queue.
type Receiver struct {
	conn   net.PacketConn
	queue  *spsc.Queue[matching.Event]
	logger *zap.Logger

	dedupe       DedupeWindow
	pollInterval time.Duration

	received   atomic.Uint64
	malformed  atomic.Uint64
	duplicates atomic.Uint64
	published  atomic.Uint64
}

// NewReceiver creates and returns new Receiver instance.
func NewReceiver(conn net.PacketConn, queue *spsc.Queue[matching.Event], logger *zap.Logger) *Receiver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Receiver{
		conn:         conn,
		queue:        queue,
		logger:       logger,
		pollInterval: defaultPollInterval,
	}
}

// Stats returns current receiver counters.
func (r *Receiver) Stats() ReceiverStats {
	return ReceiverStats{
		Received:   r.received.Load(),
		Malformed:  r.malformed.Load(),
		Duplicates: r.duplicates.Load(),
		Published:  r.published.Load(),
	}
}

// Run receives packets until the context is done or the connection fails.
// It returns the context error on stop.
func (r *Receiver) Run(ctx context.Context) error {
	r.logger.Info("receiver started", zap.Stringer("addr", r.conn.LocalAddr()))
	defer r.logger.Info("receiver stopped", zap.Any("stats", r.Stats()))

	buf := make([]byte, 2048)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.conn.SetReadDeadline(time.Now().Add(r.pollInterval)); err != nil {
			return err
		}
		n, addr, err := r.conn.ReadFrom(buf)
		if err != nil {
			if errors.Is(err, os.ErrDeadlineExceeded) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			r.logger.Warn("failed to read packet", zap.Error(err))
			return err
		}
		r.received.Add(1)

		event, err := UnmarshalPacket(buf[:n])
		if err != nil {
			r.malformed.Add(1)
			r.logger.Debug("malformed packet", zap.Stringer("from", addr), zap.Error(err))
			continue
		}
		if r.dedupe.Duplicate(event.Seq()) {
			r.duplicates.Add(1)
			continue
		}

		slot, err := r.queue.AcquireProducerSlot(ctx)
		if err != nil {
			return err
		}
		*slot = event
		r.queue.CommitProducerSlot()
		r.published.Add(1)
	}
}
