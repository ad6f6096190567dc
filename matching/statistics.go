package matching

import (
	"runtime"
	"sync/atomic"

	"lukechampine.com/uint128"
)

// Statistics is a handler accumulating engine activity counters.
// It is updated by a single goroutine and may be read from any goroutine while the engine is running.
type Statistics struct {
	events  [EventKindModify + 1]atomic.Uint64
	trades  atomic.Uint64
	volume  atomic.Uint64
	ignored atomic.Uint64

	// Sum of price * quantity over all trades, published under a sequence counter
	// which is odd while the two words are being written
	notionalSeq atomic.Uint64
	notionalLo  atomic.Uint64
	notionalHi  atomic.Uint64
}

// StatisticsSnapshot is a point in time copy of Statistics.
type StatisticsSnapshot struct {
	NewLimits uint64
	Cancels   uint64
	Modifies  uint64
	Ignored   uint64
	Trades    uint64
	Volume    uint64
	Notional  uint128.Uint128
}

// Events returns total amount of events.
func (s StatisticsSnapshot) Events() uint64 {
	return s.NewLimits + s.Cancels + s.Modifies + s.Ignored
}

// NewStatistics creates and returns new Statistics instance.
func NewStatistics() *Statistics {
	return &Statistics{}
}

// OnEvent implements Handler.
func (s *Statistics) OnEvent(event Event) {
	if !event.Kind().Valid() || !event.Side().Valid() {
		s.ignored.Add(1)
		return
	}
	s.events[event.Kind()].Add(1)
}

// OnTrade implements Handler.
func (s *Statistics) OnTrade(trade Trade) {
	s.trades.Add(1)
	s.volume.Add(uint64(trade.Quantity))

	notional := uint128.New(s.notionalLo.Load(), s.notionalHi.Load()).
		AddWrap(uint128.From64(uint64(trade.Price)).Mul64(uint64(trade.Quantity)))
	s.notionalSeq.Add(1)
	s.notionalLo.Store(notional.Lo)
	s.notionalHi.Store(notional.Hi)
	s.notionalSeq.Add(1)
}

// Snapshot returns current counters.
func (s *Statistics) Snapshot() StatisticsSnapshot {
	notional := s.loadNotional()

	return StatisticsSnapshot{
		NewLimits: s.events[EventKindNewLimit].Load(),
		Cancels:   s.events[EventKindCancel].Load(),
		Modifies:  s.events[EventKindModify].Load(),
		Ignored:   s.ignored.Load(),
		Trades:    s.trades.Load(),
		Volume:    s.volume.Load(),
		Notional:  notional,
	}
}

func (s *Statistics) loadNotional() uint128.Uint128 {
	for {
		seq := s.notionalSeq.Load()
		if seq&1 == 0 {
			notional := uint128.New(s.notionalLo.Load(), s.notionalHi.Load())
			if s.notionalSeq.Load() == seq {
				return notional
			}
		}
		runtime.Gosched()
	}
}
