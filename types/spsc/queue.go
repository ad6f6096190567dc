package spsc

import (
	"context"
	"sync/atomic"

	"golang.org/x/sys/cpu"
)

// Queue is a bounded lock-free ring transporting fixed-size values between
// exactly one producer goroutine and exactly one consumer goroutine.
// Slots are handed out by pointer so records are populated and read in place
// without copying or allocating on the hot path.
// NOTE: Using more than one producer or more than one consumer concurrently is undefined.
type Queue[T any] struct {
	_ cpu.CacheLinePad

	// Producer side
	write      atomic.Uint64 // published write cursor
	cachedRead uint64        // producer copy of the read cursor
	_          cpu.CacheLinePad

	// Consumer side
	read        atomic.Uint64 // published read cursor
	cachedWrite uint64        // consumer copy of the write cursor
	_           cpu.CacheLinePad

	mask  uint64
	slots []T
}

// NewQueue creates and returns new Queue instance with given capacity
// which must be a power of two.
func NewQueue[T any](capacity int) (*Queue[T], error) {
	if capacity <= 0 || capacity&(capacity-1) != 0 {
		return nil, ErrInvalidCapacity
	}
	return &Queue[T]{
		mask:  uint64(capacity - 1),
		slots: make([]T, capacity),
	}, nil
}

////////////////////////////////////////////////////////////////
// Getters
////////////////////////////////////////////////////////////////

// Cap returns the queue capacity.
func (q *Queue[T]) Cap() int {
	return len(q.slots)
}

// Len returns approximate amount of committed but not yet released records.
// It is safe to call from any goroutine, the result is within [0, Cap()].
func (q *Queue[T]) Len() int {
	// Consumer cursor never passes the producer one, so it is loaded first
	read := q.read.Load()
	write := q.write.Load()
	if write < read {
		return 0
	}
	return int(min(write-read, uint64(len(q.slots))))
}

////////////////////////////////////////////////////////////////
// Producer
////////////////////////////////////////////////////////////////

// TryAcquireProducerSlot returns the next free slot or nil if the queue is full.
// The slot must be fully populated before CommitProducerSlot is called.
// Acquiring twice without commit returns the same slot.
func (q *Queue[T]) TryAcquireProducerSlot() *T {
	write := q.write.Load()
	if write-q.cachedRead == uint64(len(q.slots)) {
		// Looks full, refresh the consumer cursor
		q.cachedRead = q.read.Load()
		if write-q.cachedRead == uint64(len(q.slots)) {
			return nil
		}
	}
	return &q.slots[write&q.mask]
}

// CommitProducerSlot publishes the slot returned by the last successful
// TryAcquireProducerSlot making it visible to the consumer.
func (q *Queue[T]) CommitProducerSlot() {
	q.write.Store(q.write.Load() + 1)
}

// AcquireProducerSlot waits until a free slot is available or the context is done.
func (q *Queue[T]) AcquireProducerSlot(ctx context.Context) (*T, error) {
	if slot := q.TryAcquireProducerSlot(); slot != nil {
		return slot, nil
	}
	var backoff Backoff
	done := ctx.Done()
	for {
		select {
		case <-done:
			return nil, ctx.Err()
		default:
		}
		backoff.Pause()
		if slot := q.TryAcquireProducerSlot(); slot != nil {
			return slot, nil
		}
	}
}

// Push copies given value into the next free slot and commits it.
func (q *Queue[T]) Push(ctx context.Context, v T) error {
	slot, err := q.AcquireProducerSlot(ctx)
	if err != nil {
		return err
	}
	*slot = v
	q.CommitProducerSlot()
	return nil
}

////////////////////////////////////////////////////////////////
// Consumer
////////////////////////////////////////////////////////////////

// TryAcquireConsumerSlot returns the oldest committed slot or nil if the queue is empty.
// The slot stays owned by the consumer until ReleaseConsumerSlot is called.
func (q *Queue[T]) TryAcquireConsumerSlot() *T {
	read := q.read.Load()
	if read == q.cachedWrite {
		// Looks empty, refresh the producer cursor
		q.cachedWrite = q.write.Load()
		if read == q.cachedWrite {
			return nil
		}
	}
	return &q.slots[read&q.mask]
}

// ReleaseConsumerSlot frees the slot returned by the last successful
// TryAcquireConsumerSlot for reuse by the producer.
func (q *Queue[T]) ReleaseConsumerSlot() {
	q.read.Store(q.read.Load() + 1)
}

// AcquireConsumerSlot waits until a committed slot is available or the context is done.
func (q *Queue[T]) AcquireConsumerSlot(ctx context.Context) (*T, error) {
	if slot := q.TryAcquireConsumerSlot(); slot != nil {
		return slot, nil
	}
	var backoff Backoff
	done := ctx.Done()
	for {
		select {
		case <-done:
			return nil, ctx.Err()
		default:
		}
		backoff.Pause()
		if slot := q.TryAcquireConsumerSlot(); slot != nil {
			return slot, nil
		}
	}
}

// Pop copies the oldest committed value out of the queue and releases its slot.
func (q *Queue[T]) Pop(ctx context.Context) (v T, err error) {
	slot, err := q.AcquireConsumerSlot(ctx)
	if err != nil {
		return
	}
	v = *slot
	q.ReleaseConsumerSlot()
	return
}
