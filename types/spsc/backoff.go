package spsc

import (
	"runtime"
	"time"
)

const (
	// backoffSpinLimit is the amount of pauses spent busy spinning.
	backoffSpinLimit = 64
	// backoffYieldLimit is the amount of pauses after which the waiter starts sleeping.
	backoffYieldLimit = 256
	// backoffSleep is the sleep duration used once the yield window is exhausted.
	backoffSleep = time.Microsecond
)

// Backoff implements escalating busy waiting: a window of pure spinning,
// then a window of yielding to the scheduler and then short sleeps.
// Zero value is ready to use.
// NOTE: Not thread-safe, every waiter owns its own instance.
type Backoff struct {
	pauses uint32
}

// Pause waits a bit according to the amount of pauses made since the last reset.
func (b *Backoff) Pause() {
	switch {
	case b.pauses < backoffSpinLimit:
		spin(1 << min(b.pauses/8, 4))
	case b.pauses < backoffYieldLimit:
		runtime.Gosched()
	default:
		time.Sleep(backoffSleep)
	}
	if b.pauses < backoffYieldLimit {
		b.pauses++
	}
}

// Reset returns the backoff to the spinning window.
// Should be called as soon as the awaited progress is made.
func (b *Backoff) Reset() {
	b.pauses = 0
}

// Spinning reports whether the next pause is a pure spin.
func (b *Backoff) Spinning() bool {
	return b.pauses < backoffSpinLimit
}

// spin burns a few cycles without touching shared memory.
//
//go:noinline
func spin(n uint32) (acc uint32) {
	for i := uint32(0); i < n; i++ {
		acc += i
	}
	return
}
