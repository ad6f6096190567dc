package udp

// DedupeWindowSize is the amount of most recent sequence numbers remembered by DedupeWindow.
const DedupeWindowSize = 4096

// DedupeWindow detects repeated sequence numbers within a sliding window.
// Sequence numbers older than the window are always reported as duplicates.
// NOTE: Not thread-safe.
type DedupeWindow struct {
	seen [DedupeWindowSize]bool
	base uint32 // oldest tracked sequence number
}

// Duplicate returns true if the sequence number was seen already or is too old.
// Otherwise the sequence number is remembered, sliding the window forward if needed.
func (w *DedupeWindow) Duplicate(seq uint32) bool {
	if seq < w.base {
		return true
	}
	if uint64(seq) >= uint64(w.base)+DedupeWindowSize {
		newBase := seq - (DedupeWindowSize - 1)
		if newBase-w.base >= DedupeWindowSize {
			// Whole window is vacated
			w.seen = [DedupeWindowSize]bool{}
		} else {
			for s := w.base; s != newBase; s++ {
				w.seen[s%DedupeWindowSize] = false
			}
		}
		w.base = newBase
	}
	idx := seq % DedupeWindowSize
	if w.seen[idx] {
		return true
	}
	w.seen[idx] = true
	return false
}

// Base returns the oldest sequence number still tracked.
func (w *DedupeWindow) Base() uint32 {
	return w.base
}

// Reset forgets all sequence numbers.
func (w *DedupeWindow) Reset() {
	*w = DedupeWindow{}
}
