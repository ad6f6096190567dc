package matching

import "math/bits"

// levelBits is a bitmap with one bit per price tick telling whether the level is non-empty.
type levelBits []uint64

func newLevelBits(size int) levelBits {
	return make(levelBits, (size+levelBitsWordSize-1)/levelBitsWordSize)
}

func (b levelBits) set(i uint32) {
	b[i/levelBitsWordSize] |= 1 << (i % levelBitsWordSize)
}

func (b levelBits) clear(i uint32) {
	b[i/levelBitsWordSize] &^= 1 << (i % levelBitsWordSize)
}

func (b levelBits) test(i uint32) bool {
	return b[i/levelBitsWordSize]&(1<<(i%levelBitsWordSize)) != 0
}

// highestAtOrBelow returns index of the highest set bit not greater than i.
func (b levelBits) highestAtOrBelow(i uint32) (uint32, bool) {
	word := int(i / levelBitsWordSize)
	w := b[word] & (^uint64(0) >> (levelBitsWordSize - 1 - i%levelBitsWordSize))
	for {
		if w != 0 {
			return uint32(word)*levelBitsWordSize + uint32(levelBitsWordSize-1-bits.LeadingZeros64(w)), true
		}
		word--
		if word < 0 {
			return 0, false
		}
		w = b[word]
	}
}

// lowestAtOrAbove returns index of the lowest set bit not less than i.
func (b levelBits) lowestAtOrAbove(i uint32) (uint32, bool) {
	word := int(i / levelBitsWordSize)
	if word >= len(b) {
		return 0, false
	}
	w := b[word] & (^uint64(0) << (i % levelBitsWordSize))
	for {
		if w != 0 {
			return uint32(word)*levelBitsWordSize + uint32(bits.TrailingZeros64(w)), true
		}
		word++
		if word >= len(b) {
			return 0, false
		}
		w = b[word]
	}
}

func (b levelBits) reset() {
	clear(b)
}
