package matching

import (
	"sync"

	"github.com/cryptonstudio/crypton-tick-engine/types/avl"
)

// Allocator is an object encapsulating tree order book allocations using sync.Pool internally.
type Allocator struct {
	levelCapacity int

	// Price levels
	priceLevels sync.Pool

	// Pools used by containers
	priceLevelNodes sync.Pool // used by avl.Tree[uint32, *PriceLevel]
}

// NewAllocator creates and returns new Allocator instance.
// Price levels are created with given reserved capacity.
func NewAllocator(levelCapacity int) *Allocator {
	a := &Allocator{levelCapacity: levelCapacity}
	a.priceLevels = sync.Pool{New: func() any {
		return NewPriceLevel(a.levelCapacity)
	}}
	a.priceLevelNodes = sync.Pool{New: func() any {
		return new(avl.Node[uint32, *PriceLevel])
	}}
	return a
}

////////////////////////////////////////////////////////////////
// Price levels
////////////////////////////////////////////////////////////////

// GetPriceLevel allocates PriceLevel instance.
func (a *Allocator) GetPriceLevel() *PriceLevel {
	return a.priceLevels.Get().(*PriceLevel)
}

// PutPriceLevel releases PriceLevel instance.
func (a *Allocator) PutPriceLevel(priceLevel *PriceLevel) {
	// Clean up the instance before releasing
	priceLevel.Clean()
	a.priceLevels.Put(priceLevel)
}
