package matching

import (
	"fmt"
)

// orderSlot is the direct-indexed location of a resting order.
type orderSlot struct {
	price uint32
	pos   uint32
	used  bool
}

// Book is a single side order book with one pre-allocated price level per tick.
// Non-empty levels are tracked with a bitmap so the next best level is found
// with a couple of word scans. Orders are located by id with a direct index.
// NOTE: Not thread-safe.
type Book struct {
	side OrderSide

	minPrice   uint32
	maxPrice   uint32
	maxOrderID uint32

	// Price levels, one per tick starting from minPrice
	levels []PriceLevel
	bits   levelBits

	// Orders index, one slot per possible order id
	index []orderSlot

	// Cached best price, re-scanned lazily when invalid
	best    uint32
	hasBest bool

	orders      int
	levelsCount int
}

// NewBook creates and returns new Book instance for given side.
// Memory for all price levels and order slots is allocated upfront.
func NewBook(side OrderSide, config Config) *Book {
	levelsTotal := config.PriceLevels()
	reserved := int(config.MaxOrderID)/levelsTotal + 1

	b := &Book{
		side:       side,
		minPrice:   config.MinPrice,
		maxPrice:   config.MaxPrice,
		maxOrderID: config.MaxOrderID,
		levels:     make([]PriceLevel, levelsTotal),
		bits:       newLevelBits(levelsTotal),
		index:      make([]orderSlot, int(config.MaxOrderID)+1),
	}
	for i := range b.levels {
		b.levels[i].orders = make([]Order, 0, reserved)
	}
	return b
}

////////////////////////////////////////////////////////////////
// Getters
////////////////////////////////////////////////////////////////

// Side returns the market side of the book.
func (b *Book) Side() OrderSide {
	return b.side
}

// Len returns amount of resting orders.
func (b *Book) Len() int {
	return b.orders
}

// Levels returns amount of non-empty price levels.
func (b *Book) Levels() int {
	return b.levelsCount
}

// Order returns the resting order and its price.
func (b *Book) Order(id uint32) (Order, uint32, bool) {
	if !b.validOrderID(id) || !b.index[id].used {
		return Order{}, 0, false
	}
	slot := b.index[id]
	return *b.level(slot.price).at(slot.pos), slot.price, true
}

// BestPrice returns the best price if the book is not empty.
func (b *Book) BestPrice() (uint32, bool) {
	if !b.hasBest {
		if !b.findBestFrom(b.outermostPrice()) {
			return 0, false
		}
	}
	return b.best, true
}

// BestOrder returns the order matched next and its price.
func (b *Book) BestOrder() (*Order, uint32, bool) {
	price, ok := b.BestPrice()
	if !ok {
		return nil, 0, false
	}
	level := b.level(price)
	if level.Empty() {
		// Cached best price went stale, resolve it once more
		if !b.findBestFrom(price) {
			return nil, 0, false
		}
		price = b.best
		level = b.level(price)
		if level.Empty() {
			return nil, 0, false
		}
	}
	return level.back(), price, true
}

// Depth iterates non-empty price levels from the best price.
func (b *Book) Depth(f func(price uint32, orders []Order) bool) {
	price, ok := b.BestPrice()
	for ok {
		if f(price, b.level(price).Orders()) {
			return
		}
		price, ok = b.nextPrice(price)
	}
}

////////////////////////////////////////////////////////////////
// Modifiers
////////////////////////////////////////////////////////////////

// NewLimit places the order at given price.
func (b *Book) NewLimit(id uint32, price uint32, qty uint32) {
	if !b.validOrderID(id) || !b.validPrice(price) {
		return
	}
	if b.index[id].used {
		return
	}

	level := b.level(price)
	pos := level.push(Order{id: id, qty: qty})
	b.index[id] = orderSlot{price: price, pos: pos, used: true}
	b.orders++

	if level.Len() == 1 {
		b.bits.set(price - b.minPrice)
		b.levelsCount++
	}
	if b.hasBest && b.better(price, b.best) {
		b.best = price
	}
}

// Cancel removes the resting order.
func (b *Book) Cancel(id uint32) {
	if !b.validOrderID(id) || !b.index[id].used {
		return
	}
	slot := b.index[id]
	b.index[id].used = false
	b.orders--

	level := b.level(slot.price)
	if moved, ok := level.swapRemove(slot.pos); ok {
		b.index[moved].pos = slot.pos
	}
	if level.Empty() {
		b.releaseLevel(slot.price)
	}
}

// Modify changes quantity in place or moves the order to the new price.
// Moving to out of range price removes the order.
func (b *Book) Modify(id uint32, price uint32, qty uint32) {
	if !b.validOrderID(id) || !b.index[id].used {
		return
	}
	slot := b.index[id]
	if slot.price == price {
		b.level(price).at(slot.pos).qty = qty
		return
	}
	b.Cancel(id)
	b.NewLimit(id, price, qty)
}

// RemoveBest removes the last order of the level at given price.
func (b *Book) RemoveBest(price uint32) {
	if !b.validPrice(price) {
		return
	}
	level := b.level(price)
	if level.Empty() {
		return
	}
	id := level.pop()
	if b.validOrderID(id) {
		b.index[id].used = false
	}
	b.orders--
	if level.Empty() {
		b.releaseLevel(price)
	}
}

// Clean removes all orders from the book keeping allocated memory.
func (b *Book) Clean() {
	b.Depth(func(price uint32, orders []Order) bool {
		for _, o := range orders {
			b.index[o.id].used = false
		}
		b.level(price).Clean()
		return false
	})
	b.bits.reset()
	b.best, b.hasBest = 0, false
	b.orders, b.levelsCount = 0, 0
}

// Validate checks internal consistency of the book.
// It walks over all levels so it is intended for tests and diagnostics only.
func (b *Book) Validate() error {
	orders, levels := 0, 0
	for i := range b.levels {
		price := b.minPrice + uint32(i)
		level := &b.levels[i]
		if level.Empty() == b.bits.test(uint32(i)) {
			return fmt.Errorf("%w: level %d bitmap mismatch", ErrBookInconsistent, price)
		}
		if level.Empty() {
			continue
		}
		levels++
		for pos, o := range level.orders {
			if !b.validOrderID(o.id) {
				return fmt.Errorf("%w: order %d out of range", ErrBookInconsistent, o.id)
			}
			slot := b.index[o.id]
			if !slot.used || slot.price != price || slot.pos != uint32(pos) {
				return fmt.Errorf("%w: order %d index mismatch", ErrBookInconsistent, o.id)
			}
			orders++
		}
	}
	if orders != b.orders || levels != b.levelsCount {
		return fmt.Errorf("%w: counters mismatch", ErrBookInconsistent)
	}
	used := 0
	for i := range b.index {
		if b.index[i].used {
			used++
		}
	}
	if used != orders {
		return fmt.Errorf("%w: %d indexed orders but %d resting", ErrBookInconsistent, used, orders)
	}
	if b.hasBest {
		if expected, ok := b.scanBest(); !ok || expected != b.best {
			return fmt.Errorf("%w: cached best price %d is stale", ErrBookInconsistent, b.best)
		}
	}
	return nil
}

////////////////////////////////////////////////////////////////
// Internal methods
////////////////////////////////////////////////////////////////

func (b *Book) level(price uint32) *PriceLevel {
	return &b.levels[price-b.minPrice]
}

func (b *Book) validPrice(price uint32) bool {
	return price >= b.minPrice && price <= b.maxPrice
}

func (b *Book) validOrderID(id uint32) bool {
	return id != 0 && id <= b.maxOrderID
}

// better returns true if price a is better than price b for the book side.
func (b *Book) better(a, c uint32) bool {
	if b.side == OrderSideBuy {
		return a > c
	}
	return a < c
}

// outermostPrice returns the price scan for the best level starts from.
func (b *Book) outermostPrice() uint32 {
	if b.side == OrderSideBuy {
		return b.maxPrice
	}
	return b.minPrice
}

// releaseLevel marks the level at given price as empty and refreshes cached best price.
func (b *Book) releaseLevel(price uint32) {
	b.bits.clear(price - b.minPrice)
	b.levelsCount--
	if !b.hasBest || price != b.best {
		return
	}
	if next, ok := b.nextPrice(price); ok {
		b.best = next
	} else {
		b.hasBest = false
	}
}

// nextPrice returns the nearest non-empty level worse than given price.
func (b *Book) nextPrice(price uint32) (uint32, bool) {
	if b.side == OrderSideBuy {
		if price <= b.minPrice {
			return 0, false
		}
		i, ok := b.bits.highestAtOrBelow(price - 1 - b.minPrice)
		return b.minPrice + i, ok
	}
	if price >= b.maxPrice {
		return 0, false
	}
	i, ok := b.bits.lowestAtOrAbove(price + 1 - b.minPrice)
	return b.minPrice + i, ok
}

// findBestFrom scans for the best non-empty level starting at given price (inclusive)
// towards worse prices and caches the result.
func (b *Book) findBestFrom(start uint32) bool {
	if start < b.minPrice {
		start = b.minPrice
	}
	if start > b.maxPrice {
		start = b.maxPrice
	}
	var (
		i  uint32
		ok bool
	)
	if b.side == OrderSideBuy {
		i, ok = b.bits.highestAtOrBelow(start - b.minPrice)
	} else {
		i, ok = b.bits.lowestAtOrAbove(start - b.minPrice)
	}
	b.best, b.hasBest = b.minPrice+i, ok
	if !ok {
		b.best = 0
	}
	return ok
}

// scanBest finds the best price by looking at every level.
func (b *Book) scanBest() (uint32, bool) {
	found, best := false, uint32(0)
	for i := range b.levels {
		if b.levels[i].Empty() {
			continue
		}
		price := b.minPrice + uint32(i)
		if !found || b.better(price, best) {
			found, best = true, price
		}
	}
	return best, found
}
