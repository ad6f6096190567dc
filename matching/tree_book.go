package matching

import (
	"fmt"

	"github.com/tidwall/hashmap"
	"gopkg.in/typ.v4"

	"github.com/cryptonstudio/crypton-tick-engine/types/avl"
)

// orderLocation is the location of a resting order in the tree book.
type orderLocation struct {
	price uint32
	pos   uint32
}

// TreeBook is a single side order book keeping only non-empty price levels
// in a balanced tree ordered from the best price. Orders are located by id with a hash map.
// It follows the same rules as Book and uses memory proportional to the amount of resting orders.
// NOTE: Not thread-safe.
type TreeBook struct {
	// Allocator used by the order book
	allocator *Allocator

	side       OrderSide
	minPrice   uint32
	maxPrice   uint32
	maxOrderID uint32

	// Price levels, the most left one is the best
	levels avl.Tree[uint32, *PriceLevel]

	// Orders index
	orders *hashmap.Map[uint32, orderLocation]
}

// NewTreeBook creates and returns new TreeBook instance for given side.
func NewTreeBook(allocator *Allocator, side OrderSide, config Config) *TreeBook {
	compare := typ.Compare[uint32]
	if side == OrderSideBuy {
		compare = func(a, b uint32) int { return typ.Compare(b, a) }
	}
	return &TreeBook{
		allocator:  allocator,
		side:       side,
		minPrice:   config.MinPrice,
		maxPrice:   config.MaxPrice,
		maxOrderID: config.MaxOrderID,
		levels:     avl.NewTreePooled[uint32, *PriceLevel](compare, &allocator.priceLevelNodes),
		orders:     hashmap.New[uint32, orderLocation](defaultReservedOrderSlots),
	}
}

////////////////////////////////////////////////////////////////
// Getters
////////////////////////////////////////////////////////////////

// Side returns the market side of the book.
func (tb *TreeBook) Side() OrderSide {
	return tb.side
}

// Len returns amount of resting orders.
func (tb *TreeBook) Len() int {
	return tb.orders.Len()
}

// Levels returns amount of non-empty price levels.
func (tb *TreeBook) Levels() int {
	return tb.levels.Size()
}

// Order returns the resting order and its price.
func (tb *TreeBook) Order(id uint32) (Order, uint32, bool) {
	loc, ok := tb.orders.Get(id)
	if !ok {
		return Order{}, 0, false
	}
	return *tb.levels.Find(loc.price).Value().at(loc.pos), loc.price, true
}

// BestPrice returns the best price if the book is not empty.
func (tb *TreeBook) BestPrice() (uint32, bool) {
	node := tb.levels.MostLeft()
	if node == nil {
		return 0, false
	}
	return node.Key(), true
}

// BestOrder returns the order matched next and its price.
func (tb *TreeBook) BestOrder() (*Order, uint32, bool) {
	node := tb.levels.MostLeft()
	if node == nil {
		return nil, 0, false
	}
	return node.Value().back(), node.Key(), true
}

// Depth iterates non-empty price levels from the best price.
func (tb *TreeBook) Depth(f func(price uint32, orders []Order) bool) {
	tb.levels.IterateInOrder(func(price uint32, level *PriceLevel) bool {
		return f(price, level.Orders())
	})
}

////////////////////////////////////////////////////////////////
// Modifiers
////////////////////////////////////////////////////////////////

// NewLimit places the order at given price.
func (tb *TreeBook) NewLimit(id uint32, price uint32, qty uint32) {
	if id == 0 || id > tb.maxOrderID || price < tb.minPrice || price > tb.maxPrice {
		return
	}
	if _, ok := tb.orders.Get(id); ok {
		return
	}

	var level *PriceLevel
	if node := tb.levels.Find(price); node != nil {
		level = node.Value()
	} else {
		level = tb.allocator.GetPriceLevel()
		if _, err := tb.levels.Add(price, level); err != nil {
			panic(fmt.Errorf("failed to add price level %d: %w", price, err))
		}
	}
	pos := level.push(Order{id: id, qty: qty})
	tb.orders.Set(id, orderLocation{price: price, pos: pos})
}

// Cancel removes the resting order.
func (tb *TreeBook) Cancel(id uint32) {
	loc, ok := tb.orders.Delete(id)
	if !ok {
		return
	}
	level := tb.levels.Find(loc.price).Value()
	if moved, ok := level.swapRemove(loc.pos); ok {
		tb.orders.Set(moved, loc)
	}
	if level.Empty() {
		tb.deleteLevel(loc.price)
	}
}

// Modify changes quantity in place or moves the order to the new price.
func (tb *TreeBook) Modify(id uint32, price uint32, qty uint32) {
	loc, ok := tb.orders.Get(id)
	if !ok {
		return
	}
	if loc.price == price {
		tb.levels.Find(price).Value().at(loc.pos).qty = qty
		return
	}
	tb.Cancel(id)
	tb.NewLimit(id, price, qty)
}

// RemoveBest removes the last order of the level at given price.
func (tb *TreeBook) RemoveBest(price uint32) {
	node := tb.levels.Find(price)
	if node == nil {
		return
	}
	level := node.Value()
	tb.orders.Delete(level.pop())
	if level.Empty() {
		tb.deleteLevel(price)
	}
}

// Clean releases all price levels and removes all orders.
func (tb *TreeBook) Clean() {
	tb.levels.IteratePostOrder(func(level *PriceLevel) {
		tb.allocator.PutPriceLevel(level)
	})
	tb.levels.Clear()
	tb.orders = hashmap.New[uint32, orderLocation](defaultReservedOrderSlots)
}

func (tb *TreeBook) deleteLevel(price uint32) {
	level, err := tb.levels.Remove(price)
	if err != nil {
		panic(fmt.Errorf("failed to remove price level %d: %w", price, err))
	}
	tb.allocator.PutPriceLevel(level)
}
