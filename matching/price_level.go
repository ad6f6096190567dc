package matching

// PriceLevel contains all orders resting at a single price tick.
// Orders are stored densely in arrival order, the most recently added order is the last one.
// Removal from the middle moves the last order into the freed position so the level never has holes.
// NOTE: Not thread-safe.
type PriceLevel struct {
	orders []Order
}

// NewPriceLevel creates and returns new PriceLevel instance with reserved capacity.
func NewPriceLevel(capacity int) *PriceLevel {
	return &PriceLevel{
		orders: make([]Order, 0, capacity),
	}
}

////////////////////////////////////////////////////////////////
// Getters
////////////////////////////////////////////////////////////////

// Len returns amount of orders in the level.
func (pl *PriceLevel) Len() int {
	return len(pl.orders)
}

// Empty returns true if there are no orders in the level.
func (pl *PriceLevel) Empty() bool {
	return len(pl.orders) == 0
}

// Orders returns orders of the level in storage order.
// Returned slice must not be modified and is valid until the level is changed.
func (pl *PriceLevel) Orders() []Order {
	return pl.orders
}

////////////////////////////////////////////////////////////////
// Modifiers
////////////////////////////////////////////////////////////////

// push appends the order and returns its position.
func (pl *PriceLevel) push(order Order) uint32 {
	pl.orders = append(pl.orders, order)
	return uint32(len(pl.orders) - 1)
}

// back returns the last order of the level.
func (pl *PriceLevel) back() *Order {
	return &pl.orders[len(pl.orders)-1]
}

// at returns order at given position.
func (pl *PriceLevel) at(pos uint32) *Order {
	return &pl.orders[pos]
}

// pop removes the last order of the level and returns its id.
func (pl *PriceLevel) pop() uint32 {
	last := len(pl.orders) - 1
	id := pl.orders[last].id
	pl.orders = pl.orders[:last]
	return id
}

// swapRemove removes order at given position replacing it with the last order.
// Returns id of the moved order if any order was moved.
func (pl *PriceLevel) swapRemove(pos uint32) (moved uint32, ok bool) {
	last := uint32(len(pl.orders) - 1)
	if pos != last {
		pl.orders[pos] = pl.orders[last]
		moved, ok = pl.orders[pos].id, true
	}
	pl.orders = pl.orders[:last]
	return
}

// Clean removes all orders keeping allocated storage.
func (pl *PriceLevel) Clean() {
	pl.orders = pl.orders[:0]
}
