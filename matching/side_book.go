package matching

// SideBook contains resting orders of a single market side.
// Best price is the highest for bids and the lowest for asks.
// Within a price level the most recently added order is matched first.
type SideBook interface {
	// Side returns the market side of the book.
	Side() OrderSide
	// Len returns amount of resting orders.
	Len() int
	// Levels returns amount of non-empty price levels.
	Levels() int

	// NewLimit places the order. Orders with out of range price or id are ignored,
	// as well as orders with id which is already resting.
	NewLimit(id uint32, price uint32, qty uint32)
	// Cancel removes the resting order. Unknown ids are ignored.
	Cancel(id uint32)
	// Modify updates quantity in place if the price is unchanged,
	// otherwise the order is cancelled and placed again at the new price.
	Modify(id uint32, price uint32, qty uint32)

	// BestPrice returns the best price if the book is not empty.
	BestPrice() (uint32, bool)
	// BestOrder returns the order matched next and its price.
	// Returned pointer is valid until the book is modified.
	BestOrder() (*Order, uint32, bool)
	// RemoveBest removes the order returned by BestOrder.
	RemoveBest(price uint32)

	// Order returns the resting order and its price.
	Order(id uint32) (Order, uint32, bool)
	// Depth iterates non-empty price levels from the best price, returning true from f stops iteration.
	// Orders are passed in storage order, the last one is matched first.
	Depth(f func(price uint32, orders []Order) bool)

	// Clean removes all orders from the book.
	Clean()
}
