package matching

// Order is a resting limit order.
// Price is not stored in the order, it is implied by the price level holding it.
type Order struct {
	id  uint32
	qty uint32
}

// ID returns the order ID.
func (o Order) ID() uint32 {
	return o.id
}

// Quantity returns the remaining order quantity.
func (o Order) Quantity() uint32 {
	return o.qty
}
