package matching

import "fmt"

// Event is an inbound instruction for the matching engine.
// It is a fixed-size plain value so it can be moved through the lock-free
// queue by copy. Use NewLimitEvent, NewCancelEvent or NewModifyEvent to build
// one of the variants; fields not used by a variant stay zero.
type Event struct {
	seq     uint32
	orderID uint32
	price   uint32
	qty     uint32
	kind    EventKind
	side    OrderSide
}

// NewLimitEvent creates event placing a new limit order.
func NewLimitEvent(seq uint32, side OrderSide, orderID uint32, price uint32, qty uint32) Event {
	return Event{
		seq:     seq,
		orderID: orderID,
		price:   price,
		qty:     qty,
		kind:    EventKindNewLimit,
		side:    side,
	}
}

// NewCancelEvent creates event removing the resting order.
func NewCancelEvent(seq uint32, side OrderSide, orderID uint32) Event {
	return Event{
		seq:     seq,
		orderID: orderID,
		kind:    EventKindCancel,
		side:    side,
	}
}

// NewModifyEvent creates event changing price and quantity of the resting order.
func NewModifyEvent(seq uint32, side OrderSide, orderID uint32, price uint32, qty uint32) Event {
	return Event{
		seq:     seq,
		orderID: orderID,
		price:   price,
		qty:     qty,
		kind:    EventKindModify,
		side:    side,
	}
}

// Seq returns the opaque sequence number assigned by the producer.
func (e Event) Seq() uint32 {
	return e.seq
}

// Kind returns the event kind.
func (e Event) Kind() EventKind {
	return e.kind
}

// Side returns the side of the order the event refers to.
func (e Event) Side() OrderSide {
	return e.side
}

// OrderID returns id of the order the event refers to.
func (e Event) OrderID() uint32 {
	return e.orderID
}

// Price returns the limit price tick (zero for cancel).
func (e Event) Price() uint32 {
	return e.price
}

// Quantity returns the order quantity (zero for cancel).
func (e Event) Quantity() uint32 {
	return e.qty
}

func (e Event) String() string {
	switch e.kind {
	case EventKindCancel:
		return fmt.Sprintf("%s{seq: %d, side: %s, order: %d}", e.kind, e.seq, e.side, e.orderID)
	default:
		return fmt.Sprintf("%s{seq: %d, side: %s, order: %d, price: %d, qty: %d}",
			e.kind, e.seq, e.side, e.orderID, e.price, e.qty)
	}
}
