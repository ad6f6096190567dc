package udp

import (
	"fmt"

	"github.com/cryptonstudio/crypton-tick-engine/matching"
)

// PacketSize is the size of the inbound order packet.
//
// Layout (big-endian):
//
//	seq      uint32
//	order_id uint32
//	price    uint32
//	qty      uint32
//	msg_type uint8  1 new limit, 2 cancel, 3 modify
//	side     uint8  0 sell, 1 buy
const PacketSize = 18

// Wire values of the side field.
const (
	wireSideSell = 0
	wireSideBuy  = 1
)

// UnmarshalPacket decodes the order packet into an engine event.
// Extra bytes after the packet are ignored.
func UnmarshalPacket(data []byte) (event matching.Event, err error) {
	if len(data) < PacketSize {
		err = fmt.Errorf("%w: %d bytes", ErrShortPacket, len(data))
		return
	}

	var seq, orderID, price, qty uint32
	var msgType, wireSide byte
	seq, data = readUint32(data)
	orderID, data = readUint32(data)
	price, data = readUint32(data)
	qty, data = readUint32(data)
	msgType, data = readByte(data)
	wireSide, _ = readByte(data)

	kind := matching.EventKind(msgType)
	if !kind.Valid() {
		err = fmt.Errorf("%w: %d", ErrInvalidMessageType, msgType)
		return
	}

	var side matching.OrderSide
	switch wireSide {
	case wireSideSell:
		side = matching.OrderSideSell
	case wireSideBuy:
		side = matching.OrderSideBuy
	default:
		err = fmt.Errorf("%w: %d", ErrInvalidSide, wireSide)
		return
	}

	switch kind {
	case matching.EventKindNewLimit:
		event = matching.NewLimitEvent(seq, side, orderID, price, qty)
	case matching.EventKindCancel:
		event = matching.NewCancelEvent(seq, side, orderID)
	case matching.EventKindModify:
		event = matching.NewModifyEvent(seq, side, orderID, price, qty)
	}
	return
}

// PutPacket encodes the event into data which must be at least PacketSize bytes long.
func PutPacket(data []byte, event matching.Event) {
	_ = data[PacketSize-1]

	wireSide := byte(wireSideSell)
	if event.Side() == matching.OrderSideBuy {
		wireSide = wireSideBuy
	}
	data = writeUint32(data, event.Seq())
	data = writeUint32(data, event.OrderID())
	data = writeUint32(data, event.Price())
	data = writeUint32(data, event.Quantity())
	data[0] = byte(event.Kind())
	data[1] = wireSide
}

// MarshalPacket encodes the event into a new packet.
func MarshalPacket(event matching.Event) []byte {
	data := make([]byte, PacketSize)
	PutPacket(data, event)
	return data
}
