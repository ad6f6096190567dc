package udp

import (
	"fmt"

	"github.com/cryptonstudio/crypton-tick-engine/matching"
)

// TradeSize is the size of the outbound trade datagram: bid id, ask id, price and quantity
// as big-endian uint32 values.
const TradeSize = 16

// PutTrade encodes the trade into data which must be at least TradeSize bytes long.
func PutTrade(data []byte, trade matching.Trade) {
	_ = data[TradeSize-1]

	data = writeUint32(data, trade.BidOrderID)
	data = writeUint32(data, trade.AskOrderID)
	data = writeUint32(data, trade.Price)
	writeUint32(data, trade.Quantity)
}

// MarshalTrade encodes the trade into a new datagram.
func MarshalTrade(trade matching.Trade) []byte {
	data := make([]byte, TradeSize)
	PutTrade(data, trade)
	return data
}

// UnmarshalTrade decodes the trade datagram.
func UnmarshalTrade(data []byte) (trade matching.Trade, err error) {
	if len(data) < TradeSize {
		err = fmt.Errorf("%w: %d bytes", ErrShortTrade, len(data))
		return
	}
	trade.BidOrderID, data = readUint32(data)
	trade.AskOrderID, data = readUint32(data)
	trade.Price, data = readUint32(data)
	trade.Quantity, _ = readUint32(data)
	return
}
