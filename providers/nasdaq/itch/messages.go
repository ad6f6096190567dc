package itch

import (
	"time"
)

// Message types handled by the processor.
const (
	MessageTypeStockDirectory         = 'R'
	MessageTypeAddOrder               = 'A'
	MessageTypeAddOrderMPID           = 'F'
	MessageTypeOrderExecuted          = 'E'
	MessageTypeOrderExecutedWithPrice = 'C'
	MessageTypeOrderCancel            = 'X'
	MessageTypeOrderDelete            = 'D'
	MessageTypeOrderReplace           = 'U'
)

// Buy/sell indicator values.
const (
	IndicatorBuy  = 'B'
	IndicatorSell = 'S'
)

// Header contains fields common for all messages.
type Header struct {
	Type           byte
	StockLocate    uint16
	TrackingNumber uint16
	Timestamp      time.Duration // since midnight
}

type StockDirectoryMessage struct {
	Header
	Stock          [8]byte
	MarketCategory byte
	RoundLotSize   uint32
	RoundLotsOnly  byte
}

// AddOrderMessage is used for both anonymous ('A') and attributed ('F') orders.
type AddOrderMessage struct {
	Header
	OrderReferenceNumber uint64
	BuySellIndicator     byte
	Shares               uint32
	Stock                [8]byte
	Price                uint32
	Attribution          [4]byte // zero for anonymous orders
}

// OrderExecutedMessage is used for executions both at the order price ('E') and at another price ('C').
type OrderExecutedMessage struct {
	Header
	OrderReferenceNumber uint64
	ExecutedShares       uint32
	MatchNumber          uint64
	Printable            byte   // 'C' only
	ExecutionPrice       uint32 // 'C' only
}

type OrderCancelMessage struct {
	Header
	OrderReferenceNumber uint64
	CanceledShares       uint32
}

type OrderDeleteMessage struct {
	Header
	OrderReferenceNumber uint64
}

type OrderReplaceMessage struct {
	Header
	OriginalOrderReferenceNumber uint64
	NewOrderReferenceNumber      uint64
	Shares                       uint32
	Price                        uint32
}
