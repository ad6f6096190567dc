package main

import (
	"bytes"
	"context"

	"github.com/tidwall/hashmap"

	"github.com/cryptonstudio/crypton-tick-engine/matching"
	"github.com/cryptonstudio/crypton-tick-engine/providers/nasdaq/itch"
)

// BridgeStats contains bridge counters.
type BridgeStats struct {
	Events     uint64 // events passed to the engine
	Ignored    uint64 // messages of other stocks
	OutOfRange uint64 // orders with price outside of the configured range
	Unknown    uint64 // messages referring to unknown orders
	Exhausted  uint64 // orders dropped because all order ids are in use
}

type bridgeOrder struct {
	id    uint32
	side  matching.OrderSide
	price uint32
}

// Bridge replays ITCH order messages of a single stock into the matching engine.
// Order reference numbers are mapped to recycled engine order ids.
// NOTE: Not thread-safe, books are read from the calling goroutine.
type Bridge struct {
	ctx    context.Context
	engine *matching.Engine
	config matching.Config

	stock      [8]byte
	locate     uint16
	located    bool
	priceScale uint32

	orders  *hashmap.Map[uint64, bridgeOrder]
	freeIDs []uint32
	nextID  uint32
	seq     uint32

	messages [256]uint64
	stats    BridgeStats
}

var _ itch.Handler = &Bridge{}

// NewBridge creates and returns new Bridge instance.
// ITCH prices are divided by priceScale to get engine price ticks.
func NewBridge(ctx context.Context, engine *matching.Engine, stock string, priceScale uint32) *Bridge {
	b := &Bridge{
		ctx:        ctx,
		engine:     engine,
		config:     engine.Config(),
		priceScale: max(priceScale, 1),
		orders:     hashmap.New[uint64, bridgeOrder](1024),
	}
	b.stock = [8]byte{' ', ' ', ' ', ' ', ' ', ' ', ' ', ' '}
	copy(b.stock[:], stock)
	return b
}

// Stats returns bridge counters.
func (b *Bridge) Stats() BridgeStats {
	return b.stats
}

// Messages returns amount of received messages per message type.
func (b *Bridge) Messages() [256]uint64 {
	return b.messages
}

// Orders returns amount of tracked orders.
func (b *Bridge) Orders() int {
	return b.orders.Len()
}

func (b *Bridge) OnStockDirectoryMessage(msg itch.StockDirectoryMessage) error {
	b.messages[msg.Type]++
	if bytes.Equal(msg.Stock[:], b.stock[:]) {
		b.locate = msg.StockLocate
		b.located = true
	}
	return nil
}

func (b *Bridge) OnAddOrderMessage(msg itch.AddOrderMessage) error {
	if !b.accept(msg.Header) {
		return nil
	}
	var side matching.OrderSide
	switch msg.BuySellIndicator {
	case itch.IndicatorBuy:
		side = matching.OrderSideBuy
	case itch.IndicatorSell:
		side = matching.OrderSideSell
	default:
		b.stats.Unknown++
		return nil
	}
	return b.add(msg.OrderReferenceNumber, side, msg.Price, msg.Shares)
}

func (b *Bridge) OnOrderExecutedMessage(msg itch.OrderExecutedMessage) error {
	if !b.accept(msg.Header) {
		return nil
	}
	return b.reduce(msg.OrderReferenceNumber, msg.ExecutedShares)
}

func (b *Bridge) OnOrderCancelMessage(msg itch.OrderCancelMessage) error {
	if !b.accept(msg.Header) {
		return nil
	}
	return b.reduce(msg.OrderReferenceNumber, msg.CanceledShares)
}

func (b *Bridge) OnOrderDeleteMessage(msg itch.OrderDeleteMessage) error {
	if !b.accept(msg.Header) {
		return nil
	}
	order, ok := b.orders.Get(msg.OrderReferenceNumber)
	if !ok {
		b.stats.Unknown++
		return nil
	}
	return b.remove(msg.OrderReferenceNumber, order)
}

func (b *Bridge) OnOrderReplaceMessage(msg itch.OrderReplaceMessage) error {
	if !b.accept(msg.Header) {
		return nil
	}
	order, ok := b.orders.Get(msg.OriginalOrderReferenceNumber)
	if !ok {
		b.stats.Unknown++
		return nil
	}
	if err := b.remove(msg.OriginalOrderReferenceNumber, order); err != nil {
		return err
	}
	return b.add(msg.NewOrderReferenceNumber, order.side, msg.Price, msg.Shares)
}

// accept counts the message and reports whether it belongs to the replayed stock.
func (b *Bridge) accept(header itch.Header) bool {
	b.messages[header.Type]++
	if !b.located || header.StockLocate != b.locate {
		b.stats.Ignored++
		return false
	}
	return true
}

func (b *Bridge) add(ref uint64, side matching.OrderSide, itchPrice uint32, shares uint32) error {
	price := itchPrice / b.priceScale
	if !b.config.ValidPrice(price) {
		b.stats.OutOfRange++
		return nil
	}
	id, ok := b.allocateID()
	if !ok {
		b.stats.Exhausted++
		return nil
	}
	b.orders.Set(ref, bridgeOrder{id: id, side: side, price: price})
	return b.process(matching.NewLimitEvent(b.nextSeq(), side, id, price, shares))
}

// reduce decreases quantity of the order, removing it once nothing is left.
// Quantity is taken from the book since the order may be partially filled by the engine.
func (b *Bridge) reduce(ref uint64, shares uint32) error {
	order, ok := b.orders.Get(ref)
	if !ok {
		b.stats.Unknown++
		return nil
	}
	resting, _, ok := b.engine.Books().Book(order.side).Order(order.id)
	if !ok || resting.Quantity() <= shares {
		return b.remove(ref, order)
	}
	qty := resting.Quantity() - shares
	return b.process(matching.NewModifyEvent(b.nextSeq(), order.side, order.id, order.price, qty))
}

func (b *Bridge) remove(ref uint64, order bridgeOrder) error {
	b.orders.Delete(ref)
	b.freeIDs = append(b.freeIDs, order.id)
	return b.process(matching.NewCancelEvent(b.nextSeq(), order.side, order.id))
}

func (b *Bridge) allocateID() (uint32, bool) {
	if n := len(b.freeIDs); n > 0 {
		id := b.freeIDs[n-1]
		b.freeIDs = b.freeIDs[:n-1]
		return id, true
	}
	if b.nextID >= b.config.MaxOrderID {
		return 0, false
	}
	b.nextID++
	return b.nextID, true
}

func (b *Bridge) nextSeq() uint32 {
	b.seq++
	return b.seq
}

func (b *Bridge) process(event matching.Event) error {
	b.stats.Events++
	return b.engine.Process(b.ctx, event)
}
