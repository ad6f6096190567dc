package matching

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/cryptonstudio/crypton-tick-engine/types/spsc"
)

// Engine is the single instrument matching engine.
// Events are consumed from the inbound queue, applied to the order books and
// crossing trades are published to the outbound queue.
// NOTE: Books must be touched only by the goroutine running the engine.
type Engine struct {
	config  Config
	handler Handler
	books   *Books

	inbound  *spsc.Queue[Event]
	outbound *spsc.Queue[Trade]

	// Automatic matching
	matching bool

	running atomic.Bool
}

// NewEngine creates and returns new Engine instance with bitmap order books.
func NewEngine(config Config, handler Handler) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return NewEngineWithBooks(config, NewBooks(config), handler)
}

// NewEngineWithBooks creates and returns new Engine instance using given order books.
func NewEngineWithBooks(config Config, books *Books, handler Handler) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	inbound, err := spsc.NewQueue[Event](config.InboundCapacity)
	if err != nil {
		return nil, fmt.Errorf("inbound queue: %w", err)
	}
	outbound, err := spsc.NewQueue[Trade](config.OutboundCapacity)
	if err != nil {
		return nil, fmt.Errorf("outbound queue: %w", err)
	}
	if handler == nil {
		handler = NopHandler{}
	}
	return &Engine{
		config:   config,
		handler:  handler,
		books:    books,
		inbound:  inbound,
		outbound: outbound,
		matching: true,
	}, nil
}

////////////////////////////////////////////////////////////////
// Getters
////////////////////////////////////////////////////////////////

// Config returns the engine configuration.
func (e *Engine) Config() Config {
	return e.config
}

// Books returns the order books.
func (e *Engine) Books() *Books {
	return e.books
}

// Inbound returns the queue events are consumed from.
// Exactly one goroutine may produce to it.
func (e *Engine) Inbound() *spsc.Queue[Event] {
	return e.inbound
}

// Outbound returns the queue trades are published to.
// Exactly one goroutine may consume from it.
func (e *Engine) Outbound() *spsc.Queue[Trade] {
	return e.outbound
}

// IsMatchingEnabled returns true if automatic matching is enabled.
func (e *Engine) IsMatchingEnabled() bool {
	return e.matching
}

////////////////////////////////////////////////////////////////
// Running
////////////////////////////////////////////////////////////////

// Run consumes the inbound queue until the context is done.
// It returns the context error. An event interrupted while crossing stays applied
// and is not consumed again, the books remain crossed until the next Match or event.
func (e *Engine) Run(ctx context.Context) error {
	if !e.running.CompareAndSwap(false, true) {
		return ErrEngineRunning
	}
	defer e.running.Store(false)

	for {
		slot, err := e.inbound.AcquireConsumerSlot(ctx)
		if err != nil {
			return err
		}
		event := *slot
		e.inbound.ReleaseConsumerSlot()
		if err := e.Process(ctx, event); err != nil {
			return err
		}
	}
}

// Process applies the event to the order books and matches them while they are crossed.
// Events with unknown kind or side leave the books unchanged.
// Fails only if the context is done while waiting for outbound queue space.
func (e *Engine) Process(ctx context.Context, event Event) error {
	if book := e.books.Book(event.side); book != nil {
		switch event.kind {
		case EventKindNewLimit:
			book.NewLimit(event.orderID, event.price, event.qty)
		case EventKindCancel:
			book.Cancel(event.orderID)
		case EventKindModify:
			book.Modify(event.orderID, event.price, event.qty)
		}
	}
	e.handler.OnEvent(event)

	if !e.matching {
		return nil
	}
	return e.match(ctx, event.side)
}

// EnableMatching enables automatic matching and matches the books right away.
func (e *Engine) EnableMatching(ctx context.Context) error {
	e.matching = true
	return e.Match(ctx)
}

// DisableMatching disables automatic matching, events only change the books.
func (e *Engine) DisableMatching() {
	e.matching = false
}

// Match matches the order books while they are crossed.
// Without an aggressor the trade price is the best bid price.
func (e *Engine) Match(ctx context.Context) error {
	return e.match(ctx, 0)
}

////////////////////////////////////////////////////////////////
// Matching
////////////////////////////////////////////////////////////////

// match crosses the best bid and the best ask while bid price is not lower than ask price.
// Trades are priced at the resting side: the best ask for buy takers, the best bid otherwise.
func (e *Engine) match(ctx context.Context, taker OrderSide) error {
	bids, asks := e.books.bids, e.books.asks
	for {
		bid, bidPrice, ok := bids.BestOrder()
		if !ok {
			return nil
		}
		ask, askPrice, ok := asks.BestOrder()
		if !ok {
			return nil
		}
		if bidPrice < askPrice {
			return nil
		}

		trade := Trade{
			BidOrderID: bid.id,
			AskOrderID: ask.id,
			Price:      bidPrice,
			Quantity:   min(bid.qty, ask.qty),
		}
		if taker == OrderSideBuy {
			trade.Price = askPrice
		}

		// Reserve outbound space before touching the books
		slot, err := e.outbound.AcquireProducerSlot(ctx)
		if err != nil {
			return err
		}
		bid.qty -= trade.Quantity
		ask.qty -= trade.Quantity
		*slot = trade
		e.outbound.CommitProducerSlot()
		e.handler.OnTrade(trade)

		if bid.qty == 0 {
			bids.RemoveBest(bidPrice)
		}
		if ask.qty == 0 {
			asks.RemoveBest(askPrice)
		}
	}
}
