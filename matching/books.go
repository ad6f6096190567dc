package matching

// Books is a pair of bid and ask books of a single instrument.
// NOTE: Not thread-safe.
type Books struct {
	bids SideBook
	asks SideBook
}

// NewBooks creates bitmap bid and ask books for given configuration.
func NewBooks(config Config) *Books {
	return &Books{
		bids: NewBook(OrderSideBuy, config),
		asks: NewBook(OrderSideSell, config),
	}
}

// NewTreeBooks creates tree bid and ask books for given configuration.
func NewTreeBooks(config Config) *Books {
	allocator := NewAllocator(int(config.MaxOrderID)/config.PriceLevels() + 1)
	return &Books{
		bids: NewTreeBook(allocator, OrderSideBuy, config),
		asks: NewTreeBook(allocator, OrderSideSell, config),
	}
}

// Bids returns the buy side book.
func (b *Books) Bids() SideBook {
	return b.bids
}

// Asks returns the sell side book.
func (b *Books) Asks() SideBook {
	return b.asks
}

// Book returns the book of given side or nil for unknown side.
func (b *Books) Book(side OrderSide) SideBook {
	switch side {
	case OrderSideBuy:
		return b.bids
	case OrderSideSell:
		return b.asks
	default:
		return nil
	}
}

// Len returns amount of resting orders on both sides.
func (b *Books) Len() int {
	return b.bids.Len() + b.asks.Len()
}

// Spread returns the best bid and ask prices. Flags are false for empty sides.
func (b *Books) Spread() (bid uint32, hasBid bool, ask uint32, hasAsk bool) {
	bid, hasBid = b.bids.BestPrice()
	ask, hasAsk = b.asks.BestPrice()
	return
}

// Crossed returns true if the best bid is at or above the best ask.
func (b *Books) Crossed() bool {
	bid, hasBid, ask, hasAsk := b.Spread()
	return hasBid && hasAsk && bid >= ask
}

// Clean removes all orders from both sides.
func (b *Books) Clean() {
	b.bids.Clean()
	b.asks.Clean()
}
