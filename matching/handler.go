package matching

// Handler receives notifications from the matching goroutine.
// Calls are made synchronously so implementations must be fast and must not block.
//
//go:generate mockgen -destination=mocks/interfaces.go -package=mockmatching . Handler
type Handler interface {
	// OnEvent is called after the event is applied to the book and before crossing.
	OnEvent(event Event)
	// OnTrade is called after the trade is published to the outbound queue.
	OnTrade(trade Trade)
}

// NopHandler is a handler doing nothing.
type NopHandler struct{}

func (NopHandler) OnEvent(Event) {}
func (NopHandler) OnTrade(Trade) {}

// Handlers fans out notifications to several handlers in order.
type Handlers []Handler

func (hs Handlers) OnEvent(event Event) {
	for _, h := range hs {
		h.OnEvent(event)
	}
}

func (hs Handlers) OnTrade(trade Trade) {
	for _, h := range hs {
		h.OnTrade(trade)
	}
}
