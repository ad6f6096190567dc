package itch

// Handler receives decoded order messages.
// Returning an error stops processing.
type Handler interface {
	OnStockDirectoryMessage(msg StockDirectoryMessage) error
	OnAddOrderMessage(msg AddOrderMessage) error
	OnOrderExecutedMessage(msg OrderExecutedMessage) error
	OnOrderCancelMessage(msg OrderCancelMessage) error
	OnOrderDeleteMessage(msg OrderDeleteMessage) error
	OnOrderReplaceMessage(msg OrderReplaceMessage) error
}
