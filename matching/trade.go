package matching

// Trade is an outbound record published for every cross of the book.
type Trade struct {
	BidOrderID uint32
	AskOrderID uint32
	Price      uint32
	Quantity   uint32
}
