package matching

const (
	// defaultMinPrice is the lowest price tick accepted by default (1 tick = 0.01).
	defaultMinPrice = 5000

	// defaultMaxPrice is the highest price tick accepted by default.
	defaultMaxPrice = 15000

	// defaultMaxOrderID is the largest order id accepted by default.
	defaultMaxOrderID = 1 << 20

	// defaultQueueCapacity is the default capacity of both inbound and outbound queues.
	defaultQueueCapacity = 16384

	// levelBitsWordSize is the amount of price ticks tracked by one bitmap word.
	levelBitsWordSize = 64
)

// defaultReservedOrderSlots is the initial capacity of the tree order book orders index.
const defaultReservedOrderSlots = 1024
