package matching

import "fmt"

// Config contains matching engine parameters fixed at construction.
type Config struct {
	// Price ticks outside [MinPrice, MaxPrice] are rejected
	MinPrice uint32
	MaxPrice uint32

	// Order ids above MaxOrderID are rejected
	MaxOrderID uint32

	// Queue capacities, must be powers of two
	InboundCapacity  int
	OutboundCapacity int
}

// DefaultConfig returns configuration with default price range, order id bound and queue sizes.
func DefaultConfig() Config {
	return Config{
		MinPrice:         defaultMinPrice,
		MaxPrice:         defaultMaxPrice,
		MaxOrderID:       defaultMaxOrderID,
		InboundCapacity:  defaultQueueCapacity,
		OutboundCapacity: defaultQueueCapacity,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.MinPrice > c.MaxPrice {
		return fmt.Errorf("%w: min %d is greater than max %d", ErrInvalidPriceRange, c.MinPrice, c.MaxPrice)
	}
	if c.MaxOrderID == 0 || c.MaxOrderID == ^uint32(0) {
		return fmt.Errorf("%w: %d", ErrInvalidMaxOrderID, c.MaxOrderID)
	}
	if !powerOfTwo(c.InboundCapacity) {
		return fmt.Errorf("%w: inbound %d", ErrInvalidQueueCapacity, c.InboundCapacity)
	}
	if !powerOfTwo(c.OutboundCapacity) {
		return fmt.Errorf("%w: outbound %d", ErrInvalidQueueCapacity, c.OutboundCapacity)
	}
	return nil
}

// PriceLevels returns amount of price ticks in the configured range.
func (c Config) PriceLevels() int {
	return int(c.MaxPrice-c.MinPrice) + 1
}

// ValidPrice returns true if given price tick is inside the configured range.
func (c Config) ValidPrice(price uint32) bool {
	return price >= c.MinPrice && price <= c.MaxPrice
}

// ValidOrderID returns true if given order id is positive and within the configured bound.
func (c Config) ValidOrderID(id uint32) bool {
	return id != 0 && id <= c.MaxOrderID
}

func powerOfTwo(v int) bool {
	return v > 0 && v&(v-1) == 0
}
