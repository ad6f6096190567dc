package matching

import (
	"errors"
)

// Errors used by the package.
var (
	ErrInvalidPriceRange    = errors.New("invalid price range")
	ErrInvalidMaxOrderID    = errors.New("invalid max order id")
	ErrInvalidQueueCapacity = errors.New("invalid queue capacity")
	ErrBookInconsistent     = errors.New("order book is inconsistent")
	ErrEngineRunning        = errors.New("engine is already running")
)
