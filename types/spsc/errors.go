package spsc

import (
	"errors"
)

// Errors used by the package.
var (
	ErrInvalidCapacity = errors.New("queue capacity must be a positive power of two")
)
