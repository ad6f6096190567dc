package itch

import (
	"errors"
)

// Errors used by the package.
var (
	ErrInvalidMessageSize = errors.New("invalid size of the ITCH message")
	ErrTruncatedMessage   = errors.New("truncated ITCH message")
)
