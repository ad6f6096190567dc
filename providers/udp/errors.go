package udp

import (
	"errors"
)

// Errors used by the package.
var (
	ErrShortPacket        = errors.New("packet is too short")
	ErrShortTrade         = errors.New("trade datagram is too short")
	ErrInvalidMessageType = errors.New("invalid message type")
	ErrInvalidSide        = errors.New("invalid order side")
)
