package matching

// EventKind is an enumeration of possible inbound event kinds.
type EventKind uint8

const (
	// EventKindNewLimit places a new limit order.
	EventKindNewLimit EventKind = iota + 1
	// EventKindCancel removes a resting order.
	EventKindCancel
	// EventKindModify changes price and/or quantity of a resting order.
	EventKindModify
)

// Valid returns true for known event kinds.
func (k EventKind) Valid() bool {
	return k >= EventKindNewLimit && k <= EventKindModify
}

func (k EventKind) String() string {
	switch k {
	case EventKindNewLimit:
		return "new_limit"
	case EventKindCancel:
		return "cancel"
	case EventKindModify:
		return "modify"
	default:
		return "unknown"
	}
}
