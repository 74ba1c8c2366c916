package ledger

// RejectReason says why an operation did nothing. Rejections are
// ordinary return values, never errors: the caller branches on them and
// the ledger state is untouched.
type RejectReason int8

const (
	ReasonNone RejectReason = iota
	InsufficientFunds
	UnknownPosition
	SideMismatch
)

func (r RejectReason) String() string {
	switch r {
	case InsufficientFunds:
		return "insufficient funds"
	case UnknownPosition:
		return "unknown position"
	case SideMismatch:
		return "side mismatch"
	default:
		return "none"
	}
}

// OpResult reports the outcome of a single ledger mutation.
type OpResult struct {
	Filled bool
	Reason RejectReason

	// Trade is the log entry appended by a filled operation.
	Trade Trade

	// Closed is set by filled close operations.
	Closed *ClosedPosition
}

func filled(t Trade) OpResult {
	return OpResult{Filled: true, Trade: t}
}

func rejected(reason RejectReason) OpResult {
	return OpResult{Reason: reason}
}
