package engine

import "mako/domain/book"

// Event is the closed set of outcomes the engine emits. Each handled
// command produces a complete ordered sequence of these.
type Event interface {
	isEvent()
}

type AckNew struct{ ID uint64 }

type AckModify struct{ ID uint64 }

type AckCancel struct{ ID uint64 }

type Reject struct {
	ID     uint64
	Reason string
}

// Trade wraps a book execution; one is emitted per maker touched, in
// fill order, directly after the AckNew that triggered them.
type Trade struct {
	book.Trade
}

func (AckNew) isEvent()    {}
func (AckModify) isEvent() {}
func (AckCancel) isEvent() {}
func (Reject) isEvent()    {}
func (Trade) isEvent()     {}

// Reject reasons.
const (
	ReasonUnknownOrder    = "unknown-order"
	ReasonDuplicateOrder  = "duplicate-order"
	ReasonInvalidQuantity = "invalid-quantity"
)
