package engine

import (
	"fmt"

	"mako/domain/book"
)

// Engine translates commands into book operations and packages the
// results into ordered event sequences. Handle is synchronous, performs
// no I/O, and must not be called from more than one flow at a time.
type Engine struct {
	book    *book.Book
	ownerOf map[uint64]uint32
	clock   Clock
}

// New wires an engine around a book. The clock stamps admissions.
func New(b *book.Book, clock Clock) *Engine {
	return &Engine{
		book:    b,
		ownerOf: make(map[uint64]uint32),
		clock:   clock,
	}
}

// Handle feeds one command through the book and returns every resulting
// event, acks before trades, trades in fill order.
func (e *Engine) Handle(cmd Command) []Event {
	switch c := cmd.(type) {
	case CmdNew:
		return e.handleNew(c)

	case CmdModify:
		if c.Qty <= 0 {
			return []Event{Reject{ID: c.ID, Reason: ReasonInvalidQuantity}}
		}
		if e.book.Modify(c.ID, c.Qty) {
			return []Event{AckModify{ID: c.ID}}
		}
		return []Event{Reject{ID: c.ID, Reason: ReasonUnknownOrder}}

	case CmdCancel:
		if e.book.Cancel(c.ID) {
			delete(e.ownerOf, c.ID)
			return []Event{AckCancel{ID: c.ID}}
		}
		return []Event{Reject{ID: c.ID, Reason: ReasonUnknownOrder}}

	default:
		panic(fmt.Sprintf("engine: unhandled command type %T", cmd))
	}
}

func (e *Engine) handleNew(c CmdNew) []Event {
	if c.Qty <= 0 {
		return []Event{Reject{ID: c.ID, Reason: ReasonInvalidQuantity}}
	}
	if e.book.Has(c.ID) {
		return []Event{Reject{ID: c.ID, Reason: ReasonDuplicateOrder}}
	}

	e.ownerOf[c.ID] = c.Owner
	trades := e.book.Add(book.Order{
		ID:    c.ID,
		Owner: c.Owner,
		Side:  c.Side,
		Price: c.Price,
		Qty:   c.Qty,
		Stamp: e.clock.Now(),
	})

	out := make([]Event, 0, len(trades)+1)
	out = append(out, AckNew{ID: c.ID})
	for _, t := range trades {
		out = append(out, Trade{t})
		// Ownership entries live exactly as long as the order does.
		if !e.book.Has(t.MakerID) {
			delete(e.ownerOf, t.MakerID)
		}
	}
	if !e.book.Has(c.ID) {
		delete(e.ownerOf, c.ID)
	}
	return out
}

// Owner reports the client attribution for a live order.
func (e *Engine) Owner(id uint64) (uint32, bool) {
	owner, ok := e.ownerOf[id]
	return owner, ok
}

// BestBid returns the top-of-book bid price, 0 when that side is empty.
func (e *Engine) BestBid() int64 { return e.book.BestBid() }

// BestAsk returns the top-of-book ask price, 0 when that side is empty.
func (e *Engine) BestAsk() int64 { return e.book.BestAsk() }
