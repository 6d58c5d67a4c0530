package book

// Book owns all resting order state for one instrument. The id index and
// the level queues always agree about which orders are live: every
// mutation updates both or neither.
type Book struct {
	bids   *RBTree
	asks   *RBTree
	orders map[uint64]*Order
}

// New creates an empty book.
func New() *Book {
	return &Book{
		bids:   NewRBTree(),
		asks:   NewRBTree(),
		orders: make(map[uint64]*Order),
	}
}

// Add admits an order, matching it against the opposite side first and
// resting any remainder at its limit price. It returns the executions in
// the order they happened; an empty slice means nothing crossed.
//
// The caller guarantees o.Qty > 0 and that o.ID is not live in the book.
func (b *Book) Add(o Order) []Trade {
	in := &o
	var trades []Trade

	if in.Side == Bid {
		for in.Qty > 0 {
			best := b.asks.MinLevel()
			if best == nil || best.Price > in.Price {
				break
			}
			trades = b.drain(in, best, b.asks, trades)
		}
	} else {
		for in.Qty > 0 {
			best := b.bids.MaxLevel()
			if best == nil || best.Price < in.Price {
				break
			}
			trades = b.drain(in, best, b.bids, trades)
		}
	}

	if in.Qty > 0 {
		b.rest(in)
	}
	return trades
}

// drain fills the incoming order against lvl front to back, pruning the
// level when it empties.
func (b *Book) drain(in *Order, lvl *PriceLevel, opp *RBTree, trades []Trade) []Trade {
	for in.Qty > 0 && lvl.head != nil {
		rest := lvl.head
		fill := min(in.Qty, rest.Qty)

		trades = append(trades, Trade{
			MakerID:    rest.ID,
			TakerID:    in.ID,
			MakerOwner: rest.Owner,
			TakerOwner: in.Owner,
			Price:      rest.Price,
			Qty:        fill,
		})

		in.Qty -= fill
		rest.Qty -= fill
		lvl.TotalQty -= fill

		if rest.Qty == 0 {
			lvl.unlink(rest)
			delete(b.orders, rest.ID)
		}
	}
	if lvl.head == nil {
		opp.DeleteLevel(lvl.Price)
	}
	return trades
}

func (b *Book) rest(o *Order) {
	var lvl *PriceLevel
	if o.Side == Bid {
		lvl = b.bids.UpsertLevel(o.Price)
	} else {
		lvl = b.asks.UpsertLevel(o.Price)
	}
	lvl.enqueue(o)
	b.orders[o.ID] = o
}

// Modify changes the resting quantity of a live order in place, keeping
// its position in the queue. Reports false for an unknown id.
//
// The caller guarantees qty > 0; shrinking below the already-queued
// position is a quantity change only, never a re-queue.
func (b *Book) Modify(id uint64, qty int64) bool {
	o, ok := b.orders[id]
	if !ok {
		return false
	}
	o.level.TotalQty += qty - o.Qty
	o.Qty = qty
	return true
}

// Cancel removes a live order entirely. Reports false for an unknown id.
func (b *Book) Cancel(id uint64) bool {
	o, ok := b.orders[id]
	if !ok {
		return false
	}
	lvl := o.level
	lvl.unlink(o)
	if lvl.Empty() {
		if o.Side == Bid {
			b.bids.DeleteLevel(lvl.Price)
		} else {
			b.asks.DeleteLevel(lvl.Price)
		}
	}
	delete(b.orders, id)
	return true
}

// BestBid returns the highest resting bid price, or 0 if no bids rest.
func (b *Book) BestBid() int64 {
	if lvl := b.bids.MaxLevel(); lvl != nil {
		return lvl.Price
	}
	return 0
}

// BestAsk returns the lowest resting ask price, or 0 if no asks rest.
func (b *Book) BestAsk() int64 {
	if lvl := b.asks.MinLevel(); lvl != nil {
		return lvl.Price
	}
	return 0
}

// Has reports whether id is live in the book.
func (b *Book) Has(id uint64) bool {
	_, ok := b.orders[id]
	return ok
}

// Len returns the number of live orders.
func (b *Book) Len() int { return len(b.orders) }

// BidsWalk visits bid levels best to worst.
func (b *Book) BidsWalk(fn func(*PriceLevel) bool) { b.bids.ForEachDescending(fn) }

// AsksWalk visits ask levels best to worst.
func (b *Book) AsksWalk(fn func(*PriceLevel) bool) { b.asks.ForEachAscending(fn) }
