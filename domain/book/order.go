package book

type Side int

const (
	Bid Side = iota
	Ask
)

func (s Side) String() string {
	if s == Bid {
		return "bid"
	}
	return "ask"
}

// Order is one resting intent to trade. Stamp is the admission time in
// nanoseconds and is used only for FIFO tie-breaking within a level; the
// queue links themselves carry the ordering.
type Order struct {
	ID    uint64
	Owner uint32
	Side  Side
	Price int64
	Qty   int64
	Stamp int64

	level *PriceLevel
	next  *Order // intrusive queue links, owned by PriceLevel
	prev  *Order
}

// Trade is an immutable execution fact. Price is always the maker's
// (resting) price. Trades are emitted, never stored.
type Trade struct {
	MakerID    uint64
	TakerID    uint64
	MakerOwner uint32
	TakerOwner uint32
	Price      int64
	Qty        int64
}
