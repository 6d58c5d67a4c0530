package book

// PriceLevel is the FIFO queue of all resting orders at one exact price
// on one side. Levels are created on the first order at a price and
// removed the moment they drain.
type PriceLevel struct {
	Price      int64
	TotalQty   int64
	OrderCount int

	head *Order
	tail *Order
}

// Head returns the oldest resting order, the one with matching priority.
func (p *PriceLevel) Head() *Order { return p.head }

func (p *PriceLevel) Empty() bool { return p.head == nil }

func (p *PriceLevel) enqueue(o *Order) {
	if p.head == nil {
		p.head = o
		p.tail = o
	} else {
		p.tail.next = o
		o.prev = p.tail
		p.tail = o
	}
	o.level = p
	p.TotalQty += o.Qty
	p.OrderCount++
}

func (p *PriceLevel) unlink(o *Order) {
	if o.prev != nil {
		o.prev.next = o.next
	} else {
		p.head = o.next
	}
	if o.next != nil {
		o.next.prev = o.prev
	} else {
		p.tail = o.prev
	}
	o.next = nil
	o.prev = nil
	o.level = nil
	p.TotalQty -= o.Qty
	p.OrderCount--
}
