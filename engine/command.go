package engine

import "mako/domain/book"

// Command is the closed set of order intents the engine accepts. The
// transport layer delivers fully-decoded commands one at a time, in
// receipt order.
type Command interface {
	isCommand()
}

// CmdNew admits a new order.
type CmdNew struct {
	ID    uint64
	Owner uint32
	Side  book.Side
	Price int64
	Qty   int64
}

// CmdModify changes a resting order's quantity in place. Price changes
// are not supported; cancel and re-enter instead.
type CmdModify struct {
	ID  uint64
	Qty int64
}

// CmdCancel removes a resting order.
type CmdCancel struct {
	ID uint64
}

func (CmdNew) isCommand()    {}
func (CmdModify) isCommand() {}
func (CmdCancel) isCommand() {}
