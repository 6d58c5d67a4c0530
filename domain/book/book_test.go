package book

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func order(id uint64, owner uint32, side Side, price, qty int64) Order {
	return Order{ID: id, Owner: owner, Side: side, Price: price, Qty: qty}
}

func TestAddRestsWithoutCross(t *testing.T) {
	b := New()

	trades := b.Add(order(1, 10, Bid, 100, 5))
	assert.Empty(t, trades)
	trades = b.Add(order(2, 11, Ask, 105, 5))
	assert.Empty(t, trades)

	assert.Equal(t, int64(100), b.BestBid())
	assert.Equal(t, int64(105), b.BestAsk())
	assert.Equal(t, 2, b.Len())
}

func TestPriceTimePriority(t *testing.T) {
	b := New()

	// Two bids at the same price, A before B; a crossing ask must fill
	// A fully before touching B.
	b.Add(order(1, 10, Bid, 100, 5)) // A
	b.Add(order(2, 11, Bid, 100, 7)) // B

	trades := b.Add(order(3, 12, Ask, 99, 10))
	require.Len(t, trades, 2)

	assert.Equal(t, uint64(1), trades[0].MakerID)
	assert.Equal(t, int64(5), trades[0].Qty)
	assert.Equal(t, uint64(2), trades[1].MakerID)
	assert.Equal(t, int64(5), trades[1].Qty)
	assert.Equal(t, uint64(3), trades[0].TakerID)
	assert.Equal(t, uint64(3), trades[1].TakerID)

	// B has 2 left at 100.
	assert.Equal(t, int64(100), b.BestBid())
	assert.True(t, b.Has(2))
	assert.False(t, b.Has(1))
}

func TestTradePriceIsMakerPrice(t *testing.T) {
	b := New()

	b.Add(order(1, 10, Bid, 100, 5))
	trades := b.Add(order(2, 11, Ask, 95, 5))

	require.Len(t, trades, 1)
	assert.Equal(t, int64(100), trades[0].Price, "price improvement accrues to the resting side")
	assert.Equal(t, uint32(10), trades[0].MakerOwner)
	assert.Equal(t, uint32(11), trades[0].TakerOwner)
}

func TestPartialFillLeavesResidual(t *testing.T) {
	b := New()

	b.Add(order(1, 10, Ask, 110, 10))
	trades := b.Add(order(2, 11, Bid, 120, 4))

	require.Len(t, trades, 1)
	assert.Equal(t, int64(4), trades[0].Qty)
	assert.Equal(t, int64(110), b.BestAsk(), "residual keeps the level")

	// Residual is 6: a further bid for 6 drains it exactly.
	trades = b.Add(order(3, 12, Bid, 110, 6))
	require.Len(t, trades, 1)
	assert.Equal(t, int64(6), trades[0].Qty)
	assert.Equal(t, int64(0), b.BestAsk())
}

func TestExactFillRemovesLevel(t *testing.T) {
	b := New()

	b.Add(order(1, 10, Bid, 100, 10))
	trades := b.Add(order(2, 11, Ask, 99, 10))

	require.Len(t, trades, 1)
	assert.Equal(t, int64(10), trades[0].Qty)
	assert.Equal(t, int64(0), b.BestBid(), "drained level must be pruned")
	assert.Equal(t, 0, b.Len())
}

func TestSweepAcrossLevels(t *testing.T) {
	b := New()

	b.Add(order(1, 10, Ask, 101, 3))
	b.Add(order(2, 10, Ask, 102, 3))
	b.Add(order(3, 10, Ask, 103, 3))

	// Limit 102: fills levels 101 and 102, never 103, rests remainder.
	trades := b.Add(order(4, 11, Bid, 102, 10))
	require.Len(t, trades, 2)
	assert.Equal(t, int64(101), trades[0].Price)
	assert.Equal(t, int64(102), trades[1].Price)

	assert.Equal(t, int64(103), b.BestAsk())
	assert.Equal(t, int64(102), b.BestBid(), "4 remaining rests at the limit")
	assert.True(t, b.Has(4))
}

func TestModifyKeepsPriority(t *testing.T) {
	b := New()

	b.Add(order(1, 10, Bid, 100, 5))
	b.Add(order(2, 11, Bid, 100, 5))

	// Growing order 1 must not send it behind order 2.
	require.True(t, b.Modify(1, 8))

	trades := b.Add(order(3, 12, Ask, 100, 8))
	require.Len(t, trades, 1)
	assert.Equal(t, uint64(1), trades[0].MakerID)
	assert.Equal(t, int64(8), trades[0].Qty)
}

func TestModifyUnknownID(t *testing.T) {
	b := New()
	b.Add(order(1, 10, Bid, 100, 5))

	assert.False(t, b.Modify(42, 7))

	// Book untouched.
	assert.Equal(t, int64(100), b.BestBid())
	assert.Equal(t, 1, b.Len())
}

func TestCancel(t *testing.T) {
	b := New()

	b.Add(order(1, 10, Bid, 100, 5))
	b.Add(order(2, 11, Bid, 99, 5))

	require.True(t, b.Cancel(1))
	assert.Equal(t, int64(99), b.BestBid(), "emptied level pruned, next best exposed")

	// Cancelling twice succeeds once.
	assert.False(t, b.Cancel(1))
	assert.False(t, b.Cancel(42))
	assert.Equal(t, 1, b.Len())
}

func TestCancelMiddleOfQueue(t *testing.T) {
	b := New()

	b.Add(order(1, 10, Ask, 100, 1))
	b.Add(order(2, 10, Ask, 100, 2))
	b.Add(order(3, 10, Ask, 100, 3))

	require.True(t, b.Cancel(2))

	trades := b.Add(order(4, 11, Bid, 100, 4))
	require.Len(t, trades, 2)
	assert.Equal(t, uint64(1), trades[0].MakerID)
	assert.Equal(t, uint64(3), trades[1].MakerID)
}

func TestLevelAccounting(t *testing.T) {
	b := New()

	b.Add(order(1, 10, Bid, 100, 5))
	b.Add(order(2, 10, Bid, 100, 7))

	var lvl *PriceLevel
	b.BidsWalk(func(l *PriceLevel) bool {
		lvl = l
		return false
	})
	require.NotNil(t, lvl)
	assert.Equal(t, int64(12), lvl.TotalQty)
	assert.Equal(t, 2, lvl.OrderCount)

	b.Modify(1, 3)
	assert.Equal(t, int64(10), lvl.TotalQty)

	b.Cancel(2)
	assert.Equal(t, int64(3), lvl.TotalQty)
	assert.Equal(t, 1, lvl.OrderCount)
}
