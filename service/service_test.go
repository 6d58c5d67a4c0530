package service

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"mako/domain/book"
	"mako/engine"
	"mako/infra/journal"
	"mako/infra/sequence"
)

type stubClock struct{ now int64 }

func (c *stubClock) Now() int64 {
	c.now++
	return c.now
}

func newTestService(t *testing.T) (*Service, *journal.Journal) {
	t.Helper()
	jnl, err := journal.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = jnl.Close() })

	eng := engine.New(book.New(), &stubClock{})
	return New(eng, sequence.New(0), jnl, zap.NewNop()), jnl
}

func TestSubmitJournalsEveryEvent(t *testing.T) {
	svc, jnl := newTestService(t)

	svc.Submit(engine.CmdNew{ID: 1, Owner: 10, Side: book.Bid, Price: 100, Qty: 5})
	events := svc.Submit(engine.CmdNew{ID: 2, Owner: 11, Side: book.Ask, Price: 99, Qty: 5})
	require.Len(t, events, 2) // ack + trade

	var got []Outbound
	require.NoError(t, jnl.ScanPending(func(seq uint64, rec journal.Record) error {
		var out Outbound
		if err := json.Unmarshal(rec.Payload, &out); err != nil {
			return err
		}
		assert.Equal(t, seq, out.Seq)
		got = append(got, out)
		return nil
	}))

	require.Len(t, got, 3)
	assert.Equal(t, "ack-new", got[0].Type)
	assert.Equal(t, uint64(1), got[0].OrderID)
	assert.Equal(t, "ack-new", got[1].Type)
	assert.Equal(t, "trade", got[2].Type)
	assert.Equal(t, uint64(1), got[2].MakerID)
	assert.Equal(t, uint64(2), got[2].TakerID)
	assert.Equal(t, int64(100), got[2].Price)
	assert.Equal(t, int64(5), got[2].Qty)

	// Seqs are strictly increasing in emission order.
	for i := 1; i < len(got); i++ {
		assert.Greater(t, got[i].Seq, got[i-1].Seq)
	}
}

func TestSubmitJournalsRejects(t *testing.T) {
	svc, jnl := newTestService(t)

	events := svc.Submit(engine.CmdCancel{ID: 42})
	require.Len(t, events, 1)

	var got []Outbound
	require.NoError(t, jnl.ScanPending(func(seq uint64, rec journal.Record) error {
		var out Outbound
		require.NoError(t, json.Unmarshal(rec.Payload, &out))
		got = append(got, out)
		return nil
	}))

	require.Len(t, got, 1)
	assert.Equal(t, "reject", got[0].Type)
	assert.Equal(t, uint64(42), got[0].OrderID)
	assert.Equal(t, engine.ReasonUnknownOrder, got[0].Reason)
}

func TestSubmitWithoutJournal(t *testing.T) {
	eng := engine.New(book.New(), &stubClock{})
	svc := New(eng, sequence.New(0), nil, zap.NewNop())

	events := svc.Submit(engine.CmdNew{ID: 1, Owner: 10, Side: book.Bid, Price: 100, Qty: 5})
	require.Len(t, events, 1)
	assert.Equal(t, int64(100), svc.BestBid())
	assert.Equal(t, int64(0), svc.BestAsk())
}
