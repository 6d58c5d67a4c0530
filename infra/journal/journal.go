// Package journal persists outbound events for at-least-once delivery
// and audit. It never holds book state: losing the journal loses
// undelivered prints, not orders.
package journal

import (
	"fmt"
	"strconv"
	"time"

	"github.com/cockroachdb/pebble"
)

// Journal is a pebble-backed outbox keyed by event sequence number.
// Entries move NEW -> SENT -> ACKED and are removed by Compact.
type Journal struct {
	db *pebble.DB
}

func Open(dir string) (*Journal, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("journal: open %s: %w", dir, err)
	}
	return &Journal{db: db}, nil
}

func (j *Journal) Close() error {
	return j.db.Close()
}

// keys are zero-padded so pebble iterates in sequence order.
func keyFor(seq uint64) []byte {
	return []byte(fmt.Sprintf("evt/%020d", seq))
}

func parseKey(key []byte) (uint64, error) {
	if len(key) != len("evt/")+20 {
		return 0, fmt.Errorf("journal: bad key %q", key)
	}
	return strconv.ParseUint(string(key[len("evt/"):]), 10, 64)
}

// Append journals a fresh event payload under seq.
func (j *Journal) Append(seq uint64, payload []byte) error {
	rec := Record{State: StateNew, Payload: payload}
	return j.db.Set(keyFor(seq), encodeRecord(rec), pebble.Sync)
}

// MarkSent records a delivery attempt.
func (j *Journal) MarkSent(seq uint64) error {
	return j.setState(seq, StateSent)
}

// MarkAcked records confirmed delivery.
func (j *Journal) MarkAcked(seq uint64) error {
	return j.setState(seq, StateAcked)
}

func (j *Journal) setState(seq uint64, state State) error {
	rec, err := j.Get(seq)
	if err != nil {
		return err
	}
	rec.State = state
	rec.Retries++
	rec.LastAttempt = time.Now().UnixNano()
	return j.db.Set(keyFor(seq), encodeRecord(rec), pebble.Sync)
}

// Get returns the record journalled under seq.
func (j *Journal) Get(seq uint64) (Record, error) {
	val, closer, err := j.db.Get(keyFor(seq))
	if err != nil {
		return Record{}, fmt.Errorf("journal: get %d: %w", seq, err)
	}
	defer closer.Close()
	return decodeRecord(val)
}

// ScanPending visits every non-ACKED record in sequence order. A fn
// error aborts the scan.
func (j *Journal) ScanPending(fn func(seq uint64, rec Record) error) error {
	iter, err := j.db.NewIter(&pebble.IterOptions{
		LowerBound: []byte("evt/"),
		UpperBound: []byte("evt/~"),
	})
	if err != nil {
		return err
	}
	defer iter.Close()

	for iter.First(); iter.Valid(); iter.Next() {
		rec, err := decodeRecord(iter.Value())
		if err != nil {
			return err
		}
		if rec.State == StateAcked {
			continue
		}
		seq, err := parseKey(iter.Key())
		if err != nil {
			return err
		}
		if err := fn(seq, rec); err != nil {
			return err
		}
	}
	return iter.Error()
}

// Compact deletes ACKED records, bounding journal growth. Returns the
// number of entries removed.
func (j *Journal) Compact() (int, error) {
	iter, err := j.db.NewIter(&pebble.IterOptions{
		LowerBound: []byte("evt/"),
		UpperBound: []byte("evt/~"),
	})
	if err != nil {
		return 0, err
	}
	defer iter.Close()

	removed := 0
	for iter.First(); iter.Valid(); iter.Next() {
		rec, err := decodeRecord(iter.Value())
		if err != nil {
			return removed, err
		}
		if rec.State != StateAcked {
			continue
		}
		key := append([]byte(nil), iter.Key()...)
		if err := j.db.Delete(key, pebble.Sync); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, iter.Error()
}
