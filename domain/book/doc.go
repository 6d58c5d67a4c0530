// Package book implements the in-memory limit order book for a single
// instrument. It maintains two red-black trees of price levels (bids and
// asks), each level holding a FIFO queue of resting orders, and runs
// price-time-priority matching on admission.
//
// The book is a pure data structure: it performs no I/O, never blocks,
// and is designed for a single-writer command stream. Serializing calls
// is the caller's responsibility.
package book
