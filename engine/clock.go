package engine

import "time"

// Clock supplies admission timestamps. It is injected rather than read
// from a process-wide global so tests can drive a deterministic clock.
type Clock interface {
	Now() int64
}

// WallClock reads the system monotonic clock in nanoseconds.
type WallClock struct{}

func (WallClock) Now() int64 { return time.Now().UnixNano() }
