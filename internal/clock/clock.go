// internal/clock/clock.go
package clock

import (
	"sync/atomic"
	"time"
)

// Clock supplies a monotonic millisecond timestamp that wraps at 2^32.
type Clock interface {
	NowMS() uint32
}

// System counts milliseconds since it was created.
type System struct {
	start time.Time
}

func NewSystem() *System {
	return &System{start: time.Now()}
}

// NowMS truncates the elapsed milliseconds to 32 bits; the wrap is
// intentional.
func (s *System) NowMS() uint32 {
	return uint32(time.Since(s.start).Milliseconds())
}

// Manual is a clock driven by the caller, for tests and replay.
type Manual struct {
	now atomic.Uint32
}

func NewManual(start uint32) *Manual {
	m := &Manual{}
	m.now.Store(start)
	return m
}

func (m *Manual) NowMS() uint32 { return m.now.Load() }

func (m *Manual) Set(ms uint32) { m.now.Store(ms) }

// Advance moves the clock forward by d, wrapping like the hardware timer.
func (m *Manual) Advance(d uint32) uint32 {
	return m.now.Add(d)
}
