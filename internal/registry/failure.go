// internal/registry/failure.go
package registry

import "math"

// Tick advances the bus failure counter by one scheduler tick and reports
// whether the bus is now failed. The counter saturates; only a successful
// Receive on any label resets it.
//
// A nil registry tracks no bus: Tick is a no-op and it is never failed.
func (r *Registry) Tick() bool {
	if r == nil {
		return false
	}
	if r.failureCount < math.MaxUint32 {
		r.failureCount++
	}
	return r.Failed()
}

// Failed reports failure_count >= failure_threshold.
func (r *Registry) Failed() bool {
	if r == nil {
		return false
	}
	return r.failureCount >= r.failureThreshold
}

func (r *Registry) FailureCount() uint32 {
	if r == nil {
		return 0
	}
	return r.failureCount
}

func (r *Registry) FailureThreshold() uint32 {
	if r == nil {
		return 0
	}
	return r.failureThreshold
}

// Elapsed is now-last in modulo 2^32 arithmetic, correct across one clock
// wrap.
func Elapsed(now, last uint32) uint32 {
	return now - last
}
