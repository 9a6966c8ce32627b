// internal/arinc/round.go
package arinc

import "math"

// roundHalfAwayInt32 rounds half away from zero. The value is clamped to
// the int32 range before the conversion.
func roundHalfAwayInt32(v float64) int32 {
	if math.IsNaN(v) {
		return 0
	}
	if v < 0 {
		v -= 0.5
	} else {
		v += 0.5
	}
	if v > math.MaxInt32 {
		return math.MaxInt32
	}
	if v < math.MinInt32 {
		return math.MinInt32
	}
	return int32(v)
}
