package widget

import (
	"math/rand"
	"time"
)

// DelayFunc returns how long the simulated typing lasts for a visitor at level.
type DelayFunc func(level Level) time.Duration

// Default typing delays.
const (
	DefaultHotDelay = 500 * time.Millisecond
	DefaultMinDelay = 1000 * time.Millisecond
	DefaultMaxDelay = 1800 * time.Millisecond
)

// RandomDelay answers hot leads after hot and everyone else after a uniform
// draw from [min, max).
func RandomDelay(hot, min, max time.Duration) DelayFunc {
	return func(level Level) time.Duration {
		if level == LevelHot {
			return hot
		}
		if max <= min {
			return min
		}
		return min + time.Duration(rand.Int63n(int64(max-min)))
	}
}

// FixedDelay always waits d.
func FixedDelay(d time.Duration) DelayFunc {
	return func(Level) time.Duration { return d }
}
