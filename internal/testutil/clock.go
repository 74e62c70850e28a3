package testutil

import "time"

// SteppingClock returns a clock that advances by step on every call, starting at start.
// Useful for asserting recorded latencies without sleeping.
func SteppingClock(start time.Time, step time.Duration) func() time.Time {
	next := start
	return func() time.Time {
		current := next
		next = next.Add(step)
		return current
	}
}
