package timex

import (
	"time"

	"ht32-hal-go/x/units"
)

// Period returns the duration of one cycle at f, truncated to the nanosecond.
// f==0 is coerced to 1 Hz to avoid division by zero.
func Period(f units.Hertz) time.Duration {
	if f == 0 {
		f = units.Hz
	}
	return time.Duration(uint64(time.Second) / uint64(f))
}

// Elapsed reports whether d has passed since start. A non-positive d never
// elapses, which callers use to mean "wait without bound".
func Elapsed(start time.Time, d time.Duration) bool {
	return d > 0 && time.Since(start) >= d
}
