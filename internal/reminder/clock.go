package reminder

import "time"

// Clock abstracts wall time so the scheduler can be driven by synthetic
// time in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}
