package app

import "time"

// Clock supplies the current time to services so deadline logic is
// testable without real delays.
type Clock func() time.Time

func SystemClock() time.Time {
	return time.Now()
}
