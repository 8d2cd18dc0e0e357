package shared

import "time"

// Clock returns the current time. Tests swap it for a fixed instant.
type Clock func() time.Time

// SystemClock is the wall clock in local time
func SystemClock() time.Time {
	return time.Now()
}
