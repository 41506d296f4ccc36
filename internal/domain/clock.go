package domain

import "github.com/jonboulle/clockwork"

// clock stamps rendered frames. Tests freeze it via SetClock.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source for frame rendering. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}

// Clock returns the current time source.
func Clock() clockwork.Clock {
	return clock
}
