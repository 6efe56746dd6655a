package sim

import (
	"time"
)

// WallClock is the time source the Timer measures against.
type WallClock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock reads the real wall clock.
var SystemClock WallClock = systemClock{}

// Timer converts an operation's cost into a real delay and reports the
// measured delay in seconds. A Timer holds no mutable state, so the same
// value may be used from the detached I/O task and inline.
type Timer struct {
	Clock WallClock
	Mode  TimerMode
}

// NewTimer returns a Timer reading clock; a nil clock means SystemClock.
func NewTimer(clock WallClock, mode TimerMode) *Timer {
	if clock == nil {
		clock = SystemClock
	}
	if mode == "" {
		mode = TimerSpin
	}
	return &Timer{Clock: clock, Mode: mode}
}

// Elapse blocks for cost*msPerCycle milliseconds and returns the elapsed
// wall-clock time in seconds.
func (t *Timer) Elapse(cost, msPerCycle int) float64 {
	target := time.Duration(cost) * time.Duration(msPerCycle) * time.Millisecond
	start := t.Clock.Now()
	if t.Mode == TimerSleep {
		time.Sleep(target)
	} else {
		for waitedMicros(start, t.Clock.Now()) < target.Microseconds() {
		}
	}
	secs, usecs := splitElapsed(start, t.Clock.Now())
	return float64(secs) + float64(usecs)/1e6
}

// splitElapsed returns end-start as whole seconds and a microsecond
// remainder normalized into [0, 1e6): a negative remainder borrows one
// second, an overflowing one carries into seconds.
func splitElapsed(start, end time.Time) (secs, usecs int64) {
	secs = end.Unix() - start.Unix()
	usecs = int64(end.Nanosecond()/1000) - int64(start.Nanosecond()/1000)
	return normalizeMicros(secs, usecs)
}

func normalizeMicros(secs, usecs int64) (int64, int64) {
	if usecs < 0 {
		usecs += 1_000_000
		secs--
	}
	if usecs > 999_999 {
		usecs -= 1_000_000
		secs++
	}
	return secs, usecs
}

// waitedMicros is the busy-poll predicate: total microseconds since start.
func waitedMicros(start, now time.Time) int64 {
	secs, usecs := splitElapsed(start, now)
	return secs*1_000_000 + usecs
}
