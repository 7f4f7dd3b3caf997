// Package osaltime implements the timing contract shared by every back-end:
// a monotonic millisecond tick, a sleep primitive, and an optional
// wall-clock query. The generic back-ends of mutex, semaphore and queue,
// the host mutex, and flags compute their absolute deadline from a Clock
// (osaltime.System); the host semaphore and host queue use relative
// timers instead.
package osaltime

import (
	"time"

	"github.com/dogukanarat/go-osal/status"
)

// Clock abstracts the monotonic/wall-clock sources a back-end consumes.
// Tests substitute a fake Clock the same way a package-level time source
// gets swapped out for deterministic rate-limiter tests elsewhere.
type Clock interface {
	// Now returns the current instant, used to compute absolute deadlines.
	Now() time.Time
	// TickMS returns a 32-bit monotonic millisecond count since an
	// implementation-defined epoch. Callers handle wraparound themselves
	// by subtracting unsigned values.
	TickMS() uint32
	// UnixTime returns the current wall-clock time as (seconds,
	// microseconds), or ok=false when no wall-clock source is configured.
	UnixTime() (sec, usec int64, ok bool)
}

// DefaultClock is the Clock used by every back-end unless overridden,
// backed directly by the Go runtime's monotonic and wall clocks.
type DefaultClock struct {
	epoch time.Time
}

// NewDefaultClock returns a DefaultClock whose tick epoch is the instant of
// construction.
func NewDefaultClock() *DefaultClock {
	return &DefaultClock{epoch: time.Now()}
}

func (c *DefaultClock) Now() time.Time { return time.Now() }

func (c *DefaultClock) TickMS() uint32 {
	return uint32(time.Since(c.epoch).Milliseconds())
}

func (c *DefaultClock) UnixTime() (sec, usec int64, ok bool) {
	now := time.Now()
	return now.Unix(), int64(now.Nanosecond() / 1000), true
}

// System is the package-level default clock, analogous to the original
// contract's implicit single system clock. Back-ends that don't accept an
// injected Clock use this one.
var System Clock = NewDefaultClock()

// DelayMS suspends the caller for at least d milliseconds; never less,
// best-effort not more. Zero is a yield hint (still returns promptly).
func DelayMS(d status.Duration) {
	if d == 0 {
		time.Sleep(0)
		return
	}
	time.Sleep(time.Duration(d) * time.Millisecond)
}

// GetTickMS returns the current tick of the package-level System clock.
func GetTickMS() uint32 {
	return System.TickMS()
}

// GetUnixTime fills seconds/microseconds of wall-clock time from the
// package-level System clock, or returns status.Error when no clock source
// is configured.
func GetUnixTime() (sec, usec int64, st status.Status) {
	sec, usec, ok := System.UnixTime()
	if !ok {
		return 0, 0, status.Error
	}
	return sec, usec, status.Success
}
