package osaltime

import (
	"testing"
	"time"

	"github.com/dogukanarat/go-osal/status"
	"github.com/stretchr/testify/require"
)

func TestDelayMS_minimumElapsed(t *testing.T) {
	start := time.Now()
	DelayMS(status.Duration(20))
	require.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestGetTickMS_monotonic(t *testing.T) {
	a := GetTickMS()
	time.Sleep(5 * time.Millisecond)
	b := GetTickMS()
	require.GreaterOrEqual(t, b, a)
}

// TestGetUnixTime_sanity realizes spec scenario 7: get_unix_time returns
// success and a second value greater than 1,577,836,800 (2020-01-01).
func TestGetUnixTime_sanity(t *testing.T) {
	sec, _, st := GetUnixTime()
	require.Equal(t, status.Success, st)
	require.Greater(t, sec, int64(1577836800))
}

type fakeClock struct {
	now    time.Time
	tick   uint32
	hasTZ  bool
	sec    int64
	usec   int64
}

func (f *fakeClock) Now() time.Time { return f.now }
func (f *fakeClock) TickMS() uint32 { return f.tick }
func (f *fakeClock) UnixTime() (int64, int64, bool) {
	return f.sec, f.usec, f.hasTZ
}

func TestClock_noWallClockConfigured(t *testing.T) {
	prev := System
	defer func() { System = prev }()

	System = &fakeClock{hasTZ: false}
	_, _, st := GetUnixTime()
	require.Equal(t, status.Error, st)
}
