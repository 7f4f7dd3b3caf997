package mutex

import (
	"sync"
	"time"

	"github.com/dogukanarat/go-osal/internal/goroutineid"
	"github.com/dogukanarat/go-osal/osalmem"
	"github.com/dogukanarat/go-osal/osaltime"
	"github.com/dogukanarat/go-osal/status"
)

// pollInterval is the bounded-retry granularity for the emulated timed
// lock, matching the 1ms usleep in
// _examples/original_source/src/macos/osal_mutex.c.
const pollInterval = time.Millisecond

// hostMutex wraps sync.Mutex directly for the non-recursive, non-timed
// case, and layers recursion bookkeeping plus TryLock-polling timed-lock
// emulation on top — the thin shim back-end, grounded on
// _examples/original_source/src/macos/osal_mutex.c (no native
// pthread_mutex_timedlock; bounded poll against an absolute deadline
// instead).
type hostMutex struct {
	clock     osaltime.Clock
	recursive bool

	inner sync.Mutex

	// stateMu guards cb.owner only; it is distinct from inner, which is
	// the actual exclusion primitive under test.
	stateMu sync.Mutex
	cb      *ControlBlock
	dynamic bool
}

// NewHost constructs the host-native back-end.
func NewHost(attr *Attr) (Mutex, error) {
	a := normalizeAttr(attr)
	cb, dynamic, err := resolveControlBlock(attr)
	if err != nil {
		return nil, err
	}
	m := &hostMutex{clock: osaltime.System, recursive: a.Recursive, cb: cb, dynamic: dynamic}
	return m, nil
}

func (m *hostMutex) Lock(timeout status.Duration) status.Status {
	self := goroutineid.Current()

	m.stateMu.Lock()
	if m.cb.owner.held && m.cb.owner.id == self {
		if !m.recursive {
			m.stateMu.Unlock()
			return status.Error
		}
		m.cb.owner.depth++
		m.stateMu.Unlock()
		return status.Success
	}
	m.stateMu.Unlock()

	switch timeout {
	case status.WaitForever:
		m.inner.Lock()
	case status.NoWait:
		if !m.inner.TryLock() {
			return status.Timeout
		}
	default:
		deadline, _, _ := status.Deadline(m.clock.Now(), timeout)
		for {
			if m.inner.TryLock() {
				break
			}
			if !m.clock.Now().Before(deadline) {
				return status.Timeout
			}
			time.Sleep(pollInterval)
		}
	}

	m.stateMu.Lock()
	m.cb.owner = owner{id: self, held: true, depth: 1}
	m.stateMu.Unlock()
	return status.Success
}

func (m *hostMutex) Unlock() status.Status {
	m.stateMu.Lock()
	if !m.cb.owner.isCurrentOwner() {
		m.stateMu.Unlock()
		return status.Error
	}
	m.cb.owner.depth--
	release := m.cb.owner.depth == 0
	if release {
		m.cb.owner = owner{}
	}
	m.stateMu.Unlock()

	if release {
		m.inner.Unlock()
	}
	return status.Success
}

func (m *hostMutex) Close() status.Status {
	if m.dynamic {
		osalmem.Discard(m.cb)
	}
	return status.Success
}
