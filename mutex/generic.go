package mutex

import (
	"sync"
	"time"

	"github.com/dogukanarat/go-osal/internal/goroutineid"
	"github.com/dogukanarat/go-osal/osalmem"
	"github.com/dogukanarat/go-osal/osaltime"
	"github.com/dogukanarat/go-osal/status"
)

// genericMutex is the oracle back-end: built only from sync.Mutex,
// sync.Cond, and owner/depth state, grounded on
// _examples/original_source/src/posix/osal_mutex.c (native recursive
// pthread mutex) translated to condvar form since sync.Mutex has no native
// recursion.
type genericMutex struct {
	clock     osaltime.Clock
	recursive bool

	mu   sync.Mutex
	cond *sync.Cond

	cb      *ControlBlock
	dynamic bool
}

// NewGeneric constructs the condvar-based reference back-end. A nil attr
// is recursive by default.
func NewGeneric(attr *Attr) (Mutex, error) {
	a := normalizeAttr(attr)
	cb, dynamic, err := resolveControlBlock(attr)
	if err != nil {
		return nil, err
	}
	m := &genericMutex{clock: osaltime.System, recursive: a.Recursive, cb: cb, dynamic: dynamic}
	m.cond = sync.NewCond(&m.mu)
	return m, nil
}

func (m *genericMutex) Lock(timeout status.Duration) status.Status {
	self := goroutineid.Current()

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cb.owner.held && m.cb.owner.id == self {
		if !m.recursive {
			// Non-recursive mutexes treat re-entry as contention against
			// self, per pthread_mutex_lock(PTHREAD_MUTEX_NORMAL) deadlock
			// semantics; block forever is undefined behavior there, so we
			// surface it as an immediate error instead of hanging.
			return status.Error
		}
		m.cb.owner.depth++
		return status.Success
	}

	deadline, immediate, forever := status.Deadline(m.clock.Now(), timeout)

	for m.cb.owner.held {
		if immediate {
			return status.Timeout
		}
		if !forever {
			remaining := time.Until(deadline)
			if remaining <= 0 {
				return status.Timeout
			}
			condWaitTimeout(m.cond, remaining)
			continue
		}
		m.cond.Wait()
	}

	m.cb.owner = owner{id: self, held: true, depth: 1}
	return status.Success
}

func (m *genericMutex) Unlock() status.Status {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.cb.owner.isCurrentOwner() {
		return status.Error
	}

	m.cb.owner.depth--
	if m.cb.owner.depth == 0 {
		m.cb.owner = owner{}
		m.cond.Signal()
	}
	return status.Success
}

func (m *genericMutex) Close() status.Status {
	if m.dynamic {
		osalmem.Discard(m.cb)
	}
	return status.Success
}

// condWaitTimeout waits on cond for at most d. The caller must hold cond.L.
// Since sync.Cond has no native timed wait, this spawns a timer goroutine
// that broadcasts on expiry, waking every waiter to re-check its own
// deadline, which is always measured from the call's entry.
func condWaitTimeout(cond *sync.Cond, d time.Duration) {
	timer := time.AfterFunc(d, cond.Broadcast)
	defer timer.Stop()
	cond.Wait()
}
