package semaphore

import (
	"errors"
	"sync"
	"time"

	"github.com/dogukanarat/go-osal/osalmem"
	"github.com/dogukanarat/go-osal/osaltime"
	"github.com/dogukanarat/go-osal/status"
)

// genericSemaphore is the oracle back-end, grounded on
// _examples/original_source/src/posix/osal_semaphore.c (sem_t wrapped
// directly) reshaped into mutex+condvar form with an explicit ceiling
// check — POSIX sem_post has no ceiling of its own, but the portable
// contract requires one.
type genericSemaphore struct {
	clock osaltime.Clock
	max   uint32

	mu   sync.Mutex
	cond *sync.Cond

	cb      *ControlBlock
	dynamic bool
}

// NewGeneric constructs the condvar-based reference back-end. Returns an
// error without constructing anything if attr is nil or invalid.
func NewGeneric(attr *Attr) (Semaphore, error) {
	a, ok := validate(attr)
	if !ok {
		return nil, errors.New("semaphore: invalid attributes")
	}
	cb, dynamic, err := resolveControlBlock(attr, a.Initial)
	if err != nil {
		return nil, err
	}
	s := &genericSemaphore{clock: osaltime.System, max: a.Max, cb: cb, dynamic: dynamic}
	s.cond = sync.NewCond(&s.mu)
	return s, nil
}

func (s *genericSemaphore) Take(timeout status.Duration) status.Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	deadline, immediate, forever := status.Deadline(s.clock.Now(), timeout)

	for s.cb.count == 0 {
		if immediate {
			return status.Timeout
		}
		if !forever {
			remaining := time.Until(deadline)
			if remaining <= 0 {
				return status.Timeout
			}
			condWaitTimeout(s.cond, remaining)
			continue
		}
		s.cond.Wait()
	}

	s.cb.count--
	return status.Success
}

func (s *genericSemaphore) Give() status.Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	if uint32(s.cb.count) >= s.max {
		return status.Resource
	}
	s.cb.count++
	s.cond.Signal()
	return status.Success
}

func (s *genericSemaphore) Count() uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return uint32(s.cb.count)
}

func (s *genericSemaphore) Close() status.Status {
	if s.dynamic {
		osalmem.Discard(s.cb)
	}
	return status.Success
}

func condWaitTimeout(cond *sync.Cond, d time.Duration) {
	timer := time.AfterFunc(d, cond.Broadcast)
	defer timer.Stop()
	cond.Wait()
}
