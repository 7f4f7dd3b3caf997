package semaphore

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	xsemaphore "golang.org/x/sync/semaphore"

	"github.com/dogukanarat/go-osal/osalmem"
	"github.com/dogukanarat/go-osal/status"
)

// hostSemaphore wraps golang.org/x/sync/semaphore.Weighted, the thin shim
// back-end. Weighted natively blocks Acquire against a context deadline,
// which maps directly onto the portable timeout convention, but it has no
// notion of a hard ceiling on Release — giving past Max must fail, so
// cb.count separately tracks the available unit count and gates Release
// on it. Weighted itself is always heap-allocated; cb only backs the
// accounting a caller might want visibility into via a static
// ControlBlock, not the blocking mechanism itself.
type hostSemaphore struct {
	weighted *xsemaphore.Weighted
	max      uint32

	cb      *ControlBlock
	dynamic bool
}

// NewHost constructs the host-native back-end.
func NewHost(attr *Attr) (Semaphore, error) {
	a, ok := validate(attr)
	if !ok {
		return nil, errors.New("semaphore: invalid attributes")
	}

	cb, dynamic, err := resolveControlBlock(attr, a.Initial)
	if err != nil {
		return nil, err
	}

	s := &hostSemaphore{
		weighted: xsemaphore.NewWeighted(int64(a.Max)),
		max:      a.Max,
		cb:       cb,
		dynamic:  dynamic,
	}

	preConsume := int64(a.Max - a.Initial)
	if preConsume > 0 {
		// Always succeeds: nothing else can have acquired from a
		// just-constructed Weighted.
		_ = s.weighted.Acquire(context.Background(), preConsume)
	}

	return s, nil
}

func (s *hostSemaphore) Take(timeout status.Duration) status.Status {
	switch timeout {
	case status.NoWait:
		if !s.weighted.TryAcquire(1) {
			return status.Timeout
		}
	case status.WaitForever:
		if err := s.weighted.Acquire(context.Background(), 1); err != nil {
			return status.Error
		}
	default:
		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeout)*time.Millisecond)
		defer cancel()
		if err := s.weighted.Acquire(ctx, 1); err != nil {
			return status.Timeout
		}
	}

	atomic.AddInt64(&s.cb.count, -1)
	return status.Success
}

func (s *hostSemaphore) Give() status.Status {
	for {
		cur := atomic.LoadInt64(&s.cb.count)
		if cur >= int64(s.max) {
			return status.Resource
		}
		if atomic.CompareAndSwapInt64(&s.cb.count, cur, cur+1) {
			s.weighted.Release(1)
			return status.Success
		}
	}
}

func (s *hostSemaphore) Count() uint32 {
	return uint32(atomic.LoadInt64(&s.cb.count))
}

func (s *hostSemaphore) Close() status.Status {
	if s.dynamic {
		osalmem.Discard(s.cb)
	}
	return status.Success
}
