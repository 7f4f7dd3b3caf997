package queue

import (
	"sync"
	"time"

	"github.com/dogukanarat/go-osal/osalmem"
	"github.com/dogukanarat/go-osal/osaltime"
	"github.com/dogukanarat/go-osal/status"
)

// genericQueue is the oracle back-end: a ring buffer (head, tail, count)
// under one mutex with not_empty/not_full condition variables. Grounded on
// a POSIX message-queue implementation translated from byte-copy form to a
// generic Go slot. Slots are indexed modulo depth, which is fixed at
// construction; the buffer never grows.
type genericQueue[T any] struct {
	clock osaltime.Clock
	depth int

	mu       sync.Mutex
	notEmpty *sync.Cond
	notFull  *sync.Cond

	buf   []T
	head  int
	count int

	dynamic bool
}

var errQueueDepth = queueDepthError{}

type queueDepthError struct{}

func (queueDepthError) Error() string { return "queue: depth must be non-zero" }

// NewGeneric constructs the condvar-based reference back-end.
func NewGeneric[T any](depth int, attr *Attr) (Queue[T], error) {
	if depth <= 0 {
		return nil, errQueueDepth
	}
	buf, dynamic, err := resolveBuffer[T](depth, attr)
	if err != nil {
		return nil, err
	}
	q := &genericQueue[T]{clock: osaltime.System, depth: depth, buf: buf, dynamic: dynamic}
	q.notEmpty = sync.NewCond(&q.mu)
	q.notFull = sync.NewCond(&q.mu)
	return q, nil
}

func (q *genericQueue[T]) tail() int {
	return (q.head + q.count) % q.depth
}

func (q *genericQueue[T]) Send(item T, timeout status.Duration) status.Status {
	q.mu.Lock()
	defer q.mu.Unlock()

	deadline, immediate, forever := status.Deadline(q.clock.Now(), timeout)

	for q.count == q.depth {
		if immediate {
			return status.Timeout
		}
		if !forever {
			remaining := time.Until(deadline)
			if remaining <= 0 {
				return status.Timeout
			}
			condWaitTimeout(q.notFull, remaining)
			continue
		}
		q.notFull.Wait()
	}

	q.buf[q.tail()] = item
	q.count++
	q.notEmpty.Signal()
	return status.Success
}

func (q *genericQueue[T]) Receive(timeout status.Duration) (T, status.Status) {
	q.mu.Lock()
	defer q.mu.Unlock()

	deadline, immediate, forever := status.Deadline(q.clock.Now(), timeout)

	for q.count == 0 {
		if immediate {
			var zero T
			return zero, status.Timeout
		}
		if !forever {
			remaining := time.Until(deadline)
			if remaining <= 0 {
				var zero T
				return zero, status.Timeout
			}
			condWaitTimeout(q.notEmpty, remaining)
			continue
		}
		q.notEmpty.Wait()
	}

	item := q.buf[q.head]
	var zero T
	q.buf[q.head] = zero // avoid retaining references past the slot's logical lifetime
	q.head = (q.head + 1) % q.depth
	q.count--
	q.notFull.Signal()
	return item, status.Success
}

func (q *genericQueue[T]) Count() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.count
}

func (q *genericQueue[T]) Reset() status.Status {
	q.mu.Lock()
	defer q.mu.Unlock()
	var zero T
	for i := range q.buf {
		q.buf[i] = zero
	}
	q.head = 0
	q.count = 0
	q.notFull.Broadcast()
	return status.Success
}

func (q *genericQueue[T]) Close() status.Status {
	if q.dynamic {
		osalmem.DiscardSlice(q.buf)
	}
	return status.Success
}

func condWaitTimeout(cond *sync.Cond, d time.Duration) {
	timer := time.AfterFunc(d, cond.Broadcast)
	defer timer.Stop()
	cond.Wait()
}
