package queue

import (
	"time"

	"github.com/dogukanarat/go-osal/status"
)

// hostQueue wraps a native Go buffered channel, the thin shim back-end.
// Unlike mutex and semaphore, Go channels are already a bounded blocking
// FIFO, so no emulation is needed here — only the timeout-sentinel
// translation the contract requires. A Go channel's internal buffer is
// opaque and never caller-visible, so unlike the generic back-end this one
// cannot adopt caller-supplied storage; Attr.CB is rejected outright
// rather than silently ignored.
type hostQueue[T any] struct {
	ch chan T
}

// NewHost constructs the channel-based host back-end.
func NewHost[T any](depth int, attr *Attr) (Queue[T], error) {
	if depth <= 0 {
		return nil, errQueueDepth
	}
	if attr != nil && attr.CB != nil {
		return nil, errQueueControlBlockUnsupported
	}
	q := &hostQueue[T]{ch: make(chan T, depth)}
	return q, nil
}

func (q *hostQueue[T]) Send(item T, timeout status.Duration) status.Status {
	switch timeout {
	case status.NoWait:
		select {
		case q.ch <- item:
			return status.Success
		default:
			return status.Timeout
		}
	case status.WaitForever:
		q.ch <- item
		return status.Success
	default:
		timer := time.NewTimer(time.Duration(timeout) * time.Millisecond)
		defer timer.Stop()
		select {
		case q.ch <- item:
			return status.Success
		case <-timer.C:
			return status.Timeout
		}
	}
}

func (q *hostQueue[T]) Receive(timeout status.Duration) (T, status.Status) {
	switch timeout {
	case status.NoWait:
		select {
		case item := <-q.ch:
			return item, status.Success
		default:
			var zero T
			return zero, status.Timeout
		}
	case status.WaitForever:
		return <-q.ch, status.Success
	default:
		timer := time.NewTimer(time.Duration(timeout) * time.Millisecond)
		defer timer.Stop()
		select {
		case item := <-q.ch:
			return item, status.Success
		case <-timer.C:
			var zero T
			return zero, status.Timeout
		}
	}
}

func (q *hostQueue[T]) Count() int {
	return len(q.ch)
}

// Reset drains whatever is currently buffered. Concurrent sends racing with
// Reset may still land after the drain completes — fairness among
// concurrent senders/receivers is left unspecified.
func (q *hostQueue[T]) Reset() status.Status {
	for {
		select {
		case <-q.ch:
		default:
			return status.Success
		}
	}
}

func (q *hostQueue[T]) Close() status.Status {
	return status.Success
}
