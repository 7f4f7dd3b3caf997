// Package queue implements the portable bounded FIFO message queue: a
// fixed-capacity buffer of depth slots, blocking send and receive with
// timeout, strict first-in-first-out ordering.
//
// The original contract copies item_size bytes by value; this package
// expresses that as a Go type parameter instead, so Queue[T] holds values
// of T directly rather than raw bytes.
//
// Two back-ends are provided, as for mutex and semaphore. Generic is the
// oracle: a ring buffer guarded by one mutex and two condition variables
// (notEmpty, notFull). Host wraps a native Go buffered channel, which is
// itself a bounded blocking FIFO — the thin shim here needs no emulation,
// unlike mutex/semaphore, since Go channels already are what the contract
// asks for.
package queue

import (
	"github.com/dogukanarat/go-osal/osalmem"
	"github.com/dogukanarat/go-osal/status"
)

// Attr configures queue creation.
type Attr struct {
	// Name is a diagnostic label; it has no effect on behavior.
	Name string
	// CB, if non-nil, supplies the queue's backing storage directly: a
	// []T of length exactly depth that the ring buffer indexes into,
	// rather than a slice this package allocates itself. Construction
	// fails if CB is non-nil, not a []T, or not exactly depth elements
	// long — per the caller-supplied-buffer size-check requirement. Static
	// storage marks the queue as statically owned, so Close leaves it
	// intact rather than freeing it. The host back-end, whose buffering is
	// an opaque native channel with no caller-visible storage, does not
	// support CB and fails construction if one is supplied.
	CB any
}

type queueControlBlockTypeError struct{}

func (queueControlBlockTypeError) Error() string { return "queue: Attr.CB must be a []T" }

var errQueueControlBlockType = queueControlBlockTypeError{}

type queueControlBlockSizeError struct{}

func (queueControlBlockSizeError) Error() string { return "queue: Attr.CB length must equal depth" }

var errQueueControlBlockSize = queueControlBlockSizeError{}

type queueControlBlockUnsupportedError struct{}

func (queueControlBlockUnsupportedError) Error() string {
	return "queue: host back-end does not support caller-supplied storage"
}

var errQueueControlBlockUnsupported = queueControlBlockUnsupportedError{}

// resolveBuffer type-asserts attr.CB into a []T of length depth when
// supplied, zeroing it, or allocates a fresh one otherwise. dynamic
// reports whether this call allocated the buffer, and so whether Close
// must release it.
func resolveBuffer[T any](depth int, attr *Attr) (buf []T, dynamic bool, err error) {
	if attr == nil || attr.CB == nil {
		return osalmem.NewSlice[T](depth), true, nil
	}
	buf, ok := attr.CB.([]T)
	if !ok {
		return nil, false, errQueueControlBlockType
	}
	if len(buf) != depth {
		return nil, false, errQueueControlBlockSize
	}
	var zero T
	for i := range buf {
		buf[i] = zero
	}
	return buf, false, nil
}

// Queue is the interface both back-ends satisfy.
type Queue[T any] interface {
	// Send copies item into the tail slot, blocking while full.
	Send(item T, timeout status.Duration) status.Status
	// Receive copies the head slot out, advancing, blocking while empty.
	Receive(timeout status.Duration) (T, status.Status)
	// Count returns a best-effort occupancy snapshot.
	Count() int
	// Reset discards all items and wakes all senders.
	Reset() status.Status
	// Close releases any dynamically-allocated resources.
	Close() status.Status
}
