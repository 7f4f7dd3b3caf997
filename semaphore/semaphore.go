// Package semaphore implements the portable bounded counting semaphore:
// take/give against a count in [0, max], with give on a full semaphore
// returning a resource-exhaustion status rather than exceeding the ceiling.
package semaphore

import (
	"github.com/dogukanarat/go-osal/osalmem"
	"github.com/dogukanarat/go-osal/status"
)

// Attr configures semaphore creation. Max is required and must be >= 1;
// Initial must be <= Max.
type Attr struct {
	// Name is a diagnostic label; it has no effect on behavior.
	Name string
	// Max is the ceiling the count may never exceed.
	Max uint32
	// Initial is the count at construction.
	Initial uint32
	// CB, if non-nil, supplies caller-owned control-block storage: a
	// *ControlBlock the available-unit count lives in directly, rather
	// than in a block this package allocates itself. Construction fails
	// if CB is non-nil and not a *ControlBlock. Static storage marks the
	// semaphore as statically owned, so Close leaves it intact rather
	// than freeing anything.
	CB any
}

func validate(attr *Attr) (Attr, bool) {
	if attr == nil {
		return Attr{}, false
	}
	if attr.Max == 0 || attr.Initial > attr.Max {
		return Attr{}, false
	}
	return *attr, true
}

// ControlBlock is the mutable state a semaphore's unit count lives in —
// the Go analogue of a statically-allocated sem_t a caller can place in
// its own struct or global. Supply one via Attr.CB to back a semaphore
// with storage the caller owns. The generic back-end guards count under
// its own mutex; the host back-end updates it atomically.
type ControlBlock struct {
	count int64
}

type controlBlockTypeError struct{}

func (controlBlockTypeError) Error() string {
	return "semaphore: Attr.CB must be a *semaphore.ControlBlock"
}

var errControlBlockType = controlBlockTypeError{}

// resolveControlBlock type-asserts attr.CB into *ControlBlock when
// supplied, initializing it to initial, or allocates a fresh one
// otherwise. dynamic reports whether this call allocated the block, and so
// whether Close must release it. attr is assumed already validated.
func resolveControlBlock(attr *Attr, initial uint32) (cb *ControlBlock, dynamic bool, err error) {
	if attr.CB == nil {
		cb = osalmem.New[ControlBlock]()
		cb.count = int64(initial)
		return cb, true, nil
	}
	cb, ok := attr.CB.(*ControlBlock)
	if !ok {
		return nil, false, errControlBlockType
	}
	cb.count = int64(initial)
	return cb, false, nil
}

// Semaphore is the interface both back-ends satisfy.
type Semaphore interface {
	// Take decrements the count when positive, else blocks up to timeout.
	Take(timeout status.Duration) status.Status
	// Give increments the count, waking one waiter. Returns status.Resource
	// if the count is already at Max.
	Give() status.Status
	// Count returns a best-effort snapshot; may be stale the instant it
	// returns.
	Count() uint32
	// Close releases any dynamically-allocated resources.
	Close() status.Status
}
