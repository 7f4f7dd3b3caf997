// Package mutex implements the portable mutual-exclusion contract: optional
// recursive acquisition, optional timed locking, and the advisory
// priority-inheritance/robust attribute bits carried through unchanged for
// documentation parity with the original contract's bit layout.
//
// Two back-ends are provided. Generic is the oracle implementation, built
// from sync.Mutex, sync.Cond, and owner/depth bookkeeping — it supports a
// native timed lock by waiting on a condition variable against an absolute
// deadline. Host wraps sync.Mutex directly and emulates the timed lock via
// bounded TryLock polling, the position the original contract's macOS
// back-end is in (no native pthread_mutex_timedlock).
package mutex

import (
	"github.com/dogukanarat/go-osal/internal/goroutineid"
	"github.com/dogukanarat/go-osal/osalmem"
	"github.com/dogukanarat/go-osal/status"
)

// Advisory attribute bits, preserved from the original contract's bit
// layout for anyone bridging to it; this package's Attr exposes them as
// named boolean fields rather than a raw bitmask.
const (
	Recursive   = 0x1
	PrioInherit = 0x2
	Robust      = 0x4
)

// Attr configures mutex creation. A nil Attr is recursive by default,
// matching the original contract's "NULL attr means recursive by default
// where natively convenient" behavior.
type Attr struct {
	// Name is a diagnostic label; it has no effect on behavior.
	Name string
	// Recursive allows the owning goroutine to re-acquire the mutex,
	// incrementing a depth counter rather than blocking.
	Recursive bool
	// PrioInherit is an advisory hint; both back-ends in this module treat
	// it as a no-op, same as the contract permits.
	PrioInherit bool
	// Robust is an advisory hint; both back-ends in this module treat it
	// as a no-op, same as the contract permits.
	Robust bool
	// CB, if non-nil, supplies caller-owned control-block storage: a
	// *ControlBlock the mutex's owner/depth bookkeeping lives in directly,
	// rather than in a block this package allocates itself. Construction
	// fails if CB is non-nil and not a *ControlBlock. Static storage marks
	// the mutex as statically owned, so Close leaves it intact rather than
	// freeing anything.
	CB any
}

// ControlBlock is the mutable state a mutex's ownership bookkeeping lives
// in — the Go analogue of a statically-allocated pthread_mutex_t a caller
// can place in its own struct or global. Supply one via Attr.CB to back a
// mutex with storage the caller owns.
type ControlBlock struct {
	owner owner
}

type controlBlockTypeError struct{}

func (controlBlockTypeError) Error() string { return "mutex: Attr.CB must be a *mutex.ControlBlock" }

var errControlBlockType = controlBlockTypeError{}

// resolveControlBlock type-asserts attr.CB into *ControlBlock when
// supplied, resetting it to a clean state, or allocates a fresh one
// otherwise. dynamic reports whether this call allocated the block, and so
// whether Close must release it.
func resolveControlBlock(attr *Attr) (cb *ControlBlock, dynamic bool, err error) {
	if attr == nil || attr.CB == nil {
		return osalmem.New[ControlBlock](), true, nil
	}
	cb, ok := attr.CB.(*ControlBlock)
	if !ok {
		return nil, false, errControlBlockType
	}
	*cb = ControlBlock{}
	return cb, false, nil
}

func normalizeAttr(attr *Attr) Attr {
	if attr == nil {
		return Attr{Recursive: true}
	}
	return *attr
}

// Mutex is the interface both back-ends satisfy; callers depend on this,
// never on the concrete type, matching the handle-opacity convention of
// the original contract, where each primitive is a single opaque type.
type Mutex interface {
	// Lock blocks until acquired, timeout expires, or a non-timeout
	// failure occurs.
	Lock(timeout status.Duration) status.Status
	// Unlock releases one level of ownership. status.Error is returned if
	// the calling goroutine is not the owner, or the mutex is not held.
	Unlock() status.Status
	// Close releases any dynamically-allocated resources. Undefined if
	// called with concurrent holders or waiters.
	Close() status.Status
}

// owner tracks the current holder identity and recursion depth, shared by
// both back-ends.
type owner struct {
	id    uint64
	held  bool
	depth int
}

func (o *owner) isCurrentOwner() bool {
	return o.held && o.id == goroutineid.Current()
}
