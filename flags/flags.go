// Package flags implements the portable event flag group: a 32-bit word
// with set/clear/get/wait (ANY or ALL), guarded by a single mutex and one
// broadcast condition variable. Every set/clear/wait is one atomic
// critical section relative to the others, so concurrent waiters on
// overlapping masks are each independently re-evaluated on every set, and
// each clears only the bits it matched.
//
// There is only one back-end: Go has no native event-group primitive on
// any target (unlike FreeRTOS's EventGroupWaitBits), so both the reference
// and the host shim would be identical condvar-based code. This mirrors
// _examples/original_source/src/macos/osal_event_flags.c, which is itself
// a condvar emulation of the native FreeRTOS event group.
package flags

import (
	"sync"
	"time"

	"github.com/dogukanarat/go-osal/osalmem"
	"github.com/dogukanarat/go-osal/osaltime"
	"github.com/dogukanarat/go-osal/status"
)

// Wait mode/modifier bits, combinable.
const (
	WaitAny uint32 = 0x0
	WaitAll uint32 = 0x1
	NoClear uint32 = 0x2
)

// Attr configures flag-group creation.
type Attr struct {
	// Name is a diagnostic label; it has no effect on behavior.
	Name string
	// CB, if non-nil, supplies caller-owned control-block storage: a
	// *uint32 the flag word lives in directly, rather than a word this
	// package allocates itself. Construction fails if CB is non-nil and
	// not a *uint32. Static storage marks the group as statically owned,
	// so Close leaves it intact rather than freeing it.
	CB any
}

type controlBlockTypeError struct{}

func (controlBlockTypeError) Error() string { return "flags: Attr.CB must be a *uint32" }

var errControlBlockType = controlBlockTypeError{}

// Flags is a 32-bit event flag group.
type Flags struct {
	clock osaltime.Clock

	mu   sync.Mutex
	cond *sync.Cond

	value   *uint32
	dynamic bool
}

// New constructs an event flag group, initial value 0. Returns an error
// without constructing anything if attr.CB is non-nil and not a *uint32.
func New(attr *Attr) (*Flags, error) {
	value, dynamic, err := resolveValue(attr)
	if err != nil {
		return nil, err
	}
	f := &Flags{clock: osaltime.System, value: value, dynamic: dynamic}
	f.cond = sync.NewCond(&f.mu)
	return f, nil
}

// resolveValue type-asserts attr.CB into *uint32 when supplied, zeroing
// it, or allocates a fresh one otherwise. dynamic reports whether this
// call allocated the word, and so whether Close must release it.
func resolveValue(attr *Attr) (value *uint32, dynamic bool, err error) {
	if attr == nil || attr.CB == nil {
		return osalmem.New[uint32](), true, nil
	}
	value, ok := attr.CB.(*uint32)
	if !ok {
		return nil, false, errControlBlockType
	}
	*value = 0
	return value, false, nil
}

// Set performs value |= bits, returning the new value.
func (f *Flags) Set(bits uint32) uint32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	*f.value |= bits
	f.cond.Broadcast()
	return *f.value
}

// Clear performs value &= ^bits, returning the value as it was before
// clearing.
func (f *Flags) Clear(bits uint32) uint32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	previous := *f.value
	*f.value &^= bits
	return previous
}

// Get returns a snapshot of the current value.
func (f *Flags) Get() uint32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return *f.value
}

// Wait blocks until the condition on mask is satisfied per opts, then
// returns the matching bits (clearing them unless NoClear is set). Returns
// 0 on timeout.
func (f *Flags) Wait(mask uint32, opts uint32, timeout status.Duration) (uint32, status.Status) {
	waitAll := opts&WaitAll != 0
	clear := opts&NoClear == 0

	f.mu.Lock()
	defer f.mu.Unlock()

	deadline, immediate, forever := status.Deadline(f.clock.Now(), timeout)

	for {
		current := *f.value & mask
		satisfied := current != 0
		if waitAll {
			satisfied = current == mask
		}

		if satisfied {
			if clear {
				*f.value &^= current
			}
			return current, status.Success
		}

		if immediate {
			return 0, status.Timeout
		}
		if !forever {
			remaining := time.Until(deadline)
			if remaining <= 0 {
				return 0, status.Timeout
			}
			condWaitTimeout(f.cond, remaining)
			continue
		}
		f.cond.Wait()
	}
}

// Close releases the dynamically-allocated control block, if any; a
// caller-supplied one (Attr.CB) is left untouched.
func (f *Flags) Close() status.Status {
	if f.dynamic {
		osalmem.Discard(f.value)
	}
	return status.Success
}

func condWaitTimeout(cond *sync.Cond, d time.Duration) {
	timer := time.AfterFunc(d, cond.Broadcast)
	defer timer.Stop()
	cond.Wait()
}
