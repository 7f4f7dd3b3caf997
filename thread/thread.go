// Package thread implements the portable thread-creation and lifecycle
// contract: entry-point creation with opt-in static or dynamic control-block
// storage, yield, self-identity, and optional join.
//
// There is only one back-end here, the same way flags has only one: a Go
// program has exactly one real scheduler (goroutines), so the "generic"
// oracle and the "host" shim the rest of this module distinguishes would be
// identical code. Priority is carried as metadata only — goroutines aren't
// priority-scheduled; the mapping just needs to preserve relative order.
package thread

import (
	"context"
	"runtime"
	"time"

	"github.com/dogukanarat/go-osal/internal/goroutineid"
	"github.com/dogukanarat/go-osal/osalmem"
	"github.com/dogukanarat/go-osal/status"
)

// Priority ordinals. The ordinal values themselves carry no scheduling
// weight on this back-end; only the relative order Low < Normal < High <
// Realtime is part of the contract.
type Priority int

const (
	Normal   Priority = 0
	Low      Priority = 1
	High     Priority = 3
	Realtime Priority = 4
)

// Attr configures thread creation.
type Attr struct {
	// Name is a diagnostic label; it has no effect on behavior.
	Name string
	// StackSize is advisory only on this back-end: the Go runtime grows
	// goroutine stacks on demand, so there is no fixed stack to size.
	StackSize int
	// StackMem, if non-nil, would mark the thread as using caller-supplied
	// stack storage on a back-end with a fixed stack; unused here, kept
	// for attribute-struct parity with the original contract.
	StackMem []byte
	// Priority is advisory metadata; see the package doc comment.
	Priority Priority
	// CB, if non-nil, supplies caller-owned control-block storage: a
	// *ControlBlock the thread's name/priority bookkeeping lives in
	// directly, rather than a block this package allocates itself.
	// Construction fails if CB is non-nil and not a *ControlBlock. Static
	// storage has no other observable effect here, since a goroutine's own
	// scheduling state (unlike a native thread's TCB) is never caller
	// storage regardless.
	CB any
}

// ControlBlock is the bookkeeping state a thread's name and priority live
// in — the Go analogue of a statically-allocated TCB a caller can place in
// its own struct or global. Supply one via Attr.CB to back a thread with
// storage the caller owns.
type ControlBlock struct {
	name     string
	priority Priority
}

type controlBlockTypeError struct{}

func (controlBlockTypeError) Error() string { return "thread: Attr.CB must be a *thread.ControlBlock" }

var errControlBlockType = controlBlockTypeError{}

// resolveControlBlock type-asserts attr.CB into *ControlBlock when
// supplied, populating it from a, or allocates a fresh one otherwise.
func resolveControlBlock(a Attr) (*ControlBlock, error) {
	var cb *ControlBlock
	if a.CB == nil {
		cb = osalmem.New[ControlBlock]()
	} else {
		var ok bool
		cb, ok = a.CB.(*ControlBlock)
		if !ok {
			return nil, errControlBlockType
		}
	}
	cb.name = a.Name
	cb.priority = a.Priority
	return cb, nil
}

// Thread is a handle to an OSAL-created goroutine.
type Thread struct {
	cb *ControlBlock

	cancel context.CancelFunc
	done   chan struct{}
}

var registry = goroutineid.NewTable[*Thread]()

// New launches a goroutine that invokes entry(arg), registering the
// returned *Thread in the thread-local-storage emulation before entry runs
// and deregistering it on return — the same entry-trampoline shape a
// native thread wrapper uses to bridge a C-style entry point into a
// runtime-managed one.
func New(entry func(arg any), arg any, attr *Attr) (*Thread, error) {
	if entry == nil {
		return nil, errNilEntry
	}

	a := Attr{}
	if attr != nil {
		a = *attr
	}

	cb, err := resolveControlBlock(a)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	t := &Thread{
		cb:     cb,
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go func() {
		defer close(t.done)
		registry.Set(t)
		defer registry.Delete()

		select {
		case <-ctx.Done():
			// Delete was called before the goroutine ever ran entry;
			// skip entry entirely rather than run it on a canceled thread.
			return
		default:
		}

		entry(arg)
	}()

	return t, nil
}

type nilEntryError struct{}

func (nilEntryError) Error() string { return "thread: nil entry" }

var errNilEntry = nilEntryError{}

// Delete targets t for termination, or the calling goroutine itself when t
// is nil. For a target, Delete cancels the target's context, which the
// trampoline checks once, before calling entry: a target that has not yet
// started entry never runs it. An entry function that is already running
// is not interrupted and runs to completion; Delete still returns
// status.Success in that case.
//
// Self-delete (t == nil) unwinds the calling goroutine's own stack via
// runtime.Goexit, which never returns to the caller. Unlike a bare-metal
// target, where a thread deleting itself can leak its stack allocation,
// the Go runtime reclaims a goroutine's stack the moment it exits — a
// deliberate, documented divergence from that concern.
func Delete(t *Thread) status.Status {
	if t == nil {
		cur, ok := registry.Get()
		if !ok {
			return status.Parameter
		}
		cur.cancel()
		runtime.Goexit()
		return status.Success // unreachable; Goexit never returns
	}

	t.cancel()
	return status.Success
}

// Yield is a cooperative scheduling hint; it always returns.
func Yield() {
	runtime.Gosched()
}

// GetID returns the Thread corresponding to the calling goroutine, or nil
// if the calling goroutine was not created via New.
func GetID() *Thread {
	t, ok := registry.Get()
	if !ok {
		return nil
	}
	return t
}

// Join waits for t to exit, or until timeout elapses. A goroutine can
// always be waited on via a done channel, so this back-end never returns
// NotImplemented; that status is reserved for a hypothetical future
// back-end without a native join primitive.
func (t *Thread) Join(timeout status.Duration) status.Status {
	if timeout == status.NoWait {
		select {
		case <-t.done:
			return status.Success
		default:
			return status.Timeout
		}
	}
	if timeout == status.WaitForever {
		<-t.done
		return status.Success
	}

	timer := time.NewTimer(time.Duration(timeout) * time.Millisecond)
	defer timer.Stop()
	select {
	case <-t.done:
		return status.Success
	case <-timer.C:
		return status.Timeout
	}
}

// Done returns the channel closed when t's entry function returns, for
// cooperative-shutdown composition with select statements alongside
// flags/queue sentinels.
func (t *Thread) Done() <-chan struct{} {
	return t.done
}

// Name returns the thread's diagnostic label.
func (t *Thread) Name() string { return t.cb.name }

// PriorityOf returns the thread's advisory priority.
func (t *Thread) PriorityOf() Priority { return t.cb.priority }
