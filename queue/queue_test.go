package queue

import (
	"testing"
	"time"

	"github.com/dogukanarat/go-osal/status"
	"github.com/stretchr/testify/require"
)

func genericFactory(depth int, attr *Attr) (Queue[int], error) { return NewGeneric[int](depth, attr) }
func hostFactory(depth int, attr *Attr) (Queue[int], error)    { return NewHost[int](depth, attr) }

var backends = [...]struct {
	name    string
	factory func(depth int, attr *Attr) (Queue[int], error)
}{
	{"generic", genericFactory},
	{"host", hostFactory},
}

func TestQueue_InvalidDepth(t *testing.T) {
	for _, be := range backends {
		t.Run(be.name, func(t *testing.T) {
			_, err := be.factory(0, nil)
			require.Error(t, err)
		})
	}
}

// TestQueue_FIFO realizes spec scenario 3: create queue(depth=5), send
// 0,1,2,3,4 with WAIT_FOREVER, receive five times in the same order.
func TestQueue_FIFO(t *testing.T) {
	for _, be := range backends {
		t.Run(be.name, func(t *testing.T) {
			q, err := be.factory(5, nil)
			require.NoError(t, err)

			for i := 0; i < 5; i++ {
				require.Equal(t, status.Success, q.Send(i, status.WaitForever))
			}
			require.Equal(t, 5, q.Count())

			for i := 0; i < 5; i++ {
				v, st := q.Receive(status.WaitForever)
				require.Equal(t, status.Success, st)
				require.Equal(t, i, v)
			}
			require.Equal(t, 0, q.Count())
		})
	}
}

func TestQueue_SendTimeoutWhenFull(t *testing.T) {
	for _, be := range backends {
		t.Run(be.name, func(t *testing.T) {
			q, err := be.factory(1, nil)
			require.NoError(t, err)
			require.Equal(t, status.Success, q.Send(1, status.NoWait))

			start := time.Now()
			st := q.Send(2, status.Duration(10))
			require.Equal(t, status.Timeout, st)
			require.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)

			// no partial state: the full item is still there, unchanged
			v, st := q.Receive(status.NoWait)
			require.Equal(t, status.Success, st)
			require.Equal(t, 1, v)
		})
	}
}

func TestQueue_ReceiveTimeoutWhenEmpty(t *testing.T) {
	for _, be := range backends {
		t.Run(be.name, func(t *testing.T) {
			q, err := be.factory(1, nil)
			require.NoError(t, err)

			start := time.Now()
			_, st := q.Receive(status.Duration(10))
			require.Equal(t, status.Timeout, st)
			require.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)
		})
	}
}

func TestQueue_Reset(t *testing.T) {
	for _, be := range backends {
		t.Run(be.name, func(t *testing.T) {
			q, err := be.factory(3, nil)
			require.NoError(t, err)
			require.Equal(t, status.Success, q.Send(1, status.NoWait))
			require.Equal(t, status.Success, q.Send(2, status.NoWait))

			require.Equal(t, status.Success, q.Reset())
			require.Equal(t, 0, q.Count())

			require.Equal(t, status.Success, q.Send(9, status.NoWait))
			v, st := q.Receive(status.NoWait)
			require.Equal(t, status.Success, st)
			require.Equal(t, 9, v)
		})
	}
}

// TestQueue_StaticControlBlock_Generic realizes spec scenario 8 for the
// static half of the control-block contract: a caller-supplied []T backs
// the ring buffer directly, and Close leaves it intact.
func TestQueue_StaticControlBlock_Generic(t *testing.T) {
	cb := make([]int, 3)
	q, err := genericFactory(3, &Attr{CB: cb})
	require.NoError(t, err)

	require.Equal(t, status.Success, q.Send(7, status.NoWait))
	require.Equal(t, 7, cb[0])

	require.Equal(t, status.Success, q.Close())
	// Close on a statically-owned queue must not disturb the caller's
	// storage.
	require.Equal(t, 7, cb[0])
}

func TestQueue_ControlBlockSizeMismatch_Generic(t *testing.T) {
	_, err := genericFactory(3, &Attr{CB: make([]int, 2)})
	require.Error(t, err)
}

func TestQueue_ControlBlockTypeMismatch_Generic(t *testing.T) {
	_, err := genericFactory(3, &Attr{CB: "not-a-slice"})
	require.Error(t, err)
}

func TestQueue_ControlBlockUnsupported_Host(t *testing.T) {
	_, err := hostFactory(3, &Attr{CB: make([]int, 3)})
	require.Error(t, err)
}

func TestQueue_BlockedSenderWakesOnReceive(t *testing.T) {
	for _, be := range backends {
		t.Run(be.name, func(t *testing.T) {
			q, err := be.factory(1, nil)
			require.NoError(t, err)
			require.Equal(t, status.Success, q.Send(1, status.NoWait))

			done := make(chan status.Status, 1)
			go func() { done <- q.Send(2, status.WaitForever) }()

			time.Sleep(10 * time.Millisecond) // give the sender a chance to block
			v, st := q.Receive(status.WaitForever)
			require.Equal(t, status.Success, st)
			require.Equal(t, 1, v)

			require.Equal(t, status.Success, <-done)
		})
	}
}
