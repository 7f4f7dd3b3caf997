// Package osalmem is the trivial heap allocation façade used by back-ends
// that allocate control blocks or buffers dynamically, rather than adopting
// caller-supplied storage. On a hosted Go runtime this routes to the
// garbage-collected heap; on a back-end with a native kernel allocator the
// same two functions would route there instead.
package osalmem

// Alloc returns a byte slice of at least size bytes of zeroed memory,
// allocated by the Go runtime. Go has no allocation-failure return path
// analogous to malloc returning NULL under normal operation, so Alloc never
// fails; a zero or negative size returns an empty, non-nil slice.
func Alloc(size int) []byte {
	if size < 0 {
		size = 0
	}
	return make([]byte, size)
}

// Free releases memory previously returned by Alloc. On this back-end it is
// a documented no-op: the Go garbage collector reclaims the backing array
// once nothing references it, so there is nothing for Free to do beyond
// giving back-ends a symmetric call to make, matching the original
// alloc/free façade.
func Free(_ []byte) {}

// New returns a zeroed *T, the typed counterpart to Alloc for back-ends
// whose control blocks are structs rather than raw byte buffers.
func New[T any]() *T {
	return new(T)
}

// Discard is the typed counterpart to Free; like Free, a documented no-op
// on this back-end.
func Discard[T any](_ *T) {}

// NewSlice returns a zeroed slice of n elements of T, the typed
// counterpart to Alloc for back-ends whose buffers hold values rather than
// bytes.
func NewSlice[T any](n int) []T {
	if n < 0 {
		n = 0
	}
	return make([]T, n)
}

// DiscardSlice is the typed counterpart to Free for a NewSlice allocation.
func DiscardSlice[T any](_ []T) {}
