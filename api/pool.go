// File: api/pool.go
// Author: momentics <momentics@gmail.com>
//
// Defines abstract pooling APIs: slot allocators for container storage and
// object reuse.

package api

import "math"

// MaxSlots is the largest slot count any allocator will hand out.
const MaxSlots = math.MaxInt32

// Allocator hands out slot buffers for container storage.
type Allocator[T any] interface {
	// Allocate returns a buffer with len == cap >= n. The count may be
	// rounded up. Panics when n is not in [1, MaxSlots].
	Allocate(n int) []T

	// Free returns a buffer obtained from Allocate. The caller must not
	// touch buf afterwards.
	Free(buf []T)
}

// ObjectPool provides generic pooling of Go objects allocated transiently
type ObjectPool[T any] interface {
	// Get returns an available instance from pool
	Get() T

	// Put returns an instance for reuse
	Put(obj T)
}
