// File: pool/heap.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

import "github.com/momentics/hioload-vec/api"

// HeapAllocator delegates to the Go heap: exact-size make, no-op free.
type HeapAllocator[T any] struct{}

// Allocate implements api.Allocator.
func (HeapAllocator[T]) Allocate(n int) []T {
	checkRequest(n)
	return make([]T, n)
}

// Free implements api.Allocator.
func (HeapAllocator[T]) Free([]T) {}

// Default returns the allocator containers use when none is configured.
func Default[T any]() api.Allocator[T] {
	return HeapAllocator[T]{}
}

func checkRequest(n int) {
	if n <= 0 {
		api.Fatal(api.ErrCodeInvalidArgument, "pool: non-positive slot count", "n", n)
	}
	if n > api.MaxSlots {
		api.Fatal(api.ErrCodeCapacityExceeded, "pool: slot count exceeds limit", "n", n, "max", api.MaxSlots)
	}
}

var _ api.Allocator[int] = HeapAllocator[int]{}
