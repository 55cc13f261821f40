// Package pool
// Author: momentics <momentics@gmail.com>
//
// Block allocator service for hioload-vec containers.
// SlotPool rounds requests up to power-of-two size classes and recycles
// freed slot buffers through lock-free free lists; HeapAllocator hands
// requests straight to the Go heap. SyncPool is a typed sync.Pool.
// See slot_pool.go, heap.go, objpool.go for implementation details.
package pool
