// File: ring/ring.go
// Package ring implements a bounded single-producer/single-consumer
// circular queue over storage.Slots.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// head is owned by the consumer, tail by the producer, both modulo the
// slot count. The queue is empty when head == tail and full when
// (tail+1) % n == head, so one slot always stays unused.
// The producer writes the slot before publishing tail; the consumer reads
// the slot before publishing head. Exactly one goroutine may call Put and
// exactly one may call Get concurrently; nothing else may run alongside.

package ring

import (
	"sync/atomic"

	"golang.org/x/sys/cpu"

	"github.com/momentics/hioload-vec/api"
	"github.com/momentics/hioload-vec/storage"
)

// Ensure compile-time interface compliance.
var _ api.Ring[any] = (*Ring[any])(nil)

// Ring is a lock-free SPSC ring buffer.
type Ring[T any] struct {
	head   atomic.Uint32
	_      cpu.CacheLinePad
	tail   atomic.Uint32
	_      cpu.CacheLinePad
	size   uint32
	slots  *storage.Slots[T]
	traits api.Traits[T]
}

type config[T any] struct {
	traits api.Traits[T]
	opts   []storage.Option[T]
}

// Option customizes ring construction.
type Option[T any] func(*config[T])

// WithTraits runs traits.Construct on Put and traits.Destroy on Close.
func WithTraits[T any](traits api.Traits[T]) Option[T] {
	return func(c *config[T]) { c.traits = traits }
}

// WithAllocator sets the block allocator for the slot buffer.
func WithAllocator[T any](a api.Allocator[T]) Option[T] {
	return func(c *config[T]) { c.opts = append(c.opts, storage.WithAllocator(a)) }
}

// New allocates a ring of n slots, n-1 of them usable. n must be at
// least 2.
func New[T any](n int, opts ...Option[T]) *Ring[T] {
	if n < 2 || n > api.MaxSlots {
		api.Fatal(api.ErrCodeInvalidArgument, "ring: slot count out of range", "n", n)
	}
	var c config[T]
	for _, opt := range opts {
		opt(&c)
	}
	slots := storage.New[T](n, c.opts...)
	slots.Resize(n)
	return &Ring[T]{
		size:   uint32(n),
		slots:  slots,
		traits: c.traits,
	}
}

// Put queues elem; it returns false without side effects when full.
// Producer only.
func (r *Ring[T]) Put(elem T) bool {
	tail := r.tail.Load()
	next := (tail + 1) % r.size
	if next == r.head.Load() {
		return false
	}
	*r.slots.Ref(int(tail)) = r.traits.Make(elem, api.Adopt)
	r.tail.Store(next)
	return true
}

// Get dequeues the oldest element; ok is false when empty. The caller
// owns the returned element. Consumer only.
func (r *Ring[T]) Get() (elem T, ok bool) {
	head := r.head.Load()
	if head == r.tail.Load() {
		return elem, false
	}
	slot := r.slots.Ref(int(head))
	elem = *slot
	var zero T
	*slot = zero
	r.head.Store((head + 1) % r.size)
	return elem, true
}

// Empty reports head == tail.
func (r *Ring[T]) Empty() bool {
	return r.head.Load() == r.tail.Load()
}

// Full reports whether the next Put would fail.
func (r *Ring[T]) Full() bool {
	return (r.tail.Load()+1)%r.size == r.head.Load()
}

// Len returns the number of queued elements. Exact only when called from
// the producer or consumer goroutine.
func (r *Ring[T]) Len() int {
	head, tail := r.head.Load(), r.tail.Load()
	return int((tail + r.size - head) % r.size)
}

// Cap returns the usable capacity, one less than the slot count.
func (r *Ring[T]) Cap() int { return int(r.size) - 1 }

// Range visits queued elements oldest first until fn returns false.
// Consumer side only.
func (r *Ring[T]) Range(fn func(T) bool) {
	tail := r.tail.Load()
	for i := r.head.Load(); i != tail; i = (i + 1) % r.size {
		if !fn(r.slots.At(int(i))) {
			return
		}
	}
}

// Close destroys every queued element and releases the slot buffer.
// No Put or Get may be running.
func (r *Ring[T]) Close() {
	for {
		v, ok := r.Get()
		if !ok {
			break
		}
		r.traits.Drop(v)
	}
	r.slots.Release()
}
