// File: binheap/heap.go
// Package binheap implements an array-based binary min-heap over
// storage.Slots.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// The heap is 1-indexed: slot 0 is an unused sentinel, the children of
// slot i are 2i and 2i+1 and its parent is i/2. Every non-root element
// compares >= its parent under Traits.Compare. Not safe for concurrent use.

package binheap

import (
	"github.com/momentics/hioload-vec/api"
	"github.com/momentics/hioload-vec/storage"
)

// Heap is a binary min-heap.
type Heap[T any] struct {
	slots  *storage.Slots[T]
	traits api.Traits[T]
}

// New creates an empty heap with room for n elements (n <= 0: default).
// traits.Compare is required.
func New[T any](traits api.Traits[T], n int, opts ...storage.Option[T]) *Heap[T] {
	if traits.Compare == nil {
		api.Fatal(api.ErrCodeInvalidArgument, "binheap: Compare hook required")
	}
	if n > 0 {
		n++
	}
	h := &Heap[T]{
		slots:  storage.New[T](n, opts...),
		traits: traits,
	}
	var sentinel T
	h.slots.Push(sentinel)
	return h
}

// Len returns the number of elements.
func (h *Heap[T]) Len() int { return h.slots.Len() - 1 }

// Empty reports whether the heap holds nothing.
func (h *Heap[T]) Empty() bool { return h.Len() == 0 }

// Min returns the smallest element in O(1). It panics on an empty heap.
func (h *Heap[T]) Min() T {
	api.CheckNotEmpty("binheap.Min", h.Len())
	return h.slots.At(1)
}

// Put constructs elem (Adopt) and sifts it up to its place.
func (h *Heap[T]) Put(elem T) {
	elem = h.traits.Make(elem, api.Adopt)
	var zero T
	h.slots.Push(zero)

	i := h.slots.Len() - 1
	for i >= 2 {
		j := i / 2
		parent := h.slots.At(j)
		if h.traits.Compare(elem, parent) >= 0 {
			break
		}
		h.slots.Set(i, parent)
		i = j
	}
	h.slots.Set(i, elem)
}

// Get removes and returns the smallest element; ok is false when empty.
// The caller owns the returned element.
func (h *Heap[T]) Get() (min T, ok bool) {
	n := h.Len()
	if n == 0 {
		return min, false
	}
	min = h.slots.At(1)
	last := h.slots.Pop()
	n--
	if n == 0 {
		return min, true
	}

	j, k := 1, 2
	for k <= n {
		child := h.slots.At(k)
		if k < n {
			if right := h.slots.At(k + 1); h.traits.Compare(child, right) > 0 {
				child = right
				k++
			}
		}
		if h.traits.Compare(last, child) <= 0 {
			break
		}
		h.slots.Set(j, child)
		j, k = k, 2*k
	}
	h.slots.Set(j, last)
	return min, true
}

// Range visits elements in heap (array) order until fn returns false.
func (h *Heap[T]) Range(fn func(T) bool) {
	for i := 1; i < h.slots.Len(); i++ {
		if !fn(h.slots.At(i)) {
			return
		}
	}
}

// Close destroys the remaining elements and releases the slot buffer.
// The heap must not be used afterwards.
func (h *Heap[T]) Close() {
	for i := 1; i < h.slots.Len(); i++ {
		h.traits.Drop(h.slots.At(i))
	}
	h.slots.Release()
}
