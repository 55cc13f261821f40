// File: storage/slots.go
// Package storage implements the growable slot buffer every container in
// hioload-vec is built on.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Slots owns one allocator buffer. Slots [0, Len) are valid; slots
// [Len, Cap) are addressable but hold zero values. Capacity only grows,
// by allocating a fresh buffer, copying, and freeing the old one.
// Slots has no per-element lifecycle and no internal locking.

package storage

import (
	"iter"
	"slices"

	"github.com/momentics/hioload-vec/api"
	"github.com/momentics/hioload-vec/pool"
)

// DefaultCapacity is the initial capacity estimate used when none is given.
const DefaultCapacity = 64

// Slots is an untyped-in-spirit dynamic array of fixed-size slots.
type Slots[T any] struct {
	vec   []T // len(vec) == capacity
	n     int
	alloc api.Allocator[T]
}

// Option customizes Slots construction.
type Option[T any] func(*Slots[T])

// WithAllocator sets the block allocator backing the buffer.
func WithAllocator[T any](a api.Allocator[T]) Option[T] {
	return func(s *Slots[T]) {
		if a != nil {
			s.alloc = a
		}
	}
}

// New creates an empty buffer with capacity for at least n slots.
// n <= 0 selects DefaultCapacity.
func New[T any](n int, opts ...Option[T]) *Slots[T] {
	s := &Slots[T]{alloc: pool.Default[T]()}
	for _, opt := range opts {
		opt(s)
	}
	if n <= 0 {
		n = DefaultCapacity
	}
	s.allocate(n)
	return s
}

func (s *Slots[T]) allocate(n int) {
	s.vec = s.alloc.Allocate(n)
	s.vec = s.vec[:cap(s.vec)]
}

// Release frees the backing buffer. Len and Cap drop to zero; the next
// growing operation allocates again.
func (s *Slots[T]) Release() {
	if s.vec == nil {
		return
	}
	s.alloc.Free(s.vec)
	s.vec = nil
	s.n = 0
}

// Len returns the number of valid slots.
func (s *Slots[T]) Len() int { return s.n }

// Cap returns the number of addressable slots.
func (s *Slots[T]) Cap() int { return len(s.vec) }

// Empty reports whether Len is zero.
func (s *Slots[T]) Empty() bool { return s.n == 0 }

// Reserve makes room for a total of n slots. It is a no-op when n <= Cap.
func (s *Slots[T]) Reserve(n int) {
	if n <= len(s.vec) {
		return
	}
	old := s.vec
	s.allocate(n)
	copy(s.vec, old[:s.n])
	if old != nil {
		s.alloc.Free(old)
	}
}

// grow ensures room for extra more slots using the doubling policy.
func (s *Slots[T]) grow(extra int) {
	need := s.n + extra
	if need <= len(s.vec) {
		return
	}
	if need > api.MaxSlots || need < s.n {
		api.Fatal(api.ErrCodeCapacityExceeded, "slots: length overflow", "len", s.n, "extra", extra)
	}
	next := 2 * len(s.vec)
	if next < need {
		next = need
	}
	if next > api.MaxSlots {
		next = api.MaxSlots
	}
	s.Reserve(next)
}

// Resize sets Len to n, growing if needed. New slots hold zero values;
// slots dropped by shrinking are zeroed.
func (s *Slots[T]) Resize(n int) {
	if n < 0 {
		api.Fatal(api.ErrCodeInvalidArgument, "slots: negative length", "n", n)
	}
	if n > s.n {
		s.grow(n - s.n)
	} else {
		clear(s.vec[n:s.n])
	}
	s.n = n
}

// Truncate drops every slot from n on. It panics unless 0 <= n <= Len.
func (s *Slots[T]) Truncate(n int) {
	if n < 0 || n > s.n {
		api.Fatal(api.ErrCodeOutOfRange, "slots: truncate out of range", "n", n, "len", s.n)
	}
	clear(s.vec[n:s.n])
	s.n = n
}

// At returns the value in slot pos.
func (s *Slots[T]) At(pos int) T {
	api.CheckIndex("slots.At", pos, s.n)
	return s.vec[pos]
}

// Ref returns a mutable reference to slot pos.
func (s *Slots[T]) Ref(pos int) *T {
	api.CheckIndex("slots.Ref", pos, s.n)
	return &s.vec[pos]
}

// Set overwrites slot pos.
func (s *Slots[T]) Set(pos int, v T) {
	api.CheckIndex("slots.Set", pos, s.n)
	s.vec[pos] = v
}

// Front returns the first valid slot.
func (s *Slots[T]) Front() T {
	api.CheckNotEmpty("slots.Front", s.n)
	return s.vec[0]
}

// Back returns the last valid slot.
func (s *Slots[T]) Back() T {
	api.CheckNotEmpty("slots.Back", s.n)
	return s.vec[s.n-1]
}

// Last is an alias for Back.
func (s *Slots[T]) Last() T { return s.Back() }

// Push appends v, doubling capacity first when full.
func (s *Slots[T]) Push(v T) {
	if s.n == len(s.vec) {
		s.grow(1)
	}
	s.vec[s.n] = v
	s.n++
}

// Pop removes and returns the last slot.
func (s *Slots[T]) Pop() T {
	api.CheckNotEmpty("slots.Pop", s.n)
	s.n--
	v := s.vec[s.n]
	var zero T
	s.vec[s.n] = zero
	return v
}

// Insert places v before pos. pos == Len appends.
func (s *Slots[T]) Insert(pos int, v T) {
	s.InsertN(pos, 1, v)
}

// InsertN places n copies of v before pos. pos == Len appends.
func (s *Slots[T]) InsertN(pos, n int, v T) {
	if pos < 0 || pos > s.n {
		api.Fatal(api.ErrCodeOutOfRange, "slots.Insert: position out of range", "pos", pos, "len", s.n)
	}
	if n <= 0 {
		return
	}
	s.grow(n)
	copy(s.vec[pos+n:s.n+n], s.vec[pos:s.n])
	for i := pos; i < pos+n; i++ {
		s.vec[i] = v
	}
	s.n += n
}

// insertSlice places vs before pos; used by Move.
func (s *Slots[T]) insertSlice(pos int, vs []T) {
	if len(vs) == 0 {
		return
	}
	s.grow(len(vs))
	copy(s.vec[pos+len(vs):s.n+len(vs)], s.vec[pos:s.n])
	copy(s.vec[pos:], vs)
	s.n += len(vs)
}

// Erase removes slot pos and closes the gap.
func (s *Slots[T]) Erase(pos int) {
	api.CheckIndex("slots.Erase", pos, s.n)
	s.EraseRange(pos, pos+1)
}

// EraseRange removes slots [first, last). first == last is a no-op;
// erasing everything resets Len to zero and keeps Cap.
func (s *Slots[T]) EraseRange(first, last int) {
	if first < 0 || first > last || last > s.n {
		api.Fatal(api.ErrCodeOutOfRange, "slots.EraseRange: bad range", "first", first, "last", last, "len", s.n)
	}
	if first == last {
		return
	}
	copy(s.vec[first:], s.vec[last:s.n])
	newLen := s.n - (last - first)
	clear(s.vec[newLen:s.n])
	s.n = newLen
}

// Swap exchanges slots i and j.
func (s *Slots[T]) Swap(i, j int) {
	api.CheckIndex("slots.Swap", i, s.n)
	api.CheckIndex("slots.Swap", j, s.n)
	s.vec[i], s.vec[j] = s.vec[j], s.vec[i]
}

// IndexFunc returns the first position where fn is true, or api.NotFound.
func (s *Slots[T]) IndexFunc(fn func(T) bool) int {
	for i := 0; i < s.n; i++ {
		if fn(s.vec[i]) {
			return i
		}
	}
	return api.NotFound
}

// Find scans s for a slot identical to v.
func Find[T comparable](s *Slots[T], v T) int {
	return s.IndexFunc(func(x T) bool { return x == v })
}

// Sort orders the valid slots with cmp. Payloads are never touched.
func (s *Slots[T]) Sort(cmp func(a, b T) int) {
	if s.n < 2 {
		return
	}
	slices.SortFunc(s.vec[:s.n], cmp)
}

// Move appends every slot of src and leaves src empty with its capacity.
// Whatever src's slots denoted now belongs to s.
func (s *Slots[T]) Move(src *Slots[T]) {
	if src == s || src.n == 0 {
		return
	}
	s.insertSlice(s.n, src.vec[:src.n])
	clear(src.vec[:src.n])
	src.n = 0
}

// Range calls fn for each valid slot in order until fn returns false.
func (s *Slots[T]) Range(fn func(T) bool) {
	for i := 0; i < s.n; i++ {
		if !fn(s.vec[i]) {
			return
		}
	}
}

// Each calls fn for every valid slot in order.
func (s *Slots[T]) Each(fn func(T)) {
	for i := 0; i < s.n; i++ {
		fn(s.vec[i])
	}
}

// View returns the valid slots. The slice aliases the buffer and is only
// good until the next mutating call.
func (s *Slots[T]) View() []T {
	return s.vec[:s.n]
}

// All yields the valid slots in order.
func (s *Slots[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; i < s.n; i++ {
			if !yield(s.vec[i]) {
				return
			}
		}
	}
}
