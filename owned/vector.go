// File: owned/vector.go
// Package owned adds element lifecycle to storage.Slots.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Every element that enters a Vector goes through Traits.Construct first,
// every element the Vector discards goes through Traits.Destroy exactly
// once. Pop and Move hand ownership over without destroying anything.
// There is no rollback: a hook that panics halfway through InsertN or
// Assign leaves whatever was already stored.

package owned

import (
	"iter"

	"github.com/momentics/hioload-vec/api"
	"github.com/momentics/hioload-vec/storage"
)

// Vector is a growable array that owns its elements.
type Vector[T any] struct {
	slots  *storage.Slots[T]
	traits api.Traits[T]
}

// New creates an empty vector with room for n elements (n <= 0: default).
func New[T any](traits api.Traits[T], n int, opts ...storage.Option[T]) *Vector[T] {
	return &Vector[T]{
		slots:  storage.New[T](n, opts...),
		traits: traits,
	}
}

// Traits returns the hooks this vector runs.
func (v *Vector[T]) Traits() api.Traits[T] { return v.traits }

// Storage exposes the underlying slots. Mutating them bypasses the
// lifecycle hooks.
func (v *Vector[T]) Storage() *storage.Slots[T] { return v.slots }

func (v *Vector[T]) Len() int { return v.slots.Len() }
func (v *Vector[T]) Cap() int { return v.slots.Cap() }
func (v *Vector[T]) Empty() bool { return v.slots.Empty() }
func (v *Vector[T]) Reserve(n int) { v.slots.Reserve(n) }

func (v *Vector[T]) At(pos int) T { return v.slots.At(pos) }
func (v *Vector[T]) Front() T { return v.slots.Front() }
func (v *Vector[T]) Back() T { return v.slots.Back() }

// Last returns the last element without removing it.
func (v *Vector[T]) Last() T { return v.slots.Back() }

// Push constructs elem (Adopt) and appends it.
func (v *Vector[T]) Push(elem T) {
	v.PushWith(elem, api.Adopt)
}

// PushWith constructs elem with the given mode and appends it. Loaders
// that reuse one temporary pass api.Copy.
func (v *Vector[T]) PushWith(elem T, mode api.ConstructMode) {
	v.slots.Push(v.traits.Make(elem, mode))
}

// Pop removes the last element and returns it; the caller now owns it.
func (v *Vector[T]) Pop() T {
	return v.slots.Pop()
}

// Insert constructs elem (Adopt) and places it before pos.
func (v *Vector[T]) Insert(pos int, elem T) {
	if pos < 0 || pos > v.slots.Len() {
		api.Fatal(api.ErrCodeOutOfRange, "owned.Insert: position out of range", "pos", pos, "len", v.slots.Len())
	}
	v.slots.Insert(pos, v.traits.Make(elem, api.Adopt))
}

// InsertN places n independent copies of elem before pos. The caller
// keeps elem.
func (v *Vector[T]) InsertN(pos, n int, elem T) {
	if pos < 0 || pos > v.slots.Len() {
		api.Fatal(api.ErrCodeOutOfRange, "owned.InsertN: position out of range", "pos", pos, "len", v.slots.Len())
	}
	if n <= 0 {
		return
	}
	var zero T
	v.slots.InsertN(pos, n, zero)
	for i := pos; i < pos+n; i++ {
		v.slots.Set(i, v.traits.Make(elem, api.Copy))
	}
}

// Replace swaps the element at pos for a newly constructed elem and
// destroys the old one.
func (v *Vector[T]) Replace(pos int, elem T) {
	api.CheckIndex("owned.Replace", pos, v.slots.Len())
	nv := v.traits.Make(elem, api.Adopt)
	old := v.slots.At(pos)
	v.slots.Set(pos, nv)
	v.traits.Drop(old)
}

// Assign replaces the whole content with n copies of elem.
func (v *Vector[T]) Assign(n int, elem T) {
	if n <= 0 {
		api.Fatal(api.ErrCodeInvalidArgument, "owned.Assign: non-positive count", "n", n)
	}
	fresh := make([]T, n)
	for i := range fresh {
		fresh[i] = v.traits.Make(elem, api.Copy)
	}
	v.traits.DropAll(v.slots.View())
	v.slots.Truncate(0)
	v.slots.Reserve(n)
	for _, x := range fresh {
		v.slots.Push(x)
	}
}

// Erase destroys the element at pos and closes the gap.
func (v *Vector[T]) Erase(pos int) {
	api.CheckIndex("owned.Erase", pos, v.slots.Len())
	v.traits.Drop(v.slots.At(pos))
	v.slots.Erase(pos)
}

// EraseRange destroys elements [first, last) and closes the gap.
func (v *Vector[T]) EraseRange(first, last int) {
	if first < 0 || first > last || last > v.slots.Len() {
		api.Fatal(api.ErrCodeOutOfRange, "owned.EraseRange: bad range", "first", first, "last", last, "len", v.slots.Len())
	}
	v.traits.DropAll(v.slots.View()[first:last])
	v.slots.EraseRange(first, last)
}

// Clear destroys every element. Capacity is kept.
func (v *Vector[T]) Clear() {
	if v.slots.Empty() {
		return
	}
	v.traits.DropAll(v.slots.View())
	v.slots.Truncate(0)
}

// Close destroys every element and releases the slot buffer.
func (v *Vector[T]) Close() {
	v.Clear()
	v.slots.Release()
}

// Swap exchanges elements i and j.
func (v *Vector[T]) Swap(i, j int) { v.slots.Swap(i, j) }

// IndexFunc returns the first position where fn is true, or api.NotFound.
func (v *Vector[T]) IndexFunc(fn func(T) bool) int { return v.slots.IndexFunc(fn) }

// Sort orders elements with cmp, or with Traits.Compare when cmp is nil.
func (v *Vector[T]) Sort(cmp func(a, b T) int) {
	if cmp == nil {
		cmp = v.traits.Cmp
	}
	v.slots.Sort(cmp)
}

// Move appends every element of src; src is left empty and no longer
// owns them.
func (v *Vector[T]) Move(src *Vector[T]) {
	v.slots.Move(src.slots)
}

// Range calls fn for each element until fn returns false.
func (v *Vector[T]) Range(fn func(T) bool) { v.slots.Range(fn) }

// Each calls fn for every element.
func (v *Vector[T]) Each(fn func(T)) { v.slots.Each(fn) }

// All yields the elements in order.
func (v *Vector[T]) All() iter.Seq[T] { return v.slots.All() }
