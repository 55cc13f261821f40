// File: api/traits.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Element trait bundle shared by the owning containers.

package api

import "cmp"

// NotFound is returned by index lookups that find nothing.
const NotFound = -1

// ConstructMode tells a Construct hook how to treat its source value.
type ConstructMode uint8

const (
	// Adopt takes over the caller's value (or acquires a shared handle).
	Adopt ConstructMode = iota
	// Copy produces an independent value; the caller keeps the source.
	// Bulk loading from a reused temporary always uses Copy.
	Copy
)

func (m ConstructMode) String() string {
	switch m {
	case Adopt:
		return "adopt"
	case Copy:
		return "copy"
	default:
		return "unknown"
	}
}

// Traits bundles per-element lifecycle and ordering hooks.
// Any hook may be nil: Construct then returns the source as is, Destroy
// does nothing, and Compare must be supplied before sorting or heap use.
type Traits[T any] struct {
	Construct func(src T, mode ConstructMode) T
	Destroy   func(v T)
	Compare   func(a, b T) int
}

// Make runs the Construct hook.
func (t Traits[T]) Make(src T, mode ConstructMode) T {
	if t.Construct == nil {
		return src
	}
	return t.Construct(src, mode)
}

// Drop runs the Destroy hook.
func (t Traits[T]) Drop(v T) {
	if t.Destroy != nil {
		t.Destroy(v)
	}
}

// DropAll runs the Destroy hook once per element of vs.
func (t Traits[T]) DropAll(vs []T) {
	if t.Destroy == nil {
		return
	}
	for _, v := range vs {
		t.Destroy(v)
	}
}

// Cmp runs the Compare hook; it panics when none is configured.
func (t Traits[T]) Cmp(a, b T) int {
	if t.Compare == nil {
		Fatal(ErrCodeInvalidArgument, "traits: no Compare hook")
	}
	return t.Compare(a, b)
}

// OrderedTraits returns value traits for ordered types: construction is
// a plain copy and nothing needs destroying.
func OrderedTraits[T cmp.Ordered]() Traits[T] {
	return Traits[T]{Compare: cmp.Compare[T]}
}
