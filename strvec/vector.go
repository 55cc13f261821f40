// File: strvec/vector.go
// Package strvec is a vector of shared strings built on owned.Vector.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Elements are *rstring.Rep handles: inserting acquires a reference,
// removing releases one. Text is never deep-copied by the container.
// Lookups (Find, FindSorted) compare whole strings; Contains looks for
// elements inside a larger string.

package strvec

import (
	"iter"
	"strings"

	"github.com/momentics/hioload-vec/api"
	"github.com/momentics/hioload-vec/owned"
	"github.com/momentics/hioload-vec/pool"
	"github.com/momentics/hioload-vec/rstring"
	"github.com/momentics/hioload-vec/storage"
)

const whitespace = " \t\n\r\f\v"

var builders = pool.NewSyncPool(
	func() *strings.Builder { return new(strings.Builder) },
	func(b *strings.Builder) { b.Reset() },
)

// Traits returns the acquire/release hooks for *rstring.Rep elements,
// ordered by text (optionally case-insensitive).
func Traits(ignoreCase bool) api.Traits[*rstring.Rep] {
	t := api.Traits[*rstring.Rep]{
		Construct: func(r *rstring.Rep, _ api.ConstructMode) *rstring.Rep { return r.Acquire() },
		Destroy:   func(r *rstring.Rep) { r.Release() },
		Compare:   (*rstring.Rep).Compare,
	}
	if ignoreCase {
		t.Compare = (*rstring.Rep).CompareFold
	}
	return t
}

// Vector holds shared string representations.
type Vector struct {
	v *owned.Vector[*rstring.Rep]
}

// New creates an empty vector with room for n strings (n <= 0: default).
func New(n int, opts ...storage.Option[*rstring.Rep]) *Vector {
	return &Vector{v: owned.New(Traits(false), n, opts...)}
}

// NewSplit creates a vector holding the tokens of s split on any byte in
// delims (whitespace when empty).
func NewSplit(s, delims string) *Vector {
	v := New(0)
	v.Split(s, delims)
	return v
}

// NewSplitByte creates a vector holding the tokens of s split on delim.
func NewSplitByte(s string, delim byte) *Vector {
	v := New(0)
	v.SplitByte(s, delim)
	return v
}

// NewFrom creates a vector with room for n strings and moves every
// element of source into it.
func NewFrom(source *Vector, n int) *Vector {
	v := New(n)
	v.Move(source)
	return v
}

func (v *Vector) Len() int { return v.v.Len() }
func (v *Vector) Cap() int { return v.v.Cap() }
func (v *Vector) Empty() bool { return v.v.Empty() }
func (v *Vector) Reserve(n int) { v.v.Reserve(n) }

// At returns the string at pos.
func (v *Vector) At(pos int) string { return v.v.At(pos).String() }

// Rep returns the representation at pos without acquiring it.
func (v *Vector) Rep(pos int) *rstring.Rep { return v.v.At(pos) }

func (v *Vector) Front() string { return v.v.Front().String() }
func (v *Vector) Back() string { return v.v.Back().String() }
func (v *Vector) Last() string { return v.v.Back().String() }

// withRep hands fn a fresh representation of s and drops the local
// reference afterwards; the container keeps its own.
func withRep(s string, fn func(*rstring.Rep)) {
	r := rstring.New(s)
	fn(r)
	r.Release()
}

// Push appends s.
func (v *Vector) Push(s string) {
	withRep(s, v.PushRep)
}

// PushRep appends r, acquiring a reference.
func (v *Vector) PushRep(r *rstring.Rep) {
	v.v.Push(r)
}

// Pop removes the last string and returns its text.
func (v *Vector) Pop() string {
	r := v.v.Pop()
	s := r.String()
	r.Release()
	return s
}

// PopRep removes the last element and hands its reference to the caller.
func (v *Vector) PopRep() *rstring.Rep {
	return v.v.Pop()
}

// Insert places s before pos. pos == Len appends.
func (v *Vector) Insert(pos int, s string) {
	withRep(s, func(r *rstring.Rep) { v.v.Insert(pos, r) })
}

// InsertN places n references to one representation of s before pos.
func (v *Vector) InsertN(pos, n int, s string) {
	withRep(s, func(r *rstring.Rep) { v.v.InsertN(pos, n, r) })
}

// Replace overwrites the string at pos.
func (v *Vector) Replace(pos int, s string) {
	withRep(s, func(r *rstring.Rep) { v.v.Replace(pos, r) })
}

// Assign replaces the whole content with n references to s.
func (v *Vector) Assign(n int, s string) {
	withRep(s, func(r *rstring.Rep) { v.v.Assign(n, r) })
}

func (v *Vector) Erase(pos int) { v.v.Erase(pos) }
func (v *Vector) EraseRange(first, last int) { v.v.EraseRange(first, last) }
func (v *Vector) Swap(i, j int) { v.v.Swap(i, j) }

// Clear releases every element. Capacity is kept.
func (v *Vector) Clear() { v.v.Clear() }

// Close releases every element and the slot buffer.
func (v *Vector) Close() { v.v.Close() }

// Move appends every element of source and leaves source empty.
func (v *Vector) Move(source *Vector) { v.v.Move(source.v) }

// Each calls fn with every string in order.
func (v *Vector) Each(fn func(string)) {
	v.v.Each(func(r *rstring.Rep) { fn(r.String()) })
}

// All yields the strings in order.
func (v *Vector) All() iter.Seq[string] {
	return func(yield func(string) bool) {
		for r := range v.v.All() {
			if !yield(r.String()) {
				return
			}
		}
	}
}

// Strings copies the content into a []string.
func (v *Vector) Strings() []string {
	out := make([]string, 0, v.Len())
	v.Each(func(s string) { out = append(out, s) })
	return out
}

// Split appends the tokens of s separated by any byte in delims
// (whitespace when empty). Tokens are trimmed of surrounding whitespace
// and empty tokens are dropped. It returns the number of tokens added;
// on zero the vector is untouched.
func (v *Vector) Split(s, delims string) int {
	if delims == "" {
		delims = whitespace
	}
	var set byteSet
	for i := 0; i < len(delims); i++ {
		set[delims[i]] = true
	}
	return v.split(s, &set)
}

// SplitByte is Split with a single delimiter byte.
func (v *Vector) SplitByte(s string, delim byte) int {
	var set byteSet
	set[delim] = true
	return v.split(s, &set)
}

// byteSet marks delimiter bytes. Matching is bytewise, never by rune.
type byteSet [256]bool

func (v *Vector) split(s string, delims *byteSet) int {
	n, start := 0, 0
	for i := 0; i <= len(s); i++ {
		if i < len(s) && !delims[s[i]] {
			continue
		}
		if tok := strings.Trim(s[start:i], whitespace); tok != "" {
			v.Push(tok)
			n++
		}
		start = i + 1
	}
	return n
}

// Join concatenates the strings separated by delim.
func (v *Vector) Join(delim string) string {
	if v.Empty() {
		return ""
	}
	b := builders.Get()
	defer builders.Put(b)
	for i := 0; i < v.Len(); i++ {
		if i > 0 {
			b.WriteString(delim)
		}
		b.WriteString(v.v.At(i).String())
	}
	return b.String()
}

// Find returns the position of the first element equal to s.
func (v *Vector) Find(s string, ignoreCase bool) int {
	return v.v.IndexFunc(func(r *rstring.Rep) bool {
		return rstring.EqualString(r.String(), s, ignoreCase)
	})
}

// FindRange looks for an exact match of s in positions [start, end).
func (v *Vector) FindRange(s string, start, end int) int {
	if start < 0 || end > v.Len() || start > end {
		api.Fatal(api.ErrCodeOutOfRange, "strvec.FindRange: bad range", "start", start, "end", end, "len", v.Len())
	}
	for i := start; i < end; i++ {
		if v.v.At(i).String() == s {
			return i
		}
	}
	return api.NotFound
}

// FindSorted binary-searches a vector kept in ascending case-insensitive
// order. With couple set the vector holds key/value pairs and only keys
// (even positions) are searched. Without ignoreCase the match must also
// be exact; neighbours that fold equal are checked.
func (v *Vector) FindSorted(s string, ignoreCase, couple bool) int {
	step := 1
	if couple {
		step = 2
	}
	key := func(i int) string { return v.v.At(i * step).String() }
	keys := (v.Len() + step - 1) / step
	lo, hi := 0, keys
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		c := rstring.CompareFold(key(mid), s)
		switch {
		case c < 0:
			lo = mid + 1
		case c > 0:
			hi = mid
		default:
			if ignoreCase {
				return mid * step
			}
			return exactAround(mid, keys, step, s, key)
		}
	}
	return api.NotFound
}

func exactAround(mid, keys, step int, s string, key func(int) string) int {
	for i := mid; i >= 0 && rstring.CompareFold(key(i), s) == 0; i-- {
		if key(i) == s {
			return i * step
		}
	}
	for i := mid + 1; i < keys && rstring.CompareFold(key(i), s) == 0; i++ {
		if key(i) == s {
			return i * step
		}
	}
	return api.NotFound
}

// IsEqualAt reports whether the string at pos equals s.
func (v *Vector) IsEqualAt(pos int, s string, ignoreCase bool) bool {
	return rstring.EqualString(v.At(pos), s, ignoreCase)
}

// IsEqual compares two vectors element by element.
func (v *Vector) IsEqual(o *Vector, ignoreCase bool) bool {
	if v.Len() != o.Len() {
		return false
	}
	for i := 0; i < v.Len(); i++ {
		if !v.v.At(i).Equal(o.v.At(i), ignoreCase) {
			return false
		}
	}
	return true
}

// Equal is IsEqual with exact comparison.
func (v *Vector) Equal(o *Vector) bool { return v.IsEqual(o, false) }

// Sort orders the strings by text.
func (v *Vector) Sort(ignoreCase bool) {
	v.v.Sort(Traits(ignoreCase).Compare)
}

// InsertAsSet appends s unless an equal string is already present.
func (v *Vector) InsertAsSet(s string) {
	if v.Empty() || v.Find(s, false) == api.NotFound {
		v.Push(s)
	}
}

// Intersection appends every element of set1 that also occurs in set2
// and returns how many were added. Representations are shared.
func (v *Vector) Intersection(set1, set2 *Vector) int {
	n := 0
	set1.v.Each(func(r *rstring.Rep) {
		if set2.Find(r.String(), false) != api.NotFound {
			v.PushRep(r)
			n++
		}
	})
	return n
}

// Contains returns the first position whose string occurs inside s.
// ignoreCase folds ASCII letters only, as Find and Sort do.
func (v *Vector) Contains(s string, ignoreCase bool) int {
	return v.v.IndexFunc(func(r *rstring.Rep) bool {
		if ignoreCase {
			return rstring.IndexFold(s, r.String()) >= 0
		}
		return strings.Contains(s, r.String())
	})
}

// ContainsAny reports whether v.Contains(x) succeeds for some x in o.
func (v *Vector) ContainsAny(o *Vector, ignoreCase bool) bool {
	for i := 0; i < o.Len(); i++ {
		if v.Contains(o.At(i), ignoreCase) != api.NotFound {
			return true
		}
	}
	return false
}

// IsContained reports whether Contains finds anything.
func (v *Vector) IsContained(s string, ignoreCase bool) bool {
	return v.Contains(s, ignoreCase) != api.NotFound
}
