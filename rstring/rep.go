// File: rstring/rep.go
// Package rstring provides the shared, reference-counted string
// representation held by strvec.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package rstring

import (
	"strings"
	"sync/atomic"
)

// Rep is an immutable string with a reference count. A Rep lives as long
// as its longest holder; Release reports when the last holder let go.
type Rep struct {
	data   string
	refs   atomic.Int32
	static bool
}

var null = &Rep{static: true}

// New returns a Rep holding s with one reference.
func New(s string) *Rep {
	r := &Rep{data: s}
	r.refs.Store(1)
	return r
}

// Null returns the shared empty representation. It is never freed.
func Null() *Rep { return null }

// Acquire adds a reference and returns r.
func (r *Rep) Acquire() *Rep {
	if !r.static {
		r.refs.Add(1)
	}
	return r
}

// Release drops a reference and reports whether it was the last one.
func (r *Rep) Release() bool {
	if r.static {
		return false
	}
	n := r.refs.Add(-1)
	if n < 0 {
		panic("rstring: release of dead representation")
	}
	return n == 0
}

// Refs returns the current reference count.
func (r *Rep) Refs() int32 {
	if r.static {
		return 1
	}
	return r.refs.Load()
}

func (r *Rep) String() string { return r.data }
func (r *Rep) Len() int { return len(r.data) }

// Equal compares text, optionally ignoring case.
func (r *Rep) Equal(o *Rep, ignoreCase bool) bool {
	if r == o {
		return true
	}
	return EqualString(r.data, o.data, ignoreCase)
}

// Compare orders by text.
func (r *Rep) Compare(o *Rep) int { return strings.Compare(r.data, o.data) }

// CompareFold orders by text ignoring case.
func (r *Rep) CompareFold(o *Rep) int { return CompareFold(r.data, o.data) }

// Index finds sub inside r, optionally ignoring ASCII case; -1 when absent.
func (r *Rep) Index(sub string, ignoreCase bool) int {
	if ignoreCase {
		return IndexFold(r.data, sub)
	}
	return strings.Index(r.data, sub)
}

// IndexFold is strings.Index with ASCII case folding, the same folding
// CompareFold applies.
func IndexFold(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if CompareFold(s[i:i+len(sub)], sub) == 0 {
			return i
		}
	}
	return -1
}

// EqualString compares two strings, optionally ignoring ASCII case.
func EqualString(a, b string, ignoreCase bool) bool {
	if ignoreCase {
		return len(a) == len(b) && CompareFold(a, b) == 0
	}
	return a == b
}

// CompareFold is an ASCII case-insensitive three-way comparison.
func CompareFold(a, b string) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		ca, cb := lower(a[i]), lower(b[i])
		if ca != cb {
			if ca < cb {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return 0
}

func lower(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + 'a' - 'A'
	}
	return c
}
