// Package api
// Author: momentics@gmail.com
//
// Lock-free ring buffer for one producer and one consumer.

package api

// Ring is a bounded single-producer/single-consumer queue contract.
type Ring[T any] interface {
	// Put adds an item, returns false if full.
	Put(item T) bool
	// Get removes oldest item, returns false if empty.
	Get() (T, bool)
	// Len returns current number of items.
	Len() int
	// Cap returns usable capacity.
	Cap() int
}
