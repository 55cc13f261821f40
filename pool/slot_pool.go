// File: pool/slot_pool.go
// Package pool implements lock-free slot allocation with size class support.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

import (
	"math/bits"
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/momentics/hioload-vec/api"
	"github.com/momentics/hioload-vec/internal/concurrency"
)

const (
	minClassShift = 3  // 8 slots
	maxClassShift = 16 // 65536 slots
	numClasses    = maxClassShift - minClassShift + 1

	defaultClassDepth = 64
)

// Stats is a point-in-time view of allocator counters.
type Stats struct {
	TotalAlloc int64
	TotalFree  int64
	InUse      int64
	Reused     int64
	BytesInUse int64
	// Classes counts allocations per rounded slot count.
	Classes map[int]uint64
}

// SlotPool hands out slot buffers rounded up to power-of-two size classes
// and recycles freed buffers through per-class lock-free free lists.
// Requests above the largest class are allocated exactly and never pooled.
type SlotPool[T any] struct {
	classes  [numClasses]*concurrency.LockFreeQueue[[]T]
	elemSize int64

	totalAlloc atomic.Uint64
	totalFree  atomic.Uint64
	reused     atomic.Uint64
	slotsInUse atomic.Int64
	classStats atomic.Pointer[classMap]
}

// classMap: allocation counters by class size.
type classMap struct {
	mu     sync.Mutex
	counts map[int]uint64
}

func newClassMap() *classMap { return &classMap{counts: make(map[int]uint64)} }

func (m *classMap) record(n int) {
	m.mu.Lock()
	m.counts[n]++
	m.mu.Unlock()
}

func (m *classMap) snapshot() map[int]uint64 {
	m.mu.Lock()
	out := make(map[int]uint64, len(m.counts))
	for k, v := range m.counts {
		out[k] = v
	}
	m.mu.Unlock()
	return out
}

// NewSlotPool creates a pool keeping up to depth free buffers per class.
// depth <= 0 selects the default.
func NewSlotPool[T any](depth int) *SlotPool[T] {
	if depth <= 0 {
		depth = defaultClassDepth
	}
	var zero T
	p := &SlotPool[T]{elemSize: int64(unsafe.Sizeof(zero))}
	for i := range p.classes {
		p.classes[i] = concurrency.NewLockFreeQueue[[]T](depth)
	}
	p.classStats.Store(newClassMap())
	return p
}

// classOf returns the class index and rounded slot count for n, or -1
// when n exceeds the largest class.
func classOf(n int) (int, int) {
	if n <= 1<<minClassShift {
		return 0, 1 << minClassShift
	}
	shift := bits.Len(uint(n - 1))
	if shift > maxClassShift {
		return -1, n
	}
	return shift - minClassShift, 1 << shift
}

// Allocate implements api.Allocator.
func (p *SlotPool[T]) Allocate(n int) []T {
	checkRequest(n)
	idx, size := classOf(n)

	var buf []T
	if idx >= 0 {
		if b, ok := p.classes[idx].Dequeue(); ok {
			buf = b
			p.reused.Add(1)
		}
	}
	if buf == nil {
		buf = make([]T, size)
	}

	p.totalAlloc.Add(1)
	p.slotsInUse.Add(int64(len(buf)))
	p.classStats.Load().record(len(buf))
	return buf
}

// Free implements api.Allocator.
func (p *SlotPool[T]) Free(buf []T) {
	if cap(buf) == 0 {
		return
	}
	buf = buf[:cap(buf)]
	p.totalFree.Add(1)
	p.slotsInUse.Add(-int64(len(buf)))

	idx, size := classOf(len(buf))
	if idx < 0 || size != len(buf) {
		return
	}
	// drop payload references before parking the buffer
	clear(buf)
	p.classes[idx].Enqueue(buf)
}

// Stats returns allocator counters.
func (p *SlotPool[T]) Stats() Stats {
	totalAlloc := int64(p.totalAlloc.Load())
	totalFree := int64(p.totalFree.Load())
	slots := p.slotsInUse.Load()
	return Stats{
		TotalAlloc: totalAlloc,
		TotalFree:  totalFree,
		InUse:      totalAlloc - totalFree,
		Reused:     int64(p.reused.Load()),
		BytesInUse: slots * p.elemSize,
		Classes:    p.classStats.Load().snapshot(),
	}
}

var _ api.Allocator[any] = (*SlotPool[any])(nil)
