// File: internal/concurrency/concurrency_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package concurrency

import (
	"runtime"
	"sync"
	"testing"
)

func TestLockFreeQueueFIFO(t *testing.T) {
	q := NewLockFreeQueue[int](3)
	if q.Cap() != 4 {
		t.Fatalf("capacity not rounded: %d", q.Cap())
	}
	for i := 0; i < 4; i++ {
		if !q.Enqueue(i) {
			t.Fatalf("enqueue %d failed", i)
		}
	}
	if q.Enqueue(99) {
		t.Fatal("enqueue on full queue succeeded")
	}
	for i := 0; i < 4; i++ {
		v, ok := q.Dequeue()
		if !ok || v != i {
			t.Fatalf("dequeue got (%d,%v), want (%d,true)", v, ok, i)
		}
	}
	if _, ok := q.Dequeue(); ok {
		t.Fatal("dequeue on empty queue succeeded")
	}
}

func TestLockFreeQueueConcurrent(t *testing.T) {
	const producers, per = 4, 10000
	q := NewLockFreeQueue[int](256)
	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(base int) {
			defer wg.Done()
			for i := 0; i < per; i++ {
				for !q.Enqueue(base + i) {
					runtime.Gosched()
				}
			}
		}(p * per)
	}

	seen := make([]bool, producers*per)
	for got := 0; got < producers*per; {
		v, ok := q.Dequeue()
		if !ok {
			runtime.Gosched()
			continue
		}
		if seen[v] {
			t.Fatalf("value %d dequeued twice", v)
		}
		seen[v] = true
		got++
	}
	wg.Wait()
	if q.Len() != 0 {
		t.Errorf("queue not drained: %d", q.Len())
	}
}

func TestPinUnpin(t *testing.T) {
	p, err := PinCurrentThread(0)
	if err != nil {
		t.Skipf("pinning unavailable: %v", err)
	}
	if err := p.Unpin(); err != nil {
		t.Errorf("unpin: %v", err)
	}
}
