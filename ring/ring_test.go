package ring_test

import (
	"math/rand"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/momentics/hioload-vec/api"
	"github.com/momentics/hioload-vec/pool"
	"github.com/momentics/hioload-vec/ring"
	"github.com/momentics/hioload-vec/rstring"
	"github.com/momentics/hioload-vec/strvec"
)

func TestRingFullEmptyBoundaries(t *testing.T) {
	const slots = 16
	r := ring.New[int](slots)
	if r.Cap() != slots-1 {
		t.Fatalf("Cap = %d", r.Cap())
	}
	for i := 0; i < slots-1; i++ {
		if !r.Put(i) {
			t.Fatalf("Put failed at %d", i)
		}
	}
	if r.Put(99) || !r.Full() {
		t.Fatal("Put on full ring succeeded")
	}
	if v, ok := r.Get(); !ok || v != 0 {
		t.Fatalf("Get = %d, %v", v, ok)
	}
	if !r.Put(100) {
		t.Fatal("Put after one Get failed")
	}
	if r.Put(101) {
		t.Fatal("second Put after one Get succeeded")
	}
	for i := 1; i < slots; i++ {
		want := i
		if i == slots-1 {
			want = 100
		}
		if v, ok := r.Get(); !ok || v != want {
			t.Fatalf("Get #%d = %d, %v", i, v, ok)
		}
	}
	if _, ok := r.Get(); ok || !r.Empty() {
		t.Fatal("Get on empty ring succeeded")
	}
}

func TestRingPropertyBased(t *testing.T) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	r := ring.New[int](64)
	var model []int
	for i := 0; i < 5000; i++ {
		if rng.Intn(2) == 0 {
			v := rng.Intn(100000)
			ok := r.Put(v)
			if ok != (len(model) < 63) {
				t.Fatalf("Put ok=%v with %d queued", ok, len(model))
			}
			if ok {
				model = append(model, v)
			}
		} else {
			v, ok := r.Get()
			if ok != (len(model) > 0) {
				t.Fatalf("Get ok=%v with %d queued", ok, len(model))
			}
			if ok {
				if v != model[0] {
					t.Fatalf("Get = %d, want %d", v, model[0])
				}
				model = model[1:]
			}
		}
		if r.Len() != len(model) {
			t.Fatalf("Len = %d, want %d", r.Len(), len(model))
		}
	}
}

func TestRingSPSC(t *testing.T) {
	r := ring.New(128, ring.WithAllocator[int](pool.NewSlotPool[int](0)))
	const items = 100000

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 1; i <= items; i++ {
			for !r.Put(i) {
				runtime.Gosched()
			}
		}
	}()

	done := make(chan error, 1)
	go func() {
		next := 1
		for next <= items {
			v, ok := r.Get()
			if !ok {
				runtime.Gosched()
				continue
			}
			if v != next {
				done <- api.NewError(api.ErrCodeInternal, "out of order").WithContext("got", v).WithContext("want", next)
				return
			}
			next++
		}
		done <- nil
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Fatal(err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("timeout waiting for consumer")
	}
	wg.Wait()
}

func TestRingTraitsAndClose(t *testing.T) {
	r := ring.New(4, ring.WithTraits(strvec.Traits(false)))
	a, b := rstring.New("a"), rstring.New("b")
	r.Put(a)
	r.Put(b)
	if a.Refs() != 2 {
		t.Fatalf("Put did not acquire: %d", a.Refs())
	}
	var seen []string
	r.Range(func(x *rstring.Rep) bool {
		seen = append(seen, x.String())
		return true
	})
	if len(seen) != 2 || seen[0] != "a" {
		t.Errorf("Range saw %v", seen)
	}
	got, _ := r.Get()
	got.Release()
	r.Close()
	if a.Refs() != 1 || b.Refs() != 1 {
		t.Errorf("refs a=%d b=%d", a.Refs(), b.Refs())
	}
}

func TestRingRejectsTinySize(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("New(1) did not panic")
		}
	}()
	ring.New[int](1)
}
