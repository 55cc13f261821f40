package binheap_test

import (
	"errors"
	"math/rand"
	"slices"
	"testing"

	"github.com/momentics/hioload-vec/api"
	"github.com/momentics/hioload-vec/binheap"
	"github.com/momentics/hioload-vec/rstring"
	"github.com/momentics/hioload-vec/strvec"
)

func TestHeapOrderProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for round := 0; round < 25; round++ {
		h := binheap.New(api.OrderedTraits[int](), 2)
		n := rng.Intn(500)
		in := make([]int, n)
		for i := range in {
			in[i] = rng.Intn(100)
			h.Put(in[i])
			if h.Min() != slices.Min(in[:i+1]) {
				t.Fatalf("Min = %d after %d puts", h.Min(), i+1)
			}
		}
		out := make([]int, 0, n)
		for {
			v, ok := h.Get()
			if !ok {
				break
			}
			out = append(out, v)
		}
		if !slices.IsSorted(out) {
			t.Fatalf("extraction not ordered: %v", out)
		}
		slices.Sort(in)
		if !slices.Equal(in, out) {
			t.Fatalf("not a permutation of the input")
		}
	}
}

func TestHeapEmpty(t *testing.T) {
	h := binheap.New(api.OrderedTraits[string](), 0)
	if _, ok := h.Get(); ok || !h.Empty() {
		t.Fatal("empty heap returned a value")
	}
	defer func() {
		err, _ := recover().(error)
		if !errors.Is(err, api.ErrEmpty) {
			t.Errorf("Min on empty: %v", err)
		}
	}()
	h.Min()
}

func TestHeapInterleaved(t *testing.T) {
	h := binheap.New(api.OrderedTraits[int](), 4)
	for _, v := range []int{5, 3, 8} {
		h.Put(v)
	}
	if v, _ := h.Get(); v != 3 {
		t.Fatalf("Get = %d", v)
	}
	h.Put(1)
	h.Put(9)
	var got []int
	for !h.Empty() {
		v, _ := h.Get()
		got = append(got, v)
	}
	if !slices.Equal(got, []int{1, 5, 8, 9}) {
		t.Errorf("got %v", got)
	}
}

func TestHeapOfSharedStrings(t *testing.T) {
	h := binheap.New(strvec.Traits(true), 0)
	reps := make([]*rstring.Rep, 0, 3)
	for _, s := range []string{"pear", "Apple", "fig"} {
		r := rstring.New(s)
		h.Put(r)
		reps = append(reps, r)
	}
	if h.Min().String() != "Apple" {
		t.Fatalf("Min = %q", h.Min())
	}
	r, _ := h.Get()
	r.Release()
	h.Close()
	for _, r := range reps {
		if r.Refs() != 1 {
			t.Errorf("%q refs = %d", r.String(), r.Refs())
		}
	}
}

func TestHeapRequiresCompare(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("missing Compare did not panic")
		}
	}()
	binheap.New(api.Traits[int]{}, 0)
}
