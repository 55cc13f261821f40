package storage_test

import (
	"cmp"
	"errors"
	"math/rand"
	"slices"
	"testing"

	"github.com/momentics/hioload-vec/api"
	"github.com/momentics/hioload-vec/pool"
	"github.com/momentics/hioload-vec/storage"
)

func expectPanic(t *testing.T, want error, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected panic")
		}
		err, ok := r.(error)
		if !ok || !errors.Is(err, want) {
			t.Fatalf("panic %v, want %v", r, want)
		}
	}()
	fn()
}

func TestSlotsDefaults(t *testing.T) {
	s := storage.New[int](0)
	if s.Cap() != storage.DefaultCapacity {
		t.Errorf("Cap = %d, want %d", s.Cap(), storage.DefaultCapacity)
	}
	if !s.Empty() || s.Len() != 0 {
		t.Errorf("new buffer not empty")
	}
}

func TestSlotsPushPopProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for round := 0; round < 20; round++ {
		s := storage.New[int](2)
		k := rng.Intn(300)
		for i := 0; i < k; i++ {
			s.Push(i)
		}
		m := 0
		if k > 0 {
			m = rng.Intn(k + 1)
		}
		for i := 0; i < m; i++ {
			if got := s.Pop(); got != k-1-i {
				t.Fatalf("Pop = %d, want %d", got, k-1-i)
			}
		}
		if s.Len() != k-m {
			t.Fatalf("Len = %d, want %d", s.Len(), k-m)
		}
		for i := 0; i < s.Len(); i++ {
			if s.At(i) != i {
				t.Fatalf("At(%d) = %d", i, s.At(i))
			}
		}
	}
}

func TestSlotsInsertEraseRoundTrip(t *testing.T) {
	base := []int{10, 20, 30, 40}
	for pos := 0; pos <= len(base); pos++ {
		s := storage.New[int](4)
		for _, v := range base {
			s.Push(v)
		}
		s.Insert(pos, 99)
		if s.At(pos) != 99 || s.Len() != len(base)+1 {
			t.Fatalf("insert at %d: %v", pos, s.View())
		}
		s.Erase(pos)
		if !slices.Equal(s.View(), base) {
			t.Fatalf("round trip at %d: %v", pos, s.View())
		}
	}
}

func TestSlotsInsertN(t *testing.T) {
	s := storage.New[string](2)
	s.Push("a")
	s.Push("d")
	s.InsertN(1, 5, "x")
	want := []string{"a", "x", "x", "x", "x", "x", "d"}
	if !slices.Equal(s.View(), want) {
		t.Fatalf("got %v", s.View())
	}
	s.InsertN(0, 0, "z")
	if s.Len() != len(want) {
		t.Errorf("zero-count insert changed length")
	}
}

func TestSlotsEraseRange(t *testing.T) {
	s := storage.New[int](8)
	for i := 0; i < 6; i++ {
		s.Push(i)
	}
	s.EraseRange(2, 2)
	if s.Len() != 6 {
		t.Fatalf("empty range erased something")
	}
	s.EraseRange(1, 4)
	if !slices.Equal(s.View(), []int{0, 4, 5}) {
		t.Fatalf("got %v", s.View())
	}
	c := s.Cap()
	s.EraseRange(0, s.Len())
	if s.Len() != 0 || s.Cap() != c {
		t.Errorf("erase all: len %d cap %d", s.Len(), s.Cap())
	}
}

func TestSlotsReserve(t *testing.T) {
	s := storage.New[int](4)
	for i := 0; i < 4; i++ {
		s.Push(i * i)
	}
	s.Reserve(2)
	if s.Cap() != 4 {
		t.Errorf("Reserve below Cap changed it to %d", s.Cap())
	}
	s.Reserve(100)
	if s.Cap() < 100 {
		t.Fatalf("Cap = %d after Reserve(100)", s.Cap())
	}
	for i := 0; i < 4; i++ {
		if s.At(i) != i*i {
			t.Fatalf("At(%d) = %d after growth", i, s.At(i))
		}
	}
}

func TestSlotsGrowthDoubles(t *testing.T) {
	s := storage.New[int](4)
	for i := 0; i < 5; i++ {
		s.Push(i)
	}
	if s.Cap() != 8 {
		t.Errorf("Cap = %d, want 8", s.Cap())
	}
}

func TestSlotsSwapFindSort(t *testing.T) {
	s := storage.New[int](4)
	for _, v := range []int{5, 3, 9, 1} {
		s.Push(v)
	}
	s.Swap(0, 3)
	if s.Front() != 1 || s.Back() != 5 {
		t.Fatalf("swap: %v", s.View())
	}
	if storage.Find(s, 9) != 2 {
		t.Errorf("Find(9) = %d", storage.Find(s, 9))
	}
	if storage.Find(s, 42) != api.NotFound {
		t.Errorf("Find(42) should be NotFound")
	}
	s.Sort(cmp.Compare[int])
	if !slices.Equal(s.View(), []int{1, 3, 5, 9}) {
		t.Errorf("sort: %v", s.View())
	}
}

func TestSlotsMove(t *testing.T) {
	dst := storage.New[string](1)
	dst.Push("a")
	src := storage.New[string](2)
	src.Push("x")
	src.Push("y")
	dst.Move(src)
	if !slices.Equal(dst.View(), []string{"a", "x", "y"}) {
		t.Fatalf("dst = %v", dst.View())
	}
	if !src.Empty() {
		t.Errorf("src not empty after Move")
	}
}

func TestSlotsRangeStops(t *testing.T) {
	s := storage.New[int](4)
	for i := 0; i < 10; i++ {
		s.Push(i)
	}
	seen := 0
	s.Range(func(v int) bool {
		seen++
		return v < 3
	})
	if seen != 4 {
		t.Errorf("Range visited %d", seen)
	}
}

func TestSlotsPreconditions(t *testing.T) {
	s := storage.New[int](2)
	expectPanic(t, api.ErrEmpty, func() { s.Pop() })
	expectPanic(t, api.ErrOutOfRange, func() { s.At(0) })
	s.Push(1)
	expectPanic(t, api.ErrOutOfRange, func() { s.Insert(2, 5) })
	expectPanic(t, api.ErrOutOfRange, func() { s.Erase(1) })
	expectPanic(t, api.ErrOutOfRange, func() { s.EraseRange(1, 0) })
	expectPanic(t, api.ErrOutOfRange, func() { s.Swap(0, 1) })
}

func TestSlotsWithSlotPool(t *testing.T) {
	p := pool.NewSlotPool[int](4)
	s := storage.New(3, storage.WithAllocator[int](p))
	if s.Cap() != 8 {
		t.Fatalf("Cap = %d, want size class 8", s.Cap())
	}
	for i := 0; i < 20; i++ {
		s.Push(i)
	}
	st := p.Stats()
	if st.TotalAlloc != 3 || st.TotalFree != 2 || st.InUse != 1 {
		t.Errorf("stats %+v", st)
	}
	s.Release()
	if s.Cap() != 0 || p.Stats().InUse != 0 {
		t.Errorf("release left cap %d, in use %d", s.Cap(), p.Stats().InUse)
	}
	s.Push(7)
	if s.Len() != 1 || s.At(0) != 7 {
		t.Errorf("push after release failed")
	}
	if p.Stats().Reused == 0 {
		t.Errorf("expected a recycled buffer")
	}
}
