package rstring

import "testing"

func TestRepRefcount(t *testing.T) {
	r := New("abc")
	if r.Acquire() != r || r.Refs() != 2 {
		t.Fatalf("refs = %d", r.Refs())
	}
	if r.Release() {
		t.Fatal("released too early")
	}
	if !r.Release() {
		t.Fatal("last release not reported")
	}
	defer func() {
		if recover() == nil {
			t.Error("over-release did not panic")
		}
	}()
	r.Release()
}

func TestNullIsImmortal(t *testing.T) {
	n := Null()
	n.Acquire()
	if n.Release() || n.Refs() != 1 || n.Len() != 0 {
		t.Error("null representation changed")
	}
}

func TestCompareFold(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"abc", "ABC", 0},
		{"abc", "abd", -1},
		{"B", "a", 1},
		{"ab", "abc", -1},
	}
	for _, c := range cases {
		if got := CompareFold(c.a, c.b); got != c.want {
			t.Errorf("CompareFold(%q,%q) = %d", c.a, c.b, got)
		}
	}
	if !New("Hello").Equal(New("hELLO"), true) || New("Hello").Equal(New("hello"), false) {
		t.Error("Equal mismatch")
	}
	if New("Content-Type").Index("type", true) != 8 {
		t.Error("Index mismatch")
	}
}

func TestIndexFoldASCIIOnly(t *testing.T) {
	cases := []struct {
		s, sub string
		want   int
	}{
		{"Content-Type", "TYPE", 8},
		{"abc", "", 0},
		{"ab", "abc", -1},
		{"CAFÉ", "café", -1},
		{"x café", "CAFé", 2},
	}
	for _, c := range cases {
		if got := IndexFold(c.s, c.sub); got != c.want {
			t.Errorf("IndexFold(%q,%q) = %d, want %d", c.s, c.sub, got, c.want)
		}
	}
	if New("CAFÉ").Index("café", true) != -1 {
		t.Error("Index folded a non-ASCII letter")
	}
}
