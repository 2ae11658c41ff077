package runtime

import (
	"errors"
	"math"
	"testing"

	"mlua/interpreter-go/pkg/diag"
)

func TestSlotIndex(t *testing.T) {
	cases := map[byte]int{'a': 0, 'z': 25, 'A': 26, 'Z': 51, 'm': 12, 'M': 38}
	for letter, want := range cases {
		got, err := SlotIndex(letter)
		if err != nil || got != want {
			t.Fatalf("SlotIndex(%q) = %d, %v; want %d", letter, got, err, want)
		}
	}
	for _, bad := range []byte{'0', '_', '@', '[', '`', '{', 0, 200} {
		_, err := SlotIndex(bad)
		var argErr *diag.ArgumentError
		if !errors.As(err, &argErr) {
			t.Fatalf("SlotIndex(%q) error = %v", bad, err)
		}
	}
}

func TestStoreFetch(t *testing.T) {
	s := NewStore()
	for idx := 0; idx < StoreSize; idx++ {
		v, err := s.Fetch(letterFor(idx))
		if err != nil || v != 0 {
			t.Fatalf("fresh store %c = %d, %v", letterFor(idx), v, err)
		}
	}
	if err := s.Store('q', math.MinInt32); err != nil {
		t.Fatalf("Store: %v", err)
	}
	if err := s.Store('Q', 9); err != nil {
		t.Fatalf("Store: %v", err)
	}
	if v, _ := s.Fetch('q'); v != math.MinInt32 {
		t.Fatalf("q = %d", v)
	}
	if v, _ := s.Fetch('Q'); v != 9 {
		t.Fatalf("Q = %d (variables are case sensitive)", v)
	}
	if err := s.Store('1', 1); err == nil {
		t.Fatalf("expected error storing into '1'")
	}
	if _, err := s.Fetch('#'); err == nil {
		t.Fatalf("expected error fetching '#'")
	}
}

func TestStoreSnapshotAndReset(t *testing.T) {
	var s Store
	_ = s.Store('B', 2)
	_ = s.Store('c', 3)
	_ = s.Store('a', 1)
	_ = s.Store('d', 0)

	snap := s.Snapshot()
	if len(snap) != 3 || snap['a'] != 1 || snap['B'] != 2 || snap['c'] != 3 {
		t.Fatalf("Snapshot = %v", snap)
	}
	if got := string(s.Letters()); got != "acB" {
		t.Fatalf("Letters = %q, want %q", got, "acB")
	}
	s.Reset()
	if len(s.Snapshot()) != 0 {
		t.Fatalf("Reset left %v", s.Snapshot())
	}
}

func TestSortLetters(t *testing.T) {
	letters := []byte("ZbAa")
	SortLetters(letters)
	if got := string(letters); got != "abAZ" {
		t.Fatalf("SortLetters = %q, want %q", got, "abAZ")
	}
}

func TestStoresAreIndependent(t *testing.T) {
	a, b := NewStore(), NewStore()
	_ = a.Store('x', 5)
	if v, _ := b.Fetch('x'); v != 0 {
		t.Fatalf("stores share state: x = %d", v)
	}
}
