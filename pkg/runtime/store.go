package runtime

import (
	"sort"

	"mlua/interpreter-go/pkg/diag"
)

// StoreSize is the number of variable slots: a–z followed by A–Z.
const StoreSize = 52

// Store holds the value of every single-letter variable. The zero value is
// a usable, zeroed store.
type Store struct {
	slots [StoreSize]int32
}

// NewStore returns a fresh store with every variable set to zero.
func NewStore() *Store {
	return &Store{}
}

// SlotIndex maps a letter to its slot: a–z → 0..25, A–Z → 26..51.
func SlotIndex(letter byte) (int, error) {
	switch {
	case letter >= 'a' && letter <= 'z':
		return int(letter - 'a'), nil
	case letter >= 'A' && letter <= 'Z':
		return 26 + int(letter-'A'), nil
	default:
		return -1, diag.Argumentf("store", "invalid identifier argument %q", letter)
	}
}

// Store assigns value to the variable named by letter.
func (s *Store) Store(letter byte, value int32) error {
	idx, err := SlotIndex(letter)
	if err != nil {
		return err
	}
	s.slots[idx] = value
	return nil
}

// Fetch returns the current value of the variable named by letter.
func (s *Store) Fetch(letter byte) (int32, error) {
	idx, err := SlotIndex(letter)
	if err != nil {
		return 0, err
	}
	return s.slots[idx], nil
}

// Reset zeroes every slot.
func (s *Store) Reset() {
	s.slots = [StoreSize]int32{}
}

// Snapshot returns the variables holding a non-zero value.
func (s *Store) Snapshot() map[byte]int32 {
	out := make(map[byte]int32)
	for idx, v := range s.slots {
		if v != 0 {
			out[letterFor(idx)] = v
		}
	}
	return out
}

// Letters returns the non-zero variables in slot order (useful for
// deterministic output).
func (s *Store) Letters() []byte {
	snap := s.Snapshot()
	letters := make([]byte, 0, len(snap))
	for letter := range snap {
		letters = append(letters, letter)
	}
	SortLetters(letters)
	return letters
}

// SortLetters orders letters by slot: a-z then A-Z.
func SortLetters(letters []byte) {
	sort.Slice(letters, func(i, j int) bool {
		a, _ := SlotIndex(letters[i])
		b, _ := SlotIndex(letters[j])
		return a < b
	})
}

func letterFor(idx int) byte {
	if idx < 26 {
		return byte('a' + idx)
	}
	return byte('A' + idx - 26)
}
