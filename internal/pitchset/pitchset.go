// Package pitchset implements a fixed-capacity set of MIDI pitches (0-127)
// backed by two uint64 words, so it can be copied by value and needs no
// heap allocation on the DP hot path.
package pitchset

import "math/bits"

// Set is a 128-bit bitset of MIDI pitch numbers. The zero value is empty.
type Set struct {
	lo, hi uint64
}

// Of builds a Set from the given pitches, ignoring any outside 0..127.
func Of(pitches ...int) Set {
	var s Set
	for _, p := range pitches {
		s = s.Add(p)
	}
	return s
}

// Add returns a copy of s with pitch added. Out-of-range pitches are ignored.
func (s Set) Add(pitch int) Set {
	if pitch < 0 || pitch > 127 {
		return s
	}
	if pitch < 64 {
		s.lo |= 1 << uint(pitch)
	} else {
		s.hi |= 1 << uint(pitch-64)
	}
	return s
}

// Has reports whether pitch is a member of s.
func (s Set) Has(pitch int) bool {
	if pitch < 0 || pitch > 127 {
		return false
	}
	if pitch < 64 {
		return s.lo&(1<<uint(pitch)) != 0
	}
	return s.hi&(1<<uint(pitch-64)) != 0
}

// Len returns the number of pitches in s.
func (s Set) Len() int {
	return bits.OnesCount64(s.lo) + bits.OnesCount64(s.hi)
}

// Union returns the set union of s and other.
func (s Set) Union(other Set) Set {
	return Set{lo: s.lo | other.lo, hi: s.hi | other.hi}
}

// Intersect returns the set intersection of s and other.
func (s Set) Intersect(other Set) Set {
	return Set{lo: s.lo & other.lo, hi: s.hi & other.hi}
}

// Without returns s minus other (set difference).
func (s Set) Without(other Set) Set {
	return Set{lo: s.lo &^ other.lo, hi: s.hi &^ other.hi}
}

// Empty reports whether s has no members.
func (s Set) Empty() bool {
	return s.lo == 0 && s.hi == 0
}

// Pitches returns the members of s in ascending order.
func (s Set) Pitches() []int {
	out := make([]int, 0, s.Len())
	for p := 0; p < 128; p++ {
		if s.Has(p) {
			out = append(out, p)
		}
	}
	return out
}
