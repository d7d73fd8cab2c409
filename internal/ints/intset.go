// Package ints defines a set of small non-negative integers (rule and terminal indexes).
package ints

import (
	"math/bits"
	"strconv"
	"strings"
)

const chunkBits = bits.UintSize

// Set is a bit set. Zero value is an empty set ready to use.
type Set struct {
	chunks []uint
}

func NewSet(items ...int) *Set {
	result := &Set{}
	result.Add(items...)
	return result
}

func (s *Set) grow(item int) {
	need := item/chunkBits + 1
	if need > len(s.chunks) {
		chunks := make([]uint, need)
		copy(chunks, s.chunks)
		s.chunks = chunks
	}
}

// Add adds items to s and returns s. Negative items are ignored.
func (s *Set) Add(items ...int) *Set {
	for _, item := range items {
		if item < 0 {
			continue
		}
		s.grow(item)
		s.chunks[item/chunkBits] |= 1 << uint(item%chunkBits)
	}
	return s
}

func (s *Set) Remove(items ...int) *Set {
	for _, item := range items {
		if item >= 0 && item/chunkBits < len(s.chunks) {
			s.chunks[item/chunkBits] &^= 1 << uint(item%chunkBits)
		}
	}
	return s
}

func (s *Set) Contains(item int) bool {
	if s == nil || item < 0 || item/chunkBits >= len(s.chunks) {
		return false
	}
	return s.chunks[item/chunkBits]&(1<<uint(item%chunkBits)) != 0
}

// Union adds all items of o to s and reports whether s has changed.
func (s *Set) Union(o *Set) (changed bool) {
	if o == nil {
		return false
	}
	if len(o.chunks) > len(s.chunks) {
		s.grow(len(o.chunks)*chunkBits - 1)
	}
	for i, chunk := range o.chunks {
		if s.chunks[i]|chunk != s.chunks[i] {
			s.chunks[i] |= chunk
			changed = true
		}
	}
	return changed
}

// Intersects reports whether s and o have common items.
func (s *Set) Intersects(o *Set) bool {
	if s == nil || o == nil {
		return false
	}
	n := min(len(s.chunks), len(o.chunks))
	for i := 0; i < n; i++ {
		if s.chunks[i]&o.chunks[i] != 0 {
			return true
		}
	}
	return false
}

// Intersect returns new set containing common items of s and o.
func (s *Set) Intersect(o *Set) *Set {
	result := &Set{}
	if s == nil || o == nil {
		return result
	}
	n := min(len(s.chunks), len(o.chunks))
	result.chunks = make([]uint, n)
	for i := 0; i < n; i++ {
		result.chunks[i] = s.chunks[i] & o.chunks[i]
	}
	return result
}

func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	result := 0
	for _, chunk := range s.chunks {
		result += bits.OnesCount(chunk)
	}
	return result
}

func (s *Set) IsEmpty() bool {
	return s.Len() == 0
}

func (s *Set) Copy() *Set {
	result := &Set{}
	if s != nil {
		result.chunks = append([]uint(nil), s.chunks...)
	}
	return result
}

func (s *Set) Equal(o *Set) bool {
	a, b := s.Copy().chunks, o.Copy().chunks
	if len(a) < len(b) {
		a, b = b, a
	}
	for i, chunk := range a {
		if i < len(b) {
			if chunk != b[i] {
				return false
			}
		} else if chunk != 0 {
			return false
		}
	}
	return true
}

// ToSlice returns items in ascending order.
func (s *Set) ToSlice() []int {
	if s == nil {
		return nil
	}
	result := make([]int, 0, s.Len())
	for i, chunk := range s.chunks {
		for chunk != 0 {
			bit := bits.TrailingZeros(chunk)
			result = append(result, i*chunkBits+bit)
			chunk &= chunk - 1
		}
	}
	return result
}

func (s *Set) String() string {
	items := s.ToSlice()
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = strconv.Itoa(item)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
