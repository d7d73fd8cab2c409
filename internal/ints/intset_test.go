package ints

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddContains(t *testing.T) {
	s := NewSet(1, 64, 200, -3)
	assert.True(t, s.Contains(1))
	assert.True(t, s.Contains(64))
	assert.True(t, s.Contains(200))
	assert.False(t, s.Contains(2))
	assert.False(t, s.Contains(-3))
	assert.False(t, s.Contains(1000))
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, []int{1, 64, 200}, s.ToSlice())

	s.Remove(64, 5000)
	assert.Equal(t, []int{1, 200}, s.ToSlice())
	assert.Equal(t, "{1, 200}", s.String())
}

func TestZeroAndNilSets(t *testing.T) {
	var s Set
	assert.True(t, s.IsEmpty())
	s.Add(3)
	assert.Equal(t, []int{3}, s.ToSlice())

	var n *Set
	assert.False(t, n.Contains(1))
	assert.Equal(t, 0, n.Len())
	assert.False(t, n.Intersects(&s))
	assert.Nil(t, n.ToSlice())
}

func TestUnion(t *testing.T) {
	s := NewSet(1, 2)
	assert.True(t, s.Union(NewSet(2, 100)))
	assert.False(t, s.Union(NewSet(1, 100)))
	assert.False(t, s.Union(nil))
	assert.Equal(t, []int{1, 2, 100}, s.ToSlice())
}

func TestIntersection(t *testing.T) {
	a := NewSet(1, 70, 130)
	b := NewSet(70, 131)
	assert.True(t, a.Intersects(b))
	assert.False(t, a.Intersects(NewSet(2, 131)))
	assert.Equal(t, []int{70}, a.Intersect(b).ToSlice())
}

func TestCopyEqual(t *testing.T) {
	a := NewSet(5, 90)
	b := a.Copy()
	assert.True(t, a.Equal(b))
	b.Add(6)
	assert.False(t, a.Equal(b))
	b.Remove(6)
	assert.True(t, a.Equal(b))
	assert.True(t, NewSet().Equal(NewSet(200).Remove(200)))
}
