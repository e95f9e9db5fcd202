package matchcache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetMiss(t *testing.T) {
	c := New()
	_, ok := c.Get("abc")
	assert.False(t, ok)
}

func TestMergeFirstInsert(t *testing.T) {
	c := New()
	info := c.Merge("abc", Info{Indices: []int{1, 3, 5}, Range: Range{0, 10}})
	assert.Equal(t, []int{1, 3, 5}, info.Indices)
	assert.Equal(t, Range{0, 10}, info.Range)

	got, ok := c.Get("abc")
	require.True(t, ok)
	assert.Equal(t, info, got)
}

func TestMergeExtendsRangeAndAppendsNewIndices(t *testing.T) {
	c := New()
	c.Merge("abc", Info{Indices: []int{1, 3}, Range: Range{0, 10}})
	merged := c.Merge("abc", Info{Indices: []int{12, 14}, Range: Range{10, 20}})

	assert.Equal(t, []int{1, 3, 12, 14}, merged.Indices)
	assert.Equal(t, Range{0, 20}, merged.Range)
}

func TestMergeOverlappingRangeDoesNotDuplicate(t *testing.T) {
	c := New()
	c.Merge("abc", Info{Indices: []int{1, 3, 8}, Range: Range{0, 10}})
	// Overlapping continuation: starts at 5, within the existing scanned
	// range, but only indices >= existing.End (10) are new.
	merged := c.Merge("abc", Info{Indices: []int{8, 9, 12}, Range: Range{5, 15}})

	assert.Equal(t, []int{1, 3, 8, 12}, merged.Indices)
	assert.Equal(t, Range{0, 15}, merged.Range)
}

func TestMergeDoesNotMutatePreviouslyReturnedInfo(t *testing.T) {
	c := New()
	first := c.Merge("abc", Info{Indices: []int{1}, Range: Range{0, 5}})
	firstIndicesCopy := append([]int(nil), first.Indices...)

	c.Merge("abc", Info{Indices: []int{7}, Range: Range{5, 10}})

	assert.Equal(t, firstIndicesCopy, first.Indices)
}

func TestMergePanicsOnPreconditionViolation(t *testing.T) {
	c := New()
	c.Merge("abc", Info{Indices: nil, Range: Range{0, 5}})

	assert.Panics(t, func() {
		c.Merge("abc", Info{Indices: nil, Range: Range{10, 20}})
	})
}

func TestMergeIndependentQueriesDoNotInteract(t *testing.T) {
	c := New()
	c.Merge("a", Info{Indices: []int{1}, Range: Range{0, 5}})
	c.Merge("b", Info{Indices: []int{2}, Range: Range{0, 5}})

	a, _ := c.Get("a")
	b, _ := c.Get("b")
	assert.Equal(t, []int{1}, a.Indices)
	assert.Equal(t, []int{2}, b.Indices)
}
