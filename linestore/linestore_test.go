package linestore_test

import (
	"testing"

	"github.com/linepick/linepick/linestore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineDisplayLossy(t *testing.T) {
	l := linestore.New([]byte("hello\xff\xfeworld"))
	assert.Equal(t, []byte("hello\xff\xfeworld"), l.Bytes())
	assert.NotContains(t, l.Display(), "\xff")
	assert.Contains(t, l.Display(), "�")
}

func TestLineDisplayValidUTF8(t *testing.T) {
	l := linestore.New([]byte("こんにちは"))
	assert.Equal(t, "こんにちは", l.Display())
}

func TestStoreAppendIsMonotonic(t *testing.T) {
	s := linestore.New()
	require.Equal(t, 0, s.Len())

	n := s.Append([]*linestore.Line{linestore.New([]byte("a")), linestore.New([]byte("b"))})
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, s.Len())

	n = s.Append([]*linestore.Line{linestore.New([]byte("c"))})
	assert.Equal(t, 3, n)
	assert.Equal(t, 3, s.Len())
}

func TestStoreIndicesStable(t *testing.T) {
	s := linestore.New()
	s.Append([]*linestore.Line{linestore.New([]byte("a")), linestore.New([]byte("b"))})
	first := s.At(0)
	s.Append([]*linestore.Line{linestore.New([]byte("c"))})
	assert.Same(t, first, s.At(0))
	assert.Equal(t, "a", s.At(0).Display())
	assert.Equal(t, "c", s.At(2).Display())
}

func TestStoreSliceClampsToLength(t *testing.T) {
	s := linestore.New()
	s.Append([]*linestore.Line{linestore.New([]byte("a")), linestore.New([]byte("b"))})

	got := s.Slice(0, 100)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Display())
	assert.Equal(t, "b", got[1].Display())

	assert.Nil(t, s.Slice(5, 10))
	assert.Nil(t, s.Slice(2, 2))
}
