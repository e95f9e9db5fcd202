package searcher

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linepick/linepick/linestore"
)

func request(t *testing.T, s *Searcher, req Request) Response {
	t.Helper()
	s.Requests() <- req
	select {
	case resp := <-s.Responses():
		return resp
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for search response")
		return Response{}
	}
}

func TestSearchMatchesWithinScannedRange(t *testing.T) {
	store := linestore.New()
	store.Append([]*linestore.Line{
		linestore.New([]byte("Foo Bar")),
		linestore.New([]byte("foobaz")),
		linestore.New([]byte("barfoo")),
		linestore.New([]byte("FOO")),
	})

	s := New(store)
	resp := request(t, s, Request{Query: "f b", Start: 0})

	assert.Equal(t, []int{0, 1, 2}, resp.Indices)
	assert.Equal(t, 0, resp.Start)
	assert.Equal(t, 4, resp.End)
}

func TestSearchHonorsBatchBound(t *testing.T) {
	store := linestore.New()
	chunk := make([]*linestore.Line, 6000)
	for i := range chunk {
		chunk[i] = linestore.New([]byte(fmt.Sprintf("line-%d-abc", i)))
	}
	store.Append(chunk)

	s := New(store)
	resp := request(t, s, Request{Query: "abc", Start: 0})

	assert.Equal(t, 0, resp.Start)
	assert.Equal(t, 5000, resp.End)
	require.Len(t, resp.Indices, 5000)

	resp2 := request(t, s, Request{Query: "abc", Start: resp.End})
	assert.Equal(t, 5000, resp2.Start)
	assert.Equal(t, 6000, resp2.End)
	assert.Len(t, resp2.Indices, 1000)
}

func TestSearchEmptyQueryMatchesEverythingInRange(t *testing.T) {
	store := linestore.New()
	store.Append([]*linestore.Line{linestore.New([]byte("a")), linestore.New([]byte("b"))})

	s := New(store)
	resp := request(t, s, Request{Query: "", Start: 0})
	assert.Equal(t, []int{0, 1}, resp.Indices)
}

func TestSearchStartAtStoreLengthReturnsEmptyContinuation(t *testing.T) {
	store := linestore.New()
	store.Append([]*linestore.Line{linestore.New([]byte("a"))})

	s := New(store)
	resp := request(t, s, Request{Query: "a", Start: 1})
	assert.Equal(t, 1, resp.Start)
	assert.Equal(t, 1, resp.End)
	assert.Nil(t, resp.Indices)
}

func TestRepliesPreserveRequestOrder(t *testing.T) {
	store := linestore.New()
	store.Append([]*linestore.Line{linestore.New([]byte("x"))})
	s := New(store)

	go func() {
		s.Requests() <- Request{Query: "1", Start: 0}
		s.Requests() <- Request{Query: "2", Start: 0}
	}()

	first := <-s.Responses()
	second := <-s.Responses()
	assert.Equal(t, "1", first.Query)
	assert.Equal(t, "2", second.Query)
}
