// Package reader implements the Reader actor of spec.md §4.2: it reads
// the configured input source line by line, accumulates read lines into
// a chunk buffer, and a dispatcher goroutine moves the chunk into the
// Line Store every 20ms, emitting a DidReadChunk event. On EOF or I/O
// error it emits DidFinish and exits.
//
// Grounded on the dead root-level buffer.go's Source.Setup (a mutex-
// guarded chunk plus a ticker-driven dispatcher goroutine, itself dead
// code in the teacher's tree but the closest pattern in the pack for a
// "accumulate, then dump on a timer" worker) and pipeline.ChanOutput
// (pipeline/pipeline.go) for the end-mark-on-channel idea, generalized
// here into a typed Event instead of an interface{} payload.
package reader

import (
	"bufio"
	"io"
	"sync"
	"time"

	"github.com/linepick/linepick/internal/queue"
	"github.com/linepick/linepick/linestore"
)

// dispatchInterval is the chunk-dump period from spec.md §4.2.
const dispatchInterval = 20 * time.Millisecond

// EventKind distinguishes the two events the Reader emits.
type EventKind int

const (
	DidReadChunk EventKind = iota
	DidFinish
)

// Event is the outbound vocabulary of the Reader. StoreLen is the Line
// Store length immediately after the chunk was appended (DidReadChunk),
// or the final Line Store length (DidFinish).
type Event struct {
	Kind     EventKind
	StoreLen int
}

// Reader owns the worker/dispatcher pair and appends to store. Its
// outbound queue is unbounded per spec.md §5, so the dispatcher never
// blocks on emit while waiting for the Coordinator to drain it.
type Reader struct {
	store *linestore.Store
	out   *queue.Unbounded[Event]

	mu    sync.Mutex
	chunk []*linestore.Line
}

// New starts reading from r into store, emitting events on the returned
// Reader's Events channel.
func New(r io.Reader, store *linestore.Store) *Reader {
	rd := &Reader{
		store: store,
		out:   queue.NewUnbounded[Event](),
	}
	go rd.runWorker(r)
	return rd
}

// Events is the Reader's outbound DidReadChunk/DidFinish stream.
func (rd *Reader) Events() <-chan Event {
	return rd.out.Out()
}

// runWorker starts the dispatcher, then reads lines from r until EOF or
// an I/O error, accumulating each into the shared chunk buffer, and
// finally closes finished so the dispatcher flushes the last chunk. It
// does not wait for the dispatcher to finish.
func (rd *Reader) runWorker(r io.Reader) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	finished := make(chan struct{})
	go rd.runDispatcher(finished)

	for scanner.Scan() {
		line := append([]byte(nil), scanner.Bytes()...)
		rd.mu.Lock()
		rd.chunk = append(rd.chunk, linestore.New(line))
		rd.mu.Unlock()
	}
	close(finished)
}

// runDispatcher wakes every dispatchInterval, and if the chunk is
// non-empty, moves it into the Line Store under a single exclusive
// write-lock acquisition and emits DidReadChunk. Once the worker
// signals it has reached EOF (finished closed), the dispatcher flushes
// any remainder, emits DidFinish, and exits.
func (rd *Reader) runDispatcher(finished <-chan struct{}) {
	ticker := time.NewTicker(dispatchInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rd.flush()
		case <-finished:
			rd.flush()
			rd.out.In() <- Event{Kind: DidFinish, StoreLen: rd.store.Len()}
			return
		}
	}
}

func (rd *Reader) flush() {
	rd.mu.Lock()
	if len(rd.chunk) == 0 {
		rd.mu.Unlock()
		return
	}
	chunk := rd.chunk
	rd.chunk = nil
	rd.mu.Unlock()

	n := rd.store.Append(chunk)
	rd.out.In() <- Event{Kind: DidReadChunk, StoreLen: n}
}
