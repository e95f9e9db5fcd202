// Package commander runs the two input producers of spec.md §4.1: a
// blocking byte reader on the controlling terminal that emits key
// events, and a resize watcher that emits a SigWinch event whenever the
// window-change signal has fired since it was last observed.
//
// Grounded on peco's termbox_event.go (the blocking-read-loop-to-event-
// channel shape, here targeting a plain TTY byte stream instead of
// termbox) and internal/sighandler.Handler for the poll-driven signal
// loop, adapted to the atomic-flag design in internal/sigwinch.
package commander

import (
	"io"
	"time"

	pdebug "github.com/lestrrat-go/pdebug"

	"github.com/linepick/linepick/internal/queue"
	"github.com/linepick/linepick/internal/sigwinch"
	"github.com/linepick/linepick/key"
)

// pollInterval is the resize-watcher sampling rate from spec.md §4.1.
const pollInterval = 50 * time.Millisecond

// Event is the outbound vocabulary the Commander emits. Key is
// meaningful only when Kind is KeyDown; a SigWinch event carries no
// payload.
type Event struct {
	Kind EventKind
	Key  key.Key
}

type EventKind int

const (
	KeyDown EventKind = iota
	SigWinch
)

// Commander owns the two producers and fans them into a single unbounded
// outbound queue, per spec.md §2's "single outbound event stream" and
// §5's "actors never block on emit" back-pressure model.
type Commander struct {
	out     *queue.Unbounded[Event]
	watcher *sigwinch.Watcher
	done    chan struct{}
}

// New starts the byte reader against r and the resize watcher, sending
// onto a freshly created outbound queue.
func New(r io.Reader, watcher *sigwinch.Watcher) *Commander {
	c := &Commander{
		out:     queue.NewUnbounded[Event](),
		watcher: watcher,
		done:    make(chan struct{}),
	}
	go c.runKeyReader(r)
	go c.runResizeWatcher()
	return c
}

// Stop signals the resize watcher goroutine to exit. The key reader has
// no analogous stop point short of the underlying reader closing, per
// spec.md §4.1's failure model.
func (c *Commander) Stop() {
	close(c.done)
}

// Events is the single outbound stream of KeyDown/SigWinch events.
func (c *Commander) Events() <-chan Event {
	return c.out.Out()
}

// runKeyReader blocks reading one byte at a time from the controlling
// terminal and emits a KeyDown for each. Per spec.md §4.1's failure
// model, a read error terminates this goroutine. The outbound queue
// buffers internally, so this goroutine never stalls waiting on the
// Coordinator's drain loop (spec.md §5's "never block on emit").
func (c *Commander) runKeyReader(r io.Reader) {
	buf := make([]byte, 1)
	for {
		n, err := r.Read(buf)
		if n == 1 {
			c.out.In() <- Event{Kind: KeyDown, Key: key.FromByte(buf[0])}
		}
		if err != nil {
			if pdebug.Enabled {
				pdebug.Printf("commander: terminal read terminated: %s", err)
			}
			return
		}
	}
}

// runResizeWatcher polls the shared SIGWINCH flag at ~50ms intervals
// and emits a SigWinch event each time it was found set.
func (c *Commander) runResizeWatcher() {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			if c.watcher.Fired() {
				c.out.In() <- Event{Kind: SigWinch}
			}
		}
	}
}
