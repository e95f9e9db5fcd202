package coordinator

import (
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linepick/linepick/internal/commander"
	"github.com/linepick/linepick/internal/reader"
	"github.com/linepick/linepick/internal/searcher"
	"github.com/linepick/linepick/internal/sigwinch"
	"github.com/linepick/linepick/internal/state"
	"github.com/linepick/linepick/linestore"
	"github.com/linepick/linepick/screen"
)

type fakeRenderer struct {
	height int
}

func (f *fakeRenderer) Render(screen.Data) error { return nil }
func (f *fakeRenderer) ListViewHeight() int       { return f.height }
func (f *fakeRenderer) Close() error              { return nil }

func TestEmptyQueryPassthroughEndToEnd(t *testing.T) {
	store := linestore.New()
	rd := reader.New(strings.NewReader("apple\nbanana\ncherry\n"), store)
	srch := searcher.New(store)
	renderer := &fakeRenderer{height: 10}

	keyR, keyW := io.Pipe()
	defer keyW.Close()
	cmd := commander.New(keyR, sigwinch.New())
	defer cmd.Stop()

	st, initial := state.New(store, "", false, renderer)

	resultCh := make(chan []string, 1)
	go func() {
		resultCh <- Run(cmd, rd, srch, st, renderer, initial)
	}()

	// Give the Reader a moment to finish ingesting before sending Enter,
	// matching the end-to-end scenario's "input already present" setup.
	time.Sleep(100 * time.Millisecond)
	keyW.Write([]byte{0x0D}) // CtrlM / Enter

	select {
	case lines := <-resultCh:
		assert.Equal(t, []string{"apple"}, lines)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for completion")
	}
}

func TestReaderFinishWithEmptyStoreCompletesWithNoInput(t *testing.T) {
	store := linestore.New()
	rd := reader.New(strings.NewReader(""), store)
	srch := searcher.New(store)
	renderer := &fakeRenderer{height: 10}

	keyR, keyW := io.Pipe()
	defer keyW.Close()
	cmd := commander.New(keyR, sigwinch.New())
	defer cmd.Stop()

	st, initial := state.New(store, "", false, renderer)

	resultCh := make(chan []string, 1)
	go func() {
		resultCh <- Run(cmd, rd, srch, st, renderer, initial)
	}()

	select {
	case lines := <-resultCh:
		assert.Empty(t, lines)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for completion")
	}
}

// TestTypedQueryRacesWithInFlightSearchEndToEnd types a query one byte
// at a time with no delay between writes, against a store large enough
// (past batchBound) that a search for an early partial query is still
// in flight when later KeyDown events are already queued on the
// Commander's outbound stream. This is the interleaving spec.md §8
// scenarios 2/3/5 describe; with a bounded inter-actor channel the
// Searcher's reply and the Coordinator's next outbound request can each
// wait on a consumer that is itself blocked sending, deadlocking the
// session instead of completing it.
func TestTypedQueryRacesWithInFlightSearchEndToEnd(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 5999; i++ {
		fmt.Fprintf(&sb, "noise-%d\n", i)
	}
	sb.WriteString("uniquetoken\n")

	store := linestore.New()
	rd := reader.New(strings.NewReader(sb.String()), store)
	srch := searcher.New(store)
	renderer := &fakeRenderer{height: 10}

	keyR, keyW := io.Pipe()
	defer keyW.Close()
	cmd := commander.New(keyR, sigwinch.New())
	defer cmd.Stop()

	st, initial := state.New(store, "", false, renderer)

	resultCh := make(chan []string, 1)
	go func() {
		resultCh <- Run(cmd, rd, srch, st, renderer, initial)
	}()

	// Give the Reader a moment to ingest all 6000 lines first, so each
	// keystroke below triggers a real multi-batch search.
	time.Sleep(150 * time.Millisecond)

	go func() {
		for _, b := range []byte("uniquetoken") {
			keyW.Write([]byte{b})
		}
		keyW.Write([]byte{0x0D}) // CtrlM / Enter
	}()

	select {
	case lines := <-resultCh:
		assert.Equal(t, []string{"uniquetoken"}, lines)
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for completion (likely a channel deadlock)")
	}
}

func TestCtrlCEndsSessionWithNoOutput(t *testing.T) {
	store := linestore.New()
	rd := reader.New(strings.NewReader("a\nb\n"), store)
	srch := searcher.New(store)
	renderer := &fakeRenderer{height: 10}

	keyR, keyW := io.Pipe()
	defer keyW.Close()
	cmd := commander.New(keyR, sigwinch.New())
	defer cmd.Stop()

	st, initial := state.New(store, "", false, renderer)

	resultCh := make(chan []string, 1)
	go func() {
		resultCh <- Run(cmd, rd, srch, st, renderer, initial)
	}()

	time.Sleep(50 * time.Millisecond)
	keyW.Write([]byte{0x03}) // CtrlC

	select {
	case lines := <-resultCh:
		require.Empty(t, lines)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for completion")
	}
}
