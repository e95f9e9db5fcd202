// Package coordinator implements the pure fan-out/fan-in actor of
// spec.md §4.7: a single select loop, run on the caller's goroutine,
// drains the Commander, Reader and Searcher channels, translating each
// actor's local vocabulary into State's and routing State's outbound
// search requests back to the Searcher. It starts no per-channel
// subscriber goroutines. The first Complete reply ends the run and
// surfaces the selected lines.
//
// Grounded on peco's hub.Hub (hub/hub.go) for the "one struct fans
// typed payloads between independently-running producers and a single
// consumer" shape; Hub lets any goroutine push onto any channel, while
// this Coordinator additionally owns the translation step spec.md §2
// requires ("actors never name each other").
package coordinator

import (
	"github.com/linepick/linepick/internal/commander"
	"github.com/linepick/linepick/internal/reader"
	"github.com/linepick/linepick/internal/searcher"
	"github.com/linepick/linepick/internal/state"
	"github.com/linepick/linepick/screen"
)

// Run drives the actors to completion and returns the selected lines.
// It fans Commander key/resize events, Reader chunk/finish events, and
// Searcher replies into st, and forwards st's outbound search requests
// to srch. The first Complete effect st produces ends the loop.
func Run(cmd *commander.Commander, rd *reader.Reader, srch *searcher.Searcher, st *state.State, renderer screen.Renderer, initial []Out) []string {
	for _, o := range initial {
		if lines, done := apply(o, renderer, srch); done {
			return lines
		}
	}

	cmdEvents := cmd.Events()
	rdEvents := rd.Events()
	searchReplies := srch.Responses()

	for {
		select {
		case ev, ok := <-cmdEvents:
			if !ok {
				cmdEvents = nil
				continue
			}
			var outs []state.Out
			switch ev.Kind {
			case commander.KeyDown:
				outs = st.PutKey(ev.Key)
			case commander.SigWinch:
				outs = st.ResizeScreen()
			}
			if lines, done := applyAll(outs, renderer, srch); done {
				return lines
			}

		case ev, ok := <-rdEvents:
			if !ok {
				rdEvents = nil
				continue
			}
			var outs []state.Out
			switch ev.Kind {
			case reader.DidReadChunk:
				outs = st.ReaderDidReadChunk()
			case reader.DidFinish:
				outs = st.ReaderDidFinish(ev.StoreLen)
			}
			if lines, done := applyAll(outs, renderer, srch); done {
				return lines
			}

		case resp, ok := <-searchReplies:
			if !ok {
				searchReplies = nil
				continue
			}
			outs := st.PutSearchResponse(resp)
			if lines, done := applyAll(outs, renderer, srch); done {
				return lines
			}
		}
	}
}

// Out is an alias kept local to this package's Run signature so callers
// outside state never need to import state.Out directly to drive the
// initial effects New produced.
type Out = state.Out

func applyAll(outs []state.Out, renderer screen.Renderer, srch *searcher.Searcher) ([]string, bool) {
	for _, o := range outs {
		if lines, done := apply(o, renderer, srch); done {
			return lines, true
		}
	}
	return nil, false
}

func apply(o state.Out, renderer screen.Renderer, srch *searcher.Searcher) ([]string, bool) {
	switch o.Kind {
	case state.OutSnapshot:
		renderer.Render(o.Snapshot)
	case state.OutSearchRequest:
		srch.Requests() <- o.Request
	case state.OutComplete:
		return o.Lines, true
	}
	return nil, false
}
