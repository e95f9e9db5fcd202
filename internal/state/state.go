// Package state implements the central reducer of spec.md §4.4: it owns
// the QueryEditor, ItemList, and MatchInfoCache, and reduces inbound
// events (key presses, search responses, reader progress, resize) into
// outbound screen snapshots, search requests, and the final completion
// result.
//
// Grounded on the dead root-level state.go/ctx.go pair (the event-
// reduction loop shape, itself unreachable from the teacher's go.mod)
// generalized against the modern hub/buffer/selection packages for the
// concrete sub-models this reducer owns.
package state

import (
	"github.com/linepick/linepick/internal/searcher"
	"github.com/linepick/linepick/internal/width"
	"github.com/linepick/linepick/itemlist"
	"github.com/linepick/linepick/key"
	"github.com/linepick/linepick/linestore"
	"github.com/linepick/linepick/matchcache"
	"github.com/linepick/linepick/query"
	"github.com/linepick/linepick/screen"
)

// OutKind distinguishes the three things State can emit in response to
// one input.
type OutKind int

const (
	OutSnapshot OutKind = iota
	OutSearchRequest
	OutComplete
)

// Out is the union of outbound effects State produces.
type Out struct {
	Kind     OutKind
	Snapshot screen.Data
	Request  searcher.Request
	Lines    []string // final selected lines, for OutComplete
}

// State is the reducer. It is not safe for concurrent use; the
// Coordinator is its sole caller, one message at a time, per spec.md
// §5's "State processes one message at a time" ordering guarantee.
type State struct {
	store    *linestore.Store
	editor   *query.Editor
	list     *itemlist.List
	cache    *matchcache.Cache
	widthFn  width.Func
	cjk      bool
	status   string
	renderer screen.Renderer
}

// New creates a State reducer bound to store, seeded with an initial
// query, and sized against renderer's current list-view height. The
// returned Out slice is the effect of resolving that initial query
// (e.g. an empty query immediately seeds the identity range), mirroring
// the query-resolution procedure the Coordinator would otherwise have
// to trigger with a synthetic first UpdateScreen.
func New(store *linestore.Store, initialQuery string, cjk bool, renderer screen.Renderer) (*State, []Out) {
	w, _ := width.New(cjk)
	s := &State{
		store:    store,
		editor:   query.NewEditor(initialQuery),
		list:     itemlist.New(renderer.ListViewHeight()),
		cache:    matchcache.New(),
		widthFn:  w,
		cjk:      cjk,
		renderer: renderer,
	}
	return s, s.resolveQuery()
}

// PutKey reduces a single key event, per the transition table of
// spec.md §4.4. The returned Out slice holds, in order, every effect
// this key produced (a key can produce both a snapshot and a search
// request).
func (s *State) PutKey(k key.Key) []Out {
	switch k.Kind {
	case key.CtrlC:
		return []Out{{Kind: OutComplete, Lines: nil}}
	case key.CtrlM:
		return []Out{{Kind: OutComplete, Lines: s.resolveSelectedLines()}}
	case key.CtrlI:
		s.list.ToggleMark()
		s.list.MoveHighlightForward()
		return []Out{{Kind: OutSnapshot, Snapshot: s.snapshot()}}
	case key.CtrlN:
		s.list.MoveHighlightForward()
		return []Out{{Kind: OutSnapshot, Snapshot: s.snapshot()}}
	case key.CtrlP:
		s.list.MoveHighlightBackward()
		return []Out{{Kind: OutSnapshot, Snapshot: s.snapshot()}}
	default:
		s.applyToEditor(k)
		return s.resolveQuery()
	}
}

// applyToEditor dispatches the remaining editing/movement keys to the
// QueryEditor. Unrecognized keys are no-ops.
func (s *State) applyToEditor(k key.Key) {
	switch k.Kind {
	case key.Char:
		s.editor.Insert(k.Rune)
	case key.Del:
		s.editor.Backspace()
	case key.CtrlH:
		s.editor.Backspace()
	case key.CtrlD:
		s.editor.DeleteForward()
	case key.CtrlA:
		s.editor.MoveHome()
	case key.CtrlE:
		s.editor.MoveEnd()
	case key.CtrlB:
		s.editor.MoveLeft()
	case key.CtrlF:
		s.editor.MoveRight()
	}
}

// PutSearchResponse merges a Searcher reply into the cache, adopts its
// indices into the ItemList, and, if the query is still current and
// unexhausted, requests the next batch. Per spec.md §4.4/§5, a reply for
// a stale query (one no longer equal to the editor's text) only updates
// the cache; it never re-triggers a search or a snapshot for a query the
// user has since moved past.
func (s *State) PutSearchResponse(resp searcher.Response) []Out {
	merged := s.cache.Merge(resp.Query, matchcache.Info{
		Indices: resp.Indices,
		Range:   matchcache.Range{Start: resp.Start, End: resp.End},
	})

	if resp.Query != s.editor.String() {
		return nil
	}

	s.list.SetIndices(itemlist.VectorProvider(merged.Indices))
	out := []Out{{Kind: OutSnapshot, Snapshot: s.snapshot()}}

	if merged.Range.End < s.store.Len() {
		out = append(out, Out{Kind: OutSearchRequest, Request: searcher.Request{
			Query: resp.Query,
			Start: merged.Range.End,
		}})
	}
	return out
}

// ReaderDidFinish handles the Reader's completion signal: an empty
// store means there is nothing to select from, so the session ends with
// an empty result.
func (s *State) ReaderDidFinish(storeLen int) []Out {
	if storeLen == 0 {
		return []Out{{Kind: OutComplete, Lines: nil}}
	}
	return nil
}

// ReaderDidReadChunk re-runs query resolution so newly arrived lines are
// reflected (an empty-query session grows its identity range; a query
// session's cache entries remain valid since indices are stable).
func (s *State) ReaderDidReadChunk() []Out {
	return s.resolveQuery()
}

// ResizeScreen re-sizes the ItemList window against the renderer's
// current capacity and re-emits a snapshot.
func (s *State) ResizeScreen() []Out {
	s.list.Resize(s.renderer.ListViewHeight())
	return []Out{{Kind: OutSnapshot, Snapshot: s.snapshot()}}
}

// UpdateScreen re-runs the query-resolution procedure, an idempotent
// refresh per spec.md §4.4/§8.
func (s *State) UpdateScreen() []Out {
	return s.resolveQuery()
}

// resolveQuery implements the query-resolution procedure of spec.md
// §4.4.
func (s *State) resolveQuery() []Out {
	if s.editor.Len() == 0 {
		s.list.SetIndices(itemlist.RangeProvider{N: s.store.Len()})
		return []Out{{Kind: OutSnapshot, Snapshot: s.snapshot()}}
	}

	q := s.editor.String()
	info, ok := s.cache.Get(q)
	if !ok {
		return []Out{
			{Kind: OutSnapshot, Snapshot: s.snapshot()},
			{Kind: OutSearchRequest, Request: searcher.Request{Query: q, Start: 0}},
		}
	}

	s.list.SetIndices(itemlist.VectorProvider(info.Indices))
	out := []Out{{Kind: OutSnapshot, Snapshot: s.snapshot()}}
	if info.Range.End < s.store.Len() {
		out = append(out, Out{Kind: OutSearchRequest, Request: searcher.Request{
			Query: q,
			Start: info.Range.End,
		}})
	}
	return out
}

// resolveSelectedLines materializes the ItemList's selected indices
// into their original line bytes, per spec.md §4.4's "selected indices
// on Enter" rule.
func (s *State) resolveSelectedLines() []string {
	indices := s.list.SelectedIndices()
	lines := make([]string, len(indices))
	for i, idx := range indices {
		lines[i] = string(s.store.At(idx).Bytes())
	}
	return lines
}

// snapshot produces the current ScreenData, per spec.md §3.
func (s *State) snapshot() screen.Data {
	visible := s.list.VisibleIndices()
	items := make([]screen.Item, len(visible))
	for i, idx := range visible {
		items[i] = screen.Item{LineIndex: idx, Display: s.store.At(idx).Display()}
	}

	row, hasHi := s.list.Highlight()

	return screen.Data{
		Query:        s.editor.String(),
		Cursor:       s.editor.Column(s.widthFn),
		Highlight:    row,
		HasHighlight: hasHi,
		MarkedRows:   s.list.MarkedRows(),
		Items:        items,
		Total:        s.store.Len(),
		Matched:      s.list.Len(),
		Status:       s.status,
		CJK:          s.cjk,
	}
}

// SetStatus sets the optional status message shown on the status line.
func (s *State) SetStatus(msg string) {
	s.status = msg
}
