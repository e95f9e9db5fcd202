// Package itemlist implements the ItemList view model: it reconciles a
// changing universe of matched line indices with a movable highlight, a
// marked set, and a fixed-height clipping window.
//
// Grounded on peco's buffer.Filtered (the provider/position-to-index
// mapping) and selection.Set (selection/selection.go, the btree-backed
// ascending marked set); peco keeps clipping and highlight state in its
// View/Layout instead of the filtered buffer, so the merge of the three
// into one view model here is new structure built from spec.md §3/§4.5.
package itemlist

// List is the ItemList view model. It is owned exclusively by the State
// actor and carries no internal locking, the same single-owner rationale
// as query.Editor and matchcache.Cache.
type List struct {
	h int // window height, i.e. H in the spec

	provider Provider
	start    int  // s: clipping start
	highlit  int  // h: highlighted row offset, meaningful only when hasHi
	hasHi    bool // h == None when false

	marks *markedSet
}

// New creates an empty List with the given maximum visible row count.
func New(height int) *List {
	return &List{
		h:        height,
		provider: RangeProvider{N: 0},
		marks:    newMarkedSet(),
	}
}

// Resize changes the window height and re-clamps the clipping/highlight
// state against it, as if SetIndices had been called again with the
// current provider.
func (l *List) Resize(height int) {
	l.h = height
	l.clamp()
}

// Len returns the number of indices the current provider produces.
func (l *List) Len() int {
	return l.provider.Len()
}

// Start returns the clipping start s.
func (l *List) Start() int {
	return l.start
}

// Highlight returns the highlighted row offset and whether one exists.
func (l *List) Highlight() (int, bool) {
	return l.highlit, l.hasHi
}

// SetIndices replaces the provider and re-clamps clipping/highlight
// state per spec.md §4.5.
func (l *List) SetIndices(p Provider) {
	l.provider = p
	l.clamp()
}

func (l *List) clamp() {
	n := l.provider.Len()
	visible := minInt(l.h, n)

	if n == 0 {
		l.start = 0
		l.hasHi = false
		l.highlit = 0
		return
	}

	if l.start+visible > n {
		l.start = n - visible
	}
	if l.start < 0 {
		l.start = 0
	}

	max := visible - 1
	if !l.hasHi {
		l.highlit = 0
		l.hasHi = true
	} else if l.highlit > max {
		l.highlit = max
	}
}

// MoveHighlightForward advances the highlight by one row, scrolling the
// clipping window forward when the highlight is already at the bottom
// visible row and more lines lie below it. No-op when the list is empty.
func (l *List) MoveHighlightForward() {
	n := l.provider.Len()
	if n == 0 {
		return
	}
	visible := minInt(l.h, n)
	maxRow := visible - 1

	if l.highlit == maxRow {
		if l.start+visible < n {
			l.start++
		}
		return
	}
	l.highlit++
}

// MoveHighlightBackward retreats the highlight by one row, scrolling the
// clipping window backward when the highlight is already at the top
// visible row and the window is not already at the start.
func (l *List) MoveHighlightBackward() {
	n := l.provider.Len()
	if n == 0 {
		return
	}

	if l.highlit == 0 {
		if l.start > 0 {
			l.start--
		}
		return
	}
	l.highlit--
}

// ToggleMark flips marked-set membership for the line-index at the
// current highlight row. No-op when nothing is highlighted.
func (l *List) ToggleMark() {
	if !l.hasHi {
		return
	}
	idx := l.provider.At(l.start + l.highlit)
	l.marks.Toggle(idx)
}

// MarkedRows enumerates the visible indices and yields the 0-based row
// positions (relative to the clipping window) whose line-index is in
// the marked set.
func (l *List) MarkedRows() []int {
	visible := l.VisibleIndices()
	var rows []int
	for row, idx := range visible {
		if l.marks.Has(idx) {
			rows = append(rows, row)
		}
	}
	return rows
}

// VisibleIndices returns the slice of the provider from s, of length
// min(H, len-s).
func (l *List) VisibleIndices() []int {
	n := l.provider.Len()
	if n == 0 || l.start >= n {
		return nil
	}
	count := minInt(l.h, n-l.start)
	out := make([]int, count)
	for i := 0; i < count; i++ {
		out[i] = l.provider.At(l.start + i)
	}
	return out
}

// SelectedIndices implements spec.md §4.4's "selected indices on Enter"
// rule: the marked set in ascending order if non-empty; otherwise the
// single highlighted line-index, if any; otherwise empty.
func (l *List) SelectedIndices() []int {
	if l.marks.Len() > 0 {
		return l.marks.Ascend()
	}
	if l.hasHi {
		return []int{l.provider.At(l.start + l.highlit)}
	}
	return nil
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
