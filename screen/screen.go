// Package screen defines the ScreenData snapshot handed from the State
// actor to the Renderer, and the Renderer contract that consumes it.
//
// Grounded on peco's layout.Layout/layout.go (the gutter/mini-buffer/
// status/view region split) and screen.Screen (screen.go), generalized
// into a data-only snapshot rather than a screen handle, so State never
// touches terminal state directly.
package screen

// Item is a single resolved, display-ready line within the current
// clipping window.
type Item struct {
	// LineIndex is the index into the Line Store this item resolves to.
	LineIndex int
	// Display is the lossily UTF-8-valid display string for this line.
	Display string
}

// Data is the immutable ScreenData snapshot of spec.md §4. It carries
// everything a Renderer needs to draw a frame without touching any
// actor's internal state.
type Data struct {
	Query  string
	Cursor int // cursor column within the mini-buffer, width-aware

	// Highlight is the 0-based row, relative to the visible clipping
	// window, that is currently highlighted. HasHighlight is false when
	// the matched universe is empty.
	Highlight    int
	HasHighlight bool

	// MarkedRows holds 0-based rows, relative to the visible clipping
	// window, whose line is in the marked set.
	MarkedRows []int

	Items []Item

	Total   int // total line count in the Line Store
	Matched int // size of the currently matched universe

	Status string // optional status message; empty when none
	CJK    bool
}

// Renderer is the external collaborator contract: it consumes Data
// snapshots and draws four regions (gutter, mini-buffer, view, status),
// and reports how many rows it can give the list view so State can size
// the ItemList window accordingly.
type Renderer interface {
	// Render draws one frame from d.
	Render(d Data) error

	// ListViewHeight returns the number of rows currently available to
	// the list view (total rows minus the one-row mini-buffer and
	// one-row status line).
	ListViewHeight() int

	// Close restores any terminal state the renderer altered.
	Close() error
}
