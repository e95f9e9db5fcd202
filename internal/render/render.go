// Package render implements the reference Renderer collaborator of
// spec.md §6: it consumes ScreenData snapshots and draws the four
// regions (gutter, mini-buffer, list view, status line) onto a tcell
// screen.
//
// Grounded on peco's screen_inline.go (tcell.Screen lifecycle: NewScreen/
// Init/SetContent/Show/Fini under a mutex) and ui/layout.go's region
// split (mini-buffer/status/list rows, gutter column), adapted from
// peco's multi-widget Layout/Draw(ctx, State) object graph into a
// single stateless Render(Data) call driven entirely by the snapshot.
package render

import (
	"strconv"
	"sync"

	"github.com/gdamore/tcell/v2"
	pdebug "github.com/lestrrat-go/pdebug"
	"github.com/pkg/errors"

	"github.com/linepick/linepick/internal/width"
	"github.com/linepick/linepick/screen"
)

const (
	rowMiniBuffer = 0
	rowStatus     = 1
	gutterWidth   = 1
)

var (
	highlightStyle = tcell.StyleDefault.Reverse(true)
	markStyle      = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	statusStyle    = tcell.StyleDefault.Foreground(tcell.ColorTeal)
)

// Screen is a Renderer backed by a live tcell.Screen.
type Screen struct {
	mu        sync.Mutex
	scr       tcell.Screen
	runeWidth width.RuneFunc
}

// New initializes a tcell screen for drawing. cjk selects the width
// table used to truncate list rows to the viewport, matching the
// QueryEditor's own CJK-aware width function.
func New(cjk bool) (*Screen, error) {
	scr, err := tcell.NewScreen()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create tcell screen")
	}
	if err := scr.Init(); err != nil {
		return nil, errors.Wrap(err, "failed to initialize tcell screen")
	}
	scr.HideCursor()

	_, rw := width.New(cjk)
	return &Screen{scr: scr, runeWidth: rw}, nil
}

// ListViewHeight returns the rows available to the list view: total
// rows minus the mini-buffer and status rows.
func (s *Screen) ListViewHeight() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.scr == nil {
		return 0
	}
	_, h := s.scr.Size()
	h -= 2 // mini-buffer + status
	if h < 0 {
		return 0
	}
	return h
}

// Render draws one frame from d.
func (s *Screen) Render(d screen.Data) error {
	if pdebug.Enabled {
		g := pdebug.Marker("Screen.Render")
		defer g.End()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.scr == nil {
		return nil
	}

	termWidth, termHeight := s.scr.Size()
	s.scr.Clear()

	s.drawMiniBuffer(termWidth, d)
	s.drawStatus(termWidth, d)
	s.drawList(termWidth, termHeight, d)

	if d.HasHighlight {
		s.scr.ShowCursor(gutterWidth+d.Cursor, rowMiniBuffer)
	}

	s.scr.Show()
	return nil
}

func (s *Screen) drawMiniBuffer(termWidth int, d screen.Data) {
	const prompt = "QUERY>"
	col := s.drawString(0, rowMiniBuffer, termWidth, tcell.StyleDefault, prompt+" ")
	s.drawString(col, rowMiniBuffer, termWidth, tcell.StyleDefault, d.Query)
	s.scr.ShowCursor(col+d.Cursor, rowMiniBuffer)
}

func (s *Screen) drawStatus(termWidth int, d screen.Data) {
	line := formatStatus(d)
	s.drawString(0, rowStatus, termWidth, statusStyle, line)
}

// formatStatus renders "{matched}/{total} {message}" per spec.md §6.
func formatStatus(d screen.Data) string {
	base := strconv.Itoa(d.Matched) + "/" + strconv.Itoa(d.Total)
	if d.Status == "" {
		return base
	}
	return base + " " + d.Status
}

func (s *Screen) drawList(termWidth, termHeight int, d screen.Data) {
	marked := make(map[int]bool, len(d.MarkedRows))
	for _, row := range d.MarkedRows {
		marked[row] = true
	}

	listHeight := termHeight - 2
	for row := 0; row < listHeight; row++ {
		y := row + 2
		gutter := ' '
		switch {
		case d.HasHighlight && row == d.Highlight:
			gutter = '>'
		case marked[row]:
			gutter = '*'
		}
		s.scr.SetContent(0, y, gutter, nil, tcell.StyleDefault)

		if row >= len(d.Items) {
			continue
		}

		style := tcell.StyleDefault
		if d.HasHighlight && row == d.Highlight {
			style = highlightStyle
		} else if marked[row] {
			style = markStyle
		}
		s.drawString(gutterWidth, y, termWidth-gutterWidth, style, d.Items[row].Display)
	}
}

// drawString writes str starting at (x, y), truncated to the viewport
// width using the configured CJK-aware or generic width-aware slicing,
// and returns the column after the last rune written.
func (s *Screen) drawString(x, y, maxWidth int, style tcell.Style, str string) int {
	col := x
	for _, r := range str {
		w := s.runeWidth(r)
		if w == 0 {
			w = 1
		}
		if col+w > maxWidth {
			break
		}
		s.scr.SetContent(col, y, r, nil, style)
		col += w
	}
	return col
}

// Close restores the terminal to its original state.
func (s *Screen) Close() error {
	s.mu.Lock()
	scr := s.scr
	s.scr = nil
	s.mu.Unlock()

	if scr != nil {
		scr.Fini()
	}
	return nil
}
