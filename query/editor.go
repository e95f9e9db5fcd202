package query

import "github.com/linepick/linepick/internal/width"

// Editor is the mutable query-text buffer, owned exclusively by the State
// actor. Unlike peco's query.Query (query/query.go in the teacher repo),
// it carries no internal mutex: the actor model confines every mutation
// to the State goroutine, so the lock peco needs (its Query is reached
// from multiple goroutines) would be dead weight here.
//
// Grounded on peco's query.Query (InsertAt/DeleteRange shape) combined
// with caret.go's cursor-position bookkeeping.
type Editor struct {
	text   []rune
	cursor int // rune offset, 0 <= cursor <= len(text)
}

// NewEditor creates an empty editor, optionally pre-seeded with initial
// text (the -q/--query CLI flag).
func NewEditor(initial string) *Editor {
	e := &Editor{text: []rune(initial)}
	e.cursor = len(e.text)
	return e
}

// String returns the current query text.
func (e *Editor) String() string {
	return string(e.text)
}

// Len returns the number of runes in the query text.
func (e *Editor) Len() int {
	return len(e.text)
}

// Cursor returns the cursor position, measured in runes.
func (e *Editor) Cursor() int {
	return e.cursor
}

// Column returns the cursor position measured in display columns, using
// the given width function (CJK-aware or not, chosen once at startup).
func (e *Editor) Column(w width.Func) int {
	return w(string(e.text[:e.cursor]))
}

// Insert inserts r at the cursor and advances the cursor past it.
func (e *Editor) Insert(r rune) {
	if e.cursor == len(e.text) {
		e.text = append(e.text, r)
		e.cursor++
		return
	}
	buf := make([]rune, len(e.text)+1)
	copy(buf, e.text[:e.cursor])
	buf[e.cursor] = r
	copy(buf[e.cursor+1:], e.text[e.cursor:])
	e.text = buf
	e.cursor++
}

// Backspace deletes the rune before the cursor, if any.
func (e *Editor) Backspace() {
	if e.cursor == 0 {
		return
	}
	e.deleteRange(e.cursor-1, e.cursor)
}

// DeleteForward deletes the rune at the cursor, if any (the Ctrl-D key).
func (e *Editor) DeleteForward() {
	if e.cursor >= len(e.text) {
		return
	}
	e.deleteRange(e.cursor, e.cursor+1)
}

func (e *Editor) deleteRange(start, end int) {
	if end > len(e.text) {
		end = len(e.text)
	}
	copy(e.text[start:], e.text[end:])
	e.text = e.text[:len(e.text)-(end-start)]
	e.cursor = start
}

// MoveLeft moves the cursor one rune left, clamped at 0.
func (e *Editor) MoveLeft() {
	if e.cursor > 0 {
		e.cursor--
	}
}

// MoveRight moves the cursor one rune right, clamped at len(text).
func (e *Editor) MoveRight() {
	if e.cursor < len(e.text) {
		e.cursor++
	}
}

// MoveHome moves the cursor to the start of the text.
func (e *Editor) MoveHome() {
	e.cursor = 0
}

// MoveEnd moves the cursor to the end of the text.
func (e *Editor) MoveEnd() {
	e.cursor = len(e.text)
}
