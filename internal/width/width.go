// Package width computes display-column widths for query editing and
// rendering, with an optional CJK-aware mode configured once at startup.
package width

import "github.com/mattn/go-runewidth"

// Func measures the number of terminal columns a string occupies.
type Func func(string) int

// RuneFunc measures the number of terminal columns a single rune occupies.
type RuneFunc func(rune) int

// New returns width functions for the given CJK mode. When cjk is true,
// ambiguous-width runes (e.g. many CJK punctuation marks) are measured as
// double-width, matching peco's --cjk flag and buffer.go's use of
// runewidth.StringWidth under an East Asian Width condition.
func New(cjk bool) (Func, RuneFunc) {
	cond := runewidth.NewCondition()
	cond.EastAsianWidth = cjk
	return cond.StringWidth, cond.RuneWidth
}
