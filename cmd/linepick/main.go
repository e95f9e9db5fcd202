// Command linepick is an interactive terminal-based fuzzy line filter:
// it streams input lines, lets the user type a query, and prints the
// selected lines to standard output.
//
// Grounded on peco's cmd/peco/peco.go for the top-level wiring shape
// (parse flags, open input, run, emit selection), rebuilt around this
// core's actor set instead of peco's single-process Peco struct.
package main

import (
	"fmt"
	"os"

	"github.com/linepick/linepick/internal/commander"
	"github.com/linepick/linepick/internal/coordinator"
	"github.com/linepick/linepick/internal/isatty"
	"github.com/linepick/linepick/internal/reader"
	"github.com/linepick/linepick/internal/render"
	"github.com/linepick/linepick/internal/searcher"
	"github.com/linepick/linepick/internal/sigwinch"
	"github.com/linepick/linepick/internal/state"
	"github.com/linepick/linepick/internal/tty"
	"github.com/linepick/linepick/linestore"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(argv []string) int {
	opts, err := parseOptions(argv)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	input, closeInput, err := selectInput(opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer closeInput()

	term, err := tty.Open()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer term.Close()

	renderer, err := render.New(opts.CJK)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer renderer.Close()

	store := linestore.New()
	rd := reader.New(input, store)
	srch := searcher.New(store)
	watcher := sigwinch.New()
	cmd := commander.New(term.File(), watcher)
	defer cmd.Stop()

	st, initial := state.New(store, opts.Query, opts.CJK, renderer)

	lines := coordinator.Run(cmd, rd, srch, st, renderer, initial)

	out := term.ResultWriter()
	for _, line := range lines {
		fmt.Fprintln(out, line)
	}
	return 0
}

// selectInput implements spec.md §6's CLI surface source selection:
// the positional INPUT file if given, else standard input if it is not
// itself a terminal, else an empty source.
func selectInput(opts *options) (*os.File, func() error, error) {
	switch {
	case opts.hasInputFile():
		f, err := opts.openInput()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open input file: %w", err)
		}
		return f, f.Close, nil
	case !isatty.IsTerminal(os.Stdin):
		return os.Stdin, func() error { return nil }, nil
	default:
		return emptyInput(), func() error { return nil }, nil
	}
}

// emptyInput returns a closed-at-EOF file-like reader standing in for
// "read nothing" when no INPUT was given and stdin is itself a
// terminal.
func emptyInput() *os.File {
	r, w, err := os.Pipe()
	if err != nil {
		// Pipe creation failing is not a case the reader needs to
		// recover from gracefully; fall back to /dev/null.
		f, _ := os.Open(os.DevNull)
		return f
	}
	w.Close()
	return r
}
