// Package tty opens the controlling terminal for raw byte input and
// performs the fd-shuffling dance of spec.md §6 so that curses-style
// drawing on fd 1/2 cannot pollute the result pipe the process was
// invoked with.
//
// Grounded on petermattis-prompt's use of golang.org/x/term.MakeRaw/
// Restore (prompt.go) for the raw-mode half; the fd save/dup2/restore
// sequence has no analog in the pack (peco's termbox-based tty_posix.go
// is dead code not reachable from its go.mod) and is built directly
// from spec.md §6.
package tty

import (
	"os"
	"syscall"

	"github.com/pkg/errors"
	"golang.org/x/term"
)

// TTY is the opened controlling terminal, in raw mode, with the
// process's original stdout preserved on a spare descriptor.
type TTY struct {
	file *os.File
	saved *term.State

	savedStdout *os.File
}

// Open opens /dev/tty for input, puts it into raw mode, and performs
// the fd save/duplicate so that anything written to the process's
// original fd 1/2 during the session does not reach the result pipe.
//
// On success fd 1 has been saved to a new descriptor (exposed via
// ResultWriter) and fd 2 has been duplicated onto fd 1, matching
// spec.md §6's "stdout saved to fd 3, stderr duplicated onto fd 1"
// sequence; Close reverses it.
func Open() (*TTY, error) {
	f, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open /dev/tty")
	}

	saved, err := term.MakeRaw(int(f.Fd()))
	if err != nil {
		f.Close()
		return nil, errors.Wrap(err, "failed to set /dev/tty to raw mode")
	}

	savedStdout, err := dupStdout()
	if err != nil {
		term.Restore(int(f.Fd()), saved)
		f.Close()
		return nil, errors.Wrap(err, "failed to save original stdout")
	}
	if err := dupStderrOntoStdout(); err != nil {
		term.Restore(int(f.Fd()), saved)
		f.Close()
		return nil, errors.Wrap(err, "failed to redirect stderr onto stdout")
	}

	return &TTY{file: f, saved: saved, savedStdout: savedStdout}, nil
}

// File is the raw-mode /dev/tty handle the Commander reads key bytes
// from.
func (t *TTY) File() *os.File {
	return t.file
}

// ResultWriter is the process's original stdout, preserved across the
// session so the final selected lines can be written to it untouched
// by any drawing that happened on fd 1/2 during the session.
func (t *TTY) ResultWriter() *os.File {
	return t.savedStdout
}

// Close restores the terminal's original mode and fd layout.
func (t *TTY) Close() error {
	err := term.Restore(int(t.file.Fd()), t.saved)
	if dupErr := syscall.Dup2(int(t.savedStdout.Fd()), int(os.Stdout.Fd())); err == nil {
		err = dupErr
	}
	t.savedStdout.Close()
	if closeErr := t.file.Close(); err == nil {
		err = closeErr
	}
	return err
}
