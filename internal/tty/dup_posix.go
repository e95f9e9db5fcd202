//go:build !windows

package tty

import (
	"os"
	"syscall"
)

// dupStdout saves the process's current fd 1 onto a fresh descriptor,
// so it can be handed back to the caller as the eventual result writer.
func dupStdout() (*os.File, error) {
	newFd, err := syscall.Dup(int(os.Stdout.Fd()))
	if err != nil {
		return nil, err
	}
	return os.NewFile(uintptr(newFd), "saved-stdout"), nil
}

// dupStderrOntoStdout duplicates fd 2 onto fd 1, matching spec.md §6:
// "fd 2 is duplicated onto fd 1 so curses drawing cannot pollute the
// result pipe".
func dupStderrOntoStdout() error {
	return syscall.Dup2(int(os.Stderr.Fd()), int(os.Stdout.Fd()))
}
