//go:build linux

package interrupt

import (
	"os"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// hideControlCharacters clears ECHOCTL so an interrupt does not print ^C, returning a function that restores the original mode.
func hideControlCharacters(terminalFile *os.File) func() {
	if terminalFile == nil {
		return func() {}
	}
	fileDescriptor := int(terminalFile.Fd())
	if !term.IsTerminal(fileDescriptor) {
		return func() {}
	}

	originalSettings, getError := unix.IoctlGetTermios(fileDescriptor, unix.TCGETS)
	if getError != nil {
		return func() {}
	}
	updatedSettings := *originalSettings
	updatedSettings.Lflag &^= unix.ECHOCTL
	if setError := unix.IoctlSetTermios(fileDescriptor, unix.TCSETS, &updatedSettings); setError != nil {
		return func() {}
	}
	return func() {
		_ = unix.IoctlSetTermios(fileDescriptor, unix.TCSETS, originalSettings)
	}
}
