// Package cliutil holds small helpers shared by the command line tools.
package cliutil

import "github.com/mattn/go-isatty"

// IsTty reports whether the file descriptor is attached to a terminal.
func IsTty(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
