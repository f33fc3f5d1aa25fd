package util

import (
	"os"

	"golang.org/x/term"
)

// IsInteractive reports whether both stdin and stderr are attached to a
// terminal, i.e. someone is watching and a viewer window is welcome.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stderr.Fd()))
}
