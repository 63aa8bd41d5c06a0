package cli

import (
	"golang.org/x/term"
)

type fdHolder interface {
	Fd() uintptr
}

// IsTerminal reports whether v is a file attached to a terminal.
func IsTerminal(v any) bool {
	f, ok := v.(fdHolder)
	return ok && term.IsTerminal(int(f.Fd()))
}
