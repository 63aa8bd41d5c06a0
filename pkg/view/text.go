package view

import (
	"fmt"
	"io"
	"strings"
	"unicode"
)

// RenderText writes a plain terminal listing of the model.
func RenderText(w io.Writer, m Model) error {
	var b strings.Builder
	if m.Empty {
		b.WriteString(EmptyPlaceholder + "\n")
	}
	for _, it := range m.Items {
		mark := " "
		if it.Done {
			mark = "x"
		}
		fmt.Fprintf(&b, "[%s] %d  %s\n", mark, it.ID, EscapeTerminal(it.Text))
	}
	b.WriteString(Summary(m))
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// Summary formats the counts line.
func Summary(m Model) string {
	s := fmt.Sprintf("Total: %d | Pending: %d | Completed: %d", m.Counts.Total, m.Counts.Pending, m.Counts.Completed)
	if m.Term != "" {
		s += fmt.Sprintf(" | Search: %q (%d shown)", m.Term, len(m.Items))
	}
	return s
}

// EscapeTerminal removes control characters (ANSI escapes, bells, newlines) so task
// text cannot rewrite the terminal.
func EscapeTerminal(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}
