package view

import (
	"fmt"
	"strings"
)

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	`*`, `\*`,
	`_`, `\_`,
	`{`, `\{`,
	`}`, `\}`,
	`[`, `\[`,
	`]`, `\]`,
	`(`, `\(`,
	`)`, `\)`,
	`#`, `\#`,
	`+`, `\+`,
	`-`, `\-`,
	`.`, `\.`,
	`!`, `\!`,
	`|`, `\|`,
	`<`, `&lt;`,
	`>`, `&gt;`,
	`~`, `\~`,
)

// EscapeMarkdown neutralizes markdown and inline HTML in s.
func EscapeMarkdown(s string) string {
	return markdownEscaper.Replace(EscapeTerminal(s))
}

// RenderMarkdown renders the model as a markdown task list.
func RenderMarkdown(m Model) string {
	var b strings.Builder
	b.WriteString("# Tasks\n\n")
	if m.Term != "" {
		fmt.Fprintf(&b, "Searching for **%s**\n\n", EscapeMarkdown(m.Term))
	}
	if m.Empty {
		fmt.Fprintf(&b, "_%s_\n\n", EmptyPlaceholder)
	}
	for _, it := range m.Items {
		mark := " "
		text := EscapeMarkdown(it.Text)
		if it.Done {
			mark = "x"
			text = "~~" + text + "~~"
		}
		fmt.Fprintf(&b, "- [%s] %s `%d`\n", mark, text, it.ID)
	}
	if !m.Empty {
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "**Total** %d · **Pending** %d · **Completed** %d\n",
		m.Counts.Total, m.Counts.Pending, m.Counts.Completed)
	return b.String()
}
