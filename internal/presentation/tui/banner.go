package tui

import (
	"fmt"
	"io"

	"github.com/aretw0/tasklist/pkg/view"
	"github.com/muesli/termenv"
)

var bannerLines = []struct {
	text  string
	color string
}{
	{"  _            _    _ _     _   ", "#34d399"},
	{" | |_ __ _ ___| | _| (_)___| |_ ", "#2dd4bf"},
	{" | __/ _` / __| |/ / | / __| __|", "#22d3ee"},
	{" | || (_| \\__ \\   <| | \\__ \\ |_ ", "#38bdf8"},
	{"  \\__\\__,_|___/_|\\_\\_|_|___/\\__|", "#60a5fa"},
}

// PrintBanner writes the colored tasklist banner to w.
func PrintBanner(w io.Writer) {
	out := termenv.NewOutput(w)
	fmt.Fprintln(w)
	for _, l := range bannerLines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w)
}

// Status formats the counts line with pending in yellow and completed in green.
func Status(w io.Writer, m view.Model) string {
	out := termenv.NewOutput(w)
	pending := out.String(fmt.Sprintf("%d pending", m.Counts.Pending)).Foreground(out.Color("#facc15"))
	done := out.String(fmt.Sprintf("%d completed", m.Counts.Completed)).Foreground(out.Color("#4ade80"))
	return fmt.Sprintf("%d tasks · %s · %s", m.Counts.Total, pending, done)
}

// Notice formats a user notice in bold.
func Notice(w io.Writer, msg string) string {
	out := termenv.NewOutput(w)
	return out.String("! " + msg).Bold().String()
}
