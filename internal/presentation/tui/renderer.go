package tui

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// DefaultWordWrap is the column width used for rendered lists.
const DefaultWordWrap = 80

// NewRenderer returns a function that renders markdown using glamour, picking a light
// or dark style from the terminal background.
func NewRenderer() (func(string) (string, error), error) {
	return newRenderer(glamour.WithAutoStyle())
}

// NewStyledRenderer renders with a named glamour style ("dark", "light", "notty", ...).
func NewStyledRenderer(style string) (func(string) (string, error), error) {
	return newRenderer(glamour.WithStandardStyle(style))
}

func newRenderer(style glamour.TermRendererOption) (func(string) (string, error), error) {
	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(DefaultWordWrap))
	if err != nil {
		return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}, nil
}
