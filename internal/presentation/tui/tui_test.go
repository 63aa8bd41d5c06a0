package tui

import (
	"bytes"
	"testing"

	"github.com/aretw0/tasklist/pkg/domain"
	"github.com/aretw0/tasklist/pkg/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStyledRenderer(t *testing.T) {
	render, err := NewStyledRenderer("notty")
	require.NoError(t, err)

	m := view.Build([]domain.Task{{ID: 7, Text: "Buy milk"}}, domain.Counts{Total: 1, Pending: 1}, "")
	out, err := render(view.RenderMarkdown(m))
	require.NoError(t, err)
	assert.Contains(t, out, "Tasks")
	assert.Contains(t, out, "Buy milk")
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf)
	assert.Contains(t, buf.String(), "|_|___/")
	assert.NotContains(t, buf.String(), "\x1b[", "no colors when not writing to a terminal")
}

func TestStatus(t *testing.T) {
	var buf bytes.Buffer
	m := view.Model{Counts: domain.Counts{Total: 3, Pending: 2, Completed: 1}}
	assert.Equal(t, "3 tasks · 2 pending · 1 completed", Status(&buf, m))
}

func TestNotice(t *testing.T) {
	var buf bytes.Buffer
	assert.Equal(t, "! No tasks to delete!", Notice(&buf, "No tasks to delete!"))
}
