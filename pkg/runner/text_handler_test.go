package runner

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/aretw0/tasklist/pkg/domain"
	"github.com/aretw0/tasklist/pkg/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextHandler_Input(t *testing.T) {
	out := &bytes.Buffer{}
	h := NewTextHandler(strings.NewReader("  first  \nsecond"), out)
	ctx := context.Background()

	got, err := h.Input(ctx)
	require.NoError(t, err)
	assert.Equal(t, "first", got)

	got, err = h.Input(ctx)
	require.NoError(t, err)
	assert.Equal(t, "second", got)

	_, err = h.Input(ctx)
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, "> > > ", out.String())
}

func TestTextHandler_InputRetriesRejectedLines(t *testing.T) {
	t.Setenv(EnvMaxInputSize, "8")
	out := &bytes.Buffer{}
	h := NewTextHandler(strings.NewReader("much too long\nok\n"), out, WithPrompt(""))

	got, err := h.Input(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Contains(t, out.String(), "Please try again.")
}

func TestTextHandler_Confirm(t *testing.T) {
	tests := map[string]bool{
		"y\n":     true,
		"YES\n":   true,
		"n\n":     false,
		"\n":      false,
		"maybe\n": false,
		"":        false,
	}
	for in, want := range tests {
		out := &bytes.Buffer{}
		h := NewTextHandler(strings.NewReader(in), out)
		assert.Equal(t, want, h.Confirm(context.Background(), "Sure?"), "%q", in)
		assert.True(t, strings.HasPrefix(out.String(), "Sure? [y/N]: "))
	}
}

func TestTextHandler_Render(t *testing.T) {
	m := view.Build([]domain.Task{{ID: 1, Text: "Buy milk"}}, domain.Counts{Total: 1, Pending: 1}, "")

	t.Run("Plain", func(t *testing.T) {
		out := &bytes.Buffer{}
		h := NewTextHandler(strings.NewReader(""), out)
		require.NoError(t, h.Render(context.Background(), m))
		assert.Contains(t, out.String(), "[ ] 1  Buy milk")
	})

	t.Run("With Renderer", func(t *testing.T) {
		out := &bytes.Buffer{}
		h := NewTextHandler(strings.NewReader(""), out, WithTextHandlerRenderer(func(s string) (string, error) {
			return "Rendered: " + s, nil
		}))
		require.NoError(t, h.Render(context.Background(), m))
		assert.True(t, strings.HasPrefix(out.String(), "Rendered: # Tasks"))
	})

	t.Run("Renderer Failure Falls Back", func(t *testing.T) {
		out := &bytes.Buffer{}
		h := NewTextHandler(strings.NewReader(""), out, WithTextHandlerRenderer(func(s string) (string, error) {
			return "", io.ErrUnexpectedEOF
		}))
		require.NoError(t, h.Render(context.Background(), m))
		assert.Contains(t, out.String(), "[ ] 1  Buy milk")
	})
}

func TestTextHandler_Notify(t *testing.T) {
	out := &bytes.Buffer{}
	h := NewTextHandler(strings.NewReader(""), out)
	h.Notify("No tasks to delete!")
	assert.Equal(t, "! No tasks to delete!\n", out.String())
}
