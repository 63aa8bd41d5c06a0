package runner

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/aretw0/tasklist/pkg/domain"
	"github.com/aretw0/tasklist/pkg/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeEvents(t *testing.T, out *bytes.Buffer) []Event {
	t.Helper()
	var events []Event
	sc := bufio.NewScanner(out)
	for sc.Scan() {
		var e Event
		require.NoError(t, json.Unmarshal(sc.Bytes(), &e))
		events = append(events, e)
	}
	return events
}

func TestJSONHandler_Input(t *testing.T) {
	h := NewJSONHandler(strings.NewReader("\"add Buy milk\"\nls\n"), &bytes.Buffer{})
	ctx := context.Background()

	got, err := h.Input(ctx)
	require.NoError(t, err)
	assert.Equal(t, "add Buy milk", got)

	got, err = h.Input(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ls", got)

	_, err = h.Input(ctx)
	assert.ErrorIs(t, err, io.EOF)
}

func TestJSONHandler_Events(t *testing.T) {
	out := &bytes.Buffer{}
	h := NewJSONHandler(strings.NewReader("true\n\"no\"\n"), out)
	ctx := context.Background()

	m := view.Build([]domain.Task{{ID: 3, Text: "Walk dog"}}, domain.Counts{Total: 1, Pending: 1}, "dog")
	require.NoError(t, h.Render(ctx, m))
	h.Notify("No completed tasks to clear!")
	assert.True(t, h.Confirm(ctx, "Delete this task?"))
	assert.False(t, h.Confirm(ctx, "Delete this task?"))
	require.NoError(t, h.SystemOutput(ctx, "bye"))

	events := decodeEvents(t, out)
	require.Len(t, events, 5)
	assert.Equal(t, EventView, events[0].Type)
	require.NotNil(t, events[0].View)
	assert.Equal(t, "Walk dog", events[0].View.Items[0].Text)
	assert.Equal(t, "dog", events[0].View.Term)
	assert.Equal(t, Event{Type: EventNotice, Message: "No completed tasks to clear!"}, events[1])
	assert.Equal(t, EventConfirm, events[2].Type)
	assert.Equal(t, EventConfirm, events[3].Type)
	assert.Equal(t, Event{Type: EventSystem, Message: "bye"}, events[4])
}
