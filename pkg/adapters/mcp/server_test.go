package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aretw0/tasklist"
	"github.com/aretw0/tasklist/pkg/adapters/memory"
	"github.com/aretw0/tasklist/pkg/ports"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	s, err := tasklist.Open(context.Background(),
		tasklist.WithStore(memory.NewStore()),
		tasklist.WithConfirmer(ports.AlwaysConfirm),
	)
	require.NoError(t, err)
	return NewServer(s)
}

// rpc sends one JSON-RPC message and returns the encoded reply.
func rpc(t *testing.T, s *Server, msg string) string {
	t.Helper()
	reply := s.MCPServer().HandleMessage(context.Background(), json.RawMessage(msg))
	data, err := json.Marshal(reply)
	require.NoError(t, err)
	return string(data)
}

func initialize(t *testing.T, s *Server) {
	t.Helper()
	rpc(t, s, `{"jsonrpc":"2.0","id":0,"method":"initialize","params":{"protocolVersion":"2024-11-05","capabilities":{},"clientInfo":{"name":"test","version":"1.0"}}}`)
}

func TestTools_Handlers(t *testing.T) {
	ctx := context.Background()
	s := newTestServer(t)
	req := mcp.CallToolRequest{}

	added, err := s.handleAdd(ctx, req, AddArgs{Text: " Buy milk "})
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", added.Task.Text)
	assert.Equal(t, 1, added.Counts.Pending)

	_, err = s.handleAdd(ctx, req, AddArgs{Text: "   "})
	assert.EqualError(t, err, tasklist.NoticeEmptyText)

	toggled, err := s.handleToggle(ctx, req, IDArgs{ID: added.Task.ID})
	require.NoError(t, err)
	assert.True(t, toggled.Task.Done)
	assert.Equal(t, 1, toggled.Counts.Completed)

	_, err = s.handleToggle(ctx, req, IDArgs{ID: 1})
	assert.Error(t, err)

	_, err = s.handleAdd(ctx, req, AddArgs{Text: "Walk dog"})
	require.NoError(t, err)

	list, err := s.handleList(ctx, req, ListArgs{Query: "DOG"})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "Walk dog", list.Items[0].Text)

	cleared, err := s.handleClearCompleted(ctx, req, struct{}{})
	require.NoError(t, err)
	assert.Equal(t, 1, cleared.Removed)

	_, err = s.handleClearAll(ctx, req, ClearAllArgs{})
	assert.ErrorIs(t, err, ErrNotConfirmed)

	all, err := s.handleClearAll(ctx, req, ClearAllArgs{Confirm: true})
	require.NoError(t, err)
	assert.Equal(t, 1, all.Removed)
	assert.Equal(t, 0, all.Counts.Total)
}

func TestTools_Delete(t *testing.T) {
	ctx := context.Background()
	s := newTestServer(t)
	req := mcp.CallToolRequest{}

	added, err := s.handleAdd(ctx, req, AddArgs{Text: "Temporary"})
	require.NoError(t, err)

	res, err := s.handleDelete(ctx, req, IDArgs{ID: added.Task.ID})
	require.NoError(t, err)
	assert.True(t, res.Deleted)
	assert.Equal(t, 0, res.Counts.Total)

	_, err = s.handleDelete(ctx, req, IDArgs{ID: added.Task.ID})
	assert.Error(t, err)
}

func TestServer_Protocol(t *testing.T) {
	s := newTestServer(t)
	initialize(t, s)

	tools := rpc(t, s, `{"jsonrpc":"2.0","id":1,"method":"tools/list"}`)
	for _, name := range []string{"add_task", "list_tasks", "toggle_task", "delete_task", "clear_completed", "clear_all"} {
		assert.Contains(t, tools, `"name":"`+name+`"`)
	}

	added := rpc(t, s, `{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"add_task","arguments":{"text":"From an agent"}}}`)
	assert.Contains(t, added, "From an agent")
	assert.NotContains(t, added, `"isError":true`)

	refused := rpc(t, s, `{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"clear_all","arguments":{"confirm":false}}}`)
	assert.Contains(t, refused, `"isError":true`)

	resource := rpc(t, s, `{"jsonrpc":"2.0","id":4,"method":"resources/read","params":{"uri":"tasklist://tasks"}}`)
	assert.Contains(t, resource, "From an agent")
	assert.Contains(t, resource, `"mimeType":"application/json"`)
}
